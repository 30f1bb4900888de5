package utils

import "fmt"

// FormatHourLabel renders a clock-hour bucket label, e.g. "09:00".
func FormatHourLabel(hour int) string {
	return fmt.Sprintf("%02d:00", hour)
}
