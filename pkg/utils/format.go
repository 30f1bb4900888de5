package utils

import (
	"fmt"
	"time"
)

func FormatPeriod(start, end time.Time) string {
	return fmt.Sprintf("%s - %s",
		start.Format("02/01/2006 15:04"),
		end.Format("02/01/2006 15:04"))
}
