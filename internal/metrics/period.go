// Package metrics is the time-bucketed analytics engine behind the
// dashboard. Everything in it is a pure function of its inputs and an
// explicit reference instant: no clocks are read, no I/O happens, and
// the same inputs always produce the same output, so it is safe to call
// from any number of goroutines.
package metrics

import (
	"time"

	"github.com/imperia-dev/imperia-data-insight-sub000/internal/entity"
)

// ResolveWindow turns a period selector into exact interval bounds
// around now. The end is exclusive for the calendar periods; custom
// ranges clamp `to` to the inclusive 23:59:59.999 end of day, matching
// how the date pickers submit them.
//
// An unknown selector resolves to the month window. Period selection is
// a user-facing surface, so a bad value degrades instead of erroring.
func ResolveWindow(period entity.Period, now time.Time, custom *entity.CustomRange) entity.Window {
	loc := now.Location()

	switch period {
	case entity.PeriodDay:
		start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
		return entity.Window{Start: start, End: start.AddDate(0, 0, 1)}

	case entity.PeriodWeek:
		start := startOfISOWeek(now)
		return entity.Window{Start: start, End: start.AddDate(0, 0, 7)}

	case entity.PeriodQuarter:
		quarter := (int(now.Month()) - 1) / 3
		start := time.Date(now.Year(), time.Month(quarter*3+1), 1, 0, 0, 0, 0, loc)
		return entity.Window{Start: start, End: start.AddDate(0, 3, 0)}

	case entity.PeriodYear:
		start := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, loc)
		return entity.Window{Start: start, End: start.AddDate(1, 0, 0)}

	case entity.PeriodCustom:
		if custom == nil || custom.From.IsZero() || custom.To.IsZero() {
			return ResolveWindow(entity.PeriodMonth, now, nil)
		}
		from := custom.From.In(loc)
		to := custom.To.In(loc)
		if to.Before(from) {
			from, to = to, from
		}
		start := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, loc)
		end := time.Date(to.Year(), to.Month(), to.Day(), 23, 59, 59, 999_000_000, loc)
		return entity.Window{Start: start, End: end}

	default: // month, and the fallback for anything unrecognized
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)
		return entity.Window{Start: start, End: start.AddDate(0, 1, 0)}
	}
}

// startOfISOWeek returns 00:00 of the Monday of the week containing t.
// Go counts Sunday as weekday 0, so a Sunday belongs to the week that
// started six days earlier.
func startOfISOWeek(t time.Time) time.Time {
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	return time.Date(t.Year(), t.Month(), t.Day()-(weekday-1), 0, 0, 0, 0, t.Location())
}
