package metrics

import (
	"fmt"
	"time"

	"github.com/imperia-dev/imperia-data-insight-sub000/internal/entity"
	"github.com/imperia-dev/imperia-data-insight-sub000/pkg/utils"
)

// PlanBuckets splits a resolved window into ordered sub-intervals at the
// granularity implied by the period selector:
//
//	day                   -> one bucket per clock hour ("09:00")
//	week, month, custom   -> one bucket per calendar day ("02/01")
//	quarter               -> one bucket per ISO week ("Semana 14")
//	year                  -> one bucket per month ("Jan")
//
// The window alone cannot pick the granularity (a 30-day custom range
// and a month look the same), so the selector is passed in as well.
// First and last buckets are clamped to the window bounds; the result
// is contiguous, non-overlapping and covers the window exactly.
func PlanBuckets(period entity.Period, w entity.Window) []entity.Bucket {
	switch period {
	case entity.PeriodDay:
		return planBuckets(w, nextHour, hourLabel)
	case entity.PeriodQuarter:
		return planBuckets(w, nextISOWeek, weekLabel)
	case entity.PeriodYear:
		return planBuckets(w, nextMonth, monthLabel)
	default: // week, month, custom
		return planBuckets(w, nextDay, dayLabel)
	}
}

// planBuckets walks from the window start, cutting a bucket at every
// natural boundary produced by next, and clamps the final bucket to the
// window end.
func planBuckets(w entity.Window, next func(time.Time) time.Time, label func(time.Time) string) []entity.Bucket {
	var buckets []entity.Bucket

	cursor := w.Start
	for cursor.Before(w.End) {
		end := next(cursor)
		if end.After(w.End) {
			end = w.End
		}
		buckets = append(buckets, entity.Bucket{
			Index: len(buckets),
			Label: label(cursor),
			Start: cursor,
			End:   end,
		})
		cursor = end
	}

	return buckets
}

func nextHour(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), 0, 0, 0, t.Location()).Add(time.Hour)
}

func nextDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location()).AddDate(0, 0, 1)
}

// nextISOWeek returns 00:00 of the Monday after t. A window starting
// mid-week therefore produces a short first bucket.
func nextISOWeek(t time.Time) time.Time {
	return startOfISOWeek(t).AddDate(0, 0, 7)
}

func nextMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location()).AddDate(0, 1, 0)
}

func hourLabel(t time.Time) string {
	return utils.FormatHourLabel(t.Hour())
}

func dayLabel(t time.Time) string {
	return t.Format("02/01")
}

func weekLabel(t time.Time) string {
	_, week := t.ISOWeek()
	return fmt.Sprintf("Semana %d", week)
}

func monthLabel(t time.Time) string {
	return utils.MonthAbbr(t.Month())
}
