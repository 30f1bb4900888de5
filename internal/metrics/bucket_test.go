package metrics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imperia-dev/imperia-data-insight-sub000/internal/entity"
)

// requireExactCover asserts the central planner invariant: buckets are
// ordered, contiguous, non-overlapping, and their union is the window.
func requireExactCover(t *testing.T, w entity.Window, buckets []entity.Bucket) {
	t.Helper()

	require.NotEmpty(t, buckets)
	require.True(t, buckets[0].Start.Equal(w.Start), "first bucket must start at window start")
	require.True(t, buckets[len(buckets)-1].End.Equal(w.End), "last bucket must end at window end")

	for i, b := range buckets {
		require.Equal(t, i, b.Index)
		require.True(t, b.Start.Before(b.End), "bucket %d is empty or inverted", i)
		if i > 0 {
			require.True(t, b.Start.Equal(buckets[i-1].End),
				"gap or overlap between bucket %d and %d", i-1, i)
		}
	}
}

func TestPlanBucketsCoverage(t *testing.T) {
	nows := []time.Time{
		ts(2025, time.March, 15, 14, 30),
		ts(2024, time.February, 29, 23, 59), // leap day
		ts(2025, time.December, 31, 0, 0),
		ts(2025, time.January, 1, 0, 0),
		ts(2025, time.June, 30, 12, 0),
	}
	periods := []entity.Period{
		entity.PeriodDay, entity.PeriodWeek, entity.PeriodMonth,
		entity.PeriodQuarter, entity.PeriodYear,
	}

	for _, now := range nows {
		for _, period := range periods {
			w := ResolveWindow(period, now, nil)
			requireExactCover(t, w, PlanBuckets(period, w))
		}
	}

	custom := &entity.CustomRange{
		From: ts(2025, time.February, 10, 8, 0),
		To:   ts(2025, time.March, 12, 17, 0),
	}
	w := ResolveWindow(entity.PeriodCustom, nows[0], custom)
	requireExactCover(t, w, PlanBuckets(entity.PeriodCustom, w))
}

func TestPlanBucketsDayIsHourly(t *testing.T) {
	now := ts(2025, time.March, 15, 10, 0)
	w := ResolveWindow(entity.PeriodDay, now, nil)

	buckets := PlanBuckets(entity.PeriodDay, w)

	require.Len(t, buckets, 24)
	assert.Equal(t, "00:00", buckets[0].Label)
	assert.Equal(t, "09:00", buckets[9].Label)
	assert.Equal(t, "23:00", buckets[23].Label)
}

func TestPlanBucketsMonthIsDaily(t *testing.T) {
	now := ts(2024, time.February, 10, 0, 0)
	w := ResolveWindow(entity.PeriodMonth, now, nil)

	buckets := PlanBuckets(entity.PeriodMonth, w)

	require.Len(t, buckets, 29) // leap February
	assert.Equal(t, "01/02", buckets[0].Label)
	assert.Equal(t, "29/02", buckets[28].Label)
}

func TestPlanBucketsQuarterIsWeeklyWithClampedEdges(t *testing.T) {
	// Q2 2025 starts on Tuesday, April 1st: the first weekly bucket is
	// short and ends on the following Monday.
	now := ts(2025, time.May, 10, 0, 0)
	w := ResolveWindow(entity.PeriodQuarter, now, nil)

	buckets := PlanBuckets(entity.PeriodQuarter, w)

	require.True(t, buckets[0].Start.Equal(ts(2025, time.April, 1, 0, 0)))
	require.True(t, buckets[0].End.Equal(ts(2025, time.April, 7, 0, 0)))
	assert.Equal(t, "Semana 14", buckets[0].Label)

	last := buckets[len(buckets)-1]
	require.True(t, last.End.Equal(ts(2025, time.July, 1, 0, 0)))
	requireExactCover(t, w, buckets)
}

func TestPlanBucketsYearIsMonthly(t *testing.T) {
	now := ts(2025, time.August, 1, 0, 0)
	w := ResolveWindow(entity.PeriodYear, now, nil)

	buckets := PlanBuckets(entity.PeriodYear, w)

	require.Len(t, buckets, 12)
	labels := make([]string, 0, 12)
	for _, b := range buckets {
		labels = append(labels, b.Label)
	}
	assert.Equal(t, []string{
		"Jan", "Fev", "Mar", "Abr", "Mai", "Jun",
		"Jul", "Ago", "Set", "Out", "Nov", "Dez",
	}, labels)
}

func TestPlanBucketsCustomIsDaily(t *testing.T) {
	custom := &entity.CustomRange{
		From: ts(2025, time.March, 3, 12, 0),
		To:   ts(2025, time.March, 5, 6, 0),
	}
	w := ResolveWindow(entity.PeriodCustom, ts(2025, time.March, 10, 0, 0), custom)

	buckets := PlanBuckets(entity.PeriodCustom, w)

	require.Len(t, buckets, 3)
	assert.Equal(t, "03/03", buckets[0].Label)
	// The final daily bucket is clamped to the inclusive end-of-day
	// instant of the custom range.
	require.True(t, buckets[2].End.Equal(w.End))
	requireExactCover(t, w, buckets)
}
