package metrics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imperia-dev/imperia-data-insight-sub000/internal/entity"
)

func TestAggregateOrdersDailyGranularity(t *testing.T) {
	now := ts(2025, time.March, 15, 16, 0)
	w := ResolveWindow(entity.PeriodDay, now, nil)
	buckets := PlanBuckets(entity.PeriodDay, w)
	deadline := ts(2025, time.March, 16, 18, 0)

	orders := []entity.Order{
		mkOrder(entity.OrderStatusInProgress, 2, nil, tp(ts(2025, time.March, 15, 9, 15)), nil, deadline),
		mkOrder(entity.OrderStatusInProgress, 3, nil, tp(ts(2025, time.March, 15, 9, 45)), nil, deadline),
		mkOrder(entity.OrderStatusInProgress, 5, nil, tp(ts(2025, time.March, 15, 14, 0)), nil, deadline),
	}

	AggregateOrders(buckets, orders, ByAttributedAt)

	for i, b := range buckets {
		switch i {
		case 9:
			assert.Equal(t, 5, b.Documents, "09:00 bucket")
		case 14:
			assert.Equal(t, 5, b.Documents, "14:00 bucket")
		default:
			assert.Equal(t, 0, b.Documents, "bucket %s", b.Label)
		}
	}
}

func TestAggregateOrdersSkipsMissingInstant(t *testing.T) {
	now := ts(2025, time.March, 15, 16, 0)
	w := ResolveWindow(entity.PeriodDay, now, nil)
	buckets := PlanBuckets(entity.PeriodDay, w)

	// Never attributed: invisible on the attribution chart, not
	// defaulted to any bucket.
	orders := []entity.Order{
		mkOrder(entity.OrderStatusPending, 7, tp(ts(2025, time.March, 15, 8, 0)), nil, nil, now),
	}

	AggregateOrders(buckets, orders, ByAttributedAt)

	for _, b := range buckets {
		require.Equal(t, 0, b.Documents)
	}
}

func TestAggregateOrdersSumConservation(t *testing.T) {
	now := ts(2025, time.March, 15, 12, 0)
	w := ResolveWindow(entity.PeriodWeek, now, nil)
	buckets := PlanBuckets(entity.PeriodWeek, w)
	deadline := ts(2025, time.March, 20, 0, 0)

	orders := []entity.Order{
		mkOrder(entity.OrderStatusInProgress, 4, nil, tp(ts(2025, time.March, 10, 0, 0)), nil, deadline),
		mkOrder(entity.OrderStatusInProgress, 9, nil, tp(ts(2025, time.March, 12, 13, 30)), nil, deadline),
		mkOrder(entity.OrderStatusInProgress, 1, nil, tp(ts(2025, time.March, 16, 23, 59)), nil, deadline),
		// Outside the window on both sides.
		mkOrder(entity.OrderStatusInProgress, 50, nil, tp(ts(2025, time.March, 9, 23, 59)), nil, deadline),
		mkOrder(entity.OrderStatusInProgress, 50, nil, tp(ts(2025, time.March, 17, 0, 1)), nil, deadline),
		// No attribution instant at all.
		mkOrder(entity.OrderStatusPending, 50, tp(ts(2025, time.March, 11, 0, 0)), nil, nil, deadline),
	}

	AggregateOrders(buckets, orders, ByAttributedAt)

	bucketSum := 0
	for _, b := range buckets {
		bucketSum += b.Documents
	}
	require.Equal(t, sumDocuments(orders, ByAttributedAt, w), bucketSum)
	require.Equal(t, 14, bucketSum)
}

func TestAggregateFinalBucketIncludesWindowEnd(t *testing.T) {
	custom := &entity.CustomRange{
		From: ts(2025, time.March, 1, 0, 0),
		To:   ts(2025, time.March, 2, 0, 0),
	}
	w := ResolveWindow(entity.PeriodCustom, ts(2025, time.March, 10, 0, 0), custom)
	buckets := PlanBuckets(entity.PeriodCustom, w)

	orders := []entity.Order{
		mkOrder(entity.OrderStatusInProgress, 3, nil, tp(w.End), nil, w.End.Add(time.Hour)),
	}

	AggregateOrders(buckets, orders, ByAttributedAt)

	last := buckets[len(buckets)-1]
	assert.Equal(t, 3, last.Documents)
}

func TestComputeTotalsCountsWindowEndInstant(t *testing.T) {
	now := ts(2025, time.March, 15, 12, 0)
	w := ResolveWindow(entity.PeriodWeek, now, nil)
	buckets := PlanBuckets(entity.PeriodWeek, w)

	// One order timestamped exactly at the window end: the last bucket
	// accepts it, so the window totals must count it too.
	orders := []entity.Order{
		mkOrder(entity.OrderStatusInProgress, 7, tp(w.End), tp(w.End), nil, w.End.Add(24*time.Hour)),
	}

	AggregateOrders(buckets, orders, ByAttributedAt)
	totals := ComputeTotals(orders, nil, w, now)

	bucketSum := 0
	for _, b := range buckets {
		bucketSum += b.Documents
	}
	require.Equal(t, 7, bucketSum)
	assert.Equal(t, 7, totals.AttributedDocuments)
	assert.Equal(t, 7, totals.CreatedDocuments)
	assert.Equal(t, totals.AttributedDocuments, bucketSum)
}

func TestAggregatePendenciesCountPerOccurrence(t *testing.T) {
	now := ts(2025, time.March, 15, 12, 0)
	w := ResolveWindow(entity.PeriodWeek, now, nil)
	buckets := PlanBuckets(entity.PeriodWeek, w)

	pendencies := []entity.Pendency{
		mkPendency(entity.ErrorTypeTranslation, ts(2025, time.March, 11, 10, 0)),
		mkPendency(entity.ErrorTypeNotError, ts(2025, time.March, 11, 11, 0)),
		mkPendency(entity.ErrorTypeOmission, ts(2025, time.March, 13, 9, 0)),
		mkPendency(entity.ErrorTypeTypo, ts(2025, time.March, 1, 9, 0)), // outside
	}

	AggregatePendencies(buckets, pendencies)

	total := 0
	for _, b := range buckets {
		total += b.Pendencies
	}
	assert.Equal(t, 3, total)
	assert.Equal(t, 2, buckets[1].Pendencies) // Tuesday the 11th
}

func TestFillRunningTotals(t *testing.T) {
	buckets := []entity.Bucket{
		{Documents: 2}, {Documents: 0}, {Documents: 5}, {Documents: 1},
	}

	FillRunningTotals(buckets)

	assert.Equal(t, []int{2, 2, 7, 8}, []int{
		buckets[0].RunningTotal, buckets[1].RunningTotal,
		buckets[2].RunningTotal, buckets[3].RunningTotal,
	})
}

func TestComputeTotalsGroupsByOrderNumber(t *testing.T) {
	now := ts(2025, time.March, 15, 12, 0)
	w := ResolveWindow(entity.PeriodWeek, now, nil)
	deadline := ts(2025, time.March, 11, 18, 0)

	// One order split across two rows: documents sum per row, the
	// order-level count merges them.
	orders := []entity.Order{
		mkOrder(entity.OrderStatusDelivered, 4,
			tp(ts(2025, time.March, 10, 8, 0)), tp(ts(2025, time.March, 10, 9, 0)), tp(ts(2025, time.March, 12, 10, 0)),
			deadline, withNumber("ORD-SPLIT")),
		mkOrder(entity.OrderStatusDelivered, 6,
			tp(ts(2025, time.March, 10, 8, 0)), tp(ts(2025, time.March, 10, 9, 0)), tp(ts(2025, time.March, 12, 11, 0)),
			deadline, withNumber("ORD-SPLIT")),
		mkOrder(entity.OrderStatusDelivered, 2,
			tp(ts(2025, time.March, 11, 8, 0)), tp(ts(2025, time.March, 11, 9, 0)), tp(ts(2025, time.March, 13, 10, 0)),
			ts(2025, time.March, 16, 0, 0), withNumber("ORD-OTHER")),
	}

	totals := ComputeTotals(orders, nil, w, now)

	assert.Equal(t, 12, totals.DeliveredDocuments)
	assert.Equal(t, 2, totals.DeliveredOrders)
	assert.Equal(t, 2, totals.AttributedOrders)
	assert.Equal(t, 12, totals.AttributedDocuments)
	// ORD-SPLIT was delivered past its deadline on both rows, but is one
	// delayed order.
	assert.Equal(t, 10, totals.DelayedDocuments)
	assert.Equal(t, 1, totals.DelayedOrders)
	assert.Equal(t, 2, totals.OnTimeDeliveries)
}

func TestComputeTotalsOverdueOpenOrders(t *testing.T) {
	now := ts(2025, time.March, 15, 12, 0)
	w := ResolveWindow(entity.PeriodMonth, now, nil)

	orders := []entity.Order{
		// In progress and past deadline: delayed already.
		mkOrder(entity.OrderStatusInProgress, 3,
			tp(ts(2025, time.March, 2, 8, 0)), tp(ts(2025, time.March, 2, 9, 0)), nil,
			ts(2025, time.March, 10, 18, 0)),
		// Pending orders are not delayed, whatever the deadline says.
		mkOrder(entity.OrderStatusPending, 9,
			tp(ts(2025, time.March, 2, 8, 0)), nil, nil,
			ts(2025, time.March, 10, 18, 0)),
	}

	totals := ComputeTotals(orders, nil, w, now)

	assert.Equal(t, 3, totals.DelayedDocuments)
	assert.Equal(t, 1, totals.DelayedOrders)
}
