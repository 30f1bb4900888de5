package metrics

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imperia-dev/imperia-data-insight-sub000/internal/entity"
)

func snapshotInput(now time.Time) ComputeInput {
	otherWorker := uuid.MustParse("9d2b7c3a-5e41-4f0a-8a77-1b2c3d4e5f60")
	deadline := ts(2025, time.March, 20, 18, 0)

	orders := []entity.Order{
		mkDelivery(6, ts(2025, time.March, 10, 15, 0)),
		mkDelivery(4, ts(2025, time.March, 12, 11, 0)),
		mkOrder(entity.OrderStatusInProgress, 3,
			tp(ts(2025, time.March, 11, 8, 0)), tp(ts(2025, time.March, 11, 9, 0)), nil,
			deadline, withWorker),
		// A second worker with a single small delivery.
		mkOrder(entity.OrderStatusDelivered, 1,
			tp(ts(2025, time.March, 12, 8, 0)), tp(ts(2025, time.March, 12, 9, 0)), tp(ts(2025, time.March, 12, 18, 0)),
			deadline, func(o *entity.Order) { o.WorkerID = &otherWorker }),
		// Unassigned work stays out of the per-worker list.
		mkOrder(entity.OrderStatusPending, 8,
			tp(ts(2025, time.March, 13, 8, 0)), nil, nil, deadline),
	}

	pendencies := []entity.Pendency{
		mkPendency(entity.ErrorTypeNotError, ts(2025, time.March, 11, 10, 0)),
		mkPendency(entity.ErrorTypeTranslation, ts(2025, time.March, 12, 10, 0)),
	}

	return ComputeInput{
		Period:     entity.PeriodMonth,
		Now:        now,
		Orders:     orders,
		Pendencies: pendencies,
		Policy:     RatePolicy{DailyDocumentGoal: 10, MaxConcurrentOrders: 5},
	}
}

func TestComputeIdempotence(t *testing.T) {
	now := ts(2025, time.March, 15, 12, 0)
	in := snapshotInput(now)

	first := Compute(in)
	second := Compute(in)

	require.Equal(t, first, second)
}

func TestComputeAssemblesSnapshot(t *testing.T) {
	now := ts(2025, time.March, 15, 12, 0)

	snapshot := Compute(snapshotInput(now))

	assert.Equal(t, entity.PeriodMonth, snapshot.Period)
	assert.True(t, snapshot.GeneratedAt.Equal(now))
	require.Len(t, snapshot.Buckets, 31)

	// Two assigned workers, ordered by delivered documents; the
	// unassigned pending order appears in totals only.
	require.Len(t, snapshot.Workers, 2)
	assert.Equal(t, testWorkerID.String(), snapshot.Workers[0].WorkerID)
	assert.Equal(t, 10, snapshot.Workers[0].TotalDocuments)
	assert.Equal(t, 1, snapshot.Workers[1].TotalDocuments)

	assert.Equal(t, 22, snapshot.Totals.CreatedDocuments)
	assert.Equal(t, 11, snapshot.Totals.DeliveredDocuments)
	assert.Equal(t, 2, snapshot.Totals.PendencyCount)

	// Bucket sums agree with the window totals for the same reference
	// instant (attribution).
	bucketSum := 0
	for _, b := range snapshot.Buckets {
		bucketSum += b.Documents
	}
	assert.Equal(t, snapshot.Totals.AttributedDocuments, bucketSum)
	assert.Equal(t, bucketSum, snapshot.Buckets[len(snapshot.Buckets)-1].RunningTotal)
}

func TestComputeEmptyCollections(t *testing.T) {
	now := ts(2025, time.March, 15, 12, 0)

	snapshot := Compute(ComputeInput{Period: entity.PeriodWeek, Now: now})

	require.Len(t, snapshot.Buckets, 7)
	assert.Empty(t, snapshot.Workers)
	assert.Equal(t, entity.SnapshotTotals{}, snapshot.Totals)
	assert.Equal(t, "0.0", FormatRate(snapshot.Rates.OnTimeRate))
	assert.Equal(t, "0.0", FormatRate(snapshot.Rates.PendencyRate))
}
