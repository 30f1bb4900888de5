package metrics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imperia-dev/imperia-data-insight-sub000/internal/entity"
)

// trendOrders builds one delivery per day: docsPrevious per day on days
// now-13..now-7, docsRecent per day on days now-6..now.
func trendOrders(now time.Time, docsPrevious, docsRecent int) []entity.Order {
	var orders []entity.Order
	for offset := 13; offset >= 7; offset-- {
		orders = append(orders, mkDelivery(docsPrevious, now.AddDate(0, 0, -offset)))
	}
	for offset := 6; offset >= 0; offset-- {
		orders = append(orders, mkDelivery(docsRecent, now.AddDate(0, 0, -offset)))
	}
	return orders
}

func TestTrendHysteresis(t *testing.T) {
	now := ts(2025, time.March, 15, 12, 0)

	tests := []struct {
		name     string
		previous int
		recent   int
		want     entity.Trend
	}{
		// The ±10% boundaries are exclusive.
		{"exactly +10 percent is stable", 100, 110, entity.TrendStable},
		{"above +10 percent improves", 100, 111, entity.TrendImproving},
		{"exactly -10 percent is stable", 100, 90, entity.TrendStable},
		{"below -10 percent declines", 100, 89, entity.TrendDeclining},
		{"flat is stable", 100, 100, entity.TrendStable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stats := AnalyzeWorker(testWorkerID.String(), trendOrders(now, tt.previous, tt.recent), now)
			assert.Equal(t, tt.want, stats.Trend)
			assert.NotEmpty(t, stats.TrendDetail)
		})
	}
}

func TestTrendDetailEmbedsAverages(t *testing.T) {
	now := ts(2025, time.March, 15, 12, 0)

	stats := AnalyzeWorker(testWorkerID.String(), trendOrders(now, 100, 150), now)

	require.Equal(t, entity.TrendImproving, stats.Trend)
	assert.Contains(t, stats.TrendDetail, "150.0")
	assert.Contains(t, stats.TrendDetail, "100.0")
	assert.Contains(t, stats.TrendDetail, "+50.0%")
}

func TestAnalyzeWorkerAnomalyExcludedFromDurations(t *testing.T) {
	now := ts(2025, time.March, 15, 12, 0)

	// Delivery recorded before attribution: the documents count, the
	// duration does not.
	anomalous := mkOrder(entity.OrderStatusDelivered, 4,
		tp(ts(2025, time.March, 10, 8, 0)),
		tp(ts(2025, time.March, 12, 10, 0)), // attributed after delivery
		tp(ts(2025, time.March, 11, 10, 0)),
		ts(2025, time.March, 14, 0, 0), withWorker)

	stats := AnalyzeWorker(testWorkerID.String(), []entity.Order{anomalous}, now)

	assert.Equal(t, 4, stats.TotalDocuments)
	assert.Equal(t, 0.0, stats.TotalHoursWorked)
	assert.Equal(t, 0.0, stats.AvgMinutesPerDocument)
}

func TestAnalyzeWorkerDurations(t *testing.T) {
	now := ts(2025, time.March, 15, 12, 0)

	orders := []entity.Order{
		// 2 documents over 3 hours.
		mkOrder(entity.OrderStatusDelivered, 2,
			tp(ts(2025, time.March, 10, 8, 0)),
			tp(ts(2025, time.March, 10, 9, 0)),
			tp(ts(2025, time.March, 10, 12, 0)),
			ts(2025, time.March, 12, 0, 0), withWorker),
		// 3 documents over 2 hours.
		mkOrder(entity.OrderStatusDelivered, 3,
			tp(ts(2025, time.March, 11, 8, 0)),
			tp(ts(2025, time.March, 11, 14, 0)),
			tp(ts(2025, time.March, 11, 16, 0)),
			ts(2025, time.March, 13, 0, 0), withWorker),
	}

	stats := AnalyzeWorker(testWorkerID.String(), orders, now)

	assert.Equal(t, 5.0, stats.TotalHoursWorked)
	assert.Equal(t, 60.0, stats.AvgMinutesPerDocument) // 5h * 60 / 5 docs
}

func TestAnalyzeWorkerActivitySpanAverages(t *testing.T) {
	now := ts(2025, time.March, 20, 12, 0)

	orders := []entity.Order{
		mkDelivery(10, ts(2025, time.March, 1, 10, 0)),
		mkDelivery(10, ts(2025, time.March, 10, 15, 0)),
	}

	stats := AnalyzeWorker(testWorkerID.String(), orders, now)

	// Span Mar 1..Mar 10 inclusive = 10 days, 2 weeks, 1 month.
	assert.Equal(t, 10, stats.DaysActive)
	assert.Equal(t, 2.0, stats.AvgDocumentsPerDay)
	assert.Equal(t, 10.0, stats.AvgDocumentsPerWeek)
	assert.Equal(t, 20.0, stats.AvgDocumentsPerMonth)
	require.NotNil(t, stats.FirstDeliveryAt)
	require.NotNil(t, stats.LastDeliveryAt)
	assert.True(t, stats.FirstDeliveryAt.Equal(ts(2025, time.March, 1, 10, 0)))
	assert.True(t, stats.LastDeliveryAt.Equal(ts(2025, time.March, 10, 15, 0)))
}

func TestAnalyzeWorkerCompletionRateBounds(t *testing.T) {
	now := ts(2025, time.March, 15, 12, 0)
	deadline := ts(2025, time.March, 20, 0, 0)

	orders := []entity.Order{
		mkDelivery(1, ts(2025, time.March, 10, 10, 0)),
		mkDelivery(1, ts(2025, time.March, 11, 10, 0)),
		mkOrder(entity.OrderStatusInProgress, 1, nil, tp(ts(2025, time.March, 12, 9, 0)), nil, deadline, withWorker),
		mkOrder(entity.OrderStatusInProgress, 1, nil, tp(ts(2025, time.March, 13, 9, 0)), nil, deadline, withWorker),
	}

	stats := AnalyzeWorker(testWorkerID.String(), orders, now)

	assert.Equal(t, 50.0, stats.CompletionRate)
	assert.GreaterOrEqual(t, stats.CompletionRate, 0.0)
	assert.LessOrEqual(t, stats.CompletionRate, 100.0)
	assert.Equal(t, 2, stats.OrdersDelivered)
	assert.Equal(t, 4, stats.OrdersAssigned)
}

func TestAnalyzeWorkerNoDeliveries(t *testing.T) {
	now := ts(2025, time.March, 15, 12, 0)

	stats := AnalyzeWorker(testWorkerID.String(), nil, now)

	assert.Equal(t, 0, stats.TotalDocuments)
	assert.Equal(t, 0.0, stats.CompletionRate)
	assert.Equal(t, 0.0, stats.TotalHoursWorked)
	assert.Nil(t, stats.FirstDeliveryAt)
	assert.Equal(t, entity.TrendStable, stats.Trend)
	assert.NotEmpty(t, stats.TrendDetail)
	// Work pattern comes back with its documented defaults, never nil.
	assert.Equal(t, 9, stats.Pattern.TypicalStartHour)
	assert.Equal(t, 18, stats.Pattern.TypicalEndHour)
	assert.NotNil(t, stats.Pattern.MostProductiveHours)
	assert.Empty(t, stats.Pattern.MostProductiveHours)
	assert.NotNil(t, stats.Pattern.MostActiveWeekdays)
}

func TestAnalyzeWorkerWorkPattern(t *testing.T) {
	now := ts(2025, time.March, 20, 12, 0)

	var orders []entity.Order
	// Three Tuesday deliveries at 16h, two Wednesday at 10h.
	for _, d := range []time.Time{
		ts(2025, time.March, 4, 16, 30),
		ts(2025, time.March, 11, 16, 10),
		ts(2025, time.March, 18, 16, 45),
		ts(2025, time.March, 5, 10, 0),
		ts(2025, time.March, 12, 10, 20),
	} {
		orders = append(orders, mkDelivery(1, d))
	}

	stats := AnalyzeWorker(testWorkerID.String(), orders, now)

	require.NotEmpty(t, stats.Pattern.MostProductiveHours)
	assert.Equal(t, 16, stats.Pattern.MostProductiveHours[0].Hour)
	assert.Equal(t, 3, stats.Pattern.MostProductiveHours[0].Count)

	require.NotEmpty(t, stats.Pattern.MostActiveWeekdays)
	assert.Equal(t, "Terça-feira", stats.Pattern.MostActiveWeekdays[0].Weekday)
	assert.Equal(t, 3, stats.Pattern.MostActiveWeekdays[0].Count)
	assert.LessOrEqual(t, len(stats.Pattern.MostActiveWeekdays), 3)
	assert.LessOrEqual(t, len(stats.Pattern.MostProductiveHours), 5)
}

func TestAnalyzeWorkerUrgentCompleted(t *testing.T) {
	now := ts(2025, time.March, 15, 12, 0)

	orders := []entity.Order{
		mkOrder(entity.OrderStatusDelivered, 10,
			tp(ts(2025, time.March, 10, 8, 0)),
			tp(ts(2025, time.March, 10, 9, 0)),
			tp(ts(2025, time.March, 10, 17, 0)),
			ts(2025, time.March, 12, 0, 0), withWorker, withUrgent(4)),
	}

	stats := AnalyzeWorker(testWorkerID.String(), orders, now)

	assert.Equal(t, 4, stats.UrgentCompleted)
}
