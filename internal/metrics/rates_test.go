package metrics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/imperia-dev/imperia-data-insight-sub000/internal/entity"
)

func TestSafeRateZeroDenominator(t *testing.T) {
	assert.Equal(t, 0.0, SafeRate(10, 0))
	assert.Equal(t, 0.0, SafeRate(0, 0))
	assert.Equal(t, "0.0", FormatRate(SafeRate(5, 0)))
}

func TestSafeRateRounding(t *testing.T) {
	tests := []struct {
		num, den float64
		want     float64
	}{
		{1, 3, 33.3},
		{2, 3, 66.7},
		{1, 8, 12.5},
		{1, 1, 100},
		{225, 1000, 22.5},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SafeRate(tt.num, tt.den), "%v/%v", tt.num, tt.den)
	}
}

func TestRound1HalfAwayFromZero(t *testing.T) {
	assert.Equal(t, 2.3, Round1(2.25))
	assert.Equal(t, -2.3, Round1(-2.25))
	assert.Equal(t, 0.1, Round1(0.05))
}

func TestComputeRatesEmptyInput(t *testing.T) {
	now := ts(2025, time.March, 15, 12, 0)
	w := ResolveWindow(entity.PeriodMonth, now, nil)

	rates := ComputeRates(entity.SnapshotTotals{}, nil, w, RatePolicy{}, 0)

	assert.Equal(t, 0.0, rates.UrgencyRate)
	assert.Equal(t, 0.0, rates.PendencyRate)
	assert.Equal(t, 0.0, rates.DelayRate)
	assert.Equal(t, 0.0, rates.OnTimeRate)
	assert.Equal(t, 0.0, rates.NotErrorRate)
	assert.Equal(t, 0.0, rates.RealErrorRate)
}

func TestComputeRatesPendencyBreakdownDenominator(t *testing.T) {
	now := ts(2025, time.March, 15, 12, 0)
	w := ResolveWindow(entity.PeriodMonth, now, nil)

	// 100 attributed documents, 20 pendencies of which 5 are "not an
	// error": the breakdown divides by attributed documents, not by the
	// pendency count.
	totals := entity.SnapshotTotals{
		CreatedDocuments:    140,
		AttributedDocuments: 100,
		PendencyCount:       20,
	}
	var pendencies []entity.Pendency
	for i := 0; i < 5; i++ {
		pendencies = append(pendencies, mkPendency(entity.ErrorTypeNotError, ts(2025, time.March, 10, 9, i)))
	}
	for i := 0; i < 15; i++ {
		pendencies = append(pendencies, mkPendency(entity.ErrorTypeTranslation, ts(2025, time.March, 11, 9, i)))
	}

	rates := ComputeRates(totals, pendencies, w, RatePolicy{}, 0)

	assert.Equal(t, 5.0, rates.NotErrorRate)
	assert.Equal(t, 15.0, rates.RealErrorRate)
	// The overall pendency rate keeps its own denominator: documents
	// created in the window.
	assert.Equal(t, 14.3, rates.PendencyRate)
}

func TestComputeRatesDistinctDenominators(t *testing.T) {
	now := ts(2025, time.March, 15, 12, 0)
	w := ResolveWindow(entity.PeriodMonth, now, nil)

	totals := entity.SnapshotTotals{
		CreatedDocuments:    200,
		AttributedDocuments: 150,
		DeliveredDocuments:  80,
		UrgentDocuments:     30,
		DelayedDocuments:    20,
		OnTimeDeliveries:    60,
	}

	rates := ComputeRates(totals, nil, w, RatePolicy{}, 0)

	assert.Equal(t, 15.0, rates.UrgencyRate) // 30/200
	assert.Equal(t, 10.0, rates.DelayRate)   // 20/200
	assert.Equal(t, 75.0, rates.OnTimeRate)  // 60/80
}

func TestComputeRatesPolicyIndicators(t *testing.T) {
	now := ts(2025, time.March, 15, 12, 0)
	w := ResolveWindow(entity.PeriodWeek, now, nil)

	totals := entity.SnapshotTotals{
		DeliveredDocuments: 70,
		InProgressOrders:   6,
	}
	policy := RatePolicy{DailyDocumentGoal: 20, MaxConcurrentOrders: 4}

	rates := ComputeRates(totals, nil, w, policy, 3)

	assert.Equal(t, 50.0, rates.GoalAttainment) // 70 / (20*7)
	assert.Equal(t, 50.0, rates.CapacityUsage)  // 6 / (4*3)
}
