package metrics

import (
	"math"
	"strconv"

	"github.com/imperia-dev/imperia-data-insight-sub000/internal/entity"
)

// Round1 rounds to one decimal, half away from zero.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// SafeRate computes num/den as a percentage with one decimal. A zero
// denominator yields 0 — empty windows are a normal state, not an error.
func SafeRate(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return Round1(num / den * 100)
}

// FormatRate renders a rate for display, always with one decimal
// ("0.0", "12.5").
func FormatRate(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}

// RatePolicy carries the configured capacity defaults. They arrive from
// configuration rather than being baked in here, so a policy change
// never touches the aggregation code.
type RatePolicy struct {
	DailyDocumentGoal   int
	MaxConcurrentOrders int
}

// ComputeRates derives the top-level percentages from the aggregated
// totals. Denominators differ on purpose:
//
//   - UrgencyRate, PendencyRate and DelayRate divide by documents
//     created in the window;
//   - the pendency breakdown divides by attributed documents;
//   - OnTimeRate divides by delivered documents.
//
// Collapsing these into one denominator would change their business
// meaning.
func ComputeRates(totals entity.SnapshotTotals, pendencies []entity.Pendency, w entity.Window, policy RatePolicy, workerCount int) entity.SnapshotRates {
	rates := entity.SnapshotRates{
		UrgencyRate:  SafeRate(float64(totals.UrgentDocuments), float64(totals.CreatedDocuments)),
		PendencyRate: SafeRate(float64(totals.PendencyCount), float64(totals.CreatedDocuments)),
		DelayRate:    SafeRate(float64(totals.DelayedDocuments), float64(totals.CreatedDocuments)),
		OnTimeRate:   SafeRate(float64(totals.OnTimeDeliveries), float64(totals.DeliveredDocuments)),
	}

	notError, realError := 0, 0
	for _, p := range pendencies {
		if !inWindow(w, p.CreatedAt) {
			continue
		}
		if p.ErrorType.IsRealError() {
			realError++
		} else {
			notError++
		}
	}
	rates.NotErrorRate = SafeRate(float64(notError), float64(totals.AttributedDocuments))
	rates.RealErrorRate = SafeRate(float64(realError), float64(totals.AttributedDocuments))

	if policy.DailyDocumentGoal > 0 {
		days := int(w.End.Sub(w.Start).Hours() / 24)
		if days < 1 {
			days = 1
		}
		rates.GoalAttainment = SafeRate(float64(totals.DeliveredDocuments), float64(policy.DailyDocumentGoal*days))
	}
	if policy.MaxConcurrentOrders > 0 && workerCount > 0 {
		rates.CapacityUsage = SafeRate(float64(totals.InProgressOrders), float64(policy.MaxConcurrentOrders*workerCount))
	}

	return rates
}
