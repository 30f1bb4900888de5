package metrics

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/imperia-dev/imperia-data-insight-sub000/internal/entity"
	"github.com/imperia-dev/imperia-data-insight-sub000/pkg/utils"
)

const (
	defaultStartHour = 9
	defaultEndHour   = 18

	trendSeriesDays = 30
	trendWindowDays = 7

	// Hysteresis band: improving only above +10%, declining only below
	// -10%, stable in between. Both bounds are exclusive.
	trendUpFactor   = 1.1
	trendDownFactor = 0.9
)

// AnalyzeWorker computes the full productivity rollup for one worker
// from the orders assigned to them. Only delivered and in-progress
// orders are considered; only delivered ones feed totals and averages.
//
// The result is always fully populated. A worker with no deliveries
// gets zeros, the default work pattern and a stable trend, so callers
// never need a nil check.
func AnalyzeWorker(workerID string, orders []entity.Order, now time.Time) entity.ProductivityStats {
	stats := entity.ProductivityStats{
		WorkerID: workerID,
		Pattern: entity.WorkPattern{
			MostProductiveHours: []entity.HourCount{},
			TypicalStartHour:    defaultStartHour,
			TypicalEndHour:      defaultEndHour,
			MostActiveWeekdays:  []entity.WeekdayCount{},
		},
	}

	var delivered []entity.Order
	for _, o := range orders {
		switch o.Status {
		case entity.OrderStatusDelivered:
			if o.DeliveredAt != nil {
				delivered = append(delivered, o)
			}
			stats.OrdersAssigned++
		case entity.OrderStatusInProgress:
			stats.OrdersAssigned++
		}
	}

	stats.OrdersDelivered = len(delivered)
	if stats.OrdersAssigned > 0 {
		stats.CompletionRate = SafeRate(float64(stats.OrdersDelivered), float64(stats.OrdersAssigned))
	}

	if len(delivered) == 0 {
		stats.Trend, stats.TrendDetail = classifyTrend(dailySeries(delivered, now))
		return stats
	}

	first, last := *delivered[0].DeliveredAt, *delivered[0].DeliveredAt
	for _, o := range delivered {
		stats.TotalDocuments += o.DocumentCount
		stats.UrgentCompleted += o.UrgentCount
		if o.DeliveredAt.Before(first) {
			first = *o.DeliveredAt
		}
		if o.DeliveredAt.After(last) {
			last = *o.DeliveredAt
		}
	}
	stats.FirstDeliveryAt = &first
	stats.LastDeliveryAt = &last

	daysActive := daysBetween(first, last) + 1
	if daysActive < 1 {
		daysActive = 1
	}
	weeksActive := (daysActive + 6) / 7
	if weeksActive < 1 {
		weeksActive = 1
	}
	monthsActive := monthsBetween(first, last) + 1
	if monthsActive < 1 {
		monthsActive = 1
	}
	stats.DaysActive = daysActive

	// Duration-based figures skip anomalous rows (delivery recorded
	// before attribution, or attribution missing). The documents still
	// count toward the simple totals above.
	totalHours := 0.0
	docsWithDuration := 0
	for _, o := range delivered {
		if o.AttributedAt == nil || !o.DeliveredAt.After(*o.AttributedAt) {
			continue
		}
		totalHours += o.DeliveredAt.Sub(*o.AttributedAt).Hours()
		docsWithDuration += o.DocumentCount
	}
	stats.TotalHoursWorked = utils.RoundToTwoDecimals(totalHours)
	if docsWithDuration > 0 {
		stats.AvgMinutesPerDocument = utils.RoundToTwoDecimals(totalHours * 60 / float64(docsWithDuration))
	}

	stats.AvgDocumentsPerDay = utils.RoundToTwoDecimals(float64(stats.TotalDocuments) / float64(daysActive))
	stats.AvgDocumentsPerWeek = utils.RoundToTwoDecimals(float64(stats.TotalDocuments) / float64(weeksActive))
	stats.AvgDocumentsPerMonth = utils.RoundToTwoDecimals(float64(stats.TotalDocuments) / float64(monthsActive))

	stats.Pattern = buildWorkPattern(delivered, totalHours, weeksActive)
	stats.Trend, stats.TrendDetail = classifyTrend(dailySeries(delivered, now))

	return stats
}

// daysBetween counts the calendar days from a's date to b's date.
func daysBetween(a, b time.Time) int {
	ad := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, a.Location())
	bd := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, b.Location())
	return int(bd.Sub(ad).Hours() / 24)
}

func monthsBetween(a, b time.Time) int {
	return (b.Year()-a.Year())*12 + int(b.Month()) - int(a.Month())
}

func buildWorkPattern(delivered []entity.Order, totalHours float64, weeksActive int) entity.WorkPattern {
	pattern := entity.WorkPattern{
		TypicalStartHour:   defaultStartHour,
		TypicalEndHour:     defaultEndHour,
		AverageWeeklyHours: utils.RoundToTwoDecimals(totalHours / float64(weeksActive)),
	}

	hourCounts := make(map[int]int)
	weekdayCounts := make(map[time.Weekday]int)
	deliveryHourSum, deliveryHourN := 0, 0
	attributionHourSum, attributionHourN := 0, 0

	for _, o := range delivered {
		hourCounts[o.DeliveredAt.Hour()]++
		weekdayCounts[o.DeliveredAt.Weekday()]++
		deliveryHourSum += o.DeliveredAt.Hour()
		deliveryHourN++
		if o.AttributedAt != nil {
			attributionHourSum += o.AttributedAt.Hour()
			attributionHourN++
		}
	}

	pattern.MostProductiveHours = topHours(hourCounts, 5)
	pattern.MostActiveWeekdays = topWeekdays(weekdayCounts, 3)

	if attributionHourN > 0 {
		pattern.TypicalStartHour = int(math.Round(float64(attributionHourSum) / float64(attributionHourN)))
	}
	if deliveryHourN > 0 {
		pattern.TypicalEndHour = int(math.Round(float64(deliveryHourSum) / float64(deliveryHourN)))
	}

	return pattern
}

func topHours(counts map[int]int, limit int) []entity.HourCount {
	ranked := make([]entity.HourCount, 0, len(counts))
	for hour, count := range counts {
		ranked = append(ranked, entity.HourCount{Hour: hour, Count: count})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Hour < ranked[j].Hour
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

func topWeekdays(counts map[time.Weekday]int, limit int) []entity.WeekdayCount {
	type ranked struct {
		day   time.Weekday
		count int
	}
	all := make([]ranked, 0, len(counts))
	for day, count := range counts {
		all = append(all, ranked{day: day, count: count})
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].count != all[j].count {
			return all[i].count > all[j].count
		}
		return all[i].day < all[j].day
	})
	if len(all) > limit {
		all = all[:limit]
	}
	out := make([]entity.WeekdayCount, 0, len(all))
	for _, r := range all {
		out = append(out, entity.WeekdayCount{Weekday: utils.WeekdayName(r.day), Count: r.count})
	}
	return out
}

// dailySeries builds the document-count-per-day series for the last 30
// calendar days ending today.
func dailySeries(delivered []entity.Order, now time.Time) []int {
	series := make([]int, trendSeriesDays)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	firstDay := today.AddDate(0, 0, -(trendSeriesDays - 1))

	for _, o := range delivered {
		offset := daysBetween(firstDay, *o.DeliveredAt)
		if offset >= 0 && offset < trendSeriesDays {
			series[offset] += o.DocumentCount
		}
	}
	return series
}

// classifyTrend compares the mean of the last seven points against the
// mean of the seven before them and applies the hysteresis band. The
// justification string always embeds both averages; non-stable outcomes
// also state the percentage change.
func classifyTrend(series []int) (entity.Trend, string) {
	recent := windowMean(series, len(series)-trendWindowDays, len(series))
	previous := windowMean(series, len(series)-2*trendWindowDays, len(series)-trendWindowDays)

	detail := fmt.Sprintf("Média recente de %.1f documentos/dia contra %.1f na semana anterior", recent, previous)

	switch {
	case recent > previous*trendUpFactor:
		if previous > 0 {
			detail += fmt.Sprintf(" (+%.1f%%)", Round1((recent-previous)/previous*100))
		}
		return entity.TrendImproving, detail
	case recent < previous*trendDownFactor:
		if previous > 0 {
			detail += fmt.Sprintf(" (%.1f%%)", Round1((recent-previous)/previous*100))
		}
		return entity.TrendDeclining, detail
	default:
		return entity.TrendStable, detail
	}
}

func windowMean(series []int, from, to int) float64 {
	if from < 0 {
		from = 0
	}
	if to > len(series) {
		to = len(series)
	}
	if to <= from {
		return 0
	}
	sum := 0
	for _, v := range series[from:to] {
		sum += v
	}
	return float64(sum) / float64(to-from)
}
