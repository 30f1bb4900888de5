// Package report flattens a metrics snapshot into the pre-formatted
// payload consumed by the WhatsApp dispatch bot.
package report

import (
	"context"
	"fmt"
	"strconv"

	"github.com/imperia-dev/imperia-data-insight-sub000/internal/entity"
	"github.com/imperia-dev/imperia-data-insight-sub000/internal/metrics"
	"github.com/imperia-dev/imperia-data-insight-sub000/internal/model/response"
	"github.com/imperia-dev/imperia-data-insight-sub000/internal/service/dashboard"
	"github.com/imperia-dev/imperia-data-insight-sub000/internal/service/quality_feed"
	"github.com/imperia-dev/imperia-data-insight-sub000/pkg/utils"
)

type ReportService struct {
	dashboardSrv *dashboard.DashboardService
	qualitySrv   *quality_feed.QualityFeedService
}

func NewReportService(dashboardSrv *dashboard.DashboardService, qualitySrv *quality_feed.QualityFeedService) *ReportService {
	return &ReportService{
		dashboardSrv: dashboardSrv,
		qualitySrv:   qualitySrv,
	}
}

// BuildReport assembles the report for a period. Quality scores are
// best-effort: a cold or failing feed never blocks the report.
func (s *ReportService) BuildReport(ctx context.Context, period entity.Period, custom *entity.CustomRange) (*response.Report, error) {
	snapshot, err := s.dashboardSrv.GetSnapshot(ctx, period, custom)
	if err != nil {
		return nil, fmt.Errorf("failed to build report: %w", err)
	}

	report := &response.Report{
		Period:      string(snapshot.Period),
		Range:       utils.FormatPeriod(snapshot.Window.Start, snapshot.Window.End),
		GeneratedAt: snapshot.GeneratedAt,
		Indicators:  buildIndicators(snapshot),
		Chart:       buildChart(snapshot.Buckets),
	}

	if s.qualitySrv != nil {
		scores, err := s.qualitySrv.GetScores(ctx)
		if err != nil {
			fmt.Printf("Quality feed unavailable for report: %v\n", err)
		} else {
			report.Quality = scores
		}
	}

	return report, nil
}

func buildIndicators(snapshot *entity.Snapshot) []response.Indicator {
	t := snapshot.Totals
	r := snapshot.Rates

	return []response.Indicator{
		{Key: "created_documents", Label: "Documentos criados", Value: strconv.Itoa(t.CreatedDocuments)},
		{Key: "attributed_documents", Label: "Documentos atribuídos", Value: strconv.Itoa(t.AttributedDocuments)},
		{Key: "delivered_documents", Label: "Documentos entregues", Value: strconv.Itoa(t.DeliveredDocuments)},
		{Key: "delivered_orders", Label: "Pedidos entregues", Value: strconv.Itoa(t.DeliveredOrders)},
		{Key: "pendency_count", Label: "Pendências", Value: strconv.Itoa(t.PendencyCount)},
		{Key: "urgency_rate", Label: "Taxa de urgência", Value: metrics.FormatRate(r.UrgencyRate) + "%"},
		{Key: "pendency_rate", Label: "Taxa de pendência", Value: metrics.FormatRate(r.PendencyRate) + "%"},
		{Key: "delay_rate", Label: "Taxa de atraso", Value: metrics.FormatRate(r.DelayRate) + "%"},
		{Key: "on_time_rate", Label: "Entregas no prazo", Value: metrics.FormatRate(r.OnTimeRate) + "%"},
		{Key: "goal_attainment", Label: "Atingimento de meta", Value: metrics.FormatRate(r.GoalAttainment) + "%"},
		{Key: "capacity_usage", Label: "Uso de capacidade", Value: metrics.FormatRate(r.CapacityUsage) + "%"},
		{Key: "real_error_rate", Label: "Taxa de erro real", Value: metrics.FormatRate(r.RealErrorRate) + "%"},
	}
}

func buildChart(buckets []entity.Bucket) []response.ChartPoint {
	points := make([]response.ChartPoint, 0, len(buckets))
	for _, b := range buckets {
		points = append(points, response.ChartPoint{
			Label:        b.Label,
			Documents:    b.Documents,
			Pendencies:   b.Pendencies,
			RunningTotal: b.RunningTotal,
		})
	}
	return points
}
