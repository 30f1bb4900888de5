// Package refresher keeps the dashboard cache warm. It recomputes the
// common-period snapshots on a short cycle and re-pulls the external
// quality feed on a longer one, until its context is cancelled.
package refresher

import (
	"context"
	"log"
	"time"

	"github.com/imperia-dev/imperia-data-insight-sub000/internal/entity"
	"github.com/imperia-dev/imperia-data-insight-sub000/internal/service/dashboard"
	"github.com/imperia-dev/imperia-data-insight-sub000/internal/service/quality_feed"
)

var warmPeriods = []entity.Period{
	entity.PeriodDay,
	entity.PeriodWeek,
	entity.PeriodMonth,
}

type Refresher struct {
	dashboardSrv     *dashboard.DashboardService
	qualitySrv       *quality_feed.QualityFeedService
	snapshotInterval time.Duration
	qualityInterval  time.Duration
}

func NewRefresher(
	dashboardSrv *dashboard.DashboardService,
	qualitySrv *quality_feed.QualityFeedService,
	snapshotInterval time.Duration,
	qualityInterval time.Duration,
) *Refresher {
	if snapshotInterval <= 0 {
		snapshotInterval = 5 * time.Minute
	}
	if qualityInterval <= 0 {
		qualityInterval = 30 * time.Minute
	}

	return &Refresher{
		dashboardSrv:     dashboardSrv,
		qualitySrv:       qualitySrv,
		snapshotInterval: snapshotInterval,
		qualityInterval:  qualityInterval,
	}
}

// Run blocks until ctx is cancelled. Both feeds are refreshed once at
// startup so the first dashboard hit after a deploy is already warm.
func (r *Refresher) Run(ctx context.Context) {
	log.Println("✅ Snapshot refresher started")

	r.refreshSnapshots(ctx)
	r.refreshQualityFeed(ctx)

	snapshotTicker := time.NewTicker(r.snapshotInterval)
	qualityTicker := time.NewTicker(r.qualityInterval)
	defer snapshotTicker.Stop()
	defer qualityTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Snapshot refresher stopped")
			return
		case <-snapshotTicker.C:
			r.refreshSnapshots(ctx)
		case <-qualityTicker.C:
			r.refreshQualityFeed(ctx)
		}
	}
}

func (r *Refresher) refreshSnapshots(ctx context.Context) {
	for _, period := range warmPeriods {
		if ctx.Err() != nil {
			return
		}

		if _, err := r.dashboardSrv.RefreshSnapshot(ctx, period); err != nil {
			log.Printf("❌ Failed to refresh %s snapshot: %v", period, err)
		}
	}
}

func (r *Refresher) refreshQualityFeed(ctx context.Context) {
	if r.qualitySrv == nil || ctx.Err() != nil {
		return
	}

	if _, err := r.qualitySrv.RefreshScores(ctx); err != nil {
		log.Printf("❌ Failed to refresh quality feed: %v", err)
	}
}
