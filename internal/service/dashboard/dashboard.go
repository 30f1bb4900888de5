// Package dashboard assembles the metrics snapshot served to the ops
// dashboard, with a short-lived Redis cache in front of the engine.
package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/imperia-dev/imperia-data-insight-sub000/internal/entity"
	"github.com/imperia-dev/imperia-data-insight-sub000/internal/metrics"
	"github.com/imperia-dev/imperia-data-insight-sub000/internal/repository"
	"github.com/imperia-dev/imperia-data-insight-sub000/internal/service/redis"
	"github.com/imperia-dev/imperia-data-insight-sub000/pkg/utils"
)

const defaultCacheTTL = 5 * time.Minute

type DashboardService struct {
	orderRepo    repository.OrderRepository
	pendencyRepo repository.PendencyRepository
	cache        redis.ServiceInterface
	policy       metrics.RatePolicy
	cacheTTL     time.Duration
}

func NewDashboardService(
	orderRepo repository.OrderRepository,
	pendencyRepo repository.PendencyRepository,
	cache redis.ServiceInterface,
	policy metrics.RatePolicy,
) *DashboardService {
	return &DashboardService{
		orderRepo:    orderRepo,
		pendencyRepo: pendencyRepo,
		cache:        cache,
		policy:       policy,
		cacheTTL:     defaultCacheTTL,
	}
}

// GetSnapshot returns the snapshot for the requested period, serving
// from cache when a fresh copy exists. Custom periods are cached under
// their resolved bounds so two equal ranges share an entry.
func (s *DashboardService) GetSnapshot(ctx context.Context, period entity.Period, custom *entity.CustomRange) (*entity.Snapshot, error) {
	now := utils.NowSaoPaulo()
	window := metrics.ResolveWindow(period, now, custom)
	cacheKey := snapshotCacheKey(period, window)

	if s.cache != nil {
		var cached entity.Snapshot
		if err := s.cache.GetSnapshot(ctx, cacheKey, &cached); err == nil {
			return &cached, nil
		}
	}

	snapshot, err := s.computeSnapshot(ctx, period, custom, now)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.CacheSnapshot(ctx, cacheKey, snapshot, s.cacheTTL); err != nil {
			fmt.Printf("Failed to cache snapshot %s: %v\n", cacheKey, err)
		}
	}

	return snapshot, nil
}

// RefreshSnapshot recomputes the snapshot bypassing the cache and
// stores the fresh copy. The background refresher calls this so
// dashboard reads stay warm.
func (s *DashboardService) RefreshSnapshot(ctx context.Context, period entity.Period) (*entity.Snapshot, error) {
	now := utils.NowSaoPaulo()
	window := metrics.ResolveWindow(period, now, nil)

	snapshot, err := s.computeSnapshot(ctx, period, nil, now)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		cacheKey := snapshotCacheKey(period, window)
		if err := s.cache.CacheSnapshot(ctx, cacheKey, snapshot, s.cacheTTL); err != nil {
			fmt.Printf("Failed to cache snapshot %s: %v\n", cacheKey, err)
		}
	}

	return snapshot, nil
}

func (s *DashboardService) computeSnapshot(ctx context.Context, period entity.Period, custom *entity.CustomRange, now time.Time) (*entity.Snapshot, error) {
	window := metrics.ResolveWindow(period, now, custom)

	orders, err := s.orderRepo.GetByWindow(ctx, window)
	if err != nil {
		return nil, fmt.Errorf("failed to load orders for window: %w", err)
	}

	pendencies, err := s.pendencyRepo.GetByWindow(ctx, window)
	if err != nil {
		return nil, fmt.Errorf("failed to load pendencies for window: %w", err)
	}

	return metrics.Compute(metrics.ComputeInput{
		Period:     period,
		Custom:     custom,
		Now:        now,
		Orders:     orders,
		Pendencies: pendencies,
		Policy:     s.policy,
	}), nil
}

func snapshotCacheKey(period entity.Period, w entity.Window) string {
	if period == entity.PeriodCustom {
		return fmt.Sprintf("%s:%d:%d", period, w.Start.Unix(), w.End.Unix())
	}
	return fmt.Sprintf("%s:%s", period, w.Start.Format("2006-01-02"))
}
