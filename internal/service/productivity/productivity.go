// Package productivity serves per-worker analytics. The all-workers
// listing fans out one goroutine per worker and joins on the first
// error.
package productivity

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/imperia-dev/imperia-data-insight-sub000/internal/entity"
	"github.com/imperia-dev/imperia-data-insight-sub000/internal/metrics"
	"github.com/imperia-dev/imperia-data-insight-sub000/internal/repository"
	"github.com/imperia-dev/imperia-data-insight-sub000/pkg/utils"
)

const maxConcurrentWorkers = 8

type ProductivityService struct {
	orderRepo repository.OrderRepository
}

func NewProductivityService(orderRepo repository.OrderRepository) *ProductivityService {
	return &ProductivityService{orderRepo: orderRepo}
}

// GetWorkerProductivity computes the full rollup for one worker from
// their assigned and delivered orders.
func (s *ProductivityService) GetWorkerProductivity(ctx context.Context, workerID string) (*entity.ProductivityStats, error) {
	if workerID == "" {
		return nil, fmt.Errorf("worker ID is required")
	}

	if !utils.ValidateUUID(workerID) {
		return nil, fmt.Errorf("invalid worker ID: %s", workerID)
	}

	orders, err := s.orderRepo.GetByWorker(ctx, workerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get worker orders: %w", err)
	}

	stats := metrics.AnalyzeWorker(workerID, orders, utils.NowSaoPaulo())
	return &stats, nil
}

// GetAllWorkersProductivity computes rollups for every worker that has
// orders on record, ordered by total documents descending.
func (s *ProductivityService) GetAllWorkersProductivity(ctx context.Context) ([]entity.ProductivityStats, error) {
	workerIDs, err := s.orderRepo.GetWorkerIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list workers: %w", err)
	}

	now := utils.NowSaoPaulo()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentWorkers)

	var mu sync.Mutex
	results := make([]entity.ProductivityStats, 0, len(workerIDs))

	for _, workerID := range workerIDs {
		workerID := workerID
		g.Go(func() error {
			orders, err := s.orderRepo.GetByWorker(gctx, workerID)
			if err != nil {
				return fmt.Errorf("failed to get orders for worker %s: %w", workerID, err)
			}

			stats := metrics.AnalyzeWorker(workerID, orders, now)

			mu.Lock()
			results = append(results, stats)
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].TotalDocuments != results[j].TotalDocuments {
			return results[i].TotalDocuments > results[j].TotalDocuments
		}
		return results[i].WorkerID < results[j].WorkerID
	})

	return results, nil
}
