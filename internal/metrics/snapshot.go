package metrics

import (
	"sort"
	"time"

	"github.com/imperia-dev/imperia-data-insight-sub000/internal/entity"
)

// ComputeInput is everything a snapshot computation sees. Now is passed
// in explicitly; the engine never reads the clock itself.
type ComputeInput struct {
	Period     entity.Period
	Custom     *entity.CustomRange
	Now        time.Time
	Orders     []entity.Order
	Pendencies []entity.Pendency
	Policy     RatePolicy
}

// Compute produces a fresh snapshot from the raw record collections.
// Pure composition of the resolver, planner, aggregator, rate and
// productivity stages; calling it twice with the same input yields
// structurally identical snapshots.
func Compute(in ComputeInput) *entity.Snapshot {
	window := ResolveWindow(in.Period, in.Now, in.Custom)
	buckets := PlanBuckets(in.Period, window)

	// The evolution chart keys off attribution; pendencies key off
	// their creation instant.
	AggregateOrders(buckets, in.Orders, ByAttributedAt)
	AggregatePendencies(buckets, in.Pendencies)
	FillRunningTotals(buckets)

	totals := ComputeTotals(in.Orders, in.Pendencies, window, in.Now)

	byWorker := make(map[string][]entity.Order)
	for _, o := range in.Orders {
		if o.WorkerID == nil {
			continue
		}
		id := o.WorkerID.String()
		byWorker[id] = append(byWorker[id], o)
	}

	workers := make([]entity.ProductivityStats, 0, len(byWorker))
	for id, orders := range byWorker {
		workers = append(workers, AnalyzeWorker(id, orders, in.Now))
	}
	sort.Slice(workers, func(i, j int) bool {
		if workers[i].TotalDocuments != workers[j].TotalDocuments {
			return workers[i].TotalDocuments > workers[j].TotalDocuments
		}
		return workers[i].WorkerID < workers[j].WorkerID
	})

	rates := ComputeRates(totals, in.Pendencies, window, in.Policy, len(workers))

	return &entity.Snapshot{
		Period:      in.Period,
		Window:      window,
		GeneratedAt: in.Now,
		Buckets:     buckets,
		Totals:      totals,
		Rates:       rates,
		Workers:     workers,
	}
}
