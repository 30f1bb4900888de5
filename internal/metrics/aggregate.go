package metrics

import (
	"time"

	"github.com/imperia-dev/imperia-data-insight-sub000/internal/entity"
)

// RefInstant picks the timestamp an aggregation keys off for one order.
// A nil result means the order has not reached that state yet and is
// left out of the pass entirely, which is meaningful in itself: an
// order never attributed simply does not exist on the attribution chart.
type RefInstant func(o entity.Order) *time.Time

var (
	ByCreatedAt    RefInstant = func(o entity.Order) *time.Time { return o.CreatedAt }
	ByAttributedAt RefInstant = func(o entity.Order) *time.Time { return o.AttributedAt }
	ByDeliveredAt  RefInstant = func(o entity.Order) *time.Time { return o.DeliveredAt }
)

// bucketIndexFor locates the unique bucket containing t, or -1 when t
// falls outside the plan. Membership is start <= t < end, with the last
// bucket additionally accepting the window's own end instant.
func bucketIndexFor(buckets []entity.Bucket, t time.Time) int {
	for i, b := range buckets {
		if !t.Before(b.Start) && t.Before(b.End) {
			return i
		}
	}
	if n := len(buckets); n > 0 && t.Equal(buckets[n-1].End) {
		return n - 1
	}
	return -1
}

// inWindow is the totals-side counterpart of bucket membership: half
// open, with the window's own end instant accepted, so bucket sums and
// window totals count exactly the same records.
func inWindow(w entity.Window, t time.Time) bool {
	return w.Contains(t) || t.Equal(w.End)
}

// AggregateOrders adds each order's document count to the bucket its
// reference instant falls into. Every order lands in at most one bucket
// per pass; the same order may appear in a different pass keyed off a
// different instant (attribution chart vs. creation totals).
func AggregateOrders(buckets []entity.Bucket, orders []entity.Order, ref RefInstant) {
	for _, o := range orders {
		t := ref(o)
		if t == nil {
			continue
		}
		if i := bucketIndexFor(buckets, *t); i >= 0 {
			buckets[i].Documents += o.DocumentCount
		}
	}
}

// AggregatePendencies counts each pendency as exactly one unit in the
// bucket of its creation instant, regardless of how many documents the
// related order has. That is the reporting policy, not an oversight.
func AggregatePendencies(buckets []entity.Bucket, pendencies []entity.Pendency) {
	for _, p := range pendencies {
		if i := bucketIndexFor(buckets, p.CreatedAt); i >= 0 {
			buckets[i].Pendencies++
		}
	}
}

// FillRunningTotals derives the cumulative document series used by the
// evolution chart.
func FillRunningTotals(buckets []entity.Bucket) {
	total := 0
	for i := range buckets {
		total += buckets[i].Documents
		buckets[i].RunningTotal = total
	}
}

// sumDocuments totals DocumentCount over the orders whose reference
// instant falls inside w.
func sumDocuments(orders []entity.Order, ref RefInstant, w entity.Window) int {
	sum := 0
	for _, o := range orders {
		t := ref(o)
		if t == nil {
			continue
		}
		if inWindow(w, *t) {
			sum += o.DocumentCount
		}
	}
	return sum
}

// groupByOrderNumber merges rows sharing an order number. Bucket sums
// stay per-row; the grouped view only backs the order-level counts so a
// split order is not double counted in detail listings. Both views must
// agree on document totals, which holds because grouping never drops or
// duplicates a row.
func groupByOrderNumber(orders []entity.Order) map[string][]entity.Order {
	groups := make(map[string][]entity.Order, len(orders))
	for _, o := range orders {
		groups[o.OrderNumber] = append(groups[o.OrderNumber], o)
	}
	return groups
}

// countGroups counts distinct order numbers having at least one row
// matching the predicate.
func countGroups(groups map[string][]entity.Order, match func(entity.Order) bool) int {
	n := 0
	for _, rows := range groups {
		for _, o := range rows {
			if match(o) {
				n++
				break
			}
		}
	}
	return n
}

// ComputeTotals builds the top-level counters for one window. Documents
// are summed over raw rows; order counts come from the grouped view.
func ComputeTotals(orders []entity.Order, pendencies []entity.Pendency, w entity.Window, now time.Time) entity.SnapshotTotals {
	totals := entity.SnapshotTotals{}

	for _, o := range orders {
		if o.CreatedAt != nil && inWindow(w, *o.CreatedAt) {
			totals.CreatedDocuments += o.DocumentCount
			totals.UrgentDocuments += o.UrgentCount
		}
		if o.AttributedAt != nil && inWindow(w, *o.AttributedAt) {
			totals.AttributedDocuments += o.DocumentCount
			if o.Status == entity.OrderStatusInProgress {
				totals.InProgressDocuments += o.DocumentCount
			}
		}
		if o.Delivered() && inWindow(w, *o.DeliveredAt) {
			totals.DeliveredDocuments += o.DocumentCount
			if o.DeliveredAt.After(o.Deadline) {
				totals.DelayedDocuments += o.DocumentCount
			} else {
				totals.OnTimeDeliveries += o.DocumentCount
			}
		}
		// Open orders past their deadline are already delayed even
		// before anything is delivered.
		if !o.Delivered() && o.Status != entity.OrderStatusPending && now.After(o.Deadline) {
			totals.DelayedDocuments += o.DocumentCount
		}
	}

	for _, p := range pendencies {
		if inWindow(w, p.CreatedAt) {
			totals.PendencyCount++
		}
	}

	groups := groupByOrderNumber(orders)
	totals.AttributedOrders = countGroups(groups, func(o entity.Order) bool {
		return o.AttributedAt != nil && inWindow(w, *o.AttributedAt)
	})
	totals.InProgressOrders = countGroups(groups, func(o entity.Order) bool {
		return o.Status == entity.OrderStatusInProgress && o.AttributedAt != nil && inWindow(w, *o.AttributedAt)
	})
	totals.DeliveredOrders = countGroups(groups, func(o entity.Order) bool {
		return o.Delivered() && inWindow(w, *o.DeliveredAt)
	})
	totals.DelayedOrders = countGroups(groups, func(o entity.Order) bool {
		if o.Delivered() && inWindow(w, *o.DeliveredAt) {
			return o.DeliveredAt.After(o.Deadline)
		}
		return !o.Delivered() && o.Status != entity.OrderStatusPending && now.After(o.Deadline)
	})

	return totals
}
