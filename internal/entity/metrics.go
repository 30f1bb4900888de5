// entity/metrics.go
package entity

import "time"

// Period selects a reporting window relative to a reference instant.
type Period string

const (
	PeriodDay     Period = "day"
	PeriodWeek    Period = "week"
	PeriodMonth   Period = "month"
	PeriodQuarter Period = "quarter"
	PeriodYear    Period = "year"
	PeriodCustom  Period = "custom"
)

// CustomRange carries the explicit bounds of a custom period. Both ends
// are required; an incomplete range falls back to the month period.
type CustomRange struct {
	From time.Time `form:"from" json:"from"`
	To   time.Time `form:"to" json:"to"`
}

// Window is a resolved reporting interval. End is exclusive, except for
// custom periods where it is the inclusive 23:59:59.999 end-of-day clamp.
type Window struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains tests half-open membership: Start <= t < End.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

// Bucket is one sub-interval of a reporting window with its aggregated
// counters. Buckets of a plan are contiguous, non-overlapping and cover
// the window exactly.
type Bucket struct {
	Index        int       `json:"index"`
	Label        string    `json:"label"`
	Start        time.Time `json:"start"`
	End          time.Time `json:"end"`
	Documents    int       `json:"documents"`
	Pendencies   int       `json:"pendencies"`
	RunningTotal int       `json:"running_total"`
}

type SnapshotTotals struct {
	CreatedDocuments    int `json:"created_documents"`
	AttributedDocuments int `json:"attributed_documents"`
	InProgressDocuments int `json:"in_progress_documents"`
	DeliveredDocuments  int `json:"delivered_documents"`
	UrgentDocuments     int `json:"urgent_documents"`
	DelayedDocuments    int `json:"delayed_documents"`
	OnTimeDeliveries    int `json:"on_time_deliveries"`
	PendencyCount       int `json:"pendency_count"`

	// Order-level counts merge rows sharing an order number, so a
	// multi-row order shows up once in detail listings.
	AttributedOrders int `json:"attributed_orders"`
	InProgressOrders int `json:"in_progress_orders"`
	DeliveredOrders  int `json:"delivered_orders"`
	DelayedOrders    int `json:"delayed_orders"`
}

// SnapshotRates holds the derived percentages, each already rounded to
// one decimal. A zero denominator always yields 0, never NaN.
type SnapshotRates struct {
	UrgencyRate    float64 `json:"urgency_rate"`
	PendencyRate   float64 `json:"pendency_rate"`
	DelayRate      float64 `json:"delay_rate"`
	OnTimeRate     float64 `json:"on_time_rate"`
	GoalAttainment float64 `json:"goal_attainment"`
	CapacityUsage  float64 `json:"capacity_usage"`

	// The pendency breakdown divides by attributed documents, not by
	// total documents like PendencyRate. Different business meaning.
	NotErrorRate  float64 `json:"not_error_rate"`
	RealErrorRate float64 `json:"real_error_rate"`
}

// Snapshot is the full metrics output for one reporting window. It is
// rebuilt from scratch on every computation and must be treated as
// read-only by consumers.
type Snapshot struct {
	Period      Period              `json:"period"`
	Window      Window              `json:"window"`
	GeneratedAt time.Time           `json:"generated_at"`
	Buckets     []Bucket            `json:"buckets"`
	Totals      SnapshotTotals      `json:"totals"`
	Rates       SnapshotRates       `json:"rates"`
	Workers     []ProductivityStats `json:"workers"`
}

type SnapshotResponse struct {
	Data    *Snapshot `json:"data"`
	Success bool      `json:"success"`
	Message string    `json:"message,omitempty"`
}

// QualityScore is one entry of the external quality feed, re-pulled on
// its own schedule and merged into the dashboard outside the engine.
type QualityScore struct {
	WorkerID  string    `json:"worker_id"`
	Score     float64   `json:"score"`
	Period    string    `json:"period"`
	FetchedAt time.Time `json:"fetched_at"`
}
