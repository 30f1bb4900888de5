package entity

import "time"

type Trend string

const (
	TrendImproving Trend = "improving"
	TrendStable    Trend = "stable"
	TrendDeclining Trend = "declining"
)

// HourCount is one slot of the hour-of-day delivery histogram.
type HourCount struct {
	Hour  int `json:"hour"`
	Count int `json:"count"`
}

// WeekdayCount uses the localized (pt-BR) weekday name for display.
type WeekdayCount struct {
	Weekday string `json:"weekday"`
	Count   int    `json:"count"`
}

// WorkPattern is the inferred working routine of a worker, derived from
// histogram statistics over delivery timestamps. When a worker has no
// deliveries yet, the typical hours default to 9/18.
type WorkPattern struct {
	MostProductiveHours []HourCount    `json:"most_productive_hours"`
	TypicalStartHour    int            `json:"typical_start_hour"`
	TypicalEndHour      int            `json:"typical_end_hour"`
	MostActiveWeekdays  []WeekdayCount `json:"most_active_weekdays"`
	AverageWeeklyHours  float64        `json:"average_weekly_hours"`
}

// ProductivityStats is the full per-worker rollup. It is always fully
// populated: a worker with zero deliveries gets zero values and the
// stable trend, never a nil block.
type ProductivityStats struct {
	WorkerID              string      `json:"worker_id"`
	TotalDocuments        int         `json:"total_documents"`
	OrdersDelivered       int         `json:"orders_delivered"`
	OrdersAssigned        int         `json:"orders_assigned"`
	UrgentCompleted       int         `json:"urgent_completed"`
	FirstDeliveryAt       *time.Time  `json:"first_delivery_at,omitempty"`
	LastDeliveryAt        *time.Time  `json:"last_delivery_at,omitempty"`
	DaysActive            int         `json:"days_active"`
	TotalHoursWorked      float64     `json:"total_hours_worked"`
	AvgMinutesPerDocument float64     `json:"avg_minutes_per_document"`
	AvgDocumentsPerDay    float64     `json:"avg_documents_per_day"`
	AvgDocumentsPerWeek   float64     `json:"avg_documents_per_week"`
	AvgDocumentsPerMonth  float64     `json:"avg_documents_per_month"`
	CompletionRate        float64     `json:"completion_rate"`
	Pattern               WorkPattern `json:"pattern"`
	Trend                 Trend       `json:"trend"`
	TrendDetail           string      `json:"trend_detail"`
}

type ProductivityResponse struct {
	Data    *ProductivityStats `json:"data"`
	Success bool               `json:"success"`
	Message string             `json:"message,omitempty"`
}

type ProductivityListResponse struct {
	Data    []ProductivityStats `json:"data"`
	Success bool                `json:"success"`
	Message string              `json:"message,omitempty"`
}
