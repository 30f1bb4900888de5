package entity

import (
	"time"

	"github.com/google/uuid"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusInProgress OrderStatus = "in_progress"
	OrderStatusDelivered  OrderStatus = "delivered"
)

// Order is one work order (a batch of documents to translate).
// AttributedAt is the moment the order was assigned to a worker;
// orders without a worker stay out of per-worker rollups.
type Order struct {
	ID            uuid.UUID   `db:"id" json:"id"`
	OrderNumber   string      `db:"order_number" json:"order_number"`
	ClientID      *uuid.UUID  `db:"client_id" json:"client_id,omitempty"`
	WorkerID      *uuid.UUID  `db:"worker_id" json:"worker_id,omitempty"`
	DocumentCount int         `db:"document_count" json:"document_count"`
	UrgentCount   int         `db:"urgent_count" json:"urgent_count"`
	Status        OrderStatus `db:"status" json:"status"`
	CreatedAt     *time.Time  `db:"created_at" json:"created_at,omitempty"`
	AttributedAt  *time.Time  `db:"attributed_at" json:"attributed_at,omitempty"`
	DeliveredAt   *time.Time  `db:"delivered_at" json:"delivered_at,omitempty"`
	Deadline      time.Time   `db:"deadline" json:"deadline"`
	UpdatedAt     *time.Time  `db:"updated_at" json:"updated_at,omitempty"`
}

// Delivered reports whether the order reached its terminal state with a
// delivery instant recorded. Status alone is not enough: a "delivered"
// row missing its instant is a data anomaly and is treated as not
// delivered for metric purposes.
func (o Order) Delivered() bool {
	return o.Status == OrderStatusDelivered && o.DeliveredAt != nil
}

// DeliveredLate reports whether delivery happened after the deadline.
func (o Order) DeliveredLate() bool {
	return o.Delivered() && o.DeliveredAt.After(o.Deadline)
}

type CreateOrderRequest struct {
	OrderNumber   string     `json:"order_number" binding:"required"`
	ClientID      *uuid.UUID `json:"client_id,omitempty"`
	WorkerID      *uuid.UUID `json:"worker_id,omitempty"`
	DocumentCount int        `json:"document_count" binding:"required,min=0"`
	UrgentCount   int        `json:"urgent_count"`
	Status        string     `json:"status"`
	AttributedAt  *time.Time `json:"attributed_at,omitempty"`
	DeliveredAt   *time.Time `json:"delivered_at,omitempty"`
	Deadline      time.Time  `json:"deadline" binding:"required"`
}

type BatchCreateOrdersRequest struct {
	Orders []CreateOrderRequest `json:"orders" binding:"required,min=1"`
}

type OrderFilter struct {
	WorkerID    *string    `form:"worker_id" json:"worker_id,omitempty"`
	ClientID    *string    `form:"client_id" json:"client_id,omitempty"`
	Status      *string    `form:"status" json:"status,omitempty"`
	OrderNumber *string    `form:"order_number" json:"order_number,omitempty"`
	StartTime   *time.Time `form:"start_time" json:"start_time,omitempty"`
	EndTime     *time.Time `form:"end_time" json:"end_time,omitempty"`
	Limit       int        `form:"limit" json:"limit"`
	Offset      int        `form:"offset" json:"offset"`
	Page        int        `form:"page" json:"page"`
	PerPage     int        `form:"per_page" json:"per_page"`
}

type OrderStats struct {
	TotalOrders    int `db:"total_orders" json:"total_orders"`
	TotalDocuments int `db:"total_documents" json:"total_documents"`
	UrgentOrders   int `db:"urgent_orders" json:"urgent_orders"`
	PendingCount   int `db:"pending_count" json:"pending_count"`
	InProgress     int `db:"in_progress_count" json:"in_progress_count"`
	Delivered      int `db:"delivered_count" json:"delivered_count"`
}

type OrderResponse struct {
	Data    *Order `json:"data"`
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}
