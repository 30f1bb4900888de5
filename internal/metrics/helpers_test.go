package metrics

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/imperia-dev/imperia-data-insight-sub000/internal/entity"
)

func tp(t time.Time) *time.Time { return &t }

var testWorkerID = uuid.MustParse("6f1c9a4e-0c26-4d6b-9f3d-6a3dfd6f2a01")

type orderOpt func(*entity.Order)

func withWorker(o *entity.Order)   { o.WorkerID = &testWorkerID }
func withUrgent(n int) orderOpt    { return func(o *entity.Order) { o.UrgentCount = n } }
func withNumber(n string) orderOpt { return func(o *entity.Order) { o.OrderNumber = n } }

var orderSeq int

// mkOrder builds a delivered or in-progress order with sane defaults;
// nil instants model the record not having reached that state.
func mkOrder(status entity.OrderStatus, docs int, created, attributed, delivered *time.Time, deadline time.Time, opts ...orderOpt) entity.Order {
	orderSeq++
	o := entity.Order{
		ID:            uuid.New(),
		OrderNumber:   fmt.Sprintf("ORD-%04d", orderSeq),
		DocumentCount: docs,
		Status:        status,
		CreatedAt:     created,
		AttributedAt:  attributed,
		DeliveredAt:   delivered,
		Deadline:      deadline,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// mkDelivery is the short form for trend tests: one delivered order of
// docs documents at the given instant, attributed two hours earlier.
func mkDelivery(docs int, deliveredAt time.Time) entity.Order {
	return mkOrder(
		entity.OrderStatusDelivered, docs,
		tp(deliveredAt.Add(-3*time.Hour)),
		tp(deliveredAt.Add(-2*time.Hour)),
		tp(deliveredAt),
		deliveredAt.Add(24*time.Hour),
		withWorker,
	)
}

func mkPendency(errorType entity.ErrorType, createdAt time.Time) entity.Pendency {
	return entity.Pendency{
		ID:        uuid.New(),
		ErrorType: errorType,
		Status:    entity.PendencyStatusOpen,
		CreatedAt: createdAt,
	}
}
