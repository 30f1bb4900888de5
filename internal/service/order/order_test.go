package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imperia-dev/imperia-data-insight-sub000/internal/entity"
)

type stubOrderRepo struct {
	created []entity.Order
	byID    *entity.Order
	orders  []entity.Order
	total   int
}

func (s *stubOrderRepo) Create(ctx context.Context, order *entity.Order) error {
	s.created = append(s.created, *order)
	return nil
}

func (s *stubOrderRepo) BatchCreate(ctx context.Context, orders []entity.Order) error {
	s.created = append(s.created, orders...)
	return nil
}

func (s *stubOrderRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	return s.byID, nil
}

func (s *stubOrderRepo) GetByFilter(ctx context.Context, filter entity.OrderFilter) ([]entity.Order, error) {
	return s.orders, nil
}

func (s *stubOrderRepo) CountByFilter(ctx context.Context, filter entity.OrderFilter) (int, error) {
	return s.total, nil
}

func (s *stubOrderRepo) GetByWindow(ctx context.Context, window entity.Window) ([]entity.Order, error) {
	return s.orders, nil
}

func (s *stubOrderRepo) GetByWorker(ctx context.Context, workerID string) ([]entity.Order, error) {
	return s.orders, nil
}

func (s *stubOrderRepo) GetWorkerIDs(ctx context.Context) ([]string, error) {
	return nil, nil
}

func (s *stubOrderRepo) GetStats(ctx context.Context, filter entity.OrderFilter) (*entity.OrderStats, error) {
	return &entity.OrderStats{}, nil
}

func (s *stubOrderRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return nil
}

func validOrderRequest() entity.CreateOrderRequest {
	return entity.CreateOrderRequest{
		OrderNumber:   "PED-1001",
		DocumentCount: 5,
		Deadline:      time.Now().Add(48 * time.Hour),
	}
}

func TestCreateOrderDefaultsToPending(t *testing.T) {
	repo := &stubOrderRepo{}
	srv := NewOrderService(repo)

	order, err := srv.CreateOrder(context.Background(), validOrderRequest())

	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusPending, order.Status)
	require.Len(t, repo.created, 1)
}

func TestCreateOrderRejectsInvalidStatus(t *testing.T) {
	srv := NewOrderService(&stubOrderRepo{})

	req := validOrderRequest()
	req.Status = "shipped"

	_, err := srv.CreateOrder(context.Background(), req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid status")
}

func TestCreateOrderRejectsUrgentAboveTotal(t *testing.T) {
	srv := NewOrderService(&stubOrderRepo{})

	req := validOrderRequest()
	req.UrgentCount = 6

	_, err := srv.CreateOrder(context.Background(), req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "urgent_count cannot exceed document_count")
}

func TestCreateOrderDeliveredRequiresTimestamps(t *testing.T) {
	srv := NewOrderService(&stubOrderRepo{})

	req := validOrderRequest()
	req.Status = string(entity.OrderStatusDelivered)

	_, err := srv.CreateOrder(context.Background(), req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "delivered_at is required")

	delivered := time.Now()
	req.DeliveredAt = &delivered

	_, err = srv.CreateOrder(context.Background(), req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "attributed_at is required")
}

func TestBatchCreateOrdersLimits(t *testing.T) {
	srv := NewOrderService(&stubOrderRepo{})

	err := srv.BatchCreateOrders(context.Background(), entity.BatchCreateOrdersRequest{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no orders provided")

	tooMany := make([]entity.CreateOrderRequest, 1001)
	for i := range tooMany {
		tooMany[i] = validOrderRequest()
	}
	err = srv.BatchCreateOrders(context.Background(), entity.BatchCreateOrdersRequest{Orders: tooMany})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "maximum is 1000")
}

func TestBatchCreateOrdersReportsFailingIndex(t *testing.T) {
	repo := &stubOrderRepo{}
	srv := NewOrderService(repo)

	bad := validOrderRequest()
	bad.UrgentCount = 99

	err := srv.BatchCreateOrders(context.Background(), entity.BatchCreateOrdersRequest{
		Orders: []entity.CreateOrderRequest{validOrderRequest(), bad},
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "index 1")
	assert.Empty(t, repo.created)
}

func TestGetOrderByIDNotFound(t *testing.T) {
	srv := NewOrderService(&stubOrderRepo{})

	_, err := srv.GetOrderByID(context.Background(), uuid.New())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "order not found")
}

func TestGetOrdersPagination(t *testing.T) {
	repo := &stubOrderRepo{total: 25}
	srv := NewOrderService(repo)

	_, info, err := srv.GetOrders(context.Background(), entity.OrderFilter{Page: 2, PerPage: 10})

	require.NoError(t, err)
	require.NotNil(t, info)
	assert.Equal(t, 2, info.Page)
	assert.Equal(t, 10, info.PerPage)
	assert.Equal(t, 25, info.Total)
	assert.Equal(t, 3, info.TotalPages)
}

func TestGetOrdersWithoutPaginationParams(t *testing.T) {
	srv := NewOrderService(&stubOrderRepo{})

	_, info, err := srv.GetOrders(context.Background(), entity.OrderFilter{})

	require.NoError(t, err)
	assert.Nil(t, info)
}
