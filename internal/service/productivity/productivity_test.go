package productivity

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imperia-dev/imperia-data-insight-sub000/internal/entity"
)

type stubOrderRepo struct {
	byWorker map[string][]entity.Order
	err      error
}

func (s *stubOrderRepo) Create(ctx context.Context, order *entity.Order) error        { return nil }
func (s *stubOrderRepo) BatchCreate(ctx context.Context, orders []entity.Order) error { return nil }

func (s *stubOrderRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	return nil, nil
}

func (s *stubOrderRepo) GetByFilter(ctx context.Context, filter entity.OrderFilter) ([]entity.Order, error) {
	return nil, nil
}

func (s *stubOrderRepo) CountByFilter(ctx context.Context, filter entity.OrderFilter) (int, error) {
	return 0, nil
}

func (s *stubOrderRepo) GetByWindow(ctx context.Context, window entity.Window) ([]entity.Order, error) {
	return nil, nil
}

func (s *stubOrderRepo) GetByWorker(ctx context.Context, workerID string) ([]entity.Order, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.byWorker[workerID], nil
}

func (s *stubOrderRepo) GetWorkerIDs(ctx context.Context) ([]string, error) {
	ids := make([]string, 0, len(s.byWorker))
	for id := range s.byWorker {
		ids = append(ids, id)
	}
	return ids, nil
}

func (s *stubOrderRepo) GetStats(ctx context.Context, filter entity.OrderFilter) (*entity.OrderStats, error) {
	return nil, nil
}

func (s *stubOrderRepo) Delete(ctx context.Context, id uuid.UUID) error { return nil }

func deliveredOrder(docs, urgent int, deliveredAgo time.Duration) entity.Order {
	attributed := time.Now().Add(-deliveredAgo - 2*time.Hour)
	delivered := time.Now().Add(-deliveredAgo)
	return entity.Order{
		ID:            uuid.New(),
		DocumentCount: docs,
		UrgentCount:   urgent,
		Status:        entity.OrderStatusDelivered,
		AttributedAt:  &attributed,
		DeliveredAt:   &delivered,
		Deadline:      time.Now().Add(24 * time.Hour),
	}
}

func inProgressOrder() entity.Order {
	attributed := time.Now().Add(-time.Hour)
	return entity.Order{
		ID:            uuid.New(),
		DocumentCount: 4,
		Status:        entity.OrderStatusInProgress,
		AttributedAt:  &attributed,
		Deadline:      time.Now().Add(24 * time.Hour),
	}
}

func TestGetWorkerProductivityValidation(t *testing.T) {
	srv := NewProductivityService(&stubOrderRepo{})

	_, err := srv.GetWorkerProductivity(context.Background(), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "worker ID is required")

	_, err = srv.GetWorkerProductivity(context.Background(), "not-a-uuid")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid worker ID")
}

func TestGetWorkerProductivityRollup(t *testing.T) {
	workerID := uuid.New().String()
	repo := &stubOrderRepo{byWorker: map[string][]entity.Order{
		workerID: {
			deliveredOrder(3, 1, 48*time.Hour),
			deliveredOrder(2, 0, 24*time.Hour),
			inProgressOrder(),
		},
	}}
	srv := NewProductivityService(repo)

	stats, err := srv.GetWorkerProductivity(context.Background(), workerID)

	require.NoError(t, err)
	assert.Equal(t, workerID, stats.WorkerID)
	assert.Equal(t, 5, stats.TotalDocuments)
	assert.Equal(t, 2, stats.OrdersDelivered)
	assert.Equal(t, 3, stats.OrdersAssigned)
	assert.Equal(t, 1, stats.UrgentCompleted)
	assert.Equal(t, 66.7, stats.CompletionRate)
	require.NotNil(t, stats.FirstDeliveryAt)
	require.NotNil(t, stats.LastDeliveryAt)
}

func TestGetWorkerProductivityNoDeliveries(t *testing.T) {
	workerID := uuid.New().String()
	srv := NewProductivityService(&stubOrderRepo{byWorker: map[string][]entity.Order{}})

	stats, err := srv.GetWorkerProductivity(context.Background(), workerID)

	require.NoError(t, err)
	assert.Equal(t, 0, stats.TotalDocuments)
	assert.Equal(t, entity.TrendStable, stats.Trend)
	assert.Equal(t, 9, stats.Pattern.TypicalStartHour)
	assert.Equal(t, 18, stats.Pattern.TypicalEndHour)
}

func TestGetAllWorkersProductivitySortedByVolume(t *testing.T) {
	busy := uuid.New().String()
	idle := uuid.New().String()
	repo := &stubOrderRepo{byWorker: map[string][]entity.Order{
		busy: {deliveredOrder(10, 0, 24*time.Hour)},
		idle: {deliveredOrder(4, 0, 24*time.Hour)},
	}}
	srv := NewProductivityService(repo)

	results, err := srv.GetAllWorkersProductivity(context.Background())

	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, busy, results[0].WorkerID)
	assert.Equal(t, 10, results[0].TotalDocuments)
	assert.Equal(t, idle, results[1].WorkerID)
}

func TestGetAllWorkersProductivityPropagatesError(t *testing.T) {
	repo := &stubOrderRepo{
		byWorker: map[string][]entity.Order{uuid.New().String(): nil},
		err:      errors.New("connection refused"),
	}
	srv := NewProductivityService(repo)

	_, err := srv.GetAllWorkersProductivity(context.Background())
	require.Error(t, err)
}
