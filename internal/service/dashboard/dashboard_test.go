package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imperia-dev/imperia-data-insight-sub000/internal/entity"
	"github.com/imperia-dev/imperia-data-insight-sub000/internal/metrics"
)

type stubOrderRepo struct {
	orders []entity.Order
	err    error
}

func (s *stubOrderRepo) Create(ctx context.Context, order *entity.Order) error        { return nil }
func (s *stubOrderRepo) BatchCreate(ctx context.Context, orders []entity.Order) error { return nil }

func (s *stubOrderRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	return nil, nil
}

func (s *stubOrderRepo) GetByFilter(ctx context.Context, filter entity.OrderFilter) ([]entity.Order, error) {
	return s.orders, nil
}

func (s *stubOrderRepo) CountByFilter(ctx context.Context, filter entity.OrderFilter) (int, error) {
	return len(s.orders), nil
}

func (s *stubOrderRepo) GetByWindow(ctx context.Context, window entity.Window) ([]entity.Order, error) {
	return s.orders, s.err
}

func (s *stubOrderRepo) GetByWorker(ctx context.Context, workerID string) ([]entity.Order, error) {
	return s.orders, s.err
}

func (s *stubOrderRepo) GetWorkerIDs(ctx context.Context) ([]string, error) { return nil, nil }

func (s *stubOrderRepo) GetStats(ctx context.Context, filter entity.OrderFilter) (*entity.OrderStats, error) {
	return nil, nil
}

func (s *stubOrderRepo) Delete(ctx context.Context, id uuid.UUID) error { return nil }

type stubPendencyRepo struct {
	pendencies []entity.Pendency
}

func (s *stubPendencyRepo) Create(ctx context.Context, pendency *entity.Pendency) error { return nil }

func (s *stubPendencyRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Pendency, error) {
	return nil, nil
}

func (s *stubPendencyRepo) GetByFilter(ctx context.Context, filter entity.PendencyFilter) ([]entity.Pendency, error) {
	return s.pendencies, nil
}

func (s *stubPendencyRepo) GetByWindow(ctx context.Context, window entity.Window) ([]entity.Pendency, error) {
	return s.pendencies, nil
}

func (s *stubPendencyRepo) Resolve(ctx context.Context, id uuid.UUID) error { return nil }
func (s *stubPendencyRepo) Delete(ctx context.Context, id uuid.UUID) error  { return nil }

// memoryCache is an in-process stand-in for the Redis service.
type memoryCache struct {
	data map[string][]byte
}

func newMemoryCache() *memoryCache {
	return &memoryCache{data: make(map[string][]byte)}
}

func (m *memoryCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.data[key] = raw
	return nil
}

func (m *memoryCache) Get(ctx context.Context, key string, dest interface{}) error {
	raw, ok := m.data[key]
	if !ok {
		return errors.New("cache miss")
	}
	return json.Unmarshal(raw, dest)
}

func (m *memoryCache) Delete(ctx context.Context, key string) error {
	delete(m.data, key)
	return nil
}

func (m *memoryCache) Exists(ctx context.Context, key string) (bool, error) {
	_, ok := m.data[key]
	return ok, nil
}

func (m *memoryCache) SetExpire(ctx context.Context, key string, ttl time.Duration) error { return nil }

func (m *memoryCache) GetTTL(ctx context.Context, key string) (time.Duration, error) { return 0, nil }

func (m *memoryCache) CheckRateLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	return true, nil
}

func (m *memoryCache) CacheSnapshot(ctx context.Context, cacheKey string, data interface{}, ttl time.Duration) error {
	return m.Set(ctx, "snapshot:"+cacheKey, data, ttl)
}

func (m *memoryCache) GetSnapshot(ctx context.Context, cacheKey string, dest interface{}) error {
	return m.Get(ctx, "snapshot:"+cacheKey, dest)
}

func (m *memoryCache) InvalidateSnapshots(ctx context.Context) error {
	for key := range m.data {
		delete(m.data, key)
	}
	return nil
}

func (m *memoryCache) CacheQualityFeed(ctx context.Context, data interface{}, ttl time.Duration) error {
	return m.Set(ctx, "quality_feed:latest", data, ttl)
}

func (m *memoryCache) GetQualityFeed(ctx context.Context, dest interface{}) error {
	return m.Get(ctx, "quality_feed:latest", dest)
}

func (m *memoryCache) Keys(ctx context.Context, pattern string) ([]string, error) { return nil, nil }
func (m *memoryCache) Health(ctx context.Context) error                           { return nil }
func (m *memoryCache) Close() error                                               { return nil }

func recentOrders() []entity.Order {
	workerID := uuid.New()
	created := time.Now().Add(-3 * time.Minute)
	attributed := time.Now().Add(-2 * time.Minute)
	delivered := time.Now().Add(-1 * time.Minute)
	deadline := time.Now().Add(24 * time.Hour)

	return []entity.Order{
		{
			ID:            uuid.New(),
			OrderNumber:   "PED-2001",
			WorkerID:      &workerID,
			DocumentCount: 5,
			UrgentCount:   2,
			Status:        entity.OrderStatusDelivered,
			CreatedAt:     &created,
			AttributedAt:  &attributed,
			DeliveredAt:   &delivered,
			Deadline:      deadline,
		},
		{
			ID:            uuid.New(),
			OrderNumber:   "PED-2002",
			DocumentCount: 3,
			Status:        entity.OrderStatusPending,
			CreatedAt:     &created,
			Deadline:      deadline,
		},
	}
}

func TestGetSnapshotComputesTotals(t *testing.T) {
	orderRepo := &stubOrderRepo{orders: recentOrders()}
	pendencyRepo := &stubPendencyRepo{pendencies: []entity.Pendency{
		{ID: uuid.New(), ErrorType: entity.ErrorTypeTranslation, Status: entity.PendencyStatusOpen, CreatedAt: time.Now().Add(-time.Minute)},
	}}

	srv := NewDashboardService(orderRepo, pendencyRepo, nil, metrics.RatePolicy{})

	snapshot, err := srv.GetSnapshot(context.Background(), entity.PeriodMonth, nil)

	require.NoError(t, err)
	assert.Equal(t, entity.PeriodMonth, snapshot.Period)
	assert.Equal(t, 8, snapshot.Totals.CreatedDocuments)
	assert.Equal(t, 5, snapshot.Totals.DeliveredDocuments)
	assert.Equal(t, 2, snapshot.Totals.UrgentDocuments)
	assert.Equal(t, 1, snapshot.Totals.PendencyCount)
	assert.Equal(t, 25.0, snapshot.Rates.UrgencyRate)
	assert.Equal(t, 100.0, snapshot.Rates.OnTimeRate)
	assert.NotEmpty(t, snapshot.Buckets)
}

func TestGetSnapshotServesFromCache(t *testing.T) {
	orderRepo := &stubOrderRepo{orders: recentOrders()}
	cache := newMemoryCache()

	srv := NewDashboardService(orderRepo, &stubPendencyRepo{}, cache, metrics.RatePolicy{})

	first, err := srv.GetSnapshot(context.Background(), entity.PeriodMonth, nil)
	require.NoError(t, err)

	// New rows must not show up until the cache entry is replaced.
	orderRepo.orders = nil

	second, err := srv.GetSnapshot(context.Background(), entity.PeriodMonth, nil)
	require.NoError(t, err)
	assert.Equal(t, first.Totals, second.Totals)
}

func TestRefreshSnapshotBypassesCache(t *testing.T) {
	orderRepo := &stubOrderRepo{orders: recentOrders()}
	cache := newMemoryCache()

	srv := NewDashboardService(orderRepo, &stubPendencyRepo{}, cache, metrics.RatePolicy{})

	_, err := srv.GetSnapshot(context.Background(), entity.PeriodMonth, nil)
	require.NoError(t, err)

	orderRepo.orders = nil

	refreshed, err := srv.RefreshSnapshot(context.Background(), entity.PeriodMonth)
	require.NoError(t, err)
	assert.Equal(t, 0, refreshed.Totals.CreatedDocuments)

	cached, err := srv.GetSnapshot(context.Background(), entity.PeriodMonth, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, cached.Totals.CreatedDocuments)
}

func TestGetSnapshotRepoError(t *testing.T) {
	orderRepo := &stubOrderRepo{err: errors.New("connection refused")}

	srv := NewDashboardService(orderRepo, &stubPendencyRepo{}, nil, metrics.RatePolicy{})

	_, err := srv.GetSnapshot(context.Background(), entity.PeriodDay, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load orders")
}
