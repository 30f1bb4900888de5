package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imperia-dev/imperia-data-insight-sub000/internal/entity"
)

type stubPendencyRepo struct {
	created  []entity.Pendency
	byID     *entity.Pendency
	listed   []entity.Pendency
	resolved []uuid.UUID
}

func (s *stubPendencyRepo) Create(ctx context.Context, pendency *entity.Pendency) error {
	s.created = append(s.created, *pendency)
	return nil
}

func (s *stubPendencyRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Pendency, error) {
	return s.byID, nil
}

func (s *stubPendencyRepo) GetByFilter(ctx context.Context, filter entity.PendencyFilter) ([]entity.Pendency, error) {
	return s.listed, nil
}

func (s *stubPendencyRepo) GetByWindow(ctx context.Context, window entity.Window) ([]entity.Pendency, error) {
	return nil, nil
}

func (s *stubPendencyRepo) Resolve(ctx context.Context, id uuid.UUID) error {
	s.resolved = append(s.resolved, id)
	return nil
}

func (s *stubPendencyRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return nil
}

type stubOrderLookup struct {
	order *entity.Order
}

func (s *stubOrderLookup) Create(ctx context.Context, order *entity.Order) error      { return nil }
func (s *stubOrderLookup) BatchCreate(ctx context.Context, orders []entity.Order) error { return nil }

func (s *stubOrderLookup) GetByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	return s.order, nil
}

func (s *stubOrderLookup) GetByFilter(ctx context.Context, filter entity.OrderFilter) ([]entity.Order, error) {
	return nil, nil
}

func (s *stubOrderLookup) CountByFilter(ctx context.Context, filter entity.OrderFilter) (int, error) {
	return 0, nil
}

func (s *stubOrderLookup) GetByWindow(ctx context.Context, window entity.Window) ([]entity.Order, error) {
	return nil, nil
}

func (s *stubOrderLookup) GetByWorker(ctx context.Context, workerID string) ([]entity.Order, error) {
	return nil, nil
}

func (s *stubOrderLookup) GetWorkerIDs(ctx context.Context) ([]string, error) { return nil, nil }

func (s *stubOrderLookup) GetStats(ctx context.Context, filter entity.OrderFilter) (*entity.OrderStats, error) {
	return nil, nil
}

func (s *stubOrderLookup) Delete(ctx context.Context, id uuid.UUID) error { return nil }

func TestCreatePendencyRequiresErrorType(t *testing.T) {
	srv := NewPendencyService(&stubPendencyRepo{}, &stubOrderLookup{})

	_, err := srv.CreatePendency(context.Background(), entity.CreatePendencyRequest{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error_type is required")
}

func TestCreatePendencyChecksOrderExistence(t *testing.T) {
	srv := NewPendencyService(&stubPendencyRepo{}, &stubOrderLookup{})

	orderID := uuid.New()
	_, err := srv.CreatePendency(context.Background(), entity.CreatePendencyRequest{
		OrderID:   &orderID,
		ErrorType: string(entity.ErrorTypeTranslation),
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "order not found")
}

func TestCreatePendencyOpensWithOrderLinked(t *testing.T) {
	orderID := uuid.New()
	repo := &stubPendencyRepo{}
	srv := NewPendencyService(repo, &stubOrderLookup{order: &entity.Order{ID: orderID}})

	pendency, err := srv.CreatePendency(context.Background(), entity.CreatePendencyRequest{
		OrderID:   &orderID,
		ErrorType: string(entity.ErrorTypeNotError),
	})

	require.NoError(t, err)
	assert.Equal(t, entity.PendencyStatusOpen, pendency.Status)
	assert.Equal(t, entity.ErrorTypeNotError, pendency.ErrorType)
	assert.Equal(t, "Não é erro", pendency.ErrorTypeLabel)
	require.Len(t, repo.created, 1)
}

func TestCreatePendencyUnknownErrorTypePassesRawLabel(t *testing.T) {
	repo := &stubPendencyRepo{}
	srv := NewPendencyService(repo, &stubOrderLookup{})

	pendency, err := srv.CreatePendency(context.Background(), entity.CreatePendencyRequest{
		ErrorType: "erro_de_layout",
	})

	require.NoError(t, err)
	assert.Equal(t, "erro_de_layout", pendency.ErrorTypeLabel)
}

func TestGetPendenciesFillsLabels(t *testing.T) {
	repo := &stubPendencyRepo{listed: []entity.Pendency{
		{ID: uuid.New(), ErrorType: entity.ErrorTypeTranslation},
		{ID: uuid.New(), ErrorType: entity.ErrorTypeTypo},
	}}
	srv := NewPendencyService(repo, &stubOrderLookup{})

	pendencies, err := srv.GetPendencies(context.Background(), entity.PendencyFilter{})

	require.NoError(t, err)
	require.Len(t, pendencies, 2)
	assert.Equal(t, "Erro de tradução", pendencies[0].ErrorTypeLabel)
	assert.Equal(t, "Erro de digitação", pendencies[1].ErrorTypeLabel)
}

func TestCreatePendencyWithoutOrder(t *testing.T) {
	repo := &stubPendencyRepo{}
	srv := NewPendencyService(repo, &stubOrderLookup{})

	pendency, err := srv.CreatePendency(context.Background(), entity.CreatePendencyRequest{
		ErrorType: string(entity.ErrorTypeOmission),
	})

	require.NoError(t, err)
	assert.Nil(t, pendency.OrderID)
}

func TestGetPendencyByIDNotFound(t *testing.T) {
	srv := NewPendencyService(&stubPendencyRepo{}, &stubOrderLookup{})

	_, err := srv.GetPendencyByID(context.Background(), uuid.New())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pendency not found")
}

func TestResolvePendency(t *testing.T) {
	repo := &stubPendencyRepo{}
	srv := NewPendencyService(repo, &stubOrderLookup{})

	id := uuid.New()
	require.NoError(t, srv.ResolvePendency(context.Background(), id))
	require.Len(t, repo.resolved, 1)
	assert.Equal(t, id, repo.resolved[0])
}
