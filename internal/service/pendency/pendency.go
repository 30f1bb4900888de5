// internal/service/pendency_service.go
package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/imperia-dev/imperia-data-insight-sub000/internal/entity"
	"github.com/imperia-dev/imperia-data-insight-sub000/internal/repository"
)

type PendencyService interface {
	CreatePendency(ctx context.Context, req entity.CreatePendencyRequest) (*entity.Pendency, error)
	GetPendencyByID(ctx context.Context, id uuid.UUID) (*entity.Pendency, error)
	GetPendencies(ctx context.Context, filter entity.PendencyFilter) ([]entity.Pendency, error)
	ResolvePendency(ctx context.Context, id uuid.UUID) error
	DeletePendency(ctx context.Context, id uuid.UUID) error
}

type pendencyService struct {
	repo      repository.PendencyRepository
	orderRepo repository.OrderRepository
}

func NewPendencyService(repo repository.PendencyRepository, orderRepo repository.OrderRepository) PendencyService {
	return &pendencyService{
		repo:      repo,
		orderRepo: orderRepo,
	}
}

func (s *pendencyService) CreatePendency(ctx context.Context, req entity.CreatePendencyRequest) (*entity.Pendency, error) {
	if req.ErrorType == "" {
		return nil, fmt.Errorf("error_type is required")
	}

	if req.OrderID != nil {
		order, err := s.orderRepo.GetByID(ctx, *req.OrderID)
		if err != nil {
			return nil, fmt.Errorf("failed to check order existence: %w", err)
		}
		if order == nil {
			return nil, fmt.Errorf("order not found")
		}
	}

	pendency := &entity.Pendency{
		OrderID:   req.OrderID,
		ErrorType: entity.ErrorType(req.ErrorType),
		Details:   req.Details,
		Status:    entity.PendencyStatusOpen,
	}

	if err := s.repo.Create(ctx, pendency); err != nil {
		return nil, fmt.Errorf("failed to create pendency: %w", err)
	}

	pendency.ErrorTypeLabel = pendency.ErrorType.Label()
	return pendency, nil
}

func (s *pendencyService) GetPendencyByID(ctx context.Context, id uuid.UUID) (*entity.Pendency, error) {
	pendency, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get pendency: %w", err)
	}

	if pendency == nil {
		return nil, fmt.Errorf("pendency not found")
	}

	pendency.ErrorTypeLabel = pendency.ErrorType.Label()
	return pendency, nil
}

func (s *pendencyService) GetPendencies(ctx context.Context, filter entity.PendencyFilter) ([]entity.Pendency, error) {
	if filter.Limit <= 0 {
		filter.Limit = 100
	}
	if filter.Limit > 1000 {
		filter.Limit = 1000
	}

	pendencies, err := s.repo.GetByFilter(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to get pendencies: %w", err)
	}

	for i := range pendencies {
		pendencies[i].ErrorTypeLabel = pendencies[i].ErrorType.Label()
	}
	return pendencies, nil
}

func (s *pendencyService) ResolvePendency(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Resolve(ctx, id); err != nil {
		return fmt.Errorf("failed to resolve pendency: %w", err)
	}

	return nil
}

func (s *pendencyService) DeletePendency(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete pendency: %w", err)
	}

	return nil
}
