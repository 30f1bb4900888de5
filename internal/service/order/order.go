// internal/service/order_service.go
package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/imperia-dev/imperia-data-insight-sub000/internal/entity"
	"github.com/imperia-dev/imperia-data-insight-sub000/internal/repository"
)

type OrderService interface {
	CreateOrder(ctx context.Context, req entity.CreateOrderRequest) (*entity.Order, error)
	BatchCreateOrders(ctx context.Context, req entity.BatchCreateOrdersRequest) error
	GetOrderByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)
	GetOrders(ctx context.Context, filter entity.OrderFilter) ([]entity.Order, *entity.PaginationInfo, error)
	GetStats(ctx context.Context, filter entity.OrderFilter) (*entity.OrderStats, error)
	DeleteOrder(ctx context.Context, id uuid.UUID) error
	ValidateStatus(status string) bool
}

type orderService struct {
	repo repository.OrderRepository
}

func NewOrderService(repo repository.OrderRepository) OrderService {
	return &orderService{
		repo: repo,
	}
}

var validStatuses = map[string]bool{
	string(entity.OrderStatusPending):    true,
	string(entity.OrderStatusInProgress): true,
	string(entity.OrderStatusDelivered):  true,
}

func (s *orderService) CreateOrder(ctx context.Context, req entity.CreateOrderRequest) (*entity.Order, error) {
	order, err := s.buildOrder(req)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	return order, nil
}

func (s *orderService) BatchCreateOrders(ctx context.Context, req entity.BatchCreateOrdersRequest) error {
	if len(req.Orders) == 0 {
		return fmt.Errorf("no orders provided")
	}

	if len(req.Orders) > 1000 {
		return fmt.Errorf("too many orders, maximum is 1000")
	}

	var orders []entity.Order

	for i, orderReq := range req.Orders {
		order, err := s.buildOrder(orderReq)
		if err != nil {
			return fmt.Errorf("validation error at index %d: %w", i, err)
		}

		orders = append(orders, *order)
	}

	if err := s.repo.BatchCreate(ctx, orders); err != nil {
		return fmt.Errorf("failed to batch create orders: %w", err)
	}

	return nil
}

func (s *orderService) buildOrder(req entity.CreateOrderRequest) (*entity.Order, error) {
	status := req.Status
	if status == "" {
		status = string(entity.OrderStatusPending)
	}

	if !s.ValidateStatus(status) {
		return nil, fmt.Errorf("invalid status: %s", status)
	}

	if req.UrgentCount < 0 {
		return nil, fmt.Errorf("urgent_count cannot be negative")
	}

	if req.UrgentCount > req.DocumentCount {
		return nil, fmt.Errorf("urgent_count cannot exceed document_count")
	}

	if status == string(entity.OrderStatusDelivered) && req.DeliveredAt == nil {
		return nil, fmt.Errorf("delivered_at is required for delivered orders")
	}

	if req.DeliveredAt != nil && req.AttributedAt == nil {
		return nil, fmt.Errorf("attributed_at is required when delivered_at is set")
	}

	return &entity.Order{
		OrderNumber:   req.OrderNumber,
		ClientID:      req.ClientID,
		WorkerID:      req.WorkerID,
		DocumentCount: req.DocumentCount,
		UrgentCount:   req.UrgentCount,
		Status:        entity.OrderStatus(status),
		AttributedAt:  req.AttributedAt,
		DeliveredAt:   req.DeliveredAt,
		Deadline:      req.Deadline,
	}, nil
}

func (s *orderService) GetOrderByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	order, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	if order == nil {
		return nil, fmt.Errorf("order not found")
	}

	return order, nil
}

func (s *orderService) GetOrders(ctx context.Context, filter entity.OrderFilter) ([]entity.Order, *entity.PaginationInfo, error) {
	if filter.Page > 0 && filter.PerPage > 0 {
		if filter.PerPage > 1000 {
			filter.PerPage = 1000
		}
		if filter.Page < 1 {
			filter.Page = 1
		}
	} else {
		if filter.Limit <= 0 {
			filter.Limit = 100
		}
		if filter.Limit > 1000 {
			filter.Limit = 1000
		}
	}

	orders, err := s.repo.GetByFilter(ctx, filter)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get orders: %w", err)
	}

	var paginationInfo *entity.PaginationInfo
	if filter.Page > 0 && filter.PerPage > 0 {
		total, err := s.repo.CountByFilter(ctx, filter)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to count orders: %w", err)
		}

		totalPages := (total + filter.PerPage - 1) / filter.PerPage
		paginationInfo = &entity.PaginationInfo{
			Page:       filter.Page,
			PerPage:    filter.PerPage,
			Total:      total,
			TotalPages: totalPages,
		}
	}

	return orders, paginationInfo, nil
}

func (s *orderService) GetStats(ctx context.Context, filter entity.OrderFilter) (*entity.OrderStats, error) {
	stats, err := s.repo.GetStats(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to get stats: %w", err)
	}

	return stats, nil
}

func (s *orderService) DeleteOrder(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete order: %w", err)
	}

	return nil
}

func (s *orderService) ValidateStatus(status string) bool {
	return validStatuses[status]
}
