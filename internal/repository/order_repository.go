// internal/repository/order_repository.go
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/imperia-dev/imperia-data-insight-sub000/internal/entity"
)

type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	BatchCreate(ctx context.Context, orders []entity.Order) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)
	GetByFilter(ctx context.Context, filter entity.OrderFilter) ([]entity.Order, error)
	CountByFilter(ctx context.Context, filter entity.OrderFilter) (int, error)
	GetByWindow(ctx context.Context, window entity.Window) ([]entity.Order, error)
	GetByWorker(ctx context.Context, workerID string) ([]entity.Order, error)
	GetWorkerIDs(ctx context.Context) ([]string, error)
	GetStats(ctx context.Context, filter entity.OrderFilter) (*entity.OrderStats, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type orderRepository struct {
	db *sqlx.DB
}

func NewOrderRepository(db *sqlx.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) Create(ctx context.Context, order *entity.Order) error {
	order.ID = uuid.New()
	now := time.Now()
	if order.CreatedAt == nil {
		order.CreatedAt = &now
	}
	order.UpdatedAt = &now

	query := `
		INSERT INTO orders (id, order_number, client_id, worker_id, document_count, urgent_count, status, created_at, attributed_at, delivered_at, deadline, updated_at)
		VALUES (:id, :order_number, :client_id, :worker_id, :document_count, :urgent_count, :status, :created_at, :attributed_at, :delivered_at, :deadline, :updated_at)`

	_, err := r.db.NamedExecContext(ctx, query, order)
	return err
}

func (r *orderRepository) BatchCreate(ctx context.Context, orders []entity.Order) error {
	if len(orders) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
		INSERT INTO orders (id, order_number, client_id, worker_id, document_count, urgent_count, status, created_at, attributed_at, delivered_at, deadline, updated_at)
		VALUES (:id, :order_number, :client_id, :worker_id, :document_count, :urgent_count, :status, :created_at, :attributed_at, :delivered_at, :deadline, :updated_at)`

	now := time.Now()
	for i := range orders {
		orders[i].ID = uuid.New()
		if orders[i].CreatedAt == nil {
			orders[i].CreatedAt = &now
		}
		orders[i].UpdatedAt = &now
	}

	_, err = tx.NamedExecContext(ctx, query, orders)
	if err != nil {
		return err
	}

	return tx.Commit()
}

func (r *orderRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	var order entity.Order
	query := `SELECT * FROM orders WHERE id = $1`

	err := r.db.GetContext(ctx, &order, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &order, nil
}

func (r *orderRepository) GetByFilter(ctx context.Context, filter entity.OrderFilter) ([]entity.Order, error) {
	var orders []entity.Order

	whereClause, args := r.buildWhereClause(filter)
	argIndex := len(args) + 1

	query := "SELECT * FROM orders" + whereClause + " ORDER BY created_at DESC"

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argIndex)
		args = append(args, filter.Limit)
		argIndex++
	}

	if filter.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", argIndex)
		args = append(args, filter.Offset)
	}

	err := r.db.SelectContext(ctx, &orders, query, args...)
	return orders, err
}

func (r *orderRepository) CountByFilter(ctx context.Context, filter entity.OrderFilter) (int, error) {
	whereClause, args := r.buildWhereClause(filter)

	var total int
	err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM orders"+whereClause, args...)
	return total, err
}

// GetByWindow returns every order touching the reporting window: a row
// qualifies when any of its lifecycle instants falls inside. The engine
// re-filters per metric, so over-fetching here is harmless while
// under-fetching would silently drop records from some aggregations.
func (r *orderRepository) GetByWindow(ctx context.Context, window entity.Window) ([]entity.Order, error) {
	var orders []entity.Order

	query := `
		SELECT * FROM orders
		WHERE (created_at >= $1 AND created_at <= $2)
		   OR (attributed_at >= $1 AND attributed_at <= $2)
		   OR (delivered_at >= $1 AND delivered_at <= $2)
		   OR (status = 'in_progress' AND deadline <= $2)
		ORDER BY created_at`

	err := r.db.SelectContext(ctx, &orders, query, window.Start, window.End)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch orders for window: %w", err)
	}
	return orders, nil
}

func (r *orderRepository) GetByWorker(ctx context.Context, workerID string) ([]entity.Order, error) {
	var orders []entity.Order

	query := `
		SELECT * FROM orders
		WHERE worker_id = $1 AND status IN ('delivered', 'in_progress')
		ORDER BY attributed_at`

	err := r.db.SelectContext(ctx, &orders, query, workerID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch orders for worker: %w", err)
	}
	return orders, nil
}

func (r *orderRepository) GetWorkerIDs(ctx context.Context) ([]string, error) {
	var ids []string

	query := `SELECT DISTINCT worker_id::text FROM orders WHERE worker_id IS NOT NULL`

	err := r.db.SelectContext(ctx, &ids, query)
	return ids, err
}

func (r *orderRepository) GetStats(ctx context.Context, filter entity.OrderFilter) (*entity.OrderStats, error) {
	whereClause, args := r.buildWhereClause(filter)

	query := `
		SELECT
			COUNT(*) as total_orders,
			COALESCE(SUM(document_count), 0) as total_documents,
			COUNT(*) FILTER (WHERE urgent_count > 0) as urgent_orders,
			COUNT(*) FILTER (WHERE status = 'pending') as pending_count,
			COUNT(*) FILTER (WHERE status = 'in_progress') as in_progress_count,
			COUNT(*) FILTER (WHERE status = 'delivered') as delivered_count
		FROM orders` + whereClause

	var stats entity.OrderStats
	err := r.db.GetContext(ctx, &stats, query, args...)
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

func (r *orderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := "DELETE FROM orders WHERE id = $1"
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return sql.ErrNoRows
	}

	return nil
}

func (r *orderRepository) buildWhereClause(filter entity.OrderFilter) (string, []interface{}) {
	var conditions []string
	var args []interface{}
	argIndex := 1

	if filter.WorkerID != nil {
		conditions = append(conditions, fmt.Sprintf("worker_id = $%d", argIndex))
		args = append(args, *filter.WorkerID)
		argIndex++
	}

	if filter.ClientID != nil {
		conditions = append(conditions, fmt.Sprintf("client_id = $%d", argIndex))
		args = append(args, *filter.ClientID)
		argIndex++
	}

	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argIndex))
		args = append(args, *filter.Status)
		argIndex++
	}

	if filter.OrderNumber != nil {
		conditions = append(conditions, fmt.Sprintf("order_number ILIKE $%d", argIndex))
		args = append(args, "%"+*filter.OrderNumber+"%")
		argIndex++
	}

	if filter.StartTime != nil {
		conditions = append(conditions, fmt.Sprintf("created_at >= $%d", argIndex))
		args = append(args, *filter.StartTime)
		argIndex++
	}

	if filter.EndTime != nil {
		conditions = append(conditions, fmt.Sprintf("created_at <= $%d", argIndex))
		args = append(args, *filter.EndTime)
		argIndex++
	}

	if len(conditions) == 0 {
		return "", args
	}

	return " WHERE " + strings.Join(conditions, " AND "), args
}
