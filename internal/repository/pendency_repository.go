package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/imperia-dev/imperia-data-insight-sub000/internal/entity"
)

type PendencyRepository interface {
	Create(ctx context.Context, pendency *entity.Pendency) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Pendency, error)
	GetByFilter(ctx context.Context, filter entity.PendencyFilter) ([]entity.Pendency, error)
	GetByWindow(ctx context.Context, window entity.Window) ([]entity.Pendency, error)
	Resolve(ctx context.Context, id uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type pendencyRepository struct {
	db *sqlx.DB
}

func NewPendencyRepository(db *sqlx.DB) PendencyRepository {
	return &pendencyRepository{db: db}
}

func (r *pendencyRepository) Create(ctx context.Context, pendency *entity.Pendency) error {
	pendency.ID = uuid.New()
	if pendency.CreatedAt.IsZero() {
		pendency.CreatedAt = time.Now()
	}
	if pendency.Status == "" {
		pendency.Status = entity.PendencyStatusOpen
	}

	query := `
		INSERT INTO pendencies (id, order_id, error_type, details, status, created_at)
		VALUES (:id, :order_id, :error_type, :details, :status, :created_at)`

	_, err := r.db.NamedExecContext(ctx, query, pendency)
	return err
}

func (r *pendencyRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Pendency, error) {
	var pendency entity.Pendency
	query := `SELECT * FROM pendencies WHERE id = $1`

	err := r.db.GetContext(ctx, &pendency, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &pendency, nil
}

func (r *pendencyRepository) GetByFilter(ctx context.Context, filter entity.PendencyFilter) ([]entity.Pendency, error) {
	var pendencies []entity.Pendency

	query := "SELECT * FROM pendencies WHERE 1=1"
	args := []interface{}{}
	argIndex := 1

	if filter.OrderID != nil {
		query += fmt.Sprintf(" AND order_id = $%d", argIndex)
		args = append(args, *filter.OrderID)
		argIndex++
	}

	if filter.ErrorType != nil {
		query += fmt.Sprintf(" AND error_type = $%d", argIndex)
		args = append(args, *filter.ErrorType)
		argIndex++
	}

	if filter.Status != nil {
		query += fmt.Sprintf(" AND status = $%d", argIndex)
		args = append(args, *filter.Status)
		argIndex++
	}

	if filter.StartTime != nil {
		query += fmt.Sprintf(" AND created_at >= $%d", argIndex)
		args = append(args, *filter.StartTime)
		argIndex++
	}

	if filter.EndTime != nil {
		query += fmt.Sprintf(" AND created_at <= $%d", argIndex)
		args = append(args, *filter.EndTime)
		argIndex++
	}

	query += " ORDER BY created_at DESC"

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argIndex)
		args = append(args, filter.Limit)
		argIndex++
	}

	if filter.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", argIndex)
		args = append(args, filter.Offset)
	}

	err := r.db.SelectContext(ctx, &pendencies, query, args...)
	return pendencies, err
}

func (r *pendencyRepository) GetByWindow(ctx context.Context, window entity.Window) ([]entity.Pendency, error) {
	var pendencies []entity.Pendency

	query := `SELECT * FROM pendencies WHERE created_at >= $1 AND created_at <= $2 ORDER BY created_at`

	err := r.db.SelectContext(ctx, &pendencies, query, window.Start, window.End)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch pendencies for window: %w", err)
	}
	return pendencies, nil
}

func (r *pendencyRepository) Resolve(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE pendencies SET status = $1 WHERE id = $2`
	result, err := r.db.ExecContext(ctx, query, entity.PendencyStatusResolved, id)
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

func (r *pendencyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := "DELETE FROM pendencies WHERE id = $1"
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
