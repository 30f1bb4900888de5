// internal/repository/integration_client_repository.go
package repository

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/gofrs/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/imperia-dev/imperia-data-insight-sub000/internal/entity"
)

type IntegrationClientRepository interface {
	Create(ctx context.Context, client *entity.IntegrationClient) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.IntegrationClient, error)
	GetByAPIKey(ctx context.Context, apiKey string) (*entity.IntegrationClient, error)
	GetByName(ctx context.Context, name string) (*entity.IntegrationClient, error)
	GetAll(ctx context.Context, filter entity.IntegrationClientFilter) ([]entity.IntegrationClient, error)
	Update(ctx context.Context, id uuid.UUID, req entity.UpdateIntegrationClientRequest) (*entity.IntegrationClient, error)
	RegenerateAPIKey(ctx context.Context, id uuid.UUID) (string, error)
	Delete(ctx context.Context, id uuid.UUID) error
	UpdateLastUsed(ctx context.Context, apiKey string) error
	GetStats(ctx context.Context) (*entity.IntegrationClientStats, error)
	IsAPIKeyValid(ctx context.Context, apiKey string) bool
}

type integrationClientRepository struct {
	db *sqlx.DB
}

func NewIntegrationClientRepository(db *sqlx.DB) IntegrationClientRepository {
	return &integrationClientRepository{db: db}
}

func (r *integrationClientRepository) Create(ctx context.Context, client *entity.IntegrationClient) error {
	client.ID = uuid.Must(uuid.NewV4())
	client.CreatedAt = time.Now()
	client.UpdatedAt = time.Now()
	client.IsActive = true

	apiKey, err := r.generateAPIKey()
	if err != nil {
		return fmt.Errorf("failed to generate API key: %w", err)
	}
	client.APIKey = apiKey

	query := `
		INSERT INTO integration_clients (id, name, api_key, client_id, is_active, created_at, updated_at)
		VALUES (:id, :name, :api_key, :client_id, :is_active, :created_at, :updated_at)`

	_, err = r.db.NamedExecContext(ctx, query, client)
	if err != nil {
		return fmt.Errorf("failed to create integration client: %w", err)
	}

	return nil
}

func (r *integrationClientRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.IntegrationClient, error) {
	var client entity.IntegrationClient
	query := `SELECT * FROM integration_clients WHERE id = $1`

	err := r.db.GetContext(ctx, &client, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get integration client by ID: %w", err)
	}

	return &client, nil
}

func (r *integrationClientRepository) GetByAPIKey(ctx context.Context, apiKey string) (*entity.IntegrationClient, error) {
	var client entity.IntegrationClient
	query := `SELECT * FROM integration_clients WHERE api_key = $1 AND is_active = true`

	err := r.db.GetContext(ctx, &client, query, apiKey)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get integration client by API key: %w", err)
	}

	return &client, nil
}

func (r *integrationClientRepository) GetByName(ctx context.Context, name string) (*entity.IntegrationClient, error) {
	var client entity.IntegrationClient
	query := `SELECT * FROM integration_clients WHERE name = $1`

	err := r.db.GetContext(ctx, &client, query, name)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get integration client by name: %w", err)
	}

	return &client, nil
}

func (r *integrationClientRepository) GetAll(ctx context.Context, filter entity.IntegrationClientFilter) ([]entity.IntegrationClient, error) {
	var clients []entity.IntegrationClient

	query := "SELECT * FROM integration_clients WHERE 1=1"
	args := []interface{}{}
	argIndex := 1

	if filter.Name != nil && *filter.Name != "" {
		query += fmt.Sprintf(" AND name ILIKE $%d", argIndex)
		args = append(args, "%"+*filter.Name+"%")
		argIndex++
	}

	if filter.IsActive != nil {
		query += fmt.Sprintf(" AND is_active = $%d", argIndex)
		args = append(args, *filter.IsActive)
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
		argIndex++
	}

	err := r.db.SelectContext(ctx, &clients, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get integration clients: %w", err)
	}

	return clients, nil
}

func (r *integrationClientRepository) Update(ctx context.Context, id uuid.UUID, req entity.UpdateIntegrationClientRequest) (*entity.IntegrationClient, error) {
	var setParts []string
	var args []interface{}
	argIndex := 1

	if req.Name != nil {
		setParts = append(setParts, fmt.Sprintf("name = $%d", argIndex))
		args = append(args, *req.Name)
		argIndex++
	}

	if req.IsActive != nil {
		setParts = append(setParts, fmt.Sprintf("is_active = $%d", argIndex))
		args = append(args, *req.IsActive)
		argIndex++
	}

	if req.ClientID != nil {
		setParts = append(setParts, fmt.Sprintf("client_id = $%d", argIndex))
		args = append(args, *req.ClientID)
		argIndex++
	}

	if len(setParts) == 0 {
		return r.GetByID(ctx, id)
	}

	setParts = append(setParts, "updated_at = CURRENT_TIMESTAMP")
	args = append(args, id)

	query := fmt.Sprintf(`
		UPDATE integration_clients
		SET %s
		WHERE id = $%d
		RETURNING *`, strings.Join(setParts, ", "), argIndex)

	var client entity.IntegrationClient
	err := r.db.GetContext(ctx, &client, query, args...)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update integration client: %w", err)
	}

	return &client, nil
}

func (r *integrationClientRepository) RegenerateAPIKey(ctx context.Context, id uuid.UUID) (string, error) {
	newAPIKey, err := r.generateAPIKey()
	if err != nil {
		return "", fmt.Errorf("failed to generate new API key: %w", err)
	}

	query := `
		UPDATE integration_clients
		SET api_key = $1, updated_at = CURRENT_TIMESTAMP
		WHERE id = $2 AND is_active = true`

	result, err := r.db.ExecContext(ctx, query, newAPIKey, id)
	if err != nil {
		return "", fmt.Errorf("failed to update API key: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return "", fmt.Errorf("failed to get affected rows: %w", err)
	}

	if rowsAffected == 0 {
		return "", fmt.Errorf("client not found or inactive")
	}

	return newAPIKey, nil
}

func (r *integrationClientRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM integration_clients WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete integration client: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}

	if rowsAffected == 0 {
		return sql.ErrNoRows
	}

	return nil
}

func (r *integrationClientRepository) UpdateLastUsed(ctx context.Context, apiKey string) error {
	query := `
		UPDATE integration_clients
		SET last_used_at = CURRENT_TIMESTAMP
		WHERE api_key = $1 AND is_active = true`

	_, err := r.db.ExecContext(ctx, query, apiKey)
	if err != nil {
		return fmt.Errorf("failed to update last used: %w", err)
	}

	return nil
}

func (r *integrationClientRepository) GetStats(ctx context.Context) (*entity.IntegrationClientStats, error) {
	var stats entity.IntegrationClientStats

	query := `
		SELECT
			COUNT(*) as total,
			COUNT(CASE WHEN is_active = true THEN 1 END) as active,
			COUNT(CASE WHEN is_active = false THEN 1 END) as inactive
		FROM integration_clients`

	err := r.db.QueryRowContext(ctx, query).Scan(
		&stats.Total,
		&stats.Active,
		&stats.Inactive,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get integration client stats: %w", err)
	}

	return &stats, nil
}

func (r *integrationClientRepository) IsAPIKeyValid(ctx context.Context, apiKey string) bool {
	var count int
	query := `SELECT COUNT(*) FROM integration_clients WHERE api_key = $1 AND is_active = true`

	err := r.db.QueryRowContext(ctx, query, apiKey).Scan(&count)
	if err != nil {
		return false
	}

	return count > 0
}

func (r *integrationClientRepository) generateAPIKey() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}

	apiKey := "idi_" + hex.EncodeToString(bytes)

	var count int
	query := `SELECT COUNT(*) FROM integration_clients WHERE api_key = $1`
	err := r.db.QueryRow(query, apiKey).Scan(&count)
	if err != nil {
		return "", err
	}

	if count > 0 {
		return r.generateAPIKey()
	}

	return apiKey, nil
}
