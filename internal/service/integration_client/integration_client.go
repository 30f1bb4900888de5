// internal/service/integration_client_service.go
package service

import (
	"context"
	"fmt"

	"github.com/gofrs/uuid"

	"github.com/imperia-dev/imperia-data-insight-sub000/internal/entity"
	"github.com/imperia-dev/imperia-data-insight-sub000/internal/repository"
)

type IntegrationClientService interface {
	CreateClient(ctx context.Context, req entity.CreateIntegrationClientRequest) (*entity.IntegrationClient, error)
	GetClientByID(ctx context.Context, id uuid.UUID) (*entity.IntegrationClient, error)
	GetClientByAPIKey(ctx context.Context, apiKey string) (*entity.IntegrationClient, error)
	GetClientByName(ctx context.Context, name string) (*entity.IntegrationClientPublic, error)
	GetAllClients(ctx context.Context, filter entity.IntegrationClientFilter) ([]entity.IntegrationClientPublic, error)
	UpdateClient(ctx context.Context, id uuid.UUID, req entity.UpdateIntegrationClientRequest) (*entity.IntegrationClientPublic, error)
	RegenerateAPIKey(ctx context.Context, id uuid.UUID) (*entity.RegenerateAPIKeyResponse, error)
	DeleteClient(ctx context.Context, id uuid.UUID) error
	ValidateAPIKey(ctx context.Context, apiKey string) (*entity.IntegrationClient, error)
	GetStats(ctx context.Context) (*entity.IntegrationClientStats, error)
}

type integrationClientService struct {
	repo repository.IntegrationClientRepository
}

func NewIntegrationClientService(repo repository.IntegrationClientRepository) IntegrationClientService {
	return &integrationClientService{
		repo: repo,
	}
}

func (s *integrationClientService) CreateClient(ctx context.Context, req entity.CreateIntegrationClientRequest) (*entity.IntegrationClient, error) {
	existing, err := s.repo.GetByName(ctx, req.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to check name uniqueness: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("name already exists")
	}

	client := &entity.IntegrationClient{
		Name:     req.Name,
		ClientID: req.ClientID,
	}

	err = s.repo.Create(ctx, client)
	if err != nil {
		return nil, fmt.Errorf("failed to create integration client: %w", err)
	}

	return client, nil
}

func (s *integrationClientService) GetClientByID(ctx context.Context, id uuid.UUID) (*entity.IntegrationClient, error) {
	client, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get client by ID: %w", err)
	}
	if client == nil {
		return nil, fmt.Errorf("client not found")
	}

	return client, nil
}

func (s *integrationClientService) GetClientByAPIKey(ctx context.Context, apiKey string) (*entity.IntegrationClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	client, err := s.repo.GetByAPIKey(ctx, apiKey)
	if err != nil {
		return nil, fmt.Errorf("failed to get client by API key: %w", err)
	}
	if client == nil {
		return nil, fmt.Errorf("invalid API key")
	}

	go func() {
		s.repo.UpdateLastUsed(context.Background(), apiKey)
	}()

	return client, nil
}

func (s *integrationClientService) GetClientByName(ctx context.Context, name string) (*entity.IntegrationClientPublic, error) {
	if name == "" {
		return nil, fmt.Errorf("name is required")
	}

	client, err := s.repo.GetByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to get client by name: %w", err)
	}
	if client == nil {
		return nil, fmt.Errorf("client not found")
	}

	return s.toPublicClient(client), nil
}

func (s *integrationClientService) GetAllClients(ctx context.Context, filter entity.IntegrationClientFilter) ([]entity.IntegrationClientPublic, error) {
	if filter.Limit <= 0 {
		filter.Limit = 50
	}
	if filter.Limit > 200 {
		filter.Limit = 200
	}

	clients, err := s.repo.GetAll(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to get clients: %w", err)
	}

	publicClients := make([]entity.IntegrationClientPublic, len(clients))
	for i, client := range clients {
		publicClients[i] = *s.toPublicClient(&client)
	}

	return publicClients, nil
}

func (s *integrationClientService) UpdateClient(ctx context.Context, id uuid.UUID, req entity.UpdateIntegrationClientRequest) (*entity.IntegrationClientPublic, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to check client existence: %w", err)
	}
	if existing == nil {
		return nil, fmt.Errorf("client not found")
	}

	if req.Name != nil && *req.Name != existing.Name {
		clientWithSameName, err := s.repo.GetByName(ctx, *req.Name)
		if err != nil {
			return nil, fmt.Errorf("failed to check name uniqueness: %w", err)
		}
		if clientWithSameName != nil {
			return nil, fmt.Errorf("name already exists")
		}
	}

	updated, err := s.repo.Update(ctx, id, req)
	if err != nil {
		return nil, fmt.Errorf("failed to update client: %w", err)
	}
	if updated == nil {
		return nil, fmt.Errorf("client not found")
	}

	return s.toPublicClient(updated), nil
}

func (s *integrationClientService) RegenerateAPIKey(ctx context.Context, id uuid.UUID) (*entity.RegenerateAPIKeyResponse, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to check client existence: %w", err)
	}
	if existing == nil {
		return nil, fmt.Errorf("client not found")
	}

	if !existing.IsActive {
		return nil, fmt.Errorf("client is inactive")
	}

	newAPIKey, err := s.repo.RegenerateAPIKey(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to regenerate API key: %w", err)
	}

	return &entity.RegenerateAPIKeyResponse{
		ID:     id,
		APIKey: newAPIKey,
	}, nil
}

func (s *integrationClientService) DeleteClient(ctx context.Context, id uuid.UUID) error {
	err := s.repo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete client: %w", err)
	}

	return nil
}

func (s *integrationClientService) ValidateAPIKey(ctx context.Context, apiKey string) (*entity.IntegrationClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	client, err := s.repo.GetByAPIKey(ctx, apiKey)
	if err != nil {
		return nil, fmt.Errorf("failed to validate API key: %w", err)
	}
	if client == nil {
		return nil, fmt.Errorf("invalid or inactive API key")
	}

	go func() {
		s.repo.UpdateLastUsed(context.Background(), apiKey)
	}()

	return client, nil
}

func (s *integrationClientService) GetStats(ctx context.Context) (*entity.IntegrationClientStats, error) {
	stats, err := s.repo.GetStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get stats: %w", err)
	}

	return stats, nil
}

// toPublicClient hides the API key from listing and profile payloads.
func (s *integrationClientService) toPublicClient(client *entity.IntegrationClient) *entity.IntegrationClientPublic {
	return &entity.IntegrationClientPublic{
		ID:         client.ID,
		Name:       client.Name,
		IsActive:   client.IsActive,
		CreatedAt:  client.CreatedAt,
		UpdatedAt:  client.UpdatedAt,
		LastUsedAt: client.LastUsedAt,
		Client:     client.Client,
	}
}
