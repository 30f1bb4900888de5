// internal/entity/integration_client.go
package entity

import (
	"time"

	"github.com/gofrs/uuid"
)

// IntegrationClient is an API-key-authenticated consumer of the report
// endpoints (e.g. the WhatsApp report-dispatch bot).
type IntegrationClient struct {
	ID         uuid.UUID   `json:"id" db:"id"`
	Name       string      `json:"name" db:"name"`
	APIKey     string      `json:"apiKey" db:"api_key"`
	IsActive   bool        `json:"isActive" db:"is_active"`
	CreatedAt  time.Time   `json:"createdAt" db:"created_at"`
	UpdatedAt  time.Time   `json:"updatedAt" db:"updated_at"`
	LastUsedAt *time.Time  `json:"lastUsedAt" db:"last_used_at"`
	ClientID   *uuid.UUID  `json:"client_id,omitempty" db:"client_id"`
	Client     *ClientInfo `json:"client,omitempty"`
}

type IntegrationClientPublic struct {
	ID         uuid.UUID   `json:"id"`
	Name       string      `json:"name"`
	IsActive   bool        `json:"isActive"`
	CreatedAt  time.Time   `json:"createdAt"`
	UpdatedAt  time.Time   `json:"updatedAt"`
	LastUsedAt *time.Time  `json:"lastUsedAt"`
	Client     *ClientInfo `json:"client,omitempty"`
}

type ClientInfo struct {
	ID   *uuid.UUID `json:"id"`
	Name string     `json:"name"`
}

type CreateIntegrationClientRequest struct {
	Name     string     `json:"name" binding:"required,min=3,max=100"`
	ClientID *uuid.UUID `json:"client_id,omitempty"`
}

type UpdateIntegrationClientRequest struct {
	Name     *string    `json:"name,omitempty" binding:"omitempty,min=3,max=100"`
	IsActive *bool      `json:"isActive,omitempty"`
	ClientID *uuid.UUID `json:"client_id,omitempty"`
}

type RegenerateAPIKeyResponse struct {
	ID     uuid.UUID `json:"id"`
	APIKey string    `json:"apiKey"`
}

type IntegrationClientFilter struct {
	IsActive *bool   `form:"isActive"`
	Name     *string `form:"name"`
	Limit    int     `form:"limit"`
	Offset   int     `form:"offset"`
}

type IntegrationClientStats struct {
	Total    int `json:"total" db:"total"`
	Active   int `json:"active" db:"active"`
	Inactive int `json:"inactive" db:"inactive"`
}
