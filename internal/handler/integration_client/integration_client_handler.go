// internal/handler/integration_client_handler.go
package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid"
	"github.com/imperia-dev/imperia-data-insight-sub000/internal/entity"
	"github.com/imperia-dev/imperia-data-insight-sub000/internal/model/response/wrapper"
	service "github.com/imperia-dev/imperia-data-insight-sub000/internal/service/integration_client"
)

type IntegrationClientHandler struct {
	service service.IntegrationClientService
}

func NewIntegrationClientHandler(service service.IntegrationClientService) *IntegrationClientHandler {
	return &IntegrationClientHandler{
		service: service,
	}
}

// CreateIntegrationClient godoc
// @Summary      Create integration client
// @Description  Create a new integration client with API key
// @Tags         /api/v1/admin/integrations
// @Accept       json
// @Produce      json
// @Param        client  body      entity.CreateIntegrationClientRequest  true  "Client data"
// @Success      201     {object}  wrapper.ResponseWrapper{data=entity.IntegrationClient}
// @Failure      400     {object}  wrapper.ErrorWrapper
// @Failure      500     {object}  wrapper.ErrorWrapper
// @Router       /integrations/clients/generate [post]
func (h *IntegrationClientHandler) CreateIntegrationClient(c *gin.Context) {
	var req entity.CreateIntegrationClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, wrapper.ErrorWrapper{
			Message: "Invalid request body: " + err.Error(),
			Success: false,
		})
		return
	}

	client, err := h.service.CreateClient(c.Request.Context(), req)
	if err != nil {
		if err.Error() == "name already exists" {
			c.JSON(http.StatusBadRequest, wrapper.ErrorWrapper{
				Message: err.Error(),
				Success: false,
			})
			return
		}
		c.JSON(http.StatusInternalServerError, wrapper.ErrorWrapper{
			Message: err.Error(),
			Success: false,
		})
		return
	}

	c.JSON(http.StatusCreated, wrapper.ResponseWrapper{
		Data:    client,
		Success: true,
	})
}

// GetIntegrationClientByID godoc
// @Summary      Get integration client by ID
// @Description  Get a specific integration client by its ID
// @Tags         /api/v1/admin/integrations
// @Accept       json
// @Produce      json
// @Param        id   path      string  true  "Client ID"
// @Success      200  {object}  wrapper.ResponseWrapper{data=entity.IntegrationClientPublic}
// @Failure      400  {object}  wrapper.ErrorWrapper
// @Failure      404  {object}  wrapper.ErrorWrapper
// @Failure      500  {object}  wrapper.ErrorWrapper
// @Router       /integrations/clients/{id} [get]
func (h *IntegrationClientHandler) GetIntegrationClientByID(c *gin.Context) {
	idStr := c.Param("id")
	clientID, err := uuid.FromString(idStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, wrapper.ErrorWrapper{
			Message: "Invalid UUID format",
			Success: false,
		})
		return
	}

	client, err := h.service.GetClientByID(c.Request.Context(), clientID)
	if err != nil {
		if err.Error() == "client not found" {
			c.JSON(http.StatusNotFound, wrapper.ErrorWrapper{
				Message: "Integration client not found",
				Success: false,
			})
			return
		}
		c.JSON(http.StatusInternalServerError, wrapper.ErrorWrapper{
			Message: err.Error(),
			Success: false,
		})
		return
	}

	c.JSON(http.StatusOK, wrapper.ResponseWrapper{
		Data:    client,
		Success: true,
	})
}

// GetIntegrationClientByName godoc
// @Summary      Get integration client by name
// @Description  Get a specific integration client by its name
// @Tags         /api/v1/admin/integrations
// @Accept       json
// @Produce      json
// @Param        name   path      string  true  "Client name"
// @Success      200    {object}  wrapper.ResponseWrapper{data=entity.IntegrationClientPublic}
// @Failure      400    {object}  wrapper.ErrorWrapper
// @Failure      404    {object}  wrapper.ErrorWrapper
// @Failure      500    {object}  wrapper.ErrorWrapper
// @Router       /integrations/name/{name} [get]
func (h *IntegrationClientHandler) GetIntegrationClientByName(c *gin.Context) {
	name := c.Param("name")
	if name == "" {
		c.JSON(http.StatusBadRequest, wrapper.ErrorWrapper{
			Message: "Name is required",
			Success: false,
		})
		return
	}

	client, err := h.service.GetClientByName(c.Request.Context(), name)
	if err != nil {
		if err.Error() == "client not found" {
			c.JSON(http.StatusNotFound, wrapper.ErrorWrapper{
				Message: "Integration client not found",
				Success: false,
			})
			return
		}
		c.JSON(http.StatusInternalServerError, wrapper.ErrorWrapper{
			Message: err.Error(),
			Success: false,
		})
		return
	}

	c.JSON(http.StatusOK, wrapper.ResponseWrapper{
		Data:    client,
		Success: true,
	})
}

// GetAllIntegrationClients godoc
// @Summary      Get all integration clients
// @Description  Get list of integration clients with optional filters
// @Tags         /api/v1/admin/integrations
// @Accept       json
// @Produce      json
// @Param        name       query     string  false  "Filter by name"
// @Param        isActive   query     bool    false  "Filter by active status"
// @Param        limit      query     int     false  "Limit (default: 50, max: 200)"
// @Param        offset     query     int     false  "Offset (default: 0)"
// @Success      200        {object}  wrapper.ResponseWrapper{data=[]entity.IntegrationClientPublic}
// @Failure      400        {object}  wrapper.ErrorWrapper
// @Failure      500        {object}  wrapper.ErrorWrapper
// @Router       /integrations/clients [get]
func (h *IntegrationClientHandler) GetAllIntegrationClients(c *gin.Context) {
	var filter entity.IntegrationClientFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, wrapper.ErrorWrapper{
			Message: "Invalid query parameters: " + err.Error(),
			Success: false,
		})
		return
	}

	clients, err := h.service.GetAllClients(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, wrapper.ErrorWrapper{
			Message: err.Error(),
			Success: false,
		})
		return
	}

	c.JSON(http.StatusOK, wrapper.ResponseWrapper{
		Data:    clients,
		Success: true,
	})
}

// UpdateIntegrationClient godoc
// @Summary      Update integration client
// @Description  Update integration client information
// @Tags         /api/v1/admin/integrations
// @Accept       json
// @Produce      json
// @Param        id      path      string                                 true  "Client ID"
// @Param        client  body      entity.UpdateIntegrationClientRequest  true  "Update client data"
// @Success      200     {object}  wrapper.ResponseWrapper{data=entity.IntegrationClientPublic}
// @Failure      400     {object}  wrapper.ErrorWrapper
// @Failure      404     {object}  wrapper.ErrorWrapper
// @Failure      500     {object}  wrapper.ErrorWrapper
// @Router       /integrations/clients/{id} [put]
func (h *IntegrationClientHandler) UpdateIntegrationClient(c *gin.Context) {
	idStr := c.Param("id")
	clientID, err := uuid.FromString(idStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, wrapper.ErrorWrapper{
			Message: "Invalid UUID format",
			Success: false,
		})
		return
	}

	var req entity.UpdateIntegrationClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, wrapper.ErrorWrapper{
			Message: "Invalid request body: " + err.Error(),
			Success: false,
		})
		return
	}

	client, err := h.service.UpdateClient(c.Request.Context(), clientID, req)
	if err != nil {
		if err.Error() == "client not found" {
			c.JSON(http.StatusNotFound, wrapper.ErrorWrapper{
				Message: "Integration client not found",
				Success: false,
			})
			return
		}
		if err.Error() == "name already exists" {
			c.JSON(http.StatusBadRequest, wrapper.ErrorWrapper{
				Message: err.Error(),
				Success: false,
			})
			return
		}
		c.JSON(http.StatusInternalServerError, wrapper.ErrorWrapper{
			Message: err.Error(),
			Success: false,
		})
		return
	}

	c.JSON(http.StatusOK, wrapper.ResponseWrapper{
		Data:    client,
		Success: true,
	})
}

// RegenerateAPIKey godoc
// @Summary      Regenerate API key
// @Description  Regenerate API key for integration client
// @Tags         /api/v1/admin/integrations
// @Accept       json
// @Produce      json
// @Param        id   path      string  true  "Client ID"
// @Success      200  {object}  wrapper.ResponseWrapper{data=entity.RegenerateAPIKeyResponse}
// @Failure      400  {object}  wrapper.ErrorWrapper
// @Failure      404  {object}  wrapper.ErrorWrapper
// @Failure      500  {object}  wrapper.ErrorWrapper
// @Router       /integrations/clients/{id}/regenerate-key [post]
func (h *IntegrationClientHandler) RegenerateAPIKey(c *gin.Context) {
	idStr := c.Param("id")
	clientID, err := uuid.FromString(idStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, wrapper.ErrorWrapper{
			Message: "Invalid UUID format",
			Success: false,
		})
		return
	}

	response, err := h.service.RegenerateAPIKey(c.Request.Context(), clientID)
	if err != nil {
		if err.Error() == "client not found" {
			c.JSON(http.StatusNotFound, wrapper.ErrorWrapper{
				Message: "Integration client not found",
				Success: false,
			})
			return
		}
		if err.Error() == "client is inactive" {
			c.JSON(http.StatusBadRequest, wrapper.ErrorWrapper{
				Message: "Cannot regenerate API key for inactive client",
				Success: false,
			})
			return
		}
		c.JSON(http.StatusInternalServerError, wrapper.ErrorWrapper{
			Message: err.Error(),
			Success: false,
		})
		return
	}

	c.JSON(http.StatusOK, wrapper.ResponseWrapper{
		Data:    response,
		Success: true,
	})
}

// DeleteIntegrationClient godoc
// @Summary      Delete integration client
// @Description  Delete an integration client
// @Tags         /api/v1/admin/integrations
// @Accept       json
// @Produce      json
// @Param        id   path      string  true  "Client ID"
// @Success      200  {object}  wrapper.ResponseWrapper{data=string}
// @Failure      400  {object}  wrapper.ErrorWrapper
// @Failure      404  {object}  wrapper.ErrorWrapper
// @Failure      500  {object}  wrapper.ErrorWrapper
// @Router       /integrations/clients/{id} [delete]
func (h *IntegrationClientHandler) DeleteIntegrationClient(c *gin.Context) {
	idStr := c.Param("id")
	clientID, err := uuid.FromString(idStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, wrapper.ErrorWrapper{
			Message: "Invalid UUID format",
			Success: false,
		})
		return
	}

	err = h.service.DeleteClient(c.Request.Context(), clientID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, wrapper.ErrorWrapper{
				Message: "Integration client not found",
				Success: false,
			})
			return
		}
		c.JSON(http.StatusInternalServerError, wrapper.ErrorWrapper{
			Message: err.Error(),
			Success: false,
		})
		return
	}

	c.JSON(http.StatusOK, wrapper.ResponseWrapper{
		Data:    "Integration client deleted successfully",
		Success: true,
	})
}

// ValidateAPIKey godoc
// @Summary      Validate API key
// @Description  Validate integration client API key
// @Tags         /api/v1/integrations
// @Accept       json
// @Produce      json
// @Param        X-API-Key  header    string  true  "API Key"
// @Success      200        {object}  wrapper.ResponseWrapper{data=entity.IntegrationClientPublic}
// @Failure      400        {object}  wrapper.ErrorWrapper
// @Failure      401        {object}  wrapper.ErrorWrapper
// @Failure      500        {object}  wrapper.ErrorWrapper
// @Router       /integrations/clients/auth [post]
func (h *IntegrationClientHandler) ValidateAPIKey(c *gin.Context) {
	apiKey := c.GetHeader("X-API-Key")
	if apiKey == "" {
		c.JSON(http.StatusBadRequest, wrapper.ErrorWrapper{
			Message: "X-API-Key header is required",
			Success: false,
		})
		return
	}

	client, err := h.service.ValidateAPIKey(c.Request.Context(), apiKey)
	if err != nil {
		if err.Error() == "invalid or inactive API key" || err.Error() == "API key is required" {
			c.JSON(http.StatusUnauthorized, wrapper.ErrorWrapper{
				Message: "Invalid API key",
				Success: false,
			})
			return
		}
		c.JSON(http.StatusInternalServerError, wrapper.ErrorWrapper{
			Message: err.Error(),
			Success: false,
		})
		return
	}

	publicClient := &entity.IntegrationClientPublic{
		ID:         client.ID,
		Name:       client.Name,
		IsActive:   client.IsActive,
		CreatedAt:  client.CreatedAt,
		UpdatedAt:  client.UpdatedAt,
		LastUsedAt: client.LastUsedAt,
		Client:     client.Client,
	}

	c.JSON(http.StatusOK, wrapper.ResponseWrapper{
		Data:    publicClient,
		Success: true,
	})
}

// GetIntegrationClientStats godoc
// @Summary      Get integration clients statistics
// @Description  Get statistics about integration clients
// @Tags         /api/v1/admin/integrations
// @Accept       json
// @Produce      json
// @Success      200  {object}  wrapper.ResponseWrapper{data=entity.IntegrationClientStats}
// @Failure      500  {object}  wrapper.ErrorWrapper
// @Router       /integrations/clients/stats [get]
func (h *IntegrationClientHandler) GetIntegrationClientStats(c *gin.Context) {
	stats, err := h.service.GetStats(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, wrapper.ErrorWrapper{
			Message: err.Error(),
			Success: false,
		})
		return
	}

	c.JSON(http.StatusOK, wrapper.ResponseWrapper{
		Data:    stats,
		Success: true,
	})
}
