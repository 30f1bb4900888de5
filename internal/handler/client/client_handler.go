package client

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid"
	"github.com/imperia-dev/imperia-data-insight-sub000/internal/model/request"
	"github.com/imperia-dev/imperia-data-insight-sub000/internal/model/response/wrapper"
	"github.com/imperia-dev/imperia-data-insight-sub000/internal/service/client"
)

type ClientHandler struct {
	srv *client.ClientService
}

func NewClientHandler(srv *client.ClientService) *ClientHandler {
	return &ClientHandler{srv: srv}
}

// CreateClient godoc
// @Summary Create new client
// @Description Create a new client with the authenticated user as manager
// @Tags /api/v1/clients
// @Accept json
// @Produce json
// @Param client body request.CreateClient true "Client object"
// @Success 201 {object} wrapper.ResponseWrapper{data=response.Client}
// @Failure 400 {object} wrapper.ErrorWrapper
// @Failure 401 {object} wrapper.ErrorWrapper
// @Failure 500 {object} wrapper.ErrorWrapper
// @Router /clients [post]
func (h *ClientHandler) CreateClient(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, wrapper.ErrorWrapper{Message: "User ID not found", Success: false})
		return
	}

	userUUID, err := uuid.FromString(userID.(string))
	if err != nil {
		c.JSON(http.StatusInternalServerError, wrapper.ErrorWrapper{Message: err.Error(), Success: false})
		return
	}

	var clientRequest request.CreateClient
	if err := c.ShouldBindJSON(&clientRequest); err != nil {
		c.JSON(http.StatusBadRequest, wrapper.ErrorWrapper{Message: err.Error(), Success: false})
		return
	}

	created, err := h.srv.CreateClient(&clientRequest, userUUID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, wrapper.ErrorWrapper{Message: err.Error(), Success: false})
		return
	}

	c.JSON(http.StatusCreated, wrapper.ResponseWrapper{Data: created, Success: true})
}

// GetAllClients godoc
// @Summary Get all clients
// @Description Get list of all registered clients
// @Tags /api/v1/clients
// @Accept json
// @Produce json
// @Success 200 {object} wrapper.ResponseWrapper{data=[]response.Client}
// @Failure 401 {object} wrapper.ErrorWrapper
// @Failure 500 {object} wrapper.ErrorWrapper
// @Router /clients [get]
func (h *ClientHandler) GetAllClients(c *gin.Context) {
	clients, err := h.srv.GetAll()
	if err != nil {
		c.JSON(http.StatusInternalServerError, wrapper.ErrorWrapper{Message: err.Error(), Success: false})
		return
	}

	c.JSON(http.StatusOK, wrapper.ResponseWrapper{Data: clients, Success: true})
}

// GetClient godoc
// @Summary Get client by ID
// @Description Get client details by ID (user must have access)
// @Tags /api/v1/clients
// @Accept json
// @Produce json
// @Param id path string true "Client ID"
// @Success 200 {object} wrapper.ResponseWrapper{data=response.Client}
// @Failure 400 {object} wrapper.ErrorWrapper
// @Failure 401 {object} wrapper.ErrorWrapper
// @Failure 403 {object} wrapper.ErrorWrapper
// @Failure 404 {object} wrapper.ErrorWrapper
// @Failure 500 {object} wrapper.ErrorWrapper
// @Router /clients/{id} [get]
func (h *ClientHandler) GetClient(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, wrapper.ErrorWrapper{Message: "User ID not found", Success: false})
		return
	}

	userUUID, err := uuid.FromString(userID.(string))
	if err != nil {
		c.JSON(http.StatusInternalServerError, wrapper.ErrorWrapper{Message: err.Error(), Success: false})
		return
	}

	clientIDStr := c.Param("id")
	clientID, err := uuid.FromString(clientIDStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, wrapper.ErrorWrapper{Message: "Invalid client ID", Success: false})
		return
	}

	found, err := h.srv.GetClientByID(clientID, userUUID)
	if err != nil {
		if err.Error() == "access denied" {
			c.JSON(http.StatusForbidden, wrapper.ErrorWrapper{Message: "Access denied", Success: false})
			return
		}
		c.JSON(http.StatusInternalServerError, wrapper.ErrorWrapper{Message: err.Error(), Success: false})
		return
	}

	c.JSON(http.StatusOK, wrapper.ResponseWrapper{Data: found, Success: true})
}

// GetClientWithManagers godoc
// @Summary Get client with managers
// @Description Get client details including manager list (user must have access)
// @Tags /api/v1/clients
// @Accept json
// @Produce json
// @Param id path string true "Client ID"
// @Success 200 {object} wrapper.ResponseWrapper{data=response.ClientWithManagers}
// @Failure 400 {object} wrapper.ErrorWrapper
// @Failure 401 {object} wrapper.ErrorWrapper
// @Failure 403 {object} wrapper.ErrorWrapper
// @Failure 404 {object} wrapper.ErrorWrapper
// @Failure 500 {object} wrapper.ErrorWrapper
// @Router /clients/{id}/managers [get]
func (h *ClientHandler) GetClientWithManagers(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, wrapper.ErrorWrapper{Message: "User ID not found", Success: false})
		return
	}

	userUUID, err := uuid.FromString(userID.(string))
	if err != nil {
		c.JSON(http.StatusInternalServerError, wrapper.ErrorWrapper{Message: err.Error(), Success: false})
		return
	}

	clientIDStr := c.Param("id")
	clientID, err := uuid.FromString(clientIDStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, wrapper.ErrorWrapper{Message: "Invalid client ID", Success: false})
		return
	}

	found, err := h.srv.GetClientWithManagers(clientID, userUUID)
	if err != nil {
		if err.Error() == "access denied" {
			c.JSON(http.StatusForbidden, wrapper.ErrorWrapper{Message: "Access denied", Success: false})
			return
		}
		c.JSON(http.StatusInternalServerError, wrapper.ErrorWrapper{Message: err.Error(), Success: false})
		return
	}

	c.JSON(http.StatusOK, wrapper.ResponseWrapper{Data: found, Success: true})
}

// UpdateClient godoc
// @Summary Update client
// @Description Update client details (manager only)
// @Tags /api/v1/clients
// @Accept json
// @Produce json
// @Param id path string true "Client ID"
// @Param client body request.UpdateClient true "Client update object"
// @Success 200 {object} wrapper.ResponseWrapper{data=response.Client}
// @Failure 400 {object} wrapper.ErrorWrapper
// @Failure 401 {object} wrapper.ErrorWrapper
// @Failure 403 {object} wrapper.ErrorWrapper
// @Failure 404 {object} wrapper.ErrorWrapper
// @Failure 500 {object} wrapper.ErrorWrapper
// @Router /clients/{id} [put]
func (h *ClientHandler) UpdateClient(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, wrapper.ErrorWrapper{Message: "User ID not found", Success: false})
		return
	}

	userUUID, err := uuid.FromString(userID.(string))
	if err != nil {
		c.JSON(http.StatusInternalServerError, wrapper.ErrorWrapper{Message: err.Error(), Success: false})
		return
	}

	clientIDStr := c.Param("id")
	clientID, err := uuid.FromString(clientIDStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, wrapper.ErrorWrapper{Message: "Invalid client ID", Success: false})
		return
	}

	var updateRequest request.UpdateClient
	if err := c.ShouldBindJSON(&updateRequest); err != nil {
		c.JSON(http.StatusBadRequest, wrapper.ErrorWrapper{Message: err.Error(), Success: false})
		return
	}

	updated, err := h.srv.UpdateClient(clientID, &updateRequest, userUUID)
	if err != nil {
		if err.Error() == "only managers can update client" {
			c.JSON(http.StatusForbidden, wrapper.ErrorWrapper{Message: "Manager access required", Success: false})
			return
		}
		c.JSON(http.StatusInternalServerError, wrapper.ErrorWrapper{Message: err.Error(), Success: false})
		return
	}

	c.JSON(http.StatusOK, wrapper.ResponseWrapper{Data: updated, Success: true})
}

// DeleteClient godoc
// @Summary Delete client
// @Description Delete client (manager only)
// @Tags /api/v1/clients
// @Accept json
// @Produce json
// @Param id path string true "Client ID"
// @Success 200 {object} wrapper.SuccessWrapper
// @Failure 400 {object} wrapper.ErrorWrapper
// @Failure 401 {object} wrapper.ErrorWrapper
// @Failure 403 {object} wrapper.ErrorWrapper
// @Failure 404 {object} wrapper.ErrorWrapper
// @Failure 500 {object} wrapper.ErrorWrapper
// @Router /clients/{id} [delete]
func (h *ClientHandler) DeleteClient(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, wrapper.ErrorWrapper{Message: "User ID not found", Success: false})
		return
	}

	userUUID, err := uuid.FromString(userID.(string))
	if err != nil {
		c.JSON(http.StatusInternalServerError, wrapper.ErrorWrapper{Message: err.Error(), Success: false})
		return
	}

	clientIDStr := c.Param("id")
	clientID, err := uuid.FromString(clientIDStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, wrapper.ErrorWrapper{Message: "Invalid client ID", Success: false})
		return
	}

	err = h.srv.DeleteClient(clientID, userUUID)
	if err != nil {
		if err.Error() == "only managers can delete client" {
			c.JSON(http.StatusForbidden, wrapper.ErrorWrapper{Message: "Manager access required", Success: false})
			return
		}
		c.JSON(http.StatusInternalServerError, wrapper.ErrorWrapper{Message: err.Error(), Success: false})
		return
	}

	c.JSON(http.StatusOK, wrapper.SuccessWrapper{Message: "Client deleted successfully", Success: true})
}

// GetUserClients godoc
// @Summary Get user's clients
// @Description Get list of clients user has access to
// @Tags /api/v1/clients
// @Accept json
// @Produce json
// @Success 200 {object} wrapper.ResponseWrapper{data=response.UserClients}
// @Failure 401 {object} wrapper.ErrorWrapper
// @Failure 500 {object} wrapper.ErrorWrapper
// @Router /clients/my [get]
func (h *ClientHandler) GetUserClients(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, wrapper.ErrorWrapper{Message: "User ID not found", Success: false})
		return
	}

	userUUID, err := uuid.FromString(userID.(string))
	if err != nil {
		c.JSON(http.StatusInternalServerError, wrapper.ErrorWrapper{Message: err.Error(), Success: false})
		return
	}

	clients, err := h.srv.GetUserClients(userUUID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, wrapper.ErrorWrapper{Message: err.Error(), Success: false})
		return
	}

	c.JSON(http.StatusOK, wrapper.ResponseWrapper{Data: clients, Success: true})
}

// AddManagerToClient godoc
// @Summary Add user to client
// @Description Add user to client account team (manager only)
// @Tags /api/v1/clients
// @Accept json
// @Produce json
// @Param id path string true "Client ID"
// @Param user body request.AddManagerToClient true "User to add"
// @Success 200 {object} wrapper.SuccessWrapper
// @Failure 400 {object} wrapper.ErrorWrapper
// @Failure 401 {object} wrapper.ErrorWrapper
// @Failure 403 {object} wrapper.ErrorWrapper
// @Failure 404 {object} wrapper.ErrorWrapper
// @Failure 500 {object} wrapper.ErrorWrapper
// @Router /clients/{id}/users [post]
func (h *ClientHandler) AddManagerToClient(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, wrapper.ErrorWrapper{Message: "User ID not found", Success: false})
		return
	}

	userUUID, err := uuid.FromString(userID.(string))
	if err != nil {
		c.JSON(http.StatusInternalServerError, wrapper.ErrorWrapper{Message: err.Error(), Success: false})
		return
	}

	clientIDStr := c.Param("id")
	clientID, err := uuid.FromString(clientIDStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, wrapper.ErrorWrapper{Message: "Invalid client ID", Success: false})
		return
	}

	var addRequest request.AddManagerToClient
	if err := c.ShouldBindJSON(&addRequest); err != nil {
		c.JSON(http.StatusBadRequest, wrapper.ErrorWrapper{Message: err.Error(), Success: false})
		return
	}

	err = h.srv.AddManagerToClient(clientID, &addRequest, userUUID)
	if err != nil {
		if err.Error() == "only managers can add users to client" {
			c.JSON(http.StatusForbidden, wrapper.ErrorWrapper{Message: "Manager access required", Success: false})
			return
		}
		if err.Error() == "user is already assigned to this client" {
			c.JSON(http.StatusBadRequest, wrapper.ErrorWrapper{Message: "User is already assigned to this client", Success: false})
			return
		}
		c.JSON(http.StatusInternalServerError, wrapper.ErrorWrapper{Message: err.Error(), Success: false})
		return
	}

	c.JSON(http.StatusOK, wrapper.SuccessWrapper{Message: "User added to client successfully", Success: true})
}

// RemoveManagerFromClient godoc
// @Summary Remove user from client
// @Description Remove user from client account team (manager only)
// @Tags /api/v1/clients
// @Accept json
// @Produce json
// @Param id path string true "Client ID"
// @Param user_id path string true "User ID to remove"
// @Success 200 {object} wrapper.SuccessWrapper
// @Failure 400 {object} wrapper.ErrorWrapper
// @Failure 401 {object} wrapper.ErrorWrapper
// @Failure 403 {object} wrapper.ErrorWrapper
// @Failure 404 {object} wrapper.ErrorWrapper
// @Failure 500 {object} wrapper.ErrorWrapper
// @Router /clients/{id}/users/{user_id} [delete]
func (h *ClientHandler) RemoveManagerFromClient(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, wrapper.ErrorWrapper{Message: "User ID not found", Success: false})
		return
	}

	userUUID, err := uuid.FromString(userID.(string))
	if err != nil {
		c.JSON(http.StatusInternalServerError, wrapper.ErrorWrapper{Message: err.Error(), Success: false})
		return
	}

	clientIDStr := c.Param("id")
	clientID, err := uuid.FromString(clientIDStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, wrapper.ErrorWrapper{Message: "Invalid client ID", Success: false})
		return
	}

	userToRemoveIDStr := c.Param("user_id")
	userToRemoveID, err := uuid.FromString(userToRemoveIDStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, wrapper.ErrorWrapper{Message: "Invalid user ID", Success: false})
		return
	}

	err = h.srv.RemoveManagerFromClient(clientID, userToRemoveID, userUUID)
	if err != nil {
		if err.Error() == "only managers can remove users from client" {
			c.JSON(http.StatusForbidden, wrapper.ErrorWrapper{Message: "Manager access required", Success: false})
			return
		}
		if err.Error() == "cannot remove the only manager from client" {
			c.JSON(http.StatusBadRequest, wrapper.ErrorWrapper{Message: "Cannot remove the only manager from client", Success: false})
			return
		}
		c.JSON(http.StatusInternalServerError, wrapper.ErrorWrapper{Message: err.Error(), Success: false})
		return
	}

	c.JSON(http.StatusOK, wrapper.SuccessWrapper{Message: "User removed from client successfully", Success: true})
}

// UpdateManagerRole godoc
// @Summary Update user role in client
// @Description Update user role in client account team (manager only)
// @Tags /api/v1/clients
// @Accept json
// @Produce json
// @Param id path string true "Client ID"
// @Param user_id path string true "User ID"
// @Param role query string true "New role" Enums(manager, member, viewer)
// @Success 200 {object} wrapper.SuccessWrapper
// @Failure 400 {object} wrapper.ErrorWrapper
// @Failure 401 {object} wrapper.ErrorWrapper
// @Failure 403 {object} wrapper.ErrorWrapper
// @Failure 404 {object} wrapper.ErrorWrapper
// @Failure 500 {object} wrapper.ErrorWrapper
// @Router /clients/{id}/users/{user_id}/role [put]
func (h *ClientHandler) UpdateManagerRole(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, wrapper.ErrorWrapper{Message: "User ID not found", Success: false})
		return
	}

	userUUID, err := uuid.FromString(userID.(string))
	if err != nil {
		c.JSON(http.StatusInternalServerError, wrapper.ErrorWrapper{Message: err.Error(), Success: false})
		return
	}

	clientIDStr := c.Param("id")
	clientID, err := uuid.FromString(clientIDStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, wrapper.ErrorWrapper{Message: "Invalid client ID", Success: false})
		return
	}

	userToUpdateIDStr := c.Param("user_id")
	userToUpdateID, err := uuid.FromString(userToUpdateIDStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, wrapper.ErrorWrapper{Message: "Invalid user ID", Success: false})
		return
	}

	role := c.Query("role")
	if role == "" {
		c.JSON(http.StatusBadRequest, wrapper.ErrorWrapper{Message: "Role parameter is required", Success: false})
		return
	}

	err = h.srv.UpdateManagerRole(clientID, userToUpdateID, role, userUUID)
	if err != nil {
		if err.Error() == "only managers can update user roles" {
			c.JSON(http.StatusForbidden, wrapper.ErrorWrapper{Message: "Manager access required", Success: false})
			return
		}
		if err.Error() == "cannot demote the only manager from client" {
			c.JSON(http.StatusBadRequest, wrapper.ErrorWrapper{Message: "Cannot demote the only manager from client", Success: false})
			return
		}
		if err.Error() == "invalid role: must be 'manager', 'member', or 'viewer'" {
			c.JSON(http.StatusBadRequest, wrapper.ErrorWrapper{Message: "Invalid role: must be 'manager', 'member', or 'viewer'", Success: false})
			return
		}
		c.JSON(http.StatusInternalServerError, wrapper.ErrorWrapper{Message: err.Error(), Success: false})
		return
	}

	c.JSON(http.StatusOK, wrapper.SuccessWrapper{Message: "User role updated successfully", Success: true})
}
