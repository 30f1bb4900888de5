// internal/handler/pendency_handler.go
package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/imperia-dev/imperia-data-insight-sub000/internal/entity"
	"github.com/imperia-dev/imperia-data-insight-sub000/internal/model/response/wrapper"
	service "github.com/imperia-dev/imperia-data-insight-sub000/internal/service/pendency"
)

type PendencyHandler struct {
	service service.PendencyService
}

func NewPendencyHandler(service service.PendencyService) *PendencyHandler {
	return &PendencyHandler{
		service: service,
	}
}

// CreatePendency godoc
// @Summary      Create pendency
// @Description  Report a quality issue against an order
// @Tags         /api/v1/pendencies
// @Accept       json
// @Produce      json
// @Param        pendency  body      entity.CreatePendencyRequest  true  "Pendency data"
// @Success      201       {object}  wrapper.ResponseWrapper{data=entity.Pendency}
// @Failure      400       {object}  wrapper.ErrorWrapper
// @Failure      500       {object}  wrapper.ErrorWrapper
// @Router       /pendencies [post]
func (h *PendencyHandler) CreatePendency(c *gin.Context) {
	var req entity.CreatePendencyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, wrapper.ErrorWrapper{
			Message: "Invalid request body: " + err.Error(),
		})
		return
	}

	pendency, err := h.service.CreatePendency(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, wrapper.ErrorWrapper{
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, wrapper.ResponseWrapper{
		Data:    pendency,
		Success: true,
	})
}

// GetPendencyByID godoc
// @Summary      Get pendency by ID
// @Description  Get a specific pendency by ID
// @Tags         /api/v1/pendencies
// @Accept       json
// @Produce      json
// @Param        id   path      string  true  "Pendency ID"
// @Success      200  {object}  wrapper.ResponseWrapper{data=entity.Pendency}
// @Failure      400  {object}  wrapper.ErrorWrapper
// @Failure      404  {object}  wrapper.ErrorWrapper
// @Failure      500  {object}  wrapper.ErrorWrapper
// @Router       /pendencies/{id} [get]
func (h *PendencyHandler) GetPendencyByID(c *gin.Context) {
	idStr := c.Param("id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, wrapper.ErrorWrapper{
			Message: "Invalid UUID format",
		})
		return
	}

	pendency, err := h.service.GetPendencyByID(c.Request.Context(), id)
	if err != nil {
		if err.Error() == "pendency not found" {
			c.JSON(http.StatusNotFound, wrapper.ErrorWrapper{
				Message: "Pendency not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, wrapper.ErrorWrapper{
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, wrapper.ResponseWrapper{
		Data: pendency, Success: true,
	})
}

// GetPendencies godoc
// @Summary      Get pendencies
// @Description  Get pendencies with optional filters
// @Tags         /api/v1/pendencies
// @Accept       json
// @Produce      json
// @Param        orderId    query     string  false  "Order ID"
// @Param        errorType  query     string  false  "Error type tag"
// @Param        status     query     string  false  "Pendency status"
// @Param        startTime  query     string  false  "Start time (RFC3339 format)"
// @Param        endTime    query     string  false  "End time (RFC3339 format)"
// @Param        limit      query     int     false  "Limit (default: 100, max: 1000)"
// @Param        offset     query     int     false  "Offset"
// @Success      200        {object}  wrapper.ResponseWrapper{data=[]entity.Pendency}
// @Failure      400        {object}  wrapper.ErrorWrapper
// @Failure      500        {object}  wrapper.ErrorWrapper
// @Router       /pendencies [get]
func (h *PendencyHandler) GetPendencies(c *gin.Context) {
	var filter entity.PendencyFilter

	if orderID := c.Query("orderId"); orderID != "" {
		filter.OrderID = &orderID
	}

	if errorType := c.Query("errorType"); errorType != "" {
		filter.ErrorType = &errorType
	}

	if status := c.Query("status"); status != "" {
		filter.Status = &status
	}

	if startTimeStr := c.Query("startTime"); startTimeStr != "" {
		startTime, err := time.Parse(time.RFC3339, startTimeStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, wrapper.ErrorWrapper{
				Message: "Invalid startTime format, use RFC3339",
			})
			return
		}
		filter.StartTime = &startTime
	}

	if endTimeStr := c.Query("endTime"); endTimeStr != "" {
		endTime, err := time.Parse(time.RFC3339, endTimeStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, wrapper.ErrorWrapper{
				Message: "Invalid endTime format, use RFC3339",
			})
			return
		}
		filter.EndTime = &endTime
	}

	if limitStr := c.Query("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, wrapper.ErrorWrapper{
				Message: "Invalid limit value",
			})
			return
		}
		filter.Limit = limit
	}

	if offsetStr := c.Query("offset"); offsetStr != "" {
		offset, err := strconv.Atoi(offsetStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, wrapper.ErrorWrapper{
				Message: "Invalid offset value",
			})
			return
		}
		filter.Offset = offset
	}

	pendencies, err := h.service.GetPendencies(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, wrapper.ErrorWrapper{
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, wrapper.ResponseWrapper{
		Data:    pendencies,
		Success: true,
	})
}

// ResolvePendency godoc
// @Summary      Resolve pendency
// @Description  Mark a pendency as resolved
// @Tags         /api/v1/pendencies
// @Accept       json
// @Produce      json
// @Param        id   path      string  true  "Pendency ID"
// @Success      200  {object}  wrapper.SuccessWrapper
// @Failure      400  {object}  wrapper.ErrorWrapper
// @Failure      500  {object}  wrapper.ErrorWrapper
// @Router       /pendencies/{id}/resolve [patch]
func (h *PendencyHandler) ResolvePendency(c *gin.Context) {
	idStr := c.Param("id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, wrapper.ErrorWrapper{
			Message: "Invalid UUID format",
		})
		return
	}

	if err := h.service.ResolvePendency(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, wrapper.ErrorWrapper{
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, wrapper.SuccessWrapper{
		Message: "Pendency resolved",
		Success: true,
	})
}

// DeletePendency godoc
// @Summary      Delete pendency
// @Description  Delete a pendency by ID
// @Tags         /api/v1/pendencies
// @Accept       json
// @Produce      json
// @Param        id   path      string  true  "Pendency ID"
// @Success      200  {object}  wrapper.SuccessWrapper
// @Failure      400  {object}  wrapper.ErrorWrapper
// @Failure      500  {object}  wrapper.ErrorWrapper
// @Router       /pendencies/{id} [delete]
func (h *PendencyHandler) DeletePendency(c *gin.Context) {
	idStr := c.Param("id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, wrapper.ErrorWrapper{
			Message: "Invalid UUID format",
		})
		return
	}

	if err := h.service.DeletePendency(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, wrapper.ErrorWrapper{
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, wrapper.SuccessWrapper{
		Message: "Pendency deleted",
		Success: true,
	})
}
