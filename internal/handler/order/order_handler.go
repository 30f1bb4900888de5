// internal/handler/order_handler.go
package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/imperia-dev/imperia-data-insight-sub000/internal/entity"
	"github.com/imperia-dev/imperia-data-insight-sub000/internal/model/response/wrapper"
	service "github.com/imperia-dev/imperia-data-insight-sub000/internal/service/order"
)

type OrderHandler struct {
	service service.OrderService
}

func NewOrderHandler(service service.OrderService) *OrderHandler {
	return &OrderHandler{
		service: service,
	}
}

// CreateOrder godoc
// @Summary      Create order
// @Description  Register a single work order
// @Tags         /api/v1/orders
// @Accept       json
// @Produce      json
// @Param        order  body      entity.CreateOrderRequest  true  "Order data"
// @Success      201    {object}  wrapper.ResponseWrapper{data=entity.Order}
// @Failure      400    {object}  wrapper.ErrorWrapper
// @Failure      500    {object}  wrapper.ErrorWrapper
// @Router       /orders [post]
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req entity.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, wrapper.ErrorWrapper{
			Message: "Invalid request body: " + err.Error(),
		})
		return
	}

	order, err := h.service.CreateOrder(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, wrapper.ErrorWrapper{
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, wrapper.ResponseWrapper{
		Data:    order,
		Success: true,
	})
}

// BatchCreateOrders godoc
// @Summary      Batch create orders
// @Description  Register multiple work orders in one request
// @Tags         /api/v1/orders
// @Accept       json
// @Produce      json
// @Param        orders  body      entity.BatchCreateOrdersRequest  true  "Orders data"
// @Success      201     {object}  wrapper.ResponseWrapper{data=string}
// @Failure      400     {object}  wrapper.ErrorWrapper
// @Failure      500     {object}  wrapper.ErrorWrapper
// @Router       /orders/batch [post]
func (h *OrderHandler) BatchCreateOrders(c *gin.Context) {
	var req entity.BatchCreateOrdersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, wrapper.ErrorWrapper{
			Message: "Invalid request body: " + err.Error(),
		})
		return
	}

	err := h.service.BatchCreateOrders(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, wrapper.ErrorWrapper{
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, wrapper.ResponseWrapper{
		Data: "Successfully created " + strconv.Itoa(len(req.Orders)) + " orders",
	})
}

// GetOrderByID godoc
// @Summary      Get order by ID
// @Description  Get a specific work order by ID
// @Tags         /api/v1/orders
// @Accept       json
// @Produce      json
// @Param        id   path      string  true  "Order ID"
// @Success      200  {object}  wrapper.ResponseWrapper{data=entity.Order}
// @Failure      400  {object}  wrapper.ErrorWrapper
// @Failure      404  {object}  wrapper.ErrorWrapper
// @Failure      500  {object}  wrapper.ErrorWrapper
// @Router       /orders/{id} [get]
func (h *OrderHandler) GetOrderByID(c *gin.Context) {
	idStr := c.Param("id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, wrapper.ErrorWrapper{
			Message: "Invalid UUID format",
		})
		return
	}

	order, err := h.service.GetOrderByID(c.Request.Context(), id)
	if err != nil {
		if err.Error() == "order not found" {
			c.JSON(http.StatusNotFound, wrapper.ErrorWrapper{
				Message: "Order not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, wrapper.ErrorWrapper{
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, wrapper.ResponseWrapper{
		Data: order, Success: true,
	})
}

// GetOrders godoc
// @Summary      Get orders
// @Description  Get work orders with optional filters
// @Tags         /api/v1/orders
// @Accept       json
// @Produce      json
// @Param        workerId     query     string  false  "Worker ID"
// @Param        clientId     query     string  false  "Client ID"
// @Param        status       query     string  false  "Order status"
// @Param        orderNumber  query     string  false  "Order number"
// @Param        startTime    query     string  false  "Start time (RFC3339 format)"
// @Param        endTime      query     string  false  "End time (RFC3339 format)"
// @Param        page         query     int     false  "Page number (starts from 1)"
// @Param        per_page     query     int     false  "Items per page (default: 20, max: 1000)"
// @Param        limit        query     int     false  "Limit (deprecated, use per_page)"
// @Param        offset       query     int     false  "Offset (deprecated, use page)"
// @Success      200          {object}  wrapper.PaginatedResponseWrapper{data=[]entity.Order}
// @Failure      400          {object}  wrapper.ErrorWrapper
// @Failure      500          {object}  wrapper.ErrorWrapper
// @Router       /orders [get]
func (h *OrderHandler) GetOrders(c *gin.Context) {
	var filter entity.OrderFilter

	if workerID := c.Query("workerId"); workerID != "" {
		filter.WorkerID = &workerID
	}

	if clientID := c.Query("clientId"); clientID != "" {
		filter.ClientID = &clientID
	}

	if status := c.Query("status"); status != "" {
		filter.Status = &status
	}

	if orderNumber := c.Query("orderNumber"); orderNumber != "" {
		filter.OrderNumber = &orderNumber
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

	if pageStr := c.Query("page"); pageStr != "" {
		page, err := strconv.Atoi(pageStr)
		if err != nil || page < 1 {
			c.JSON(http.StatusBadRequest, wrapper.ErrorWrapper{
				Message: "Invalid page value, must be positive integer",
			})
			return
		}
		filter.Page = page
	}

	if perPageStr := c.Query("per_page"); perPageStr != "" {
		perPage, err := strconv.Atoi(perPageStr)
		if err != nil || perPage < 1 {
			c.JSON(http.StatusBadRequest, wrapper.ErrorWrapper{
				Message: "Invalid per_page value, must be positive integer",
			})
			return
		}
		filter.PerPage = perPage
	} else if filter.Page > 0 {
		filter.PerPage = 20
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

	orders, paginationInfo, err := h.service.GetOrders(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, wrapper.ErrorWrapper{
			Message: err.Error(),
		})
		return
	}

	if paginationInfo != nil {
		c.JSON(http.StatusOK, entity.PaginatedResponse{
			Data:    orders,
			Success: true,
			Pagination: entity.PaginationInfo{
				Page:       paginationInfo.Page,
				PerPage:    paginationInfo.PerPage,
				Total:      paginationInfo.Total,
				TotalPages: paginationInfo.TotalPages,
			},
		})
	} else {
		c.JSON(http.StatusOK, wrapper.ResponseWrapper{
			Data:    orders,
			Success: true,
		})
	}
}

// GetStats godoc
// @Summary      Get order statistics
// @Description  Get aggregate counters about work orders
// @Tags         /api/v1/orders
// @Accept       json
// @Produce      json
// @Param        workerId   query     string  false  "Worker ID"
// @Param        clientId   query     string  false  "Client ID"
// @Param        status     query     string  false  "Order status"
// @Param        startTime  query     string  false  "Start time (RFC3339 format)"
// @Param        endTime    query     string  false  "End time (RFC3339 format)"
// @Success      200        {object}  wrapper.ResponseWrapper{data=entity.OrderStats}
// @Failure      400        {object}  wrapper.ErrorWrapper
// @Failure      500        {object}  wrapper.ErrorWrapper
// @Router       /orders/stats [get]
func (h *OrderHandler) GetStats(c *gin.Context) {
	var filter entity.OrderFilter

	if workerID := c.Query("workerId"); workerID != "" {
		filter.WorkerID = &workerID
	}

	if clientID := c.Query("clientId"); clientID != "" {
		filter.ClientID = &clientID
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

	stats, err := h.service.GetStats(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, wrapper.ErrorWrapper{
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, wrapper.ResponseWrapper{
		Data:    stats,
		Success: true,
	})
}

// DeleteOrder godoc
// @Summary      Delete order
// @Description  Delete a work order by ID
// @Tags         /api/v1/orders
// @Accept       json
// @Produce      json
// @Param        id   path      string  true  "Order ID"
// @Success      200  {object}  wrapper.SuccessWrapper
// @Failure      400  {object}  wrapper.ErrorWrapper
// @Failure      500  {object}  wrapper.ErrorWrapper
// @Router       /orders/{id} [delete]
func (h *OrderHandler) DeleteOrder(c *gin.Context) {
	idStr := c.Param("id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, wrapper.ErrorWrapper{
			Message: "Invalid UUID format",
		})
		return
	}

	if err := h.service.DeleteOrder(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, wrapper.ErrorWrapper{
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, wrapper.SuccessWrapper{
		Message: "Order deleted",
		Success: true,
	})
}
