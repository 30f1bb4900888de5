// internal/handler/productivity_handler.go
package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/imperia-dev/imperia-data-insight-sub000/internal/model/response/wrapper"
	"github.com/imperia-dev/imperia-data-insight-sub000/internal/service/productivity"
)

type ProductivityHandler struct {
	service *productivity.ProductivityService
}

func NewProductivityHandler(service *productivity.ProductivityService) *ProductivityHandler {
	return &ProductivityHandler{
		service: service,
	}
}

// GetWorkerProductivity godoc
// @Summary      Get worker productivity
// @Description  Get the full productivity rollup for one worker
// @Tags         /api/v1/productivity
// @Accept       json
// @Produce      json
// @Param        workerId  path      string  true  "Worker ID"
// @Success      200       {object}  wrapper.ResponseWrapper{data=entity.ProductivityStats}
// @Failure      400       {object}  wrapper.ErrorWrapper
// @Failure      500       {object}  wrapper.ErrorWrapper
// @Router       /productivity/workers/{workerId} [get]
func (h *ProductivityHandler) GetWorkerProductivity(c *gin.Context) {
	workerID := c.Param("workerId")

	stats, err := h.service.GetWorkerProductivity(c.Request.Context(), workerID)
	if err != nil {
		if strings.Contains(err.Error(), "invalid worker ID") || strings.Contains(err.Error(), "required") {
			c.JSON(http.StatusBadRequest, wrapper.ErrorWrapper{
				Message: err.Error(),
			})
			return
		}
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

// GetAllWorkersProductivity godoc
// @Summary      Get all workers productivity
// @Description  Get productivity rollups for every worker with orders on record
// @Tags         /api/v1/productivity
// @Accept       json
// @Produce      json
// @Success      200  {object}  wrapper.ResponseWrapper{data=[]entity.ProductivityStats}
// @Failure      500  {object}  wrapper.ErrorWrapper
// @Router       /productivity/workers [get]
func (h *ProductivityHandler) GetAllWorkersProductivity(c *gin.Context) {
	results, err := h.service.GetAllWorkersProductivity(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, wrapper.ErrorWrapper{
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, wrapper.ResponseWrapper{
		Data:    results,
		Success: true,
	})
}
