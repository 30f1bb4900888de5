// internal/handler/dashboard_handler.go
package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/imperia-dev/imperia-data-insight-sub000/internal/entity"
	"github.com/imperia-dev/imperia-data-insight-sub000/internal/model/response/wrapper"
	"github.com/imperia-dev/imperia-data-insight-sub000/internal/service/dashboard"
)

type DashboardHandler struct {
	service *dashboard.DashboardService
}

func NewDashboardHandler(service *dashboard.DashboardService) *DashboardHandler {
	return &DashboardHandler{
		service: service,
	}
}

// GetSnapshot godoc
// @Summary      Get metrics snapshot
// @Description  Get the full metrics snapshot for a reporting period
// @Tags         /api/v1/dashboard
// @Accept       json
// @Produce      json
// @Param        period  query     string  false  "Period: day, week, month, quarter, year or custom (default: month)"
// @Param        from    query     string  false  "Custom range start (YYYY-MM-DD or RFC3339)"
// @Param        to      query     string  false  "Custom range end (YYYY-MM-DD or RFC3339)"
// @Success      200     {object}  wrapper.ResponseWrapper{data=entity.Snapshot}
// @Failure      400     {object}  wrapper.ErrorWrapper
// @Failure      500     {object}  wrapper.ErrorWrapper
// @Router       /dashboard/snapshot [get]
func (h *DashboardHandler) GetSnapshot(c *gin.Context) {
	period, custom, err := ParsePeriodQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, wrapper.ErrorWrapper{
			Message: err.Error(),
		})
		return
	}

	snapshot, err := h.service.GetSnapshot(c.Request.Context(), period, custom)
	if err != nil {
		c.JSON(http.StatusInternalServerError, wrapper.ErrorWrapper{
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, wrapper.ResponseWrapper{
		Data:    snapshot,
		Success: true,
	})
}

// ParsePeriodQuery reads the period selector and optional custom bounds
// from the query string. An unknown selector is passed through as-is:
// the resolver falls back to the month window, mirroring what the
// dashboard front-end expects.
func ParsePeriodQuery(c *gin.Context) (entity.Period, *entity.CustomRange, error) {
	period := entity.Period(c.DefaultQuery("period", string(entity.PeriodMonth)))

	var custom *entity.CustomRange
	fromStr := c.Query("from")
	toStr := c.Query("to")

	if fromStr != "" && toStr != "" {
		from, err := parseTimeParam(fromStr)
		if err != nil {
			return "", nil, err
		}
		to, err := parseTimeParam(toStr)
		if err != nil {
			return "", nil, err
		}
		custom = &entity.CustomRange{From: from, To: to}
	}

	return period, custom, nil
}

func parseTimeParam(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", value)
}
