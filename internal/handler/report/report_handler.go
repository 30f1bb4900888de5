// internal/handler/report_handler.go
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	dashboardHandler "github.com/imperia-dev/imperia-data-insight-sub000/internal/handler/dashboard"
	"github.com/imperia-dev/imperia-data-insight-sub000/internal/model/response/wrapper"
	"github.com/imperia-dev/imperia-data-insight-sub000/internal/service/report"
)

type ReportHandler struct {
	service *report.ReportService
}

func NewReportHandler(service *report.ReportService) *ReportHandler {
	return &ReportHandler{
		service: service,
	}
}

// GetReport godoc
// @Summary      Get pre-formatted report
// @Description  Get the report payload consumed by the dispatch bot, with display-ready values
// @Tags         /api/v1/reports
// @Accept       json
// @Produce      json
// @Param        period  query     string  false  "Period: day, week, month, quarter, year or custom (default: month)"
// @Param        from    query     string  false  "Custom range start (YYYY-MM-DD or RFC3339)"
// @Param        to      query     string  false  "Custom range end (YYYY-MM-DD or RFC3339)"
// @Success      200     {object}  wrapper.ResponseWrapper{data=response.Report}
// @Failure      400     {object}  wrapper.ErrorWrapper
// @Failure      401     {object}  wrapper.ErrorWrapper
// @Failure      500     {object}  wrapper.ErrorWrapper
// @Router       /reports [get]
func (h *ReportHandler) GetReport(c *gin.Context) {
	period, custom, err := dashboardHandler.ParsePeriodQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, wrapper.ErrorWrapper{
			Message: err.Error(),
		})
		return
	}

	rep, err := h.service.BuildReport(c.Request.Context(), period, custom)
	if err != nil {
		c.JSON(http.StatusInternalServerError, wrapper.ErrorWrapper{
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, wrapper.ResponseWrapper{
		Data:    rep,
		Success: true,
	})
}
