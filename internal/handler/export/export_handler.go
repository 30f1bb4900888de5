package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid"
	dashboardHandler "github.com/imperia-dev/imperia-data-insight-sub000/internal/handler/dashboard"
	"github.com/imperia-dev/imperia-data-insight-sub000/internal/model/response/wrapper"
	"github.com/imperia-dev/imperia-data-insight-sub000/internal/repository"
	"github.com/imperia-dev/imperia-data-insight-sub000/internal/service/dashboard"
	"github.com/imperia-dev/imperia-data-insight-sub000/pkg/utils"
)

type ExportHandler struct {
	dashboardSrv *dashboard.DashboardService
	userRepo     *repository.UserRepository
}

func NewExportHandler(dashboardSrv *dashboard.DashboardService, userRepo *repository.UserRepository) *ExportHandler {
	return &ExportHandler{
		dashboardSrv: dashboardSrv,
		userRepo:     userRepo,
	}
}

// VerifyAdmin - usado pelo auth_request do nginx
// @Summary Verify admin access for nginx auth_request
// @Description Internal endpoint for nginx auth_request to verify admin access
// @Tags Exports
// @Accept json
// @Produce json
// @Success 200 "Admin access granted"
// @Failure 401 {object} wrapper.ErrorWrapper
// @Router /api/auth/verify-admin [get]
func (h *ExportHandler) VerifyAdmin(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		c.JSON(http.StatusUnauthorized, wrapper.ErrorWrapper{
			Message: "Missing authorization header",
			Success: false,
		})
		return
	}

	tokenString := authHeader
	if len(authHeader) > 7 && authHeader[:7] == "Bearer " {
		tokenString = authHeader[7:]
	}

	claims, err := utils.ValidateToken(tokenString)
	if err != nil {
		c.JSON(http.StatusUnauthorized, wrapper.ErrorWrapper{
			Message: "Invalid token",
			Success: false,
		})
		return
	}

	userUUID, err := uuid.FromString(claims["user_id"].(string))
	if err != nil {
		c.JSON(http.StatusUnauthorized, wrapper.ErrorWrapper{
			Message: "Invalid user ID",
			Success: false,
		})
		return
	}

	isSuperAdmin, err := h.userRepo.IsUserSuperAdmin(userUUID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, wrapper.ErrorWrapper{
			Message: "Failed to check admin status",
			Success: false,
		})
		return
	}

	if !isSuperAdmin {
		c.JSON(http.StatusForbidden, wrapper.ErrorWrapper{
			Message: "Super admin access required",
			Success: false,
		})
		return
	}

	c.Status(http.StatusOK)
}

// ExportSnapshotCSV godoc
// @Summary Export metrics snapshot as CSV
// @Description Export the current metrics snapshot for a period as a CSV file
// @Tags Exports
// @Accept json
// @Produce text/csv
// @Param period query string false "Period (day, week, month, quarter, year, custom)" default(month)
// @Param from query string false "Custom range start (RFC3339 or YYYY-MM-DD)"
// @Param to query string false "Custom range end (RFC3339 or YYYY-MM-DD)"
// @Success 200 {string} string "CSV file"
// @Failure 400 {object} wrapper.ErrorWrapper
// @Failure 500 {object} wrapper.ErrorWrapper
// @Router /exports/snapshot.csv [get]
func (h *ExportHandler) ExportSnapshotCSV(c *gin.Context) {
	period, custom, err := dashboardHandler.ParsePeriodQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, wrapper.ErrorWrapper{
			Message: err.Error(),
			Success: false,
		})
		return
	}

	snapshot, err := h.dashboardSrv.GetSnapshot(c.Request.Context(), period, custom)
	if err != nil {
		c.JSON(http.StatusInternalServerError, wrapper.ErrorWrapper{
			Message: err.Error(),
			Success: false,
		})
		return
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	summary := [][]string{
		{"metric", "value"},
		{"period", string(snapshot.Period)},
		{"window_start", snapshot.Window.Start.Format(time.RFC3339)},
		{"window_end", snapshot.Window.End.Format(time.RFC3339)},
		{"generated_at", snapshot.GeneratedAt.Format(time.RFC3339)},
		{"created_documents", strconv.Itoa(snapshot.Totals.CreatedDocuments)},
		{"attributed_documents", strconv.Itoa(snapshot.Totals.AttributedDocuments)},
		{"in_progress_documents", strconv.Itoa(snapshot.Totals.InProgressDocuments)},
		{"delivered_documents", strconv.Itoa(snapshot.Totals.DeliveredDocuments)},
		{"urgent_documents", strconv.Itoa(snapshot.Totals.UrgentDocuments)},
		{"delayed_documents", strconv.Itoa(snapshot.Totals.DelayedDocuments)},
		{"on_time_deliveries", strconv.Itoa(snapshot.Totals.OnTimeDeliveries)},
		{"pendency_count", strconv.Itoa(snapshot.Totals.PendencyCount)},
		{"urgency_rate", strconv.FormatFloat(snapshot.Rates.UrgencyRate, 'f', 1, 64)},
		{"pendency_rate", strconv.FormatFloat(snapshot.Rates.PendencyRate, 'f', 1, 64)},
		{"delay_rate", strconv.FormatFloat(snapshot.Rates.DelayRate, 'f', 1, 64)},
		{"on_time_rate", strconv.FormatFloat(snapshot.Rates.OnTimeRate, 'f', 1, 64)},
		{"goal_attainment", strconv.FormatFloat(snapshot.Rates.GoalAttainment, 'f', 1, 64)},
		{"capacity_usage", strconv.FormatFloat(snapshot.Rates.CapacityUsage, 'f', 1, 64)},
	}
	if err := w.WriteAll(summary); err != nil {
		c.JSON(http.StatusInternalServerError, wrapper.ErrorWrapper{
			Message: "Cannot build CSV export",
			Success: false,
		})
		return
	}

	w.Write([]string{})
	w.Write([]string{"bucket", "label", "start", "end", "documents", "pendencies", "running_total"})
	for _, b := range snapshot.Buckets {
		w.Write([]string{
			strconv.Itoa(b.Index),
			b.Label,
			b.Start.Format(time.RFC3339),
			b.End.Format(time.RFC3339),
			strconv.Itoa(b.Documents),
			strconv.Itoa(b.Pendencies),
			strconv.Itoa(b.RunningTotal),
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		c.JSON(http.StatusInternalServerError, wrapper.ErrorWrapper{
			Message: "Cannot build CSV export",
			Success: false,
		})
		return
	}

	filename := fmt.Sprintf("snapshot_%s_%s.csv", snapshot.Period, snapshot.Window.Start.Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}
