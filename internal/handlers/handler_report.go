package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/myfinanceapp/mfa_backend/internal/apperrors"
	portssvc "github.com/myfinanceapp/mfa_backend/internal/core/ports/services"
	"github.com/myfinanceapp/mfa_backend/internal/dto"
	"github.com/myfinanceapp/mfa_backend/internal/middleware"
)

// reportHandler handles HTTP requests related to reports.
type reportHandler struct {
	reportService portssvc.ReportSvcFacade
}

// newReportHandler creates a new reportHandler.
func newReportHandler(rs portssvc.ReportSvcFacade) *reportHandler {
	return &reportHandler{
		reportService: rs,
	}
}

// registerReportRoutes registers routes related to reports.
func registerReportRoutes(rg *gin.RouterGroup, reportService portssvc.ReportSvcFacade) {
	h := newReportHandler(reportService)

	reports := rg.Group("/reports")
	{
		reports.GET("/:year", h.getYearlyReport)
	}
}

// getYearlyReport godoc
// @Summary Get the yearly report
// @Description Returns per-account cumulative month-end balances for the
// @Description requested calendar year, plus cross-account monthly totals.
// @Tags reports
// @Produce  json
// @Param   year path int true "Calendar year"
// @Success 200 {object} dto.YearlyReportResponse
// @Failure 400 {object} map[string]string "Invalid year"
// @Failure 404 {object} map[string]string "No accounts found"
// @Failure 500 {object} map[string]string "Failed to build report"
// @Router /reports/{year} [get]
func (h *reportHandler) getYearlyReport(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		logger.Warn("Invalid year path parameter", slog.String("year", c.Param("year")))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid year: must be an integer"})
		return
	}

	logger = logger.With(slog.Int("year", year))
	logger.Info("Received request for yearly report")

	report, err := h.reportService.GetYearlyReport(c.Request.Context(), year)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error building report", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("No accounts available for report")
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to build yearly report", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build report"})
		}
		return
	}

	logger.Info("Yearly report built successfully", slog.Int("accounts", len(report.Accounts)))
	c.JSON(http.StatusOK, dto.ToYearlyReportResponse(report))
}
