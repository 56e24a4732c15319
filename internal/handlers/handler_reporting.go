package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tipstack/marketplace_backend/internal/apperrors"
	"github.com/tipstack/marketplace_backend/internal/core/domain"
	portssvc "github.com/tipstack/marketplace_backend/internal/core/ports/services"
	"github.com/tipstack/marketplace_backend/internal/middleware"
)

// reportingHandler handles HTTP requests for admin reports and exports.
type reportingHandler struct {
	reportingService portssvc.ReportingSvcFacade
}

func newReportingHandler(rs portssvc.ReportingSvcFacade) *reportingHandler {
	return &reportingHandler{reportingService: rs}
}

// registerReportingRoutes registers routes related to reporting.
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingSvcFacade) {
	h := newReportingHandler(reportingService)

	reports := rg.Group("/reports")
	{
		reports.GET("/sales", h.getSalesReport)
		reports.GET("/platform", h.getPlatformIncomeReport)
		reports.GET("/settlements", h.getSettlementsReport)
		reports.GET("/sellers", h.getSellersReport)
		reports.GET("/:reportType/export", h.exportCSV)
	}
}

// parseReportFilter extracts the common report filter from query parameters.
// Dates use the "2006-01-02" form; endDate is pushed to the end of its day so
// the range is inclusive.
func parseReportFilter(c *gin.Context) (domain.ReportFilter, error) {
	filter := domain.ReportFilter{
		SellerID:  c.Query("sellerID"),
		ProductID: c.Query("productID"),
		Status:    c.Query("status"),
		Currency:  c.Query("currency"),
	}
	if raw := c.Query("startDate"); raw != "" {
		start, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return filter, fmt.Errorf("%w: invalid startDate %q", apperrors.ErrValidation, raw)
		}
		filter.StartDate = &start
	}
	if raw := c.Query("endDate"); raw != "" {
		end, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return filter, fmt.Errorf("%w: invalid endDate %q", apperrors.ErrValidation, raw)
		}
		end = end.Add(24*time.Hour - time.Nanosecond)
		filter.EndDate = &end
	}
	return filter, nil
}

func (h *reportingHandler) runReport(c *gin.Context, build func(domain.ReportFilter) (any, error)) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	filter, err := parseReportFilter(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	report, err := build(filter)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to build report", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build report"})
		return
	}
	c.JSON(http.StatusOK, report)
}

// getSalesReport godoc
// @Summary Sales report: totals plus day/seller/product breakdowns
// @Tags reports
// @Produce json
// @Param startDate query string false "Window start (2006-01-02)"
// @Param endDate   query string false "Window end (2006-01-02, inclusive)"
// @Param sellerID  query string false "Restrict to one seller"
// @Param productID query string false "Restrict to one product"
// @Param currency  query string false "Display currency (default: ledger currency)"
// @Success 200 {object} domain.SalesReport
// @Failure 400 {object} map[string]string "Invalid filter"
// @Security BearerAuth
// @Router /reports/sales [get]
func (h *reportingHandler) getSalesReport(c *gin.Context) {
	h.runReport(c, func(filter domain.ReportFilter) (any, error) {
		return h.reportingService.SalesReport(c.Request.Context(), filter)
	})
}

// getPlatformIncomeReport godoc
// @Summary Platform income report: fee totals plus monthly breakdown
// @Tags reports
// @Produce json
// @Param startDate query string false "Window start (2006-01-02)"
// @Param endDate   query string false "Window end (2006-01-02, inclusive)"
// @Param currency  query string false "Display currency (default: ledger currency)"
// @Success 200 {object} domain.PlatformIncomeReport
// @Failure 400 {object} map[string]string "Invalid filter"
// @Security BearerAuth
// @Router /reports/platform [get]
func (h *reportingHandler) getPlatformIncomeReport(c *gin.Context) {
	h.runReport(c, func(filter domain.ReportFilter) (any, error) {
		return h.reportingService.PlatformIncomeReport(c.Request.Context(), filter)
	})
}

// getSettlementsReport godoc
// @Summary Settlements report: breakdown by payout status and revenue stream
// @Tags reports
// @Produce json
// @Param startDate query string false "Window start (2006-01-02)"
// @Param endDate   query string false "Window end (2006-01-02, inclusive)"
// @Param sellerID  query string false "Restrict to one seller"
// @Param status    query string false "Restrict to one settlement status"
// @Param currency  query string false "Display currency (default: ledger currency)"
// @Success 200 {object} domain.SettlementsReport
// @Failure 400 {object} map[string]string "Invalid filter"
// @Security BearerAuth
// @Router /reports/settlements [get]
func (h *reportingHandler) getSettlementsReport(c *gin.Context) {
	h.runReport(c, func(filter domain.ReportFilter) (any, error) {
		return h.reportingService.SettlementsReport(c.Request.Context(), filter)
	})
}

// getSellersReport godoc
// @Summary Sellers report: ranking by gross revenue with active-product counts
// @Tags reports
// @Produce json
// @Param startDate query string false "Window start (2006-01-02)"
// @Param endDate   query string false "Window end (2006-01-02, inclusive)"
// @Param currency  query string false "Display currency (default: ledger currency)"
// @Success 200 {object} domain.SellersReport
// @Failure 400 {object} map[string]string "Invalid filter"
// @Security BearerAuth
// @Router /reports/sellers [get]
func (h *reportingHandler) getSellersReport(c *gin.Context) {
	h.runReport(c, func(filter domain.ReportFilter) (any, error) {
		return h.reportingService.SellersReport(c.Request.Context(), filter)
	})
}

// exportCSV godoc
// @Summary Export a report as CSV
// @Tags reports
// @Produce text/csv
// @Param reportType path  string true  "Report type" Enums(sales, platform, settlements, sellers)
// @Param startDate  query string false "Window start (2006-01-02)"
// @Param endDate    query string false "Window end (2006-01-02, inclusive)"
// @Param currency   query string false "Display currency (default: ledger currency)"
// @Success 200 {string} string "CSV payload"
// @Failure 400 {object} map[string]string "Invalid filter or report type"
// @Security BearerAuth
// @Router /reports/{reportType}/export [get]
func (h *reportingHandler) exportCSV(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	filter, err := parseReportFilter(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	reportType := domain.ReportType(c.Param("reportType"))

	csv, err := h.reportingService.ExportCSV(c.Request.Context(), reportType, filter)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to export report", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to export report"})
		return
	}

	filename := fmt.Sprintf("%s-report-%s.csv", reportType, time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "text/csv", []byte(csv))
}
