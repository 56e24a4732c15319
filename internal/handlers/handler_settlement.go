package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/tipstack/marketplace_backend/internal/apperrors"
	portssvc "github.com/tipstack/marketplace_backend/internal/core/ports/services"
	"github.com/tipstack/marketplace_backend/internal/dto"
	"github.com/tipstack/marketplace_backend/internal/middleware"
)

// settlementHandler handles HTTP requests related to seller settlements.
type settlementHandler struct {
	settlementService portssvc.SettlementSvcFacade
}

func newSettlementHandler(ss portssvc.SettlementSvcFacade) *settlementHandler {
	return &settlementHandler{settlementService: ss}
}

// registerSettlementRoutes registers routes related to settlements.
func registerSettlementRoutes(rg *gin.RouterGroup, settlementService portssvc.SettlementSvcFacade) {
	h := newSettlementHandler(settlementService)

	settlements := rg.Group("/settlements")
	{
		settlements.POST("", h.createSettlement)
		settlements.POST("/:settlementID/pay", h.markAsPaid)
		settlements.GET("/sellers/:sellerID/pending", h.getPendingSummary)
		settlements.GET("/sellers/:sellerID/history", h.getHistory)
		settlements.GET("/sellers/:sellerID/total-paid", h.getTotalPaidOut)
		settlements.GET("/sellers/:sellerID/breakdown", h.getDetailedBreakdown)
	}
}

// createSettlement godoc
// @Summary Materialize a closed payout period as a PENDING settlement
// @Tags settlements
// @Accept json
// @Produce json
// @Param settlement body dto.CreateSettlementRequest true "Settlement details"
// @Success 201 {object} dto.SettlementResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 409 {object} map[string]string "Period already settled"
// @Security BearerAuth
// @Router /settlements [post]
func (h *settlementHandler) createSettlement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateSettlementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateSettlement", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	settlement, err := h.settlementService.CreateSettlement(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			logger.Warn("Validation error creating settlement", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrDuplicate):
			c.JSON(http.StatusConflict, gin.H{"error": "A settlement already exists for this seller, type and period"})
		default:
			logger.Error("Failed to create settlement", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create settlement"})
		}
		return
	}
	c.JSON(http.StatusCreated, dto.ToSettlementResponse(settlement))
}

// markAsPaid godoc
// @Summary Transition a settlement from PENDING to PAID
// @Tags settlements
// @Accept json
// @Produce json
// @Param settlementID path string true "Settlement ID"
// @Param payment body dto.MarkSettlementPaidRequest true "Payment details"
// @Success 200 {object} dto.SettlementResponse
// @Failure 404 {object} map[string]string "Settlement not found"
// @Failure 409 {object} map[string]string "Settlement already paid"
// @Security BearerAuth
// @Router /settlements/{settlementID}/pay [post]
func (h *settlementHandler) markAsPaid(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	settlementID := c.Param("settlementID")

	var req dto.MarkSettlementPaidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for MarkAsPaid", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	settlement, err := h.settlementService.MarkAsPaid(c.Request.Context(), settlementID, req.PaymentMethod, req.PaymentReference)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Settlement not found"})
		case errors.Is(err, apperrors.ErrAlreadyPaid):
			c.JSON(http.StatusConflict, gin.H{"error": "Settlement has already been paid"})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to mark settlement as paid", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to mark settlement as paid"})
		}
		return
	}
	c.JSON(http.StatusOK, dto.ToSettlementResponse(settlement))
}

// getPendingSummary godoc
// @Summary Get the live pending payout projection for a seller
// @Tags settlements
// @Produce json
// @Param sellerID path string true "Seller ID"
// @Success 200 {object} domain.PendingSummary
// @Failure 400 {object} map[string]string "Invalid seller ID"
// @Security BearerAuth
// @Router /settlements/sellers/{sellerID}/pending [get]
func (h *settlementHandler) getPendingSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	summary, err := h.settlementService.PendingSummary(c.Request.Context(), c.Param("sellerID"))
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to compute pending summary", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute pending summary"})
		return
	}
	c.JSON(http.StatusOK, summary)
}

// getHistory godoc
// @Summary List a seller's settlements, newest first
// @Tags settlements
// @Produce json
// @Param sellerID path  string true  "Seller ID"
// @Param limit    query int    false "Max entries (default 20)"
// @Success 200 {array} dto.SettlementResponse
// @Security BearerAuth
// @Router /settlements/sellers/{sellerID}/history [get]
func (h *settlementHandler) getHistory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	settlements, err := h.settlementService.SettlementHistory(c.Request.Context(), c.Param("sellerID"), limit)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to list settlement history", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list settlement history"})
		return
	}
	c.JSON(http.StatusOK, dto.ToListSettlementResponse(settlements))
}

// getTotalPaidOut godoc
// @Summary Get the lifetime paid-out total for a seller
// @Tags settlements
// @Produce json
// @Param sellerID path string true "Seller ID"
// @Success 200 {object} domain.PaidOutTotal
// @Security BearerAuth
// @Router /settlements/sellers/{sellerID}/total-paid [get]
func (h *settlementHandler) getTotalPaidOut(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	total, err := h.settlementService.TotalPaidOut(c.Request.Context(), c.Param("sellerID"))
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to compute total paid out", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute total paid out"})
		return
	}
	c.JSON(http.StatusOK, total)
}

// getDetailedBreakdown godoc
// @Summary Get the full settlement dashboard view for a seller
// @Tags settlements
// @Produce json
// @Param sellerID path string true "Seller ID"
// @Success 200 {object} domain.SettlementBreakdown
// @Security BearerAuth
// @Router /settlements/sellers/{sellerID}/breakdown [get]
func (h *settlementHandler) getDetailedBreakdown(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	breakdown, err := h.settlementService.DetailedBreakdown(c.Request.Context(), c.Param("sellerID"))
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to build settlement breakdown", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build settlement breakdown"})
		return
	}
	c.JSON(http.StatusOK, breakdown)
}
