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

// exchangeRateHandler handles HTTP requests related to exchange rates and conversions.
type exchangeRateHandler struct {
	rateResolver   portssvc.RateResolverSvcFacade
	moneyConverter portssvc.MoneyConverterSvcFacade
}

func newExchangeRateHandler(resolver portssvc.RateResolverSvcFacade, converter portssvc.MoneyConverterSvcFacade) *exchangeRateHandler {
	return &exchangeRateHandler{
		rateResolver:   resolver,
		moneyConverter: converter,
	}
}

// RegisterExchangeRateRoutes registers routes related to exchange rates.
func RegisterExchangeRateRoutes(rg *gin.RouterGroup, resolver portssvc.RateResolverSvcFacade, converter portssvc.MoneyConverterSvcFacade) {
	h := newExchangeRateHandler(resolver, converter)

	rates := rg.Group("/rates")
	{
		rates.GET("", h.listRates)
		rates.GET("/:from/:to", h.getRate)
		rates.GET("/:from/:to/history", h.getRateHistory)
		rates.PUT("/:from/:to/override", h.setManualRate)
		rates.DELETE("/:from/:to/override", h.removeManualOverride)
		rates.POST("/convert", h.convertAmount)
	}
}

// listRates godoc
// @Summary List resolved rates for the primary currency pairs
// @Tags rates
// @Produce json
// @Success 200 {array} dto.ResolvedRateResponse
// @Failure 500 {object} map[string]string "Failed to resolve rates"
// @Security BearerAuth
// @Router /rates [get]
func (h *exchangeRateHandler) listRates(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	rates, err := h.rateResolver.ListRates(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list rates", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve rates"})
		return
	}
	c.JSON(http.StatusOK, dto.ToListResolvedRateResponse(rates))
}

// getRate godoc
// @Summary Resolve the effective exchange rate for a currency pair
// @Tags rates
// @Produce json
// @Param from path string true "Base currency code (3 letters)"
// @Param to   path string true "Target currency code (3 letters)"
// @Success 200 {object} dto.ResolvedRateResponse
// @Failure 400 {object} map[string]string "Invalid currency code format"
// @Security BearerAuth
// @Router /rates/{from}/{to} [get]
func (h *exchangeRateHandler) getRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	resolved, err := h.rateResolver.Resolve(c.Request.Context(), c.Param("from"), c.Param("to"))
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to resolve rate", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve rate"})
		return
	}
	c.JSON(http.StatusOK, dto.ToResolvedRateResponse(resolved))
}

// getRateHistory godoc
// @Summary List recent rate changes for a currency pair
// @Tags rates
// @Produce json
// @Param from  path  string true  "Base currency code (3 letters)"
// @Param to    path  string true  "Target currency code (3 letters)"
// @Param limit query int    false "Max entries (default 30)"
// @Success 200 {array} dto.RateHistoryEntryResponse
// @Failure 400 {object} map[string]string "Invalid currency code format"
// @Security BearerAuth
// @Router /rates/{from}/{to}/history [get]
func (h *exchangeRateHandler) getRateHistory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "30"))

	entries, err := h.rateResolver.RateHistory(c.Request.Context(), c.Param("from"), c.Param("to"), limit)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to list rate history", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list rate history"})
		return
	}
	c.JSON(http.StatusOK, dto.ToRateHistoryResponse(entries))
}

// setManualRate godoc
// @Summary Set a manual rate override for a currency pair
// @Tags rates
// @Accept json
// @Produce json
// @Param from path string true "Base currency code (3 letters)"
// @Param to   path string true "Target currency code (3 letters)"
// @Param rate body dto.SetManualRateRequest true "Override details"
// @Success 200 {object} dto.ResolvedRateResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /rates/{from}/{to}/override [put]
func (h *exchangeRateHandler) setManualRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.SetManualRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for SetManualRate", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	if req.BaseCurrency != c.Param("from") || req.TargetCurrency != c.Param("to") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Currency pair in body must match the path"})
		return
	}

	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Actor user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	resolved, err := h.rateResolver.SetManualRate(c.Request.Context(), req.BaseCurrency, req.TargetCurrency, req.Rate, actorID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error setting manual rate", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to set manual rate", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to set manual rate"})
		return
	}

	logger.Info("Manual rate override set",
		slog.String("base", req.BaseCurrency),
		slog.String("target", req.TargetCurrency),
		slog.String("actor_id", actorID))
	c.JSON(http.StatusOK, dto.ToResolvedRateResponse(resolved))
}

// removeManualOverride godoc
// @Summary Remove the manual rate override for a currency pair
// @Tags rates
// @Produce json
// @Param from path string true "Base currency code (3 letters)"
// @Param to   path string true "Target currency code (3 letters)"
// @Success 204 "Override removed"
// @Failure 404 {object} map[string]string "Override not found"
// @Security BearerAuth
// @Router /rates/{from}/{to}/override [delete]
func (h *exchangeRateHandler) removeManualOverride(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	err := h.rateResolver.RemoveManualOverride(c.Request.Context(), c.Param("from"), c.Param("to"))
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "No rate record for this pair"})
		default:
			logger.Error("Failed to remove manual override", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove manual override"})
		}
		return
	}
	c.Status(http.StatusNoContent)
}

// convertAmount godoc
// @Summary Convert an amount between currencies
// @Tags rates
// @Accept json
// @Produce json
// @Param conversion body dto.ConvertAmountRequest true "Conversion details"
// @Success 200 {object} dto.ConversionResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Security BearerAuth
// @Router /rates/convert [post]
func (h *exchangeRateHandler) convertAmount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ConvertAmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ConvertAmount", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	conversion, err := h.moneyConverter.Convert(c.Request.Context(), req.AmountCents, req.FromCurrency, req.ToCurrency)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to convert amount", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to convert amount"})
		return
	}
	c.JSON(http.StatusOK, dto.ToConversionResponse(conversion))
}
