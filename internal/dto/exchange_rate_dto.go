package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tipstack/marketplace_backend/internal/core/domain"
)

// SetManualRateRequest defines the payload for setting an admin rate override.
type SetManualRateRequest struct {
	BaseCurrency   string          `json:"baseCurrency" binding:"required,len=3,uppercase"`
	TargetCurrency string          `json:"targetCurrency" binding:"required,len=3,uppercase"`
	Rate           decimal.Decimal `json:"rate" binding:"required"`
}

// ResolvedRateResponse is the API shape of a rate resolution result.
type ResolvedRateResponse struct {
	BaseCurrency     string          `json:"baseCurrency"`
	TargetCurrency   string          `json:"targetCurrency"`
	Rate             decimal.Decimal `json:"rate"`
	Source           string          `json:"source"`
	IsManualOverride bool            `json:"isManualOverride"`
	Degraded         bool            `json:"degraded"`
	UpdatedAt        time.Time       `json:"updatedAt"`
}

// ToResolvedRateResponse converts a domain.ResolvedRate to its response DTO.
func ToResolvedRateResponse(rate *domain.ResolvedRate) ResolvedRateResponse {
	return ResolvedRateResponse{
		BaseCurrency:     rate.BaseCurrency,
		TargetCurrency:   rate.TargetCurrency,
		Rate:             rate.Rate,
		Source:           string(rate.Source),
		IsManualOverride: rate.IsManualOverride,
		Degraded:         rate.Degraded,
		UpdatedAt:        rate.UpdatedAt,
	}
}

// ToListResolvedRateResponse converts a slice of resolved rates to response DTOs.
func ToListResolvedRateResponse(rates []domain.ResolvedRate) []ResolvedRateResponse {
	responses := make([]ResolvedRateResponse, len(rates))
	for i := range rates {
		responses[i] = ToResolvedRateResponse(&rates[i])
	}
	return responses
}

// RateHistoryEntryResponse is the API shape of one rate-change audit entry.
type RateHistoryEntryResponse struct {
	BaseCurrency   string          `json:"baseCurrency"`
	TargetCurrency string          `json:"targetCurrency"`
	Rate           decimal.Decimal `json:"rate"`
	Source         string          `json:"source"`
	ChangedBy      string          `json:"changedBy,omitempty"`
	CreatedAt      time.Time       `json:"createdAt"`
}

// ToRateHistoryResponse converts history entries to response DTOs.
func ToRateHistoryResponse(entries []domain.ExchangeRateHistoryEntry) []RateHistoryEntryResponse {
	responses := make([]RateHistoryEntryResponse, len(entries))
	for i, e := range entries {
		responses[i] = RateHistoryEntryResponse{
			BaseCurrency:   e.BaseCurrency,
			TargetCurrency: e.TargetCurrency,
			Rate:           e.Rate,
			Source:         string(e.Source),
			ChangedBy:      e.ChangedBy,
			CreatedAt:      e.CreatedAt,
		}
	}
	return responses
}
