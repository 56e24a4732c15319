package dto

import (
	"github.com/shopspring/decimal"
	"github.com/tipstack/marketplace_backend/internal/core/domain"
)

// ConvertAmountRequest defines the payload for a single amount conversion.
type ConvertAmountRequest struct {
	AmountCents  int64  `json:"amountCents" binding:"required"`
	FromCurrency string `json:"fromCurrency" binding:"required,len=3,uppercase"`
	ToCurrency   string `json:"toCurrency" binding:"required,len=3,uppercase"`
}

// ConversionResponse is the API shape of a conversion result.
type ConversionResponse struct {
	OriginalAmountCents  int64           `json:"originalAmountCents"`
	ConvertedAmountCents int64           `json:"convertedAmountCents"`
	ExchangeRate         decimal.Decimal `json:"exchangeRate"`
	FromCurrency         string          `json:"fromCurrency"`
	ToCurrency           string          `json:"toCurrency"`
}

// ToConversionResponse converts a domain.Conversion to its response DTO.
func ToConversionResponse(c *domain.Conversion) ConversionResponse {
	return ConversionResponse{
		OriginalAmountCents:  c.OriginalAmountCents,
		ConvertedAmountCents: c.ConvertedAmountCents,
		ExchangeRate:         c.ExchangeRate,
		FromCurrency:         c.FromCurrency,
		ToCurrency:           c.ToCurrency,
	}
}
