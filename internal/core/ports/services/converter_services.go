package services

import (
	"context"

	"github.com/tipstack/marketplace_backend/internal/core/domain"
)

// MoneyConverterSvcFacade converts integer minor-unit amounts between currencies
// and re-expresses whole report trees in a target currency.
type MoneyConverterSvcFacade interface {
	// Convert converts a single amount, rounding half away from zero on minor units.
	Convert(ctx context.Context, amountCents int64, fromCurrency, toCurrency string) (*domain.Conversion, error)

	// ConvertReport rewrites every monetary field of the report to the target
	// currency at a single rate resolved once per call, then annotates the report
	// with the conversion metadata. Reports already in the target currency are
	// returned unchanged.
	ConvertReport(ctx context.Context, report domain.ConvertibleReport, targetCurrency string) error
}
