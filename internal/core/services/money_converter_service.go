package services

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/tipstack/marketplace_backend/internal/core/domain"
	portssvc "github.com/tipstack/marketplace_backend/internal/core/ports/services"
)

// moneyConverterService converts integer minor-unit amounts using rates from the
// resolver. All arithmetic happens on decimals; int64 cents only ever hold whole
// minor units.
type moneyConverterService struct {
	BaseService
	resolver portssvc.RateResolverSvcFacade
}

// NewMoneyConverterService creates the converter on top of a rate resolver.
func NewMoneyConverterService(resolver portssvc.RateResolverSvcFacade) portssvc.MoneyConverterSvcFacade {
	return &moneyConverterService{resolver: resolver}
}

// convertCents applies a rate to an amount of minor units, rounding half away
// from zero.
func convertCents(amountCents int64, rate decimal.Decimal) int64 {
	return decimal.NewFromInt(amountCents).Mul(rate).Round(0).IntPart()
}

// Convert converts a single amount between currencies.
func (s *moneyConverterService) Convert(ctx context.Context, amountCents int64, fromCurrency, toCurrency string) (*domain.Conversion, error) {
	resolved, err := s.resolver.Resolve(ctx, fromCurrency, toCurrency)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve rate for conversion: %w", err)
	}
	return &domain.Conversion{
		OriginalAmountCents:  amountCents,
		ConvertedAmountCents: convertCents(amountCents, resolved.Rate),
		ExchangeRate:         resolved.Rate,
		FromCurrency:         fromCurrency,
		ToCurrency:           toCurrency,
	}, nil
}

// ConvertReport rewrites every monetary field of a report to the target currency.
// The rate is resolved exactly once per call, so all fields of one report are
// converted consistently even if the live rate changes mid-flight.
func (s *moneyConverterService) ConvertReport(ctx context.Context, report domain.ConvertibleReport, targetCurrency string) error {
	original := report.ReportCurrency()
	if original == targetCurrency {
		return nil
	}

	resolved, err := s.resolver.Resolve(ctx, original, targetCurrency)
	if err != nil {
		return fmt.Errorf("failed to resolve rate for report conversion: %w", err)
	}

	rate := resolved.Rate
	report.RewriteAmounts(func(amountCents int64) int64 {
		return convertCents(amountCents, rate)
	})
	report.AnnotateConversion(targetCurrency, rate, original)
	return nil
}
