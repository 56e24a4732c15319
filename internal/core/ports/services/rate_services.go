package services

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/tipstack/marketplace_backend/internal/core/domain"
)

// RateResolverSvcFacade decides the effective exchange rate for a currency pair.
// Resolution never fails on provider errors: the resolver degrades through the
// last persisted rate and finally a built-in default, flagging the result as
// degraded so callers can tell fresh rates from fallback ones.
type RateResolverSvcFacade interface {
	// Resolve returns the effective rate for base→target.
	Resolve(ctx context.Context, baseCurrency, targetCurrency string) (*domain.ResolvedRate, error)

	// SetManualRate persists an admin override for a pair and evicts it from cache.
	// Overrides take precedence over cache and provider until removed.
	SetManualRate(ctx context.Context, baseCurrency, targetCurrency string, rate decimal.Decimal, actorID string) (*domain.ResolvedRate, error)

	// RemoveManualOverride reverts a pair to automatic resolution without
	// deleting the stored record.
	RemoveManualOverride(ctx context.Context, baseCurrency, targetCurrency string) error

	// ListRates resolves all configured primary pairs.
	ListRates(ctx context.Context) ([]domain.ResolvedRate, error)

	// RateHistory returns recent rate changes for a pair, newest first.
	RateHistory(ctx context.Context, baseCurrency, targetCurrency string, limit int) ([]domain.ExchangeRateHistoryEntry, error)
}
