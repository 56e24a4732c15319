package repositories

import (
	"context"

	"github.com/tipstack/marketplace_backend/internal/core/domain"
)

// ExchangeRateReader defines read operations for exchange rate data.
type ExchangeRateReader interface {
	// FindManualOverride retrieves the live record for a pair only if it is a
	// manual override. Returns apperrors.ErrNotFound otherwise.
	FindManualOverride(ctx context.Context, baseCurrency, targetCurrency string) (*domain.ExchangeRate, error)

	// FindRate retrieves the live record for a pair regardless of source.
	// Returns apperrors.ErrNotFound when the pair has never been persisted.
	FindRate(ctx context.Context, baseCurrency, targetCurrency string) (*domain.ExchangeRate, error)

	// ListHistory returns the most recent history entries for a pair, newest first.
	ListHistory(ctx context.Context, baseCurrency, targetCurrency string, limit int) ([]domain.ExchangeRateHistoryEntry, error)
}

// ExchangeRateWriter defines write operations for exchange rate data.
type ExchangeRateWriter interface {
	// UpsertProviderRate writes a freshly fetched provider rate for a pair.
	// On insert the audit fields are initialized; on update the manual-override
	// flag is left untouched.
	UpsertProviderRate(ctx context.Context, rate domain.ExchangeRate) error

	// UpsertManualRate persists an admin override for a pair, creating the record
	// if it does not exist.
	UpsertManualRate(ctx context.Context, rate domain.ExchangeRate) error

	// ClearManualOverride flips the override flag back to provider-sourced without
	// deleting the record. Returns apperrors.ErrNotFound for an unknown pair.
	ClearManualOverride(ctx context.Context, baseCurrency, targetCurrency string) error

	// AppendHistory writes one immutable history entry.
	AppendHistory(ctx context.Context, entry domain.ExchangeRateHistoryEntry) error
}

// ExchangeRateRepositoryFacade combines all exchange rate-related repository interfaces.
type ExchangeRateRepositoryFacade interface {
	ExchangeRateReader
	ExchangeRateWriter
}
