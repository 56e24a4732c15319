package providers

import (
	"context"

	"github.com/shopspring/decimal"
)

// RateProvider is the outbound port for the remote exchange-rate provider.
// The provider is treated as untrusted and unreliable: implementations must
// bound every call with a timeout, and callers absorb all errors through the
// resolver's fallback chain.
type RateProvider interface {
	// FetchRates returns the provider's full rate table for the base currency,
	// keyed by target currency code.
	FetchRates(ctx context.Context, baseCurrency string) (map[string]decimal.Decimal, error)
}
