package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RateSource identifies where an exchange rate value came from.
type RateSource string

const (
	// RateSourceProvider marks rates fetched from the remote rate provider.
	RateSourceProvider RateSource = "PROVIDER"
	// RateSourceManual marks rates set by an administrator.
	RateSourceManual RateSource = "MANUAL"
)

// ExchangeRate is the live rate record for one currency pair. There is at most one
// record per (BaseCurrency, TargetCurrency); a manual override and a provider value
// are mutually exclusive at any instant (the override wins during resolution).
type ExchangeRate struct {
	BaseCurrency     string          `json:"baseCurrency"`
	TargetCurrency   string          `json:"targetCurrency"`
	Rate             decimal.Decimal `json:"rate"`
	Source           RateSource      `json:"source"`
	IsManualOverride bool            `json:"isManualOverride"`
	FetchedAt        time.Time       `json:"fetchedAt"`
	ValidFrom        time.Time       `json:"validFrom"`
	CreatedAt        time.Time       `json:"createdAt"`
	UpdatedAt        time.Time       `json:"updatedAt"`
}

// ExchangeRateHistoryEntry is an immutable snapshot written alongside every rate
// change. Entries are never mutated or deleted.
type ExchangeRateHistoryEntry struct {
	BaseCurrency   string          `json:"baseCurrency"`
	TargetCurrency string          `json:"targetCurrency"`
	Rate           decimal.Decimal `json:"rate"`
	Source         RateSource      `json:"source"`
	ChangedBy      string          `json:"changedBy,omitempty"` // empty for provider-sourced changes
	CreatedAt      time.Time       `json:"createdAt"`
}

// ResolvedRate is the outcome of a rate resolution. Degraded is true when the rate
// did not come from a fresh source (stale persisted value or built-in default), so
// callers can distinguish fresh rates from fallback ones.
type ResolvedRate struct {
	BaseCurrency     string          `json:"baseCurrency"`
	TargetCurrency   string          `json:"targetCurrency"`
	Rate             decimal.Decimal `json:"rate"`
	Source           RateSource      `json:"source"`
	IsManualOverride bool            `json:"isManualOverride"`
	Degraded         bool            `json:"degraded"`
	UpdatedAt        time.Time       `json:"updatedAt"`
}

// Conversion is the result of converting a single amount between currencies.
// Amounts are integer minor units; the converted amount is rounded half away
// from zero so fractional minor units never escape.
type Conversion struct {
	OriginalAmountCents  int64           `json:"originalAmountCents"`
	ConvertedAmountCents int64           `json:"convertedAmountCents"`
	ExchangeRate         decimal.Decimal `json:"exchangeRate"`
	FromCurrency         string          `json:"fromCurrency"`
	ToCurrency           string          `json:"toCurrency"`
}
