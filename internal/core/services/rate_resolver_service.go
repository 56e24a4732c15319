package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tipstack/marketplace_backend/internal/apperrors"
	"github.com/tipstack/marketplace_backend/internal/core/domain"
	portsprov "github.com/tipstack/marketplace_backend/internal/core/ports/providers"
	portsrepo "github.com/tipstack/marketplace_backend/internal/core/ports/repositories"
	portssvc "github.com/tipstack/marketplace_backend/internal/core/ports/services"
	"github.com/tipstack/marketplace_backend/internal/platform/ratecache"
)

// primaryPairs are the currency pairs resolved by ListRates and pre-warmed on
// the admin rate dashboard.
var primaryPairs = [][2]string{
	{"EUR", "USD"},
	{"USD", "EUR"},
	{"EUR", "GBP"},
	{"GBP", "EUR"},
}

// defaultRates are the hardcoded last-resort rates used when every other
// resolution step has failed. Unknown pairs fall back to 1.0.
var defaultRates = map[string]decimal.Decimal{
	"EUR_USD": decimal.NewFromFloat(1.08),
	"USD_EUR": decimal.NewFromFloat(0.93),
}

// rateResolverService resolves effective exchange rates through a fallback chain:
// identity, manual override, cache, provider, last persisted rate, built-in default.
type rateResolverService struct {
	BaseService
	rateRepo portsrepo.ExchangeRateRepositoryFacade
	provider portsprov.RateProvider
	cache    *ratecache.Cache
	now      func() time.Time
}

// RateResolverOption configures optional dependencies of the resolver.
type RateResolverOption func(*rateResolverService)

// WithRateResolverClock overrides the clock, for tests.
func WithRateResolverClock(now func() time.Time) RateResolverOption {
	return func(s *rateResolverService) {
		s.now = now
	}
}

// NewRateResolverService creates the rate resolver. The cache is injected so
// its lifecycle is owned by the caller.
func NewRateResolverService(rateRepo portsrepo.ExchangeRateRepositoryFacade, provider portsprov.RateProvider, cache *ratecache.Cache, opts ...RateResolverOption) portssvc.RateResolverSvcFacade {
	s := &rateResolverService{
		rateRepo: rateRepo,
		provider: provider,
		cache:    cache,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func validateCurrencyPair(baseCurrency, targetCurrency string) error {
	if len(baseCurrency) != 3 || len(targetCurrency) != 3 {
		return fmt.Errorf("%w: currency codes must be 3 letters", apperrors.ErrValidation)
	}
	if baseCurrency != strings.ToUpper(baseCurrency) || targetCurrency != strings.ToUpper(targetCurrency) {
		return fmt.Errorf("%w: currency codes must be uppercase", apperrors.ErrValidation)
	}
	return nil
}

// Resolve walks the fallback chain for base→target. It only returns an error
// on invalid input; provider and storage failures degrade instead of failing.
func (s *rateResolverService) Resolve(ctx context.Context, baseCurrency, targetCurrency string) (*domain.ResolvedRate, error) {
	if err := validateCurrencyPair(baseCurrency, targetCurrency); err != nil {
		return nil, err
	}
	now := s.now()

	// Same-currency conversion is always 1 and never touches storage.
	if baseCurrency == targetCurrency {
		return &domain.ResolvedRate{
			BaseCurrency:   baseCurrency,
			TargetCurrency: targetCurrency,
			Rate:           decimal.NewFromInt(1),
			Source:         domain.RateSourceProvider,
			UpdatedAt:      now,
		}, nil
	}

	// Manual override beats everything, including fresher provider data.
	override, err := s.rateRepo.FindManualOverride(ctx, baseCurrency, targetCurrency)
	if err == nil {
		return &domain.ResolvedRate{
			BaseCurrency:     baseCurrency,
			TargetCurrency:   targetCurrency,
			Rate:             override.Rate,
			Source:           domain.RateSourceManual,
			IsManualOverride: true,
			UpdatedAt:        override.UpdatedAt,
		}, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		s.LogWarn(ctx, "override lookup failed, continuing down the chain",
			slog.String("base", baseCurrency), slog.String("target", targetCurrency), slog.String("error", err.Error()))
	}

	if entry, ok := s.cache.Get(baseCurrency, targetCurrency, now); ok {
		return &domain.ResolvedRate{
			BaseCurrency:   baseCurrency,
			TargetCurrency: targetCurrency,
			Rate:           entry.Rate,
			Source:         domain.RateSourceProvider,
			UpdatedAt:      entry.FetchedAt,
		}, nil
	}

	rate, fetchErr := s.fetchAndPersist(ctx, baseCurrency, targetCurrency, now)
	if fetchErr == nil {
		return rate, nil
	}
	s.LogWarn(ctx, "provider fetch failed, falling back to persisted rate",
		slog.String("base", baseCurrency), slog.String("target", targetCurrency), slog.String("error", fetchErr.Error()))

	// Last persisted rate, stale but real.
	saved, err := s.rateRepo.FindRate(ctx, baseCurrency, targetCurrency)
	if err == nil {
		return &domain.ResolvedRate{
			BaseCurrency:   baseCurrency,
			TargetCurrency: targetCurrency,
			Rate:           saved.Rate,
			Source:         saved.Source,
			Degraded:       true,
			UpdatedAt:      saved.UpdatedAt,
		}, nil
	}

	// Built-in defaults keep checkout and reporting alive during a full outage.
	s.LogWarn(ctx, "no persisted rate, using built-in default",
		slog.String("base", baseCurrency), slog.String("target", targetCurrency))
	return &domain.ResolvedRate{
		BaseCurrency:   baseCurrency,
		TargetCurrency: targetCurrency,
		Rate:           defaultRate(baseCurrency, targetCurrency),
		Source:         domain.RateSourceProvider,
		Degraded:       true,
		UpdatedAt:      now,
	}, nil
}

func defaultRate(baseCurrency, targetCurrency string) decimal.Decimal {
	if rate, ok := defaultRates[baseCurrency+"_"+targetCurrency]; ok {
		return rate
	}
	return decimal.NewFromInt(1)
}

// fetchAndPersist pulls the provider's rate table for the base currency and
// writes the requested pair through the cache, the live record and history.
func (s *rateResolverService) fetchAndPersist(ctx context.Context, baseCurrency, targetCurrency string, now time.Time) (*domain.ResolvedRate, error) {
	rates, err := s.provider.FetchRates(ctx, baseCurrency)
	if err != nil {
		return nil, err
	}
	rate, ok := rates[targetCurrency]
	if !ok {
		return nil, fmt.Errorf("provider has no rate for %s→%s", baseCurrency, targetCurrency)
	}

	s.cache.Put(baseCurrency, targetCurrency, rate, now)

	record := domain.ExchangeRate{
		BaseCurrency:   baseCurrency,
		TargetCurrency: targetCurrency,
		Rate:           rate,
		Source:         domain.RateSourceProvider,
		FetchedAt:      now,
		ValidFrom:      now,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.rateRepo.UpsertProviderRate(ctx, record); err != nil {
		// The fresh rate is still usable; persistence failure only costs us the
		// fallback copy.
		s.LogError(ctx, err, "failed to persist provider rate",
			slog.String("base", baseCurrency), slog.String("target", targetCurrency))
	} else if err := s.rateRepo.AppendHistory(ctx, domain.ExchangeRateHistoryEntry{
		BaseCurrency:   baseCurrency,
		TargetCurrency: targetCurrency,
		Rate:           rate,
		Source:         domain.RateSourceProvider,
		CreatedAt:      now,
	}); err != nil {
		s.LogError(ctx, err, "failed to append rate history",
			slog.String("base", baseCurrency), slog.String("target", targetCurrency))
	}

	return &domain.ResolvedRate{
		BaseCurrency:   baseCurrency,
		TargetCurrency: targetCurrency,
		Rate:           rate,
		Source:         domain.RateSourceProvider,
		UpdatedAt:      now,
	}, nil
}

// SetManualRate persists an admin override and evicts the pair from cache so
// the override takes effect on the next resolution.
func (s *rateResolverService) SetManualRate(ctx context.Context, baseCurrency, targetCurrency string, rate decimal.Decimal, actorID string) (*domain.ResolvedRate, error) {
	if err := validateCurrencyPair(baseCurrency, targetCurrency); err != nil {
		return nil, err
	}
	if baseCurrency == targetCurrency {
		return nil, fmt.Errorf("%w: base and target currency cannot be the same", apperrors.ErrValidation)
	}
	if rate.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: exchange rate must be positive", apperrors.ErrValidation)
	}

	now := s.now()
	record := domain.ExchangeRate{
		BaseCurrency:     baseCurrency,
		TargetCurrency:   targetCurrency,
		Rate:             rate,
		Source:           domain.RateSourceManual,
		IsManualOverride: true,
		FetchedAt:        now,
		ValidFrom:        now,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := s.rateRepo.UpsertManualRate(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to save manual rate: %w", err)
	}
	if err := s.rateRepo.AppendHistory(ctx, domain.ExchangeRateHistoryEntry{
		BaseCurrency:   baseCurrency,
		TargetCurrency: targetCurrency,
		Rate:           rate,
		Source:         domain.RateSourceManual,
		ChangedBy:      actorID,
		CreatedAt:      now,
	}); err != nil {
		s.LogError(ctx, err, "failed to append rate history",
			slog.String("base", baseCurrency), slog.String("target", targetCurrency))
	}

	s.cache.Evict(baseCurrency, targetCurrency)
	s.LogInfo(ctx, "manual rate override set",
		slog.String("base", baseCurrency), slog.String("target", targetCurrency),
		slog.String("rate", rate.String()), slog.String("actor_id", actorID))

	return &domain.ResolvedRate{
		BaseCurrency:     baseCurrency,
		TargetCurrency:   targetCurrency,
		Rate:             rate,
		Source:           domain.RateSourceManual,
		IsManualOverride: true,
		UpdatedAt:        now,
	}, nil
}

// RemoveManualOverride reverts a pair to automatic resolution. The stored record
// survives as the last-saved fallback.
func (s *rateResolverService) RemoveManualOverride(ctx context.Context, baseCurrency, targetCurrency string) error {
	if err := validateCurrencyPair(baseCurrency, targetCurrency); err != nil {
		return err
	}
	if err := s.rateRepo.ClearManualOverride(ctx, baseCurrency, targetCurrency); err != nil {
		return err
	}
	s.cache.Evict(baseCurrency, targetCurrency)
	s.LogInfo(ctx, "manual rate override removed",
		slog.String("base", baseCurrency), slog.String("target", targetCurrency))
	return nil
}

// ListRates resolves all primary pairs. Individual failures don't abort the
// listing; the failed pair is simply skipped.
func (s *rateResolverService) ListRates(ctx context.Context) ([]domain.ResolvedRate, error) {
	rates := make([]domain.ResolvedRate, 0, len(primaryPairs))
	for _, pair := range primaryPairs {
		resolved, err := s.Resolve(ctx, pair[0], pair[1])
		if err != nil {
			s.LogWarn(ctx, "failed to resolve primary pair",
				slog.String("base", pair[0]), slog.String("target", pair[1]), slog.String("error", err.Error()))
			continue
		}
		rates = append(rates, *resolved)
	}
	return rates, nil
}

// RateHistory returns recent changes for a pair, newest first.
func (s *rateResolverService) RateHistory(ctx context.Context, baseCurrency, targetCurrency string, limit int) ([]domain.ExchangeRateHistoryEntry, error) {
	if err := validateCurrencyPair(baseCurrency, targetCurrency); err != nil {
		return nil, err
	}
	if limit <= 0 || limit > 100 {
		limit = 30
	}
	return s.rateRepo.ListHistory(ctx, baseCurrency, targetCurrency, limit)
}
