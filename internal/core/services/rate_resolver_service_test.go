package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/tipstack/marketplace_backend/internal/apperrors"
	"github.com/tipstack/marketplace_backend/internal/core/domain"
	portssvc "github.com/tipstack/marketplace_backend/internal/core/ports/services"
	"github.com/tipstack/marketplace_backend/internal/core/services"
	"github.com/tipstack/marketplace_backend/internal/platform/ratecache"
)

type RateResolverServiceTestSuite struct {
	suite.Suite
	mockRateRepo *MockExchangeRateRepository
	mockProvider *MockRateProvider
	cache        *ratecache.Cache
	now          time.Time
	service      portssvc.RateResolverSvcFacade
}

func (suite *RateResolverServiceTestSuite) SetupTest() {
	suite.mockRateRepo = new(MockExchangeRateRepository)
	suite.mockProvider = new(MockRateProvider)
	suite.cache = ratecache.New(time.Hour)
	suite.now = time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)
	suite.service = services.NewRateResolverService(
		suite.mockRateRepo,
		suite.mockProvider,
		suite.cache,
		services.WithRateResolverClock(func() time.Time { return suite.now }),
	)
}

func (suite *RateResolverServiceTestSuite) TestResolve_Identity() {
	resolved, err := suite.service.Resolve(context.Background(), "EUR", "EUR")
	suite.Require().NoError(err)
	suite.True(resolved.Rate.Equal(decimal.NewFromInt(1)))
	suite.False(resolved.Degraded)
	suite.mockProvider.AssertNotCalled(suite.T(), "FetchRates", mock.Anything, mock.Anything)
	suite.mockRateRepo.AssertNotCalled(suite.T(), "FindManualOverride", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *RateResolverServiceTestSuite) TestResolve_OverridePrecedence() {
	ctx := context.Background()
	overrideRate := decimal.NewFromFloat(1.25)
	suite.mockRateRepo.On("FindManualOverride", ctx, "EUR", "USD").Return(&domain.ExchangeRate{
		BaseCurrency:     "EUR",
		TargetCurrency:   "USD",
		Rate:             overrideRate,
		Source:           domain.RateSourceManual,
		IsManualOverride: true,
		UpdatedAt:        suite.now.Add(-time.Hour),
	}, nil)

	// Even a fresh cached provider rate must lose against the override.
	suite.cache.Put("EUR", "USD", decimal.NewFromFloat(1.08), suite.now)

	resolved, err := suite.service.Resolve(ctx, "EUR", "USD")
	suite.Require().NoError(err)
	suite.True(resolved.Rate.Equal(overrideRate))
	suite.True(resolved.IsManualOverride)
	suite.Equal(domain.RateSourceManual, resolved.Source)
	suite.False(resolved.Degraded)
	suite.mockProvider.AssertNotCalled(suite.T(), "FetchRates", mock.Anything, mock.Anything)
}

func (suite *RateResolverServiceTestSuite) TestResolve_CacheFreshness() {
	ctx := context.Background()
	suite.mockRateRepo.On("FindManualOverride", ctx, "EUR", "USD").Return(nil, apperrors.ErrNotFound)
	suite.mockProvider.On("FetchRates", ctx, "EUR").Return(map[string]decimal.Decimal{
		"USD": decimal.NewFromFloat(1.08),
	}, nil).Once()
	suite.mockRateRepo.On("UpsertProviderRate", ctx, mock.AnythingOfType("domain.ExchangeRate")).Return(nil)
	suite.mockRateRepo.On("AppendHistory", ctx, mock.AnythingOfType("domain.ExchangeRateHistoryEntry")).Return(nil)

	first, err := suite.service.Resolve(ctx, "EUR", "USD")
	suite.Require().NoError(err)

	// Second call within the TTL must be served from cache, no second fetch.
	second, err := suite.service.Resolve(ctx, "EUR", "USD")
	suite.Require().NoError(err)

	suite.True(first.Rate.Equal(second.Rate))
	suite.False(second.Degraded)
	suite.mockProvider.AssertNumberOfCalls(suite.T(), "FetchRates", 1)
}

func (suite *RateResolverServiceTestSuite) TestResolve_CacheExpiryTriggersRefetch() {
	ctx := context.Background()
	suite.mockRateRepo.On("FindManualOverride", ctx, "EUR", "USD").Return(nil, apperrors.ErrNotFound)
	suite.mockProvider.On("FetchRates", ctx, "EUR").Return(map[string]decimal.Decimal{
		"USD": decimal.NewFromFloat(1.08),
	}, nil)
	suite.mockRateRepo.On("UpsertProviderRate", ctx, mock.AnythingOfType("domain.ExchangeRate")).Return(nil)
	suite.mockRateRepo.On("AppendHistory", ctx, mock.AnythingOfType("domain.ExchangeRateHistoryEntry")).Return(nil)

	_, err := suite.service.Resolve(ctx, "EUR", "USD")
	suite.Require().NoError(err)

	suite.now = suite.now.Add(time.Hour) // cache entry is now exactly at TTL

	_, err = suite.service.Resolve(ctx, "EUR", "USD")
	suite.Require().NoError(err)
	suite.mockProvider.AssertNumberOfCalls(suite.T(), "FetchRates", 2)
}

func (suite *RateResolverServiceTestSuite) TestResolve_FallbackToPersistedRate() {
	ctx := context.Background()
	staleUpdatedAt := suite.now.Add(-48 * time.Hour)
	suite.mockRateRepo.On("FindManualOverride", ctx, "EUR", "USD").Return(nil, apperrors.ErrNotFound)
	suite.mockProvider.On("FetchRates", ctx, "EUR").Return(nil, errors.New("provider down"))
	suite.mockRateRepo.On("FindRate", ctx, "EUR", "USD").Return(&domain.ExchangeRate{
		BaseCurrency:   "EUR",
		TargetCurrency: "USD",
		Rate:           decimal.NewFromFloat(1.07),
		Source:         domain.RateSourceProvider,
		UpdatedAt:      staleUpdatedAt,
	}, nil)

	resolved, err := suite.service.Resolve(ctx, "EUR", "USD")
	suite.Require().NoError(err)
	suite.True(resolved.Rate.Equal(decimal.NewFromFloat(1.07)))
	suite.True(resolved.Degraded)
	suite.Equal(staleUpdatedAt, resolved.UpdatedAt)
}

func (suite *RateResolverServiceTestSuite) TestResolve_FallbackToDefault() {
	ctx := context.Background()
	suite.mockRateRepo.On("FindManualOverride", ctx, "EUR", "USD").Return(nil, apperrors.ErrNotFound)
	suite.mockProvider.On("FetchRates", ctx, "EUR").Return(nil, errors.New("provider down"))
	suite.mockRateRepo.On("FindRate", ctx, "EUR", "USD").Return(nil, apperrors.ErrNotFound)

	resolved, err := suite.service.Resolve(ctx, "EUR", "USD")
	suite.Require().NoError(err)
	suite.True(resolved.Rate.Equal(decimal.NewFromFloat(1.08)))
	suite.True(resolved.Degraded)
}

func (suite *RateResolverServiceTestSuite) TestResolve_FallbackToNeutralDefaultForUnknownPair() {
	ctx := context.Background()
	suite.mockRateRepo.On("FindManualOverride", ctx, "CHF", "JPY").Return(nil, apperrors.ErrNotFound)
	suite.mockProvider.On("FetchRates", ctx, "CHF").Return(nil, errors.New("provider down"))
	suite.mockRateRepo.On("FindRate", ctx, "CHF", "JPY").Return(nil, apperrors.ErrNotFound)

	resolved, err := suite.service.Resolve(ctx, "CHF", "JPY")
	suite.Require().NoError(err)
	suite.True(resolved.Rate.Equal(decimal.NewFromInt(1)))
	suite.True(resolved.Degraded)
}

func (suite *RateResolverServiceTestSuite) TestResolve_MissingTargetInProviderTable() {
	ctx := context.Background()
	suite.mockRateRepo.On("FindManualOverride", ctx, "EUR", "GBP").Return(nil, apperrors.ErrNotFound)
	suite.mockProvider.On("FetchRates", ctx, "EUR").Return(map[string]decimal.Decimal{
		"USD": decimal.NewFromFloat(1.08),
	}, nil)
	suite.mockRateRepo.On("FindRate", ctx, "EUR", "GBP").Return(nil, apperrors.ErrNotFound)

	resolved, err := suite.service.Resolve(ctx, "EUR", "GBP")
	suite.Require().NoError(err)
	suite.True(resolved.Degraded)
	suite.True(resolved.Rate.Equal(decimal.NewFromInt(1)))
}

func (suite *RateResolverServiceTestSuite) TestResolve_InvalidCurrencyCode() {
	_, err := suite.service.Resolve(context.Background(), "eur", "USD")
	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)

	_, err = suite.service.Resolve(context.Background(), "EURO", "USD")
	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *RateResolverServiceTestSuite) TestSetManualRate_EvictsCache() {
	ctx := context.Background()
	suite.cache.Put("EUR", "USD", decimal.NewFromFloat(1.08), suite.now)

	rate := decimal.NewFromFloat(1.20)
	suite.mockRateRepo.On("UpsertManualRate", ctx, mock.AnythingOfType("domain.ExchangeRate")).Return(nil)
	suite.mockRateRepo.On("AppendHistory", ctx, mock.MatchedBy(func(entry domain.ExchangeRateHistoryEntry) bool {
		return entry.Source == domain.RateSourceManual && entry.ChangedBy == "admin-1"
	})).Return(nil)

	resolved, err := suite.service.SetManualRate(ctx, "EUR", "USD", rate, "admin-1")
	suite.Require().NoError(err)
	suite.True(resolved.IsManualOverride)
	suite.True(resolved.Rate.Equal(rate))

	_, cached := suite.cache.Get("EUR", "USD", suite.now)
	suite.False(cached)
	suite.mockRateRepo.AssertExpectations(suite.T())
}

func (suite *RateResolverServiceTestSuite) TestSetManualRate_RejectsNonPositiveRate() {
	_, err := suite.service.SetManualRate(context.Background(), "EUR", "USD", decimal.Zero, "admin-1")
	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *RateResolverServiceTestSuite) TestSetManualRate_RejectsSamePair() {
	_, err := suite.service.SetManualRate(context.Background(), "EUR", "EUR", decimal.NewFromInt(2), "admin-1")
	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *RateResolverServiceTestSuite) TestRemoveManualOverride_EvictsCache() {
	ctx := context.Background()
	suite.cache.Put("EUR", "USD", decimal.NewFromFloat(1.20), suite.now)
	suite.mockRateRepo.On("ClearManualOverride", ctx, "EUR", "USD").Return(nil)

	err := suite.service.RemoveManualOverride(ctx, "EUR", "USD")
	suite.Require().NoError(err)

	_, cached := suite.cache.Get("EUR", "USD", suite.now)
	suite.False(cached)
}

func (suite *RateResolverServiceTestSuite) TestRemoveManualOverride_UnknownPair() {
	ctx := context.Background()
	suite.mockRateRepo.On("ClearManualOverride", ctx, "EUR", "JPY").Return(apperrors.ErrNotFound)

	err := suite.service.RemoveManualOverride(ctx, "EUR", "JPY")
	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *RateResolverServiceTestSuite) TestRateHistory_DefaultsLimit() {
	ctx := context.Background()
	entries := []domain.ExchangeRateHistoryEntry{{BaseCurrency: "EUR", TargetCurrency: "USD"}}
	suite.mockRateRepo.On("ListHistory", ctx, "EUR", "USD", 30).Return(entries, nil)

	result, err := suite.service.RateHistory(ctx, "EUR", "USD", 0)
	suite.Require().NoError(err)
	assert.Len(suite.T(), result, 1)
}

func TestRateResolverServiceTestSuite(t *testing.T) {
	suite.Run(t, new(RateResolverServiceTestSuite))
}
