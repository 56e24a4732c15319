package services_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/tipstack/marketplace_backend/internal/core/domain"
	portssvc "github.com/tipstack/marketplace_backend/internal/core/ports/services"
	"github.com/tipstack/marketplace_backend/internal/core/services"
)

type MoneyConverterServiceTestSuite struct {
	suite.Suite
	mockResolver *MockRateResolver
	service      portssvc.MoneyConverterSvcFacade
}

func (suite *MoneyConverterServiceTestSuite) SetupTest() {
	suite.mockResolver = new(MockRateResolver)
	suite.service = services.NewMoneyConverterService(suite.mockResolver)
}

func (suite *MoneyConverterServiceTestSuite) resolveEURUSD(rate float64) {
	suite.mockResolver.On("Resolve", mock.Anything, "EUR", "USD").Return(&domain.ResolvedRate{
		BaseCurrency:   "EUR",
		TargetCurrency: "USD",
		Rate:           decimal.NewFromFloat(rate),
		Source:         domain.RateSourceProvider,
	}, nil)
}

func (suite *MoneyConverterServiceTestSuite) TestConvert_AppliesRate() {
	suite.resolveEURUSD(1.08)

	conversion, err := suite.service.Convert(context.Background(), 1000, "EUR", "USD")
	suite.Require().NoError(err)
	suite.Equal(int64(1000), conversion.OriginalAmountCents)
	suite.Equal(int64(1080), conversion.ConvertedAmountCents)
	suite.Equal("EUR", conversion.FromCurrency)
	suite.Equal("USD", conversion.ToCurrency)
}

func (suite *MoneyConverterServiceTestSuite) TestConvert_RoundsHalfAwayFromZero() {
	suite.resolveEURUSD(1.085)

	// 999 * 1.085 = 1083.915 → 1084
	conversion, err := suite.service.Convert(context.Background(), 999, "EUR", "USD")
	suite.Require().NoError(err)
	suite.Equal(int64(1084), conversion.ConvertedAmountCents)

	// 10 * 1.085 = 10.85 → 11 (half rounds away from zero)
	suite.mockResolver.ExpectedCalls = nil
	suite.resolveEURUSD(1.05)
	conversion, err = suite.service.Convert(context.Background(), 10, "EUR", "USD")
	suite.Require().NoError(err)
	suite.Equal(int64(11), conversion.ConvertedAmountCents)
}

func (suite *MoneyConverterServiceTestSuite) TestConvert_NegativeAmounts() {
	suite.resolveEURUSD(1.05)

	// -10 * 1.05 = -10.5 → -11 (away from zero)
	conversion, err := suite.service.Convert(context.Background(), -10, "EUR", "USD")
	suite.Require().NoError(err)
	suite.Equal(int64(-11), conversion.ConvertedAmountCents)
}

func (suite *MoneyConverterServiceTestSuite) TestConvertReport_RewritesAllAmounts() {
	suite.resolveEURUSD(1.08)

	report := &domain.SalesReport{
		Currency:               "EUR",
		ExchangeRate:           decimal.NewFromInt(1),
		TotalSales:             2,
		TotalGrossCents:        3000,
		TotalNetCents:          2610,
		TotalGatewayFeesCents:  90,
		TotalPlatformFeesCents: 300,
		ByDay: []domain.DailySales{
			{Day: "2025-06-01", Sales: 2, GrossCents: 3000, NetCents: 2610},
		},
	}

	err := suite.service.ConvertReport(context.Background(), report, "USD")
	suite.Require().NoError(err)

	suite.Equal("USD", report.Currency)
	suite.Equal("EUR", report.OriginalCurrency)
	suite.True(report.ExchangeRate.Equal(decimal.NewFromFloat(1.08)))
	suite.Equal(int64(3240), report.TotalGrossCents)
	suite.Equal(int64(2819), report.TotalNetCents) // 2610*1.08 = 2818.8 → 2819
	suite.Equal(int64(97), report.TotalGatewayFeesCents)
	suite.Equal(int64(324), report.TotalPlatformFeesCents)
	suite.Equal(int64(3240), report.ByDay[0].GrossCents)
	suite.Equal(int64(2), report.ByDay[0].Sales) // counts are never converted
	suite.mockResolver.AssertNumberOfCalls(suite.T(), "Resolve", 1)
}

func (suite *MoneyConverterServiceTestSuite) TestConvertReport_IdentityShortCircuit() {
	report := &domain.SalesReport{
		Currency:        "EUR",
		ExchangeRate:    decimal.NewFromInt(1),
		TotalGrossCents: 3000,
	}

	err := suite.service.ConvertReport(context.Background(), report, "EUR")
	suite.Require().NoError(err)
	suite.Equal("EUR", report.Currency)
	suite.Equal(int64(3000), report.TotalGrossCents)
	suite.Empty(report.OriginalCurrency)
	suite.mockResolver.AssertNotCalled(suite.T(), "Resolve", mock.Anything, mock.Anything, mock.Anything)
}

func TestMoneyConverterServiceTestSuite(t *testing.T) {
	suite.Run(t, new(MoneyConverterServiceTestSuite))
}
