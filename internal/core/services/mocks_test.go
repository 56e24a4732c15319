package services_test

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/tipstack/marketplace_backend/internal/core/domain"
)

// --- Mock ExchangeRateRepository ---
type MockExchangeRateRepository struct {
	mock.Mock
}

func (m *MockExchangeRateRepository) FindManualOverride(ctx context.Context, baseCurrency, targetCurrency string) (*domain.ExchangeRate, error) {
	args := m.Called(ctx, baseCurrency, targetCurrency)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeRate), args.Error(1)
}

func (m *MockExchangeRateRepository) FindRate(ctx context.Context, baseCurrency, targetCurrency string) (*domain.ExchangeRate, error) {
	args := m.Called(ctx, baseCurrency, targetCurrency)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeRate), args.Error(1)
}

func (m *MockExchangeRateRepository) ListHistory(ctx context.Context, baseCurrency, targetCurrency string, limit int) ([]domain.ExchangeRateHistoryEntry, error) {
	args := m.Called(ctx, baseCurrency, targetCurrency, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExchangeRateHistoryEntry), args.Error(1)
}

func (m *MockExchangeRateRepository) UpsertProviderRate(ctx context.Context, rate domain.ExchangeRate) error {
	args := m.Called(ctx, rate)
	return args.Error(0)
}

func (m *MockExchangeRateRepository) UpsertManualRate(ctx context.Context, rate domain.ExchangeRate) error {
	args := m.Called(ctx, rate)
	return args.Error(0)
}

func (m *MockExchangeRateRepository) ClearManualOverride(ctx context.Context, baseCurrency, targetCurrency string) error {
	args := m.Called(ctx, baseCurrency, targetCurrency)
	return args.Error(0)
}

func (m *MockExchangeRateRepository) AppendHistory(ctx context.Context, entry domain.ExchangeRateHistoryEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

// --- Mock RateProvider ---
type MockRateProvider struct {
	mock.Mock
}

func (m *MockRateProvider) FetchRates(ctx context.Context, baseCurrency string) (map[string]decimal.Decimal, error) {
	args := m.Called(ctx, baseCurrency)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]decimal.Decimal), args.Error(1)
}

// --- Mock SettlementRepository ---
type MockSettlementRepository struct {
	mock.Mock
}

func (m *MockSettlementRepository) FindSettlementByID(ctx context.Context, settlementID string) (*domain.Settlement, error) {
	args := m.Called(ctx, settlementID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Settlement), args.Error(1)
}

func (m *MockSettlementRepository) ListSettlementsBySeller(ctx context.Context, sellerID string, limit int) ([]domain.Settlement, error) {
	args := m.Called(ctx, sellerID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Settlement), args.Error(1)
}

func (m *MockSettlementRepository) SumPaidNet(ctx context.Context, sellerID string) (int64, int64, error) {
	args := m.Called(ctx, sellerID)
	return args.Get(0).(int64), args.Get(1).(int64), args.Error(2)
}

func (m *MockSettlementRepository) GroupByStatus(ctx context.Context, filter domain.ReportFilter) ([]domain.SettlementsByStatus, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SettlementsByStatus), args.Error(1)
}

func (m *MockSettlementRepository) GroupByType(ctx context.Context, filter domain.ReportFilter) ([]domain.SettlementsByType, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SettlementsByType), args.Error(1)
}

func (m *MockSettlementRepository) SaveSettlement(ctx context.Context, settlement domain.Settlement) error {
	args := m.Called(ctx, settlement)
	return args.Error(0)
}

func (m *MockSettlementRepository) MarkSettlementPaid(ctx context.Context, settlementID, paymentMethod, paymentReference string, paidAt time.Time) error {
	args := m.Called(ctx, settlementID, paymentMethod, paymentReference, paidAt)
	return args.Error(0)
}

// --- Mock TransactionRepository ---
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) SummarizeSales(ctx context.Context, filter domain.ReportFilter) (domain.SalesTotals, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(domain.SalesTotals), args.Error(1)
}

func (m *MockTransactionRepository) SalesByDay(ctx context.Context, filter domain.ReportFilter) ([]domain.DailySales, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DailySales), args.Error(1)
}

func (m *MockTransactionRepository) SalesBySeller(ctx context.Context, filter domain.ReportFilter) ([]domain.SellerSales, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SellerSales), args.Error(1)
}

func (m *MockTransactionRepository) SalesByProduct(ctx context.Context, filter domain.ReportFilter, limit int) ([]domain.ProductSales, error) {
	args := m.Called(ctx, filter, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ProductSales), args.Error(1)
}

func (m *MockTransactionRepository) PlatformIncomeByMonth(ctx context.Context, filter domain.ReportFilter) ([]domain.MonthlyPlatformIncome, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MonthlyPlatformIncome), args.Error(1)
}

func (m *MockTransactionRepository) SummarizeSellerWindow(ctx context.Context, sellerID string, since time.Time) (domain.SalesTotals, error) {
	args := m.Called(ctx, sellerID, since)
	return args.Get(0).(domain.SalesTotals), args.Error(1)
}

// --- Mock ReferralEarningsRepository ---
type MockReferralEarningsRepository struct {
	mock.Mock
}

func (m *MockReferralEarningsRepository) SumMonthlyEarnings(ctx context.Context, sellerID, periodMonth string) (int64, int64, error) {
	args := m.Called(ctx, sellerID, periodMonth)
	return args.Get(0).(int64), args.Get(1).(int64), args.Error(2)
}

// --- Mock CatalogRepository ---
type MockCatalogRepository struct {
	mock.Mock
}

func (m *MockCatalogRepository) ListSellers(ctx context.Context) ([]domain.Seller, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Seller), args.Error(1)
}

func (m *MockCatalogRepository) SellerNames(ctx context.Context, sellerIDs []string) (map[string]string, error) {
	args := m.Called(ctx, sellerIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]string), args.Error(1)
}

func (m *MockCatalogRepository) ProductTitles(ctx context.Context, productIDs []string) (map[string]string, error) {
	args := m.Called(ctx, productIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]string), args.Error(1)
}

func (m *MockCatalogRepository) ActiveProductCounts(ctx context.Context) (map[string]int64, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int64), args.Error(1)
}

// --- Mock RateResolver ---
type MockRateResolver struct {
	mock.Mock
}

func (m *MockRateResolver) Resolve(ctx context.Context, baseCurrency, targetCurrency string) (*domain.ResolvedRate, error) {
	args := m.Called(ctx, baseCurrency, targetCurrency)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ResolvedRate), args.Error(1)
}

func (m *MockRateResolver) SetManualRate(ctx context.Context, baseCurrency, targetCurrency string, rate decimal.Decimal, actorID string) (*domain.ResolvedRate, error) {
	args := m.Called(ctx, baseCurrency, targetCurrency, rate, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ResolvedRate), args.Error(1)
}

func (m *MockRateResolver) RemoveManualOverride(ctx context.Context, baseCurrency, targetCurrency string) error {
	args := m.Called(ctx, baseCurrency, targetCurrency)
	return args.Error(0)
}

func (m *MockRateResolver) ListRates(ctx context.Context) ([]domain.ResolvedRate, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ResolvedRate), args.Error(1)
}

func (m *MockRateResolver) RateHistory(ctx context.Context, baseCurrency, targetCurrency string, limit int) ([]domain.ExchangeRateHistoryEntry, error) {
	args := m.Called(ctx, baseCurrency, targetCurrency, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExchangeRateHistoryEntry), args.Error(1)
}
