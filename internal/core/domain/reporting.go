package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReportType selects one of the admin report shapes, also used for flat exports.
type ReportType string

const (
	ReportTypeSales       ReportType = "sales"
	ReportTypePlatform    ReportType = "platform"
	ReportTypeSettlements ReportType = "settlements"
	ReportTypeSellers     ReportType = "sellers"
)

// ReportFilter narrows the transaction window a report aggregates over.
// It is a value object and is never persisted.
type ReportFilter struct {
	StartDate *time.Time
	EndDate   *time.Time
	SellerID  string
	ProductID string
	Status    string
	Currency  string // target display currency; empty means the ledger currency
}

// ConvertibleReport is implemented by every report shape. Each report knows its own
// monetary fields, so a single converter can re-express any report tree in another
// currency without runtime type inspection.
type ConvertibleReport interface {
	// ReportCurrency returns the currency the report amounts are currently in.
	ReportCurrency() string
	// RewriteAmounts applies convert to every monetary field of the report,
	// leaving all other fields and the report structure untouched.
	RewriteAmounts(convert func(int64) int64)
	// AnnotateConversion stamps the conversion metadata after a rewrite.
	AnnotateConversion(target string, rate decimal.Decimal, original string)
}

// SalesTotals is a strict aggregation over a transaction window.
type SalesTotals struct {
	TransactionCount  int64 `json:"transactionCount"`
	GrossAmountCents  int64 `json:"grossAmountCents"`
	GatewayFeesCents  int64 `json:"gatewayFeesCents"`
	PlatformFeesCents int64 `json:"platformFeesCents"`
	NetAmountCents    int64 `json:"netAmountCents"`
}

// DailySales is one day bucket of a sales report.
type DailySales struct {
	Day        string `json:"day"` // "2006-01-02"
	Sales      int64  `json:"sales"`
	GrossCents int64  `json:"grossCents"`
	NetCents   int64  `json:"netCents"`
}

// SellerSales is one seller bucket of a sales report.
type SellerSales struct {
	SellerID          string `json:"sellerID"`
	SellerName        string `json:"sellerName"`
	Sales             int64  `json:"sales"`
	GrossCents        int64  `json:"grossCents"`
	NetCents          int64  `json:"netCents"`
	PlatformFeesCents int64  `json:"platformFeesCents"`
}

// ProductSales is one product bucket of a sales report.
type ProductSales struct {
	ProductID    string `json:"productID"`
	ProductTitle string `json:"productTitle"`
	Sales        int64  `json:"sales"`
	GrossCents   int64  `json:"grossCents"`
}

// SalesReport holds totals plus day/seller/product breakdowns over a filtered window.
type SalesReport struct {
	Currency               string          `json:"currency"`
	ExchangeRate           decimal.Decimal `json:"exchangeRate"`
	OriginalCurrency       string          `json:"originalCurrency,omitempty"`
	TotalSales             int64           `json:"totalSales"`
	TotalGrossCents        int64           `json:"totalGrossCents"`
	TotalNetCents          int64           `json:"totalNetCents"`
	TotalGatewayFeesCents  int64           `json:"totalGatewayFeesCents"`
	TotalPlatformFeesCents int64           `json:"totalPlatformFeesCents"`
	ByDay                  []DailySales    `json:"byDay"`
	BySeller               []SellerSales   `json:"bySeller"`
	ByProduct              []ProductSales  `json:"byProduct"`
}

func (r *SalesReport) ReportCurrency() string { return r.Currency }

func (r *SalesReport) RewriteAmounts(convert func(int64) int64) {
	r.TotalGrossCents = convert(r.TotalGrossCents)
	r.TotalNetCents = convert(r.TotalNetCents)
	r.TotalGatewayFeesCents = convert(r.TotalGatewayFeesCents)
	r.TotalPlatformFeesCents = convert(r.TotalPlatformFeesCents)
	for i := range r.ByDay {
		r.ByDay[i].GrossCents = convert(r.ByDay[i].GrossCents)
		r.ByDay[i].NetCents = convert(r.ByDay[i].NetCents)
	}
	for i := range r.BySeller {
		r.BySeller[i].GrossCents = convert(r.BySeller[i].GrossCents)
		r.BySeller[i].NetCents = convert(r.BySeller[i].NetCents)
		r.BySeller[i].PlatformFeesCents = convert(r.BySeller[i].PlatformFeesCents)
	}
	for i := range r.ByProduct {
		r.ByProduct[i].GrossCents = convert(r.ByProduct[i].GrossCents)
	}
}

func (r *SalesReport) AnnotateConversion(target string, rate decimal.Decimal, original string) {
	r.Currency = target
	r.ExchangeRate = rate
	r.OriginalCurrency = original
}

// MonthlyPlatformIncome is one month bucket of the platform income report.
type MonthlyPlatformIncome struct {
	Month                  string `json:"month"` // "2006-01"
	Orders                 int64  `json:"orders"`
	GrossCents             int64  `json:"grossCents"`
	PlatformFeesCents      int64  `json:"platformFeesCents"`
	GatewayFeesCents       int64  `json:"gatewayFeesCents"`
	NetPlatformIncomeCents int64  `json:"netPlatformIncomeCents"`
}

// PlatformIncomeReport aggregates the platform's fee income by month.
type PlatformIncomeReport struct {
	Currency               string                  `json:"currency"`
	ExchangeRate           decimal.Decimal         `json:"exchangeRate"`
	OriginalCurrency       string                  `json:"originalCurrency,omitempty"`
	TotalOrders            int64                   `json:"totalOrders"`
	TotalGrossCents        int64                   `json:"totalGrossCents"`
	TotalPlatformFeesCents int64                   `json:"totalPlatformFeesCents"`
	TotalGatewayFeesCents  int64                   `json:"totalGatewayFeesCents"`
	AvgPlatformFeePercent  decimal.Decimal         `json:"avgPlatformFeePercent"` // 0 when there is no gross
	ByMonth                []MonthlyPlatformIncome `json:"byMonth"`
}

func (r *PlatformIncomeReport) ReportCurrency() string { return r.Currency }

func (r *PlatformIncomeReport) RewriteAmounts(convert func(int64) int64) {
	r.TotalGrossCents = convert(r.TotalGrossCents)
	r.TotalPlatformFeesCents = convert(r.TotalPlatformFeesCents)
	r.TotalGatewayFeesCents = convert(r.TotalGatewayFeesCents)
	for i := range r.ByMonth {
		r.ByMonth[i].GrossCents = convert(r.ByMonth[i].GrossCents)
		r.ByMonth[i].PlatformFeesCents = convert(r.ByMonth[i].PlatformFeesCents)
		r.ByMonth[i].GatewayFeesCents = convert(r.ByMonth[i].GatewayFeesCents)
		r.ByMonth[i].NetPlatformIncomeCents = convert(r.ByMonth[i].NetPlatformIncomeCents)
	}
}

func (r *PlatformIncomeReport) AnnotateConversion(target string, rate decimal.Decimal, original string) {
	r.Currency = target
	r.ExchangeRate = rate
	r.OriginalCurrency = original
}

// SettlementsByStatus is one status bucket of the settlements report.
type SettlementsByStatus struct {
	Status          SettlementStatus `json:"status"`
	Count           int64            `json:"count"`
	TotalGrossCents int64            `json:"totalGrossCents"`
	TotalNetCents   int64            `json:"totalNetCents"`
}

// SettlementsByType is one revenue-stream bucket of the settlements report.
type SettlementsByType struct {
	Type            SettlementType `json:"type"`
	Count           int64          `json:"count"`
	TotalGrossCents int64          `json:"totalGrossCents"`
	TotalNetCents   int64          `json:"totalNetCents"`
}

// SettlementsReport breaks settlements down by payout status and revenue stream.
type SettlementsReport struct {
	Currency          string                `json:"currency"`
	ExchangeRate      decimal.Decimal       `json:"exchangeRate"`
	OriginalCurrency  string                `json:"originalCurrency,omitempty"`
	TotalPendingCount int64                 `json:"totalPendingCount"`
	TotalPendingCents int64                 `json:"totalPendingCents"`
	TotalPaidCount    int64                 `json:"totalPaidCount"`
	TotalPaidCents    int64                 `json:"totalPaidCents"`
	ByStatus          []SettlementsByStatus `json:"byStatus"`
	ByType            []SettlementsByType   `json:"byType"`
}

func (r *SettlementsReport) ReportCurrency() string { return r.Currency }

func (r *SettlementsReport) RewriteAmounts(convert func(int64) int64) {
	r.TotalPendingCents = convert(r.TotalPendingCents)
	r.TotalPaidCents = convert(r.TotalPaidCents)
	for i := range r.ByStatus {
		r.ByStatus[i].TotalGrossCents = convert(r.ByStatus[i].TotalGrossCents)
		r.ByStatus[i].TotalNetCents = convert(r.ByStatus[i].TotalNetCents)
	}
	for i := range r.ByType {
		r.ByType[i].TotalGrossCents = convert(r.ByType[i].TotalGrossCents)
		r.ByType[i].TotalNetCents = convert(r.ByType[i].TotalNetCents)
	}
}

func (r *SettlementsReport) AnnotateConversion(target string, rate decimal.Decimal, original string) {
	r.Currency = target
	r.ExchangeRate = rate
	r.OriginalCurrency = original
}

// SellerRanking is one row of the sellers report, ranked by gross revenue.
type SellerRanking struct {
	SellerID          string `json:"sellerID"`
	SellerName        string `json:"sellerName"`
	TotalSales        int64  `json:"totalSales"`
	TotalGrossCents   int64  `json:"totalGrossCents"`
	TotalNetCents     int64  `json:"totalNetCents"`
	PlatformFeesCents int64  `json:"platformFeesCents"`
	ActiveProducts    int64  `json:"activeProducts"`
}

// SellersReport ranks sellers by gross revenue over a filtered window.
// Ties break by seller id ascending so the ranking is reproducible.
type SellersReport struct {
	Currency         string          `json:"currency"`
	ExchangeRate     decimal.Decimal `json:"exchangeRate"`
	OriginalCurrency string          `json:"originalCurrency,omitempty"`
	TotalSellers     int64           `json:"totalSellers"`
	ActiveSellers    int64           `json:"activeSellers"`
	TotalSales       int64           `json:"totalSales"`
	TotalGrossCents  int64           `json:"totalGrossCents"`
	Rankings         []SellerRanking `json:"rankings"`
}

func (r *SellersReport) ReportCurrency() string { return r.Currency }

func (r *SellersReport) RewriteAmounts(convert func(int64) int64) {
	r.TotalGrossCents = convert(r.TotalGrossCents)
	for i := range r.Rankings {
		r.Rankings[i].TotalGrossCents = convert(r.Rankings[i].TotalGrossCents)
		r.Rankings[i].TotalNetCents = convert(r.Rankings[i].TotalNetCents)
		r.Rankings[i].PlatformFeesCents = convert(r.Rankings[i].PlatformFeesCents)
	}
}

func (r *SellersReport) AnnotateConversion(target string, rate decimal.Decimal, original string) {
	r.Currency = target
	r.ExchangeRate = rate
	r.OriginalCurrency = original
}

// FlatReport is the tabular projection of a report used for CSV export.
type FlatReport struct {
	Headers []string   `json:"headers"`
	Rows    [][]string `json:"rows"`
}
