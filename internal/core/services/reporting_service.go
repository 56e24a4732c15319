package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/tipstack/marketplace_backend/internal/apperrors"
	"github.com/tipstack/marketplace_backend/internal/core/domain"
	portsrepo "github.com/tipstack/marketplace_backend/internal/core/ports/repositories"
	portssvc "github.com/tipstack/marketplace_backend/internal/core/ports/services"
)

// productBreakdownLimit caps the by-product breakdown of the sales report.
const productBreakdownLimit = 20

// reportingService builds admin reports over the transaction window. Every
// report is computed in the ledger currency first; conversion to the requested
// display currency happens exactly once, over the finished report.
type reportingService struct {
	BaseService
	txnRepo        portsrepo.TransactionReadRepository
	settlementRepo portsrepo.SettlementRepositoryFacade
	catalogRepo    portsrepo.CatalogReadRepository
	converter      portssvc.MoneyConverterSvcFacade
	ledgerCurrency string
}

// NewReportingService creates the reporting service.
func NewReportingService(txnRepo portsrepo.TransactionReadRepository, settlementRepo portsrepo.SettlementRepositoryFacade, catalogRepo portsrepo.CatalogReadRepository, converter portssvc.MoneyConverterSvcFacade, ledgerCurrency string) portssvc.ReportingSvcFacade {
	return &reportingService{
		txnRepo:        txnRepo,
		settlementRepo: settlementRepo,
		catalogRepo:    catalogRepo,
		converter:      converter,
		ledgerCurrency: ledgerCurrency,
	}
}

// finishReport applies the display-currency conversion when the filter asks for
// a currency other than the ledger currency. This is always the last step.
func (s *reportingService) finishReport(ctx context.Context, report domain.ConvertibleReport, filter domain.ReportFilter) error {
	if filter.Currency == "" || filter.Currency == report.ReportCurrency() {
		return nil
	}
	return s.converter.ConvertReport(ctx, report, filter.Currency)
}

// SalesReport returns totals plus day/seller/product breakdowns.
func (s *reportingService) SalesReport(ctx context.Context, filter domain.ReportFilter) (*domain.SalesReport, error) {
	totals, err := s.txnRepo.SummarizeSales(ctx, filter)
	if err != nil {
		return nil, err
	}
	byDay, err := s.txnRepo.SalesByDay(ctx, filter)
	if err != nil {
		return nil, err
	}
	bySeller, err := s.txnRepo.SalesBySeller(ctx, filter)
	if err != nil {
		return nil, err
	}
	byProduct, err := s.txnRepo.SalesByProduct(ctx, filter, productBreakdownLimit)
	if err != nil {
		return nil, err
	}

	if err := s.decorateSellerNames(ctx, bySeller); err != nil {
		return nil, err
	}
	if err := s.decorateProductTitles(ctx, byProduct); err != nil {
		return nil, err
	}

	report := &domain.SalesReport{
		Currency:               s.ledgerCurrency,
		ExchangeRate:           decimal.NewFromInt(1),
		TotalSales:             totals.TransactionCount,
		TotalGrossCents:        totals.GrossAmountCents,
		TotalNetCents:          totals.NetAmountCents,
		TotalGatewayFeesCents:  totals.GatewayFeesCents,
		TotalPlatformFeesCents: totals.PlatformFeesCents,
		ByDay:                  byDay,
		BySeller:               bySeller,
		ByProduct:              byProduct,
	}
	if err := s.finishReport(ctx, report, filter); err != nil {
		return nil, err
	}
	return report, nil
}

func (s *reportingService) decorateSellerNames(ctx context.Context, buckets []domain.SellerSales) error {
	if len(buckets) == 0 {
		return nil
	}
	ids := make([]string, len(buckets))
	for i := range buckets {
		ids[i] = buckets[i].SellerID
	}
	names, err := s.catalogRepo.SellerNames(ctx, ids)
	if err != nil {
		return fmt.Errorf("failed to resolve seller names: %w", err)
	}
	for i := range buckets {
		buckets[i].SellerName = names[buckets[i].SellerID]
	}
	return nil
}

func (s *reportingService) decorateProductTitles(ctx context.Context, buckets []domain.ProductSales) error {
	if len(buckets) == 0 {
		return nil
	}
	ids := make([]string, len(buckets))
	for i := range buckets {
		ids[i] = buckets[i].ProductID
	}
	titles, err := s.catalogRepo.ProductTitles(ctx, ids)
	if err != nil {
		return fmt.Errorf("failed to resolve product titles: %w", err)
	}
	for i := range buckets {
		buckets[i].ProductTitle = titles[buckets[i].ProductID]
	}
	return nil
}

// PlatformIncomeReport returns platform fee income totals plus a monthly breakdown.
func (s *reportingService) PlatformIncomeReport(ctx context.Context, filter domain.ReportFilter) (*domain.PlatformIncomeReport, error) {
	totals, err := s.txnRepo.SummarizeSales(ctx, filter)
	if err != nil {
		return nil, err
	}
	byMonth, err := s.txnRepo.PlatformIncomeByMonth(ctx, filter)
	if err != nil {
		return nil, err
	}

	// Percentage guard: 0 when there is no gross, never a division error.
	avgFeePercent := decimal.Zero
	if totals.GrossAmountCents > 0 {
		avgFeePercent = decimal.NewFromInt(totals.PlatformFeesCents).
			Div(decimal.NewFromInt(totals.GrossAmountCents)).
			Mul(decimal.NewFromInt(100)).
			Round(2)
	}

	report := &domain.PlatformIncomeReport{
		Currency:               s.ledgerCurrency,
		ExchangeRate:           decimal.NewFromInt(1),
		TotalOrders:            totals.TransactionCount,
		TotalGrossCents:        totals.GrossAmountCents,
		TotalPlatformFeesCents: totals.PlatformFeesCents,
		TotalGatewayFeesCents:  totals.GatewayFeesCents,
		AvgPlatformFeePercent:  avgFeePercent,
		ByMonth:                byMonth,
	}
	if err := s.finishReport(ctx, report, filter); err != nil {
		return nil, err
	}
	return report, nil
}

// SettlementsReport breaks settlements down by payout status and revenue stream.
func (s *reportingService) SettlementsReport(ctx context.Context, filter domain.ReportFilter) (*domain.SettlementsReport, error) {
	byStatus, err := s.settlementRepo.GroupByStatus(ctx, filter)
	if err != nil {
		return nil, err
	}
	byType, err := s.settlementRepo.GroupByType(ctx, filter)
	if err != nil {
		return nil, err
	}

	report := &domain.SettlementsReport{
		Currency:     s.ledgerCurrency,
		ExchangeRate: decimal.NewFromInt(1),
		ByStatus:     byStatus,
		ByType:       byType,
	}
	for _, bucket := range byStatus {
		switch bucket.Status {
		case domain.SettlementPending:
			report.TotalPendingCount = bucket.Count
			report.TotalPendingCents = bucket.TotalNetCents
		case domain.SettlementPaid:
			report.TotalPaidCount = bucket.Count
			report.TotalPaidCents = bucket.TotalNetCents
		}
	}
	if err := s.finishReport(ctx, report, filter); err != nil {
		return nil, err
	}
	return report, nil
}

// SellersReport ranks sellers by gross revenue with active-product counts.
// Sellers with no sales in the window are counted but not ranked.
func (s *reportingService) SellersReport(ctx context.Context, filter domain.ReportFilter) (*domain.SellersReport, error) {
	sellers, err := s.catalogRepo.ListSellers(ctx)
	if err != nil {
		return nil, err
	}
	buckets, err := s.txnRepo.SalesBySeller(ctx, filter)
	if err != nil {
		return nil, err
	}
	productCounts, err := s.catalogRepo.ActiveProductCounts(ctx)
	if err != nil {
		return nil, err
	}

	names := make(map[string]string, len(sellers))
	for _, seller := range sellers {
		names[seller.SellerID] = seller.PublicName
	}

	report := &domain.SellersReport{
		Currency:      s.ledgerCurrency,
		ExchangeRate:  decimal.NewFromInt(1),
		TotalSellers:  int64(len(sellers)),
		ActiveSellers: int64(len(buckets)),
		Rankings:      make([]domain.SellerRanking, 0, len(buckets)),
	}
	// Buckets arrive ranked by gross descending, seller id ascending on ties.
	for _, bucket := range buckets {
		report.TotalSales += bucket.Sales
		report.TotalGrossCents += bucket.GrossCents
		report.Rankings = append(report.Rankings, domain.SellerRanking{
			SellerID:          bucket.SellerID,
			SellerName:        names[bucket.SellerID],
			TotalSales:        bucket.Sales,
			TotalGrossCents:   bucket.GrossCents,
			TotalNetCents:     bucket.NetCents,
			PlatformFeesCents: bucket.PlatformFeesCents,
			ActiveProducts:    productCounts[bucket.SellerID],
		})
	}
	if err := s.finishReport(ctx, report, filter); err != nil {
		return nil, err
	}
	return report, nil
}

// formatCents renders minor units as a decimal string with two fraction digits.
func formatCents(amountCents int64) string {
	return decimal.New(amountCents, -2).StringFixed(2)
}

// ExportFlat re-renders a report as a flat header+rows table. Column sets are
// fixed per report type; conversion via filter.Currency has already happened
// when the rows are rendered.
func (s *reportingService) ExportFlat(ctx context.Context, reportType domain.ReportType, filter domain.ReportFilter) (*domain.FlatReport, error) {
	switch reportType {
	case domain.ReportTypeSales:
		report, err := s.SalesReport(ctx, filter)
		if err != nil {
			return nil, err
		}
		flat := &domain.FlatReport{Headers: []string{"Day", "Sales", "Gross", "Net"}}
		for _, day := range report.ByDay {
			flat.Rows = append(flat.Rows, []string{
				day.Day,
				strconv.FormatInt(day.Sales, 10),
				formatCents(day.GrossCents),
				formatCents(day.NetCents),
			})
		}
		return flat, nil

	case domain.ReportTypePlatform:
		report, err := s.PlatformIncomeReport(ctx, filter)
		if err != nil {
			return nil, err
		}
		flat := &domain.FlatReport{Headers: []string{"Month", "Orders", "Gross", "Platform Fees", "Gateway Fees", "Net Platform Income"}}
		for _, month := range report.ByMonth {
			flat.Rows = append(flat.Rows, []string{
				month.Month,
				strconv.FormatInt(month.Orders, 10),
				formatCents(month.GrossCents),
				formatCents(month.PlatformFeesCents),
				formatCents(month.GatewayFeesCents),
				formatCents(month.NetPlatformIncomeCents),
			})
		}
		return flat, nil

	case domain.ReportTypeSettlements:
		report, err := s.SettlementsReport(ctx, filter)
		if err != nil {
			return nil, err
		}
		flat := &domain.FlatReport{Headers: []string{"Group", "Key", "Count", "Total Gross", "Total Net"}}
		for _, bucket := range report.ByStatus {
			flat.Rows = append(flat.Rows, []string{
				"status",
				string(bucket.Status),
				strconv.FormatInt(bucket.Count, 10),
				formatCents(bucket.TotalGrossCents),
				formatCents(bucket.TotalNetCents),
			})
		}
		for _, bucket := range report.ByType {
			flat.Rows = append(flat.Rows, []string{
				"type",
				string(bucket.Type),
				strconv.FormatInt(bucket.Count, 10),
				formatCents(bucket.TotalGrossCents),
				formatCents(bucket.TotalNetCents),
			})
		}
		return flat, nil

	case domain.ReportTypeSellers:
		report, err := s.SellersReport(ctx, filter)
		if err != nil {
			return nil, err
		}
		flat := &domain.FlatReport{Headers: []string{"Seller ID", "Seller Name", "Sales", "Gross", "Net", "Platform Fees", "Active Products"}}
		for _, ranking := range report.Rankings {
			flat.Rows = append(flat.Rows, []string{
				ranking.SellerID,
				ranking.SellerName,
				strconv.FormatInt(ranking.TotalSales, 10),
				formatCents(ranking.TotalGrossCents),
				formatCents(ranking.TotalNetCents),
				formatCents(ranking.PlatformFeesCents),
				strconv.FormatInt(ranking.ActiveProducts, 10),
			})
		}
		return flat, nil

	default:
		return nil, fmt.Errorf("%w: unknown report type %q", apperrors.ErrValidation, reportType)
	}
}

// ExportCSV renders the flat projection as CSV. Every cell is quoted, embedded
// quotes are doubled.
func (s *reportingService) ExportCSV(ctx context.Context, reportType domain.ReportType, filter domain.ReportFilter) (string, error) {
	flat, err := s.ExportFlat(ctx, reportType, filter)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	writeCSVRow(&b, flat.Headers)
	for _, row := range flat.Rows {
		writeCSVRow(&b, row)
	}
	return b.String(), nil
}

func writeCSVRow(b *strings.Builder, cells []string) {
	for i, cell := range cells {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('"')
		b.WriteString(strings.ReplaceAll(cell, `"`, `""`))
		b.WriteByte('"')
	}
	b.WriteByte('\n')
}
