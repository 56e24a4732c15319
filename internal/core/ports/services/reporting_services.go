package services

import (
	"context"

	"github.com/tipstack/marketplace_backend/internal/core/domain"
)

// ReportingSvcFacade builds multi-dimensional rollups over the transaction window
// and re-expresses them in a requested currency. All reports are computed in the
// ledger currency first; conversion is always the last step.
type ReportingSvcFacade interface {
	// SalesReport returns totals plus day/seller/product breakdowns.
	SalesReport(ctx context.Context, filter domain.ReportFilter) (*domain.SalesReport, error)

	// PlatformIncomeReport returns platform fee income totals plus a monthly breakdown.
	PlatformIncomeReport(ctx context.Context, filter domain.ReportFilter) (*domain.PlatformIncomeReport, error)

	// SettlementsReport breaks settlements down by status and revenue stream.
	SettlementsReport(ctx context.Context, filter domain.ReportFilter) (*domain.SettlementsReport, error)

	// SellersReport ranks sellers by gross revenue, with active-product counts.
	SellersReport(ctx context.Context, filter domain.ReportFilter) (*domain.SellersReport, error)

	// ExportFlat re-renders a report as a flat header+rows table with a fixed
	// per-type column mapping. Unknown report types are a caller error.
	ExportFlat(ctx context.Context, reportType domain.ReportType, filter domain.ReportFilter) (*domain.FlatReport, error)

	// ExportCSV renders the flat projection as CSV: one header row plus one
	// quoted row per breakdown entry.
	ExportCSV(ctx context.Context, reportType domain.ReportType, filter domain.ReportFilter) (string, error)
}
