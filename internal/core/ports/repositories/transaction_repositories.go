package repositories

import (
	"context"
	"time"

	"github.com/tipstack/marketplace_backend/internal/core/domain"
)

// TransactionReadRepository is the read-only query contract over the transaction
// store. The store itself is owned by the checkout subsystem; this core never
// writes to it. All aggregations are pushed down to the storage engine.
type TransactionReadRepository interface {
	// SummarizeSales aggregates count and monetary sums over the filtered window.
	SummarizeSales(ctx context.Context, filter domain.ReportFilter) (domain.SalesTotals, error)

	// SalesByDay buckets the filtered window per calendar day, ascending.
	SalesByDay(ctx context.Context, filter domain.ReportFilter) ([]domain.DailySales, error)

	// SalesBySeller buckets the filtered window per seller, by gross descending.
	SalesBySeller(ctx context.Context, filter domain.ReportFilter) ([]domain.SellerSales, error)

	// SalesByProduct buckets the filtered window per product, by sale count
	// descending, capped at the given limit.
	SalesByProduct(ctx context.Context, filter domain.ReportFilter, limit int) ([]domain.ProductSales, error)

	// PlatformIncomeByMonth buckets the filtered window per calendar month,
	// newest first.
	PlatformIncomeByMonth(ctx context.Context, filter domain.ReportFilter) ([]domain.MonthlyPlatformIncome, error)

	// SummarizeSellerWindow aggregates a seller's completed transactions created
	// at or after the given instant. Used for the live settlement projection.
	SummarizeSellerWindow(ctx context.Context, sellerID string, since time.Time) (domain.SalesTotals, error)
}
