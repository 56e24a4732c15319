package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tipstack/marketplace_backend/internal/core/domain"
	portsrepo "github.com/tipstack/marketplace_backend/internal/core/ports/repositories"
)

// transactionRepository implements the read-only TransactionReadRepository over
// the checkout subsystem's transaction table. All group-bys run server-side.
type transactionRepository struct {
	BaseRepository
}

func newTransactionRepository(db *pgxpool.Pool) portsrepo.TransactionReadRepository {
	return &transactionRepository{BaseRepository: BaseRepository{Pool: db}}
}

// completedStatuses returns the status set used when the filter does not pin one.
func completedStatuses() []string {
	statuses := make([]string, len(domain.CompletedTransactionStatuses))
	for i, s := range domain.CompletedTransactionStatuses {
		statuses[i] = string(s)
	}
	return statuses
}

// salesFilterClause builds the WHERE clause shared by all transaction queries.
func salesFilterClause(filter domain.ReportFilter) (string, []any) {
	args := []any{completedStatusesOrPinned(filter)}
	where := "WHERE status = ANY($1)"
	if filter.SellerID != "" {
		args = append(args, filter.SellerID)
		where += fmt.Sprintf(" AND seller_id = $%d", len(args))
	}
	if filter.ProductID != "" {
		args = append(args, filter.ProductID)
		where += fmt.Sprintf(" AND product_id = $%d", len(args))
	}
	if filter.StartDate != nil {
		args = append(args, *filter.StartDate)
		where += fmt.Sprintf(" AND created_at >= $%d", len(args))
	}
	if filter.EndDate != nil {
		args = append(args, *filter.EndDate)
		where += fmt.Sprintf(" AND created_at <= $%d", len(args))
	}
	return where, args
}

func completedStatusesOrPinned(filter domain.ReportFilter) []string {
	if filter.Status != "" {
		return []string{filter.Status}
	}
	return completedStatuses()
}

// SummarizeSales aggregates count and monetary sums over the filtered window.
func (r *transactionRepository) SummarizeSales(ctx context.Context, filter domain.ReportFilter) (domain.SalesTotals, error) {
	where, args := salesFilterClause(filter)
	query := `
		SELECT
			COUNT(*),
			COALESCE(SUM(gross_amount_cents), 0),
			COALESCE(SUM(gateway_fee_cents), 0),
			COALESCE(SUM(platform_fee_cents), 0),
			COALESCE(SUM(net_amount_cents), 0)
		FROM transactions ` + where

	var totals domain.SalesTotals
	err := r.Pool.QueryRow(ctx, query, args...).Scan(
		&totals.TransactionCount,
		&totals.GrossAmountCents,
		&totals.GatewayFeesCents,
		&totals.PlatformFeesCents,
		&totals.NetAmountCents,
	)
	if err != nil {
		return domain.SalesTotals{}, fmt.Errorf("error summarizing sales: %w", err)
	}
	return totals, nil
}

// SalesByDay buckets the filtered window per calendar day, ascending.
func (r *transactionRepository) SalesByDay(ctx context.Context, filter domain.ReportFilter) ([]domain.DailySales, error) {
	where, args := salesFilterClause(filter)
	query := `
		SELECT
			to_char(created_at, 'YYYY-MM-DD') AS day,
			COUNT(*),
			COALESCE(SUM(gross_amount_cents), 0),
			COALESCE(SUM(net_amount_cents), 0)
		FROM transactions ` + where + `
		GROUP BY day
		ORDER BY day ASC
	`
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying sales by day: %w", err)
	}
	defer rows.Close()

	result := []domain.DailySales{}
	for rows.Next() {
		var bucket domain.DailySales
		if err := rows.Scan(&bucket.Day, &bucket.Sales, &bucket.GrossCents, &bucket.NetCents); err != nil {
			return nil, fmt.Errorf("error scanning daily sales bucket: %w", err)
		}
		result = append(result, bucket)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating daily sales buckets: %w", err)
	}
	return result, nil
}

// SalesBySeller buckets the filtered window per seller, by gross descending with
// seller id as the deterministic tie-break.
func (r *transactionRepository) SalesBySeller(ctx context.Context, filter domain.ReportFilter) ([]domain.SellerSales, error) {
	where, args := salesFilterClause(filter)
	query := `
		SELECT
			seller_id,
			COUNT(*),
			COALESCE(SUM(gross_amount_cents), 0),
			COALESCE(SUM(net_amount_cents), 0),
			COALESCE(SUM(platform_fee_cents), 0)
		FROM transactions ` + where + `
		GROUP BY seller_id
		ORDER BY SUM(gross_amount_cents) DESC, seller_id ASC
	`
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying sales by seller: %w", err)
	}
	defer rows.Close()

	result := []domain.SellerSales{}
	for rows.Next() {
		var bucket domain.SellerSales
		if err := rows.Scan(&bucket.SellerID, &bucket.Sales, &bucket.GrossCents, &bucket.NetCents, &bucket.PlatformFeesCents); err != nil {
			return nil, fmt.Errorf("error scanning seller sales bucket: %w", err)
		}
		result = append(result, bucket)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating seller sales buckets: %w", err)
	}
	return result, nil
}

// SalesByProduct buckets the filtered window per product, by sale count descending.
func (r *transactionRepository) SalesByProduct(ctx context.Context, filter domain.ReportFilter, limit int) ([]domain.ProductSales, error) {
	where, args := salesFilterClause(filter)
	args = append(args, limit)
	query := fmt.Sprintf(`
		SELECT
			product_id,
			COUNT(*),
			COALESCE(SUM(gross_amount_cents), 0)
		FROM transactions %s
		GROUP BY product_id
		ORDER BY COUNT(*) DESC, product_id ASC
		LIMIT $%d
	`, where, len(args))
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying sales by product: %w", err)
	}
	defer rows.Close()

	result := []domain.ProductSales{}
	for rows.Next() {
		var bucket domain.ProductSales
		if err := rows.Scan(&bucket.ProductID, &bucket.Sales, &bucket.GrossCents); err != nil {
			return nil, fmt.Errorf("error scanning product sales bucket: %w", err)
		}
		result = append(result, bucket)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating product sales buckets: %w", err)
	}
	return result, nil
}

// PlatformIncomeByMonth buckets the filtered window per calendar month, newest first.
func (r *transactionRepository) PlatformIncomeByMonth(ctx context.Context, filter domain.ReportFilter) ([]domain.MonthlyPlatformIncome, error) {
	where, args := salesFilterClause(filter)
	query := `
		SELECT
			to_char(created_at, 'YYYY-MM') AS month,
			COUNT(*),
			COALESCE(SUM(gross_amount_cents), 0),
			COALESCE(SUM(platform_fee_cents), 0),
			COALESCE(SUM(gateway_fee_cents), 0)
		FROM transactions ` + where + `
		GROUP BY month
		ORDER BY month DESC
	`
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying platform income by month: %w", err)
	}
	defer rows.Close()

	result := []domain.MonthlyPlatformIncome{}
	for rows.Next() {
		var bucket domain.MonthlyPlatformIncome
		if err := rows.Scan(&bucket.Month, &bucket.Orders, &bucket.GrossCents, &bucket.PlatformFeesCents, &bucket.GatewayFeesCents); err != nil {
			return nil, fmt.Errorf("error scanning monthly income bucket: %w", err)
		}
		// The platform keeps its fee; the gateway fee is a pass-through cost.
		bucket.NetPlatformIncomeCents = bucket.PlatformFeesCents
		result = append(result, bucket)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating monthly income buckets: %w", err)
	}
	return result, nil
}

// SummarizeSellerWindow aggregates a seller's completed transactions created at
// or after the given instant.
func (r *transactionRepository) SummarizeSellerWindow(ctx context.Context, sellerID string, since time.Time) (domain.SalesTotals, error) {
	query := `
		SELECT
			COUNT(*),
			COALESCE(SUM(gross_amount_cents), 0),
			COALESCE(SUM(gateway_fee_cents), 0),
			COALESCE(SUM(platform_fee_cents), 0),
			COALESCE(SUM(net_amount_cents), 0)
		FROM transactions
		WHERE seller_id = $1 AND status = ANY($2) AND created_at >= $3
	`
	var totals domain.SalesTotals
	err := r.Pool.QueryRow(ctx, query, sellerID, completedStatuses(), since).Scan(
		&totals.TransactionCount,
		&totals.GrossAmountCents,
		&totals.GatewayFeesCents,
		&totals.PlatformFeesCents,
		&totals.NetAmountCents,
	)
	if err != nil {
		return domain.SalesTotals{}, fmt.Errorf("error summarizing seller window: %w", err)
	}
	return totals, nil
}
