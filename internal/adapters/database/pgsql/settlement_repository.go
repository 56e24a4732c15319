package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tipstack/marketplace_backend/internal/apperrors"
	"github.com/tipstack/marketplace_backend/internal/core/domain"
	portsrepo "github.com/tipstack/marketplace_backend/internal/core/ports/repositories"
)

// uniqueViolation is the Postgres error code for unique constraint violations.
const uniqueViolation = "23505"

// settlementRepository implements the SettlementRepositoryFacade using pgxpool.
type settlementRepository struct {
	BaseRepository
}

func newSettlementRepository(db *pgxpool.Pool) portsrepo.SettlementRepositoryFacade {
	return &settlementRepository{BaseRepository: BaseRepository{Pool: db}}
}

const settlementColumns = `
	settlement_id, seller_id, type, period_start, period_end,
	gross_amount_cents, gateway_fees_cents, platform_fees_cents, net_amount_cents,
	transaction_count, status, paid_at, COALESCE(payment_method, ''),
	COALESCE(payment_reference, ''), COALESCE(notes, ''), created_at, updated_at
`

func scanSettlement(row pgx.Row) (*domain.Settlement, error) {
	s := &domain.Settlement{}
	var settlementType, status string
	err := row.Scan(
		&s.SettlementID, &s.SellerID, &settlementType, &s.PeriodStart, &s.PeriodEnd,
		&s.GrossAmountCents, &s.GatewayFeesCents, &s.PlatformFeesCents, &s.NetAmountCents,
		&s.TransactionCount, &status, &s.PaidAt, &s.PaymentMethod,
		&s.PaymentReference, &s.Notes, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("error scanning settlement: %w", err)
	}
	s.Type = domain.SettlementType(settlementType)
	s.Status = domain.SettlementStatus(status)
	return s, nil
}

// SaveSettlement inserts a new settlement. The unique index on
// (seller_id, type, period_start, period_end) makes period materialization
// idempotent: a second insert for the same period maps to ErrDuplicate.
func (r *settlementRepository) SaveSettlement(ctx context.Context, s domain.Settlement) error {
	query := `
		INSERT INTO settlements (
			settlement_id, seller_id, type, period_start, period_end,
			gross_amount_cents, gateway_fees_cents, platform_fees_cents, net_amount_cents,
			transaction_count, status, notes, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NULLIF($12, ''), $13, $14)
	`
	_, err := r.Pool.Exec(ctx, query,
		s.SettlementID, s.SellerID, string(s.Type), s.PeriodStart, s.PeriodEnd,
		s.GrossAmountCents, s.GatewayFeesCents, s.PlatformFeesCents, s.NetAmountCents,
		s.TransactionCount, string(s.Status), s.Notes, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("error inserting settlement: %w", err)
	}
	return nil
}

// FindSettlementByID retrieves one settlement by id.
func (r *settlementRepository) FindSettlementByID(ctx context.Context, settlementID string) (*domain.Settlement, error) {
	query := `SELECT ` + settlementColumns + ` FROM settlements WHERE settlement_id = $1`
	return scanSettlement(r.Pool.QueryRow(ctx, query, settlementID))
}

// MarkSettlementPaid transitions PENDING to PAID. The status guard in the WHERE
// clause serializes concurrent payout attempts on the same settlement: only the
// first one updates a row.
func (r *settlementRepository) MarkSettlementPaid(ctx context.Context, settlementID, paymentMethod, paymentReference string, paidAt time.Time) error {
	query := `
		UPDATE settlements
		SET status = $2, paid_at = $3, payment_method = $4, payment_reference = $5, updated_at = $3
		WHERE settlement_id = $1 AND status = $6
	`
	tag, err := r.Pool.Exec(ctx, query,
		settlementID, string(domain.SettlementPaid), paidAt, paymentMethod, paymentReference,
		string(domain.SettlementPending),
	)
	if err != nil {
		return fmt.Errorf("error marking settlement paid: %w", err)
	}
	if tag.RowsAffected() == 0 {
		// Distinguish a missing settlement from a terminal one.
		if _, findErr := r.FindSettlementByID(ctx, settlementID); findErr != nil {
			return findErr
		}
		return apperrors.ErrAlreadyPaid
	}
	return nil
}

// ListSettlementsBySeller returns a seller's settlements, newest first.
func (r *settlementRepository) ListSettlementsBySeller(ctx context.Context, sellerID string, limit int) ([]domain.Settlement, error) {
	query := `
		SELECT ` + settlementColumns + `
		FROM settlements
		WHERE seller_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`
	rows, err := r.Pool.Query(ctx, query, sellerID, limit)
	if err != nil {
		return nil, fmt.Errorf("error querying settlements: %w", err)
	}
	defer rows.Close()

	settlements := []domain.Settlement{}
	for rows.Next() {
		s, err := scanSettlement(rows)
		if err != nil {
			return nil, err
		}
		settlements = append(settlements, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating settlements: %w", err)
	}
	return settlements, nil
}

// SumPaidNet sums net amounts and counts over all PAID settlements of a seller.
func (r *settlementRepository) SumPaidNet(ctx context.Context, sellerID string) (int64, int64, error) {
	query := `
		SELECT COALESCE(SUM(net_amount_cents), 0), COUNT(*)
		FROM settlements
		WHERE seller_id = $1 AND status = $2
	`
	var totalNetCents, count int64
	err := r.Pool.QueryRow(ctx, query, sellerID, string(domain.SettlementPaid)).Scan(&totalNetCents, &count)
	if err != nil {
		return 0, 0, fmt.Errorf("error summing paid settlements: %w", err)
	}
	return totalNetCents, count, nil
}

// settlementFilterClause builds the WHERE clause shared by the grouped queries.
func settlementFilterClause(filter domain.ReportFilter) (string, []any) {
	where := "WHERE TRUE"
	args := []any{}
	if filter.SellerID != "" {
		args = append(args, filter.SellerID)
		where += fmt.Sprintf(" AND seller_id = $%d", len(args))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		where += fmt.Sprintf(" AND status = $%d", len(args))
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

// GroupByStatus aggregates settlements matching the filter by payout status.
func (r *settlementRepository) GroupByStatus(ctx context.Context, filter domain.ReportFilter) ([]domain.SettlementsByStatus, error) {
	where, args := settlementFilterClause(filter)
	query := `
		SELECT status, COUNT(*), COALESCE(SUM(gross_amount_cents), 0), COALESCE(SUM(net_amount_cents), 0)
		FROM settlements ` + where + `
		GROUP BY status
		ORDER BY status
	`
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying settlements by status: %w", err)
	}
	defer rows.Close()

	result := []domain.SettlementsByStatus{}
	for rows.Next() {
		var bucket domain.SettlementsByStatus
		var status string
		if err := rows.Scan(&status, &bucket.Count, &bucket.TotalGrossCents, &bucket.TotalNetCents); err != nil {
			return nil, fmt.Errorf("error scanning settlement status bucket: %w", err)
		}
		bucket.Status = domain.SettlementStatus(status)
		result = append(result, bucket)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating settlement status buckets: %w", err)
	}
	return result, nil
}

// GroupByType aggregates settlements matching the filter by revenue stream.
func (r *settlementRepository) GroupByType(ctx context.Context, filter domain.ReportFilter) ([]domain.SettlementsByType, error) {
	where, args := settlementFilterClause(filter)
	query := `
		SELECT type, COUNT(*), COALESCE(SUM(gross_amount_cents), 0), COALESCE(SUM(net_amount_cents), 0)
		FROM settlements ` + where + `
		GROUP BY type
		ORDER BY type
	`
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying settlements by type: %w", err)
	}
	defer rows.Close()

	result := []domain.SettlementsByType{}
	for rows.Next() {
		var bucket domain.SettlementsByType
		var settlementType string
		if err := rows.Scan(&settlementType, &bucket.Count, &bucket.TotalGrossCents, &bucket.TotalNetCents); err != nil {
			return nil, fmt.Errorf("error scanning settlement type bucket: %w", err)
		}
		bucket.Type = domain.SettlementType(settlementType)
		result = append(result, bucket)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating settlement type buckets: %w", err)
	}
	return result, nil
}
