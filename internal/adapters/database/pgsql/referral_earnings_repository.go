package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	portsrepo "github.com/tipstack/marketplace_backend/internal/core/ports/repositories"
)

// referralEarningsRepository implements the read-only ReferralEarningsReadRepository
// over the affiliate subsystem's earnings ledger.
type referralEarningsRepository struct {
	BaseRepository
}

func newReferralEarningsRepository(db *pgxpool.Pool) portsrepo.ReferralEarningsReadRepository {
	return &referralEarningsRepository{BaseRepository: BaseRepository{Pool: db}}
}

// SumMonthlyEarnings sums PENDING and CONFIRMED earnings for one seller and
// calendar month, plus the number of distinct referred clients involved.
func (r *referralEarningsRepository) SumMonthlyEarnings(ctx context.Context, sellerID, periodMonth string) (int64, int64, error) {
	query := `
		SELECT COALESCE(SUM(amount_cents), 0), COUNT(DISTINCT referred_client_id)
		FROM referral_earnings
		WHERE seller_id = $1 AND period_month = $2 AND status IN ('PENDING', 'CONFIRMED')
	`
	var totalEarningsCents, clientCount int64
	err := r.Pool.QueryRow(ctx, query, sellerID, periodMonth).Scan(&totalEarningsCents, &clientCount)
	if err != nil {
		return 0, 0, fmt.Errorf("error summing referral earnings: %w", err)
	}
	return totalEarningsCents, clientCount, nil
}
