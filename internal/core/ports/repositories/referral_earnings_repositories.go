package repositories

import "context"

// ReferralEarningsReadRepository is the read-only contract over the referral
// earnings ledger, keyed by (sellerID, periodMonth). The ledger is written by
// the affiliate subsystem.
type ReferralEarningsReadRepository interface {
	// SumMonthlyEarnings sums pending and confirmed earnings for the seller in
	// the given "2006-01" period.
	SumMonthlyEarnings(ctx context.Context, sellerID, periodMonth string) (totalEarningsCents int64, clientCount int64, err error)
}
