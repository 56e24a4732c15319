package services

import (
	"context"

	"github.com/tipstack/marketplace_backend/internal/core/domain"
	"github.com/tipstack/marketplace_backend/internal/dto"
)

// SettlementSvcFacade computes pending payouts per revenue stream and manages
// the settlement lifecycle. Reads are pure aggregations and safe to call
// concurrently; mutations are surfaced explicitly and never silently no-op.
type SettlementSvcFacade interface {
	// PendingSummary returns the live payout projection for both revenue streams.
	PendingSummary(ctx context.Context, sellerID string) (*domain.PendingSummary, error)

	// CreateSettlement materializes a closed period as a PENDING settlement.
	// Period-boundary triggering belongs to the caller; the store rejects a
	// second settlement for the same (seller, type, period) with ErrDuplicate.
	CreateSettlement(ctx context.Context, req dto.CreateSettlementRequest) (*domain.Settlement, error)

	// MarkAsPaid transitions a settlement PENDING→PAID. PAID is terminal.
	MarkAsPaid(ctx context.Context, settlementID, paymentMethod, paymentReference string) (*domain.Settlement, error)

	// TotalPaidOut sums net amounts over all PAID settlements of a seller.
	TotalPaidOut(ctx context.Context, sellerID string) (*domain.PaidOutTotal, error)

	// SettlementHistory lists a seller's settlements, newest first.
	SettlementHistory(ctx context.Context, sellerID string, limit int) ([]domain.Settlement, error)

	// DetailedBreakdown combines pending summary, recent history and lifetime total.
	DetailedBreakdown(ctx context.Context, sellerID string) (*domain.SettlementBreakdown, error)
}
