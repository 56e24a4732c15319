package repositories

import (
	"context"
	"time"

	"github.com/tipstack/marketplace_backend/internal/core/domain"
)

// SettlementReader defines read operations for settlement data.
type SettlementReader interface {
	// FindSettlementByID retrieves one settlement. Returns apperrors.ErrNotFound.
	FindSettlementByID(ctx context.Context, settlementID string) (*domain.Settlement, error)

	// ListSettlementsBySeller returns a seller's settlements, newest first.
	ListSettlementsBySeller(ctx context.Context, sellerID string, limit int) ([]domain.Settlement, error)

	// SumPaidNet sums net amounts and counts over all PAID settlements of a seller.
	SumPaidNet(ctx context.Context, sellerID string) (totalNetCents int64, count int64, err error)

	// GroupByStatus aggregates settlements matching the filter by payout status.
	GroupByStatus(ctx context.Context, filter domain.ReportFilter) ([]domain.SettlementsByStatus, error)

	// GroupByType aggregates settlements matching the filter by revenue stream.
	GroupByType(ctx context.Context, filter domain.ReportFilter) ([]domain.SettlementsByType, error)
}

// SettlementWriter defines write operations for settlement data.
type SettlementWriter interface {
	// SaveSettlement inserts a new settlement. The store enforces uniqueness on
	// (sellerID, type, periodStart, periodEnd) and returns apperrors.ErrDuplicate
	// when the period was already settled.
	SaveSettlement(ctx context.Context, settlement domain.Settlement) error

	// MarkSettlementPaid transitions PENDING to PAID, stamping the payment details.
	// Returns apperrors.ErrAlreadyPaid when the settlement is not PENDING and
	// apperrors.ErrNotFound when it does not exist.
	MarkSettlementPaid(ctx context.Context, settlementID, paymentMethod, paymentReference string, paidAt time.Time) error
}

// SettlementRepositoryFacade combines all settlement-related repository interfaces.
type SettlementRepositoryFacade interface {
	SettlementReader
	SettlementWriter
}
