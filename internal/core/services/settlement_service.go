package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/tipstack/marketplace_backend/internal/apperrors"
	"github.com/tipstack/marketplace_backend/internal/core/domain"
	portsrepo "github.com/tipstack/marketplace_backend/internal/core/ports/repositories"
	portssvc "github.com/tipstack/marketplace_backend/internal/core/ports/services"
	"github.com/tipstack/marketplace_backend/internal/dto"
)

const defaultHistoryLimit = 20

// settlementService computes pending payout projections and manages the
// settlement lifecycle.
type settlementService struct {
	BaseService
	settlementRepo portsrepo.SettlementRepositoryFacade
	txnRepo        portsrepo.TransactionReadRepository
	referralRepo   portsrepo.ReferralEarningsReadRepository
	now            func() time.Time
}

// SettlementOption configures optional dependencies of the settlement service.
type SettlementOption func(*settlementService)

// WithSettlementClock overrides the clock, for tests.
func WithSettlementClock(now func() time.Time) SettlementOption {
	return func(s *settlementService) {
		s.now = now
	}
}

// NewSettlementService creates the settlement service.
func NewSettlementService(settlementRepo portsrepo.SettlementRepositoryFacade, txnRepo portsrepo.TransactionReadRepository, referralRepo portsrepo.ReferralEarningsReadRepository, opts ...SettlementOption) portssvc.SettlementSvcFacade {
	s := &settlementService{
		settlementRepo: settlementRepo,
		txnRepo:        txnRepo,
		referralRepo:   referralRepo,
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// nextSunday returns the upcoming Sunday at 00:00 in t's location. When t is
// already a Sunday the boundary is the following Sunday, so a settlement day
// always closes a full window.
func nextSunday(t time.Time) time.Time {
	days := (7 - int(t.Weekday())) % 7
	if days == 0 {
		days = 7
	}
	day := t.AddDate(0, 0, days)
	return time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, t.Location())
}

// PendingSummary projects the live pending payout for both revenue streams:
// the rolling 7-day sales window and the current calendar month of referral
// earnings. Nothing is materialized here.
func (s *settlementService) PendingSummary(ctx context.Context, sellerID string) (*domain.PendingSummary, error) {
	if sellerID == "" {
		return nil, fmt.Errorf("%w: sellerID is required", apperrors.ErrValidation)
	}
	now := s.now()
	windowStart := now.AddDate(0, 0, -7)

	totals, err := s.txnRepo.SummarizeSellerWindow(ctx, sellerID, windowStart)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize sales window: %w", err)
	}

	periodMonth := now.Format("2006-01")
	earningsCents, clientCount, err := s.referralRepo.SumMonthlyEarnings(ctx, sellerID, periodMonth)
	if err != nil {
		return nil, fmt.Errorf("failed to sum referral earnings: %w", err)
	}

	summary := &domain.PendingSummary{
		SellerID: sellerID,
		Sales: domain.SalesPending{
			PeriodStart:        windowStart,
			PeriodEnd:          now,
			GrossAmountCents:   totals.GrossAmountCents,
			GatewayFeesCents:   totals.GatewayFeesCents,
			PlatformFeesCents:  totals.PlatformFeesCents,
			NetAmountCents:     totals.NetAmountCents,
			TransactionCount:   totals.TransactionCount,
			NextSettlementDate: nextSunday(now),
		},
		Referral: domain.ReferralPending{
			PeriodMonth:        periodMonth,
			TotalEarningsCents: earningsCents,
			ClientCount:        clientCount,
			NetAmountCents:     earningsCents,
		},
		TotalPendingCents: totals.NetAmountCents + earningsCents,
	}
	return summary, nil
}

// CreateSettlement materializes a closed period as a PENDING settlement. The
// amount fields must be internally consistent; the store's unique index makes
// the operation idempotent per (seller, type, period).
func (s *settlementService) CreateSettlement(ctx context.Context, req dto.CreateSettlementRequest) (*domain.Settlement, error) {
	if !req.PeriodEnd.After(req.PeriodStart) {
		return nil, fmt.Errorf("%w: periodEnd must be after periodStart", apperrors.ErrValidation)
	}
	if req.GrossAmountCents < 0 || req.GatewayFeesCents < 0 || req.PlatformFeesCents < 0 || req.NetAmountCents < 0 {
		return nil, fmt.Errorf("%w: settlement amounts cannot be negative", apperrors.ErrValidation)
	}
	if req.NetAmountCents != req.GrossAmountCents-req.GatewayFeesCents-req.PlatformFeesCents {
		return nil, fmt.Errorf("%w: net amount must equal gross minus fees", apperrors.ErrValidation)
	}

	now := s.now()
	settlement := domain.Settlement{
		SettlementID:      uuid.NewString(),
		SellerID:          req.SellerID,
		Type:              domain.SettlementType(req.Type),
		PeriodStart:       req.PeriodStart,
		PeriodEnd:         req.PeriodEnd,
		GrossAmountCents:  req.GrossAmountCents,
		GatewayFeesCents:  req.GatewayFeesCents,
		PlatformFeesCents: req.PlatformFeesCents,
		NetAmountCents:    req.NetAmountCents,
		TransactionCount:  req.TransactionCount,
		Status:            domain.SettlementPending,
		Notes:             req.Notes,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := s.settlementRepo.SaveSettlement(ctx, settlement); err != nil {
		return nil, err
	}
	s.LogInfo(ctx, "settlement created",
		slog.String("settlement_id", settlement.SettlementID),
		slog.String("seller_id", settlement.SellerID),
		slog.String("type", string(settlement.Type)),
		slog.Int64("net_amount_cents", settlement.NetAmountCents))
	return &settlement, nil
}

// MarkAsPaid transitions PENDING→PAID. PAID is terminal; repeated calls return
// ErrAlreadyPaid.
func (s *settlementService) MarkAsPaid(ctx context.Context, settlementID, paymentMethod, paymentReference string) (*domain.Settlement, error) {
	if settlementID == "" {
		return nil, fmt.Errorf("%w: settlementID is required", apperrors.ErrValidation)
	}
	paidAt := s.now()
	if err := s.settlementRepo.MarkSettlementPaid(ctx, settlementID, paymentMethod, paymentReference, paidAt); err != nil {
		return nil, err
	}
	s.LogInfo(ctx, "settlement paid",
		slog.String("settlement_id", settlementID),
		slog.String("payment_method", paymentMethod))
	return s.settlementRepo.FindSettlementByID(ctx, settlementID)
}

// TotalPaidOut sums net amounts over all PAID settlements of a seller.
func (s *settlementService) TotalPaidOut(ctx context.Context, sellerID string) (*domain.PaidOutTotal, error) {
	if sellerID == "" {
		return nil, fmt.Errorf("%w: sellerID is required", apperrors.ErrValidation)
	}
	totalNetCents, count, err := s.settlementRepo.SumPaidNet(ctx, sellerID)
	if err != nil {
		return nil, fmt.Errorf("failed to sum paid settlements: %w", err)
	}
	return &domain.PaidOutTotal{
		SellerID:          sellerID,
		TotalPaidOutCents: totalNetCents,
		SettlementCount:   count,
	}, nil
}

// SettlementHistory lists a seller's settlements, newest first.
func (s *settlementService) SettlementHistory(ctx context.Context, sellerID string, limit int) ([]domain.Settlement, error) {
	if sellerID == "" {
		return nil, fmt.Errorf("%w: sellerID is required", apperrors.ErrValidation)
	}
	if limit <= 0 || limit > 100 {
		limit = defaultHistoryLimit
	}
	return s.settlementRepo.ListSettlementsBySeller(ctx, sellerID, limit)
}

// DetailedBreakdown combines the pending projection, recent history and the
// lifetime paid total into the seller dashboard view.
func (s *settlementService) DetailedBreakdown(ctx context.Context, sellerID string) (*domain.SettlementBreakdown, error) {
	pending, err := s.PendingSummary(ctx, sellerID)
	if err != nil {
		return nil, err
	}
	history, err := s.SettlementHistory(ctx, sellerID, defaultHistoryLimit)
	if err != nil {
		return nil, err
	}
	totalPaid, err := s.TotalPaidOut(ctx, sellerID)
	if err != nil {
		return nil, err
	}
	return &domain.SettlementBreakdown{
		Pending:   *pending,
		History:   history,
		TotalPaid: *totalPaid,
	}, nil
}
