package dto

import (
	"time"

	"github.com/tipstack/marketplace_backend/internal/core/domain"
)

// CreateSettlementRequest defines the payload for materializing a closed payout
// period. The (sellerID, type, periodStart, periodEnd) tuple doubles as the
// idempotency key enforced by the settlement store.
type CreateSettlementRequest struct {
	SellerID          string    `json:"sellerID" binding:"required"`
	Type              string    `json:"type" binding:"required,oneof=SALES REFERRAL"`
	PeriodStart       time.Time `json:"periodStart" binding:"required"`
	PeriodEnd         time.Time `json:"periodEnd" binding:"required"`
	GrossAmountCents  int64     `json:"grossAmountCents"`
	GatewayFeesCents  int64     `json:"gatewayFeesCents"`
	PlatformFeesCents int64     `json:"platformFeesCents"`
	NetAmountCents    int64     `json:"netAmountCents"`
	TransactionCount  int64     `json:"transactionCount"`
	Notes             string    `json:"notes"`
}

// MarkSettlementPaidRequest defines the payload for the payout transition.
type MarkSettlementPaidRequest struct {
	PaymentMethod    string `json:"paymentMethod" binding:"required"`
	PaymentReference string `json:"paymentReference" binding:"required"`
}

// SettlementResponse is the API shape of one settlement.
type SettlementResponse struct {
	SettlementID      string     `json:"settlementID"`
	SellerID          string     `json:"sellerID"`
	Type              string     `json:"type"`
	PeriodStart       time.Time  `json:"periodStart"`
	PeriodEnd         time.Time  `json:"periodEnd"`
	GrossAmountCents  int64      `json:"grossAmountCents"`
	GatewayFeesCents  int64      `json:"gatewayFeesCents"`
	PlatformFeesCents int64      `json:"platformFeesCents"`
	NetAmountCents    int64      `json:"netAmountCents"`
	TransactionCount  int64      `json:"transactionCount"`
	Status            string     `json:"status"`
	PaidAt            *time.Time `json:"paidAt,omitempty"`
	PaymentMethod     string     `json:"paymentMethod,omitempty"`
	PaymentReference  string     `json:"paymentReference,omitempty"`
	CreatedAt         time.Time  `json:"createdAt"`
}

// ToSettlementResponse converts a domain.Settlement to its response DTO.
func ToSettlementResponse(s *domain.Settlement) SettlementResponse {
	return SettlementResponse{
		SettlementID:      s.SettlementID,
		SellerID:          s.SellerID,
		Type:              string(s.Type),
		PeriodStart:       s.PeriodStart,
		PeriodEnd:         s.PeriodEnd,
		GrossAmountCents:  s.GrossAmountCents,
		GatewayFeesCents:  s.GatewayFeesCents,
		PlatformFeesCents: s.PlatformFeesCents,
		NetAmountCents:    s.NetAmountCents,
		TransactionCount:  s.TransactionCount,
		Status:            string(s.Status),
		PaidAt:            s.PaidAt,
		PaymentMethod:     s.PaymentMethod,
		PaymentReference:  s.PaymentReference,
		CreatedAt:         s.CreatedAt,
	}
}

// ToListSettlementResponse converts a slice of settlements to response DTOs.
func ToListSettlementResponse(settlements []domain.Settlement) []SettlementResponse {
	responses := make([]SettlementResponse, len(settlements))
	for i := range settlements {
		responses[i] = ToSettlementResponse(&settlements[i])
	}
	return responses
}
