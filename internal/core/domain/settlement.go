package domain

import "time"

// SettlementType identifies the revenue stream a settlement covers.
type SettlementType string

const (
	// SettlementSales covers direct sales revenue, settled on a rolling 7-day cadence.
	SettlementSales SettlementType = "SALES"
	// SettlementReferral covers referral/affiliate revenue, settled per calendar month.
	SettlementReferral SettlementType = "REFERRAL"
)

// SettlementStatus is the payout state of a settlement.
type SettlementStatus string

const (
	SettlementPending SettlementStatus = "PENDING"
	SettlementPaid    SettlementStatus = "PAID"
)

// Settlement is one payout cycle for one seller and one revenue stream.
// Net = Gross − GatewayFees − PlatformFees holds at creation time; once the
// settlement is PAID the amount fields are frozen.
type Settlement struct {
	SettlementID      string           `json:"settlementID"`
	SellerID          string           `json:"sellerID"`
	Type              SettlementType   `json:"type"`
	PeriodStart       time.Time        `json:"periodStart"`
	PeriodEnd         time.Time        `json:"periodEnd"`
	GrossAmountCents  int64            `json:"grossAmountCents"`
	GatewayFeesCents  int64            `json:"gatewayFeesCents"`
	PlatformFeesCents int64            `json:"platformFeesCents"`
	NetAmountCents    int64            `json:"netAmountCents"`
	TransactionCount  int64            `json:"transactionCount"`
	Status            SettlementStatus `json:"status"`
	PaidAt            *time.Time       `json:"paidAt,omitempty"`
	PaymentMethod     string           `json:"paymentMethod,omitempty"`
	PaymentReference  string           `json:"paymentReference,omitempty"`
	Notes             string           `json:"notes,omitempty"`
	CreatedAt         time.Time        `json:"createdAt"`
	UpdatedAt         time.Time        `json:"updatedAt"`
}

// SalesPending is the live projection of the current 7-day sales window for a seller.
// It is computed on demand and never materialized until the period closes.
type SalesPending struct {
	PeriodStart        time.Time `json:"periodStart"`
	PeriodEnd          time.Time `json:"periodEnd"`
	GrossAmountCents   int64     `json:"grossAmountCents"`
	GatewayFeesCents   int64     `json:"gatewayFeesCents"`
	PlatformFeesCents  int64     `json:"platformFeesCents"`
	NetAmountCents     int64     `json:"netAmountCents"`
	TransactionCount   int64     `json:"transactionCount"`
	NextSettlementDate time.Time `json:"nextSettlementDate"` // upcoming Sunday 00:00 local
}

// ReferralPending is the current calendar-month referral balance for a seller,
// summed from the referral earnings ledger.
type ReferralPending struct {
	PeriodMonth        string `json:"periodMonth"` // "2006-01"
	TotalEarningsCents int64  `json:"totalEarningsCents"`
	ClientCount        int64  `json:"clientCount"`
	PlatformFeesCents  int64  `json:"platformFeesCents"` // referral stream carries no platform fee
	NetAmountCents     int64  `json:"netAmountCents"`
}

// PendingSummary aggregates both revenue streams for a seller.
type PendingSummary struct {
	SellerID          string          `json:"sellerID"`
	Sales             SalesPending    `json:"sales"`
	Referral          ReferralPending `json:"referral"`
	TotalPendingCents int64           `json:"totalPendingCents"`
}

// PaidOutTotal is a lifetime-earnings figure over all PAID settlements of a seller,
// always expressed in the seller's settlement currency.
type PaidOutTotal struct {
	SellerID          string `json:"sellerID"`
	TotalPaidOutCents int64  `json:"totalPaidOutCents"`
	SettlementCount   int64  `json:"settlementCount"`
}

// SettlementBreakdown is the seller dashboard view: pending projection, recent
// settlement history and the lifetime total.
type SettlementBreakdown struct {
	Pending   PendingSummary `json:"pending"`
	History   []Settlement   `json:"history"`
	TotalPaid PaidOutTotal   `json:"totalPaid"`
}
