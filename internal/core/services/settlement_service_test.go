package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/tipstack/marketplace_backend/internal/apperrors"
	"github.com/tipstack/marketplace_backend/internal/core/domain"
	portssvc "github.com/tipstack/marketplace_backend/internal/core/ports/services"
	"github.com/tipstack/marketplace_backend/internal/core/services"
	"github.com/tipstack/marketplace_backend/internal/dto"
)

type SettlementServiceTestSuite struct {
	suite.Suite
	mockSettlementRepo *MockSettlementRepository
	mockTxnRepo        *MockTransactionRepository
	mockReferralRepo   *MockReferralEarningsRepository
	now                time.Time
	service            portssvc.SettlementSvcFacade
}

func (suite *SettlementServiceTestSuite) SetupTest() {
	suite.mockSettlementRepo = new(MockSettlementRepository)
	suite.mockTxnRepo = new(MockTransactionRepository)
	suite.mockReferralRepo = new(MockReferralEarningsRepository)
	suite.now = time.Date(2025, 6, 4, 15, 30, 0, 0, time.UTC) // a Wednesday
	suite.service = services.NewSettlementService(
		suite.mockSettlementRepo,
		suite.mockTxnRepo,
		suite.mockReferralRepo,
		services.WithSettlementClock(func() time.Time { return suite.now }),
	)
}

func (suite *SettlementServiceTestSuite) TestPendingSummary_CombinesBothStreams() {
	ctx := context.Background()
	sellerID := "seller-1"
	windowStart := suite.now.AddDate(0, 0, -7)

	suite.mockTxnRepo.On("SummarizeSellerWindow", ctx, sellerID, windowStart).Return(domain.SalesTotals{
		TransactionCount:  2,
		GrossAmountCents:  3000,
		GatewayFeesCents:  90,
		PlatformFeesCents: 300,
		NetAmountCents:    2610,
	}, nil)
	suite.mockReferralRepo.On("SumMonthlyEarnings", ctx, sellerID, "2025-06").Return(int64(500), int64(3), nil)

	summary, err := suite.service.PendingSummary(ctx, sellerID)
	suite.Require().NoError(err)

	suite.Equal(int64(2610), summary.Sales.NetAmountCents)
	suite.Equal(int64(500), summary.Referral.TotalEarningsCents)
	suite.Equal(int64(3), summary.Referral.ClientCount)
	suite.Equal(int64(3110), summary.TotalPendingCents)
	// Wednesday 2025-06-04 → upcoming Sunday is 2025-06-08 00:00.
	suite.Equal(time.Date(2025, 6, 8, 0, 0, 0, 0, time.UTC), summary.Sales.NextSettlementDate)
}

func (suite *SettlementServiceTestSuite) TestPendingSummary_SundayRollsToNextSunday() {
	ctx := context.Background()
	sellerID := "seller-1"
	suite.now = time.Date(2025, 6, 8, 9, 0, 0, 0, time.UTC) // a Sunday
	windowStart := suite.now.AddDate(0, 0, -7)

	suite.mockTxnRepo.On("SummarizeSellerWindow", ctx, sellerID, windowStart).Return(domain.SalesTotals{}, nil)
	suite.mockReferralRepo.On("SumMonthlyEarnings", ctx, sellerID, "2025-06").Return(int64(0), int64(0), nil)

	summary, err := suite.service.PendingSummary(ctx, sellerID)
	suite.Require().NoError(err)
	suite.Equal(time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC), summary.Sales.NextSettlementDate)
}

func (suite *SettlementServiceTestSuite) TestPendingSummary_RequiresSellerID() {
	_, err := suite.service.PendingSummary(context.Background(), "")
	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func validCreateRequest() dto.CreateSettlementRequest {
	return dto.CreateSettlementRequest{
		SellerID:          "seller-1",
		Type:              "SALES",
		PeriodStart:       time.Date(2025, 5, 25, 0, 0, 0, 0, time.UTC),
		PeriodEnd:         time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		GrossAmountCents:  3000,
		GatewayFeesCents:  90,
		PlatformFeesCents: 300,
		NetAmountCents:    2610,
		TransactionCount:  2,
	}
}

func (suite *SettlementServiceTestSuite) TestCreateSettlement_Success() {
	ctx := context.Background()
	suite.mockSettlementRepo.On("SaveSettlement", ctx, mock.MatchedBy(func(s domain.Settlement) bool {
		return s.Status == domain.SettlementPending &&
			s.NetAmountCents == s.GrossAmountCents-s.GatewayFeesCents-s.PlatformFeesCents &&
			s.SettlementID != ""
	})).Return(nil)

	settlement, err := suite.service.CreateSettlement(ctx, validCreateRequest())
	suite.Require().NoError(err)
	suite.Equal(domain.SettlementPending, settlement.Status)
	suite.Equal(int64(2610), settlement.NetAmountCents)
	suite.mockSettlementRepo.AssertExpectations(suite.T())
}

func (suite *SettlementServiceTestSuite) TestCreateSettlement_RejectsInconsistentAmounts() {
	req := validCreateRequest()
	req.NetAmountCents = 2600 // gross − fees is 2610

	_, err := suite.service.CreateSettlement(context.Background(), req)
	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockSettlementRepo.AssertNotCalled(suite.T(), "SaveSettlement", mock.Anything, mock.Anything)
}

func (suite *SettlementServiceTestSuite) TestCreateSettlement_RejectsInvertedPeriod() {
	req := validCreateRequest()
	req.PeriodEnd = req.PeriodStart

	_, err := suite.service.CreateSettlement(context.Background(), req)
	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *SettlementServiceTestSuite) TestCreateSettlement_DuplicatePeriod() {
	ctx := context.Background()
	suite.mockSettlementRepo.On("SaveSettlement", ctx, mock.AnythingOfType("domain.Settlement")).Return(apperrors.ErrDuplicate)

	_, err := suite.service.CreateSettlement(ctx, validCreateRequest())
	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

func (suite *SettlementServiceTestSuite) TestMarkAsPaid_Success() {
	ctx := context.Background()
	settlementID := "settlement-1"
	paid := &domain.Settlement{
		SettlementID: settlementID,
		Status:       domain.SettlementPaid,
		PaidAt:       &suite.now,
	}
	suite.mockSettlementRepo.On("MarkSettlementPaid", ctx, settlementID, "bank_transfer", "ref-42", suite.now).Return(nil)
	suite.mockSettlementRepo.On("FindSettlementByID", ctx, settlementID).Return(paid, nil)

	settlement, err := suite.service.MarkAsPaid(ctx, settlementID, "bank_transfer", "ref-42")
	suite.Require().NoError(err)
	suite.Equal(domain.SettlementPaid, settlement.Status)
	suite.NotNil(settlement.PaidAt)
}

func (suite *SettlementServiceTestSuite) TestMarkAsPaid_AlreadyPaid() {
	ctx := context.Background()
	suite.mockSettlementRepo.On("MarkSettlementPaid", ctx, "settlement-1", "bank_transfer", "ref-42", suite.now).Return(apperrors.ErrAlreadyPaid)

	_, err := suite.service.MarkAsPaid(ctx, "settlement-1", "bank_transfer", "ref-42")
	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrAlreadyPaid)
}

func (suite *SettlementServiceTestSuite) TestMarkAsPaid_NotFound() {
	ctx := context.Background()
	suite.mockSettlementRepo.On("MarkSettlementPaid", ctx, "missing", "bank_transfer", "ref-42", suite.now).Return(apperrors.ErrNotFound)

	_, err := suite.service.MarkAsPaid(ctx, "missing", "bank_transfer", "ref-42")
	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *SettlementServiceTestSuite) TestTotalPaidOut() {
	ctx := context.Background()
	suite.mockSettlementRepo.On("SumPaidNet", ctx, "seller-1").Return(int64(52100), int64(4), nil)

	total, err := suite.service.TotalPaidOut(ctx, "seller-1")
	suite.Require().NoError(err)
	suite.Equal(int64(52100), total.TotalPaidOutCents)
	suite.Equal(int64(4), total.SettlementCount)
}

func (suite *SettlementServiceTestSuite) TestSettlementHistory_DefaultsLimit() {
	ctx := context.Background()
	suite.mockSettlementRepo.On("ListSettlementsBySeller", ctx, "seller-1", 20).Return([]domain.Settlement{}, nil)

	_, err := suite.service.SettlementHistory(ctx, "seller-1", 0)
	suite.Require().NoError(err)
	suite.mockSettlementRepo.AssertExpectations(suite.T())
}

func (suite *SettlementServiceTestSuite) TestDetailedBreakdown() {
	ctx := context.Background()
	sellerID := "seller-1"
	windowStart := suite.now.AddDate(0, 0, -7)

	suite.mockTxnRepo.On("SummarizeSellerWindow", ctx, sellerID, windowStart).Return(domain.SalesTotals{NetAmountCents: 2610}, nil)
	suite.mockReferralRepo.On("SumMonthlyEarnings", ctx, sellerID, "2025-06").Return(int64(500), int64(3), nil)
	suite.mockSettlementRepo.On("ListSettlementsBySeller", ctx, sellerID, 20).Return([]domain.Settlement{
		{SettlementID: "settlement-1", Status: domain.SettlementPaid},
	}, nil)
	suite.mockSettlementRepo.On("SumPaidNet", ctx, sellerID).Return(int64(52100), int64(4), nil)

	breakdown, err := suite.service.DetailedBreakdown(ctx, sellerID)
	suite.Require().NoError(err)
	suite.Equal(int64(3110), breakdown.Pending.TotalPendingCents)
	suite.Len(breakdown.History, 1)
	suite.Equal(int64(52100), breakdown.TotalPaid.TotalPaidOutCents)
}

func TestSettlementServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SettlementServiceTestSuite))
}
