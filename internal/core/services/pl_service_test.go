package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/matagroup/mata_gestion_app/internal/apperrors"
	"github.com/matagroup/mata_gestion_app/internal/core/domain"
	"github.com/matagroup/mata_gestion_app/internal/core/services"
)

type PLServiceTestSuite struct {
	suite.Suite
	mockReportingRepo *MockReportingRepository
	mockCashRepo      *MockCashBictorysRepository
	mockStockRepo     *MockStockVivantRepository
	mockSettingsRepo  *MockSettingsRepository
	service           *services.PLService
}

func (suite *PLServiceTestSuite) SetupTest() {
	suite.mockReportingRepo = new(MockReportingRepository)
	suite.mockCashRepo = new(MockCashBictorysRepository)
	suite.mockStockRepo = new(MockStockVivantRepository)
	suite.mockSettingsRepo = new(MockSettingsRepository)
	suite.service = services.NewPLService(suite.mockReportingRepo, suite.mockCashRepo, suite.mockStockRepo, suite.mockSettingsRepo)
}

func (suite *PLServiceTestSuite) TestComputePLFullDerivation() {
	ctx := context.Background()
	monthStart := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	monthEnd := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)
	snapshot := time.Date(2025, 1, 18, 0, 0, 0, 0, time.UTC)

	suite.mockSettingsRepo.On("GetSettings", ctx).
		Return(&domain.FinancialSettings{ChargesFixesEstimation: 3_000_000}, nil).Once()

	// The cash snapshot is a position: the latest value counts, never a sum.
	suite.mockCashRepo.On("LatestNotAfter", ctx, monthStart, snapshot).
		Return(&domain.CashBictorys{Amount: 8_000_000}, nil).Once()
	suite.mockReportingRepo.On("CreanceMovementBetween", ctx, monthStart, snapshot).Return(int64(1_000_000), nil).Once()
	suite.mockReportingRepo.On("LatestStockSoirBetween", ctx, monthStart, snapshot).Return(int64(2_000_000), true, nil).Once()
	suite.mockReportingRepo.On("CashBurnBetween", ctx, monthStart, snapshot).Return(int64(3_000_000), nil).Once()
	suite.mockStockRepo.On("TotalAt", ctx, monthStart).Return(int64(1_000_000), nil).Once()
	suite.mockStockRepo.On("TotalAt", ctx, monthEnd).Return(int64(3_000_000), nil).Once()
	suite.mockReportingRepo.On("ValidatedDeliveriesBetween", ctx, monthStart, snapshot).Return(int64(500_000), nil).Once()

	result, err := suite.service.ComputePL(ctx, "2025-01", snapshot)

	suite.Require().NoError(err)
	// 8,000,000 + 1,000,000 + 2,000,000 − 3,000,000 = 8,000,000 before stock
	// and deliveries; +2,000,000 variation − 500,000 deliveries = 9,500,000.
	suite.Equal(int64(8_000_000), result.Breakdown.PLSansStockCharges)
	suite.Equal(int64(2_000_000), result.Breakdown.StockVivantVariation)
	suite.Equal(int64(9_500_000), result.PLBrut)

	// January 2025 has 27 working days (Monday–Saturday), 16 of them through
	// the 18th: round(3,000,000 × 16 / 27) = 1,777,778.
	suite.Equal(27, result.Breakdown.JoursOuvrablesTotal)
	suite.Equal(16, result.Breakdown.JoursOuvrablesEcoules)
	suite.Equal(int64(1_777_778), result.Breakdown.ChargesProrata)
	suite.Equal(int64(9_500_000-1_777_778), result.PLFinal)
}

func (suite *PLServiceTestSuite) TestComputePLNoCashSnapshotIsZeroContribution() {
	ctx := context.Background()
	monthStart := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	monthEnd := time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC)
	snapshot := time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC)

	suite.mockSettingsRepo.On("GetSettings", ctx).
		Return(&domain.FinancialSettings{ChargesFixesEstimation: 0}, nil).Once()
	suite.mockCashRepo.On("LatestNotAfter", ctx, monthStart, snapshot).Return(nil, nil).Once()
	suite.mockReportingRepo.On("CreanceMovementBetween", ctx, monthStart, snapshot).Return(int64(0), nil).Once()
	suite.mockReportingRepo.On("LatestStockSoirBetween", ctx, monthStart, snapshot).Return(int64(0), false, nil).Once()
	suite.mockReportingRepo.On("CashBurnBetween", ctx, monthStart, snapshot).Return(int64(400_000), nil).Once()
	suite.mockStockRepo.On("TotalAt", ctx, monthStart).Return(int64(0), nil).Once()
	suite.mockStockRepo.On("TotalAt", ctx, monthEnd).Return(int64(0), nil).Once()
	suite.mockReportingRepo.On("ValidatedDeliveriesBetween", ctx, monthStart, snapshot).Return(int64(0), nil).Once()

	result, err := suite.service.ComputePL(ctx, "2025-02", snapshot)

	suite.Require().NoError(err)
	suite.Equal(int64(0), result.Breakdown.CashBictorys)
	suite.Equal(int64(-400_000), result.PLBrut)
}

func (suite *PLServiceTestSuite) TestComputePLSnapshotOutsideMonth() {
	ctx := context.Background()
	snapshot := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)

	result, err := suite.service.ComputePL(ctx, "2025-01", snapshot)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(result)
	suite.mockSettingsRepo.AssertNotCalled(suite.T(), "GetSettings", mock.Anything)
}

func (suite *PLServiceTestSuite) TestComputePLMissingSettingsIsConfigurationError() {
	ctx := context.Background()
	snapshot := time.Date(2025, 1, 18, 0, 0, 0, 0, time.UTC)

	suite.mockSettingsRepo.On("GetSettings", ctx).Return(nil, apperrors.ErrNotFound).Once()

	result, err := suite.service.ComputePL(ctx, "2025-01", snapshot)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConfiguration)
	suite.Nil(result)
}

func (suite *PLServiceTestSuite) TestComputePLRejectsBadMonth() {
	ctx := context.Background()

	_, err := suite.service.ComputePL(ctx, "janvier", time.Now())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func TestPLServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PLServiceTestSuite))
}
