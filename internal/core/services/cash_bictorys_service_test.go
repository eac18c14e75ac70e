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
	"github.com/matagroup/mata_gestion_app/internal/dto"
)

type CashBictorysServiceTestSuite struct {
	suite.Suite
	mockCashRepo *MockCashBictorysRepository
	service      *services.CashBictorysService
}

func (suite *CashBictorysServiceTestSuite) SetupTest() {
	suite.mockCashRepo = new(MockCashBictorysRepository)
	suite.service = services.NewCashBictorysService(suite.mockCashRepo)
}

func (suite *CashBictorysServiceTestSuite) TestUpsertEntryDerivesMonthYear() {
	ctx := context.Background()

	var saved domain.CashBictorys
	suite.mockCashRepo.On("UpsertEntry", ctx, mock.AnythingOfType("domain.CashBictorys")).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(domain.CashBictorys)
		}).
		Return(nil).Once()

	entry, err := suite.service.UpsertEntry(ctx, dto.UpsertCashBictorysRequest{
		Date:   "2025-01-20",
		Amount: 18_500_000,
	}, "user-1")

	suite.Require().NoError(err)
	suite.Equal("2025-01", entry.MonthYear)
	suite.Equal(int64(18_500_000), entry.Amount)
	suite.Equal("2025-01", saved.MonthYear)
}

func (suite *CashBictorysServiceTestSuite) TestUpsertEntryRejectsNegativeAmount() {
	ctx := context.Background()

	_, err := suite.service.UpsertEntry(ctx, dto.UpsertCashBictorysRequest{
		Date:   "2025-01-20",
		Amount: -1,
	}, "user-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

// Snapshots are positions, not deltas: when the 20th reads 18,500,000 and the
// 25th reads 13,500,000, the month's value at the 25th is 13,500,000.
func (suite *CashBictorysServiceTestSuite) TestLatestValueIsNotCumulative() {
	ctx := context.Background()
	monthStart := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	cutoff := time.Date(2025, 1, 25, 0, 0, 0, 0, time.UTC)

	suite.mockCashRepo.On("LatestNotAfter", ctx, monthStart, cutoff).
		Return(&domain.CashBictorys{Amount: 13_500_000, Date: cutoff}, nil).Once()

	value, err := suite.service.LatestValue(ctx, "2025-01", cutoff)

	suite.Require().NoError(err)
	suite.Equal(int64(13_500_000), value)
}

func (suite *CashBictorysServiceTestSuite) TestLatestValueClampsCutoffToMonthEnd() {
	ctx := context.Background()
	monthStart := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	monthEnd := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)
	cutoff := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	suite.mockCashRepo.On("LatestNotAfter", ctx, monthStart, monthEnd).
		Return(&domain.CashBictorys{Amount: 9_000_000}, nil).Once()

	value, err := suite.service.LatestValue(ctx, "2025-01", cutoff)

	suite.Require().NoError(err)
	suite.Equal(int64(9_000_000), value)
	suite.mockCashRepo.AssertExpectations(suite.T())
}

func (suite *CashBictorysServiceTestSuite) TestLatestValueEmptyMonthIsZero() {
	ctx := context.Background()
	monthStart := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	cutoff := time.Date(2025, 4, 10, 0, 0, 0, 0, time.UTC)

	suite.mockCashRepo.On("LatestNotAfter", ctx, monthStart, cutoff).Return(nil, nil).Once()

	value, err := suite.service.LatestValue(ctx, "2025-04", cutoff)

	suite.Require().NoError(err)
	suite.Equal(int64(0), value)
}

func TestCashBictorysServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CashBictorysServiceTestSuite))
}
