package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/matagroup/mata_gestion_app/internal/apperrors"
	"github.com/matagroup/mata_gestion_app/internal/core/domain"
	"github.com/matagroup/mata_gestion_app/internal/core/services"
)

type AuditServiceTestSuite struct {
	suite.Suite
	mockAccountRepo *MockAccountRepository
	mockLedgerRepo  *MockLedgerRepository
	mockBalanceSvc  *MockBalanceService
	service         *services.AuditService
}

func (suite *AuditServiceTestSuite) SetupTest() {
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockLedgerRepo = new(MockLedgerRepository)
	suite.mockBalanceSvc = new(MockBalanceService)
	suite.service = services.NewAuditService(suite.mockAccountRepo, suite.mockLedgerRepo, suite.mockBalanceSvc)
}

func (suite *AuditServiceTestSuite) TestComputeAuditFluxSum() {
	ctx := context.Background()

	suite.mockAccountRepo.On("FindAccountByName", ctx, "Caisse").
		Return(&domain.Account{AccountID: "acc-1", AccountName: "Caisse"}, nil).Once()
	suite.mockLedgerRepo.On("AuditFluxTotals", ctx, "Caisse").
		Return(&domain.AuditFluxTotals{
			Credits:      1_000_000,
			Expenses:     400_000,
			TransfersIn:  200_000,
			TransfersOut: 100_000,
		}, nil).Once()

	sum, err := suite.service.ComputeAuditFluxSum(ctx, "Caisse")

	suite.Require().NoError(err)
	suite.Equal(int64(700_000), sum)
}

func (suite *AuditServiceTestSuite) TestComputeAuditFluxSumUnknownName() {
	ctx := context.Background()

	suite.mockAccountRepo.On("FindAccountByName", ctx, "Inconnu").
		Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.ComputeAuditFluxSum(ctx, "Inconnu")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *AuditServiceTestSuite) TestVerifyAccountConsistent() {
	ctx := context.Background()

	suite.mockAccountRepo.On("FindAccountByID", ctx, "acc-1").
		Return(&domain.Account{
			AccountID:      "acc-1",
			AccountName:    "Caisse",
			AccountType:    domain.TypeClassique,
			CurrentBalance: 700_000,
		}, nil).Once()
	suite.mockBalanceSvc.On("ComputeNetBalance", ctx, "acc-1", (*time.Time)(nil)).
		Return(int64(700_000), nil).Once()
	suite.mockLedgerRepo.On("AuditFluxTotals", ctx, "Caisse").
		Return(&domain.AuditFluxTotals{Credits: 1_000_000, Expenses: 400_000, TransfersIn: 200_000, TransfersOut: 100_000}, nil).Once()

	report, err := suite.service.VerifyAccount(ctx, "acc-1")

	suite.Require().NoError(err)
	suite.True(report.AuditFluxApplies)
	suite.True(report.Consistent)
	suite.Equal(int64(700_000), report.AuditFluxSum)
}

func (suite *AuditServiceTestSuite) TestVerifyAccountStaleStoredBalance() {
	ctx := context.Background()

	suite.mockAccountRepo.On("FindAccountByID", ctx, "acc-1").
		Return(&domain.Account{
			AccountID:      "acc-1",
			AccountName:    "Caisse",
			AccountType:    domain.TypeClassique,
			CurrentBalance: 650_000,
		}, nil).Once()
	suite.mockBalanceSvc.On("ComputeNetBalance", ctx, "acc-1", (*time.Time)(nil)).
		Return(int64(700_000), nil).Once()
	suite.mockLedgerRepo.On("AuditFluxTotals", ctx, "Caisse").
		Return(&domain.AuditFluxTotals{Credits: 1_000_000, Expenses: 400_000, TransfersIn: 200_000, TransfersOut: 100_000}, nil).Once()

	report, err := suite.service.VerifyAccount(ctx, "acc-1")

	suite.Require().NoError(err)
	suite.False(report.Consistent)
	suite.Equal(int64(650_000), report.StoredBalance)
	suite.Equal(int64(700_000), report.NetBalance)
}

// The name-joined flux sum is additive; non-additive policy types diverge
// from it legitimately and must not be flagged.
func (suite *AuditServiceTestSuite) TestVerifyStatutAccountIgnoresFluxDivergence() {
	ctx := context.Background()

	suite.mockAccountRepo.On("FindAccountByID", ctx, "acc-1").
		Return(&domain.Account{
			AccountID:      "acc-1",
			AccountName:    "Solde journalier",
			AccountType:    domain.TypeStatut,
			CurrentBalance: 3_247_870,
		}, nil).Once()
	suite.mockBalanceSvc.On("ComputeNetBalance", ctx, "acc-1", (*time.Time)(nil)).
		Return(int64(3_247_870), nil).Once()
	suite.mockLedgerRepo.On("AuditFluxTotals", ctx, "Solde journalier").
		Return(&domain.AuditFluxTotals{Credits: 12_000_000}, nil).Once()

	report, err := suite.service.VerifyAccount(ctx, "acc-1")

	suite.Require().NoError(err)
	suite.False(report.AuditFluxApplies)
	suite.True(report.Consistent)
}

func TestAuditServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AuditServiceTestSuite))
}
