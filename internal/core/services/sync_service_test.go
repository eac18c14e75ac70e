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

type SyncServiceTestSuite struct {
	suite.Suite
	mockAccountRepo *MockAccountRepository
	mockLedgerRepo  *MockLedgerRepository
	service         *services.SyncService
}

func (suite *SyncServiceTestSuite) SetupTest() {
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockLedgerRepo = new(MockLedgerRepository)
	balanceSvc := services.NewBalanceService(suite.mockAccountRepo, suite.mockLedgerRepo)
	suite.service = services.NewSyncService(&stubTxManager{}, suite.mockAccountRepo, suite.mockLedgerRepo, balanceSvc)
}

func (suite *SyncServiceTestSuite) expectAdditiveSums(accountID string, credits, expenses, in, out int64) {
	suite.mockLedgerRepo.On("SumCredits", mock.Anything, nil, accountID, (*time.Time)(nil), (*time.Time)(nil)).Return(credits, nil)
	suite.mockLedgerRepo.On("SumExpenses", mock.Anything, nil, accountID, (*time.Time)(nil), (*time.Time)(nil)).Return(expenses, nil)
	suite.mockLedgerRepo.On("SumTransfersIn", mock.Anything, nil, accountID, (*time.Time)(nil), (*time.Time)(nil)).Return(in, nil)
	suite.mockLedgerRepo.On("SumTransfersOut", mock.Anything, nil, accountID, (*time.Time)(nil), (*time.Time)(nil)).Return(out, nil)
}

func (suite *SyncServiceTestSuite) TestSyncAccountPersistsDerivedTotals() {
	ctx := context.Background()
	account := &domain.Account{AccountID: "acc-1", AccountName: "Caisse", AccountType: domain.TypeClassique, IsActive: true}

	suite.mockAccountRepo.On("LockAccount", ctx, nil, "acc-1").Return(account, nil).Once()
	suite.expectAdditiveSums("acc-1", 1_000_000, 400_000, 0, 0)
	// Balance 600,000, total credited 1,000,000, total spent 400,000, written
	// by the sync actor.
	suite.mockAccountRepo.On("UpdateDerivedTotals", ctx, nil, "acc-1",
		int64(600_000), int64(1_000_000), int64(400_000), "system:sync", mock.AnythingOfType("time.Time")).
		Return(nil).Once()

	balance, err := suite.service.SyncAccount(ctx, "acc-1")

	suite.Require().NoError(err)
	suite.Equal(int64(600_000), balance)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *SyncServiceTestSuite) TestSyncAllAccountsIsolatesFailures() {
	ctx := context.Background()
	accounts := []domain.Account{
		{AccountID: "acc-1", AccountName: "Caisse", AccountType: domain.TypeClassique},
		{AccountID: "acc-2", AccountName: "Compte casse", AccountType: domain.TypeClassique},
		{AccountID: "acc-3", AccountName: "Ajustement", AccountType: domain.TypeAjustement},
	}

	suite.mockAccountRepo.On("ListAccounts", ctx, false).Return(accounts, nil).Once()

	for _, id := range []string{"acc-1", "acc-3"} {
		account := accounts[0]
		if id == "acc-3" {
			account = accounts[2]
		}
		suite.mockAccountRepo.On("LockAccount", ctx, nil, id).Return(&account, nil).Once()
		suite.expectAdditiveSums(id, 100_000, 0, 0, 0)
		suite.mockAccountRepo.On("UpdateDerivedTotals", ctx, nil, id,
			int64(100_000), int64(100_000), int64(0), "system:sync", mock.AnythingOfType("time.Time")).
			Return(nil).Once()
	}
	suite.mockAccountRepo.On("LockAccount", ctx, nil, "acc-2").Return(nil, apperrors.ErrInternal).Once()

	summary := suite.service.SyncAllAccounts(ctx)

	suite.Equal(2, summary.Synchronized)
	suite.Equal(1, summary.Errors)
	suite.Require().Len(summary.Messages, 1)
	suite.Contains(summary.Messages[0], "acc-2")
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

// An account whose type the balance policy does not recognize yields a
// configuration error for that account only; the rest of the batch still
// synchronizes.
func (suite *SyncServiceTestSuite) TestSyncAllAccountsCountsUnknownTypeAsError() {
	ctx := context.Background()
	accounts := []domain.Account{
		{AccountID: "acc-1", AccountName: "Caisse", AccountType: domain.TypeClassique},
		{AccountID: "acc-2", AccountName: "Compte legacy", AccountType: domain.AccountType("mystere")},
	}

	suite.mockAccountRepo.On("ListAccounts", ctx, false).Return(accounts, nil).Once()

	suite.mockAccountRepo.On("LockAccount", ctx, nil, "acc-1").Return(&accounts[0], nil).Once()
	suite.expectAdditiveSums("acc-1", 100_000, 0, 0, 0)
	suite.mockAccountRepo.On("UpdateDerivedTotals", ctx, nil, "acc-1",
		int64(100_000), int64(100_000), int64(0), "system:sync", mock.AnythingOfType("time.Time")).
		Return(nil).Once()

	suite.mockAccountRepo.On("LockAccount", ctx, nil, "acc-2").Return(&accounts[1], nil).Once()

	summary := suite.service.SyncAllAccounts(ctx)

	suite.Equal(1, summary.Synchronized)
	suite.Equal(1, summary.Errors)
	suite.Require().Len(summary.Messages, 1)
	suite.Contains(summary.Messages[0], "acc-2")
	suite.Contains(summary.Messages[0], "mystere")
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "SumCredits", mock.Anything, mock.Anything, "acc-2", mock.Anything, mock.Anything)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *SyncServiceTestSuite) TestSyncAllAccountsReportsListFailure() {
	ctx := context.Background()
	suite.mockAccountRepo.On("ListAccounts", ctx, false).Return(nil, apperrors.ErrInternal).Once()

	summary := suite.service.SyncAllAccounts(ctx)

	suite.Equal(0, summary.Synchronized)
	suite.Equal(1, summary.Errors)
}

func TestSyncServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SyncServiceTestSuite))
}
