package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/matagroup/mata_gestion_app/internal/apperrors"
	"github.com/matagroup/mata_gestion_app/internal/core/domain"
	"github.com/matagroup/mata_gestion_app/internal/core/services"
	"github.com/matagroup/mata_gestion_app/internal/dto"
)

type AccountServiceTestSuite struct {
	suite.Suite
	mockAccountRepo *MockAccountRepository
	service         *services.AccountService
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.service = services.NewAccountService(suite.mockAccountRepo)
}

func (suite *AccountServiceTestSuite) TestCreateAccountRejectsUnknownType() {
	ctx := context.Background()

	_, err := suite.service.CreateAccount(ctx, dto.CreateAccountRequest{
		AccountName: "Compte mystere",
		AccountType: domain.AccountType("mystere"),
	}, "admin-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestCreateAccountStartsActiveWithZeroTotals() {
	ctx := context.Background()

	var saved domain.Account
	suite.mockAccountRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(domain.Account)
		}).
		Return(nil).Once()

	account, err := suite.service.CreateAccount(ctx, dto.CreateAccountRequest{
		AccountName: "Caisse principale",
		AccountType: domain.TypeClassique,
	}, "admin-1")

	suite.Require().NoError(err)
	suite.True(account.IsActive)
	suite.Equal(int64(0), account.CurrentBalance)
	suite.Equal(int64(0), account.TotalCredited)
	suite.Equal(int64(0), account.TotalSpent)
	suite.Equal("admin-1", saved.CreatedBy)
	suite.NotEmpty(saved.AccountID)
}

func (suite *AccountServiceTestSuite) TestUpdateAccountKeepsTypeImmutable() {
	ctx := context.Background()
	existing := &domain.Account{
		AccountID:   "acc-1",
		AccountName: "Caisse",
		AccountType: domain.TypeClassique,
	}
	newName := "Caisse renommee"

	suite.mockAccountRepo.On("FindAccountByID", ctx, "acc-1").Return(existing, nil).Once()
	suite.mockAccountRepo.On("UpdateAccount", ctx, mock.MatchedBy(func(a domain.Account) bool {
		return a.AccountName == newName && a.AccountType == domain.TypeClassique
	})).Return(nil).Once()

	account, err := suite.service.UpdateAccount(ctx, "acc-1", dto.UpdateAccountRequest{
		AccountName: &newName,
	}, "user-1")

	suite.Require().NoError(err)
	suite.Equal(newName, account.AccountName)
	suite.Equal(domain.TypeClassique, account.AccountType)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestDeleteAccountRefusedAfterSpend() {
	ctx := context.Background()

	suite.mockAccountRepo.On("FindAccountByID", ctx, "acc-1").
		Return(&domain.Account{AccountID: "acc-1", TotalSpent: 250_000}, nil).Once()

	err := suite.service.DeleteAccount(ctx, "acc-1", "admin-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "DeleteAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestDeleteAccountAllowedWithoutSpend() {
	ctx := context.Background()

	suite.mockAccountRepo.On("FindAccountByID", ctx, "acc-1").
		Return(&domain.Account{AccountID: "acc-1", AccountName: "Caisse", TotalSpent: 0}, nil).Once()
	suite.mockAccountRepo.On("DeleteAccount", ctx, "acc-1").Return(nil).Once()

	err := suite.service.DeleteAccount(ctx, "acc-1", "admin-1")

	suite.Require().NoError(err)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func TestAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
