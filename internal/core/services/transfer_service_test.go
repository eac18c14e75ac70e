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

type TransferServiceTestSuite struct {
	suite.Suite
	mockAccountRepo  *MockAccountRepository
	mockLedgerRepo   *MockLedgerRepository
	mockTransferRepo *MockTransferRepository
	service          *services.TransferService
}

func (suite *TransferServiceTestSuite) SetupTest() {
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockLedgerRepo = new(MockLedgerRepository)
	suite.mockTransferRepo = new(MockTransferRepository)
	balanceSvc := services.NewBalanceService(suite.mockAccountRepo, suite.mockLedgerRepo)
	syncSvc := services.NewSyncService(&stubTxManager{}, suite.mockAccountRepo, suite.mockLedgerRepo, balanceSvc)
	suite.service = services.NewTransferService(&stubTxManager{}, suite.mockAccountRepo, suite.mockTransferRepo, syncSvc)
}

// A transfer moves value without creating or destroying it: after both
// accounts are resynchronized, the sum of their balances equals the sum
// before the transfer.
func (suite *TransferServiceTestSuite) TestCreateTransferPreservesTotalBalance() {
	ctx := context.Background()
	source := &domain.Account{AccountID: "acc-a", AccountName: "Caisse A", AccountType: domain.TypeClassique}
	destination := &domain.Account{AccountID: "acc-b", AccountName: "Caisse B", AccountType: domain.TypeClassique}

	suite.mockAccountRepo.On("LockAccount", ctx, nil, "acc-a").Return(source, nil).Once()
	suite.mockAccountRepo.On("LockAccount", ctx, nil, "acc-b").Return(destination, nil).Once()
	suite.mockTransferRepo.On("SaveTransfer", ctx, nil, mock.AnythingOfType("domain.Transfer")).Return(nil).Once()

	// Source held 1,000,000 credited; 250,000 just left it.
	suite.mockLedgerRepo.On("SumCredits", ctx, nil, "acc-a", (*time.Time)(nil), (*time.Time)(nil)).Return(int64(1_000_000), nil)
	suite.mockLedgerRepo.On("SumExpenses", ctx, nil, "acc-a", (*time.Time)(nil), (*time.Time)(nil)).Return(int64(0), nil)
	suite.mockLedgerRepo.On("SumTransfersIn", ctx, nil, "acc-a", (*time.Time)(nil), (*time.Time)(nil)).Return(int64(0), nil)
	suite.mockLedgerRepo.On("SumTransfersOut", ctx, nil, "acc-a", (*time.Time)(nil), (*time.Time)(nil)).Return(int64(250_000), nil)
	// Destination had nothing; 250,000 just arrived.
	suite.mockLedgerRepo.On("SumCredits", ctx, nil, "acc-b", (*time.Time)(nil), (*time.Time)(nil)).Return(int64(0), nil)
	suite.mockLedgerRepo.On("SumExpenses", ctx, nil, "acc-b", (*time.Time)(nil), (*time.Time)(nil)).Return(int64(0), nil)
	suite.mockLedgerRepo.On("SumTransfersIn", ctx, nil, "acc-b", (*time.Time)(nil), (*time.Time)(nil)).Return(int64(250_000), nil)
	suite.mockLedgerRepo.On("SumTransfersOut", ctx, nil, "acc-b", (*time.Time)(nil), (*time.Time)(nil)).Return(int64(0), nil)

	var persisted []int64
	suite.mockAccountRepo.On("UpdateDerivedTotals", ctx, nil, mock.Anything,
		mock.Anything, mock.Anything, mock.Anything, "system:sync", mock.AnythingOfType("time.Time")).
		Run(func(args mock.Arguments) {
			persisted = append(persisted, args.Get(3).(int64))
		}).
		Return(nil).Twice()

	transfer, err := suite.service.CreateTransfer(ctx, dto.CreateTransferRequest{
		SourceID:      "acc-a",
		DestinationID: "acc-b",
		Montant:       250_000,
	}, "user-1")

	suite.Require().NoError(err)
	suite.Equal(int64(250_000), transfer.Montant)
	suite.Require().Len(persisted, 2)
	suite.Equal(int64(1_000_000), persisted[0]+persisted[1])
	suite.mockAccountRepo.AssertExpectations(suite.T())
	suite.mockTransferRepo.AssertExpectations(suite.T())
}

func (suite *TransferServiceTestSuite) TestCreateTransferRejectsSameAccount() {
	ctx := context.Background()

	transfer, err := suite.service.CreateTransfer(ctx, dto.CreateTransferRequest{
		SourceID:      "acc-a",
		DestinationID: "acc-a",
		Montant:       10_000,
	}, "user-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(transfer)
	suite.mockTransferRepo.AssertNotCalled(suite.T(), "SaveTransfer", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransferServiceTestSuite) TestCreateTransferRejectsNonPositiveMontant() {
	ctx := context.Background()

	_, err := suite.service.CreateTransfer(ctx, dto.CreateTransferRequest{
		SourceID:      "acc-a",
		DestinationID: "acc-b",
		Montant:       0,
	}, "user-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func TestTransferServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TransferServiceTestSuite))
}
