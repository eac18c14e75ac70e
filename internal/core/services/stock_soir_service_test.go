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

type StockSoirServiceTestSuite struct {
	suite.Suite
	mockStockRepo *MockStockSoirRepository
	service       *services.StockSoirService
}

func (suite *StockSoirServiceTestSuite) SetupTest() {
	suite.mockStockRepo = new(MockStockSoirRepository)
	suite.service = services.NewStockSoirService(suite.mockStockRepo)
}

func (suite *StockSoirServiceTestSuite) TestAddEntry() {
	ctx := context.Background()
	req := dto.CreateStockSoirRequest{
		Date:         "2025-01-15",
		PointDeVente: "Mbao",
		Montant:      1_250_000,
	}

	suite.mockStockRepo.On("SaveEntry", ctx, mock.MatchedBy(func(e domain.StockSoir) bool {
		return e.EntryID != "" &&
			e.Date.Equal(time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)) &&
			e.PointDeVente == "Mbao" &&
			e.Montant == 1_250_000 &&
			e.CreatedBy == "user-1"
	})).Return(nil).Once()

	entry, err := suite.service.AddEntry(ctx, req, "user-1")

	suite.Require().NoError(err)
	suite.Equal("Mbao", entry.PointDeVente)
	suite.Equal(int64(1_250_000), entry.Montant)
	suite.mockStockRepo.AssertExpectations(suite.T())
}

func (suite *StockSoirServiceTestSuite) TestAddEntryRejectsBadDate() {
	ctx := context.Background()
	req := dto.CreateStockSoirRequest{Date: "15/01/2025", PointDeVente: "Mbao", Montant: 100}

	entry, err := suite.service.AddEntry(ctx, req, "user-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(entry)
	suite.mockStockRepo.AssertNotCalled(suite.T(), "SaveEntry", mock.Anything, mock.Anything)
}

func (suite *StockSoirServiceTestSuite) TestAddEntryDuplicateDaySurfaces() {
	ctx := context.Background()
	req := dto.CreateStockSoirRequest{Date: "2025-01-15", PointDeVente: "Mbao", Montant: 100}

	suite.mockStockRepo.On("SaveEntry", ctx, mock.Anything).Return(apperrors.ErrDuplicate).Once()

	entry, err := suite.service.AddEntry(ctx, req, "user-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.Nil(entry)
}

func (suite *StockSoirServiceTestSuite) TestListBetween() {
	ctx := context.Background()
	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)
	entries := []domain.StockSoir{
		{EntryID: "e-2", Date: to.AddDate(0, 0, -1), PointDeVente: "Mbao", Montant: 900_000},
		{EntryID: "e-1", Date: from, PointDeVente: "Mbao", Montant: 750_000},
	}

	suite.mockStockRepo.On("ListBetween", ctx, from, to).Return(entries, nil).Once()

	got, err := suite.service.ListBetween(ctx, from, to)

	suite.Require().NoError(err)
	suite.Equal(entries, got)
}

func (suite *StockSoirServiceTestSuite) TestListBetweenRejectsInvertedRange() {
	ctx := context.Background()
	from := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	got, err := suite.service.ListBetween(ctx, from, to)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(got)
	suite.mockStockRepo.AssertNotCalled(suite.T(), "ListBetween", mock.Anything, mock.Anything, mock.Anything)
}

func TestStockSoirServiceTestSuite(t *testing.T) {
	suite.Run(t, new(StockSoirServiceTestSuite))
}
