package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/matagroup/mata_gestion_app/internal/apperrors"
	"github.com/matagroup/mata_gestion_app/internal/core/domain"
	portsrepo "github.com/matagroup/mata_gestion_app/internal/core/ports/repositories"
	portssvc "github.com/matagroup/mata_gestion_app/internal/core/ports/services"
	"github.com/matagroup/mata_gestion_app/internal/dto"
)

// StockSoirService manages evening point-of-sale stock snapshots. The PL
// calculator reads the latest snapshot per point of sale within the period.
type StockSoirService struct {
	BaseService
	stockRepo portsrepo.StockSoirRepository
}

func NewStockSoirService(stockRepo portsrepo.StockSoirRepository) *StockSoirService {
	return &StockSoirService{stockRepo: stockRepo}
}

var _ portssvc.StockSoirSvcFacade = (*StockSoirService)(nil)

// AddEntry records one evening snapshot. A point of sale gets at most one
// snapshot per date.
func (s *StockSoirService) AddEntry(ctx context.Context, req dto.CreateStockSoirRequest, userID string) (*domain.StockSoir, error) {
	date, err := dto.ParseDate(req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid snapshot date %q", apperrors.ErrValidation, req.Date)
	}
	if req.Montant < 0 {
		return nil, fmt.Errorf("%w: montant must not be negative", apperrors.ErrValidation)
	}

	now := time.Now()
	entry := domain.StockSoir{
		EntryID:      uuid.NewString(),
		Date:         date,
		PointDeVente: req.PointDeVente,
		Montant:      req.Montant,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.stockRepo.SaveEntry(ctx, entry); err != nil {
		s.LogError(ctx, err, "Failed to save stock soir entry",
			slog.String("date", req.Date),
			slog.String("point_de_vente", req.PointDeVente))
		return nil, err
	}
	return &entry, nil
}

// ListBetween retrieves the snapshots of a date range, newest first.
func (s *StockSoirService) ListBetween(ctx context.Context, from, to time.Time) ([]domain.StockSoir, error) {
	if to.Before(from) {
		return nil, fmt.Errorf("%w: end date precedes start date", apperrors.ErrValidation)
	}
	return s.stockRepo.ListBetween(ctx, from, to)
}
