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
	"github.com/matagroup/mata_gestion_app/internal/utils/accounting"
)

// StockVivantService manages live-inventory valuation snapshots.
type StockVivantService struct {
	BaseService
	stockRepo portsrepo.StockVivantRepository
}

func NewStockVivantService(stockRepo portsrepo.StockVivantRepository) *StockVivantService {
	return &StockVivantService{stockRepo: stockRepo}
}

var _ portssvc.StockVivantSvcFacade = (*StockVivantService)(nil)

// UpsertEntry inserts or replaces one valuation line. Total defaults to
// quantite × prix_unitaire but an explicit value wins, so a snapshot copied
// from a previous date can be adjusted line by line.
func (s *StockVivantService) UpsertEntry(ctx context.Context, req dto.UpsertStockVivantRequest, userID string) (*domain.StockVivant, error) {
	dateStock, err := dto.ParseDate(req.DateStock)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid stock date %q", apperrors.ErrValidation, req.DateStock)
	}

	total := accounting.LineTotal(req.Quantite, req.PrixUnitaire)
	if req.Total != nil {
		if *req.Total < 0 {
			return nil, fmt.Errorf("%w: stock total must not be negative", apperrors.ErrValidation)
		}
		total = *req.Total
	}

	now := time.Now()
	entry := domain.StockVivant{
		EntryID:      uuid.NewString(),
		DateStock:    dateStock,
		Categorie:    req.Categorie,
		Produit:      req.Produit,
		Quantite:     req.Quantite,
		PrixUnitaire: req.PrixUnitaire,
		Total:        total,
		Commentaire:  req.Commentaire,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.stockRepo.UpsertEntry(ctx, entry); err != nil {
		s.LogError(ctx, err, "Failed to upsert stock vivant entry",
			slog.String("categorie", req.Categorie),
			slog.String("produit", req.Produit))
		return nil, err
	}
	return &entry, nil
}

// DeleteEntry removes one valuation line.
func (s *StockVivantService) DeleteEntry(ctx context.Context, entryID string, userID string) error {
	if err := s.stockRepo.DeleteEntry(ctx, entryID); err != nil {
		s.LogError(ctx, err, "Failed to delete stock vivant entry", slog.String("entry_id", entryID))
		return err
	}
	s.LogInfo(ctx, "Stock vivant entry deleted",
		slog.String("entry_id", entryID),
		slog.String("deleted_by", userID))
	return nil
}

// ListByDate retrieves all lines of one snapshot date.
func (s *StockVivantService) ListByDate(ctx context.Context, dateStock time.Time) ([]domain.StockVivant, error) {
	return s.stockRepo.ListByDate(ctx, dateStock)
}

// CopyFromDate duplicates a previous snapshot under a new date. Returns the
// number of lines copied.
func (s *StockVivantService) CopyFromDate(ctx context.Context, req dto.CopyStockVivantRequest, userID string) (int, error) {
	fromDate, err := dto.ParseDate(req.FromDate)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid source date %q", apperrors.ErrValidation, req.FromDate)
	}
	toDate, err := dto.ParseDate(req.ToDate)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid target date %q", apperrors.ErrValidation, req.ToDate)
	}
	if fromDate.Equal(toDate) {
		return 0, fmt.Errorf("%w: source and target dates must differ", apperrors.ErrValidation)
	}

	copied, err := s.stockRepo.CopyEntries(ctx, fromDate, toDate, userID, time.Now())
	if err != nil {
		s.LogError(ctx, err, "Failed to copy stock vivant entries",
			slog.String("from", req.FromDate),
			slog.String("to", req.ToDate))
		return 0, err
	}

	s.LogInfo(ctx, "Stock vivant entries copied",
		slog.String("from", req.FromDate),
		slog.String("to", req.ToDate),
		slog.Int("copied", copied))
	return copied, nil
}
