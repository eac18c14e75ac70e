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

// CashBictorysService manages the daily cash snapshots imported from the
// external payment system.
type CashBictorysService struct {
	BaseService
	cashRepo portsrepo.CashBictorysRepository
}

func NewCashBictorysService(cashRepo portsrepo.CashBictorysRepository) *CashBictorysService {
	return &CashBictorysService{cashRepo: cashRepo}
}

var _ portssvc.CashBictorysSvcFacade = (*CashBictorysService)(nil)

// UpsertEntry inserts or replaces the snapshot of one day.
func (s *CashBictorysService) UpsertEntry(ctx context.Context, req dto.UpsertCashBictorysRequest, userID string) (*domain.CashBictorys, error) {
	date, err := dto.ParseDate(req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid date %q", apperrors.ErrValidation, req.Date)
	}
	if req.Amount < 0 {
		return nil, fmt.Errorf("%w: cash amount must not be negative", apperrors.ErrValidation)
	}

	now := time.Now()
	entry := domain.CashBictorys{
		EntryID:   uuid.NewString(),
		Date:      date,
		Amount:    req.Amount,
		MonthYear: date.Format("2006-01"),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.cashRepo.UpsertEntry(ctx, entry); err != nil {
		s.LogError(ctx, err, "Failed to upsert cash bictorys entry", slog.String("date", req.Date))
		return nil, err
	}
	return &entry, nil
}

// ListByMonth retrieves a month's snapshots ordered by date.
func (s *CashBictorysService) ListByMonth(ctx context.Context, monthYear string) ([]domain.CashBictorys, error) {
	if _, err := time.Parse("2006-01", monthYear); err != nil {
		return nil, fmt.Errorf("%w: month must be YYYY-MM, got %q", apperrors.ErrValidation, monthYear)
	}
	return s.cashRepo.ListByMonth(ctx, monthYear)
}

// LatestValue returns the latest non-zero snapshot on or before cutoff within
// the month, or 0 when the month has none. Snapshots are positions; they are
// never summed.
func (s *CashBictorysService) LatestValue(ctx context.Context, month string, cutoff time.Time) (int64, error) {
	monthStart, err := time.Parse("2006-01", month)
	if err != nil {
		return 0, fmt.Errorf("%w: month must be YYYY-MM, got %q", apperrors.ErrValidation, month)
	}
	_, monthEnd := accounting.MonthBounds(monthStart)
	if cutoff.After(monthEnd) {
		cutoff = monthEnd
	}

	entry, err := s.cashRepo.LatestNotAfter(ctx, monthStart, cutoff)
	if err != nil {
		return 0, err
	}
	if entry == nil {
		return 0, nil
	}
	return entry.Amount, nil
}
