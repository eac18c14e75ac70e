package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/matagroup/mata_gestion_app/internal/apperrors"
	"github.com/matagroup/mata_gestion_app/internal/core/domain"
	portsrepo "github.com/matagroup/mata_gestion_app/internal/core/ports/repositories"
	portssvc "github.com/matagroup/mata_gestion_app/internal/core/ports/services"
	"github.com/matagroup/mata_gestion_app/internal/utils/accounting"
)

// PLService derives the monthly profit & loss figure.
type PLService struct {
	BaseService
	reportingRepo    portsrepo.ReportingRepository
	cashBictorysRepo portsrepo.CashBictorysRepository
	stockVivantRepo  portsrepo.StockVivantRepository
	settingsRepo     portsrepo.SettingsRepository
}

func NewPLService(reportingRepo portsrepo.ReportingRepository, cashBictorysRepo portsrepo.CashBictorysRepository, stockVivantRepo portsrepo.StockVivantRepository, settingsRepo portsrepo.SettingsRepository) *PLService {
	return &PLService{
		reportingRepo:    reportingRepo,
		cashBictorysRepo: cashBictorysRepo,
		stockVivantRepo:  stockVivantRepo,
		settingsRepo:     settingsRepo,
	}
}

var _ portssvc.PLSvcFacade = (*PLService)(nil)

// ComputePL derives the PL of a month ("YYYY-MM") as seen from snapshotDate.
//
// plBrut = cashBictorys + creances + stockPointDeVente − cashBurn
//        + stockVivantVariation − livraisonsPartenaires
// plFinal = plBrut − round(chargesFixes × joursEcoules / totalJours)
//
// cashBictorys is the latest non-zero snapshot dated on or before
// snapshotDate within the month; summing the snapshots would double count
// because each row is a position, not a delta.
func (s *PLService) ComputePL(ctx context.Context, month string, snapshotDate time.Time) (*domain.PLResult, error) {
	monthStart, err := time.Parse("2006-01", month)
	if err != nil {
		return nil, fmt.Errorf("%w: month must be YYYY-MM, got %q", apperrors.ErrValidation, month)
	}
	_, monthEnd := accounting.MonthBounds(monthStart)

	snapshotDate = time.Date(snapshotDate.Year(), snapshotDate.Month(), snapshotDate.Day(), 0, 0, 0, 0, time.UTC)
	if snapshotDate.Before(monthStart) || snapshotDate.After(monthEnd) {
		return nil, fmt.Errorf("%w: snapshot date %s outside month %s",
			apperrors.ErrValidation, snapshotDate.Format("2006-01-02"), month)
	}

	settings, err := s.settingsRepo.GetSettings(ctx)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: financial settings missing, cannot pro-rate fixed charges", apperrors.ErrConfiguration)
		}
		return nil, err
	}

	breakdown := domain.PLBreakdown{}

	cashEntry, err := s.cashBictorysRepo.LatestNotAfter(ctx, monthStart, snapshotDate)
	if err != nil {
		return nil, err
	}
	if cashEntry != nil {
		breakdown.CashBictorys = cashEntry.Amount
	}

	breakdown.Creances, err = s.reportingRepo.CreanceMovementBetween(ctx, monthStart, snapshotDate)
	if err != nil {
		return nil, err
	}

	stockPV, _, err := s.reportingRepo.LatestStockSoirBetween(ctx, monthStart, snapshotDate)
	if err != nil {
		return nil, err
	}
	breakdown.StockPointDeVente = stockPV

	breakdown.CashBurn, err = s.reportingRepo.CashBurnBetween(ctx, monthStart, snapshotDate)
	if err != nil {
		return nil, err
	}

	breakdown.PLSansStockCharges = breakdown.CashBictorys + breakdown.Creances +
		breakdown.StockPointDeVente - breakdown.CashBurn

	stockStart, err := s.stockVivantRepo.TotalAt(ctx, monthStart)
	if err != nil {
		return nil, err
	}
	stockEnd, err := s.stockVivantRepo.TotalAt(ctx, monthEnd)
	if err != nil {
		return nil, err
	}
	breakdown.StockVivantVariation = stockEnd - stockStart

	breakdown.LivraisonsPartenaires, err = s.reportingRepo.ValidatedDeliveriesBetween(ctx, monthStart, snapshotDate)
	if err != nil {
		return nil, err
	}

	plBrut := breakdown.PLSansStockCharges + breakdown.StockVivantVariation - breakdown.LivraisonsPartenaires

	breakdown.ChargesFixesEstimation = settings.ChargesFixesEstimation
	breakdown.JoursOuvrablesTotal = accounting.CountWorkingDays(monthStart, monthEnd)
	breakdown.JoursOuvrablesEcoules = accounting.CountWorkingDays(monthStart, snapshotDate)
	breakdown.ChargesProrata = accounting.ProrateCharges(
		settings.ChargesFixesEstimation,
		breakdown.JoursOuvrablesEcoules,
		breakdown.JoursOuvrablesTotal,
	)

	return &domain.PLResult{
		Month:        month,
		SnapshotDate: snapshotDate,
		PLBrut:       plBrut,
		PLFinal:      plBrut - breakdown.ChargesProrata,
		Breakdown:    breakdown,
	}, nil
}
