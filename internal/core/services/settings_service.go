package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/matagroup/mata_gestion_app/internal/apperrors"
	"github.com/matagroup/mata_gestion_app/internal/core/domain"
	portsrepo "github.com/matagroup/mata_gestion_app/internal/core/ports/repositories"
	portssvc "github.com/matagroup/mata_gestion_app/internal/core/ports/services"
	"github.com/matagroup/mata_gestion_app/internal/dto"
)

// SettingsService reads and edits the financial settings singleton.
type SettingsService struct {
	BaseService
	settingsRepo portsrepo.SettingsRepository
}

func NewSettingsService(settingsRepo portsrepo.SettingsRepository) *SettingsService {
	return &SettingsService{settingsRepo: settingsRepo}
}

var _ portssvc.SettingsSvcFacade = (*SettingsService)(nil)

// GetSettings retrieves the settings row.
func (s *SettingsService) GetSettings(ctx context.Context) (*domain.FinancialSettings, error) {
	return s.settingsRepo.GetSettings(ctx)
}

// UpdateSettings applies a partial edit to the settings. On first use the row
// is created from the request.
func (s *SettingsService) UpdateSettings(ctx context.Context, req dto.UpdateSettingsRequest, userID string) (*domain.FinancialSettings, error) {
	now := time.Now()

	settings, err := s.settingsRepo.GetSettings(ctx)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		settings = &domain.FinancialSettings{
			AuditFields: domain.AuditFields{CreatedAt: now, CreatedBy: userID},
		}
	}

	if req.ValidateExpenseBalance != nil {
		settings.ValidateExpenseBalance = *req.ValidateExpenseBalance
	}
	if req.ChargesFixesEstimation != nil {
		settings.ChargesFixesEstimation = *req.ChargesFixesEstimation
	}
	settings.LastUpdatedAt = now
	settings.LastUpdatedBy = userID

	if err := s.settingsRepo.UpdateSettings(ctx, *settings); err != nil {
		s.LogError(ctx, err, "Failed to update financial settings")
		return nil, err
	}

	s.LogInfo(ctx, "Financial settings updated",
		slog.Bool("validate_expense_balance", settings.ValidateExpenseBalance),
		slog.Int64("charges_fixes_estimation", settings.ChargesFixesEstimation))
	return settings, nil
}
