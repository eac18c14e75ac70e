package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/matagroup/mata_gestion_app/internal/apperrors"
	"github.com/matagroup/mata_gestion_app/internal/core/domain"
	portsrepo "github.com/matagroup/mata_gestion_app/internal/core/ports/repositories"
	"github.com/matagroup/mata_gestion_app/internal/models"
)

// PgxSettingsRepository persists the financial_settings singleton row.
type PgxSettingsRepository struct {
	BaseRepository
}

func newPgxSettingsRepository(pool *pgxpool.Pool) portsrepo.SettingsRepository {
	return &PgxSettingsRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.SettingsRepository = (*PgxSettingsRepository)(nil)

// GetSettings retrieves the settings row. A missing row is ErrNotFound;
// callers that need a setting translate that into a configuration error.
func (r *PgxSettingsRepository) GetSettings(ctx context.Context) (*domain.FinancialSettings, error) {
	query := `
		SELECT validate_expense_balance, charges_fixes_estimation, created_at, created_by, last_updated_at, last_updated_by
		FROM financial_settings
		LIMIT 1;
	`
	var m models.FinancialSettings
	err := r.Pool.QueryRow(ctx, query).Scan(
		&m.ValidateExpenseBalance,
		&m.ChargesFixesEstimation,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to load financial settings: %w", err)
	}
	return &domain.FinancialSettings{
		ValidateExpenseBalance: m.ValidateExpenseBalance,
		ChargesFixesEstimation: m.ChargesFixesEstimation,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}, nil
}

// UpdateSettings rewrites the settings row, inserting it on first use.
func (r *PgxSettingsRepository) UpdateSettings(ctx context.Context, settings domain.FinancialSettings) error {
	query := `
		INSERT INTO financial_settings (singleton, validate_expense_balance, charges_fixes_estimation, created_at, created_by, last_updated_at, last_updated_by)
		VALUES (TRUE, $1, $2, $3, $4, $5, $6)
		ON CONFLICT (singleton) DO UPDATE
		SET validate_expense_balance = EXCLUDED.validate_expense_balance,
		    charges_fixes_estimation = EXCLUDED.charges_fixes_estimation,
		    last_updated_at = EXCLUDED.last_updated_at,
		    last_updated_by = EXCLUDED.last_updated_by;
	`
	_, err := r.Pool.Exec(ctx, query,
		settings.ValidateExpenseBalance,
		settings.ChargesFixesEstimation,
		settings.CreatedAt,
		settings.CreatedBy,
		settings.LastUpdatedAt,
		settings.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update financial settings: %w", err)
	}
	return nil
}
