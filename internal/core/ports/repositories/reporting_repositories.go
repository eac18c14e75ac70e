package repositories

import (
	"context"
	"time"

	"github.com/matagroup/mata_gestion_app/internal/core/domain"
)

// ReportingRepository serves the PL calculator's period aggregates.
type ReportingRepository interface {
	// CashBurnBetween sums classique-account expenses with expense_date in
	// [from, to].
	CashBurnBetween(ctx context.Context, from, to time.Time) (int64, error)
	// CreanceMovementBetween sums creance operations (credits minus debits)
	// with operation_date in [from, to].
	CreanceMovementBetween(ctx context.Context, from, to time.Time) (int64, error)
	// ValidatedDeliveriesBetween sums fully validated partner deliveries with
	// delivery_date in [from, to].
	ValidatedDeliveriesBetween(ctx context.Context, from, to time.Time) (int64, error)
	// LatestStockSoirBetween returns the montant of the most recent stock_soir
	// entry in [from, to]; found is false when the period has none.
	LatestStockSoirBetween(ctx context.Context, from, to time.Time) (montant int64, found bool, err error)
}

// SettingsRepository persists the financial settings singleton.
type SettingsRepository interface {
	GetSettings(ctx context.Context) (*domain.FinancialSettings, error)
	UpdateSettings(ctx context.Context, settings domain.FinancialSettings) error
}
