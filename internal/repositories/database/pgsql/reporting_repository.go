package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/matagroup/mata_gestion_app/internal/core/ports/repositories"
)

// PgxReportingRepository serves the period aggregates of the PL calculator.
type PgxReportingRepository struct {
	BaseRepository
}

func newPgxReportingRepository(pool *pgxpool.Pool) portsrepo.ReportingRepository {
	return &PgxReportingRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.ReportingRepository = (*PgxReportingRepository)(nil)

// CashBurnBetween sums classique-account expenses with expense_date in
// [from, to].
func (r *PgxReportingRepository) CashBurnBetween(ctx context.Context, from, to time.Time) (int64, error) {
	query := `
		SELECT COALESCE(SUM(e.total), 0)
		FROM expenses e
		JOIN accounts a ON a.account_id = e.account_id
		WHERE a.account_type = 'classique'
		  AND e.expense_date >= $1::date AND e.expense_date <= $2::date;
	`
	var total int64
	if err := r.Pool.QueryRow(ctx, query, from, to).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to compute cash burn: %w", err)
	}
	return total, nil
}

// CreanceMovementBetween sums creance operations, credits minus debits, with
// operation_date in [from, to].
func (r *PgxReportingRepository) CreanceMovementBetween(ctx context.Context, from, to time.Time) (int64, error) {
	query := `
		SELECT COALESCE(SUM(CASE WHEN operation_type = 'credit' THEN amount ELSE -amount END), 0)
		FROM creance_operations
		WHERE operation_date >= $1::date AND operation_date <= $2::date;
	`
	var total int64
	if err := r.Pool.QueryRow(ctx, query, from, to).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to compute creance movement: %w", err)
	}
	return total, nil
}

// ValidatedDeliveriesBetween sums fully validated partner deliveries with
// delivery_date in [from, to].
func (r *PgxReportingRepository) ValidatedDeliveriesBetween(ctx context.Context, from, to time.Time) (int64, error) {
	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM partner_deliveries
		WHERE validation_status = 'fully_validated'
		  AND delivery_date >= $1::date AND delivery_date <= $2::date;
	`
	var total int64
	if err := r.Pool.QueryRow(ctx, query, from, to).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to compute validated deliveries: %w", err)
	}
	return total, nil
}

// LatestStockSoirBetween returns the montant of the most recent stock_soir
// entry in [from, to]. found is false when the period has none.
func (r *PgxReportingRepository) LatestStockSoirBetween(ctx context.Context, from, to time.Time) (int64, bool, error) {
	query := `
		SELECT montant
		FROM stock_soir
		WHERE date >= $1::date AND date <= $2::date
		ORDER BY date DESC
		LIMIT 1;
	`
	var montant int64
	err := r.Pool.QueryRow(ctx, query, from, to).Scan(&montant)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("failed to find latest stock soir entry: %w", err)
	}
	return montant, true, nil
}
