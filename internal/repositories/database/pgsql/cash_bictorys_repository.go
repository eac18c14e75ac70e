package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/matagroup/mata_gestion_app/internal/core/domain"
	portsrepo "github.com/matagroup/mata_gestion_app/internal/core/ports/repositories"
	"github.com/matagroup/mata_gestion_app/internal/models"
)

type PgxCashBictorysRepository struct {
	BaseRepository
}

func newPgxCashBictorysRepository(pool *pgxpool.Pool) portsrepo.CashBictorysRepository {
	return &PgxCashBictorysRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.CashBictorysRepository = (*PgxCashBictorysRepository)(nil)

func toDomainCashBictorys(m models.CashBictorys) domain.CashBictorys {
	return domain.CashBictorys{
		EntryID:   m.EntryID,
		Date:      m.Date,
		Amount:    m.Amount,
		MonthYear: m.MonthYear,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

// UpsertEntry inserts or replaces the row for entry.Date. The date column
// carries a unique constraint so re-imports overwrite the day's figure.
func (r *PgxCashBictorysRepository) UpsertEntry(ctx context.Context, entry domain.CashBictorys) error {
	query := `
		INSERT INTO cash_bictorys (entry_id, date, amount, month_year, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (date) DO UPDATE
		SET amount = EXCLUDED.amount, month_year = EXCLUDED.month_year,
		    last_updated_at = EXCLUDED.last_updated_at, last_updated_by = EXCLUDED.last_updated_by;
	`
	_, err := r.Pool.Exec(ctx, query,
		entry.EntryID,
		entry.Date,
		entry.Amount,
		entry.MonthYear,
		entry.CreatedAt,
		entry.CreatedBy,
		entry.LastUpdatedAt,
		entry.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert cash bictorys entry for %s: %w", entry.Date.Format("2006-01-02"), err)
	}
	return nil
}

// ListByMonth retrieves a month's snapshots ordered by date.
func (r *PgxCashBictorysRepository) ListByMonth(ctx context.Context, monthYear string) ([]domain.CashBictorys, error) {
	query := `
		SELECT entry_id, date, amount, month_year, created_at, created_by, last_updated_at, last_updated_by
		FROM cash_bictorys
		WHERE month_year = $1
		ORDER BY date;
	`
	rows, err := r.Pool.Query(ctx, query, monthYear)
	if err != nil {
		return nil, fmt.Errorf("failed to list cash bictorys entries for %s: %w", monthYear, err)
	}
	defer rows.Close()

	var entries []domain.CashBictorys
	for rows.Next() {
		var m models.CashBictorys
		if err := rows.Scan(
			&m.EntryID, &m.Date, &m.Amount, &m.MonthYear,
			&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan cash bictorys row: %w", err)
		}
		entries = append(entries, toDomainCashBictorys(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating cash bictorys rows: %w", err)
	}
	return entries, nil
}

// LatestNotAfter returns the entry with the greatest date in
// [monthStart, cutoff] whose amount is non-zero. The snapshots are positions,
// not deltas, so callers must never sum them.
func (r *PgxCashBictorysRepository) LatestNotAfter(ctx context.Context, monthStart, cutoff time.Time) (*domain.CashBictorys, error) {
	query := `
		SELECT entry_id, date, amount, month_year, created_at, created_by, last_updated_at, last_updated_by
		FROM cash_bictorys
		WHERE date >= $1::date AND date <= $2::date AND amount <> 0
		ORDER BY date DESC
		LIMIT 1;
	`
	var m models.CashBictorys
	err := r.Pool.QueryRow(ctx, query, monthStart, cutoff).Scan(
		&m.EntryID, &m.Date, &m.Amount, &m.MonthYear,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find latest cash bictorys entry: %w", err)
	}
	d := toDomainCashBictorys(m)
	return &d, nil
}
