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
)

// PgxLedgerRepository serves the aggregate queries the balance engine runs.
// Credits and transfers filter on created_at at datetime precision; expenses
// filter on the date-granular expense_date column.
type PgxLedgerRepository struct {
	BaseRepository
}

func newPgxLedgerRepository(pool *pgxpool.Pool) portsrepo.LedgerRepository {
	return &PgxLedgerRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.LedgerRepository = (*PgxLedgerRepository)(nil)

func (r *PgxLedgerRepository) sumInt64(ctx context.Context, tx pgx.Tx, query string, args ...any) (int64, error) {
	var total int64
	if err := r.q(tx).QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

// SumCredits sums credit_history amounts with created_at in [from, to].
func (r *PgxLedgerRepository) SumCredits(ctx context.Context, tx pgx.Tx, accountID string, from, to *time.Time) (int64, error) {
	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM credit_history
		WHERE account_id = $1
		  AND ($2::timestamptz IS NULL OR created_at >= $2)
		  AND ($3::timestamptz IS NULL OR created_at <= $3);
	`
	total, err := r.sumInt64(ctx, tx, query, accountID, from, to)
	if err != nil {
		return 0, fmt.Errorf("failed to sum credits for account %s: %w", accountID, err)
	}
	return total, nil
}

// LatestCreditAmount returns the credit with the highest (created_at, seq)
// not exceeding to. found is false when the account has no qualifying credit.
// seq, not credit_id, is the tie-break: credit ids are random UUIDs and their
// lexicographic order says nothing about insertion order.
func (r *PgxLedgerRepository) LatestCreditAmount(ctx context.Context, tx pgx.Tx, accountID string, to *time.Time) (int64, bool, error) {
	query := `
		SELECT amount
		FROM credit_history
		WHERE account_id = $1
		  AND ($2::timestamptz IS NULL OR created_at <= $2)
		ORDER BY created_at DESC, seq DESC
		LIMIT 1;
	`
	var amount int64
	err := r.q(tx).QueryRow(ctx, query, accountID, to).Scan(&amount)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("failed to find latest credit for account %s: %w", accountID, err)
	}
	return amount, true, nil
}

// SumExpenses sums expense totals with expense_date in [from, to]. The bounds
// are truncated to dates because expense_date is a DATE column.
func (r *PgxLedgerRepository) SumExpenses(ctx context.Context, tx pgx.Tx, accountID string, from, to *time.Time) (int64, error) {
	query := `
		SELECT COALESCE(SUM(total), 0)
		FROM expenses
		WHERE account_id = $1
		  AND ($2::date IS NULL OR expense_date >= $2::date)
		  AND ($3::date IS NULL OR expense_date <= $3::date);
	`
	total, err := r.sumInt64(ctx, tx, query, accountID, from, to)
	if err != nil {
		return 0, fmt.Errorf("failed to sum expenses for account %s: %w", accountID, err)
	}
	return total, nil
}

// SumTransfersIn sums transfers received with created_at in [from, to].
func (r *PgxLedgerRepository) SumTransfersIn(ctx context.Context, tx pgx.Tx, accountID string, from, to *time.Time) (int64, error) {
	query := `
		SELECT COALESCE(SUM(montant), 0)
		FROM transfer_history
		WHERE destination_id = $1
		  AND ($2::timestamptz IS NULL OR created_at >= $2)
		  AND ($3::timestamptz IS NULL OR created_at <= $3);
	`
	total, err := r.sumInt64(ctx, tx, query, accountID, from, to)
	if err != nil {
		return 0, fmt.Errorf("failed to sum incoming transfers for account %s: %w", accountID, err)
	}
	return total, nil
}

// SumTransfersOut sums transfers sent with created_at in [from, to].
func (r *PgxLedgerRepository) SumTransfersOut(ctx context.Context, tx pgx.Tx, accountID string, from, to *time.Time) (int64, error) {
	query := `
		SELECT COALESCE(SUM(montant), 0)
		FROM transfer_history
		WHERE source_id = $1
		  AND ($2::timestamptz IS NULL OR created_at >= $2)
		  AND ($3::timestamptz IS NULL OR created_at <= $3);
	`
	total, err := r.sumInt64(ctx, tx, query, accountID, from, to)
	if err != nil {
		return 0, fmt.Errorf("failed to sum outgoing transfers for account %s: %w", accountID, err)
	}
	return total, nil
}

// SumValidatedDeliveries sums fully validated partner deliveries with
// delivery_date in [from, to]. Pending and rejected deliveries never count.
func (r *PgxLedgerRepository) SumValidatedDeliveries(ctx context.Context, tx pgx.Tx, accountID string, from, to *time.Time) (int64, error) {
	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM partner_deliveries
		WHERE account_id = $1
		  AND validation_status = 'fully_validated'
		  AND ($2::date IS NULL OR delivery_date >= $2::date)
		  AND ($3::date IS NULL OR delivery_date <= $3::date);
	`
	total, err := r.sumInt64(ctx, tx, query, accountID, from, to)
	if err != nil {
		return 0, fmt.Errorf("failed to sum validated deliveries for account %s: %w", accountID, err)
	}
	return total, nil
}

// SumCreanceBalances sums per-client running balances for a creance account:
// initial_credit + credit operations - debit operations, operations filtered
// by operation_date <= to.
func (r *PgxLedgerRepository) SumCreanceBalances(ctx context.Context, tx pgx.Tx, accountID string, to *time.Time) (int64, error) {
	query := `
		SELECT COALESCE(SUM(c.initial_credit + COALESCE(o.credits, 0) - COALESCE(o.debits, 0)), 0)
		FROM creance_clients c
		LEFT JOIN (
			SELECT client_id,
			       COALESCE(SUM(amount) FILTER (WHERE operation_type = 'credit'), 0) AS credits,
			       COALESCE(SUM(amount) FILTER (WHERE operation_type = 'debit'), 0) AS debits
			FROM creance_operations
			WHERE ($2::date IS NULL OR operation_date <= $2::date)
			GROUP BY client_id
		) o ON o.client_id = c.client_id
		WHERE c.account_id = $1 AND c.is_active = TRUE;
	`
	total, err := r.sumInt64(ctx, tx, query, accountID, to)
	if err != nil {
		return 0, fmt.Errorf("failed to sum creance balances for account %s: %w", accountID, err)
	}
	return total, nil
}

// AuditFluxTotals re-derives the additive aggregates joined by account name.
func (r *PgxLedgerRepository) AuditFluxTotals(ctx context.Context, accountName string) (*domain.AuditFluxTotals, error) {
	query := `
		SELECT
			(SELECT COALESCE(SUM(ch.amount), 0)
			   FROM credit_history ch JOIN accounts a ON a.account_id = ch.account_id
			  WHERE a.account_name = $1),
			(SELECT COALESCE(SUM(e.total), 0)
			   FROM expenses e JOIN accounts a ON a.account_id = e.account_id
			  WHERE a.account_name = $1),
			(SELECT COALESCE(SUM(th.montant), 0)
			   FROM transfer_history th JOIN accounts a ON a.account_id = th.destination_id
			  WHERE a.account_name = $1),
			(SELECT COALESCE(SUM(th.montant), 0)
			   FROM transfer_history th JOIN accounts a ON a.account_id = th.source_id
			  WHERE a.account_name = $1);
	`
	var totals domain.AuditFluxTotals
	err := r.Pool.QueryRow(ctx, query, accountName).Scan(
		&totals.Credits,
		&totals.Expenses,
		&totals.TransfersIn,
		&totals.TransfersOut,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to compute audit flux totals for account %q: %w", accountName, err)
	}
	return &totals, nil
}
