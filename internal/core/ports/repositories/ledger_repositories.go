package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/matagroup/mata_gestion_app/internal/core/domain"
)

// LedgerRepository exposes the aggregate queries the balance engine is built
// on. from/to bound the contributing entries; either may be nil. Credits and
// transfers filter on created_at at datetime precision; expenses filter on the
// date-granular expense_date; deliveries on delivery_date; creance operations
// on operation_date.
type LedgerRepository interface {
	SumCredits(ctx context.Context, tx pgx.Tx, accountID string, from, to *time.Time) (int64, error)
	// LatestCreditAmount returns the amount of the credit row with the highest
	// (created_at, id) not exceeding to. found is false when no row qualifies.
	LatestCreditAmount(ctx context.Context, tx pgx.Tx, accountID string, to *time.Time) (amount int64, found bool, err error)
	SumExpenses(ctx context.Context, tx pgx.Tx, accountID string, from, to *time.Time) (int64, error)
	SumTransfersIn(ctx context.Context, tx pgx.Tx, accountID string, from, to *time.Time) (int64, error)
	SumTransfersOut(ctx context.Context, tx pgx.Tx, accountID string, from, to *time.Time) (int64, error)
	SumValidatedDeliveries(ctx context.Context, tx pgx.Tx, accountID string, from, to *time.Time) (int64, error)
	// SumCreanceBalances computes Σ over active clients of
	// initial_credit + Σ credit ops − Σ debit ops, ops filtered by to.
	SumCreanceBalances(ctx context.Context, tx pgx.Tx, accountID string, to *time.Time) (int64, error)

	// AuditFluxTotals re-derives the additive aggregates joined by account
	// name instead of account id. Verification tooling only.
	AuditFluxTotals(ctx context.Context, accountName string) (*domain.AuditFluxTotals, error)
}

// CreditRepository persists credit_history rows.
type CreditRepository interface {
	SaveCredit(ctx context.Context, tx pgx.Tx, credit domain.Credit) error
	FindCreditByID(ctx context.Context, creditID string) (*domain.Credit, error)
	DeleteCredit(ctx context.Context, tx pgx.Tx, creditID string) error
	ListCreditsByAccount(ctx context.Context, accountID string, limit, offset int) ([]domain.Credit, error)
}

// ExpenseRepository persists expense rows.
type ExpenseRepository interface {
	SaveExpense(ctx context.Context, tx pgx.Tx, expense domain.Expense) error
	FindExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error)
	UpdateExpense(ctx context.Context, tx pgx.Tx, expense domain.Expense) error
	DeleteExpense(ctx context.Context, tx pgx.Tx, expenseID string) error
	ListExpensesByAccount(ctx context.Context, accountID string, limit, offset int) ([]domain.Expense, error)
}

// TransferRepository persists transfer_history rows.
type TransferRepository interface {
	SaveTransfer(ctx context.Context, tx pgx.Tx, transfer domain.Transfer) error
	FindTransferByID(ctx context.Context, transferID string) (*domain.Transfer, error)
	DeleteTransfer(ctx context.Context, tx pgx.Tx, transferID string) error
	ListTransfersByAccount(ctx context.Context, accountID string, limit, offset int) ([]domain.Transfer, error)
}
