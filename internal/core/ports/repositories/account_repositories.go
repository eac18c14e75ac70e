package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/matagroup/mata_gestion_app/internal/core/domain"
)

// AccountRepository persists accounts and their derived balance fields.
type AccountRepository interface {
	SaveAccount(ctx context.Context, account domain.Account) error
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)
	FindAccountByName(ctx context.Context, accountName string) (*domain.Account, error)
	ListAccounts(ctx context.Context, onlyActive bool) ([]domain.Account, error)
	UpdateAccount(ctx context.Context, account domain.Account) error
	DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error
	// DeleteAccount hard-deletes the row. Callers must have verified that
	// total_spent is zero; the repository only removes the record.
	DeleteAccount(ctx context.Context, accountID string) error

	// LockAccount selects the account row FOR UPDATE inside tx. Every
	// check-then-write sequence against an account goes through this lock.
	LockAccount(ctx context.Context, tx pgx.Tx, accountID string) (*domain.Account, error)
	// UpdateDerivedTotals persists the synchronizer's output. This is the only
	// write path for current_balance, total_credited and total_spent.
	UpdateDerivedTotals(ctx context.Context, tx pgx.Tx, accountID string, balance, credited, spent int64, userID string, now time.Time) error
}
