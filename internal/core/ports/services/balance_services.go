// Package services defines the service facades the handlers depend on.
package services

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/matagroup/mata_gestion_app/internal/core/domain"
)

// BalanceSvcFacade is the net balance calculator and cut-off query layer.
// Pure reads; every call recomputes from the transaction stores.
type BalanceSvcFacade interface {
	// ComputeNetBalance derives the balance for "now" (nil cutoff) or any
	// historical instant, dispatching on the account-type balance policy.
	ComputeNetBalance(ctx context.Context, accountID string, cutoff *time.Time) (int64, error)
	// ComputeNetBalanceInTx is the same computation inside a caller-held
	// transaction; used by the synchronizer and budget validation.
	ComputeNetBalanceInTx(ctx context.Context, tx pgx.Tx, account *domain.Account, cutoff *time.Time) (int64, error)
	BalanceAsOf(ctx context.Context, accountID string, date time.Time) (int64, error)
	ActivityInPeriod(ctx context.Context, accountID string, start, end time.Time) (*domain.ActivitySummary, error)
}

// SyncSvcFacade recomputes and persists the derived balance fields. The only
// component allowed to write current_balance/total_credited/total_spent.
type SyncSvcFacade interface {
	SyncAccount(ctx context.Context, accountID string) (int64, error)
	// SyncAccountInTx runs the recompute-and-persist step inside the
	// caller's mutation transaction, with the account row already locked.
	SyncAccountInTx(ctx context.Context, tx pgx.Tx, account *domain.Account) (int64, error)
	// SyncAllAccounts synchronizes every account independently; per-account
	// failures are counted and reported, never raised.
	SyncAllAccounts(ctx context.Context) domain.SyncSummary
}

// AuditSvcFacade is the independent name-joined cross-check. Consumed by
// verification tooling only, never by normal application flow.
type AuditSvcFacade interface {
	ComputeAuditFluxSum(ctx context.Context, accountName string) (int64, error)
	VerifyAccount(ctx context.Context, accountID string) (*domain.ConsistencyReport, error)
}

// CashSvcFacade computes the "cash disponible" aggregate.
type CashSvcFacade interface {
	ComputeTotalCash(ctx context.Context, asOf *time.Time) (int64, error)
}

// PLSvcFacade derives the monthly profit & loss. month is "YYYY-MM".
type PLSvcFacade interface {
	ComputePL(ctx context.Context, month string, snapshotDate time.Time) (*domain.PLResult, error)
}
