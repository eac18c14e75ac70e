// Package repositories defines the persistence ports consumed by the core
// services. Aggregate query methods accept an optional pgx.Tx: when nil the
// query runs on the pool, otherwise inside the caller's transaction, so the
// same computation serves both plain reads and lock-and-update sequences.
package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// TxManager begins a transaction, runs fn, and commits or rolls back.
type TxManager interface {
	WithTx(ctx context.Context, fn func(tx pgx.Tx) error) error
}

// RepositoryProvider bundles every repository implementation for injection
// into the service container.
type RepositoryProvider struct {
	TxManager       TxManager
	AccountRepo     AccountRepository
	LedgerRepo      LedgerRepository
	CreditRepo      CreditRepository
	ExpenseRepo     ExpenseRepository
	TransferRepo    TransferRepository
	PartnerRepo     PartnerRepository
	CreanceRepo     CreanceRepository
	StockVivantRepo StockVivantRepository
	StockSoirRepo   StockSoirRepository
	CashBictorysRepo CashBictorysRepository
	ReportingRepo   ReportingRepository
	SettingsRepo    SettingsRepository
	UserRepo        UserRepository
}
