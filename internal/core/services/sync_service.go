package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/matagroup/mata_gestion_app/internal/core/domain"
	portsrepo "github.com/matagroup/mata_gestion_app/internal/core/ports/repositories"
	portssvc "github.com/matagroup/mata_gestion_app/internal/core/ports/services"
)

// syncActorID marks derived-column writes triggered by the synchronizer
// itself rather than a user mutation.
const syncActorID = "system:sync"

// SyncService recomputes and persists the derived balance columns. It is the
// only component that writes current_balance, total_credited and total_spent.
type SyncService struct {
	BaseService
	txManager   portsrepo.TxManager
	accountRepo portsrepo.AccountRepository
	ledgerRepo  portsrepo.LedgerRepository
	balanceSvc  portssvc.BalanceSvcFacade
}

func NewSyncService(txManager portsrepo.TxManager, accountRepo portsrepo.AccountRepository, ledgerRepo portsrepo.LedgerRepository, balanceSvc portssvc.BalanceSvcFacade) *SyncService {
	return &SyncService{
		txManager:   txManager,
		accountRepo: accountRepo,
		ledgerRepo:  ledgerRepo,
		balanceSvc:  balanceSvc,
	}
}

var _ portssvc.SyncSvcFacade = (*SyncService)(nil)

// SyncAccount locks the account, recomputes its derived columns and persists
// them in one transaction. Returns the new balance.
func (s *SyncService) SyncAccount(ctx context.Context, accountID string) (int64, error) {
	var balance int64
	err := s.txManager.WithTx(ctx, func(tx pgx.Tx) error {
		account, err := s.accountRepo.LockAccount(ctx, tx, accountID)
		if err != nil {
			return err
		}
		balance, err = s.SyncAccountInTx(ctx, tx, account)
		return err
	})
	if err != nil {
		return 0, err
	}
	return balance, nil
}

// SyncAccountInTx runs the recompute-and-persist step inside the caller's
// transaction. The caller must already hold the row lock.
func (s *SyncService) SyncAccountInTx(ctx context.Context, tx pgx.Tx, account *domain.Account) (int64, error) {
	balance, err := s.balanceSvc.ComputeNetBalanceInTx(ctx, tx, account, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to recompute balance for account %s: %w", account.AccountID, err)
	}
	credited, err := s.ledgerRepo.SumCredits(ctx, tx, account.AccountID, nil, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to recompute total credited for account %s: %w", account.AccountID, err)
	}
	spent, err := s.ledgerRepo.SumExpenses(ctx, tx, account.AccountID, nil, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to recompute total spent for account %s: %w", account.AccountID, err)
	}

	if err := s.accountRepo.UpdateDerivedTotals(ctx, tx, account.AccountID, balance, credited, spent, syncActorID, time.Now()); err != nil {
		return 0, err
	}
	return balance, nil
}

// SyncAllAccounts synchronizes every account independently. A failing account
// is counted and reported; it never aborts the rest of the batch.
func (s *SyncService) SyncAllAccounts(ctx context.Context) domain.SyncSummary {
	summary := domain.SyncSummary{}

	accounts, err := s.accountRepo.ListAccounts(ctx, false)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts for batch sync")
		summary.Errors = 1
		summary.Messages = append(summary.Messages, fmt.Sprintf("failed to list accounts: %v", err))
		return summary
	}

	for _, account := range accounts {
		if _, err := s.SyncAccount(ctx, account.AccountID); err != nil {
			s.LogError(ctx, err, "Account sync failed",
				slog.String("account_id", account.AccountID),
				slog.String("account_name", account.AccountName))
			summary.Errors++
			summary.Messages = append(summary.Messages, fmt.Sprintf("account %s (%s): %v", account.AccountName, account.AccountID, err))
			continue
		}
		summary.Synchronized++
	}

	s.LogInfo(ctx, "Batch account sync completed",
		slog.Int("synchronized", summary.Synchronized),
		slog.Int("errors", summary.Errors))
	return summary
}
