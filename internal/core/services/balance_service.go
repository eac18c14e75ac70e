package services

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/matagroup/mata_gestion_app/internal/apperrors"
	"github.com/matagroup/mata_gestion_app/internal/core/domain"
	portsrepo "github.com/matagroup/mata_gestion_app/internal/core/ports/repositories"
	portssvc "github.com/matagroup/mata_gestion_app/internal/core/ports/services"
)

// BalanceService recomputes account balances from the transaction streams.
// It never reads the stored current_balance column.
type BalanceService struct {
	BaseService
	accountRepo portsrepo.AccountRepository
	ledgerRepo  portsrepo.LedgerRepository
}

func NewBalanceService(accountRepo portsrepo.AccountRepository, ledgerRepo portsrepo.LedgerRepository) *BalanceService {
	return &BalanceService{accountRepo: accountRepo, ledgerRepo: ledgerRepo}
}

var _ portssvc.BalanceSvcFacade = (*BalanceService)(nil)

// ComputeNetBalance derives the balance of an account at "now" (nil cutoff)
// or at a historical instant.
func (s *BalanceService) ComputeNetBalance(ctx context.Context, accountID string, cutoff *time.Time) (int64, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return 0, err
	}
	return s.ComputeNetBalanceInTx(ctx, nil, account, cutoff)
}

// ComputeNetBalanceInTx dispatches on the account-type balance policy. The
// switch is exhaustive over the closed enum; an unknown type is a
// configuration error and must never be silently defaulted.
func (s *BalanceService) ComputeNetBalanceInTx(ctx context.Context, tx pgx.Tx, account *domain.Account, cutoff *time.Time) (int64, error) {
	switch account.AccountType {
	case domain.TypeClassique, domain.TypeDepot, domain.TypeAjustement, domain.TypeFournisseur:
		return s.additiveBalance(ctx, tx, account.AccountID, cutoff)
	case domain.TypeStatut:
		amount, found, err := s.ledgerRepo.LatestCreditAmount(ctx, tx, account.AccountID, cutoff)
		if err != nil {
			return 0, err
		}
		if !found {
			return 0, nil
		}
		return amount, nil
	case domain.TypePartenaire:
		credits, err := s.ledgerRepo.SumCredits(ctx, tx, account.AccountID, nil, cutoff)
		if err != nil {
			return 0, err
		}
		delivered, err := s.ledgerRepo.SumValidatedDeliveries(ctx, tx, account.AccountID, nil, cutoff)
		if err != nil {
			return 0, err
		}
		return credits - delivered, nil
	case domain.TypeCreance:
		return s.ledgerRepo.SumCreanceBalances(ctx, tx, account.AccountID, cutoff)
	default:
		return 0, fmt.Errorf("%w: account %s has unknown type %q",
			apperrors.ErrConfiguration, account.AccountID, account.AccountType)
	}
}

func (s *BalanceService) additiveBalance(ctx context.Context, tx pgx.Tx, accountID string, cutoff *time.Time) (int64, error) {
	credits, err := s.ledgerRepo.SumCredits(ctx, tx, accountID, nil, cutoff)
	if err != nil {
		return 0, err
	}
	expenses, err := s.ledgerRepo.SumExpenses(ctx, tx, accountID, nil, cutoff)
	if err != nil {
		return 0, err
	}
	transfersIn, err := s.ledgerRepo.SumTransfersIn(ctx, tx, accountID, nil, cutoff)
	if err != nil {
		return 0, err
	}
	transfersOut, err := s.ledgerRepo.SumTransfersOut(ctx, tx, accountID, nil, cutoff)
	if err != nil {
		return 0, err
	}
	return credits - expenses + transfersIn - transfersOut, nil
}

// BalanceAsOf computes the balance with a cutoff at the end of the given day.
// A credit recorded later the same day as an expense cutoff is still included
// because the cutoff covers the whole day; strictly later days are excluded.
func (s *BalanceService) BalanceAsOf(ctx context.Context, accountID string, date time.Time) (int64, error) {
	cutoff := time.Date(date.Year(), date.Month(), date.Day(), 23, 59, 59, 999999999, date.Location())
	return s.ComputeNetBalance(ctx, accountID, &cutoff)
}

// ActivityInPeriod aggregates the contributing streams over [start, end].
func (s *BalanceService) ActivityInPeriod(ctx context.Context, accountID string, start, end time.Time) (*domain.ActivitySummary, error) {
	if _, err := s.accountRepo.FindAccountByID(ctx, accountID); err != nil {
		return nil, err
	}
	endOfDay := time.Date(end.Year(), end.Month(), end.Day(), 23, 59, 59, 999999999, end.Location())

	credits, err := s.ledgerRepo.SumCredits(ctx, nil, accountID, &start, &endOfDay)
	if err != nil {
		return nil, err
	}
	expenses, err := s.ledgerRepo.SumExpenses(ctx, nil, accountID, &start, &endOfDay)
	if err != nil {
		return nil, err
	}
	transfersIn, err := s.ledgerRepo.SumTransfersIn(ctx, nil, accountID, &start, &endOfDay)
	if err != nil {
		return nil, err
	}
	transfersOut, err := s.ledgerRepo.SumTransfersOut(ctx, nil, accountID, &start, &endOfDay)
	if err != nil {
		return nil, err
	}
	return &domain.ActivitySummary{
		Credits:      credits,
		Expenses:     expenses,
		TransfersIn:  transfersIn,
		TransfersOut: transfersOut,
	}, nil
}
