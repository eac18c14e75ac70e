package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/matagroup/mata_gestion_app/internal/apperrors"
	"github.com/matagroup/mata_gestion_app/internal/core/domain"
	portsrepo "github.com/matagroup/mata_gestion_app/internal/core/ports/repositories"
	portssvc "github.com/matagroup/mata_gestion_app/internal/core/ports/services"
	"github.com/matagroup/mata_gestion_app/internal/dto"
)

// CreditService mutates credit_history. Every mutation locks the account and
// re-synchronizes its derived columns inside the same transaction.
type CreditService struct {
	BaseService
	txManager   portsrepo.TxManager
	accountRepo portsrepo.AccountRepository
	creditRepo  portsrepo.CreditRepository
	syncSvc     portssvc.SyncSvcFacade
}

func NewCreditService(txManager portsrepo.TxManager, accountRepo portsrepo.AccountRepository, creditRepo portsrepo.CreditRepository, syncSvc portssvc.SyncSvcFacade) *CreditService {
	return &CreditService{
		txManager:   txManager,
		accountRepo: accountRepo,
		creditRepo:  creditRepo,
		syncSvc:     syncSvc,
	}
}

var _ portssvc.CreditSvcFacade = (*CreditService)(nil)

// CreateCredit records a credit entry. Negative amounts are allowed as
// corrections; for statut accounts the new entry becomes the balance.
func (s *CreditService) CreateCredit(ctx context.Context, req dto.CreateCreditRequest, userID string) (*domain.Credit, error) {
	if req.Amount == 0 {
		return nil, fmt.Errorf("%w: credit amount must not be zero", apperrors.ErrValidation)
	}

	now := time.Now()
	credit := domain.Credit{
		CreditID:    uuid.NewString(),
		AccountID:   req.AccountID,
		Amount:      req.Amount,
		Description: req.Description,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	err := s.txManager.WithTx(ctx, func(tx pgx.Tx) error {
		account, err := s.accountRepo.LockAccount(ctx, tx, req.AccountID)
		if err != nil {
			return err
		}
		if err := s.creditRepo.SaveCredit(ctx, tx, credit); err != nil {
			return err
		}
		_, err = s.syncSvc.SyncAccountInTx(ctx, tx, account)
		return err
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to create credit", slog.String("account_id", req.AccountID))
		return nil, err
	}

	s.LogInfo(ctx, "Credit created",
		slog.String("credit_id", credit.CreditID),
		slog.String("account_id", credit.AccountID),
		slog.Int64("amount", credit.Amount))
	return &credit, nil
}

// DeleteCredit removes a credit entry and re-synchronizes the account.
func (s *CreditService) DeleteCredit(ctx context.Context, creditID string, userID string) error {
	credit, err := s.creditRepo.FindCreditByID(ctx, creditID)
	if err != nil {
		return err
	}

	err = s.txManager.WithTx(ctx, func(tx pgx.Tx) error {
		account, err := s.accountRepo.LockAccount(ctx, tx, credit.AccountID)
		if err != nil {
			return err
		}
		if err := s.creditRepo.DeleteCredit(ctx, tx, creditID); err != nil {
			return err
		}
		_, err = s.syncSvc.SyncAccountInTx(ctx, tx, account)
		return err
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to delete credit", slog.String("credit_id", creditID))
		return err
	}

	s.LogInfo(ctx, "Credit deleted",
		slog.String("credit_id", creditID),
		slog.String("account_id", credit.AccountID),
		slog.String("deleted_by", userID))
	return nil
}

// ListCredits retrieves credits of an account, newest first.
func (s *CreditService) ListCredits(ctx context.Context, accountID string, limit, offset int) ([]domain.Credit, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return s.creditRepo.ListCreditsByAccount(ctx, accountID, limit, offset)
}
