package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/matagroup/mata_gestion_app/internal/apperrors"
	"github.com/matagroup/mata_gestion_app/internal/core/domain"
	portsrepo "github.com/matagroup/mata_gestion_app/internal/core/ports/repositories"
	portssvc "github.com/matagroup/mata_gestion_app/internal/core/ports/services"
	"github.com/matagroup/mata_gestion_app/internal/dto"
)

// AccountService manages the account registry.
type AccountService struct {
	BaseService
	accountRepo portsrepo.AccountRepository
}

func NewAccountService(accountRepo portsrepo.AccountRepository) *AccountService {
	return &AccountService{accountRepo: accountRepo}
}

var _ portssvc.AccountSvcFacade = (*AccountService)(nil)

// CreateAccount registers a new account. The type must belong to the closed
// enum; the DTO binding already enforces this but the service re-checks so
// non-HTTP callers get the same guarantee.
func (s *AccountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error) {
	if !req.AccountType.Valid() {
		return nil, fmt.Errorf("%w: unknown account type %q", apperrors.ErrValidation, req.AccountType)
	}

	now := time.Now()
	account := domain.Account{
		AccountID:          uuid.NewString(),
		AccountName:        req.AccountName,
		AccountType:        req.AccountType,
		IsActive:           true,
		UserID:             req.UserID,
		CategoryType:       req.CategoryType,
		PartnerDirectorIDs: req.PartnerDirectorIDs,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		s.LogError(ctx, err, "Failed to save account", slog.String("account_name", req.AccountName))
		return nil, err
	}

	s.LogInfo(ctx, "Account created",
		slog.String("account_id", account.AccountID),
		slog.String("account_name", account.AccountName),
		slog.String("account_type", string(account.AccountType)))
	return &account, nil
}

// GetAccountByID retrieves an account.
func (s *AccountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	return s.accountRepo.FindAccountByID(ctx, accountID)
}

// GetAccountByName retrieves an account by its unique name.
func (s *AccountService) GetAccountByName(ctx context.Context, accountName string) (*domain.Account, error) {
	return s.accountRepo.FindAccountByName(ctx, accountName)
}

// ListAccounts retrieves accounts, optionally only the active ones.
func (s *AccountService) ListAccounts(ctx context.Context, onlyActive bool) ([]domain.Account, error) {
	return s.accountRepo.ListAccounts(ctx, onlyActive)
}

// UpdateAccount edits the descriptive fields of an account. The account type
// is immutable after creation: changing it would retroactively reinterpret
// the whole transaction history under another balance policy.
func (s *AccountService) UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	if req.AccountName != nil {
		account.AccountName = *req.AccountName
	}
	if req.CategoryType != nil {
		account.CategoryType = *req.CategoryType
	}
	if req.UserID != nil {
		account.UserID = *req.UserID
	}
	account.LastUpdatedAt = time.Now()
	account.LastUpdatedBy = userID

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		s.LogError(ctx, err, "Failed to update account", slog.String("account_id", accountID))
		return nil, err
	}

	s.LogInfo(ctx, "Account updated", slog.String("account_id", accountID))
	return account, nil
}

// DeactivateAccount soft-deletes an account. History is preserved.
func (s *AccountService) DeactivateAccount(ctx context.Context, accountID string, userID string) error {
	if err := s.accountRepo.DeactivateAccount(ctx, accountID, userID, time.Now()); err != nil {
		s.LogError(ctx, err, "Failed to deactivate account", slog.String("account_id", accountID))
		return err
	}
	s.LogInfo(ctx, "Account deactivated",
		slog.String("account_id", accountID),
		slog.String("deactivated_by", userID))
	return nil
}

// DeleteAccount hard-deletes an account. Only permitted while total_spent is
// zero; an account that has ever spent money keeps its history and can only
// be deactivated.
func (s *AccountService) DeleteAccount(ctx context.Context, accountID string, userID string) error {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return err
	}
	if account.TotalSpent != 0 {
		return fmt.Errorf("%w: account %s has recorded expenses and cannot be hard-deleted",
			apperrors.ErrConflict, accountID)
	}

	if err := s.accountRepo.DeleteAccount(ctx, accountID); err != nil {
		s.LogError(ctx, err, "Failed to delete account", slog.String("account_id", accountID))
		return err
	}

	s.LogInfo(ctx, "Account deleted",
		slog.String("account_id", accountID),
		slog.String("account_name", account.AccountName),
		slog.String("deleted_by", userID))
	return nil
}
