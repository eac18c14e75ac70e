package services

import (
	"context"
	"errors"
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

// expenseEditWindow is how long after creation a non-admin user may still
// edit or delete an expense.
const expenseEditWindow = 24 * time.Hour

// ExpenseService mutates expenses with in-transaction budget validation. The
// balance check and the insert run under one account row lock, so two
// concurrent expenses can never both pass against the same funds.
type ExpenseService struct {
	BaseService
	txManager    portsrepo.TxManager
	accountRepo  portsrepo.AccountRepository
	expenseRepo  portsrepo.ExpenseRepository
	settingsRepo portsrepo.SettingsRepository
	userRepo     portsrepo.UserRepository
	balanceSvc   portssvc.BalanceSvcFacade
	syncSvc      portssvc.SyncSvcFacade
}

func NewExpenseService(txManager portsrepo.TxManager, accountRepo portsrepo.AccountRepository, expenseRepo portsrepo.ExpenseRepository, settingsRepo portsrepo.SettingsRepository, userRepo portsrepo.UserRepository, balanceSvc portssvc.BalanceSvcFacade, syncSvc portssvc.SyncSvcFacade) *ExpenseService {
	return &ExpenseService{
		txManager:    txManager,
		accountRepo:  accountRepo,
		expenseRepo:  expenseRepo,
		settingsRepo: settingsRepo,
		userRepo:     userRepo,
		balanceSvc:   balanceSvc,
		syncSvc:      syncSvc,
	}
}

var _ portssvc.ExpenseSvcFacade = (*ExpenseService)(nil)

// validateBudget rejects the expense when it would push the account balance
// negative. Statut accounts are exempt: their balance is a reference value
// overwritten by the next credit, not a spendable budget.
func (s *ExpenseService) validateBudget(ctx context.Context, tx pgx.Tx, account *domain.Account, total int64) error {
	settings, err := s.settingsRepo.GetSettings(ctx)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: financial settings missing, cannot decide budget validation", apperrors.ErrConfiguration)
		}
		return err
	}
	if !settings.ValidateExpenseBalance {
		return nil
	}
	if account.AccountType == domain.TypeStatut {
		return nil
	}

	balance, err := s.balanceSvc.ComputeNetBalanceInTx(ctx, tx, account, nil)
	if err != nil {
		return err
	}
	if total > balance {
		return &apperrors.InsufficientBalanceError{
			AccountID: account.AccountID,
			Requested: total,
			Available: balance,
		}
	}
	return nil
}

// checkEditWindow enforces the 24-hour edit/delete rule for non-admin users.
func (s *ExpenseService) checkEditWindow(ctx context.Context, expense *domain.Expense, userID string) error {
	if time.Since(expense.CreatedAt) <= expenseEditWindow {
		return nil
	}
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if user.Role == domain.RoleAdmin {
		return nil
	}
	return fmt.Errorf("%w: expense %s is older than 24 hours and can no longer be modified",
		apperrors.ErrForbidden, expense.ExpenseID)
}

// CreateExpense validates the budget and records the expense in one
// transaction, then re-synchronizes the account before commit.
func (s *ExpenseService) CreateExpense(ctx context.Context, req dto.CreateExpenseRequest, userID string) (*domain.Expense, error) {
	expenseDate, err := dto.ParseDate(req.ExpenseDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid expense date %q", apperrors.ErrValidation, req.ExpenseDate)
	}

	now := time.Now()
	expense := domain.Expense{
		ExpenseID:          uuid.NewString(),
		AccountID:          req.AccountID,
		Total:              req.Total,
		Amount:             req.Total, // legacy column mirrors total on new rows
		Designation:        req.Designation,
		ExpenseDate:        expenseDate,
		Predictable:        req.Predictable,
		CategoryID:         req.CategoryID,
		SubcategoryID:      req.SubcategoryID,
		JustificationPath:  req.JustificationPath,
		SelectedForInvoice: req.SelectedForInvoice,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	err = s.txManager.WithTx(ctx, func(tx pgx.Tx) error {
		account, err := s.accountRepo.LockAccount(ctx, tx, req.AccountID)
		if err != nil {
			return err
		}
		if err := s.validateBudget(ctx, tx, account, req.Total); err != nil {
			return err
		}
		if err := s.expenseRepo.SaveExpense(ctx, tx, expense); err != nil {
			return err
		}
		_, err = s.syncSvc.SyncAccountInTx(ctx, tx, account)
		return err
	})
	if err != nil {
		var insufficientErr *apperrors.InsufficientBalanceError
		if errors.As(err, &insufficientErr) {
			s.LogWarn(ctx, "Expense rejected for insufficient balance",
				slog.String("account_id", req.AccountID),
				slog.Int64("requested", insufficientErr.Requested),
				slog.Int64("available", insufficientErr.Available))
		} else {
			s.LogError(ctx, err, "Failed to create expense", slog.String("account_id", req.AccountID))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Expense created",
		slog.String("expense_id", expense.ExpenseID),
		slog.String("account_id", expense.AccountID),
		slog.Int64("total", expense.Total))
	return &expense, nil
}

// UpdateExpense edits an expense inside the 24-hour window and re-validates
// the budget against the delta.
func (s *ExpenseService) UpdateExpense(ctx context.Context, expenseID string, req dto.UpdateExpenseRequest, userID string) (*domain.Expense, error) {
	expense, err := s.expenseRepo.FindExpenseByID(ctx, expenseID)
	if err != nil {
		return nil, err
	}
	if err := s.checkEditWindow(ctx, expense, userID); err != nil {
		return nil, err
	}

	previousTotal := expense.Total
	if req.Total != nil {
		if *req.Total <= 0 {
			return nil, fmt.Errorf("%w: expense total must be positive", apperrors.ErrValidation)
		}
		expense.Total = *req.Total
		expense.Amount = *req.Total
	}
	if req.Designation != nil {
		expense.Designation = *req.Designation
	}
	if req.ExpenseDate != nil {
		expenseDate, err := dto.ParseDate(*req.ExpenseDate)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid expense date %q", apperrors.ErrValidation, *req.ExpenseDate)
		}
		expense.ExpenseDate = expenseDate
	}
	if req.Predictable != nil {
		expense.Predictable = *req.Predictable
	}
	if req.SelectedForInvoice != nil {
		expense.SelectedForInvoice = *req.SelectedForInvoice
	}
	expense.LastUpdatedAt = time.Now()
	expense.LastUpdatedBy = userID

	err = s.txManager.WithTx(ctx, func(tx pgx.Tx) error {
		account, err := s.accountRepo.LockAccount(ctx, tx, expense.AccountID)
		if err != nil {
			return err
		}
		if delta := expense.Total - previousTotal; delta > 0 {
			if err := s.validateBudget(ctx, tx, account, delta); err != nil {
				return err
			}
		}
		if err := s.expenseRepo.UpdateExpense(ctx, tx, *expense); err != nil {
			return err
		}
		_, err = s.syncSvc.SyncAccountInTx(ctx, tx, account)
		return err
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to update expense", slog.String("expense_id", expenseID))
		return nil, err
	}

	s.LogInfo(ctx, "Expense updated", slog.String("expense_id", expenseID))
	return expense, nil
}

// DeleteExpense removes an expense inside the 24-hour window and
// re-synchronizes the account.
func (s *ExpenseService) DeleteExpense(ctx context.Context, expenseID string, userID string) error {
	expense, err := s.expenseRepo.FindExpenseByID(ctx, expenseID)
	if err != nil {
		return err
	}
	if err := s.checkEditWindow(ctx, expense, userID); err != nil {
		return err
	}

	err = s.txManager.WithTx(ctx, func(tx pgx.Tx) error {
		account, err := s.accountRepo.LockAccount(ctx, tx, expense.AccountID)
		if err != nil {
			return err
		}
		if err := s.expenseRepo.DeleteExpense(ctx, tx, expenseID); err != nil {
			return err
		}
		_, err = s.syncSvc.SyncAccountInTx(ctx, tx, account)
		return err
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to delete expense", slog.String("expense_id", expenseID))
		return err
	}

	s.LogInfo(ctx, "Expense deleted",
		slog.String("expense_id", expenseID),
		slog.String("deleted_by", userID))
	return nil
}

// ListExpenses retrieves expenses of an account, newest business date first.
func (s *ExpenseService) ListExpenses(ctx context.Context, accountID string, limit, offset int) ([]domain.Expense, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return s.expenseRepo.ListExpensesByAccount(ctx, accountID, limit, offset)
}
