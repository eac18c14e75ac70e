package services

import (
	"context"

	"github.com/matagroup/mata_gestion_app/internal/core/domain"
	"github.com/matagroup/mata_gestion_app/internal/dto"
)

// CreditSvcFacade mutates credit_history. Every mutation synchronizes the
// touched account inside the same transaction.
type CreditSvcFacade interface {
	CreateCredit(ctx context.Context, req dto.CreateCreditRequest, userID string) (*domain.Credit, error)
	DeleteCredit(ctx context.Context, creditID string, userID string) error
	ListCredits(ctx context.Context, accountID string, limit, offset int) ([]domain.Credit, error)
}

// ExpenseSvcFacade mutates expenses with in-transaction budget validation.
type ExpenseSvcFacade interface {
	CreateExpense(ctx context.Context, req dto.CreateExpenseRequest, userID string) (*domain.Expense, error)
	UpdateExpense(ctx context.Context, expenseID string, req dto.UpdateExpenseRequest, userID string) (*domain.Expense, error)
	DeleteExpense(ctx context.Context, expenseID string, userID string) error
	ListExpenses(ctx context.Context, accountID string, limit, offset int) ([]domain.Expense, error)
}

// TransferSvcFacade moves funds between accounts atomically.
type TransferSvcFacade interface {
	CreateTransfer(ctx context.Context, req dto.CreateTransferRequest, userID string) (*domain.Transfer, error)
	DeleteTransfer(ctx context.Context, transferID string, userID string) error
	ListTransfers(ctx context.Context, accountID string, limit, offset int) ([]domain.Transfer, error)
}
