package dto

import (
	"time"

	"github.com/matagroup/mata_gestion_app/internal/core/domain"
)

// CreateCreditRequest credits an account. Amount is signed: negative amounts
// are corrections.
type CreateCreditRequest struct {
	AccountID   string `json:"accountID" binding:"required"`
	Amount      int64  `json:"amount" binding:"required"`
	Description string `json:"description"`
}

// CreditResponse mirrors domain.Credit.
type CreditResponse struct {
	CreditID    string    `json:"creditID"`
	AccountID   string    `json:"accountID"`
	Amount      int64     `json:"amount"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	CreatedBy   string    `json:"createdBy"`
}

// CreateExpenseRequest records a spend against an account. ExpenseDate is the
// business date, accepted as YYYY-MM-DD.
type CreateExpenseRequest struct {
	AccountID          string `json:"accountID" binding:"required"`
	Total              int64  `json:"total" binding:"required,gt=0"`
	Designation        string `json:"designation" binding:"required"`
	ExpenseDate        string `json:"expenseDate" binding:"required,datetime=2006-01-02"`
	Predictable        bool   `json:"predictable"`
	CategoryID         string `json:"categoryID"`
	SubcategoryID      string `json:"subcategoryID"`
	JustificationPath  string `json:"justificationPath"`
	SelectedForInvoice bool   `json:"selectedForInvoice"`
}

// UpdateExpenseRequest edits an expense inside the 24-hour window.
type UpdateExpenseRequest struct {
	Total              *int64  `json:"total"`
	Designation        *string `json:"designation"`
	ExpenseDate        *string `json:"expenseDate" binding:"omitempty,datetime=2006-01-02"`
	Predictable        *bool   `json:"predictable"`
	SelectedForInvoice *bool   `json:"selectedForInvoice"`
}

// ExpenseResponse mirrors domain.Expense.
type ExpenseResponse struct {
	ExpenseID          string    `json:"expenseID"`
	AccountID          string    `json:"accountID"`
	Total              int64     `json:"total"`
	Designation        string    `json:"designation"`
	ExpenseDate        string    `json:"expenseDate"`
	Predictable        bool      `json:"predictable"`
	CategoryID         string    `json:"categoryID,omitempty"`
	SubcategoryID      string    `json:"subcategoryID,omitempty"`
	JustificationPath  string    `json:"justificationPath,omitempty"`
	SelectedForInvoice bool      `json:"selectedForInvoice"`
	CreatedAt          time.Time `json:"createdAt"`
	CreatedBy          string    `json:"createdBy"`
}

// ToExpenseResponse converts a domain.Expense to its DTO.
func ToExpenseResponse(e *domain.Expense) ExpenseResponse {
	return ExpenseResponse{
		ExpenseID:          e.ExpenseID,
		AccountID:          e.AccountID,
		Total:              e.Total,
		Designation:        e.Designation,
		ExpenseDate:        e.ExpenseDate.Format("2006-01-02"),
		Predictable:        e.Predictable,
		CategoryID:         e.CategoryID,
		SubcategoryID:      e.SubcategoryID,
		JustificationPath:  e.JustificationPath,
		SelectedForInvoice: e.SelectedForInvoice,
		CreatedAt:          e.CreatedAt,
		CreatedBy:          e.CreatedBy,
	}
}

// CreateTransferRequest moves montant from source to destination.
type CreateTransferRequest struct {
	SourceID      string `json:"sourceID" binding:"required"`
	DestinationID string `json:"destinationID" binding:"required"`
	Montant       int64  `json:"montant" binding:"required,gt=0"`
}

// TransferResponse mirrors domain.Transfer.
type TransferResponse struct {
	TransferID    string    `json:"transferID"`
	SourceID      string    `json:"sourceID"`
	DestinationID string    `json:"destinationID"`
	Montant       int64     `json:"montant"`
	TransferredBy string    `json:"transferredBy"`
	CreatedAt     time.Time `json:"createdAt"`
}
