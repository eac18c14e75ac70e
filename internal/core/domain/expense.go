package domain

import "time"

// Expense is a spend entry against an account. Total is the authoritative
// spent figure (the legacy Amount column is kept for older rows). ExpenseDate
// is the business date, distinct from CreatedAt which drives the 24-hour
// edit/delete window.
type Expense struct {
	ExpenseID          string    `json:"expenseID"`
	AccountID          string    `json:"accountID"`
	Total              int64     `json:"total"`  // authoritative FCFA figure
	Amount             int64     `json:"amount"` // legacy column, mirrors Total on new rows
	Designation        string    `json:"designation"`
	ExpenseDate        time.Time `json:"expenseDate"` // business date, date-granular
	Predictable        bool      `json:"predictable"`
	CategoryID         string    `json:"categoryID,omitempty"`
	SubcategoryID      string    `json:"subcategoryID,omitempty"`
	JustificationPath  string    `json:"justificationPath,omitempty"`
	SelectedForInvoice bool      `json:"selectedForInvoice"`
	AuditFields
}
