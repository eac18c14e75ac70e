package models

import "time"

// Expense represents a row of the expenses table. total is the authoritative
// spent figure; amount is the legacy column kept in sync on new rows.
// expense_date is a DATE column, distinct from created_at.
type Expense struct {
	ExpenseID          string    `db:"expense_id"`
	AccountID          string    `db:"account_id"`
	Total              int64     `db:"total"`
	Amount             int64     `db:"amount"`
	Designation        string    `db:"designation"`
	ExpenseDate        time.Time `db:"expense_date"`
	Predictable        bool      `db:"predictable"`
	CategoryID         string    `db:"category_id"`    // nullable
	SubcategoryID      string    `db:"subcategory_id"` // nullable
	JustificationPath  string    `db:"justification_path"`
	SelectedForInvoice bool      `db:"selected_for_invoice"`
	AuditFields
}
