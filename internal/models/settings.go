package models

// FinancialSettings represents the single row of the financial_settings
// table.
type FinancialSettings struct {
	ValidateExpenseBalance bool  `db:"validate_expense_balance"`
	ChargesFixesEstimation int64 `db:"charges_fixes_estimation"`
	AuditFields
}
