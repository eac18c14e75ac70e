package domain

// FinancialSettings holds the configuration consumed by the reconciliation
// engine. Missing settings are a configuration error for the operations that
// need them, never silently defaulted.
type FinancialSettings struct {
	ValidateExpenseBalance bool  `json:"validateExpenseBalance"`
	ChargesFixesEstimation int64 `json:"chargesFixesEstimation"` // FCFA per month
	AuditFields
}
