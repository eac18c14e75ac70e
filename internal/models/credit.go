package models

// Credit represents a row of the credit_history table. Amount is signed FCFA.
// Seq is assigned by the database and orders same-timestamp rows.
type Credit struct {
	CreditID    string `db:"credit_id"`
	Seq         int64  `db:"seq"`
	AccountID   string `db:"account_id"`
	Amount      int64  `db:"amount"`
	Description string `db:"description"`
	AuditFields
}
