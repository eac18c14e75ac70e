package domain

// Credit is a credit_history entry. Amount is signed FCFA; negative amounts
// are allowed for corrections. For statut accounts only the entry with the
// latest (created_at, seq) determines the balance; Seq is the database
// insertion sequence and breaks created_at ties.
type Credit struct {
	CreditID    string `json:"creditID"`
	Seq         int64  `json:"seq"`
	AccountID   string `json:"accountID"`
	Amount      int64  `json:"amount"` // signed FCFA
	Description string `json:"description"`
	AuditFields
}
