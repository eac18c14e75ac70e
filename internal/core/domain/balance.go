package domain

// ActivitySummary aggregates the contributing streams of an account over a
// period.
type ActivitySummary struct {
	Credits      int64 `json:"credits"`
	Expenses     int64 `json:"expenses"`
	TransfersIn  int64 `json:"transfersIn"`
	TransfersOut int64 `json:"transfersOut"`
}

// AuditFluxTotals are the name-joined aggregates used by the audit flux
// cross-check.
type AuditFluxTotals struct {
	Credits      int64 `json:"credits"`
	Expenses     int64 `json:"expenses"`
	TransfersIn  int64 `json:"transfersIn"`
	TransfersOut int64 `json:"transfersOut"`
}

// Sum is totalCredits − totalExpenses − totalTransfersOut + totalTransfersIn.
func (t AuditFluxTotals) Sum() int64 {
	return t.Credits - t.Expenses - t.TransfersOut + t.TransfersIn
}

// ConsistencyReport compares the three balance derivations for one account.
// Any divergence after a sync is a defect.
type ConsistencyReport struct {
	AccountID      string `json:"accountID"`
	AccountName    string `json:"accountName"`
	StoredBalance  int64  `json:"storedBalance"`
	NetBalance     int64  `json:"netBalance"`
	AuditFluxSum   int64  `json:"auditFluxSum"`
	AuditFluxApplies bool `json:"auditFluxApplies"` // name-joined check only covers additive accounts
	Consistent     bool   `json:"consistent"`
}

// SyncSummary reports the outcome of a batch synchronization.
type SyncSummary struct {
	Synchronized int      `json:"synchronized"`
	Errors       int      `json:"errors"`
	Messages     []string `json:"messages,omitempty"`
}
