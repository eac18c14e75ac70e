package domain

import "time"

// CreanceClient is a client ledger attached to a creance account.
type CreanceClient struct {
	ClientID      string `json:"clientID"`
	AccountID     string `json:"accountID"`
	ClientName    string `json:"clientName"`
	ClientPhone   string `json:"clientPhone,omitempty"`
	ClientAddress string `json:"clientAddress,omitempty"`
	InitialCredit int64  `json:"initialCredit"` // FCFA
	IsActive      bool   `json:"isActive"`
	AuditFields
}

// OperationType is the direction of a creance operation.
type OperationType string

const (
	OperationCredit OperationType = "credit"
	OperationDebit  OperationType = "debit"
)

// CreanceOperation is a movement on a client ledger. Amount is always stored
// positive; the sign is implied by OperationType.
type CreanceOperation struct {
	OperationID   string        `json:"operationID"`
	AccountID     string        `json:"accountID"`
	ClientID      string        `json:"clientID"`
	OperationType OperationType `json:"operationType"`
	Amount        int64         `json:"amount"` // positive FCFA
	OperationDate time.Time     `json:"operationDate"`
	Description   string        `json:"description,omitempty"`
	AuditFields
}

// CreanceClientBalance is a computed per-client running balance:
// initial_credit + Σ credit ops − Σ debit ops.
type CreanceClientBalance struct {
	ClientID   string `json:"clientID"`
	ClientName string `json:"clientName"`
	Balance    int64  `json:"balance"` // FCFA
}
