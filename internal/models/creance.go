package models

import "time"

// CreanceClient represents a row of the creance_clients table.
type CreanceClient struct {
	ClientID      string `db:"client_id"`
	AccountID     string `db:"account_id"`
	ClientName    string `db:"client_name"`
	ClientPhone   string `db:"client_phone"`
	ClientAddress string `db:"client_address"`
	InitialCredit int64  `db:"initial_credit"`
	IsActive      bool   `db:"is_active"`
	AuditFields
}

// CreanceOperation represents a row of the creance_operations table. Amount
// is stored positive; operation_type carries the sign.
type CreanceOperation struct {
	OperationID   string    `db:"operation_id"`
	AccountID     string    `db:"account_id"`
	ClientID      string    `db:"client_id"`
	OperationType string    `db:"operation_type"`
	Amount        int64     `db:"amount"`
	OperationDate time.Time `db:"operation_date"`
	Description   string    `db:"description"`
	AuditFields
}
