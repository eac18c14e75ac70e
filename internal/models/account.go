package models

// AccountType mirrors the closed set of account types stored in the
// account_type column.
type AccountType string

// Account represents a row of the accounts table. current_balance,
// total_credited and total_spent are derived columns maintained by the
// balance synchronizer.
type Account struct {
	AccountID          string      `db:"account_id"`
	AccountName        string      `db:"account_name"` // unique
	AccountType        AccountType `db:"account_type"`
	CurrentBalance     int64       `db:"current_balance"`
	TotalCredited      int64       `db:"total_credited"`
	TotalSpent         int64       `db:"total_spent"`
	IsActive           bool        `db:"is_active"`
	UserID             string      `db:"user_id"` // nullable
	CategoryType       string      `db:"category_type"`
	PartnerDirectorIDs []string    `db:"partner_director_ids"` // text[]
	AuditFields
}
