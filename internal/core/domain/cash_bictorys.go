package domain

import "time"

// CashBictorys is a daily cash-position snapshot imported from the external
// payment system. One row per date. Consumers must take the latest entry not
// exceeding a cutoff, never a cumulative sum over the month.
type CashBictorys struct {
	EntryID   string    `json:"entryID"`
	Date      time.Time `json:"date"` // unique
	Amount    int64     `json:"amount"` // FCFA
	MonthYear string    `json:"monthYear"` // e.g. "2025-01"
	AuditFields
}
