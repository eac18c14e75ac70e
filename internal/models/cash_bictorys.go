package models

import "time"

// CashBictorys represents a row of the cash_bictorys table. date carries a
// unique constraint; upserts replace the amount for the day.
type CashBictorys struct {
	EntryID   string    `db:"entry_id"`
	Date      time.Time `db:"date"`
	Amount    int64     `db:"amount"`
	MonthYear string    `db:"month_year"`
	AuditFields
}
