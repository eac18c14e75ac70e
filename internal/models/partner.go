package models

import "time"

// PartnerDelivery represents a row of the partner_deliveries table.
// validation_status drives balance impact; is_validated is kept aligned with
// it for older consumers.
type PartnerDelivery struct {
	DeliveryID       string    `db:"delivery_id"`
	AccountID        string    `db:"account_id"`
	DeliveryDate     time.Time `db:"delivery_date"`
	ArticleCount     int64     `db:"article_count"`
	UnitPrice        int64     `db:"unit_price"`
	Amount           int64     `db:"amount"`
	ValidationStatus string    `db:"validation_status"`
	IsValidated      bool      `db:"is_validated"`
	AuditFields
}
