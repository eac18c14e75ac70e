package models

// Transfer represents a row of the transfer_history table.
type Transfer struct {
	TransferID    string `db:"transfer_id"`
	SourceID      string `db:"source_id"`
	DestinationID string `db:"destination_id"`
	Montant       int64  `db:"montant"`
	TransferredBy string `db:"transferred_by"`
	AuditFields
}
