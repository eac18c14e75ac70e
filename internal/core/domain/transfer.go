package domain

// Transfer moves a positive montant from one account to another. Both sides
// are applied in a single transaction; transfers never change the system-wide
// balance sum.
type Transfer struct {
	TransferID    string `json:"transferID"`
	SourceID      string `json:"sourceID"`
	DestinationID string `json:"destinationID"`
	Montant       int64  `json:"montant"` // positive FCFA
	TransferredBy string `json:"transferredBy"`
	AuditFields
}
