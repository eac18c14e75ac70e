package domain

import "time"

// ValidationStatus is the lifecycle of a partner delivery.
type ValidationStatus string

const (
	DeliveryPending        ValidationStatus = "pending"
	DeliveryFullyValidated ValidationStatus = "fully_validated"
	DeliveryRejected       ValidationStatus = "rejected"
)

// PartnerDelivery is a delivery against a partenaire account. Only fully
// validated deliveries subtract from the account's credited total; pending and
// rejected deliveries never affect the balance. Amount is stored independently
// of ArticleCount × UnitPrice and is consistency-checked on write.
type PartnerDelivery struct {
	DeliveryID       string           `json:"deliveryID"`
	AccountID        string           `json:"accountID"`
	DeliveryDate     time.Time        `json:"deliveryDate"`
	ArticleCount     int64            `json:"articleCount"`
	UnitPrice        int64            `json:"unitPrice"` // FCFA
	Amount           int64            `json:"amount"`    // FCFA, must equal ArticleCount × UnitPrice
	ValidationStatus ValidationStatus `json:"validationStatus"`
	IsValidated      bool             `json:"isValidated"`
	AuditFields
}
