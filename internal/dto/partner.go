package dto

import (
	"time"

	"github.com/matagroup/mata_gestion_app/internal/core/domain"
)

// CreateDeliveryRequest records a partner delivery. Amount is stored
// independently of ArticleCount × UnitPrice but the two must agree.
type CreateDeliveryRequest struct {
	AccountID    string `json:"accountID" binding:"required"`
	DeliveryDate string `json:"deliveryDate" binding:"required,datetime=2006-01-02"`
	ArticleCount int64  `json:"articleCount" binding:"required,gt=0"`
	UnitPrice    int64  `json:"unitPrice" binding:"required,gt=0"`
	Amount       int64  `json:"amount" binding:"required,gt=0"`
}

// DeliveryResponse mirrors domain.PartnerDelivery.
type DeliveryResponse struct {
	DeliveryID       string                  `json:"deliveryID"`
	AccountID        string                  `json:"accountID"`
	DeliveryDate     string                  `json:"deliveryDate"`
	ArticleCount     int64                   `json:"articleCount"`
	UnitPrice        int64                   `json:"unitPrice"`
	Amount           int64                   `json:"amount"`
	ValidationStatus domain.ValidationStatus `json:"validationStatus"`
	IsValidated      bool                    `json:"isValidated"`
	CreatedAt        time.Time               `json:"createdAt"`
}

// ToDeliveryResponse converts a domain.PartnerDelivery to its DTO.
func ToDeliveryResponse(d *domain.PartnerDelivery) DeliveryResponse {
	return DeliveryResponse{
		DeliveryID:       d.DeliveryID,
		AccountID:        d.AccountID,
		DeliveryDate:     d.DeliveryDate.Format("2006-01-02"),
		ArticleCount:     d.ArticleCount,
		UnitPrice:        d.UnitPrice,
		Amount:           d.Amount,
		ValidationStatus: d.ValidationStatus,
		IsValidated:      d.IsValidated,
		CreatedAt:        d.CreatedAt,
	}
}

// CreateCreanceClientRequest registers a client ledger under a creance account.
type CreateCreanceClientRequest struct {
	AccountID     string `json:"accountID" binding:"required"`
	ClientName    string `json:"clientName" binding:"required"`
	ClientPhone   string `json:"clientPhone"`
	ClientAddress string `json:"clientAddress"`
	InitialCredit int64  `json:"initialCredit"`
}

// UpdateCreanceClientRequest edits a client ledger.
type UpdateCreanceClientRequest struct {
	ClientName    *string `json:"clientName"`
	ClientPhone   *string `json:"clientPhone"`
	ClientAddress *string `json:"clientAddress"`
}

// CreateCreanceOperationRequest records a movement on a client ledger. Amount
// is always positive; the direction comes from OperationType.
type CreateCreanceOperationRequest struct {
	ClientID      string               `json:"clientID" binding:"required"`
	OperationType domain.OperationType `json:"operationType" binding:"required,oneof=credit debit"`
	Amount        int64                `json:"amount" binding:"required,gt=0"`
	OperationDate string               `json:"operationDate" binding:"required,datetime=2006-01-02"`
	Description   string               `json:"description"`
}

// CreanceClientResponse mirrors domain.CreanceClient plus its computed balance.
type CreanceClientResponse struct {
	ClientID      string `json:"clientID"`
	AccountID     string `json:"accountID"`
	ClientName    string `json:"clientName"`
	ClientPhone   string `json:"clientPhone,omitempty"`
	ClientAddress string `json:"clientAddress,omitempty"`
	InitialCredit int64  `json:"initialCredit"`
	Balance       int64  `json:"balance"`
	IsActive      bool   `json:"isActive"`
}
