package dto

import (
	"time"

	"github.com/matagroup/mata_gestion_app/internal/core/domain"
	"github.com/matagroup/mata_gestion_app/internal/utils"
)

// CreateAccountRequest defines the data needed to create a new account.
// Account creation is an administrator action.
type CreateAccountRequest struct {
	AccountName        string             `json:"accountName" binding:"required"`
	AccountType        domain.AccountType `json:"accountType" binding:"required,oneof=classique statut partenaire creance depot ajustement fournisseur"`
	UserID             string             `json:"userID"`       // owning director, optional
	CategoryType       string             `json:"categoryType"` // optional
	PartnerDirectorIDs []string           `json:"partnerDirectorIDs"`
}

// UpdateAccountRequest defines the fields that may change after creation.
// Pointers distinguish "not provided" from zero values.
type UpdateAccountRequest struct {
	AccountName  *string `json:"accountName"`
	CategoryType *string `json:"categoryType"`
	UserID       *string `json:"userID"`
}

// AccountResponse mirrors domain.Account for API consumers.
type AccountResponse struct {
	AccountID          string             `json:"accountID"`
	AccountName        string             `json:"accountName"`
	AccountType        domain.AccountType `json:"accountType"`
	CurrentBalance     int64              `json:"currentBalance"`
	CurrentBalanceFmt  string             `json:"currentBalanceFormatted"`
	TotalCredited      int64              `json:"totalCredited"`
	TotalSpent         int64              `json:"totalSpent"`
	IsActive           bool               `json:"isActive"`
	UserID             string             `json:"userID,omitempty"`
	CategoryType       string             `json:"categoryType,omitempty"`
	PartnerDirectorIDs []string           `json:"partnerDirectorIDs,omitempty"`
	CreatedAt          time.Time          `json:"createdAt"`
	CreatedBy          string             `json:"createdBy"`
	LastUpdatedAt      time.Time          `json:"lastUpdatedAt"`
	LastUpdatedBy      string             `json:"lastUpdatedBy"`
}

// ListAccountsResponse wraps the list of accounts.
type ListAccountsResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}

// ToAccountResponse converts a domain.Account to its DTO.
func ToAccountResponse(a *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:          a.AccountID,
		AccountName:        a.AccountName,
		AccountType:        a.AccountType,
		CurrentBalance:     a.CurrentBalance,
		CurrentBalanceFmt:  utils.FormatFCFA(a.CurrentBalance),
		TotalCredited:      a.TotalCredited,
		TotalSpent:         a.TotalSpent,
		IsActive:           a.IsActive,
		UserID:             a.UserID,
		CategoryType:       a.CategoryType,
		PartnerDirectorIDs: a.PartnerDirectorIDs,
		CreatedAt:          a.CreatedAt,
		CreatedBy:          a.CreatedBy,
		LastUpdatedAt:      a.LastUpdatedAt,
		LastUpdatedBy:      a.LastUpdatedBy,
	}
}

// ToAccountResponses converts a slice of accounts.
func ToAccountResponses(accounts []domain.Account) []AccountResponse {
	out := make([]AccountResponse, 0, len(accounts))
	for i := range accounts {
		out = append(out, ToAccountResponse(&accounts[i]))
	}
	return out
}
