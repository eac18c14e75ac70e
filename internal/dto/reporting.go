package dto

import (
	"time"

	"github.com/matagroup/mata_gestion_app/internal/core/domain"
)

// BalanceResponse is returned by the balance endpoints.
type BalanceResponse struct {
	AccountID        string `json:"accountID"`
	Balance          int64  `json:"balance"`
	BalanceFormatted string `json:"balanceFormatted"`
	AsOf             string `json:"asOf,omitempty"`
}

// ActivityResponse is the period activity of one account.
type ActivityResponse struct {
	AccountID string                 `json:"accountID"`
	StartDate string                 `json:"startDate"`
	EndDate   string                 `json:"endDate"`
	Activity  domain.ActivitySummary `json:"activity"`
}

// TotalCashResponse is the "cash disponible" dashboard figure.
type TotalCashResponse struct {
	TotalCash          int64  `json:"totalCash"`
	TotalCashFormatted string `json:"totalCashFormatted"`
	AsOf               string `json:"asOf,omitempty"`
}

// SyncResponse reports a single-account synchronization.
type SyncResponse struct {
	AccountID  string `json:"accountID"`
	NewBalance int64  `json:"newBalance"`
}

// PLResponse wraps the PL derivation for the dashboard.
type PLResponse struct {
	Month        string             `json:"month"`
	SnapshotDate string             `json:"snapshotDate"`
	PLBrut       int64              `json:"plBrut"`
	PLFinal      int64              `json:"plFinal"`
	Breakdown    domain.PLBreakdown `json:"breakdown"`
}

// ToPLResponse converts a domain.PLResult to its DTO.
func ToPLResponse(r *domain.PLResult) PLResponse {
	return PLResponse{
		Month:        r.Month,
		SnapshotDate: r.SnapshotDate.Format("2006-01-02"),
		PLBrut:       r.PLBrut,
		PLFinal:      r.PLFinal,
		Breakdown:    r.Breakdown,
	}
}

// UpsertStockVivantRequest inserts or replaces a stock vivant line.
type UpsertStockVivantRequest struct {
	DateStock    string `json:"dateStock" binding:"required,datetime=2006-01-02"`
	Categorie    string `json:"categorie" binding:"required"`
	Produit      string `json:"produit" binding:"required"`
	Quantite     int64  `json:"quantite" binding:"required,gte=0"`
	PrixUnitaire int64  `json:"prixUnitaire" binding:"required,gte=0"`
	// Total defaults to Quantite × PrixUnitaire when omitted; an explicit
	// value overrides it (copy-then-adjust workflow).
	Total       *int64 `json:"total"`
	Commentaire string `json:"commentaire"`
}

// CopyStockVivantRequest duplicates the lines of one date under another.
type CopyStockVivantRequest struct {
	FromDate string `json:"fromDate" binding:"required,datetime=2006-01-02"`
	ToDate   string `json:"toDate" binding:"required,datetime=2006-01-02"`
}

// CreateStockSoirRequest records an evening point-of-sale stock snapshot.
type CreateStockSoirRequest struct {
	Date         string `json:"date" binding:"required,datetime=2006-01-02"`
	PointDeVente string `json:"pointDeVente" binding:"required"`
	Montant      int64  `json:"montant" binding:"gte=0"`
}

// UpsertCashBictorysRequest inserts or replaces a daily cash snapshot.
type UpsertCashBictorysRequest struct {
	Date   string `json:"date" binding:"required,datetime=2006-01-02"`
	Amount int64  `json:"amount"`
}

// UpdateSettingsRequest edits the financial settings.
type UpdateSettingsRequest struct {
	ValidateExpenseBalance *bool  `json:"validateExpenseBalance"`
	ChargesFixesEstimation *int64 `json:"chargesFixesEstimation" binding:"omitempty,gte=0"`
}

// ParseDate parses the YYYY-MM-DD wire format used by business dates.
func ParseDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}
