package domain

// AccountType is the closed set of ledger account types. Each type selects a
// balance policy: which transaction streams count and how they aggregate.
type AccountType string

const (
	// TypeClassique is the default additive model: credits − expenses ± transfers.
	TypeClassique AccountType = "classique"
	// TypeStatut accounts are overwritten by the latest credit entry, not accumulated.
	TypeStatut AccountType = "statut"
	// TypePartenaire balances are credited total minus fully validated deliveries.
	TypePartenaire AccountType = "partenaire"
	// TypeCreance balances are the sum of per-client running balances.
	TypeCreance AccountType = "creance"
	// TypeDepot, TypeAjustement and TypeFournisseur follow the classique
	// additive model; depot, creance and fournisseur are excluded from the
	// "cash disponible" aggregate.
	TypeDepot       AccountType = "depot"
	TypeAjustement  AccountType = "ajustement"
	TypeFournisseur AccountType = "fournisseur"
)

// AllAccountTypes returns every known account type.
func AllAccountTypes() []AccountType {
	return []AccountType{
		TypeClassique, TypeStatut, TypePartenaire, TypeCreance,
		TypeDepot, TypeAjustement, TypeFournisseur,
	}
}

// Valid reports whether t is one of the known account types.
func (t AccountType) Valid() bool {
	switch t {
	case TypeClassique, TypeStatut, TypePartenaire, TypeCreance,
		TypeDepot, TypeAjustement, TypeFournisseur:
		return true
	}
	return false
}

// Account is a ledger account. CurrentBalance, TotalCredited and TotalSpent
// are derived fields: only the balance synchronizer writes them, and after a
// sync CurrentBalance must equal the net balance recomputed from the
// transaction streams.
type Account struct {
	AccountID          string      `json:"accountID"`
	AccountName        string      `json:"accountName"` // unique, also the audit-flux join key
	AccountType        AccountType `json:"accountType"`
	CurrentBalance     int64       `json:"currentBalance"` // FCFA, derived
	TotalCredited      int64       `json:"totalCredited"`  // FCFA, derived
	TotalSpent         int64       `json:"totalSpent"`     // FCFA, derived
	IsActive           bool        `json:"isActive"`
	UserID             string      `json:"userID,omitempty"`       // owning director, optional
	CategoryType       string      `json:"categoryType,omitempty"` // optional
	PartnerDirectorIDs []string    `json:"partnerDirectorIDs,omitempty"`
	AuditFields
}
