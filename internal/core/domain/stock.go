package domain

import "time"

// StockVivant is a live-inventory valuation line for a given snapshot date.
// Total is stored and editable independently of Quantite × PrixUnitaire: the
// "copy a previous date then adjust" workflow is supported.
type StockVivant struct {
	EntryID      string    `json:"entryID"`
	DateStock    time.Time `json:"dateStock"`
	Categorie    string    `json:"categorie"`
	Produit      string    `json:"produit"`
	Quantite     int64     `json:"quantite"`
	PrixUnitaire int64     `json:"prixUnitaire"` // FCFA
	Total        int64     `json:"total"`        // FCFA
	Commentaire  string    `json:"commentaire,omitempty"`
	AuditFields
}

// StockSoir is an evening point-of-sale stock snapshot consumed by the PL
// calculator (latest value in the period).
type StockSoir struct {
	EntryID     string    `json:"entryID"`
	Date        time.Time `json:"date"`
	PointDeVente string   `json:"pointDeVente"`
	Montant     int64     `json:"montant"` // FCFA
	AuditFields
}
