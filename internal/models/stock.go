package models

import "time"

// StockVivant represents a row of the stock_vivant table. total is stored
// independently of quantite * prix_unitaire so copied snapshots can be
// adjusted line by line.
type StockVivant struct {
	EntryID      string    `db:"entry_id"`
	DateStock    time.Time `db:"date_stock"`
	Categorie    string    `db:"categorie"`
	Produit      string    `db:"produit"`
	Quantite     int64     `db:"quantite"`
	PrixUnitaire int64     `db:"prix_unitaire"`
	Total        int64     `db:"total"`
	Commentaire  string    `db:"commentaire"`
	AuditFields
}

// StockSoir represents a row of the stock_soir table.
type StockSoir struct {
	EntryID      string    `db:"entry_id"`
	Date         time.Time `db:"date"`
	PointDeVente string    `db:"point_de_vente"`
	Montant      int64     `db:"montant"`
	AuditFields
}
