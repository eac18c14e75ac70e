package domain

import "time"

// PLBreakdown exposes every intermediate figure of the PL derivation so the
// dashboard can render the full decomposition. All values are FCFA integers.
type PLBreakdown struct {
	CashBictorys          int64 `json:"cashBictorys"`
	Creances              int64 `json:"creances"`
	StockPointDeVente     int64 `json:"stockPointDeVente"`
	CashBurn              int64 `json:"cashBurn"`
	PLSansStockCharges    int64 `json:"plSansStockCharges"`
	StockVivantVariation  int64 `json:"stockVivantVariation"`
	LivraisonsPartenaires int64 `json:"livraisonsPartenaires"`
	ChargesFixesEstimation int64 `json:"chargesFixesEstimation"`
	ChargesProrata        int64 `json:"chargesProrata"`
	JoursOuvrablesEcoules int   `json:"joursOuvrablesEcoules"`
	JoursOuvrablesTotal   int   `json:"joursOuvrablesTotal"`
}

// PLResult is the computed monthly profit & loss, before (brut) and after
// (final) subtracting pro-rated fixed charges.
type PLResult struct {
	Month        string      `json:"month"` // "2025-01"
	SnapshotDate time.Time   `json:"snapshotDate"`
	PLBrut       int64       `json:"plBrut"`
	PLFinal      int64       `json:"plFinal"`
	Breakdown    PLBreakdown `json:"breakdown"`
}
