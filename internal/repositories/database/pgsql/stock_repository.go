package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/matagroup/mata_gestion_app/internal/apperrors"
	"github.com/matagroup/mata_gestion_app/internal/core/domain"
	portsrepo "github.com/matagroup/mata_gestion_app/internal/core/ports/repositories"
	"github.com/matagroup/mata_gestion_app/internal/models"
)

type PgxStockVivantRepository struct {
	BaseRepository
}

func newPgxStockVivantRepository(pool *pgxpool.Pool) portsrepo.StockVivantRepository {
	return &PgxStockVivantRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.StockVivantRepository = (*PgxStockVivantRepository)(nil)

func toDomainStockVivant(m models.StockVivant) domain.StockVivant {
	return domain.StockVivant{
		EntryID:      m.EntryID,
		DateStock:    m.DateStock,
		Categorie:    m.Categorie,
		Produit:      m.Produit,
		Quantite:     m.Quantite,
		PrixUnitaire: m.PrixUnitaire,
		Total:        m.Total,
		Commentaire:  m.Commentaire,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

const stockVivantColumns = `entry_id, date_stock, categorie, produit, quantite, prix_unitaire, total, commentaire, created_at, created_by, last_updated_at, last_updated_by`

// UpsertEntry inserts or replaces the line identified by
// (date_stock, categorie, produit).
func (r *PgxStockVivantRepository) UpsertEntry(ctx context.Context, entry domain.StockVivant) error {
	query := `
		INSERT INTO stock_vivant (` + stockVivantColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (date_stock, categorie, produit) DO UPDATE
		SET quantite = EXCLUDED.quantite, prix_unitaire = EXCLUDED.prix_unitaire,
		    total = EXCLUDED.total, commentaire = EXCLUDED.commentaire,
		    last_updated_at = EXCLUDED.last_updated_at, last_updated_by = EXCLUDED.last_updated_by;
	`
	_, err := r.Pool.Exec(ctx, query,
		entry.EntryID,
		entry.DateStock,
		entry.Categorie,
		entry.Produit,
		entry.Quantite,
		entry.PrixUnitaire,
		entry.Total,
		nullable(entry.Commentaire),
		entry.CreatedAt,
		entry.CreatedBy,
		entry.LastUpdatedAt,
		entry.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert stock vivant entry for %s/%s: %w", entry.Categorie, entry.Produit, err)
	}
	return nil
}

// FindEntryByID retrieves a stock vivant line by its ID.
func (r *PgxStockVivantRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.StockVivant, error) {
	query := `SELECT ` + stockVivantColumns + ` FROM stock_vivant WHERE entry_id = $1;`
	var m models.StockVivant
	var commentaire sql.NullString
	err := r.Pool.QueryRow(ctx, query, entryID).Scan(
		&m.EntryID, &m.DateStock, &m.Categorie, &m.Produit, &m.Quantite,
		&m.PrixUnitaire, &m.Total, &commentaire,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find stock vivant entry %s: %w", entryID, err)
	}
	m.Commentaire = commentaire.String
	d := toDomainStockVivant(m)
	return &d, nil
}

// DeleteEntry removes a stock vivant line.
func (r *PgxStockVivantRepository) DeleteEntry(ctx context.Context, entryID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM stock_vivant WHERE entry_id = $1;`, entryID)
	if err != nil {
		return fmt.Errorf("failed to delete stock vivant entry %s: %w", entryID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// ListByDate retrieves every line of a snapshot date.
func (r *PgxStockVivantRepository) ListByDate(ctx context.Context, dateStock time.Time) ([]domain.StockVivant, error) {
	query := `
		SELECT ` + stockVivantColumns + `
		FROM stock_vivant
		WHERE date_stock = $1::date
		ORDER BY categorie, produit;
	`
	rows, err := r.Pool.Query(ctx, query, dateStock)
	if err != nil {
		return nil, fmt.Errorf("failed to list stock vivant entries for %s: %w", dateStock.Format("2006-01-02"), err)
	}
	defer rows.Close()

	var entries []domain.StockVivant
	for rows.Next() {
		var m models.StockVivant
		var commentaire sql.NullString
		if err := rows.Scan(
			&m.EntryID, &m.DateStock, &m.Categorie, &m.Produit, &m.Quantite,
			&m.PrixUnitaire, &m.Total, &commentaire,
			&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan stock vivant row: %w", err)
		}
		m.Commentaire = commentaire.String
		entries = append(entries, toDomainStockVivant(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating stock vivant rows: %w", err)
	}
	return entries, nil
}

// DistinctDates retrieves the most recent snapshot dates.
func (r *PgxStockVivantRepository) DistinctDates(ctx context.Context, limit int) ([]time.Time, error) {
	query := `
		SELECT DISTINCT date_stock
		FROM stock_vivant
		ORDER BY date_stock DESC
		LIMIT $1;
	`
	rows, err := r.Pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list stock vivant dates: %w", err)
	}
	defer rows.Close()

	var dates []time.Time
	for rows.Next() {
		var d time.Time
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("failed to scan stock vivant date: %w", err)
		}
		dates = append(dates, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating stock vivant dates: %w", err)
	}
	return dates, nil
}

// CopyEntries duplicates every line from fromDate under toDate. Existing
// lines under toDate with the same (categorie, produit) are replaced.
func (r *PgxStockVivantRepository) CopyEntries(ctx context.Context, fromDate, toDate time.Time, userID string, now time.Time) (int, error) {
	query := `
		INSERT INTO stock_vivant (` + stockVivantColumns + `)
		SELECT $3 || '-' || entry_id, $2::date, categorie, produit, quantite, prix_unitaire, total, commentaire, $4, $5, $4, $5
		FROM stock_vivant
		WHERE date_stock = $1::date
		ON CONFLICT (date_stock, categorie, produit) DO UPDATE
		SET quantite = EXCLUDED.quantite, prix_unitaire = EXCLUDED.prix_unitaire,
		    total = EXCLUDED.total, commentaire = EXCLUDED.commentaire,
		    last_updated_at = EXCLUDED.last_updated_at, last_updated_by = EXCLUDED.last_updated_by;
	`
	tag, err := r.Pool.Exec(ctx, query, fromDate, toDate, uuid.NewString()[:8], now, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to copy stock vivant entries from %s to %s: %w",
			fromDate.Format("2006-01-02"), toDate.Format("2006-01-02"), err)
	}
	return int(tag.RowsAffected()), nil
}

// TotalAt sums the stored line totals of a snapshot date.
func (r *PgxStockVivantRepository) TotalAt(ctx context.Context, dateStock time.Time) (int64, error) {
	var total int64
	query := `SELECT COALESCE(SUM(total), 0) FROM stock_vivant WHERE date_stock = $1::date;`
	if err := r.Pool.QueryRow(ctx, query, dateStock).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to total stock vivant at %s: %w", dateStock.Format("2006-01-02"), err)
	}
	return total, nil
}

type PgxStockSoirRepository struct {
	BaseRepository
}

func newPgxStockSoirRepository(pool *pgxpool.Pool) portsrepo.StockSoirRepository {
	return &PgxStockSoirRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.StockSoirRepository = (*PgxStockSoirRepository)(nil)

// SaveEntry inserts an evening stock snapshot row.
func (r *PgxStockSoirRepository) SaveEntry(ctx context.Context, entry domain.StockSoir) error {
	query := `
		INSERT INTO stock_soir (entry_id, date, point_de_vente, montant, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.Pool.Exec(ctx, query,
		entry.EntryID,
		entry.Date,
		entry.PointDeVente,
		entry.Montant,
		entry.CreatedAt,
		entry.CreatedBy,
		entry.LastUpdatedAt,
		entry.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: stock soir entry %s already exists", apperrors.ErrDuplicate, entry.EntryID)
		}
		return fmt.Errorf("failed to save stock soir entry %s: %w", entry.EntryID, err)
	}
	return nil
}

// ListBetween retrieves snapshots with date in [from, to], newest first.
func (r *PgxStockSoirRepository) ListBetween(ctx context.Context, from, to time.Time) ([]domain.StockSoir, error) {
	query := `
		SELECT entry_id, date, point_de_vente, montant, created_at, created_by, last_updated_at, last_updated_by
		FROM stock_soir
		WHERE date >= $1::date AND date <= $2::date
		ORDER BY date DESC;
	`
	rows, err := r.Pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list stock soir entries: %w", err)
	}
	defer rows.Close()

	var entries []domain.StockSoir
	for rows.Next() {
		var m models.StockSoir
		if err := rows.Scan(
			&m.EntryID, &m.Date, &m.PointDeVente, &m.Montant,
			&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan stock soir row: %w", err)
		}
		entries = append(entries, domain.StockSoir{
			EntryID:      m.EntryID,
			Date:         m.Date,
			PointDeVente: m.PointDeVente,
			Montant:      m.Montant,
			AuditFields: domain.AuditFields{
				CreatedAt:     m.CreatedAt,
				CreatedBy:     m.CreatedBy,
				LastUpdatedAt: m.LastUpdatedAt,
				LastUpdatedBy: m.LastUpdatedBy,
			},
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating stock soir rows: %w", err)
	}
	return entries, nil
}
