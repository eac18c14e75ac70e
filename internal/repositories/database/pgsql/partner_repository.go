package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/matagroup/mata_gestion_app/internal/apperrors"
	"github.com/matagroup/mata_gestion_app/internal/core/domain"
	portsrepo "github.com/matagroup/mata_gestion_app/internal/core/ports/repositories"
	"github.com/matagroup/mata_gestion_app/internal/models"
)

type PgxPartnerRepository struct {
	BaseRepository
}

func newPgxPartnerRepository(pool *pgxpool.Pool) portsrepo.PartnerRepository {
	return &PgxPartnerRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.PartnerRepository = (*PgxPartnerRepository)(nil)

func toDomainDelivery(m models.PartnerDelivery) domain.PartnerDelivery {
	return domain.PartnerDelivery{
		DeliveryID:       m.DeliveryID,
		AccountID:        m.AccountID,
		DeliveryDate:     m.DeliveryDate,
		ArticleCount:     m.ArticleCount,
		UnitPrice:        m.UnitPrice,
		Amount:           m.Amount,
		ValidationStatus: domain.ValidationStatus(m.ValidationStatus),
		IsValidated:      m.IsValidated,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

const deliveryColumns = `delivery_id, account_id, delivery_date, article_count, unit_price, amount, validation_status, is_validated, created_at, created_by, last_updated_at, last_updated_by`

func scanDelivery(row pgx.Row) (*domain.PartnerDelivery, error) {
	var m models.PartnerDelivery
	err := row.Scan(
		&m.DeliveryID,
		&m.AccountID,
		&m.DeliveryDate,
		&m.ArticleCount,
		&m.UnitPrice,
		&m.Amount,
		&m.ValidationStatus,
		&m.IsValidated,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	d := toDomainDelivery(m)
	return &d, nil
}

// SaveDelivery inserts a partner delivery row inside tx.
func (r *PgxPartnerRepository) SaveDelivery(ctx context.Context, tx pgx.Tx, delivery domain.PartnerDelivery) error {
	query := `
		INSERT INTO partner_deliveries (` + deliveryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.q(tx).Exec(ctx, query,
		delivery.DeliveryID,
		delivery.AccountID,
		delivery.DeliveryDate,
		delivery.ArticleCount,
		delivery.UnitPrice,
		delivery.Amount,
		string(delivery.ValidationStatus),
		delivery.IsValidated,
		delivery.CreatedAt,
		delivery.CreatedBy,
		delivery.LastUpdatedAt,
		delivery.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: delivery %s already exists", apperrors.ErrDuplicate, delivery.DeliveryID)
		}
		return fmt.Errorf("failed to save delivery %s: %w", delivery.DeliveryID, err)
	}
	return nil
}

// FindDeliveryByID retrieves a delivery by its ID.
func (r *PgxPartnerRepository) FindDeliveryByID(ctx context.Context, deliveryID string) (*domain.PartnerDelivery, error) {
	query := `SELECT ` + deliveryColumns + ` FROM partner_deliveries WHERE delivery_id = $1;`
	delivery, err := scanDelivery(r.Pool.QueryRow(ctx, query, deliveryID))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to find delivery %s: %w", deliveryID, err)
	}
	return delivery, nil
}

// UpdateDeliveryStatus moves a delivery through its validation lifecycle.
// is_validated mirrors validation_status for older consumers.
func (r *PgxPartnerRepository) UpdateDeliveryStatus(ctx context.Context, tx pgx.Tx, deliveryID string, status domain.ValidationStatus, userID string, now time.Time) error {
	query := `
		UPDATE partner_deliveries
		SET validation_status = $2, is_validated = $3, last_updated_at = $4, last_updated_by = $5
		WHERE delivery_id = $1;
	`
	tag, err := r.q(tx).Exec(ctx, query,
		deliveryID,
		string(status),
		status == domain.DeliveryFullyValidated,
		now,
		userID,
	)
	if err != nil {
		return fmt.Errorf("failed to update status of delivery %s: %w", deliveryID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// ListDeliveriesByAccount retrieves every delivery of a partenaire account,
// newest delivery date first.
func (r *PgxPartnerRepository) ListDeliveriesByAccount(ctx context.Context, accountID string) ([]domain.PartnerDelivery, error) {
	query := `
		SELECT ` + deliveryColumns + `
		FROM partner_deliveries
		WHERE account_id = $1
		ORDER BY delivery_date DESC, created_at DESC;
	`
	rows, err := r.Pool.Query(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to list deliveries for account %s: %w", accountID, err)
	}
	defer rows.Close()

	var deliveries []domain.PartnerDelivery
	for rows.Next() {
		delivery, err := scanDelivery(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan delivery row: %w", err)
		}
		deliveries = append(deliveries, *delivery)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating delivery rows: %w", err)
	}
	return deliveries, nil
}
