package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/matagroup/mata_gestion_app/internal/apperrors"
	"github.com/matagroup/mata_gestion_app/internal/core/domain"
	portsrepo "github.com/matagroup/mata_gestion_app/internal/core/ports/repositories"
	"github.com/matagroup/mata_gestion_app/internal/models"
)

type PgxTransferRepository struct {
	BaseRepository
}

func newPgxTransferRepository(pool *pgxpool.Pool) portsrepo.TransferRepository {
	return &PgxTransferRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.TransferRepository = (*PgxTransferRepository)(nil)

func toDomainTransfer(m models.Transfer) domain.Transfer {
	return domain.Transfer{
		TransferID:    m.TransferID,
		SourceID:      m.SourceID,
		DestinationID: m.DestinationID,
		Montant:       m.Montant,
		TransferredBy: m.TransferredBy,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

// SaveTransfer inserts a transfer_history row inside tx.
func (r *PgxTransferRepository) SaveTransfer(ctx context.Context, tx pgx.Tx, transfer domain.Transfer) error {
	query := `
		INSERT INTO transfer_history (transfer_id, source_id, destination_id, montant, transferred_by, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.q(tx).Exec(ctx, query,
		transfer.TransferID,
		transfer.SourceID,
		transfer.DestinationID,
		transfer.Montant,
		transfer.TransferredBy,
		transfer.CreatedAt,
		transfer.CreatedBy,
		transfer.LastUpdatedAt,
		transfer.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: transfer %s already exists", apperrors.ErrDuplicate, transfer.TransferID)
		}
		return fmt.Errorf("failed to save transfer %s: %w", transfer.TransferID, err)
	}
	return nil
}

// FindTransferByID retrieves a transfer by its ID.
func (r *PgxTransferRepository) FindTransferByID(ctx context.Context, transferID string) (*domain.Transfer, error) {
	query := `
		SELECT transfer_id, source_id, destination_id, montant, transferred_by, created_at, created_by, last_updated_at, last_updated_by
		FROM transfer_history
		WHERE transfer_id = $1;
	`
	var m models.Transfer
	err := r.Pool.QueryRow(ctx, query, transferID).Scan(
		&m.TransferID, &m.SourceID, &m.DestinationID, &m.Montant, &m.TransferredBy,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transfer %s: %w", transferID, err)
	}
	d := toDomainTransfer(m)
	return &d, nil
}

// DeleteTransfer removes a transfer row inside tx.
func (r *PgxTransferRepository) DeleteTransfer(ctx context.Context, tx pgx.Tx, transferID string) error {
	tag, err := r.q(tx).Exec(ctx, `DELETE FROM transfer_history WHERE transfer_id = $1;`, transferID)
	if err != nil {
		return fmt.Errorf("failed to delete transfer %s: %w", transferID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// ListTransfersByAccount retrieves transfers touching the account, newest
// first.
func (r *PgxTransferRepository) ListTransfersByAccount(ctx context.Context, accountID string, limit, offset int) ([]domain.Transfer, error) {
	query := `
		SELECT transfer_id, source_id, destination_id, montant, transferred_by, created_at, created_by, last_updated_at, last_updated_by
		FROM transfer_history
		WHERE source_id = $1 OR destination_id = $1
		ORDER BY created_at DESC, transfer_id DESC
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.Pool.Query(ctx, query, accountID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list transfers for account %s: %w", accountID, err)
	}
	defer rows.Close()

	var transfers []domain.Transfer
	for rows.Next() {
		var m models.Transfer
		if err := rows.Scan(
			&m.TransferID, &m.SourceID, &m.DestinationID, &m.Montant, &m.TransferredBy,
			&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan transfer row: %w", err)
		}
		transfers = append(transfers, toDomainTransfer(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transfer rows: %w", err)
	}
	return transfers, nil
}
