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

type PgxCreditRepository struct {
	BaseRepository
}

func newPgxCreditRepository(pool *pgxpool.Pool) portsrepo.CreditRepository {
	return &PgxCreditRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.CreditRepository = (*PgxCreditRepository)(nil)

func toDomainCredit(m models.Credit) domain.Credit {
	return domain.Credit{
		CreditID:    m.CreditID,
		Seq:         m.Seq,
		AccountID:   m.AccountID,
		Amount:      m.Amount,
		Description: m.Description,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

// SaveCredit inserts a credit_history row inside tx.
func (r *PgxCreditRepository) SaveCredit(ctx context.Context, tx pgx.Tx, credit domain.Credit) error {
	query := `
		INSERT INTO credit_history (credit_id, account_id, amount, description, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.q(tx).Exec(ctx, query,
		credit.CreditID,
		credit.AccountID,
		credit.Amount,
		credit.Description,
		credit.CreatedAt,
		credit.CreatedBy,
		credit.LastUpdatedAt,
		credit.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: credit %s already exists", apperrors.ErrDuplicate, credit.CreditID)
		}
		return fmt.Errorf("failed to save credit %s: %w", credit.CreditID, err)
	}
	return nil
}

// FindCreditByID retrieves a credit by its ID.
func (r *PgxCreditRepository) FindCreditByID(ctx context.Context, creditID string) (*domain.Credit, error) {
	query := `
		SELECT credit_id, seq, account_id, amount, description, created_at, created_by, last_updated_at, last_updated_by
		FROM credit_history
		WHERE credit_id = $1;
	`
	var m models.Credit
	err := r.Pool.QueryRow(ctx, query, creditID).Scan(
		&m.CreditID, &m.Seq, &m.AccountID, &m.Amount, &m.Description,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find credit %s: %w", creditID, err)
	}
	d := toDomainCredit(m)
	return &d, nil
}

// DeleteCredit removes a credit row inside tx.
func (r *PgxCreditRepository) DeleteCredit(ctx context.Context, tx pgx.Tx, creditID string) error {
	tag, err := r.q(tx).Exec(ctx, `DELETE FROM credit_history WHERE credit_id = $1;`, creditID)
	if err != nil {
		return fmt.Errorf("failed to delete credit %s: %w", creditID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// ListCreditsByAccount retrieves credits newest first, insertion order
// breaking created_at ties.
func (r *PgxCreditRepository) ListCreditsByAccount(ctx context.Context, accountID string, limit, offset int) ([]domain.Credit, error) {
	query := `
		SELECT credit_id, seq, account_id, amount, description, created_at, created_by, last_updated_at, last_updated_by
		FROM credit_history
		WHERE account_id = $1
		ORDER BY created_at DESC, seq DESC
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.Pool.Query(ctx, query, accountID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list credits for account %s: %w", accountID, err)
	}
	defer rows.Close()

	var credits []domain.Credit
	for rows.Next() {
		var m models.Credit
		if err := rows.Scan(
			&m.CreditID, &m.Seq, &m.AccountID, &m.Amount, &m.Description,
			&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan credit row: %w", err)
		}
		credits = append(credits, toDomainCredit(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating credit rows: %w", err)
	}
	return credits, nil
}
