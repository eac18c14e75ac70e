package pgsql

import (
	"context"
	"database/sql"
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

type PgxAccountRepository struct {
	BaseRepository
}

func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepository {
	return &PgxAccountRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.AccountRepository = (*PgxAccountRepository)(nil)

func toModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID:          d.AccountID,
		AccountName:        d.AccountName,
		AccountType:        models.AccountType(d.AccountType),
		CurrentBalance:     d.CurrentBalance,
		TotalCredited:      d.TotalCredited,
		TotalSpent:         d.TotalSpent,
		IsActive:           d.IsActive,
		UserID:             d.UserID,
		CategoryType:       d.CategoryType,
		PartnerDirectorIDs: d.PartnerDirectorIDs,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
	}
}

func toDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:          m.AccountID,
		AccountName:        m.AccountName,
		AccountType:        domain.AccountType(m.AccountType),
		CurrentBalance:     m.CurrentBalance,
		TotalCredited:      m.TotalCredited,
		TotalSpent:         m.TotalSpent,
		IsActive:           m.IsActive,
		UserID:             m.UserID,
		CategoryType:       m.CategoryType,
		PartnerDirectorIDs: m.PartnerDirectorIDs,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

const accountColumns = `account_id, account_name, account_type, current_balance, total_credited, total_spent, is_active, user_id, category_type, partner_director_ids, created_at, created_by, last_updated_at, last_updated_by`

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var m models.Account
	var userID, categoryType sql.NullString
	err := row.Scan(
		&m.AccountID,
		&m.AccountName,
		&m.AccountType,
		&m.CurrentBalance,
		&m.TotalCredited,
		&m.TotalSpent,
		&m.IsActive,
		&userID,
		&categoryType,
		&m.PartnerDirectorIDs,
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
	m.UserID = userID.String
	m.CategoryType = categoryType.String
	d := toDomainAccount(m)
	return &d, nil
}

// SaveAccount inserts a new account row.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	m := toModelAccount(account)

	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	var userID sql.NullString
	if m.UserID != "" {
		userID = sql.NullString{String: m.UserID, Valid: true}
	}
	var categoryType sql.NullString
	if m.CategoryType != "" {
		categoryType = sql.NullString{String: m.CategoryType, Valid: true}
	}

	_, err := r.Pool.Exec(ctx, query,
		m.AccountID,
		m.AccountName,
		m.AccountType,
		m.CurrentBalance,
		m.TotalCredited,
		m.TotalSpent,
		m.IsActive,
		userID,
		categoryType,
		m.PartnerDirectorIDs,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: account named %q already exists", apperrors.ErrDuplicate, m.AccountName)
		}
		return fmt.Errorf("failed to save account %s: %w", m.AccountID, err)
	}
	return nil
}

// FindAccountByID retrieves an account by its ID.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = $1;`
	account, err := scanAccount(r.Pool.QueryRow(ctx, query, accountID))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to find account by ID %s: %w", accountID, err)
	}
	return account, nil
}

// FindAccountByName retrieves an account by its unique name.
func (r *PgxAccountRepository) FindAccountByName(ctx context.Context, accountName string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_name = $1;`
	account, err := scanAccount(r.Pool.QueryRow(ctx, query, accountName))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to find account by name %q: %w", accountName, err)
	}
	return account, nil
}

// ListAccounts retrieves accounts ordered by name.
func (r *PgxAccountRepository) ListAccounts(ctx context.Context, onlyActive bool) ([]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts`
	if onlyActive {
		query += ` WHERE is_active = TRUE`
	}
	query += ` ORDER BY account_name;`

	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer rows.Close()

	var accounts []domain.Account
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", err)
		}
		accounts = append(accounts, *account)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account rows: %w", err)
	}
	return accounts, nil
}

// UpdateAccount persists the mutable descriptive fields of an account. The
// derived balance columns are deliberately not touched here.
func (r *PgxAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	query := `
		UPDATE accounts
		SET account_name = $2, account_type = $3, user_id = $4, category_type = $5,
		    partner_director_ids = $6, last_updated_at = $7, last_updated_by = $8
		WHERE account_id = $1;
	`
	var userID sql.NullString
	if account.UserID != "" {
		userID = sql.NullString{String: account.UserID, Valid: true}
	}
	var categoryType sql.NullString
	if account.CategoryType != "" {
		categoryType = sql.NullString{String: account.CategoryType, Valid: true}
	}

	tag, err := r.Pool.Exec(ctx, query,
		account.AccountID,
		account.AccountName,
		string(account.AccountType),
		userID,
		categoryType,
		account.PartnerDirectorIDs,
		account.LastUpdatedAt,
		account.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: account named %q already exists", apperrors.ErrDuplicate, account.AccountName)
		}
		return fmt.Errorf("failed to update account %s: %w", account.AccountID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeactivateAccount soft-deletes an account.
func (r *PgxAccountRepository) DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error {
	query := `
		UPDATE accounts
		SET is_active = FALSE, last_updated_at = $2, last_updated_by = $3
		WHERE account_id = $1 AND is_active = TRUE;
	`
	tag, err := r.Pool.Exec(ctx, query, accountID, now, userID)
	if err != nil {
		return fmt.Errorf("failed to deactivate account %s: %w", accountID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteAccount hard-deletes the account row.
func (r *PgxAccountRepository) DeleteAccount(ctx context.Context, accountID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM accounts WHERE account_id = $1;`, accountID)
	if err != nil {
		return fmt.Errorf("failed to delete account %s: %w", accountID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// LockAccount selects the account row FOR UPDATE inside tx.
func (r *PgxAccountRepository) LockAccount(ctx context.Context, tx pgx.Tx, accountID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = $1 FOR UPDATE;`
	account, err := scanAccount(tx.QueryRow(ctx, query, accountID))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to lock account %s: %w", accountID, err)
	}
	return account, nil
}

// UpdateDerivedTotals writes the synchronizer's output inside tx.
func (r *PgxAccountRepository) UpdateDerivedTotals(ctx context.Context, tx pgx.Tx, accountID string, balance, credited, spent int64, userID string, now time.Time) error {
	query := `
		UPDATE accounts
		SET current_balance = $2, total_credited = $3, total_spent = $4,
		    last_updated_at = $5, last_updated_by = $6
		WHERE account_id = $1;
	`
	tag, err := tx.Exec(ctx, query, accountID, balance, credited, spent, now, userID)
	if err != nil {
		return fmt.Errorf("failed to update derived totals for account %s: %w", accountID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
