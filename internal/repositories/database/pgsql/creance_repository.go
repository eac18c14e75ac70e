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

type PgxCreanceRepository struct {
	BaseRepository
}

func newPgxCreanceRepository(pool *pgxpool.Pool) portsrepo.CreanceRepository {
	return &PgxCreanceRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.CreanceRepository = (*PgxCreanceRepository)(nil)

func toDomainCreanceClient(m models.CreanceClient) domain.CreanceClient {
	return domain.CreanceClient{
		ClientID:      m.ClientID,
		AccountID:     m.AccountID,
		ClientName:    m.ClientName,
		ClientPhone:   m.ClientPhone,
		ClientAddress: m.ClientAddress,
		InitialCredit: m.InitialCredit,
		IsActive:      m.IsActive,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

func toDomainCreanceOperation(m models.CreanceOperation) domain.CreanceOperation {
	return domain.CreanceOperation{
		OperationID:   m.OperationID,
		AccountID:     m.AccountID,
		ClientID:      m.ClientID,
		OperationType: domain.OperationType(m.OperationType),
		Amount:        m.Amount,
		OperationDate: m.OperationDate,
		Description:   m.Description,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

const creanceClientColumns = `client_id, account_id, client_name, client_phone, client_address, initial_credit, is_active, created_at, created_by, last_updated_at, last_updated_by`

func scanCreanceClient(row pgx.Row) (*domain.CreanceClient, error) {
	var m models.CreanceClient
	var phone, address sql.NullString
	err := row.Scan(
		&m.ClientID,
		&m.AccountID,
		&m.ClientName,
		&phone,
		&address,
		&m.InitialCredit,
		&m.IsActive,
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
	m.ClientPhone = phone.String
	m.ClientAddress = address.String
	d := toDomainCreanceClient(m)
	return &d, nil
}

// SaveClient inserts a creance client row.
func (r *PgxCreanceRepository) SaveClient(ctx context.Context, client domain.CreanceClient) error {
	query := `
		INSERT INTO creance_clients (` + creanceClientColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.Pool.Exec(ctx, query,
		client.ClientID,
		client.AccountID,
		client.ClientName,
		nullable(client.ClientPhone),
		nullable(client.ClientAddress),
		client.InitialCredit,
		client.IsActive,
		client.CreatedAt,
		client.CreatedBy,
		client.LastUpdatedAt,
		client.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: client %s already exists", apperrors.ErrDuplicate, client.ClientID)
		}
		return fmt.Errorf("failed to save creance client %s: %w", client.ClientID, err)
	}
	return nil
}

// FindClientByID retrieves a creance client by its ID.
func (r *PgxCreanceRepository) FindClientByID(ctx context.Context, clientID string) (*domain.CreanceClient, error) {
	query := `SELECT ` + creanceClientColumns + ` FROM creance_clients WHERE client_id = $1;`
	client, err := scanCreanceClient(r.Pool.QueryRow(ctx, query, clientID))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to find creance client %s: %w", clientID, err)
	}
	return client, nil
}

// UpdateClient persists the mutable fields of a creance client.
func (r *PgxCreanceRepository) UpdateClient(ctx context.Context, client domain.CreanceClient) error {
	query := `
		UPDATE creance_clients
		SET client_name = $2, client_phone = $3, client_address = $4, initial_credit = $5,
		    last_updated_at = $6, last_updated_by = $7
		WHERE client_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		client.ClientID,
		client.ClientName,
		nullable(client.ClientPhone),
		nullable(client.ClientAddress),
		client.InitialCredit,
		client.LastUpdatedAt,
		client.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update creance client %s: %w", client.ClientID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeactivateClient soft-deletes a creance client, removing it from balance
// computations.
func (r *PgxCreanceRepository) DeactivateClient(ctx context.Context, clientID string, userID string, now time.Time) error {
	query := `
		UPDATE creance_clients
		SET is_active = FALSE, last_updated_at = $2, last_updated_by = $3
		WHERE client_id = $1 AND is_active = TRUE;
	`
	tag, err := r.Pool.Exec(ctx, query, clientID, now, userID)
	if err != nil {
		return fmt.Errorf("failed to deactivate creance client %s: %w", clientID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// ListClientsByAccount retrieves the clients of a creance account.
func (r *PgxCreanceRepository) ListClientsByAccount(ctx context.Context, accountID string, onlyActive bool) ([]domain.CreanceClient, error) {
	query := `SELECT ` + creanceClientColumns + ` FROM creance_clients WHERE account_id = $1`
	if onlyActive {
		query += ` AND is_active = TRUE`
	}
	query += ` ORDER BY client_name;`

	rows, err := r.Pool.Query(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to list creance clients for account %s: %w", accountID, err)
	}
	defer rows.Close()

	var clients []domain.CreanceClient
	for rows.Next() {
		client, err := scanCreanceClient(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan creance client row: %w", err)
		}
		clients = append(clients, *client)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating creance client rows: %w", err)
	}
	return clients, nil
}

// SaveOperation inserts a creance operation row inside tx.
func (r *PgxCreanceRepository) SaveOperation(ctx context.Context, tx pgx.Tx, op domain.CreanceOperation) error {
	query := `
		INSERT INTO creance_operations (operation_id, account_id, client_id, operation_type, amount, operation_date, description, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.q(tx).Exec(ctx, query,
		op.OperationID,
		op.AccountID,
		op.ClientID,
		string(op.OperationType),
		op.Amount,
		op.OperationDate,
		nullable(op.Description),
		op.CreatedAt,
		op.CreatedBy,
		op.LastUpdatedAt,
		op.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: operation %s already exists", apperrors.ErrDuplicate, op.OperationID)
		}
		return fmt.Errorf("failed to save creance operation %s: %w", op.OperationID, err)
	}
	return nil
}

// FindOperationByID retrieves a creance operation by its ID.
func (r *PgxCreanceRepository) FindOperationByID(ctx context.Context, operationID string) (*domain.CreanceOperation, error) {
	query := `
		SELECT operation_id, account_id, client_id, operation_type, amount, operation_date, description, created_at, created_by, last_updated_at, last_updated_by
		FROM creance_operations
		WHERE operation_id = $1;
	`
	var m models.CreanceOperation
	var description sql.NullString
	err := r.Pool.QueryRow(ctx, query, operationID).Scan(
		&m.OperationID, &m.AccountID, &m.ClientID, &m.OperationType, &m.Amount,
		&m.OperationDate, &description,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find creance operation %s: %w", operationID, err)
	}
	m.Description = description.String
	d := toDomainCreanceOperation(m)
	return &d, nil
}

// DeleteOperation removes a creance operation row inside tx.
func (r *PgxCreanceRepository) DeleteOperation(ctx context.Context, tx pgx.Tx, operationID string) error {
	tag, err := r.q(tx).Exec(ctx, `DELETE FROM creance_operations WHERE operation_id = $1;`, operationID)
	if err != nil {
		return fmt.Errorf("failed to delete creance operation %s: %w", operationID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// ListOperationsByClient retrieves a client's operations newest first.
func (r *PgxCreanceRepository) ListOperationsByClient(ctx context.Context, clientID string, limit, offset int) ([]domain.CreanceOperation, error) {
	query := `
		SELECT operation_id, account_id, client_id, operation_type, amount, operation_date, description, created_at, created_by, last_updated_at, last_updated_by
		FROM creance_operations
		WHERE client_id = $1
		ORDER BY operation_date DESC, created_at DESC
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.Pool.Query(ctx, query, clientID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list operations for client %s: %w", clientID, err)
	}
	defer rows.Close()

	var ops []domain.CreanceOperation
	for rows.Next() {
		var m models.CreanceOperation
		var description sql.NullString
		if err := rows.Scan(
			&m.OperationID, &m.AccountID, &m.ClientID, &m.OperationType, &m.Amount,
			&m.OperationDate, &description,
			&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan creance operation row: %w", err)
		}
		m.Description = description.String
		ops = append(ops, toDomainCreanceOperation(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating creance operation rows: %w", err)
	}
	return ops, nil
}

// ClientBalances computes per-client running balances for an account,
// operations filtered by operation_date <= to when non-nil.
func (r *PgxCreanceRepository) ClientBalances(ctx context.Context, accountID string, to *time.Time) ([]domain.CreanceClientBalance, error) {
	query := `
		SELECT c.client_id, c.client_name,
		       c.initial_credit + COALESCE(o.credits, 0) - COALESCE(o.debits, 0) AS balance
		FROM creance_clients c
		LEFT JOIN (
			SELECT client_id,
			       COALESCE(SUM(amount) FILTER (WHERE operation_type = 'credit'), 0) AS credits,
			       COALESCE(SUM(amount) FILTER (WHERE operation_type = 'debit'), 0) AS debits
			FROM creance_operations
			WHERE ($2::date IS NULL OR operation_date <= $2::date)
			GROUP BY client_id
		) o ON o.client_id = c.client_id
		WHERE c.account_id = $1 AND c.is_active = TRUE
		ORDER BY c.client_name;
	`
	rows, err := r.Pool.Query(ctx, query, accountID, to)
	if err != nil {
		return nil, fmt.Errorf("failed to compute client balances for account %s: %w", accountID, err)
	}
	defer rows.Close()

	var balances []domain.CreanceClientBalance
	for rows.Next() {
		var b domain.CreanceClientBalance
		if err := rows.Scan(&b.ClientID, &b.ClientName, &b.Balance); err != nil {
			return nil, fmt.Errorf("failed to scan client balance row: %w", err)
		}
		balances = append(balances, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating client balance rows: %w", err)
	}
	return balances, nil
}
