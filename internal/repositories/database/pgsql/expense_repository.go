package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/matagroup/mata_gestion_app/internal/apperrors"
	"github.com/matagroup/mata_gestion_app/internal/core/domain"
	portsrepo "github.com/matagroup/mata_gestion_app/internal/core/ports/repositories"
	"github.com/matagroup/mata_gestion_app/internal/models"
)

type PgxExpenseRepository struct {
	BaseRepository
}

func newPgxExpenseRepository(pool *pgxpool.Pool) portsrepo.ExpenseRepository {
	return &PgxExpenseRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.ExpenseRepository = (*PgxExpenseRepository)(nil)

func toDomainExpense(m models.Expense) domain.Expense {
	return domain.Expense{
		ExpenseID:          m.ExpenseID,
		AccountID:          m.AccountID,
		Total:              m.Total,
		Amount:             m.Amount,
		Designation:        m.Designation,
		ExpenseDate:        m.ExpenseDate,
		Predictable:        m.Predictable,
		CategoryID:         m.CategoryID,
		SubcategoryID:      m.SubcategoryID,
		JustificationPath:  m.JustificationPath,
		SelectedForInvoice: m.SelectedForInvoice,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

const expenseColumns = `expense_id, account_id, total, amount, designation, expense_date, predictable, category_id, subcategory_id, justification_path, selected_for_invoice, created_at, created_by, last_updated_at, last_updated_by`

func scanExpense(row pgx.Row) (*domain.Expense, error) {
	var m models.Expense
	var categoryID, subcategoryID, justificationPath sql.NullString
	err := row.Scan(
		&m.ExpenseID,
		&m.AccountID,
		&m.Total,
		&m.Amount,
		&m.Designation,
		&m.ExpenseDate,
		&m.Predictable,
		&categoryID,
		&subcategoryID,
		&justificationPath,
		&m.SelectedForInvoice,
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
	m.CategoryID = categoryID.String
	m.SubcategoryID = subcategoryID.String
	m.JustificationPath = justificationPath.String
	d := toDomainExpense(m)
	return &d, nil
}

func nullable(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// SaveExpense inserts an expense row inside tx. The legacy amount column is
// written with the same value as total.
func (r *PgxExpenseRepository) SaveExpense(ctx context.Context, tx pgx.Tx, expense domain.Expense) error {
	query := `
		INSERT INTO expenses (` + expenseColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	_, err := r.q(tx).Exec(ctx, query,
		expense.ExpenseID,
		expense.AccountID,
		expense.Total,
		expense.Amount,
		expense.Designation,
		expense.ExpenseDate,
		expense.Predictable,
		nullable(expense.CategoryID),
		nullable(expense.SubcategoryID),
		nullable(expense.JustificationPath),
		expense.SelectedForInvoice,
		expense.CreatedAt,
		expense.CreatedBy,
		expense.LastUpdatedAt,
		expense.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: expense %s already exists", apperrors.ErrDuplicate, expense.ExpenseID)
		}
		return fmt.Errorf("failed to save expense %s: %w", expense.ExpenseID, err)
	}
	return nil
}

// FindExpenseByID retrieves an expense by its ID.
func (r *PgxExpenseRepository) FindExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE expense_id = $1;`
	expense, err := scanExpense(r.Pool.QueryRow(ctx, query, expenseID))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to find expense %s: %w", expenseID, err)
	}
	return expense, nil
}

// UpdateExpense rewrites the mutable fields of an expense inside tx.
func (r *PgxExpenseRepository) UpdateExpense(ctx context.Context, tx pgx.Tx, expense domain.Expense) error {
	query := `
		UPDATE expenses
		SET total = $2, amount = $3, designation = $4, expense_date = $5, predictable = $6,
		    category_id = $7, subcategory_id = $8, justification_path = $9,
		    selected_for_invoice = $10, last_updated_at = $11, last_updated_by = $12
		WHERE expense_id = $1;
	`
	tag, err := r.q(tx).Exec(ctx, query,
		expense.ExpenseID,
		expense.Total,
		expense.Amount,
		expense.Designation,
		expense.ExpenseDate,
		expense.Predictable,
		nullable(expense.CategoryID),
		nullable(expense.SubcategoryID),
		nullable(expense.JustificationPath),
		expense.SelectedForInvoice,
		expense.LastUpdatedAt,
		expense.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update expense %s: %w", expense.ExpenseID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteExpense removes an expense row inside tx.
func (r *PgxExpenseRepository) DeleteExpense(ctx context.Context, tx pgx.Tx, expenseID string) error {
	tag, err := r.q(tx).Exec(ctx, `DELETE FROM expenses WHERE expense_id = $1;`, expenseID)
	if err != nil {
		return fmt.Errorf("failed to delete expense %s: %w", expenseID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// ListExpensesByAccount retrieves expenses newest business date first.
func (r *PgxExpenseRepository) ListExpensesByAccount(ctx context.Context, accountID string, limit, offset int) ([]domain.Expense, error) {
	query := `
		SELECT ` + expenseColumns + `
		FROM expenses
		WHERE account_id = $1
		ORDER BY expense_date DESC, created_at DESC
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.Pool.Query(ctx, query, accountID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses for account %s: %w", accountID, err)
	}
	defer rows.Close()

	var expenses []domain.Expense
	for rows.Next() {
		expense, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan expense row: %w", err)
		}
		expenses = append(expenses, *expense)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating expense rows: %w", err)
	}
	return expenses, nil
}
