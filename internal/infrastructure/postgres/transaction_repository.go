package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"finwise/internal/domain/category"
	"finwise/internal/domain/transaction"
)

type TransactionRepository struct {
	db *DB
}

var _ transaction.Repository = (*TransactionRepository)(nil)

func NewTransactionRepository(db *DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

const transactionColumns = `id, COALESCE(account_id, ''), category_id, name,
	amount, currency_code, tx_date, created_at, updated_at`

func scanTransaction(row interface{ Scan(...any) error }) (*transaction.Transaction, error) {
	var t transaction.Transaction
	var date sql.NullTime
	err := row.Scan(
		&t.ID, &t.AccountID, &t.CategoryID, &t.Name,
		&t.Amount, &t.CurrencyCode, &date, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if date.Valid {
		t.Date = &date.Time
	}
	return &t, nil
}

func (r *TransactionRepository) GetByID(ctx context.Context, id string) (*transaction.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = $1`

	t, err := scanTransaction(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	return t, nil
}

// ListByUserID returns the user's transactions newest first. Dateless
// transactions sort last.
func (r *TransactionRepository) ListByUserID(ctx context.Context, userID int64, limit, offset int) ([]*transaction.Transaction, error) {
	query := `
		SELECT t.id, COALESCE(t.account_id, ''), t.category_id, t.name,
		       t.amount, t.currency_code, t.tx_date, t.created_at, t.updated_at
		FROM transactions t
		JOIN accounts a ON a.id = t.account_id
		WHERE a.user_id = $1
		ORDER BY t.tx_date DESC NULLS LAST, t.created_at DESC
		LIMIT $2 OFFSET $3
	`
	return r.list(ctx, query, userID, limit, offset)
}

func (r *TransactionRepository) ListByAccountID(ctx context.Context, accountID string, limit, offset int) ([]*transaction.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE account_id = $1
		ORDER BY tx_date DESC NULLS LAST, created_at DESC
		LIMIT $2 OFFSET $3
	`
	return r.list(ctx, query, accountID, limit, offset)
}

func (r *TransactionRepository) list(ctx context.Context, query string, args ...any) ([]*transaction.Transaction, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	var txns []*transaction.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		txns = append(txns, t)
	}
	return txns, rows.Err()
}

// SumAmountByCategoryType totals the user's transaction amounts for
// categories of the given type. Always recomputed from the rows; no running
// aggregate is kept.
func (r *TransactionRepository) SumAmountByCategoryType(ctx context.Context, userID int64, t category.Type) (float64, error) {
	query := `
		SELECT COALESCE(SUM(t.amount), 0)
		FROM transactions t
		JOIN categories c ON c.id = t.category_id
		JOIN accounts a ON a.id = t.account_id
		WHERE a.user_id = $1 AND c.cat_type = $2
	`
	var sum float64
	if err := r.db.QueryRowContext(ctx, query, userID, string(t)).Scan(&sum); err != nil {
		return 0, fmt.Errorf("failed to sum transactions by category type: %w", err)
	}
	return sum, nil
}
