package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"finwise/internal/domain/account"
)

type AccountRepository struct {
	db *DB
}

var _ account.Repository = (*AccountRepository)(nil)

func NewAccountRepository(db *DB) *AccountRepository {
	return &AccountRepository{db: db}
}

const accountColumns = `id, user_id, COALESCE(item_id, ''), name, account_type,
	balance, currency_code, bank_name, mask, created_at, updated_at`

func scanAccount(row interface{ Scan(...any) error }) (*account.Account, error) {
	var a account.Account
	err := row.Scan(
		&a.ID, &a.UserID, &a.ItemID, &a.Name, &a.Type,
		&a.Balance, &a.CurrencyCode, &a.BankName, &a.Mask, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AccountRepository) Create(ctx context.Context, a *account.Account) (*account.Account, error) {
	query := `
		INSERT INTO accounts (id, user_id, item_id, name, account_type, balance, currency_code, bank_name, mask)
		VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6, $7, $8, $9)
		RETURNING ` + accountColumns

	created, err := scanAccount(r.db.QueryRowContext(ctx, query,
		a.ID, a.UserID, a.ItemID, a.Name, string(a.Type),
		a.Balance, a.CurrencyCode, a.BankName, a.Mask))
	if err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}
	return created, nil
}

func (r *AccountRepository) GetByID(ctx context.Context, id string) (*account.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1`

	a, err := scanAccount(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return a, nil
}

func (r *AccountRepository) ListByUserID(ctx context.Context, userID int64) ([]*account.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE user_id = $1 ORDER BY created_at`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer rows.Close()

	var accounts []*account.Account
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}

// FindCashByUserID returns the user's manually created cash account, if any.
// Cash accounts are the only ones with no backing item.
func (r *AccountRepository) FindCashByUserID(ctx context.Context, userID int64) (*account.Account, error) {
	query := `SELECT ` + accountColumns + `
		FROM accounts
		WHERE user_id = $1 AND account_type = $2 AND item_id IS NULL`

	a, err := scanAccount(r.db.QueryRowContext(ctx, query, userID, string(account.TypeCash)))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find cash account: %w", err)
	}
	return a, nil
}

// Delete removes the account. The schema nullifies account references on
// existing transactions rather than cascading the delete.
func (r *AccountRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM accounts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return account.ErrAccountNotFound
	}
	return nil
}
