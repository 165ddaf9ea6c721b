package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"finwise/internal/domain/account"
	"finwise/internal/domain/category"
	"finwise/internal/domain/store"
	"finwise/internal/domain/transaction"
)

// Store is the Postgres-backed entity store used by sync passes. Writes are
// staged as closures and applied inside a single transaction on Commit, so a
// batch either lands whole or not at all. Staged writes overlay lookups,
// matching the engine's expectation that a record inserted earlier in the
// same phase is findable before the commit.
//
// Store assumes a single writer (the sync engine serializes passes); the
// unique constraints on accounts(id), transactions(id) and
// categories(name, cat_type) are the backstop against other processes racing
// the same batch.
type Store struct {
	db *DB

	pending []func(ctx context.Context, tx *sql.Tx) error

	accounts    map[string]*account.Account
	txns        map[string]*transaction.Transaction
	deletedTxns map[string]struct{}
	categories  map[categoryKey]*category.Category
}

type categoryKey struct {
	name string
	typ  category.Type
}

var _ store.Store = (*Store)(nil)

func NewStore(db *DB) *Store {
	s := &Store{db: db}
	s.reset()
	return s
}

func (s *Store) reset() {
	s.pending = nil
	s.accounts = make(map[string]*account.Account)
	s.txns = make(map[string]*transaction.Transaction)
	s.deletedTxns = make(map[string]struct{})
	s.categories = make(map[categoryKey]*category.Category)
}

// FindAccountByID returns the account with the given external id, or
// (nil, nil) when none exists. Staged inserts and updates are visible.
func (s *Store) FindAccountByID(ctx context.Context, id string) (*account.Account, error) {
	if a, ok := s.accounts[id]; ok {
		return a, nil
	}

	query := `
		SELECT id, user_id, COALESCE(item_id, ''), name, account_type,
		       balance, currency_code, bank_name, mask, created_at, updated_at
		FROM accounts
		WHERE id = $1
	`
	var a account.Account
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&a.ID, &a.UserID, &a.ItemID, &a.Name, &a.Type,
		&a.Balance, &a.CurrencyCode, &a.BankName, &a.Mask, &a.CreatedAt, &a.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find account: %w", err)
	}
	return &a, nil
}

// FindTransactionByID returns the transaction with the given external id, or
// (nil, nil) when none exists. Staged writes and deletes are visible.
func (s *Store) FindTransactionByID(ctx context.Context, id string) (*transaction.Transaction, error) {
	if _, ok := s.deletedTxns[id]; ok {
		return nil, nil
	}
	if t, ok := s.txns[id]; ok {
		return t, nil
	}

	query := `
		SELECT id, COALESCE(account_id, ''), category_id, name, amount,
		       currency_code, tx_date, created_at, updated_at
		FROM transactions
		WHERE id = $1
	`
	var t transaction.Transaction
	var date sql.NullTime
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&t.ID, &t.AccountID, &t.CategoryID, &t.Name, &t.Amount,
		&t.CurrencyCode, &date, &t.CreatedAt, &t.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find transaction: %w", err)
	}
	if date.Valid {
		t.Date = &date.Time
	}
	return &t, nil
}

// FindCategoryByNameAndType returns the category with the given identity
// pair, or (nil, nil) when none exists. Staged inserts are visible.
func (s *Store) FindCategoryByNameAndType(ctx context.Context, name string, typ category.Type) (*category.Category, error) {
	if c, ok := s.categories[categoryKey{name, typ}]; ok {
		return c, nil
	}

	query := `
		SELECT id, name, cat_type, budget, created_at, updated_at
		FROM categories
		WHERE name = $1 AND cat_type = $2
	`
	var c category.Category
	err := s.db.QueryRowContext(ctx, query, name, string(typ)).Scan(
		&c.ID, &c.Name, &c.Type, &c.Budget, &c.CreatedAt, &c.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find category: %w", err)
	}
	return &c, nil
}

// InsertAccount stages a new account for the next commit.
func (s *Store) InsertAccount(a *account.Account) {
	s.accounts[a.ID] = a
	s.pending = append(s.pending, func(ctx context.Context, tx *sql.Tx) error {
		query := `
			INSERT INTO accounts (id, user_id, item_id, name, account_type, balance, currency_code, bank_name, mask)
			VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6, $7, $8, $9)
			ON CONFLICT (id) DO NOTHING
		`
		_, err := tx.ExecContext(ctx, query,
			a.ID, a.UserID, a.ItemID, a.Name, string(a.Type),
			a.Balance, a.CurrencyCode, a.BankName, a.Mask)
		return err
	})
}

// UpdateAccount stages an overwrite of the account's synced fields.
func (s *Store) UpdateAccount(a *account.Account) {
	s.accounts[a.ID] = a
	s.pending = append(s.pending, func(ctx context.Context, tx *sql.Tx) error {
		query := `
			UPDATE accounts
			SET name = $2, balance = $3, currency_code = $4, mask = $5, updated_at = now()
			WHERE id = $1
		`
		_, err := tx.ExecContext(ctx, query, a.ID, a.Name, a.Balance, a.CurrencyCode, a.Mask)
		return err
	})
}

// InsertTransaction stages a new transaction for the next commit. The
// category reference is read at apply time so that a category id rewritten by
// a conflicting insert is picked up.
func (s *Store) InsertTransaction(t *transaction.Transaction) {
	s.txns[t.ID] = t
	delete(s.deletedTxns, t.ID)
	s.pending = append(s.pending, func(ctx context.Context, tx *sql.Tx) error {
		query := `
			INSERT INTO transactions (id, account_id, category_id, name, amount, currency_code, tx_date)
			VALUES ($1, NULLIF($2, ''), $3, $4, $5, $6, $7)
			ON CONFLICT (id) DO NOTHING
		`
		_, err := tx.ExecContext(ctx, query,
			t.ID, t.AccountID, t.CategoryID, t.Name, t.Amount, t.CurrencyCode, t.Date)
		return err
	})
}

// UpdateTransaction stages an overwrite of the transaction's synced fields.
func (s *Store) UpdateTransaction(t *transaction.Transaction) {
	s.txns[t.ID] = t
	s.pending = append(s.pending, func(ctx context.Context, tx *sql.Tx) error {
		query := `
			UPDATE transactions
			SET name = $2, amount = $3, currency_code = $4, tx_date = $5, category_id = $6, updated_at = now()
			WHERE id = $1
		`
		_, err := tx.ExecContext(ctx, query, t.ID, t.Name, t.Amount, t.CurrencyCode, t.Date, t.CategoryID)
		return err
	})
}

// DeleteTransaction stages removal of the transaction.
func (s *Store) DeleteTransaction(id string) {
	delete(s.txns, id)
	s.deletedTxns[id] = struct{}{}
	s.pending = append(s.pending, func(ctx context.Context, tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `DELETE FROM transactions WHERE id = $1`, id)
		return err
	})
}

// InsertCategory stages a new category. On a (name, type) conflict — another
// process created the same pair since our lookup — the surviving row's id is
// scanned back into c.ID, so staged transactions referencing the category
// resolve to the winner.
func (s *Store) InsertCategory(c *category.Category) {
	s.categories[categoryKey{c.Name, c.Type}] = c
	s.pending = append(s.pending, func(ctx context.Context, tx *sql.Tx) error {
		query := `
			INSERT INTO categories (id, name, cat_type, budget)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (name, cat_type) DO UPDATE SET updated_at = now()
			RETURNING id
		`
		return tx.QueryRowContext(ctx, query, c.ID, c.Name, string(c.Type), c.Budget).Scan(&c.ID)
	})
}

// Commit applies all staged writes in one transaction. Whatever the outcome,
// the staging area is discarded: a failed commit ends the pass and the caller
// does not retry individual records.
func (s *Store) Commit(ctx context.Context) error {
	defer s.reset()

	if len(s.pending) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	for _, apply := range s.pending {
		if err := apply(ctx, tx); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to apply staged write: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit batch: %w", err)
	}
	return nil
}
