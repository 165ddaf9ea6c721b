package postgres

import (
	"context"
	"fmt"
)

// migrations are applied in order at startup. Statements are idempotent so a
// restart against an existing database is a no-op.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            BIGSERIAL PRIMARY KEY,
		email         TEXT NOT NULL UNIQUE,
		full_name     TEXT NOT NULL DEFAULT '',
		password_hash TEXT,
		firebase_uid  TEXT UNIQUE,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at    TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS items (
		id           TEXT PRIMARY KEY,
		user_id      BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		bank_name    TEXT NOT NULL DEFAULT '',
		access_token TEXT NOT NULL DEFAULT '',
		created_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at   TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS accounts (
		id            TEXT PRIMARY KEY,
		user_id       BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		item_id       TEXT REFERENCES items(id) ON DELETE SET NULL,
		name          TEXT NOT NULL DEFAULT '',
		account_type  TEXT NOT NULL DEFAULT '',
		balance       DOUBLE PRECISION NOT NULL DEFAULT 0,
		currency_code TEXT NOT NULL DEFAULT 'USD',
		bank_name     TEXT NOT NULL DEFAULT '',
		mask          TEXT NOT NULL DEFAULT '',
		created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at    TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS categories (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL,
		cat_type   TEXT NOT NULL,
		budget     DOUBLE PRECISION NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	// The (name, type) pair is the category identity; the surrogate id exists
	// for foreign keys only.
	`CREATE UNIQUE INDEX IF NOT EXISTS categories_name_type_idx
		ON categories (name, cat_type)`,
	`CREATE TABLE IF NOT EXISTS transactions (
		id            TEXT PRIMARY KEY,
		account_id    TEXT REFERENCES accounts(id) ON DELETE SET NULL,
		category_id   TEXT REFERENCES categories(id) ON DELETE SET NULL,
		name          TEXT NOT NULL DEFAULT '',
		amount        DOUBLE PRECISION NOT NULL DEFAULT 0,
		currency_code TEXT NOT NULL DEFAULT 'USD',
		tx_date       DATE,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at    TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS transactions_account_id_idx ON transactions (account_id)`,
	`CREATE INDEX IF NOT EXISTS transactions_category_id_idx ON transactions (category_id)`,
	`CREATE INDEX IF NOT EXISTS accounts_user_id_idx ON accounts (user_id)`,
}

// Migrate creates the schema. Called once at startup.
func Migrate(ctx context.Context, db *DB) error {
	for i, stmt := range migrations {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration %d failed: %w", i, err)
		}
	}
	return nil
}
