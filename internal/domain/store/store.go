// Package store defines the persistence boundary the reconciliation engine
// writes through.
package store

import (
	"context"

	"finwise/internal/domain/account"
	"finwise/internal/domain/category"
	"finwise/internal/domain/transaction"
)

// Store is the entity store adapter used by a sync pass. Writes are staged
// and applied as one atomic batch by Commit: either every staged write is
// persisted or none is. Commit does not provide isolation across batches.
//
// Finds are exact-match, at-most-one-result lookups that return (nil, nil)
// when nothing matches, and they see staged-but-uncommitted writes — a
// category inserted earlier in the same phase is findable before the commit.
//
// A Store assumes a single writer: one sync pass runs to completion before
// the next may stage writes against the same store.
type Store interface {
	FindAccountByID(ctx context.Context, id string) (*account.Account, error)
	FindTransactionByID(ctx context.Context, id string) (*transaction.Transaction, error)
	FindCategoryByNameAndType(ctx context.Context, name string, t category.Type) (*category.Category, error)

	InsertAccount(a *account.Account)
	UpdateAccount(a *account.Account)
	InsertTransaction(t *transaction.Transaction)
	UpdateTransaction(t *transaction.Transaction)
	DeleteTransaction(id string)
	InsertCategory(c *category.Category)

	// Commit applies all staged writes atomically. On failure no staged write
	// becomes visible and the staging area is discarded; writes committed by
	// earlier calls remain in effect.
	Commit(ctx context.Context) error
}
