package account

import "context"

// Repository defines data access for accounts outside a sync pass. Lookups
// return (nil, nil) when no account matches.
type Repository interface {
	Create(ctx context.Context, a *Account) (*Account, error)
	GetByID(ctx context.Context, id string) (*Account, error)
	ListByUserID(ctx context.Context, userID int64) ([]*Account, error)
	FindCashByUserID(ctx context.Context, userID int64) (*Account, error)
	// Delete removes the account. Transactions referencing it keep existing
	// with their account reference nullified, never cascade-deleted.
	Delete(ctx context.Context, id string) error
}
