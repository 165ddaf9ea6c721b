package transaction

import (
	"context"

	"finwise/internal/domain/category"
)

// Repository defines read access to persisted transactions for the API and
// dashboard. Lookups return (nil, nil) when no transaction matches.
type Repository interface {
	GetByID(ctx context.Context, id string) (*Transaction, error)
	ListByUserID(ctx context.Context, userID int64, limit, offset int) ([]*Transaction, error)
	ListByAccountID(ctx context.Context, accountID string, limit, offset int) ([]*Transaction, error)
	// SumAmountByCategoryType totals transaction amounts whose category has
	// the given type, scanning the persisted store on every call rather than
	// maintaining a cached aggregate.
	SumAmountByCategoryType(ctx context.Context, userID int64, t category.Type) (float64, error)
}
