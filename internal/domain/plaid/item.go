package plaid

import (
	"context"
	"time"
)

// Item represents a connection with a financial institution via the
// aggregation provider. One item can carry multiple accounts (e.g. checking +
// credit card from the same bank). The access token lets the scheduler fetch
// fresh batches for the connection.
type Item struct {
	ID          string    `json:"id"`
	UserID      int64     `json:"userId"`
	BankName    string    `json:"bankName"`
	AccessToken string    `json:"-"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ItemRepository defines data access for items.
type ItemRepository interface {
	FindOrCreate(ctx context.Context, id string, userID int64, bankName, accessToken string) (*Item, error)
	ListByUserID(ctx context.Context, userID int64) ([]*Item, error)
	Delete(ctx context.Context, id string) error
}
