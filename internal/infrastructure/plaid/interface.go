package plaid

import (
	"context"
)

// ClientInterface defines the methods required from the aggregation API client.
type ClientInterface interface {
	CreateLinkToken(ctx context.Context, clientUserID string) (string, error)
	ExchangePublicToken(ctx context.Context, publicToken string) (*ExchangeResult, error)
	SyncTransactions(ctx context.Context, accessToken string) (*Item, error)
}
