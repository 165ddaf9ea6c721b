package plaid

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	defaultBaseURL = "https://sandbox.plaid.com"
	defaultTimeout = 60 * time.Second

	linkTokenPath        = "/link/token/create"
	exchangeTokenPath    = "/item/public_token/exchange"
	syncTransactionsPath = "/transactions/sync"
)

// Client handles communication with the aggregation provider's API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	clientID   string
	secret     string
}

// Ensure Client implements ClientInterface
var _ ClientInterface = (*Client)(nil)

// NewClient creates a new aggregation API client. An empty baseURL selects the
// provider's sandbox environment.
func NewClient(baseURL, clientID, secret string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		httpClient: &http.Client{Timeout: defaultTimeout},
		baseURL:    baseURL,
		clientID:   clientID,
		secret:     secret,
	}
}

// ExchangeResult is the outcome of exchanging a public token after the user
// completes the link flow.
type ExchangeResult struct {
	AccessToken string `json:"access_token"`
	ItemID      string `json:"item_id"`
}

// CreateLinkToken requests a short-lived token that the mobile app uses to
// open the provider's link flow.
func (c *Client) CreateLinkToken(ctx context.Context, clientUserID string) (string, error) {
	req := map[string]any{
		"client_name":   "FinWise",
		"language":      "en",
		"country_codes": []string{"US", "CA"},
		"products":      []string{"transactions"},
		"user":          map[string]string{"client_user_id": clientUserID},
	}

	var resp struct {
		LinkToken string `json:"link_token"`
	}
	if err := c.post(ctx, linkTokenPath, req, &resp); err != nil {
		return "", fmt.Errorf("failed to create link token: %w", err)
	}
	if resp.LinkToken == "" {
		return "", fmt.Errorf("provider returned empty link token")
	}
	return resp.LinkToken, nil
}

// ExchangePublicToken swaps the public token from a completed link flow for a
// long-lived access token identifying the new item.
func (c *Client) ExchangePublicToken(ctx context.Context, publicToken string) (*ExchangeResult, error) {
	req := map[string]string{"public_token": publicToken}

	var result ExchangeResult
	if err := c.post(ctx, exchangeTokenPath, req, &result); err != nil {
		return nil, fmt.Errorf("failed to exchange public token: %w", err)
	}
	if result.AccessToken == "" {
		return nil, fmt.Errorf("provider returned empty access token")
	}
	return &result, nil
}

// SyncTransactions fetches one batch of account and transaction deltas for an
// item. Pagination and retries are the caller's concern; each call yields one
// already-parsed batch.
func (c *Client) SyncTransactions(ctx context.Context, accessToken string) (*Item, error) {
	req := map[string]string{"access_token": accessToken}

	var item Item
	if err := c.post(ctx, syncTransactionsPath, req, &item); err != nil {
		return nil, fmt.Errorf("failed to sync transactions: %w", err)
	}
	return &item, nil
}

// post sends a JSON request with the client credentials and decodes the JSON
// response into out.
func (c *Client) post(ctx context.Context, path string, body, out any) error {
	payload := map[string]any{
		"client_id": c.clientID,
		"secret":    c.secret,
	}
	raw, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return fmt.Errorf("failed to merge request body: %w", err)
	}
	buf, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(buf))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("provider returned status %d: %s", resp.StatusCode, truncate(data, 256))
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
