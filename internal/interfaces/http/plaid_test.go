package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	domainplaid "finwise/internal/domain/plaid"
	"finwise/internal/infrastructure/memory"
	plaidclient "finwise/internal/infrastructure/plaid"
)

// MockPlaidClient is a mock implementation of the aggregation API client.
type MockPlaidClient struct {
	CreateLinkTokenFunc     func(ctx context.Context, clientUserID string) (string, error)
	ExchangePublicTokenFunc func(ctx context.Context, publicToken string) (*plaidclient.ExchangeResult, error)
	SyncTransactionsFunc    func(ctx context.Context, accessToken string) (*plaidclient.Item, error)
}

func (m *MockPlaidClient) CreateLinkToken(ctx context.Context, clientUserID string) (string, error) {
	if m.CreateLinkTokenFunc != nil {
		return m.CreateLinkTokenFunc(ctx, clientUserID)
	}
	return "link-token", nil
}

func (m *MockPlaidClient) ExchangePublicToken(ctx context.Context, publicToken string) (*plaidclient.ExchangeResult, error) {
	if m.ExchangePublicTokenFunc != nil {
		return m.ExchangePublicTokenFunc(ctx, publicToken)
	}
	return &plaidclient.ExchangeResult{AccessToken: "access-1", ItemID: "item-1"}, nil
}

func (m *MockPlaidClient) SyncTransactions(ctx context.Context, accessToken string) (*plaidclient.Item, error) {
	if m.SyncTransactionsFunc != nil {
		return m.SyncTransactionsFunc(ctx, accessToken)
	}
	return &plaidclient.Item{}, nil
}

func newPlaidHandler(client plaidclient.ClientInterface) (*PlaidHandler, *memory.Store) {
	st := memory.NewStore()
	items := st.ItemRepository()
	sync := domainplaid.NewSyncService(st, items, false)
	return NewPlaidHandler(client, sync, items), st
}

func TestHandleCreateLinkToken(t *testing.T) {
	client := &MockPlaidClient{
		CreateLinkTokenFunc: func(ctx context.Context, clientUserID string) (string, error) {
			if clientUserID != "42" {
				t.Errorf("clientUserID = %q, want 42", clientUserID)
			}
			return "link-sandbox-xyz", nil
		},
	}
	h, _ := newPlaidHandler(client)

	rr := httptest.NewRecorder()
	h.HandleCreateLinkToken(rr, authedRequest(http.MethodPost, "/api/plaid/link-token", nil, 42))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}

	var resp LinkTokenResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.LinkToken != "link-sandbox-xyz" {
		t.Errorf("LinkToken = %q", resp.LinkToken)
	}
}

func TestHandleExchangeToken(t *testing.T) {
	balance := 1200.0
	client := &MockPlaidClient{
		SyncTransactionsFunc: func(ctx context.Context, accessToken string) (*plaidclient.Item, error) {
			return &plaidclient.Item{
				Accounts: []plaidclient.Account{
					{AccountID: "acc-1", Name: "Checking", Type: "depository",
						Balances: plaidclient.Balances{Current: &balance}},
				},
			}, nil
		},
	}
	h, st := newPlaidHandler(client)

	body, _ := json.Marshal(ExchangeTokenRequest{PublicToken: "public-1", BankName: "First National"})
	rr := httptest.NewRecorder()
	h.HandleExchangeToken(rr, authedRequest(http.MethodPost, "/api/plaid/exchange", body, 1))

	if rr.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201 (body: %s)", rr.Code, rr.Body.String())
	}

	var result domainplaid.SyncResult
	if err := json.Unmarshal(rr.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	// The batch had no item_id, so it falls back to the exchange result's.
	if result.ItemID != "item-1" {
		t.Errorf("ItemID = %q, want item-1", result.ItemID)
	}
	// Bank name comes from the link flow metadata in the request.
	if result.BankName != "First National" {
		t.Errorf("BankName = %q, want First National", result.BankName)
	}
	if result.AccountsCreated != 1 {
		t.Errorf("AccountsCreated = %d, want 1", result.AccountsCreated)
	}

	a, _ := st.FindAccountByID(context.Background(), "acc-1")
	if a == nil {
		t.Fatal("synced account not persisted")
	}
	if a.BankName != "First National" {
		t.Errorf("account BankName = %q, want First National", a.BankName)
	}

	// The connection was recorded for later scheduled syncs.
	items, _ := st.ItemRepository().ListByUserID(context.Background(), 1)
	if len(items) != 1 || items[0].ID != "item-1" {
		t.Errorf("items = %+v, want the linked item recorded", items)
	}
}

func TestHandleExchangeToken_MissingPublicToken(t *testing.T) {
	h, _ := newPlaidHandler(&MockPlaidClient{})

	body, _ := json.Marshal(ExchangeTokenRequest{BankName: "Bank"})
	rr := httptest.NewRecorder()
	h.HandleExchangeToken(rr, authedRequest(http.MethodPost, "/api/plaid/exchange", body, 1))

	if rr.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rr.Code)
	}
}

func TestHandleExchangeToken_ProviderFailure(t *testing.T) {
	client := &MockPlaidClient{
		ExchangePublicTokenFunc: func(ctx context.Context, publicToken string) (*plaidclient.ExchangeResult, error) {
			return nil, context.DeadlineExceeded
		},
	}
	h, _ := newPlaidHandler(client)

	body, _ := json.Marshal(ExchangeTokenRequest{PublicToken: "public-1"})
	rr := httptest.NewRecorder()
	h.HandleExchangeToken(rr, authedRequest(http.MethodPost, "/api/plaid/exchange", body, 1))

	if rr.Code != http.StatusBadGateway {
		t.Errorf("status = %d, want 502", rr.Code)
	}
}

func TestHandleSync(t *testing.T) {
	client := &MockPlaidClient{
		SyncTransactionsFunc: func(ctx context.Context, accessToken string) (*plaidclient.Item, error) {
			return &plaidclient.Item{}, nil
		},
	}
	h, st := newPlaidHandler(client)

	ctx := context.Background()
	if _, err := st.ItemRepository().FindOrCreate(ctx, "item-1", 1, "Bank A", "access-1"); err != nil {
		t.Fatalf("FindOrCreate() error = %v", err)
	}
	if _, err := st.ItemRepository().FindOrCreate(ctx, "item-2", 1, "Bank B", "access-2"); err != nil {
		t.Fatalf("FindOrCreate() error = %v", err)
	}

	rr := httptest.NewRecorder()
	h.HandleSync(rr, authedRequest(http.MethodPost, "/api/plaid/sync", nil, 1))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body: %s)", rr.Code, rr.Body.String())
	}

	var results []*domainplaid.SyncResult
	if err := json.Unmarshal(rr.Body.Bytes(), &results); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(results) != 2 {
		t.Errorf("results = %d, want one per linked item", len(results))
	}
}
