package plaid

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClientSendsCredentials(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != linkTokenPath {
			t.Errorf("path = %q, want %q", r.URL.Path, linkTokenPath)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]string{"link_token": "link-sandbox-abc"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "client-id", "shh")

	token, err := c.CreateLinkToken(context.Background(), "42")
	if err != nil {
		t.Fatalf("CreateLinkToken() error = %v", err)
	}
	if token != "link-sandbox-abc" {
		t.Errorf("token = %q, want link-sandbox-abc", token)
	}

	if got["client_id"] != "client-id" || got["secret"] != "shh" {
		t.Error("request must carry the client credentials")
	}
	user, _ := got["user"].(map[string]any)
	if user["client_user_id"] != "42" {
		t.Errorf("client_user_id = %v, want 42", user["client_user_id"])
	}
}

func TestExchangePublicToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{
			"access_token": "access-abc",
			"item_id":      "item-1",
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "id", "secret")

	res, err := c.ExchangePublicToken(context.Background(), "public-xyz")
	if err != nil {
		t.Fatalf("ExchangePublicToken() error = %v", err)
	}
	if res.AccessToken != "access-abc" || res.ItemID != "item-1" {
		t.Errorf("result = %+v", res)
	}
}

func TestExchangePublicToken_EmptyAccessToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "id", "secret")

	if _, err := c.ExchangePublicToken(context.Background(), "public-xyz"); err == nil {
		t.Error("expected error for empty access token")
	}
}

func TestSyncTransactionsParsesBatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"item_id": "item-1",
			"accounts": [
				{"account_id": "acc-1", "name": "Checking", "type": "depository",
				 "balances": {"current": 1500.25, "iso_currency_code": "USD"}}
			],
			"added": [
				{"transaction_id": "txn-1", "account_id": "acc-1", "name": "Coffee",
				 "amount": -4.5, "date": "2025-03-15",
				 "personal_finance_category": {"primary": "FOOD_AND_DRINK", "detailed": "FOOD_AND_DRINK_COFFEE"}}
			],
			"modified": [],
			"removed": []
		}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "id", "secret")

	item, err := c.SyncTransactions(context.Background(), "access-abc")
	if err != nil {
		t.Fatalf("SyncTransactions() error = %v", err)
	}

	if item.ItemID != "item-1" {
		t.Errorf("ItemID = %q, want item-1", item.ItemID)
	}
	if len(item.Accounts) != 1 || item.Accounts[0].Balances.CurrentBalance() != 1500.25 {
		t.Errorf("accounts = %+v", item.Accounts)
	}
	if len(item.Added) != 1 {
		t.Fatalf("added = %d, want 1", len(item.Added))
	}
	added := item.Added[0]
	if added.PersonalFinanceCategory == nil || added.PersonalFinanceCategory.Primary != "FOOD_AND_DRINK" {
		t.Errorf("category = %+v", added.PersonalFinanceCategory)
	}
	if d := added.ParsedDate(); d == nil || d.Format("2006-01-02") != "2025-03-15" {
		t.Errorf("date = %v, want 2025-03-15", d)
	}
}

func TestClientSurfacesAPIErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error_code": "INVALID_ACCESS_TOKEN"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "id", "secret")

	if _, err := c.SyncTransactions(context.Background(), "stale"); err == nil {
		t.Error("expected error for non-200 response")
	}
}
