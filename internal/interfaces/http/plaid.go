package http

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	domainplaid "finwise/internal/domain/plaid"
	"finwise/internal/infrastructure/plaid"
	"finwise/internal/shared/middleware"
)

type PlaidHandler struct {
	client plaid.ClientInterface
	sync   *domainplaid.SyncService
	items  domainplaid.ItemRepository
}

func NewPlaidHandler(client plaid.ClientInterface, sync *domainplaid.SyncService, items domainplaid.ItemRepository) *PlaidHandler {
	return &PlaidHandler{client: client, sync: sync, items: items}
}

type LinkTokenResponse struct {
	LinkToken string `json:"linkToken"`
}

type ExchangeTokenRequest struct {
	PublicToken string `json:"publicToken"`
	// BankName comes from the link flow's institution metadata; the sync
	// payload itself does not carry it.
	BankName string `json:"bankName"`
}

// HandleCreateLinkToken mints a link token for the mobile app to open the
// provider's link flow.
func (h *PlaidHandler) HandleCreateLinkToken(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := middleware.UserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	token, err := h.client.CreateLinkToken(r.Context(), strconv.FormatInt(userID, 10))
	if err != nil {
		log.Printf("Error creating link token for user %d: %v", userID, err)
		http.Error(w, "Failed to create link token", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(LinkTokenResponse{LinkToken: token})
}

// HandleExchangeToken completes a link flow: swaps the public token for an
// access token, fetches the first batch and reconciles it into the store.
func (h *PlaidHandler) HandleExchangeToken(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := middleware.UserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req ExchangeTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.PublicToken == "" {
		http.Error(w, "publicToken is required", http.StatusBadRequest)
		return
	}

	ctx := r.Context()

	exchange, err := h.client.ExchangePublicToken(ctx, req.PublicToken)
	if err != nil {
		log.Printf("Error exchanging public token for user %d: %v", userID, err)
		http.Error(w, "Failed to exchange token", http.StatusBadGateway)
		return
	}

	batch, err := h.client.SyncTransactions(ctx, exchange.AccessToken)
	if err != nil {
		log.Printf("Error fetching initial batch for user %d: %v", userID, err)
		http.Error(w, "Failed to fetch transactions", http.StatusBadGateway)
		return
	}
	if batch.ItemID == "" {
		batch.ItemID = exchange.ItemID
	}
	batch.BankName = req.BankName

	result, err := h.sync.Sync(ctx, userID, exchange.AccessToken, batch)
	if err != nil {
		log.Printf("Error syncing initial batch for user %d: %v", userID, err)
		http.Error(w, "Failed to sync transactions", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(result)
}

// HandleSync re-syncs every linked item of the authenticated user.
func (h *PlaidHandler) HandleSync(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := middleware.UserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	ctx := r.Context()

	items, err := h.items.ListByUserID(ctx, userID)
	if err != nil {
		log.Printf("Error listing items for user %d: %v", userID, err)
		http.Error(w, "Failed to list linked banks", http.StatusInternalServerError)
		return
	}

	results := make([]*domainplaid.SyncResult, 0, len(items))
	for _, it := range items {
		batch, err := h.client.SyncTransactions(ctx, it.AccessToken)
		if err != nil {
			log.Printf("Error fetching batch for item %s: %v", it.ID, err)
			results = append(results, &domainplaid.SyncResult{
				ItemID:   it.ID,
				BankName: it.BankName,
				Errors:   []string{"failed to fetch batch from provider"},
			})
			continue
		}
		if batch.ItemID == "" {
			batch.ItemID = it.ID
		}
		batch.BankName = it.BankName

		result, err := h.sync.Sync(ctx, userID, it.AccessToken, batch)
		if err != nil {
			log.Printf("Error syncing item %s: %v", it.ID, err)
			// The partial result carries what was committed before the failure.
		}
		results = append(results, result)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(results)
}
