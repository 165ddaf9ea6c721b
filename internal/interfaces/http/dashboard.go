package http

import (
	"encoding/json"
	"log"
	"net/http"

	"finwise/internal/domain/account"
	"finwise/internal/domain/category"
	"finwise/internal/domain/transaction"
	"finwise/internal/shared/middleware"
)

type DashboardHandler struct {
	accountService *account.Service
	transactions   transaction.Repository
}

func NewDashboardHandler(accountService *account.Service, transactions transaction.Repository) *DashboardHandler {
	return &DashboardHandler{accountService: accountService, transactions: transactions}
}

type SpendingEntry struct {
	Type  category.Type `json:"type"`
	Total float64       `json:"total"`
}

type DashboardResponse struct {
	NetWorth      float64         `json:"netWorth"`
	TotalSpending float64         `json:"totalSpending"`
	Spending      []SpendingEntry `json:"spending"`
}

// HandleDashboard returns net worth plus per-type spending totals. Totals are
// recomputed from the persisted transactions on every call.
func (h *DashboardHandler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := middleware.UserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	ctx := r.Context()

	netWorth, err := h.accountService.NetWorth(ctx, userID)
	if err != nil {
		log.Printf("Error computing net worth for user %d: %v", userID, err)
		http.Error(w, "Failed to compute net worth", http.StatusInternalServerError)
		return
	}

	resp := DashboardResponse{
		NetWorth: netWorth,
		Spending: make([]SpendingEntry, 0, len(category.Types())),
	}
	for _, t := range category.Types() {
		total, err := h.transactions.SumAmountByCategoryType(ctx, userID, t)
		if err != nil {
			log.Printf("Error summing %q spending for user %d: %v", t, userID, err)
			http.Error(w, "Failed to compute spending", http.StatusInternalServerError)
			return
		}
		resp.Spending = append(resp.Spending, SpendingEntry{Type: t, Total: total})
		if isSpendingType(t) {
			resp.TotalSpending += total
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// isSpendingType excludes money movement that is not consumption: income and
// transfers between own accounts.
func isSpendingType(t category.Type) bool {
	switch t {
	case category.TypeIncome, category.TypeTransferIn, category.TypeTransferOut:
		return false
	}
	return true
}
