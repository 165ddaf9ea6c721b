package http

import (
	"encoding/json"
	"log"
	"net/http"

	"finwise/internal/domain/category"
	"finwise/internal/shared/middleware"
)

type CategoryHandler struct {
	categories category.Repository
}

func NewCategoryHandler(categories category.Repository) *CategoryHandler {
	return &CategoryHandler{categories: categories}
}

type UpdateBudgetRequest struct {
	Budget float64 `json:"budget"`
}

// HandleListCategories returns all categories with their budget targets.
func (h *CategoryHandler) HandleListCategories(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if _, ok := middleware.UserID(r.Context()); !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	cats, err := h.categories.List(r.Context())
	if err != nil {
		log.Printf("Error listing categories: %v", err)
		http.Error(w, "Failed to list categories", http.StatusInternalServerError)
		return
	}
	if cats == nil {
		cats = []*category.Category{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(cats)
}

// HandleCategoryBudget sets a category's monthly budget target.
func (h *CategoryHandler) HandleCategoryBudget(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if _, ok := middleware.UserID(r.Context()); !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	categoryID := r.PathValue("id")
	if categoryID == "" {
		http.Error(w, "Category ID is required", http.StatusBadRequest)
		return
	}

	var req UpdateBudgetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Budget < 0 {
		http.Error(w, "Budget must not be negative", http.StatusBadRequest)
		return
	}

	updated, err := h.categories.UpdateBudget(r.Context(), categoryID, req.Budget)
	if err != nil {
		log.Printf("Error updating budget for category %s: %v", categoryID, err)
		http.Error(w, "Failed to update budget", http.StatusInternalServerError)
		return
	}
	if updated == nil {
		http.Error(w, "Category not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(updated)
}
