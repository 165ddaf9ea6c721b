package main

import (
	"net/http"

	"finwise/internal/shared/config"
	"finwise/internal/shared/middleware"
)

// SetupRoutes configures all HTTP routes and returns the final handler with
// middleware applied.
func SetupRoutes(deps *Dependencies, cfg *config.Config) http.Handler {
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("/health", handleHealth)

	// Public auth routes
	mux.HandleFunc("/api/auth/register", deps.AuthHandler.HandleRegister)
	mux.HandleFunc("/api/auth/login", deps.AuthHandler.HandleLogin)
	mux.HandleFunc("/api/auth/firebase", deps.AuthHandler.HandleFirebaseSignIn)
	mux.HandleFunc("/api/auth/logout", deps.AuthHandler.HandleLogout)

	// Protected routes
	authMiddleware := middleware.Auth(deps.JWT)

	mux.Handle("/api/users/me", authMiddleware(http.HandlerFunc(deps.AuthHandler.HandleMe)))
	mux.Handle("/api/accounts", authMiddleware(http.HandlerFunc(deps.AccountHandler.HandleAccounts)))
	mux.Handle("/api/accounts/{id}", authMiddleware(http.HandlerFunc(deps.AccountHandler.HandleAccountByID)))
	mux.Handle("/api/accounts/{id}/transactions", authMiddleware(http.HandlerFunc(deps.TransactionHandler.HandleAccountTransactions)))
	mux.Handle("/api/transactions", authMiddleware(http.HandlerFunc(deps.TransactionHandler.HandleListTransactions)))
	mux.Handle("/api/categories", authMiddleware(http.HandlerFunc(deps.CategoryHandler.HandleListCategories)))
	mux.Handle("/api/categories/{id}/budget", authMiddleware(http.HandlerFunc(deps.CategoryHandler.HandleCategoryBudget)))
	mux.Handle("/api/dashboard", authMiddleware(http.HandlerFunc(deps.DashboardHandler.HandleDashboard)))
	mux.Handle("/api/plaid/link-token", authMiddleware(http.HandlerFunc(deps.PlaidHandler.HandleCreateLinkToken)))
	mux.Handle("/api/plaid/exchange", authMiddleware(http.HandlerFunc(deps.PlaidHandler.HandleExchangeToken)))
	mux.Handle("/api/plaid/sync", authMiddleware(http.HandlerFunc(deps.PlaidHandler.HandleSync)))

	// Global middleware
	var handler http.Handler = mux
	if cfg.Server.SecureCookies {
		// Only meaningful when TLS terminates upstream; breaks cookie auth
		// over plain HTTP in local development.
		handler = middleware.HSTS(middleware.SecureCookies(handler))
	}
	return middleware.Logging(middleware.Tracing(middleware.CORS(cfg.Server.AllowedHosts)(handler)))
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
