package main

import (
	"context"
	"log"

	"finwise/internal/domain/account"
	domainplaid "finwise/internal/domain/plaid"
	"finwise/internal/infrastructure/firebase"
	plaidclient "finwise/internal/infrastructure/plaid"
	"finwise/internal/infrastructure/postgres"
	httphandlers "finwise/internal/interfaces/http"
	"finwise/internal/shared/auth"
	"finwise/internal/shared/config"
)

// Dependencies holds all initialized application components.
type Dependencies struct {
	DB *postgres.DB

	// Handlers
	AuthHandler        *httphandlers.AuthHandler
	AccountHandler     *httphandlers.AccountHandler
	TransactionHandler *httphandlers.TransactionHandler
	CategoryHandler    *httphandlers.CategoryHandler
	DashboardHandler   *httphandlers.DashboardHandler
	PlaidHandler       *httphandlers.PlaidHandler

	// Auth
	JWT *auth.JWT

	// Sync components (for the scheduler)
	PlaidClient plaidclient.ClientInterface
	SyncService *domainplaid.SyncService
	UserRepo    *postgres.UserRepository
	ItemRepo    *postgres.ItemRepository
}

// NewDependencies initializes all application dependencies.
func NewDependencies(ctx context.Context, cfg *config.Config) (*Dependencies, error) {
	db, err := postgres.New(cfg.Database.ConnectionString())
	if err != nil {
		return nil, err
	}
	log.Println("Connected to database")

	if err := postgres.Migrate(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	// Repositories
	userRepo := postgres.NewUserRepository(db)
	accountRepo := postgres.NewAccountRepository(db)
	transactionRepo := postgres.NewTransactionRepository(db)
	categoryRepo := postgres.NewCategoryRepository(db)
	itemRepo := postgres.NewItemRepository(db)

	// Domain services
	accountService := account.NewService(accountRepo)

	// Sync engine writing through the unit-of-work store
	entityStore := postgres.NewStore(db)
	syncService := domainplaid.NewSyncService(entityStore, itemRepo, cfg.Plaid.RefreshAccounts)

	// Aggregation provider client
	client := plaidclient.NewClient(cfg.Plaid.BaseURL, cfg.Plaid.ClientID, cfg.Plaid.Secret)

	// Auth components
	jwt := auth.NewJWT(cfg.JWT.Secret)

	var verifier httphandlers.TokenVerifier
	if cfg.Firebase.CredentialsFile != "" {
		fb, err := firebase.NewClient(ctx, cfg.Firebase.CredentialsFile)
		if err != nil {
			log.Printf("Warning: Failed to initialize platform sign-in: %v", err)
		} else {
			verifier = fb
		}
	}

	return &Dependencies{
		DB:                 db,
		AuthHandler:        httphandlers.NewAuthHandler(userRepo, verifier, jwt),
		AccountHandler:     httphandlers.NewAccountHandler(accountService),
		TransactionHandler: httphandlers.NewTransactionHandler(transactionRepo),
		CategoryHandler:    httphandlers.NewCategoryHandler(categoryRepo),
		DashboardHandler:   httphandlers.NewDashboardHandler(accountService, transactionRepo),
		PlaidHandler:       httphandlers.NewPlaidHandler(client, syncService, itemRepo),
		JWT:                jwt,
		PlaidClient:        client,
		SyncService:        syncService,
		UserRepo:           userRepo,
		ItemRepo:           itemRepo,
	}, nil
}

// Close releases all resources held by dependencies.
func (d *Dependencies) Close() {
	if d.DB != nil {
		d.DB.Close()
	}
}
