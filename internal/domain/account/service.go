package account

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Service contains the business logic for account operations driven by the
// app (listing, the manual cash account, removal). Synced accounts are written
// by the reconciliation engine, not through this service.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// CreateCashAccountParams are the fields a user supplies for the manual
// "Add Cash Account" flow.
type CreateCashAccountParams struct {
	Name         string
	Balance      float64
	CurrencyCode string
}

// CreateCashAccount creates the user's locally-managed cash account. Only one
// may exist per user; it has no external id, so it gets a generated UUID.
func (s *Service) CreateCashAccount(ctx context.Context, userID int64, params CreateCashAccountParams) (*Account, error) {
	name := strings.TrimSpace(params.Name)
	if name == "" {
		name = "Cash"
	}

	existing, err := s.repo.FindCashByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up cash account: %w", err)
	}
	if existing != nil {
		return nil, ErrCashAccountExists
	}

	currency := params.CurrencyCode
	if currency == "" {
		currency = "USD"
	}

	return s.repo.Create(ctx, &Account{
		ID:           uuid.NewString(),
		UserID:       userID,
		Name:         name,
		Type:         TypeCash,
		Balance:      params.Balance,
		CurrencyCode: currency,
	})
}

// ListAccounts returns all of the user's accounts.
func (s *Service) ListAccounts(ctx context.Context, userID int64) ([]*Account, error) {
	return s.repo.ListByUserID(ctx, userID)
}

// GetAccount returns one account, enforcing ownership.
func (s *Service) GetAccount(ctx context.Context, userID int64, id string) (*Account, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, ErrAccountNotFound
	}
	if a.UserID != userID {
		return nil, ErrForbidden
	}
	return a, nil
}

// DeleteAccount removes an account the user owns. Its transactions survive
// with a nullified account reference.
func (s *Service) DeleteAccount(ctx context.Context, userID int64, id string) error {
	if _, err := s.GetAccount(ctx, userID, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// NetWorth computes the user's current net worth from the persisted accounts.
func (s *Service) NetWorth(ctx context.Context, userID int64) (float64, error) {
	accounts, err := s.repo.ListByUserID(ctx, userID)
	if err != nil {
		return 0, err
	}
	return NetWorth(accounts), nil
}
