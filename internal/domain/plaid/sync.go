// Package plaid reconciles externally fetched account and transaction batches
// into the local store.
package plaid

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"finwise/internal/domain/account"
	"finwise/internal/domain/category"
	"finwise/internal/domain/store"
	"finwise/internal/domain/transaction"
	plaidclient "finwise/internal/infrastructure/plaid"
)

// SyncResult contains the outcome of one sync pass over one batch. Per-record
// problems are absorbed into Skipped/Errors; only a failed commit ends the
// pass early.
type SyncResult struct {
	ItemID          string   `json:"itemId"`
	BankName        string   `json:"bankName"`
	AccountsFound   int      `json:"accountsFound"`
	AccountsCreated int      `json:"accountsCreated"`
	AccountsUpdated int      `json:"accountsUpdated"`
	Added           int      `json:"added"`
	Modified        int      `json:"modified"`
	Removed         int      `json:"removed"`
	Skipped         int      `json:"skipped"`
	Errors          []string `json:"errors"`
}

// SyncService merges externally fetched batches into the entity store. A
// mutex serializes passes: the engine assumes a single writer per store, and
// the lookup-then-insert sequences below are not atomic on their own.
type SyncService struct {
	mu       sync.Mutex
	store    store.Store
	resolver *category.Resolver
	items    ItemRepository

	// refreshAccounts controls whether an already-known account has its
	// balance, name, mask and currency overwritten from a fresh batch.
	// Off preserves the historical behavior of never re-syncing accounts.
	refreshAccounts bool
}

// NewSyncService creates a sync service writing through the given store.
// items may be nil when connection bookkeeping is not wanted (tests).
func NewSyncService(st store.Store, items ItemRepository, refreshAccounts bool) *SyncService {
	return &SyncService{
		store:           st,
		resolver:        category.NewResolver(st),
		items:           items,
		refreshAccounts: refreshAccounts,
	}
}

// Sync runs one reconciliation pass over one batch: accounts first, then
// transactions in strict added → modified → removed order, committing after
// each phase. A commit failure stops the pass; phases committed before the
// failure remain applied, and the partial result is returned with the error.
func (s *SyncService) Sync(ctx context.Context, userID int64, accessToken string, item *plaidclient.Item) (*SyncResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := &SyncResult{
		ItemID:        item.ItemID,
		BankName:      item.BankName,
		AccountsFound: len(item.Accounts),
		Errors:        []string{},
	}

	if s.items != nil && item.ItemID != "" {
		if _, err := s.items.FindOrCreate(ctx, item.ItemID, userID, item.BankName, accessToken); err != nil {
			return result, fmt.Errorf("failed to record item %s: %w", item.ItemID, err)
		}
	}

	s.syncAccounts(ctx, userID, item, result)
	if err := s.store.Commit(ctx); err != nil {
		return result, fmt.Errorf("commit failed after account phase: %w", err)
	}

	phases := []struct {
		name  string
		apply func(context.Context, *plaidclient.Item, *SyncResult)
	}{
		{"added", s.applyAdded},
		{"modified", s.applyModified},
		{"removed", s.applyRemoved},
	}
	for _, phase := range phases {
		phase.apply(ctx, item, result)
		if err := s.store.Commit(ctx); err != nil {
			return result, fmt.Errorf("commit failed after %s phase: %w", phase.name, err)
		}
	}

	log.Printf("Sync complete for item %s: accounts created=%d updated=%d, txns added=%d modified=%d removed=%d skipped=%d errors=%d",
		item.ItemID, result.AccountsCreated, result.AccountsUpdated,
		result.Added, result.Modified, result.Removed, result.Skipped, len(result.Errors))

	return result, nil
}

// syncAccounts creates accounts the store has not seen. Accounts are never
// deleted here; removal is a user-driven operation outside the sync pass.
func (s *SyncService) syncAccounts(ctx context.Context, userID int64, item *plaidclient.Item, result *SyncResult) {
	for _, ext := range item.Accounts {
		existing, err := s.store.FindAccountByID(ctx, ext.AccountID)
		if err != nil {
			s.recordError(result, fmt.Sprintf("failed to look up account %s: %v", ext.AccountID, err))
			continue
		}

		if existing == nil {
			s.store.InsertAccount(&account.Account{
				ID:           ext.AccountID,
				UserID:       userID,
				ItemID:       item.ItemID,
				Name:         ext.Name,
				Type:         account.TypeFromExternal(ext.Type),
				Balance:      ext.Balances.CurrentBalance(),
				CurrencyCode: ext.Balances.Currency(),
				BankName:     item.BankName,
				Mask:         ext.GetMask(),
			})
			result.AccountsCreated++
			continue
		}

		if !s.refreshAccounts {
			log.Printf("Account %s already exists, skipping", ext.AccountID)
			continue
		}

		existing.Name = ext.Name
		existing.Balance = ext.Balances.CurrentBalance()
		existing.CurrencyCode = ext.Balances.Currency()
		existing.Mask = ext.GetMask()
		s.store.UpdateAccount(existing)
		result.AccountsUpdated++
	}
}

// applyAdded inserts new transactions. A record whose owning account is
// unknown, or whose external id already exists, is skipped without failing
// the batch.
func (s *SyncService) applyAdded(ctx context.Context, item *plaidclient.Item, result *SyncResult) {
	for _, ext := range item.Added {
		owner, err := s.store.FindAccountByID(ctx, ext.AccountID)
		if err != nil {
			s.recordError(result, fmt.Sprintf("failed to look up account %s for transaction %s: %v", ext.AccountID, ext.TransactionID, err))
			continue
		}
		if owner == nil {
			log.Printf("Account %s not found for added transaction %s, skipping", ext.AccountID, ext.TransactionID)
			result.Skipped++
			continue
		}

		existing, err := s.store.FindTransactionByID(ctx, ext.TransactionID)
		if err != nil {
			s.recordError(result, fmt.Sprintf("failed to look up transaction %s: %v", ext.TransactionID, err))
			continue
		}
		if existing != nil {
			log.Printf("Transaction %s already exists, skipping", ext.TransactionID)
			result.Skipped++
			continue
		}

		rec := &transaction.Transaction{
			ID:           ext.TransactionID,
			AccountID:    owner.ID,
			Name:         ext.Name,
			Amount:       ext.Amount,
			CurrencyCode: ext.Currency(),
			Date:         ext.ParsedDate(),
		}
		// A category resolution failure yields an uncategorized transaction,
		// not a skipped one.
		if cat := s.resolveCategory(ctx, ext, result); cat != nil {
			rec.CategoryID = &cat.ID
		}
		s.store.InsertTransaction(rec)
		result.Added++
	}
}

// applyModified overwrites synced fields of known transactions. Unknown ids
// are skipped; a category resolution failure keeps the previous category.
func (s *SyncService) applyModified(ctx context.Context, item *plaidclient.Item, result *SyncResult) {
	for _, ext := range item.Modified {
		existing, err := s.store.FindTransactionByID(ctx, ext.TransactionID)
		if err != nil {
			s.recordError(result, fmt.Sprintf("failed to look up transaction %s: %v", ext.TransactionID, err))
			continue
		}
		if existing == nil {
			log.Printf("Transaction %s not found for modification, skipping", ext.TransactionID)
			result.Skipped++
			continue
		}

		existing.Name = ext.Name
		existing.Amount = ext.Amount
		existing.CurrencyCode = ext.Currency()
		existing.Date = ext.ParsedDate()
		if cat := s.resolveCategory(ctx, ext, result); cat != nil {
			existing.CategoryID = &cat.ID
		}
		s.store.UpdateTransaction(existing)
		result.Modified++
	}
}

// applyRemoved deletes transactions named by the batch's removed list.
// Unknown ids were already removed or never synced, and are skipped.
func (s *SyncService) applyRemoved(ctx context.Context, item *plaidclient.Item, result *SyncResult) {
	for _, ext := range item.Removed {
		existing, err := s.store.FindTransactionByID(ctx, ext.TransactionID)
		if err != nil {
			s.recordError(result, fmt.Sprintf("failed to look up transaction %s: %v", ext.TransactionID, err))
			continue
		}
		if existing == nil {
			log.Printf("Transaction %s not found for removal, skipping", ext.TransactionID)
			result.Skipped++
			continue
		}
		s.store.DeleteTransaction(existing.ID)
		result.Removed++
	}
}

// resolveCategory resolves the transaction's category codes, returning nil
// when the record carries no classification or the primary code is unknown.
func (s *SyncService) resolveCategory(ctx context.Context, ext plaidclient.Transaction, result *SyncResult) *category.Category {
	pfc := ext.PersonalFinanceCategory
	if pfc == nil {
		return nil
	}

	cat, err := s.resolver.Resolve(ctx, pfc.Detailed, pfc.Primary)
	if err != nil {
		// Unknown primary codes are expected as the provider taxonomy grows;
		// anything else is a store problem worth surfacing.
		if errors.Is(err, category.ErrUnknownType) {
			log.Printf("No category type mapping for primary code %q (transaction %s)", pfc.Primary, ext.TransactionID)
		} else {
			s.recordError(result, fmt.Sprintf("failed to resolve category for transaction %s: %v", ext.TransactionID, err))
		}
		return nil
	}
	return cat
}

func (s *SyncService) recordError(result *SyncResult, msg string) {
	result.Errors = append(result.Errors, msg)
	log.Printf("Sync error: %s", msg)
}
