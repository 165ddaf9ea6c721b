package memory

import (
	"context"
	"sync"
	"time"

	"finwise/internal/domain/account"
	"finwise/internal/domain/category"
	"finwise/internal/domain/plaid"
	"finwise/internal/domain/store"
	"finwise/internal/domain/transaction"
	"finwise/internal/domain/user"
)

// Store is an in-memory implementation of the entity store, used in tests and
// for running the API without a database. The per-entity repository views are
// in repositories.go. Staged writes follow the same commit discipline as the
// Postgres store: they overlay lookups until Commit applies them, and a
// failed commit discards the whole batch.
type Store struct {
	mu sync.RWMutex

	accounts   map[string]*account.Account
	txns       map[string]*transaction.Transaction
	categories map[string]*category.Category
	items      map[string]*plaid.Item
	users      map[int64]*user.User
	nextUserID int64

	pending          []func()
	stagedAccounts   map[string]*account.Account
	stagedTxns       map[string]*transaction.Transaction
	stagedDeleted    map[string]struct{}
	stagedCategories map[catKey]*category.Category

	// CommitErr, when set, makes a Commit fail with it (the staged batch is
	// discarded, as with a real transaction rollback). CommitsUntilErr lets
	// that many commits succeed first, so a specific phase can be failed.
	CommitErr       error
	CommitsUntilErr int
	// Commits counts successful commits.
	Commits int
}

type catKey struct {
	name string
	typ  category.Type
}

var _ store.Store = (*Store)(nil)

func NewStore() *Store {
	s := &Store{
		accounts:   make(map[string]*account.Account),
		txns:       make(map[string]*transaction.Transaction),
		categories: make(map[string]*category.Category),
		items:      make(map[string]*plaid.Item),
		users:      make(map[int64]*user.User),
	}
	s.resetStaging()
	return s
}

func (s *Store) resetStaging() {
	s.pending = nil
	s.stagedAccounts = make(map[string]*account.Account)
	s.stagedTxns = make(map[string]*transaction.Transaction)
	s.stagedDeleted = make(map[string]struct{})
	s.stagedCategories = make(map[catKey]*category.Category)
}

func copyAccount(a *account.Account) *account.Account {
	c := *a
	return &c
}

func copyTransaction(t *transaction.Transaction) *transaction.Transaction {
	c := *t
	if t.CategoryID != nil {
		id := *t.CategoryID
		c.CategoryID = &id
	}
	if t.Date != nil {
		d := *t.Date
		c.Date = &d
	}
	return &c
}

func copyCategory(c *category.Category) *category.Category {
	cp := *c
	return &cp
}

func (s *Store) FindAccountByID(ctx context.Context, id string) (*account.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if a, ok := s.stagedAccounts[id]; ok {
		return a, nil
	}
	if a, ok := s.accounts[id]; ok {
		return copyAccount(a), nil
	}
	return nil, nil
}

func (s *Store) FindTransactionByID(ctx context.Context, id string) (*transaction.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.stagedDeleted[id]; ok {
		return nil, nil
	}
	if t, ok := s.stagedTxns[id]; ok {
		return t, nil
	}
	if t, ok := s.txns[id]; ok {
		return copyTransaction(t), nil
	}
	return nil, nil
}

func (s *Store) FindCategoryByNameAndType(ctx context.Context, name string, typ category.Type) (*category.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if c, ok := s.stagedCategories[catKey{name, typ}]; ok {
		return c, nil
	}
	for _, c := range s.categories {
		if c.Name == name && c.Type == typ {
			return copyCategory(c), nil
		}
	}
	return nil, nil
}

func (s *Store) InsertAccount(a *account.Account) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stagedAccounts[a.ID] = a
	s.pending = append(s.pending, func() {
		if _, exists := s.accounts[a.ID]; exists {
			return
		}
		c := copyAccount(a)
		c.CreatedAt = time.Now()
		c.UpdatedAt = c.CreatedAt
		s.accounts[a.ID] = c
	})
}

func (s *Store) UpdateAccount(a *account.Account) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stagedAccounts[a.ID] = a
	s.pending = append(s.pending, func() {
		c := copyAccount(a)
		c.UpdatedAt = time.Now()
		s.accounts[a.ID] = c
	})
}

func (s *Store) InsertTransaction(t *transaction.Transaction) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stagedTxns[t.ID] = t
	delete(s.stagedDeleted, t.ID)
	s.pending = append(s.pending, func() {
		if _, exists := s.txns[t.ID]; exists {
			return
		}
		c := copyTransaction(t)
		c.CreatedAt = time.Now()
		c.UpdatedAt = c.CreatedAt
		s.txns[t.ID] = c
	})
}

func (s *Store) UpdateTransaction(t *transaction.Transaction) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stagedTxns[t.ID] = t
	s.pending = append(s.pending, func() {
		c := copyTransaction(t)
		c.UpdatedAt = time.Now()
		s.txns[t.ID] = c
	})
}

func (s *Store) DeleteTransaction(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.stagedTxns, id)
	s.stagedDeleted[id] = struct{}{}
	s.pending = append(s.pending, func() {
		delete(s.txns, id)
	})
}

func (s *Store) InsertCategory(c *category.Category) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stagedCategories[catKey{c.Name, c.Type}] = c
	s.pending = append(s.pending, func() {
		// Mirror the unique (name, type) index: a category created since the
		// lookup wins and the stager's id is rewritten to it.
		for _, existing := range s.categories {
			if existing.Name == c.Name && existing.Type == c.Type {
				c.ID = existing.ID
				return
			}
		}
		cp := copyCategory(c)
		cp.CreatedAt = time.Now()
		cp.UpdatedAt = cp.CreatedAt
		s.categories[cp.ID] = cp
	})
}

func (s *Store) Commit(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	defer s.resetStaging()

	if s.CommitErr != nil {
		if s.CommitsUntilErr > 0 {
			s.CommitsUntilErr--
		} else {
			err := s.CommitErr
			s.CommitErr = nil
			return err
		}
	}
	for _, apply := range s.pending {
		apply()
	}
	s.Commits++
	return nil
}
