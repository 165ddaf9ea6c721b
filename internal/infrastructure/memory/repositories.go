package memory

import (
	"context"
	"sort"
	"time"

	"finwise/internal/domain/account"
	"finwise/internal/domain/category"
	"finwise/internal/domain/plaid"
	"finwise/internal/domain/transaction"
	"finwise/internal/domain/user"
)

// Per-entity repository views over a shared Store. Each is a thin adapter so
// one Store can back every repository interface despite overlapping method
// names.

type AccountRepository struct{ s *Store }

var _ account.Repository = (*AccountRepository)(nil)

func (s *Store) AccountRepository() *AccountRepository { return &AccountRepository{s} }

func (r *AccountRepository) Create(ctx context.Context, a *account.Account) (*account.Account, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c := copyAccount(a)
	c.CreatedAt = time.Now()
	c.UpdatedAt = c.CreatedAt
	r.s.accounts[c.ID] = c
	return copyAccount(c), nil
}

func (r *AccountRepository) GetByID(ctx context.Context, id string) (*account.Account, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if a, ok := r.s.accounts[id]; ok {
		return copyAccount(a), nil
	}
	return nil, nil
}

func (r *AccountRepository) ListByUserID(ctx context.Context, userID int64) ([]*account.Account, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*account.Account
	for _, a := range r.s.accounts {
		if a.UserID == userID {
			out = append(out, copyAccount(a))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *AccountRepository) FindCashByUserID(ctx context.Context, userID int64) (*account.Account, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, a := range r.s.accounts {
		if a.UserID == userID && a.Type == account.TypeCash && a.ItemID == "" {
			return copyAccount(a), nil
		}
	}
	return nil, nil
}

func (r *AccountRepository) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.accounts[id]; !ok {
		return account.ErrAccountNotFound
	}
	delete(r.s.accounts, id)
	for _, t := range r.s.txns {
		if t.AccountID == id {
			t.AccountID = ""
		}
	}
	return nil
}

type TransactionRepository struct{ s *Store }

var _ transaction.Repository = (*TransactionRepository)(nil)

func (s *Store) TransactionRepository() *TransactionRepository { return &TransactionRepository{s} }

func (r *TransactionRepository) GetByID(ctx context.Context, id string) (*transaction.Transaction, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if t, ok := r.s.txns[id]; ok {
		return copyTransaction(t), nil
	}
	return nil, nil
}

func (r *TransactionRepository) ListByUserID(ctx context.Context, userID int64, limit, offset int) ([]*transaction.Transaction, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*transaction.Transaction
	for _, t := range r.s.txns {
		a, ok := r.s.accounts[t.AccountID]
		if ok && a.UserID == userID {
			out = append(out, copyTransaction(t))
		}
	}
	return paginate(sortByDateDesc(out), limit, offset), nil
}

func (r *TransactionRepository) ListByAccountID(ctx context.Context, accountID string, limit, offset int) ([]*transaction.Transaction, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*transaction.Transaction
	for _, t := range r.s.txns {
		if t.AccountID == accountID {
			out = append(out, copyTransaction(t))
		}
	}
	return paginate(sortByDateDesc(out), limit, offset), nil
}

func (r *TransactionRepository) SumAmountByCategoryType(ctx context.Context, userID int64, typ category.Type) (float64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var sum float64
	for _, t := range r.s.txns {
		if t.CategoryID == nil {
			continue
		}
		a, ok := r.s.accounts[t.AccountID]
		if !ok || a.UserID != userID {
			continue
		}
		if c, ok := r.s.categories[*t.CategoryID]; ok && c.Type == typ {
			sum += t.Amount
		}
	}
	return sum, nil
}

func sortByDateDesc(txns []*transaction.Transaction) []*transaction.Transaction {
	sort.Slice(txns, func(i, j int) bool {
		di, dj := txns[i].Date, txns[j].Date
		switch {
		case di == nil && dj == nil:
			return txns[i].CreatedAt.After(txns[j].CreatedAt)
		case di == nil:
			return false
		case dj == nil:
			return true
		default:
			return di.After(*dj)
		}
	})
	return txns
}

func paginate(txns []*transaction.Transaction, limit, offset int) []*transaction.Transaction {
	if offset >= len(txns) {
		return nil
	}
	txns = txns[offset:]
	if limit > 0 && limit < len(txns) {
		txns = txns[:limit]
	}
	return txns
}

type CategoryRepository struct{ s *Store }

var _ category.Repository = (*CategoryRepository)(nil)

func (s *Store) CategoryRepository() *CategoryRepository { return &CategoryRepository{s} }

func (r *CategoryRepository) List(ctx context.Context) ([]*category.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*category.Category
	for _, c := range r.s.categories {
		out = append(out, copyCategory(c))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Type != out[j].Type {
			return out[i].Type < out[j].Type
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (r *CategoryRepository) GetByID(ctx context.Context, id string) (*category.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if c, ok := r.s.categories[id]; ok {
		return copyCategory(c), nil
	}
	return nil, nil
}

func (r *CategoryRepository) UpdateBudget(ctx context.Context, id string, budget float64) (*category.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.categories[id]
	if !ok {
		return nil, nil
	}
	c.Budget = budget
	c.UpdatedAt = time.Now()
	return copyCategory(c), nil
}

type ItemRepository struct{ s *Store }

var _ plaid.ItemRepository = (*ItemRepository)(nil)

func (s *Store) ItemRepository() *ItemRepository { return &ItemRepository{s} }

func (r *ItemRepository) FindOrCreate(ctx context.Context, id string, userID int64, bankName, accessToken string) (*plaid.Item, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if it, ok := r.s.items[id]; ok {
		it.BankName = bankName
		it.AccessToken = accessToken
		it.UpdatedAt = time.Now()
		cp := *it
		return &cp, nil
	}
	it := &plaid.Item{
		ID:          id,
		UserID:      userID,
		BankName:    bankName,
		AccessToken: accessToken,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	r.s.items[id] = it
	cp := *it
	return &cp, nil
}

func (r *ItemRepository) ListByUserID(ctx context.Context, userID int64) ([]*plaid.Item, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*plaid.Item
	for _, it := range r.s.items {
		if it.UserID == userID {
			cp := *it
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *ItemRepository) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.items, id)
	return nil
}

type UserRepository struct{ s *Store }

var _ user.Repository = (*UserRepository)(nil)

func (s *Store) UserRepository() *UserRepository { return &UserRepository{s} }

func (r *UserRepository) Create(ctx context.Context, params user.CreateParams) (*user.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email == params.Email {
			return nil, user.ErrEmailTaken
		}
	}
	r.s.nextUserID++
	u := &user.User{
		ID:           r.s.nextUserID,
		Email:        params.Email,
		FullName:     params.FullName,
		PasswordHash: params.PasswordHash,
		FirebaseUID:  params.FirebaseUID,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	r.s.users[u.ID] = u
	cp := *u
	return &cp, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*user.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if u, ok := r.s.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, user.ErrUserNotFound
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, user.ErrUserNotFound
}

func (r *UserRepository) GetByFirebaseUID(ctx context.Context, uid string) (*user.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.users {
		if u.FirebaseUID != nil && *u.FirebaseUID == uid {
			cp := *u
			return &cp, nil
		}
	}
	return nil, user.ErrUserNotFound
}

func (r *UserRepository) List(ctx context.Context) ([]*user.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*user.User
	for _, u := range r.s.users {
		cp := *u
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
