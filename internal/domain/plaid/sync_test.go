package plaid_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"finwise/internal/domain/account"
	domainplaid "finwise/internal/domain/plaid"
	"finwise/internal/infrastructure/memory"
	plaidclient "finwise/internal/infrastructure/plaid"
)

func ptrF(f float64) *float64 { return &f }
func ptrS(s string) *string   { return &s }

func extAccount(id, name string, balance float64) plaidclient.Account {
	return plaidclient.Account{
		AccountID: id,
		Name:      name,
		Type:      "depository",
		Balances:  plaidclient.Balances{Current: ptrF(balance)},
		Mask:      ptrS("1234"),
	}
}

func extTransaction(id, accountID, name string, amount float64, date string) plaidclient.Transaction {
	return plaidclient.Transaction{
		TransactionID: id,
		AccountID:     accountID,
		Name:          name,
		Amount:        amount,
		Date:          date,
		PersonalFinanceCategory: &plaidclient.PersonalFinanceCategory{
			Primary:  "FOOD_AND_DRINK",
			Detailed: "FOOD_AND_DRINK_GROCERIES",
		},
	}
}

func TestSyncCreatesAccountsAndTransactions(t *testing.T) {
	ctx := context.Background()
	st := memory.NewStore()
	svc := domainplaid.NewSyncService(st, nil, false)

	batch := &plaidclient.Item{
		ItemID:   "item-1",
		BankName: "Test Bank",
		Accounts: []plaidclient.Account{extAccount("acc-1", "Checking", 1500)},
		Added: []plaidclient.Transaction{
			extTransaction("txn-1", "acc-1", "Grocery Store", -42.50, "2025-03-15"),
		},
	}

	result, err := svc.Sync(ctx, 1, "access-token", batch)
	if err != nil {
		t.Fatalf("Sync() error = %v", err)
	}

	if result.AccountsCreated != 1 {
		t.Errorf("AccountsCreated = %d, want 1", result.AccountsCreated)
	}
	if result.Added != 1 {
		t.Errorf("Added = %d, want 1", result.Added)
	}
	if len(result.Errors) != 0 {
		t.Errorf("Errors = %v, want none", result.Errors)
	}

	a, err := st.FindAccountByID(ctx, "acc-1")
	if err != nil {
		t.Fatalf("FindAccountByID() error = %v", err)
	}
	if a == nil {
		t.Fatal("account acc-1 not persisted")
	}
	if a.Type != account.TypeDepository {
		t.Errorf("account type = %q, want %q", a.Type, account.TypeDepository)
	}
	if a.Balance != 1500 {
		t.Errorf("account balance = %v, want 1500", a.Balance)
	}
	if a.BankName != "Test Bank" {
		t.Errorf("account bank name = %q, want %q", a.BankName, "Test Bank")
	}

	txn, err := st.FindTransactionByID(ctx, "txn-1")
	if err != nil {
		t.Fatalf("FindTransactionByID() error = %v", err)
	}
	if txn == nil {
		t.Fatal("transaction txn-1 not persisted")
	}
	if txn.CategoryID == nil {
		t.Error("transaction should have a resolved category")
	}
	if txn.Date == nil || txn.Date.Format("2006-01-02") != "2025-03-15" {
		t.Errorf("transaction date = %v, want 2025-03-15", txn.Date)
	}
}

func TestSyncExistingAccountSkippedByDefault(t *testing.T) {
	ctx := context.Background()
	st := memory.NewStore()
	svc := domainplaid.NewSyncService(st, nil, false)

	first := &plaidclient.Item{
		ItemID:   "item-1",
		Accounts: []plaidclient.Account{extAccount("acc-1", "Checking", 1000)},
	}
	if _, err := svc.Sync(ctx, 1, "tok", first); err != nil {
		t.Fatalf("first Sync() error = %v", err)
	}

	second := &plaidclient.Item{
		ItemID:   "item-1",
		Accounts: []plaidclient.Account{extAccount("acc-1", "Renamed", 9999)},
	}
	result, err := svc.Sync(ctx, 1, "tok", second)
	if err != nil {
		t.Fatalf("second Sync() error = %v", err)
	}

	if result.AccountsCreated != 0 {
		t.Errorf("AccountsCreated = %d, want 0", result.AccountsCreated)
	}
	if result.AccountsUpdated != 0 {
		t.Errorf("AccountsUpdated = %d, want 0", result.AccountsUpdated)
	}

	a, _ := st.FindAccountByID(ctx, "acc-1")
	if a.Balance != 1000 {
		t.Errorf("balance = %v, want 1000 (untouched)", a.Balance)
	}
	if a.Name != "Checking" {
		t.Errorf("name = %q, want %q (untouched)", a.Name, "Checking")
	}
}

func TestSyncRefreshAccountsUpdatesBalances(t *testing.T) {
	ctx := context.Background()
	st := memory.NewStore()
	svc := domainplaid.NewSyncService(st, nil, true)

	first := &plaidclient.Item{
		ItemID:   "item-1",
		Accounts: []plaidclient.Account{extAccount("acc-1", "Checking", 1000)},
	}
	if _, err := svc.Sync(ctx, 1, "tok", first); err != nil {
		t.Fatalf("first Sync() error = %v", err)
	}

	second := &plaidclient.Item{
		ItemID:   "item-1",
		Accounts: []plaidclient.Account{extAccount("acc-1", "Checking Plus", 2345)},
	}
	result, err := svc.Sync(ctx, 1, "tok", second)
	if err != nil {
		t.Fatalf("second Sync() error = %v", err)
	}

	if result.AccountsUpdated != 1 {
		t.Errorf("AccountsUpdated = %d, want 1", result.AccountsUpdated)
	}

	a, _ := st.FindAccountByID(ctx, "acc-1")
	if a.Balance != 2345 {
		t.Errorf("balance = %v, want 2345", a.Balance)
	}
	if a.Name != "Checking Plus" {
		t.Errorf("name = %q, want %q", a.Name, "Checking Plus")
	}
}

func TestSyncAddedSkipsUnknownAccountAndDuplicates(t *testing.T) {
	ctx := context.Background()
	st := memory.NewStore()
	svc := domainplaid.NewSyncService(st, nil, false)

	batch := &plaidclient.Item{
		ItemID:   "item-1",
		Accounts: []plaidclient.Account{extAccount("acc-1", "Checking", 100)},
		Added: []plaidclient.Transaction{
			extTransaction("txn-1", "acc-1", "Coffee", -4, "2025-01-02"),
			extTransaction("txn-2", "acc-unknown", "Orphan", -5, "2025-01-02"),
			extTransaction("txn-1", "acc-1", "Coffee Again", -4, "2025-01-02"),
		},
	}

	result, err := svc.Sync(ctx, 1, "tok", batch)
	if err != nil {
		t.Fatalf("Sync() error = %v", err)
	}

	if result.Added != 1 {
		t.Errorf("Added = %d, want 1", result.Added)
	}
	if result.Skipped != 2 {
		t.Errorf("Skipped = %d, want 2", result.Skipped)
	}
	if len(result.Errors) != 0 {
		t.Errorf("Errors = %v, want none (skips are not errors)", result.Errors)
	}
}

func TestSyncModifiedAndRemoved(t *testing.T) {
	ctx := context.Background()
	st := memory.NewStore()
	svc := domainplaid.NewSyncService(st, nil, false)

	seed := &plaidclient.Item{
		ItemID:   "item-1",
		Accounts: []plaidclient.Account{extAccount("acc-1", "Checking", 100)},
		Added: []plaidclient.Transaction{
			extTransaction("txn-1", "acc-1", "Original", -10, "2025-01-02"),
			extTransaction("txn-2", "acc-1", "Doomed", -20, "2025-01-03"),
		},
	}
	if _, err := svc.Sync(ctx, 1, "tok", seed); err != nil {
		t.Fatalf("seed Sync() error = %v", err)
	}

	update := &plaidclient.Item{
		ItemID: "item-1",
		Modified: []plaidclient.Transaction{
			extTransaction("txn-1", "acc-1", "Corrected", -12.34, "2025-01-05"),
			extTransaction("txn-missing", "acc-1", "Ghost", -1, "2025-01-05"),
		},
		Removed: []plaidclient.Transaction{
			{TransactionID: "txn-2"},
			{TransactionID: "txn-gone"},
		},
	}
	result, err := svc.Sync(ctx, 1, "tok", update)
	if err != nil {
		t.Fatalf("update Sync() error = %v", err)
	}

	if result.Modified != 1 {
		t.Errorf("Modified = %d, want 1", result.Modified)
	}
	if result.Removed != 1 {
		t.Errorf("Removed = %d, want 1", result.Removed)
	}
	if result.Skipped != 2 {
		t.Errorf("Skipped = %d, want 2", result.Skipped)
	}

	txn, _ := st.FindTransactionByID(ctx, "txn-1")
	if txn == nil {
		t.Fatal("txn-1 missing after modification")
	}
	if txn.Name != "Corrected" || txn.Amount != -12.34 {
		t.Errorf("txn-1 = %q/%v, want Corrected/-12.34", txn.Name, txn.Amount)
	}

	gone, _ := st.FindTransactionByID(ctx, "txn-2")
	if gone != nil {
		t.Error("txn-2 should have been removed")
	}
}

func TestSyncUnparsableDateStoredWithoutDate(t *testing.T) {
	ctx := context.Background()
	st := memory.NewStore()
	svc := domainplaid.NewSyncService(st, nil, false)

	batch := &plaidclient.Item{
		ItemID:   "item-1",
		Accounts: []plaidclient.Account{extAccount("acc-1", "Checking", 100)},
		Added: []plaidclient.Transaction{
			extTransaction("txn-1", "acc-1", "No Date", -5, "not-a-date"),
		},
	}

	result, err := svc.Sync(ctx, 1, "tok", batch)
	if err != nil {
		t.Fatalf("Sync() error = %v", err)
	}
	if result.Added != 1 {
		t.Fatalf("Added = %d, want 1", result.Added)
	}

	txn, _ := st.FindTransactionByID(ctx, "txn-1")
	if txn.Date != nil {
		t.Errorf("Date = %v, want nil for unparsable date", txn.Date)
	}
}

func TestSyncUnknownPrimaryLeavesUncategorized(t *testing.T) {
	ctx := context.Background()
	st := memory.NewStore()
	svc := domainplaid.NewSyncService(st, nil, false)

	txn := extTransaction("txn-1", "acc-1", "Mystery", -5, "2025-01-02")
	txn.PersonalFinanceCategory = &plaidclient.PersonalFinanceCategory{
		Primary:  "SOME_FUTURE_GROUP",
		Detailed: "SOME_FUTURE_GROUP_THING",
	}

	batch := &plaidclient.Item{
		ItemID:   "item-1",
		Accounts: []plaidclient.Account{extAccount("acc-1", "Checking", 100)},
		Added:    []plaidclient.Transaction{txn},
	}

	result, err := svc.Sync(ctx, 1, "tok", batch)
	if err != nil {
		t.Fatalf("Sync() error = %v", err)
	}
	if result.Added != 1 {
		t.Fatalf("Added = %d, want 1 (unknown category must not skip the record)", result.Added)
	}
	if len(result.Errors) != 0 {
		t.Errorf("Errors = %v, want none for an unknown primary code", result.Errors)
	}

	stored, _ := st.FindTransactionByID(ctx, "txn-1")
	if stored.CategoryID != nil {
		t.Errorf("CategoryID = %v, want nil", *stored.CategoryID)
	}
}

func TestSyncCommitFailureHaltsPass(t *testing.T) {
	ctx := context.Background()
	st := memory.NewStore()
	svc := domainplaid.NewSyncService(st, nil, false)

	// Let the account phase commit, then fail the added phase commit.
	st.CommitErr = errors.New("connection reset")
	st.CommitsUntilErr = 1

	batch := &plaidclient.Item{
		ItemID:   "item-1",
		Accounts: []plaidclient.Account{extAccount("acc-1", "Checking", 100)},
		Added: []plaidclient.Transaction{
			extTransaction("txn-1", "acc-1", "Lost", -5, "2025-01-02"),
		},
	}

	result, err := svc.Sync(ctx, 1, "tok", batch)
	if err == nil {
		t.Fatal("Sync() expected error on commit failure")
	}
	if !strings.Contains(err.Error(), "commit failed after added phase") {
		t.Errorf("error = %v, want added phase commit failure", err)
	}

	// The account phase committed before the failure and stays applied.
	if result.AccountsCreated != 1 {
		t.Errorf("AccountsCreated = %d, want 1", result.AccountsCreated)
	}
	a, _ := st.FindAccountByID(ctx, "acc-1")
	if a == nil {
		t.Error("account phase commit should have persisted acc-1")
	}

	// The added phase batch was discarded.
	txn, _ := st.FindTransactionByID(ctx, "txn-1")
	if txn != nil {
		t.Error("txn-1 should have been discarded with the failed commit")
	}
}

func TestSyncSharedCategoryAcrossTransactions(t *testing.T) {
	ctx := context.Background()
	st := memory.NewStore()
	svc := domainplaid.NewSyncService(st, nil, false)

	batch := &plaidclient.Item{
		ItemID:   "item-1",
		Accounts: []plaidclient.Account{extAccount("acc-1", "Checking", 100)},
		Added: []plaidclient.Transaction{
			extTransaction("txn-1", "acc-1", "Groceries A", -10, "2025-01-02"),
			extTransaction("txn-2", "acc-1", "Groceries B", -20, "2025-01-03"),
		},
	}

	if _, err := svc.Sync(ctx, 1, "tok", batch); err != nil {
		t.Fatalf("Sync() error = %v", err)
	}

	t1, _ := st.FindTransactionByID(ctx, "txn-1")
	t2, _ := st.FindTransactionByID(ctx, "txn-2")
	if t1.CategoryID == nil || t2.CategoryID == nil {
		t.Fatal("both transactions should be categorized")
	}
	if *t1.CategoryID != *t2.CategoryID {
		t.Errorf("category ids differ: %s vs %s, want one shared category", *t1.CategoryID, *t2.CategoryID)
	}
}

func TestSyncModifiedWinsOverAddedInSamePass(t *testing.T) {
	ctx := context.Background()
	st := memory.NewStore()
	svc := domainplaid.NewSyncService(st, nil, false)

	// The same external id appears in both lists; the modified phase runs
	// after the added phase's commit, so the stored row ends up with the
	// modified values.
	batch := &plaidclient.Item{
		ItemID:   "item-1",
		Accounts: []plaidclient.Account{extAccount("acc-1", "Checking", 100)},
		Added: []plaidclient.Transaction{
			extTransaction("txn-1", "acc-1", "Pending Charge", -10, "2025-01-02"),
		},
		Modified: []plaidclient.Transaction{
			extTransaction("txn-1", "acc-1", "Settled Charge", -12.50, "2025-01-03"),
		},
	}

	result, err := svc.Sync(ctx, 1, "tok", batch)
	if err != nil {
		t.Fatalf("Sync() error = %v", err)
	}
	if result.Added != 1 || result.Modified != 1 {
		t.Errorf("result = %+v, want Added=1 Modified=1", result)
	}

	txn, _ := st.FindTransactionByID(ctx, "txn-1")
	if txn == nil {
		t.Fatal("transaction missing")
	}
	if txn.Name != "Settled Charge" || txn.Amount != -12.50 {
		t.Errorf("stored = (%q, %v), want modified values", txn.Name, txn.Amount)
	}
}
