package plaid

import (
	"time"
)

// dateLayout is the strict format transaction dates arrive in.
const dateLayout = "2006-01-02"

// Item is one delivery of account/transaction deltas for a single bank
// connection, already authenticated and parsed.
type Item struct {
	ItemID   string        `json:"item_id"`
	BankName string        `json:"bank_name"`
	Accounts []Account     `json:"accounts"`
	Added    []Transaction `json:"added"`
	Modified []Transaction `json:"modified"`
	Removed  []Transaction `json:"removed"`
}

// Balances carries an account's balance snapshot. Most fields are optional in
// the provider payload.
type Balances struct {
	Available       *float64 `json:"available"`
	Current         *float64 `json:"current"`
	ISOCurrencyCode *string  `json:"iso_currency_code"`
}

// CurrentBalance returns the current balance, defaulting to 0 when absent.
func (b Balances) CurrentBalance() float64 {
	if b.Current == nil {
		return 0
	}
	return *b.Current
}

// Currency returns the ISO 4217 currency code, defaulting to USD when absent.
func (b Balances) Currency() string {
	if b.ISOCurrencyCode == nil || *b.ISOCurrencyCode == "" {
		return "USD"
	}
	return *b.ISOCurrencyCode
}

// Account is an externally-sourced account record.
type Account struct {
	AccountID string   `json:"account_id"`
	Name      string   `json:"name"`
	Balances  Balances `json:"balances"`
	Type      string   `json:"type"`
	Subtype   *string  `json:"subtype"`
	Mask      *string  `json:"mask"`
}

// GetMask returns the last-digits display string, empty when absent.
func (a Account) GetMask() string {
	if a.Mask == nil {
		return ""
	}
	return *a.Mask
}

// PersonalFinanceCategory is the provider's category classification.
type PersonalFinanceCategory struct {
	Primary  string `json:"primary"`
	Detailed string `json:"detailed"`
}

// Transaction is an externally-sourced transaction record. Amount keeps the
// source feed's sign convention (positive = inflow).
type Transaction struct {
	TransactionID           string                   `json:"transaction_id"`
	AccountID               string                   `json:"account_id"`
	Name                    string                   `json:"name"`
	Amount                  float64                  `json:"amount"`
	Date                    string                   `json:"date"`
	ISOCurrencyCode         *string                  `json:"iso_currency_code"`
	PersonalFinanceCategory *PersonalFinanceCategory `json:"personal_finance_category"`
}

// ParsedDate parses the yyyy-MM-dd date string. An unparsable date yields nil
// rather than an error; the transaction is stored without a date.
func (t Transaction) ParsedDate() *time.Time {
	parsed, err := time.Parse(dateLayout, t.Date)
	if err != nil {
		return nil
	}
	return &parsed
}

// Currency returns the ISO 4217 currency code, defaulting to USD when absent.
func (t Transaction) Currency() string {
	if t.ISOCurrencyCode == nil || *t.ISOCurrencyCode == "" {
		return "USD"
	}
	return *t.ISOCurrencyCode
}
