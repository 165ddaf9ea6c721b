package account

import (
	"errors"
	"strings"
	"time"
)

// Type classifies an account. External accounts arrive with a lowercase type
// string from the aggregation provider; cash accounts are created locally.
type Type string

const (
	TypeCash       Type = "Cash"
	TypeDepository Type = "Depository"
	TypeCredit     Type = "Credit"
	TypeSplit      Type = "Split"
)

var accountTypes = map[Type]struct{}{
	TypeCash:       {},
	TypeDepository: {},
	TypeCredit:     {},
	TypeSplit:      {},
}

// Domain errors
var (
	ErrAccountNotFound   = errors.New("account not found")
	ErrForbidden         = errors.New("access forbidden")
	ErrCashAccountExists = errors.New("cash account already exists")
	ErrInvalidInput      = errors.New("invalid input")
)

// TypeFromExternal maps a provider type string ("depository", "credit", ...)
// onto the local enumeration by capitalizing it. An unmappable type yields the
// empty Type rather than an error; the account is created with its type unset.
func TypeFromExternal(s string) Type {
	if s == "" {
		return ""
	}
	t := Type(strings.ToUpper(s[:1]) + strings.ToLower(s[1:]))
	if _, ok := accountTypes[t]; !ok {
		return ""
	}
	return t
}

// Account is a financial account. Externally sourced accounts use the
// provider's stable account id as ID; at most one account exists per external
// id. Locally created cash accounts use a generated UUID, and at most one may
// exist per user.
type Account struct {
	ID           string    `json:"id"`
	UserID       int64     `json:"userId"`
	ItemID       string    `json:"itemId,omitempty"`
	Name         string    `json:"name"`
	Type         Type      `json:"type,omitempty"`
	Balance      float64   `json:"balance"`
	CurrencyCode string    `json:"currencyCode"`
	BankName     string    `json:"bankName,omitempty"`
	Mask         string    `json:"mask,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
