package transaction

import (
	"time"
)

// Transaction is a single account movement. Externally sourced rows use the
// provider's stable transaction id as ID. Amount keeps the source feed's sign
// convention (positive = inflow) and is never re-signed locally.
type Transaction struct {
	ID string `json:"id"`
	// AccountID references the owning account. It becomes empty when the
	// account is deleted; the transaction itself is kept.
	AccountID    string     `json:"accountId,omitempty"`
	CategoryID   *string    `json:"categoryId,omitempty"`
	Name         string     `json:"name"`
	Amount       float64    `json:"amount"`
	CurrencyCode string     `json:"currencyCode"`
	// Date is nil when the source date string could not be parsed.
	Date      *time.Time `json:"date,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}
