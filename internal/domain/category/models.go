package category

import (
	"context"
	"time"
)

// Type is one of the 16 high-level category groups the aggregation provider
// classifies transactions into.
type Type string

const (
	TypeIncome                 Type = "Income"
	TypeTransferIn             Type = "Transfer In"
	TypeTransferOut            Type = "Transfer Out"
	TypeLoanPayments           Type = "Loan Payments"
	TypeBankFees               Type = "Bank Fees"
	TypeEntertainment          Type = "Entertainment"
	TypeFoodAndDrink           Type = "Food And Drink"
	TypeGeneralMerchandise     Type = "General Merchandise"
	TypeHomeImprovement        Type = "Home Improvement"
	TypeMedical                Type = "Medical"
	TypePersonalCare           Type = "Personal Care"
	TypeGeneralServices        Type = "General Services"
	TypeGovernmentAndNonProfit Type = "Government And Non Profit"
	TypeTransportation         Type = "Transportation"
	TypeTravel                 Type = "Travel"
	TypeRentAndUtilities       Type = "Rent And Utilities"
)

// Types returns all category types in presentation order.
func Types() []Type {
	return []Type{
		TypeIncome, TypeTransferIn, TypeTransferOut, TypeLoanPayments,
		TypeBankFees, TypeEntertainment, TypeFoodAndDrink, TypeGeneralMerchandise,
		TypeHomeImprovement, TypeMedical, TypePersonalCare, TypeGeneralServices,
		TypeGovernmentAndNonProfit, TypeTransportation, TypeTravel, TypeRentAndUtilities,
	}
}

// Category is a canonical spending category. Its identity is the (Name, Type)
// pair; the ID is a locally generated surrogate used for foreign keys only.
// No two categories with the same (Name, Type) may exist in a store.
type Category struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Type      Type      `json:"type"`
	Budget    float64   `json:"budget"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Repository defines read/write access to categories outside a sync pass
// (listing for the budgets screen, setting a budget target).
type Repository interface {
	List(ctx context.Context) ([]*Category, error)
	GetByID(ctx context.Context, id string) (*Category, error)
	UpdateBudget(ctx context.Context, id string, budget float64) (*Category, error)
}
