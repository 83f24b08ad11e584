package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PayerContribution is how much one member paid toward an expense.
type PayerContribution struct {
	MemberID string          `json:"memberId"`
	Amount   decimal.Decimal `json:"amount"`
}

// Expense represents a recorded cost: who paid it and who owes a share.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string `json:"id"`

	// Description is the human-readable name (e.g., "Groceries").
	Description string `json:"description"`

	// Amount is the total cost. Always positive.
	Amount decimal.Decimal `json:"amount"`

	// Category classifies the expense (e.g., "food", "transport").
	Category string `json:"category,omitempty"`

	// Date is the day the expense was incurred.
	Date Date `json:"date"`

	// Notes is optional free text.
	Notes string `json:"notes,omitempty"`

	// Payers sum to Amount within one cent.
	Payers []PayerContribution `json:"payers"`

	// Splits sum to Amount within one cent; member IDs are unique.
	Splits []SplitShare `json:"splits"`

	// SplitType is the strategy Splits were computed with.
	SplitType SplitType `json:"splitType"`

	// CreatedAt is when the expense was recorded.
	CreatedAt time.Time `json:"createdAt"`

	// CreatedBy is the user ID who recorded this expense.
	CreatedBy string `json:"createdBy,omitempty"`
}

// PaidBy returns the total memberID contributed to this expense.
func (e *Expense) PaidBy(memberID string) decimal.Decimal {
	total := decimal.Zero
	for _, p := range e.Payers {
		if p.MemberID == memberID {
			total = total.Add(p.Amount)
		}
	}
	return total
}

// OwedBy returns memberID's share of this expense.
func (e *Expense) OwedBy(memberID string) decimal.Decimal {
	total := decimal.Zero
	for _, s := range e.Splits {
		if s.MemberID == memberID {
			total = total.Add(s.Amount)
		}
	}
	return total
}
