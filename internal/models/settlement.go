package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Settlement represents a payment between group members to clear debts.
type Settlement struct {
	// ID is the unique identifier for the settlement (UUID format).
	ID string `json:"id"`

	// From is the member who paid (debtor settling up).
	From string `json:"from"`

	// To is the member who received payment (creditor being paid).
	To string `json:"to"`

	// Amount is the payment amount. Always positive.
	Amount decimal.Decimal `json:"amount"`

	// Date is the day the payment happened.
	Date Date `json:"date"`

	// Notes is an optional description for the settlement.
	Notes string `json:"notes,omitempty"`

	// CreatedAt is when the settlement was recorded.
	CreatedAt time.Time `json:"createdAt"`

	// CreatedBy is the user ID who recorded this settlement.
	CreatedBy string `json:"createdBy,omitempty"`
}
