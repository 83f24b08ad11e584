package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// BudgetPeriod is the timeframe a budget applies to.
type BudgetPeriod string

const (
	BudgetWeekly    BudgetPeriod = "weekly"
	BudgetMonthly   BudgetPeriod = "monthly"
	BudgetQuarterly BudgetPeriod = "quarterly"
	BudgetYearly    BudgetPeriod = "yearly"
	BudgetCustom    BudgetPeriod = "custom"
)

// Budget is a spending target for a group. Budgets never affect balances.
type Budget struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Amount   decimal.Decimal `json:"amount"`
	Category string          `json:"category,omitempty"`
	Period   BudgetPeriod    `json:"period"`

	// StartDate and EndDate are only set for custom periods.
	StartDate Date `json:"startDate"`
	EndDate   Date `json:"endDate"`

	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	CreatedBy string    `json:"createdBy,omitempty"`
}

// Validate checks name, amount, period and the custom date range.
func (b *Budget) Validate() error {
	if b.Name == "" {
		return fmt.Errorf("%w: name required", ErrInvalidBudget)
	}
	if !b.Amount.IsPositive() {
		return fmt.Errorf("%w: %s", ErrInvalidAmount, b.Amount)
	}
	switch b.Period {
	case BudgetWeekly, BudgetMonthly, BudgetQuarterly, BudgetYearly:
		return nil
	case BudgetCustom:
		if b.StartDate.IsZero() || b.EndDate.IsZero() {
			return fmt.Errorf("%w: custom period needs start and end dates", ErrInvalidBudget)
		}
		if b.StartDate.After(b.EndDate.Time) {
			return fmt.Errorf("%w: start date must be before end date", ErrInvalidBudget)
		}
		return nil
	default:
		return fmt.Errorf("%w: unknown period %q", ErrInvalidBudget, b.Period)
	}
}
