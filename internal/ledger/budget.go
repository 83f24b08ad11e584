package ledger

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mmynk/groupledger/internal/models"
	"github.com/mmynk/groupledger/internal/money"
)

// AllCategories matches every expense when used as a budget category.
const AllCategories = "all"

// BudgetStatus compares a budget against what the group has spent in its
// category.
type BudgetStatus struct {
	Budget      models.Budget   `json:"budget"`
	Spent       decimal.Decimal `json:"spent"`
	Remaining   decimal.Decimal `json:"remaining"`
	PercentUsed decimal.Decimal `json:"percentUsed"`
	OverBudget  bool            `json:"overBudget"`
}

// AddBudget validates b and appends it to g.
func AddBudget(g *models.Group, b models.Budget, now time.Time) (models.Budget, error) {
	b.Name = strings.TrimSpace(b.Name)
	if b.Period == "" {
		b.Period = models.BudgetMonthly
	}
	if err := b.Validate(); err != nil {
		return models.Budget{}, err
	}
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	if b.CreatedAt.IsZero() {
		b.CreatedAt = now
	}
	g.Budgets = append(g.Budgets, b)
	g.LastActivity = now
	return b, nil
}

// DeleteBudget removes the budget with the given ID and returns it.
func DeleteBudget(g *models.Group, budgetID string, now time.Time) (models.Budget, error) {
	i := slices.IndexFunc(g.Budgets, func(b models.Budget) bool { return b.ID == budgetID })
	if i < 0 {
		return models.Budget{}, fmt.Errorf("budget %s: %w", budgetID, models.ErrNotFound)
	}
	removed := g.Budgets[i]
	g.Budgets = slices.Delete(g.Budgets, i, i+1)
	g.LastActivity = now
	return removed, nil
}

// BudgetStatuses reports spending against every budget of g, in order.
// A budget with an empty category or "all" counts every expense.
func BudgetStatuses(g *models.Group) []BudgetStatus {
	statuses := make([]BudgetStatus, 0, len(g.Budgets))
	for _, b := range g.Budgets {
		spent := decimal.Zero
		for _, e := range g.Expenses {
			if matchesCategory(b.Category, e.Category) {
				spent = spent.Add(e.Amount)
			}
		}
		percent := decimal.Zero
		if b.Amount.IsPositive() {
			percent = spent.Div(b.Amount).Mul(money.Hundred).Round(2)
		}
		statuses = append(statuses, BudgetStatus{
			Budget:      b,
			Spent:       spent,
			Remaining:   b.Amount.Sub(spent),
			PercentUsed: percent,
			OverBudget:  spent.GreaterThan(b.Amount),
		})
	}
	return statuses
}

func matchesCategory(budgetCategory, expenseCategory string) bool {
	if budgetCategory == "" || strings.EqualFold(budgetCategory, AllCategories) {
		return true
	}
	return strings.EqualFold(budgetCategory, expenseCategory)
}
