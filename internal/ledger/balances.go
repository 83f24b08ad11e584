package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/mmynk/groupledger/internal/calculator"
	"github.com/mmynk/groupledger/internal/models"
)

// BalanceOf returns memberID's net position in g. Positive means the group
// owes them money.
func BalanceOf(g *models.Group, memberID string) (decimal.Decimal, error) {
	if err := requireMember(g, memberID); err != nil {
		return decimal.Zero, err
	}
	return calculator.Balance(g.Expenses, g.Settlements, memberID), nil
}

// TotalPaidBy returns expense contributions plus settlements sent.
func TotalPaidBy(g *models.Group, memberID string) (decimal.Decimal, error) {
	if err := requireMember(g, memberID); err != nil {
		return decimal.Zero, err
	}
	return calculator.TotalPaid(g.Expenses, g.Settlements, memberID), nil
}

// TotalOwedBy returns split shares plus settlements received.
func TotalOwedBy(g *models.Group, memberID string) (decimal.Decimal, error) {
	if err := requireMember(g, memberID); err != nil {
		return decimal.Zero, err
	}
	return calculator.TotalOwed(g.Expenses, g.Settlements, memberID), nil
}

// BalancesOf returns one row per member in member order.
func BalancesOf(g *models.Group) []calculator.MemberBalance {
	return calculator.CalculateBalances(g.MemberIDs(), g.Expenses, g.Settlements)
}

// SettlementPlan suggests the transfers that would bring every balance in g
// back to zero.
func SettlementPlan(g *models.Group) []calculator.Transfer {
	return calculator.PlanSettlements(BalancesOf(g))
}

func requireMember(g *models.Group, memberID string) error {
	if !g.HasMember(memberID) {
		return fmt.Errorf("member %s: %w", memberID, models.ErrNotFound)
	}
	return nil
}
