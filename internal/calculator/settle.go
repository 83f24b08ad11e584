package calculator

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/mmynk/groupledger/internal/money"
)

// Transfer is one suggested payment that moves a debtor toward zero.
type Transfer struct {
	From   string          `json:"from"` // Member who owes
	To     string          `json:"to"`   // Member who is owed
	Amount decimal.Decimal `json:"amount"`
}

// PlanSettlements turns net balances into a list of transfers that would
// bring every balance to zero.
//
// Greedy algorithm: debtors are taken most-negative first and each one pays
// creditors in most-positive-first order until their debt is below one cent.
// The plan is valid but not guaranteed to use the fewest transfers possible.
// Balances within one cent of zero are ignored, and no transfer of one cent
// or less is emitted.
func PlanSettlements(balances []MemberBalance) []Transfer {
	var debtors, creditors []MemberBalance
	for _, b := range balances {
		if money.Negligible(b.Balance) {
			continue
		}
		if b.Balance.IsNegative() {
			debtors = append(debtors, b)
		} else {
			creditors = append(creditors, b)
		}
	}

	sort.SliceStable(debtors, func(i, j int) bool {
		return debtors[i].Balance.LessThan(debtors[j].Balance)
	})
	sort.SliceStable(creditors, func(i, j int) bool {
		return creditors[i].Balance.GreaterThan(creditors[j].Balance)
	})

	credit := make([]decimal.Decimal, len(creditors))
	for j, c := range creditors {
		credit[j] = c.Balance
	}

	var transfers []Transfer
	for _, debtor := range debtors {
		remaining := debtor.Balance.Neg()

		for j, creditor := range creditors {
			if !credit[j].IsPositive() {
				continue
			}

			amount := money.Min(remaining, credit[j])
			if money.Significant(amount) { // Skip sub-cent remainders
				transfers = append(transfers, Transfer{
					From:   debtor.MemberID,
					To:     creditor.MemberID,
					Amount: amount,
				})
				remaining = remaining.Sub(amount)
				credit[j] = credit[j].Sub(amount)
			}

			if remaining.LessThan(money.Epsilon) {
				break
			}
		}
	}
	return transfers
}
