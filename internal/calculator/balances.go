package calculator

import (
	"github.com/shopspring/decimal"

	"github.com/mmynk/groupledger/internal/models"
)

// MemberBalance represents the balance information for one group member.
type MemberBalance struct {
	MemberID  string          `json:"memberId"`
	Balance   decimal.Decimal `json:"balance"`   // Positive = owed money, Negative = owes money
	TotalPaid decimal.Decimal `json:"totalPaid"` // Contributions plus settlements sent
	TotalOwed decimal.Decimal `json:"totalOwed"` // Split shares plus settlements received
}

// TotalPaid sums what memberID contributed to expenses plus every settlement
// they sent.
func TotalPaid(expenses []models.Expense, settlements []models.Settlement, memberID string) decimal.Decimal {
	total := decimal.Zero
	for i := range expenses {
		total = total.Add(expenses[i].PaidBy(memberID))
	}
	for _, s := range settlements {
		if s.From == memberID {
			total = total.Add(s.Amount)
		}
	}
	return total
}

// TotalOwed sums memberID's split shares plus every settlement they received.
func TotalOwed(expenses []models.Expense, settlements []models.Settlement, memberID string) decimal.Decimal {
	total := decimal.Zero
	for i := range expenses {
		total = total.Add(expenses[i].OwedBy(memberID))
	}
	for _, s := range settlements {
		if s.To == memberID {
			total = total.Add(s.Amount)
		}
	}
	return total
}

// Balance is TotalPaid minus TotalOwed.
func Balance(expenses []models.Expense, settlements []models.Settlement, memberID string) decimal.Decimal {
	return TotalPaid(expenses, settlements, memberID).Sub(TotalOwed(expenses, settlements, memberID))
}

// CalculateBalances derives one MemberBalance per entry of memberIDs, in
// that order, from the full expense and settlement history.
//
// Algorithm:
// - For each expense: each payer contributed +amount, each split member owes their share
// - For each settlement: sender's paid total grows, receiver's owed total grows
// - net balance = total paid - total owed
//
// Every unit paid is owed by someone and every settlement moves credit
// between two members, so the balances always sum to zero.
func CalculateBalances(memberIDs []string, expenses []models.Expense, settlements []models.Settlement) []MemberBalance {
	paid := make(map[string]decimal.Decimal, len(memberIDs))
	owed := make(map[string]decimal.Decimal, len(memberIDs))

	for _, e := range expenses {
		for _, p := range e.Payers {
			paid[p.MemberID] = paid[p.MemberID].Add(p.Amount)
		}
		for _, s := range e.Splits {
			owed[s.MemberID] = owed[s.MemberID].Add(s.Amount)
		}
	}
	for _, s := range settlements {
		paid[s.From] = paid[s.From].Add(s.Amount)
		owed[s.To] = owed[s.To].Add(s.Amount)
	}

	balances := make([]MemberBalance, len(memberIDs))
	for i, id := range memberIDs {
		balances[i] = MemberBalance{
			MemberID:  id,
			TotalPaid: paid[id],
			TotalOwed: owed[id],
			Balance:   paid[id].Sub(owed[id]),
		}
	}
	return balances
}
