package ledger

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/mmynk/groupledger/internal/models"
)

// Uncategorized labels expenses recorded without a category.
const Uncategorized = "other"

// CategoryTotal is the amount spent in one expense category.
type CategoryTotal struct {
	Category string          `json:"category"`
	Total    decimal.Decimal `json:"total"`
	Count    int             `json:"count"`
}

// PayerTotal is how much one member has contributed to expenses.
type PayerTotal struct {
	MemberID string          `json:"memberId"`
	Total    decimal.Decimal `json:"total"`
}

// DailySpend is the spending on one expense date and the running total
// up to and including it.
type DailySpend struct {
	Date       models.Date     `json:"date"`
	Total      decimal.Decimal `json:"total"`
	Cumulative decimal.Decimal `json:"cumulative"`
}

// GroupSummary holds headline numbers for a group.
type GroupSummary struct {
	TotalExpenses   decimal.Decimal `json:"totalExpenses"`
	ExpenseCount    int             `json:"expenseCount"`
	SettlementCount int             `json:"settlementCount"`
	MemberCount     int             `json:"memberCount"`
	ByCategory      []CategoryTotal `json:"byCategory"`

	// AverageExpense is rounded to cents; zero with no expenses.
	AverageExpense decimal.Decimal `json:"averageExpense"`

	// LatestExpenseDate is the zero Date with no expenses.
	LatestExpenseDate models.Date `json:"latestExpenseDate"`

	// TopPayer is nil with no expenses. Ties go to whoever paid first.
	TopPayer *PayerTotal `json:"topPayer,omitempty"`

	// Spending is ordered by date, oldest first.
	Spending []DailySpend `json:"spending"`
}

// Summary totals g's expenses. Categories are ordered by descending total,
// then by name.
func Summary(g *models.Group) GroupSummary {
	s := GroupSummary{
		TotalExpenses:   decimal.Zero,
		ExpenseCount:    len(g.Expenses),
		SettlementCount: len(g.Settlements),
		MemberCount:     len(g.Members),
		ByCategory:      []CategoryTotal{},
	}

	index := make(map[string]int)
	for _, e := range g.Expenses {
		s.TotalExpenses = s.TotalExpenses.Add(e.Amount)

		cat := e.Category
		if cat == "" {
			cat = Uncategorized
		}
		i, ok := index[cat]
		if !ok {
			i = len(s.ByCategory)
			index[cat] = i
			s.ByCategory = append(s.ByCategory, CategoryTotal{Category: cat, Total: decimal.Zero})
		}
		s.ByCategory[i].Total = s.ByCategory[i].Total.Add(e.Amount)
		s.ByCategory[i].Count++
	}

	sort.SliceStable(s.ByCategory, func(i, j int) bool {
		a, b := s.ByCategory[i], s.ByCategory[j]
		if !a.Total.Equal(b.Total) {
			return a.Total.GreaterThan(b.Total)
		}
		return a.Category < b.Category
	})

	s.Spending = spendingByDate(g.Expenses)
	s.TopPayer = topPayer(g.Expenses)
	if n := len(g.Expenses); n > 0 {
		s.AverageExpense = s.TotalExpenses.Div(decimal.NewFromInt(int64(n))).Round(2)
		s.LatestExpenseDate = s.Spending[len(s.Spending)-1].Date
	} else {
		s.AverageExpense = decimal.Zero
	}
	return s
}

func spendingByDate(expenses []models.Expense) []DailySpend {
	days := []DailySpend{}
	index := make(map[string]int)
	for _, e := range expenses {
		key := e.Date.String()
		i, ok := index[key]
		if !ok {
			i = len(days)
			index[key] = i
			days = append(days, DailySpend{Date: e.Date, Total: decimal.Zero})
		}
		days[i].Total = days[i].Total.Add(e.Amount)
	}

	sort.Slice(days, func(i, j int) bool {
		return days[i].Date.Before(days[j].Date.Time)
	})
	running := decimal.Zero
	for i := range days {
		running = running.Add(days[i].Total)
		days[i].Cumulative = running
	}
	return days
}

func topPayer(expenses []models.Expense) *PayerTotal {
	var totals []PayerTotal
	index := make(map[string]int)
	for _, e := range expenses {
		for _, p := range e.Payers {
			i, ok := index[p.MemberID]
			if !ok {
				i = len(totals)
				index[p.MemberID] = i
				totals = append(totals, PayerTotal{MemberID: p.MemberID, Total: decimal.Zero})
			}
			totals[i].Total = totals[i].Total.Add(p.Amount)
		}
	}

	var top *PayerTotal
	for i := range totals {
		if top == nil || totals[i].Total.GreaterThan(top.Total) {
			top = &totals[i]
		}
	}
	return top
}
