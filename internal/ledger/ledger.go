// Package ledger applies expense, settlement, member and budget events to a
// group and derives balances from the resulting history.
//
// Every function takes the group it acts on explicitly; there is no ambient
// "current group". Mutations validate completely before touching the group,
// so a failed call leaves it exactly as it was. Each successful mutation
// bumps Group.LastActivity to the supplied time.
package ledger

import (
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mmynk/groupledger/internal/models"
	"github.com/mmynk/groupledger/internal/money"
)

// ValidateExpense checks an expense record against g: positive amount,
// payers and splits that reconcile with the amount, unique split members,
// and only member IDs that belong to the group.
func ValidateExpense(g *models.Group, e *models.Expense) error {
	if err := money.RequirePositive(e.Amount); err != nil {
		return err
	}
	if _, err := models.ParseSplitType(string(e.SplitType)); err != nil {
		return err
	}

	if len(e.Payers) == 0 {
		return fmt.Errorf("%w: no payers", models.ErrPayerMismatch)
	}
	paid := decimal.Zero
	for _, p := range e.Payers {
		if err := money.RequirePositive(p.Amount); err != nil {
			return fmt.Errorf("payer %s: %w", p.MemberID, err)
		}
		if !g.HasMember(p.MemberID) {
			return fmt.Errorf("payer %s: %w", p.MemberID, models.ErrNotFound)
		}
		paid = paid.Add(p.Amount)
	}
	if !money.ApproxEqual(paid, e.Amount) {
		return fmt.Errorf("%w: got %s, want %s", models.ErrPayerMismatch, paid, e.Amount)
	}

	if len(e.Splits) == 0 {
		return models.ErrNoParticipants
	}
	seen := make(map[string]bool, len(e.Splits))
	owed := decimal.Zero
	for _, s := range e.Splits {
		if seen[s.MemberID] {
			return fmt.Errorf("%w: %s", models.ErrDuplicateParticipant, s.MemberID)
		}
		seen[s.MemberID] = true
		if !g.HasMember(s.MemberID) {
			return fmt.Errorf("split member %s: %w", s.MemberID, models.ErrNotFound)
		}
		owed = owed.Add(s.Amount)
	}
	if !money.ApproxEqual(owed, e.Amount) {
		return fmt.Errorf("%w: got %s, want %s", models.ErrSplitMismatch, owed, e.Amount)
	}
	return nil
}

// RecordExpense appends e to g's history and returns the stored record with
// its ID and CreatedAt filled in.
func RecordExpense(g *models.Group, e models.Expense, now time.Time) (models.Expense, error) {
	if err := ValidateExpense(g, &e); err != nil {
		return models.Expense{}, err
	}
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = now
	}
	if e.Date.IsZero() {
		e.Date = models.DateOf(now)
	}
	e.Payers = slices.Clone(e.Payers)
	e.Splits = slices.Clone(e.Splits)

	g.Expenses = append(g.Expenses, e)
	g.LastActivity = now
	return e, nil
}

// DeleteExpense removes the expense with the given ID and returns it.
func DeleteExpense(g *models.Group, expenseID string, now time.Time) (models.Expense, error) {
	i := slices.IndexFunc(g.Expenses, func(e models.Expense) bool { return e.ID == expenseID })
	if i < 0 {
		return models.Expense{}, fmt.Errorf("expense %s: %w", expenseID, models.ErrNotFound)
	}
	removed := g.Expenses[i]
	g.Expenses = slices.Delete(g.Expenses, i, i+1)
	g.LastActivity = now
	return removed, nil
}

// RecordSettlement appends a payment from s.From to s.To.
func RecordSettlement(g *models.Group, s models.Settlement, now time.Time) (models.Settlement, error) {
	if s.From == s.To {
		return models.Settlement{}, models.ErrSelfSettlement
	}
	if err := money.RequirePositive(s.Amount); err != nil {
		return models.Settlement{}, err
	}
	if !g.HasMember(s.From) {
		return models.Settlement{}, fmt.Errorf("member %s: %w", s.From, models.ErrNotFound)
	}
	if !g.HasMember(s.To) {
		return models.Settlement{}, fmt.Errorf("member %s: %w", s.To, models.ErrNotFound)
	}

	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	if s.CreatedAt.IsZero() {
		s.CreatedAt = now
	}
	if s.Date.IsZero() {
		s.Date = models.DateOf(now)
	}
	if s.Notes == "" {
		s.Notes = fmt.Sprintf("Settlement from %s to %s", g.MemberName(s.From), g.MemberName(s.To))
	}

	g.Settlements = append(g.Settlements, s)
	g.LastActivity = now
	return s, nil
}

// DeleteSettlement removes the settlement with the given ID and returns it.
func DeleteSettlement(g *models.Group, settlementID string, now time.Time) (models.Settlement, error) {
	i := slices.IndexFunc(g.Settlements, func(s models.Settlement) bool { return s.ID == settlementID })
	if i < 0 {
		return models.Settlement{}, fmt.Errorf("settlement %s: %w", settlementID, models.ErrNotFound)
	}
	removed := g.Settlements[i]
	g.Settlements = slices.Delete(g.Settlements, i, i+1)
	g.LastActivity = now
	return removed, nil
}
