// Package storagetest holds behavior checks shared by every storage.Store
// implementation.
package storagetest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mmynk/groupledger/internal/models"
	"github.com/mmynk/groupledger/internal/storage"
)

var created = time.Date(2025, 1, 15, 9, 30, 0, 0, time.UTC)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// SampleGroup returns a group exercising every field the store persists.
// Record IDs are prefixed with the group ID so several samples can coexist.
func SampleGroup(id, inviteCode string) *models.Group {
	p := func(s string) string { return id + "/" + s }
	return &models.Group{
		ID:          id,
		InviteCode:  inviteCode,
		Name:        "Lisbon Trip",
		Description: "Long weekend",
		Currency:    "€",
		Category:    "trip",
		Members: []models.Member{
			{ID: "m-alice", Name: "Alice", Email: "alice@example.com"},
			{ID: "m-bob", Name: "Bob"},
			{ID: "m-carol", Name: "Carol"},
		},
		Expenses: []models.Expense{
			{
				ID:          p("e-1"),
				Description: "Dinner",
				Amount:      dec("90"),
				Category:    "food",
				Date:        models.NewDate(2025, 1, 14),
				Notes:       "tapas",
				Payers: []models.PayerContribution{
					{MemberID: "m-alice", Amount: dec("60")},
					{MemberID: "m-bob", Amount: dec("30")},
				},
				Splits: []models.SplitShare{
					{MemberID: "m-alice", Amount: dec("45"), Detail: models.PercentageDetail{Percentage: dec("50")}},
					{MemberID: "m-bob", Amount: dec("27"), Detail: models.PercentageDetail{Percentage: dec("30")}},
					{MemberID: "m-carol", Amount: dec("18"), Detail: models.PercentageDetail{Percentage: dec("20")}},
				},
				SplitType: models.SplitPercentage,
				CreatedAt: created,
				CreatedBy: "u-1",
			},
			{
				ID:          p("e-2"),
				Description: "Taxi",
				Amount:      dec("20"),
				Payers:      []models.PayerContribution{{MemberID: "m-carol", Amount: dec("20")}},
				Splits: []models.SplitShare{
					{MemberID: "m-alice", Amount: dec("5"), Detail: models.SharesDetail{Shares: dec("1")}},
					{MemberID: "m-carol", Amount: dec("15"), Detail: models.SharesDetail{Shares: dec("3")}},
				},
				SplitType: models.SplitShares,
				CreatedAt: created.Add(time.Minute),
			},
			{
				ID:          p("e-3"),
				Description: "Museum",
				Amount:      dec("30"),
				Payers:      []models.PayerContribution{{MemberID: "m-bob", Amount: dec("30")}},
				Splits: []models.SplitShare{
					{MemberID: "m-alice", Amount: dec("15"), Detail: models.AdjustmentDetail{Adjustment: dec("5")}},
					{MemberID: "m-bob", Amount: dec("5"), Detail: models.AdjustmentDetail{Adjustment: dec("-5")}},
					{MemberID: "m-carol", Amount: dec("10"), Detail: models.AdjustmentDetail{Adjustment: dec("0")}},
				},
				SplitType: models.SplitAdjustment,
				CreatedAt: created.Add(2 * time.Minute),
			},
		},
		Settlements: []models.Settlement{
			{ID: p("s-1"), From: "m-carol", To: "m-alice", Amount: dec("12.34"), Date: models.NewDate(2025, 1, 15), Notes: "cash", CreatedAt: created},
		},
		Budgets: []models.Budget{
			{ID: p("b-1"), Name: "Food", Amount: dec("200"), Category: "food", Period: models.BudgetMonthly, CreatedAt: created},
			{
				ID: p("b-2"), Name: "Trip", Amount: dec("500"), Period: models.BudgetCustom,
				StartDate: models.NewDate(2025, 1, 10), EndDate: models.NewDate(2025, 1, 20), CreatedAt: created,
			},
		},
		CreatedAt:    created,
		LastActivity: created.Add(time.Hour),
	}
}

// Run exercises s against the storage.Store contract. s must be empty.
func Run(t *testing.T, s storage.Store) {
	ctx := context.Background()

	t.Run("GetGroup returns ErrNotFound for unknown id", func(t *testing.T) {
		if _, err := s.GetGroup(ctx, "missing"); !errors.Is(err, models.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
		if _, err := s.FindGroupByInviteCode(ctx, "NOPE"); !errors.Is(err, models.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("SaveGroup round trips the full aggregate", func(t *testing.T) {
		want := SampleGroup("g-1", "ABCD2345")
		if err := s.SaveGroup(ctx, want); err != nil {
			t.Fatalf("SaveGroup failed: %v", err)
		}

		got, err := s.GetGroup(ctx, "g-1")
		if err != nil {
			t.Fatalf("GetGroup failed: %v", err)
		}
		AssertGroupEqual(t, want, got)

		byCode, err := s.FindGroupByInviteCode(ctx, "ABCD2345")
		if err != nil {
			t.Fatalf("FindGroupByInviteCode failed: %v", err)
		}
		if byCode.ID != "g-1" {
			t.Errorf("expected g-1, got %s", byCode.ID)
		}
	})

	t.Run("SaveGroup replaces history", func(t *testing.T) {
		g, err := s.GetGroup(ctx, "g-1")
		if err != nil {
			t.Fatalf("GetGroup failed: %v", err)
		}
		g.Expenses = g.Expenses[1:]
		g.Settlements = nil
		g.Members = append(g.Members, models.Member{ID: "m-dan", Name: "Dan"})
		g.LastActivity = g.LastActivity.Add(time.Hour)
		if err := s.SaveGroup(ctx, g); err != nil {
			t.Fatalf("SaveGroup failed: %v", err)
		}

		got, err := s.GetGroup(ctx, "g-1")
		if err != nil {
			t.Fatalf("GetGroup failed: %v", err)
		}
		if len(got.Expenses) != 2 || got.Expenses[0].ID != "g-1/e-2" {
			t.Errorf("expected expenses [e-2 e-3], got %d starting %v", len(got.Expenses), got.Expenses)
		}
		if len(got.Settlements) != 0 {
			t.Errorf("expected settlements cleared, got %d", len(got.Settlements))
		}
		if len(got.Members) != 4 || got.Members[3].Name != "Dan" {
			t.Errorf("expected Dan appended, got %+v", got.Members)
		}
	})

	t.Run("loaded groups are independent copies", func(t *testing.T) {
		a, err := s.GetGroup(ctx, "g-1")
		if err != nil {
			t.Fatalf("GetGroup failed: %v", err)
		}
		a.Members[0].Name = "Mutated"
		a.Expenses[0].Splits[0].Amount = dec("999")

		b, err := s.GetGroup(ctx, "g-1")
		if err != nil {
			t.Fatalf("GetGroup failed: %v", err)
		}
		if b.Members[0].Name != "Alice" {
			t.Errorf("store shared member state: %s", b.Members[0].Name)
		}
		if b.Expenses[0].Splits[0].Amount.Equal(dec("999")) {
			t.Error("store shared split state")
		}
	})

	t.Run("ListGroups orders by last activity", func(t *testing.T) {
		newer := SampleGroup("g-2", "WXYZ6789")
		newer.Name = "Roommates"
		newer.LastActivity = created.Add(48 * time.Hour)
		if err := s.SaveGroup(ctx, newer); err != nil {
			t.Fatalf("SaveGroup failed: %v", err)
		}

		groups, err := s.ListGroups(ctx)
		if err != nil {
			t.Fatalf("ListGroups failed: %v", err)
		}
		if len(groups) != 2 {
			t.Fatalf("expected 2 groups, got %d", len(groups))
		}
		if groups[0].ID != "g-2" || groups[1].ID != "g-1" {
			t.Errorf("expected [g-2 g-1], got [%s %s]", groups[0].ID, groups[1].ID)
		}
	})

	t.Run("DeleteGroup", func(t *testing.T) {
		if err := s.DeleteGroup(ctx, "g-2"); err != nil {
			t.Fatalf("DeleteGroup failed: %v", err)
		}
		if _, err := s.GetGroup(ctx, "g-2"); !errors.Is(err, models.ErrNotFound) {
			t.Errorf("expected ErrNotFound after delete, got %v", err)
		}
		if err := s.DeleteGroup(ctx, "g-2"); !errors.Is(err, models.ErrNotFound) {
			t.Errorf("expected ErrNotFound on second delete, got %v", err)
		}
	})

	t.Run("users", func(t *testing.T) {
		if _, err := s.GetUser(ctx, "u-1"); !errors.Is(err, models.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}

		u := &models.User{ID: "u-1", Name: "Alice", Preferences: models.DefaultPreferences(), CreatedAt: created}
		if err := s.SaveUser(ctx, u); err != nil {
			t.Fatalf("SaveUser failed: %v", err)
		}
		u.Preferences.Theme = "dark"
		if err := s.SaveUser(ctx, u); err != nil {
			t.Fatalf("SaveUser update failed: %v", err)
		}

		got, err := s.GetUser(ctx, "u-1")
		if err != nil {
			t.Fatalf("GetUser failed: %v", err)
		}
		if got.Name != "Alice" || got.Preferences.Theme != "dark" || got.Preferences.Currency != "$" {
			t.Errorf("unexpected user %+v", got)
		}
		if !got.CreatedAt.Equal(created) {
			t.Errorf("expected CreatedAt %v, got %v", created, got.CreatedAt)
		}
	})
}

// AssertGroupEqual compares two groups field by field, treating decimals
// by value and timestamps by instant.
func AssertGroupEqual(t *testing.T, want, got *models.Group) {
	t.Helper()

	if got.ID != want.ID || got.InviteCode != want.InviteCode || got.Name != want.Name ||
		got.Description != want.Description || got.Currency != want.Currency || got.Category != want.Category {
		t.Errorf("group header mismatch:\nwant %+v\ngot  %+v", want, got)
	}
	if !got.CreatedAt.Equal(want.CreatedAt) || !got.LastActivity.Equal(want.LastActivity) {
		t.Errorf("timestamps mismatch: want %v/%v, got %v/%v", want.CreatedAt, want.LastActivity, got.CreatedAt, got.LastActivity)
	}

	if len(got.Members) != len(want.Members) {
		t.Fatalf("expected %d members, got %d", len(want.Members), len(got.Members))
	}
	for i := range want.Members {
		if got.Members[i] != want.Members[i] {
			t.Errorf("member %d: want %+v, got %+v", i, want.Members[i], got.Members[i])
		}
	}

	if len(got.Expenses) != len(want.Expenses) {
		t.Fatalf("expected %d expenses, got %d", len(want.Expenses), len(got.Expenses))
	}
	for i := range want.Expenses {
		assertExpenseEqual(t, &want.Expenses[i], &got.Expenses[i])
	}

	if len(got.Settlements) != len(want.Settlements) {
		t.Fatalf("expected %d settlements, got %d", len(want.Settlements), len(got.Settlements))
	}
	for i, w := range want.Settlements {
		g := got.Settlements[i]
		if g.ID != w.ID || g.From != w.From || g.To != w.To || !g.Amount.Equal(w.Amount) ||
			g.Date.String() != w.Date.String() || g.Notes != w.Notes || !g.CreatedAt.Equal(w.CreatedAt) {
			t.Errorf("settlement %d: want %+v, got %+v", i, w, g)
		}
	}

	if len(got.Budgets) != len(want.Budgets) {
		t.Fatalf("expected %d budgets, got %d", len(want.Budgets), len(got.Budgets))
	}
	for i, w := range want.Budgets {
		g := got.Budgets[i]
		if g.ID != w.ID || g.Name != w.Name || !g.Amount.Equal(w.Amount) || g.Category != w.Category ||
			g.Period != w.Period || g.StartDate.String() != w.StartDate.String() || g.EndDate.String() != w.EndDate.String() {
			t.Errorf("budget %d: want %+v, got %+v", i, w, g)
		}
	}
}

func assertExpenseEqual(t *testing.T, want, got *models.Expense) {
	t.Helper()
	if got.ID != want.ID || got.Description != want.Description || !got.Amount.Equal(want.Amount) ||
		got.Category != want.Category || got.Date.String() != want.Date.String() || got.Notes != want.Notes ||
		got.SplitType != want.SplitType || !got.CreatedAt.Equal(want.CreatedAt) || got.CreatedBy != want.CreatedBy {
		t.Errorf("expense %s header mismatch:\nwant %+v\ngot  %+v", want.ID, want, got)
	}

	if len(got.Payers) != len(want.Payers) {
		t.Fatalf("expense %s: expected %d payers, got %d", want.ID, len(want.Payers), len(got.Payers))
	}
	for i, w := range want.Payers {
		if got.Payers[i].MemberID != w.MemberID || !got.Payers[i].Amount.Equal(w.Amount) {
			t.Errorf("expense %s payer %d: want %+v, got %+v", want.ID, i, w, got.Payers[i])
		}
	}

	if len(got.Splits) != len(want.Splits) {
		t.Fatalf("expense %s: expected %d splits, got %d", want.ID, len(want.Splits), len(got.Splits))
	}
	for i, w := range want.Splits {
		g := got.Splits[i]
		if g.MemberID != w.MemberID || !g.Amount.Equal(w.Amount) {
			t.Errorf("expense %s split %d: want %+v, got %+v", want.ID, i, w, g)
		}
		if !detailEqual(w.Detail, g.Detail) {
			t.Errorf("expense %s split %d detail: want %#v, got %#v", want.ID, i, w.Detail, g.Detail)
		}
	}
}

func detailEqual(a, b models.ShareDetail) bool {
	switch x := a.(type) {
	case nil:
		return b == nil
	case models.PercentageDetail:
		y, ok := b.(models.PercentageDetail)
		return ok && x.Percentage.Equal(y.Percentage)
	case models.SharesDetail:
		y, ok := b.(models.SharesDetail)
		return ok && x.Shares.Equal(y.Shares)
	case models.AdjustmentDetail:
		y, ok := b.(models.AdjustmentDetail)
		return ok && x.Adjustment.Equal(y.Adjustment)
	}
	return false
}
