package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mmynk/groupledger/internal/calculator"
	"github.com/mmynk/groupledger/internal/metrics"
	"github.com/mmynk/groupledger/internal/models"
	"github.com/mmynk/groupledger/internal/storage/memory"
)

var fixedNow = time.Date(2025, 6, 1, 18, 0, 0, 0, time.UTC)

func newTestService(t *testing.T) (*LedgerService, *memory.Store) {
	t.Helper()
	store := memory.New()
	svc := NewLedgerService(store,
		WithClock(func() time.Time { return fixedNow }),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		WithMetrics(metrics.New()),
	)
	return svc, store
}

// createGroup makes a group and returns it with a name->ID lookup.
func createGroup(t *testing.T, svc *LedgerService, names ...string) (*models.Group, map[string]string) {
	t.Helper()
	resp, err := svc.CreateGroup(context.Background(), &CreateGroupRequest{Name: "Roommates", Members: names})
	if err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}
	ids := make(map[string]string)
	for _, m := range resp.Group.Members {
		ids[m.Name] = m.ID
	}
	return resp.Group, ids
}

func balanceOf(t *testing.T, resp *GetBalancesResponse, memberID string) decimal.Decimal {
	t.Helper()
	for _, b := range resp.Balances {
		if b.MemberID == memberID {
			return b.Balance
		}
	}
	t.Fatalf("no balance for %s", memberID)
	return decimal.Zero
}

func TestCreateGroup(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	g, ids := createGroup(t, svc, "Alice", "Bob", "Charlie")
	if g.ID == "" || g.InviteCode == "" {
		t.Errorf("expected ID and invite code, got %+v", g)
	}
	if len(ids) != 3 {
		t.Errorf("expected 3 members, got %d", len(ids))
	}
	if !g.CreatedAt.Equal(fixedNow) {
		t.Errorf("expected CreatedAt from clock, got %v", g.CreatedAt)
	}

	stored, err := store.GetGroup(ctx, g.ID)
	if err != nil {
		t.Fatalf("group not persisted: %v", err)
	}
	if stored.Name != "Roommates" {
		t.Errorf("unexpected stored name %q", stored.Name)
	}

	if _, err := svc.CreateGroup(ctx, &CreateGroupRequest{Name: " "}); !errors.Is(err, models.ErrEmptyName) {
		t.Errorf("expected ErrEmptyName, got %v", err)
	}
}

func TestCreateGroupWithCreator(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	user, err := svc.SaveUser(ctx, &SaveUserRequest{Name: "Dana", Preferences: &models.Preferences{Currency: "€"}})
	if err != nil {
		t.Fatalf("SaveUser failed: %v", err)
	}

	resp, err := svc.CreateGroup(ctx, &CreateGroupRequest{Name: "Trip", Members: []string{"Eve"}, CreatorID: user.User.ID})
	if err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}
	if resp.Group.Members[0].ID != user.User.ID || resp.Group.Members[0].Name != "Dana" {
		t.Errorf("expected creator first, got %+v", resp.Group.Members)
	}
	if resp.Group.Currency != "€" {
		t.Errorf("expected currency from user preferences, got %q", resp.Group.Currency)
	}

	_, err = svc.CreateGroup(ctx, &CreateGroupRequest{Name: "Trip", CreatorID: "nobody"})
	if !errors.Is(err, models.ErrNotFound) {
		t.Errorf("expected ErrNotFound for unknown creator, got %v", err)
	}
}

func TestAddExpenseAndBalances(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	g, ids := createGroup(t, svc, "Alice", "Bob", "Charlie")

	resp, err := svc.AddExpense(ctx, &AddExpenseRequest{
		GroupID:      g.ID,
		Description:  "Groceries",
		Amount:       "90",
		Category:     "food",
		Date:         "2025-05-30",
		PaidBy:       ids["Alice"],
		SplitType:    "equal",
		Participants: []string{ids["Alice"], ids["Bob"], ids["Charlie"]},
	})
	if err != nil {
		t.Fatalf("AddExpense failed: %v", err)
	}
	if resp.Expense.ID == "" || resp.Expense.Date.String() != "2025-05-30" {
		t.Errorf("unexpected expense %+v", resp.Expense)
	}
	for _, s := range resp.Expense.Splits {
		if !s.Amount.Equal(decimal.NewFromInt(30)) {
			t.Errorf("expected 30 each, got %s for %s", s.Amount, s.MemberID)
		}
	}

	bal, err := svc.GetBalances(ctx, &GetBalancesRequest{GroupID: g.ID})
	if err != nil {
		t.Fatalf("GetBalances failed: %v", err)
	}
	if got := balanceOf(t, bal, ids["Alice"]); !got.Equal(decimal.NewFromInt(60)) {
		t.Errorf("expected Alice +60, got %s", got)
	}
	if got := balanceOf(t, bal, ids["Bob"]); !got.Equal(decimal.NewFromInt(-30)) {
		t.Errorf("expected Bob -30, got %s", got)
	}
	if len(bal.Plan) != 2 {
		t.Fatalf("expected 2 transfers, got %+v", bal.Plan)
	}
	for _, tr := range bal.Plan {
		if tr.ToName != "Alice" || !tr.Amount.Equal(decimal.NewFromInt(30)) {
			t.Errorf("unexpected transfer %+v", tr)
		}
	}
	if bal.Balances[0].Name != "Alice" {
		t.Errorf("expected names resolved, got %+v", bal.Balances[0])
	}
}

func TestAddExpenseSplitTypes(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	g, ids := createGroup(t, svc, "A", "B", "C")
	all := []string{ids["A"], ids["B"], ids["C"]}

	tests := []struct {
		name    string
		req     AddExpenseRequest
		want    map[string]string
		wantErr error
	}{
		{
			name: "shares",
			req: AddExpenseRequest{Amount: "100", SplitType: "shares", Participants: all[:2],
				SplitValues: map[string]string{ids["A"]: "1", ids["B"]: "3"}},
			want: map[string]string{"A": "25", "B": "75"},
		},
		{
			name: "percentage",
			req: AddExpenseRequest{Amount: "200", SplitType: "percentage", Participants: all[:2],
				SplitValues: map[string]string{ids["A"]: "60", ids["B"]: "40"}},
			want: map[string]string{"A": "120", "B": "80"},
		},
		{
			name: "adjustment",
			req: AddExpenseRequest{Amount: "90", SplitType: "adjustment", Participants: all,
				SplitValues: map[string]string{ids["A"]: "10", ids["B"]: "-10", ids["C"]: "0"}},
			want: map[string]string{"A": "40", "B": "20", "C": "30"},
		},
		{
			name: "exclude",
			req:  AddExpenseRequest{Amount: "50", SplitType: "exclude", Participants: all[1:]},
			want: map[string]string{"B": "25", "C": "25"},
		},
		{
			name: "unequal",
			req: AddExpenseRequest{Amount: "50", SplitType: "unequal", Participants: all[:2],
				SplitValues: map[string]string{ids["A"]: "20", ids["B"]: "30"}},
			want: map[string]string{"A": "20", "B": "30"},
		},
		{
			name: "percentage under 100",
			req: AddExpenseRequest{Amount: "100", SplitType: "percentage", Participants: all[:2],
				SplitValues: map[string]string{ids["A"]: "60", ids["B"]: "30"}},
			wantErr: models.ErrPercentageMismatch,
		},
		{
			name: "adjustments not zero",
			req: AddExpenseRequest{Amount: "90", SplitType: "adjustment", Participants: all,
				SplitValues: map[string]string{ids["A"]: "10", ids["B"]: "-5"}},
			wantErr: models.ErrAdjustmentMismatch,
		},
		{
			name: "unequal mismatch",
			req: AddExpenseRequest{Amount: "50", SplitType: "unequal", Participants: all[:2],
				SplitValues: map[string]string{ids["A"]: "20", ids["B"]: "20"}},
			wantErr: models.ErrSplitMismatch,
		},
		{
			name:    "no participants",
			req:     AddExpenseRequest{Amount: "50", SplitType: "equal"},
			wantErr: models.ErrNoParticipants,
		},
		{
			name:    "zero amount",
			req:     AddExpenseRequest{Amount: "0", SplitType: "equal", Participants: all},
			wantErr: models.ErrInvalidAmount,
		},
		{
			name:    "unknown split type",
			req:     AddExpenseRequest{Amount: "10", SplitType: "itemized", Participants: all},
			wantErr: models.ErrUnknownSplitType,
		},
		{
			name:    "bad date",
			req:     AddExpenseRequest{Amount: "10", SplitType: "equal", Participants: all, Date: "yesterday"},
			wantErr: models.ErrInvalidDate,
		},
		{
			name:    "participant outside group",
			req:     AddExpenseRequest{Amount: "10", SplitType: "equal", Participants: []string{ids["A"], "stranger"}},
			wantErr: models.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := tt.req
			req.GroupID = g.ID
			req.Description = tt.name
			req.PaidBy = ids["A"]

			resp, err := svc.AddExpense(ctx, &req)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("AddExpense failed: %v", err)
			}
			if len(resp.Expense.Splits) != len(tt.want) {
				t.Fatalf("expected %d splits, got %d", len(tt.want), len(resp.Expense.Splits))
			}
			for name, want := range tt.want {
				got := resp.Expense.OwedBy(ids[name])
				if !got.Equal(decimal.RequireFromString(want)) {
					t.Errorf("%s owes %s, want %s", name, got, want)
				}
			}
		})
	}
}

func TestAddExpenseMultiplePayers(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	g, ids := createGroup(t, svc, "A", "B")

	resp, err := svc.AddExpense(ctx, &AddExpenseRequest{
		GroupID:      g.ID,
		Description:  "Hotel",
		Amount:       "300",
		SplitType:    "equal",
		Participants: []string{ids["A"], ids["B"]},
		Payers: []calculator.PayerInput{
			{MemberID: ids["A"], Amount: "100"},
			{MemberID: ids["B"], Amount: "200"},
		},
	})
	if err != nil {
		t.Fatalf("AddExpense failed: %v", err)
	}
	if len(resp.Expense.Payers) != 2 {
		t.Fatalf("expected 2 payers, got %+v", resp.Expense.Payers)
	}

	_, err = svc.AddExpense(ctx, &AddExpenseRequest{
		GroupID:      g.ID,
		Description:  "Hotel",
		Amount:       "300",
		SplitType:    "equal",
		Participants: []string{ids["A"], ids["B"]},
		Payers:       []calculator.PayerInput{{MemberID: ids["A"], Amount: "100"}},
	})
	if !errors.Is(err, models.ErrPayerMismatch) {
		t.Errorf("expected ErrPayerMismatch, got %v", err)
	}
}

func TestFailedMutationDoesNotPersist(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()
	g, ids := createGroup(t, svc, "A", "B")

	_, err := svc.AddExpense(ctx, &AddExpenseRequest{
		GroupID: g.ID, Description: "x", Amount: "10", SplitType: "equal", PaidBy: "ghost",
		Participants: []string{ids["A"], ids["B"]},
	})
	if !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown payer, got %v", err)
	}

	stored, err := store.GetGroup(ctx, g.ID)
	if err != nil {
		t.Fatalf("GetGroup failed: %v", err)
	}
	if len(stored.Expenses) != 0 {
		t.Errorf("expected no expenses persisted, got %d", len(stored.Expenses))
	}
}

func TestSettlementLifecycle(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	g, ids := createGroup(t, svc, "Alice", "Bob")

	if _, err := svc.AddExpense(ctx, &AddExpenseRequest{
		GroupID: g.ID, Description: "Dinner", Amount: "40", SplitType: "equal",
		PaidBy: ids["Alice"], Participants: []string{ids["Alice"], ids["Bob"]},
	}); err != nil {
		t.Fatalf("AddExpense failed: %v", err)
	}

	resp, err := svc.RecordSettlement(ctx, &RecordSettlementRequest{
		GroupID: g.ID, From: ids["Bob"], To: ids["Alice"], Amount: "20",
	})
	if err != nil {
		t.Fatalf("RecordSettlement failed: %v", err)
	}
	if resp.Settlement.Notes != "Settlement from Bob to Alice" {
		t.Errorf("unexpected notes %q", resp.Settlement.Notes)
	}

	bal, err := svc.GetBalances(ctx, &GetBalancesRequest{GroupID: g.ID})
	if err != nil {
		t.Fatalf("GetBalances failed: %v", err)
	}
	if !balanceOf(t, bal, ids["Bob"]).IsZero() || len(bal.Plan) != 0 {
		t.Errorf("expected settled group, got %+v", bal)
	}

	if _, err := svc.DeleteSettlement(ctx, &DeleteSettlementRequest{GroupID: g.ID, SettlementID: resp.Settlement.ID}); err != nil {
		t.Fatalf("DeleteSettlement failed: %v", err)
	}
	bal, _ = svc.GetBalances(ctx, &GetBalancesRequest{GroupID: g.ID})
	if got := balanceOf(t, bal, ids["Bob"]); !got.Equal(decimal.NewFromInt(-20)) {
		t.Errorf("expected Bob back at -20, got %s", got)
	}

	tests := []struct {
		name    string
		req     RecordSettlementRequest
		wantErr error
	}{
		{"self", RecordSettlementRequest{From: ids["Bob"], To: ids["Bob"], Amount: "-1"}, models.ErrSelfSettlement},
		{"zero", RecordSettlementRequest{From: ids["Bob"], To: ids["Alice"], Amount: "0"}, models.ErrInvalidAmount},
		{"unknown member", RecordSettlementRequest{From: "ghost", To: ids["Alice"], Amount: "5"}, models.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := tt.req
			req.GroupID = g.ID
			if _, err := svc.RecordSettlement(ctx, &req); !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestDeleteExpense(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	g, ids := createGroup(t, svc, "A", "B")

	added, err := svc.AddExpense(ctx, &AddExpenseRequest{
		GroupID: g.ID, Description: "Taxi", Amount: "12.50", SplitType: "equal",
		PaidBy: ids["A"], Participants: []string{ids["A"], ids["B"]},
	})
	if err != nil {
		t.Fatalf("AddExpense failed: %v", err)
	}
	if _, err := svc.DeleteExpense(ctx, &DeleteExpenseRequest{GroupID: g.ID, ExpenseID: added.Expense.ID}); err != nil {
		t.Fatalf("DeleteExpense failed: %v", err)
	}

	bal, _ := svc.GetBalances(ctx, &GetBalancesRequest{GroupID: g.ID})
	for _, b := range bal.Balances {
		if !b.Balance.IsZero() {
			t.Errorf("expected zero balance after delete, got %s for %s", b.Balance, b.Name)
		}
	}
	if _, err := svc.DeleteExpense(ctx, &DeleteExpenseRequest{GroupID: g.ID, ExpenseID: added.Expense.ID}); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestJoinGroup(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	g, _ := createGroup(t, svc, "Alice")

	user, err := svc.SaveUser(ctx, &SaveUserRequest{Name: "Robert"})
	if err != nil {
		t.Fatalf("SaveUser failed: %v", err)
	}

	resp, err := svc.JoinGroup(ctx, &JoinGroupRequest{
		CodeOrID: strings.ToLower(g.InviteCode),
		Name:     "Bob",
		UserID:   user.User.ID,
	})
	if err != nil {
		t.Fatalf("JoinGroup by code failed: %v", err)
	}
	if resp.Member.ID != user.User.ID || len(resp.Group.Members) != 2 {
		t.Errorf("unexpected join result %+v", resp)
	}

	renamed, err := svc.GetUser(ctx, &GetUserRequest{UserID: user.User.ID})
	if err != nil {
		t.Fatalf("GetUser failed: %v", err)
	}
	if renamed.User.Name != "Bob" {
		t.Errorf("expected user renamed to Bob, got %q", renamed.User.Name)
	}

	if _, err := svc.JoinGroup(ctx, &JoinGroupRequest{CodeOrID: g.ID, Name: "carol"}); err != nil {
		t.Errorf("JoinGroup by id failed: %v", err)
	}
	if _, err := svc.JoinGroup(ctx, &JoinGroupRequest{CodeOrID: g.ID, Name: "ALICE"}); !errors.Is(err, models.ErrDuplicateMember) {
		t.Errorf("expected ErrDuplicateMember, got %v", err)
	}
	if _, err := svc.JoinGroup(ctx, &JoinGroupRequest{CodeOrID: "NOPE1234", Name: "Dan"}); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestMembersAndBudgets(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	g, ids := createGroup(t, svc, "A")

	added, err := svc.AddMember(ctx, &AddMemberRequest{GroupID: g.ID, Name: "B"})
	if err != nil {
		t.Fatalf("AddMember failed: %v", err)
	}
	if _, err := svc.AddMember(ctx, &AddMemberRequest{GroupID: g.ID, Name: "b"}); !errors.Is(err, models.ErrDuplicateMember) {
		t.Errorf("expected ErrDuplicateMember, got %v", err)
	}

	if _, err := svc.AddExpense(ctx, &AddExpenseRequest{
		GroupID: g.ID, Description: "Pizza", Amount: "30", Category: "food", SplitType: "equal",
		PaidBy: ids["A"], Participants: []string{ids["A"], added.Member.ID},
	}); err != nil {
		t.Fatalf("AddExpense failed: %v", err)
	}

	budget, err := svc.AddBudget(ctx, &AddBudgetRequest{GroupID: g.ID, Name: "Food", Amount: "20", Category: "food"})
	if err != nil {
		t.Fatalf("AddBudget failed: %v", err)
	}
	bal, _ := svc.GetBalances(ctx, &GetBalancesRequest{GroupID: g.ID})
	if len(bal.Budgets) != 1 || !bal.Budgets[0].OverBudget {
		t.Errorf("expected one over-budget status, got %+v", bal.Budgets)
	}

	if _, err := svc.AddBudget(ctx, &AddBudgetRequest{GroupID: g.ID, Name: "x", Amount: "5", Period: "custom", StartDate: "2025-13-01"}); !errors.Is(err, models.ErrInvalidDate) {
		t.Errorf("expected ErrInvalidDate, got %v", err)
	}
	if _, err := svc.DeleteBudget(ctx, &DeleteBudgetRequest{GroupID: g.ID, BudgetID: budget.Budget.ID}); err != nil {
		t.Fatalf("DeleteBudget failed: %v", err)
	}

	got, err := svc.GetGroup(ctx, &GetGroupRequest{GroupID: g.ID})
	if err != nil {
		t.Fatalf("GetGroup failed: %v", err)
	}
	if len(got.Group.Budgets) != 0 || got.Summary.ExpenseCount != 1 || got.Summary.MemberCount != 2 {
		t.Errorf("unexpected group state %+v", got.Summary)
	}
}

func TestListAndDeleteGroups(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	g1, _ := createGroup(t, svc, "A")
	createGroup(t, svc, "B")

	list, err := svc.ListGroups(ctx, &ListGroupsRequest{})
	if err != nil {
		t.Fatalf("ListGroups failed: %v", err)
	}
	if len(list.Groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(list.Groups))
	}

	if _, err := svc.DeleteGroup(ctx, &DeleteGroupRequest{GroupID: g1.ID}); err != nil {
		t.Fatalf("DeleteGroup failed: %v", err)
	}
	if _, err := svc.GetGroup(ctx, &GetGroupRequest{GroupID: g1.ID}); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if _, err := svc.DeleteGroup(ctx, &DeleteGroupRequest{GroupID: g1.ID}); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestExportGroup(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	g, ids := createGroup(t, svc, "Alice", "Bob")
	if _, err := svc.AddExpense(ctx, &AddExpenseRequest{
		GroupID: g.ID, Description: "Tickets", Amount: "20", SplitType: "equal",
		PaidBy: ids["Alice"], Participants: []string{ids["Alice"], ids["Bob"]},
	}); err != nil {
		t.Fatalf("AddExpense failed: %v", err)
	}

	resp, err := svc.ExportGroup(ctx, &ExportGroupRequest{GroupID: g.ID, Format: "yaml"})
	if err != nil {
		t.Fatalf("ExportGroup failed: %v", err)
	}
	if resp.FileName != "Roommates-expenses.yaml" || resp.ContentType != "application/yaml" {
		t.Errorf("unexpected export metadata %+v", resp)
	}
	if !strings.Contains(resp.Content, "description: Tickets") || strings.Contains(resp.Content, ids["Alice"]) {
		t.Errorf("unexpected export content:\n%s", resp.Content)
	}

	if _, err := svc.ExportGroup(ctx, &ExportGroupRequest{GroupID: g.ID, Format: "pdf"}); !errors.Is(err, models.ErrUnsupportedFormat) {
		t.Errorf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestSaveUser(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.SaveUser(ctx, &SaveUserRequest{Name: " Alice "})
	if err != nil {
		t.Fatalf("SaveUser failed: %v", err)
	}
	u := created.User
	if u.ID == "" || u.Name != "Alice" || u.Preferences != models.DefaultPreferences() || !u.CreatedAt.Equal(fixedNow) {
		t.Errorf("unexpected user %+v", u)
	}

	updated, err := svc.SaveUser(ctx, &SaveUserRequest{ID: u.ID, Name: "Alice B", Preferences: &models.Preferences{Theme: "dark"}})
	if err != nil {
		t.Fatalf("SaveUser update failed: %v", err)
	}
	if updated.User.Preferences.Theme != "dark" || updated.User.Preferences.Currency != "$" {
		t.Errorf("expected merged preferences, got %+v", updated.User.Preferences)
	}

	if _, err := svc.SaveUser(ctx, &SaveUserRequest{Name: ""}); !errors.Is(err, models.ErrEmptyName) {
		t.Errorf("expected ErrEmptyName, got %v", err)
	}
	if _, err := svc.GetUser(ctx, &GetUserRequest{UserID: "missing"}); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
