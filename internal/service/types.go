package service

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/mmynk/groupledger/internal/calculator"
	"github.com/mmynk/groupledger/internal/ledger"
	"github.com/mmynk/groupledger/internal/models"
)

// Request and response messages for LedgerService. They double as the JSON
// bodies of the RPC transport.

type CreateGroupRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Currency    string   `json:"currency,omitempty"`
	Category    string   `json:"category,omitempty"`
	Members     []string `json:"members"`

	// CreatorID names a saved user who becomes the first member.
	CreatorID string `json:"creatorId,omitempty"`
}

type CreateGroupResponse struct {
	Group *models.Group `json:"group"`
}

type GetGroupRequest struct {
	GroupID string `json:"groupId"`
}

type GetGroupResponse struct {
	Group   *models.Group       `json:"group"`
	Summary ledger.GroupSummary `json:"summary"`
}

type ListGroupsRequest struct{}

// GroupInfo is the list view of a group.
type GroupInfo struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Category      string          `json:"category,omitempty"`
	Currency      string          `json:"currency"`
	InviteCode    string          `json:"inviteCode"`
	MemberCount   int             `json:"memberCount"`
	ExpenseCount  int             `json:"expenseCount"`
	TotalExpenses decimal.Decimal `json:"totalExpenses"`
	LastActivity  time.Time       `json:"lastActivity"`
}

type ListGroupsResponse struct {
	Groups []GroupInfo `json:"groups"`
}

type JoinGroupRequest struct {
	// CodeOrID is an invite code (case-insensitive) or a group ID.
	CodeOrID string `json:"codeOrId"`
	Name     string `json:"name"`

	// UserID, when set, becomes the new member's ID and the saved user's
	// name is updated to Name.
	UserID string `json:"userId,omitempty"`
}

type JoinGroupResponse struct {
	Group  *models.Group `json:"group"`
	Member models.Member `json:"member"`
}

type DeleteGroupRequest struct {
	GroupID string `json:"groupId"`
}

type DeleteGroupResponse struct{}

type AddMemberRequest struct {
	GroupID string `json:"groupId"`
	Name    string `json:"name"`
	Email   string `json:"email,omitempty"`
}

type AddMemberResponse struct {
	Member models.Member `json:"member"`
}

// AddExpenseRequest carries an expense as a user would enter it. Amounts
// and split values are raw strings and are parsed and validated here.
type AddExpenseRequest struct {
	GroupID     string `json:"groupId"`
	Description string `json:"description"`
	Amount      string `json:"amount"`
	Category    string `json:"category,omitempty"`
	Date        string `json:"date,omitempty"`
	Notes       string `json:"notes,omitempty"`

	// PaidBy is the single payer. Ignored when Payers is non-empty.
	PaidBy string                  `json:"paidBy,omitempty"`
	Payers []calculator.PayerInput `json:"payers,omitempty"`

	SplitType string `json:"splitType"`

	// Participants are the member IDs sharing the expense, in order.
	Participants []string `json:"participants"`

	// SplitValues holds the per-member amount, percentage, share count or
	// adjustment, depending on SplitType.
	SplitValues map[string]string `json:"splitValues,omitempty"`

	CreatedBy string `json:"createdBy,omitempty"`
}

type AddExpenseResponse struct {
	Expense models.Expense `json:"expense"`
}

type DeleteExpenseRequest struct {
	GroupID   string `json:"groupId"`
	ExpenseID string `json:"expenseId"`
}

type DeleteExpenseResponse struct {
	Expense models.Expense `json:"expense"`
}

type RecordSettlementRequest struct {
	GroupID   string `json:"groupId"`
	From      string `json:"from"`
	To        string `json:"to"`
	Amount    string `json:"amount"`
	Date      string `json:"date,omitempty"`
	Notes     string `json:"notes,omitempty"`
	CreatedBy string `json:"createdBy,omitempty"`
}

type RecordSettlementResponse struct {
	Settlement models.Settlement `json:"settlement"`
}

type DeleteSettlementRequest struct {
	GroupID      string `json:"groupId"`
	SettlementID string `json:"settlementId"`
}

type DeleteSettlementResponse struct {
	Settlement models.Settlement `json:"settlement"`
}

type AddBudgetRequest struct {
	GroupID   string `json:"groupId"`
	Name      string `json:"name"`
	Amount    string `json:"amount"`
	Category  string `json:"category,omitempty"`
	Period    string `json:"period,omitempty"`
	StartDate string `json:"startDate,omitempty"`
	EndDate   string `json:"endDate,omitempty"`
	Notes     string `json:"notes,omitempty"`
	CreatedBy string `json:"createdBy,omitempty"`
}

type AddBudgetResponse struct {
	Budget models.Budget `json:"budget"`
}

type DeleteBudgetRequest struct {
	GroupID  string `json:"groupId"`
	BudgetID string `json:"budgetId"`
}

type DeleteBudgetResponse struct {
	Budget models.Budget `json:"budget"`
}

type GetBalancesRequest struct {
	GroupID string `json:"groupId"`
}

// BalanceView is a member balance with the member's name resolved.
type BalanceView struct {
	calculator.MemberBalance
	Name string `json:"name"`
}

// TransferView is a suggested payment with member names resolved.
type TransferView struct {
	From     string          `json:"from"`
	FromName string          `json:"fromName"`
	To       string          `json:"to"`
	ToName   string          `json:"toName"`
	Amount   decimal.Decimal `json:"amount"`
}

type GetBalancesResponse struct {
	GroupID  string                `json:"groupId"`
	Currency string                `json:"currency"`
	Balances []BalanceView         `json:"balances"`
	Plan     []TransferView        `json:"plan"`
	Budgets  []ledger.BudgetStatus `json:"budgets"`
}

type ExportGroupRequest struct {
	GroupID string `json:"groupId"`
	Format  string `json:"format,omitempty"`
}

type ExportGroupResponse struct {
	FileName    string `json:"fileName"`
	ContentType string `json:"contentType"`
	Content     string `json:"content"`
}

type SaveUserRequest struct {
	ID          string              `json:"id,omitempty"`
	Name        string              `json:"name"`
	Email       string              `json:"email,omitempty"`
	Preferences *models.Preferences `json:"preferences,omitempty"`
}

type SaveUserResponse struct {
	User *models.User `json:"user"`
}

type GetUserRequest struct {
	UserID string `json:"userId"`
}

type GetUserResponse struct {
	User *models.User `json:"user"`
}
