package models

import "time"

// Member is a participant inside one group.
type Member struct {
	// ID is the unique identifier for the member within its group (UUID format).
	ID string `json:"id"`

	// Name is the display name. Unique per group, compared case-insensitively.
	Name string `json:"name"`

	// Email is optional contact information.
	Email string `json:"email,omitempty"`
}

// Group is a set of members sharing expenses under one currency.
// It is the unit of mutation and persistence.
type Group struct {
	// ID is the unique identifier for the group (UUID format).
	ID string `json:"id"`

	// InviteCode is a short human-typeable code used to join the group.
	InviteCode string `json:"inviteCode"`

	// Name is the display name of the group (e.g., "Roommates", "Lisbon Trip").
	Name string `json:"name"`

	// Description is optional free text.
	Description string `json:"description,omitempty"`

	// Currency is the symbol every amount in the group is expressed in.
	Currency string `json:"currency"`

	// Category classifies the group (e.g., "trip", "home").
	Category string `json:"category,omitempty"`

	// Members are never removed, only added.
	Members []Member `json:"members"`

	// Expenses and Settlements are the append-only event history
	// that every balance is derived from.
	Expenses    []Expense    `json:"expenses"`
	Settlements []Settlement `json:"settlements"`

	// Budgets are spending targets; they do not affect balances.
	Budgets []Budget `json:"budgets"`

	// CreatedAt is when the group was created.
	CreatedAt time.Time `json:"createdAt"`

	// LastActivity is bumped by every mutating ledger event.
	LastActivity time.Time `json:"lastActivity"`
}

// Member returns the member with the given ID.
func (g *Group) Member(id string) (Member, bool) {
	for _, m := range g.Members {
		if m.ID == id {
			return m, true
		}
	}
	return Member{}, false
}

// HasMember reports whether id belongs to a member of g.
func (g *Group) HasMember(id string) bool {
	_, ok := g.Member(id)
	return ok
}

// MemberName resolves a member ID to its name, or "Unknown".
func (g *Group) MemberName(id string) string {
	if m, ok := g.Member(id); ok {
		return m.Name
	}
	return "Unknown"
}

// MemberIDs returns the IDs of all members in insertion order.
func (g *Group) MemberIDs() []string {
	ids := make([]string, len(g.Members))
	for i, m := range g.Members {
		ids[i] = m.ID
	}
	return ids
}
