package ledger

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/groupledger/internal/models"
)

const (
	inviteCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	inviteCodeLength   = 8

	// DefaultCurrency is used when a group is created without one.
	DefaultCurrency = "$"
)

// GroupParams describes a group to be created.
type GroupParams struct {
	Name        string
	Description string
	Currency    string
	Category    string

	// MemberNames are added in order. Blank names are skipped.
	MemberNames []string

	// Creator, when set, becomes the first member unless a member with the
	// same name is already listed.
	Creator *models.Member
}

// NewGroup builds an empty group with a fresh ID and invite code.
func NewGroup(p GroupParams, now time.Time) (*models.Group, error) {
	name := strings.TrimSpace(p.Name)
	if name == "" {
		return nil, fmt.Errorf("group: %w", models.ErrEmptyName)
	}
	code, err := NewInviteCode()
	if err != nil {
		return nil, err
	}
	currency := p.Currency
	if currency == "" {
		currency = DefaultCurrency
	}

	g := &models.Group{
		ID:           uuid.New().String(),
		InviteCode:   code,
		Name:         name,
		Description:  p.Description,
		Currency:     currency,
		Category:     p.Category,
		Members:      []models.Member{},
		Expenses:     []models.Expense{},
		Settlements:  []models.Settlement{},
		Budgets:      []models.Budget{},
		CreatedAt:    now,
		LastActivity: now,
	}

	for _, n := range p.MemberNames {
		if strings.TrimSpace(n) == "" {
			continue
		}
		if _, err := AddMember(g, models.Member{Name: n}, now); err != nil {
			return nil, err
		}
	}
	if p.Creator != nil && findByName(g, p.Creator.Name) < 0 {
		creator, err := normalizeMember(g, *p.Creator)
		if err != nil {
			return nil, err
		}
		g.Members = append([]models.Member{creator}, g.Members...)
	}
	return g, nil
}

// AddMember adds m to g. Names are trimmed and must be unique within the
// group regardless of case. An empty ID is replaced with a fresh one.
func AddMember(g *models.Group, m models.Member, now time.Time) (models.Member, error) {
	m, err := normalizeMember(g, m)
	if err != nil {
		return models.Member{}, err
	}
	if findByName(g, m.Name) >= 0 {
		return models.Member{}, fmt.Errorf("%w: %s", models.ErrDuplicateMember, m.Name)
	}
	g.Members = append(g.Members, m)
	g.LastActivity = now
	return m, nil
}

// FindMemberByName returns the member whose name matches case-insensitively.
func FindMemberByName(g *models.Group, name string) (models.Member, bool) {
	if i := findByName(g, name); i >= 0 {
		return g.Members[i], true
	}
	return models.Member{}, false
}

// NewInviteCode returns a random code from an alphabet without the easily
// confused characters I, O, 0 and 1.
func NewInviteCode() (string, error) {
	var sb strings.Builder
	max := big.NewInt(int64(len(inviteCodeAlphabet)))
	for range inviteCodeLength {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("failed to generate invite code: %w", err)
		}
		sb.WriteByte(inviteCodeAlphabet[n.Int64()])
	}
	return sb.String(), nil
}

func normalizeMember(g *models.Group, m models.Member) (models.Member, error) {
	m.Name = strings.TrimSpace(m.Name)
	if m.Name == "" {
		return models.Member{}, fmt.Errorf("member: %w", models.ErrEmptyName)
	}
	if m.ID == "" {
		m.ID = uuid.New().String()
	} else if g.HasMember(m.ID) {
		return models.Member{}, fmt.Errorf("%w: id %s", models.ErrDuplicateMember, m.ID)
	}
	return m, nil
}

func findByName(g *models.Group, name string) int {
	name = strings.TrimSpace(name)
	for i, m := range g.Members {
		if strings.EqualFold(m.Name, name) {
			return i
		}
	}
	return -1
}
