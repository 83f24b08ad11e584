// Package memory provides an in-process implementation of storage.Store,
// used by tests and by the server when STORAGE_BACKEND=memory.
package memory

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"sync"

	"github.com/mmynk/groupledger/internal/models"
	"github.com/mmynk/groupledger/internal/storage"
)

var _ storage.Store = (*Store)(nil)

// Store keeps deep copies of everything it is given, so callers never share
// mutable state with it.
type Store struct {
	mu     sync.RWMutex
	groups map[string]*models.Group
	users  map[string]*models.User
}

// New returns an empty store.
func New() *Store {
	return &Store{
		groups: make(map[string]*models.Group),
		users:  make(map[string]*models.User),
	}
}

func (s *Store) SaveGroup(_ context.Context, g *models.Group) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, other := range s.groups {
		if id != g.ID && other.InviteCode == g.InviteCode {
			return fmt.Errorf("invite code %s already used by group %s", g.InviteCode, id)
		}
	}
	s.groups[g.ID] = cloneGroup(g)
	return nil
}

func (s *Store) GetGroup(_ context.Context, groupID string) (*models.Group, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	g, ok := s.groups[groupID]
	if !ok {
		return nil, fmt.Errorf("group %s: %w", groupID, models.ErrNotFound)
	}
	return cloneGroup(g), nil
}

func (s *Store) FindGroupByInviteCode(_ context.Context, code string) (*models.Group, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, g := range s.groups {
		if g.InviteCode == code {
			return cloneGroup(g), nil
		}
	}
	return nil, fmt.Errorf("group %s: %w", code, models.ErrNotFound)
}

func (s *Store) ListGroups(_ context.Context) ([]*models.Group, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	groups := make([]*models.Group, 0, len(s.groups))
	for _, g := range s.groups {
		groups = append(groups, cloneGroup(g))
	}
	sort.Slice(groups, func(i, j int) bool {
		if !groups[i].LastActivity.Equal(groups[j].LastActivity) {
			return groups[i].LastActivity.After(groups[j].LastActivity)
		}
		return groups[i].Name < groups[j].Name
	})
	return groups, nil
}

func (s *Store) DeleteGroup(_ context.Context, groupID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.groups[groupID]; !ok {
		return fmt.Errorf("group %s: %w", groupID, models.ErrNotFound)
	}
	delete(s.groups, groupID)
	return nil
}

func (s *Store) SaveUser(_ context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *u
	s.users[u.ID] = &cp
	return nil
}

func (s *Store) GetUser(_ context.Context, userID string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[userID]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", userID, models.ErrNotFound)
	}
	cp := *u
	return &cp, nil
}

func (s *Store) Close() error { return nil }

// cloneGroup copies every slice reachable from g. Decimals and share
// details are immutable values and can be shared.
func cloneGroup(g *models.Group) *models.Group {
	cp := *g
	cp.Members = cloneSlice(g.Members)
	cp.Settlements = cloneSlice(g.Settlements)
	cp.Budgets = cloneSlice(g.Budgets)
	cp.Expenses = make([]models.Expense, len(g.Expenses))
	for i, e := range g.Expenses {
		e.Payers = cloneSlice(e.Payers)
		e.Splits = cloneSlice(e.Splits)
		cp.Expenses[i] = e
	}
	return &cp
}

// cloneSlice is slices.Clone that never returns nil.
func cloneSlice[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return slices.Clone(s)
}
