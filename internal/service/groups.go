package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mmynk/groupledger/internal/ledger"
	"github.com/mmynk/groupledger/internal/models"
)

// CreateGroup creates a new group with the listed members.
func (s *LedgerService) CreateGroup(ctx context.Context, req *CreateGroupRequest) (resp *CreateGroupResponse, err error) {
	defer func() {
		attrs := []any{"name", req.Name, "members_count", len(req.Members)}
		if resp != nil {
			attrs = append(attrs, "group_id", resp.Group.ID)
		}
		s.observe("CreateGroup", err, attrs...)
	}()

	params := ledger.GroupParams{
		Name:        req.Name,
		Description: req.Description,
		Currency:    req.Currency,
		Category:    req.Category,
		MemberNames: req.Members,
	}
	if req.CreatorID != "" {
		user, err := s.store.GetUser(ctx, req.CreatorID)
		if err != nil {
			return nil, err
		}
		params.Creator = &models.Member{ID: user.ID, Name: user.Name, Email: user.Email}
		if params.Currency == "" {
			params.Currency = user.Preferences.Currency
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	g, err := ledger.NewGroup(params, s.now())
	if err != nil {
		return nil, err
	}
	if err := s.store.SaveGroup(ctx, g); err != nil {
		return nil, fmt.Errorf("failed to save group: %w", err)
	}
	return &CreateGroupResponse{Group: g}, nil
}

// GetGroup returns a group with its full history and headline totals.
func (s *LedgerService) GetGroup(ctx context.Context, req *GetGroupRequest) (resp *GetGroupResponse, err error) {
	defer func() { s.observe("GetGroup", err, "group_id", req.GroupID) }()

	g, err := s.store.GetGroup(ctx, req.GroupID)
	if err != nil {
		return nil, err
	}
	return &GetGroupResponse{Group: g, Summary: ledger.Summary(g)}, nil
}

// ListGroups lists every group, most recently active first.
func (s *LedgerService) ListGroups(ctx context.Context, _ *ListGroupsRequest) (resp *ListGroupsResponse, err error) {
	defer func() {
		count := 0
		if resp != nil {
			count = len(resp.Groups)
		}
		s.observe("ListGroups", err, "count", count)
	}()

	groups, err := s.store.ListGroups(ctx)
	if err != nil {
		return nil, err
	}
	infos := make([]GroupInfo, len(groups))
	for i, g := range groups {
		sum := ledger.Summary(g)
		infos[i] = GroupInfo{
			ID:            g.ID,
			Name:          g.Name,
			Category:      g.Category,
			Currency:      g.Currency,
			InviteCode:    g.InviteCode,
			MemberCount:   sum.MemberCount,
			ExpenseCount:  sum.ExpenseCount,
			TotalExpenses: sum.TotalExpenses,
			LastActivity:  g.LastActivity,
		}
	}
	return &ListGroupsResponse{Groups: infos}, nil
}

// JoinGroup adds the caller to the group identified by an invite code or ID.
func (s *LedgerService) JoinGroup(ctx context.Context, req *JoinGroupRequest) (resp *JoinGroupResponse, err error) {
	defer func() { s.observe("JoinGroup", err, "code_or_id", req.CodeOrID, "name", req.Name) }()

	code := strings.TrimSpace(req.CodeOrID)
	if code == "" {
		return nil, fmt.Errorf("group: %w", models.ErrNotFound)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	g, err := s.store.FindGroupByInviteCode(ctx, strings.ToUpper(code))
	if errors.Is(err, models.ErrNotFound) {
		g, err = s.store.GetGroup(ctx, code)
	}
	if err != nil {
		return nil, err
	}

	now := s.now()
	member, err := ledger.AddMember(g, models.Member{ID: req.UserID, Name: req.Name}, now)
	if err != nil {
		return nil, err
	}
	if err := s.store.SaveGroup(ctx, g); err != nil {
		return nil, fmt.Errorf("failed to save group: %w", err)
	}

	if req.UserID != "" {
		if err := s.renameUser(ctx, req.UserID, member.Name); err != nil {
			s.logger.Warn("Failed to update user name after join", "user_id", req.UserID, "error", err)
		}
	}
	return &JoinGroupResponse{Group: g, Member: member}, nil
}

func (s *LedgerService) renameUser(ctx context.Context, userID, name string) error {
	user, err := s.store.GetUser(ctx, userID)
	if errors.Is(err, models.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if user.Name == name {
		return nil
	}
	user.Name = name
	return s.store.SaveUser(ctx, user)
}

// DeleteGroup removes a group and its whole history.
func (s *LedgerService) DeleteGroup(ctx context.Context, req *DeleteGroupRequest) (resp *DeleteGroupResponse, err error) {
	defer func() { s.observe("DeleteGroup", err, "group_id", req.GroupID) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.DeleteGroup(ctx, req.GroupID); err != nil {
		return nil, err
	}
	return &DeleteGroupResponse{}, nil
}

// AddMember adds a named member to a group.
func (s *LedgerService) AddMember(ctx context.Context, req *AddMemberRequest) (resp *AddMemberResponse, err error) {
	defer func() { s.observe("AddMember", err, "group_id", req.GroupID, "name", req.Name) }()

	var member models.Member
	_, err = s.update(ctx, req.GroupID, func(g *models.Group, now time.Time) error {
		var err error
		member, err = ledger.AddMember(g, models.Member{Name: req.Name, Email: req.Email}, now)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &AddMemberResponse{Member: member}, nil
}
