package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/mmynk/groupledger/internal/models"
)

// SaveUser creates or updates the local user profile.
func (s *LedgerService) SaveUser(ctx context.Context, req *SaveUserRequest) (resp *SaveUserResponse, err error) {
	defer func() { s.observe("SaveUser", err, "user_id", req.ID) }()

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("user: %w", models.ErrEmptyName)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	user := &models.User{ID: req.ID, Preferences: models.DefaultPreferences(), CreatedAt: s.now()}
	if req.ID == "" {
		user.ID = uuid.New().String()
	} else {
		existing, err := s.store.GetUser(ctx, req.ID)
		switch {
		case err == nil:
			user = existing
		case !errors.Is(err, models.ErrNotFound):
			return nil, err
		}
	}

	user.Name = name
	user.Email = req.Email
	if req.Preferences != nil {
		if req.Preferences.Currency != "" {
			user.Preferences.Currency = req.Preferences.Currency
		}
		if req.Preferences.Theme != "" {
			user.Preferences.Theme = req.Preferences.Theme
		}
	}

	if err := s.store.SaveUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to save user: %w", err)
	}
	return &SaveUserResponse{User: user}, nil
}

// GetUser returns a saved user profile.
func (s *LedgerService) GetUser(ctx context.Context, req *GetUserRequest) (resp *GetUserResponse, err error) {
	defer func() { s.observe("GetUser", err, "user_id", req.UserID) }()

	user, err := s.store.GetUser(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	return &GetUserResponse{User: user}, nil
}
