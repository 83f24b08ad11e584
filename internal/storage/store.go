// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"

	"github.com/mmynk/groupledger/internal/models"
)

// Store persists whole group aggregates and the local user profile.
// This abstraction allows swapping storage backends (SQLite, in-memory)
// without changing the service layer.
type Store interface {
	// SaveGroup inserts or replaces the group together with its members,
	// expenses, settlements and budgets.
	SaveGroup(ctx context.Context, group *models.Group) error

	// GetGroup retrieves a group by its ID.
	// Returns an error wrapping models.ErrNotFound if it does not exist.
	GetGroup(ctx context.Context, groupID string) (*models.Group, error)

	// FindGroupByInviteCode looks a group up by its invite code.
	FindGroupByInviteCode(ctx context.Context, code string) (*models.Group, error)

	// ListGroups returns every group, most recently active first.
	ListGroups(ctx context.Context) ([]*models.Group, error)

	// DeleteGroup removes a group and all of its history.
	DeleteGroup(ctx context.Context, groupID string) error

	// SaveUser inserts or replaces a user profile.
	SaveUser(ctx context.Context, user *models.User) error

	// GetUser retrieves a user by ID.
	GetUser(ctx context.Context, userID string) (*models.User, error)

	// Close releases any resources held by the store.
	Close() error
}
