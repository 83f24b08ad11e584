package sqlite

import (
	"context"
	"fmt"

	"github.com/mmynk/groupledger/internal/models"
)

// SaveUser inserts or replaces a user profile.
func (s *SQLiteStore) SaveUser(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (id, name, email, currency, theme, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			email = excluded.email,
			currency = excluded.currency,
			theme = excluded.theme
	`

	_, err := s.db.ExecContext(ctx, query,
		user.ID,
		user.Name,
		user.Email,
		user.Preferences.Currency,
		user.Preferences.Theme,
		toUnix(user.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to save user: %w", err)
	}
	return nil
}

// GetUser retrieves a user by their ID.
func (s *SQLiteStore) GetUser(ctx context.Context, id string) (*models.User, error) {
	query := `
		SELECT id, name, email, currency, theme, created_at
		FROM users
		WHERE id = ?
	`

	user := &models.User{}
	var createdAt int64
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.Preferences.Currency,
		&user.Preferences.Theme,
		&createdAt,
	)
	if err != nil {
		return nil, notFound("user", id, err)
	}
	user.CreatedAt = fromUnix(createdAt)
	return user, nil
}
