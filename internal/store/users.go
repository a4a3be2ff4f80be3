package store

import (
	"context"
	"database/sql"
	"errors"

	"innkeep/internal/models"
)

// ErrUserNotFound is returned when a username does not exist.
var ErrUserNotFound = errors.New("user not found")

const userColumns = "id, username, password_hash, is_active, created_at, updated_at"

// CreateUser inserts one user row and fills in the generated id and
// timestamps.
func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	return s.db.QueryRowContext(ctx,
		`INSERT INTO users (username, password_hash, is_active)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at, updated_at`,
		user.Username, user.PasswordHash, user.IsActive,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
}

// GetUserByUsername returns one user by username.
func (s *Store) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := s.db.GetContext(ctx, &user, `SELECT `+userColumns+` FROM users WHERE username = $1`, username)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}
