package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"

	"dropxcult-admin/db"
	"dropxcult-admin/models"
)

// UserRepository handles database operations for users
// Implements UserRepositoryInterface
type UserRepository struct{}

// NewUserRepository creates a new UserRepository
func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

// Ensure UserRepository implements UserRepositoryInterface
var _ UserRepositoryInterface = (*UserRepository)(nil)

// List returns all users, newest first
func (r *UserRepository) List(ctx context.Context) ([]models.User, error) {
	query := `SELECT id, name, email, is_admin, created_at FROM users ORDER BY created_at DESC`

	rows, err := db.DB.QueryContext(ctx, query)
	if err != nil {
		log.Errorf("❌ Error listing users: %v", err)
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.IsAdmin, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating users: %w", err)
	}
	return users, nil
}

// Delete removes a non-admin user. Administrators yield ErrProtectedUser.
func (r *UserRepository) Delete(ctx context.Context, id string) error {
	var isAdmin bool
	err := db.DB.QueryRowContext(ctx, `SELECT is_admin FROM users WHERE id = $1`, id).Scan(&isAdmin)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}
	if isAdmin {
		log.Warnf("⚠️  Refusing to delete admin user %s", id)
		return ErrProtectedUser
	}

	if _, err := db.DB.ExecContext(ctx, `DELETE FROM users WHERE id = $1 AND is_admin = FALSE`, id); err != nil {
		log.Errorf("❌ Error deleting user %s: %v", id, err)
		return fmt.Errorf("failed to delete user: %w", err)
	}

	log.Infof("🗑️  User deleted: %s", id)
	return nil
}

// Count returns the number of users
func (r *UserRepository) Count(ctx context.Context) (int, error) {
	return countRows(ctx, "users")
}
