package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"modernc.org/sqlite"

	"personaai/internal/models"
)

// sqliteUniqueViolation is SQLITE_CONSTRAINT_UNIQUE.
const sqliteUniqueViolation = 2067

// CreateUser inserts a user with a generated id. The password must already
// be hashed. A taken email returns ErrEmailExists.
func (s *Store) CreateUser(ctx context.Context, u *models.User) error {
	now := time.Now().UTC()
	u.ID = uuid.NewString()
	u.CreatedAt = now
	u.UpdatedAt = now
	if u.Type == "" {
		u.Type = models.RoleUser
	}

	_, err := s.db.NamedExecContext(ctx, `
		INSERT INTO users (id, name, email, password, type, created_at, updated_at)
		VALUES (:id, :name, :email, :password, :type, :created_at, :updated_at)`, u)
	if err != nil {
		var sqliteErr *sqlite.Error
		if errors.As(err, &sqliteErr) && sqliteErr.Code() == sqliteUniqueViolation {
			return ErrEmailExists
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

// UpdateUser updates name, email, role and, when non-empty, the password
// hash of an existing user.
func (s *Store) UpdateUser(ctx context.Context, u *models.User) error {
	u.UpdatedAt = time.Now().UTC()

	query := `UPDATE users SET name = :name, email = :email, type = :type, updated_at = :updated_at WHERE id = :id`
	if u.Password != "" {
		query = `UPDATE users SET name = :name, email = :email, type = :type, password = :password, updated_at = :updated_at WHERE id = :id`
	}

	res, err := s.db.NamedExecContext(ctx, query, u)
	if err != nil {
		var sqliteErr *sqlite.Error
		if errors.As(err, &sqliteErr) && sqliteErr.Code() == sqliteUniqueViolation {
			return ErrEmailExists
		}
		return fmt.Errorf("failed to update user: %w", err)
	}
	return requireAffected(res)
}

// GetUserByEmail fetches a user for credential checks.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := s.db.GetContext(ctx, &u, `SELECT * FROM users WHERE email = ?`, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return &u, nil
}

// GetUser fetches a user by id.
func (s *Store) GetUser(ctx context.Context, id string) (*models.User, error) {
	var u models.User
	err := s.db.GetContext(ctx, &u, `SELECT * FROM users WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &u, nil
}

// ListUsers returns all users ordered by name. Password hashes are loaded
// but excluded from serialization by the model's json tag.
func (s *Store) ListUsers(ctx context.Context) ([]models.User, error) {
	users := []models.User{}
	err := s.db.SelectContext(ctx, &users, `SELECT * FROM users ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// DeleteUser removes a user. Returns ErrNotFound when missing.
func (s *Store) DeleteUser(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return requireAffected(res)
}

// CountUsers reports the number of accounts; used to decide admin seeding.
func (s *Store) CountUsers(ctx context.Context) (int, error) {
	var n int
	if err := s.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM users`); err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return n, nil
}
