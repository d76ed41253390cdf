package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"itemvault/internal/models"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Ensure implementation of Users interface at compile time.
var _ Users = (*UserRepository)(nil)

const (
	insertUserSQL = `INSERT INTO users (email, hashed_password, full_name) VALUES (?, ?, ?)`

	selectUserByEmailSQL = `SELECT id, email, hashed_password, full_name, is_active, created_at, updated_at FROM users WHERE email = ?`
	selectUserByIDSQL    = `SELECT id, email, hashed_password, full_name, is_active, created_at, updated_at FROM users WHERE id = ?`
)

// Create inserts a new user and returns its ID.
func (r *UserRepository) Create(ctx context.Context, email, hashedPassword, fullName string) (int, error) {
	res, err := r.db.ExecContext(ctx, insertUserSQL, email, hashedPassword, fullName)
	if err != nil {
		return 0, fmt.Errorf("insert user %q: %w", email, err)
	}
	lastID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get last insert id for user %q: %w", email, err)
	}
	return int(lastID), nil
}

// GetByEmail fetches a user by email. Returns (nil, nil) if not found.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	u, err := r.scanUser(r.db.QueryRowContext(ctx, selectUserByEmailSQL, email))
	if err != nil {
		return nil, fmt.Errorf("select user %q: %w", email, err)
	}
	return u, nil
}

// GetByID fetches a user by id. Returns (nil, nil) if not found.
func (r *UserRepository) GetByID(ctx context.Context, id int) (*models.User, error) {
	u, err := r.scanUser(r.db.QueryRowContext(ctx, selectUserByIDSQL, id))
	if err != nil {
		return nil, fmt.Errorf("select user id=%d: %w", id, err)
	}
	return u, nil
}

// Update applies only the fields set in patch and refreshes updated_at.
// Calling it with an empty patch is the caller's bug; services short-circuit
// empty payloads before reaching the store.
func (r *UserRepository) Update(ctx context.Context, id int, patch UserPatch) error {
	set := make([]string, 0, 3)
	args := make([]any, 0, 3)
	if patch.Email != nil {
		set = append(set, "email = ?")
		args = append(args, *patch.Email)
	}
	if patch.FullName != nil {
		set = append(set, "full_name = ?")
		args = append(args, *patch.FullName)
	}
	if len(set) == 0 {
		return errors.New("update user: empty patch")
	}
	set = append(set, "updated_at = CURRENT_TIMESTAMP")
	args = append(args, id)

	query := fmt.Sprintf("UPDATE users SET %s WHERE id = ?", strings.Join(set, ", "))
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update user id=%d: %w", id, err)
	}
	return nil
}

func (r *UserRepository) scanUser(row *sql.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Email, &u.HashedPassword, &u.FullName, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}
