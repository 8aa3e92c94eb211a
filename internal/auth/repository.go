package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"coolschool/internal/models"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrUserExists   = errors.New("user already exists")
)

// Repository provides access to the user storage.
type Repository struct {
	DB *sqlx.DB
}

// NewRepository creates a new authentication repository.
func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{DB: db}
}

// FindUserByUsername finds a user by their username.
func (r *Repository) FindUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := r.DB.GetContext(ctx, &user, r.DB.Rebind("SELECT id, username, password_hash, is_superuser FROM users WHERE username = ?"), username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("find user %q: %w", username, err)
	}
	return &user, nil
}

// FindUserByID finds a user by their identifier.
func (r *Repository) FindUserByID(ctx context.Context, id int64) (*models.User, error) {
	var user models.User
	err := r.DB.GetContext(ctx, &user, r.DB.Rebind("SELECT id, username, password_hash, is_superuser FROM users WHERE id = ?"), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("find user %d: %w", id, err)
	}
	return &user, nil
}

// CreateUser inserts a new user and sets its ID.
func (r *Repository) CreateUser(ctx context.Context, user *models.User) error {
	if _, err := r.FindUserByUsername(ctx, user.Username); err == nil {
		return ErrUserExists
	} else if !errors.Is(err, ErrUserNotFound) {
		return err
	}

	query := r.DB.Rebind("INSERT INTO users (username, password_hash, is_superuser) VALUES (?, ?, ?) RETURNING id")
	if err := r.DB.QueryRowxContext(ctx, query, user.Username, user.PasswordHash, user.IsSuperuser).Scan(&user.ID); err != nil {
		return fmt.Errorf("create user %q: %w", user.Username, err)
	}
	return nil
}

// UpdateUser saves the password hash and superuser flag of an existing user.
func (r *Repository) UpdateUser(ctx context.Context, user *models.User) error {
	res, err := r.DB.ExecContext(ctx, r.DB.Rebind("UPDATE users SET password_hash = ?, is_superuser = ? WHERE id = ?"),
		user.PasswordHash, user.IsSuperuser, user.ID)
	if err != nil {
		return fmt.Errorf("update user %d: %w", user.ID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrUserNotFound
	}
	return nil
}
