package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/utafrali/storefront/internal/domain"
	"github.com/utafrali/storefront/pkg/database"
	apperrors "github.com/utafrali/storefront/pkg/errors"
)

// UserRepository implements repository.UserRepository using PostgreSQL.
type UserRepository struct {
	db database.DBTX
}

// NewUserRepository creates a new PostgreSQL-backed user repository.
func NewUserRepository(db database.DBTX) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user. Emails are stored lowercased and are unique.
func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	query := `
		INSERT INTO users (id, email, name, password_hash, role, last_location, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.Exec(ctx, query,
		u.ID,
		u.Email,
		u.Name,
		u.PasswordHash,
		u.Role,
		u.LastLocation,
		u.CreatedAt,
		u.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.AlreadyExists("user", "email", u.Email)
		}
		return fmt.Errorf("insert user: %w", err)
	}

	return nil
}

// GetByID retrieves a user by its ID.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	query := `
		SELECT id, email, name, password_hash, role, last_location, created_at, updated_at
		FROM users
		WHERE id = $1`

	return r.scanUser(ctx, query, id)
}

// GetByEmail retrieves a user by email (case-insensitive).
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `
		SELECT id, email, name, password_hash, role, last_location, created_at, updated_at
		FROM users
		WHERE email = lower($1)`

	return r.scanUser(ctx, query, email)
}

func (r *UserRepository) scanUser(ctx context.Context, query string, args ...any) (*domain.User, error) {
	var u domain.User
	err := r.db.QueryRow(ctx, query, args...).Scan(
		&u.ID,
		&u.Email,
		&u.Name,
		&u.PasswordHash,
		&u.Role,
		&u.LastLocation,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}

	return &u, nil
}
