package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/utafrali/storefront/internal/auth"
	"github.com/utafrali/storefront/internal/domain"
	"github.com/utafrali/storefront/internal/repository"
	apperrors "github.com/utafrali/storefront/pkg/errors"
)

const bcryptCost = 12

// RegisterInput holds the parameters for registering a user.
type RegisterInput struct {
	Email    string
	Password string
	Name     string
}

// AuthResult is a user plus a freshly issued access token.
type AuthResult struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

// UserService implements registration, login, and profile lookup.
type UserService struct {
	users  repository.UserRepository
	jwt    *auth.JWTManager
	logger *slog.Logger
}

// NewUserService creates a new user service.
func NewUserService(users repository.UserRepository, jwt *auth.JWTManager, logger *slog.Logger) *UserService {
	return &UserService{
		users:  users,
		jwt:    jwt,
		logger: logger,
	}
}

// Register creates a new account and returns it with an access token.
// An already-registered email is rejected as invalid input (400), matching
// the public API contract.
func (s *UserService) Register(ctx context.Context, input *RegisterInput) (*AuthResult, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" {
		return nil, apperrors.InvalidInput("email is required")
	}
	if input.Password == "" {
		return nil, apperrors.InvalidInput("password is required")
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		// Default the display name to the email local part.
		name = email
		if at := strings.Index(email, "@"); at > 0 {
			name = email[:at]
		}
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, apperrors.InvalidInput("user already exists")
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("check existing user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &domain.User{
		ID:           uuid.New().String(),
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
		Role:         domain.RoleCustomer,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.users.Create(ctx, user); err != nil {
		// A concurrent registration can slip past the existence check; the
		// unique index reports it and the caller still sees 400.
		if errors.Is(err, apperrors.ErrAlreadyExists) {
			return nil, apperrors.InvalidInput("user already exists")
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	token, err := s.jwt.GenerateAccessToken(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}

	s.logger.InfoContext(ctx, "user registered",
		slog.String("user_id", user.ID),
		slog.String("email", user.Email),
	)

	return &AuthResult{Token: token, User: user}, nil
}

// Login verifies credentials and returns the user with an access token.
// Unknown emails and wrong passwords both map to 401 without distinction.
func (s *UserService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, apperrors.InvalidInput("email and password are required")
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.Unauthorized("invalid credentials")
		}
		return nil, fmt.Errorf("load user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, apperrors.Unauthorized("invalid credentials")
	}

	token, err := s.jwt.GenerateAccessToken(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}

	return &AuthResult{Token: token, User: user}, nil
}

// Me returns the profile of the authenticated user.
func (s *UserService) Me(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NotFound("user", userID)
		}
		return nil, fmt.Errorf("load user: %w", err)
	}
	return user, nil
}
