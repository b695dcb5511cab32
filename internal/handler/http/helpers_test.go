package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/utafrali/storefront/internal/auth"
	"github.com/utafrali/storefront/internal/domain"
	"github.com/utafrali/storefront/internal/repository"
	"github.com/utafrali/storefront/pkg/httputil"
	"github.com/utafrali/storefront/pkg/middleware"
)

// ============================================================================
// Mock repositories
// ============================================================================

type mockSearchRepository struct {
	mock.Mock
}

func (m *mockSearchRepository) Search(ctx context.Context, query domain.SearchQuery) ([]domain.Product, int, error) {
	args := m.Called(ctx, query)
	return args.Get(0).([]domain.Product), args.Int(1), args.Error(2)
}

func (m *mockSearchRepository) Suggest(ctx context.Context, term string, limit int) ([]domain.Suggestion, error) {
	args := m.Called(ctx, term, limit)
	return args.Get(0).([]domain.Suggestion), args.Error(1)
}

type mockSearchHistoryRepository struct {
	mock.Mock
}

func (m *mockSearchHistoryRepository) Append(ctx context.Context, entry *domain.SearchHistoryEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *mockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type mockReviewRepository struct {
	mock.Mock
}

func (m *mockReviewRepository) Create(ctx context.Context, review *domain.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

func (m *mockReviewRepository) GetByID(ctx context.Context, id string) (*domain.Review, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Review), args.Error(1)
}

func (m *mockReviewRepository) ListByProductID(ctx context.Context, productID string, page, limit int) ([]domain.Review, int, error) {
	args := m.Called(ctx, productID, page, limit)
	return args.Get(0).([]domain.Review), args.Int(1), args.Error(2)
}

func (m *mockReviewRepository) Update(ctx context.Context, review *domain.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

func (m *mockReviewRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockReviewRepository) ListRatings(ctx context.Context, productID string) ([]int, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int), args.Error(1)
}

type mockProductRepository struct {
	mock.Mock
}

func (m *mockProductRepository) Create(ctx context.Context, product *domain.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *mockProductRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *mockProductRepository) GetBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *mockProductRepository) List(ctx context.Context, filter repository.ProductFilter) ([]domain.Product, int, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.Product), args.Int(1), args.Error(2)
}

func (m *mockProductRepository) Update(ctx context.Context, product *domain.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *mockProductRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockProductRepository) UpdateRating(ctx context.Context, productID string, avgRating float64, reviewCount int) error {
	args := m.Called(ctx, productID, avgRating, reviewCount)
	return args.Error(0)
}

// ============================================================================
// Test helpers
// ============================================================================

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func testJWTManager() *auth.JWTManager {
	return auth.NewJWTManager("test-secret-key-for-testing", 15*time.Minute)
}

// stubValidator accepts any token and returns fixed claims.
func stubValidator(userID, role string) middleware.TokenValidator {
	return func(token string) (*middleware.Claims, error) {
		return &middleware.Claims{UserID: userID, Email: "test@example.com", Role: role}, nil
	}
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) httputil.Response {
	t.Helper()
	var resp httputil.Response
	err := json.NewDecoder(rec.Body).Decode(&resp)
	require.NoError(t, err)
	return resp
}
