package service

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/utafrali/storefront/internal/auth"
	"github.com/utafrali/storefront/internal/domain"
	"github.com/utafrali/storefront/internal/repository"
)

// --- Mock Product Repository ---

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

// --- Mock Brand Repository ---

type mockBrandRepository struct {
	mock.Mock
}

func (m *mockBrandRepository) Create(ctx context.Context, brand *domain.Brand) error {
	args := m.Called(ctx, brand)
	return args.Error(0)
}

func (m *mockBrandRepository) GetByID(ctx context.Context, id string) (*domain.Brand, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Brand), args.Error(1)
}

func (m *mockBrandRepository) List(ctx context.Context) ([]domain.Brand, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Brand), args.Error(1)
}

// --- Mock Category Repository ---

type mockCategoryRepository struct {
	mock.Mock
}

func (m *mockCategoryRepository) Create(ctx context.Context, category *domain.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *mockCategoryRepository) GetByID(ctx context.Context, id string) (*domain.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *mockCategoryRepository) List(ctx context.Context) ([]domain.Category, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Category), args.Error(1)
}

func (m *mockCategoryRepository) Update(ctx context.Context, category *domain.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

// --- Mock Review Repository ---

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

// --- Mock User Repository ---

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

// --- Mock Order Repository ---

type mockOrderRepository struct {
	mock.Mock
}

func (m *mockOrderRepository) Create(ctx context.Context, order *domain.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *mockOrderRepository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *mockOrderRepository) ListByUserID(ctx context.Context, userID string, page, limit int) ([]domain.Order, int, error) {
	args := m.Called(ctx, userID, page, limit)
	return args.Get(0).([]domain.Order), args.Int(1), args.Error(2)
}

// --- Mock Search Repository ---

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

// --- Mock Search History Repository ---

type mockSearchHistoryRepository struct {
	mock.Mock
}

func (m *mockSearchHistoryRepository) Append(ctx context.Context, entry *domain.SearchHistoryEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

// --- Test Helpers ---

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func newTestJWTManager() *auth.JWTManager {
	return auth.NewJWTManager("test-secret-key-for-testing", 15*time.Minute)
}

func strPtr(s string) *string {
	return &s
}
