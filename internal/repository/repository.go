package repository

import (
	"context"

	"github.com/utafrali/storefront/internal/domain"
)

// ProductFilter defines filter criteria for listing products.
type ProductFilter struct {
	CategoryID *string
	BrandID    *string
	MinPrice   *int64
	MaxPrice   *int64
	InStock    *bool
	Page       int
	Limit      int
}

// ProductRepository defines product persistence operations.
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Product, error)
	List(ctx context.Context, filter ProductFilter) ([]domain.Product, int, error)
	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id string) error

	// UpdateRating persists the derived rating aggregate onto the product.
	UpdateRating(ctx context.Context, productID string, avgRating float64, reviewCount int) error
}

// BrandRepository defines brand persistence operations.
type BrandRepository interface {
	Create(ctx context.Context, brand *domain.Brand) error
	GetByID(ctx context.Context, id string) (*domain.Brand, error)
	List(ctx context.Context) ([]domain.Brand, error)
}

// CategoryRepository defines category persistence operations.
type CategoryRepository interface {
	Create(ctx context.Context, category *domain.Category) error
	GetByID(ctx context.Context, id string) (*domain.Category, error)
	List(ctx context.Context) ([]domain.Category, error)
	Update(ctx context.Context, category *domain.Category) error
}

// ReviewRepository defines review persistence operations.
type ReviewRepository interface {
	Create(ctx context.Context, review *domain.Review) error
	GetByID(ctx context.Context, id string) (*domain.Review, error)
	ListByProductID(ctx context.Context, productID string, page, limit int) ([]domain.Review, int, error)
	Update(ctx context.Context, review *domain.Review) error
	Delete(ctx context.Context, id string) error

	// ListRatings returns the full rating set for a product, used by the
	// aggregation recompute.
	ListRatings(ctx context.Context, productID string) ([]int, error)
}

// UserRepository defines user persistence operations.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

// OrderRepository defines order persistence operations.
type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	ListByUserID(ctx context.Context, userID string, page, limit int) ([]domain.Order, int, error)
}

// SearchRepository runs the deterministic product search against the store.
type SearchRepository interface {
	Search(ctx context.Context, query domain.SearchQuery) ([]domain.Product, int, error)
	Suggest(ctx context.Context, term string, limit int) ([]domain.Suggestion, error)
}

// SearchHistoryRepository appends to the search log. The log is append-only;
// there are no update or delete operations.
type SearchHistoryRepository interface {
	Append(ctx context.Context, entry *domain.SearchHistoryEntry) error
}
