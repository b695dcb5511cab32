package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/utafrali/storefront/internal/domain"
	"github.com/utafrali/storefront/internal/repository"
	apperrors "github.com/utafrali/storefront/pkg/errors"
	"github.com/utafrali/storefront/pkg/slug"
)

// ProductEventPublisher publishes product lifecycle events.
type ProductEventPublisher interface {
	PublishProductCreated(ctx context.Context, product *domain.Product) error
	PublishProductUpdated(ctx context.Context, product *domain.Product) error
	PublishProductDeleted(ctx context.Context, id string) error
}

// ProductInput holds the client-settable product fields. The rating aggregate
// is deliberately absent; it is derived from reviews only.
type ProductInput struct {
	Name            string
	Description     string
	BrandID         *string
	CategoryID      *string
	BasePrice       int64
	DiscountedPrice int64
	Currency        string
	StockQuantity   int
	ImageURL        string
}

// ProductListResult is one page of products with pagination totals.
type ProductListResult struct {
	Products   []domain.Product `json:"products"`
	TotalCount int              `json:"total_count"`
	Page       int              `json:"page"`
	Limit      int              `json:"limit"`
	TotalPages int              `json:"total_pages"`
}

// ProductService implements catalog operations for products and brands.
type ProductService struct {
	products   repository.ProductRepository
	brands     repository.BrandRepository
	categories repository.CategoryRepository
	events     ProductEventPublisher
	logger     *slog.Logger
}

// NewProductService creates a new product service. events may be nil when
// event publishing is disabled.
func NewProductService(
	products repository.ProductRepository,
	brands repository.BrandRepository,
	categories repository.CategoryRepository,
	events ProductEventPublisher,
	logger *slog.Logger,
) *ProductService {
	return &ProductService{
		products:   products,
		brands:     brands,
		categories: categories,
		events:     events,
		logger:     logger,
	}
}

func (s *ProductService) validateInput(ctx context.Context, input *ProductInput) error {
	if input.Name == "" {
		return apperrors.InvalidInput("name is required")
	}

	if err := domain.ValidateProductPricing(input.BasePrice, input.DiscountedPrice, input.StockQuantity); err != nil {
		return apperrors.InvalidInput(err.Error())
	}

	if input.BrandID != nil {
		if _, err := s.brands.GetByID(ctx, *input.BrandID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return apperrors.InvalidInput("brand does not exist: " + *input.BrandID)
			}
			return fmt.Errorf("load brand: %w", err)
		}
	}

	if input.CategoryID != nil {
		if _, err := s.categories.GetByID(ctx, *input.CategoryID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return apperrors.InvalidInput("category does not exist: " + *input.CategoryID)
			}
			return fmt.Errorf("load category: %w", err)
		}
	}

	return nil
}

// CreateProduct creates a new product with a zero rating aggregate.
func (s *ProductService) CreateProduct(ctx context.Context, input *ProductInput) (*domain.Product, error) {
	if err := s.validateInput(ctx, input); err != nil {
		return nil, err
	}

	currency := input.Currency
	if currency == "" {
		currency = "USD"
	}

	now := time.Now().UTC()
	product := &domain.Product{
		ID:              uuid.New().String(),
		Name:            input.Name,
		Slug:            slug.Generate(input.Name),
		Description:     input.Description,
		BrandID:         input.BrandID,
		CategoryID:      input.CategoryID,
		BasePrice:       input.BasePrice,
		DiscountedPrice: input.DiscountedPrice,
		Currency:        currency,
		StockQuantity:   input.StockQuantity,
		ImageURL:        input.ImageURL,
		AvgRating:       0,
		ReviewCount:     0,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.products.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}

	s.logger.InfoContext(ctx, "product created",
		slog.String("product_id", product.ID),
		slog.String("slug", product.Slug),
	)

	s.publish(ctx, func() error { return s.events.PublishProductCreated(ctx, product) }, product.ID, "product.created")

	return product, nil
}

// GetProduct returns a product by ID.
func (s *ProductService) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NotFound("product", id)
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return product, nil
}

// GetProductBySlug returns a product by its URL-friendly slug.
func (s *ProductService) GetProductBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	product, err := s.products.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NotFound("product", slug)
		}
		return nil, fmt.Errorf("get product by slug: %w", err)
	}
	return product, nil
}

// ListProducts returns products matching the filter with pagination totals.
func (s *ProductService) ListProducts(ctx context.Context, filter repository.ProductFilter) (*ProductListResult, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Limit > 100 {
		filter.Limit = 100
	}

	products, total, err := s.products.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	totalPages := total / filter.Limit
	if total%filter.Limit > 0 {
		totalPages++
	}

	return &ProductListResult{
		Products:   products,
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
	}, nil
}

// UpdateProduct applies client-settable fields to an existing product. The
// rating aggregate carries over untouched.
func (s *ProductService) UpdateProduct(ctx context.Context, id string, input *ProductInput) (*domain.Product, error) {
	if err := s.validateInput(ctx, input); err != nil {
		return nil, err
	}

	product, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	product.Name = input.Name
	product.Slug = slug.Generate(input.Name)
	product.Description = input.Description
	product.BrandID = input.BrandID
	product.CategoryID = input.CategoryID
	product.BasePrice = input.BasePrice
	product.DiscountedPrice = input.DiscountedPrice
	if input.Currency != "" {
		product.Currency = input.Currency
	}
	product.StockQuantity = input.StockQuantity
	product.ImageURL = input.ImageURL
	product.UpdatedAt = time.Now().UTC()

	if err := s.products.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}

	s.publish(ctx, func() error { return s.events.PublishProductUpdated(ctx, product) }, product.ID, "product.updated")

	return product, nil
}

// DeleteProduct removes a product. Its reviews cascade at the schema level.
func (s *ProductService) DeleteProduct(ctx context.Context, id string) error {
	if err := s.products.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}

	s.logger.InfoContext(ctx, "product deleted", slog.String("product_id", id))

	s.publish(ctx, func() error { return s.events.PublishProductDeleted(ctx, id) }, id, "product.deleted")

	return nil
}

// ListBrands returns all brands.
func (s *ProductService) ListBrands(ctx context.Context) ([]domain.Brand, error) {
	brands, err := s.brands.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list brands: %w", err)
	}
	return brands, nil
}

// CreateBrand creates a new brand.
func (s *ProductService) CreateBrand(ctx context.Context, name string) (*domain.Brand, error) {
	if name == "" {
		return nil, apperrors.InvalidInput("name is required")
	}

	brand := &domain.Brand{
		ID:        uuid.New().String(),
		Name:      name,
		Slug:      slug.Generate(name),
		CreatedAt: time.Now().UTC(),
	}

	if err := s.brands.Create(ctx, brand); err != nil {
		return nil, fmt.Errorf("create brand: %w", err)
	}

	return brand, nil
}

// publish runs a publisher call and logs failures; the catalog write stands
// regardless of event delivery.
func (s *ProductService) publish(ctx context.Context, fn func() error, id, eventType string) {
	if s.events == nil {
		return
	}
	if err := fn(); err != nil {
		s.logger.WarnContext(ctx, "failed to publish event",
			slog.String("event_type", eventType),
			slog.String("product_id", id),
			slog.String("error", err.Error()),
		)
	}
}
