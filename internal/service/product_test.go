package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/utafrali/storefront/internal/domain"
	"github.com/utafrali/storefront/internal/repository"
	apperrors "github.com/utafrali/storefront/pkg/errors"
)

func newTestProductService(
	products *mockProductRepository,
	brands *mockBrandRepository,
	categories *mockCategoryRepository,
) *ProductService {
	return NewProductService(products, brands, categories, nil, newTestLogger())
}

func TestCreateProduct_Success(t *testing.T) {
	products := new(mockProductRepository)
	brands := new(mockBrandRepository)
	categories := new(mockCategoryRepository)
	svc := newTestProductService(products, brands, categories)
	ctx := context.Background()

	products.On("Create", ctx, mock.AnythingOfType("*domain.Product")).Return(nil)

	product, err := svc.CreateProduct(ctx, &ProductInput{
		Name:            "Wireless Headphones",
		BasePrice:       19900,
		DiscountedPrice: 14900,
		StockQuantity:   30,
	})

	require.NoError(t, err)
	assert.NotEmpty(t, product.ID)
	assert.Equal(t, "wireless-headphones", product.Slug)
	assert.Equal(t, "USD", product.Currency)
	assert.Equal(t, 0.0, product.AvgRating)
	assert.Equal(t, 0, product.ReviewCount)

	products.AssertExpectations(t)
}

func TestCreateProduct_DiscountExceedsBase(t *testing.T) {
	products := new(mockProductRepository)
	brands := new(mockBrandRepository)
	categories := new(mockCategoryRepository)
	svc := newTestProductService(products, brands, categories)
	ctx := context.Background()

	product, err := svc.CreateProduct(ctx, &ProductInput{
		Name:            "Overdiscounted",
		BasePrice:       1000,
		DiscountedPrice: 1500,
	})

	assert.Nil(t, product)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	products.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateProduct_NegativePrice(t *testing.T) {
	products := new(mockProductRepository)
	brands := new(mockBrandRepository)
	categories := new(mockCategoryRepository)
	svc := newTestProductService(products, brands, categories)
	ctx := context.Background()

	product, err := svc.CreateProduct(ctx, &ProductInput{
		Name:      "Negative",
		BasePrice: -1,
	})

	assert.Nil(t, product)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestCreateProduct_UnknownBrand(t *testing.T) {
	products := new(mockProductRepository)
	brands := new(mockBrandRepository)
	categories := new(mockCategoryRepository)
	svc := newTestProductService(products, brands, categories)
	ctx := context.Background()

	brands.On("GetByID", ctx, "ghost-brand").Return(nil, apperrors.NotFound("brand", "ghost-brand"))

	product, err := svc.CreateProduct(ctx, &ProductInput{
		Name:    "Branded",
		BrandID: strPtr("ghost-brand"),
	})

	assert.Nil(t, product)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

// A client update cannot touch the derived rating aggregate.
func TestUpdateProduct_PreservesRatingAggregate(t *testing.T) {
	products := new(mockProductRepository)
	brands := new(mockBrandRepository)
	categories := new(mockCategoryRepository)
	svc := newTestProductService(products, brands, categories)
	ctx := context.Background()

	existing := &domain.Product{
		ID:          "prod-1",
		Name:        "Old Name",
		AvgRating:   4.5,
		ReviewCount: 12,
	}
	products.On("GetByID", ctx, "prod-1").Return(existing, nil)
	products.On("Update", ctx, mock.MatchedBy(func(p *domain.Product) bool {
		return p.AvgRating == 4.5 && p.ReviewCount == 12 && p.Name == "New Name"
	})).Return(nil)

	product, err := svc.UpdateProduct(ctx, "prod-1", &ProductInput{
		Name:            "New Name",
		BasePrice:       1000,
		DiscountedPrice: 900,
	})

	require.NoError(t, err)
	assert.Equal(t, 4.5, product.AvgRating)
	assert.Equal(t, 12, product.ReviewCount)
	products.AssertExpectations(t)
}

func TestGetProduct_NotFound(t *testing.T) {
	products := new(mockProductRepository)
	brands := new(mockBrandRepository)
	categories := new(mockCategoryRepository)
	svc := newTestProductService(products, brands, categories)
	ctx := context.Background()

	products.On("GetByID", ctx, "ghost").Return(nil, apperrors.NotFound("product", "ghost"))

	product, err := svc.GetProduct(ctx, "ghost")

	assert.Nil(t, product)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestGetProductBySlug(t *testing.T) {
	products := new(mockProductRepository)
	brands := new(mockBrandRepository)
	categories := new(mockCategoryRepository)
	svc := newTestProductService(products, brands, categories)
	ctx := context.Background()

	products.On("GetBySlug", ctx, "laptop-pro").
		Return(&domain.Product{ID: "prod-1", Slug: "laptop-pro"}, nil)
	products.On("GetBySlug", ctx, "ghost-slug").
		Return(nil, apperrors.NotFound("product", "ghost-slug"))

	product, err := svc.GetProductBySlug(ctx, "laptop-pro")
	require.NoError(t, err)
	assert.Equal(t, "prod-1", product.ID)

	_, err = svc.GetProductBySlug(ctx, "ghost-slug")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestListProducts_ClampsPagination(t *testing.T) {
	products := new(mockProductRepository)
	brands := new(mockBrandRepository)
	categories := new(mockCategoryRepository)
	svc := newTestProductService(products, brands, categories)
	ctx := context.Background()

	products.On("List", ctx, mock.MatchedBy(func(f repository.ProductFilter) bool {
		return f.Page == 1 && f.Limit == 100
	})).Return([]domain.Product{}, 0, nil)

	_, err := svc.ListProducts(ctx, repository.ProductFilter{Page: -3, Limit: 5000})

	require.NoError(t, err)
	products.AssertExpectations(t)
}

func TestCreateBrand_Success(t *testing.T) {
	products := new(mockProductRepository)
	brands := new(mockBrandRepository)
	categories := new(mockCategoryRepository)
	svc := newTestProductService(products, brands, categories)
	ctx := context.Background()

	brands.On("Create", ctx, mock.AnythingOfType("*domain.Brand")).Return(nil)

	brand, err := svc.CreateBrand(ctx, "Acme Audio")

	require.NoError(t, err)
	assert.Equal(t, "acme-audio", brand.Slug)
}
