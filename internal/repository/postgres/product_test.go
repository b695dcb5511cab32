package postgres

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utafrali/storefront/internal/domain"
	"github.com/utafrali/storefront/internal/repository"
	"github.com/utafrali/storefront/pkg/database"
	apperrors "github.com/utafrali/storefront/pkg/errors"
)

func newProductTestFixture(t *testing.T) (*ProductRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := database.NewMockPool()
	require.NoError(t, err)
	repo := NewProductRepository(mock)
	return repo, mock
}

func sampleProduct() *domain.Product {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return &domain.Product{
		ID:              "prod-1",
		Name:            "Laptop Pro",
		Slug:            "laptop-pro",
		Description:     "fast",
		BasePrice:       99900,
		DiscountedPrice: 89900,
		Currency:        "USD",
		StockQuantity:   5,
		AvgRating:       4.5,
		ReviewCount:     12,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

func productRow(p *domain.Product) *pgxmock.Rows {
	cols := []string{
		"id", "name", "slug", "description", "brand_id", "brand_name",
		"category_id", "category_name", "base_price", "discounted_price", "currency",
		"stock_quantity", "image_url", "avg_rating", "review_count",
		"created_at", "updated_at",
	}
	return pgxmock.NewRows(cols).AddRow(
		p.ID, p.Name, p.Slug, p.Description, p.BrandID, p.BrandName,
		p.CategoryID, p.CategoryName, p.BasePrice, p.DiscountedPrice, p.Currency,
		p.StockQuantity, p.ImageURL, p.AvgRating, p.ReviewCount,
		p.CreatedAt, p.UpdatedAt,
	)
}

func TestProductRepository_Create_DuplicateSlug(t *testing.T) {
	repo, mock := newProductTestFixture(t)
	defer mock.Close()

	p := sampleProduct()

	mock.ExpectExec("INSERT INTO products").
		WithArgs(
			p.ID, p.Name, p.Slug, p.Description, p.BrandID, p.CategoryID, p.BasePrice,
			p.DiscountedPrice, p.Currency, p.StockQuantity, p.ImageURL, p.AvgRating,
			p.ReviewCount, p.CreatedAt, p.UpdatedAt,
		).
		WillReturnError(fmt.Errorf("ERROR: duplicate key value violates unique constraint (SQLSTATE 23505)"))

	err := repo.Create(context.Background(), p)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrAlreadyExists), "expected ErrAlreadyExists, got: %v", err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_GetByID_Success(t *testing.T) {
	repo, mock := newProductTestFixture(t)
	defer mock.Close()

	p := sampleProduct()

	mock.ExpectQuery("SELECT (.+) FROM products").
		WithArgs(p.ID).
		WillReturnRows(productRow(p))

	got, err := repo.GetByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.Name, got.Name)
	assert.Equal(t, p.AvgRating, got.AvgRating)
}

func TestProductRepository_GetByID_NotFound(t *testing.T) {
	repo, mock := newProductTestFixture(t)
	defer mock.Close()

	mock.ExpectQuery("SELECT (.+) FROM products").
		WithArgs("ghost").
		WillReturnError(pgx.ErrNoRows)

	got, err := repo.GetByID(context.Background(), "ghost")
	assert.Nil(t, got)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestProductRepository_List_FilterArgs(t *testing.T) {
	repo, mock := newProductTestFixture(t)
	defer mock.Close()

	categoryID := "cat-1"
	minPrice := int64(1000)
	inStock := true

	mock.ExpectQuery("p.category_id =").
		WithArgs(categoryID, minPrice, 20, 0).
		WillReturnRows(pgxmock.NewRows(searchColumns()))

	products, total, err := repo.List(context.Background(), repository.ProductFilter{
		CategoryID: &categoryID,
		MinPrice:   &minPrice,
		InStock:    &inStock,
		Page:       1,
		Limit:      20,
	})
	require.NoError(t, err)
	assert.NotNil(t, products)
	assert.Empty(t, products)
	assert.Zero(t, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_UpdateRating(t *testing.T) {
	repo, mock := newProductTestFixture(t)
	defer mock.Close()

	mock.ExpectExec("UPDATE products").
		WithArgs(4.0, 3, pgxmock.AnyArg(), "prod-1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := repo.UpdateRating(context.Background(), "prod-1", 4.0, 3)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_UpdateRating_MissingProduct(t *testing.T) {
	repo, mock := newProductTestFixture(t)
	defer mock.Close()

	mock.ExpectExec("UPDATE products").
		WithArgs(4.0, 3, pgxmock.AnyArg(), "ghost").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := repo.UpdateRating(context.Background(), "ghost", 4.0, 3)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestProductRepository_Delete_NotFound(t *testing.T) {
	repo, mock := newProductTestFixture(t)
	defer mock.Close()

	mock.ExpectExec("DELETE FROM products").
		WithArgs("ghost").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err := repo.Delete(context.Background(), "ghost")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
