package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/utafrali/storefront/internal/domain"
	"github.com/utafrali/storefront/internal/repository"
	"github.com/utafrali/storefront/pkg/database"
	apperrors "github.com/utafrali/storefront/pkg/errors"
)

const productColumns = `p.id, p.name, p.slug, p.description, p.brand_id, COALESCE(b.name, ''),
	p.category_id, COALESCE(c.name, ''), p.base_price, p.discounted_price, p.currency,
	p.stock_quantity, p.image_url, p.avg_rating, p.review_count, p.created_at, p.updated_at`

const productJoins = `FROM products p
	LEFT JOIN brands b ON b.id = p.brand_id
	LEFT JOIN categories c ON c.id = p.category_id`

// ProductRepository implements repository.ProductRepository using PostgreSQL.
type ProductRepository struct {
	db database.DBTX
}

// NewProductRepository creates a new PostgreSQL-backed product repository.
func NewProductRepository(db database.DBTX) *ProductRepository {
	return &ProductRepository{db: db}
}

// Create inserts a new product.
func (r *ProductRepository) Create(ctx context.Context, p *domain.Product) error {
	query := `
		INSERT INTO products (id, name, slug, description, brand_id, category_id, base_price,
			discounted_price, currency, stock_quantity, image_url, avg_rating, review_count,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`

	_, err := r.db.Exec(ctx, query,
		p.ID,
		p.Name,
		p.Slug,
		p.Description,
		p.BrandID,
		p.CategoryID,
		p.BasePrice,
		p.DiscountedPrice,
		p.Currency,
		p.StockQuantity,
		p.ImageURL,
		p.AvgRating,
		p.ReviewCount,
		p.CreatedAt,
		p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.AlreadyExists("product", "slug", p.Slug)
		}
		return fmt.Errorf("insert product: %w", err)
	}

	return nil
}

// GetByID retrieves a product by its ID.
func (r *ProductRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	query := fmt.Sprintf(`SELECT %s %s WHERE p.id = $1`, productColumns, productJoins)
	return r.scanProduct(ctx, query, id)
}

// GetBySlug retrieves a product by its URL-friendly slug.
func (r *ProductRepository) GetBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	query := fmt.Sprintf(`SELECT %s %s WHERE p.slug = $1`, productColumns, productJoins)
	return r.scanProduct(ctx, query, slug)
}

// List returns products matching the given filter with the total count.
func (r *ProductRepository) List(ctx context.Context, filter repository.ProductFilter) ([]domain.Product, int, error) {
	var (
		conditions []string
		args       []any
		argIndex   = 1
	)

	if filter.CategoryID != nil {
		conditions = append(conditions, fmt.Sprintf("p.category_id = $%d", argIndex))
		args = append(args, *filter.CategoryID)
		argIndex++
	}

	if filter.BrandID != nil {
		conditions = append(conditions, fmt.Sprintf("p.brand_id = $%d", argIndex))
		args = append(args, *filter.BrandID)
		argIndex++
	}

	if filter.MinPrice != nil {
		conditions = append(conditions, fmt.Sprintf("p.discounted_price >= $%d", argIndex))
		args = append(args, *filter.MinPrice)
		argIndex++
	}

	if filter.MaxPrice != nil {
		conditions = append(conditions, fmt.Sprintf("p.discounted_price <= $%d", argIndex))
		args = append(args, *filter.MaxPrice)
		argIndex++
	}

	if filter.InStock != nil && *filter.InStock {
		conditions = append(conditions, "p.stock_quantity > 0")
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := 0
	if filter.Page > 1 {
		offset = (filter.Page - 1) * limit
	}

	// count(*) OVER() returns the total count alongside each row.
	query := fmt.Sprintf(`
		SELECT %s, count(*) OVER() AS total_count
		%s
		%s
		ORDER BY p.created_at DESC, p.id ASC
		LIMIT $%d OFFSET $%d`,
		productColumns, productJoins, whereClause, argIndex, argIndex+1,
	)

	args = append(args, limit, offset)

	return r.queryProducts(ctx, query, args...)
}

// Update modifies an existing product.
func (r *ProductRepository) Update(ctx context.Context, p *domain.Product) error {
	p.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE products
		SET name = $1, slug = $2, description = $3, brand_id = $4, category_id = $5,
		    base_price = $6, discounted_price = $7, currency = $8, stock_quantity = $9,
		    image_url = $10, updated_at = $11
		WHERE id = $12`

	ct, err := r.db.Exec(ctx, query,
		p.Name,
		p.Slug,
		p.Description,
		p.BrandID,
		p.CategoryID,
		p.BasePrice,
		p.DiscountedPrice,
		p.Currency,
		p.StockQuantity,
		p.ImageURL,
		p.UpdatedAt,
		p.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.AlreadyExists("product", "slug", p.Slug)
		}
		return fmt.Errorf("update product: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("product", p.ID)
	}

	return nil
}

// Delete removes a product. Reviews cascade at the schema level.
func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	ct, err := r.db.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("product", id)
	}

	return nil
}

// UpdateRating persists the derived rating aggregate onto the product row.
func (r *ProductRepository) UpdateRating(ctx context.Context, productID string, avgRating float64, reviewCount int) error {
	query := `
		UPDATE products
		SET avg_rating = $1, review_count = $2, updated_at = $3
		WHERE id = $4`

	ct, err := r.db.Exec(ctx, query, avgRating, reviewCount, time.Now().UTC(), productID)
	if err != nil {
		return fmt.Errorf("update product rating: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("product", productID)
	}

	return nil
}

func (r *ProductRepository) scanProduct(ctx context.Context, query string, args ...any) (*domain.Product, error) {
	var p domain.Product

	err := r.db.QueryRow(ctx, query, args...).Scan(
		&p.ID,
		&p.Name,
		&p.Slug,
		&p.Description,
		&p.BrandID,
		&p.BrandName,
		&p.CategoryID,
		&p.CategoryName,
		&p.BasePrice,
		&p.DiscountedPrice,
		&p.Currency,
		&p.StockQuantity,
		&p.ImageURL,
		&p.AvgRating,
		&p.ReviewCount,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("scan product: %w", err)
	}

	return &p, nil
}

func (r *ProductRepository) queryProducts(ctx context.Context, query string, args ...any) ([]domain.Product, int, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	var (
		products   []domain.Product
		totalCount int
	)

	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(
			&p.ID,
			&p.Name,
			&p.Slug,
			&p.Description,
			&p.BrandID,
			&p.BrandName,
			&p.CategoryID,
			&p.CategoryName,
			&p.BasePrice,
			&p.DiscountedPrice,
			&p.Currency,
			&p.StockQuantity,
			&p.ImageURL,
			&p.AvgRating,
			&p.ReviewCount,
			&p.CreatedAt,
			&p.UpdatedAt,
			&totalCount,
		); err != nil {
			return nil, 0, fmt.Errorf("scan product row: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate product rows: %w", err)
	}

	if products == nil {
		products = []domain.Product{}
	}

	return products, totalCount, nil
}

// isUniqueViolation checks if the error is a PostgreSQL unique constraint
// violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "23505")
}
