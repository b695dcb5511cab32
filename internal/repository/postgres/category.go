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

// CategoryRepository implements repository.CategoryRepository using PostgreSQL.
type CategoryRepository struct {
	db database.DBTX
}

// NewCategoryRepository creates a new PostgreSQL-backed category repository.
func NewCategoryRepository(db database.DBTX) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// Create inserts a new category.
func (r *CategoryRepository) Create(ctx context.Context, c *domain.Category) error {
	query := `
		INSERT INTO categories (id, name, slug, parent_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.Exec(ctx, query, c.ID, c.Name, c.Slug, c.ParentID, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.AlreadyExists("category", "name", c.Name)
		}
		return fmt.Errorf("insert category: %w", err)
	}

	return nil
}

// GetByID retrieves a category by its ID.
func (r *CategoryRepository) GetByID(ctx context.Context, id string) (*domain.Category, error) {
	query := `SELECT id, name, slug, parent_id, created_at, updated_at FROM categories WHERE id = $1`

	var c domain.Category
	err := r.db.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.Name, &c.Slug, &c.ParentID, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("scan category: %w", err)
	}

	return &c, nil
}

// List returns all categories ordered by name.
func (r *CategoryRepository) List(ctx context.Context) ([]domain.Category, error) {
	query := `SELECT id, name, slug, parent_id, created_at, updated_at FROM categories ORDER BY name ASC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var categories []domain.Category
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.ParentID, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan category row: %w", err)
		}
		categories = append(categories, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate category rows: %w", err)
	}

	if categories == nil {
		categories = []domain.Category{}
	}

	return categories, nil
}

// Update modifies an existing category.
func (r *CategoryRepository) Update(ctx context.Context, c *domain.Category) error {
	query := `
		UPDATE categories
		SET name = $1, slug = $2, parent_id = $3, updated_at = $4
		WHERE id = $5`

	ct, err := r.db.Exec(ctx, query, c.Name, c.Slug, c.ParentID, c.UpdatedAt, c.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.AlreadyExists("category", "name", c.Name)
		}
		return fmt.Errorf("update category: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("category", c.ID)
	}

	return nil
}
