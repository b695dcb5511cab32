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

// BrandRepository implements repository.BrandRepository using PostgreSQL.
type BrandRepository struct {
	db database.DBTX
}

// NewBrandRepository creates a new PostgreSQL-backed brand repository.
func NewBrandRepository(db database.DBTX) *BrandRepository {
	return &BrandRepository{db: db}
}

// Create inserts a new brand.
func (r *BrandRepository) Create(ctx context.Context, brand *domain.Brand) error {
	query := `INSERT INTO brands (id, name, slug, created_at) VALUES ($1, $2, $3, $4)`

	_, err := r.db.Exec(ctx, query, brand.ID, brand.Name, brand.Slug, brand.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.AlreadyExists("brand", "name", brand.Name)
		}
		return fmt.Errorf("insert brand: %w", err)
	}

	return nil
}

// GetByID retrieves a brand by its ID.
func (r *BrandRepository) GetByID(ctx context.Context, id string) (*domain.Brand, error) {
	query := `SELECT id, name, slug, created_at FROM brands WHERE id = $1`

	var b domain.Brand
	err := r.db.QueryRow(ctx, query, id).Scan(&b.ID, &b.Name, &b.Slug, &b.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("scan brand: %w", err)
	}

	return &b, nil
}

// List returns all brands ordered by name.
func (r *BrandRepository) List(ctx context.Context) ([]domain.Brand, error) {
	query := `SELECT id, name, slug, created_at FROM brands ORDER BY name ASC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list brands: %w", err)
	}
	defer rows.Close()

	var brands []domain.Brand
	for rows.Next() {
		var b domain.Brand
		if err := rows.Scan(&b.ID, &b.Name, &b.Slug, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan brand row: %w", err)
		}
		brands = append(brands, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate brand rows: %w", err)
	}

	if brands == nil {
		brands = []domain.Brand{}
	}

	return brands, nil
}
