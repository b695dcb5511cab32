package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/utafrali/storefront/internal/domain"
	"github.com/utafrali/storefront/pkg/database"
	apperrors "github.com/utafrali/storefront/pkg/errors"
)

// ReviewRepository implements repository.ReviewRepository using PostgreSQL.
type ReviewRepository struct {
	db database.DBTX
}

// NewReviewRepository creates a new PostgreSQL-backed review repository.
func NewReviewRepository(db database.DBTX) *ReviewRepository {
	return &ReviewRepository{db: db}
}

// Create inserts a new review. A foreign key violation on product_id surfaces
// as not-found so callers can 404.
func (r *ReviewRepository) Create(ctx context.Context, review *domain.Review) error {
	query := `
		INSERT INTO reviews (id, product_id, user_id, rating, comment, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.Exec(ctx, query,
		review.ID,
		review.ProductID,
		review.UserID,
		review.Rating,
		review.Comment,
		review.CreatedAt,
		review.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return apperrors.NotFound("product", review.ProductID)
		}
		return fmt.Errorf("insert review: %w", err)
	}

	return nil
}

// GetByID retrieves a review by its ID.
func (r *ReviewRepository) GetByID(ctx context.Context, id string) (*domain.Review, error) {
	query := `
		SELECT id, product_id, user_id, rating, comment, created_at, updated_at
		FROM reviews
		WHERE id = $1`

	var rev domain.Review
	err := r.db.QueryRow(ctx, query, id).Scan(
		&rev.ID,
		&rev.ProductID,
		&rev.UserID,
		&rev.Rating,
		&rev.Comment,
		&rev.CreatedAt,
		&rev.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("scan review: %w", err)
	}

	return &rev, nil
}

// ListByProductID returns paginated reviews for a product, newest first.
func (r *ReviewRepository) ListByProductID(ctx context.Context, productID string, page, limit int) ([]domain.Review, int, error) {
	if limit <= 0 {
		limit = 20
	}
	offset := 0
	if page > 1 {
		offset = (page - 1) * limit
	}

	query := `
		SELECT id, product_id, user_id, rating, comment, created_at, updated_at,
			   count(*) OVER() AS total_count
		FROM reviews
		WHERE product_id = $1
		ORDER BY created_at DESC, id ASC
		LIMIT $2 OFFSET $3`

	rows, err := r.db.Query(ctx, query, productID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list reviews: %w", err)
	}
	defer rows.Close()

	var (
		reviews    []domain.Review
		totalCount int
	)

	for rows.Next() {
		var rev domain.Review
		if err := rows.Scan(
			&rev.ID,
			&rev.ProductID,
			&rev.UserID,
			&rev.Rating,
			&rev.Comment,
			&rev.CreatedAt,
			&rev.UpdatedAt,
			&totalCount,
		); err != nil {
			return nil, 0, fmt.Errorf("scan review row: %w", err)
		}
		reviews = append(reviews, rev)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate review rows: %w", err)
	}

	if reviews == nil {
		reviews = []domain.Review{}
	}

	return reviews, totalCount, nil
}

// Update modifies the rating and comment of an existing review.
func (r *ReviewRepository) Update(ctx context.Context, review *domain.Review) error {
	query := `
		UPDATE reviews
		SET rating = $1, comment = $2, updated_at = $3
		WHERE id = $4`

	ct, err := r.db.Exec(ctx, query, review.Rating, review.Comment, review.UpdatedAt, review.ID)
	if err != nil {
		return fmt.Errorf("update review: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("review", review.ID)
	}

	return nil
}

// Delete removes a review.
func (r *ReviewRepository) Delete(ctx context.Context, id string) error {
	ct, err := r.db.Exec(ctx, `DELETE FROM reviews WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete review: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("review", id)
	}

	return nil
}

// ListRatings returns every rating for a product. The aggregation recompute
// reads the full set rather than maintaining incremental counters.
func (r *ReviewRepository) ListRatings(ctx context.Context, productID string) ([]int, error) {
	rows, err := r.db.Query(ctx, `SELECT rating FROM reviews WHERE product_id = $1`, productID)
	if err != nil {
		return nil, fmt.Errorf("list ratings: %w", err)
	}
	defer rows.Close()

	var ratings []int
	for rows.Next() {
		var rating int
		if err := rows.Scan(&rating); err != nil {
			return nil, fmt.Errorf("scan rating: %w", err)
		}
		ratings = append(ratings, rating)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ratings: %w", err)
	}

	return ratings, nil
}

// isForeignKeyViolation checks for a PostgreSQL foreign key constraint
// violation (SQLSTATE 23503).
func isForeignKeyViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "23503")
}
