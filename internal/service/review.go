package service

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/utafrali/storefront/internal/domain"
	"github.com/utafrali/storefront/internal/repository"
	apperrors "github.com/utafrali/storefront/pkg/errors"
)

// ReviewEventPublisher publishes review domain events.
type ReviewEventPublisher interface {
	PublishReviewCreated(ctx context.Context, review *domain.Review) error
}

// CreateReviewInput holds the parameters for creating a review.
type CreateReviewInput struct {
	ProductID string
	UserID    string
	Rating    int
	Comment   string
}

// UpdateReviewInput holds the parameters for updating a review.
type UpdateReviewInput struct {
	ReviewID string
	UserID   string
	Rating   int
	Comment  string
}

// ReviewListResult contains one page of reviews with pagination totals.
type ReviewListResult struct {
	Reviews    []domain.Review `json:"reviews"`
	TotalCount int             `json:"total_count"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	TotalPages int             `json:"total_pages"`
}

// ReviewService implements review operations and keeps the product rating
// aggregate in sync.
type ReviewService struct {
	reviews  repository.ReviewRepository
	products repository.ProductRepository
	events   ReviewEventPublisher
	logger   *slog.Logger
}

// NewReviewService creates a new review service. events may be nil when event
// publishing is disabled.
func NewReviewService(
	reviews repository.ReviewRepository,
	products repository.ProductRepository,
	events ReviewEventPublisher,
	logger *slog.Logger,
) *ReviewService {
	return &ReviewService{
		reviews:  reviews,
		products: products,
		events:   events,
		logger:   logger,
	}
}

// roundRating rounds to one decimal, half away from zero.
func roundRating(x float64) float64 {
	return math.Round(x*10) / 10
}

// CreateReview creates a review for an existing product and recomputes the
// product's rating aggregate.
func (s *ReviewService) CreateReview(ctx context.Context, input *CreateReviewInput) (*domain.Review, error) {
	if input.ProductID == "" {
		return nil, apperrors.InvalidInput("product_id is required")
	}
	if input.UserID == "" {
		return nil, apperrors.InvalidInput("user_id is required")
	}
	if input.Rating < 1 || input.Rating > 5 {
		return nil, apperrors.InvalidInput("rating must be between 1 and 5")
	}

	if _, err := s.products.GetByID(ctx, input.ProductID); err != nil {
		return nil, fmt.Errorf("load product: %w", err)
	}

	now := time.Now().UTC()
	review := &domain.Review{
		ID:        uuid.New().String(),
		ProductID: input.ProductID,
		UserID:    input.UserID,
		Rating:    input.Rating,
		Comment:   input.Comment,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.reviews.Create(ctx, review); err != nil {
		return nil, fmt.Errorf("create review: %w", err)
	}

	s.logger.InfoContext(ctx, "review created",
		slog.String("review_id", review.ID),
		slog.String("product_id", review.ProductID),
		slog.String("user_id", review.UserID),
		slog.Int("rating", review.Rating),
	)

	s.recomputeRating(ctx, review.ProductID)

	if s.events != nil {
		if err := s.events.PublishReviewCreated(ctx, review); err != nil {
			s.logger.WarnContext(ctx, "failed to publish review.created event",
				slog.String("review_id", review.ID),
				slog.String("error", err.Error()),
			)
		}
	}

	return review, nil
}

// UpdateReview updates the rating and comment of the caller's own review and
// recomputes the product's rating aggregate.
func (s *ReviewService) UpdateReview(ctx context.Context, input *UpdateReviewInput) (*domain.Review, error) {
	if input.Rating < 1 || input.Rating > 5 {
		return nil, apperrors.InvalidInput("rating must be between 1 and 5")
	}

	review, err := s.reviews.GetByID(ctx, input.ReviewID)
	if err != nil {
		return nil, fmt.Errorf("load review: %w", err)
	}

	if review.UserID != input.UserID {
		return nil, apperrors.Forbidden("review belongs to another user")
	}

	review.Rating = input.Rating
	review.Comment = input.Comment
	review.UpdatedAt = time.Now().UTC()

	if err := s.reviews.Update(ctx, review); err != nil {
		return nil, fmt.Errorf("update review: %w", err)
	}

	s.recomputeRating(ctx, review.ProductID)

	return review, nil
}

// DeleteReview removes the caller's own review and recomputes the product's
// rating aggregate.
func (s *ReviewService) DeleteReview(ctx context.Context, reviewID, userID string) error {
	review, err := s.reviews.GetByID(ctx, reviewID)
	if err != nil {
		return fmt.Errorf("load review: %w", err)
	}

	if review.UserID != userID {
		return apperrors.Forbidden("review belongs to another user")
	}

	if err := s.reviews.Delete(ctx, reviewID); err != nil {
		return fmt.Errorf("delete review: %w", err)
	}

	s.recomputeRating(ctx, review.ProductID)

	return nil
}

// ListReviews returns paginated reviews for a product, newest first.
func (s *ReviewService) ListReviews(ctx context.Context, productID string, page, limit int) (*ReviewListResult, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	reviews, total, err := s.reviews.ListByProductID(ctx, productID, page, limit)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}

	totalPages := total / limit
	if total%limit > 0 {
		totalPages++
	}

	return &ReviewListResult{
		Reviews:    reviews,
		TotalCount: total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}, nil
}

// recomputeRating re-reads the full rating set for the product and persists
// the mean (one decimal) and count. An empty set resets both to zero. Failure
// is logged and swallowed: the triggering review write stands, and the next
// successful write converges the aggregate (last writer wins).
func (s *ReviewService) recomputeRating(ctx context.Context, productID string) {
	avg, count, err := s.computeRating(ctx, productID)
	if err == nil {
		err = s.products.UpdateRating(ctx, productID, avg, count)
	}
	if err != nil {
		s.logger.WarnContext(ctx, "rating aggregation failed",
			slog.String("product_id", productID),
			slog.String("error", err.Error()),
		)
	}
}

func (s *ReviewService) computeRating(ctx context.Context, productID string) (float64, int, error) {
	ratings, err := s.reviews.ListRatings(ctx, productID)
	if err != nil {
		return 0, 0, fmt.Errorf("list ratings: %w", err)
	}

	if len(ratings) == 0 {
		return 0, 0, nil
	}

	var sum int
	for _, r := range ratings {
		sum += r
	}

	avg := roundRating(float64(sum) / float64(len(ratings)))
	return avg, len(ratings), nil
}
