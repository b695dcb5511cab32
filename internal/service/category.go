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

// maxCategoryDepth bounds the ancestor walk so a corrupted tree cannot hang
// the request.
const maxCategoryDepth = 32

// CategoryInput holds the client-settable category fields.
type CategoryInput struct {
	Name     string
	ParentID *string
}

// CategoryService implements category operations with an acyclic tree
// guarantee enforced at write time.
type CategoryService struct {
	categories repository.CategoryRepository
	logger     *slog.Logger
}

// NewCategoryService creates a new category service.
func NewCategoryService(categories repository.CategoryRepository, logger *slog.Logger) *CategoryService {
	return &CategoryService{
		categories: categories,
		logger:     logger,
	}
}

// CreateCategory creates a new category under an optional parent.
func (s *CategoryService) CreateCategory(ctx context.Context, input *CategoryInput) (*domain.Category, error) {
	if input.Name == "" {
		return nil, apperrors.InvalidInput("name is required")
	}

	if input.ParentID != nil {
		if _, err := s.categories.GetByID(ctx, *input.ParentID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, apperrors.InvalidInput("parent category does not exist: " + *input.ParentID)
			}
			return nil, fmt.Errorf("load parent category: %w", err)
		}
	}

	now := time.Now().UTC()
	category := &domain.Category{
		ID:        uuid.New().String(),
		Name:      input.Name,
		Slug:      slug.Generate(input.Name),
		ParentID:  input.ParentID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.categories.Create(ctx, category); err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}

	s.logger.InfoContext(ctx, "category created",
		slog.String("category_id", category.ID),
		slog.String("name", category.Name),
	)

	return category, nil
}

// UpdateCategory renames a category or moves it under a new parent. Moving is
// rejected if it would introduce a cycle.
func (s *CategoryService) UpdateCategory(ctx context.Context, id string, input *CategoryInput) (*domain.Category, error) {
	if input.Name == "" {
		return nil, apperrors.InvalidInput("name is required")
	}

	category, err := s.categories.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NotFound("category", id)
		}
		return nil, fmt.Errorf("load category: %w", err)
	}

	if input.ParentID != nil {
		if *input.ParentID == id {
			return nil, apperrors.InvalidInput("category cannot be its own parent")
		}
		if err := s.checkAncestors(ctx, id, *input.ParentID); err != nil {
			return nil, err
		}
	}

	category.Name = input.Name
	category.Slug = slug.Generate(input.Name)
	category.ParentID = input.ParentID
	category.UpdatedAt = time.Now().UTC()

	if err := s.categories.Update(ctx, category); err != nil {
		return nil, fmt.Errorf("update category: %w", err)
	}

	return category, nil
}

// ListCategories returns all categories as a flat list.
func (s *CategoryService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

// CategoryTree returns all categories assembled into a forest.
func (s *CategoryService) CategoryTree(ctx context.Context) ([]*domain.CategoryNode, error) {
	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return domain.BuildCategoryTree(categories), nil
}

// checkAncestors walks up from the proposed parent; finding the category
// among its ancestors means the move would create a cycle.
func (s *CategoryService) checkAncestors(ctx context.Context, categoryID, parentID string) error {
	current := parentID
	for depth := 0; depth < maxCategoryDepth; depth++ {
		parent, err := s.categories.GetByID(ctx, current)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return apperrors.InvalidInput("parent category does not exist: " + current)
			}
			return fmt.Errorf("walk category ancestors: %w", err)
		}

		if parent.ID == categoryID {
			return apperrors.InvalidInput("category move would create a cycle")
		}

		if parent.ParentID == nil {
			return nil
		}
		current = *parent.ParentID
	}

	return apperrors.InvalidInput("category tree too deep")
}
