package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/utafrali/storefront/internal/domain"
	"github.com/utafrali/storefront/internal/repository"
	apperrors "github.com/utafrali/storefront/pkg/errors"
	"github.com/utafrali/storefront/pkg/pagination"
)

const (
	suggestLimit    = 10
	suggestCacheTTL = 60 * time.Second
)

// SearchResult is one page of search hits with pagination totals.
type SearchResult struct {
	Products   []domain.Product `json:"products"`
	TotalCount int              `json:"total_count"`
	Page       int              `json:"page"`
	Limit      int              `json:"limit"`
	TotalPages int              `json:"total_pages"`
}

// SearchService runs product searches, records search history, and serves
// autosuggest with an optional Redis cache.
type SearchService struct {
	search  repository.SearchRepository
	history repository.SearchHistoryRepository
	cache   *redis.Client
	logger  *slog.Logger
}

// NewSearchService creates a new search service. cache may be nil; autosuggest
// then always hits the database.
func NewSearchService(
	search repository.SearchRepository,
	history repository.SearchHistoryRepository,
	cache *redis.Client,
	logger *slog.Logger,
) *SearchService {
	return &SearchService{
		search:  search,
		history: history,
		cache:   cache,
		logger:  logger,
	}
}

// Search validates the query, runs it, and appends a search history entry.
// History failures are logged, never surfaced: the search result stands.
func (s *SearchService) Search(ctx context.Context, q domain.SearchQuery) (*SearchResult, error) {
	q.Term = strings.TrimSpace(q.Term)
	if q.Term == "" {
		return nil, apperrors.InvalidInput("query parameter q is required")
	}

	if q.Sort != "" && !domain.IsValidSort(q.Sort) {
		return nil, apperrors.InvalidInput("unsupported sort: " + q.Sort)
	}

	if q.Page <= 0 {
		q.Page = 1
	}
	if q.Limit <= 0 {
		q.Limit = pagination.DefaultLimit
	}
	if q.Limit > pagination.MaxLimit {
		q.Limit = pagination.MaxLimit
	}

	products, total, err := s.search.Search(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("search products: %w", err)
	}

	s.appendHistory(ctx, q, total)

	totalPages := total / q.Limit
	if total%q.Limit > 0 {
		totalPages++
	}

	return &SearchResult{
		Products:   products,
		TotalCount: total,
		Page:       q.Page,
		Limit:      q.Limit,
		TotalPages: totalPages,
	}, nil
}

// Suggest returns up to 10 product name suggestions for the term, served from
// the Redis cache when possible.
func (s *SearchService) Suggest(ctx context.Context, term string) ([]domain.Suggestion, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, apperrors.InvalidInput("query parameter q is required")
	}

	cacheKey := "suggest:" + strings.ToLower(term)

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cacheKey).Bytes(); err == nil {
			var suggestions []domain.Suggestion
			if json.Unmarshal(cached, &suggestions) == nil {
				return suggestions, nil
			}
		}
	}

	suggestions, err := s.search.Suggest(ctx, term, suggestLimit)
	if err != nil {
		return nil, fmt.Errorf("suggest: %w", err)
	}

	if s.cache != nil {
		if data, err := json.Marshal(suggestions); err == nil {
			if err := s.cache.Set(ctx, cacheKey, data, suggestCacheTTL).Err(); err != nil {
				s.logger.WarnContext(ctx, "failed to cache suggestions",
					slog.String("key", cacheKey),
					slog.String("error", err.Error()),
				)
			}
		}
	}

	return suggestions, nil
}

func (s *SearchService) appendHistory(ctx context.Context, q domain.SearchQuery, resultCount int) {
	entry := &domain.SearchHistoryEntry{
		ID:          uuid.New().String(),
		Query:       q.Term,
		ResultCount: resultCount,
		CreatedAt:   time.Now().UTC(),
	}
	if q.UserID != "" {
		entry.UserID = &q.UserID
	}
	if q.SessionID != "" {
		entry.SessionID = &q.SessionID
	}

	if err := s.history.Append(ctx, entry); err != nil {
		s.logger.WarnContext(ctx, "failed to record search history",
			slog.String("query", q.Term),
			slog.String("error", err.Error()),
		)
	}
}
