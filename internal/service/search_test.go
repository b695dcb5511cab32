package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/utafrali/storefront/internal/domain"
	apperrors "github.com/utafrali/storefront/pkg/errors"
)

func newTestSearchService(search *mockSearchRepository, history *mockSearchHistoryRepository) *SearchService {
	return NewSearchService(search, history, nil, newTestLogger())
}

func TestSearch_BlankTermRejected(t *testing.T) {
	search := new(mockSearchRepository)
	history := new(mockSearchHistoryRepository)
	svc := newTestSearchService(search, history)
	ctx := context.Background()

	for _, term := range []string{"", "   ", "\t"} {
		result, err := svc.Search(ctx, domain.SearchQuery{Term: term})
		assert.Nil(t, result)
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	}

	search.AssertNotCalled(t, "Search", mock.Anything, mock.Anything)
}

func TestSearch_InvalidSortRejected(t *testing.T) {
	search := new(mockSearchRepository)
	history := new(mockSearchHistoryRepository)
	svc := newTestSearchService(search, history)
	ctx := context.Background()

	result, err := svc.Search(ctx, domain.SearchQuery{Term: "laptop", Sort: "price; DROP TABLE"})

	assert.Nil(t, result)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestSearch_Success(t *testing.T) {
	search := new(mockSearchRepository)
	history := new(mockSearchHistoryRepository)
	svc := newTestSearchService(search, history)
	ctx := context.Background()

	search.On("Search", ctx, mock.MatchedBy(func(q domain.SearchQuery) bool {
		return q.Term == "laptop" && q.Page == 2 && q.Limit == 10
	})).Return([]domain.Product{{ID: "prod-11"}}, 25, nil)
	history.On("Append", ctx, mock.AnythingOfType("*domain.SearchHistoryEntry")).Return(nil)

	result, err := svc.Search(ctx, domain.SearchQuery{Term: "  laptop  ", Page: 2, Limit: 10})

	require.NoError(t, err)
	assert.Equal(t, 25, result.TotalCount)
	assert.Equal(t, 3, result.TotalPages)
	assert.Len(t, result.Products, 1)

	search.AssertExpectations(t)
	history.AssertExpectations(t)
}

func TestSearch_PageBeyondRangeReturnsEmpty(t *testing.T) {
	search := new(mockSearchRepository)
	history := new(mockSearchHistoryRepository)
	svc := newTestSearchService(search, history)
	ctx := context.Background()

	search.On("Search", ctx, mock.MatchedBy(func(q domain.SearchQuery) bool {
		return q.Page == 99
	})).Return([]domain.Product{}, 25, nil)
	history.On("Append", ctx, mock.AnythingOfType("*domain.SearchHistoryEntry")).Return(nil)

	result, err := svc.Search(ctx, domain.SearchQuery{Term: "laptop", Page: 99, Limit: 10})

	require.NoError(t, err)
	assert.Empty(t, result.Products)
	assert.Equal(t, 25, result.TotalCount)
}

// History failures never surface; the search result stands.
func TestSearch_HistoryFailureSwallowed(t *testing.T) {
	search := new(mockSearchRepository)
	history := new(mockSearchHistoryRepository)
	svc := newTestSearchService(search, history)
	ctx := context.Background()

	search.On("Search", ctx, mock.AnythingOfType("domain.SearchQuery")).
		Return([]domain.Product{{ID: "prod-1"}}, 1, nil)
	history.On("Append", ctx, mock.AnythingOfType("*domain.SearchHistoryEntry")).
		Return(errors.New("history table locked"))

	result, err := svc.Search(ctx, domain.SearchQuery{Term: "laptop"})

	require.NoError(t, err)
	assert.Len(t, result.Products, 1)
}

func TestSearch_HistoryRecordsResultCount(t *testing.T) {
	search := new(mockSearchRepository)
	history := new(mockSearchHistoryRepository)
	svc := newTestSearchService(search, history)
	ctx := context.Background()

	search.On("Search", ctx, mock.AnythingOfType("domain.SearchQuery")).
		Return([]domain.Product{}, 7, nil)
	history.On("Append", ctx, mock.MatchedBy(func(e *domain.SearchHistoryEntry) bool {
		return e.Query == "laptop" && e.ResultCount == 7 && e.UserID != nil && *e.UserID == "user-1"
	})).Return(nil)

	_, err := svc.Search(ctx, domain.SearchQuery{Term: "laptop", UserID: "user-1"})

	require.NoError(t, err)
	history.AssertExpectations(t)
}

func TestSuggest_BlankTermRejected(t *testing.T) {
	search := new(mockSearchRepository)
	history := new(mockSearchHistoryRepository)
	svc := newTestSearchService(search, history)
	ctx := context.Background()

	suggestions, err := svc.Suggest(ctx, "   ")

	assert.Nil(t, suggestions)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

// A nil cache client means every lookup goes to the database.
func TestSuggest_NoCache(t *testing.T) {
	search := new(mockSearchRepository)
	history := new(mockSearchHistoryRepository)
	svc := newTestSearchService(search, history)
	ctx := context.Background()

	expected := []domain.Suggestion{{Name: "Laptop Pro", Brand: "Acme"}}
	search.On("Suggest", ctx, "lap", 10).Return(expected, nil)

	suggestions, err := svc.Suggest(ctx, "lap")

	require.NoError(t, err)
	assert.Equal(t, expected, suggestions)
	search.AssertExpectations(t)
}
