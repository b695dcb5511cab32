package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/utafrali/storefront/internal/domain"
	"github.com/utafrali/storefront/internal/service"
)

func setupSearchRouter(search *mockSearchRepository, history *mockSearchHistoryRepository) *chi.Mux {
	svc := service.NewSearchService(search, history, nil, testLogger())
	handler := NewSearchHandler(svc, testLogger())

	r := chi.NewRouter()
	r.Get("/api/search", handler.Search)
	r.Get("/api/search/autosuggest", handler.Autosuggest)
	return r
}

func TestSearchHandler_MissingQuery(t *testing.T) {
	search := new(mockSearchRepository)
	history := new(mockSearchHistoryRepository)
	router := setupSearchRouter(search, history)

	for _, target := range []string{"/api/search", "/api/search?q=", "/api/search?q=%20%20"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))

		assert.Equal(t, http.StatusBadRequest, rec.Code, "target %s", target)
		resp := decodeResponse(t, rec)
		require.NotNil(t, resp.Error)
		assert.Equal(t, "INVALID_INPUT", resp.Error.Code)
	}

	search.AssertNotCalled(t, "Search", mock.Anything, mock.Anything)
}

func TestSearchHandler_PaginatedResults(t *testing.T) {
	search := new(mockSearchRepository)
	history := new(mockSearchHistoryRepository)
	router := setupSearchRouter(search, history)

	// 25 matches, limit 10, page 2: rows 11-20 with 3 total pages.
	search.On("Search", mock.Anything, mock.MatchedBy(func(q domain.SearchQuery) bool {
		return q.Term == "laptop" && q.Page == 2 && q.Limit == 10
	})).Return(make([]domain.Product, 10), 25, nil)
	history.On("Append", mock.Anything, mock.AnythingOfType("*domain.SearchHistoryEntry")).Return(nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/search?q=laptop&page=2&limit=10", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Data)

	data := resp.Data.(map[string]any)
	assert.Equal(t, float64(25), data["total_count"])
	assert.Equal(t, float64(3), data["total_pages"])
	assert.Equal(t, float64(2), data["page"])
	assert.Len(t, data["products"], 10)

	search.AssertExpectations(t)
}

func TestSearchHandler_PageBeyondRange(t *testing.T) {
	search := new(mockSearchRepository)
	history := new(mockSearchHistoryRepository)
	router := setupSearchRouter(search, history)

	search.On("Search", mock.Anything, mock.AnythingOfType("domain.SearchQuery")).
		Return([]domain.Product{}, 25, nil)
	history.On("Append", mock.Anything, mock.AnythingOfType("*domain.SearchHistoryEntry")).Return(nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/search?q=laptop&page=99", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	data := decodeResponse(t, rec).Data.(map[string]any)
	assert.Empty(t, data["products"])
	assert.Equal(t, float64(25), data["total_count"])
}

func TestSearchHandler_InvalidSort(t *testing.T) {
	search := new(mockSearchRepository)
	history := new(mockSearchHistoryRepository)
	router := setupSearchRouter(search, history)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/search?q=laptop&sort=sneaky", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAutosuggestHandler_Success(t *testing.T) {
	search := new(mockSearchRepository)
	history := new(mockSearchHistoryRepository)
	router := setupSearchRouter(search, history)

	search.On("Suggest", mock.Anything, "lap", 10).
		Return([]domain.Suggestion{{Name: "Laptop Pro", Brand: "Acme"}}, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/search/autosuggest?q=lap", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	suggestions := resp.Data.([]any)
	require.Len(t, suggestions, 1)
	first := suggestions[0].(map[string]any)
	assert.Equal(t, "Laptop Pro", first["name"])
}

func TestAutosuggestHandler_MissingQuery(t *testing.T) {
	search := new(mockSearchRepository)
	history := new(mockSearchHistoryRepository)
	router := setupSearchRouter(search, history)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/search/autosuggest", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	search.AssertNotCalled(t, "Suggest", mock.Anything, mock.Anything, mock.Anything)
}
