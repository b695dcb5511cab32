package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/utafrali/storefront/internal/domain"
	"github.com/utafrali/storefront/internal/service"
	"github.com/utafrali/storefront/pkg/httputil"
	"github.com/utafrali/storefront/pkg/middleware"
	"github.com/utafrali/storefront/pkg/pagination"
)

// SearchHandler handles HTTP requests for product search and autosuggest.
type SearchHandler struct {
	service *service.SearchService
	logger  *slog.Logger
}

// NewSearchHandler creates a new search HTTP handler.
func NewSearchHandler(svc *service.SearchService, logger *slog.Logger) *SearchHandler {
	return &SearchHandler{
		service: svc,
		logger:  logger,
	}
}

// Search handles GET /api/search.
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	params := pagination.FromRequest(r)
	q := r.URL.Query()

	query := domain.SearchQuery{
		Term:      q.Get("q"),
		Sort:      q.Get("sort"),
		Page:      params.Page,
		Limit:     params.Limit,
		UserID:    middleware.UserIDFromContext(r.Context()),
		SessionID: r.Header.Get("X-Session-ID"),
	}

	if v := q.Get("brand"); v != "" {
		query.Brand = &v
	}
	if v := q.Get("category"); v != "" {
		query.Category = &v
	}
	if v := q.Get("min_price"); v != "" {
		if p, err := strconv.ParseInt(v, 10, 64); err == nil && p >= 0 {
			query.MinPrice = &p
		}
	}
	if v := q.Get("max_price"); v != "" {
		if p, err := strconv.ParseInt(v, 10, 64); err == nil && p >= 0 {
			query.MaxPrice = &p
		}
	}

	result, err := h.service.Search(r.Context(), query)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: result})
}

// Autosuggest handles GET /api/search/autosuggest.
func (h *SearchHandler) Autosuggest(w http.ResponseWriter, r *http.Request) {
	suggestions, err := h.service.Suggest(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: suggestions})
}
