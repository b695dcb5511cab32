package http

import (
	"log/slog"
	"net/http"

	"github.com/utafrali/storefront/internal/semantic"
	"github.com/utafrali/storefront/pkg/httputil"
)

// SemanticHandler proxies requests to the external semantic search service.
// Downstream responses, including error bodies, are forwarded as-is.
type SemanticHandler struct {
	client *semantic.Client
	logger *slog.Logger
}

// NewSemanticHandler creates a new semantic search proxy handler.
func NewSemanticHandler(client *semantic.Client, logger *slog.Logger) *SemanticHandler {
	return &SemanticHandler{
		client: client,
		logger: logger,
	}
}

// SemanticSearch handles GET /api/search/semantic.
func (h *SemanticHandler) SemanticSearch(w http.ResponseWriter, r *http.Request) {
	result, err := h.client.Search(r.Context(), r.URL.Query())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	h.forward(w, result)
}

// Seasonal handles GET /api/search/seasonal.
func (h *SemanticHandler) Seasonal(w http.ResponseWriter, r *http.Request) {
	result, err := h.client.SeasonalRecommendations(r.Context(), r.URL.Query())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	h.forward(w, result)
}

// SpellCorrect handles POST /api/search/spell-correct.
func (h *SemanticHandler) SpellCorrect(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	result, err := h.client.SpellCorrect(r.Context(), r.Header.Get("Content-Type"), r.Body)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	h.forward(w, result)
}

// Caption handles POST /api/search/caption.
func (h *SemanticHandler) Caption(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 10<<20)

	result, err := h.client.ImageToCaption(r.Context(), r.Header.Get("Content-Type"), r.Body)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	h.forward(w, result)
}

func (h *SemanticHandler) forward(w http.ResponseWriter, result *semantic.Result) {
	contentType := result.ContentType
	if contentType == "" {
		contentType = "application/json"
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(result.StatusCode)
	_, _ = w.Write(result.Body)
}
