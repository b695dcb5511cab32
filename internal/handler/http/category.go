package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/utafrali/storefront/internal/service"
	"github.com/utafrali/storefront/pkg/httputil"
	"github.com/utafrali/storefront/pkg/validator"
)

// CategoryHandler handles HTTP requests for category endpoints.
type CategoryHandler struct {
	service *service.CategoryService
	logger  *slog.Logger
}

// NewCategoryHandler creates a new category HTTP handler.
func NewCategoryHandler(svc *service.CategoryService, logger *slog.Logger) *CategoryHandler {
	return &CategoryHandler{
		service: svc,
		logger:  logger,
	}
}

// CategoryRequest is the JSON request body for creating or updating a category.
type CategoryRequest struct {
	Name     string  `json:"name" validate:"required,max=255"`
	ParentID *string `json:"parent_id" validate:"omitempty,uuid"`
}

// ListCategories handles GET /api/categories.
func (h *CategoryHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.ListCategories(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: categories})
}

// CategoryTree handles GET /api/categories/tree.
func (h *CategoryHandler) CategoryTree(w http.ResponseWriter, r *http.Request) {
	tree, err := h.service.CategoryTree(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: tree})
}

// CreateCategory handles POST /api/categories. Admin only.
func (h *CategoryHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeCategoryRequest(w, r)
	if !ok {
		return
	}

	category, err := h.service.CreateCategory(r.Context(), &service.CategoryInput{
		Name:     req.Name,
		ParentID: req.ParentID,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: category})
}

// UpdateCategory handles PUT /api/categories/{id}. Admin only.
func (h *CategoryHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	req, ok := decodeCategoryRequest(w, r)
	if !ok {
		return
	}

	category, err := h.service.UpdateCategory(r.Context(), id.String(), &service.CategoryInput{
		Name:     req.Name,
		ParentID: req.ParentID,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: category})
}

func decodeCategoryRequest(w http.ResponseWriter, r *http.Request) (*CategoryRequest, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	var req CategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "invalid request body: " + err.Error()},
		})
		return nil, false
	}

	if err := validator.Validate(req); err != nil {
		httputil.WriteValidationError(w, err)
		return nil, false
	}

	return &req, true
}
