package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/utafrali/storefront/internal/service"
	"github.com/utafrali/storefront/pkg/httputil"
	"github.com/utafrali/storefront/pkg/middleware"
	"github.com/utafrali/storefront/pkg/pagination"
	"github.com/utafrali/storefront/pkg/validator"
)

// ReviewHandler handles HTTP requests for product reviews.
type ReviewHandler struct {
	service *service.ReviewService
	logger  *slog.Logger
}

// NewReviewHandler creates a new review HTTP handler.
func NewReviewHandler(svc *service.ReviewService, logger *slog.Logger) *ReviewHandler {
	return &ReviewHandler{
		service: svc,
		logger:  logger,
	}
}

// ReviewRequest is the JSON request body for creating or updating a review.
type ReviewRequest struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"max=2000"`
}

// ListReviews handles GET /api/products/{productId}/reviews.
func (h *ReviewHandler) ListReviews(w http.ResponseWriter, r *http.Request) {
	productID, ok := httputil.ParseUUID(w, chi.URLParam(r, "productId"))
	if !ok {
		return
	}

	params := pagination.FromRequest(r)

	result, err := h.service.ListReviews(r.Context(), productID.String(), params.Page, params.Limit)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: result})
}

// CreateReview handles POST /api/products/{productId}/reviews.
func (h *ReviewHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	productID, ok := httputil.ParseUUID(w, chi.URLParam(r, "productId"))
	if !ok {
		return
	}

	req, ok := decodeReviewRequest(w, r)
	if !ok {
		return
	}

	review, err := h.service.CreateReview(r.Context(), &service.CreateReviewInput{
		ProductID: productID.String(),
		UserID:    middleware.UserIDFromContext(r.Context()),
		Rating:    req.Rating,
		Comment:   req.Comment,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: review})
}

// UpdateReview handles PUT /api/products/{productId}/reviews/{reviewId}.
func (h *ReviewHandler) UpdateReview(w http.ResponseWriter, r *http.Request) {
	reviewID, ok := httputil.ParseUUID(w, chi.URLParam(r, "reviewId"))
	if !ok {
		return
	}

	req, ok := decodeReviewRequest(w, r)
	if !ok {
		return
	}

	review, err := h.service.UpdateReview(r.Context(), &service.UpdateReviewInput{
		ReviewID: reviewID.String(),
		UserID:   middleware.UserIDFromContext(r.Context()),
		Rating:   req.Rating,
		Comment:  req.Comment,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: review})
}

// DeleteReview handles DELETE /api/products/{productId}/reviews/{reviewId}.
func (h *ReviewHandler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	reviewID, ok := httputil.ParseUUID(w, chi.URLParam(r, "reviewId"))
	if !ok {
		return
	}

	userID := middleware.UserIDFromContext(r.Context())
	if err := h.service.DeleteReview(r.Context(), reviewID.String(), userID); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func decodeReviewRequest(w http.ResponseWriter, r *http.Request) (*ReviewRequest, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	var req ReviewRequest
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
