package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/utafrali/storefront/internal/repository"
	"github.com/utafrali/storefront/internal/service"
	"github.com/utafrali/storefront/pkg/httputil"
	"github.com/utafrali/storefront/pkg/pagination"
	"github.com/utafrali/storefront/pkg/validator"
)

// ProductHandler handles HTTP requests for catalog endpoints.
type ProductHandler struct {
	service *service.ProductService
	logger  *slog.Logger
}

// NewProductHandler creates a new product HTTP handler.
func NewProductHandler(svc *service.ProductService, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{
		service: svc,
		logger:  logger,
	}
}

// ProductRequest is the JSON request body for creating or updating a product.
type ProductRequest struct {
	Name            string  `json:"name" validate:"required,max=255"`
	Description     string  `json:"description"`
	BrandID         *string `json:"brand_id" validate:"omitempty,uuid"`
	CategoryID      *string `json:"category_id" validate:"omitempty,uuid"`
	BasePrice       int64   `json:"base_price" validate:"gte=0"`
	DiscountedPrice int64   `json:"discounted_price" validate:"gte=0"`
	Currency        string  `json:"currency" validate:"omitempty,len=3"`
	StockQuantity   int     `json:"stock_quantity" validate:"gte=0"`
	ImageURL        string  `json:"image_url" validate:"omitempty,url"`
}

// CreateBrandRequest is the JSON request body for creating a brand.
type CreateBrandRequest struct {
	Name string `json:"name" validate:"required,max=255"`
}

func (req *ProductRequest) toInput() *service.ProductInput {
	return &service.ProductInput{
		Name:            req.Name,
		Description:     req.Description,
		BrandID:         req.BrandID,
		CategoryID:      req.CategoryID,
		BasePrice:       req.BasePrice,
		DiscountedPrice: req.DiscountedPrice,
		Currency:        req.Currency,
		StockQuantity:   req.StockQuantity,
		ImageURL:        req.ImageURL,
	}
}

func decodeProductRequest(w http.ResponseWriter, r *http.Request) (*ProductRequest, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	var req ProductRequest
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

// ListProducts handles GET /api/products.
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	params := pagination.FromRequest(r)
	filter := repository.ProductFilter{
		Page:  params.Page,
		Limit: params.Limit,
	}

	q := r.URL.Query()
	if v := q.Get("category_id"); v != "" {
		filter.CategoryID = &v
	}
	if v := q.Get("brand_id"); v != "" {
		filter.BrandID = &v
	}
	if v := q.Get("min_price"); v != "" {
		if p, err := strconv.ParseInt(v, 10, 64); err == nil && p >= 0 {
			filter.MinPrice = &p
		}
	}
	if v := q.Get("max_price"); v != "" {
		if p, err := strconv.ParseInt(v, 10, 64); err == nil && p >= 0 {
			filter.MaxPrice = &p
		}
	}
	if v := q.Get("in_stock"); v == "true" {
		inStock := true
		filter.InStock = &inStock
	}

	result, err := h.service.ListProducts(r.Context(), filter)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: result})
}

// GetProduct handles GET /api/products/{id}.
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	product, err := h.service.GetProduct(r.Context(), id.String())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: product})
}

// GetProductBySlug handles GET /api/products/slug/{slug}.
func (h *ProductHandler) GetProductBySlug(w http.ResponseWriter, r *http.Request) {
	product, err := h.service.GetProductBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: product})
}

// CreateProduct handles POST /api/products. Admin only.
func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeProductRequest(w, r)
	if !ok {
		return
	}

	product, err := h.service.CreateProduct(r.Context(), req.toInput())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: product})
}

// UpdateProduct handles PUT /api/products/{id}. Admin only.
func (h *ProductHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	req, ok := decodeProductRequest(w, r)
	if !ok {
		return
	}

	product, err := h.service.UpdateProduct(r.Context(), id.String(), req.toInput())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: product})
}

// DeleteProduct handles DELETE /api/products/{id}. Admin only.
func (h *ProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	if err := h.service.DeleteProduct(r.Context(), id.String()); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListBrands handles GET /api/brands.
func (h *ProductHandler) ListBrands(w http.ResponseWriter, r *http.Request) {
	brands, err := h.service.ListBrands(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: brands})
}

// CreateBrand handles POST /api/brands. Admin only.
func (h *ProductHandler) CreateBrand(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	var req CreateBrandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "invalid request body: " + err.Error()},
		})
		return
	}

	if err := validator.Validate(req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	brand, err := h.service.CreateBrand(r.Context(), req.Name)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: brand})
}
