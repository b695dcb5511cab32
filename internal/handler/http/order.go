package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/utafrali/storefront/internal/service"
	"github.com/utafrali/storefront/pkg/httputil"
	"github.com/utafrali/storefront/pkg/middleware"
	"github.com/utafrali/storefront/pkg/pagination"
	"github.com/utafrali/storefront/pkg/validator"
)

// OrderHandler handles HTTP requests for order endpoints.
type OrderHandler struct {
	service *service.OrderService
	logger  *slog.Logger
}

// NewOrderHandler creates a new order HTTP handler.
func NewOrderHandler(svc *service.OrderService, logger *slog.Logger) *OrderHandler {
	return &OrderHandler{
		service: svc,
		logger:  logger,
	}
}

// OrderItemRequest is a single requested order line.
type OrderItemRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	Quantity  int    `json:"quantity" validate:"required,min=1"`
}

// CreateOrderRequest is the JSON request body for creating an order.
type CreateOrderRequest struct {
	Items []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
}

// CreateOrder handles POST /api/orders.
func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	var req CreateOrderRequest
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

	items := make([]service.OrderItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, service.OrderItemInput{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	order, err := h.service.CreateOrder(r.Context(), middleware.UserIDFromContext(r.Context()), items)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: order})
}

// ListOrders handles GET /api/orders.
func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	params := pagination.FromRequest(r)

	result, err := h.service.ListOrders(r.Context(), middleware.UserIDFromContext(r.Context()), params.Page, params.Limit)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: result})
}
