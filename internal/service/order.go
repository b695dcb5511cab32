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
)

// OrderEventPublisher publishes order domain events.
type OrderEventPublisher interface {
	PublishOrderCreated(ctx context.Context, order *domain.Order) error
}

// OrderItemInput is a single requested order line.
type OrderItemInput struct {
	ProductID string
	Quantity  int
}

// OrderListResult is one page of orders with pagination totals.
type OrderListResult struct {
	Orders     []domain.Order `json:"orders"`
	TotalCount int            `json:"total_count"`
	Page       int            `json:"page"`
	Limit      int            `json:"limit"`
	TotalPages int            `json:"total_pages"`
}

// OrderService implements order creation and listing. Totals are computed
// from the current discounted prices at order time.
type OrderService struct {
	orders   repository.OrderRepository
	products repository.ProductRepository
	events   OrderEventPublisher
	logger   *slog.Logger
}

// NewOrderService creates a new order service. events may be nil when event
// publishing is disabled.
func NewOrderService(
	orders repository.OrderRepository,
	products repository.ProductRepository,
	events OrderEventPublisher,
	logger *slog.Logger,
) *OrderService {
	return &OrderService{
		orders:   orders,
		products: products,
		events:   events,
		logger:   logger,
	}
}

// CreateOrder creates a pending order from the requested items. Each line is
// priced with the product's current discounted price.
func (s *OrderService) CreateOrder(ctx context.Context, userID string, items []OrderItemInput) (*domain.Order, error) {
	if userID == "" {
		return nil, apperrors.Unauthorized("authentication required")
	}
	if len(items) == 0 {
		return nil, apperrors.InvalidInput("order must contain at least one item")
	}

	var (
		orderItems []domain.OrderItem
		total      int64
		currency   string
	)

	for _, item := range items {
		if item.Quantity <= 0 {
			return nil, apperrors.InvalidInput("item quantity must be positive")
		}

		product, err := s.products.GetByID(ctx, item.ProductID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, apperrors.NotFound("product", item.ProductID)
			}
			return nil, fmt.Errorf("load product: %w", err)
		}

		if currency == "" {
			currency = product.Currency
		}

		orderItems = append(orderItems, domain.OrderItem{
			ProductID:   product.ID,
			ProductName: product.Name,
			Quantity:    item.Quantity,
			UnitPrice:   product.DiscountedPrice,
		})
		total += product.DiscountedPrice * int64(item.Quantity)
	}

	now := time.Now().UTC()
	order := &domain.Order{
		ID:          uuid.New().String(),
		UserID:      userID,
		Status:      domain.OrderStatusPending,
		TotalAmount: total,
		Currency:    currency,
		Items:       orderItems,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.orders.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	s.logger.InfoContext(ctx, "order created",
		slog.String("order_id", order.ID),
		slog.String("user_id", userID),
		slog.Int64("total_amount", total),
	)

	if s.events != nil {
		if err := s.events.PublishOrderCreated(ctx, order); err != nil {
			s.logger.WarnContext(ctx, "failed to publish order.created event",
				slog.String("order_id", order.ID),
				slog.String("error", err.Error()),
			)
		}
	}

	return order, nil
}

// ListOrders returns the caller's orders, newest first.
func (s *OrderService) ListOrders(ctx context.Context, userID string, page, limit int) (*OrderListResult, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	orders, total, err := s.orders.ListByUserID(ctx, userID, page, limit)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	totalPages := total / limit
	if total%limit > 0 {
		totalPages++
	}

	return &OrderListResult{
		Orders:     orders,
		TotalCount: total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}, nil
}
