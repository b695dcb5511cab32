package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/utafrali/storefront/internal/domain"
	pkgkafka "github.com/utafrali/storefront/pkg/kafka"
)

// Kafka topics for storefront domain events.
const (
	TopicProductCreated = "storefront.product.created"
	TopicProductUpdated = "storefront.product.updated"
	TopicProductDeleted = "storefront.product.deleted"
	TopicReviewCreated  = "storefront.review.created"
	TopicOrderCreated   = "storefront.order.created"
)

// Aggregate types.
const (
	AggregateTypeProduct = "product"
	AggregateTypeReview  = "review"
	AggregateTypeOrder   = "order"
)

// Source identifier for events originating from this service.
const Source = "storefront"

// ProductData is the payload for product lifecycle events.
type ProductData struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Slug            string  `json:"slug"`
	BrandID         *string `json:"brand_id,omitempty"`
	CategoryID      *string `json:"category_id,omitempty"`
	BasePrice       int64   `json:"base_price"`
	DiscountedPrice int64   `json:"discounted_price"`
	Currency        string  `json:"currency"`
	StockQuantity   int     `json:"stock_quantity"`
}

// ProductDeletedData is the payload for a product.deleted event.
type ProductDeletedData struct {
	ID string `json:"id"`
}

// ReviewCreatedData is the payload for a review.created event.
type ReviewCreatedData struct {
	ID        string `json:"id"`
	ProductID string `json:"product_id"`
	UserID    string `json:"user_id"`
	Rating    int    `json:"rating"`
}

// OrderCreatedData is the payload for an order.created event.
type OrderCreatedData struct {
	ID          string `json:"id"`
	UserID      string `json:"user_id"`
	TotalAmount int64  `json:"total_amount"`
	Currency    string `json:"currency"`
	ItemCount   int    `json:"item_count"`
}

// Producer publishes storefront domain events to Kafka.
type Producer struct {
	kafka  *pkgkafka.Producer
	logger *slog.Logger
}

// NewProducer creates a new event producer.
func NewProducer(kafka *pkgkafka.Producer, logger *slog.Logger) *Producer {
	return &Producer{
		kafka:  kafka,
		logger: logger,
	}
}

func productData(p *domain.Product) ProductData {
	return ProductData{
		ID:              p.ID,
		Name:            p.Name,
		Slug:            p.Slug,
		BrandID:         p.BrandID,
		CategoryID:      p.CategoryID,
		BasePrice:       p.BasePrice,
		DiscountedPrice: p.DiscountedPrice,
		Currency:        p.Currency,
		StockQuantity:   p.StockQuantity,
	}
}

// PublishProductCreated publishes a product.created event.
func (p *Producer) PublishProductCreated(ctx context.Context, product *domain.Product) error {
	return p.publish(ctx, TopicProductCreated, product.ID, AggregateTypeProduct, productData(product))
}

// PublishProductUpdated publishes a product.updated event.
func (p *Producer) PublishProductUpdated(ctx context.Context, product *domain.Product) error {
	return p.publish(ctx, TopicProductUpdated, product.ID, AggregateTypeProduct, productData(product))
}

// PublishProductDeleted publishes a product.deleted event.
func (p *Producer) PublishProductDeleted(ctx context.Context, id string) error {
	return p.publish(ctx, TopicProductDeleted, id, AggregateTypeProduct, ProductDeletedData{ID: id})
}

// PublishReviewCreated publishes a review.created event.
func (p *Producer) PublishReviewCreated(ctx context.Context, review *domain.Review) error {
	data := ReviewCreatedData{
		ID:        review.ID,
		ProductID: review.ProductID,
		UserID:    review.UserID,
		Rating:    review.Rating,
	}
	return p.publish(ctx, TopicReviewCreated, review.ID, AggregateTypeReview, data)
}

// PublishOrderCreated publishes an order.created event.
func (p *Producer) PublishOrderCreated(ctx context.Context, order *domain.Order) error {
	data := OrderCreatedData{
		ID:          order.ID,
		UserID:      order.UserID,
		TotalAmount: order.TotalAmount,
		Currency:    order.Currency,
		ItemCount:   len(order.Items),
	}
	return p.publish(ctx, TopicOrderCreated, order.ID, AggregateTypeOrder, data)
}

func (p *Producer) publish(ctx context.Context, topic, aggregateID, aggregateType string, data any) error {
	event, err := pkgkafka.NewEvent(topic, aggregateID, aggregateType, Source, data)
	if err != nil {
		return fmt.Errorf("create %s event: %w", topic, err)
	}

	if err := p.kafka.Publish(ctx, topic, event); err != nil {
		return fmt.Errorf("publish %s event: %w", topic, err)
	}

	p.logger.DebugContext(ctx, "domain event published",
		slog.String("topic", topic),
		slog.String("aggregate_id", aggregateID),
	)

	return nil
}
