package domain

import (
	"time"
)

// Product represents a product in the catalog. AvgRating and ReviewCount are
// derived from reviews and never set directly by clients.
type Product struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Slug            string    `json:"slug"`
	Description     string    `json:"description"`
	BrandID         *string   `json:"brand_id,omitempty"`
	BrandName       string    `json:"brand,omitempty"`
	CategoryID      *string   `json:"category_id,omitempty"`
	CategoryName    string    `json:"category,omitempty"`
	BasePrice       int64     `json:"base_price"`
	DiscountedPrice int64     `json:"discounted_price"`
	Currency        string    `json:"currency"`
	StockQuantity   int       `json:"stock_quantity"`
	ImageURL        string    `json:"image_url,omitempty"`
	AvgRating       float64   `json:"avg_rating"`
	ReviewCount     int       `json:"review_count"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Brand represents a product brand.
type Brand struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"created_at"`
}

// ValidateProductPricing checks the pricing and stock invariants shared by
// product create and update.
func ValidateProductPricing(basePrice, discountedPrice int64, stockQuantity int) error {
	switch {
	case basePrice < 0:
		return ErrNegativeBasePrice
	case discountedPrice < 0:
		return ErrNegativeDiscountedPrice
	case discountedPrice > basePrice:
		return ErrDiscountExceedsBase
	case stockQuantity < 0:
		return ErrNegativeStock
	}
	return nil
}
