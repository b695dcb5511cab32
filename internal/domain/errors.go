package domain

import "errors"

// Pricing and stock invariant violations.
var (
	ErrNegativeBasePrice       = errors.New("base price must not be negative")
	ErrNegativeDiscountedPrice = errors.New("discounted price must not be negative")
	ErrDiscountExceedsBase     = errors.New("discounted price must not exceed base price")
	ErrNegativeStock           = errors.New("stock quantity must not be negative")
)
