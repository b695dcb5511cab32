package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateProductPricing(t *testing.T) {
	cases := []struct {
		name            string
		basePrice       int64
		discountedPrice int64
		stock           int
		wantErr         error
	}{
		{"valid", 10000, 8000, 5, nil},
		{"no discount", 10000, 10000, 0, nil},
		{"free product", 0, 0, 0, nil},
		{"negative base", -1, 0, 0, ErrNegativeBasePrice},
		{"negative discounted", 100, -1, 0, ErrNegativeDiscountedPrice},
		{"discount above base", 100, 101, 0, ErrDiscountExceedsBase},
		{"negative stock", 100, 100, -1, ErrNegativeStock},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateProductPricing(tc.basePrice, tc.discountedPrice, tc.stock)
			if tc.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tc.wantErr)
			}
		})
	}
}
