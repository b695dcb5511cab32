package domain

import (
	"time"
)

// Sort options for product search.
const (
	SortRelevance  = "relevance"
	SortPriceAsc   = "price_asc"
	SortPriceDesc  = "price_desc"
	SortRatingDesc = "rating_desc"
	SortNameAsc    = "name_asc"
)

// IsValidSort reports whether the given sort key is supported.
func IsValidSort(sort string) bool {
	switch sort {
	case SortRelevance, SortPriceAsc, SortPriceDesc, SortRatingDesc, SortNameAsc:
		return true
	}
	return false
}

// SearchQuery holds the parameters of a product search.
type SearchQuery struct {
	Term      string
	Brand     *string
	Category  *string
	MinPrice  *int64
	MaxPrice  *int64
	Sort      string
	Page      int
	Limit     int
	UserID    string
	SessionID string
}

// Suggestion is a single autosuggest entry.
type Suggestion struct {
	Name     string `json:"name"`
	Brand    string `json:"brand,omitempty"`
	Category string `json:"category,omitempty"`
}

// SearchHistoryEntry is one row of the append-only search log.
type SearchHistoryEntry struct {
	ID          string    `json:"id"`
	Query       string    `json:"query"`
	UserID      *string   `json:"user_id,omitempty"`
	SessionID   *string   `json:"session_id,omitempty"`
	ResultCount int       `json:"result_count"`
	CreatedAt   time.Time `json:"created_at"`
}
