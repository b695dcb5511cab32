package postgres

import (
	"context"
	"fmt"

	"github.com/utafrali/storefront/internal/domain"
	"github.com/utafrali/storefront/pkg/database"
)

// SearchHistoryRepository appends to the search_history table. The table is
// append-only; rows are never updated or deleted by the application.
type SearchHistoryRepository struct {
	db database.DBTX
}

// NewSearchHistoryRepository creates a new PostgreSQL-backed search history
// repository.
func NewSearchHistoryRepository(db database.DBTX) *SearchHistoryRepository {
	return &SearchHistoryRepository{db: db}
}

// Append records one executed search.
func (r *SearchHistoryRepository) Append(ctx context.Context, e *domain.SearchHistoryEntry) error {
	query := `
		INSERT INTO search_history (id, query, user_id, session_id, result_count, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.Exec(ctx, query,
		e.ID,
		e.Query,
		e.UserID,
		e.SessionID,
		e.ResultCount,
		e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert search history: %w", err)
	}

	return nil
}
