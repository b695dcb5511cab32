package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/utafrali/storefront/internal/domain"
	"github.com/utafrali/storefront/pkg/database"
)

// SearchRepository implements the deterministic product search against
// PostgreSQL. Free text matches case-insensitively as a substring across the
// product name, description, brand name, and category name.
type SearchRepository struct {
	db database.DBTX
}

// NewSearchRepository creates a new PostgreSQL-backed search repository.
func NewSearchRepository(db database.DBTX) *SearchRepository {
	return &SearchRepository{db: db}
}

// escapeLike escapes LIKE metacharacters so user input matches literally.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}

// orderClause maps a sort key to a deterministic ORDER BY. Every ordering
// carries an id tiebreaker so equal keys page stably.
func orderClause(sort string) string {
	switch sort {
	case domain.SortPriceAsc:
		return "ORDER BY p.discounted_price ASC, p.id ASC"
	case domain.SortPriceDesc:
		return "ORDER BY p.discounted_price DESC, p.id ASC"
	case domain.SortRatingDesc:
		return "ORDER BY p.avg_rating DESC, p.id ASC"
	case domain.SortNameAsc:
		return "ORDER BY p.name ASC, p.id ASC"
	default:
		// relevance and unknown keys fall back to insertion order.
		return "ORDER BY p.id ASC"
	}
}

// Search runs the product search and returns one page plus the total count.
func (r *SearchRepository) Search(ctx context.Context, q domain.SearchQuery) ([]domain.Product, int, error) {
	var (
		conditions []string
		args       []any
		argIndex   = 1
	)

	pattern := "%" + escapeLike(q.Term) + "%"
	conditions = append(conditions, fmt.Sprintf(
		"(p.name ILIKE $%d OR p.description ILIKE $%d OR b.name ILIKE $%d OR c.name ILIKE $%d)",
		argIndex, argIndex, argIndex, argIndex,
	))
	args = append(args, pattern)
	argIndex++

	if q.Brand != nil {
		conditions = append(conditions, fmt.Sprintf("b.name ILIKE $%d", argIndex))
		args = append(args, escapeLike(*q.Brand))
		argIndex++
	}

	if q.Category != nil {
		conditions = append(conditions, fmt.Sprintf("c.name ILIKE $%d", argIndex))
		args = append(args, escapeLike(*q.Category))
		argIndex++
	}

	if q.MinPrice != nil {
		conditions = append(conditions, fmt.Sprintf("p.discounted_price >= $%d", argIndex))
		args = append(args, *q.MinPrice)
		argIndex++
	}

	if q.MaxPrice != nil {
		conditions = append(conditions, fmt.Sprintf("p.discounted_price <= $%d", argIndex))
		args = append(args, *q.MaxPrice)
		argIndex++
	}

	limit := q.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := 0
	if q.Page > 1 {
		offset = (q.Page - 1) * limit
	}

	query := fmt.Sprintf(`
		SELECT %s, count(*) OVER() AS total_count
		%s
		WHERE %s
		%s
		LIMIT $%d OFFSET $%d`,
		productColumns, productJoins,
		strings.Join(conditions, " AND "),
		orderClause(q.Sort),
		argIndex, argIndex+1,
	)

	args = append(args, limit, offset)

	ctx, end := database.TraceQuery(ctx, "SearchProducts", query)
	products, total, err := (&ProductRepository{db: r.db}).queryProducts(ctx, query, args...)
	end(err)
	return products, total, err
}

// Suggest returns up to limit distinct product names matching the term
// case-insensitively, with brand and category context.
func (r *SearchRepository) Suggest(ctx context.Context, term string, limit int) ([]domain.Suggestion, error) {
	if limit <= 0 {
		limit = 10
	}

	query := `
		SELECT DISTINCT p.name, COALESCE(b.name, ''), COALESCE(c.name, '')
		FROM products p
		LEFT JOIN brands b ON b.id = p.brand_id
		LEFT JOIN categories c ON c.id = p.category_id
		WHERE p.name ILIKE $1
		LIMIT $2`

	rows, err := r.db.Query(ctx, query, "%"+escapeLike(term)+"%", limit)
	if err != nil {
		return nil, fmt.Errorf("query suggestions: %w", err)
	}
	defer rows.Close()

	var suggestions []domain.Suggestion
	for rows.Next() {
		var s domain.Suggestion
		if err := rows.Scan(&s.Name, &s.Brand, &s.Category); err != nil {
			return nil, fmt.Errorf("scan suggestion row: %w", err)
		}
		suggestions = append(suggestions, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate suggestion rows: %w", err)
	}

	if suggestions == nil {
		suggestions = []domain.Suggestion{}
	}

	return suggestions, nil
}
