package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/utafrali/storefront/internal/domain"
	"github.com/utafrali/storefront/pkg/database"
	apperrors "github.com/utafrali/storefront/pkg/errors"
)

// OrderRepository implements repository.OrderRepository using PostgreSQL.
// Order items are stored as a JSONB snapshot taken at order time.
type OrderRepository struct {
	db database.DBTX
}

// NewOrderRepository creates a new PostgreSQL-backed order repository.
func NewOrderRepository(db database.DBTX) *OrderRepository {
	return &OrderRepository{db: db}
}

// Create inserts a new order.
func (r *OrderRepository) Create(ctx context.Context, o *domain.Order) error {
	itemsJSON, err := json.Marshal(o.Items)
	if err != nil {
		return fmt.Errorf("marshal order items: %w", err)
	}

	query := `
		INSERT INTO orders (id, user_id, status, total_amount, currency, items, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err = r.db.Exec(ctx, query,
		o.ID,
		o.UserID,
		o.Status,
		o.TotalAmount,
		o.Currency,
		itemsJSON,
		o.CreatedAt,
		o.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	return nil
}

// GetByID retrieves an order by its ID.
func (r *OrderRepository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	query := `
		SELECT id, user_id, status, total_amount, currency, items, created_at, updated_at
		FROM orders
		WHERE id = $1`

	var (
		o         domain.Order
		itemsJSON []byte
	)

	err := r.db.QueryRow(ctx, query, id).Scan(
		&o.ID,
		&o.UserID,
		&o.Status,
		&o.TotalAmount,
		&o.Currency,
		&itemsJSON,
		&o.CreatedAt,
		&o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("scan order: %w", err)
	}

	if err := json.Unmarshal(itemsJSON, &o.Items); err != nil {
		return nil, fmt.Errorf("unmarshal order items: %w", err)
	}

	return &o, nil
}

// ListByUserID returns a user's orders, newest first, with the total count.
func (r *OrderRepository) ListByUserID(ctx context.Context, userID string, page, limit int) ([]domain.Order, int, error) {
	if limit <= 0 {
		limit = 20
	}
	offset := 0
	if page > 1 {
		offset = (page - 1) * limit
	}

	query := `
		SELECT id, user_id, status, total_amount, currency, items, created_at, updated_at,
			   count(*) OVER() AS total_count
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC, id ASC
		LIMIT $2 OFFSET $3`

	rows, err := r.db.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var (
		orders     []domain.Order
		totalCount int
	)

	for rows.Next() {
		var (
			o         domain.Order
			itemsJSON []byte
		)
		if err := rows.Scan(
			&o.ID,
			&o.UserID,
			&o.Status,
			&o.TotalAmount,
			&o.Currency,
			&itemsJSON,
			&o.CreatedAt,
			&o.UpdatedAt,
			&totalCount,
		); err != nil {
			return nil, 0, fmt.Errorf("scan order row: %w", err)
		}

		if err := json.Unmarshal(itemsJSON, &o.Items); err != nil {
			return nil, 0, fmt.Errorf("unmarshal order items: %w", err)
		}

		orders = append(orders, o)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate order rows: %w", err)
	}

	if orders == nil {
		orders = []domain.Order{}
	}

	return orders, totalCount, nil
}
