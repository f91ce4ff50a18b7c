package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"storefront/internal/domain"
)

var ErrOrderItemNotFound = errors.New("order item not found")

// OrderItemRepository defines the interface for order item data access
type OrderItemRepository interface {
	Create(ctx context.Context, item *domain.OrderItem) error
	FindByID(ctx context.Context, id int64) (*domain.OrderItem, error)
	FindByOrder(ctx context.Context, orderID int64) ([]*domain.OrderItem, error)
	Delete(ctx context.Context, id int64) error
	DeleteByOrder(ctx context.Context, orderID int64) error
}

type orderItemRepository struct {
	db DBTX
}

// NewOrderItemRepository creates a new instance of OrderItemRepository
func NewOrderItemRepository(db DBTX) OrderItemRepository {
	return &orderItemRepository{db: db}
}

const orderItemColumns = "id, order_id, product_id, quantity, unit_price, subtotal, created_at"

func scanOrderItem(row interface{ Scan(dest ...any) error }) (*domain.OrderItem, error) {
	item := &domain.OrderItem{}
	err := row.Scan(
		&item.ID,
		&item.OrderID,
		&item.ProductID,
		&item.Quantity,
		&item.UnitPrice,
		&item.Subtotal,
		&item.CreatedAt,
	)
	return item, err
}

// Create inserts a new order item and fills in the generated id and timestamp
func (r *orderItemRepository) Create(ctx context.Context, item *domain.OrderItem) error {
	query := `
		INSERT INTO order_items (order_id, product_id, quantity, unit_price, subtotal)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	err := r.db.QueryRowContext(
		ctx,
		query,
		item.OrderID,
		item.ProductID,
		item.Quantity,
		item.UnitPrice,
		item.Subtotal,
	).Scan(&item.ID, &item.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create order item: %w", err)
	}

	return nil
}

// FindByID retrieves an order item by ID using parameterized queries
func (r *orderItemRepository) FindByID(ctx context.Context, id int64) (*domain.OrderItem, error) {
	query := `SELECT ` + orderItemColumns + ` FROM order_items WHERE id = $1`

	item, err := scanOrderItem(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrOrderItemNotFound
		}
		return nil, fmt.Errorf("failed to find order item by ID: %w", err)
	}

	return item, nil
}

// FindByOrder retrieves the line items of an order in insertion order
func (r *orderItemRepository) FindByOrder(ctx context.Context, orderID int64) ([]*domain.OrderItem, error) {
	query := `SELECT ` + orderItemColumns + ` FROM order_items WHERE order_id = $1 ORDER BY id ASC`

	rows, err := r.db.QueryContext(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to list order items: %w", err)
	}
	defer rows.Close()

	items := []*domain.OrderItem{}
	for rows.Next() {
		item, err := scanOrderItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating order items: %w", err)
	}

	return items, nil
}

// Delete removes an order item by id
func (r *orderItemRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM order_items WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete order item: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrOrderItemNotFound
	}

	return nil
}

// DeleteByOrder removes all line items of an order. Zero items is not an
// error; an order shell with no items is a valid state.
func (r *orderItemRepository) DeleteByOrder(ctx context.Context, orderID int64) error {
	query := `DELETE FROM order_items WHERE order_id = $1`

	if _, err := r.db.ExecContext(ctx, query, orderID); err != nil {
		return fmt.Errorf("failed to delete order items: %w", err)
	}

	return nil
}
