package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	OrderPending    = "pending"
	OrderProcessing = "processing"
	OrderShipped    = "shipped"
	OrderDelivered  = "delivered"
	OrderCancelled  = "cancelled"
)

var orderTransitions = map[string][]string{
	OrderPending:    {OrderProcessing, OrderCancelled},
	OrderProcessing: {OrderShipped, OrderCancelled},
	OrderShipped:    {OrderDelivered},
}

type OrderItem struct {
	ID          int64   `json:"id"`
	ProductID   int64   `json:"productId"`
	ProductName string  `json:"productName"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
}

type Order struct {
	ID           int64        `json:"id"`
	OrderNumber  string       `json:"orderNumber"`
	CustomerName string       `json:"customerName"`
	Email        string       `json:"email"`
	Status       string       `json:"status"`
	Total        float64      `json:"total"`
	Items        []*OrderItem `json:"items,omitempty"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
}

type OrdersStore struct {
	db *pgxpool.Pool
}

func (s *OrdersStore) List(ctx context.Context, status string, limit, offset int) ([]*Order, int, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	query := `
		SELECT id, order_number, customer_name, email, status, total, created_at, updated_at,
		       COUNT(*) OVER() AS total_count
		FROM orders
		WHERE ($1 = '' OR status = $1)
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3`

	rows, err := s.db.Query(ctx, query, status, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var (
		orders []*Order
		total  int
	)
	for rows.Next() {
		var o Order
		if err := rows.Scan(&o.ID, &o.OrderNumber, &o.CustomerName, &o.Email,
			&o.Status, &o.Total, &o.CreatedAt, &o.UpdatedAt, &total); err != nil {
			return nil, 0, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, &o)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows iteration: %w", err)
	}
	return orders, total, nil
}

func (s *OrdersStore) GetByID(ctx context.Context, id int64) (*Order, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	o := &Order{}
	query := `SELECT id, order_number, customer_name, email, status, total, created_at, updated_at
		FROM orders WHERE id = $1`
	if err := s.db.QueryRow(ctx, query, id).Scan(&o.ID, &o.OrderNumber, &o.CustomerName,
		&o.Email, &o.Status, &o.Total, &o.CreatedAt, &o.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get order: %w", err)
	}

	itemsSQL := `
		SELECT i.id, i.product_id, p.name, i.quantity, i.unit_price
		FROM order_items i
		JOIN products p ON p.id = i.product_id
		WHERE i.order_id = $1
		ORDER BY i.id ASC`
	rows, err := s.db.Query(ctx, itemsSQL, id)
	if err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var it OrderItem
		if err := rows.Scan(&it.ID, &it.ProductID, &it.ProductName, &it.Quantity, &it.UnitPrice); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		o.Items = append(o.Items, &it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}
	return o, nil
}

// UpdateStatus enforces pending→processing|cancelled, processing→shipped|cancelled,
// shipped→delivered.
func (s *OrdersStore) UpdateStatus(ctx context.Context, id int64, status string) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	var current string
	if err := s.db.QueryRow(ctx, `SELECT status FROM orders WHERE id = $1`, id).Scan(&current); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("get order status: %w", err)
	}

	if !transitionAllowed(orderTransitions, current, status) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current, status)
	}

	if _, err := s.db.Exec(ctx,
		`UPDATE orders SET status = $1, updated_at = now() WHERE id = $2`, status, id); err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	return nil
}
