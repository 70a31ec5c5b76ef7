package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type LowStockProduct struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	SKU           string `json:"sku"`
	StockQuantity int    `json:"stockQuantity"`
}

type DashboardSummary struct {
	TotalProducts    int                `json:"totalProducts"`
	ActiveProducts   int                `json:"activeProducts"`
	OrdersByStatus   map[string]int     `json:"ordersByStatus"`
	DeliveredRevenue float64            `json:"deliveredRevenue"`
	PendingReviews   int                `json:"pendingReviews"`
	PendingBookings  int                `json:"pendingBookings"`
	Subscribers      int                `json:"subscribers"`
	LowStock         []*LowStockProduct `json:"lowStock"`
}

type DashboardStore struct {
	db *pgxpool.Pool
}

// Summary gathers the back-office dashboard counters. Each aggregate is its
// own read; the dashboard tolerates slight skew between them.
func (s *DashboardStore) Summary(ctx context.Context, lowStockThreshold int) (*DashboardSummary, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	sum := &DashboardSummary{
		OrdersByStatus: make(map[string]int),
	}

	countsSQL := `
		SELECT
			(SELECT COUNT(*) FROM products),
			(SELECT COUNT(*) FROM products WHERE is_active = true),
			(SELECT COALESCE(SUM(total), 0) FROM orders WHERE status = 'delivered'),
			(SELECT COUNT(*) FROM reviews WHERE status = 'pending'),
			(SELECT COUNT(*) FROM bookings WHERE status = 'pending'),
			(SELECT COUNT(*) FROM newsletter_subscribers WHERE is_active = true)`
	if err := s.db.QueryRow(ctx, countsSQL).Scan(
		&sum.TotalProducts, &sum.ActiveProducts, &sum.DeliveredRevenue,
		&sum.PendingReviews, &sum.PendingBookings, &sum.Subscribers,
	); err != nil {
		return nil, fmt.Errorf("dashboard counts: %w", err)
	}

	orderRows, err := s.db.Query(ctx, `SELECT status, COUNT(*) FROM orders GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("orders by status: %w", err)
	}
	defer orderRows.Close()
	for orderRows.Next() {
		var status string
		var n int
		if err := orderRows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("scan order count: %w", err)
		}
		sum.OrdersByStatus[status] = n
	}
	if err := orderRows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}

	lowStockSQL := `
		SELECT id, name, sku, stock_quantity
		FROM products
		WHERE is_active = true AND stock_quantity <= $1
		ORDER BY stock_quantity ASC, id ASC
		LIMIT 20`
	stockRows, err := s.db.Query(ctx, lowStockSQL, lowStockThreshold)
	if err != nil {
		return nil, fmt.Errorf("low stock: %w", err)
	}
	defer stockRows.Close()
	for stockRows.Next() {
		var p LowStockProduct
		if err := stockRows.Scan(&p.ID, &p.Name, &p.SKU, &p.StockQuantity); err != nil {
			return nil, fmt.Errorf("scan low stock product: %w", err)
		}
		sum.LowStock = append(sum.LowStock, &p)
	}
	if err := stockRows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}

	return sum, nil
}
