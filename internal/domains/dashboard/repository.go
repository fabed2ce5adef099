package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// Repository issues the independent dashboard reads.
type Repository interface {
	CountOrdersSince(ctx context.Context, since time.Time) (int, error)
	CountCustomers(ctx context.Context) (int, error)
	RevenueBetween(ctx context.Context, from, to time.Time) (decimal.Decimal, error)
	RecentOrders(ctx context.Context, limit int) ([]RecentOrder, error)
}

// Statuses that count toward revenue.
var paidStatuses = []string{"paid", "shipped", "delivered"}

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) CountOrdersSince(ctx context.Context, since time.Time) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM orders WHERE created_at >= $1`, since).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count orders: %w", err)
	}
	return count, nil
}

func (r *postgresRepository) CountCustomers(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM profiles`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count customers: %w", err)
	}
	return count, nil
}

func (r *postgresRepository) RevenueBetween(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	var revenue decimal.Decimal
	err := r.pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(total), 0)
		FROM orders
		WHERE status = ANY($1) AND created_at >= $2 AND created_at < $3`,
		paidStatuses, from, to).Scan(&revenue)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum revenue: %w", err)
	}
	return revenue, nil
}

func (r *postgresRepository) RecentOrders(ctx context.Context, limit int) ([]RecentOrder, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT o.id, o.order_number, COALESCE(pr.name, ''), o.status, o.total, o.created_at
		FROM orders o
		LEFT JOIN profiles pr ON o.customer_id = pr.id
		ORDER BY o.created_at DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent orders: %w", err)
	}
	defer rows.Close()

	orders := []RecentOrder{}
	for rows.Next() {
		var o RecentOrder
		err := rows.Scan(&o.ID, &o.OrderNumber, &o.CustomerName, &o.Status, &o.Total, &o.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan recent order: %w", err)
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}
