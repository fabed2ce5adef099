package dashboard

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Metrics is the admin dashboard summary for the current month.
type Metrics struct {
	TotalOrders    int             `json:"total_orders"`
	TotalCustomers int             `json:"total_customers"`
	Revenue        decimal.Decimal `json:"revenue"`
	GrowthPercent  string          `json:"growth_percent"`
	RecentOrders   []RecentOrder   `json:"recent_orders"`
}

// RecentOrder is a compact order row for the dashboard list.
type RecentOrder struct {
	ID           uuid.UUID       `json:"id"`
	OrderNumber  string          `json:"order_number"`
	CustomerName string          `json:"customer_name"`
	Status       string          `json:"status"`
	Total        decimal.Decimal `json:"total"`
	CreatedAt    time.Time       `json:"created_at"`
}
