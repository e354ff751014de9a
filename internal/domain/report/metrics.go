package report

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Overview is the tenant-level dashboard summary. Revenue excludes canceled
// orders; amounts are minor units of the tenant's order currency.
type Overview struct {
	TotalCustomers    int64
	TotalProducts     int64
	TotalOrders       int64
	TotalRevenueCents int64
}

// OrdersByDatePoint is one day of order activity
type OrdersByDatePoint struct {
	Date         string // YYYY-MM-DD
	OrderCount   int64
	RevenueCents int64
}

// TopCustomer is one row of the spend leaderboard
type TopCustomer struct {
	CustomerID      uuid.UUID
	ExternalID      int64
	Email           string
	FirstName       string
	LastName        string
	TotalSpentCents int64
	OrderCount      int64
}

// TopProduct is one row of the sales leaderboard, aggregated from order
// line items that resolved to a local product.
type TopProduct struct {
	ProductID    uuid.UUID
	ExternalID   int64
	Title        string
	UnitsSold    int64
	RevenueCents int64
}

// DateRange bounds a metrics query; zero values mean unbounded
type DateRange struct {
	Start time.Time
	End   time.Time
}

// MetricsRepository defines the interface for dashboard metrics queries
type MetricsRepository interface {
	// Overview returns the tenant-level summary counts and revenue
	Overview(ctx context.Context, tenantID uuid.UUID) (*Overview, error)

	// OrdersByDate returns daily order counts and revenue within the range,
	// oldest day first
	OrdersByDate(ctx context.Context, tenantID uuid.UUID, dateRange DateRange) ([]OrdersByDatePoint, error)

	// TopCustomers returns customers ordered by total spend, highest first
	TopCustomers(ctx context.Context, tenantID uuid.UUID, limit int) ([]TopCustomer, error)

	// TopProducts returns products ordered by units sold, highest first
	TopProducts(ctx context.Context, tenantID uuid.UUID, limit int) ([]TopProduct, error)
}
