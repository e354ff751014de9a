package metrics

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopsync/backend/internal/domain/commerce"
	"github.com/shopsync/backend/internal/domain/report"
)

// MetricsService provides application-level dashboard metrics operations
type MetricsService struct {
	metricsRepo report.MetricsRepository
}

// NewMetricsService creates a new MetricsService
func NewMetricsService(metricsRepo report.MetricsRepository) *MetricsService {
	return &MetricsService{metricsRepo: metricsRepo}
}

// OverviewResponse is the tenant dashboard summary
type OverviewResponse struct {
	TotalCustomers    int64  `json:"total_customers"`
	TotalProducts     int64  `json:"total_products"`
	TotalOrders       int64  `json:"total_orders"`
	TotalRevenueCents int64  `json:"total_revenue_cents"`
	TotalRevenue      string `json:"total_revenue"`
}

// OrdersByDateResponse is one day of order activity
type OrdersByDateResponse struct {
	Date         string `json:"date"`
	OrderCount   int64  `json:"order_count"`
	RevenueCents int64  `json:"revenue_cents"`
	Revenue      string `json:"revenue"`
}

// TopCustomerResponse is one row of the customer spend leaderboard
type TopCustomerResponse struct {
	CustomerID      string `json:"customer_id"`
	ExternalID      int64  `json:"external_id"`
	Email           string `json:"email"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	TotalSpentCents int64  `json:"total_spent_cents"`
	TotalSpent      string `json:"total_spent"`
	OrderCount      int64  `json:"order_count"`
}

// TopProductResponse is one row of the product sales leaderboard
type TopProductResponse struct {
	ProductID    string `json:"product_id"`
	ExternalID   int64  `json:"external_id"`
	Title        string `json:"title"`
	UnitsSold    int64  `json:"units_sold"`
	RevenueCents int64  `json:"revenue_cents"`
	Revenue      string `json:"revenue"`
}

// DateRangeFilter bounds the orders-by-date query; both bounds optional
type DateRangeFilter struct {
	StartDate *time.Time `form:"start_date" time_format:"2006-01-02"`
	EndDate   *time.Time `form:"end_date" time_format:"2006-01-02"`
}

// GetOverview returns the tenant-level summary counts and revenue
func (s *MetricsService) GetOverview(ctx context.Context, tenantID uuid.UUID) (*OverviewResponse, error) {
	overview, err := s.metricsRepo.Overview(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	return &OverviewResponse{
		TotalCustomers:    overview.TotalCustomers,
		TotalProducts:     overview.TotalProducts,
		TotalOrders:       overview.TotalOrders,
		TotalRevenueCents: overview.TotalRevenueCents,
		TotalRevenue:      commerce.FormatMinorUnits(overview.TotalRevenueCents),
	}, nil
}

// GetOrdersByDate returns daily order counts and revenue within the range
func (s *MetricsService) GetOrdersByDate(ctx context.Context, tenantID uuid.UUID, filter DateRangeFilter) ([]OrdersByDateResponse, error) {
	var dateRange report.DateRange
	if filter.StartDate != nil {
		dateRange.Start = *filter.StartDate
	}
	if filter.EndDate != nil {
		dateRange.End = *filter.EndDate
	}

	points, err := s.metricsRepo.OrdersByDate(ctx, tenantID, dateRange)
	if err != nil {
		return nil, err
	}

	responses := make([]OrdersByDateResponse, 0, len(points))
	for _, p := range points {
		responses = append(responses, OrdersByDateResponse{
			Date:         p.Date,
			OrderCount:   p.OrderCount,
			RevenueCents: p.RevenueCents,
			Revenue:      commerce.FormatMinorUnits(p.RevenueCents),
		})
	}
	return responses, nil
}

// GetTopCustomers returns customers ordered by total spend, highest first
func (s *MetricsService) GetTopCustomers(ctx context.Context, tenantID uuid.UUID, limit int) ([]TopCustomerResponse, error) {
	customers, err := s.metricsRepo.TopCustomers(ctx, tenantID, limit)
	if err != nil {
		return nil, err
	}

	responses := make([]TopCustomerResponse, 0, len(customers))
	for _, c := range customers {
		responses = append(responses, TopCustomerResponse{
			CustomerID:      c.CustomerID.String(),
			ExternalID:      c.ExternalID,
			Email:           c.Email,
			FirstName:       c.FirstName,
			LastName:        c.LastName,
			TotalSpentCents: c.TotalSpentCents,
			TotalSpent:      commerce.FormatMinorUnits(c.TotalSpentCents),
			OrderCount:      c.OrderCount,
		})
	}
	return responses, nil
}

// GetTopProducts returns products ordered by units sold, highest first
func (s *MetricsService) GetTopProducts(ctx context.Context, tenantID uuid.UUID, limit int) ([]TopProductResponse, error) {
	products, err := s.metricsRepo.TopProducts(ctx, tenantID, limit)
	if err != nil {
		return nil, err
	}

	responses := make([]TopProductResponse, 0, len(products))
	for _, p := range products {
		responses = append(responses, TopProductResponse{
			ProductID:    p.ProductID.String(),
			ExternalID:   p.ExternalID,
			Title:        p.Title,
			UnitsSold:    p.UnitsSold,
			RevenueCents: p.RevenueCents,
			Revenue:      commerce.FormatMinorUnits(p.RevenueCents),
		})
	}
	return responses, nil
}
