package metrics

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopsync/backend/internal/domain/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubMetricsRepo struct {
	overview     *report.Overview
	byDate       []report.OrdersByDatePoint
	topCustomers []report.TopCustomer
	topProducts  []report.TopProduct
	failWith     error

	gotRange report.DateRange
	gotLimit int
}

func (r *stubMetricsRepo) Overview(_ context.Context, _ uuid.UUID) (*report.Overview, error) {
	return r.overview, r.failWith
}

func (r *stubMetricsRepo) OrdersByDate(_ context.Context, _ uuid.UUID, dateRange report.DateRange) ([]report.OrdersByDatePoint, error) {
	r.gotRange = dateRange
	return r.byDate, r.failWith
}

func (r *stubMetricsRepo) TopCustomers(_ context.Context, _ uuid.UUID, limit int) ([]report.TopCustomer, error) {
	r.gotLimit = limit
	return r.topCustomers, r.failWith
}

func (r *stubMetricsRepo) TopProducts(_ context.Context, _ uuid.UUID, limit int) ([]report.TopProduct, error) {
	r.gotLimit = limit
	return r.topProducts, r.failWith
}

func TestMetricsService_GetOverview(t *testing.T) {
	repo := &stubMetricsRepo{
		overview: &report.Overview{
			TotalCustomers:    3,
			TotalProducts:     5,
			TotalOrders:       7,
			TotalRevenueCents: 123456,
		},
	}
	svc := NewMetricsService(repo)

	resp, err := svc.GetOverview(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Equal(t, int64(7), resp.TotalOrders)
	assert.Equal(t, int64(123456), resp.TotalRevenueCents)
	assert.Equal(t, "1234.56", resp.TotalRevenue)
}

func TestMetricsService_GetOverview_Error(t *testing.T) {
	repo := &stubMetricsRepo{failWith: errors.New("db down")}
	svc := NewMetricsService(repo)

	_, err := svc.GetOverview(context.Background(), uuid.New())
	assert.Error(t, err)
}

func TestMetricsService_GetOrdersByDate(t *testing.T) {
	repo := &stubMetricsRepo{
		byDate: []report.OrdersByDatePoint{
			{Date: "2024-06-01", OrderCount: 2, RevenueCents: 15000},
			{Date: "2024-06-02", OrderCount: 1, RevenueCents: 500},
		},
	}
	svc := NewMetricsService(repo)

	resp, err := svc.GetOrdersByDate(context.Background(), uuid.New(), DateRangeFilter{})
	require.NoError(t, err)
	require.Len(t, resp, 2)
	assert.Equal(t, "150.00", resp[0].Revenue)
	assert.Equal(t, "5.00", resp[1].Revenue)
	assert.True(t, repo.gotRange.Start.IsZero())
	assert.True(t, repo.gotRange.End.IsZero())
}

func TestMetricsService_GetTopCustomers(t *testing.T) {
	customerID := uuid.New()
	repo := &stubMetricsRepo{
		topCustomers: []report.TopCustomer{
			{CustomerID: customerID, ExternalID: 1001, Email: "jane@example.com", TotalSpentCents: 19999, OrderCount: 4},
		},
	}
	svc := NewMetricsService(repo)

	resp, err := svc.GetTopCustomers(context.Background(), uuid.New(), 5)
	require.NoError(t, err)
	require.Len(t, resp, 1)
	assert.Equal(t, customerID.String(), resp[0].CustomerID)
	assert.Equal(t, "199.99", resp[0].TotalSpent)
	assert.Equal(t, 5, repo.gotLimit)
}

func TestMetricsService_GetTopProducts(t *testing.T) {
	productID := uuid.New()
	repo := &stubMetricsRepo{
		topProducts: []report.TopProduct{
			{ProductID: productID, ExternalID: 2001, Title: "Trail Shoe", UnitsSold: 12, RevenueCents: 54000},
		},
	}
	svc := NewMetricsService(repo)

	resp, err := svc.GetTopProducts(context.Background(), uuid.New(), 5)
	require.NoError(t, err)
	require.Len(t, resp, 1)
	assert.Equal(t, "540.00", resp[0].Revenue)
	assert.Equal(t, int64(12), resp[0].UnitsSold)
}
