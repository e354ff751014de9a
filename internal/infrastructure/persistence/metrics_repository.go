package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopsync/backend/internal/domain/report"
	"github.com/shopsync/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormMetricsRepository implements report.MetricsRepository using GORM.
// All queries stick to functions both PostgreSQL and SQLite understand, so
// the same repository runs against the in-memory test database.
type GormMetricsRepository struct {
	db *gorm.DB
}

// NewGormMetricsRepository creates a new GormMetricsRepository
func NewGormMetricsRepository(db *gorm.DB) *GormMetricsRepository {
	return &GormMetricsRepository{db: db}
}

// Overview returns the tenant-level summary counts and revenue
func (r *GormMetricsRepository) Overview(ctx context.Context, tenantID uuid.UUID) (*report.Overview, error) {
	var overview report.Overview

	if err := r.db.WithContext(ctx).Model(&models.CustomerModel{}).
		Where("tenant_id = ?", tenantID).
		Count(&overview.TotalCustomers).Error; err != nil {
		return nil, err
	}

	if err := r.db.WithContext(ctx).Model(&models.ProductModel{}).
		Where("tenant_id = ? AND archived_at IS NULL", tenantID).
		Count(&overview.TotalProducts).Error; err != nil {
		return nil, err
	}

	// Revenue counts only orders the platform reports as paid; the order
	// count covers everything that is not canceled.
	type orderAgg struct {
		OrderCount   int64
		RevenueCents int64
	}
	var agg orderAgg
	if err := r.db.WithContext(ctx).Model(&models.OrderModel{}).
		Select(`
			COUNT(*) as order_count,
			COALESCE(SUM(CASE WHEN financial_status IN ('paid', 'partially_paid') THEN total_cents ELSE 0 END), 0) as revenue_cents
		`).
		Where("tenant_id = ? AND canceled_at IS NULL", tenantID).
		Scan(&agg).Error; err != nil {
		return nil, err
	}
	overview.TotalOrders = agg.OrderCount
	overview.TotalRevenueCents = agg.RevenueCents

	return &overview, nil
}

// OrdersByDate returns daily order counts and revenue within the range
func (r *GormMetricsRepository) OrdersByDate(ctx context.Context, tenantID uuid.UUID, dateRange report.DateRange) ([]report.OrdersByDatePoint, error) {
	query := r.db.WithContext(ctx).Model(&models.OrderModel{}).
		Select(`
			date(created_at) as date,
			COUNT(*) as order_count,
			COALESCE(SUM(CASE WHEN financial_status IN ('paid', 'partially_paid') THEN total_cents ELSE 0 END), 0) as revenue_cents
		`).
		Where("tenant_id = ? AND canceled_at IS NULL", tenantID)

	if !dateRange.Start.IsZero() {
		query = query.Where("created_at >= ?", dateRange.Start)
	}
	if !dateRange.End.IsZero() {
		query = query.Where("created_at < ?", dateRange.End)
	}

	var points []report.OrdersByDatePoint
	if err := query.
		Group("date(created_at)").
		Order("date(created_at) ASC").
		Scan(&points).Error; err != nil {
		return nil, err
	}
	return points, nil
}

// TopCustomers returns customers ordered by total spend, highest first
func (r *GormMetricsRepository) TopCustomers(ctx context.Context, tenantID uuid.UUID, limit int) ([]report.TopCustomer, error) {
	if limit <= 0 {
		limit = 5
	}

	var customers []report.TopCustomer
	if err := r.db.WithContext(ctx).Table("customers c").
		Select(`
			c.id as customer_id,
			c.external_id,
			c.email,
			c.first_name,
			c.last_name,
			c.total_spent_cents,
			COUNT(o.id) as order_count
		`).
		Joins("LEFT JOIN orders o ON o.customer_id = c.id AND o.canceled_at IS NULL").
		Where("c.tenant_id = ?", tenantID).
		Group("c.id, c.external_id, c.email, c.first_name, c.last_name, c.total_spent_cents").
		Order("c.total_spent_cents DESC").
		Limit(limit).
		Scan(&customers).Error; err != nil {
		return nil, err
	}
	return customers, nil
}

// TopProducts returns products ordered by units sold, highest first
func (r *GormMetricsRepository) TopProducts(ctx context.Context, tenantID uuid.UUID, limit int) ([]report.TopProduct, error) {
	if limit <= 0 {
		limit = 5
	}

	var products []report.TopProduct
	if err := r.db.WithContext(ctx).Table("products p").
		Select(`
			p.id as product_id,
			p.external_id,
			p.title,
			COALESCE(SUM(li.quantity), 0) as units_sold,
			COALESCE(SUM(li.total_cents), 0) as revenue_cents
		`).
		Joins("JOIN order_line_items li ON li.product_id = p.id").
		Where("p.tenant_id = ?", tenantID).
		Group("p.id, p.external_id, p.title").
		Order("units_sold DESC").
		Limit(limit).
		Scan(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// Ensure GormMetricsRepository implements report.MetricsRepository
var _ report.MetricsRepository = (*GormMetricsRepository)(nil)
