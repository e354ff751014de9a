package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopsync/backend/internal/domain/commerce"
	"github.com/shopsync/backend/internal/domain/shared"
	"github.com/shopsync/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements commerce.OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Upsert atomically creates or overwrites the order row matching
// (tenant_id, external_id) and loads the stored internal ID back into o.ID.
func (r *GormOrderRepository) Upsert(ctx context.Context, o *commerce.Order) error {
	model := models.OrderModelFromDomain(o)
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "tenant_id"}, {Name: "external_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"customer_id", "name", "email", "status", "financial_status",
				"fulfillment_status", "subtotal_cents", "total_cents", "tax_cents",
				"currency", "processed_at", "canceled_at", "updated_at",
			}),
		}).
		Create(model).Error; err != nil {
		return err
	}

	var stored models.OrderModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND external_id = ?", o.TenantID, o.ExternalID).
		First(&stored).Error; err != nil {
		return err
	}
	o.ID = stored.ID
	o.CreatedAt = stored.CreatedAt
	return nil
}

// UpsertLineItem atomically creates or overwrites the line item row matching
// (tenant_id, order_id, external_id). The owning order row must already
// exist; callers upsert the order first.
func (r *GormOrderRepository) UpsertLineItem(ctx context.Context, li *commerce.OrderLineItem) error {
	model := models.OrderLineItemModelFromDomain(li)
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "tenant_id"}, {Name: "order_id"}, {Name: "external_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"product_id", "variant_external_id", "title", "sku", "quantity",
				"unit_price_cents", "total_cents", "updated_at",
			}),
		}).
		Create(model).Error; err != nil {
		return err
	}

	var stored models.OrderLineItemModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND order_id = ? AND external_id = ?", li.TenantID, li.OrderID, li.ExternalID).
		First(&stored).Error; err != nil {
		return err
	}
	li.ID = stored.ID
	li.CreatedAt = stored.CreatedAt
	return nil
}

// FindByExternalID finds an order by its natural key
func (r *GormOrderRepository) FindByExternalID(ctx context.Context, tenantID uuid.UUID, externalID int64) (*commerce.Order, error) {
	var model models.OrderModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND external_id = ?", tenantID, externalID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindLineItems returns the line items of an order
func (r *GormOrderRepository) FindLineItems(ctx context.Context, tenantID, orderID uuid.UUID) ([]commerce.OrderLineItem, error) {
	var lineItemModels []models.OrderLineItemModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND order_id = ?", tenantID, orderID).
		Order("external_id ASC").
		Find(&lineItemModels).Error; err != nil {
		return nil, err
	}

	lineItems := make([]commerce.OrderLineItem, len(lineItemModels))
	for i, model := range lineItemModels {
		lineItems[i] = *model.ToDomain()
	}
	return lineItems, nil
}

// Ensure GormOrderRepository implements commerce.OrderRepository
var _ commerce.OrderRepository = (*GormOrderRepository)(nil)
