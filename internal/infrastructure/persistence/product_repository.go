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

// GormProductRepository implements commerce.ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// Upsert atomically creates or overwrites the product row matching
// (tenant_id, external_id). archived_at is part of the update set so an
// un-archive on the platform clears the local soft-delete marker.
func (r *GormProductRepository) Upsert(ctx context.Context, p *commerce.Product) error {
	model := models.ProductModelFromDomain(p)
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "tenant_id"}, {Name: "external_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"title", "vendor", "product_type", "status", "archived_at", "updated_at",
			}),
		}).
		Create(model).Error; err != nil {
		return err
	}

	var stored models.ProductModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND external_id = ?", p.TenantID, p.ExternalID).
		First(&stored).Error; err != nil {
		return err
	}
	p.ID = stored.ID
	p.CreatedAt = stored.CreatedAt
	return nil
}

// FindByExternalID finds a product by its natural key
func (r *GormProductRepository) FindByExternalID(ctx context.Context, tenantID uuid.UUID, externalID int64) (*commerce.Product, error) {
	var model models.ProductModel
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

// Ensure GormProductRepository implements commerce.ProductRepository
var _ commerce.ProductRepository = (*GormProductRepository)(nil)
