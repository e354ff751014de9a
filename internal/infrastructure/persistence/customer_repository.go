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

// GormCustomerRepository implements commerce.CustomerRepository using GORM
type GormCustomerRepository struct {
	db *gorm.DB
}

// NewGormCustomerRepository creates a new GormCustomerRepository
func NewGormCustomerRepository(db *gorm.DB) *GormCustomerRepository {
	return &GormCustomerRepository{db: db}
}

// Upsert atomically creates or overwrites the customer row matching
// (tenant_id, external_id). The conflict target is the unique index on the
// natural key, so concurrent upserts for the same customer serialize at the
// storage layer instead of racing a read-then-write. After the write the
// stored internal ID is loaded back into c.ID.
func (r *GormCustomerRepository) Upsert(ctx context.Context, c *commerce.Customer) error {
	model := models.CustomerModelFromDomain(c)
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "tenant_id"}, {Name: "external_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"email", "first_name", "last_name", "total_spent_cents", "currency", "updated_at",
			}),
		}).
		Create(model).Error; err != nil {
		return err
	}

	var stored models.CustomerModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND external_id = ?", c.TenantID, c.ExternalID).
		First(&stored).Error; err != nil {
		return err
	}
	c.ID = stored.ID
	c.CreatedAt = stored.CreatedAt
	return nil
}

// FindByExternalID finds a customer by its natural key
func (r *GormCustomerRepository) FindByExternalID(ctx context.Context, tenantID uuid.UUID, externalID int64) (*commerce.Customer, error) {
	var model models.CustomerModel
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

// Ensure GormCustomerRepository implements commerce.CustomerRepository
var _ commerce.CustomerRepository = (*GormCustomerRepository)(nil)
