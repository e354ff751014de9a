package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopsync/backend/internal/domain/shared"
	"github.com/shopsync/backend/internal/domain/sync"
	"github.com/shopsync/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormEventRepository implements sync.EventRepository using GORM
type GormEventRepository struct {
	db *gorm.DB
}

// NewGormEventRepository creates a new GormEventRepository
func NewGormEventRepository(db *gorm.DB) *GormEventRepository {
	return &GormEventRepository{db: db}
}

// Insert persists a new event. The unique index on (tenant_id, webhook_id)
// plus ON CONFLICT DO NOTHING means a duplicate delivery reports
// inserted=false without an error, even when two copies arrive concurrently.
func (r *GormEventRepository) Insert(ctx context.Context, e *sync.Event) (bool, error) {
	model := models.WebhookEventModelFromDomain(e)
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "tenant_id"}, {Name: "webhook_id"}},
			DoNothing: true,
		}).
		Create(model)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// FindByID finds an event by ID
func (r *GormEventRepository) FindByID(ctx context.Context, id uuid.UUID) (*sync.Event, error) {
	var model models.WebhookEventModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save updates an existing event
func (r *GormEventRepository) Save(ctx context.Context, e *sync.Event) error {
	model := models.WebhookEventModelFromDomain(e)
	return r.db.WithContext(ctx).Save(model).Error
}

// FindByTenant lists events for a tenant, newest first
func (r *GormEventRepository) FindByTenant(ctx context.Context, tenantID uuid.UUID, limit int) ([]sync.Event, error) {
	var eventModels []models.WebhookEventModel
	query := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&eventModels).Error; err != nil {
		return nil, err
	}

	events := make([]sync.Event, len(eventModels))
	for i, model := range eventModels {
		events[i] = *model.ToDomain()
	}
	return events, nil
}

// Ensure GormEventRepository implements sync.EventRepository
var _ sync.EventRepository = (*GormEventRepository)(nil)
