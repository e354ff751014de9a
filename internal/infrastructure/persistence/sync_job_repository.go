package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopsync/backend/internal/domain/shared"
	"github.com/shopsync/backend/internal/domain/sync"
	"github.com/shopsync/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormSyncJobRepository implements sync.JobRepository using GORM
type GormSyncJobRepository struct {
	db *gorm.DB
}

// NewGormSyncJobRepository creates a new GormSyncJobRepository
func NewGormSyncJobRepository(db *gorm.DB) *GormSyncJobRepository {
	return &GormSyncJobRepository{db: db}
}

// Save creates or updates a job
func (r *GormSyncJobRepository) Save(ctx context.Context, j *sync.Job) error {
	model := models.SyncJobModelFromDomain(j)
	return r.db.WithContext(ctx).Save(model).Error
}

// FindByID finds a job by ID
func (r *GormSyncJobRepository) FindByID(ctx context.Context, id uuid.UUID) (*sync.Job, error) {
	var model models.SyncJobModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByTenant lists jobs for a tenant, newest first
func (r *GormSyncJobRepository) FindByTenant(ctx context.Context, tenantID uuid.UUID, limit int) ([]sync.Job, error) {
	var jobModels []models.SyncJobModel
	query := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&jobModels).Error; err != nil {
		return nil, err
	}

	jobs := make([]sync.Job, len(jobModels))
	for i, model := range jobModels {
		jobs[i] = *model.ToDomain()
	}
	return jobs, nil
}

// Ensure GormSyncJobRepository implements sync.JobRepository
var _ sync.JobRepository = (*GormSyncJobRepository)(nil)
