package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopsync/backend/internal/domain/shared"
	"github.com/shopsync/backend/internal/domain/tenant"
	"github.com/shopsync/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormTenantRepository implements tenant.Repository using GORM
type GormTenantRepository struct {
	db *gorm.DB
}

// NewGormTenantRepository creates a new GormTenantRepository
func NewGormTenantRepository(db *gorm.DB) *GormTenantRepository {
	return &GormTenantRepository{db: db}
}

// Save creates or updates a tenant
func (r *GormTenantRepository) Save(ctx context.Context, t *tenant.Tenant) error {
	model := models.TenantModelFromDomain(t)
	return r.db.WithContext(ctx).Save(model).Error
}

// FindByID finds a tenant by its internal ID
func (r *GormTenantRepository) FindByID(ctx context.Context, id uuid.UUID) (*tenant.Tenant, error) {
	var model models.TenantModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByStoreDomain finds a tenant by its store domain natural key
func (r *GormTenantRepository) FindByStoreDomain(ctx context.Context, storeDomain string) (*tenant.Tenant, error) {
	var model models.TenantModel
	if err := r.db.WithContext(ctx).
		Where("store_domain = ?", storeDomain).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Ensure GormTenantRepository implements tenant.Repository
var _ tenant.Repository = (*GormTenantRepository)(nil)

// GormCredentialRepository implements tenant.CredentialRepository using GORM
type GormCredentialRepository struct {
	db *gorm.DB
}

// NewGormCredentialRepository creates a new GormCredentialRepository
func NewGormCredentialRepository(db *gorm.DB) *GormCredentialRepository {
	return &GormCredentialRepository{db: db}
}

// Upsert creates or replaces the credential for a tenant. Each tenant keeps
// exactly one credential row; a re-install overwrites the token in place.
func (r *GormCredentialRepository) Upsert(ctx context.Context, c *tenant.Credential) error {
	model := models.CredentialModelFromDomain(c)
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "tenant_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"access_token", "scopes", "api_version", "updated_at",
			}),
		}).
		Create(model).Error; err != nil {
		return err
	}

	var stored models.CredentialModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ?", c.TenantID).
		First(&stored).Error; err != nil {
		return err
	}
	c.ID = stored.ID
	return nil
}

// FindByTenant returns the active credential for a tenant
func (r *GormCredentialRepository) FindByTenant(ctx context.Context, tenantID uuid.UUID) (*tenant.Credential, error) {
	var model models.CredentialModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Ensure GormCredentialRepository implements tenant.CredentialRepository
var _ tenant.CredentialRepository = (*GormCredentialRepository)(nil)
