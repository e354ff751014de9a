package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopsync/backend/internal/domain/tenant"
)

// TenantModel is the persistence model for the Tenant domain entity.
type TenantModel struct {
	ID          uuid.UUID     `gorm:"type:uuid;primary_key"`
	StoreDomain string        `gorm:"type:varchar(255);not null;uniqueIndex:idx_tenant_store_domain"`
	Name        string        `gorm:"type:varchar(255)"`
	Status      tenant.Status `gorm:"type:varchar(20);not null;default:'active'"`
	CreatedAt   time.Time     `gorm:"not null"`
	UpdatedAt   time.Time     `gorm:"not null"`
}

// TableName returns the table name for GORM
func (TenantModel) TableName() string {
	return "tenants"
}

// ToDomain converts the persistence model to a domain Tenant entity.
func (m *TenantModel) ToDomain() *tenant.Tenant {
	return &tenant.Tenant{
		ID:          m.ID,
		StoreDomain: m.StoreDomain,
		Name:        m.Name,
		Status:      m.Status,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// FromDomain populates the persistence model from a domain Tenant entity.
func (m *TenantModel) FromDomain(t *tenant.Tenant) {
	m.ID = t.ID
	m.StoreDomain = t.StoreDomain
	m.Name = t.Name
	m.Status = t.Status
	m.CreatedAt = t.CreatedAt
	m.UpdatedAt = t.UpdatedAt
}

// TenantModelFromDomain creates a new persistence model from a domain Tenant entity.
func TenantModelFromDomain(t *tenant.Tenant) *TenantModel {
	m := &TenantModel{}
	m.FromDomain(t)
	return m
}

// CredentialModel is the persistence model for the Credential domain entity.
// One row per tenant; re-installs replace the token in place.
type CredentialModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key"`
	TenantID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_credential_tenant"`
	AccessToken string    `gorm:"type:varchar(255);not null"`
	Scopes      string    `gorm:"type:varchar(500)"`
	APIVersion  string    `gorm:"type:varchar(20)"`
	CreatedAt   time.Time `gorm:"not null"`
	UpdatedAt   time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (CredentialModel) TableName() string {
	return "credentials"
}

// ToDomain converts the persistence model to a domain Credential entity.
func (m *CredentialModel) ToDomain() *tenant.Credential {
	return &tenant.Credential{
		ID:          m.ID,
		TenantID:    m.TenantID,
		AccessToken: m.AccessToken,
		Scopes:      m.Scopes,
		APIVersion:  m.APIVersion,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// FromDomain populates the persistence model from a domain Credential entity.
func (m *CredentialModel) FromDomain(c *tenant.Credential) {
	m.ID = c.ID
	m.TenantID = c.TenantID
	m.AccessToken = c.AccessToken
	m.Scopes = c.Scopes
	m.APIVersion = c.APIVersion
	m.CreatedAt = c.CreatedAt
	m.UpdatedAt = c.UpdatedAt
}

// CredentialModelFromDomain creates a new persistence model from a domain Credential entity.
func CredentialModelFromDomain(c *tenant.Credential) *CredentialModel {
	m := &CredentialModel{}
	m.FromDomain(c)
	return m
}
