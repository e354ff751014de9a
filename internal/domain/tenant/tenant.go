package tenant

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Status represents the lifecycle status of a tenant
type Status string

const (
	// StatusActive indicates the tenant is installed and syncing
	StatusActive Status = "active"
	// StatusSuspended indicates the tenant is temporarily disabled
	StatusSuspended Status = "suspended"
)

// IsValid returns true if the status is valid
func (s Status) IsValid() bool {
	switch s {
	case StatusActive, StatusSuspended:
		return true
	default:
		return false
	}
}

// Tenant is one external store account. The store domain is the natural key;
// every other entity in the system is scoped to a tenant ID.
type Tenant struct {
	ID          uuid.UUID
	StoreDomain string
	Name        string
	Status      Status
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewTenant creates a tenant for a store domain
func NewTenant(storeDomain, name string) *Tenant {
	now := time.Now()
	return &Tenant{
		ID:          uuid.New(),
		StoreDomain: storeDomain,
		Name:        name,
		Status:      StatusActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Credential holds the single active platform access token for a tenant.
// The token is acquired during the OAuth install flow and consumed by the
// paginated fetcher and webhook registration.
type Credential struct {
	ID          uuid.UUID
	TenantID    uuid.UUID
	AccessToken string
	Scopes      string
	APIVersion  string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewCredential creates a credential for a tenant
func NewCredential(tenantID uuid.UUID, accessToken, scopes, apiVersion string) *Credential {
	now := time.Now()
	return &Credential{
		ID:          uuid.New(),
		TenantID:    tenantID,
		AccessToken: accessToken,
		Scopes:      scopes,
		APIVersion:  apiVersion,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Repository defines the persistence port for tenants
type Repository interface {
	// Save creates or updates a tenant
	Save(ctx context.Context, t *Tenant) error

	// FindByID finds a tenant by its internal ID
	FindByID(ctx context.Context, id uuid.UUID) (*Tenant, error)

	// FindByStoreDomain finds a tenant by its store domain natural key
	FindByStoreDomain(ctx context.Context, storeDomain string) (*Tenant, error)
}

// CredentialRepository defines the persistence port for credentials
type CredentialRepository interface {
	// Upsert creates or replaces the credential for a tenant
	Upsert(ctx context.Context, c *Credential) error

	// FindByTenant returns the active credential for a tenant
	FindByTenant(ctx context.Context, tenantID uuid.UUID) (*Credential, error)
}
