package commerce

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ProductStatusArchived is the platform status that soft-deletes a product
const ProductStatusArchived = "archived"

// Product is a locally stored copy of a platform product.
// ArchivedAt is a soft-delete timestamp driven by the platform status:
// set when the status says archived, cleared by any other status.
type Product struct {
	ID          uuid.UUID
	TenantID    uuid.UUID
	ExternalID  int64
	Title       string
	Vendor      string
	ProductType string
	Status      string
	ArchivedAt  *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ApplyRecord overwrites the mutable fields from a canonical record
func (p *Product) ApplyRecord(rec ProductRecord) {
	now := time.Now()
	p.Title = rec.Title
	p.Vendor = rec.Vendor
	p.ProductType = rec.ProductType
	p.Status = rec.Status
	if rec.Status == ProductStatusArchived {
		p.ArchivedAt = &now
	} else {
		p.ArchivedAt = nil
	}
	p.UpdatedAt = now
}

// NewProductFromRecord creates a product from a canonical record
func NewProductFromRecord(tenantID uuid.UUID, rec ProductRecord) *Product {
	p := &Product{
		ID:         uuid.New(),
		TenantID:   tenantID,
		ExternalID: rec.ExternalID,
		CreatedAt:  time.Now(),
	}
	p.ApplyRecord(rec)
	return p
}

// ProductRepository defines the persistence port for products
type ProductRepository interface {
	// Upsert atomically creates or overwrites the product row matching
	// (TenantID, ExternalID) and populates p.ID with the stored internal ID.
	Upsert(ctx context.Context, p *Product) error

	// FindByExternalID finds a product by its natural key
	FindByExternalID(ctx context.Context, tenantID uuid.UUID, externalID int64) (*Product, error)
}
