package commerce

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Customer is a locally stored copy of a platform customer.
// (TenantID, ExternalID) is the stable identity used for upsert matching.
// TotalSpentCents is recomputed by the platform and taken as-is; it is never
// derived locally from orders during ingestion.
type Customer struct {
	ID              uuid.UUID
	TenantID        uuid.UUID
	ExternalID      int64
	Email           string
	FirstName       string
	LastName        string
	TotalSpentCents int64
	Currency        string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// ApplyRecord overwrites the mutable fields from a canonical record.
// This is a last-writer-wins merge, not a field-level diff.
func (c *Customer) ApplyRecord(rec CustomerRecord) {
	c.Email = rec.Email
	c.FirstName = rec.FirstName
	c.LastName = rec.LastName
	c.TotalSpentCents = ParseMinorUnits(rec.TotalSpent)
	c.Currency = currencyOrDefault(rec.Currency)
	c.UpdatedAt = time.Now()
}

// NewCustomerFromRecord creates a customer from a canonical record
func NewCustomerFromRecord(tenantID uuid.UUID, rec CustomerRecord) *Customer {
	c := &Customer{
		ID:         uuid.New(),
		TenantID:   tenantID,
		ExternalID: rec.ExternalID,
		CreatedAt:  time.Now(),
	}
	c.ApplyRecord(rec)
	return c
}

// DefaultCurrency is assumed when the platform omits a currency code
const DefaultCurrency = "USD"

func currencyOrDefault(code string) string {
	if code == "" {
		return DefaultCurrency
	}
	return code
}

// CustomerRepository defines the persistence port for customers
type CustomerRepository interface {
	// Upsert atomically creates or overwrites the customer row matching
	// (TenantID, ExternalID) and populates c.ID with the stored internal ID.
	Upsert(ctx context.Context, c *Customer) error

	// FindByExternalID finds a customer by its natural key
	FindByExternalID(ctx context.Context, tenantID uuid.UUID, externalID int64) (*Customer, error)
}
