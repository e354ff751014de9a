package commerce

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Order is a locally stored copy of a platform order.
// CustomerID is nullable: an order may arrive before its customer record, in
// which case the reference stays NULL rather than aborting the upsert.
type Order struct {
	ID                uuid.UUID
	TenantID          uuid.UUID
	ExternalID        int64
	CustomerID        *uuid.UUID
	Name              string
	Email             string
	Status            string
	FinancialStatus   string
	FulfillmentStatus string
	SubtotalCents     int64
	TotalCents        int64
	TaxCents          int64
	Currency          string
	ProcessedAt       *time.Time
	CanceledAt        *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// ApplyRecord overwrites the mutable fields from a canonical record.
// customerID is the already-resolved internal customer reference (may be nil).
func (o *Order) ApplyRecord(rec OrderRecord, customerID *uuid.UUID) {
	o.CustomerID = customerID
	o.Name = rec.Name
	o.Email = rec.Email
	o.Status = rec.Status
	o.FinancialStatus = rec.FinancialStatus
	o.FulfillmentStatus = rec.FulfillmentStatus
	o.SubtotalCents = ParseMinorUnits(rec.SubtotalPrice)
	o.TotalCents = ParseMinorUnits(rec.TotalPrice)
	o.TaxCents = ParseMinorUnits(rec.TotalTax)
	o.Currency = currencyOrDefault(rec.Currency)
	o.ProcessedAt = rec.ProcessedAt
	o.CanceledAt = rec.CancelledAt
	o.UpdatedAt = time.Now()
}

// NewOrderFromRecord creates an order from a canonical record
func NewOrderFromRecord(tenantID uuid.UUID, rec OrderRecord, customerID *uuid.UUID) *Order {
	o := &Order{
		ID:         uuid.New(),
		TenantID:   tenantID,
		ExternalID: rec.ExternalID,
		CreatedAt:  time.Now(),
	}
	o.ApplyRecord(rec, customerID)
	return o
}

// OrderLineItem is one line of an order. The owning order must exist before
// the line item is persisted; the product reference is optional and stays
// NULL when the product is unknown locally.
type OrderLineItem struct {
	ID                uuid.UUID
	TenantID          uuid.UUID
	OrderID           uuid.UUID
	ExternalID        int64
	ProductID         *uuid.UUID
	VariantExternalID *int64
	Title             string
	SKU               string
	Quantity          int
	UnitPriceCents    int64
	TotalCents        int64
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// ApplyRecord overwrites the mutable fields from a canonical line item record.
// productID is the already-resolved internal product reference (may be nil).
func (li *OrderLineItem) ApplyRecord(rec LineItemRecord, productID *uuid.UUID) {
	unit := ParseMinorUnits(rec.UnitPrice)
	li.ProductID = productID
	li.VariantExternalID = rec.VariantExternalID
	li.Title = rec.Title
	li.SKU = rec.SKU
	li.Quantity = rec.Quantity
	li.UnitPriceCents = unit
	li.TotalCents = unit * int64(rec.Quantity)
	li.UpdatedAt = time.Now()
}

// NewLineItemFromRecord creates a line item from a canonical record
func NewLineItemFromRecord(tenantID, orderID uuid.UUID, rec LineItemRecord, productID *uuid.UUID) *OrderLineItem {
	li := &OrderLineItem{
		ID:         uuid.New(),
		TenantID:   tenantID,
		OrderID:    orderID,
		ExternalID: rec.ExternalID,
		CreatedAt:  time.Now(),
	}
	li.ApplyRecord(rec, productID)
	return li
}

// OrderRepository defines the persistence port for orders and line items
type OrderRepository interface {
	// Upsert atomically creates or overwrites the order row matching
	// (TenantID, ExternalID) and populates o.ID with the stored internal ID.
	Upsert(ctx context.Context, o *Order) error

	// UpsertLineItem atomically creates or overwrites the line item row
	// matching (TenantID, OrderID, ExternalID).
	UpsertLineItem(ctx context.Context, li *OrderLineItem) error

	// FindByExternalID finds an order by its natural key
	FindByExternalID(ctx context.Context, tenantID uuid.UUID, externalID int64) (*Order, error)

	// FindLineItems returns the line items of an order
	FindLineItems(ctx context.Context, tenantID, orderID uuid.UUID) ([]OrderLineItem, error)
}
