package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopsync/backend/internal/domain/commerce"
)

// CustomerModel is the persistence model for the Customer domain entity.
// (tenant_id, external_id) is the natural key all upserts match on.
type CustomerModel struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key"`
	TenantID        uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_customer_tenant_external,priority:1"`
	ExternalID      int64     `gorm:"not null;uniqueIndex:idx_customer_tenant_external,priority:2"`
	Email           string    `gorm:"type:varchar(255);index"`
	FirstName       string    `gorm:"type:varchar(100)"`
	LastName        string    `gorm:"type:varchar(100)"`
	TotalSpentCents int64     `gorm:"not null;default:0"`
	Currency        string    `gorm:"type:varchar(10);not null;default:'USD'"`
	CreatedAt       time.Time `gorm:"not null"`
	UpdatedAt       time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (CustomerModel) TableName() string {
	return "customers"
}

// ToDomain converts the persistence model to a domain Customer entity.
func (m *CustomerModel) ToDomain() *commerce.Customer {
	return &commerce.Customer{
		ID:              m.ID,
		TenantID:        m.TenantID,
		ExternalID:      m.ExternalID,
		Email:           m.Email,
		FirstName:       m.FirstName,
		LastName:        m.LastName,
		TotalSpentCents: m.TotalSpentCents,
		Currency:        m.Currency,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

// FromDomain populates the persistence model from a domain Customer entity.
func (m *CustomerModel) FromDomain(c *commerce.Customer) {
	m.ID = c.ID
	m.TenantID = c.TenantID
	m.ExternalID = c.ExternalID
	m.Email = c.Email
	m.FirstName = c.FirstName
	m.LastName = c.LastName
	m.TotalSpentCents = c.TotalSpentCents
	m.Currency = c.Currency
	m.CreatedAt = c.CreatedAt
	m.UpdatedAt = c.UpdatedAt
}

// CustomerModelFromDomain creates a new persistence model from a domain Customer entity.
func CustomerModelFromDomain(c *commerce.Customer) *CustomerModel {
	m := &CustomerModel{}
	m.FromDomain(c)
	return m
}

// ProductModel is the persistence model for the Product domain entity.
type ProductModel struct {
	ID          uuid.UUID  `gorm:"type:uuid;primary_key"`
	TenantID    uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_product_tenant_external,priority:1"`
	ExternalID  int64      `gorm:"not null;uniqueIndex:idx_product_tenant_external,priority:2"`
	Title       string     `gorm:"type:varchar(500);not null"`
	Vendor      string     `gorm:"type:varchar(255)"`
	ProductType string     `gorm:"type:varchar(255)"`
	Status      string     `gorm:"type:varchar(20);not null"`
	ArchivedAt  *time.Time `gorm:"index"`
	CreatedAt   time.Time  `gorm:"not null"`
	UpdatedAt   time.Time  `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string {
	return "products"
}

// ToDomain converts the persistence model to a domain Product entity.
func (m *ProductModel) ToDomain() *commerce.Product {
	return &commerce.Product{
		ID:          m.ID,
		TenantID:    m.TenantID,
		ExternalID:  m.ExternalID,
		Title:       m.Title,
		Vendor:      m.Vendor,
		ProductType: m.ProductType,
		Status:      m.Status,
		ArchivedAt:  m.ArchivedAt,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// FromDomain populates the persistence model from a domain Product entity.
func (m *ProductModel) FromDomain(p *commerce.Product) {
	m.ID = p.ID
	m.TenantID = p.TenantID
	m.ExternalID = p.ExternalID
	m.Title = p.Title
	m.Vendor = p.Vendor
	m.ProductType = p.ProductType
	m.Status = p.Status
	m.ArchivedAt = p.ArchivedAt
	m.CreatedAt = p.CreatedAt
	m.UpdatedAt = p.UpdatedAt
}

// ProductModelFromDomain creates a new persistence model from a domain Product entity.
func ProductModelFromDomain(p *commerce.Product) *ProductModel {
	m := &ProductModel{}
	m.FromDomain(p)
	return m
}

// OrderModel is the persistence model for the Order domain entity.
// CustomerID is nullable so orders can land before their customer does.
type OrderModel struct {
	ID                uuid.UUID  `gorm:"type:uuid;primary_key"`
	TenantID          uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_order_tenant_external,priority:1"`
	ExternalID        int64      `gorm:"not null;uniqueIndex:idx_order_tenant_external,priority:2"`
	CustomerID        *uuid.UUID `gorm:"type:uuid;index"`
	Name              string     `gorm:"type:varchar(50)"`
	Email             string     `gorm:"type:varchar(255)"`
	Status            string     `gorm:"type:varchar(20);not null"`
	FinancialStatus   string     `gorm:"type:varchar(30)"`
	FulfillmentStatus string     `gorm:"type:varchar(30)"`
	SubtotalCents     int64      `gorm:"not null;default:0"`
	TotalCents        int64      `gorm:"not null;default:0"`
	TaxCents          int64      `gorm:"not null;default:0"`
	Currency          string     `gorm:"type:varchar(10);not null;default:'USD'"`
	ProcessedAt       *time.Time `gorm:"index"`
	CanceledAt        *time.Time
	CreatedAt         time.Time `gorm:"not null;index"`
	UpdatedAt         time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (OrderModel) TableName() string {
	return "orders"
}

// ToDomain converts the persistence model to a domain Order entity.
func (m *OrderModel) ToDomain() *commerce.Order {
	return &commerce.Order{
		ID:                m.ID,
		TenantID:          m.TenantID,
		ExternalID:        m.ExternalID,
		CustomerID:        m.CustomerID,
		Name:              m.Name,
		Email:             m.Email,
		Status:            m.Status,
		FinancialStatus:   m.FinancialStatus,
		FulfillmentStatus: m.FulfillmentStatus,
		SubtotalCents:     m.SubtotalCents,
		TotalCents:        m.TotalCents,
		TaxCents:          m.TaxCents,
		Currency:          m.Currency,
		ProcessedAt:       m.ProcessedAt,
		CanceledAt:        m.CanceledAt,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}

// FromDomain populates the persistence model from a domain Order entity.
func (m *OrderModel) FromDomain(o *commerce.Order) {
	m.ID = o.ID
	m.TenantID = o.TenantID
	m.ExternalID = o.ExternalID
	m.CustomerID = o.CustomerID
	m.Name = o.Name
	m.Email = o.Email
	m.Status = o.Status
	m.FinancialStatus = o.FinancialStatus
	m.FulfillmentStatus = o.FulfillmentStatus
	m.SubtotalCents = o.SubtotalCents
	m.TotalCents = o.TotalCents
	m.TaxCents = o.TaxCents
	m.Currency = o.Currency
	m.ProcessedAt = o.ProcessedAt
	m.CanceledAt = o.CanceledAt
	m.CreatedAt = o.CreatedAt
	m.UpdatedAt = o.UpdatedAt
}

// OrderModelFromDomain creates a new persistence model from a domain Order entity.
func OrderModelFromDomain(o *commerce.Order) *OrderModel {
	m := &OrderModel{}
	m.FromDomain(o)
	return m
}

// OrderLineItemModel is the persistence model for the OrderLineItem domain entity.
type OrderLineItemModel struct {
	ID                uuid.UUID  `gorm:"type:uuid;primary_key"`
	TenantID          uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_line_item_tenant_order_external,priority:1"`
	OrderID           uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_line_item_tenant_order_external,priority:2"`
	ExternalID        int64      `gorm:"not null;uniqueIndex:idx_line_item_tenant_order_external,priority:3"`
	ProductID         *uuid.UUID `gorm:"type:uuid;index"`
	VariantExternalID *int64
	Title             string    `gorm:"type:varchar(500)"`
	SKU               string    `gorm:"type:varchar(100)"`
	Quantity          int       `gorm:"not null;default:0"`
	UnitPriceCents    int64     `gorm:"not null;default:0"`
	TotalCents        int64     `gorm:"not null;default:0"`
	CreatedAt         time.Time `gorm:"not null"`
	UpdatedAt         time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (OrderLineItemModel) TableName() string {
	return "order_line_items"
}

// ToDomain converts the persistence model to a domain OrderLineItem entity.
func (m *OrderLineItemModel) ToDomain() *commerce.OrderLineItem {
	return &commerce.OrderLineItem{
		ID:                m.ID,
		TenantID:          m.TenantID,
		OrderID:           m.OrderID,
		ExternalID:        m.ExternalID,
		ProductID:         m.ProductID,
		VariantExternalID: m.VariantExternalID,
		Title:             m.Title,
		SKU:               m.SKU,
		Quantity:          m.Quantity,
		UnitPriceCents:    m.UnitPriceCents,
		TotalCents:        m.TotalCents,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}

// FromDomain populates the persistence model from a domain OrderLineItem entity.
func (m *OrderLineItemModel) FromDomain(li *commerce.OrderLineItem) {
	m.ID = li.ID
	m.TenantID = li.TenantID
	m.OrderID = li.OrderID
	m.ExternalID = li.ExternalID
	m.ProductID = li.ProductID
	m.VariantExternalID = li.VariantExternalID
	m.Title = li.Title
	m.SKU = li.SKU
	m.Quantity = li.Quantity
	m.UnitPriceCents = li.UnitPriceCents
	m.TotalCents = li.TotalCents
	m.CreatedAt = li.CreatedAt
	m.UpdatedAt = li.UpdatedAt
}

// OrderLineItemModelFromDomain creates a new persistence model from a domain OrderLineItem entity.
func OrderLineItemModelFromDomain(li *commerce.OrderLineItem) *OrderLineItemModel {
	m := &OrderLineItemModel{}
	m.FromDomain(li)
	return m
}
