package commerce

import "time"

// Canonical records are the single internal shape for entities arriving from
// the platform, regardless of transport. The GraphQL bulk fetch and the REST
// webhook bodies are mapped into these records by their respective adapters;
// the reconciler only ever sees canonical records.
//
// Monetary amounts stay as the platform's decimal strings here and are
// converted to minor units exactly once, inside the reconciler.

// CustomerRecord is the canonical representation of a platform customer.
type CustomerRecord struct {
	ExternalID int64
	Email      string
	FirstName  string
	LastName   string
	TotalSpent string
	Currency   string
}

// ProductRecord is the canonical representation of a platform product.
type ProductRecord struct {
	ExternalID  int64
	Title       string
	Vendor      string
	ProductType string
	Status      string
}

// LineItemRecord is the canonical representation of one order line item.
// ProductExternalID is nil when the platform no longer knows the product
// (deleted products remain on historical orders).
type LineItemRecord struct {
	ExternalID        int64
	ProductExternalID *int64
	VariantExternalID *int64
	Title             string
	SKU               string
	Quantity          int
	UnitPrice         string
}

// OrderRecord is the canonical representation of a platform order, including
// its line items and optionally an embedded customer. The embedded customer
// is upserted before the order so the order's customer reference can resolve.
type OrderRecord struct {
	ExternalID        int64
	Name              string
	Email             string
	Customer          *CustomerRecord
	Status            string
	FinancialStatus   string
	FulfillmentStatus string
	SubtotalPrice     string
	TotalPrice        string
	TotalTax          string
	Currency          string
	ProcessedAt       *time.Time
	CancelledAt       *time.Time
	LineItems         []LineItemRecord
}
