package shopify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractNumericID(t *testing.T) {
	t.Run("extracts from composite id", func(t *testing.T) {
		id, err := extractNumericID("gid://shopify/Order/123456789")
		require.NoError(t, err)
		assert.Equal(t, int64(123456789), id)
	})

	t.Run("passes plain numeric id through", func(t *testing.T) {
		id, err := extractNumericID("42")
		require.NoError(t, err)
		assert.Equal(t, int64(42), id)
	})

	t.Run("rejects non-numeric tail", func(t *testing.T) {
		_, err := extractNumericID("gid://shopify/Order/abc")
		assert.Error(t, err)
	})
}

func TestProductRecordFromNode(t *testing.T) {
	rec, err := productRecordFromNode(productNode{
		ID:          "gid://shopify/Product/2001",
		Title:       "Trail Shoe",
		Vendor:      "Acme",
		ProductType: "Footwear",
		Status:      "ARCHIVED",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2001), rec.ExternalID)
	assert.Equal(t, "archived", rec.Status)
}

func TestOrderRecordFromNode(t *testing.T) {
	node := orderNode{
		ID:                       "gid://shopify/Order/3001",
		Name:                     "#1001",
		Email:                    "jane@example.com",
		ProcessedAt:              "2025-06-01T10:00:00Z",
		DisplayFinancialStatus:   "PAID",
		DisplayFulfillmentStatus: "FULFILLED",
		SubtotalPriceSet:         moneySet{ShopMoney: money{Amount: "90.00"}},
		TotalPriceSet:            moneySet{ShopMoney: money{Amount: "99.00", CurrencyCode: "USD"}},
		TotalTaxSet:              moneySet{ShopMoney: money{Amount: "9.00"}},
		Customer: &customerNode{
			ID:          "gid://shopify/Customer/1001",
			Email:       "jane@example.com",
			FirstName:   "Jane",
			AmountSpent: &money{Amount: "199.99", CurrencyCode: "USD"},
		},
	}
	node.LineItems.Edges = []struct {
		Node lineItemNode `json:"node"`
	}{
		{Node: lineItemNode{
			ID:                   "gid://shopify/LineItem/1",
			Title:                "Trail Shoe",
			SKU:                  "SHOE-1",
			Quantity:             2,
			OriginalUnitPriceSet: moneySet{ShopMoney: money{Amount: "45.00"}},
			Product:              &idNode{ID: "gid://shopify/Product/2001"},
			Variant:              &idNode{ID: "gid://shopify/ProductVariant/5001"},
		}},
	}

	rec, err := orderRecordFromNode(node)
	require.NoError(t, err)

	assert.Equal(t, int64(3001), rec.ExternalID)
	assert.Equal(t, "paid", rec.FinancialStatus)
	assert.Equal(t, "open", rec.Status)
	assert.Equal(t, "99.00", rec.TotalPrice)
	require.NotNil(t, rec.ProcessedAt)
	assert.Nil(t, rec.CancelledAt)

	require.NotNil(t, rec.Customer)
	assert.Equal(t, int64(1001), rec.Customer.ExternalID)
	assert.Equal(t, "199.99", rec.Customer.TotalSpent)

	require.Len(t, rec.LineItems, 1)
	li := rec.LineItems[0]
	assert.Equal(t, int64(1), li.ExternalID)
	require.NotNil(t, li.ProductExternalID)
	assert.Equal(t, int64(2001), *li.ProductExternalID)
	require.NotNil(t, li.VariantExternalID)
	assert.Equal(t, int64(5001), *li.VariantExternalID)
	assert.Equal(t, "45.00", li.UnitPrice)
}

func TestOrderRecordFromNode_Cancelled(t *testing.T) {
	rec, err := orderRecordFromNode(orderNode{
		ID:          "gid://shopify/Order/3002",
		CancelledAt: "2025-06-02T12:00:00Z",
	})
	require.NoError(t, err)
	assert.Equal(t, "cancelled", rec.Status)
	assert.NotNil(t, rec.CancelledAt)
}

func TestParseCustomerWebhook(t *testing.T) {
	body := []byte(`{
		"id": 1001,
		"email": "jane@example.com",
		"first_name": "Jane",
		"last_name": "Doe",
		"total_spent": "199.99",
		"currency": "EUR"
	}`)

	rec, err := ParseCustomerWebhook(body)
	require.NoError(t, err)
	assert.Equal(t, int64(1001), rec.ExternalID)
	assert.Equal(t, "Jane", rec.FirstName)
	assert.Equal(t, "199.99", rec.TotalSpent)
	assert.Equal(t, "EUR", rec.Currency)
}

func TestParseProductWebhook(t *testing.T) {
	body := []byte(`{
		"id": 2001,
		"title": "Trail Shoe",
		"vendor": "Acme",
		"product_type": "Footwear",
		"status": "archived"
	}`)

	rec, err := ParseProductWebhook(body)
	require.NoError(t, err)
	assert.Equal(t, int64(2001), rec.ExternalID)
	assert.Equal(t, "archived", rec.Status)
}

func TestParseOrderWebhook(t *testing.T) {
	body := []byte(`{
		"id": 3001,
		"name": "#1001",
		"email": "jane@example.com",
		"financial_status": "paid",
		"subtotal_price": "90.00",
		"total_price": "99.00",
		"total_tax": "9.00",
		"currency": "USD",
		"processed_at": "2025-06-01T10:00:00Z",
		"customer": {"id": 1001, "email": "jane@example.com", "first_name": "Jane"},
		"line_items": [
			{"id": 1, "title": "Trail Shoe", "sku": "SHOE-1", "quantity": 2, "price": "45.00", "product_id": 2001, "variant_id": 5001}
		]
	}`)

	rec, err := ParseOrderWebhook(body)
	require.NoError(t, err)
	assert.Equal(t, int64(3001), rec.ExternalID)
	assert.Equal(t, "open", rec.Status)
	assert.Equal(t, "paid", rec.FinancialStatus)
	require.NotNil(t, rec.Customer)
	assert.Equal(t, int64(1001), rec.Customer.ExternalID)
	require.Len(t, rec.LineItems, 1)
	require.NotNil(t, rec.LineItems[0].ProductExternalID)
	assert.Equal(t, int64(2001), *rec.LineItems[0].ProductExternalID)

	t.Run("rejects malformed body", func(t *testing.T) {
		_, err := ParseOrderWebhook([]byte(`{"id":`))
		assert.Error(t, err)
	})
}
