package syncapp

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopsync/backend/internal/domain/commerce"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReconcileService_ReconcileCustomer(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	tenantID := uuid.New()

	t.Run("converts decimal spend to minor units", func(t *testing.T) {
		id, err := env.reconciler.ReconcileCustomer(ctx, tenantID, commerce.CustomerRecord{
			ExternalID: 1001,
			Email:      "jane@example.com",
			TotalSpent: "199.99",
		})
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, id)

		stored, err := env.customerRepo.FindByExternalID(ctx, tenantID, 1001)
		require.NoError(t, err)
		assert.Equal(t, int64(19999), stored.TotalSpentCents)
		assert.Equal(t, "USD", stored.Currency)
	})

	t.Run("replay returns the same internal id", func(t *testing.T) {
		first, err := env.reconciler.ReconcileCustomer(ctx, tenantID, commerce.CustomerRecord{
			ExternalID: 1002,
			Email:      "bob@example.com",
		})
		require.NoError(t, err)

		second, err := env.reconciler.ReconcileCustomer(ctx, tenantID, commerce.CustomerRecord{
			ExternalID: 1002,
			Email:      "bob+new@example.com",
		})
		require.NoError(t, err)
		assert.Equal(t, first, second)

		stored, err := env.customerRepo.FindByExternalID(ctx, tenantID, 1002)
		require.NoError(t, err)
		assert.Equal(t, "bob+new@example.com", stored.Email)
	})
}

func TestReconcileService_ReconcileOrder(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	tenantID := uuid.New()

	t.Run("upserts embedded customer before the order", func(t *testing.T) {
		orderID, err := env.reconciler.ReconcileOrder(ctx, tenantID, commerce.OrderRecord{
			ExternalID: 3001,
			Name:       "#1001",
			Status:     "open",
			TotalPrice: "99.00",
			Customer: &commerce.CustomerRecord{
				ExternalID: 1001,
				Email:      "jane@example.com",
			},
		})
		require.NoError(t, err)

		customer, err := env.customerRepo.FindByExternalID(ctx, tenantID, 1001)
		require.NoError(t, err)

		order, err := env.orderRepo.FindByExternalID(ctx, tenantID, 3001)
		require.NoError(t, err)
		assert.Equal(t, orderID, order.ID)
		require.NotNil(t, order.CustomerID)
		assert.Equal(t, customer.ID, *order.CustomerID)
	})

	t.Run("order without customer keeps NULL reference", func(t *testing.T) {
		_, err := env.reconciler.ReconcileOrder(ctx, tenantID, commerce.OrderRecord{
			ExternalID: 3002,
			Name:       "#1002",
			Status:     "open",
			TotalPrice: "10.00",
		})
		require.NoError(t, err)

		order, err := env.orderRepo.FindByExternalID(ctx, tenantID, 3002)
		require.NoError(t, err)
		assert.Nil(t, order.CustomerID)
	})

	t.Run("line item with unknown product keeps NULL reference", func(t *testing.T) {
		missing := int64(9999)
		orderID, err := env.reconciler.ReconcileOrder(ctx, tenantID, commerce.OrderRecord{
			ExternalID: 3003,
			Name:       "#1003",
			Status:     "open",
			TotalPrice: "45.00",
			LineItems: []commerce.LineItemRecord{
				{ExternalID: 1, ProductExternalID: &missing, Title: "Gone", Quantity: 1, UnitPrice: "45.00"},
			},
		})
		require.NoError(t, err)

		items, err := env.orderRepo.FindLineItems(ctx, tenantID, orderID)
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Nil(t, items[0].ProductID)
	})

	t.Run("line item resolves known product", func(t *testing.T) {
		productID, err := env.reconciler.ReconcileProduct(ctx, tenantID, commerce.ProductRecord{
			ExternalID: 2001,
			Title:      "Trail Shoe",
			Status:     "active",
		})
		require.NoError(t, err)

		known := int64(2001)
		orderID, err := env.reconciler.ReconcileOrder(ctx, tenantID, commerce.OrderRecord{
			ExternalID: 3004,
			Name:       "#1004",
			Status:     "open",
			TotalPrice: "90.00",
			LineItems: []commerce.LineItemRecord{
				{ExternalID: 1, ProductExternalID: &known, Title: "Trail Shoe", Quantity: 2, UnitPrice: "45.00"},
			},
		})
		require.NoError(t, err)

		items, err := env.orderRepo.FindLineItems(ctx, tenantID, orderID)
		require.NoError(t, err)
		require.Len(t, items, 1)
		require.NotNil(t, items[0].ProductID)
		assert.Equal(t, productID, *items[0].ProductID)
		assert.Equal(t, int64(9000), items[0].TotalCents)
	})
}

func TestReconcileService_ProductArchival(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	tenantID := uuid.New()

	_, err := env.reconciler.ReconcileProduct(ctx, tenantID, commerce.ProductRecord{
		ExternalID: 2001, Title: "Trail Shoe", Status: "active",
	})
	require.NoError(t, err)

	_, err = env.reconciler.ReconcileProduct(ctx, tenantID, commerce.ProductRecord{
		ExternalID: 2001, Title: "Trail Shoe", Status: "archived",
	})
	require.NoError(t, err)

	stored, err := env.productRepo.FindByExternalID(ctx, tenantID, 2001)
	require.NoError(t, err)
	assert.NotNil(t, stored.ArchivedAt)

	_, err = env.reconciler.ReconcileProduct(ctx, tenantID, commerce.ProductRecord{
		ExternalID: 2001, Title: "Trail Shoe", Status: "active",
	})
	require.NoError(t, err)

	stored, err = env.productRepo.FindByExternalID(ctx, tenantID, 2001)
	require.NoError(t, err)
	assert.Nil(t, stored.ArchivedAt)
}
