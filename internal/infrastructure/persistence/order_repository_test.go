package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopsync/backend/internal/domain/commerce"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormOrderRepository_Upsert(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormOrderRepository(db)
	ctx := context.Background()
	tenantID := uuid.New()

	t.Run("creates order without customer reference", func(t *testing.T) {
		o := commerce.NewOrderFromRecord(tenantID, commerce.OrderRecord{
			ExternalID:    3001,
			Name:          "#1001",
			Email:         "jane@example.com",
			Status:        "open",
			SubtotalPrice: "90.00",
			TotalPrice:    "99.00",
			TotalTax:      "9.00",
			Currency:      "USD",
		}, nil)
		require.NoError(t, repo.Upsert(ctx, o))

		found, err := repo.FindByExternalID(ctx, tenantID, 3001)
		require.NoError(t, err)
		assert.Nil(t, found.CustomerID)
		assert.Equal(t, int64(9900), found.TotalCents)
		assert.Equal(t, int64(900), found.TaxCents)
	})

	t.Run("replay attaches the customer once it is known", func(t *testing.T) {
		customerID := uuid.New()
		o := commerce.NewOrderFromRecord(tenantID, commerce.OrderRecord{
			ExternalID: 3001,
			Name:       "#1001",
			Status:     "open",
			TotalPrice: "99.00",
		}, &customerID)
		require.NoError(t, repo.Upsert(ctx, o))

		found, err := repo.FindByExternalID(ctx, tenantID, 3001)
		require.NoError(t, err)
		require.NotNil(t, found.CustomerID)
		assert.Equal(t, customerID, *found.CustomerID)

		var count int64
		db.Table("orders").Where("tenant_id = ? AND external_id = ?", tenantID, 3001).Count(&count)
		assert.Equal(t, int64(1), count)
	})
}

func TestGormOrderRepository_UpsertLineItem(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormOrderRepository(db)
	ctx := context.Background()
	tenantID := uuid.New()

	order := commerce.NewOrderFromRecord(tenantID, commerce.OrderRecord{
		ExternalID: 3002,
		Name:       "#1002",
		Status:     "open",
		TotalPrice: "30.00",
	}, nil)
	require.NoError(t, repo.Upsert(ctx, order))

	t.Run("creates line items under the order", func(t *testing.T) {
		li := commerce.NewLineItemFromRecord(tenantID, order.ID, commerce.LineItemRecord{
			ExternalID: 1,
			Title:      "Trail Shoe",
			SKU:        "SHOE-1",
			Quantity:   2,
			UnitPrice:  "15.00",
		}, nil)
		require.NoError(t, repo.UpsertLineItem(ctx, li))

		items, err := repo.FindLineItems(ctx, tenantID, order.ID)
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, int64(1500), items[0].UnitPriceCents)
		assert.Equal(t, int64(3000), items[0].TotalCents)
	})

	t.Run("replaying a line item does not duplicate it", func(t *testing.T) {
		li := commerce.NewLineItemFromRecord(tenantID, order.ID, commerce.LineItemRecord{
			ExternalID: 1,
			Title:      "Trail Shoe",
			SKU:        "SHOE-1",
			Quantity:   3,
			UnitPrice:  "15.00",
		}, nil)
		require.NoError(t, repo.UpsertLineItem(ctx, li))

		items, err := repo.FindLineItems(ctx, tenantID, order.ID)
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, 3, items[0].Quantity)
		assert.Equal(t, int64(4500), items[0].TotalCents)
	})
}
