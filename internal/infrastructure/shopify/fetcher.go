package shopify

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopsync/backend/internal/domain/commerce"
	"go.uber.org/zap"
)

// Reconciler is the consumer side of the fetch loop. The import orchestrator
// injects the application-layer reconcile service here.
type Reconciler interface {
	ReconcileCustomer(ctx context.Context, tenantID uuid.UUID, rec commerce.CustomerRecord) (uuid.UUID, error)
	ReconcileProduct(ctx context.Context, tenantID uuid.UUID, rec commerce.ProductRecord) (uuid.UUID, error)
	ReconcileOrder(ctx context.Context, tenantID uuid.UUID, rec commerce.OrderRecord) (uuid.UUID, error)
}

// Fetcher walks the platform's cursor-paginated connections and feeds every
// node through the reconciler. One page is in flight at a time; the cursor
// for the next page is taken from the previous response. Any page-level
// failure aborts the whole run for that entity kind.
type Fetcher struct {
	client     *Client
	reconciler Reconciler
	pageSize   int
	logger     *zap.Logger
}

// NewFetcher creates a fetcher over the given client and reconciler
func NewFetcher(client *Client, reconciler Reconciler, pageSize int, logger *zap.Logger) *Fetcher {
	return &Fetcher{
		client:     client,
		reconciler: reconciler,
		pageSize:   pageSize,
		logger:     logger.Named("fetcher"),
	}
}

// FetchProducts imports all products for the shop, returning the count of
// reconciled records.
func (f *Fetcher) FetchProducts(ctx context.Context, tenantID uuid.UUID, shop, accessToken string) (int, error) {
	total := 0
	cursor := ""
	for {
		variables := map[string]any{"first": f.pageSize}
		if cursor != "" {
			variables["cursor"] = cursor
		}

		var page productsData
		if err := f.client.Execute(ctx, shop, accessToken, productsQuery, variables, &page); err != nil {
			return total, err
		}

		for _, edge := range page.Products.Edges {
			rec, err := productRecordFromNode(edge.Node)
			if err != nil {
				return total, err
			}
			if _, err := f.reconciler.ReconcileProduct(ctx, tenantID, rec); err != nil {
				return total, err
			}
			total++
		}

		f.logger.Info("Imported product page",
			zap.String("shop", shop),
			zap.Int("page_size", len(page.Products.Edges)),
			zap.Int("total", total),
		)

		if !page.Products.PageInfo.HasNextPage {
			return total, nil
		}
		cursor = page.Products.PageInfo.EndCursor
	}
}

// FetchOrders imports all orders for the shop, returning the count of
// reconciled records. Embedded customers ride along inside each order record
// and are upserted by the reconciler before the order row.
func (f *Fetcher) FetchOrders(ctx context.Context, tenantID uuid.UUID, shop, accessToken string) (int, error) {
	total := 0
	cursor := ""
	for {
		variables := map[string]any{"first": f.pageSize}
		if cursor != "" {
			variables["cursor"] = cursor
		}

		var page ordersData
		if err := f.client.Execute(ctx, shop, accessToken, ordersQuery, variables, &page); err != nil {
			return total, err
		}

		for _, edge := range page.Orders.Edges {
			rec, err := orderRecordFromNode(edge.Node)
			if err != nil {
				return total, err
			}
			if _, err := f.reconciler.ReconcileOrder(ctx, tenantID, rec); err != nil {
				return total, err
			}
			total++
		}

		f.logger.Info("Imported order page",
			zap.String("shop", shop),
			zap.Int("page_size", len(page.Orders.Edges)),
			zap.Int("total", total),
		)

		if !page.Orders.PageInfo.HasNextPage {
			return total, nil
		}
		cursor = page.Orders.PageInfo.EndCursor
	}
}
