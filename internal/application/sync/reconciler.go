package syncapp

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopsync/backend/internal/domain/commerce"
	"github.com/shopsync/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ReconcileService folds canonical records into local storage. Identity is
// always (tenantID, externalID); an existing row is overwritten last-writer-
// wins, a missing row is created. The same service backs both the bulk
// import and the webhook worker, so replays of either path are idempotent.
type ReconcileService struct {
	customerRepo commerce.CustomerRepository
	productRepo  commerce.ProductRepository
	orderRepo    commerce.OrderRepository
	logger       *zap.Logger
}

// NewReconcileService creates a new ReconcileService
func NewReconcileService(
	customerRepo commerce.CustomerRepository,
	productRepo commerce.ProductRepository,
	orderRepo commerce.OrderRepository,
	logger *zap.Logger,
) *ReconcileService {
	return &ReconcileService{
		customerRepo: customerRepo,
		productRepo:  productRepo,
		orderRepo:    orderRepo,
		logger:       logger.Named("reconciler"),
	}
}

// ReconcileCustomer upserts a customer record and returns the internal id
func (s *ReconcileService) ReconcileCustomer(ctx context.Context, tenantID uuid.UUID, rec commerce.CustomerRecord) (uuid.UUID, error) {
	customer := commerce.NewCustomerFromRecord(tenantID, rec)
	if err := s.customerRepo.Upsert(ctx, customer); err != nil {
		return uuid.Nil, err
	}
	return customer.ID, nil
}

// ReconcileProduct upserts a product record and returns the internal id.
// A record with status "archived" sets the soft-delete marker; any other
// status clears it.
func (s *ReconcileService) ReconcileProduct(ctx context.Context, tenantID uuid.UUID, rec commerce.ProductRecord) (uuid.UUID, error) {
	product := commerce.NewProductFromRecord(tenantID, rec)
	if err := s.productRepo.Upsert(ctx, product); err != nil {
		return uuid.Nil, err
	}
	return product.ID, nil
}

// ReconcileOrder upserts an order with its line items and returns the
// internal order id. The embedded customer, when present, is upserted first
// so the order row can reference it. Customer or product references that
// cannot be resolved stay NULL; they never abort the upsert.
func (s *ReconcileService) ReconcileOrder(ctx context.Context, tenantID uuid.UUID, rec commerce.OrderRecord) (uuid.UUID, error) {
	var customerID *uuid.UUID
	if rec.Customer != nil {
		id, err := s.ReconcileCustomer(ctx, tenantID, *rec.Customer)
		if err != nil {
			return uuid.Nil, err
		}
		customerID = &id
	}

	order := commerce.NewOrderFromRecord(tenantID, rec, customerID)
	if err := s.orderRepo.Upsert(ctx, order); err != nil {
		return uuid.Nil, err
	}

	for _, itemRec := range rec.LineItems {
		productID := s.resolveProduct(ctx, tenantID, itemRec.ProductExternalID)
		lineItem := commerce.NewLineItemFromRecord(tenantID, order.ID, itemRec, productID)
		if err := s.orderRepo.UpsertLineItem(ctx, lineItem); err != nil {
			return uuid.Nil, err
		}
	}

	return order.ID, nil
}

// resolveProduct looks up the local product for a line item reference.
// Deleted or never-imported products resolve to nil.
func (s *ReconcileService) resolveProduct(ctx context.Context, tenantID uuid.UUID, externalID *int64) *uuid.UUID {
	if externalID == nil {
		return nil
	}
	product, err := s.productRepo.FindByExternalID(ctx, tenantID, *externalID)
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			s.logger.Warn("Product lookup failed for line item",
				zap.String("tenant_id", tenantID.String()),
				zap.Int64("product_external_id", *externalID),
				zap.Error(err),
			)
		}
		return nil
	}
	return &product.ID
}
