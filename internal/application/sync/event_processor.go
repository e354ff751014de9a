package syncapp

import (
	"context"
	"errors"
	"strings"
	gosync "sync"

	"github.com/google/uuid"
	"github.com/shopsync/backend/internal/domain/commerce"
	"github.com/shopsync/backend/internal/domain/shared"
	"github.com/shopsync/backend/internal/domain/sync"
	"github.com/shopsync/backend/internal/infrastructure/shopify"
	"go.uber.org/zap"
)

// EventProcessor reconciles stored webhook events in the background. Intake
// enqueues event ids onto a buffered channel; a pool of workers drains it.
// Processing an event is idempotent, so a crash between persist and process
// only means the event stays in status received until replayed.
type EventProcessor struct {
	eventRepo   sync.EventRepository
	reconciler  *ReconcileService
	productRepo commerce.ProductRepository
	logger      *zap.Logger

	queue   chan uuid.UUID
	workers int
	wg      gosync.WaitGroup
}

// NewEventProcessor creates a new EventProcessor
func NewEventProcessor(
	eventRepo sync.EventRepository,
	reconciler *ReconcileService,
	productRepo commerce.ProductRepository,
	workers, queueSize int,
	logger *zap.Logger,
) *EventProcessor {
	if workers <= 0 {
		workers = 4
	}
	if queueSize <= 0 {
		queueSize = 256
	}
	return &EventProcessor{
		eventRepo:   eventRepo,
		reconciler:  reconciler,
		productRepo: productRepo,
		logger:      logger.Named("event_processor"),
		queue:       make(chan uuid.UUID, queueSize),
		workers:     workers,
	}
}

// Start launches the worker pool
func (p *EventProcessor) Start() {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for eventID := range p.queue {
				if err := p.ProcessEvent(context.Background(), eventID); err != nil {
					p.logger.Error("Event processing failed",
						zap.String("event_id", eventID.String()),
						zap.Error(err),
					)
				}
			}
		}()
	}
}

// Stop closes the queue and drains in-flight work
func (p *EventProcessor) Stop() {
	close(p.queue)
	p.wg.Wait()
}

// Enqueue hands an event id to the worker pool without blocking. A
// saturated queue returns sync.ErrQueueFull; the event row stays received
// and can be replayed later.
func (p *EventProcessor) Enqueue(eventID uuid.UUID) error {
	select {
	case p.queue <- eventID:
		return nil
	default:
		return sync.ErrQueueFull
	}
}

// ProcessEvent reconciles one stored event. Already-processed events are a
// no-op. A failure marks the event failed with the error message; the status
// is terminal and there is no automatic retry.
func (p *EventProcessor) ProcessEvent(ctx context.Context, eventID uuid.UUID) error {
	event, err := p.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil
		}
		return err
	}
	if event.Status == sync.EventStatusProcessed {
		return nil
	}

	if err := p.reconcile(ctx, event); err != nil {
		event.MarkFailed(err.Error())
		if saveErr := p.eventRepo.Save(ctx, event); saveErr != nil {
			p.logger.Error("Failed to record event failure",
				zap.String("event_id", event.ID.String()),
				zap.Error(saveErr),
			)
		}
		return err
	}

	event.MarkProcessed()
	return p.eventRepo.Save(ctx, event)
}

// reconcile routes the event payload by topic prefix. Topics outside the
// known prefixes are accepted and ignored.
func (p *EventProcessor) reconcile(ctx context.Context, event *sync.Event) error {
	switch {
	case strings.HasPrefix(event.Topic, "customers/"):
		rec, err := shopify.ParseCustomerWebhook(event.Payload)
		if err != nil {
			return err
		}
		_, err = p.reconciler.ReconcileCustomer(ctx, event.TenantID, rec)
		return err

	case strings.HasPrefix(event.Topic, "orders/"):
		rec, err := shopify.ParseOrderWebhook(event.Payload)
		if err != nil {
			return err
		}
		_, err = p.reconciler.ReconcileOrder(ctx, event.TenantID, rec)
		return err

	case event.Topic == "products/delete":
		return p.archiveProduct(ctx, event)

	case strings.HasPrefix(event.Topic, "products/"):
		rec, err := shopify.ParseProductWebhook(event.Payload)
		if err != nil {
			return err
		}
		_, err = p.reconciler.ReconcileProduct(ctx, event.TenantID, rec)
		return err

	default:
		p.logger.Debug("Ignoring event with unhandled topic",
			zap.String("event_id", event.ID.String()),
			zap.String("topic", event.Topic),
		)
		return nil
	}
}

// archiveProduct handles products/delete, whose payload carries only the id.
// The local row is kept for historical orders and flipped to archived; a
// delete for a product we never imported is a no-op.
func (p *EventProcessor) archiveProduct(ctx context.Context, event *sync.Event) error {
	rec, err := shopify.ParseProductWebhook(event.Payload)
	if err != nil {
		return err
	}

	existing, err := p.productRepo.FindByExternalID(ctx, event.TenantID, rec.ExternalID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil
		}
		return err
	}

	_, err = p.reconciler.ReconcileProduct(ctx, event.TenantID, commerce.ProductRecord{
		ExternalID:  existing.ExternalID,
		Title:       existing.Title,
		Vendor:      existing.Vendor,
		ProductType: existing.ProductType,
		Status:      commerce.ProductStatusArchived,
	})
	return err
}
