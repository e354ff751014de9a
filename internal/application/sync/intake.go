package syncapp

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopsync/backend/internal/domain/shared"
	"github.com/shopsync/backend/internal/domain/sync"
	"github.com/shopsync/backend/internal/domain/tenant"
	"github.com/shopsync/backend/internal/infrastructure/shopify"
	"go.uber.org/zap"
)

// Enqueuer hands persisted events to the asynchronous processor
type Enqueuer interface {
	Enqueue(eventID uuid.UUID) error
}

// Delivery is one inbound webhook request, captured before any parsing. Body
// holds the exact raw bytes the signature was computed over.
type Delivery struct {
	Signature   string
	Topic       string
	StoreDomain string
	WebhookID   string
	Body        []byte
}

// IntakeOutcome reports what the intake did with a delivery
type IntakeOutcome struct {
	EventID   uuid.UUID
	Duplicate bool
}

// WebhookIntakeService is the synchronous half of webhook handling: verify,
// resolve tenant, dedup, persist, enqueue. It never waits for processing;
// the durability boundary is the stored event row.
type WebhookIntakeService struct {
	secret     string
	tenantRepo tenant.Repository
	eventRepo  sync.EventRepository
	dedup      shared.DedupStore
	dedupTTL   time.Duration
	processor  Enqueuer
	logger     *zap.Logger
}

// NewWebhookIntakeService creates a new WebhookIntakeService
func NewWebhookIntakeService(
	secret string,
	tenantRepo tenant.Repository,
	eventRepo sync.EventRepository,
	dedup shared.DedupStore,
	dedupTTL time.Duration,
	processor Enqueuer,
	logger *zap.Logger,
) *WebhookIntakeService {
	return &WebhookIntakeService{
		secret:     secret,
		tenantRepo: tenantRepo,
		eventRepo:  eventRepo,
		dedup:      dedup,
		dedupTTL:   dedupTTL,
		processor:  processor,
		logger:     logger.Named("intake"),
	}
}

// Handle runs the full intake pipeline for one delivery. Rejected deliveries
// (bad signature, unknown tenant) persist nothing. Duplicates are accepted
// with no side effects. A first delivery is persisted and enqueued before
// the call returns.
func (s *WebhookIntakeService) Handle(ctx context.Context, d Delivery) (IntakeOutcome, error) {
	if !shopify.VerifySignature(s.secret, d.Body, d.Signature) {
		return IntakeOutcome{}, sync.ErrInvalidSignature
	}

	t, err := s.tenantRepo.FindByStoreDomain(ctx, d.StoreDomain)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return IntakeOutcome{}, sync.ErrUnknownTenant
		}
		return IntakeOutcome{}, err
	}

	// Cache fast path; the DB unique index below is the source of truth. A
	// cache error degrades to the DB check instead of rejecting the delivery.
	dedupKey := t.ID.String() + ":" + d.WebhookID
	seen, err := s.dedup.Seen(ctx, dedupKey)
	if err != nil {
		s.logger.Warn("Dedup cache unavailable, falling back to storage check",
			zap.String("webhook_id", d.WebhookID),
			zap.Error(err),
		)
	} else if seen {
		return IntakeOutcome{Duplicate: true}, nil
	}

	event := sync.NewEvent(t.ID, d.WebhookID, d.Topic, extractEntityID(d.Body), d.StoreDomain, d.Body)
	inserted, err := s.eventRepo.Insert(ctx, event)
	if err != nil {
		return IntakeOutcome{}, err
	}
	if !inserted {
		return IntakeOutcome{Duplicate: true}, nil
	}

	// Marked only after the row is durable; a failed insert must stay
	// retryable, so the cache never gets ahead of storage.
	if _, err := s.dedup.MarkSeen(ctx, dedupKey, s.dedupTTL); err != nil {
		s.logger.Warn("Failed to record delivery in dedup cache",
			zap.String("webhook_id", d.WebhookID),
			zap.Error(err),
		)
	}

	if err := s.processor.Enqueue(event.ID); err != nil {
		// The event row is durable; it stays received until replayed
		s.logger.Warn("Event queue full, deferring processing",
			zap.String("event_id", event.ID.String()),
			zap.String("topic", d.Topic),
		)
	}

	return IntakeOutcome{EventID: event.ID}, nil
}

// extractEntityID pulls the payload's top-level numeric id, when present
func extractEntityID(body []byte) string {
	var payload struct {
		ID json.Number `json:"id"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	return payload.ID.String()
}
