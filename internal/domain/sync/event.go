package sync

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

// EventStatus is the processing status of a stored webhook delivery
type EventStatus string

const (
	// EventStatusReceived indicates the delivery is persisted but unprocessed
	EventStatusReceived EventStatus = "received"
	// EventStatusProcessed indicates reconciliation completed
	EventStatusProcessed EventStatus = "processed"
	// EventStatusFailed indicates reconciliation failed; the status is
	// terminal and requires external replay or manual resolution
	EventStatusFailed EventStatus = "failed"
)

// Event is an append-only log row per inbound webhook delivery. The
// (TenantID, WebhookID) pair is the deduplication key; persisting the row is
// the durability boundary between the synchronous intake path and the
// asynchronous processing worker.
type Event struct {
	ID          uuid.UUID
	TenantID    uuid.UUID
	WebhookID   string
	Topic       string
	EntityType  string
	EntityID    string
	StoreDomain string
	Payload     []byte
	Status      EventStatus
	ErrorMsg    string
	ProcessedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewEvent creates a received event for a delivery
func NewEvent(tenantID uuid.UUID, webhookID, topic, entityID, storeDomain string, payload []byte) *Event {
	now := time.Now()
	return &Event{
		ID:          uuid.New(),
		TenantID:    tenantID,
		WebhookID:   webhookID,
		Topic:       topic,
		EntityType:  EntityTypeFromTopic(topic),
		EntityID:    entityID,
		StoreDomain: storeDomain,
		Payload:     payload,
		Status:      EventStatusReceived,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// EntityTypeFromTopic derives the entity type from the topic's first path
// segment: "orders/create" -> "orders".
func EntityTypeFromTopic(topic string) string {
	if i := strings.IndexByte(topic, '/'); i > 0 {
		return topic[:i]
	}
	return topic
}

// MarkProcessed records successful reconciliation
func (e *Event) MarkProcessed() {
	now := time.Now()
	e.Status = EventStatusProcessed
	e.ProcessedAt = &now
	e.UpdatedAt = now
}

// MarkFailed records a terminal processing failure
func (e *Event) MarkFailed(errMsg string) {
	e.Status = EventStatusFailed
	e.ErrorMsg = errMsg
	e.UpdatedAt = time.Now()
}

// EventRepository defines the persistence port for webhook events
type EventRepository interface {
	// Insert persists a new event. It returns (false, nil) without touching
	// storage when an event with the same (TenantID, WebhookID) already
	// exists; the uniqueness is enforced by a storage-level constraint so
	// concurrent duplicate deliveries cannot both insert.
	Insert(ctx context.Context, e *Event) (inserted bool, err error)

	// FindByID finds an event by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Event, error)

	// Save updates an existing event (status transitions)
	Save(ctx context.Context, e *Event) error

	// FindByTenant lists events for a tenant, newest first
	FindByTenant(ctx context.Context, tenantID uuid.UUID, limit int) ([]Event, error)
}
