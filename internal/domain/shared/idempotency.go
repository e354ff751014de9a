package shared

import (
	"context"
	"time"
)

// DedupStore remembers delivery identifiers that have already been accepted,
// so duplicate webhook deliveries can be short-circuited before hitting the
// database. The database unique index on (tenant_id, webhook_id) remains the
// source of truth; this store is a fast path, not a correctness guarantee.
type DedupStore interface {
	// MarkSeen records a delivery ID with a TTL.
	// Returns true if the ID was newly recorded, false if it was already known.
	MarkSeen(ctx context.Context, deliveryID string, ttl time.Duration) (bool, error)

	// Seen checks whether a delivery ID has already been recorded.
	Seen(ctx context.Context, deliveryID string) (bool, error)

	// Close closes the store and releases resources.
	Close() error
}
