package cache

import (
	"context"
	"sync"
	"time"

	"github.com/shopsync/backend/internal/domain/shared"
)

// MemoryDedupStore implements shared.DedupStore in process memory. It is the
// fallback for single-instance deployments without Redis; dedup state does
// not survive restarts, but the database unique index still catches
// duplicates that slip past it.
type MemoryDedupStore struct {
	mu      sync.Mutex
	entries map[string]time.Time // delivery ID -> expiry
	done    chan struct{}
	once    sync.Once
}

// NewMemoryDedupStore creates an in-memory dedup store with a background
// sweep that evicts expired entries.
func NewMemoryDedupStore() *MemoryDedupStore {
	s := &MemoryDedupStore{
		entries: make(map[string]time.Time),
		done:    make(chan struct{}),
	}
	go s.sweep()
	return s
}

func (s *MemoryDedupStore) sweep() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			now := time.Now()
			s.mu.Lock()
			for id, expiry := range s.entries {
				if now.After(expiry) {
					delete(s.entries, id)
				}
			}
			s.mu.Unlock()
		}
	}
}

// MarkSeen records a delivery ID with a TTL
func (s *MemoryDedupStore) MarkSeen(_ context.Context, deliveryID string, ttl time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if expiry, ok := s.entries[deliveryID]; ok && time.Now().Before(expiry) {
		return false, nil
	}
	s.entries[deliveryID] = time.Now().Add(ttl)
	return true, nil
}

// Seen checks whether a delivery ID has already been recorded
func (s *MemoryDedupStore) Seen(_ context.Context, deliveryID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	expiry, ok := s.entries[deliveryID]
	return ok && time.Now().Before(expiry), nil
}

// Close stops the background sweep
func (s *MemoryDedupStore) Close() error {
	s.once.Do(func() { close(s.done) })
	return nil
}

var _ shared.DedupStore = (*MemoryDedupStore)(nil)
