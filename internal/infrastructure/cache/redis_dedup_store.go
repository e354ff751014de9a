package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopsync/backend/internal/domain/shared"
	"github.com/shopsync/backend/internal/infrastructure/config"
)

// RedisDedupStore implements shared.DedupStore on Redis. Suitable for
// distributed deployments where several instances receive webhook deliveries
// for the same tenant and need to share dedup state.
type RedisDedupStore struct {
	client    *redis.Client
	keyPrefix string
}

// NewRedisDedupStore creates a Redis-backed dedup store and verifies the
// connection before returning.
func NewRedisDedupStore(cfg config.RedisConfig) (*RedisDedupStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisDedupStore{
		client:    client,
		keyPrefix: "webhook:delivery:",
	}, nil
}

// NewRedisDedupStoreWithClient creates a store with an existing Redis client.
// Useful for tests or when sharing a client across components.
func NewRedisDedupStoreWithClient(client *redis.Client, keyPrefix string) *RedisDedupStore {
	if keyPrefix == "" {
		keyPrefix = "webhook:delivery:"
	}
	return &RedisDedupStore{client: client, keyPrefix: keyPrefix}
}

// MarkSeen records a delivery ID with a TTL using SETNX, so concurrent
// duplicate deliveries observe exactly one "newly recorded" result.
func (s *RedisDedupStore) MarkSeen(ctx context.Context, deliveryID string, ttl time.Duration) (bool, error) {
	ok, err := s.client.SetNX(ctx, s.keyPrefix+deliveryID, "1", ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to mark delivery as seen: %w", err)
	}
	return ok, nil
}

// Seen checks whether a delivery ID has already been recorded
func (s *RedisDedupStore) Seen(ctx context.Context, deliveryID string) (bool, error) {
	n, err := s.client.Exists(ctx, s.keyPrefix+deliveryID).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check delivery: %w", err)
	}
	return n > 0, nil
}

// Close closes the Redis client
func (s *RedisDedupStore) Close() error {
	return s.client.Close()
}

var _ shared.DedupStore = (*RedisDedupStore)(nil)
