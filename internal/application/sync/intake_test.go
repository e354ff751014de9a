package syncapp

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopsync/backend/internal/domain/sync"
	"github.com/shopsync/backend/internal/domain/tenant"
	"github.com/shopsync/backend/internal/infrastructure/cache"
	"github.com/shopsync/backend/internal/infrastructure/shopify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testSecret = "shpss_test_secret"

// captureEnqueuer records enqueued event ids
type captureEnqueuer struct {
	ids      []uuid.UUID
	failWith error
}

func (c *captureEnqueuer) Enqueue(eventID uuid.UUID) error {
	if c.failWith != nil {
		return c.failWith
	}
	c.ids = append(c.ids, eventID)
	return nil
}

func newIntake(t *testing.T, env *testEnv, enq Enqueuer) *WebhookIntakeService {
	t.Helper()
	dedup := cache.NewMemoryDedupStore()
	t.Cleanup(func() { _ = dedup.Close() })
	return NewWebhookIntakeService(testSecret, env.tenantRepo, env.eventRepo, dedup, time.Hour, enq, zap.NewNop())
}

// flakyEventRepo fails the first N inserts, then delegates
type flakyEventRepo struct {
	sync.EventRepository
	failInserts int
}

func (r *flakyEventRepo) Insert(ctx context.Context, e *sync.Event) (bool, error) {
	if r.failInserts > 0 {
		r.failInserts--
		return false, errors.New("storage temporarily unavailable")
	}
	return r.EventRepository.Insert(ctx, e)
}

func signedDelivery(body []byte, topic, shop, webhookID string) Delivery {
	return Delivery{
		Signature:   shopify.ComputeSignature(testSecret, body),
		Topic:       topic,
		StoreDomain: shop,
		WebhookID:   webhookID,
		Body:        body,
	}
}

func TestWebhookIntakeService_Handle(t *testing.T) {
	ctx := context.Background()

	t.Run("persists and enqueues a first delivery", func(t *testing.T) {
		env := newTestEnv(t)
		store := tenant.NewTenant("shop.myshopify.com", "Shop")
		require.NoError(t, env.tenantRepo.Save(ctx, store))

		enq := &captureEnqueuer{}
		intake := newIntake(t, env, enq)

		body := []byte(`{"id":3001,"name":"#1001"}`)
		outcome, err := intake.Handle(ctx, signedDelivery(body, "orders/create", store.StoreDomain, "wh-1"))
		require.NoError(t, err)
		assert.False(t, outcome.Duplicate)
		require.NotEqual(t, uuid.Nil, outcome.EventID)
		assert.Equal(t, []uuid.UUID{outcome.EventID}, enq.ids)

		event, err := env.eventRepo.FindByID(ctx, outcome.EventID)
		require.NoError(t, err)
		assert.Equal(t, sync.EventStatusReceived, event.Status)
		assert.Equal(t, "orders", event.EntityType)
		assert.Equal(t, "3001", event.EntityID)
		assert.Equal(t, body, event.Payload)
	})

	t.Run("invalid signature persists nothing", func(t *testing.T) {
		env := newTestEnv(t)
		store := tenant.NewTenant("shop.myshopify.com", "Shop")
		require.NoError(t, env.tenantRepo.Save(ctx, store))

		enq := &captureEnqueuer{}
		intake := newIntake(t, env, enq)

		body := []byte(`{"id":3001}`)
		d := signedDelivery(body, "orders/create", store.StoreDomain, "wh-1")
		d.Signature = "bogus"

		_, err := intake.Handle(ctx, d)
		assert.ErrorIs(t, err, sync.ErrInvalidSignature)
		assert.Empty(t, enq.ids)

		events, err := env.eventRepo.FindByTenant(ctx, store.ID, 0)
		require.NoError(t, err)
		assert.Empty(t, events)
	})

	t.Run("unknown tenant persists nothing", func(t *testing.T) {
		env := newTestEnv(t)
		enq := &captureEnqueuer{}
		intake := newIntake(t, env, enq)

		body := []byte(`{"id":3001}`)
		_, err := intake.Handle(ctx, signedDelivery(body, "orders/create", "ghost.myshopify.com", "wh-1"))
		assert.ErrorIs(t, err, sync.ErrUnknownTenant)
		assert.Empty(t, enq.ids)
	})

	t.Run("duplicate delivery is accepted without side effects", func(t *testing.T) {
		env := newTestEnv(t)
		store := tenant.NewTenant("shop.myshopify.com", "Shop")
		require.NoError(t, env.tenantRepo.Save(ctx, store))

		enq := &captureEnqueuer{}
		intake := newIntake(t, env, enq)

		body := []byte(`{"id":3001}`)
		first, err := intake.Handle(ctx, signedDelivery(body, "orders/create", store.StoreDomain, "wh-1"))
		require.NoError(t, err)
		require.False(t, first.Duplicate)

		second, err := intake.Handle(ctx, signedDelivery(body, "orders/create", store.StoreDomain, "wh-1"))
		require.NoError(t, err)
		assert.True(t, second.Duplicate)

		events, err := env.eventRepo.FindByTenant(ctx, store.ID, 0)
		require.NoError(t, err)
		assert.Len(t, events, 1)
		assert.Len(t, enq.ids, 1)
	})

	t.Run("rejected delivery can be replayed with a valid signature", func(t *testing.T) {
		env := newTestEnv(t)
		store := tenant.NewTenant("shop.myshopify.com", "Shop")
		require.NoError(t, env.tenantRepo.Save(ctx, store))

		enq := &captureEnqueuer{}
		intake := newIntake(t, env, enq)

		body := []byte(`{"id":3001}`)
		bad := signedDelivery(body, "orders/create", store.StoreDomain, "wh-1")
		bad.Signature = "bogus"
		_, err := intake.Handle(ctx, bad)
		require.ErrorIs(t, err, sync.ErrInvalidSignature)

		outcome, err := intake.Handle(ctx, signedDelivery(body, "orders/create", store.StoreDomain, "wh-1"))
		require.NoError(t, err)
		assert.False(t, outcome.Duplicate)

		events, err := env.eventRepo.FindByTenant(ctx, store.ID, 0)
		require.NoError(t, err)
		assert.Len(t, events, 1)
	})

	t.Run("failed persist stays retryable", func(t *testing.T) {
		env := newTestEnv(t)
		store := tenant.NewTenant("shop.myshopify.com", "Shop")
		require.NoError(t, env.tenantRepo.Save(ctx, store))

		enq := &captureEnqueuer{}
		flaky := &flakyEventRepo{EventRepository: env.eventRepo, failInserts: 1}
		dedup := cache.NewMemoryDedupStore()
		t.Cleanup(func() { _ = dedup.Close() })
		intake := NewWebhookIntakeService(testSecret, env.tenantRepo, flaky, dedup, time.Hour, enq, zap.NewNop())

		body := []byte(`{"id":3001}`)
		delivery := signedDelivery(body, "orders/create", store.StoreDomain, "wh-1")

		_, err := intake.Handle(ctx, delivery)
		require.Error(t, err)
		assert.Empty(t, enq.ids)

		// The platform retries the identical delivery; it must not be
		// answered as a duplicate while no row exists.
		outcome, err := intake.Handle(ctx, delivery)
		require.NoError(t, err)
		assert.False(t, outcome.Duplicate)

		events, err := env.eventRepo.FindByTenant(ctx, store.ID, 0)
		require.NoError(t, err)
		require.Len(t, events, 1)
		assert.Equal(t, sync.EventStatusReceived, events[0].Status)
		assert.Len(t, enq.ids, 1)

		// A further replay is now a duplicate
		replay, err := intake.Handle(ctx, delivery)
		require.NoError(t, err)
		assert.True(t, replay.Duplicate)
	})

	t.Run("full queue still accepts the delivery", func(t *testing.T) {
		env := newTestEnv(t)
		store := tenant.NewTenant("shop.myshopify.com", "Shop")
		require.NoError(t, env.tenantRepo.Save(ctx, store))

		enq := &captureEnqueuer{failWith: sync.ErrQueueFull}
		intake := newIntake(t, env, enq)

		body := []byte(`{"id":3001}`)
		outcome, err := intake.Handle(ctx, signedDelivery(body, "orders/create", store.StoreDomain, "wh-1"))
		require.NoError(t, err)
		assert.False(t, outcome.Duplicate)

		// The event row is durable even though processing was deferred
		event, err := env.eventRepo.FindByID(ctx, outcome.EventID)
		require.NoError(t, err)
		assert.Equal(t, sync.EventStatusReceived, event.Status)
	})
}
