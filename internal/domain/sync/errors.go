package sync

import "errors"

var (
	// ErrInvalidSignature indicates a webhook failed HMAC verification.
	// Nothing is persisted for such deliveries.
	ErrInvalidSignature = errors.New("sync: invalid webhook signature")

	// ErrUnknownTenant indicates the webhook's source domain resolved to no
	// installed tenant. Nothing is persisted for such deliveries.
	ErrUnknownTenant = errors.New("sync: unknown tenant for store domain")

	// ErrMissingCredential indicates a tenant has no stored access token
	ErrMissingCredential = errors.New("sync: no credential for tenant")

	// ErrUpstreamFetch indicates a non-success response or a reported query
	// error from the platform API. It aborts the whole import run for the
	// entity kind being fetched.
	ErrUpstreamFetch = errors.New("sync: upstream fetch failed")

	// ErrQueueFull indicates the asynchronous handoff channel is saturated
	ErrQueueFull = errors.New("sync: work queue is full")
)
