package shopify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/shopsync/backend/internal/domain/sync"
	"github.com/shopsync/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// Client is a thin Admin GraphQL API client. One request is in flight at a
// time per fetch loop; queries are read-only and safe to retry, so transient
// transport failures and throttling get a small bounded retry budget.
type Client struct {
	httpClient   *http.Client
	apiVersion   string
	maxRetries   int
	retryBackoff time.Duration
	logger       *zap.Logger

	// baseURLFor is replaced in tests to point at a local server
	baseURLFor func(shop string) string
}

// NewClient creates a platform API client from the shared app configuration
func NewClient(cfg config.ShopifyConfig, logger *zap.Logger) *Client {
	return &Client{
		httpClient:   &http.Client{Timeout: cfg.RequestTimeout},
		apiVersion:   cfg.APIVersion,
		maxRetries:   cfg.MaxRetries,
		retryBackoff: cfg.RetryBackoff,
		logger:       logger.Named("shopify"),
		baseURLFor: func(shop string) string {
			return "https://" + shop
		},
	}
}

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

type graphQLError struct {
	Message string `json:"message"`
}

type graphQLResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []graphQLError  `json:"errors"`
}

// Execute posts a GraphQL query to the shop's admin endpoint and unmarshals
// the data object into out. A reported GraphQL error or a non-retryable HTTP
// status fails immediately; transport errors and 429/5xx responses are
// retried with exponential backoff until the budget is exhausted. Every
// failure wraps sync.ErrUpstreamFetch.
func (c *Client) Execute(ctx context.Context, shop, accessToken, query string, variables map[string]any, out any) error {
	body, err := json.Marshal(graphQLRequest{Query: query, Variables: variables})
	if err != nil {
		return fmt.Errorf("%w: encode request: %v", sync.ErrUpstreamFetch, err)
	}

	url := fmt.Sprintf("%s/admin/api/%s/graphql.json", c.baseURLFor(shop), c.apiVersion)

	var lastErr error
	backoff := c.retryBackoff
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			c.logger.Warn("Retrying platform API request",
				zap.String("shop", shop),
				zap.Int("attempt", attempt),
				zap.Error(lastErr),
			)
			select {
			case <-ctx.Done():
				return fmt.Errorf("%w: %v", sync.ErrUpstreamFetch, ctx.Err())
			case <-time.After(backoff):
			}
			backoff *= 2
		}

		retryable, err := c.doRequest(ctx, url, accessToken, body, out)
		if err == nil {
			return nil
		}
		lastErr = err
		if !retryable {
			return lastErr
		}
	}
	return lastErr
}

// doRequest performs a single POST. The bool result reports whether the
// failure is worth retrying.
func (c *Client) doRequest(ctx context.Context, url, accessToken string, body []byte, out any) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return false, fmt.Errorf("%w: build request: %v", sync.ErrUpstreamFetch, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Shopify-Access-Token", accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return true, fmt.Errorf("%w: %v", sync.ErrUpstreamFetch, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return true, fmt.Errorf("%w: read response: %v", sync.ErrUpstreamFetch, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		retryable := resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500
		return retryable, fmt.Errorf("%w: status %d: %s", sync.ErrUpstreamFetch, resp.StatusCode, respBody)
	}

	var gqlResp graphQLResponse
	if err := json.Unmarshal(respBody, &gqlResp); err != nil {
		return false, fmt.Errorf("%w: decode response: %v", sync.ErrUpstreamFetch, err)
	}
	if len(gqlResp.Errors) > 0 {
		return false, fmt.Errorf("%w: graphql errors: %s", sync.ErrUpstreamFetch, gqlResp.Errors[0].Message)
	}

	if err := json.Unmarshal(gqlResp.Data, out); err != nil {
		return false, fmt.Errorf("%w: decode data: %v", sync.ErrUpstreamFetch, err)
	}
	return false, nil
}
