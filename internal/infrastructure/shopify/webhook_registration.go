package shopify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/shopsync/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// DefaultWebhookTopics is the topic set registered at install time
var DefaultWebhookTopics = []string{
	"orders/create",
	"orders/updated",
	"customers/create",
	"customers/update",
	"products/create",
	"products/update",
	"products/delete",
}

// WebhookRegistrar subscribes the app's delivery endpoint to platform topics
// after a successful install.
type WebhookRegistrar struct {
	httpClient  *http.Client
	apiVersion  string
	deliveryURL string
	logger      *zap.Logger

	// baseURLFor is replaced in tests to point at a local server
	baseURLFor func(shop string) string
}

// NewWebhookRegistrar creates a registrar from the shared app configuration
func NewWebhookRegistrar(cfg config.ShopifyConfig, logger *zap.Logger) *WebhookRegistrar {
	return &WebhookRegistrar{
		httpClient:  &http.Client{Timeout: cfg.RequestTimeout},
		apiVersion:  cfg.APIVersion,
		deliveryURL: strings.TrimRight(cfg.AppBaseURL, "/") + "/webhooks/shopify",
		logger:      logger.Named("webhook_registrar"),
		baseURLFor: func(shop string) string {
			return "https://" + shop
		},
	}
}

// RegisterAll subscribes every default topic for the shop. A failed topic is
// logged and skipped; webhook registration never fails the install, since the
// bulk import still covers the data.
func (r *WebhookRegistrar) RegisterAll(ctx context.Context, shop, accessToken string) {
	for _, topic := range DefaultWebhookTopics {
		if err := r.register(ctx, shop, accessToken, topic); err != nil {
			r.logger.Warn("Webhook registration failed",
				zap.String("shop", shop),
				zap.String("topic", topic),
				zap.Error(err),
			)
			continue
		}
		r.logger.Info("Registered webhook",
			zap.String("shop", shop),
			zap.String("topic", topic),
		)
	}
}

func (r *WebhookRegistrar) register(ctx context.Context, shop, accessToken, topic string) error {
	payload, err := json.Marshal(map[string]any{
		"webhook": map[string]string{
			"topic":   topic,
			"address": r.deliveryURL,
			"format":  "json",
		},
	})
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/admin/api/%s/webhooks.json", r.baseURLFor(shop), r.apiVersion)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Shopify-Access-Token", accessToken)

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("status %d: %s", resp.StatusCode, body)
	}
	return nil
}
