package handler

import (
	"io"

	"github.com/gin-gonic/gin"
	syncapp "github.com/shopsync/backend/internal/application/sync"
	"go.uber.org/zap"
)

// Header names used by platform webhook deliveries
const (
	HeaderWebhookSignature = "X-Shopify-Hmac-Sha256"
	HeaderWebhookTopic     = "X-Shopify-Topic"
	HeaderWebhookShop      = "X-Shopify-Shop-Domain"
	HeaderWebhookID        = "X-Shopify-Webhook-Id"
)

// WebhookHandler receives platform webhook deliveries. The body is read raw
// before any parsing because the HMAC signature covers the exact bytes.
type WebhookHandler struct {
	BaseHandler
	intake *syncapp.WebhookIntakeService
	logger *zap.Logger
}

// NewWebhookHandler creates a new WebhookHandler
func NewWebhookHandler(intake *syncapp.WebhookIntakeService, logger *zap.Logger) *WebhookHandler {
	return &WebhookHandler{
		intake: intake,
		logger: logger.Named("webhook_handler"),
	}
}

// RegisterRoutes registers the webhook delivery endpoint
func (h *WebhookHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/webhooks/shopify", h.Receive)
}

// WebhookAckResponse acknowledges an accepted delivery
type WebhookAckResponse struct {
	Received  bool   `json:"received"`
	Duplicate bool   `json:"duplicate,omitempty"`
	EventID   string `json:"event_id,omitempty"`
}

// Receive handles POST /webhooks/shopify
func (h *WebhookHandler) Receive(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		h.BadRequest(c, "Failed to read request body")
		return
	}

	delivery := syncapp.Delivery{
		Signature:   c.GetHeader(HeaderWebhookSignature),
		Topic:       c.GetHeader(HeaderWebhookTopic),
		StoreDomain: c.GetHeader(HeaderWebhookShop),
		WebhookID:   c.GetHeader(HeaderWebhookID),
		Body:        body,
	}

	outcome, err := h.intake.Handle(c.Request.Context(), delivery)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	resp := WebhookAckResponse{Received: true, Duplicate: outcome.Duplicate}
	if !outcome.Duplicate {
		resp.EventID = outcome.EventID.String()
	}
	h.Success(c, resp)
}
