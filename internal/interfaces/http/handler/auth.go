package handler

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopsync/backend/internal/domain/shared"
	"github.com/shopsync/backend/internal/domain/tenant"
	"github.com/shopsync/backend/internal/infrastructure/shopify"
	"go.uber.org/zap"
)

const oauthStateCookie = "oauth_state"

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("shopdomain", func(fl validator.FieldLevel) bool {
			return shopify.ValidShopDomain(fl.Field().String())
		})
	}
}

// TokenExchanger is the OAuth surface the install flow needs
type TokenExchanger interface {
	AuthorizeURL(shop, state string) string
	ExchangeCode(ctx context.Context, shop, code string) (*shopify.AccessToken, error)
	APIVersion() string
}

// TopicRegistrar subscribes webhook topics after a successful install
type TopicRegistrar interface {
	RegisterAll(ctx context.Context, shop, accessToken string)
}

// AuthHandler implements the platform app install flow: a redirect to the
// authorization page and the callback that stores the tenant credential and
// registers webhooks.
type AuthHandler struct {
	BaseHandler
	oauth          TokenExchanger
	registrar      TopicRegistrar
	tenantRepo     tenant.Repository
	credentialRepo tenant.CredentialRepository
	logger         *zap.Logger
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(
	oauth TokenExchanger,
	registrar TopicRegistrar,
	tenantRepo tenant.Repository,
	credentialRepo tenant.CredentialRepository,
	logger *zap.Logger,
) *AuthHandler {
	return &AuthHandler{
		oauth:          oauth,
		registrar:      registrar,
		tenantRepo:     tenantRepo,
		credentialRepo: credentialRepo,
		logger:         logger.Named("auth_handler"),
	}
}

// RegisterRoutes registers the install flow endpoints
func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	{
		auth.GET("/start", h.Start)
		auth.GET("/callback", h.Callback)
	}
}

// InstallStartRequest is the query contract for starting an install
type InstallStartRequest struct {
	Shop string `form:"shop" binding:"required,shopdomain"`
}

// Start handles GET /auth/start?shop=. It validates the shop domain, sets a
// state cookie and redirects to the platform authorization page.
func (h *AuthHandler) Start(c *gin.Context) {
	var req InstallStartRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, "Invalid shop domain, expected {name}.myshopify.com")
		return
	}
	shop := req.Shop

	state, err := randomState()
	if err != nil {
		h.InternalError(c, "Failed to generate OAuth state")
		return
	}

	c.SetCookie(oauthStateCookie, state, 300, "/", "", false, true)
	c.Redirect(http.StatusFound, h.oauth.AuthorizeURL(shop, state))
}

// InstallResponse reports a completed app install
type InstallResponse struct {
	TenantID    string `json:"tenant_id"`
	StoreDomain string `json:"store_domain"`
	Scopes      string `json:"scopes"`
}

// Callback handles GET /auth/callback. It verifies the state cookie,
// exchanges the code for an access token, upserts the tenant and credential
// and registers the webhook topic set.
func (h *AuthHandler) Callback(c *gin.Context) {
	shop := c.Query("shop")
	code := c.Query("code")
	state := c.Query("state")

	if !shopify.ValidShopDomain(shop) || code == "" {
		h.BadRequest(c, "Missing or invalid shop or code parameter")
		return
	}

	cookieState, err := c.Cookie(oauthStateCookie)
	if err != nil || subtle.ConstantTimeCompare([]byte(cookieState), []byte(state)) != 1 {
		h.Unauthorized(c, "OAuth state mismatch")
		return
	}
	c.SetCookie(oauthStateCookie, "", -1, "/", "", false, true)

	ctx := c.Request.Context()
	token, err := h.oauth.ExchangeCode(ctx, shop, code)
	if err != nil {
		h.logger.Error("Token exchange failed", zap.String("shop", shop), zap.Error(err))
		h.HandleError(c, err)
		return
	}

	t, err := h.tenantRepo.FindByStoreDomain(ctx, shop)
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			h.HandleError(c, err)
			return
		}
		t = tenant.NewTenant(shop, shop)
		if err := h.tenantRepo.Save(ctx, t); err != nil {
			h.HandleError(c, err)
			return
		}
	}

	cred := tenant.NewCredential(t.ID, token.AccessToken, token.Scope, h.oauth.APIVersion())
	if err := h.credentialRepo.Upsert(ctx, cred); err != nil {
		h.HandleError(c, err)
		return
	}

	// Webhook registration failures are logged, not fatal; the bulk import
	// covers the data until topics are registered.
	h.registrar.RegisterAll(ctx, shop, token.AccessToken)

	h.logger.Info("App installed",
		zap.String("shop", shop),
		zap.String("tenant_id", t.ID.String()),
	)
	h.Success(c, InstallResponse{
		TenantID:    t.ID.String(),
		StoreDomain: t.StoreDomain,
		Scopes:      token.Scope,
	})
}

func randomState() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
