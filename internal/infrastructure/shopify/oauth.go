package shopify

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"github.com/shopsync/backend/internal/infrastructure/config"
)

// InstallScopes are the access scopes requested during app install
const InstallScopes = "read_customers,read_orders,read_products"

var shopDomainPattern = regexp.MustCompile(`^[a-zA-Z0-9-]+\.myshopify\.com$`)

// ValidShopDomain reports whether a shop parameter looks like a platform
// store domain. Anything else is rejected before building redirect URLs.
func ValidShopDomain(shop string) bool {
	return shopDomainPattern.MatchString(shop)
}

// OAuth implements the app install flow: building the authorize redirect and
// exchanging the callback code for a permanent access token.
type OAuth struct {
	httpClient *http.Client
	apiKey     string
	apiSecret  string
	apiVersion string
	appBaseURL string

	// baseURLFor is replaced in tests to point at a local server
	baseURLFor func(shop string) string
}

// NewOAuth creates the OAuth helper from the shared app configuration
func NewOAuth(cfg config.ShopifyConfig) *OAuth {
	return &OAuth{
		httpClient: &http.Client{Timeout: cfg.RequestTimeout},
		apiKey:     cfg.APIKey,
		apiSecret:  cfg.APISecret,
		apiVersion: cfg.APIVersion,
		appBaseURL: strings.TrimRight(cfg.AppBaseURL, "/"),
		baseURLFor: func(shop string) string {
			return "https://" + shop
		},
	}
}

// APIVersion returns the configured platform API version
func (o *OAuth) APIVersion() string {
	return o.apiVersion
}

// AuthorizeURL builds the platform authorization redirect for a shop
func (o *OAuth) AuthorizeURL(shop, state string) string {
	q := url.Values{}
	q.Set("client_id", o.apiKey)
	q.Set("scope", InstallScopes)
	q.Set("redirect_uri", o.appBaseURL+"/auth/callback")
	q.Set("state", state)
	return fmt.Sprintf("%s/admin/oauth/authorize?%s", o.baseURLFor(shop), q.Encode())
}

// AccessToken is the result of a successful code exchange
type AccessToken struct {
	AccessToken string `json:"access_token"`
	Scope       string `json:"scope"`
}

// ExchangeCode trades the authorization code for a permanent access token
func (o *OAuth) ExchangeCode(ctx context.Context, shop, code string) (*AccessToken, error) {
	payload, err := json.Marshal(map[string]string{
		"client_id":     o.apiKey,
		"client_secret": o.apiSecret,
		"code":          code,
	})
	if err != nil {
		return nil, err
	}

	tokenURL := o.baseURLFor(shop) + "/admin/oauth/access_token"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, tokenURL, strings.NewReader(string(payload)))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := o.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("token exchange failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("token exchange failed: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("token exchange failed: status %d: %s", resp.StatusCode, body)
	}

	var token AccessToken
	if err := json.Unmarshal(body, &token); err != nil {
		return nil, fmt.Errorf("token exchange failed: %w", err)
	}
	if token.AccessToken == "" {
		return nil, fmt.Errorf("token exchange failed: empty access token in response")
	}
	return &token, nil
}
