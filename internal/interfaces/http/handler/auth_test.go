package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopsync/backend/internal/infrastructure/persistence"
	"github.com/shopsync/backend/internal/infrastructure/shopify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type stubExchanger struct {
	token    *shopify.AccessToken
	failWith error
	gotShop  string
	gotCode  string
}

func (s *stubExchanger) AuthorizeURL(shop, state string) string {
	return "https://" + shop + "/admin/oauth/authorize?state=" + state
}

func (s *stubExchanger) ExchangeCode(_ context.Context, shop, code string) (*shopify.AccessToken, error) {
	s.gotShop = shop
	s.gotCode = code
	if s.failWith != nil {
		return nil, s.failWith
	}
	return s.token, nil
}

func (s *stubExchanger) APIVersion() string { return "2024-10" }

type stubRegistrar struct {
	shops []string
}

func (s *stubRegistrar) RegisterAll(_ context.Context, shop, _ string) {
	s.shops = append(s.shops, shop)
}

type authTestEnv struct {
	router         *gin.Engine
	tenantRepo     *persistence.GormTenantRepository
	credentialRepo *persistence.GormCredentialRepository
	exchanger      *stubExchanger
	registrar      *stubRegistrar
}

func setupAuthTest(t *testing.T) *authTestEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, persistence.AutoMigrate(db))

	env := &authTestEnv{
		tenantRepo:     persistence.NewGormTenantRepository(db),
		credentialRepo: persistence.NewGormCredentialRepository(db),
		exchanger:      &stubExchanger{token: &shopify.AccessToken{AccessToken: "shpat_token", Scope: "read_orders"}},
		registrar:      &stubRegistrar{},
	}

	router := gin.New()
	NewAuthHandler(env.exchanger, env.registrar, env.tenantRepo, env.credentialRepo, zap.NewNop()).
		RegisterRoutes(router.Group("/"))
	env.router = router
	return env
}

// callback performs the start request to obtain the state cookie, then the
// callback request carrying it.
func (env *authTestEnv) install(t *testing.T, shop string) *httptest.ResponseRecorder {
	t.Helper()

	start := httptest.NewRequest(http.MethodGet, "/auth/start?shop="+shop, nil)
	startRec := httptest.NewRecorder()
	env.router.ServeHTTP(startRec, start)
	require.Equal(t, http.StatusFound, startRec.Code)

	cookies := startRec.Result().Cookies()
	require.NotEmpty(t, cookies)
	var state string
	for _, c := range cookies {
		if c.Name == oauthStateCookie {
			state = c.Value
		}
	}
	require.NotEmpty(t, state)

	cb := httptest.NewRequest(http.MethodGet, "/auth/callback?shop="+shop+"&code=auth-code&state="+state, nil)
	for _, c := range cookies {
		cb.AddCookie(c)
	}
	cbRec := httptest.NewRecorder()
	env.router.ServeHTTP(cbRec, cb)
	return cbRec
}

func TestAuthHandler_Start(t *testing.T) {
	t.Run("redirects valid shop to the authorize URL", func(t *testing.T) {
		env := setupAuthTest(t)

		req := httptest.NewRequest(http.MethodGet, "/auth/start?shop=shop.myshopify.com", nil)
		w := httptest.NewRecorder()
		env.router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusFound, w.Code)
		assert.Contains(t, w.Header().Get("Location"), "shop.myshopify.com/admin/oauth/authorize")
	})

	t.Run("rejects a non-platform domain", func(t *testing.T) {
		env := setupAuthTest(t)

		req := httptest.NewRequest(http.MethodGet, "/auth/start?shop=evil.example.com", nil)
		w := httptest.NewRecorder()
		env.router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAuthHandler_Callback(t *testing.T) {
	ctx := context.Background()

	t.Run("creates tenant and credential and registers webhooks", func(t *testing.T) {
		env := setupAuthTest(t)

		w := env.install(t, "shop.myshopify.com")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "auth-code", env.exchanger.gotCode)

		stored, err := env.tenantRepo.FindByStoreDomain(ctx, "shop.myshopify.com")
		require.NoError(t, err)

		cred, err := env.credentialRepo.FindByTenant(ctx, stored.ID)
		require.NoError(t, err)
		assert.Equal(t, "shpat_token", cred.AccessToken)
		assert.Equal(t, "read_orders", cred.Scopes)

		assert.Equal(t, []string{"shop.myshopify.com"}, env.registrar.shops)
	})

	t.Run("reinstall replaces the credential for the same tenant", func(t *testing.T) {
		env := setupAuthTest(t)

		first := env.install(t, "shop.myshopify.com")
		require.Equal(t, http.StatusOK, first.Code)
		stored, err := env.tenantRepo.FindByStoreDomain(ctx, "shop.myshopify.com")
		require.NoError(t, err)

		env.exchanger.token = &shopify.AccessToken{AccessToken: "shpat_rotated", Scope: "read_orders"}
		second := env.install(t, "shop.myshopify.com")
		require.Equal(t, http.StatusOK, second.Code)

		again, err := env.tenantRepo.FindByStoreDomain(ctx, "shop.myshopify.com")
		require.NoError(t, err)
		assert.Equal(t, stored.ID, again.ID)

		cred, err := env.credentialRepo.FindByTenant(ctx, stored.ID)
		require.NoError(t, err)
		assert.Equal(t, "shpat_rotated", cred.AccessToken)
	})

	t.Run("state mismatch is rejected", func(t *testing.T) {
		env := setupAuthTest(t)

		req := httptest.NewRequest(http.MethodGet, "/auth/callback?shop=shop.myshopify.com&code=auth-code&state=wrong", nil)
		req.AddCookie(&http.Cookie{Name: oauthStateCookie, Value: "expected"})
		w := httptest.NewRecorder()
		env.router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		_, err := env.tenantRepo.FindByStoreDomain(ctx, "shop.myshopify.com")
		assert.Error(t, err)
	})
}
