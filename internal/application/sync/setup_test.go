package syncapp

import (
	"testing"

	"github.com/shopsync/backend/internal/infrastructure/persistence"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// testEnv bundles sqlite-backed repositories for application service tests
type testEnv struct {
	db             *gorm.DB
	tenantRepo     *persistence.GormTenantRepository
	credentialRepo *persistence.GormCredentialRepository
	customerRepo   *persistence.GormCustomerRepository
	productRepo    *persistence.GormProductRepository
	orderRepo      *persistence.GormOrderRepository
	eventRepo      *persistence.GormEventRepository
	jobRepo        *persistence.GormSyncJobRepository
	reconciler     *ReconcileService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, persistence.AutoMigrate(db))

	env := &testEnv{
		db:             db,
		tenantRepo:     persistence.NewGormTenantRepository(db),
		credentialRepo: persistence.NewGormCredentialRepository(db),
		customerRepo:   persistence.NewGormCustomerRepository(db),
		productRepo:    persistence.NewGormProductRepository(db),
		orderRepo:      persistence.NewGormOrderRepository(db),
		eventRepo:      persistence.NewGormEventRepository(db),
		jobRepo:        persistence.NewGormSyncJobRepository(db),
	}
	env.reconciler = NewReconcileService(env.customerRepo, env.productRepo, env.orderRepo, zap.NewNop())
	return env
}
