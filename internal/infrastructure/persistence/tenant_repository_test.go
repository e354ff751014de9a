package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopsync/backend/internal/domain/shared"
	"github.com/shopsync/backend/internal/domain/tenant"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockTenantRepository creates a GormTenantRepository with a mocked SQL connection
func newMockTenantRepository(t *testing.T) (*GormTenantRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormTenantRepository(gormDB), mock, mockDB
}

func TestGormTenantRepository_FindByStoreDomain(t *testing.T) {
	t.Run("finds existing tenant", func(t *testing.T) {
		repo, mock, mockDB := newMockTenantRepository(t)
		defer mockDB.Close()

		tenantID := uuid.New()
		now := time.Now()

		rows := sqlmock.NewRows([]string{"id", "store_domain", "name", "status", "created_at", "updated_at"}).
			AddRow(tenantID, "shop.myshopify.com", "Shop", "active", now, now)

		mock.ExpectQuery(`SELECT \* FROM "tenants" WHERE store_domain = \$1 ORDER BY .* LIMIT .*`).
			WithArgs("shop.myshopify.com", 1).
			WillReturnRows(rows)

		found, err := repo.FindByStoreDomain(context.Background(), "shop.myshopify.com")

		require.NoError(t, err)
		assert.Equal(t, tenantID, found.ID)
		assert.Equal(t, tenant.StatusActive, found.Status)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrNotFound for unknown domain", func(t *testing.T) {
		repo, mock, mockDB := newMockTenantRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "tenants" WHERE store_domain = \$1 ORDER BY .* LIMIT .*`).
			WithArgs("missing.myshopify.com", 1).
			WillReturnError(gorm.ErrRecordNotFound)

		_, err := repo.FindByStoreDomain(context.Background(), "missing.myshopify.com")

		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormTenantRepository_SaveAndFind(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormTenantRepository(db)
	ctx := context.Background()

	stored := tenant.NewTenant("shop.myshopify.com", "Shop")
	require.NoError(t, repo.Save(ctx, stored))

	found, err := repo.FindByID(ctx, stored.ID)
	require.NoError(t, err)
	assert.Equal(t, "shop.myshopify.com", found.StoreDomain)
}

func TestGormCredentialRepository_Upsert(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormCredentialRepository(db)
	ctx := context.Background()
	tenantID := uuid.New()

	first := tenant.NewCredential(tenantID, "token-1", "read_orders", "2024-10")
	require.NoError(t, repo.Upsert(ctx, first))

	// Re-install replaces the token but keeps a single row
	second := tenant.NewCredential(tenantID, "token-2", "read_orders,read_products", "2024-10")
	require.NoError(t, repo.Upsert(ctx, second))
	assert.Equal(t, first.ID, second.ID)

	found, err := repo.FindByTenant(ctx, tenantID)
	require.NoError(t, err)
	assert.Equal(t, "token-2", found.AccessToken)

	var count int64
	db.Table("credentials").Where("tenant_id = ?", tenantID).Count(&count)
	assert.Equal(t, int64(1), count)
}
