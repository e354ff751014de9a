package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	applyDefaults(cfg)

	assert.Equal(t, "shopsync-backend", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, 25, cfg.Database.MaxOpenConns)
	assert.Equal(t, 50, cfg.Shopify.PageSize)
	assert.Equal(t, 3, cfg.Shopify.MaxRetries)
	assert.Equal(t, 30*time.Second, cfg.Shopify.RequestTimeout)
	assert.Equal(t, 4, cfg.Worker.EventWorkers)
	assert.Equal(t, 24*time.Hour, cfg.Worker.DedupTTL)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg := &Config{}
		applyDefaults(cfg)
		return cfg
	}

	t.Run("default config is valid", func(t *testing.T) {
		require.NoError(t, valid().validate())
	})

	t.Run("rejects idle conns exceeding open conns", func(t *testing.T) {
		cfg := valid()
		cfg.Database.MaxIdleConns = 100
		assert.Error(t, cfg.validate())
	})

	t.Run("rejects out-of-range page size", func(t *testing.T) {
		cfg := valid()
		cfg.Shopify.PageSize = 500
		assert.Error(t, cfg.validate())
	})

	t.Run("production requires api secret", func(t *testing.T) {
		cfg := valid()
		cfg.App.Env = "production"
		cfg.Database.Password = "secret"
		cfg.Database.SSLMode = "require"
		cfg.Shopify.AppBaseURL = "https://sync.example.com"
		assert.ErrorContains(t, cfg.validate(), "api_secret")

		cfg.Shopify.APISecret = "shhh"
		assert.NoError(t, cfg.validate())
	})

	t.Run("production rejects wildcard CORS", func(t *testing.T) {
		cfg := valid()
		cfg.App.Env = "production"
		cfg.Database.Password = "secret"
		cfg.Database.SSLMode = "require"
		cfg.Shopify.APISecret = "shhh"
		cfg.Shopify.AppBaseURL = "https://sync.example.com"
		cfg.HTTP.CORSAllowOrigins = []string{"*"}
		assert.Error(t, cfg.validate())
	})
}

func TestDatabaseDSN(t *testing.T) {
	d := DatabaseConfig{
		Host:     "db.internal",
		Port:     5433,
		User:     "sync",
		Password: "p@ss/word",
		DBName:   "shopsync",
		SSLMode:  "require",
	}
	dsn := d.DSN()
	assert.Contains(t, dsn, "postgres://")
	assert.Contains(t, dsn, "db.internal:5433")
	assert.Contains(t, dsn, "sslmode=require")
	// Special characters must be escaped
	assert.NotContains(t, dsn, "p@ss/word")
}

func TestRedisConfig(t *testing.T) {
	r := RedisConfig{}
	assert.False(t, r.Enabled())

	r.Host = "localhost"
	r.Port = 6379
	assert.True(t, r.Enabled())
	assert.Equal(t, "localhost:6379", r.Addr())
}
