package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	metricsapp "github.com/shopsync/backend/internal/application/metrics"
	syncapp "github.com/shopsync/backend/internal/application/sync"
	"github.com/shopsync/backend/internal/domain/shared"
	"github.com/shopsync/backend/internal/infrastructure/cache"
	"github.com/shopsync/backend/internal/infrastructure/config"
	"github.com/shopsync/backend/internal/infrastructure/logger"
	"github.com/shopsync/backend/internal/infrastructure/persistence"
	"github.com/shopsync/backend/internal/infrastructure/shopify"
	"github.com/shopsync/backend/internal/interfaces/http/handler"
	"github.com/shopsync/backend/internal/interfaces/http/middleware"
	"github.com/shopsync/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting ShopSync Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Database with zap-backed gorm logger
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close database", zap.Error(err))
		}
	}()

	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Repositories
	tenantRepo := persistence.NewGormTenantRepository(db.DB)
	credentialRepo := persistence.NewGormCredentialRepository(db.DB)
	customerRepo := persistence.NewGormCustomerRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	eventRepo := persistence.NewGormEventRepository(db.DB)
	jobRepo := persistence.NewGormSyncJobRepository(db.DB)
	metricsRepo := persistence.NewGormMetricsRepository(db.DB)

	// Webhook dedup cache: Redis when configured, in-memory otherwise
	var dedup shared.DedupStore
	if cfg.Redis.Enabled() {
		redisDedup, err := cache.NewRedisDedupStore(cfg.Redis)
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer func() {
			_ = redisDedup.Close()
		}()
		dedup = redisDedup
		log.Info("Using Redis webhook dedup store", zap.String("addr", cfg.Redis.Addr()))
	} else {
		memDedup := cache.NewMemoryDedupStore()
		defer func() {
			_ = memDedup.Close()
		}()
		dedup = memDedup
		log.Info("Using in-memory webhook dedup store")
	}

	// Application services
	reconciler := syncapp.NewReconcileService(customerRepo, productRepo, orderRepo, log)
	client := shopify.NewClient(cfg.Shopify, log)
	fetcher := shopify.NewFetcher(client, reconciler, cfg.Shopify.PageSize, log)

	importService := syncapp.NewImportService(
		tenantRepo, credentialRepo, jobRepo, fetcher,
		cfg.Worker.ImportQueueSize, log,
	)
	importService.Start()
	defer importService.Stop()

	processor := syncapp.NewEventProcessor(
		eventRepo, reconciler, productRepo,
		cfg.Worker.EventWorkers, cfg.Worker.EventQueueSize, log,
	)
	processor.Start()
	defer processor.Stop()

	intake := syncapp.NewWebhookIntakeService(
		cfg.Shopify.APISecret, tenantRepo, eventRepo,
		dedup, cfg.Worker.DedupTTL, processor, log,
	)

	metricsService := metricsapp.NewMetricsService(metricsRepo)
	oauth := shopify.NewOAuth(cfg.Shopify)
	registrar := shopify.NewWebhookRegistrar(cfg.Shopify, log)

	// HTTP engine
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Fatal("Invalid trusted proxies", zap.Error(err))
		}
	}
	engine.Use(middleware.RequestID())
	engine.Use(logger.GinMiddleware(log))
	engine.Use(logger.Recovery(log))
	if len(cfg.HTTP.CORSAllowOrigins) > 0 {
		engine.Use(middleware.CORSWithOrigins(cfg.HTTP.CORSAllowOrigins))
	}
	if cfg.HTTP.RateLimitEnabled {
		limiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(limiter))
	}

	r := router.NewRouter(engine)
	r.Register(handler.NewHealthHandler(db))
	r.Register(handler.NewWebhookHandler(intake, log))
	r.Register(handler.NewIngestionHandler(importService, log))
	r.Register(handler.NewSyncJobHandler(jobRepo))
	r.Register(handler.NewMetricsHandler(metricsService))
	r.Register(handler.NewAuthHandler(oauth, registrar, tenantRepo, credentialRepo, log))
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown: stop accepting requests first, then the deferred
	// Stop calls drain the import and event queues.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
