package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	cartapp "github.com/storefront/backend/internal/application/cart"
	checkoutapp "github.com/storefront/backend/internal/application/checkout"
	inventoryapp "github.com/storefront/backend/internal/application/inventory"
	"github.com/storefront/backend/internal/domain/checkout/acl"
	"github.com/storefront/backend/internal/infrastructure/auth"
	"github.com/storefront/backend/internal/infrastructure/cache"
	"github.com/storefront/backend/internal/infrastructure/config"
	"github.com/storefront/backend/internal/infrastructure/event"
	"github.com/storefront/backend/internal/infrastructure/logger"
	"github.com/storefront/backend/internal/infrastructure/persistence"
	"github.com/storefront/backend/internal/interfaces/http/handler"
	"github.com/storefront/backend/internal/interfaces/http/middleware"
	"github.com/storefront/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting Storefront Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Initialize database connection
	gormLevel := gormlogger.Warn
	if cfg.Log.Level == "debug" {
		gormLevel = gormlogger.Info
	}
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLevel)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Initialize Redis-backed cart snapshot cache
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Error closing redis client", zap.Error(err))
		}
	}()

	// Initialize repositories
	sessionRepo := persistence.NewGormCheckoutSessionRepository(db.DB)
	stockRepo := persistence.NewGormStockLevelRepository(db.DB)
	cartRepo := cache.NewCachedCartRepository(
		persistence.NewGormCartRepository(db.DB),
		cache.NewRedisCartCache(redisClient),
		cfg.Checkout.AnonymousCartTTL,
		log,
	)

	// Article resolution over the catalog, pricing and stock read models
	articles := acl.NewCompositeArticleResolver(
		persistence.NewGormCatalogSource(db.DB),
		persistence.NewGormPricingSource(db.DB),
		persistence.NewGormStockSource(db.DB),
	)

	// Initialize application services
	checkoutService := checkoutapp.NewCheckoutService(sessionRepo, cartRepo, articles)
	cartService := cartapp.NewCartService(cartRepo, articles)
	stockService := inventoryapp.NewStockService(stockRepo)
	jwtService := auth.NewJWTService(cfg.JWT)

	// Initialize event bus and handlers
	eventBus := event.NewInMemoryEventBus(log)

	// Checkout confirmed -> stock reduction, then session completion
	stockReductionHandler := inventoryapp.NewStockReductionHandler(stockRepo, checkoutService, log)
	eventBus.Subscribe(stockReductionHandler)

	log.Info("Event handlers registered",
		zap.Strings("stock_reduction_events", stockReductionHandler.EventTypes()),
	)

	if err := eventBus.Start(context.Background()); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() {
		if err := eventBus.Stop(context.Background()); err != nil {
			log.Error("Error stopping event bus", zap.Error(err))
		}
	}()

	// Inject event bus into services that publish events
	checkoutService.SetEventPublisher(eventBus)
	cartService.SetEventPublisher(eventBus)

	// Initialize HTTP handlers
	checkoutHandler := handler.NewCheckoutHandler(checkoutService, cfg.Checkout.SessionTTL)
	cartHandler := handler.NewCartHandler(cartService)
	stockHandler := handler.NewStockHandler(stockService)
	authHandler := handler.NewAuthHandler(jwtService, cartService)
	systemHandler := handler.NewSystemHandler()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup validation
	middleware.SetupValidator()

	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	engine.Use(middleware.CORSWithConfig(corsConfig))

	// Health check endpoint (outside API versioning)
	engine.GET("/health", healthHandler(db))

	// Setup API routes. Session bootstrap and system endpoints are public;
	// everything touching customer state requires an identity token.
	r := router.NewRouter(engine,
		router.WithAPIVersion("v1"),
		router.WithProtectedMiddleware(middleware.Identity(jwtService)),
	)
	r.Register(authHandler).
		Register(systemHandler)
	r.RegisterProtected(router.RegistrarFunc(authHandler.RegisterProtectedRoutes)).
		RegisterProtected(cartHandler).
		RegisterProtected(checkoutHandler).
		RegisterProtected(stockHandler)
	r.Setup()

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
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

// healthHandler returns a handler for health check endpoints
func healthHandler(db *persistence.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqLog := logger.FromContext(c)
		if err := db.Ping(); err != nil {
			reqLog.Warn("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		})
	}
}
