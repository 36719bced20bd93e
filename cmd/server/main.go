package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	cartapp "github.com/shopngo/storefront/internal/application/cart"
	catalogapp "github.com/shopngo/storefront/internal/application/catalog"
	checkoutapp "github.com/shopngo/storefront/internal/application/checkout"
	identityapp "github.com/shopngo/storefront/internal/application/identity"
	orderapp "github.com/shopngo/storefront/internal/application/order"
	domainpayment "github.com/shopngo/storefront/internal/domain/payment"
	"github.com/shopngo/storefront/internal/infrastructure/backend"
	fakestore "github.com/shopngo/storefront/internal/infrastructure/catalog"
	"github.com/shopngo/storefront/internal/infrastructure/config"
	"github.com/shopngo/storefront/internal/infrastructure/logger"
	"github.com/shopngo/storefront/internal/infrastructure/payment"
	"github.com/shopngo/storefront/internal/infrastructure/persistence"
	"github.com/shopngo/storefront/internal/interfaces/http/handler"
	"github.com/shopngo/storefront/internal/interfaces/http/middleware"
	"github.com/shopngo/storefront/internal/interfaces/http/router"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(cfg.Log)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting storefront",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Open local durable storage
	store, err := persistence.OpenStateStore(cfg.Storage.Path)
	if err != nil {
		log.Fatal("Failed to open state store", zap.Error(err))
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Error("Error closing state store", zap.Error(err))
		}
	}()
	log.Info("State store opened", zap.String("path", cfg.Storage.Path))

	// Local persistence adapters
	cartRepo := persistence.NewCartRepository(store)
	productCache := persistence.NewProductCache(store)

	// Remote backend adapters (auth, orders, profiles)
	backendClient := backend.NewClient(cfg.Backend, log)
	authProvider := backend.NewAuthProvider(backendClient)
	orderStore := backend.NewOrderStore(backendClient)
	profileStore := backend.NewProfileStore(backendClient)

	// Public catalog client
	catalogClient := fakestore.NewFakestoreClient(cfg.Catalog, log)

	// Payment gateway
	sessionClient := payment.NewStripeSessionClient(cfg.Payment, log)
	var collector domainpayment.Collector
	if cfg.Payment.Stub {
		collector = payment.NewStubCollector(log)
		log.Warn("Payment stub collector enabled, no real payments will be collected")
	} else {
		collector = payment.NewStripeCollector(log)
	}

	// Application services
	ctx := context.Background()
	cartService, err := cartapp.NewService(ctx, cartRepo)
	if err != nil {
		log.Fatal("Failed to restore cart state", zap.Error(err))
	}
	productService, err := catalogapp.NewService(ctx, catalogClient, productCache)
	if err != nil {
		log.Fatal("Failed to restore product cache", zap.Error(err))
	}
	orderService := orderapp.NewService(orderStore)
	checkoutService := checkoutapp.NewService(orderStore, sessionClient, log)
	confirmationService := checkoutapp.NewConfirmationService(collector, orderService, cfg.App.MerchantName, log)
	authService := identityapp.NewAuthService(authProvider, log)
	profileService := identityapp.NewProfileService(profileStore)

	// Warm the product catalog; a cold start with an unreachable catalog is
	// not fatal, the cache fills on the next refresh.
	if err := productService.Refresh(ctx); err != nil {
		log.Warn("Initial catalog refresh failed", zap.Error(err))
	}
	if err := productService.RefreshCategories(ctx); err != nil {
		log.Warn("Initial category refresh failed", zap.Error(err))
	}

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	middleware.SetupValidator()

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORS(cfg.HTTP))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.NewRouter(engine, router.WithAPIVersion("v1")).
		Register(handler.NewProductHandler(productService)).
		Register(handler.NewCartHandler(cartService, productService)).
		Register(handler.NewCheckoutHandler(checkoutService, confirmationService, cartService)).
		Register(handler.NewOrderHandler(orderService)).
		Register(handler.NewAuthHandler(authService)).
		Register(handler.NewProfileHandler(profileService)).
		Setup()

	server := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info("HTTP server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	<-shutdownCtx.Done()
	log.Info("Shutting down")

	timeoutCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.WriteTimeout)
	defer cancel()
	if err := server.Shutdown(timeoutCtx); err != nil {
		log.Error("Graceful shutdown failed", zap.Error(err))
	}
	log.Info("Server stopped")
}
