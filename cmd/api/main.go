package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/time/rate"

	"github.com/jwalitptl/storefront-api/config"
	"github.com/jwalitptl/storefront-api/internal/commerce"
	accountHandler "github.com/jwalitptl/storefront-api/internal/handler/account"
	authHandler "github.com/jwalitptl/storefront-api/internal/handler/auth"
	"github.com/jwalitptl/storefront-api/internal/handler/health"
	newsletterHandler "github.com/jwalitptl/storefront-api/internal/handler/newsletter"
	promHandler "github.com/jwalitptl/storefront-api/internal/handler/prometheus"
	reviewHandler "github.com/jwalitptl/storefront-api/internal/handler/review"
	"github.com/jwalitptl/storefront-api/internal/i18n"
	"github.com/jwalitptl/storefront-api/internal/middleware"
	"github.com/jwalitptl/storefront-api/internal/router"
	accountService "github.com/jwalitptl/storefront-api/internal/service/account"
	authService "github.com/jwalitptl/storefront-api/internal/service/auth"
	newsletterService "github.com/jwalitptl/storefront-api/internal/service/newsletter"
	reviewService "github.com/jwalitptl/storefront-api/internal/service/review"
	settingsService "github.com/jwalitptl/storefront-api/internal/service/settings"
	"github.com/jwalitptl/storefront-api/pkg/logger"
	"github.com/jwalitptl/storefront-api/pkg/metrics"
)

func main() {
	cfg, err := config.LoadConfig(os.Getenv("CONFIG_FILE"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewLogger(&logger.Config{
		Level: logger.ParseLevel(cfg.Logging.Level),
		JSON:  cfg.Logging.JSON,
	})

	catalog, err := i18n.NewCatalog(cfg.I18n.DefaultLocale)
	if err != nil {
		log.Fatal(err, "failed to load message catalogs")
	}

	// Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.NewMetrics(registry, cfg.Monitoring.Namespace, "")

	// Commerce backend
	client := commerce.NewClient(commerce.Config{
		Endpoint:        cfg.Commerce.Endpoint,
		StorefrontToken: cfg.Commerce.StorefrontToken,
		Timeout:         cfg.Commerce.Timeout,
		MaxFailures:     cfg.Commerce.MaxFailures,
		BreakerTimeout:  cfg.Commerce.BreakerTimeout,
	}, m, log)

	// Shared settings cache
	checkers := map[string]health.Checker{}
	var shared settingsService.Store
	if cfg.Redis.URL != "" {
		store, err := settingsService.NewRedisStore(context.Background(), settingsService.RedisConfig{
			URL:          cfg.Redis.URL,
			KeyPrefix:    cfg.Redis.KeyPrefix,
			PoolSize:     cfg.Redis.PoolSize,
			MinIdleConns: cfg.Redis.MinIdleConns,
		})
		if err != nil {
			log.Fatal(err, "failed to connect to Redis")
		}
		defer store.Close()
		shared = store
		checkers["redis"] = store
	}

	settings := settingsService.NewService(client, shared, settingsService.Config{
		Revalidate:      cfg.Settings.Revalidate,
		CleanupInterval: cfg.Settings.CleanupInterval,
	}, m, log)

	// Services
	accountSvc := accountService.NewService(client, settings, m, log)
	authSvc := authService.NewService(client, settings, cfg.Auth.ResetPasswordPath, m, log)
	reviewSvc := reviewService.NewService(client, m, log)
	newsletterSvc := newsletterService.NewService(client, m, log)

	// Middleware config
	cors := middleware.DefaultCORSConfig()
	cors.AllowOrigins = cfg.Security.AllowedOrigins

	security := middleware.DefaultSecurityConfig()
	security.HSTS = cfg.Security.HSTS

	sizeLimit := middleware.DefaultSizeLimitConfig()
	sizeLimit.MaxBodySize = cfg.Server.MaxBodySize

	var limiter *middleware.RateLimiter
	if cfg.RateLimit.Enabled {
		limiter = middleware.NewRateLimiter(middleware.RateLimiterConfig{
			Rate:        rate.Limit(cfg.RateLimit.RequestsPerSecond),
			Burst:       cfg.RateLimit.Burst,
			IdleTimeout: cfg.RateLimit.IdleTimeout,
		})
	}

	var metricsH *promHandler.Handler
	if cfg.Monitoring.PrometheusEnabled {
		metricsH = promHandler.New(registry, cfg.Monitoring.Namespace)
	}

	// Setup router
	r := router.NewRouter(router.RouterConfig{
		Logger:      log,
		Catalog:     catalog,
		CORS:        cors,
		Security:    security,
		SizeLimit:   sizeLimit,
		Timeout:     middleware.TimeoutConfig{Duration: cfg.Server.RequestTimeout},
		Cache:       middleware.DefaultCacheConfig(),
		RateLimiter: limiter,
		MetricsPath: cfg.Monitoring.MetricsPath,
	},
		health.NewHandler(checkers),
		metricsH,
		accountHandler.NewHandler(accountSvc, catalog),
		authHandler.NewHandler(authSvc, catalog),
		reviewHandler.NewHandler(reviewSvc, catalog),
		newsletterHandler.NewHandler(newsletterSvc, catalog),
	)
	r.Setup()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r.Engine(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info("starting server", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err, "failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error(err, "server forced to shutdown")
	}

	log.Info("server exited properly")
}
