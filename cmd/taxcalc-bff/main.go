package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/boddenberg/taxcalc-bff-go/internal/calculators"
	"github.com/boddenberg/taxcalc-bff-go/internal/config"
	"github.com/boddenberg/taxcalc-bff-go/internal/handler"
	"github.com/boddenberg/taxcalc-bff-go/internal/infra/cache"
	"github.com/boddenberg/taxcalc-bff-go/internal/infra/client"
	"github.com/boddenberg/taxcalc-bff-go/internal/infra/observability"
	"github.com/boddenberg/taxcalc-bff-go/internal/infra/resilience"
	"github.com/boddenberg/taxcalc-bff-go/internal/layout"
	"github.com/boddenberg/taxcalc-bff-go/internal/panel"
	"github.com/boddenberg/taxcalc-bff-go/internal/port"
	"github.com/boddenberg/taxcalc-bff-go/internal/render"
	"github.com/boddenberg/taxcalc-bff-go/internal/service"

	"go.uber.org/zap"
)

func main() {
	// --- Load .env file (for local development) ---
	if err := config.LoadDotEnv(".env"); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "ignoring .env: %v\n", err)
	}

	// --- Config ---
	cfg := config.Load()

	// --- Logger ---
	logger := observability.NewLogger(cfg.LogLevel)
	defer logger.Sync()

	logger.Info("configuration loaded",
		zap.Int("port", cfg.Port),
		zap.String("log_level", cfg.LogLevel),
		zap.String("tax_api_url", cfg.TaxAPIURL),
		zap.Duration("http_timeout", cfg.HTTPTimeout),
		zap.Int("max_concurrency", cfg.MaxConcurrency),
		zap.Duration("cache_ttl", cfg.CacheTTL),
		zap.Bool("redis", cfg.RedisAddr != ""),
		zap.Duration("region_ttl", cfg.RegionTTL),
		zap.String("layout_path", cfg.LayoutPath),
		zap.Bool("tracing_enabled", cfg.TracingEnabled),
	)

	// --- Tracing ---
	shutdown, err := observability.InitTracer(cfg.TracingEndpoint(), "taxcalc-bff")
	if err != nil {
		logger.Fatal("failed to init tracer", zap.Error(err))
	}
	defer shutdown(context.Background())

	// --- Metrics ---
	metrics := observability.NewMetrics()

	// --- Resilience ---
	cb := resilience.NewCircuitBreaker("tax-api")
	bulkhead := resilience.NewBulkhead(cfg.MaxConcurrency)

	// --- Tax API client ---
	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}
	taxAPI := client.NewTaxAPIClient(httpClient, cfg.TaxAPIURL, cb, bulkhead)

	deps := []handler.Dependency{{Name: "tax-api", Pinger: taxAPI, Critical: true}}

	// --- Result cache (opt-in) ---
	var transport port.Transport = taxAPI
	if cfg.CacheTTL > 0 {
		var results port.Cache[[]byte]
		if cfg.RedisAddr != "" {
			redis := cache.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.CacheTTL, logger)
			defer redis.Close()
			deps = append(deps, handler.Dependency{Name: "redis", Pinger: redis})
			results = redis
			logger.Info("caching calculation results in redis", zap.String("addr", cfg.RedisAddr))
		} else {
			mem := cache.New[[]byte](cfg.CacheTTL)
			defer mem.Close()
			results = mem
			logger.Info("caching calculation results in memory")
		}
		transport = client.NewCachingTransport(taxAPI, results, metrics)
	}

	// --- Layout & calculators ---
	l, err := layout.Load(cfg.LayoutPath)
	if err != nil {
		logger.Fatal("failed to load layout", zap.Error(err))
	}
	calcs := calculators.All(transport, panel.WithObserver(service.StateLogger(logger)))

	guards := cache.New[*panel.Guard](cfg.RegionTTL)
	defer guards.Close()

	// --- Services ---
	calcSvc, err := service.NewCalculations(calcs, l, guards, metrics, logger)
	if err != nil {
		logger.Fatal("calculators do not match the layout", zap.Error(err))
	}

	renderer, err := render.New()
	if err != nil {
		logger.Fatal("failed to parse templates", zap.Error(err))
	}

	// --- Router ---
	router := handler.NewRouter(calcSvc, renderer, deps, metrics, logger)

	// --- Server ---
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.HTTPTimeout + 10*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// --- Graceful shutdown ---
	go func() {
		logger.Info("server starting", zap.Int("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("server shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("server forced shutdown", zap.Error(err))
	}

	logger.Info("server stopped")
}
