package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/harborlight/storefront-backend/api/routes"
	"github.com/harborlight/storefront-backend/internal/catalog"
	"github.com/harborlight/storefront-backend/internal/images"
	"github.com/harborlight/storefront-backend/internal/sheets"
	"github.com/harborlight/storefront-backend/pkg/config"
	"github.com/harborlight/storefront-backend/pkg/db"
	"github.com/harborlight/storefront-backend/pkg/instance"
	"github.com/harborlight/storefront-backend/pkg/logger"
	"github.com/harborlight/storefront-backend/pkg/metrics"
	"github.com/harborlight/storefront-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := dbClient.Migrate(&images.CacheEntry{}); err != nil {
		logg.Error(context.Background(), "failed to migrate image cache schema", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	catalogMetrics := metrics.NewCatalogMetrics(registry)

	feedClient, err := catalog.NewFeedClient(
		cfg.Feed.BaseURL,
		logg,
		catalog.WithFeedPaths(cfg.Feed.Paths),
		catalog.WithHeaderMarkers(cfg.Feed.HeaderMarkers),
		catalog.WithFeedTimeout(cfg.Feed.FetchTimeout),
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create feed client", err)
		os.Exit(1)
	}

	catalogStore, err := catalog.NewStore(redisClient, redisClient.CatalogKey("products"), cfg.Catalog.CacheTTL, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog store", err)
		os.Exit(1)
	}

	imageService, err := images.NewService(
		images.NewRepository(dbClient.DB()),
		images.NewLookupClient(
			images.WithLookupBaseURL(cfg.Images.LookupBaseURL),
			images.WithLookupTimeout(cfg.Images.LookupTimeout),
		),
		logg,
		images.WithMetrics(catalogMetrics),
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create image service", err)
		os.Exit(1)
	}

	catalogService, err := catalog.NewService(
		catalogStore,
		feedClient,
		cfg.Store.LocationID,
		logg,
		catalog.WithMetrics(catalogMetrics),
		catalog.WithImageEvictor(imageService),
		catalog.WithFeaturedLimit(cfg.Catalog.FeaturedLimit),
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog service", err)
		os.Exit(1)
	}

	sheetClient, err := sheets.NewClient(cfg.Sheets.SheetID, sheets.WithBaseURL(cfg.Sheets.BaseURL))
	if err != nil {
		logg.Error(context.Background(), "failed to create sheet client", err)
		os.Exit(1)
	}
	sheetService, err := sheets.NewService(sheetClient, cfg.Sheets.LocationsGID, cfg.Sheets.CategoriesGID, cfg.Sheets.FAQsGID, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create sheet service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":      cfg.App.Env,
		"addr":     addr,
		"instance": instance.GetID(),
	})
	logg.Info(ctx, "starting storefront api server")

	server := &http.Server{
		Addr:    addr,
		Handler: routes.NewRouter(cfg, logg, dbClient, redisClient, catalogService, imageService, sheetService, registry),
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-shutdown
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(shutdownCtx, "graceful shutdown failed", err)
		}
		// Let in-flight image lookups finish their cache writes.
		imageService.Wait()
	}()

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
