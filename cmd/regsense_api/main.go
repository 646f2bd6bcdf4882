// Package main RegSense API
// @title RegSense API
// @version 1.0
// @description Regulatory announcement monitoring: feed ingestion, dedup and LLM-backed classification
// @termsOfService http://swagger.io/terms/
// @contact.name API Support
// @contact.email support@regsense.gg
// @license.name Apache 2.0
// @license.url https://opensource.org/licenses/Apache-2.0
// @BasePath /
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/regsense/regsense/docs"
	"github.com/regsense/regsense/internal/classify"
	"github.com/regsense/regsense/internal/domain"
	"github.com/regsense/regsense/internal/feeds"
	"github.com/regsense/regsense/internal/ingest"
	"github.com/regsense/regsense/internal/llm"
	"github.com/regsense/regsense/internal/router"
	"github.com/regsense/regsense/internal/search"
	"github.com/regsense/regsense/internal/server"
	"github.com/regsense/regsense/internal/storage/pg"
	pkgserver "github.com/regsense/regsense/pkg/server"
)

func main() {
	appSettings := NewAppConfig()
	cfg, err := appSettings.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.SetLogLoggerLevel(cfg.LogLevel)

	ctx := context.Background()

	pool, err := pg.NewConnectionPool(ctx, pg.PoolConfig{ConnStr: cfg.DatabaseURL})
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	store := pg.NewStore(pool)

	sources := feeds.DefaultRegistry()
	if cfg.FeedsConfig != "" {
		sources, err = feeds.LoadRegistry(cfg.FeedsConfig)
		if err != nil {
			slog.Error("Failed to load feeds config", "path", cfg.FeedsConfig, "error", err)
			os.Exit(1)
		}
		slog.Info("Loaded feed registry from config", "path", cfg.FeedsConfig, "sources", len(sources))
	}

	var ingestOpts []ingest.Option
	var searcher router.Searcher
	if cfg.SearchEnabled {
		index, err := search.NewAlertIndex(ctx, cfg.Search)
		if err != nil {
			slog.Error("Failed to set up search index", "error", err)
			os.Exit(1)
		}
		ingestOpts = append(ingestOpts, ingest.WithIndexer(index))
		searcher = index
		slog.Info("Search enabled", "index", cfg.Search.IndexName)
	} else {
		slog.Info("Search disabled")
	}

	ingestor := ingest.New(feeds.NewHTTPFetcher(), store, sources, ingestOpts...)

	extractor := llm.NewOpenRouterClient(cfg.LLM)
	batch := classify.NewBatch(store, classify.NewInvoker(extractor))

	s := server.NewServer(echo.New(), &cfg.Server)

	healthChecker := pkgserver.NewPingHealthChecker(pool.Ping)
	s.Echo.GET("/health", healthHandler(healthChecker))
	s.Echo.GET("/swagger/*", echoSwagger.WrapHandler)
	s.Echo.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, "RegSense API is running")
	})

	var routerOpts []router.AlertsRouterOption
	if searcher != nil {
		routerOpts = append(routerOpts, router.WithSearcher(searcher))
	}
	alertsRouter := router.NewAlertsRouter(s.Echo, store, ingestor, batch, routerOpts...)
	alertsRouter.Bind()

	slog.Info("Starting server",
		"port", cfg.Server.Port,
		"sources", len(sources),
		"jurisdiction", domain.DefaultJurisdiction,
	)

	if err := s.Start(); err != nil {
		s.Echo.Logger.Error("Failed to start server: ", err)
		os.Exit(1)
	}
}

func healthHandler(hc pkgserver.HealthChecker) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !hc.Healthy(c.Request().Context()) {
			return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "unhealthy"})
		}
		return c.JSON(http.StatusOK, map[string]string{
			"status": "healthy",
			"app":    "regsense-api",
		})
	}
}
