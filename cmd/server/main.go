// Panoptes - Web Analytics Administration Dashboard
// Copyright 2026 M. Lachowski (mlachowski)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mlachowski/panoptes

// Command server runs the Panoptes dashboard API.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/mlachowski/panoptes/internal/api"
	"github.com/mlachowski/panoptes/internal/auth"
	"github.com/mlachowski/panoptes/internal/cache"
	"github.com/mlachowski/panoptes/internal/config"
	"github.com/mlachowski/panoptes/internal/device"
	"github.com/mlachowski/panoptes/internal/enrich"
	"github.com/mlachowski/panoptes/internal/logging"
	"github.com/mlachowski/panoptes/internal/supervisor"
	"github.com/mlachowski/panoptes/internal/supervisor/services"
	"github.com/mlachowski/panoptes/internal/upstream"
	"github.com/mlachowski/panoptes/internal/websocket"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})
	logging.Info().Str("version", version).Msg("starting panoptes")

	catalog := device.DefaultCatalog()
	if catalog.IsEmpty() {
		logging.Fatal().Msg("device signature catalog is empty")
	}

	// Upstream provider clients.
	analytics := upstream.NewAnalyticsClient(cfg.Analytics)
	search := upstream.NewSearchClient(cfg.Search)
	orders := upstream.NewOrdersClient(cfg.Orders)

	// Live event hub; enrichment pushes classification events into it.
	hub := websocket.NewHub()
	enricher := enrich.New(catalog, enrich.WithResultHook(hub.BroadcastClassification))

	// Authentication.
	var (
		jwtManager *auth.JWTManager
		verifier   *auth.Verifier
	)
	if cfg.Auth.Enabled {
		jwtManager = auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
		verifier = auth.NewVerifier(cfg.Auth.AdminUsername, cfg.Auth.AdminPasswordHash)
	} else {
		logging.Warn().Msg("authentication disabled, all endpoints are open")
	}
	authMW := auth.NewMiddleware(jwtManager, cfg.Auth.Enabled)

	var responseCache *cache.Cache
	if cfg.Server.CacheTTL > 0 {
		responseCache = cache.New(cfg.Server.CacheTTL)
	}

	handler := api.NewHandler(api.Deps{
		Config:    cfg,
		Analytics: analytics,
		Search:    search,
		Orders:    orders,
		Enricher:  enricher,
		Catalog:   catalog,
		Verifier:  verifier,
		JWT:       jwtManager,
		Hub:       hub,
		Cache:     responseCache,
		Version:   version,
	})

	chiMW := api.NewChiMiddleware(&api.ChiMiddlewareConfig{
		CORSAllowedOrigins:   cfg.Server.CORSAllowedOrigins,
		CORSAllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		CORSAllowedHeaders:   []string{"Content-Type", "Authorization"},
		CORSAllowCredentials: false,
		CORSMaxAge:           86400,
		RateLimitRequests:    cfg.Server.RateLimitRequests,
		RateLimitWindow:      cfg.Server.RateLimitWindow,
	})

	router := api.NewRouter(handler, chiMW, authMW)

	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router.Setup(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Supervisor tree; suture events log through the slog adapter.
	tree, err := supervisor.NewTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to create supervisor tree")
	}
	tree.AddMessagingService(services.NewWebSocketHubService(hub))
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("received shutdown signal")
		cancel()
	}()

	logging.Info().Str("addr", cfg.Server.Addr).Msg("starting supervisor tree")
	errCh := tree.ServeBackground(ctx)

	if err := <-errCh; err != nil && !errors.Is(err, context.Canceled) {
		logging.Error().Err(err).Msg("supervisor tree stopped with error")
		os.Exit(1)
	}

	if report, err := tree.UnstoppedServiceReport(); err == nil && len(report) > 0 {
		for _, svc := range report {
			logging.Warn().Str("service", svc.Name).Msg("service did not stop in time")
		}
	}
	logging.Info().Msg("panoptes stopped")
}
