// Panoptes - Web Analytics Administration Dashboard
// Copyright 2026 M. Lachowski (mlachowski)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mlachowski/panoptes

package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	gorillaws "github.com/gorilla/websocket"

	"github.com/mlachowski/panoptes/internal/auth"
	"github.com/mlachowski/panoptes/internal/cache"
	"github.com/mlachowski/panoptes/internal/config"
	"github.com/mlachowski/panoptes/internal/device"
	"github.com/mlachowski/panoptes/internal/enrich"
	"github.com/mlachowski/panoptes/internal/models"
	"github.com/mlachowski/panoptes/internal/upstream"
	"github.com/mlachowski/panoptes/internal/websocket"
)

// VisitorsProvider is the slice of the analytics client the handlers
// depend on. Narrowed to an interface so tests can stub providers.
type VisitorsProvider interface {
	Enabled() bool
	Visitors(ctx context.Context, from, to time.Time, limit int) ([]models.VisitorRow, error)
	Traffic(ctx context.Context, from, to time.Time) ([]models.TrafficPoint, error)
}

// RankingsProvider serves search-console keyword data.
type RankingsProvider interface {
	Enabled() bool
	Rankings(ctx context.Context, from, to time.Time, limit int) ([]models.RankingRow, error)
}

// OrdersProvider serves box and snack inventory data.
type OrdersProvider interface {
	Enabled() bool
	Boxes(ctx context.Context) ([]models.BoxRecord, error)
	Snacks(ctx context.Context, boxID string) ([]models.SnackRecord, error)
}

// Deps bundles everything the handlers need.
type Deps struct {
	Config    *config.Config
	Analytics VisitorsProvider
	Search    RankingsProvider
	Orders    OrdersProvider
	Enricher  *enrich.Enricher
	Catalog   device.Catalog
	Verifier  *auth.Verifier
	JWT       *auth.JWTManager
	Hub       *websocket.Hub
	Cache     *cache.Cache
	Version   string
}

// Handler implements all HTTP endpoints.
type Handler struct {
	cfg       *config.Config
	analytics VisitorsProvider
	search    RankingsProvider
	orders    OrdersProvider
	enricher  *enrich.Enricher
	catalog   device.Catalog
	verifier  *auth.Verifier
	jwt       *auth.JWTManager
	hub       *websocket.Hub
	cache     *cache.Cache
	upgrader  gorillaws.Upgrader
	startTime time.Time
	version   string
}

// NewHandler creates the handler set.
func NewHandler(deps Deps) *Handler {
	return &Handler{
		cfg:       deps.Config,
		analytics: deps.Analytics,
		search:    deps.Search,
		orders:    deps.Orders,
		enricher:  deps.Enricher,
		catalog:   deps.Catalog,
		verifier:  deps.Verifier,
		jwt:       deps.JWT,
		hub:       deps.Hub,
		cache:     deps.Cache,
		upgrader: gorillaws.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     checkOrigin(deps.Config),
		},
		startTime: time.Now(),
		version:   deps.Version,
	}
}

// checkOrigin allows same-origin requests and the configured CORS
// origins.
func checkOrigin(cfg *config.Config) func(*http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		if cfg == nil {
			return false
		}
		for _, allowed := range cfg.Server.CORSAllowedOrigins {
			if allowed == "*" || allowed == origin {
				return true
			}
		}
		return false
	}
}

// cachedResponse returns a previously cached payload. Caching is
// optional; a nil cache always misses.
func (h *Handler) cachedResponse(key string) (interface{}, bool) {
	if h.cache == nil {
		return nil, false
	}
	return h.cache.Get(key)
}

func (h *Handler) storeResponse(key string, data interface{}) {
	if h.cache != nil {
		h.cache.Set(key, data)
	}
}

// respondUpstreamError maps provider errors onto HTTP status codes:
// a disabled provider is 503, everything else is 502.
func respondUpstreamError(rw *ResponseWriter, provider string, err error) {
	if errors.Is(err, upstream.ErrDisabled) {
		rw.ServiceUnavailable("provider not configured: " + provider)
		return
	}
	rw.ExternalServiceError(provider, err)
}
