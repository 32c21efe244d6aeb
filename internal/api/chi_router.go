// Panoptes - Web Analytics Administration Dashboard
// Copyright 2026 M. Lachowski (mlachowski)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mlachowski/panoptes

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mlachowski/panoptes/internal/auth"
	"github.com/mlachowski/panoptes/internal/middleware"
)

// chiMiddleware adapts http.HandlerFunc middleware to Chi's
// func(http.Handler) http.Handler shape.
func chiMiddleware(mw func(http.HandlerFunc) http.HandlerFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return mw(next.ServeHTTP)
	}
}

// Router wires handlers, middleware factories and authentication into
// one chi mux.
type Router struct {
	handler       *Handler
	chiMiddleware *ChiMiddleware
	authMW        *auth.Middleware
}

// NewRouter creates the router.
func NewRouter(handler *Handler, mw *ChiMiddleware, authMW *auth.Middleware) *Router {
	return &Router{
		handler:       handler,
		chiMiddleware: mw,
		authMW:        authMW,
	}
}

// Setup configures all HTTP routes.
func (router *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Global middleware, applied to every route in order.
	r.Use(RequestIDWithLogging())
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(router.chiMiddleware.CORS()) // global so OPTIONS preflight is handled

	// Health endpoints: unauthenticated, permissive rate limit for
	// monitoring probes.
	r.Route("/api/v1/health", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimitHealth())
		r.Use(APISecurityHeaders())
		r.Get("/", router.handler.Health)
		r.Get("/live", router.handler.HealthLive)
		r.Get("/ready", router.handler.HealthReady)
	})

	// Login is the only unauthenticated mutating endpoint; strict rate
	// limit against brute force.
	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Use(APISecurityHeaders())
		r.With(router.chiMiddleware.RateLimitLogin()).Post("/login", router.handler.Login)
	})

	// Data endpoints: everything the dashboard renders requires a valid
	// session token.
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())
		r.Use(APISecurityHeaders())
		r.Use(chiMiddleware(middleware.PrometheusMetrics))
		r.Use(router.authMW.RequireAuth)

		r.Get("/visitors", router.handler.Visitors)
		r.Get("/traffic", router.handler.Traffic)
		r.Get("/rankings", router.handler.Rankings)
		r.Get("/boxes", router.handler.Boxes)
		r.Get("/snacks", router.handler.Snacks)
		r.Get("/devices", router.handler.Devices)
		r.Post("/classify", router.handler.Classify)

		r.With(router.chiMiddleware.RateLimitWebSocket()).Get("/ws", router.handler.WebSocket)
	})

	// Prometheus scrape endpoint, outside the API envelope.
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	return r
}
