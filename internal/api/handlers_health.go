// Panoptes - Web Analytics Administration Dashboard
// Copyright 2026 M. Lachowski (mlachowski)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mlachowski/panoptes

package api

import (
	"net/http"
	"time"
)

// HealthStatus is the payload of the health endpoint.
type HealthStatus struct {
	Status        string          `json:"status"`
	Version       string          `json:"version,omitempty"`
	UptimeSeconds int64           `json:"uptime_seconds"`
	CatalogSize   int             `json:"catalog_size"`
	Providers     map[string]bool `json:"providers"`
}

// Health reports overall service health and which providers are
// configured.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	rw.Success(HealthStatus{
		Status:        "ok",
		Version:       h.version,
		UptimeSeconds: int64(time.Since(h.startTime).Seconds()),
		CatalogSize:   h.catalog.Len(),
		Providers: map[string]bool{
			"analytics": h.analytics != nil && h.analytics.Enabled(),
			"search":    h.search != nil && h.search.Enabled(),
			"orders":    h.orders != nil && h.orders.Enabled(),
		},
	})
}

// HealthLive is the liveness probe: the process is up.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(map[string]string{"status": "alive"})
}

// HealthReady is the readiness probe. The service is ready when the
// signature catalog is loaded; providers may still be degraded.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	if h.catalog.IsEmpty() {
		rw.ServiceUnavailable("signature catalog not loaded")
		return
	}
	rw.Success(map[string]string{"status": "ready"})
}
