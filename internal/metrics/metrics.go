// Panoptes - Web Analytics Administration Dashboard
// Copyright 2026 M. Lachowski (mlachowski)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mlachowski/panoptes

// Package metrics provides Prometheus instrumentation for Panoptes:
// device classification outcomes, API endpoint latency and throughput,
// and upstream provider health.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Device classification metrics
	ClassificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "device_classifications_total",
			Help: "Total number of device classifications by outcome",
		},
		[]string{"outcome"}, // "match", "fallback", "unknown"
	)

	ClassificationConfidence = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "device_classification_confidence",
			Help:    "Confidence score distribution of device classifications",
			Buckets: []float64{0, 10, 15, 20, 30, 50, 70, 90, 100},
		},
	)

	ClassificationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "device_classification_duration_seconds",
			Help:    "Duration of a single device classification",
			Buckets: []float64{0.000001, 0.00001, 0.0001, 0.001, 0.01},
		},
	)

	// API endpoint metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of in-flight API requests",
		},
	)

	RateLimitRejections = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "api_rate_limit_rejections_total",
			Help: "Requests rejected by the rate limiter",
		},
	)

	// Upstream provider metrics
	UpstreamRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "upstream_requests_total",
			Help: "Total number of upstream provider requests",
		},
		[]string{"provider", "result"}, // result: "ok", "error", "rejected"
	)

	UpstreamRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "upstream_request_duration_seconds",
			Help:    "Upstream provider request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"provider"},
	)

	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "upstream_circuit_breaker_state",
			Help: "Circuit breaker state per provider (0=closed, 1=half-open, 2=open)",
		},
		[]string{"provider"},
	)

	// WebSocket metrics
	WebSocketConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "websocket_connections",
			Help: "Current number of connected WebSocket clients",
		},
	)

	WebSocketDroppedMessages = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "websocket_dropped_messages_total",
			Help: "Messages dropped because a client send buffer was full",
		},
	)
)

// RecordClassification records one classification outcome. The outcome
// label is "match" for accepted catalog entries, "fallback" for coarse
// labels, and "unknown" for the sentinel.
func RecordClassification(outcome string, confidence int, duration time.Duration) {
	ClassificationsTotal.WithLabelValues(outcome).Inc()
	ClassificationConfidence.Observe(float64(confidence))
	ClassificationDuration.Observe(duration.Seconds())
}

// RecordAPIRequest records a completed API request.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest adjusts the in-flight request gauge.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordUpstreamRequest records one upstream provider call.
func RecordUpstreamRequest(provider, result string, duration time.Duration) {
	UpstreamRequestsTotal.WithLabelValues(provider, result).Inc()
	UpstreamRequestDuration.WithLabelValues(provider).Observe(duration.Seconds())
}
