// Panoptes - Web Analytics Administration Dashboard
// Copyright 2026 M. Lachowski (mlachowski)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mlachowski/panoptes

// Package upstream implements the HTTP clients for the external data
// providers the dashboard renders: the web analytics provider, the
// search-console provider and the orders backend.
//
// Every client shares the same resilience envelope: a client-side rate
// limiter keeps Panoptes polite towards provider quotas, and a circuit
// breaker sheds load fast when a provider is down instead of stacking up
// timeouts. A failing provider degrades its dashboard panels; it never
// takes the server down.
package upstream

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/mlachowski/panoptes/internal/config"
	"github.com/mlachowski/panoptes/internal/logging"
	"github.com/mlachowski/panoptes/internal/metrics"
)

var (
	// ErrDisabled is returned when the provider is not configured.
	ErrDisabled = errors.New("provider disabled")

	// ErrUnavailable is returned when the provider is unreachable, errors
	// out, or its circuit breaker is open.
	ErrUnavailable = errors.New("provider unavailable")
)

// Client is the shared transport for one provider.
type Client struct {
	name    string
	baseURL string
	apiKey  string
	enabled bool

	httpClient *http.Client
	limiter    *rate.Limiter
	breaker    *gobreaker.CircuitBreaker[[]byte]
}

// NewClient builds a provider client from its config section.
func NewClient(name string, cfg config.ProviderConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	limit := rate.Limit(cfg.RatePerSecond)
	if cfg.RatePerSecond <= 0 {
		limit = rate.Inf
	}
	burst := cfg.RateBurst
	if burst <= 0 {
		burst = 1
	}

	breaker := gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        name,
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 5 {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= 0.6
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Info().
				Str("provider", name).
				Str("from", breakerStateString(from)).
				Str("to", breakerStateString(to)).
				Msg("circuit breaker state change")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(breakerStateValue(to))
		},
	})
	metrics.CircuitBreakerState.WithLabelValues(name).Set(0)

	return &Client{
		name:       name,
		baseURL:    cfg.URL,
		apiKey:     cfg.APIKey,
		enabled:    cfg.Enabled,
		httpClient: &http.Client{Timeout: timeout},
		limiter:    rate.NewLimiter(limit, burst),
		breaker:    breaker,
	}
}

// Name returns the provider name used in logs and metrics.
func (c *Client) Name() string {
	return c.name
}

// Enabled reports whether the provider is configured.
func (c *Client) Enabled() bool {
	return c.enabled
}

// getJSON performs a rate-limited, breaker-guarded GET and decodes the
// JSON response body into out.
func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	if !c.enabled {
		return fmt.Errorf("%s: %w", c.name, ErrDisabled)
	}

	if err := c.limiter.Wait(ctx); err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(c.name, "rejected").Inc()
		return fmt.Errorf("%s: rate limit wait: %w", c.name, err)
	}

	start := time.Now()
	body, err := c.breaker.Execute(func() ([]byte, error) {
		return c.fetch(ctx, path, query)
	})
	if err != nil {
		metrics.RecordUpstreamRequest(c.name, "error", time.Since(start))
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return fmt.Errorf("%s: %w: %w", c.name, ErrUnavailable, err)
		}
		return fmt.Errorf("%s: %w", c.name, err)
	}
	metrics.RecordUpstreamRequest(c.name, "ok", time.Since(start))

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%s: decode response: %w", c.name, err)
	}
	return nil
}

func (c *Client) fetch(ctx context.Context, path string, query url.Values) ([]byte, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	u = u.JoinPath(path)
	if query != nil {
		u.RawQuery = query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("%w: unexpected status %d", ErrUnavailable, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	return body, nil
}

func breakerStateString(s gobreaker.State) string {
	switch s {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}

func breakerStateValue(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}
