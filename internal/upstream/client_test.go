// Panoptes - Web Analytics Administration Dashboard
// Copyright 2026 M. Lachowski (mlachowski)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mlachowski/panoptes

package upstream

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mlachowski/panoptes/internal/config"
)

func providerConfig(url string) config.ProviderConfig {
	return config.ProviderConfig{
		Enabled:       true,
		URL:           url,
		APIKey:        "test-key",
		Timeout:       2 * time.Second,
		RatePerSecond: 100,
		RateBurst:     10,
	}
}

func TestAnalyticsVisitorsDecodesAndAuthenticates(t *testing.T) {
	var gotAuth, gotPath, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		gotQuery = r.URL.Query().Get("limit")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"session_id":"s1","page":"/pricing","os":"iOS","screen_resolution":"1179x2556"},
			{"session_id":"s2","page":"/"}
		]`))
	}))
	defer srv.Close()

	c := NewAnalyticsClient(providerConfig(srv.URL))
	rows, err := c.Visitors(context.Background(), time.Time{}, time.Time{}, 50)
	if err != nil {
		t.Fatalf("Visitors: %v", err)
	}

	if gotAuth != "Bearer test-key" {
		t.Errorf("Authorization = %q, want Bearer test-key", gotAuth)
	}
	if gotPath != "/api/visitors" {
		t.Errorf("path = %q, want /api/visitors", gotPath)
	}
	if gotQuery != "50" {
		t.Errorf("limit query = %q, want 50", gotQuery)
	}
	if len(rows) != 2 {
		t.Fatalf("len(rows) = %d, want 2", len(rows))
	}
	if rows[0].SessionID != "s1" || rows[0].ScreenResolution != "1179x2556" {
		t.Errorf("first row decoded wrong: %+v", rows[0])
	}
}

func TestTimeRangeQueryIsRFC3339UTC(t *testing.T) {
	from := time.Date(2026, 8, 1, 12, 0, 0, 0, time.FixedZone("CET", 3600))
	q := timeRangeQuery(from, time.Time{})

	if got := q.Get("from"); got != "2026-08-01T11:00:00Z" {
		t.Errorf("from = %q, want 2026-08-01T11:00:00Z", got)
	}
	if q.Has("to") {
		t.Error("zero to should be omitted")
	}
}

func TestGetJSONRejectsDisabledProvider(t *testing.T) {
	c := NewClient("analytics-disabled", config.ProviderConfig{Enabled: false})

	var out []struct{}
	err := c.getJSON(context.Background(), "/api/visitors", nil, &out)
	if !errors.Is(err, ErrDisabled) {
		t.Errorf("error = %v, want ErrDisabled", err)
	}
}

func TestGetJSONNonOKStatusIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient("analytics-502", providerConfig(srv.URL))

	var out []struct{}
	err := c.getJSON(context.Background(), "/api/visitors", nil, &out)
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("error = %v, want ErrUnavailable", err)
	}
}

func TestBreakerOpensAfterRepeatedFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient("analytics-breaker", providerConfig(srv.URL))

	var out []struct{}
	// Past the minimum request count with a 100% failure ratio the
	// breaker must stop sending traffic upstream.
	for i := 0; i < 10; i++ {
		_ = c.getJSON(context.Background(), "/api/visitors", nil, &out)
	}

	srv.Close()
	err := c.getJSON(context.Background(), "/api/visitors", nil, &out)
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("error = %v, want ErrUnavailable from open breaker", err)
	}
}

func TestOrdersSnacksFiltersByBox(t *testing.T) {
	var gotBoxID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotBoxID = r.URL.Query().Get("box_id")
		w.Write([]byte(`[{"id":"sn1","box_id":"b1","name":"Matcha Kit Kat"}]`))
	}))
	defer srv.Close()

	c := NewOrdersClient(providerConfig(srv.URL))
	snacks, err := c.Snacks(context.Background(), "b1")
	if err != nil {
		t.Fatalf("Snacks: %v", err)
	}
	if gotBoxID != "b1" {
		t.Errorf("box_id query = %q, want b1", gotBoxID)
	}
	if len(snacks) != 1 || snacks[0].Name != "Matcha Kit Kat" {
		t.Errorf("snacks = %+v", snacks)
	}
}

func TestSearchRankingsDecodes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"query":"japanese snacks","page":"/","clicks":120,"impressions":4000,"ctr":0.03,"position":2.4}]`))
	}))
	defer srv.Close()

	c := NewSearchClient(providerConfig(srv.URL))
	rows, err := c.Rankings(context.Background(), time.Time{}, time.Time{}, 0)
	if err != nil {
		t.Fatalf("Rankings: %v", err)
	}
	if len(rows) != 1 || rows[0].Query != "japanese snacks" || rows[0].Position != 2.4 {
		t.Errorf("rows = %+v", rows)
	}
}

func TestRateLimiterWaitHonorsContext(t *testing.T) {
	cfg := providerConfig("http://127.0.0.1:0")
	cfg.RatePerSecond = 0.001
	cfg.RateBurst = 1
	c := NewClient("analytics-slow", cfg)

	// Drain the single burst token.
	c.limiter.Allow()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	var out []struct{}
	if err := c.getJSON(ctx, "/api/visitors", nil, &out); err == nil {
		t.Fatal("expected error when rate limit wait exceeds context deadline")
	}
}
