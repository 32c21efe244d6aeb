// Panoptes - Web Analytics Administration Dashboard
// Copyright 2026 M. Lachowski (mlachowski)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mlachowski/panoptes

package api

import (
	"fmt"
	"net/http"
	"strconv"
	"time"
)

const (
	defaultRangeDays = 30
	defaultLimit     = 100
	maxLimit         = 1000
)

// parseTimeRange reads from/to query parameters, accepting RFC 3339
// timestamps or plain YYYY-MM-DD dates. An absent range defaults to the
// trailing 30 days.
func parseTimeRange(r *http.Request) (from, to time.Time, err error) {
	// Truncated so the default range is stable across requests within
	// the same minute, which lets the response cache hit.
	now := time.Now().UTC().Truncate(time.Minute)
	to = now
	from = now.AddDate(0, 0, -defaultRangeDays)

	if raw := r.URL.Query().Get("from"); raw != "" {
		from, err = parseTimeParam(raw)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid from parameter: %w", err)
		}
	}
	if raw := r.URL.Query().Get("to"); raw != "" {
		to, err = parseTimeParam(raw)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid to parameter: %w", err)
		}
	}
	if to.Before(from) {
		return time.Time{}, time.Time{}, fmt.Errorf("to precedes from")
	}
	return from, to, nil
}

func parseTimeParam(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("expected RFC 3339 or YYYY-MM-DD, got %q", raw)
	}
	return t, nil
}

// parseLimit reads the limit query parameter, clamped to [1, maxLimit].
func parseLimit(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return defaultLimit, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("limit must be a positive integer, got %q", raw)
	}
	if n > maxLimit {
		n = maxLimit
	}
	return n, nil
}
