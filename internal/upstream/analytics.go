// Panoptes - Web Analytics Administration Dashboard
// Copyright 2026 M. Lachowski (mlachowski)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mlachowski/panoptes

package upstream

import (
	"context"
	"net/url"
	"strconv"
	"time"

	"github.com/mlachowski/panoptes/internal/config"
	"github.com/mlachowski/panoptes/internal/models"
)

// AnalyticsClient fetches visitor and traffic data from the web
// analytics provider.
type AnalyticsClient struct {
	*Client
}

// NewAnalyticsClient creates the analytics provider client.
func NewAnalyticsClient(cfg config.ProviderConfig) *AnalyticsClient {
	return &AnalyticsClient{Client: NewClient("analytics", cfg)}
}

// Visitors returns recent visitor rows within the given time range.
func (c *AnalyticsClient) Visitors(ctx context.Context, from, to time.Time, limit int) ([]models.VisitorRow, error) {
	q := timeRangeQuery(from, to)
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}

	var rows []models.VisitorRow
	if err := c.getJSON(ctx, "/api/visitors", q, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// Traffic returns the aggregated traffic series for the given range.
func (c *AnalyticsClient) Traffic(ctx context.Context, from, to time.Time) ([]models.TrafficPoint, error) {
	var points []models.TrafficPoint
	if err := c.getJSON(ctx, "/api/traffic", timeRangeQuery(from, to), &points); err != nil {
		return nil, err
	}
	return points, nil
}

func timeRangeQuery(from, to time.Time) url.Values {
	q := url.Values{}
	if !from.IsZero() {
		q.Set("from", from.UTC().Format(time.RFC3339))
	}
	if !to.IsZero() {
		q.Set("to", to.UTC().Format(time.RFC3339))
	}
	return q
}
