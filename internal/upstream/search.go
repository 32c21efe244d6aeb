// Panoptes - Web Analytics Administration Dashboard
// Copyright 2026 M. Lachowski (mlachowski)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mlachowski/panoptes

package upstream

import (
	"context"
	"strconv"
	"time"

	"github.com/mlachowski/panoptes/internal/config"
	"github.com/mlachowski/panoptes/internal/models"
)

// SearchClient fetches keyword ranking data from the search-console
// provider.
type SearchClient struct {
	*Client
}

// NewSearchClient creates the search-console provider client.
func NewSearchClient(cfg config.ProviderConfig) *SearchClient {
	return &SearchClient{Client: NewClient("search", cfg)}
}

// Rankings returns keyword positions for the given range, best positions
// first as ordered by the provider.
func (c *SearchClient) Rankings(ctx context.Context, from, to time.Time, limit int) ([]models.RankingRow, error) {
	q := timeRangeQuery(from, to)
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}

	var rows []models.RankingRow
	if err := c.getJSON(ctx, "/api/rankings", q, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}
