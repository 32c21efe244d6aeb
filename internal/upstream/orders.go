// Panoptes - Web Analytics Administration Dashboard
// Copyright 2026 M. Lachowski (mlachowski)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mlachowski/panoptes

package upstream

import (
	"context"
	"net/url"

	"github.com/mlachowski/panoptes/internal/config"
	"github.com/mlachowski/panoptes/internal/models"
)

// OrdersClient fetches subscription box and snack inventory data from
// the orders backend.
type OrdersClient struct {
	*Client
}

// NewOrdersClient creates the orders backend client.
func NewOrdersClient(cfg config.ProviderConfig) *OrdersClient {
	return &OrdersClient{Client: NewClient("orders", cfg)}
}

// Boxes returns the configured subscription boxes.
func (c *OrdersClient) Boxes(ctx context.Context) ([]models.BoxRecord, error) {
	var boxes []models.BoxRecord
	if err := c.getJSON(ctx, "/api/boxes", nil, &boxes); err != nil {
		return nil, err
	}
	return boxes, nil
}

// Snacks returns the snack inventory, optionally filtered to one box.
func (c *OrdersClient) Snacks(ctx context.Context, boxID string) ([]models.SnackRecord, error) {
	var q url.Values
	if boxID != "" {
		q = url.Values{"box_id": []string{boxID}}
	}

	var snacks []models.SnackRecord
	if err := c.getJSON(ctx, "/api/snacks", q, &snacks); err != nil {
		return nil, err
	}
	return snacks, nil
}
