// Panoptes - Web Analytics Administration Dashboard
// Copyright 2026 M. Lachowski (mlachowski)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mlachowski/panoptes

// Package models defines the record shapes exchanged with the upstream
// providers (web analytics, search console, orders backend) and returned
// by the dashboard API. Records are already shaped server-side; Panoptes
// passes them through, optionally enriched with a device-model guess.
package models

import (
	"strconv"
	"strings"
	"time"

	"github.com/mlachowski/panoptes/internal/device"
)

// VisitorRow is one visitor session as reported by the analytics
// provider. Display-telemetry fields are present only when the tracking
// snippet managed to capture them; most rows carry coarse fields only.
type VisitorRow struct {
	SessionID string    `json:"session_id"`
	FirstSeen time.Time `json:"first_seen"`
	LastSeen  time.Time `json:"last_seen"`
	Page      string    `json:"page"`
	Referrer  string    `json:"referrer,omitempty"`
	Country   string    `json:"country,omitempty"`

	OS             string `json:"os,omitempty"`
	Browser        string `json:"browser,omitempty"`
	DeviceCategory string `json:"device_category,omitempty"`
	DeviceBrand    string `json:"device_brand,omitempty"`
	DeviceModel    string `json:"device_model,omitempty"`

	// ScreenResolution is a "WxH" string in device pixels, e.g.
	// "1179x2556". Empty when the snippet could not observe the screen.
	ScreenResolution string   `json:"screen_resolution,omitempty"`
	PixelRatio       *float64 `json:"pixel_ratio,omitempty"`
	GPURenderer      string   `json:"gpu_renderer,omitempty"`
	MaxTouchPoints   *int     `json:"max_touch_points,omitempty"`

	// DetectedDevice is filled in by the enrichment layer, never by the
	// provider.
	DetectedDevice   string `json:"detected_device,omitempty"`
	DeviceConfidence int    `json:"device_confidence,omitempty"`
}

// Characteristics maps the row onto the inference engine's input,
// parsing the resolution string and forwarding whatever signals the
// provider captured. Unparseable values are simply omitted; the engine
// treats absence as reduced signal, not an error.
func (v VisitorRow) Characteristics() device.Characteristics {
	obs := device.Characteristics{
		GPURenderer:    v.GPURenderer,
		MaxTouchPoints: v.MaxTouchPoints,
		PixelRatio:     v.PixelRatio,
		DeviceCategory: v.DeviceCategory,
		OS:             v.OS,
		Browser:        v.Browser,
		Brand:          v.DeviceBrand,
		Model:          v.DeviceModel,
	}
	if w, h, ok := parseResolution(v.ScreenResolution); ok {
		obs.ScreenWidth = &w
		obs.ScreenHeight = &h
	}
	return obs
}

// parseResolution splits a "WxH" string into positive pixel dimensions.
func parseResolution(s string) (w, h int, ok bool) {
	parts := strings.SplitN(strings.TrimSpace(s), "x", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}
	w, errW := strconv.Atoi(strings.TrimSpace(parts[0]))
	h, errH := strconv.Atoi(strings.TrimSpace(parts[1]))
	if errW != nil || errH != nil || w <= 0 || h <= 0 {
		return 0, 0, false
	}
	return w, h, true
}

// TrafficPoint is one bucket of the traffic time series.
type TrafficPoint struct {
	Date      string `json:"date"` // YYYY-MM-DD
	Sessions  int    `json:"sessions"`
	Pageviews int    `json:"pageviews"`
	Visitors  int    `json:"visitors"`
}

// RankingRow is one search-console query row.
type RankingRow struct {
	Query       string  `json:"query"`
	Page        string  `json:"page"`
	Clicks      int     `json:"clicks"`
	Impressions int     `json:"impressions"`
	CTR         float64 `json:"ctr"`
	Position    float64 `json:"position"`
}

// BoxRecord is an e-commerce box item from the orders backend.
type BoxRecord struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	SKU        string    `json:"sku"`
	PriceCents int       `json:"price_cents"`
	Currency   string    `json:"currency"`
	Active     bool      `json:"active"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// SnackRecord is a single snack inside a box.
type SnackRecord struct {
	ID        string   `json:"id"`
	BoxID     string   `json:"box_id"`
	Name      string   `json:"name"`
	Origin    string   `json:"origin,omitempty"`
	Allergens []string `json:"allergens,omitempty"`
}
