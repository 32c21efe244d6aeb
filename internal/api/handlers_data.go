// Panoptes - Web Analytics Administration Dashboard
// Copyright 2026 M. Lachowski (mlachowski)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mlachowski/panoptes

package api

import (
	"net/http"
	"time"

	"github.com/mlachowski/panoptes/internal/cache"
)

type rangeParams struct {
	From  time.Time
	To    time.Time
	Limit int
}

// Visitors returns recent visitor rows, each enriched with a device
// model guess from the inference engine. Responses are cached briefly
// to keep dashboard refreshes off the provider.
func (h *Handler) Visitors(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	from, to, err := parseTimeRange(r)
	if err != nil {
		rw.BadRequest(err.Error())
		return
	}
	limit, err := parseLimit(r)
	if err != nil {
		rw.BadRequest(err.Error())
		return
	}

	key := cache.GenerateKey("visitors", rangeParams{From: from, To: to, Limit: limit})
	if data, ok := h.cachedResponse(key); ok {
		rw.Success(data)
		return
	}

	rows, err := h.analytics.Visitors(r.Context(), from, to, limit)
	if err != nil {
		respondUpstreamError(rw, "analytics", err)
		return
	}

	enriched := h.enricher.Annotate(rows)
	h.storeResponse(key, enriched)
	rw.Success(enriched)
}

// Traffic returns the aggregated traffic series.
func (h *Handler) Traffic(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	from, to, err := parseTimeRange(r)
	if err != nil {
		rw.BadRequest(err.Error())
		return
	}

	key := cache.GenerateKey("traffic", rangeParams{From: from, To: to})
	if data, ok := h.cachedResponse(key); ok {
		rw.Success(data)
		return
	}

	points, err := h.analytics.Traffic(r.Context(), from, to)
	if err != nil {
		respondUpstreamError(rw, "analytics", err)
		return
	}
	h.storeResponse(key, points)
	rw.Success(points)
}

// Rankings returns search-console keyword positions.
func (h *Handler) Rankings(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	from, to, err := parseTimeRange(r)
	if err != nil {
		rw.BadRequest(err.Error())
		return
	}
	limit, err := parseLimit(r)
	if err != nil {
		rw.BadRequest(err.Error())
		return
	}

	key := cache.GenerateKey("rankings", rangeParams{From: from, To: to, Limit: limit})
	if data, ok := h.cachedResponse(key); ok {
		rw.Success(data)
		return
	}

	rows, err := h.search.Rankings(r.Context(), from, to, limit)
	if err != nil {
		respondUpstreamError(rw, "search", err)
		return
	}
	h.storeResponse(key, rows)
	rw.Success(rows)
}

// Boxes returns the subscription box catalog from the orders backend.
func (h *Handler) Boxes(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	key := cache.GenerateKey("boxes", nil)
	if data, ok := h.cachedResponse(key); ok {
		rw.Success(data)
		return
	}

	boxes, err := h.orders.Boxes(r.Context())
	if err != nil {
		respondUpstreamError(rw, "orders", err)
		return
	}
	h.storeResponse(key, boxes)
	rw.Success(boxes)
}

// Snacks returns snack inventory, optionally filtered by the box_id
// query parameter.
func (h *Handler) Snacks(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	boxID := r.URL.Query().Get("box_id")
	key := cache.GenerateKey("snacks", boxID)
	if data, ok := h.cachedResponse(key); ok {
		rw.Success(data)
		return
	}

	snacks, err := h.orders.Snacks(r.Context(), boxID)
	if err != nil {
		respondUpstreamError(rw, "orders", err)
		return
	}
	h.storeResponse(key, snacks)
	rw.Success(snacks)
}
