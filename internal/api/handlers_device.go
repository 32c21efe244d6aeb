// Panoptes - Web Analytics Administration Dashboard
// Copyright 2026 M. Lachowski (mlachowski)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mlachowski/panoptes

package api

import (
	"net/http"

	"github.com/goccy/go-json"

	"github.com/mlachowski/panoptes/internal/device"
)

// DeviceEntry is one catalog signature as exposed over the API.
type DeviceEntry struct {
	Model        string   `json:"model"`
	ScreenWidth  int      `json:"screen_width"`
	ScreenHeight int      `json:"screen_height"`
	PixelRatio   float64  `json:"pixel_ratio"`
	GPUHints     []string `json:"gpu_hints,omitempty"`
	TouchPoints  *int     `json:"touch_points,omitempty"`
}

// Devices lists the signature catalog the inference engine matches
// against.
func (h *Handler) Devices(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	entries := h.catalog.Entries()
	out := make([]DeviceEntry, len(entries))
	for i, sig := range entries {
		out[i] = DeviceEntry{
			Model:        sig.Model,
			ScreenWidth:  sig.ScreenWidth,
			ScreenHeight: sig.ScreenHeight,
			PixelRatio:   sig.PixelRatio,
			GPUHints:     sig.GPUHints,
			TouchPoints:  sig.TouchPoints,
		}
	}
	rw.Success(out)
}

// Classify runs one ad-hoc classification over the posted
// characteristics. All input fields are optional; an empty body is a
// valid (if uninformative) observation.
func (h *Handler) Classify(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var obs device.Characteristics
	if err := json.NewDecoder(r.Body).Decode(&obs); err != nil {
		rw.BadRequest("invalid JSON body")
		return
	}

	rw.Success(h.enricher.Classify(obs))
}
