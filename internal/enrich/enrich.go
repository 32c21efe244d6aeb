// Panoptes - Web Analytics Administration Dashboard
// Copyright 2026 M. Lachowski (mlachowski)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mlachowski/panoptes

// Package enrich annotates visitor rows with a device-model guess from
// the inference engine and records classification metrics. Enrichment is
// best-effort: it never fails a request, it only adds fields.
package enrich

import (
	"time"

	"github.com/mlachowski/panoptes/internal/device"
	"github.com/mlachowski/panoptes/internal/metrics"
	"github.com/mlachowski/panoptes/internal/models"
)

// Enricher runs the device inference engine over visitor rows.
type Enricher struct {
	catalog  device.Catalog
	onResult func(models.VisitorRow, device.Result)
}

// Option configures an Enricher.
type Option func(*Enricher)

// WithResultHook registers a callback invoked for every enriched row,
// after the row has been annotated. Used to push live classification
// events to WebSocket subscribers.
func WithResultHook(fn func(models.VisitorRow, device.Result)) Option {
	return func(e *Enricher) { e.onResult = fn }
}

// New creates an Enricher over the given signature catalog.
func New(catalog device.Catalog, opts ...Option) *Enricher {
	e := &Enricher{catalog: catalog}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Annotate classifies each row in place and returns the slice for
// convenience. Rows keep their provider-reported fields untouched; only
// the detected_device and device_confidence fields are written.
func (e *Enricher) Annotate(rows []models.VisitorRow) []models.VisitorRow {
	for i := range rows {
		res := e.classifyRow(rows[i])
		rows[i].DetectedDevice = res.DetectedModel
		rows[i].DeviceConfidence = res.Confidence
		if e.onResult != nil {
			e.onResult(rows[i], res)
		}
	}
	return rows
}

// Classify runs one ad-hoc classification, as used by the POST
// /classify endpoint. Metrics are recorded the same way as for row
// enrichment.
func (e *Enricher) Classify(obs device.Characteristics) device.Result {
	start := time.Now()
	res := device.Classify(obs, e.catalog)
	metrics.RecordClassification(res.Outcome(), res.Confidence, time.Since(start))
	return res
}

func (e *Enricher) classifyRow(row models.VisitorRow) device.Result {
	return e.Classify(row.Characteristics())
}
