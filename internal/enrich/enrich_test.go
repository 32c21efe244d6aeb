// Panoptes - Web Analytics Administration Dashboard
// Copyright 2026 M. Lachowski (mlachowski)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mlachowski/panoptes

package enrich

import (
	"testing"

	"github.com/mlachowski/panoptes/internal/device"
	"github.com/mlachowski/panoptes/internal/models"
)

func floatPtr(f float64) *float64 { return &f }

func TestAnnotateFillsDetectionFields(t *testing.T) {
	e := New(device.DefaultCatalog())

	rows := []models.VisitorRow{
		{
			SessionID:        "s1",
			ScreenResolution: "1179x2556",
			PixelRatio:       floatPtr(3.0),
			GPURenderer:      "Apple GPU (Apple A17 Pro)",
		},
		{
			SessionID: "s2",
		},
	}

	out := e.Annotate(rows)

	if out[0].DetectedDevice != "iPhone 15 Pro" {
		t.Errorf("row 0 detected = %q, want iPhone 15 Pro", out[0].DetectedDevice)
	}
	if out[0].DeviceConfidence < 50 {
		t.Errorf("row 0 confidence = %d, want >= 50", out[0].DeviceConfidence)
	}

	if out[1].DetectedDevice != device.ModelUnknown {
		t.Errorf("row 1 detected = %q, want %q", out[1].DetectedDevice, device.ModelUnknown)
	}
	if out[1].DeviceConfidence != 0 {
		t.Errorf("row 1 confidence = %d, want 0", out[1].DeviceConfidence)
	}
}

func TestAnnotateKeepsProviderFields(t *testing.T) {
	e := New(device.DefaultCatalog())

	rows := []models.VisitorRow{{
		SessionID: "s1",
		Page:      "/pricing",
		Country:   "PL",
		OS:        "iOS",
	}}
	out := e.Annotate(rows)

	if out[0].SessionID != "s1" || out[0].Page != "/pricing" || out[0].Country != "PL" {
		t.Errorf("provider fields mutated: %+v", out[0])
	}
}

func TestResultHookSeesAnnotatedRow(t *testing.T) {
	var hookRows []models.VisitorRow
	var hookResults []device.Result

	e := New(device.DefaultCatalog(), WithResultHook(func(row models.VisitorRow, res device.Result) {
		hookRows = append(hookRows, row)
		hookResults = append(hookResults, res)
	}))

	e.Annotate([]models.VisitorRow{
		{SessionID: "s1", DeviceCategory: "mobile", OS: "Android"},
	})

	if len(hookRows) != 1 {
		t.Fatalf("hook called %d times, want 1", len(hookRows))
	}
	if hookRows[0].DetectedDevice == "" {
		t.Error("hook row missing detected device annotation")
	}
	if hookResults[0].DetectedModel != hookRows[0].DetectedDevice {
		t.Errorf("hook row/result mismatch: %q vs %q",
			hookRows[0].DetectedDevice, hookResults[0].DetectedModel)
	}
}

func TestClassifyOutcomeLabels(t *testing.T) {
	e := New(device.DefaultCatalog())

	tests := []struct {
		name    string
		obs     device.Characteristics
		outcome string
	}{
		{
			name: "match",
			obs: device.Characteristics{
				GPURenderer: "Adreno (TM) 750",
			},
			outcome: "match",
		},
		{
			name: "fallback",
			obs: device.Characteristics{
				DeviceCategory: "mobile",
				OS:             "iOS",
			},
			outcome: "fallback",
		},
		{
			name:    "unknown",
			obs:     device.Characteristics{},
			outcome: "unknown",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := e.Classify(tt.obs)
			if got := res.Outcome(); got != tt.outcome {
				t.Errorf("Outcome() = %q (model %q, confidence %d), want %q",
					got, res.DetectedModel, res.Confidence, tt.outcome)
			}
		})
	}
}

func TestAnnotateEmptySlice(t *testing.T) {
	e := New(device.DefaultCatalog())
	if out := e.Annotate(nil); len(out) != 0 {
		t.Errorf("Annotate(nil) = %v, want empty", out)
	}
}
