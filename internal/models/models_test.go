// Panoptes - Web Analytics Administration Dashboard
// Copyright 2026 M. Lachowski (mlachowski)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mlachowski/panoptes

package models

import "testing"

func TestParseResolution(t *testing.T) {
	tests := []struct {
		in     string
		wantW  int
		wantH  int
		wantOK bool
	}{
		{"1179x2556", 1179, 2556, true},
		{" 1920x1080 ", 1920, 1080, true},
		{"1080 x 2340", 1080, 2340, true},
		{"", 0, 0, false},
		{"1179", 0, 0, false},
		{"ax b", 0, 0, false},
		{"-100x200", 0, 0, false},
		{"0x0", 0, 0, false},
	}

	for _, tt := range tests {
		w, h, ok := parseResolution(tt.in)
		if ok != tt.wantOK || w != tt.wantW || h != tt.wantH {
			t.Errorf("parseResolution(%q) = (%d, %d, %v), want (%d, %d, %v)",
				tt.in, w, h, ok, tt.wantW, tt.wantH, tt.wantOK)
		}
	}
}

func TestVisitorRowCharacteristics(t *testing.T) {
	ratio := 3.0
	row := VisitorRow{
		SessionID:        "s-1",
		OS:               "iOS",
		Browser:          "Safari",
		DeviceCategory:   "mobile",
		DeviceBrand:      "Apple",
		ScreenResolution: "1179x2556",
		PixelRatio:       &ratio,
		GPURenderer:      "Apple A17 Pro GPU",
	}

	obs := row.Characteristics()

	if obs.ScreenWidth == nil || *obs.ScreenWidth != 1179 {
		t.Errorf("ScreenWidth = %v, want 1179", obs.ScreenWidth)
	}
	if obs.ScreenHeight == nil || *obs.ScreenHeight != 2556 {
		t.Errorf("ScreenHeight = %v, want 2556", obs.ScreenHeight)
	}
	if obs.PixelRatio == nil || *obs.PixelRatio != 3.0 {
		t.Errorf("PixelRatio = %v, want 3.0", obs.PixelRatio)
	}
	if obs.OS != "iOS" || obs.Brand != "Apple" || obs.DeviceCategory != "mobile" {
		t.Errorf("coarse fields not forwarded: %+v", obs)
	}
}

func TestVisitorRowCharacteristicsSparse(t *testing.T) {
	row := VisitorRow{SessionID: "s-2", ScreenResolution: "garbage"}

	obs := row.Characteristics()

	if obs.ScreenWidth != nil || obs.ScreenHeight != nil {
		t.Errorf("unparseable resolution must stay absent, got %+v", obs)
	}
}
