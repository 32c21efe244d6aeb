// Panoptes - Web Analytics Administration Dashboard
// Copyright 2026 M. Lachowski (mlachowski)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mlachowski/panoptes

package device

// ModelUnknown is the sentinel model name returned when no catalog entry
// clears the confidence threshold and no coarse fallback applies.
const ModelUnknown = "Unknown"

// Characteristics is the (possibly partial) set of measurements and hints
// available for one client at classification time.
//
// Numeric fields are pointers so that "absent" and "zero" stay
// distinguishable; empty strings mean absent for string fields. All
// fields are optional and a fully empty value is a valid input.
type Characteristics struct {
	// ScreenWidth and ScreenHeight are the display dimensions in device
	// pixels (not CSS pixels).
	ScreenWidth  *int `json:"screen_width,omitempty"`
	ScreenHeight *int `json:"screen_height,omitempty"`

	// PixelRatio is the device pixel ratio reported by the client.
	PixelRatio *float64 `json:"pixel_ratio,omitempty"`

	// GPURenderer is the raw renderer string reported by the GPU/driver.
	GPURenderer string `json:"gpu_renderer,omitempty"`

	// MaxTouchPoints is the number of simultaneous touch points supported.
	MaxTouchPoints *int `json:"max_touch_points,omitempty"`

	// DeviceCategory is the coarse analytics-reported category, typically
	// one of "mobile", "desktop" or "tablet".
	DeviceCategory string `json:"device_category,omitempty"`

	// OS is the operating system or platform family name.
	OS string `json:"os,omitempty"`

	// Browser is the browser name reported by the analytics provider.
	Browser string `json:"browser,omitempty"`

	// Brand and Model are vendor-reported strings. They are weak hints
	// only; Model in particular is frequently a marketing alias and is
	// never trusted over measured signals.
	Brand string `json:"brand,omitempty"`
	Model string `json:"model,omitempty"`

	// DeviceMemoryGB and HardwareConcurrency are sampled alongside the
	// display metrics when the runtime exposes them. They are echoed in
	// results for diagnostics but do not participate in scoring.
	DeviceMemoryGB      *float64 `json:"device_memory_gb,omitempty"`
	HardwareConcurrency *int     `json:"hardware_concurrency,omitempty"`
}

// HasStrongSignal reports whether the input carries direct display
// telemetry (screen dimensions and pixel ratio). The accept threshold is
// stricter when strong signal is available.
func (c Characteristics) HasStrongSignal() bool {
	return c.ScreenWidth != nil && c.PixelRatio != nil
}

// Match pairs a catalog model with its raw score for one classification.
type Match struct {
	Model string `json:"model"`
	Score int    `json:"score"`
}

// Result is the outcome of a single classification call.
type Result struct {
	// DetectedModel is a catalog model name, a coarse fallback label such
	// as "Desktop (Windows)", or ModelUnknown.
	DetectedModel string `json:"detected_model"`

	// Confidence is a relative ranking score in [0, 100]. It is the raw
	// top score for catalog matches and Unknown results, or a fixed low
	// value for coarse fallback labels. It is not a probability.
	Confidence int `json:"confidence"`

	// Characteristics echoes the classified input for auditing.
	Characteristics Characteristics `json:"characteristics"`

	// TopMatches holds the highest-scoring catalog entries in descending
	// score order. Ties keep catalog declaration order.
	TopMatches []Match `json:"top_matches"`
}

// Outcome labels the result for metrics: "match" for accepted catalog
// models, "fallback" for coarse fallback labels, "unknown" otherwise.
// Fallback labels are the only results carrying exactly the fixed
// fallback confidence; accepted matches always clear the higher accept
// bars.
func (r Result) Outcome() string {
	switch {
	case r.DetectedModel == ModelUnknown:
		return "unknown"
	case r.Confidence == fallbackConfidence:
		return "fallback"
	default:
		return "match"
	}
}
