// Panoptes - Web Analytics Administration Dashboard
// Copyright 2026 M. Lachowski (mlachowski)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mlachowski/panoptes

package device

// Signature describes the expected measurable characteristics of a known
// device model. Signatures are immutable reference data compiled into the
// binary; there is no runtime mutation path.
type Signature struct {
	// Model is the display name, unique within the catalog.
	Model string `json:"model"`

	// PixelRatio is the expected device pixel ratio.
	PixelRatio float64 `json:"pixel_ratio"`

	// ScreenWidth and ScreenHeight are the expected display dimensions in
	// device pixels, portrait orientation for handhelds.
	ScreenWidth  int `json:"screen_width"`
	ScreenHeight int `json:"screen_height"`

	// GPUHints are substrings matched case-sensitively against the
	// observed GPU renderer string. Any single hint matching counts.
	GPUHints []string `json:"gpu_hints,omitempty"`

	// TouchPoints is the expected touch point count. Nil for models where
	// touch is not a distinguishing signal (e.g. every phone reports 5).
	TouchPoints *int `json:"touch_points,omitempty"`
}

// Catalog is the read-only set of known device signatures. Entry order is
// load-bearing: ties in scoring resolve to the first-declared entry, and
// the coarse fallback chain picks the first entry of a product line.
type Catalog struct {
	entries []Signature
}

// NewCatalog wraps a signature list. Intended for tests; production code
// uses DefaultCatalog.
func NewCatalog(entries []Signature) Catalog {
	return Catalog{entries: entries}
}

// Entries exposes the catalog for read-only iteration. Callers must not
// mutate the returned slice.
func (c Catalog) Entries() []Signature {
	return c.entries
}

// Len returns the number of signatures in the catalog.
func (c Catalog) Len() int {
	return len(c.entries)
}

// IsEmpty reports whether the catalog holds no signatures. An empty
// catalog is a configuration error the caller should treat as fatal at
// startup, not at classification time.
func (c Catalog) IsEmpty() bool {
	return len(c.entries) == 0
}

func touchPoints(n int) *int {
	return &n
}

// defaultSignatures is the built-in reference catalog. Phones come first
// so the mobile fallback chain resolves to a phone, not a tablet.
// Resolutions are physical device pixels in portrait orientation.
var defaultSignatures = []Signature{
	{
		Model:        "iPhone 15 Pro",
		PixelRatio:   3.0,
		ScreenWidth:  1179,
		ScreenHeight: 2556,
		GPUHints:     []string{"A17 Pro", "Apple A17"},
	},
	{
		Model:        "iPhone 15 Pro Max",
		PixelRatio:   3.0,
		ScreenWidth:  1290,
		ScreenHeight: 2796,
		GPUHints:     []string{"A17 Pro", "Apple A17"},
	},
	{
		// Same panel as the 15 Pro; only the GPU string separates them,
		// and on a tie the Pro wins by declaration order.
		Model:        "iPhone 15",
		PixelRatio:   3.0,
		ScreenWidth:  1179,
		ScreenHeight: 2556,
		GPUHints:     []string{"A16", "Apple A16"},
	},
	{
		Model:        "iPhone SE",
		PixelRatio:   2.0,
		ScreenWidth:  750,
		ScreenHeight: 1334,
		GPUHints:     []string{"A15", "Apple A15"},
	},
	{
		Model:        "Galaxy S24 Ultra",
		PixelRatio:   3.0,
		ScreenWidth:  1440,
		ScreenHeight: 3120,
		GPUHints:     []string{"Adreno (TM) 750", "Adreno 750"},
	},
	{
		Model:        "Galaxy S24",
		PixelRatio:   3.0,
		ScreenWidth:  1080,
		ScreenHeight: 2340,
		GPUHints:     []string{"Xclipse 940", "Adreno 750"},
	},
	{
		Model:        "Pixel 8 Pro",
		PixelRatio:   3.0,
		ScreenWidth:  1344,
		ScreenHeight: 2992,
		GPUHints:     []string{"Mali-G715", "Immortalis-G715"},
	},
	{
		Model:        "Pixel 8",
		PixelRatio:   2.625,
		ScreenWidth:  1080,
		ScreenHeight: 2400,
		GPUHints:     []string{"Mali-G715", "Immortalis-G715"},
	},
	{
		Model:        "iPad Pro 11",
		PixelRatio:   2.0,
		ScreenWidth:  1668,
		ScreenHeight: 2388,
		GPUHints:     []string{"Apple M2", "M2 GPU"},
		TouchPoints:  touchPoints(5),
	},
	{
		Model:        "Galaxy Tab S9",
		PixelRatio:   2.0,
		ScreenWidth:  1600,
		ScreenHeight: 2560,
		GPUHints:     []string{"Adreno (TM) 740", "Adreno 740"},
		TouchPoints:  touchPoints(10),
	},
	{
		Model:        "Surface Pro 9",
		PixelRatio:   2.0,
		ScreenWidth:  1920,
		ScreenHeight: 2880,
		GPUHints:     []string{"Iris(R) Xe", "Iris Xe"},
		TouchPoints:  touchPoints(10),
	},
	{
		Model:        "MacBook Pro 14",
		PixelRatio:   2.0,
		ScreenWidth:  3024,
		ScreenHeight: 1964,
		GPUHints:     []string{"Apple M3", "Apple M2", "Apple M1"},
		TouchPoints:  touchPoints(0),
	},
}

var defaultCatalog = Catalog{entries: defaultSignatures}

// DefaultCatalog returns the process-wide built-in catalog. It is
// constructed once and never mutated, so sharing it across goroutines is
// safe.
func DefaultCatalog() Catalog {
	return defaultCatalog
}
