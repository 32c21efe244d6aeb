// Panoptes - Web Analytics Administration Dashboard
// Copyright 2026 M. Lachowski (mlachowski)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mlachowski/panoptes

package device

import "testing"

func TestDefaultCatalogIsSane(t *testing.T) {
	catalog := DefaultCatalog()

	if catalog.IsEmpty() {
		t.Fatal("default catalog is empty")
	}
	if catalog.Len() != len(catalog.Entries()) {
		t.Errorf("Len() = %d, Entries() has %d", catalog.Len(), len(catalog.Entries()))
	}

	seen := make(map[string]bool)
	for _, sig := range catalog.Entries() {
		if sig.Model == "" {
			t.Error("catalog entry with empty model name")
		}
		if seen[sig.Model] {
			t.Errorf("duplicate model name %q", sig.Model)
		}
		seen[sig.Model] = true

		if sig.ScreenWidth <= 0 || sig.ScreenHeight <= 0 {
			t.Errorf("%s: non-positive screen dimensions %dx%d", sig.Model, sig.ScreenWidth, sig.ScreenHeight)
		}
		if sig.PixelRatio <= 0 {
			t.Errorf("%s: non-positive pixel ratio %v", sig.Model, sig.PixelRatio)
		}
		if sig.TouchPoints != nil && *sig.TouchPoints < 0 {
			t.Errorf("%s: negative touch points", sig.Model)
		}
		if sig.Model != ModelUnknown {
			continue
		}
		t.Errorf("catalog entry uses the reserved sentinel name %q", ModelUnknown)
	}
}

func TestDefaultCatalogCoversFallbackFamilies(t *testing.T) {
	entries := DefaultCatalog().Entries()

	// The mobile fallback chain depends on at least one phone per mobile
	// OS family existing in the catalog.
	for _, family := range []string{familyIOS, familyAndroid} {
		if _, ok := firstOfFamily(entries, family); !ok {
			t.Errorf("no catalog entry for mobile family %q", family)
		}
	}
}

func TestNewCatalogEmpty(t *testing.T) {
	if !NewCatalog(nil).IsEmpty() {
		t.Error("NewCatalog(nil).IsEmpty() = false, want true")
	}
}
