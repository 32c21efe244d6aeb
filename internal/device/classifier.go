// Panoptes - Web Analytics Administration Dashboard
// Copyright 2026 M. Lachowski (mlachowski)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mlachowski/panoptes

package device

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Scoring weights and thresholds. These values are carried over from the
// original heuristic unchanged; altering any of them silently changes
// classification outcomes, so they live here in one place.
const (
	screenWeight        = 40
	screenPartialCredit = 20
	ratioWeight         = 30
	ratioPartialCredit  = 15
	gpuWeight           = 20
	touchWeight         = 10
	affinityBonus       = 5

	// Screen dimensions must be within these tolerances, per axis, in
	// device pixels.
	screenExactTolerancePx = 10
	screenLooseTolerancePx = 50

	// Pixel ratio differences below these bounds earn full/partial credit.
	ratioExactTolerance = 0.1
	ratioLooseTolerance = 0.5

	// Accept bars: strong signal (display telemetry present) demands a
	// higher score than coarse category/OS hints.
	strongAcceptScore = 50
	weakAcceptScore   = 20

	// fallbackConfidence is the fixed confidence assigned to coarse
	// fallback labels. It is deliberately below weakAcceptScore.
	fallbackConfidence = 15

	topMatchCount = 3
)

// Product-line tokens map model-name families to OS families. Used by the
// platform-affinity bonus and the coarse fallback chain.
type productLine struct {
	token    string // substring of the catalog model name
	osFamily string
	brand    string
	mobile   bool
}

var productLines = []productLine{
	{token: "iPhone", osFamily: familyIOS, brand: "apple", mobile: true},
	{token: "iPad", osFamily: familyIOS, brand: "apple", mobile: true},
	{token: "Galaxy", osFamily: familyAndroid, brand: "samsung", mobile: true},
	{token: "Pixel", osFamily: familyAndroid, brand: "google", mobile: true},
	{token: "Surface", osFamily: familyWindows, brand: "microsoft", mobile: false},
	{token: "MacBook", osFamily: familyMacOS, brand: "apple", mobile: false},
}

const (
	familyIOS     = "ios"
	familyAndroid = "android"
	familyWindows = "windows"
	familyMacOS   = "macos"
	familyLinux   = "linux"
)

// osFamilyOf normalizes a reported operating system name to a family
// token, or "" when unrecognized.
func osFamilyOf(name string) string {
	s := strings.ToLower(name)
	switch {
	case s == "":
		return ""
	case strings.Contains(s, "android"):
		return familyAndroid
	case strings.Contains(s, "ipados"), strings.Contains(s, "iphone"), strings.Contains(s, "ios"):
		return familyIOS
	case strings.Contains(s, "windows"):
		return familyWindows
	case strings.Contains(s, "mac"):
		return familyMacOS
	case strings.Contains(s, "linux"), strings.Contains(s, "ubuntu"):
		return familyLinux
	default:
		return ""
	}
}

func isMobileFamily(family string) bool {
	return family == familyIOS || family == familyAndroid
}

// lineOf returns the product line a model name belongs to, if any.
func lineOf(model string) (productLine, bool) {
	for _, line := range productLines {
		if strings.Contains(model, line.token) {
			return line, true
		}
	}
	return productLine{}, false
}

// Classify scores every catalog entry against the observed characteristics
// and returns a best-guess model, a confidence score, and the top runner-up
// candidates. It is pure and total: no I/O, no shared state, no error
// return. Absent input fields skip their scoring tiers instead of failing.
func Classify(obs Characteristics, catalog Catalog) Result {
	entries := catalog.Entries()

	scored := make([]Match, len(entries))
	for i, sig := range entries {
		scored[i] = Match{Model: sig.Model, Score: scoreSignature(sig, obs)}
	}

	// Stable sort keeps catalog declaration order on ties, which makes
	// topMatches[0] deterministic.
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	n := topMatchCount
	if len(scored) < n {
		n = len(scored)
	}
	top := make([]Match, n)
	copy(top, scored[:n])

	res := Result{
		DetectedModel:   ModelUnknown,
		Characteristics: obs,
		TopMatches:      top,
	}
	if len(scored) == 0 {
		return res
	}

	best := scored[0]

	if obs.HasStrongSignal() {
		// Display telemetry is highly discriminating; demand a high score
		// and never fall back to coarse heuristics over it.
		if best.Score >= strongAcceptScore {
			res.DetectedModel = best.Model
		}
		res.Confidence = best.Score
		return res
	}

	if best.Score >= weakAcceptScore {
		res.DetectedModel = best.Model
		res.Confidence = best.Score
		return res
	}

	if model, ok := coarseFallback(obs, entries); ok {
		res.DetectedModel = model
		res.Confidence = fallbackConfidence
		return res
	}

	res.Confidence = best.Score
	return res
}

// scoreSignature computes the raw [0, 100] score of one signature against
// the observed characteristics. Tiers whose inputs are absent contribute
// nothing.
func scoreSignature(sig Signature, obs Characteristics) int {
	score := 0

	hasScreen := obs.ScreenWidth != nil && obs.ScreenHeight != nil
	if hasScreen {
		dw := absInt(*obs.ScreenWidth - sig.ScreenWidth)
		dh := absInt(*obs.ScreenHeight - sig.ScreenHeight)
		switch {
		case dw <= screenExactTolerancePx && dh <= screenExactTolerancePx:
			score += screenWeight
		case dw <= screenLooseTolerancePx && dh <= screenLooseTolerancePx:
			score += screenPartialCredit
		}
	}

	if obs.PixelRatio != nil {
		diff := math.Abs(sig.PixelRatio - *obs.PixelRatio)
		switch {
		case diff < ratioExactTolerance:
			score += ratioWeight
		case diff < ratioLooseTolerance:
			score += ratioPartialCredit
		}
	}

	if len(sig.GPUHints) > 0 && obs.GPURenderer != "" {
		for _, hint := range sig.GPUHints {
			if strings.Contains(obs.GPURenderer, hint) {
				score += gpuWeight
				break
			}
		}
	}

	switch {
	case sig.TouchPoints != nil:
		if obs.MaxTouchPoints != nil && *obs.MaxTouchPoints == *sig.TouchPoints {
			score += touchWeight
		}
	case hasScreen || obs.PixelRatio != nil:
		// Touch is not a distinguishing signal for this model, so the tier
		// counts as satisfied whenever strong signal is present. Without
		// this an exact display match could never reach the maximum score.
		score += touchWeight
	}

	// Platform-affinity bonus: tie-breaker for coarse-only inputs. Must
	// never fire when strong signal is present, so precise measurements
	// are not overridden by OS-name heuristics.
	if obs.ScreenWidth == nil && obs.PixelRatio == nil && obs.OS != "" {
		if line, ok := lineOf(sig.Model); ok && line.osFamily == osFamilyOf(obs.OS) {
			score += affinityBonus
		}
	}

	return score
}

// coarseFallback resolves a label for inputs too weak to clear the accept
// bar. Branches are evaluated strictly top to bottom; the first satisfied
// branch wins.
func coarseFallback(obs Characteristics, entries []Signature) (string, bool) {
	category := strings.ToLower(obs.DeviceCategory)

	if category == "mobile" {
		if family := osFamilyOf(obs.OS); isMobileFamily(family) {
			if model, ok := firstOfFamily(entries, family); ok {
				return model, true
			}
		}
		if obs.Brand != "" {
			if model, ok := firstOfBrand(entries, obs.Brand); ok {
				return model, true
			}
		}
		return "", false
	}

	if category == "desktop" {
		if obs.OS != "" {
			return fmt.Sprintf("Desktop (%s)", obs.OS), true
		}
		return "Desktop", true
	}

	return "", false
}

// firstOfFamily returns the first catalog entry whose product line belongs
// to the given mobile OS family.
func firstOfFamily(entries []Signature, family string) (string, bool) {
	for _, sig := range entries {
		if line, ok := lineOf(sig.Model); ok && line.mobile && line.osFamily == family {
			return sig.Model, true
		}
	}
	return "", false
}

// firstOfBrand returns the first catalog entry whose product line matches
// the vendor-reported brand hint.
func firstOfBrand(entries []Signature, brand string) (string, bool) {
	b := strings.ToLower(strings.TrimSpace(brand))
	if b == "" {
		return "", false
	}
	for _, sig := range entries {
		line, ok := lineOf(sig.Model)
		if !ok {
			continue
		}
		if line.brand == b || strings.Contains(strings.ToLower(sig.Model), b) {
			return sig.Model, true
		}
	}
	return "", false
}

func absInt(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
