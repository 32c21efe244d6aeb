// Panoptes - Web Analytics Administration Dashboard
// Copyright 2026 M. Lachowski (mlachowski)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mlachowski/panoptes

// Package device implements the device signature inference engine: a
// weighted-scoring classifier that guesses a physical client device model
// from a mixture of strong signals (screen resolution, device pixel ratio,
// GPU renderer string, touch points) and weak signals (device category,
// operating system, browser, vendor-reported brand).
//
// Classification Flow:
//
//	Characteristics -> Classify -> Result
//	                     |
//	                     v
//	            score every Signature
//	            sort (stable, catalog order on ties)
//	            threshold check -> coarse fallback chain -> "Unknown"
//
// The catalog is a static, read-only list of known device signatures
// compiled into the binary. Classify is a pure function: it performs no
// I/O, holds no state between calls, and never fails. Missing input
// fields reduce which scoring tiers apply instead of raising errors, so
// sparse analytics records still produce a usable (if low-confidence)
// label.
//
// Confidence values are relative ranking scores in [0, 100], not
// calibrated probabilities. Callers should treat the sentinel model name
// "Unknown" as "no device annotation available" and fall back to showing
// category/OS/browser instead.
package device
