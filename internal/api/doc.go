// Panoptes - Web Analytics Administration Dashboard
// Copyright 2026 M. Lachowski (mlachowski)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mlachowski/panoptes

// Package api implements the HTTP surface of the dashboard.
//
// Route map:
//
//	/api/v1/health{,/live,/ready}   unauthenticated, permissive rate limit
//	/api/v1/auth/login              strict rate limit, issues JWT
//	/api/v1/visitors                auth; provider rows + device enrichment
//	/api/v1/traffic                 auth; traffic time series
//	/api/v1/rankings                auth; search-console keywords
//	/api/v1/boxes /api/v1/snacks    auth; orders backend data
//	/api/v1/devices                 auth; signature catalog listing
//	/api/v1/classify (POST)         auth; ad-hoc device classification
//	/api/v1/ws                      auth; live event stream
//	/metrics                        Prometheus scrape endpoint
//
// All API responses share the APIResponse envelope; errors carry a
// machine-readable code plus the request ID for log correlation.
package api
