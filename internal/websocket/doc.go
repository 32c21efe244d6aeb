// Panoptes - Web Analytics Administration Dashboard
// Copyright 2026 M. Lachowski (mlachowski)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mlachowski/panoptes

// Package websocket pushes live dashboard events to connected browsers.
//
// Architecture:
//
//	enrich.Enricher ──hook──▶ Hub.BroadcastClassification
//	                             │
//	                             ▼
//	                       ┌──────────┐
//	                       │   Hub    │  Run(ctx) under the supervisor
//	                       └──────────┘
//	                        │   │   │   fan-out, client-ID order
//	                        ▼   ▼   ▼
//	                      Client pumps (gorilla/websocket)
//
// Slow clients never stall the hub: a client whose send buffer is full
// is disconnected and counted in the dropped-messages metric.
package websocket
