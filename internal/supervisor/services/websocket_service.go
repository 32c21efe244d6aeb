// Panoptes - Web Analytics Administration Dashboard
// Copyright 2026 M. Lachowski (mlachowski)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mlachowski/panoptes

package services

import (
	"context"

	"github.com/mlachowski/panoptes/internal/websocket"
)

// WebSocketHubService runs the websocket hub under supervision.
type WebSocketHubService struct {
	hub  *websocket.Hub
	name string
}

// NewWebSocketHubService wraps the hub as a suture service.
func NewWebSocketHubService(hub *websocket.Hub) *WebSocketHubService {
	return &WebSocketHubService{
		hub:  hub,
		name: "websocket-hub",
	}
}

// Serve implements suture.Service.
func (s *WebSocketHubService) Serve(ctx context.Context) error {
	return s.hub.Run(ctx)
}

// String identifies the service in suture's logs.
func (s *WebSocketHubService) String() string {
	return s.name
}
