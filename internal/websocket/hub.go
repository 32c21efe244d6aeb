// Panoptes - Web Analytics Administration Dashboard
// Copyright 2026 M. Lachowski (mlachowski)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mlachowski/panoptes

package websocket

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/mlachowski/panoptes/internal/device"
	"github.com/mlachowski/panoptes/internal/logging"
	"github.com/mlachowski/panoptes/internal/metrics"
	"github.com/mlachowski/panoptes/internal/models"
)

// Message types pushed to dashboard clients.
const (
	MessageTypePing           = "ping"
	MessageTypePong           = "pong"
	MessageTypeClassification = "classification"
	MessageTypeVisitorsUpdate = "visitors_update"
)

// Message is the envelope for all WebSocket traffic.
type Message struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// Hub maintains the set of connected dashboard clients and fans
// broadcast messages out to them.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan Message
	Register   chan *Client
	Unregister chan *Client
	mu         sync.RWMutex
}

// NewHub creates an empty hub. Call Run under a supervisor before
// registering clients.
func NewHub() *Hub {
	return &Hub{
		broadcast:  make(chan Message, 256),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		clients:    make(map[*Client]bool),
	}
}

// Run drives the hub until the context is canceled, then closes every
// connected client and returns ctx.Err(). Lifecycle events are drained
// before broadcast messages so client state is consistent when a
// message fans out.
func (h *Hub) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			h.shutdown(ctx)
			return ctx.Err()
		default:
		}

		// Lifecycle first, non-blocking.
		select {
		case client := <-h.Register:
			h.addClient(client)
			continue
		case client := <-h.Unregister:
			h.removeClient(client)
			continue
		default:
		}

		select {
		case <-ctx.Done():
			h.shutdown(ctx)
			return ctx.Err()
		case client := <-h.Register:
			h.addClient(client)
		case client := <-h.Unregister:
			h.removeClient(client)
		case message := <-h.broadcast:
			h.broadcastToClients(message)
		}
	}
}

func (h *Hub) addClient(client *Client) {
	h.mu.Lock()
	h.clients[client] = true
	total := len(h.clients)
	h.mu.Unlock()

	metrics.WebSocketConnections.Set(float64(total))
	logging.Info().Int("total_clients", total).Msg("websocket client connected")
}

func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client.send)
	}
	total := len(h.clients)
	h.mu.Unlock()

	metrics.WebSocketConnections.Set(float64(total))
	logging.Info().Int("total_clients", total).Msg("websocket client disconnected")
}

// broadcastToClients fans a message out in client-ID order so delivery
// order is reproducible. Clients with a full send buffer are dropped
// rather than allowed to stall the hub.
func (h *Hub) broadcastToClients(message Message) {
	h.mu.Lock()
	defer h.mu.Unlock()

	clients := make([]*Client, 0, len(h.clients))
	for client := range h.clients {
		clients = append(clients, client)
	}
	sort.Slice(clients, func(i, j int) bool {
		return clients[i].id < clients[j].id
	})

	var toRemove []*Client
	for _, client := range clients {
		select {
		case client.send <- message:
		default:
			metrics.WebSocketDroppedMessages.Inc()
			toRemove = append(toRemove, client)
		}
	}

	for _, client := range toRemove {
		close(client.send)
		delete(h.clients, client)
	}
	if len(toRemove) > 0 {
		metrics.WebSocketConnections.Set(float64(len(h.clients)))
		logging.Warn().Int("dropped_clients", len(toRemove)).Msg("dropped slow websocket clients")
	}
}

func (h *Hub) shutdown(ctx context.Context) {
	h.mu.Lock()
	clients := make([]*Client, 0, len(h.clients))
	for client := range h.clients {
		clients = append(clients, client)
	}
	sort.Slice(clients, func(i, j int) bool {
		return clients[i].id < clients[j].id
	})
	for _, client := range clients {
		close(client.send)
		delete(h.clients, client)
	}
	h.mu.Unlock()

	metrics.WebSocketConnections.Set(0)
	logging.Info().
		Str("component", "websocket-hub").
		AnErr("reason", ctx.Err()).
		Int("clients_closed", len(clients)).
		Msg("websocket hub stopped")
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// BroadcastJSON queues a typed message for all connected clients. The
// broadcast channel is bounded; when it is full the message is dropped
// instead of blocking the caller.
func (h *Hub) BroadcastJSON(messageType string, data interface{}) {
	message := Message{Type: messageType, Data: data}
	select {
	case h.broadcast <- message:
	default:
		metrics.WebSocketDroppedMessages.Inc()
		logging.Warn().Str("message_type", messageType).Msg("broadcast channel full, dropping message")
	}
}

// ClassificationEvent is the payload of a classification message.
type ClassificationEvent struct {
	Timestamp      string `json:"timestamp"`
	SessionID      string `json:"session_id,omitempty"`
	DetectedDevice string `json:"detected_device"`
	Confidence     int    `json:"confidence"`
	Outcome        string `json:"outcome"`
	Page           string `json:"page,omitempty"`
	Country        string `json:"country,omitempty"`
}

// BroadcastClassification pushes one live classification event. Wired
// as the enrichment result hook.
func (h *Hub) BroadcastClassification(row models.VisitorRow, res device.Result) {
	h.BroadcastJSON(MessageTypeClassification, ClassificationEvent{
		Timestamp:      time.Now().UTC().Format(time.RFC3339),
		SessionID:      row.SessionID,
		DetectedDevice: res.DetectedModel,
		Confidence:     res.Confidence,
		Outcome:        res.Outcome(),
		Page:           row.Page,
		Country:        row.Country,
	})
}
