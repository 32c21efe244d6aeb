// Panoptes - Web Analytics Administration Dashboard
// Copyright 2026 M. Lachowski (mlachowski)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mlachowski/panoptes

package websocket

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mlachowski/panoptes/internal/device"
	"github.com/mlachowski/panoptes/internal/models"
)

// testClient registers a bare client (no network connection) with the hub
// and returns it. Only the send channel is exercised by these tests.
func testClient(t *testing.T, hub *Hub) *Client {
	t.Helper()
	c := &Client{
		id:   clientIDCounter.Add(1),
		hub:  hub,
		send: make(chan Message, 256),
	}
	hub.Register <- c
	return c
}

func startHub(t *testing.T) (*Hub, context.CancelFunc) {
	t.Helper()
	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = hub.Run(ctx)
	}()
	t.Cleanup(func() {
		cancel()
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Error("hub did not stop after cancel")
		}
	})
	return hub, cancel
}

func waitForClients(t *testing.T, hub *Hub, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if hub.ClientCount() == want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("client count = %d, want %d", hub.ClientCount(), want)
}

func TestHubRegisterUnregister(t *testing.T) {
	hub, _ := startHub(t)

	c := testClient(t, hub)
	waitForClients(t, hub, 1)

	hub.Unregister <- c
	waitForClients(t, hub, 0)

	// Unregister closes the send channel.
	select {
	case _, ok := <-c.send:
		if ok {
			t.Error("expected closed send channel after unregister")
		}
	case <-time.After(time.Second):
		t.Error("send channel not closed after unregister")
	}
}

func TestBroadcastReachesAllClients(t *testing.T) {
	hub, _ := startHub(t)

	c1 := testClient(t, hub)
	c2 := testClient(t, hub)
	waitForClients(t, hub, 2)

	hub.BroadcastJSON(MessageTypeVisitorsUpdate, map[string]int{"rows": 3})

	for _, c := range []*Client{c1, c2} {
		select {
		case msg := <-c.send:
			if msg.Type != MessageTypeVisitorsUpdate {
				t.Errorf("message type = %q, want %q", msg.Type, MessageTypeVisitorsUpdate)
			}
		case <-time.After(time.Second):
			t.Fatal("client did not receive broadcast")
		}
	}
}

func TestSlowClientIsDropped(t *testing.T) {
	hub, _ := startHub(t)

	slow := &Client{
		id:   clientIDCounter.Add(1),
		hub:  hub,
		send: make(chan Message), // unbuffered and never read
	}
	hub.Register <- slow
	waitForClients(t, hub, 1)

	hub.BroadcastJSON(MessageTypeVisitorsUpdate, nil)
	waitForClients(t, hub, 0)
}

func TestRunStopsOnCancel(t *testing.T) {
	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())

	errCh := make(chan error, 1)
	go func() { errCh <- hub.Run(ctx) }()

	hub.Register <- &Client{id: clientIDCounter.Add(1), hub: hub, send: make(chan Message, 1)}
	waitForClients(t, hub, 1)

	cancel()
	select {
	case err := <-errCh:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Run returned %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
	if hub.ClientCount() != 0 {
		t.Errorf("clients remaining after shutdown: %d", hub.ClientCount())
	}
}

func TestBroadcastClassificationPayload(t *testing.T) {
	hub, _ := startHub(t)
	c := testClient(t, hub)
	waitForClients(t, hub, 1)

	row := models.VisitorRow{SessionID: "s9", Page: "/shop", Country: "JP"}
	res := device.Result{DetectedModel: "Pixel 8", Confidence: 70}
	hub.BroadcastClassification(row, res)

	select {
	case msg := <-c.send:
		if msg.Type != MessageTypeClassification {
			t.Fatalf("message type = %q", msg.Type)
		}
		event, ok := msg.Data.(ClassificationEvent)
		if !ok {
			t.Fatalf("data type = %T", msg.Data)
		}
		if event.SessionID != "s9" || event.DetectedDevice != "Pixel 8" || event.Confidence != 70 {
			t.Errorf("event = %+v", event)
		}
		if event.Outcome != "match" {
			t.Errorf("outcome = %q, want match", event.Outcome)
		}
	case <-time.After(time.Second):
		t.Fatal("no classification message received")
	}
}
