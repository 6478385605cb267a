package notification

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/Young-Flame/PhotoYo/internal/pkg/policy"
)

type fakeResolver struct {
	sessions map[string]*policy.Actor
}

func (f *fakeResolver) Resolve(_ context.Context, token string) (*policy.Actor, error) {
	actor, ok := f.sessions[token]
	if !ok {
		return nil, errors.New("session not found")
	}
	return actor, nil
}

func newTestServer(t *testing.T) (*Hub, *httptest.Server) {
	t.Helper()

	hub := NewHub(nil)
	go hub.Run()
	t.Cleanup(hub.Close)

	resolver := &fakeResolver{sessions: map[string]*policy.Actor{
		"admin-tok": {ID: 1, Name: "Admin", Role: policy.RoleAdmin},
		"user-tok":  {ID: 2, Name: "Alice", Role: policy.RoleUser},
	}}

	handler := NewHandler(hub, resolver)
	srv := httptest.NewServer(http.HandlerFunc(handler.Events))
	t.Cleanup(srv.Close)

	return hub, srv
}

func wsURL(srv *httptest.Server, token string) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http") + "/?token=" + token
}

func TestEventsRequiresAdmin(t *testing.T) {
	_, srv := newTestServer(t)

	t.Run("missing token rejected", func(t *testing.T) {
		_, resp, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
		if err == nil {
			t.Fatal("expected dial to fail")
		}
		if resp == nil || resp.StatusCode != 401 {
			t.Errorf("status = %v, want 401", resp)
		}
	})

	t.Run("non-admin rejected", func(t *testing.T) {
		_, resp, err := websocket.DefaultDialer.Dial(wsURL(srv, "user-tok"), nil)
		if err == nil {
			t.Fatal("expected dial to fail")
		}
		if resp == nil || resp.StatusCode != 403 {
			t.Errorf("status = %v, want 403", resp)
		}
	})
}

func TestBroadcastReachesConnectedAdmin(t *testing.T) {
	hub, srv := newTestServer(t)

	conn, _, err := websocket.DefaultDialer.Dial(wsURL(srv, "admin-tok"), nil)
	if err != nil {
		t.Fatalf("dial error = %v", err)
	}
	defer conn.Close()

	// Wait for the hub to pick up the registration.
	deadline := time.Now().Add(2 * time.Second)
	for hub.ClientCount() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("client never registered")
		}
		time.Sleep(10 * time.Millisecond)
	}

	hub.Broadcast(NewEvent(EventBookingCreated, map[string]interface{}{"id": 7}))

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read error = %v", err)
	}

	var event Event
	if err := json.Unmarshal(data, &event); err != nil {
		t.Fatalf("unmarshal error = %v", err)
	}
	if event.Type != EventBookingCreated {
		t.Errorf("type = %q, want %q", event.Type, EventBookingCreated)
	}
}

func TestBroadcastWithoutClientsDoesNotBlock(t *testing.T) {
	hub := NewHub(nil)
	go hub.Run()
	defer hub.Close()

	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			hub.Broadcast(NewEvent(EventContactCreated, nil))
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Broadcast blocked with no clients connected")
	}
}
