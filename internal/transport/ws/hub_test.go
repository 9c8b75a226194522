package ws

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap/zaptest"
)

func startHub(t *testing.T) (*Hub, context.CancelFunc) {
	t.Helper()
	hub := NewHub(zaptest.NewLogger(t))
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)
	t.Cleanup(cancel)
	return hub, cancel
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("condition not met in time")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestHubBroadcast(t *testing.T) {
	hub, _ := startHub(t)
	conn := &Connection{ID: "c1", Send: make(chan []byte, 4)}
	if !hub.Register(conn) {
		t.Fatalf("register failed")
	}

	hub.Broadcast("submission_recorded", map[string]string{"id": "abc"})

	select {
	case data := <-conn.Send:
		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if msg.Type != "submission_recorded" || string(msg.Payload) != `{"id":"abc"}` {
			t.Fatalf("message = %s", data)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("no message delivered")
	}
}

func TestHubDropsForSlowConsumer(t *testing.T) {
	hub, _ := startHub(t)
	slow := &Connection{ID: "slow", Send: make(chan []byte, 1)}
	hub.Register(slow)

	for i := 0; i < 5; i++ {
		hub.Broadcast("attempt_recorded", i)
	}
	waitFor(t, func() bool { return len(slow.Send) == 1 })

	hub.Unregister(slow)
	waitFor(t, func() bool { return hub.ConnectionCount() == 0 })
}

func TestHubStopClosesConnections(t *testing.T) {
	hub, cancel := startHub(t)
	conn := &Connection{ID: "c1", Send: make(chan []byte, 1)}
	hub.Register(conn)

	cancel()
	waitFor(t, func() bool {
		select {
		case _, ok := <-conn.Send:
			return !ok
		default:
			return false
		}
	})
	if hub.Register(&Connection{ID: "late", Send: make(chan []byte)}) {
		t.Fatalf("register succeeded on a stopped hub")
	}
}

func TestHandlerStreamsEvents(t *testing.T) {
	hub, _ := startHub(t)
	srv := httptest.NewServer(NewHandler(hub, zaptest.NewLogger(t)))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	client, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer client.Close()

	waitFor(t, func() bool { return hub.ConnectionCount() == 1 })
	hub.Broadcast("attempt_recorded", map[string]string{"questionId": "q1"})

	client.SetReadDeadline(time.Now().Add(2 * time.Second))
	var msg Message
	if err := client.ReadJSON(&msg); err != nil {
		t.Fatalf("read: %v", err)
	}
	if msg.Type != "attempt_recorded" {
		t.Fatalf("type = %q", msg.Type)
	}

	client.Close()
	waitFor(t, func() bool { return hub.ConnectionCount() == 0 })
}
