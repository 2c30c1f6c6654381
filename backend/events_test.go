package backend

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"yago-sync/config"
)

type capturedEvent struct {
	event string
	data  string
}

func TestReadEvents(t *testing.T) {
	tests := []struct {
		name     string
		stream   string
		expected []capturedEvent
	}{
		{
			"single event",
			"event: library-updated\ndata: {\"g1\":{}}\n\n",
			[]capturedEvent{{"library-updated", `{"g1":{}}`}},
		},
		{
			"multiple events",
			"event: game-started\ndata: null\n\nevent: launch-status\ndata: \"Starting...\"\n\n",
			[]capturedEvent{{"game-started", "null"}, {"launch-status", `"Starting..."`}},
		},
		{
			"multi-line data joined with newline",
			"event: library-updated\ndata: {\ndata: }\n\n",
			[]capturedEvent{{"library-updated", "{\n}"}},
		},
		{
			"comments and unknown fields ignored",
			": keepalive\nid: 42\nevent: game-stopped\ndata: null\n\n",
			[]capturedEvent{{"game-stopped", "null"}},
		},
		{
			"data without event name dropped",
			"data: orphaned\n\nevent: game-started\ndata: null\n\n",
			[]capturedEvent{{"game-started", "null"}},
		},
		{
			"unterminated trailing message dropped",
			"event: game-started\ndata: null",
			nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []capturedEvent
			err := readEvents(strings.NewReader(tt.stream), func(event string, data []byte) {
				got = append(got, capturedEvent{event, string(data)})
			})
			if err != nil {
				t.Fatalf("readEvents: %v", err)
			}
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("events = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestSessionDispatchesToListeners(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/events" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/event-stream")
		flusher := w.(http.Flusher)
		_, _ = w.Write([]byte("event: launch-status\ndata: \"Deploying mods...\"\n\n"))
		flusher.Flush()
		<-r.Context().Done()
	}))
	defer server.Close()

	client, err := NewClient(config.Config{BackendURL: server.URL, UserAgent: "yago-sync/test"})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	session := OpenSession(client, zap.NewNop().Sugar())
	defer session.Close()

	received := make(chan string, 1)
	session.Listen(EventLaunchStatus, func(raw json.RawMessage) {
		received <- string(raw)
	})

	select {
	case payload := <-received:
		if payload != `"Deploying mods..."` {
			t.Errorf("payload = %q", payload)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for dispatched event")
	}
}

func TestListenAndUnlisten(t *testing.T) {
	s := &Session{
		handlers: make(map[string]map[string]EventHandler),
		done:     make(chan struct{}),
	}

	var mu sync.Mutex
	var count int
	unlisten := s.Listen(EventGameStarted, func(json.RawMessage) {
		mu.Lock()
		count++
		mu.Unlock()
	})

	s.dispatch(EventGameStarted, []byte("null"))
	s.dispatch(EventGameStopped, []byte("null"))

	mu.Lock()
	if count != 1 {
		t.Errorf("handler ran %d times, want 1", count)
	}
	mu.Unlock()

	unlisten()
	unlisten() // second call is a no-op
	s.dispatch(EventGameStarted, []byte("null"))

	mu.Lock()
	if count != 1 {
		t.Errorf("handler ran after unlisten: %d times", count)
	}
	mu.Unlock()
}

func TestDispatchAfterCloseIsDropped(t *testing.T) {
	s := &Session{
		handlers: make(map[string]map[string]EventHandler),
		done:     make(chan struct{}),
	}
	close(s.done)
	s.cancel = func() {}

	var called bool
	s.Listen(EventGameStarted, func(json.RawMessage) { called = true })

	s.Close()
	s.Close() // idempotent

	s.dispatch(EventGameStarted, []byte("null"))
	if called {
		t.Error("handler ran after Close")
	}

	// Listening on a closed session yields an inert handle.
	unlisten := s.Listen(EventGameStopped, func(json.RawMessage) { called = true })
	s.dispatch(EventGameStopped, []byte("null"))
	unlisten()
	if called {
		t.Error("closed session accepted a subscription")
	}
}

func TestSessionCloseStopsReconnecting(t *testing.T) {
	var mu sync.Mutex
	var connections int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		connections++
		mu.Unlock()
	}))
	defer server.Close()

	client, err := NewClient(config.Config{BackendURL: server.URL, UserAgent: "yago-sync/test"})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	session := OpenSession(client, zap.NewNop().Sugar())
	time.Sleep(50 * time.Millisecond)
	session.Close()

	mu.Lock()
	after := connections
	mu.Unlock()
	time.Sleep(100 * time.Millisecond)
	mu.Lock()
	if connections != after {
		t.Errorf("session kept reconnecting after Close: %d -> %d", after, connections)
	}
	mu.Unlock()
}
