package backend

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Backend-pushed event stream names.
const (
	EventLibraryUpdated   = "library-updated"
	EventDownloadProgress = "download-progress"
	EventDownloadComplete = "download-complete"
	EventDownloadError    = "download-error"
	EventLoaderProgress   = "loader-progress"
	EventProtonProgress   = "proton-progress"
	EventGameStarted      = "game-started"
	EventGameStopped      = "game-stopped"
	EventLaunchStatus     = "launch-status"
	EventPanicTriggered   = "panic-triggered"
)

// EventHandler receives one decoded event payload.
type EventHandler func(payload json.RawMessage)

// UnlistenFunc removes a single subscription. Safe to call more than once.
type UnlistenFunc func()

const reconnectDelay = 2 * time.Second

// Session owns the push-event connection to the backend and every
// subscription registered on it. Close tears all of them down together;
// events arriving during or after teardown are dropped.
type Session struct {
	client *Client
	log    *zap.SugaredLogger

	mu       sync.Mutex
	handlers map[string]map[string]EventHandler
	closed   bool

	cancel context.CancelFunc
	done   chan struct{}
}

// OpenSession connects to the backend's event stream and starts dispatching.
// The connection is retried until Close is called.
func OpenSession(client *Client, log *zap.SugaredLogger) *Session {
	ctx, cancel := context.WithCancel(context.Background())
	s := &Session{
		client:   client,
		log:      log,
		handlers: make(map[string]map[string]EventHandler),
		cancel:   cancel,
		done:     make(chan struct{}),
	}
	go s.run(ctx)
	return s
}

// Listen registers a handler for one named event stream and returns its
// unlisten handle.
func (s *Session) Listen(event string, handler EventHandler) UnlistenFunc {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return func() {}
	}
	if s.handlers[event] == nil {
		s.handlers[event] = make(map[string]EventHandler)
	}
	handle := uuid.NewString()
	s.handlers[event][handle] = handler

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			delete(s.handlers[event], handle)
		})
	}
}

// Close tears down every subscription and stops the stream reader. Safe to
// call more than once.
func (s *Session) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.handlers = make(map[string]map[string]EventHandler)
	s.mu.Unlock()

	s.cancel()
	<-s.done
}

// dispatch fans one event out to its subscribers. A dispatch racing with
// Close is a no-op.
func (s *Session) dispatch(event string, payload []byte) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	targets := make([]EventHandler, 0, len(s.handlers[event]))
	for _, h := range s.handlers[event] {
		targets = append(targets, h)
	}
	s.mu.Unlock()

	raw := json.RawMessage(payload)
	for _, h := range targets {
		h(raw)
	}
}

func (s *Session) run(ctx context.Context) {
	defer close(s.done)

	for {
		if ctx.Err() != nil {
			return
		}
		if err := s.stream(ctx); err != nil && ctx.Err() == nil {
			s.log.Warnw("Event stream disconnected, retrying",
				zap.Duration("delay", reconnectDelay), zap.Error(err))
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(reconnectDelay):
		}
	}
}

// stream holds one connection to the backend's event endpoint open and feeds
// decoded events into dispatch.
func (s *Session) stream(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.client.BaseURL+"/events", nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", s.client.UserAgent)
	req.Header.Set("Accept", "text/event-stream")

	resp, err := s.client.streamClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return readEvents(resp.Body, s.dispatch)
}

// readEvents parses a text/event-stream body, emitting one (event, data)
// pair per message. Returns when the stream ends.
func readEvents(r io.Reader, emit func(event string, data []byte)) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	var event string
	var data strings.Builder
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case line == "":
			if event != "" && data.Len() > 0 {
				emit(event, []byte(data.String()))
			}
			event = ""
			data.Reset()
		case strings.HasPrefix(line, "event:"):
			event = strings.TrimSpace(strings.TrimPrefix(line, "event:"))
		case strings.HasPrefix(line, "data:"):
			if data.Len() > 0 {
				data.WriteByte('\n')
			}
			data.WriteString(strings.TrimSpace(strings.TrimPrefix(line, "data:")))
		}
		// Comment lines (":") and unknown fields are ignored.
	}
	return scanner.Err()
}
