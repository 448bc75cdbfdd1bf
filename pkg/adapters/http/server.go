package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/aretw0/clui"
	"github.com/aretw0/clui/internal/logging"
	"github.com/aretw0/clui/pkg/domain"
	"github.com/aretw0/clui/pkg/ports"
	"github.com/aretw0/clui/pkg/session"
	"github.com/go-chi/chi/v5"
)

// Server exposes a guarded session over HTTP.
type Server struct {
	Guard   *session.Guard
	Build   ports.StepBuilder
	Streams *StreamManager
	Logger  *slog.Logger
}

// Option configures the Server.
type Option func(*Server)

// WithStepBuilder enables POST /insert.
func WithStepBuilder(b ports.StepBuilder) Option {
	return func(s *Server) {
		s.Build = b
	}
}

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.Logger = logger
		}
	}
}

// InsertRequest is the body of POST /insert.
type InsertRequest struct {
	Steps []any `json:"steps"`
}

// NewHandler creates a new HTTP handler for the session behind g.
// Transitions of the session are streamed on GET /events.
func NewHandler(g *session.Guard, opts ...Option) http.Handler {
	server := &Server{
		Guard:   g,
		Streams: NewStreamManager(),
		Logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(server)
	}
	server.Streams.logger = server.Logger

	g.Do(func(s *session.Session) {
		s.Subscribe(server.broadcast)
	})

	r := chi.NewRouter()
	r.Get("/health", server.GetHealth)
	r.Get("/info", server.GetInfo)
	r.Get("/session", server.GetSession)
	r.Post("/next", server.Next)
	r.Post("/reset", server.Reset)
	r.Post("/insert", server.Insert)
	r.Get("/events", server.SubscribeEvents)

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.Logger.Error("response encode failed", "err", err)
	}
}

func (s *Server) writeSnapshot(w http.ResponseWriter) {
	s.writeJSON(w, http.StatusOK, s.Guard.Snapshot())
}

// GetSession handles the GET /session request.
func (s *Server) GetSession(w http.ResponseWriter, r *http.Request) {
	s.writeSnapshot(w)
}

// Next handles the POST /next request. When the newest visible step is a
// nested session, the call advances that session instead of the root.
func (s *Server) Next(w http.ResponseWriter, r *http.Request) {
	s.Guard.Do(func(sess *session.Session) {
		sess.Advance()
	})
	s.writeSnapshot(w)
}

// Reset handles the POST /reset request. A nested session shown again by the
// rewind starts from its mounted state.
func (s *Server) Reset(w http.ResponseWriter, r *http.Request) {
	s.Guard.Do(func(sess *session.Session) {
		sess.Rewind()
	})
	s.writeSnapshot(w)
}

// Insert handles the POST /insert request.
func (s *Server) Insert(w http.ResponseWriter, r *http.Request) {
	if s.Build == nil {
		http.Error(w, "Insert is not enabled", http.StatusNotImplemented)
		return
	}

	var body InsertRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.Logger.Warn("Insert: invalid request body", "err", err)
		return
	}

	units, err := s.Build(body.Steps)
	if err != nil {
		http.Error(w, fmt.Sprintf("Invalid steps: %v", err), http.StatusBadRequest)
		s.Logger.Warn("Insert: invalid steps", "err", err)
		return
	}

	s.Guard.Do(func(sess *session.Session) {
		sess.Handle().Insert(units...)
	})
	s.writeSnapshot(w)
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"app":     "clui-http",
		"version": strings.TrimSpace(clui.Version),
	})
}

func (s *Server) broadcast(evt domain.Event) {
	data, err := json.Marshal(evt)
	if err != nil {
		s.Logger.Error("event encode failed", "err", err)
		return
	}
	s.Streams.Broadcast(evt.Type, string(data))
}

// StreamManager handles active SSE connections.
type StreamManager struct {
	mu          sync.RWMutex
	subscribers map[chan string]map[domain.EventType]bool // channel -> type filter (nil = all)
	logger      *slog.Logger
}

func NewStreamManager() *StreamManager {
	return &StreamManager{
		subscribers: make(map[chan string]map[domain.EventType]bool),
		logger:      logging.NewNop(),
	}
}

// Subscribe registers a client. An empty filter receives every event type.
func (sm *StreamManager) Subscribe(filter ...domain.EventType) (chan string, func()) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	var types map[domain.EventType]bool
	if len(filter) > 0 {
		types = make(map[domain.EventType]bool, len(filter))
		for _, t := range filter {
			types[t] = true
		}
	}

	ch := make(chan string, 10)
	sm.subscribers[ch] = types

	return ch, func() {
		sm.mu.Lock()
		defer sm.mu.Unlock()
		if _, ok := sm.subscribers[ch]; ok {
			delete(sm.subscribers, ch)
			close(ch)
		}
	}
}

// Broadcast sends msg to every client interested in typ without blocking.
func (sm *StreamManager) Broadcast(typ domain.EventType, msg string) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	for ch, types := range sm.subscribers {
		if types != nil && !types[typ] {
			continue
		}
		select {
		case ch <- msg:
		default:
			// Drop message if channel is full (slow client)
			sm.logger.Warn("SSE: client buffer full, dropping message", "type", typ)
		}
	}
}

// SubscribeEvents handles the GET /events request (SSE).
// The optional "type" query parameter filters by comma-separated event types.
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		s.Logger.Error("SubscribeEvents: streaming not supported")
		return
	}

	var filter []domain.EventType
	if raw := r.URL.Query().Get("type"); raw != "" {
		for _, t := range strings.Split(raw, ",") {
			filter = append(filter, domain.EventType(strings.TrimSpace(t)))
		}
	}

	ch, cancel := s.Streams.Subscribe(filter...)
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			s.Logger.Debug("SSE client disconnected")
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			fmt.Fprintf(w, "data: %s\n\n", msg)
			flusher.Flush()
		}
	}
}
