package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"sync"

	"github.com/aretw0/morph"
	"github.com/aretw0/morph/pkg/domain"
	"github.com/aretw0/morph/pkg/progress"
	"github.com/aretw0/morph/pkg/schema"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// MaxDocumentSize caps request bodies.
const MaxDocumentSize = 1 << 20

// Engine defines the subset of morph.Engine served over HTTP.
type Engine interface {
	Sample(ctx context.Context, data []byte, req morph.SampleRequest) (*morph.Sample, error)
	SampleStored(ctx context.Context, name string, req morph.SampleRequest) (*morph.Sample, error)
	Validate(data []byte) (*morph.Report, error)
	Inspect(data []byte) (*morph.Tree, error)
	Kinds() []morph.KindInfo
	Save(ctx context.Context, name string, data []byte) error
	Load(ctx context.Context, name string) ([]byte, error)
	Delete(ctx context.Context, name string) error
	List(ctx context.Context) ([]string, error)
	Watch(ctx context.Context) (<-chan string, error)
}

// Server serves an Engine.
type Server struct {
	Engine  Engine
	Streams *StreamManager
	Logger  *slog.Logger
}

// Option configures the handler.
type Option func(*config)

type config struct {
	logger  *slog.Logger
	metrics http.Handler
}

// WithLogger sets the logger used for request errors.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithMetrics mounts h, typically promhttp.Handler(), at /metrics.
func WithMetrics(h http.Handler) Option {
	return func(c *config) {
		c.metrics = h
	}
}

// NewHandler creates a new HTTP handler for the engine.
func NewHandler(engine Engine, opts ...Option) http.Handler {
	cfg := config{logger: slog.Default()}
	for _, opt := range opts {
		opt(&cfg)
	}

	server := &Server{
		Engine:  engine,
		Streams: NewStreamManager(cfg.logger),
		Logger:  cfg.logger,
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(enableCORS)

	r.Get("/health", server.GetHealth)
	r.Get("/info", server.GetInfo)
	r.Get("/kinds", server.GetKinds)
	r.Post("/sample", server.SampleDocument)
	r.Post("/validate", server.ValidateDocument)
	r.Post("/inspect", server.InspectDocument)
	r.Get("/events", server.SubscribeEvents)

	r.Route("/documents", func(r chi.Router) {
		r.Get("/", server.ListDocuments)
		r.Get("/{name}", server.GetDocument)
		r.Put("/{name}", server.PutDocument)
		r.Delete("/{name}", server.DeleteDocument)
		r.Post("/{name}/sample", server.SampleStored)
	})

	if cfg.metrics != nil {
		r.Handle("/metrics", cfg.metrics)
	}
	return r
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Custom-Header")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"app":     "morph-http",
		"version": morph.Version,
	})
}

// GetKinds handles the GET /kinds request.
func (s *Server) GetKinds(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.Engine.Kinds())
}

// SampleDocument handles POST /sample with the document as the body.
func (s *Server) SampleDocument(w http.ResponseWriter, r *http.Request) {
	req, err := sampleRequest(r)
	if err != nil {
		s.fail(w, "SampleDocument", err)
		return
	}
	data, ok := s.readBody(w, r)
	if !ok {
		return
	}
	sample, err := s.Engine.Sample(r.Context(), data, req)
	if err != nil {
		s.fail(w, "SampleDocument", err)
		return
	}
	s.writeJSON(w, http.StatusOK, sample)
}

// SampleStored handles POST /documents/{name}/sample.
func (s *Server) SampleStored(w http.ResponseWriter, r *http.Request) {
	req, err := sampleRequest(r)
	if err != nil {
		s.fail(w, "SampleStored", err)
		return
	}
	name := chi.URLParam(r, "name")
	sample, err := s.Engine.SampleStored(r.Context(), name, req)
	if err != nil {
		s.fail(w, "SampleStored", err)
		return
	}
	s.Streams.Broadcast(name, event("sampled", name))
	s.writeJSON(w, http.StatusOK, sample)
}

// ValidateDocument handles POST /validate.
func (s *Server) ValidateDocument(w http.ResponseWriter, r *http.Request) {
	data, ok := s.readBody(w, r)
	if !ok {
		return
	}
	report, err := s.Engine.Validate(data)
	if err != nil {
		s.fail(w, "ValidateDocument", err)
		return
	}
	s.writeJSON(w, http.StatusOK, report)
}

// InspectDocument handles POST /inspect.
func (s *Server) InspectDocument(w http.ResponseWriter, r *http.Request) {
	data, ok := s.readBody(w, r)
	if !ok {
		return
	}
	tree, err := s.Engine.Inspect(data)
	if err != nil {
		s.fail(w, "InspectDocument", err)
		return
	}
	s.writeJSON(w, http.StatusOK, tree)
}

// ListDocuments handles GET /documents.
func (s *Server) ListDocuments(w http.ResponseWriter, r *http.Request) {
	names, err := s.Engine.List(r.Context())
	if err != nil {
		s.fail(w, "ListDocuments", err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string][]string{"documents": names})
}

// GetDocument handles GET /documents/{name} and returns the raw document.
func (s *Server) GetDocument(w http.ResponseWriter, r *http.Request) {
	data, err := s.Engine.Load(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		s.fail(w, "GetDocument", err)
		return
	}
	w.Header().Set("Content-Type", "application/yaml")
	w.Write(data)
}

// PutDocument handles PUT /documents/{name}.
func (s *Server) PutDocument(w http.ResponseWriter, r *http.Request) {
	data, ok := s.readBody(w, r)
	if !ok {
		return
	}
	name := chi.URLParam(r, "name")
	if err := s.Engine.Save(r.Context(), name, data); err != nil {
		s.fail(w, "PutDocument", err)
		return
	}
	s.Streams.Broadcast(name, event("saved", name))
	w.WriteHeader(http.StatusNoContent)
}

// DeleteDocument handles DELETE /documents/{name}.
func (s *Server) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if err := s.Engine.Delete(r.Context(), name); err != nil {
		s.fail(w, "DeleteDocument", err)
		return
	}
	s.Streams.Broadcast(name, event("deleted", name))
	w.WriteHeader(http.StatusNoContent)
}

// SubscribeEvents handles the GET /events request (SSE). With a document
// parameter it streams that document's saved, deleted and sampled events;
// without one it streams store changes for hot reload.
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		s.Logger.Error("SubscribeEvents: Streaming not supported")
		return
	}

	var events <-chan string
	if name := r.URL.Query().Get("document"); name != "" {
		ch, cancel := s.Streams.Subscribe(name)
		defer cancel()
		events = ch
	} else {
		changes, err := s.Engine.Watch(r.Context())
		if err != nil {
			s.fail(w, "SubscribeEvents", err)
			return
		}
		events = changes
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case msg, ok := <-events:
			if !ok {
				return
			}
			fmt.Fprintf(w, "data: %s\n\n", msg)
			flusher.Flush()
		}
	}
}

// StreamManager handles active SSE connections per document.
type StreamManager struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan<- string]struct{} // document -> Set of Channels
	logger      *slog.Logger
}

func NewStreamManager(logger *slog.Logger) *StreamManager {
	return &StreamManager{
		subscribers: make(map[string]map[chan<- string]struct{}),
		logger:      logger,
	}
}

func (sm *StreamManager) Subscribe(name string) (chan string, func()) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	ch := make(chan string, 10)
	if _, ok := sm.subscribers[name]; !ok {
		sm.subscribers[name] = make(map[chan<- string]struct{})
	}
	sm.subscribers[name][ch] = struct{}{}

	return ch, func() {
		sm.mu.Lock()
		defer sm.mu.Unlock()
		if subs, ok := sm.subscribers[name]; ok {
			delete(subs, ch)
			close(ch)
			if len(subs) == 0 {
				delete(sm.subscribers, name)
			}
		}
	}
}

func (sm *StreamManager) Broadcast(name string, msg string) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	for ch := range sm.subscribers[name] {
		select {
		case ch <- msg:
		default:
			// Drop message if channel is full (slow client)
			sm.logger.Warn("SSE: Client buffer full, dropping message", "document", name)
		}
	}
}

// -- Helpers --

func event(kind, name string) string {
	data, _ := json.Marshal(map[string]string{"event": kind, "document": name})
	return string(data)
}

func sampleRequest(r *http.Request) (morph.SampleRequest, error) {
	var req morph.SampleRequest
	q := r.URL.Query()
	if d := q.Get("direction"); d != "" {
		dir, err := progress.ParseDirection(d)
		if err != nil {
			return req, &badRequest{err}
		}
		req.Direction = dir
	}
	if f := q.Get("frames"); f != "" {
		n, err := strconv.Atoi(f)
		if err != nil || n < 1 {
			return req, &badRequest{fmt.Errorf("frames must be a positive integer, got %q", f)}
		}
		if n > morph.MaxFrames {
			return req, &badRequest{fmt.Errorf("%w: frames must not exceed %d", domain.ErrFrameLimit, morph.MaxFrames)}
		}
		req.Frames = n
	}
	return req, nil
}

type badRequest struct{ err error }

func (e *badRequest) Error() string { return e.err.Error() }
func (e *badRequest) Unwrap() error { return e.err }

func (s *Server) readBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxDocumentSize))
	if err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.Logger.Warn("Invalid request body", "error", err)
		return nil, false
	}
	return data, true
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.Logger.Error("response encode failed", "error", err)
	}
}

type errorBody struct {
	Error    string          `json:"error"`
	Problems []problemDetail `json:"problems,omitempty"`
}

type problemDetail struct {
	Key    string `json:"key"`
	Reason string `json:"reason"`
}

// fail maps engine errors onto status codes.
func (s *Server) fail(w http.ResponseWriter, op string, err error) {
	body := errorBody{Error: err.Error()}
	var br *badRequest
	status := http.StatusInternalServerError

	switch {
	case errors.As(err, &br):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrDocumentNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidDocument):
		status = http.StatusUnprocessableEntity
		for _, e := range schema.ValidationErrors(err) {
			var ve *schema.ValidationError
			if errors.As(e, &ve) {
				body.Problems = append(body.Problems, problemDetail{Key: ve.Key, Reason: ve.Reason})
			}
		}
	case errors.Is(err, domain.ErrFrameLimit), errors.Is(err, domain.ErrInvalidName):
		status = http.StatusBadRequest
	case errors.Is(err, morph.ErrWatchUnsupported):
		status = http.StatusNotImplemented
	case errors.Is(err, context.Canceled):
		status = 499
	}

	if status >= http.StatusInternalServerError {
		s.Logger.Error(op+" failed", "error", err)
	} else {
		s.Logger.Debug(op+" rejected", "error", err, "status", status)
	}
	s.writeJSON(w, status, body)
}
