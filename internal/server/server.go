package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/studiowebux/flashdeck/internal/deck"
	"github.com/studiowebux/flashdeck/internal/telemetry"
	"github.com/studiowebux/flashdeck/internal/types"
	"go.opentelemetry.io/otel/attribute"
	oteltrace "go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// shutdownTimeout bounds graceful shutdown
const shutdownTimeout = 5 * time.Second

// Server serves a deck over HTTP
type Server struct {
	deck       *deck.Deck
	addr       string
	logger     *zap.Logger
	tracer     oteltrace.Tracer
	httpServer *http.Server
	listener   net.Listener
}

// NewServer creates a deck server listening on addr (host:port)
func NewServer(d *deck.Deck, addr string, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		deck:   d,
		addr:   addr,
		logger: logger,
		tracer: telemetry.Tracer("server"),
	}
}

// Handler returns the HTTP handler with every route registered
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.Use(s.middleware)

	r.HandleFunc("/next", s.navigate(s.deck.Next)).Methods(http.MethodGet)
	r.HandleFunc("/previous", s.navigate(s.deck.Previous)).Methods(http.MethodGet)
	r.HandleFunc("/first", s.navigate(s.deck.First)).Methods(http.MethodGet)
	r.HandleFunc("/last", s.navigate(s.deck.Last)).Methods(http.MethodGet)
	r.HandleFunc("/goto", s.handleGoto).Methods(http.MethodPost)
	r.HandleFunc("/cards", s.handleCards).Methods(http.MethodGet)
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, "OK")
	}).Methods(http.MethodGet)

	return r
}

// Start binds the listener and serves in the background
func (s *Server) Start() error {
	ln, err := s.listen()
	if err != nil {
		return err
	}

	go func() {
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("Deck server error", zap.Error(err))
		}
	}()

	s.logger.Info("Deck server listening", zap.String("address", s.Address()))
	return nil
}

// Stop shuts the server down gracefully
func (s *Server) Stop() error {
	if s.httpServer == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	return s.httpServer.Shutdown(ctx)
}

// Run serves until ctx is cancelled, then shuts down
func (s *Server) Run(ctx context.Context) error {
	ln, err := s.listen()
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("Deck server listening", zap.String("address", s.Address()))
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		s.logger.Info("Shutting down deck server")
		return s.Stop()
	})

	return g.Wait()
}

// Address returns the base URL the server is reachable at
func (s *Server) Address() string {
	if s.listener != nil {
		return "http://" + s.listener.Addr().String()
	}
	return "http://" + s.addr
}

// Listen binds the listening socket without serving yet. Start and Run
// call it when needed.
func (s *Server) Listen() error {
	_, err := s.listen()
	return err
}

func (s *Server) listen() (net.Listener, error) {
	if s.listener != nil {
		return s.listener, nil
	}

	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", s.addr, err)
	}
	s.listener = ln
	s.httpServer = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return ln, nil
}

func (s *Server) navigate(step func() (types.CardSnapshot, bool)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		card, ok := step()
		if !ok {
			card = deck.EmptyCard()
		}
		s.writeJSON(w, http.StatusOK, card)
	}
}

func (s *Server) handleGoto(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CardNumber *int `json:"card_number"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	cardNumber := 1
	if req.CardNumber != nil {
		cardNumber = *req.CardNumber
	}

	card, ok := s.deck.GoTo(cardNumber)
	if !ok {
		s.writeJSON(w, http.StatusOK, types.GotoResponse{
			CardSnapshot: deck.InvalidCard(s.deck.Total()),
			Error:        true,
		})
		return
	}

	s.writeJSON(w, http.StatusOK, types.GotoResponse{CardSnapshot: card})
}

func (s *Server) handleCards(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.deck.Cards())
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("Failed to write response", zap.Error(err))
	}
}

// statusRecorder captures the status code written by a handler
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// middleware opens a server span and logs every request
func (s *Server) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		route := r.URL.Path
		if current := mux.CurrentRoute(r); current != nil {
			if tpl, err := current.GetPathTemplate(); err == nil {
				route = tpl
			}
		}

		ctx, span := s.tracer.Start(r.Context(), r.Method+" "+route,
			oteltrace.WithSpanKind(oteltrace.SpanKindServer),
			oteltrace.WithAttributes(
				attribute.String("http.request.method", r.Method),
				attribute.String("http.route", route),
			),
		)
		defer span.End()

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r.WithContext(ctx))

		span.SetAttributes(attribute.Int("http.response.status_code", rec.status))
		s.logger.Info("Request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)),
		)
	})
}
