// Package web exposes a small HTTP surface for liveness checks and bot
// status.
package web

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/yourusername/wabot/internal/database"
	"github.com/yourusername/wabot/internal/metrics"
	"github.com/yourusername/wabot/internal/output"
)

// ConnectionReporter exposes the WhatsApp connection's lifecycle to the
// status endpoint
type ConnectionReporter interface {
	State() string
	IsConnected() bool
	Uptime() time.Duration
	BotJID() string
}

// Server serves /ping, /health, /uptime, /status and /metrics over HTTP
type Server struct {
	logger     output.Logger
	port       int
	connection ConnectionReporter
	db         *database.DB
	collector  *metrics.Collector
	server     *http.Server
}

// NewServer creates the HTTP server
func NewServer(logger output.Logger, port int, connection ConnectionReporter, db *database.DB, collector *metrics.Collector) *Server {
	return &Server{
		logger:     logger,
		port:       port,
		connection: connection,
		db:         db,
		collector:  collector,
	}
}

// routes builds the router
func (s *Server) routes() *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/ping", s.handlePing)
	r.Get("/health", s.handleHealth)
	r.Get("/uptime", s.handleUptime)
	r.Get("/status", s.handleStatus)
	r.Get("/metrics", s.handleMetrics)
	return r
}

// Start begins serving in the background
func (s *Server) Start() error {
	r := s.routes()

	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", s.port),
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	s.logger.Info("starting web server on port %d", s.port)

	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Error("web server error: %v", err)
		}
	}()

	return nil
}

// Stop gracefully stops the server
func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}

func (s *Server) handlePing(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("pong"))
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, map[string]string{"status": "ok"})
}

func (s *Server) handleUptime(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, map[string]string{
		"uptime": s.connection.Uptime().Round(time.Second).String(),
	})
}

func (s *Server) handleStatus(w http.ResponseWriter, _ *http.Request) {
	status := map[string]interface{}{
		"connection": s.connection.State(),
		"connected":  s.connection.IsConnected(),
		"uptime":     s.connection.Uptime().Round(time.Second).String(),
		"bot_jid":    s.connection.BotJID(),
	}

	if messages, err := s.db.CountMessages(); err == nil {
		status["logged_messages"] = messages
	}

	s.writeJSON(w, status)
}

func (s *Server) handleMetrics(w http.ResponseWriter, _ *http.Request) {
	stats, err := s.collector.GetStats()
	if err != nil {
		s.logger.Error("metrics query failed: %v", err)
		http.Error(w, "metrics unavailable", http.StatusInternalServerError)
		return
	}
	s.writeJSON(w, stats)
}

func (s *Server) writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("failed to encode response: %v", err)
	}
}
