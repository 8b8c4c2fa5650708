// Package httpapi exposes the RAG chatbot over HTTP.
//
// Endpoints:
//
//	POST /chat         → answer a question grounded in retrieved book content
//	GET  /chat/health  → detailed per-dependency health report
//	GET  /health       → liveness probe
//	GET  /             → API info
package httpapi

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"book-rag-chatbot/domain"
)

const (
	// DefaultAddr is the default address for the HTTP server.
	DefaultAddr = "127.0.0.1:8000"

	// ShutdownTimeout is the maximum time to wait for graceful shutdown.
	ShutdownTimeout = 10 * time.Second

	// ReadHeaderTimeout bounds header reads to avoid slowloris-style stalls.
	ReadHeaderTimeout = 10 * time.Second
	// ReadTimeout is the maximum duration for reading the entire request.
	ReadTimeout = 30 * time.Second
	// WriteTimeout is generous because one request spans embedding,
	// retrieval, and generation round trips.
	WriteTimeout = 120 * time.Second
	// IdleTimeout applies to keep-alive connections.
	IdleTimeout = 120 * time.Second
)

// ChatService is the application surface the HTTP layer depends on.
type ChatService interface {
	Respond(ctx context.Context, query, selectedText string, conversationHistory []domain.ConversationMessage) (domain.ChatResponse, error)
	Health(ctx context.Context) domain.HealthStatus
}

// Server is the HTTP server for the chatbot API.
type Server struct {
	mux            *http.ServeMux
	allowedOrigins []string
	logger         *slog.Logger
}

// NewServer creates a new HTTP server with all routes registered.
func NewServer(chat ChatService, allowedOrigins []string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	mux := http.NewServeMux()
	s := &Server{
		mux:            mux,
		allowedOrigins: allowedOrigins,
		logger:         logger,
	}

	h := &chatHandler{service: chat, logger: logger}
	mux.HandleFunc("POST /chat", h.handleChat)
	mux.HandleFunc("GET /chat/health", h.handleChatHealth)
	mux.HandleFunc("GET /health", handleHealth)
	mux.HandleFunc("GET /{$}", handleRoot)

	return s
}

// Handler returns the HTTP handler with middleware applied.
// Middleware order: recovery → logging → CORS → handler.
func (s *Server) Handler() http.Handler {
	return chain(s.mux,
		corsMiddleware(s.allowedOrigins),
		loggingMiddleware(s.logger),
		recoveryMiddleware(s.logger),
	)
}

// Run starts the HTTP server and blocks until the context is cancelled,
// then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	if addr == "" {
		addr = DefaultAddr
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: ReadHeaderTimeout,
		ReadTimeout:       ReadTimeout,
		WriteTimeout:      WriteTimeout,
		IdleTimeout:       IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting HTTP server", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()
		s.logger.Info("shutting down HTTP server")
		return srv.Shutdown(shutdownCtx)
	}
}
