// Package server provides the HTTP API server for the support agent.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"helpdesk-hq/agentd/pkg/config"
	"helpdesk-hq/agentd/pkg/server/middleware"
	"helpdesk-hq/agentd/pkg/telemetry/health"
	"helpdesk-hq/agentd/pkg/telemetry/metrics"
	"helpdesk-hq/agentd/pkg/ticket"
)

// BuildInfo identifies the running binary on the banner, version, and
// health endpoints.
type BuildInfo struct {
	Version   string
	Commit    string
	BuildTime string
}

// Server is the HTTP API server for the support agent.
type Server struct {
	config    *config.Config
	collector *metrics.Collector
	checker   *health.Checker
	build     BuildInfo

	// process is the ticket pipeline entry point, wrapped with the
	// lifecycle instrumentation when metrics are enabled.
	process metrics.TicketFunc

	httpServer   *http.Server
	shutdownChan chan struct{}
	shutdownOnce sync.Once
	mu           sync.RWMutex
	isRunning    bool
}

// NewServer creates a new API server. The collector may be nil when
// metrics are disabled; the checker must not be nil.
func NewServer(cfg *config.Config, collector *metrics.Collector, checker *health.Checker, build BuildInfo) *Server {
	s := &Server{
		config:       cfg,
		collector:    collector,
		checker:      checker,
		build:        build,
		shutdownChan: make(chan struct{}),
	}

	s.process = s.processTicket
	if collector != nil {
		s.process = collector.TrackTicketProcessing(s.processTicket)
	}

	return s
}

// Start starts the HTTP server and blocks until shutdown.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return fmt.Errorf("server is already running")
	}
	s.isRunning = true
	s.mu.Unlock()

	handler := s.setupRoutes()

	s.httpServer = &http.Server{
		Addr:           s.config.Server.ListenAddress,
		Handler:        handler,
		ReadTimeout:    s.config.Server.ReadTimeout,
		WriteTimeout:   s.config.Server.WriteTimeout,
		IdleTimeout:    s.config.Server.IdleTimeout,
		MaxHeaderBytes: s.config.Server.MaxHeaderBytes,
	}

	errChan := make(chan error, 1)
	go func() {
		slog.Info("starting api server",
			"address", s.config.Server.ListenAddress,
			"environment", s.config.App.Environment,
			"version", s.build.Version,
		)

		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case <-ctx.Done():
		slog.Info("context cancelled, initiating shutdown")
		return s.Shutdown(context.Background())
	case sig := <-sigChan:
		slog.Info("received shutdown signal", "signal", sig.String())
		return s.Shutdown(context.Background())
	case err := <-errChan:
		return err
	case <-s.shutdownChan:
		slog.Info("shutdown requested")
		return s.Shutdown(context.Background())
	}
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		s.mu.Lock()
		if !s.isRunning {
			s.mu.Unlock()
			return
		}
		s.mu.Unlock()

		slog.Info("initiating graceful shutdown", "timeout", s.config.Server.ShutdownTimeout.String())

		shutdownCtx, cancel := context.WithTimeout(ctx, s.config.Server.ShutdownTimeout)
		defer cancel()

		if s.httpServer != nil {
			if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
				slog.Error("error during server shutdown", "error", err)
				shutdownErr = fmt.Errorf("server shutdown error: %w", err)
			}
		}

		s.mu.Lock()
		s.isRunning = false
		s.mu.Unlock()

		slog.Info("api server stopped")
	})

	return shutdownErr
}

// setupRoutes configures HTTP routes and the middleware chain.
func (s *Server) setupRoutes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", s.handleRoot)
	health.Register(mux, s.checker, s.build.Version, s.build.Commit, s.build.BuildTime)

	if s.collector != nil {
		path := s.config.Telemetry.Metrics.Path
		if path == "" {
			path = config.DefaultMetricsPath
		}
		mux.Handle("GET "+path, s.collector.Handler())
	}

	mux.HandleFunc("POST /api/v1/tickets", s.handleCreateTicket)
	mux.HandleFunc("GET /api/v1/tickets/{id}", s.handleGetTicket)

	var handler http.Handler = mux

	// The HTTP metrics wrapper sits directly around the mux so the
	// route pattern is available for the endpoint label.
	if s.collector != nil {
		handler = s.collector.HTTPMiddleware(handler)
	}

	handler = middleware.TimeoutMiddleware(s.config.Server.WriteTimeout)(handler)
	handler = middleware.CORSMiddleware(s.convertCORSConfig())(handler)
	handler = middleware.LoggingMiddleware(handler)
	handler = middleware.RequestIDMiddleware(handler)
	handler = middleware.RecoveryMiddleware(handler)

	return handler
}

// IsRunning returns true if the server is running.
func (s *Server) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// Handler returns the configured HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.setupRoutes()
}

// convertCORSConfig converts config.CORSConfig to middleware.CORSConfig.
func (s *Server) convertCORSConfig() *middleware.CORSConfig {
	return &middleware.CORSConfig{
		Enabled:          s.config.Server.CORS.Enabled,
		AllowedOrigins:   s.config.Server.CORS.AllowedOrigins,
		AllowedMethods:   s.config.Server.CORS.AllowedMethods,
		AllowedHeaders:   s.config.Server.CORS.AllowedHeaders,
		MaxAge:           s.config.Server.CORS.MaxAge,
		AllowCredentials: s.config.Server.CORS.AllowCredentials,
	}
}

// processTicket is the skeleton processing pipeline: tickets are accepted
// and left pending for the queue workers. Classification and the LLM
// resolution path plug in here.
func (s *Server) processTicket(ctx context.Context, tk *ticket.Ticket) (*ticket.Result, error) {
	slog.InfoContext(ctx, "ticket accepted",
		"ticket_id", tk.ID,
		"category", tk.MetricCategory(),
		"channel", tk.MetricChannel(),
	)

	return &ticket.Result{Outcome: ticket.Pending{}}, nil
}
