// Package server provides HTTP server management and lifecycle handling for the
// recommendation API: router setup, middleware, routes and graceful shutdown.
package server

import (
	"context"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"time"

	"github.com/giygas/magistral-api/config"
	"github.com/giygas/magistral-api/interfaces"
	"github.com/giygas/magistral-api/logging"
	"github.com/giygas/magistral-api/metrics"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server represents the HTTP server
type Server struct {
	server      *http.Server
	router      chi.Router
	handler     interfaces.HTTPHandler
	rateLimiter *RateLimiter
	config      *config.Config
}

// NewServer creates a new server instance
func NewServer(cfg *config.Config, handler interfaces.HTTPHandler) *Server {
	router := chi.NewRouter()

	// Recommendations wait on query expansion and generation.
	writeTimeout := 15*time.Second + cfg.ExpansionTimeout + cfg.GenerationTimeout

	server := &Server{
		server: &http.Server{
			Handler:      router,
			Addr:         cfg.Address + ":" + cfg.Port,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: writeTimeout,
			IdleTimeout:  60 * time.Second,
		},
		router:      router,
		handler:     handler,
		rateLimiter: NewRateLimiter(),
		config:      cfg,
	}

	server.setupMiddleware()
	server.setupRoutes()

	return server
}

// setupMiddleware configures all middleware
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	if s.config.Env == config.EnvProduction {
		s.router.Use(BlockDirectAccessMiddleware) // Put BEFORE RealIPMiddleware to see original RemoteAddr
	}
	s.router.Use(RealIPMiddleware)
	s.router.Use(logging.LoggingMiddleware(logging.Logger()))
	s.router.Use(middleware.RedirectSlashes)
	s.router.Use(middleware.Recoverer)
	s.router.Use(RequestSizeMiddleware(s.config))
	s.router.Use(s.rateLimiter.Handler)
	s.router.Use(metrics.Metrics)
}

// setupRoutes configures all routes
func (s *Server) setupRoutes() {
	s.router.Route("/v1", func(r chi.Router) {
		r.Post("/recommendations", s.handler.CreateRecommendation)
		r.Post("/quotes", s.handler.CreateQuote)
	})
	s.router.Get("/health", s.handler.HealthCheck)
	s.router.Handle("/metrics", promhttp.Handler())
}

// Start starts the server
func (s *Server) Start() error {
	if s.config.Env == config.EnvDevelopment {
		s.startProfilingServer()
	}

	s.rateLimiter.StartCleanup(30 * time.Minute)

	logging.Info(fmt.Sprintf("Starting server at: %s:%s", s.config.Address, s.config.Port))
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	logging.Info("Shutting down server...")
	s.rateLimiter.Stop()

	if err := s.server.Shutdown(ctx); err != nil {
		logging.Error("Server forced to shutdown", "error", err)
		if err := s.server.Close(); err != nil {
			logging.Error("Server close error", "error", err)
			return err
		}
	}

	logging.Info("Server shutdown complete")
	return nil
}

// startProfilingServer exposes pprof on localhost in development
func (s *Server) startProfilingServer() {
	go func() {
		logging.Info("Profiling server started at http://localhost:6060/debug/pprof/")
		if err := http.ListenAndServe("localhost:6060", nil); err != nil {
			logging.Warn("Profiling server failed", "error", err)
		}
	}()
}

// Handler returns the router with the full middleware chain
func (s *Server) Handler() http.Handler {
	return s.router
}
