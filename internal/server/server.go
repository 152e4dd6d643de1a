package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	"scribe/internal/config"
	"scribe/internal/logger"
	"scribe/internal/pipeline"
)

// RecapService is the pipeline surface exposed over HTTP
type RecapService interface {
	GenerateRecap(ctx context.Context, gameID string) *pipeline.Result
	Status() pipeline.StatusReport
}

// Server represents the HTTP server
type Server struct {
	router     *chi.Mux
	httpServer *http.Server
	recaps     RecapService
	config     config.Server
}

// New creates a new HTTP server instance
func New(recaps RecapService, cfg config.Server) *Server {
	s := &Server{
		router: chi.NewRouter(),
		recaps: recaps,
		config: cfg,
	}

	// Setup middleware
	s.setupMiddleware()

	// Setup routes
	s.setupRoutes()

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  config.Duration(cfg.ReadTimeout, 15*time.Second),
		WriteTimeout: s.writeTimeout(),
	}

	return s
}

func (s *Server) writeTimeout() time.Duration {
	return config.Duration(s.config.WriteTimeout, 5*time.Minute)
}

// setupMiddleware configures middleware for the server
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(requestLogger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(securityHeaders)

	// A recap run makes several model calls; give it the whole write window
	s.router.Use(middleware.Timeout(s.writeTimeout()))

	origins := s.config.CORS.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	s.router.Use(cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		MaxAge:         300,
	}).Handler)

	if s.config.RateLimit.Enabled && s.config.RateLimit.Requests > 0 {
		window := config.Duration(s.config.RateLimit.Window, time.Minute)
		s.router.Use(rateLimit(s.config.RateLimit.Requests, window))
	}
}

// setupRoutes configures routes for the server
func (s *Server) setupRoutes() {
	s.router.Get("/health", s.handleHealth)

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Get("/status", s.handleStatus)
		r.Post("/recaps/{gameID}", s.handleGenerateRecap)
	})
}

// Start starts the HTTP server
func (s *Server) Start() error {
	logger.Info("Starting HTTP server",
		"addr", s.httpServer.Addr,
		"read_timeout", s.httpServer.ReadTimeout.String(),
		"write_timeout", s.httpServer.WriteTimeout.String(),
	)

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server failed to start: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	logger.Info("Shutting down HTTP server gracefully...")

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	logger.Info("HTTP server stopped")
	return nil
}

// Router returns the chi router instance (useful for testing)
func (s *Server) Router() *chi.Mux {
	return s.router
}
