// Package server provides the HTTP API for TruthTriage.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/truthtriage/truthtriage/internal/config"
	"github.com/truthtriage/truthtriage/internal/pipeline"
	"github.com/truthtriage/truthtriage/internal/storage"
)

// Server is the HTTP server for the TruthTriage API.
type Server struct {
	pipeline *pipeline.Service
	storage  storage.Storage
	config   *config.Config
	logger   *zap.Logger
	server   *http.Server

	vectorIndexSize func() int
}

// NewServer creates a server with the given dependencies.
// vectorIndexSize reports the live vector index size for the status endpoint.
func NewServer(
	svc *pipeline.Service,
	store storage.Storage,
	cfg *config.Config,
	logger *zap.Logger,
	vectorIndexSize func() int,
) *Server {
	return &Server{
		pipeline:        svc,
		storage:         store,
		config:          cfg,
		logger:          logger,
		vectorIndexSize: vectorIndexSize,
	}
}

// Router builds the chi router with all routes and middleware.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(120 * time.Second))
	r.Use(middleware.Compress(5))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.config.Server.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Post("/chat", s.handleChat)
	r.Post("/doctors", s.handleDoctors)
	r.Get("/documents", s.handleListDocuments)
	r.Get("/health", s.handleHealth)
	r.Get("/api/v1/status", s.handleStatus)

	return r
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)
	s.server = &http.Server{
		Addr:    addr,
		Handler: s.Router(),
	}
	s.logger.Info("Starting server", zap.String("addr", addr))
	return s.server.ListenAndServe()
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
