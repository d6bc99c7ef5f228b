package http

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/meridian-labs/scanwatch-core/internal/core/ports/driven"
	"github.com/meridian-labs/scanwatch-core/internal/core/ports/driving"
)

// Pinger is a simple health check interface
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server represents the HTTP server
type Server struct {
	httpServer *http.Server
	router     *http.ServeMux
	version    string

	// Services
	scanService   driving.ScanService
	ingestService driving.IngestService
	digestService driving.DigestService

	// Infrastructure
	verifier  driven.TokenVerifier
	taskQueue driven.TaskQueue // can be nil, disables async ingest
	store     Pinger
}

// Config holds server configuration
type Config struct {
	Host    string
	Port    int
	Version string
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Host:    "0.0.0.0",
		Port:    8080,
		Version: "dev",
	}
}

// NewServer creates a new HTTP server
func NewServer(
	cfg Config,
	scanService driving.ScanService,
	ingestService driving.IngestService,
	digestService driving.DigestService,
	verifier driven.TokenVerifier,
	taskQueue driven.TaskQueue, // can be nil
	store Pinger,
) *Server {
	s := &Server{
		router:        http.NewServeMux(),
		version:       cfg.Version,
		scanService:   scanService,
		ingestService: ingestService,
		digestService: digestService,
		verifier:      verifier,
		taskQueue:     taskQueue,
		store:         store,
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      s.router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.setupRoutes()
	return s
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() {
	authMiddleware := NewAuthMiddleware(s.verifier)

	// Health endpoints (no auth)
	s.router.HandleFunc("GET /health", s.handleHealth)
	s.router.HandleFunc("GET /ready", s.handleReady)
	s.router.HandleFunc("GET /version", s.handleVersion)

	// Ingest endpoints
	s.router.Handle("POST /api/v1/scans",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleIngestScan)))
	s.router.Handle("POST /api/v1/scans/raw",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleIngestRaw)))

	// Read endpoints
	s.router.Handle("GET /api/v1/scans",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleListDates)))
	s.router.Handle("GET /api/v1/scans/{date}",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleGetDay)))
	s.router.Handle("GET /api/v1/scans/{date}/summary",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleGetDaySummary)))
	s.router.Handle("GET /api/v1/scans/{date}/framing",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleGetFraming)))
	s.router.Handle("GET /api/v1/digest/weekly",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleWeeklyDigest)))
}

// Start starts the HTTP server with graceful shutdown
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Starting server on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Println("Server stopped")
	return nil
}

// Stop stops the server
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
