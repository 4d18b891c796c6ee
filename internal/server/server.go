package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/sentinelops/logsage/internal/analyzer"
	"github.com/sentinelops/logsage/internal/anomaly"
	"github.com/sentinelops/logsage/internal/config"
)

// Version is reported by the health and root endpoints.
const Version = "1.0.0"

type Server struct {
	cfg      *config.Config
	server   *http.Server
	analyzer *analyzer.Analyzer
	anomaly  *anomaly.Client
}

// New wires the analyzer behind the HTTP surface. The analyzer handle is
// created once at startup and shared by all requests.
func New(cfg *config.Config, a *analyzer.Analyzer, anomalyClient *anomaly.Client) *Server {
	s := &Server{
		cfg:      cfg,
		analyzer: a,
		anomaly:  anomalyClient,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))

	r.Get("/", s.handleRoot)
	r.Get("/health", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Post("/analyze", s.handleAnalyze)
	})

	s.server = &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	return s
}

// Run serves until the listener fails or the process receives
// SIGINT/SIGTERM, then shuts down gracefully.
func (s *Server) Run() error {
	serverErrors := make(chan error, 1)

	go func() {
		slog.Info("Starting server", "address", s.server.Addr)
		serverErrors <- s.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		slog.Info("Starting shutdown", "signal", sig)

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := s.server.Shutdown(ctx); err != nil {
			return fmt.Errorf("shutdown error: %w", err)
		}
	}

	return nil
}
