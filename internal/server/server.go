package server

import (
	"log/slog"
	"net/http"

	"github.com/fabianluz/liftlog/internal/ingest/hevy"
	"github.com/fabianluz/liftlog/internal/storage"
	"github.com/go-chi/chi/v5"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	db     *storage.DB
	hevy   *hevy.Provider
	log    *slog.Logger
	apiKey string
	router chi.Router
}

// New creates a new Server with all routes configured.
func New(db *storage.DB, hevyProvider *hevy.Provider, apiKey string, log *slog.Logger) *Server {
	s := &Server{
		db:     db,
		hevy:   hevyProvider,
		log:    log,
		apiKey: apiKey,
		router: chi.NewRouter(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)

	// Import endpoint (API key required when one is configured)
	s.router.With(APIKeyAuth(s.apiKey)).Post("/upload", s.handleUpload)

	// Dashboard API endpoints (no auth — intended to sit behind tsnet)
	s.router.Get("/api/stats", s.handleStats)
	s.router.Get("/api/recent", s.handleRecent)
	s.router.Get("/api/history", s.handleHistory)
	s.router.Get("/api/history/{id}", s.handleWorkoutDetail)
	s.router.Get("/exercises", s.handleExercises)
	s.router.Get("/analytics/{exerciseId}", s.handleAnalytics)
}
