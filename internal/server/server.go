// Package server exposes the draft engine, record stores, and analytics to
// the presentation layer over a JSON HTTP API.
package server

import (
	"log/slog"
	"net/http"

	"github.com/claude/repbar/internal/storage"
	"github.com/claude/repbar/internal/workout"
	"github.com/go-chi/chi/v5"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	db     *storage.DB
	engine *workout.Engine
	log    *slog.Logger
	router chi.Router
}

// New creates a new Server with all routes configured.
func New(db *storage.DB, engine *workout.Engine, log *slog.Logger) *Server {
	s := &Server{
		db:     db,
		engine: engine,
		log:    log,
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

	s.router.Route("/api/v1", func(r chi.Router) {
		// Current draft
		r.Get("/draft", s.handleGetDraft)
		r.Post("/draft/start", s.handleDraftStart)
		r.Post("/draft/pause", s.handleDraftPause)
		r.Post("/draft/tick", s.handleDraftTick)
		r.Post("/draft/reset", s.handleDraftReset)
		r.Put("/draft/title", s.handleDraftTitle)
		r.Post("/draft/finish", s.handleDraftFinish)
		r.Post("/draft/from-template/{id}", s.handleDraftFromTemplate)

		r.Post("/draft/exercises", s.handleAddExercise)
		r.Post("/draft/exercises/reorder", s.handleReorderExercises)
		r.Delete("/draft/exercises/{id}", s.handleRemoveExercise)
		r.Put("/draft/exercises/{id}/notes", s.handleExerciseNotes)
		r.Post("/draft/exercises/{id}/sets", s.handleAddSet)
		r.Patch("/draft/exercises/{id}/sets/{setID}", s.handleUpdateSet)
		r.Delete("/draft/exercises/{id}/sets/{setID}", s.handleRemoveSet)
		r.Post("/draft/exercises/{id}/sets/{setID}/toggle", s.handleToggleSet)

		// Templates
		r.Get("/templates", s.handleListTemplates)
		r.Post("/templates", s.handleSaveTemplate)
		r.Delete("/templates/{id}", s.handleDeleteTemplate)

		// Sessions
		r.Get("/sessions", s.handleListSessions)
		r.Delete("/sessions/{id}", s.handleDeleteSession)

		// Movement catalog
		r.Get("/movements", s.handleListMovements)
		r.Post("/movements", s.handleCreateMovement)
		r.Delete("/movements/{id}", s.handleDeleteMovement)
		r.Get("/movements/{id}/last", s.handleLastPerformance)
		r.Get("/movements/{id}/series", s.handleMovementSeries)

		// Stats
		r.Get("/stats", s.handleStatsOverview)
	})
}
