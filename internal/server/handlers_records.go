package server

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/claude/repbar/internal/history"
	"github.com/claude/repbar/internal/models"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func (s *Server) handleListTemplates(w http.ResponseWriter, r *http.Request) {
	templates, err := s.db.ListTemplates(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if templates == nil {
		templates = []models.Template{}
	}
	writeJSON(w, http.StatusOK, templates)
}

// handleSaveTemplate snapshots the current draft's exercise shape under the
// given name. A failed write is surfaced, not swallowed.
func (s *Server) handleSaveTemplate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	tpl, err := s.engine.SaveAsTemplate(strings.TrimSpace(req.Name))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.db.UpsertTemplate(r.Context(), tpl); err != nil {
		s.log.Error("template save failed", "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, tpl)
}

func (s *Server) handleDeleteTemplate(w http.ResponseWriter, r *http.Request) {
	if err := s.db.DeleteTemplate(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleListSessions returns sessions newest first, optionally filtered to a
// single date (?date=YYYY-MM-DD) or a closed range (?start=...&end=...).
func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := s.db.ListSessions(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	q := r.URL.Query()
	if date := q.Get("date"); date != "" {
		sessions = history.OnDate(sessions, date)
	} else if start, end := q.Get("start"), q.Get("end"); start != "" && end != "" {
		sessions = history.InRange(sessions, start, end)
	}
	if sessions == nil {
		sessions = []models.Session{}
	}
	writeJSON(w, http.StatusOK, sessions)
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := s.db.DeleteSession(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleListMovements returns the built-in catalog unioned with custom
// movements.
func (s *Server) handleListMovements(w http.ResponseWriter, r *http.Request) {
	customs, err := s.db.ListCustomMovements(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, models.Catalog(customs))
}

func (s *Server) handleCreateMovement(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string `json:"name"`
		Category string `json:"category"`
		Image    string `json:"image"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	category := models.MovementCategory(req.Category)
	if !models.ValidCategory(category) {
		writeError(w, http.StatusBadRequest, "category must be one of Pull, Push, Legs, Core")
		return
	}
	m := models.CustomMovement{
		ID:        "custom_" + uuid.NewString(),
		Name:      req.Name,
		Category:  category,
		Image:     req.Image,
		CreatedAt: time.Now(),
	}
	if err := s.db.UpsertCustomMovement(r.Context(), m); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, m)
}

func (s *Server) handleDeleteMovement(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !strings.HasPrefix(id, "custom_") {
		writeError(w, http.StatusBadRequest, "built-in movements cannot be deleted")
		return
	}
	if err := s.db.DeleteCustomMovement(r.Context(), id); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
