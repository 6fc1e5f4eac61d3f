package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/claude/repbar/internal/models"
	"github.com/claude/repbar/internal/workout"
	"github.com/go-chi/chi/v5"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func (s *Server) handleGetDraft(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.engine.Snapshot())
}

func (s *Server) handleDraftStart(w http.ResponseWriter, r *http.Request) {
	s.engine.Start(r.Context())
	writeJSON(w, http.StatusOK, s.engine.Snapshot())
}

func (s *Server) handleDraftPause(w http.ResponseWriter, r *http.Request) {
	s.engine.Pause(r.Context())
	writeJSON(w, http.StatusOK, s.engine.Snapshot())
}

func (s *Server) handleDraftTick(w http.ResponseWriter, r *http.Request) {
	var req struct {
		DeltaMs int64 `json:"deltaMs"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	s.engine.Tick(r.Context(), req.DeltaMs)
	writeJSON(w, http.StatusOK, s.engine.Snapshot())
}

func (s *Server) handleDraftReset(w http.ResponseWriter, r *http.Request) {
	s.engine.Reset(r.Context())
	writeJSON(w, http.StatusOK, s.engine.Snapshot())
}

func (s *Server) handleDraftTitle(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title string `json:"title"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	s.engine.SetTitle(r.Context(), req.Title)
	writeJSON(w, http.StatusOK, s.engine.Snapshot())
}

// handleDraftFinish converts the draft into a session. The session write is
// confirmed before the draft is cleared; on failure the draft survives and
// the error goes back to the client.
func (s *Server) handleDraftFinish(w http.ResponseWriter, r *http.Request) {
	if len(s.engine.Snapshot().Exercises) == 0 {
		writeError(w, http.StatusBadRequest, "draft has no exercises")
		return
	}
	session, err := s.engine.Finish(r.Context(), s.db)
	if err != nil {
		s.log.Error("finish workout failed", "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, session)
}

func (s *Server) handleDraftFromTemplate(w http.ResponseWriter, r *http.Request) {
	tpl, ok, err := s.db.GetTemplate(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if !ok {
		writeError(w, http.StatusNotFound, "template not found")
		return
	}
	writeJSON(w, http.StatusOK, s.engine.StartFromTemplate(r.Context(), tpl))
}

func (s *Server) handleAddExercise(w http.ResponseWriter, r *http.Request) {
	var req struct {
		MovementID string `json:"movementId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	customs, err := s.db.ListCustomMovements(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	m, ok := models.LookupMovement(req.MovementID, customs)
	if !ok {
		writeError(w, http.StatusNotFound, "unknown movement")
		return
	}
	id := s.engine.AddExercise(r.Context(), m)
	writeJSON(w, http.StatusCreated, map[string]any{"id": id, "draft": s.engine.Snapshot()})
}

func (s *Server) handleRemoveExercise(w http.ResponseWriter, r *http.Request) {
	s.engine.RemoveExercise(r.Context(), chi.URLParam(r, "id"))
	writeJSON(w, http.StatusOK, s.engine.Snapshot())
}

func (s *Server) handleReorderExercises(w http.ResponseWriter, r *http.Request) {
	var req struct {
		From int `json:"from"`
		To   int `json:"to"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	s.engine.ReorderExercises(r.Context(), req.From, req.To)
	writeJSON(w, http.StatusOK, s.engine.Snapshot())
}

func (s *Server) handleExerciseNotes(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Notes string `json:"notes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	s.engine.UpdateExerciseNotes(r.Context(), chi.URLParam(r, "id"), req.Notes)
	writeJSON(w, http.StatusOK, s.engine.Snapshot())
}

func (s *Server) handleAddSet(w http.ResponseWriter, r *http.Request) {
	id := s.engine.AddSet(r.Context(), chi.URLParam(r, "id"))
	if id == "" {
		writeError(w, http.StatusNotFound, "exercise not found")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"id": id, "draft": s.engine.Snapshot()})
}

// setPatchRequest distinguishes omitted fields from explicit nulls so a set
// value can be cleared back to "unset" (displayed "-") rather than 0.
type setPatchRequest struct {
	Reps  json.RawMessage `json:"reps"`
	AddKg json.RawMessage `json:"addKg"`
	Done  *bool           `json:"done"`
}

func (req setPatchRequest) patch() (workout.SetPatch, error) {
	var p workout.SetPatch
	if len(req.Reps) > 0 {
		if string(req.Reps) == "null" {
			p.ClearReps = true
		} else {
			reps, err := strconv.Atoi(string(req.Reps))
			if err != nil {
				return p, err
			}
			p.Reps = &reps
		}
	}
	if len(req.AddKg) > 0 {
		if string(req.AddKg) == "null" {
			p.ClearAddKg = true
		} else {
			kg, err := strconv.ParseFloat(string(req.AddKg), 64)
			if err != nil {
				return p, err
			}
			p.AddKg = &kg
		}
	}
	p.Done = req.Done
	return p, nil
}

func (s *Server) handleUpdateSet(w http.ResponseWriter, r *http.Request) {
	var req setPatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	patch, err := req.patch()
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid set value: "+err.Error())
		return
	}
	s.engine.UpdateSet(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "setID"), patch)
	writeJSON(w, http.StatusOK, s.engine.Snapshot())
}

func (s *Server) handleRemoveSet(w http.ResponseWriter, r *http.Request) {
	s.engine.RemoveSet(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "setID"))
	writeJSON(w, http.StatusOK, s.engine.Snapshot())
}

func (s *Server) handleToggleSet(w http.ResponseWriter, r *http.Request) {
	s.engine.ToggleSetDone(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "setID"))
	writeJSON(w, http.StatusOK, s.engine.Snapshot())
}
