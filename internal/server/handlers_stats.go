package server

import (
	"net/http"
	"time"

	"github.com/claude/repbar/internal/history"
	"github.com/claude/repbar/internal/stats"
	"github.com/go-chi/chi/v5"
)

func (s *Server) handleStatsOverview(w http.ResponseWriter, r *http.Request) {
	sessions, err := s.db.ListSessions(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, stats.BuildOverview(sessions, time.Now()))
}

func (s *Server) handleLastPerformance(w http.ResponseWriter, r *http.Request) {
	sessions, err := s.db.ListSessions(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	last, ok := history.Last(sessions, chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusNotFound, "no recorded performance for movement")
		return
	}
	writeJSON(w, http.StatusOK, last)
}

// movementSeriesResponse is the chart payload for one movement: the windowed
// points plus each metric normalized to [0,1] so kg and reps can share one
// chart area.
type movementSeriesResponse struct {
	Points         []stats.SeriesPoint   `json:"points"`
	NormalizedKg   []float64             `json:"normalizedKg"`
	NormalizedReps []float64             `json:"normalizedReps"`
	Summary        stats.MovementSummary `json:"summary"`
}

func (s *Server) handleMovementSeries(w http.ResponseWriter, r *http.Request) {
	sessions, err := s.db.ListSessions(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	movementID := chi.URLParam(r, "id")
	points := stats.Series(sessions, movementID, stats.SeriesLimit)

	kg := make([]float64, len(points))
	reps := make([]float64, len(points))
	for i, p := range points {
		kg[i] = p.BestKg
		reps[i] = float64(p.BestReps)
	}

	writeJSON(w, http.StatusOK, movementSeriesResponse{
		Points:         points,
		NormalizedKg:   stats.Normalize(kg),
		NormalizedReps: stats.Normalize(reps),
		Summary:        stats.SummarizeMovement(sessions, movementID),
	})
}
