package models

import (
	"time"

	"github.com/google/uuid"
)

// DraftStatus is the lifecycle state of the in-progress workout.
type DraftStatus string

const (
	StatusIdle    DraftStatus = "idle"
	StatusRunning DraftStatus = "running"
	StatusPaused  DraftStatus = "paused"
)

// SetRow is one logged attempt within an exercise entry. Reps and AddKg are
// pointers because "not entered yet" is distinct from 0 and must survive a
// round trip through storage (displayed as "-" rather than "0").
type SetRow struct {
	ID    string   `json:"id"`
	Reps  *int     `json:"reps"`
	AddKg *float64 `json:"addKg"`
	Done  bool     `json:"done"`
}

// RepsValue returns the logged rep count, coercing an unset value to 0.
// Aggregation paths use this so sparse legacy rows never break analytics.
func (s SetRow) RepsValue() int {
	if s.Reps == nil {
		return 0
	}
	return *s.Reps
}

// AddKgValue returns the logged added weight, coercing an unset value to 0.
func (s SetRow) AddKgValue() float64 {
	if s.AddKg == nil {
		return 0
	}
	return *s.AddKg
}

// ExerciseEntry is one exercise within a draft or session. Name is a snapshot
// taken when the exercise was added; renaming a movement later does not
// rewrite history. Set order is significant (set number = index+1).
type ExerciseEntry struct {
	ID         string   `json:"id"`
	MovementID string   `json:"movementId"`
	Name       string   `json:"name"`
	Notes      string   `json:"notes"`
	Sets       []SetRow `json:"sets"`
}

// MovementKey returns the grouping key for analytics: the movement id, or the
// snapshot name for legacy entries that never carried one.
func (e ExerciseEntry) MovementKey() string {
	if e.MovementID != "" {
		return e.MovementID
	}
	return e.Name
}

// Clone returns a deep copy of the entry.
func (e ExerciseEntry) Clone() ExerciseEntry {
	out := e
	out.Sets = make([]SetRow, len(e.Sets))
	for i, s := range e.Sets {
		cs := s
		if s.Reps != nil {
			v := *s.Reps
			cs.Reps = &v
		}
		if s.AddKg != nil {
			v := *s.AddKg
			cs.AddKg = &v
		}
		out.Sets[i] = cs
	}
	return out
}

// CloneEntries deep-copies a slice of exercise entries.
func CloneEntries(entries []ExerciseEntry) []ExerciseEntry {
	out := make([]ExerciseEntry, len(entries))
	for i, e := range entries {
		out[i] = e.Clone()
	}
	return out
}

// WorkoutDraft is the single mutable in-progress workout. ElapsedMs only
// grows while the status is running; StartedAt is set once on the first
// transition into running and cleared only by an explicit reset.
type WorkoutDraft struct {
	ID        string          `json:"id"`
	Title     string          `json:"title"`
	Status    DraftStatus     `json:"status"`
	StartedAt *time.Time      `json:"startedAt"`
	ElapsedMs int64           `json:"elapsedMs"`
	Exercises []ExerciseEntry `json:"exercises"`
}

// NewDraft returns a fresh empty draft.
func NewDraft() *WorkoutDraft {
	return &WorkoutDraft{
		ID:        uuid.NewString(),
		Title:     "Workout",
		Status:    StatusIdle,
		Exercises: []ExerciseEntry{},
	}
}

// Clone returns a deep copy of the draft.
func (d *WorkoutDraft) Clone() *WorkoutDraft {
	out := *d
	if d.StartedAt != nil {
		t := *d.StartedAt
		out.StartedAt = &t
	}
	out.Exercises = CloneEntries(d.Exercises)
	return &out
}

// TemplateExercise is the shape-only snapshot of an exercise within a
// template: no sets, no load data.
type TemplateExercise struct {
	ID         string `json:"id"`
	MovementID string `json:"movementId"`
	Name       string `json:"name"`
	Notes      string `json:"notes"`
}

// Template is a reusable exercise shape saved from a draft.
type Template struct {
	ID        string             `json:"id"`
	Name      string             `json:"name"`
	CreatedAt time.Time          `json:"createdAt"`
	Exercises []TemplateExercise `json:"exercises"`
}

// Session is an immutable historical record derived from a finished draft.
// The only permitted mutation afterward is deletion. Multiple sessions may
// share the same Date.
type Session struct {
	ID        string          `json:"id"`
	Date      string          `json:"date"` // YYYY-MM-DD, local calendar day
	Title     string          `json:"title"`
	StartedAt time.Time       `json:"startedAt"`
	EndedAt   time.Time       `json:"endedAt"`
	ElapsedMs int64           `json:"elapsedMs"`
	Exercises []ExerciseEntry `json:"exercises"`
}

// DateOf formats a time as a session date key in local time.
func DateOf(t time.Time) string {
	return t.Format("2006-01-02")
}
