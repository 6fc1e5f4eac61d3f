// Package workout owns the single in-progress workout draft: timer
// accumulation, exercise and set edits, and the conversions between drafts,
// sessions, and templates.
package workout

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/claude/repbar/internal/models"
	"github.com/google/uuid"
)

// DraftStore persists the current draft. Saves are a convenience cache, not
// authoritative history; the engine logs save failures and moves on.
type DraftStore interface {
	SaveDraft(ctx context.Context, d *models.WorkoutDraft) error
	ClearDraft(ctx context.Context) error
}

// SessionWriter records a finished session durably.
type SessionWriter interface {
	UpsertSession(ctx context.Context, s models.Session) error
}

// SetPatch describes a partial update to a single set. Nil fields are left
// unchanged; the Clear flags reset a value back to the unset state, which is
// distinct from 0.
type SetPatch struct {
	Reps       *int
	ClearReps  bool
	AddKg      *float64
	ClearAddKg bool
	Done       *bool
}

// Engine owns the mutable draft. All mutations go through it, it persists the
// draft after each one, and Snapshot hands out deep copies so callers never
// see shared state. Safe for concurrent use.
type Engine struct {
	mu    sync.Mutex
	draft *models.WorkoutDraft
	store DraftStore
	log   *slog.Logger
	now   func() time.Time
}

// NewEngine wraps an existing draft (typically loaded from the store at
// startup, or a fresh one). A nil draft starts empty.
func NewEngine(draft *models.WorkoutDraft, store DraftStore, log *slog.Logger) *Engine {
	if draft == nil {
		draft = models.NewDraft()
	}
	return &Engine{draft: draft, store: store, log: log, now: time.Now}
}

// Snapshot returns a deep copy of the current draft.
func (e *Engine) Snapshot() *models.WorkoutDraft {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.draft.Clone()
}

// persist saves the draft best-effort. Called with e.mu held.
func (e *Engine) persist(ctx context.Context) {
	if e.store == nil {
		return
	}
	if err := e.store.SaveDraft(ctx, e.draft); err != nil {
		e.log.Warn("draft save failed", "error", err)
	}
}

// Start transitions an idle or paused draft to running. StartedAt is set only
// if it was never set before.
func (e *Engine) Start(ctx context.Context) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.draft.Status == models.StatusRunning {
		return
	}
	e.draft.Status = models.StatusRunning
	if e.draft.StartedAt == nil {
		t := e.now()
		e.draft.StartedAt = &t
	}
	e.persist(ctx)
}

// Pause transitions a running draft to paused. Accumulated time is kept.
func (e *Engine) Pause(ctx context.Context) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.draft.Status != models.StatusRunning {
		return
	}
	e.draft.Status = models.StatusPaused
	e.persist(ctx)
}

// Tick adds deltaMs to the elapsed time. Elapsed time is a pure running sum
// over ticks, never re-derived from StartedAt, so pause/resume cycles neither
// lose nor double-count time. Large deltas from throttled or backgrounded
// timers are added as-is. Ignored unless running.
func (e *Engine) Tick(ctx context.Context, deltaMs int64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.draft.Status != models.StatusRunning || deltaMs <= 0 {
		return
	}
	e.draft.ElapsedMs += deltaMs
	e.persist(ctx)
}

// Reset zeroes the timer and returns to idle. Exercises are kept.
func (e *Engine) Reset(ctx context.Context) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.draft.ElapsedMs = 0
	e.draft.Status = models.StatusIdle
	e.draft.StartedAt = nil
	e.persist(ctx)
}

// SetTitle renames the draft.
func (e *Engine) SetTitle(ctx context.Context, title string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.draft.Title = title
	e.persist(ctx)
}

// AddExercise appends a new entry for the given movement, snapshotting its
// current name. Returns the new entry's id.
func (e *Engine) AddExercise(ctx context.Context, m models.Movement) string {
	e.mu.Lock()
	defer e.mu.Unlock()
	entry := models.ExerciseEntry{
		ID:         uuid.NewString(),
		MovementID: m.ID,
		Name:       m.Name,
		Sets:       []models.SetRow{},
	}
	e.draft.Exercises = append(e.draft.Exercises, entry)
	e.persist(ctx)
	return entry.ID
}

// RemoveExercise deletes the entry with the given id. Unknown ids are a no-op.
func (e *Engine) RemoveExercise(ctx context.Context, id string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for i, ex := range e.draft.Exercises {
		if ex.ID == id {
			e.draft.Exercises = append(e.draft.Exercises[:i], e.draft.Exercises[i+1:]...)
			e.persist(ctx)
			return
		}
	}
}

// ReorderExercises moves the entry at from to position to, preserving the
// relative order of all other entries. Out-of-range indexes are a no-op.
func (e *Engine) ReorderExercises(ctx context.Context, from, to int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	n := len(e.draft.Exercises)
	if from < 0 || from >= n || to < 0 || to >= n || from == to {
		return
	}
	moved := e.draft.Exercises[from]
	rest := append(append([]models.ExerciseEntry{}, e.draft.Exercises[:from]...), e.draft.Exercises[from+1:]...)
	e.draft.Exercises = append(append(append([]models.ExerciseEntry{}, rest[:to]...), moved), rest[to:]...)
	e.persist(ctx)
}

// UpdateExerciseNotes replaces the notes on one entry.
func (e *Engine) UpdateExerciseNotes(ctx context.Context, id, notes string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for i := range e.draft.Exercises {
		if e.draft.Exercises[i].ID == id {
			e.draft.Exercises[i].Notes = notes
			e.persist(ctx)
			return
		}
	}
}

// AddSet appends an empty set to the given exercise. Returns the new set's id,
// or "" if the exercise does not exist.
func (e *Engine) AddSet(ctx context.Context, exerciseID string) string {
	e.mu.Lock()
	defer e.mu.Unlock()
	for i := range e.draft.Exercises {
		if e.draft.Exercises[i].ID == exerciseID {
			set := models.SetRow{ID: uuid.NewString()}
			e.draft.Exercises[i].Sets = append(e.draft.Exercises[i].Sets, set)
			e.persist(ctx)
			return set.ID
		}
	}
	return ""
}

// RemoveSet deletes one set from one exercise. Unknown ids are a no-op.
func (e *Engine) RemoveSet(ctx context.Context, exerciseID, setID string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for i := range e.draft.Exercises {
		if e.draft.Exercises[i].ID != exerciseID {
			continue
		}
		sets := e.draft.Exercises[i].Sets
		for j := range sets {
			if sets[j].ID == setID {
				e.draft.Exercises[i].Sets = append(sets[:j], sets[j+1:]...)
				e.persist(ctx)
				return
			}
		}
		return
	}
}

// UpdateSet applies a partial update to one set. Unknown ids are a no-op.
func (e *Engine) UpdateSet(ctx context.Context, exerciseID, setID string, patch SetPatch) {
	e.mu.Lock()
	defer e.mu.Unlock()
	set := e.findSet(exerciseID, setID)
	if set == nil {
		return
	}
	if patch.ClearReps {
		set.Reps = nil
	} else if patch.Reps != nil {
		v := *patch.Reps
		set.Reps = &v
	}
	if patch.ClearAddKg {
		set.AddKg = nil
	} else if patch.AddKg != nil {
		v := *patch.AddKg
		set.AddKg = &v
	}
	if patch.Done != nil {
		set.Done = *patch.Done
	}
	e.persist(ctx)
}

// ToggleSetDone flips the done flag on one set. Unknown ids are a no-op.
func (e *Engine) ToggleSetDone(ctx context.Context, exerciseID, setID string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	set := e.findSet(exerciseID, setID)
	if set == nil {
		return
	}
	set.Done = !set.Done
	e.persist(ctx)
}

// findSet locates a set in place. Called with e.mu held.
func (e *Engine) findSet(exerciseID, setID string) *models.SetRow {
	for i := range e.draft.Exercises {
		if e.draft.Exercises[i].ID != exerciseID {
			continue
		}
		sets := e.draft.Exercises[i].Sets
		for j := range sets {
			if sets[j].ID == setID {
				return &sets[j]
			}
		}
		return nil
	}
	return nil
}

// Finish converts the draft to a session, writes it, and only then replaces
// the draft with a fresh empty one. If the write fails the draft is left
// intact and the error is returned; a completed workout is never discarded
// silently.
func (e *Engine) Finish(ctx context.Context, sessions SessionWriter) (models.Session, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if len(e.draft.Exercises) == 0 {
		return models.Session{}, fmt.Errorf("finishing workout: draft has no exercises")
	}

	s := ToSession(e.draft, e.now())
	if err := sessions.UpsertSession(ctx, s); err != nil {
		return models.Session{}, fmt.Errorf("saving session: %w", err)
	}

	e.draft = models.NewDraft()
	if e.store != nil {
		if err := e.store.ClearDraft(ctx); err != nil {
			e.log.Warn("draft clear failed", "error", err)
		}
	}
	e.persist(ctx)
	return s, nil
}

// StartFromTemplate replaces the draft with a fresh one instantiated from the
// template. Any current draft content is discarded.
func (e *Engine) StartFromTemplate(ctx context.Context, tpl models.Template) *models.WorkoutDraft {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.draft = FromTemplate(tpl)
	e.persist(ctx)
	return e.draft.Clone()
}

// SaveAsTemplate snapshots the draft's exercise shape under the given name.
// The draft itself is not modified.
func (e *Engine) SaveAsTemplate(name string) (models.Template, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if name == "" {
		return models.Template{}, fmt.Errorf("saving template: name is required")
	}
	if len(e.draft.Exercises) == 0 {
		return models.Template{}, fmt.Errorf("saving template: draft has no exercises")
	}
	return ToTemplate(e.draft, name, e.now()), nil
}
