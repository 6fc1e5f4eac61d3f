package workout

import (
	"time"

	"github.com/claude/repbar/internal/models"
	"github.com/google/uuid"
)

// ToSession derives an immutable session from a draft. The caller gates on a
// non-empty exercise list. StartedAt falls back to now minus the accumulated
// time for drafts that ticked without ever being formally started. Exercises
// and sets are deep-copied verbatim; this snapshot becomes history.
func ToSession(d *models.WorkoutDraft, now time.Time) models.Session {
	startedAt := now.Add(-time.Duration(d.ElapsedMs) * time.Millisecond)
	if d.StartedAt != nil {
		startedAt = *d.StartedAt
	}
	return models.Session{
		ID:        uuid.NewString(),
		Date:      models.DateOf(now),
		Title:     d.Title,
		StartedAt: startedAt,
		EndedAt:   now,
		ElapsedMs: d.ElapsedMs,
		Exercises: models.CloneEntries(d.Exercises),
	}
}

// ToTemplate snapshots a draft's exercise shape: movement, name, and notes
// only. Sets and load data are deliberately discarded so a template carries
// no performance history.
func ToTemplate(d *models.WorkoutDraft, name string, now time.Time) models.Template {
	tpl := models.Template{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: now,
		Exercises: make([]models.TemplateExercise, len(d.Exercises)),
	}
	for i, ex := range d.Exercises {
		tpl.Exercises[i] = models.TemplateExercise{
			ID:         uuid.NewString(),
			MovementID: ex.MovementID,
			Name:       ex.Name,
			Notes:      ex.Notes,
		}
	}
	return tpl
}

// FromTemplate instantiates a fresh idle draft from a template. Every
// exercise starts with an empty set list; the user re-logs sets each time.
func FromTemplate(tpl models.Template) *models.WorkoutDraft {
	d := &models.WorkoutDraft{
		ID:        uuid.NewString(),
		Title:     tpl.Name,
		Status:    models.StatusIdle,
		Exercises: make([]models.ExerciseEntry, len(tpl.Exercises)),
	}
	for i, ex := range tpl.Exercises {
		d.Exercises[i] = models.ExerciseEntry{
			ID:         uuid.NewString(),
			MovementID: ex.MovementID,
			Name:       ex.Name,
			Notes:      ex.Notes,
			Sets:       []models.SetRow{},
		}
	}
	return d
}
