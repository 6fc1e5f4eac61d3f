package models

import (
	"encoding/json"
	"testing"
	"time"
)

func intPtr(v int) *int { return &v }
func floatPtr(v float64) *float64 { return &v }

// TestSetRowUnsetVsZero verifies that unset reps/addKg survive a JSON round
// trip as null, distinct from explicit zeros.
func TestSetRowUnsetVsZero(t *testing.T) {
	tests := []struct {
		name string
		row  SetRow
		want string
	}{
		{
			name: "unset fields encode as null",
			row:  SetRow{ID: "s1"},
			want: `{"id":"s1","reps":null,"addKg":null,"done":false}`,
		},
		{
			name: "explicit zeros encode as zeros",
			row:  SetRow{ID: "s2", Reps: intPtr(0), AddKg: floatPtr(0), Done: true},
			want: `{"id":"s2","reps":0,"addKg":0,"done":true}`,
		},
		{
			name: "values encode as values",
			row:  SetRow{ID: "s3", Reps: intPtr(12), AddKg: floatPtr(7.5)},
			want: `{"id":"s3","reps":12,"addKg":7.5,"done":false}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.row)
			if err != nil {
				t.Fatal(err)
			}
			if string(data) != tt.want {
				t.Errorf("marshal = %s, want %s", data, tt.want)
			}

			var back SetRow
			if err := json.Unmarshal(data, &back); err != nil {
				t.Fatal(err)
			}
			if (back.Reps == nil) != (tt.row.Reps == nil) {
				t.Errorf("reps nil-ness lost in round trip")
			}
			if (back.AddKg == nil) != (tt.row.AddKg == nil) {
				t.Errorf("addKg nil-ness lost in round trip")
			}
		})
	}
}

// TestSetRowValueCoercion verifies that aggregation helpers coerce unset to 0.
func TestSetRowValueCoercion(t *testing.T) {
	unset := SetRow{}
	if got := unset.RepsValue(); got != 0 {
		t.Errorf("RepsValue() = %d, want 0", got)
	}
	if got := unset.AddKgValue(); got != 0 {
		t.Errorf("AddKgValue() = %g, want 0", got)
	}

	set := SetRow{Reps: intPtr(8), AddKg: floatPtr(15)}
	if got := set.RepsValue(); got != 8 {
		t.Errorf("RepsValue() = %d, want 8", got)
	}
	if got := set.AddKgValue(); got != 15 {
		t.Errorf("AddKgValue() = %g, want 15", got)
	}
}

// TestMovementKey verifies the grouping key falls back to the snapshot name
// for legacy entries without a movement id.
func TestMovementKey(t *testing.T) {
	withID := ExerciseEntry{MovementID: "pullup", Name: "Pull-ups"}
	if got := withID.MovementKey(); got != "pullup" {
		t.Errorf("MovementKey() = %q, want %q", got, "pullup")
	}

	legacy := ExerciseEntry{Name: "Pull-ups"}
	if got := legacy.MovementKey(); got != "Pull-ups" {
		t.Errorf("MovementKey() = %q, want %q", got, "Pull-ups")
	}
}

// TestExerciseEntryClone verifies that Clone produces an independent deep
// copy, including the pointer fields inside sets.
func TestExerciseEntryClone(t *testing.T) {
	orig := ExerciseEntry{
		ID:         "e1",
		MovementID: "dip",
		Name:       "Dips",
		Sets: []SetRow{
			{ID: "s1", Reps: intPtr(10), AddKg: floatPtr(5)},
			{ID: "s2"},
		},
	}

	cp := orig.Clone()
	*cp.Sets[0].Reps = 99
	cp.Sets[1].Done = true

	if *orig.Sets[0].Reps != 10 {
		t.Errorf("clone mutation leaked into original reps: %d", *orig.Sets[0].Reps)
	}
	if orig.Sets[1].Done {
		t.Error("clone mutation leaked into original done flag")
	}
}

// TestDraftClone verifies deep-copy semantics of the whole draft.
func TestDraftClone(t *testing.T) {
	start := time.Date(2026, 3, 1, 18, 0, 0, 0, time.Local)
	d := &WorkoutDraft{
		ID:        "d1",
		Title:     "Push Day",
		Status:    StatusRunning,
		StartedAt: &start,
		ElapsedMs: 120000,
		Exercises: []ExerciseEntry{{ID: "e1", Name: "Dips", Sets: []SetRow{{ID: "s1"}}}},
	}

	cp := d.Clone()
	*cp.StartedAt = cp.StartedAt.Add(time.Hour)
	cp.Exercises[0].Name = "changed"

	if !d.StartedAt.Equal(start) {
		t.Error("clone mutation leaked into original StartedAt")
	}
	if d.Exercises[0].Name != "Dips" {
		t.Error("clone mutation leaked into original exercises")
	}
}

// TestNewDraft verifies the fresh draft defaults.
func TestNewDraft(t *testing.T) {
	d := NewDraft()
	if d.ID == "" {
		t.Error("new draft has empty id")
	}
	if d.Title != "Workout" {
		t.Errorf("title = %q, want %q", d.Title, "Workout")
	}
	if d.Status != StatusIdle {
		t.Errorf("status = %q, want %q", d.Status, StatusIdle)
	}
	if d.StartedAt != nil {
		t.Error("new draft has a start time")
	}
	if d.ElapsedMs != 0 {
		t.Errorf("elapsedMs = %d, want 0", d.ElapsedMs)
	}
	if d.Exercises == nil || len(d.Exercises) != 0 {
		t.Errorf("exercises = %v, want empty non-nil slice", d.Exercises)
	}
}

// TestDateOf verifies session date key formatting.
func TestDateOf(t *testing.T) {
	ts := time.Date(2026, 8, 9, 23, 59, 0, 0, time.Local)
	if got := DateOf(ts); got != "2026-08-09" {
		t.Errorf("DateOf() = %q, want %q", got, "2026-08-09")
	}
}
