package stats

import (
	"fmt"
	"math"
	"testing"

	"github.com/claude/repbar/internal/models"
)

// TestHistoryQualification verifies that a session charts only when it
// logged at least one nonzero set for the movement, and that per-session
// bests are maximized independently.
func TestHistoryQualification(t *testing.T) {
	sessions := []models.Session{
		sessionOn("2026-03-01", 0, entry("pullup", "Pull-ups", set(5, 20), set(10, 10))),
		sessionOn("2026-03-02", 0, entry("pullup", "Pull-ups", models.SetRow{ID: "empty"})),
		sessionOn("2026-03-03", 0, entry("dip", "Dips", set(12, 0))),
		sessionOn("2026-03-04", 0, entry("pullup", "Pull-ups", set(0, 5))),
	}

	rows := History(sessions, "pullup")
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2 (zero-only session does not qualify)", len(rows))
	}
	// Newest first.
	if rows[0].Date != "2026-03-04" || rows[1].Date != "2026-03-01" {
		t.Errorf("dates = %s, %s", rows[0].Date, rows[1].Date)
	}
	if rows[1].BestKg != 20 || rows[1].BestReps != 10 {
		t.Errorf("bests = %+v, want kg 20 / reps 10 maximized independently", rows[1])
	}
	if rows[1].Score != 200 {
		t.Errorf("score = %g, want 200", rows[1].Score)
	}
}

// TestSeriesWindow verifies that the chart takes the most recent limit
// sessions and presents them oldest to newest.
func TestSeriesWindow(t *testing.T) {
	var sessions []models.Session
	for i := 1; i <= 20; i++ {
		date := fmt.Sprintf("2026-03-%02d", i)
		sessions = append(sessions, sessionOn(date, 0, entry("pullup", "Pull-ups", set(i, 0))))
	}

	pts := Series(sessions, "pullup", SeriesLimit)
	if len(pts) != SeriesLimit {
		t.Fatalf("points = %d, want %d", len(pts), SeriesLimit)
	}
	// Window covers days 7..20, ordered oldest to newest.
	if pts[0].Date != "2026-03-07" || pts[len(pts)-1].Date != "2026-03-20" {
		t.Errorf("window = %s..%s, want 2026-03-07..2026-03-20", pts[0].Date, pts[len(pts)-1].Date)
	}
	for i := 1; i < len(pts); i++ {
		if pts[i].Date < pts[i-1].Date {
			t.Fatalf("points not in ascending date order at %d", i)
		}
	}
}

// TestSeriesEmpty verifies that an unknown movement yields an empty non-nil
// slice so the JSON encodes as [].
func TestSeriesEmpty(t *testing.T) {
	pts := Series(nil, "pullup", SeriesLimit)
	if pts == nil || len(pts) != 0 {
		t.Errorf("points = %v, want empty non-nil slice", pts)
	}
}

// TestSummarizeMovement verifies the detail-view condensation: all-time
// maxima plus the most recent session's label and score.
func TestSummarizeMovement(t *testing.T) {
	sessions := []models.Session{
		sessionOn("2026-03-01", 0, entry("pullup", "Pull-ups", set(10, 20))),
		sessionOn("2026-03-05", 0, entry("pullup", "Pull-ups", set(8, 15))),
	}

	sum := SummarizeMovement(sessions, "pullup")
	if sum.Sessions != 2 {
		t.Errorf("sessions = %d, want 2", sum.Sessions)
	}
	if sum.BestKg != 20 || sum.BestReps != 10 || sum.BestScore != 200 {
		t.Errorf("bests = %+v, want kg 20 / reps 10 / score 200", sum)
	}
	if sum.LastLabel != "8 reps @ +15kg" || sum.LastScore != 120 {
		t.Errorf("last = %q / %g, want from the 03-05 session", sum.LastLabel, sum.LastScore)
	}
}

// TestSummarizeMovementEmpty verifies the placeholder for a movement with no
// charted history.
func TestSummarizeMovementEmpty(t *testing.T) {
	sum := SummarizeMovement(nil, "pullup")
	if sum.Sessions != 0 || sum.LastLabel != "-" {
		t.Errorf("summary = %+v, want zero sessions with %q label", sum, "-")
	}
}

// TestNormalize verifies min-max scaling, the constant-series floor, and the
// empty case.
func TestNormalize(t *testing.T) {
	got := Normalize([]float64{10, 20, 15})
	want := []float64{0, 1, 0.5}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-9 {
			t.Errorf("normalized[%d] = %g, want %g", i, got[i], want[i])
		}
	}

	// A constant series maps every point to 0 instead of dividing by zero.
	flat := Normalize([]float64{7, 7, 7})
	for i, v := range flat {
		if v != 0 {
			t.Errorf("flat[%d] = %g, want 0", i, v)
		}
	}

	empty := Normalize(nil)
	if empty == nil || len(empty) != 0 {
		t.Errorf("empty = %v, want empty non-nil slice", empty)
	}
}

// TestBestLabel verifies the three label shapes.
func TestBestLabel(t *testing.T) {
	tests := []struct {
		kg   float64
		reps int
		want string
	}{
		{10, 8, "8 reps @ +10kg"},
		{7.5, 0, "- reps @ +7.5kg"},
		{0, 12, "12 reps (BW)"},
	}
	for _, tt := range tests {
		if got := bestLabel(tt.kg, tt.reps); got != tt.want {
			t.Errorf("bestLabel(%g, %d) = %q, want %q", tt.kg, tt.reps, got, tt.want)
		}
	}
}
