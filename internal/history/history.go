// Package history answers point queries over the recorded session collection.
// All functions are pure: they take the materialized sessions and return
// derived values without touching storage.
package history

import (
	"sort"

	"github.com/claude/repbar/internal/models"
)

// LastPerformance pairs the most recent exercise entry for a movement with
// the date of the session it came from.
type LastPerformance struct {
	Date     string               `json:"date"`
	Exercise models.ExerciseEntry `json:"exercise"`
}

// SortNewestFirst orders sessions by date descending, breaking same-date ties
// by EndedAt descending. Returns a new slice; the input is not modified.
func SortNewestFirst(sessions []models.Session) []models.Session {
	out := make([]models.Session, len(sessions))
	copy(out, sessions)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date > out[j].Date
		}
		return out[i].EndedAt.After(out[j].EndedAt)
	})
	return out
}

// Last scans sessions newest-first and returns the first exercise entry whose
// movement matches. Sessions sharing a date are ordered by EndedAt, so the
// one that finished later wins. The second return is false when the movement
// has never been performed.
func Last(sessions []models.Session, movementID string) (LastPerformance, bool) {
	for _, s := range SortNewestFirst(sessions) {
		for _, ex := range s.Exercises {
			if ex.MovementKey() == movementID {
				return LastPerformance{Date: s.Date, Exercise: ex.Clone()}, true
			}
		}
	}
	return LastPerformance{}, false
}

// OnDate returns the sessions recorded on the given calendar day (YYYY-MM-DD).
func OnDate(sessions []models.Session, date string) []models.Session {
	var out []models.Session
	for _, s := range sessions {
		if s.Date == date {
			out = append(out, s)
		}
	}
	return out
}

// InRange returns the sessions whose date falls within [start, end], both
// inclusive, as YYYY-MM-DD keys. The lexical order of date keys matches
// chronological order.
func InRange(sessions []models.Session, start, end string) []models.Session {
	var out []models.Session
	for _, s := range sessions {
		if s.Date >= start && s.Date <= end {
			out = append(out, s)
		}
	}
	return out
}
