package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/claude/repbar/internal/models"
)

// UpsertSession writes a session row, replacing any existing row with the
// same id.
func (d *DB) UpsertSession(ctx context.Context, s models.Session) error {
	exercises, err := json.Marshal(s.Exercises)
	if err != nil {
		return fmt.Errorf("encoding session exercises: %w", err)
	}
	_, err = d.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO sessions (id, date, title, started_at, ended_at, elapsed_ms, exercises)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		s.ID, s.Date, s.Title, s.StartedAt, s.EndedAt, s.ElapsedMs, string(exercises))
	if err != nil {
		return fmt.Errorf("inserting session: %w", err)
	}
	return nil
}

// DeleteSession removes a session by id. Deleting a missing id is not an
// error.
func (d *DB) DeleteSession(ctx context.Context, id string) error {
	if _, err := d.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	return nil
}

// ListSessions retrieves all sessions newest first (date, then end time).
func (d *DB) ListSessions(ctx context.Context) ([]models.Session, error) {
	rows, err := d.db.QueryContext(ctx,
		`SELECT id, date, title, started_at, ended_at, elapsed_ms, exercises
		 FROM sessions
		 ORDER BY date DESC, ended_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("querying sessions: %w", err)
	}
	defer rows.Close()

	var result []models.Session
	for rows.Next() {
		var s models.Session
		var exercises string
		if err := rows.Scan(&s.ID, &s.Date, &s.Title, &s.StartedAt, &s.EndedAt, &s.ElapsedMs, &exercises); err != nil {
			return nil, fmt.Errorf("scanning session: %w", err)
		}
		// Rows written by an earlier schema may carry malformed exercise
		// JSON; they still list, just with no entries.
		if err := json.Unmarshal([]byte(exercises), &s.Exercises); err != nil {
			s.Exercises = nil
		}
		result = append(result, s)
	}
	return result, rows.Err()
}
