package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/claude/repbar/internal/models"
)

// SaveDraft writes the current draft into its single slot.
func (d *DB) SaveDraft(ctx context.Context, draft *models.WorkoutDraft) error {
	payload, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("encoding draft: %w", err)
	}
	_, err = d.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO draft (slot, payload, updated_at) VALUES (1, ?, ?)`,
		string(payload), time.Now())
	if err != nil {
		return fmt.Errorf("saving draft: %w", err)
	}
	return nil
}

// LoadDraft retrieves the persisted draft. Returns nil without error when
// the slot is empty or holds an unreadable payload; the caller starts fresh
// either way.
func (d *DB) LoadDraft(ctx context.Context) (*models.WorkoutDraft, error) {
	var payload string
	err := d.db.QueryRowContext(ctx, `SELECT payload FROM draft WHERE slot = 1`).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading draft: %w", err)
	}
	var draft models.WorkoutDraft
	if err := json.Unmarshal([]byte(payload), &draft); err != nil {
		return nil, nil
	}
	return &draft, nil
}

// ClearDraft empties the draft slot.
func (d *DB) ClearDraft(ctx context.Context) error {
	if _, err := d.db.ExecContext(ctx, `DELETE FROM draft WHERE slot = 1`); err != nil {
		return fmt.Errorf("clearing draft: %w", err)
	}
	return nil
}
