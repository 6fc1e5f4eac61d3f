package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/claude/repbar/internal/models"
)

// UpsertTemplate writes a template row, replacing any existing row with the
// same id.
func (d *DB) UpsertTemplate(ctx context.Context, t models.Template) error {
	exercises, err := json.Marshal(t.Exercises)
	if err != nil {
		return fmt.Errorf("encoding template exercises: %w", err)
	}
	_, err = d.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO templates (id, name, created_at, exercises) VALUES (?, ?, ?, ?)`,
		t.ID, t.Name, t.CreatedAt, string(exercises))
	if err != nil {
		return fmt.Errorf("inserting template: %w", err)
	}
	return nil
}

// DeleteTemplate removes a template by id.
func (d *DB) DeleteTemplate(ctx context.Context, id string) error {
	if _, err := d.db.ExecContext(ctx, `DELETE FROM templates WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting template: %w", err)
	}
	return nil
}

// GetTemplate retrieves one template by id. The second return is false when
// no such template exists.
func (d *DB) GetTemplate(ctx context.Context, id string) (models.Template, bool, error) {
	row := d.db.QueryRowContext(ctx,
		`SELECT id, name, created_at, exercises FROM templates WHERE id = ?`, id)
	t, err := scanTemplate(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Template{}, false, nil
	}
	if err != nil {
		return models.Template{}, false, fmt.Errorf("querying template: %w", err)
	}
	return t, true, nil
}

// ListTemplates retrieves all templates, most recently created first.
func (d *DB) ListTemplates(ctx context.Context) ([]models.Template, error) {
	rows, err := d.db.QueryContext(ctx,
		`SELECT id, name, created_at, exercises FROM templates ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("querying templates: %w", err)
	}
	defer rows.Close()

	var result []models.Template
	for rows.Next() {
		t, err := scanTemplate(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning template: %w", err)
		}
		result = append(result, t)
	}
	return result, rows.Err()
}

func scanTemplate(scan func(dest ...any) error) (models.Template, error) {
	var t models.Template
	var exercises string
	if err := scan(&t.ID, &t.Name, &t.CreatedAt, &exercises); err != nil {
		return models.Template{}, err
	}
	if err := json.Unmarshal([]byte(exercises), &t.Exercises); err != nil {
		t.Exercises = nil
	}
	return t, nil
}
