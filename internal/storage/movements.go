package storage

import (
	"context"
	"fmt"

	"github.com/claude/repbar/internal/models"
)

// UpsertCustomMovement writes a user-defined catalog entry.
func (d *DB) UpsertCustomMovement(ctx context.Context, m models.CustomMovement) error {
	_, err := d.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO custom_movements (id, name, category, image, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		m.ID, m.Name, string(m.Category), m.Image, m.CreatedAt)
	if err != nil {
		return fmt.Errorf("inserting custom movement: %w", err)
	}
	return nil
}

// DeleteCustomMovement removes a user-defined catalog entry by id. Sessions
// referencing it keep their snapshot names.
func (d *DB) DeleteCustomMovement(ctx context.Context, id string) error {
	if _, err := d.db.ExecContext(ctx, `DELETE FROM custom_movements WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting custom movement: %w", err)
	}
	return nil
}

// ListCustomMovements retrieves all user-defined movements, oldest first, so
// the unioned catalog keeps a stable order.
func (d *DB) ListCustomMovements(ctx context.Context) ([]models.CustomMovement, error) {
	rows, err := d.db.QueryContext(ctx,
		`SELECT id, name, category, image, created_at FROM custom_movements ORDER BY created_at ASC`)
	if err != nil {
		return nil, fmt.Errorf("querying custom movements: %w", err)
	}
	defer rows.Close()

	var result []models.CustomMovement
	for rows.Next() {
		var m models.CustomMovement
		var category string
		if err := rows.Scan(&m.ID, &m.Name, &category, &m.Image, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning custom movement: %w", err)
		}
		m.Category = models.MovementCategory(category)
		result = append(result, m)
	}
	return result, rows.Err()
}
