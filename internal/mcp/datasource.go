package mcp

import (
	"context"

	"github.com/claude/repbar/internal/models"
)

// DataSource abstracts the record stores for MCP tools. The analytics
// themselves are pure functions over what it returns.
type DataSource interface {
	ListSessions(ctx context.Context) ([]models.Session, error)
	ListTemplates(ctx context.Context) ([]models.Template, error)
	ListCustomMovements(ctx context.Context) ([]models.CustomMovement, error)
}
