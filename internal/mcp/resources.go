package mcp

import (
	"context"
	"encoding/json"
	"time"

	"github.com/claude/repbar/internal/stats"
	"github.com/mark3labs/mcp-go/mcp"
)

func (h *handlers) statsOverview(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	sessions, err := h.ds.ListSessions(ctx)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(stats.BuildOverview(sessions, time.Now()))
	if err != nil {
		return nil, err
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
