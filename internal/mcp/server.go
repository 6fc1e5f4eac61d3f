// Package mcp exposes the workout log to MCP clients: session history,
// streaks, personal bests, and per-movement progress as tools, plus a stats
// overview resource.
package mcp

import (
	"log/slog"

	"github.com/claude/repbar/internal/storage"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// New creates an MCP server with all tools and resources registered.
func New(ds DataSource, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("repbar", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("repbar workout log. Query training sessions, streaks, personal bests, rep volume, and per-movement progress series."),
	)

	h := &handlers{ds: ds, log: log}

	// Tools
	s.AddTools(
		server.ServerTool{Tool: toolListSessions, Handler: h.listSessions},
		server.ServerTool{Tool: toolGetPeriodSummary, Handler: h.getPeriodSummary},
		server.ServerTool{Tool: toolGetStreaks, Handler: h.getStreaks},
		server.ServerTool{Tool: toolGetTopExercises, Handler: h.getTopExercises},
		server.ServerTool{Tool: toolGetPersonalBests, Handler: h.getPersonalBests},
		server.ServerTool{Tool: toolGetVolumeLeaderboard, Handler: h.getVolumeLeaderboard},
		server.ServerTool{Tool: toolGetLastPerformance, Handler: h.getLastPerformance},
		server.ServerTool{Tool: toolGetExerciseSeries, Handler: h.getExerciseSeries},
		server.ServerTool{Tool: toolListMovements, Handler: h.listMovements},
		server.ServerTool{Tool: toolListTemplates, Handler: h.listTemplates},
	)

	// Resources
	s.AddResources(
		server.ServerResource{Resource: resStatsOverview, Handler: h.statsOverview},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	ds  DataSource
	log *slog.Logger
}

// --- Resource definitions ---

var resStatsOverview = mcp.NewResource(
	"repbar://stats_overview",
	"Stats Overview",
	mcp.WithResourceDescription("Weekly and 30-day training summaries, streaks, top exercises, personal bests, and rep volume"),
	mcp.WithMIMEType("application/json"),
)

// Compile-time check: *storage.DB satisfies DataSource.
var _ DataSource = (*storage.DB)(nil)
