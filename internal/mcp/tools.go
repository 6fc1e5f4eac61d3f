package mcp

import (
	"context"
	"time"

	"github.com/claude/repbar/internal/history"
	"github.com/claude/repbar/internal/models"
	"github.com/claude/repbar/internal/stats"
	"github.com/mark3labs/mcp-go/mcp"
)

// defaultDateRange returns start/end date keys defaulting to the last 30
// calendar days.
func defaultDateRange(startStr, endStr string, now time.Time) (string, string, error) {
	end := now
	if endStr != "" {
		t, err := time.ParseInLocation("2006-01-02", endStr, time.Local)
		if err != nil {
			return "", "", err
		}
		end = t
	}
	start := end.AddDate(0, 0, -29)
	if startStr != "" {
		t, err := time.ParseInLocation("2006-01-02", startStr, time.Local)
		if err != nil {
			return "", "", err
		}
		start = t
	}
	return models.DateOf(start), models.DateOf(end), nil
}

// --- Tool definitions ---

var toolListSessions = mcp.NewTool("list_sessions",
	mcp.WithDescription("List recorded workout sessions newest first, each with its exercises and logged sets (reps, added kg)."),
	mcp.WithString("start", mcp.Description("Start date (YYYY-MM-DD). Defaults to 30 days before end.")),
	mcp.WithString("end", mcp.Description("End date (YYYY-MM-DD). Defaults to today.")),
)

var toolGetPeriodSummary = mcp.NewTool("get_period_summary",
	mcp.WithDescription("Workout count, total minutes, and per-workout averages for a date range. Defaults to the last 30 days."),
	mcp.WithString("start", mcp.Description("Start date (YYYY-MM-DD). Defaults to 30 days before end.")),
	mcp.WithString("end", mcp.Description("End date (YYYY-MM-DD). Defaults to today.")),
)

var toolGetStreaks = mcp.NewTool("get_streaks",
	mcp.WithDescription("Current streak (consecutive training days ending today) and best streak ever."),
)

var toolGetTopExercises = mcp.NewTool("get_top_exercises",
	mcp.WithDescription("Most frequently performed exercises across all sessions, by entry count."),
)

var toolGetPersonalBests = mcp.NewTool("get_personal_bests",
	mcp.WithDescription("Per-movement all-time best added weight and best reps (maximized independently), with the date last performed."),
)

var toolGetVolumeLeaderboard = mcp.NewTool("get_volume_leaderboard",
	mcp.WithDescription("Total reps per movement over the trailing 30 days, descending."),
)

var toolGetLastPerformance = mcp.NewTool("get_last_performance",
	mcp.WithDescription("The most recent session's entry for a movement: its sets, notes, and date."),
	mcp.WithString("movement", mcp.Required(), mcp.Description("Movement id (e.g. pullup, dip) or exercise name for legacy entries")),
)

var toolGetExerciseSeries = mcp.NewTool("get_exercise_series",
	mcp.WithDescription("Per-session progress for a movement: best added kg, best reps, and score (kg x reps) over the most recent 14 qualifying sessions, oldest first."),
	mcp.WithString("movement", mcp.Required(), mcp.Description("Movement id or exercise name")),
)

var toolListMovements = mcp.NewTool("list_movements",
	mcp.WithDescription("The movement catalog: built-in movements plus user-defined custom movements."),
)

var toolListTemplates = mcp.NewTool("list_templates",
	mcp.WithDescription("Saved workout templates (exercise shapes without logged sets), newest first."),
)

// --- Tool handlers ---

func (h *handlers) listSessions(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start, end, err := defaultDateRange(req.GetString("start", ""), req.GetString("end", ""), time.Now())
	if err != nil {
		return mcp.NewToolResultError("invalid date format: " + err.Error()), nil
	}
	sessions, err := h.ds.ListSessions(ctx)
	if err != nil {
		h.log.Error("mcp list_sessions", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	return jsonResult(history.InRange(sessions, start, end))
}

func (h *handlers) getPeriodSummary(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start, end, err := defaultDateRange(req.GetString("start", ""), req.GetString("end", ""), time.Now())
	if err != nil {
		return mcp.NewToolResultError("invalid date format: " + err.Error()), nil
	}
	sessions, err := h.ds.ListSessions(ctx)
	if err != nil {
		h.log.Error("mcp get_period_summary", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	return jsonResult(stats.Summarize(sessions, start, end))
}

func (h *handlers) getStreaks(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessions, err := h.ds.ListSessions(ctx)
	if err != nil {
		h.log.Error("mcp get_streaks", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	return jsonResult(stats.ComputeStreaks(sessions, time.Now()))
}

func (h *handlers) getTopExercises(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessions, err := h.ds.ListSessions(ctx)
	if err != nil {
		h.log.Error("mcp get_top_exercises", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	return jsonResult(stats.TopExercises(sessions, stats.TopExercisesLimit))
}

func (h *handlers) getPersonalBests(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessions, err := h.ds.ListSessions(ctx)
	if err != nil {
		h.log.Error("mcp get_personal_bests", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	return jsonResult(stats.PersonalBests(sessions, stats.PersonalBestsLimit))
}

func (h *handlers) getVolumeLeaderboard(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessions, err := h.ds.ListSessions(ctx)
	if err != nil {
		h.log.Error("mcp get_volume_leaderboard", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	return jsonResult(stats.VolumeLeaderboard(sessions, time.Now(), stats.VolumeLimit))
}

func (h *handlers) getLastPerformance(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	movement, err := req.RequireString("movement")
	if err != nil {
		return mcp.NewToolResultError("movement parameter is required"), nil
	}
	sessions, err := h.ds.ListSessions(ctx)
	if err != nil {
		h.log.Error("mcp get_last_performance", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	last, ok := history.Last(sessions, movement)
	if !ok {
		return mcp.NewToolResultText("no recorded performance for " + movement), nil
	}
	return jsonResult(last)
}

func (h *handlers) getExerciseSeries(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	movement, err := req.RequireString("movement")
	if err != nil {
		return mcp.NewToolResultError("movement parameter is required"), nil
	}
	sessions, err := h.ds.ListSessions(ctx)
	if err != nil {
		h.log.Error("mcp get_exercise_series", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	return jsonResult(map[string]any{
		"points":  stats.Series(sessions, movement, stats.SeriesLimit),
		"summary": stats.SummarizeMovement(sessions, movement),
	})
}

func (h *handlers) listMovements(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	customs, err := h.ds.ListCustomMovements(ctx)
	if err != nil {
		h.log.Error("mcp list_movements", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	return jsonResult(models.Catalog(customs))
}

func (h *handlers) listTemplates(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	templates, err := h.ds.ListTemplates(ctx)
	if err != nil {
		h.log.Error("mcp list_templates", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	return jsonResult(templates)
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	result, err := mcp.NewToolResultJSON(v)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}
