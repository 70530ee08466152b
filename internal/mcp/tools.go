package mcp

import (
	"context"
	"time"

	"github.com/fabianluz/liftlog/internal/storage"
	"github.com/mark3labs/mcp-go/mcp"
)

// parseFlexTime accepts RFC3339 or bare YYYY-MM-DD values. dateOnly reports
// which form matched so a bare end date can cover its whole day.
func parseFlexTime(s string) (t time.Time, dateOnly bool, err error) {
	t, err = time.Parse(time.RFC3339, s)
	if err == nil {
		return t, false, nil
	}
	t, err = time.Parse("2006-01-02", s)
	if err == nil {
		return t, true, nil
	}
	return time.Time{}, false, err
}

// --- Tool definitions ---

var toolGetStats = mcp.NewTool("get_stats",
	mcp.WithDescription("Get overall training statistics: total workout count, heaviest single set (kg), and average workouts per week."),
)

var toolGetRecentWorkouts = mcp.NewTool("get_recent_workouts",
	mcp.WithDescription("List the most recent workouts, newest first."),
	mcp.WithNumber("limit", mcp.Description("Number of workouts to return. Defaults to 5, max 50.")),
)

var toolSearchHistory = mcp.NewTool("search_history",
	mcp.WithDescription("Search workout history. Filters combine with AND; results are newest first, capped at 100."),
	mcp.WithString("search", mcp.Description("Case-insensitive substring matched against workout title or notes (e.g. 'leg')")),
	mcp.WithString("start", mcp.Description("Earliest workout start time (ISO 8601 or YYYY-MM-DD)")),
	mcp.WithString("end", mcp.Description("Latest workout start time (ISO 8601 or YYYY-MM-DD)")),
)

var toolGetWorkoutSets = mcp.NewTool("get_workout_sets",
	mcp.WithDescription("Get all sets for one workout with exercise names, weights, reps, RPE, and set type, in logged order."),
	mcp.WithNumber("workout_id", mcp.Required(), mcp.Description("Workout ID from search_history or get_recent_workouts")),
)

var toolListExercises = mcp.NewTool("list_exercises",
	mcp.WithDescription("List all known exercises alphabetically."),
)

var toolGetExerciseProgress = mcp.NewTool("get_exercise_progress",
	mcp.WithDescription("Per-exercise progress over time: for each workout date, the max weight lifted and total volume (weight x reps) across working sets. Warmup sets are excluded."),
	mcp.WithNumber("exercise_id", mcp.Required(), mcp.Description("Exercise ID from list_exercises")),
)

// --- Tool handlers ---

func (h *handlers) getStats(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	stats, err := h.ds.GetStats(ctx)
	if err != nil {
		h.log.Error("mcp get_stats", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(stats)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getRecentWorkouts(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit := req.GetInt("limit", 5)
	if limit < 1 || limit > 50 {
		limit = 5
	}

	workouts, err := h.ds.RecentWorkouts(ctx, limit)
	if err != nil {
		h.log.Error("mcp get_recent_workouts", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(workouts)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) searchHistory(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	filter := storage.HistoryFilter{Search: req.GetString("search", "")}

	if v := req.GetString("start", ""); v != "" {
		t, _, err := parseFlexTime(v)
		if err != nil {
			return mcp.NewToolResultError("invalid start date: " + err.Error()), nil
		}
		filter.Start = &t
	}
	if v := req.GetString("end", ""); v != "" {
		t, dateOnly, err := parseFlexTime(v)
		if err != nil {
			return mcp.NewToolResultError("invalid end date: " + err.Error()), nil
		}
		if dateOnly {
			// Promote here so the bound survives the RFC3339 round-trip
			// through the remote HTTP data source unchanged.
			t = t.Add(24*time.Hour - time.Second)
		}
		filter.End = &t
	}

	workouts, err := h.ds.QueryHistory(ctx, filter)
	if err != nil {
		h.log.Error("mcp search_history", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(workouts)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getWorkoutSets(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireInt("workout_id")
	if err != nil {
		return mcp.NewToolResultError("workout_id parameter is required"), nil
	}

	sets, err := h.ds.WorkoutSets(ctx, int64(id))
	if err != nil {
		h.log.Error("mcp get_workout_sets", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(sets)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) listExercises(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	exercises, err := h.ds.ListExercises(ctx)
	if err != nil {
		h.log.Error("mcp list_exercises", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(exercises)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getExerciseProgress(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireInt("exercise_id")
	if err != nil {
		return mcp.NewToolResultError("exercise_id parameter is required"), nil
	}

	series, err := h.ds.ExerciseAnalytics(ctx, int64(id))
	if err != nil {
		h.log.Error("mcp get_exercise_progress", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(series)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}
