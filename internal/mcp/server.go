package mcp

import (
	"log/slog"

	"github.com/mark3labs/mcp-go/server"
)

// New creates an MCP server with all tools and resources registered.
func New(ds DataSource, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("LiftLog", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("LiftLog workout tracking server. Query training stats, workout history, per-workout sets, and per-exercise progress (max weight and volume over time)."),
	)

	h := &handlers{ds: ds, log: log}

	// Tools
	s.AddTools(
		server.ServerTool{Tool: toolGetStats, Handler: h.getStats},
		server.ServerTool{Tool: toolGetRecentWorkouts, Handler: h.getRecentWorkouts},
		server.ServerTool{Tool: toolSearchHistory, Handler: h.searchHistory},
		server.ServerTool{Tool: toolGetWorkoutSets, Handler: h.getWorkoutSets},
		server.ServerTool{Tool: toolListExercises, Handler: h.listExercises},
		server.ServerTool{Tool: toolGetExerciseProgress, Handler: h.getExerciseProgress},
	)

	// Resources
	s.AddResources(
		server.ServerResource{Resource: resStats, Handler: h.statsResource},
		server.ServerResource{Resource: resRecentWorkouts, Handler: h.recentWorkoutsResource},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	ds  DataSource
	log *slog.Logger
}
