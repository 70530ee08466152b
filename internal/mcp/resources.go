package mcp

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
)

var resStats = mcp.NewResource(
	"liftlog://stats",
	"Training Stats",
	mcp.WithResourceDescription("Total workouts, heaviest single set, and average workouts per week"),
	mcp.WithMIMEType("application/json"),
)

var resRecentWorkouts = mcp.NewResource(
	"liftlog://recent_workouts",
	"Recent Workouts",
	mcp.WithResourceDescription("The five most recent workouts"),
	mcp.WithMIMEType("application/json"),
)

func (h *handlers) statsResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	stats, err := h.ds.GetStats(ctx)
	if err != nil {
		return nil, err
	}
	return jsonResource(req.Params.URI, stats)
}

func (h *handlers) recentWorkoutsResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	workouts, err := h.ds.RecentWorkouts(ctx, 5)
	if err != nil {
		return nil, err
	}
	return jsonResource(req.Params.URI, workouts)
}

func jsonResource(uri string, v any) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
