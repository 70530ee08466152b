package mcp

import (
	"context"

	"github.com/fabianluz/liftlog/internal/models"
	"github.com/fabianluz/liftlog/internal/storage"
)

// DataSource abstracts the data layer for MCP tools. Both *storage.DB (local)
// and HTTPClient (remote via REST API) satisfy this interface.
type DataSource interface {
	GetStats(ctx context.Context) (*storage.Stats, error)
	RecentWorkouts(ctx context.Context, limit int) ([]models.Workout, error)
	QueryHistory(ctx context.Context, f storage.HistoryFilter) ([]models.Workout, error)
	WorkoutSets(ctx context.Context, workoutID int64) ([]storage.SetDetail, error)
	ListExercises(ctx context.Context) ([]models.Exercise, error)
	ExerciseAnalytics(ctx context.Context, exerciseID int64) (*storage.AnalyticsSeries, error)
}

// Compile-time check: *storage.DB satisfies DataSource.
var _ DataSource = (*storage.DB)(nil)
