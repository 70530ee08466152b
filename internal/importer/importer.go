package importer

import (
	"context"
	"fmt"
	"time"

	"github.com/fabianluz/liftlog/internal/models"
)

// Store is the transactional surface the reconciler writes through. The
// caller owns the transaction: every call for one file must go through the
// same Store so later rows observe workouts and exercises created by earlier
// rows, and a failure discards the whole file.
type Store interface {
	FindWorkout(ctx context.Context, startTime time.Time) (int64, bool, error)
	CreateWorkout(ctx context.Context, title string, startTime time.Time, notes string) (int64, error)
	FindExercise(ctx context.Context, title string) (int64, bool, error)
	CreateExercise(ctx context.Context, title string) (int64, error)
	CreateSet(ctx context.Context, set models.Set) error
}

// Stats tracks what one import run did.
type Stats struct {
	SetsProcessed    int
	WorkoutsCreated  int
	ExercisesCreated int
}

// Run processes rows strictly in file order. Per row it resolves or creates
// the workout (keyed by start time) and the exercise (keyed by exact title),
// then inserts one set referencing both. The first row seen for a start time
// fixes the workout's title and notes; later rows sharing it only attach sets.
// The first error aborts the run.
func Run(ctx context.Context, store Store, rows []models.ImportRow) (*Stats, error) {
	stats := &Stats{}

	for i, row := range rows {
		workoutID, found, err := store.FindWorkout(ctx, row.StartTime)
		if err != nil {
			return stats, fmt.Errorf("row %d: looking up workout: %w", i+1, err)
		}
		if !found {
			workoutID, err = store.CreateWorkout(ctx, row.WorkoutTitle, row.StartTime, row.WorkoutNotes)
			if err != nil {
				return stats, fmt.Errorf("row %d: creating workout: %w", i+1, err)
			}
			stats.WorkoutsCreated++
		}

		exerciseID, found, err := store.FindExercise(ctx, row.ExerciseTitle)
		if err != nil {
			return stats, fmt.Errorf("row %d: looking up exercise: %w", i+1, err)
		}
		if !found {
			exerciseID, err = store.CreateExercise(ctx, row.ExerciseTitle)
			if err != nil {
				return stats, fmt.Errorf("row %d: creating exercise: %w", i+1, err)
			}
			stats.ExercisesCreated++
		}

		set := models.Set{
			WorkoutID:  workoutID,
			ExerciseID: exerciseID,
			SetOrder:   row.SetOrder,
			WeightKg:   row.WeightKg,
			Reps:       row.Reps,
			RPE:        row.RPE,
			SetType:    row.SetType,
			Notes:      row.SetNotes,
		}
		if err := store.CreateSet(ctx, set); err != nil {
			return stats, fmt.Errorf("row %d: inserting set: %w", i+1, err)
		}
		stats.SetsProcessed++
	}

	return stats, nil
}
