package storage

import (
	"context"
	"fmt"

	"github.com/fabianluz/liftlog/internal/models"
)

// SetDetail is a set joined with its exercise title for the workout detail
// view.
type SetDetail struct {
	models.Set
	ExerciseName string `json:"exercise_name"`
}

// WorkoutSets returns all sets for one workout with their exercise names,
// in insertion order.
func (db *DB) WorkoutSets(ctx context.Context, workoutID int64) ([]SetDetail, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT s.id, s.workout_id, s.exercise_id, s.set_order, s.weight_kg,
		        s.reps, s.rpe, s.set_type, s.notes, e.title
		 FROM sets s
		 JOIN exercises e ON s.exercise_id = e.id
		 WHERE s.workout_id = $1
		 ORDER BY s.id ASC`, workoutID)
	if err != nil {
		return nil, fmt.Errorf("querying workout sets: %w", err)
	}
	defer rows.Close()

	var result []SetDetail
	for rows.Next() {
		var d SetDetail
		if err := rows.Scan(&d.ID, &d.WorkoutID, &d.ExerciseID, &d.SetOrder,
			&d.WeightKg, &d.Reps, &d.RPE, &d.SetType, &d.Notes, &d.ExerciseName); err != nil {
			return nil, fmt.Errorf("scanning workout set: %w", err)
		}
		result = append(result, d)
	}
	return result, rows.Err()
}
