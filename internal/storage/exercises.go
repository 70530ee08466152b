package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/fabianluz/liftlog/internal/models"
)

// AnalyticsSeries holds index-aligned chart series for one exercise: a date
// label, the max weight lifted, and the total volume (weight x reps) per
// workout date.
type AnalyticsSeries struct {
	Labels     []string  `json:"labels"`
	WeightData []float64 `json:"weightData"`
	VolumeData []float64 `json:"volumeData"`
}

// ListExercises returns all exercises ordered alphabetically by title.
func (db *DB) ListExercises(ctx context.Context) ([]models.Exercise, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT id, title FROM exercises ORDER BY title ASC`)
	if err != nil {
		return nil, fmt.Errorf("querying exercises: %w", err)
	}
	defer rows.Close()

	var result []models.Exercise
	for rows.Next() {
		var e models.Exercise
		if err := rows.Scan(&e.ID, &e.Title); err != nil {
			return nil, fmt.Errorf("scanning exercise: %w", err)
		}
		result = append(result, e)
	}
	return result, rows.Err()
}

// ExerciseAnalytics computes the progress series for one exercise. Only sets
// logged as "normal" count; warmups and drop sets would skew both max weight
// and volume.
func (db *DB) ExerciseAnalytics(ctx context.Context, exerciseID int64) (*AnalyticsSeries, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT w.start_time, MAX(s.weight_kg), SUM(s.weight_kg * s.reps)
		 FROM sets s
		 JOIN workouts w ON s.workout_id = w.id
		 WHERE s.exercise_id = $1 AND s.set_type = 'normal'
		 GROUP BY w.start_time
		 ORDER BY w.start_time ASC`, exerciseID)
	if err != nil {
		return nil, fmt.Errorf("querying exercise analytics: %w", err)
	}
	defer rows.Close()

	series := &AnalyticsSeries{
		Labels:     []string{},
		WeightData: []float64{},
		VolumeData: []float64{},
	}
	for rows.Next() {
		var startTime time.Time
		var maxWeight, volume float64
		if err := rows.Scan(&startTime, &maxWeight, &volume); err != nil {
			return nil, fmt.Errorf("scanning analytics row: %w", err)
		}
		series.Labels = append(series.Labels, formatDateLabel(startTime))
		series.WeightData = append(series.WeightData, maxWeight)
		series.VolumeData = append(series.VolumeData, volume)
	}
	return series, rows.Err()
}

func formatDateLabel(t time.Time) string {
	return t.Format("1/2/2006")
}
