package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fabianluz/liftlog/internal/models"
	"github.com/jackc/pgx/v5"
)

// ImportTx is one file's import transaction. Every lookup and insert for the
// file goes through it, so rows see workouts and exercises created earlier in
// the same file, and any failure rolls the whole file back.
type ImportTx struct {
	tx pgx.Tx
}

// BeginImport starts an import transaction.
func (db *DB) BeginImport(ctx context.Context) (*ImportTx, error) {
	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	return &ImportTx{tx: tx}, nil
}

// Commit commits the import.
func (t *ImportTx) Commit(ctx context.Context) error {
	return t.tx.Commit(ctx)
}

// Rollback aborts the import. Safe to defer after Commit; pgx reports
// ErrTxClosed which callers ignore.
func (t *ImportTx) Rollback(ctx context.Context) error {
	return t.tx.Rollback(ctx)
}

// FindWorkout looks up a workout by exact start time.
func (t *ImportTx) FindWorkout(ctx context.Context, startTime time.Time) (int64, bool, error) {
	var id int64
	err := t.tx.QueryRow(ctx,
		`SELECT id FROM workouts WHERE start_time = $1`, startTime).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("querying workout by start time: %w", err)
	}
	return id, true, nil
}

// CreateWorkout inserts a workout and returns its generated id.
func (t *ImportTx) CreateWorkout(ctx context.Context, title string, startTime time.Time, notes string) (int64, error) {
	var id int64
	err := t.tx.QueryRow(ctx,
		`INSERT INTO workouts (title, start_time, notes) VALUES ($1, $2, $3) RETURNING id`,
		title, startTime, notes).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("inserting workout: %w", err)
	}
	return id, nil
}

// FindExercise looks up an exercise by exact, case-sensitive title.
func (t *ImportTx) FindExercise(ctx context.Context, title string) (int64, bool, error) {
	var id int64
	err := t.tx.QueryRow(ctx,
		`SELECT id FROM exercises WHERE title = $1`, title).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("querying exercise by title: %w", err)
	}
	return id, true, nil
}

// CreateExercise inserts an exercise and returns its generated id.
func (t *ImportTx) CreateExercise(ctx context.Context, title string) (int64, error) {
	var id int64
	err := t.tx.QueryRow(ctx,
		`INSERT INTO exercises (title) VALUES ($1) RETURNING id`, title).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("inserting exercise: %w", err)
	}
	return id, nil
}

// CreateSet inserts one set row referencing its resolved workout and exercise.
func (t *ImportTx) CreateSet(ctx context.Context, set models.Set) error {
	_, err := t.tx.Exec(ctx,
		`INSERT INTO sets (workout_id, exercise_id, set_order, weight_kg, reps, rpe, set_type, notes)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		set.WorkoutID, set.ExerciseID, set.SetOrder, set.WeightKg, set.Reps,
		set.RPE, set.SetType, set.Notes)
	if err != nil {
		return fmt.Errorf("inserting set: %w", err)
	}
	return nil
}
