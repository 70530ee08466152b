package importer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fabianluz/liftlog/internal/models"
)

// fakeStore is an in-memory Store for exercising the reconciler without a
// database. failOnSet makes the Nth CreateSet call (1-based) return an error.
type fakeStore struct {
	workouts  map[time.Time]int64
	titles    map[int64]string
	exercises map[string]int64
	sets      []models.Set
	nextID    int64
	failOnSet int
	setCalls  int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		workouts:  make(map[time.Time]int64),
		titles:    make(map[int64]string),
		exercises: make(map[string]int64),
	}
}

func (f *fakeStore) FindWorkout(_ context.Context, startTime time.Time) (int64, bool, error) {
	id, ok := f.workouts[startTime]
	return id, ok, nil
}

func (f *fakeStore) CreateWorkout(_ context.Context, title string, startTime time.Time, _ string) (int64, error) {
	f.nextID++
	f.workouts[startTime] = f.nextID
	f.titles[f.nextID] = title
	return f.nextID, nil
}

func (f *fakeStore) FindExercise(_ context.Context, title string) (int64, bool, error) {
	id, ok := f.exercises[title]
	return id, ok, nil
}

func (f *fakeStore) CreateExercise(_ context.Context, title string) (int64, error) {
	f.nextID++
	f.exercises[title] = f.nextID
	return f.nextID, nil
}

func (f *fakeStore) CreateSet(_ context.Context, set models.Set) error {
	f.setCalls++
	if f.failOnSet > 0 && f.setCalls == f.failOnSet {
		return errors.New("constraint violation")
	}
	f.sets = append(f.sets, set)
	return nil
}

func row(start time.Time, workoutTitle, exercise string) models.ImportRow {
	return models.ImportRow{
		StartTime:     start,
		WorkoutTitle:  workoutTitle,
		ExerciseTitle: exercise,
		WeightKg:      100,
		Reps:          5,
		SetType:       "normal",
	}
}

// TestRunReconcilesSharedKeys verifies that rows sharing a start time reuse
// one workout and rows sharing an exercise title reuse one exercise, while
// every row still produces its own set.
func TestRunReconcilesSharedKeys(t *testing.T) {
	start := time.Date(2026, 3, 1, 7, 30, 0, 0, time.UTC)
	store := newFakeStore()

	rows := []models.ImportRow{
		row(start, "Leg Day", "Squat"),
		row(start, "Leg Day", "Squat"),
		row(start, "Leg Day", "Leg Press"),
	}

	stats, err := Run(context.Background(), store, rows)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if stats.SetsProcessed != 3 {
		t.Errorf("SetsProcessed = %d, want 3", stats.SetsProcessed)
	}
	if stats.WorkoutsCreated != 1 {
		t.Errorf("WorkoutsCreated = %d, want 1", stats.WorkoutsCreated)
	}
	if stats.ExercisesCreated != 2 {
		t.Errorf("ExercisesCreated = %d, want 2", stats.ExercisesCreated)
	}
	if len(store.sets) != 3 {
		t.Fatalf("got %d sets, want 3", len(store.sets))
	}
	if store.sets[0].WorkoutID != store.sets[2].WorkoutID {
		t.Error("sets on the same start time should share a workout id")
	}
	if store.sets[0].ExerciseID != store.sets[1].ExerciseID {
		t.Error("sets with the same exercise title should share an exercise id")
	}
	if store.sets[1].ExerciseID == store.sets[2].ExerciseID {
		t.Error("different exercise titles should get distinct ids")
	}
}

// TestRunFirstRowWins verifies that the first row for a start time fixes the
// stored workout title; later rows with a different title only attach sets.
func TestRunFirstRowWins(t *testing.T) {
	start := time.Date(2026, 3, 1, 7, 30, 0, 0, time.UTC)
	store := newFakeStore()

	rows := []models.ImportRow{
		row(start, "Morning Session", "Squat"),
		row(start, "Renamed Later", "Bench Press"),
	}

	if _, err := Run(context.Background(), store, rows); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	id := store.workouts[start]
	if got := store.titles[id]; got != "Morning Session" {
		t.Errorf("workout title = %q, want first row's %q", got, "Morning Session")
	}
}

// TestRunAbortsOnError verifies that a store error stops processing at the
// failing row so the caller can roll back the transaction.
func TestRunAbortsOnError(t *testing.T) {
	store := newFakeStore()
	store.failOnSet = 2

	rows := []models.ImportRow{
		row(time.Date(2026, 3, 1, 7, 0, 0, 0, time.UTC), "A", "Squat"),
		row(time.Date(2026, 3, 2, 7, 0, 0, 0, time.UTC), "B", "Bench Press"),
		row(time.Date(2026, 3, 3, 7, 0, 0, 0, time.UTC), "C", "Deadlift"),
	}

	stats, err := Run(context.Background(), store, rows)
	if err == nil {
		t.Fatal("expected error from failing set insert")
	}
	if stats.SetsProcessed != 1 {
		t.Errorf("SetsProcessed = %d, want 1 (processing must stop at the failure)", stats.SetsProcessed)
	}
	if store.setCalls != 2 {
		t.Errorf("CreateSet called %d times, want 2", store.setCalls)
	}
}

// TestRunEmpty verifies an empty file is a successful no-op import.
func TestRunEmpty(t *testing.T) {
	stats, err := Run(context.Background(), newFakeStore(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.SetsProcessed != 0 || stats.WorkoutsCreated != 0 || stats.ExercisesCreated != 0 {
		t.Errorf("stats = %+v, want all zero", *stats)
	}
}
