package models

import "time"

// Workout is one training session. Its start time is the natural key: imports
// never create two workouts with the same start_time.
type Workout struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	StartTime time.Time `json:"start_time"`
	Notes     string    `json:"notes"`
}

// Exercise is a named lift, keyed by its exact title.
type Exercise struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

// Set is one performed set of an exercise within a workout.
type Set struct {
	ID         int64    `json:"id"`
	WorkoutID  int64    `json:"workout_id"`
	ExerciseID int64    `json:"exercise_id"`
	SetOrder   int      `json:"set_order"`
	WeightKg   float64  `json:"weight_kg"`
	Reps       int      `json:"reps"`
	RPE        *float64 `json:"rpe"`
	SetType    string   `json:"set_type"`
	Notes      string   `json:"notes"`
}

// ImportRow is one parsed line of a CSV export, ready for reconciliation.
// Numeric fields are already coerced; StartTime parsed strictly (a bad
// timestamp fails the whole file).
type ImportRow struct {
	StartTime     time.Time
	WorkoutTitle  string
	WorkoutNotes  string
	ExerciseTitle string
	WeightKg      float64
	Reps          int
	RPE           *float64
	SetOrder      int
	SetType       string
	SetNotes      string
}
