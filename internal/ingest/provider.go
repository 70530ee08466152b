package ingest

import "fmt"

// Result holds the outcome of a CSV import.
type Result struct {
	SetsProcessed    int    `json:"sets_processed"`
	WorkoutsCreated  int    `json:"workouts_created"`
	ExercisesCreated int    `json:"exercises_created"`
	Message          string `json:"message,omitempty"`
}

// SuccessMessage renders the user-facing import summary.
func SuccessMessage(sets int) string {
	return fmt.Sprintf("Import Success: %d sets processed.", sets)
}
