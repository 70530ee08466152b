package storage

import (
	"context"
	"fmt"
	"math"
	"time"
)

// Stats holds the dashboard summary cards.
type Stats struct {
	Workouts   int64    `json:"workouts"`
	AvgPerWeek string   `json:"avgPerWeek"`
	Heaviest   *float64 `json:"heaviest"`
}

// GetStats returns total workout count, the heaviest single set, and the
// average workouts per week over the logged date span.
func (db *DB) GetStats(ctx context.Context) (*Stats, error) {
	stats := &Stats{AvgPerWeek: "0.0"}

	err := db.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM workouts`).Scan(&stats.Workouts)
	if err != nil {
		return nil, fmt.Errorf("counting workouts: %w", err)
	}

	err = db.Pool.QueryRow(ctx, `SELECT MAX(weight_kg) FROM sets`).Scan(&stats.Heaviest)
	if err != nil {
		return nil, fmt.Errorf("querying heaviest set: %w", err)
	}

	var first, last *time.Time
	err = db.Pool.QueryRow(ctx,
		`SELECT MIN(start_time), MAX(start_time) FROM workouts`).Scan(&first, &last)
	if err != nil {
		return nil, fmt.Errorf("querying workout date range: %w", err)
	}

	if first != nil && last != nil {
		stats.AvgPerWeek = avgPerWeek(stats.Workouts, *first, *last)
	}
	return stats, nil
}

// avgPerWeek renders average workouts per week to one decimal place. The span
// is the calendar-day difference between the first and last workout, rounded
// up to whole days. Under one week of history the raw total is shown instead
// of a misleadingly inflated rate.
func avgPerWeek(total int64, first, last time.Time) string {
	days := math.Ceil(last.Sub(first).Hours() / 24)
	weeks := days / 7
	if weeks < 1 {
		return fmt.Sprintf("%.1f", float64(total))
	}
	return fmt.Sprintf("%.1f", float64(total)/weeks)
}
