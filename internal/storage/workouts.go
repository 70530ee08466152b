package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fabianluz/liftlog/internal/models"
	"github.com/jackc/pgx/v5"
)

// historyLimit caps /api/history result sets.
const historyLimit = 100

// HistoryFilter selects workouts for the history listing. Zero-valued fields
// are not applied; supplied filters combine with AND.
type HistoryFilter struct {
	Search string
	Start  *time.Time
	End    *time.Time
}

// RecentWorkouts returns the most recent workouts by start time.
func (db *DB) RecentWorkouts(ctx context.Context, limit int) ([]models.Workout, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT id, title, start_time, notes FROM workouts
		 ORDER BY start_time DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying recent workouts: %w", err)
	}
	defer rows.Close()

	return scanWorkouts(rows)
}

// QueryHistory returns workouts matching the filter, newest first, capped at
// 100 rows.
func (db *DB) QueryHistory(ctx context.Context, f HistoryFilter) ([]models.Workout, error) {
	query, args := buildHistoryQuery(f)

	rows, err := db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	return scanWorkouts(rows)
}

// buildHistoryQuery assembles the history SQL. Search matches title or notes
// case-insensitively as a substring.
func buildHistoryQuery(f HistoryFilter) (string, []any) {
	query := `SELECT id, title, start_time, notes FROM workouts`

	var conds []string
	var args []any

	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		conds = append(conds, fmt.Sprintf("(title ILIKE $%d OR notes ILIKE $%d)", len(args), len(args)))
	}
	if f.Start != nil {
		args = append(args, *f.Start)
		conds = append(conds, fmt.Sprintf("start_time >= $%d", len(args)))
	}
	if f.End != nil {
		args = append(args, *f.End)
		conds = append(conds, fmt.Sprintf("start_time <= $%d", len(args)))
	}

	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += fmt.Sprintf(" ORDER BY start_time DESC LIMIT %d", historyLimit)

	return query, args
}

func scanWorkouts(rows pgx.Rows) ([]models.Workout, error) {
	var result []models.Workout
	for rows.Next() {
		var w models.Workout
		if err := rows.Scan(&w.ID, &w.Title, &w.StartTime, &w.Notes); err != nil {
			return nil, fmt.Errorf("scanning workout: %w", err)
		}
		result = append(result, w)
	}
	return result, rows.Err()
}
