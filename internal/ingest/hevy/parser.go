package hevy

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/fabianluz/liftlog/internal/models"
)

// startTimeLayouts are the timestamp formats accepted in the start_time
// column. Hevy exports use the "02 Jan 2006, 15:04" shape; ISO variants are
// accepted for hand-edited files.
var startTimeLayouts = []string{
	"2 Jan 2006, 15:04",
	"02 Jan 2006, 15:04",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// Parse reads a workout CSV export and returns one ImportRow per data line.
// Columns are resolved by header name, so column order does not matter.
// Numeric fields are coerced leniently (bad weight/reps/set_index become 0,
// bad or empty rpe becomes nil), but an unparseable start_time is fatal:
// the whole file is rejected.
func Parse(r io.Reader) ([]models.ImportRow, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("empty file")
	}
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		cols[name] = i
	}
	if _, ok := cols["start_time"]; !ok {
		return nil, fmt.Errorf("missing start_time column")
	}
	if _, ok := cols["exercise_title"]; !ok {
		return nil, fmt.Errorf("missing exercise_title column")
	}

	var rows []models.ImportRow
	line := 1
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading line %d: %w", line+1, err)
		}
		line++

		field := func(name string) string {
			idx, ok := cols[name]
			if !ok || idx >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[idx])
		}

		startTime, err := parseStartTime(field("start_time"))
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		rows = append(rows, models.ImportRow{
			StartTime:     startTime,
			WorkoutTitle:  field("title"),
			WorkoutNotes:  field("description"),
			ExerciseTitle: field("exercise_title"),
			WeightKg:      floatOrZero(field("weight_kg")),
			Reps:          intOrZero(field("reps")),
			RPE:           optionalFloat(field("rpe")),
			SetOrder:      intOrZero(field("set_index")),
			SetType:       orDefault(field("set_type"), "normal"),
			SetNotes:      field("exercise_notes"),
		})
	}

	return rows, nil
}

func parseStartTime(s string) (time.Time, error) {
	for _, layout := range startTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse start_time %q", s)
}

func floatOrZero(s string) float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}

func intOrZero(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

// optionalFloat returns nil for empty or malformed values; RPE is genuinely
// absent on most logged sets.
func optionalFloat(s string) *float64 {
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &f
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
