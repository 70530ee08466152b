package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/fabianluz/liftlog/internal/storage"
	"github.com/go-chi/chi/v5"
)

const defaultRecentLimit = 5

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.db.GetStats(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleRecent(w http.ResponseWriter, r *http.Request) {
	limit := defaultRecentLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 50 {
			limit = n
		}
	}

	workouts, err := s.db.RecentWorkouts(r.Context(), limit)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, workouts)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	filter, err := historyFilterFromQuery(r.URL.Query())
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	workouts, err := s.db.QueryHistory(r.Context(), filter)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, workouts)
}

func (s *Server) handleWorkoutDetail(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid workout ID"})
		return
	}

	sets, err := s.db.WorkoutSets(r.Context(), id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, sets)
}

func (s *Server) handleExercises(w http.ResponseWriter, r *http.Request) {
	exercises, err := s.db.ListExercises(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, exercises)
}

func (s *Server) handleAnalytics(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "exerciseId"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid exercise ID"})
		return
	}

	series, err := s.db.ExerciseAnalytics(r.Context(), id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, series)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// historyFilterFromQuery builds the history filter from request parameters.
// A bare date as the end bound covers its whole day: it is promoted to the
// last second of that day so the inclusive comparison stops short of the
// next midnight.
func historyFilterFromQuery(q url.Values) (storage.HistoryFilter, error) {
	filter := storage.HistoryFilter{Search: q.Get("search")}

	if v := q.Get("startDate"); v != "" {
		t, _, err := parseDateParam(v)
		if err != nil {
			return storage.HistoryFilter{}, fmt.Errorf("invalid startDate: %s", v)
		}
		filter.Start = &t
	}
	if v := q.Get("endDate"); v != "" {
		t, dateOnly, err := parseDateParam(v)
		if err != nil {
			return storage.HistoryFilter{}, fmt.Errorf("invalid endDate: %s", v)
		}
		if dateOnly {
			t = t.Add(24*time.Hour - time.Second)
		}
		filter.End = &t
	}

	return filter, nil
}

// parseDateParam accepts RFC3339 or bare YYYY-MM-DD values. dateOnly reports
// which form matched so end bounds can cover the whole named day.
func parseDateParam(s string) (t time.Time, dateOnly bool, err error) {
	t, err = time.Parse(time.RFC3339, s)
	if err == nil {
		return t, false, nil
	}
	t, err = time.Parse("2006-01-02", s)
	if err == nil {
		return t, true, nil
	}
	return time.Time{}, false, err
}
