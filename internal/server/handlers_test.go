package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"
)

// TestHandleUploadNoFile verifies a request without the csvFile field is
// rejected before anything touches the store.
func TestHandleUploadNoFile(t *testing.T) {
	s := &Server{}
	req := httptest.NewRequest(http.MethodPost, "/upload", strings.NewReader(""))
	req.Header.Set("Content-Type", "multipart/form-data; boundary=x")
	rec := httptest.NewRecorder()

	s.handleUpload(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}

	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if body["error"] == "" {
		t.Error("expected an error message in the body")
	}
}

// TestHistoryFilterFromQuery verifies filter construction, in particular
// that a bare end date covers its whole day without spilling into the next
// midnight under the inclusive end comparison.
func TestHistoryFilterFromQuery(t *testing.T) {
	q := url.Values{}
	q.Set("search", "leg")
	q.Set("startDate", "2026-03-01")
	q.Set("endDate", "2026-03-07")

	filter, err := historyFilterFromQuery(q)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if filter.Search != "leg" {
		t.Errorf("search = %q, want %q", filter.Search, "leg")
	}
	if filter.Start == nil || !filter.Start.Equal(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("start = %v, want 2026-03-01 midnight", filter.Start)
	}

	wantEnd := time.Date(2026, 3, 7, 23, 59, 59, 0, time.UTC)
	if filter.End == nil || !filter.End.Equal(wantEnd) {
		t.Errorf("end = %v, want %v", filter.End, wantEnd)
	}
	nextMidnight := time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC)
	if filter.End != nil && !filter.End.Before(nextMidnight) {
		t.Errorf("end %v must stop short of %v", filter.End, nextMidnight)
	}

	// An RFC3339 end bound is taken as-is.
	q.Set("endDate", "2026-03-07T12:00:00Z")
	filter, err = historyFilterFromQuery(q)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if filter.End == nil || !filter.End.Equal(time.Date(2026, 3, 7, 12, 0, 0, 0, time.UTC)) {
		t.Errorf("RFC3339 end = %v, want 2026-03-07 noon", filter.End)
	}

	// Bad values surface as errors for the 400 path.
	q.Set("endDate", "next tuesday")
	if _, err := historyFilterFromQuery(q); err == nil {
		t.Error("expected error for unparseable endDate")
	}
	q.Set("endDate", "2026-03-07")
	q.Set("startDate", "???")
	if _, err := historyFilterFromQuery(q); err == nil {
		t.Error("expected error for unparseable startDate")
	}
}

// TestParseDateParam verifies both accepted date forms and the dateOnly flag.
func TestParseDateParam(t *testing.T) {
	got, dateOnly, err := parseDateParam("2026-03-01")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !dateOnly {
		t.Error("bare date should report dateOnly")
	}
	if got != time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC) {
		t.Errorf("got %v, want 2026-03-01 midnight", got)
	}

	got, dateOnly, err = parseDateParam("2026-03-01T18:30:00Z")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dateOnly {
		t.Error("RFC3339 value should not report dateOnly")
	}
	if got.Hour() != 18 || got.Minute() != 30 {
		t.Errorf("got %v, want 18:30", got)
	}

	if _, _, err := parseDateParam("yesterday"); err == nil {
		t.Error("expected error for unparseable date")
	}
}
