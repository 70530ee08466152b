package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/fabianluz/liftlog/internal/models"
	"github.com/fabianluz/liftlog/internal/storage"
)

// HTTPClient implements DataSource by calling the LiftLog REST API. Used for
// remote MCP mode where the binary runs locally (stdio) but data lives on
// the remote server (accessed over Tailscale).
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

// Compile-time check: HTTPClient satisfies DataSource.
var _ DataSource = (*HTTPClient)(nil)

// NewHTTPClient creates an HTTPClient targeting the given base URL.
func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *HTTPClient) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("httpclient: create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("httpclient: %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("httpclient: reading %s: %w", path, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("httpclient: %s returned %d: %s", path, resp.StatusCode, body)
	}
	return body, nil
}

// GetStats fetches the summary stats.
func (c *HTTPClient) GetStats(ctx context.Context) (*storage.Stats, error) {
	body, err := c.get(ctx, "/api/stats", nil)
	if err != nil {
		return nil, err
	}
	var stats storage.Stats
	if err := json.Unmarshal(body, &stats); err != nil {
		return nil, fmt.Errorf("httpclient: decoding stats: %w", err)
	}
	return &stats, nil
}

// RecentWorkouts fetches the newest workouts.
func (c *HTTPClient) RecentWorkouts(ctx context.Context, limit int) ([]models.Workout, error) {
	params := url.Values{"limit": {strconv.Itoa(limit)}}
	body, err := c.get(ctx, "/api/recent", params)
	if err != nil {
		return nil, err
	}
	var workouts []models.Workout
	if err := json.Unmarshal(body, &workouts); err != nil {
		return nil, fmt.Errorf("httpclient: decoding recent workouts: %w", err)
	}
	return workouts, nil
}

// QueryHistory fetches filtered workout history.
func (c *HTTPClient) QueryHistory(ctx context.Context, f storage.HistoryFilter) ([]models.Workout, error) {
	params := url.Values{}
	if f.Search != "" {
		params.Set("search", f.Search)
	}
	if f.Start != nil {
		params.Set("startDate", f.Start.Format(time.RFC3339))
	}
	if f.End != nil {
		params.Set("endDate", f.End.Format(time.RFC3339))
	}

	body, err := c.get(ctx, "/api/history", params)
	if err != nil {
		return nil, err
	}
	var workouts []models.Workout
	if err := json.Unmarshal(body, &workouts); err != nil {
		return nil, fmt.Errorf("httpclient: decoding history: %w", err)
	}
	return workouts, nil
}

// WorkoutSets fetches one workout's sets with exercise names.
func (c *HTTPClient) WorkoutSets(ctx context.Context, workoutID int64) ([]storage.SetDetail, error) {
	body, err := c.get(ctx, "/api/history/"+strconv.FormatInt(workoutID, 10), nil)
	if err != nil {
		return nil, err
	}
	var sets []storage.SetDetail
	if err := json.Unmarshal(body, &sets); err != nil {
		return nil, fmt.Errorf("httpclient: decoding workout sets: %w", err)
	}
	return sets, nil
}

// ListExercises fetches all exercises.
func (c *HTTPClient) ListExercises(ctx context.Context) ([]models.Exercise, error) {
	body, err := c.get(ctx, "/exercises", nil)
	if err != nil {
		return nil, err
	}
	var exercises []models.Exercise
	if err := json.Unmarshal(body, &exercises); err != nil {
		return nil, fmt.Errorf("httpclient: decoding exercises: %w", err)
	}
	return exercises, nil
}

// ExerciseAnalytics fetches one exercise's progress series.
func (c *HTTPClient) ExerciseAnalytics(ctx context.Context, exerciseID int64) (*storage.AnalyticsSeries, error) {
	body, err := c.get(ctx, "/analytics/"+strconv.FormatInt(exerciseID, 10), nil)
	if err != nil {
		return nil, err
	}
	var series storage.AnalyticsSeries
	if err := json.Unmarshal(body, &series); err != nil {
		return nil, fmt.Errorf("httpclient: decoding analytics: %w", err)
	}
	return &series, nil
}
