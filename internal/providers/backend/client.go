package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"esports-schedule/internal/domain/schedule"
	"esports-schedule/internal/logging"
	"esports-schedule/internal/metrics"
	"esports-schedule/internal/providers"
)

// Config controls how the backend client reaches the schedule server.
type Config struct {
	BaseURL    string
	HTTPClient *http.Client
	Logger     *slog.Logger
	Metrics    *metrics.Recorder
}

// Client fetches the generated schedule from the backend. It never caches and never retries.
type Client struct {
	baseURL    string
	httpClient httpDoer
	logger     *slog.Logger
	metrics    *metrics.Recorder
}

// NewClient constructs a backend client with the provided configuration.
func NewClient(cfg Config) *Client {
	return &Client{
		baseURL:    normalizeBaseURL(cfg.BaseURL),
		httpClient: resolveHTTPClient(cfg.HTTPClient),
		logger:     cfg.Logger,
		metrics:    cfg.Metrics,
	}
}

// BaseURL reports the normalized backend root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// FetchSchedule performs GET {base}/api/schedule. Any non-2xx response becomes a
// *providers.StatusError.
func (c *Client) FetchSchedule(ctx context.Context) (schedule.Schedule, error) {
	start := time.Now()
	s, err := c.fetch(ctx)
	c.metrics.RecordProviderAttempt(providerName, time.Since(start), err)
	if err != nil {
		logging.Warn(logging.FromContext(ctx, c.logger), "schedule fetch failed",
			logging.FieldProvider, providerName,
			logging.FieldURL, c.baseURL+schedulePath,
			"err", err,
		)
		return schedule.Schedule{}, err
	}
	return s, nil
}

func (c *Client) fetch(ctx context.Context) (schedule.Schedule, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+schedulePath, nil)
	if err != nil {
		return schedule.Schedule{}, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", "no-store")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return schedule.Schedule{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return schedule.Schedule{}, &providers.StatusError{
			Provider:   providerName,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(body)),
		}
	}

	var payload schedule.Schedule
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return schedule.Schedule{}, fmt.Errorf("decode schedule: %w", err)
	}
	return payload.Normalize(), nil
}
