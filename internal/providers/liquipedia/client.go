package liquipedia

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"esports-schedule/internal/domain/schedule"
	"esports-schedule/internal/logging"
	"esports-schedule/internal/providers"
	"esports-schedule/internal/providers/fixture"
)

var (
	// ErrUnknownGame is returned for a game slug with no known wiki.
	ErrUnknownGame = errors.New("unknown game")
	// ErrNoAPIKey is returned when the valorant wiki is queried without an LPDB key.
	ErrNoAPIKey = errors.New("valorant wiki requires an LPDB API key; set LIQUIPEDIA_API_KEY or enable DEMO_MODE")
)

// Config controls how the client reaches the Liquipedia match database.
type Config struct {
	BaseURL    string
	APIKey     string
	UserAgent  string
	DemoMode   bool
	Timeout    time.Duration
	HTTPClient *http.Client
	Logger     *slog.Logger
}

// Client fetches upcoming matches from LPDB and maps them to schedule matches.
type Client struct {
	baseURL    string
	apiKey     string
	userAgent  string
	demoMode   bool
	httpClient httpDoer
	logger     *slog.Logger
	demo       *fixture.Provider
}

// NewClient constructs a Liquipedia client with the provided configuration.
func NewClient(cfg Config) *Client {
	return &Client{
		baseURL:    normalizeBaseURL(cfg.BaseURL),
		apiKey:     strings.TrimSpace(cfg.APIKey),
		userAgent:  resolveUserAgent(cfg.UserAgent),
		demoMode:   cfg.DemoMode,
		httpClient: resolveHTTPClient(cfg.HTTPClient, cfg.Timeout),
		logger:     cfg.Logger,
		demo:       fixture.New(),
	}
}

// FetchMatches returns the matches upstream lists for club in game. Demo mode short-circuits
// to a local payload. Without a key only non-valorant wikis succeed, with no matches.
func (c *Client) FetchMatches(ctx context.Context, game, club string) ([]schedule.Match, error) {
	wiki, ok := WikiFor(game)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownGame, game)
	}

	if c.demoMode {
		logging.Info(logging.FromContext(ctx, c.logger), "demo mode payload",
			logging.FieldProvider, providerName, logging.FieldGame, game)
		return Normalize(game, c.demo.Payload(wiki, club), club), nil
	}

	if c.apiKey == "" {
		if game == GameValorant {
			return nil, ErrNoAPIKey
		}
		return []schedule.Match{}, nil
	}

	payload, err := c.queryMatches(ctx, wiki, club)
	if err != nil {
		return nil, err
	}
	return Normalize(game, payload, club), nil
}

func (c *Client) queryMatches(ctx context.Context, wiki, club string) (any, error) {
	req, err := c.buildRequest(ctx, wiki, club)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := bodyReader(resp)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, &providers.RateLimitError{
			Provider:   providerName,
			StatusCode: resp.StatusCode,
			RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After")),
			Message:    "liquipedia rate limited",
		}
	}
	if resp.StatusCode != http.StatusOK {
		excerpt, _ := io.ReadAll(io.LimitReader(body, maxErrorBody))
		return nil, &providers.StatusError{
			Provider:   providerName,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(excerpt)),
		}
	}

	dec := json.NewDecoder(body)
	dec.UseNumber()
	var payload any
	if err := dec.Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode liquipedia response: %w", err)
	}
	return payload, nil
}

func (c *Client) buildRequest(ctx context.Context, wiki, club string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/match", nil)
	if err != nil {
		return nil, err
	}

	q := req.URL.Query()
	q.Set("wiki", wiki)
	q.Set("conditions", fmt.Sprintf("(opponent1='%s' OR opponent2='%s')", club, club))
	q.Set("order", "date ASC")
	q.Set("limit", strconv.Itoa(defaultLimit))
	req.URL.RawQuery = q.Encode()

	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Accept-Encoding", "gzip")
	return req, nil
}
