package popup

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"esports-schedule/internal/cards"
	"esports-schedule/internal/logging"
	"esports-schedule/internal/matcher"
	"esports-schedule/internal/metrics"
	"esports-schedule/internal/providers"
	"esports-schedule/internal/providers/backend"
	"esports-schedule/internal/settings"
)

var errSettingsUnavailable = errors.New("settings unavailable")

// SettingsSource returns settings with the default club list seeded on first use.
type SettingsSource interface {
	EnsureClubs(ctx context.Context) (settings.Settings, error)
}

// ClientFactory builds the schedule client for a backend root URL.
type ClientFactory func(baseURL string) providers.ScheduleProvider

// Config wires a Loader.
type Config struct {
	Settings   SettingsSource
	NewClient  ClientFactory
	HTTPClient *http.Client
	Matcher    matcher.Matcher
	Location   *time.Location
	Logger     *slog.Logger
	Metrics    *metrics.Recorder
}

// Loader runs one render cycle per call: read settings, fetch the schedule once, render.
type Loader struct {
	settings  SettingsSource
	newClient ClientFactory
	matcher   matcher.Matcher
	location  *time.Location
	logger    *slog.Logger
	metrics   *metrics.Recorder
	now       func() time.Time
}

// New constructs a Loader. Without a ClientFactory the backend HTTP client is used.
func New(cfg Config) *Loader {
	l := &Loader{
		settings:  cfg.Settings,
		newClient: cfg.NewClient,
		matcher:   cfg.Matcher,
		location:  cfg.Location,
		logger:    cfg.Logger,
		metrics:   cfg.Metrics,
		now:       time.Now,
	}
	if l.newClient == nil {
		l.newClient = func(baseURL string) providers.ScheduleProvider {
			return backend.NewClient(backend.Config{
				BaseURL:    baseURL,
				HTTPClient: cfg.HTTPClient,
				Logger:     cfg.Logger,
				Metrics:    cfg.Metrics,
			})
		}
	}
	return l
}

// Load renders the schedule for gameFilter. Failures become an error view; it never
// returns partial cards.
func (l *Loader) Load(ctx context.Context, gameFilter string) cards.View {
	start := l.now()
	view, err := l.load(ctx, gameFilter)
	if err != nil {
		view = cards.ErrorView(err)
		logging.Warn(logging.FromContext(ctx, l.logger), "render cycle failed",
			logging.FieldGame, gameFilter,
			"err", err,
		)
	}
	l.metrics.RecordRender(string(view.State), l.now().Sub(start))
	return view
}

func (l *Loader) load(ctx context.Context, gameFilter string) (cards.View, error) {
	if l.settings == nil {
		return cards.View{}, errSettingsUnavailable
	}
	st, err := l.settings.EnsureClubs(ctx)
	if err != nil {
		return cards.View{}, fmt.Errorf("read settings: %w", err)
	}
	s, err := l.newClient(st.BackendURL).FetchSchedule(ctx)
	if err != nil {
		return cards.View{}, err
	}
	return cards.Render(s, gameFilter, st.Clubs, cards.Options{
		Matcher:  l.matcher,
		Location: l.location,
	}), nil
}
