package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"

	"esports-schedule/internal/timeutil"
)

// Config holds runtime configuration shared by the server, fetcher and popup commands.
type Config struct {
	Port            string   `envconfig:"PORT" default:"8080"`
	AllowOrigins    []string `envconfig:"ALLOW_ORIGINS" default:"*"`
	SchedulePath    string   `envconfig:"SCHEDULE_PATH" default:"data/schedule.json"`
	SettingsPath    string   `envconfig:"SETTINGS_PATH" default:"data/settings.json"`
	FuzzyThreshold  float64  `envconfig:"MATCH_FUZZY_THRESHOLD" default:"0"`
	DisplayTimezone string   `envconfig:"DISPLAY_TIMEZONE" default:"UTC"`
	AdminToken      string   `envconfig:"ADMIN_TOKEN"`

	Log        LogConfig
	Poll       PollConfig
	Fetcher    FetcherConfig
	Liquipedia LiquipediaConfig
	Metrics    MetricsConfig
}

// LogConfig controls the slog handler.
type LogConfig struct {
	Level  string `envconfig:"LOG_LEVEL" default:"info"`
	Format string `envconfig:"LOG_FORMAT" default:"text"`
}

// PollConfig controls periodic schedule regeneration inside the server.
type PollConfig struct {
	Enabled  bool          `envconfig:"POLL_ENABLED" default:"false"`
	Interval time.Duration `envconfig:"POLL_INTERVAL" default:"1h"`
}

// Load reads configuration from environment variables. Non-positive durations fall back to
// their defaults; values that cannot be parsed at all are reported as errors.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	cfg.Poll.Interval = positiveOr(cfg.Poll.Interval, defaultPollInterval)
	cfg.Liquipedia.Rate = positiveOr(cfg.Liquipedia.Rate, defaultLiquipediaRate)
	cfg.Liquipedia.Timeout = positiveOr(cfg.Liquipedia.Timeout, defaultLiquipediaTimeout)
	if cfg.FuzzyThreshold < 0 || cfg.FuzzyThreshold > 1 {
		cfg.FuzzyThreshold = 0
	}
	cfg.Fetcher.Games = compact(cfg.Fetcher.Games)
	cfg.Fetcher.Aliases = compact(cfg.Fetcher.Aliases)
	cfg.AllowOrigins = compact(cfg.AllowOrigins)
	if len(cfg.AllowOrigins) == 0 {
		cfg.AllowOrigins = []string{"*"}
	}
	return cfg, nil
}

// Location resolves DisplayTimezone, falling back to UTC when unknown.
func (c Config) Location() *time.Location {
	return timeutil.ResolveLocation(c.DisplayTimezone)
}
