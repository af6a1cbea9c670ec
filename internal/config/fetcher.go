package config

import (
	"strings"
	"time"
)

const (
	defaultPollInterval      = time.Hour
	defaultLiquipediaRate    = 2 * time.Second
	defaultLiquipediaTimeout = 25 * time.Second
)

// FetcherConfig selects what the schedule generator asks upstream for.
type FetcherConfig struct {
	ClubName string   `envconfig:"CLUB_NAME" default:"Team Vitality"`
	Aliases  []string `envconfig:"CLUB_ALIASES" default:"Team Vitality,Vitality"`
	Games    []string `envconfig:"GAMES" default:"valorant"`
}

// LiquipediaConfig controls how we talk to the Liquipedia match database.
type LiquipediaConfig struct {
	BaseURL   string        `envconfig:"LIQUIPEDIA_BASE_URL" default:"https://api.liquipedia.net/api/v1"`
	APIKey    string        `envconfig:"LIQUIPEDIA_API_KEY"`
	UserAgent string        `envconfig:"LIQUIPEDIA_USER_AGENT" default:"EsportsScheduleExtension/0.1 (contact: you@example.com)"`
	DemoMode  bool          `envconfig:"DEMO_MODE" default:"false"`
	Rate      time.Duration `envconfig:"LIQUIPEDIA_RATE" default:"2s"`
	Timeout   time.Duration `envconfig:"LIQUIPEDIA_TIMEOUT" default:"25s"`
}

func positiveOr(v, fallback time.Duration) time.Duration {
	if v <= 0 {
		return fallback
	}
	return v
}

func compact(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
