package server

import (
	"log/slog"

	"esports-schedule/internal/config"
	"esports-schedule/internal/fetcher"
	"esports-schedule/internal/metrics"
)

// BuildFetcher wires the Liquipedia provider chain and the schedule writer into a fetcher.
// The returned func releases the provider's rate limiter.
func BuildFetcher(cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) (*fetcher.Fetcher, func()) {
	provider, release := newProviderFactory(logger, recorder).build(cfg)
	snaps := buildSnapshots(cfg)
	f := fetcher.New(provider, snaps.writer, fetcherConfig(cfg), logger, recorder)
	return f, release
}

func fetcherConfig(cfg config.Config) fetcher.Config {
	return fetcher.Config{
		Club:    cfg.Fetcher.ClubName,
		Aliases: cfg.Fetcher.Aliases,
		Games:   cfg.Fetcher.Games,
	}
}
