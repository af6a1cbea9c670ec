package server

import (
	"log/slog"

	"esports-schedule/internal/config"
	"esports-schedule/internal/metrics"
	"esports-schedule/internal/providers"
	"esports-schedule/internal/providers/liquipedia"
)

const liquipediaProviderName = "liquipedia"

// providerFactory assembles the match provider with shared wrappers (rate limit + retry).
type providerFactory struct {
	logger  *slog.Logger
	metrics *metrics.Recorder
}

func newProviderFactory(logger *slog.Logger, metrics *metrics.Recorder) providerFactory {
	return providerFactory{logger: logger, metrics: metrics}
}

// build returns the wrapped provider and a func releasing the rate limiter's ticker.
func (f providerFactory) build(cfg config.Config) (providers.MatchProvider, func()) {
	base := liquipedia.NewClient(liquipedia.Config{
		BaseURL:   cfg.Liquipedia.BaseURL,
		APIKey:    cfg.Liquipedia.APIKey,
		UserAgent: cfg.Liquipedia.UserAgent,
		DemoMode:  cfg.Liquipedia.DemoMode,
		Timeout:   cfg.Liquipedia.Timeout,
		Logger:    f.logger,
	})
	// Shared rate limiter to respect the upstream quota.
	limited := providers.NewRateLimitedProvider(base, cfg.Liquipedia.Rate, f.logger)
	wrapped := providers.NewRetryingProvider(limited, f.logger, f.metrics, normalizeProviderName(liquipediaProviderName, base), 0, 0)
	return wrapped, closer(limited)
}

func closer(p providers.MatchProvider) func() {
	if c, ok := p.(interface{ Close() }); ok {
		return c.Close
	}
	return func() {}
}
