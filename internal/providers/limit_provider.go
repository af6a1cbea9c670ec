package providers

import (
	"context"
	"log/slog"
	"time"

	"esports-schedule/internal/domain/schedule"
	"esports-schedule/internal/logging"
)

// rateLimitedProvider wraps a MatchProvider and enforces a minimum interval between calls.
type rateLimitedProvider struct {
	next     MatchProvider
	interval time.Duration
	ticker   *time.Ticker
	logger   *slog.Logger
}

// NewRateLimitedProvider returns a MatchProvider that limits calls to the given interval.
// Calls block until the interval elapses to avoid exceeding upstream quotas.
func NewRateLimitedProvider(next MatchProvider, interval time.Duration, logger *slog.Logger) MatchProvider {
	if interval <= 0 {
		interval = time.Minute
	}
	return &rateLimitedProvider{
		next:     next,
		interval: interval,
		ticker:   time.NewTicker(interval),
		logger:   logger,
	}
}

func (p *rateLimitedProvider) FetchMatches(ctx context.Context, game, club string) ([]schedule.Match, error) {
	if p == nil || p.next == nil {
		if p != nil {
			logWithProvider(ctx, p.logger, slog.LevelWarn, "rate-limited", "provider unavailable")
		}
		return nil, ErrProviderUnavailable
	}
	select {
	case <-ctx.Done():
		logWithProvider(ctx, p.logger, slog.LevelWarn, "rate-limited", "rate-limited fetch canceled")
		return nil, ctx.Err()
	case <-p.ticker.C:
	}
	logWithProvider(ctx, p.logger, slog.LevelDebug, "rate-limited", "rate-limited provider fetch", logging.FieldGame, game)
	return p.next.FetchMatches(ctx, game, club)
}

// Close stops the pacing ticker.
func (p *rateLimitedProvider) Close() {
	if p != nil && p.ticker != nil {
		p.ticker.Stop()
	}
}
