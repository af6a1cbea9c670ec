// Command fetcher regenerates the schedule file once and exits. Run it from cron when the
// server's poller is disabled.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"esports-schedule/internal/config"
	"esports-schedule/internal/logging"
	"esports-schedule/internal/metrics"
	"esports-schedule/internal/server"
)

const appVersion = "dev"

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file loaded", "error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	logger := logging.NewLogger(logging.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: "esports-schedule-fetcher",
		Version: appVersion,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logging.Error(logger, "fetch failed", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	f, release := server.BuildFetcher(cfg, logger, metrics.NewRecorder())
	defer release()

	s, err := f.Run(ctx)
	if err != nil {
		return err
	}
	logging.Info(logger, "wrote schedule",
		logging.FieldClub, s.Club,
		logging.FieldCount, len(s.Matches),
		"path", cfg.SchedulePath,
	)
	return nil
}
