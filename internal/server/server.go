package server

import (
	"context"
	"log/slog"
	"net/http"

	"esports-schedule/internal/config"
	"esports-schedule/internal/fetcher"
	httpserver "esports-schedule/internal/http"
	"esports-schedule/internal/http/handlers"
	"esports-schedule/internal/http/middleware"
	"esports-schedule/internal/logging"
	"esports-schedule/internal/matcher"
	"esports-schedule/internal/metrics"
	"esports-schedule/internal/poller"
	"esports-schedule/internal/popup"
	"esports-schedule/internal/providers"
	"esports-schedule/internal/settings"
)

var metricsSetup = metrics.Setup

type Server struct {
	cfg           config.Config
	logger        *slog.Logger
	metrics       *metrics.Recorder
	settings      *settings.Service
	httpServer    httpServer
	metricsServer httpServer
	poller        Poller
	metricsStop   func(context.Context) error
	release       func()
}

// New constructs a server with the Liquipedia provider chain and, when enabled, the poller.
func New(cfg config.Config, logger *slog.Logger) *Server {
	return newServerWithMetrics(cfg, logger, nil, nil)
}

func newServerWithProvider(cfg config.Config, logger *slog.Logger, provider providers.MatchProvider) *Server {
	return newServerWithMetrics(cfg, logger, provider, nil)
}

func newServerWithMetrics(cfg config.Config, logger *slog.Logger, provider providers.MatchProvider, recorder *metrics.Recorder) *Server {
	recorder, metricsSrv, metricsShutdown := buildMetrics(cfg, logger, recorder)

	release := func() {}
	if provider == nil {
		provider, release = newProviderFactory(logger, recorder).build(cfg)
	} else {
		provider = providers.NewRetryingProvider(provider, logger, recorder, normalizeProviderName("", provider), 0, 0)
	}

	snaps := buildSnapshots(cfg)
	job := fetcher.New(provider, snaps.writer, fetcherConfig(cfg), logger, recorder)
	settingsSvc := settings.NewService(settings.NewFileStore(cfg.SettingsPath), logger)

	var plr Poller
	if cfg.Poll.Enabled {
		plr = poller.New(job, logger, recorder, cfg.Poll.Interval)
	}

	loader := popup.New(popup.Config{
		Settings: settingsSvc,
		// The server renders from its own schedule file instead of calling itself over HTTP.
		NewClient: func(string) providers.ScheduleProvider { return snaps.store },
		Matcher:   matcher.New(cfg.FuzzyThreshold),
		Location:  cfg.Location(),
		Logger:    logger,
		Metrics:   recorder,
	})

	routes := httpserver.Routes{
		Handler:      handlers.NewHandler(snaps.store, loader, logger, statusFn(plr)),
		Settings:     handlers.NewSettingsHandler(settingsSvc, logger),
		AllowOrigins: cfg.AllowOrigins,
		Logger:       logger,
	}
	// The admin refresh endpoint is only mounted when a token is configured.
	if cfg.AdminToken != "" {
		routes.Admin = handlers.NewAdminHandler(job, cfg.AdminToken, logger)
	}

	return &Server{
		cfg:           cfg,
		logger:        logger,
		metrics:       recorder,
		settings:      settingsSvc,
		httpServer:    buildHTTPServer(cfg, routes, logger, recorder),
		metricsServer: metricsSrv,
		poller:        plr,
		metricsStop:   metricsShutdown,
		release:       release,
	}
}

// newServerWithDeps is used for testing to inject custom components.
func newServerWithDeps(cfg config.Config, logger *slog.Logger, httpSrv httpServer, plr Poller) *Server {
	return &Server{
		cfg:        cfg,
		logger:     logger,
		httpServer: httpSrv,
		poller:     plr,
	}
}

func statusFn(plr Poller) func() poller.Status {
	if plr == nil {
		return nil
	}
	return plr.Status
}

func buildHTTPServer(cfg config.Config, routes httpserver.Routes, logger *slog.Logger, recorder *metrics.Recorder) httpServer {
	if logger == nil {
		logger = logging.NewLogger(logging.Config{})
	}
	wrapped := middleware.LoggingMiddleware(logger, recorder, httpserver.NewRouter(routes))

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      wrapped,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	return netHTTPServer{srv: srv}
}

// Run starts the poller and HTTP server, then waits for context cancellation to shut down gracefully.
func (s *Server) Run(ctx context.Context, stop context.CancelFunc) {
	s.startMetrics()
	s.startServer(stop)
	if s.poller != nil {
		s.poller.Start(ctx)
	}
	s.seedSettings(ctx)

	<-ctx.Done()
	logging.Info(s.logger, "shutdown signal received")

	s.gracefulShutdown()
}

// seedSettings writes the default clubs on first boot so the options surface starts populated.
func (s *Server) seedSettings(ctx context.Context) {
	if s.settings == nil {
		return
	}
	if _, err := s.settings.EnsureClubs(ctx); err != nil {
		logging.Warn(s.logger, "settings seed failed", "err", err)
	}
}

func (s *Server) startServer(stop context.CancelFunc) {
	logging.Info(s.logger, "http server starting", slog.String("addr", s.httpServer.Addr()))
	launchServer("http", s.httpServer, s.logger, func(err error) {
		if stop != nil {
			stop()
		}
	})
}

func (s *Server) startMetrics() {
	if s.metricsServer == nil {
		return
	}
	logging.Info(s.logger, "metrics server starting", slog.String("addr", s.metricsServer.Addr()))
	launchServer("metrics", s.metricsServer, s.logger, nil)
}

func (s *Server) gracefulShutdown() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if s.metricsStop != nil {
		if err := s.metricsStop(shutdownCtx); err != nil {
			logging.Warn(s.logger, "metrics shutdown failed", "error", err)
		}
	}

	if s.metricsServer != nil {
		if err := s.metricsServer.Shutdown(shutdownCtx); err != nil {
			logging.Warn(s.logger, "metrics server shutdown failed", "error", err)
		}
	}

	if s.poller != nil {
		if err := s.poller.Stop(shutdownCtx); err != nil {
			logging.Error(s.logger, "failed to stop poller", err)
		}
	}

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		logging.Error(s.logger, "graceful shutdown failed", err)
	}

	// Stop the rate limiter's ticker.
	if s.release != nil {
		s.release()
	}

	logging.Info(s.logger, "shutdown complete")
}

func buildMetrics(cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) (*metrics.Recorder, httpServer, func(context.Context) error) {
	if recorder != nil {
		return recorder, nil, nil
	}

	recCfg := metrics.TelemetryConfig{
		Enabled:      cfg.Metrics.Enabled,
		Port:         cfg.Metrics.Port,
		ServiceName:  cfg.Metrics.ServiceName,
		OtlpEndpoint: cfg.Metrics.OtlpEndpoint,
		OtlpInsecure: cfg.Metrics.OtlpInsecure,
	}

	rec, handler, shutdown, err := metricsSetup(context.Background(), recCfg)
	if err != nil {
		logging.Warn(logger, "metrics setup failed, continuing without telemetry", "err", err)
		return metrics.NewRecorder(), nil, nil
	}

	var metricsSrv httpServer
	if handler != nil && recCfg.Enabled {
		metricsSrv = netHTTPServer{
			srv: &http.Server{
				Addr:    ":" + recCfg.Port,
				Handler: handler,
			},
		}
	}

	return rec, metricsSrv, shutdown
}

func launchServer(name string, srv httpServer, logger *slog.Logger, onError func(error)) {
	go func() {
		logging.Info(logger, "starting "+name+" server", slog.String("addr", srv.Addr()))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Warn(logger, name+" server failed", "error", err)
			if onError != nil {
				onError(err)
			}
		}
	}()
}

// Handler exposes the HTTP handler (useful for tests).
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler()
}
