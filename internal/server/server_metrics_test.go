package server

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"esports-schedule/internal/config"
	"esports-schedule/internal/metrics"
	"esports-schedule/internal/testutil"
)

func TestNewServerWithMetricsHandlesSetupFailure(t *testing.T) {
	origSetup := metricsSetup
	defer func() { metricsSetup = origSetup }()

	metricsSetup = func(ctx context.Context, cfg metrics.TelemetryConfig) (*metrics.Recorder, http.Handler, func(context.Context) error, error) {
		return nil, nil, nil, errors.New("fail")
	}

	cfg := testConfig(t)
	cfg.Metrics = config.MetricsConfig{Enabled: true}

	srv := newServerWithMetrics(cfg, nil, testutil.EmptyProvider{}, nil)
	if srv.metrics == nil {
		t.Fatalf("expected fallback metrics recorder even on setup failure")
	}
}

func TestNewServerWithMetricsDisabledSkipsSetup(t *testing.T) {
	cfg := testConfig(t)

	srv := newServerWithMetrics(cfg, nil, testutil.EmptyProvider{}, nil)
	if srv.metrics == nil {
		t.Fatalf("expected recorder to be set even when metrics disabled")
	}
}

func TestNewServerWithMetricsUsesInjectedRecorder(t *testing.T) {
	rec, shutdown := testutil.NewRecorderWithShutdown()
	cfg := testConfig(t)
	cfg.Metrics = config.MetricsConfig{Enabled: true}

	srv := newServerWithMetrics(cfg, nil, testutil.EmptyProvider{}, rec)
	if srv.metrics != rec {
		t.Fatalf("expected injected recorder to be used")
	}
	if srv.metricsStop != nil {
		if err := srv.metricsStop(context.Background()); err != nil {
			t.Fatalf("expected injected shutdown to succeed, got %v", err)
		}
	}
	_ = shutdown
}
