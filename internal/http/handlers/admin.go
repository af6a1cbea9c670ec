package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"esports-schedule/internal/domain/schedule"
	"esports-schedule/internal/fetcher"
	"esports-schedule/internal/http/requestutil"
	"esports-schedule/internal/logging"
)

// Refresher regenerates and persists the schedule once.
type Refresher interface {
	Run(ctx context.Context) (schedule.Schedule, error)
}

// AdminHandler exposes admin-only endpoints.
type AdminHandler struct {
	job    Refresher
	token  string
	logger *slog.Logger
}

// NewAdminHandler constructs an AdminHandler.
func NewAdminHandler(job Refresher, token string, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		job:    job,
		token:  token,
		logger: logger,
	}
}

// RefreshSchedule runs one fetch cycle immediately and reports what was written.
// Guarded by ADMIN_TOKEN; returns 401 if missing or invalid.
func (h *AdminHandler) RefreshSchedule(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost, h.logger) {
		return
	}
	if !h.authorize(r) {
		logging.Warn(h.logger, "admin unauthorized",
			slog.String(logging.FieldPath, r.URL.Path),
			slog.String("client_ip", requestutil.ClientIP(r)),
		)
		writeError(w, r, http.StatusUnauthorized, "unauthorized", h.logger)
		return
	}
	if h.job == nil {
		writeError(w, r, http.StatusServiceUnavailable, "schedule fetcher not configured", h.logger)
		return
	}

	logger := loggerFromContext(r, h.logger)
	s, err := h.job.Run(r.Context())
	if err != nil {
		logging.Warn(logger, "admin refresh failed", "err", err)
		status := http.StatusInternalServerError
		if errors.Is(err, fetcher.ErrAllGamesFailed) {
			status = http.StatusBadGateway
		}
		writeError(w, r, status, "failed to refresh schedule", logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"club":       s.Club,
		"updated_at": s.UpdatedAt,
		"matches":    len(s.Matches),
		"status":     "ok",
	}, logger)
	logging.Info(logger, "admin refresh written",
		logging.FieldClub, s.Club,
		logging.FieldCount, len(s.Matches),
	)
}

func (h *AdminHandler) authorize(r *http.Request) bool {
	if h.token == "" {
		return false
	}
	return r.Header.Get("Authorization") == "Bearer "+h.token
}
