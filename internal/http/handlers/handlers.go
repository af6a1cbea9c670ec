package handlers

import (
	"context"
	"errors"
	"log/slog"
	nethttp "net/http"
	"strings"

	"esports-schedule/internal/cards"
	"esports-schedule/internal/domain/schedule"
	"esports-schedule/internal/logging"
	"esports-schedule/internal/poller"
	"esports-schedule/internal/snapshots"
)

// ScheduleStore reads the generated schedule and its manifest.
type ScheduleStore interface {
	LoadSchedule(ctx context.Context) (schedule.Schedule, error)
	LoadManifest() (snapshots.Manifest, error)
}

// CardLoader runs one render cycle.
type CardLoader interface {
	Load(ctx context.Context, gameFilter string) cards.View
}

// Handler serves the schedule, the rendered cards and the health probes.
type Handler struct {
	store    ScheduleStore
	loader   CardLoader
	logger   *slog.Logger
	statusFn func() poller.Status
}

// NewHandler constructs a Handler. statusFn may be nil when polling is disabled.
func NewHandler(store ScheduleStore, loader CardLoader, logger *slog.Logger, statusFn func() poller.Status) *Handler {
	return &Handler{
		store:    store,
		loader:   loader,
		logger:   logger,
		statusFn: statusFn,
	}
}

// Root sends browsers to the schedule document.
func (h *Handler) Root(w nethttp.ResponseWriter, r *nethttp.Request) {
	nethttp.Redirect(w, r, "/api/schedule", nethttp.StatusTemporaryRedirect)
}

// Health reports the service health.
func (h *Handler) Health(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !requireMethod(w, r, nethttp.MethodGet, h.logger) {
		return
	}
	if err := r.Context().Err(); err != nil {
		writeError(w, r, nethttp.StatusServiceUnavailable, "shutting down", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, map[string]bool{"ok": true}, h.logger)
}

// Ready reports whether the schedule poller has produced a schedule recently.
func (h *Handler) Ready(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !requireMethod(w, r, nethttp.MethodGet, h.logger) {
		return
	}
	if h.statusFn == nil {
		writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	status := h.statusFn()
	if status.IsReady() {
		writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	msg := status.LastError
	if msg == "" {
		msg = "not ready"
	}
	writeError(w, r, nethttp.StatusServiceUnavailable, msg, h.logger)
}

// Schedule returns the generated schedule document.
func (h *Handler) Schedule(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !requireMethod(w, r, nethttp.MethodGet, h.logger) {
		return
	}
	logger := loggerFromContext(r, h.logger)
	if h.store == nil {
		writeError(w, r, nethttp.StatusServiceUnavailable, "schedule store not configured", logger)
		return
	}
	s, err := h.store.LoadSchedule(r.Context())
	if err != nil {
		h.writeStoreError(w, r, err, logger)
		return
	}
	w.Header().Set("Cache-Control", "no-store")
	writeJSON(w, nethttp.StatusOK, s, logger)
}

// Manifest returns the metadata written alongside the last schedule.
func (h *Handler) Manifest(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !requireMethod(w, r, nethttp.MethodGet, h.logger) {
		return
	}
	logger := loggerFromContext(r, h.logger)
	if h.store == nil {
		writeError(w, r, nethttp.StatusServiceUnavailable, "schedule store not configured", logger)
		return
	}
	m, err := h.store.LoadManifest()
	if err != nil {
		h.writeStoreError(w, r, err, logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, m, logger)
}

// Cards renders the schedule for the optional ?game= filter. A failed cycle is still a
// view, served with 502 so clients can tell it apart.
func (h *Handler) Cards(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !requireMethod(w, r, nethttp.MethodGet, h.logger) {
		return
	}
	logger := loggerFromContext(r, h.logger)
	if h.loader == nil {
		writeError(w, r, nethttp.StatusServiceUnavailable, "renderer not configured", logger)
		return
	}
	game := strings.TrimSpace(r.URL.Query().Get("game"))
	view := h.loader.Load(r.Context(), game)

	status := nethttp.StatusOK
	if view.State == cards.StateError {
		status = nethttp.StatusBadGateway
	}
	logging.Info(logger, "served cards",
		logging.FieldGame, game,
		logging.FieldState, string(view.State),
		logging.FieldCount, len(view.Cards),
	)
	writeJSON(w, status, view, logger)
}

func (h *Handler) writeStoreError(w nethttp.ResponseWriter, r *nethttp.Request, err error, logger *slog.Logger) {
	if errors.Is(err, snapshots.ErrNotGenerated) {
		writeError(w, r, nethttp.StatusNotFound, snapshots.ErrNotGenerated.Error(), logger)
		return
	}
	logging.Error(logger, "schedule read failed", err)
	writeError(w, r, nethttp.StatusInternalServerError, "failed to read schedule", logger)
}
