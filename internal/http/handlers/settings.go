package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"esports-schedule/internal/domain/clubs"
	"esports-schedule/internal/settings"
)

const maxBodyBytes = 64 << 10

// SettingsService is the subset of the settings service the HTTP API edits through.
type SettingsService interface {
	Get(ctx context.Context) (settings.Settings, error)
	EnsureClubs(ctx context.Context) (settings.Settings, error)
	SetBackendURL(ctx context.Context, raw string) (string, error)
	AddClub(ctx context.Context, in settings.ClubInput) (clubs.Club, error)
	UpdateClub(ctx context.Context, index int, field, value string) (clubs.Club, error)
	DeleteClub(ctx context.Context, index int) (clubs.Club, error)
}

// SettingsHandler exposes the options surface: backend URL and the followed clubs.
type SettingsHandler struct {
	svc    SettingsService
	logger *slog.Logger
}

// NewSettingsHandler constructs a SettingsHandler.
func NewSettingsHandler(svc SettingsService, logger *slog.Logger) *SettingsHandler {
	return &SettingsHandler{svc: svc, logger: logger}
}

type backendPayload struct {
	BackendURL string `json:"backendUrl"`
}

type clubPayload struct {
	Name      string `json:"name"`
	Primary   string `json:"primary"`
	Secondary string `json:"secondary"`
	Aliases   string `json:"aliases"`
}

type clubEditPayload struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

// GetBackend returns the saved backend URL, or the default.
func (h *SettingsHandler) GetBackend(w http.ResponseWriter, r *http.Request) {
	logger := loggerFromContext(r, h.logger)
	st, err := h.svc.Get(r.Context())
	if err != nil {
		h.writeSettingsError(w, r, err, logger)
		return
	}
	writeJSON(w, http.StatusOK, backendPayload{BackendURL: st.BackendURL}, logger)
}

// PutBackend saves the backend URL. A blank value restores the default.
func (h *SettingsHandler) PutBackend(w http.ResponseWriter, r *http.Request) {
	logger := loggerFromContext(r, h.logger)
	var in backendPayload
	if err := decodeBody(w, r, &in); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error(), logger)
		return
	}
	saved, err := h.svc.SetBackendURL(r.Context(), in.BackendURL)
	if err != nil {
		h.writeSettingsError(w, r, err, logger)
		return
	}
	writeJSON(w, http.StatusOK, backendPayload{BackendURL: saved}, logger)
}

// ListClubs returns the followed clubs, seeding the defaults on first use.
func (h *SettingsHandler) ListClubs(w http.ResponseWriter, r *http.Request) {
	logger := loggerFromContext(r, h.logger)
	st, err := h.svc.EnsureClubs(r.Context())
	if err != nil {
		h.writeSettingsError(w, r, err, logger)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]clubs.Club{"clubs": st.Clubs}, logger)
}

// AddClub appends a club. Aliases are a comma separated string.
func (h *SettingsHandler) AddClub(w http.ResponseWriter, r *http.Request) {
	logger := loggerFromContext(r, h.logger)
	var in clubPayload
	if err := decodeBody(w, r, &in); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error(), logger)
		return
	}
	club, err := h.svc.AddClub(r.Context(), settings.ClubInput{
		Name:      in.Name,
		Primary:   in.Primary,
		Secondary: in.Secondary,
		Aliases:   in.Aliases,
	})
	if err != nil {
		h.writeSettingsError(w, r, err, logger)
		return
	}
	writeJSON(w, http.StatusCreated, club, logger)
}

// UpdateClub edits one field of the club at {index}.
func (h *SettingsHandler) UpdateClub(w http.ResponseWriter, r *http.Request) {
	logger := loggerFromContext(r, h.logger)
	index, ok := clubIndex(w, r, logger)
	if !ok {
		return
	}
	var in clubEditPayload
	if err := decodeBody(w, r, &in); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error(), logger)
		return
	}
	club, err := h.svc.UpdateClub(r.Context(), index, in.Field, in.Value)
	if err != nil {
		h.writeSettingsError(w, r, err, logger)
		return
	}
	writeJSON(w, http.StatusOK, club, logger)
}

// DeleteClub removes the club at {index}.
func (h *SettingsHandler) DeleteClub(w http.ResponseWriter, r *http.Request) {
	logger := loggerFromContext(r, h.logger)
	index, ok := clubIndex(w, r, logger)
	if !ok {
		return
	}
	club, err := h.svc.DeleteClub(r.Context(), index)
	if err != nil {
		h.writeSettingsError(w, r, err, logger)
		return
	}
	writeJSON(w, http.StatusOK, club, logger)
}

func (h *SettingsHandler) writeSettingsError(w http.ResponseWriter, r *http.Request, err error, logger *slog.Logger) {
	switch {
	case errors.Is(err, settings.ErrClubIndex):
		writeError(w, r, http.StatusNotFound, err.Error(), logger)
	case errors.Is(err, settings.ErrClubName), errors.Is(err, settings.ErrClubField):
		writeError(w, r, http.StatusBadRequest, err.Error(), logger)
	default:
		if logger != nil {
			logger.Error("settings update failed", "err", err)
		}
		writeError(w, r, http.StatusInternalServerError, "failed to update settings", logger)
	}
}

func clubIndex(w http.ResponseWriter, r *http.Request, logger *slog.Logger) (int, bool) {
	raw := mux.Vars(r)["index"]
	index, err := strconv.Atoi(raw)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, fmt.Sprintf("invalid club index %q", raw), logger)
		return 0, false
	}
	return index, true
}

func decodeBody(w http.ResponseWriter, r *http.Request, dest any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dest); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}
