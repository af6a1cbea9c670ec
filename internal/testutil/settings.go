package testutil

import (
	"esports-schedule/internal/domain/clubs"
	"esports-schedule/internal/settings"
)

// NewSettingsService builds a settings service over an in-memory store preloaded with list.
func NewSettingsService(backendURL string, list []clubs.Club) (*settings.Service, *settings.MemoryStore) {
	store := settings.NewMemoryStore(settings.Settings{BackendURL: backendURL, Clubs: list})
	return settings.NewService(store, nil), store
}
