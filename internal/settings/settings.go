package settings

import (
	"context"
	"errors"

	"esports-schedule/internal/domain/clubs"
)

// DefaultBackendURL is used when no backend has been saved.
const DefaultBackendURL = "http://localhost:8080"

var (
	// ErrClubIndex is returned when an edit targets a club position that does not exist.
	ErrClubIndex = errors.New("club index out of range")
	// ErrClubName is returned when a club is added without a name.
	ErrClubName = errors.New("club name required")
	// ErrClubField is returned when an edit names an unknown club field.
	ErrClubField = errors.New("unknown club field")
)

// Settings are the persisted user preferences. A nil Clubs slice means the list has never
// been stored; an empty non-nil slice means the user removed every club.
type Settings struct {
	BackendURL string       `json:"backendUrl"`
	Clubs      []clubs.Club `json:"clubs"`
}

// Provider reads settings with defaults applied and writes them back.
type Provider interface {
	Get(ctx context.Context) (Settings, error)
	Set(ctx context.Context, s Settings) error
}

// Store persists raw settings without applying defaults.
type Store interface {
	Load(ctx context.Context) (Settings, error)
	Save(ctx context.Context, s Settings) error
}

// WithDefaults fills values that were never stored.
func WithDefaults(s Settings) Settings {
	if s.BackendURL == "" {
		s.BackendURL = DefaultBackendURL
	}
	if s.Clubs == nil {
		s.Clubs = clubs.Defaults()
	}
	return s
}

func clone(s Settings) Settings {
	s.Clubs = clubs.Clone(s.Clubs)
	return s
}
