package settings

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"esports-schedule/internal/domain/clubs"
	"esports-schedule/internal/logging"
)

// Club fields accepted by UpdateClub.
const (
	FieldName      = "name"
	FieldPrimary   = "primary"
	FieldSecondary = "secondary"
	FieldAliases   = "aliases"
)

// ClubInput is the raw form of a new club as typed by a user. Aliases is comma separated.
type ClubInput struct {
	Name      string
	Primary   string
	Secondary string
	Aliases   string
}

// Service applies defaults on read and implements the club editing operations.
// Every edit is persisted before it returns.
type Service struct {
	store  Store
	logger *slog.Logger
	mu     sync.Mutex
}

// NewService constructs a Service over store.
func NewService(store Store, logger *slog.Logger) *Service {
	return &Service{store: store, logger: logger}
}

// Get returns the stored settings with defaults applied. It never writes.
func (s *Service) Get(ctx context.Context) (Settings, error) {
	stored, err := s.store.Load(ctx)
	if err != nil {
		return Settings{}, err
	}
	return WithDefaults(stored), nil
}

// Set replaces both keys.
func (s *Service) Set(ctx context.Context, settings Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Save(ctx, settings)
}

// EnsureClubs seeds the default club list the first time clubs are found empty or absent
// and writes it back so later reads are stable.
func (s *Service) EnsureClubs(ctx context.Context) (Settings, error) {
	var seeded bool
	out, err := s.update(ctx, func(st *Settings) error {
		if len(st.Clubs) == 0 {
			st.Clubs = clubs.Defaults()
			seeded = true
		}
		return nil
	})
	if err != nil {
		return Settings{}, err
	}
	if seeded {
		logging.Info(s.logger, "seeded default clubs", logging.FieldCount, len(out.Clubs))
	}
	return WithDefaults(out), nil
}

// SetBackendURL saves the trimmed URL, or the default when blank. Clubs are untouched.
func (s *Service) SetBackendURL(ctx context.Context, raw string) (string, error) {
	url := strings.TrimSpace(raw)
	if url == "" {
		url = DefaultBackendURL
	}
	_, err := s.update(ctx, func(st *Settings) error {
		st.BackendURL = url
		return nil
	})
	return url, err
}

// AddClub appends a club built from in. Colors default when blank.
func (s *Service) AddClub(ctx context.Context, in ClubInput) (clubs.Club, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return clubs.Club{}, ErrClubName
	}
	club := clubs.Club{
		Name:      name,
		Primary:   orDefault(strings.TrimSpace(in.Primary), clubs.DefaultPrimary),
		Secondary: orDefault(strings.TrimSpace(in.Secondary), clubs.DefaultSecondary),
		Aliases:   clubs.ParseAliases(in.Aliases),
	}
	_, err := s.update(ctx, func(st *Settings) error {
		st.Clubs = append(st.Clubs, club)
		return nil
	})
	if err != nil {
		return clubs.Club{}, err
	}
	logging.Info(s.logger, "club added", logging.FieldClub, club.Name)
	return club, nil
}

// UpdateClub sets one field of the club at index. Aliases are re-split on commas.
func (s *Service) UpdateClub(ctx context.Context, index int, field, value string) (clubs.Club, error) {
	var updated clubs.Club
	_, err := s.update(ctx, func(st *Settings) error {
		if index < 0 || index >= len(st.Clubs) {
			return fmt.Errorf("%w: %d", ErrClubIndex, index)
		}
		c := &st.Clubs[index]
		switch strings.ToLower(field) {
		case FieldName:
			c.Name = value
		case FieldPrimary:
			c.Primary = value
		case FieldSecondary:
			c.Secondary = value
		case FieldAliases:
			c.Aliases = clubs.ParseAliases(value)
		default:
			return fmt.Errorf("%w: %q", ErrClubField, field)
		}
		updated = *c
		return nil
	})
	return updated, err
}

// DeleteClub removes the club at index.
func (s *Service) DeleteClub(ctx context.Context, index int) (clubs.Club, error) {
	var removed clubs.Club
	_, err := s.update(ctx, func(st *Settings) error {
		if index < 0 || index >= len(st.Clubs) {
			return fmt.Errorf("%w: %d", ErrClubIndex, index)
		}
		removed = st.Clubs[index]
		st.Clubs = append(st.Clubs[:index], st.Clubs[index+1:]...)
		return nil
	})
	if err != nil {
		return clubs.Club{}, err
	}
	logging.Info(s.logger, "club removed", logging.FieldClub, removed.Name)
	return removed, nil
}

// update runs a read-modify-write cycle against the store.
func (s *Service) update(ctx context.Context, fn func(*Settings) error) (Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.store.Load(ctx)
	if err != nil {
		return Settings{}, err
	}
	if err := fn(&st); err != nil {
		return Settings{}, err
	}
	if err := s.store.Save(ctx, st); err != nil {
		return Settings{}, err
	}
	return st, nil
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
