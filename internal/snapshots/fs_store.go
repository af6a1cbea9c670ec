package snapshots

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"esports-schedule/internal/domain/schedule"
)

// ErrNotGenerated is returned when no schedule file exists yet.
var ErrNotGenerated = errors.New("schedule not generated yet")

// Store defines how the generated schedule is loaded.
type Store interface {
	LoadSchedule(ctx context.Context) (schedule.Schedule, error)
}

// FSStore loads the schedule from the filesystem.
type FSStore struct {
	path string
}

// NewFSStore constructs an FS-backed store reading the schedule file at path.
func NewFSStore(path string) *FSStore {
	return &FSStore{path: path}
}

// LoadSchedule reads and normalizes the schedule file.
func (s *FSStore) LoadSchedule(ctx context.Context) (schedule.Schedule, error) {
	if s == nil || s.path == "" {
		return schedule.Schedule{}, errors.New("schedule store not configured")
	}
	if err := ctx.Err(); err != nil {
		return schedule.Schedule{}, err
	}
	var payload schedule.Schedule
	if err := decodeFile(s.path, &payload); err != nil {
		return schedule.Schedule{}, err
	}
	return payload.Normalize(), nil
}

// FetchSchedule lets the store stand in wherever a schedule provider is expected.
func (s *FSStore) FetchSchedule(ctx context.Context) (schedule.Schedule, error) {
	return s.LoadSchedule(ctx)
}

// LoadManifest reads the manifest written alongside the schedule.
func (s *FSStore) LoadManifest() (Manifest, error) {
	if s == nil || s.path == "" {
		return Manifest{}, errors.New("schedule store not configured")
	}
	m, err := readManifest(ManifestPath(s.path))
	if errors.Is(err, os.ErrNotExist) {
		return Manifest{}, ErrNotGenerated
	}
	return m, err
}

func decodeFile(path string, payload any) error {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return ErrNotGenerated
	}
	if err != nil {
		return err
	}
	defer f.Close()
	if err := json.NewDecoder(f).Decode(payload); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}
