package teststubs

import (
	"context"
	"sync"
	"sync/atomic"

	"esports-schedule/internal/domain/schedule"
	"esports-schedule/internal/snapshots"
)

// StubProvider is a test double for providers.MatchProvider.
type StubProvider struct {
	Matches map[string][]schedule.Match // keyed by game
	Err     error
	Calls   atomic.Int32
	Notify  chan struct{}
}

// FetchMatches returns the configured matches for game while tracking calls.
func (s *StubProvider) FetchMatches(ctx context.Context, game, club string) ([]schedule.Match, error) {
	_ = ctx
	_ = club
	if s.Notify != nil {
		select {
		case <-s.Notify:
		default:
			close(s.Notify)
		}
	}
	s.Calls.Add(1)
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Matches[game], nil
}

// StubScheduleProvider is a test double for providers.ScheduleProvider.
type StubScheduleProvider struct {
	Schedule schedule.Schedule
	Err      error
	Calls    atomic.Int32
	// Block, when set, holds FetchSchedule until it is closed or ctx ends.
	Block chan struct{}
}

// FetchSchedule returns the configured schedule and error.
func (s *StubScheduleProvider) FetchSchedule(ctx context.Context) (schedule.Schedule, error) {
	s.Calls.Add(1)
	if s.Block != nil {
		select {
		case <-s.Block:
		case <-ctx.Done():
			return schedule.Schedule{}, ctx.Err()
		}
	}
	if s.Err != nil {
		return schedule.Schedule{}, s.Err
	}
	return s.Schedule, nil
}

// StubScheduleWriter is a test double for the schedule writer used by the fetcher.
type StubScheduleWriter struct {
	mu        sync.Mutex
	Written   []schedule.Schedule
	Manifests []snapshots.Manifest
	Err       error
}

// WriteSchedule records the schedule for verification in tests.
func (w *StubScheduleWriter) WriteSchedule(s schedule.Schedule) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.Err != nil {
		return w.Err
	}
	w.Written = append(w.Written, s)
	return nil
}

// WriteManifest records the manifest for verification in tests.
func (w *StubScheduleWriter) WriteManifest(m snapshots.Manifest) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.Err != nil {
		return w.Err
	}
	w.Manifests = append(w.Manifests, m)
	return nil
}

// Last returns the most recent schedule written, if any.
func (w *StubScheduleWriter) Last() (schedule.Schedule, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if len(w.Written) == 0 {
		return schedule.Schedule{}, false
	}
	return w.Written[len(w.Written)-1], true
}
