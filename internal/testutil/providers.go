package testutil

import (
	"context"

	"esports-schedule/internal/domain/schedule"
	"esports-schedule/internal/providers"
)

// GoodProvider returns the provided matches with no error.
type GoodProvider struct {
	Matches []schedule.Match
}

func (p GoodProvider) FetchMatches(ctx context.Context, game, club string) ([]schedule.Match, error) {
	_ = ctx
	_ = game
	_ = club
	return p.Matches, nil
}

// ErrProvider always returns the provided error.
type ErrProvider struct {
	Err error
}

func (p ErrProvider) FetchMatches(ctx context.Context, game, club string) ([]schedule.Match, error) {
	return nil, p.Err
}

func (p ErrProvider) FetchSchedule(ctx context.Context) (schedule.Schedule, error) {
	return schedule.Schedule{}, p.Err
}

// EmptyProvider returns no matches, no error.
type EmptyProvider struct{}

func (EmptyProvider) FetchMatches(ctx context.Context, game, club string) ([]schedule.Match, error) {
	return []schedule.Match{}, nil
}

// UnavailableProvider returns ErrProviderUnavailable.
type UnavailableProvider struct{}

func (UnavailableProvider) FetchMatches(ctx context.Context, game, club string) ([]schedule.Match, error) {
	return nil, providers.ErrProviderUnavailable
}

// StaticScheduleProvider always returns the same schedule.
type StaticScheduleProvider struct {
	Schedule schedule.Schedule
}

func (p StaticScheduleProvider) FetchSchedule(ctx context.Context) (schedule.Schedule, error) {
	_ = ctx
	return p.Schedule, nil
}

// NotifyingProvider signals on Notify after each fetch.
type NotifyingProvider struct {
	Matches []schedule.Match
	Notify  chan struct{}
}

func (p *NotifyingProvider) FetchMatches(ctx context.Context, game, club string) ([]schedule.Match, error) {
	_ = ctx
	_ = game
	_ = club
	if p.Notify != nil {
		select {
		case p.Notify <- struct{}{}:
		default:
		}
	}
	return p.Matches, nil
}
