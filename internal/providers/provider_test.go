package providers

import (
	"context"
	"testing"

	"esports-schedule/internal/domain/schedule"
)

type testProvider struct{}

func (t *testProvider) FetchMatches(ctx context.Context, game, club string) ([]schedule.Match, error) {
	_ = ctx
	_ = game
	_ = club
	return nil, nil
}

func (t *testProvider) FetchSchedule(ctx context.Context) (schedule.Schedule, error) {
	_ = ctx
	return schedule.Schedule{}, nil
}

func TestProviderInterfacesImplemented(t *testing.T) {
	var _ MatchProvider = (*testProvider)(nil)
	var _ ScheduleProvider = (*testProvider)(nil)
}
