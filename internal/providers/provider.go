package providers

import (
	"context"

	"esports-schedule/internal/domain/schedule"
)

// MatchProvider fetches upcoming matches of one club for one game slug.
type MatchProvider interface {
	FetchMatches(ctx context.Context, game, club string) ([]schedule.Match, error)
}

// ScheduleProvider fetches a generated schedule document.
type ScheduleProvider interface {
	FetchSchedule(ctx context.Context) (schedule.Schedule, error)
}
