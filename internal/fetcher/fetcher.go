package fetcher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"esports-schedule/internal/domain/schedule"
	"esports-schedule/internal/logging"
	"esports-schedule/internal/metrics"
	"esports-schedule/internal/providers"
	"esports-schedule/internal/snapshots"
	"esports-schedule/internal/timeutil"
)

// missingStartSortKey sorts matches without a start time after every dated match.
const missingStartSortKey = "9999-12-31T00:00:00Z"

// ErrAllGamesFailed is returned when no configured game could be fetched. Nothing is written.
var ErrAllGamesFailed = errors.New("every game fetch failed")

// Writer persists a generated schedule and its manifest.
type Writer interface {
	WriteSchedule(s schedule.Schedule) error
	WriteManifest(m snapshots.Manifest) error
}

// Config selects the club and games to generate a schedule for.
type Config struct {
	Club    string
	Aliases []string
	Games   []string
}

// Fetcher queries a match provider per game and writes the merged upcoming schedule.
type Fetcher struct {
	provider providers.MatchProvider
	writer   Writer
	cfg      Config
	logger   *slog.Logger
	metrics  *metrics.Recorder
	now      func() time.Time
}

// New constructs a Fetcher.
func New(provider providers.MatchProvider, writer Writer, cfg Config, logger *slog.Logger, recorder *metrics.Recorder) *Fetcher {
	return &Fetcher{
		provider: provider,
		writer:   writer,
		cfg:      cfg,
		logger:   logger,
		metrics:  recorder,
		now:      time.Now,
	}
}

// Run generates the schedule and writes it along with a manifest.
func (f *Fetcher) Run(ctx context.Context) (schedule.Schedule, error) {
	s, manifest, err := f.Generate(ctx)
	if err != nil {
		return schedule.Schedule{}, err
	}
	if f.writer == nil {
		return s, nil
	}
	if err := f.writer.WriteSchedule(s); err != nil {
		return schedule.Schedule{}, fmt.Errorf("write schedule: %w", err)
	}
	if err := f.writer.WriteManifest(manifest); err != nil {
		logging.Warn(f.logger, "manifest write failed", "err", err)
	}
	logging.Info(f.logger, "schedule written",
		logging.FieldClub, s.Club,
		logging.FieldCount, len(s.Matches),
	)
	return s, nil
}

// Generate fetches every configured game. A failing game is logged and skipped; the
// run fails only when every game failed.
func (f *Fetcher) Generate(ctx context.Context) (schedule.Schedule, snapshots.Manifest, error) {
	now := f.now().UTC()
	manifest := snapshots.Manifest{Club: f.cfg.Club, GeneratedAt: now, Games: []snapshots.GameMeta{}}
	all := make([]schedule.Match, 0)
	failures := 0

	for _, game := range f.cfg.Games {
		if err := ctx.Err(); err != nil {
			return schedule.Schedule{}, manifest, err
		}
		logging.Info(f.logger, "fetching game", logging.FieldGame, game, logging.FieldClub, f.cfg.Club)

		matches, err := f.provider.FetchMatches(ctx, game, f.cfg.Club)
		f.metrics.RecordGeneration(game, len(matches), err)
		if err != nil {
			failures++
			logging.Warn(f.logger, "game fetch failed", logging.FieldGame, game, "err", err)
			manifest.Games = append(manifest.Games, snapshots.GameMeta{Game: game, Error: err.Error()})
			continue
		}

		matches = FilterByAliases(matches, f.aliases())
		fetched := len(matches)
		matches = FilterUpcoming(matches, now)
		logging.Info(f.logger, "game fetched",
			logging.FieldGame, game,
			logging.FieldCount, len(matches),
			"before_date_filter", fetched,
		)
		manifest.Games = append(manifest.Games, snapshots.GameMeta{Game: game, Matches: len(matches)})
		all = append(all, matches...)
	}

	if len(f.cfg.Games) > 0 && failures == len(f.cfg.Games) {
		return schedule.Schedule{}, manifest, ErrAllGamesFailed
	}

	SortByStart(all)
	manifest.Total = len(all)
	return schedule.NewSchedule(f.cfg.Club, timeutil.FormatUTC(now), all), manifest, nil
}

func (f *Fetcher) aliases() []string {
	out := make([]string, 0, len(f.cfg.Aliases)+1)
	for _, a := range append([]string{f.cfg.Club}, f.cfg.Aliases...) {
		if a = strings.TrimSpace(a); a != "" {
			out = append(out, a)
		}
	}
	return out
}

// FilterByAliases keeps matches whose sides mention any alias. When nothing matches the
// input is returned unchanged.
func FilterByAliases(matches []schedule.Match, aliases []string) []schedule.Match {
	if len(aliases) == 0 {
		return matches
	}
	kept := make([]schedule.Match, 0, len(matches))
	for _, m := range matches {
		sides := strings.ToLower(strings.TrimSpace(m.Opponent) + " " + strings.TrimSpace(m.Team))
		for _, a := range aliases {
			if strings.Contains(sides, strings.ToLower(a)) {
				kept = append(kept, m)
				break
			}
		}
	}
	if len(kept) == 0 {
		return matches
	}
	return kept
}

// FilterUpcoming drops matches that started before now. Missing or unparsable start
// times count as upcoming.
func FilterUpcoming(matches []schedule.Match, now time.Time) []schedule.Match {
	kept := make([]schedule.Match, 0, len(matches))
	for _, m := range matches {
		if m.StartTimeUTC != "" {
			if t, err := timeutil.ParseTimestamp(m.StartTimeUTC); err == nil && t.Before(now) {
				continue
			}
		}
		kept = append(kept, m)
	}
	return kept
}

// SortByStart orders matches by start time, missing times last. Ties keep input order.
func SortByStart(matches []schedule.Match) {
	key := func(m schedule.Match) string {
		if m.StartTimeUTC == "" {
			return missingStartSortKey
		}
		return m.StartTimeUTC
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return key(matches[i]) < key(matches[j])
	})
}
