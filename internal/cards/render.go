package cards

import (
	"sort"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"esports-schedule/internal/domain/clubs"
	"esports-schedule/internal/domain/schedule"
	"esports-schedule/internal/matcher"
	"esports-schedule/internal/timeutil"
)

// FilterAll disables the game filter.
const FilterAll = "ALL"

const metaSeparator = " • "

// Options tune presentation details that are not part of the matching rules.
type Options struct {
	Matcher  matcher.Matcher
	Location *time.Location
}

// Render turns a schedule into a view. Matches are filtered by game, restricted to followed
// clubs when any are configured, deduplicated, then styled in input order.
func Render(s schedule.Schedule, gameFilter string, list []clubs.Club, opts Options) View {
	s = s.Normalize()
	view := View{
		State:  StateReady,
		Header: header(s, opts.Location),
		Cards:  []Card{},
	}

	items := make([]schedule.Match, 0, len(s.Matches))
	for _, m := range s.Matches {
		if !gameMatches(m.Game, gameFilter) {
			continue
		}
		if len(list) > 0 && len(opts.Matcher.Involved(m, list)) == 0 {
			continue
		}
		items = append(items, m)
	}
	items = schedule.Dedupe(items)

	if len(items) == 0 {
		view.State = StateEmpty
		view.Message = EmptyMessage
		return view
	}

	for _, m := range items {
		view.Cards = append(view.Cards, buildCard(m, opts.Matcher.Involved(m, list), opts.Location))
	}
	return view
}

func buildCard(m schedule.Match, involved []matcher.Involvement, loc *time.Location) Card {
	style := StyleFor(involved)
	team := orDefault(m.Team, PlaceholderTeam)
	opponent := orDefault(m.Opponent, PlaceholderOpponent)

	card := Card{
		ID:            m.ID,
		Style:         style,
		Badge:         m.Game,
		BadgePosition: BadgeAfter,
		Meta:          MetaLine(m),
		When:          timeutil.FormatDisplay(m.StartTimeUTC, loc, PlaceholderTime),
		Streams:       FlattenStreams(m.Streams),
		Clubs:         make([]string, 0, len(involved)),
	}
	for _, inv := range involved {
		card.Clubs = append(card.Clubs, inv.Club.Name)
	}

	if style.Mode == ModeSplit {
		card.Left = team
		card.Right = opponent
		card.BadgePosition = BadgeAbove
	} else {
		card.Left = team + " vs " + opponent
	}
	return card
}

// MetaLine joins tournament, stage and best-of, skipping empty parts.
func MetaLine(m schedule.Match) string {
	parts := make([]string, 0, 3)
	for _, p := range []string{m.Tournament, m.Stage, m.BestOf} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, metaSeparator)
}

// FlattenStreams lists every stream URL as a link. Twitch comes first, then YouTube,
// then any other platform alphabetically.
func FlattenStreams(streams schedule.Streams) []Link {
	links := make([]Link, 0)
	for _, platform := range platformOrder(streams) {
		for _, u := range streams[platform] {
			if u = strings.TrimSpace(u); u == "" {
				continue
			}
			links = append(links, Link{Platform: platform, Label: platformLabel(platform), URL: u})
		}
	}
	return links
}

func platformOrder(streams schedule.Streams) []string {
	var rest []string
	for p := range streams {
		if p != schedule.PlatformTwitch && p != schedule.PlatformYouTube {
			rest = append(rest, p)
		}
	}
	sort.Strings(rest)
	return append([]string{schedule.PlatformTwitch, schedule.PlatformYouTube}, rest...)
}

func platformLabel(platform string) string {
	switch platform {
	case schedule.PlatformTwitch:
		return "Twitch"
	case schedule.PlatformYouTube:
		return "YouTube"
	case "":
		return "Stream"
	default:
		r, size := utf8.DecodeRuneInString(platform)
		return string(unicode.ToUpper(r)) + platform[size:]
	}
}

// gameMatches compares the game tag exactly; the fetcher writes tags upper-cased
// (VALORANT, LEAGUE_OF_LEGENDS).
func gameMatches(game, filter string) bool {
	filter = strings.TrimSpace(filter)
	if filter == "" || filter == FilterAll {
		return true
	}
	return game == filter
}

func header(s schedule.Schedule, loc *time.Location) string {
	updated := timeutil.FormatDisplay(s.UpdatedAt, loc, "")
	if s.Club == "" && updated == "" {
		return ""
	}
	return s.Club + metaSeparator + "updated " + updated
}
