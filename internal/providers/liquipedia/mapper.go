package liquipedia

import (
	"encoding/json"
	"strconv"
	"strings"

	"esports-schedule/internal/domain/clubs"
	"esports-schedule/internal/domain/schedule"
	"esports-schedule/internal/timeutil"
)

const (
	siteName       = "Liquipedia"
	siteBaseURL    = "https://liquipedia.net/"
	unknownMatchID = "unknown"
)

// Normalize maps an upstream payload to matches for club. LPDB answers carry a
// result, results or matches list; MediaWiki cargo answers carry cargoquery rows;
// a bare list is read as LPDB items. Anything else yields no matches.
func Normalize(game string, payload any, club string) []schedule.Match {
	switch p := payload.(type) {
	case map[string]any:
		for _, key := range []string{"result", "results", "matches"} {
			if items, ok := p[key].([]any); ok && len(items) > 0 {
				return mapItems(items, func(raw map[string]any) schedule.Match { return mapLPDBMatch(game, raw, club) })
			}
		}
		if rows, ok := p["cargoquery"].([]any); ok {
			return mapItems(rows, func(raw map[string]any) schedule.Match { return mapCargoRow(game, raw, club) })
		}
	case []any:
		return mapItems(p, func(raw map[string]any) schedule.Match { return mapLPDBMatch(game, raw, club) })
	}
	return []schedule.Match{}
}

func mapItems(items []any, fn func(map[string]any) schedule.Match) []schedule.Match {
	out := make([]schedule.Match, 0, len(items))
	for _, it := range items {
		raw, ok := it.(map[string]any)
		if !ok {
			continue
		}
		out = append(out, fn(raw))
	}
	return out
}

func mapLPDBMatch(game string, raw map[string]any, club string) schedule.Match {
	id := firstString(raw, []any{"id"}, []any{"slug"}, []any{"match_id"}, []any{"pagename"})
	if id == "" {
		id = unknownMatchID
	}
	start, _ := timeutil.NormalizeUTC(firstString(raw,
		[]any{"m.utcStartTime"}, []any{"utcStartTime"}, []any{"date"},
		[]any{"MS.DateTime_UTC"}, []any{"DateTime_UTC"},
	))

	m := schedule.Match{
		ID:           game + "-" + id,
		Game:         strings.ToUpper(game),
		Tournament:   firstString(raw, []any{"tournament", "name"}, []any{"event", "name"}, []any{"tournament"}, []any{"event"}),
		Stage:        firstString(raw, []any{"stage"}, []any{"round"}),
		BestOf:       firstString(raw, []any{"bo"}, []any{"bestof"}, []any{"format"}),
		Team:         club,
		Opponent:     lpdbOpponent(raw, club),
		StartTimeUTC: start,
		Streams:      lpdbStreams(raw),
	}
	m.Sources = []schedule.Source{{Site: siteName, URL: firstString(raw, []any{"url"}, []any{"match_page"}, []any{"page"})}}
	return m
}

// lpdbOpponent prefers the first entry of an opponents list that is not the club, then
// falls back to the flat opponent fields.
func lpdbOpponent(raw map[string]any, club string) string {
	for _, key := range []string{"opponents", "match2opponents"} {
		list, _ := raw[key].([]any)
		for _, entry := range list {
			name := firstString(entry, []any{"name"})
			if name != "" && clubs.Normalize(name) != clubs.Normalize(club) {
				return name
			}
		}
	}
	return firstString(raw, []any{"opponent"}, []any{"opponent", "name"}, []any{"team2"}, []any{"blue"}, []any{"red"})
}

func lpdbStreams(raw map[string]any) schedule.Streams {
	var urls []string
	if structured, ok := raw["streams"].(map[string]any); ok {
		for _, platform := range []string{schedule.PlatformTwitch, schedule.PlatformYouTube} {
			urls = append(urls, stringList(structured[platform])...)
		}
	}
	switch links := raw["links"].(type) {
	case []any:
		urls = append(urls, stringList(links)...)
	case map[string]any:
		for _, v := range links {
			urls = append(urls, stringList(v)...)
		}
	}
	if single, ok := raw["stream"].(string); ok {
		urls = append(urls, single)
	}
	return classifyStreams(urls)
}

func mapCargoRow(game string, row map[string]any, club string) schedule.Match {
	title, _ := row["title"].(map[string]any)
	get := func(fields ...string) string {
		for _, f := range fields {
			if v, ok := row[f]; ok {
				if s := toString(v); s != "" {
					return s
				}
				continue
			}
			if title != nil {
				if s := toString(title[f]); s != "" {
					return s
				}
			}
		}
		return ""
	}

	pagename := get("m.pagename", "pagename")
	start, _ := timeutil.NormalizeUTC(get("m.utcStartTime", "utcStartTime"))
	opp1 := get("m.opponent1", "opponent1")
	opp2 := get("m.opponent2", "opponent2")

	opponent := opp2
	if opp1 != club && (opp2 == club || opp2 == "") {
		opponent = opp1
	}

	id := pagename
	if id == "" {
		id = unknownMatchID
	}
	source := schedule.Source{Site: siteName}
	if pagename != "" {
		source.URL = siteBaseURL + pagename
	}

	return schedule.Match{
		ID:           game + "-" + id,
		Game:         strings.ToUpper(game),
		Tournament:   get("m.tournament", "tournament"),
		BestOf:       get("m.bestof", "bestof"),
		Team:         club,
		Opponent:     opponent,
		StartTimeUTC: start,
		Streams:      classifyStreams(strings.Fields(strings.ReplaceAll(get("m.stream", "stream"), ",", " "))),
		Sources:      []schedule.Source{source},
	}
}

// classifyStreams sorts URLs into twitch and youtube lists, dropping duplicates and
// anything else.
func classifyStreams(urls []string) schedule.Streams {
	out := schedule.Streams{
		schedule.PlatformTwitch:  []string{},
		schedule.PlatformYouTube: []string{},
	}
	seen := make(map[string]struct{}, len(urls))
	for _, u := range urls {
		u = strings.TrimSpace(u)
		if u == "" {
			continue
		}
		var platform string
		switch {
		case strings.Contains(u, "twitch.tv"):
			platform = schedule.PlatformTwitch
		case strings.Contains(u, "youtube.com"), strings.Contains(u, "youtu.be"):
			platform = schedule.PlatformYouTube
		default:
			continue
		}
		key := platform + "|" + u
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out[platform] = append(out[platform], u)
	}
	return out
}

// firstString walks each path (string keys and int indexes) and returns the first
// non-empty scalar found.
func firstString(v any, paths ...[]any) string {
	for _, path := range paths {
		if s := toString(lookup(v, path)); s != "" {
			return s
		}
	}
	return ""
}

func lookup(v any, path []any) any {
	cur := v
	for _, step := range path {
		switch key := step.(type) {
		case string:
			m, ok := cur.(map[string]any)
			if !ok {
				return nil
			}
			cur = m[key]
		case int:
			list, ok := cur.([]any)
			if !ok || key < 0 || key >= len(list) {
				return nil
			}
			cur = list[key]
		default:
			return nil
		}
		if cur == nil {
			return nil
		}
	}
	return cur
}

func toString(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case json.Number:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	default:
		return ""
	}
}

func stringList(v any) []string {
	switch t := v.(type) {
	case string:
		return []string{t}
	case []any:
		out := make([]string, 0, len(t))
		for _, item := range t {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}
