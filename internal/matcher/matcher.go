package matcher

import (
	"strings"
	"unicode/utf8"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"esports-schedule/internal/domain/clubs"
	"esports-schedule/internal/domain/schedule"
)

// Side identifies which half of a fixture a club was resolved from.
type Side string

const (
	SideTeam     Side = "team"
	SideOpponent Side = "opponent"
)

// Involvement is a followed club found on one side of a match.
type Involvement struct {
	Club clubs.Club
	Side Side
}

// Matcher resolves free-text team names to followed clubs.
// The zero value applies the exact and substring rules only.
type Matcher struct {
	// FuzzyThreshold enables a Levenshtein similarity tier after the substring rules
	// when set to a value in (0, 1]. Zero disables it.
	FuzzyThreshold float64
}

// New returns a Matcher with the given typo-tolerance threshold.
func New(fuzzyThreshold float64) Matcher {
	if fuzzyThreshold < 0 || fuzzyThreshold > 1 {
		fuzzyThreshold = 0
	}
	return Matcher{FuzzyThreshold: fuzzyThreshold}
}

// MatchClub resolves name against list using the default rules.
func MatchClub(name string, list []clubs.Club) (clubs.Club, bool) {
	return Matcher{}.Match(name, list)
}

// InvolvedClubs resolves both sides of m using the default rules.
func InvolvedClubs(m schedule.Match, list []clubs.Club) []Involvement {
	return Matcher{}.Involved(m, list)
}

type candidate struct {
	club    clubs.Club
	name    string
	aliases []string
}

func prepare(list []clubs.Club) []candidate {
	out := make([]candidate, len(list))
	for i, c := range list {
		aliases := make([]string, 0, len(c.Aliases))
		for _, a := range c.Aliases {
			aliases = append(aliases, clubs.Normalize(a))
		}
		out[i] = candidate{club: c, name: clubs.Normalize(c.Name), aliases: aliases}
	}
	return out
}

// Match returns the first club matching name. An exact name or alias hit anywhere in the
// list wins over any substring hit; substring rules then run club by club in list order.
// Empty names never match.
func (mt Matcher) Match(name string, list []clubs.Club) (clubs.Club, bool) {
	n := clubs.Normalize(name)
	if n == "" || len(list) == 0 {
		return clubs.Club{}, false
	}
	cands := prepare(list)

	for _, c := range cands {
		if n == c.name || contains(c.aliases, n) {
			return c.club, true
		}
	}

	for _, c := range cands {
		if overlaps(n, c.name) {
			return c.club, true
		}
		for _, a := range c.aliases {
			if overlaps(n, a) {
				return c.club, true
			}
		}
	}

	if mt.FuzzyThreshold > 0 {
		return mt.closest(n, cands)
	}
	return clubs.Club{}, false
}

// Involved resolves team and opponent independently. When both sides land on the same
// club only the team side is kept.
func (mt Matcher) Involved(m schedule.Match, list []clubs.Club) []Involvement {
	out := make([]Involvement, 0, 2)
	team, teamOK := mt.Match(m.Team, list)
	opp, oppOK := mt.Match(m.Opponent, list)

	if teamOK {
		out = append(out, Involvement{Club: team, Side: SideTeam})
	}
	if oppOK && !(teamOK && team.SameAs(opp)) {
		out = append(out, Involvement{Club: opp, Side: SideOpponent})
	}
	return out
}

func (mt Matcher) closest(n string, cands []candidate) (clubs.Club, bool) {
	var (
		best      clubs.Club
		bestScore float64
		found     bool
	)
	for _, c := range cands {
		keys := append([]string{c.name}, c.aliases...)
		for _, k := range keys {
			if k == "" {
				continue
			}
			score := similarity(n, k)
			if score >= mt.FuzzyThreshold && score > bestScore {
				best, bestScore, found = c.club, score, true
			}
		}
	}
	return best, found
}

func similarity(a, b string) float64 {
	maxLen := utf8.RuneCountInString(a)
	if l := utf8.RuneCountInString(b); l > maxLen {
		maxLen = l
	}
	if maxLen == 0 {
		return 0
	}
	return 1 - float64(fuzzy.LevenshteinDistance(a, b))/float64(maxLen)
}

// overlaps reports whether either string contains the other; empty strings never overlap.
func overlaps(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	return strings.Contains(a, b) || strings.Contains(b, a)
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
