package schedule

import (
	"strings"

	"esports-schedule/internal/domain/clubs"
)

const (
	pairSeparator  = "|"
	fieldSeparator = "#"
)

// CanonicalKey returns an order-independent fingerprint of a match. Two entries that
// describe the same fixture with team and opponent swapped share a key.
func CanonicalKey(m Match) string {
	t1 := clubs.Normalize(m.Team)
	t2 := clubs.Normalize(m.Opponent)
	if t2 < t1 {
		t1, t2 = t2, t1
	}
	return strings.Join([]string{
		t1 + pairSeparator + t2,
		clubs.Normalize(m.Tournament),
		clubs.Normalize(m.StartTimeUTC),
		clubs.Normalize(m.Game),
	}, fieldSeparator)
}

// Dedupe drops mirrored fixtures, keeping the first occurrence of each canonical key in input order.
func Dedupe(matches []Match) []Match {
	seen := make(map[string]struct{}, len(matches))
	out := make([]Match, 0, len(matches))
	for _, m := range matches {
		key := CanonicalKey(m)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, m)
	}
	return out
}
