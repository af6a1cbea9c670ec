package timeutil

import (
	"strings"
	"time"
)

// DisplayLayout is how kickoff and update times are shown to users.
const DisplayLayout = "Mon 02 Jan 2006 15:04 MST"

// Offset-less layouts seen upstream. They are read as UTC.
var naiveLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// ParseTimestamp parses an ISO 8601 timestamp ("...Z" or with an explicit offset).
func ParseTimestamp(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	t, err := time.Parse(time.RFC3339Nano, value)
	if err == nil {
		return t, nil
	}
	for _, layout := range naiveLayouts {
		if naive, nerr := time.ParseInLocation(layout, value, time.UTC); nerr == nil {
			return naive, nil
		}
	}
	return time.Time{}, err
}

// FormatUTC formats t as an RFC 3339 UTC timestamp ending in "Z".
func FormatUTC(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// NormalizeUTC rewrites a timestamp as RFC 3339 UTC. ok is false when value cannot be parsed.
func NormalizeUTC(value string) (string, bool) {
	if strings.TrimSpace(value) == "" {
		return "", false
	}
	t, err := ParseTimestamp(value)
	if err != nil {
		return "", false
	}
	return FormatUTC(t), true
}

// FormatDisplay renders value in loc using DisplayLayout. Empty input yields placeholder;
// unparsable input is returned unchanged.
func FormatDisplay(value string, loc *time.Location, placeholder string) string {
	if strings.TrimSpace(value) == "" {
		return placeholder
	}
	t, err := ParseTimestamp(value)
	if err != nil {
		return value
	}
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format(DisplayLayout)
}

// ResolveLocation loads the named location, falling back to UTC.
func ResolveLocation(name string) *time.Location {
	if name == "" {
		return time.UTC
	}
	if loc, err := time.LoadLocation(name); err == nil {
		return loc
	}
	return time.UTC
}
