package clubs

import "strings"

// Default colors applied when a club is created without explicit colors.
const (
	DefaultPrimary   = "#cccccc"
	DefaultSecondary = "#000000"
)

// Club is a user-followed organization. Name is the display value and the primary match key.
type Club struct {
	Name      string   `json:"name" yaml:"name"`
	Primary   string   `json:"primary" yaml:"primary"`
	Secondary string   `json:"secondary" yaml:"secondary"`
	Aliases   []string `json:"aliases" yaml:"aliases"`
}

// Key returns the normalized club name used for identity comparisons.
func (c Club) Key() string {
	return Normalize(c.Name)
}

// SameAs reports whether both clubs normalize to the same name.
func (c Club) SameAs(other Club) bool {
	return c.Key() == other.Key()
}

// Normalize lowercases and trims a free-text name.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// ParseAliases splits a comma separated alias list, trimming entries and dropping blanks.
func ParseAliases(raw string) []string {
	parts := strings.Split(raw, ",")
	aliases := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			aliases = append(aliases, p)
		}
	}
	return aliases
}

// Defaults returns the seeded club list used when nothing has been persisted yet.
// A fresh slice is returned on every call so callers may mutate it.
func Defaults() []Club {
	return []Club{
		{
			Name:      "Team Vitality",
			Primary:   "#F8D000",
			Secondary: "#1A1A1A",
			Aliases:   []string{"Vitality", "Team_Vitality"},
		},
	}
}

// Clone returns a deep copy of the list.
func Clone(list []Club) []Club {
	if list == nil {
		return nil
	}
	out := make([]Club, len(list))
	for i, c := range list {
		out[i] = c
		if c.Aliases != nil {
			out[i].Aliases = append([]string(nil), c.Aliases...)
		}
	}
	return out
}
