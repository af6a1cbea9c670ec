package fixture

import (
	"time"
)

// Provider produces LPDB-shaped demo payloads so the generator can run without an API key.
type Provider struct {
	now func() time.Time
}

// New creates a fixture provider with a time source.
func New() *Provider {
	return &Provider{
		now: time.Now,
	}
}

// Payload returns a deterministic demo response for wiki. Only valorant carries matches;
// every other wiki yields an empty match list. Start times are relative to now so the
// matches survive the upcoming filter.
func (p *Provider) Payload(wiki, club string) map[string]any {
	if wiki != "valorant" {
		return map[string]any{"matches": []any{}}
	}
	start := p.now().UTC().Truncate(time.Hour)
	return map[string]any{
		"matches": []any{
			map[string]any{
				"match_id":   "demo-1",
				"tournament": map[string]any{"name": "VCT EMEA Stage 2"},
				"stage":      "Group Stage",
				"bestof":     "Bo3",
				"date":       start.Add(2 * time.Hour).Format(time.RFC3339),
				"opponents": []any{
					map[string]any{"name": club},
					map[string]any{"name": "Fnatic"},
				},
				"streams": map[string]any{
					"twitch":  []any{"https://www.twitch.tv/valorant_emea"},
					"youtube": []any{"https://www.youtube.com/@valorantesports"},
				},
				"url": "https://liquipedia.net/valorant/VCT/2025/EMEA/Stage_2",
			},
			map[string]any{
				"match_id":   "demo-2",
				"tournament": map[string]any{"name": "VCT EMEA Stage 2"},
				"stage":      "Group Stage",
				"bestof":     "Bo3",
				"date":       start.Add(26 * time.Hour).Format(time.RFC3339),
				"opponent":   "Team Heretics",
				"links":      []any{"https://www.twitch.tv/valorant_emea", "https://youtu.be/demo"},
				"url":        "https://liquipedia.net/valorant/VCT/2025/EMEA/Stage_2",
			},
			map[string]any{
				"match_id":   "demo-past",
				"tournament": "VCT EMEA Kickoff",
				"bestof":     "Bo1",
				"date":       start.Add(-48 * time.Hour).Format(time.RFC3339),
				"opponent":   "Karmine Corp",
			},
		},
	}
}
