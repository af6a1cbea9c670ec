package testutil

import (
	"esports-schedule/internal/domain/clubs"
	"esports-schedule/internal/domain/schedule"
)

// SampleClubs returns two followed clubs with distinct colors.
func SampleClubs() []clubs.Club {
	return []clubs.Club{
		{Name: "Team Vitality", Primary: "#F8D000", Secondary: "#1A1A1A", Aliases: []string{"Vitality"}},
		{Name: "G2", Primary: "#ED1C24", Secondary: "#000000", Aliases: []string{"G2 Esports"}},
	}
}

// SampleMatch returns a minimal match fixture with the provided id and sides.
func SampleMatch(id, team, opponent string) schedule.Match {
	return schedule.Match{
		ID:           id,
		Game:         "VALORANT",
		Tournament:   "VCT EMEA",
		BestOf:       "Bo3",
		Team:         team,
		Opponent:     opponent,
		StartTimeUTC: "2025-06-01T18:00:00Z",
		Streams:      schedule.Streams{schedule.PlatformTwitch: {"https://twitch.tv/valorant"}},
	}
}

// SampleSchedule builds a schedule holding the given matches.
func SampleSchedule(matches ...schedule.Match) schedule.Schedule {
	return schedule.NewSchedule("Team Vitality", "2025-06-01T10:00:00Z", matches)
}
