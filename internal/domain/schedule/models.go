package schedule

// Well-known stream platforms.
const (
	PlatformTwitch  = "twitch"
	PlatformYouTube = "youtube"
)

// Streams maps a platform name to its stream URLs.
type Streams map[string][]string

// Source points at the upstream page a match was read from.
type Source struct {
	Site string `json:"site"`
	URL  string `json:"url,omitempty"`
}

// Match is one scheduled fixture between two free-text sides.
// Optional fields are empty strings when the upstream omits them.
type Match struct {
	ID           string   `json:"id,omitempty"`
	Game         string   `json:"game"`
	Tournament   string   `json:"tournament"`
	Stage        string   `json:"stage"`
	BestOf       string   `json:"bo"`
	Team         string   `json:"team"`
	Opponent     string   `json:"opponent"`
	StartTimeUTC string   `json:"start_time_utc"`
	Streams      Streams  `json:"streams"`
	Sources      []Source `json:"sources,omitempty"`
}

// Schedule is the document served by GET /api/schedule.
type Schedule struct {
	Club      string  `json:"club"`
	UpdatedAt string  `json:"updated_at"`
	Matches   []Match `json:"matches"`
}

// Normalize fills nil collections so callers never need nil checks.
func (s Schedule) Normalize() Schedule {
	if s.Matches == nil {
		s.Matches = []Match{}
	}
	for i := range s.Matches {
		if s.Matches[i].Streams == nil {
			s.Matches[i].Streams = Streams{}
		}
	}
	return s
}

// NewSchedule builds a normalized schedule payload.
func NewSchedule(club, updatedAt string, matches []Match) Schedule {
	return Schedule{
		Club:      club,
		UpdatedAt: updatedAt,
		Matches:   matches,
	}.Normalize()
}
