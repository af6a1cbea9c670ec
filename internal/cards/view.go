package cards

import "errors"

// State describes what a rendered view contains.
type State string

const (
	StateReady State = "ready"
	StateEmpty State = "empty"
	StateError State = "error"
)

// Placeholders shown when match fields are missing.
const (
	PlaceholderTime     = "TBA"
	PlaceholderTeam     = "?"
	PlaceholderOpponent = "TBA"
	EmptyMessage        = "No matches found."
)

// Link is a flattened stream URL.
type Link struct {
	Platform string `json:"platform"`
	Label    string `json:"label"`
	URL      string `json:"url"`
}

// Card is the renderer-agnostic view-model for one match.
type Card struct {
	ID    string `json:"id,omitempty"`
	Style Style  `json:"style"`
	// Left holds the team label in split mode and the combined "team vs opponent" label otherwise.
	Left          string        `json:"left"`
	Right         string        `json:"right,omitempty"`
	Badge         string        `json:"badge"`
	BadgePosition BadgePosition `json:"badgePosition"`
	Meta          string        `json:"meta"`
	When          string        `json:"when"`
	Streams       []Link        `json:"streams"`
	Clubs         []string      `json:"clubs"`
}

// View is the full output of a render cycle.
type View struct {
	State   State  `json:"state"`
	Header  string `json:"header,omitempty"`
	Message string `json:"message,omitempty"`
	Cards   []Card `json:"cards"`
}

// ErrorView reports a failed cycle. No cards are ever included.
func ErrorView(err error) View {
	if err == nil {
		err = errors.New("unknown error")
	}
	return View{
		State:   StateError,
		Message: "failed to load schedule: " + err.Error(),
		Cards:   []Card{},
	}
}
