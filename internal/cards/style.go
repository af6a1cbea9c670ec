package cards

import "esports-schedule/internal/matcher"

// Mode is the visual treatment of a card.
type Mode string

const (
	ModeNeutral Mode = "neutral"
	ModeTinted  Mode = "tinted"
	ModeSplit   Mode = "split"
)

// BadgePosition says where the game tag sits relative to the team labels.
type BadgePosition string

const (
	BadgeAbove BadgePosition = "above"
	BadgeAfter BadgePosition = "after"
)

// Fallback colors used when a followed club has no primary color.
const (
	FallbackTint  = "#f7f7f7"
	FallbackLeft  = "#ddd"
	FallbackRight = "#eee"
)

// Alpha suffixes applied to a tinted card's accent for its background and border.
const (
	TintBackgroundAlpha = "1a"
	TintBorderAlpha     = "66"
)

// Style is the derived visual treatment for a card.
type Style struct {
	Mode Mode `json:"mode"`
	// Accent is the tint color in tinted mode.
	Accent string `json:"accent,omitempty"`
	// Left and Right are the half colors in split mode.
	Left  string `json:"left,omitempty"`
	Right string `json:"right,omitempty"`
}

// Background returns the translucent tint background, or "" outside tinted mode.
func (s Style) Background() string {
	if s.Mode != ModeTinted {
		return ""
	}
	return s.Accent + TintBackgroundAlpha
}

// Border returns the tinted border tone, or "" outside tinted mode.
func (s Style) Border() string {
	if s.Mode != ModeTinted {
		return ""
	}
	return s.Accent + TintBorderAlpha
}

// StyleFor derives the card style from the involved clubs.
func StyleFor(involved []matcher.Involvement) Style {
	switch len(involved) {
	case 0:
		return Style{Mode: ModeNeutral}
	case 1:
		return Style{Mode: ModeTinted, Accent: orDefault(involved[0].Club.Primary, FallbackTint)}
	default:
		left, right := FallbackLeft, FallbackRight
		for _, inv := range involved {
			switch inv.Side {
			case matcher.SideTeam:
				left = orDefault(inv.Club.Primary, FallbackLeft)
			case matcher.SideOpponent:
				right = orDefault(inv.Club.Primary, FallbackRight)
			}
		}
		return Style{Mode: ModeSplit, Left: left, Right: right}
	}
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
