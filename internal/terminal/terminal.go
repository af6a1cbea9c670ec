// Package terminal draws a cards.View with lipgloss.
package terminal

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"esports-schedule/internal/cards"
)

const (
	defaultWidth = 64
	minWidth     = 24
	defaultBase  = "#1a1a1a"
)

var (
	clrSubtle = lipgloss.Color("#8b949e")
	clrError  = lipgloss.Color("#f85149")
	clrText   = lipgloss.Color("#e6edf3")
	clrInk    = lipgloss.Color("#111111")
	clrBorder = lipgloss.Color("#30363d")
	clrLink   = lipgloss.Color("#58a6ff")
)

// Option customizes a Renderer.
type Option func(*Renderer)

// WithWidth sets the outer card width in cells.
func WithWidth(width int) Option {
	return func(r *Renderer) {
		if width >= minWidth {
			r.width = width
		}
	}
}

// WithBase sets the terminal background color tints are blended over.
func WithBase(hex string) Option {
	return func(r *Renderer) {
		if hex != "" {
			r.base = hex
		}
	}
}

// Renderer turns views into styled terminal text.
type Renderer struct {
	lg    *lipgloss.Renderer
	width int
	base  string
}

// New builds a Renderer whose color profile is detected from w.
func New(w io.Writer, opts ...Option) *Renderer {
	r := &Renderer{
		lg:    lipgloss.NewRenderer(w),
		width: defaultWidth,
		base:  defaultBase,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render draws the header followed by the view's cards or its state message.
func (r *Renderer) Render(view cards.View) string {
	var blocks []string
	if view.Header != "" {
		blocks = append(blocks, r.lg.NewStyle().Bold(true).Render(view.Header))
	}

	switch view.State {
	case cards.StateError:
		blocks = append(blocks, r.lg.NewStyle().Foreground(clrError).Render(view.Message))
	case cards.StateEmpty:
		blocks = append(blocks, r.lg.NewStyle().Foreground(clrSubtle).Render(view.Message))
	default:
		for _, c := range view.Cards {
			blocks = append(blocks, r.card(c))
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, blocks...)
}

func (r *Renderer) card(c cards.Card) string {
	inner := r.width - 4
	var lines []string

	if c.Style.Mode == cards.ModeSplit {
		if c.Badge != "" {
			lines = append(lines, r.badge(c.Badge))
		}
		lines = append(lines, r.split(c, inner))
	} else {
		label := r.lg.NewStyle().Bold(true).Render(c.Left)
		if c.Badge != "" {
			label += " " + r.badge(c.Badge)
		}
		lines = append(lines, label)
	}

	subtle := r.lg.NewStyle().Foreground(clrSubtle)
	if c.Meta != "" {
		lines = append(lines, subtle.Render(c.Meta))
	}
	lines = append(lines, c.When)
	for _, l := range c.Streams {
		lines = append(lines, subtle.Render(l.Label+": ")+r.lg.NewStyle().Foreground(clrLink).Underline(true).Render(l.URL))
	}

	box := r.lg.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(clrBorder).
		Width(r.width - 2).
		Padding(0, 1)
	if c.Style.Mode == cards.ModeTinted {
		if border := blend(r.base, c.Style.Accent, cards.TintBorderAlpha); border != "" {
			box = box.BorderForeground(lipgloss.Color(border))
		}
		if bg := blend(r.base, c.Style.Accent, cards.TintBackgroundAlpha); bg != "" {
			box = box.Background(lipgloss.Color(bg))
		}
	}
	return box.Render(strings.Join(lines, "\n"))
}

func (r *Renderer) split(c cards.Card, inner int) string {
	half := inner / 2
	left := r.lg.NewStyle().
		Width(half).
		Padding(0, 1).
		Bold(true).
		Background(color(c.Style.Left)).
		Foreground(textOn(c.Style.Left)).
		Render(c.Left)
	right := r.lg.NewStyle().
		Width(inner - half).
		Padding(0, 1).
		Bold(true).
		Align(lipgloss.Right).
		Background(color(c.Style.Right)).
		Foreground(textOn(c.Style.Right)).
		Render(c.Right)
	return lipgloss.JoinHorizontal(lipgloss.Top, left, right)
}

func (r *Renderer) badge(game string) string {
	return r.lg.NewStyle().Foreground(clrSubtle).Render("[" + game + "]")
}
