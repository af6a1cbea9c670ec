package terminal

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// blend paints hex over base at the opacity encoded by a two-digit alpha suffix,
// the way a translucent color looks on an opaque terminal background.
// It returns "" when either color does not parse.
func blend(base, hex, alpha string) string {
	b, err := colorful.Hex(base)
	if err != nil {
		return ""
	}
	c, err := colorful.Hex(expandHex(hex))
	if err != nil {
		return ""
	}
	a, err := strconv.ParseUint(alpha, 16, 8)
	if err != nil {
		return ""
	}
	return b.BlendRgb(c, float64(a)/255).Clamped().Hex()
}

// textOn picks dark or light text for readability on bg.
func textOn(bg string) lipgloss.Color {
	c, err := colorful.Hex(expandHex(bg))
	if err != nil {
		return clrText
	}
	if l, _, _ := c.Lab(); l > 0.6 {
		return clrInk
	}
	return clrText
}

func color(hex string) lipgloss.TerminalColor {
	if _, err := colorful.Hex(expandHex(hex)); err != nil {
		return lipgloss.NoColor{}
	}
	return lipgloss.Color(expandHex(hex))
}

// expandHex turns #rgb into #rrggbb.
func expandHex(hex string) string {
	if len(hex) != 4 || hex[0] != '#' {
		return hex
	}
	return string([]byte{'#', hex[1], hex[1], hex[2], hex[2], hex[3], hex[3]})
}
