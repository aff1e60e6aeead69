package overlay

import (
	"github.com/charmbracelet/lipgloss"

	"geosketch/internal/geom"
)

// Style is how an overlay is painted on the canvas.
type Style struct {
	Name  string
	Color lipgloss.TerminalColor
}

func (s Style) Render(text string) string {
	if s.Color == nil {
		return text
	}
	return lipgloss.NewStyle().Foreground(s.Color).Render(text)
}

// DefaultStyle is the deterministic per-kind style used for new overlays.
func DefaultStyle(k geom.Kind) Style {
	switch k {
	case geom.KindPolygon:
		return Style{Name: "green", Color: lipgloss.Color("#22C55E")}
	case geom.KindPolyline:
		return Style{Name: "blue", Color: lipgloss.Color("#3B82F6")}
	case geom.KindRectangle:
		return Style{Name: "red", Color: lipgloss.Color("#EF4444")}
	case geom.KindCircle:
		return Style{Name: "purple", Color: lipgloss.Color("#A855F7")}
	}
	return Style{Name: "plain"}
}
