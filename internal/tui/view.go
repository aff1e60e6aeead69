package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	lo := m.layout()

	header := titleStyle.Render(" geosketch ─ terminal map annotator ")
	if m.tool != 0 {
		header += dimStyle.Render("  tool: " + m.tool.String())
	}
	header = lipgloss.NewStyle().Width(lo.contentW).Render(header)

	var sidebar string
	if m.showSidebar {
		sidebar = lipgloss.NewStyle().Width(sidebarWidth).Render(m.l.View())
	}

	var mapView string
	if m.showLayers {
		mapView = lipgloss.Place(lo.mapW, lo.mapH, lipgloss.Center, lipgloss.Center, m.renderLayers(lo.mapW, lo.mapH))
	} else {
		// plain map canvas: no border, no background highlight
		mapView = lipgloss.NewStyle().Width(lo.mapW).Height(lo.mapH).Render(m.renderMap(lo.mapW, lo.mapH))
	}

	body := mapView
	if m.showSidebar {
		body = lipgloss.JoinHorizontal(lipgloss.Top, sidebar, " ", mapView)
	}

	st := dimStyle
	if m.statusErr {
		st = errStyle
	}
	status := st.Render(" " + m.status + " ")
	coords := dimStyle.Render("  " + m.coords() + "  ")
	gap := max(0, lo.contentW-lipgloss.Width(status)-lipgloss.Width(coords))
	line1 := status + strings.Repeat(" ", gap) + coords

	var line2 string
	switch {
	case m.naming != nil:
		line2 = titleStyle.Render(" name: ") + m.ti.View()
	case m.helpVisible:
		line2 = m.renderHelp()
	}
	footer := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().Width(lo.contentW).MaxHeight(1).Render(line1),
		lipgloss.NewStyle().Width(lo.contentW).MaxHeight(1).Render(line2),
	)

	ui := lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
	return appStyle.Width(lo.contentW).Height(m.height).Render(ui)
}

func (m Model) renderHelp() string {
	if !m.helpVisible {
		return ""
	}
	keys := []string{
		"1-5 tool",
		"space/click place",
		"enter finish",
		"e edit",
		"[/] radius",
		"x delete",
		"↑↓←→ cursor",
		"shift pan",
		"+/- zoom",
		"f fit",
		"t layers",
		"Tab import",
		"q quit",
	}
	if m.showLayers {
		keys = []string{"↑↓ select", "x delete", "esc/t close"}
	}
	return dimStyle.Render("  " + strings.Join(keys, "  "))
}
