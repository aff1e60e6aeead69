package tui

import (
	"fmt"

	list "github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"geosketch/internal/geom"
)

var toolKeys = map[string]geom.Kind{
	"1": geom.KindMarker,
	"2": geom.KindPolyline,
	"3": geom.KindPolygon,
	"4": geom.KindRectangle,
	"5": geom.KindCircle,
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		lo := m.layout()
		m.l.SetSize(sidebarWidth-2, lo.contentH-2)
		m.curX = clamp(m.curX, 0, lo.mapW-1)
		m.curY = clamp(m.curY, 0, lo.mapH-1)
		return m, nil
	case tea.KeyMsg:
		// If list is visible and filtering, send keys to list and ignore global commands
		if m.showSidebar && m.l.FilterState() == list.Filtering {
			var cmd tea.Cmd
			m.l, cmd = m.l.Update(msg)
			return m, cmd
		}
		if m.naming != nil {
			return m.updateNaming(msg)
		}
		if m.showLayers {
			return m.updateLayers(msg)
		}
		if k, ok := toolKeys[msg.String()]; ok {
			m.selectTool(k)
			return m, nil
		}
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "up":
			m.moveCursor(0, -1)
		case "down":
			m.moveCursor(0, 1)
		case "left":
			m.moveCursor(-1, 0)
		case "right":
			m.moveCursor(1, 0)
		case "shift+up":
			m.pan(0, 0.1)
		case "shift+down":
			m.pan(0, -0.1)
		case "shift+left":
			m.pan(-0.1, 0)
		case "shift+right":
			m.pan(0.1, 0)
		case "+", "=":
			m.zoom(1.2)
			m.setStatus("span: %.4f°", m.span)
		case "-", "_":
			m.zoom(1 / 1.2)
			m.setStatus("span: %.4f°", m.span)
		case " ":
			cmd := m.place()
			return m, cmd
		case "enter":
			switch {
			case m.tool == geom.KindPolyline || m.tool == geom.KindPolygon:
				m.finish()
			case m.showSidebar:
				if it, ok := m.l.SelectedItem().(fileItem); ok {
					m.loadPath(it.path)
				}
			}
		case "backspace":
			if n := len(m.pending); n > 0 {
				m.pending = m.pending[:n-1]
				m.setStatus("%s: %d points", m.tool, len(m.pending))
			}
		case "esc":
			m.cancel()
		case "e":
			m.grab()
		case "[":
			m.resize(1 / 1.25)
		case "]":
			m.resize(1.25)
		case "x", "delete":
			m.removeNearest()
		case "f":
			m.fitToGroup()
			m.setStatus("fit %d shapes", m.group.Len())
		case "tab":
			m.showSidebar = !m.showSidebar
			if m.showSidebar {
				m.refreshDir()
			}
			lo := m.layout()
			m.l.SetSize(sidebarWidth-2, lo.contentH-2)
			m.curX = clamp(m.curX, 0, lo.mapW-1)
		case "t":
			m.showLayers = true
			m.refreshLayers()
		case "h":
			m.helpVisible = !m.helpVisible
		}
		return m, nil
	case tea.MouseMsg:
		lo := m.layout()
		cx, cy := msg.X-lo.originX, msg.Y-lo.originY
		inMap := cx >= 0 && cx < lo.mapW && cy >= 0 && cy < lo.mapH
		if inMap && m.naming == nil && !m.showLayers {
			m.curX, m.curY = cx, cy
			if msg.Action == tea.MouseActionPress {
				switch msg.Button {
				case tea.MouseButtonLeft:
					cmd := m.place()
					return m, cmd
				case tea.MouseButtonWheelUp:
					m.zoom(1.2)
				case tea.MouseButtonWheelDown:
					m.zoom(1 / 1.2)
				}
			}
			return m, nil
		}
	}
	// Pass messages to list when visible
	if m.showSidebar {
		var cmd tea.Cmd
		m.l, cmd = m.l.Update(msg)
		return m, cmd
	}
	return m, nil
}

// coords describes the cursor position for the footer.
func (m Model) coords() string {
	p := m.cursorLatLng()
	s := fmt.Sprintf("lat=%.5f lng=%.5f", p.Lat, p.Lng)
	if len(m.pending) > 0 && (m.tool == geom.KindCircle || m.tool == geom.KindPolyline) {
		s += "  d=" + formatMeters(geom.Distance(m.pending[len(m.pending)-1], p))
	}
	return s
}
