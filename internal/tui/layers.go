package tui

import (
	"fmt"
	"strings"

	table "github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"geosketch/internal/geom"
	"geosketch/internal/overlay"
)

var layerColumns = []table.Column{
	{Title: "#", Width: 4},
	{Title: "id", Width: 8},
	{Title: "kind", Width: 10},
	{Title: "points", Width: 7},
	{Title: "label", Width: 20},
	{Title: "style", Width: 8},
}

// refreshLayers rebuilds the table rows from the live overlays.
func (m *Model) refreshLayers() {
	m.tblRows = nil
	var rows []table.Row
	m.group.Each(func(o *overlay.Overlay) {
		m.tblRows = append(m.tblRows, o)
		rows = append(rows, table.Row{
			fmt.Sprintf("%d", len(m.tblRows)),
			o.ShortID(),
			o.Kind().String(),
			layerPoints(o),
			o.Title(),
			o.Style.Name,
		})
	})
	// Avoid transient mismatch: clear rows, set columns, then set rows
	m.tbl.SetRows(nil)
	m.tbl.SetColumns(layerColumns)
	m.tbl.SetRows(rows)
	if c := m.tbl.Cursor(); c >= len(rows) {
		m.tbl.SetCursor(max(0, len(rows)-1))
	}
}

func layerPoints(o *overlay.Overlay) string {
	switch o.Kind() {
	case geom.KindMarker:
		return "1"
	case geom.KindCircle:
		return formatMeters(o.Radius())
	}
	return fmt.Sprintf("%d", len(o.Path()))
}

func (m Model) updateLayers(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "esc", "t":
		m.showLayers = false
		return m, nil
	case "x", "delete":
		if i := m.tbl.Cursor(); i >= 0 && i < len(m.tblRows) {
			m.remove(m.tblRows[i])
			m.refreshLayers()
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.tbl, cmd = m.tbl.Update(msg)
	return m, cmd
}

// renderLayers draws the table in a box sized to the map area, with a colour
// legend under it.
func (m Model) renderLayers(w, h int) string {
	colW := 0
	for _, c := range layerColumns {
		colW += c.Width + 2
	}
	maxW := min(w, max(32, colW+4))
	m.tbl.SetWidth(maxW - 4)
	m.tbl.SetHeight(max(3, min(h-4, 20)))
	var legend []string
	for _, k := range geom.ClassificationOrder() {
		st := overlay.DefaultStyle(k)
		legend = append(legend, st.Render("■ "+k.String()))
	}
	body := m.tbl.View()
	if len(m.tblRows) == 0 {
		body = dimStyle.Render("no shapes yet")
	}
	return boxStyle.Width(maxW).Render(body + "\n" + strings.Join(legend, " "))
}
