package tui

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"geosketch/internal/geom"
	"geosketch/internal/logging"
	"geosketch/internal/overlay"
	"geosketch/internal/store"
)

func (m *Model) setStatus(format string, args ...any) {
	m.status = fmt.Sprintf(format, args...)
	m.statusErr = false
}

// fail shows err in the status line. A write failure leaves the live overlays
// as they are; the user is told the change is not persisted.
func (m *Model) fail(action string, err error) {
	var we *store.WriteError
	if errors.As(err, &we) {
		m.status = action + " not saved: " + we.Err.Error()
	} else {
		m.status = action + ": " + err.Error()
	}
	m.statusErr = true
	logging.GetFromContext(m.ctx).Error(action+" failed", "err", err.Error())
}

func (m *Model) selectTool(k geom.Kind) {
	m.tool = k
	m.pending = nil
	m.editing = nil
	m.setStatus("tool: %s", k)
}

func (m *Model) cancel() {
	switch {
	case m.editing != nil:
		m.editing = nil
		m.setStatus("edit cancelled")
	case len(m.pending) > 0:
		m.pending = nil
		m.setStatus("%s cancelled", m.tool)
	case m.tool != geom.KindUnknown:
		m.tool = geom.KindUnknown
		m.setStatus("view mode")
	}
}

// create puts a freshly drawn overlay on the surface and appends its record.
func (m *Model) create(o *overlay.Overlay) {
	m.group.Add(o)
	rec, err := m.svc.AddShape(m.ctx, o)
	if err != nil {
		if errors.Is(err, geom.ErrInvalidGeometry) || errors.Is(err, geom.ErrUnsupportedShape) {
			m.group.Remove(o)
		}
		m.fail("add "+o.Kind().String(), err)
		return
	}
	m.setStatus("added %s", rec.Kind())
}

// rebuild replaces the stored document after an edit or delete.
func (m *Model) rebuild(action string) {
	doc, report, err := m.svc.Rebuild(m.ctx, m.group)
	if err != nil {
		m.fail(action, err)
		return
	}
	m.setStatus("%s  stored=%d", action, doc.Len())
	if n := len(report.Skipped); n > 0 {
		m.status += fmt.Sprintf("  skipped=%d", n)
		m.statusErr = true
	}
	if report.Unnamed > 0 {
		m.status += fmt.Sprintf("  unnamed=%d", report.Unnamed)
	}
}

// place handles a click or space at the cursor.
func (m *Model) place() tea.Cmd {
	p := m.cursorLatLng()
	if m.editing != nil {
		kind := m.editing.Kind()
		if !m.editing.MoveHandle(m.editIdx, p) {
			m.setStatus("cannot move that handle")
			return nil
		}
		m.editing = nil
		m.rebuild("edited " + kind.String())
		return nil
	}
	switch m.tool {
	case geom.KindMarker:
		o := overlay.NewMarker(p)
		m.group.Add(o)
		m.naming = o
		m.ti.SetValue("")
		m.setStatus("name the marker (enter to save, esc to cancel)")
		return m.ti.Focus()
	case geom.KindRectangle:
		m.pending = append(m.pending, p)
		if len(m.pending) == 2 {
			ring := geom.RectangleFromCorners(m.pending[0], m.pending[1]).Ring
			m.pending = nil
			m.create(overlay.NewRectangle(ring))
		}
	case geom.KindCircle:
		m.pending = append(m.pending, p)
		if len(m.pending) == 2 {
			center := m.pending[0]
			r := geom.Distance(center, m.pending[1])
			m.pending = nil
			m.create(overlay.NewCircle(center, r))
		}
	case geom.KindPolyline, geom.KindPolygon:
		m.pending = append(m.pending, p)
		m.setStatus("%s: %d points (enter to finish)", m.tool, len(m.pending))
	default:
		m.setStatus("pick a tool first: 1 marker  2 line  3 polygon  4 rectangle  5 circle")
	}
	return nil
}

// finish completes a polyline or polygon.
func (m *Model) finish() {
	need := 2
	if m.tool == geom.KindPolygon {
		need = 3
	}
	if len(m.pending) < need {
		m.setStatus("%s needs at least %d points", m.tool, need)
		return
	}
	pts := m.pending
	m.pending = nil
	if m.tool == geom.KindPolygon {
		m.create(overlay.NewPolygon(pts))
		return
	}
	m.create(overlay.NewPolyline(pts))
}

// updateNaming drives the marker name prompt. An empty name is refused and
// cancelling removes the marker that was just drawn.
func (m Model) updateNaming(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.group.Remove(m.naming)
		m.naming = nil
		m.ti.Blur()
		m.setStatus("marker discarded")
		return m, nil
	case "enter":
		name := strings.TrimSpace(m.ti.Value())
		if name == "" {
			m.status = "please enter a name for the marker"
			m.statusErr = true
			return m, nil
		}
		o := m.naming
		m.naming = nil
		m.ti.Blur()
		o.BindLabel(name)
		if _, err := m.svc.AddShape(m.ctx, o); err != nil {
			m.fail("add marker", err)
			return m, nil
		}
		m.setStatus("added marker %q", name)
		return m, nil
	}
	var cmd tea.Cmd
	m.ti, cmd = m.ti.Update(msg)
	return m, cmd
}

// grab picks the handle nearest the cursor for editing.
func (m *Model) grab() {
	o, idx, ok := m.group.Nearest(m.cursorLatLng())
	if !ok {
		m.setStatus("nothing to edit")
		return
	}
	m.tool = geom.KindUnknown
	m.pending = nil
	m.editing, m.editIdx = o, idx
	m.setStatus("editing %s handle %d: move the cursor and press space", o.Kind(), idx)
}

// resize scales the radius of the circle being edited.
func (m *Model) resize(factor float64) {
	if m.editing == nil || m.editing.Kind() != geom.KindCircle {
		m.setStatus("grab a circle with e to resize it")
		return
	}
	m.editing.SetRadius(m.editing.Radius() * factor)
	m.rebuild("resized circle to " + formatMeters(m.editing.Radius()))
}

func (m *Model) remove(o *overlay.Overlay) {
	if o == nil || !m.group.Remove(o) {
		m.setStatus("nothing to delete")
		return
	}
	if m.editing == o {
		m.editing = nil
	}
	logging.GetFromContext(m.ctx).Debug("overlay removed", "id", o.ShortID(), "kind", o.Kind().String())
	m.rebuild("deleted " + o.Kind().String())
}

func (m *Model) removeNearest() {
	o, _, _ := m.group.Nearest(m.cursorLatLng())
	m.remove(o)
}

func (m *Model) moveCursor(dx, dy int) {
	lo := m.layout()
	m.curX = clamp(m.curX+dx, 0, lo.mapW-1)
	m.curY = clamp(m.curY+dy, 0, lo.mapH-1)
}
