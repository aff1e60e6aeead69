package tui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"geosketch/internal/geom"
	"geosketch/internal/overlay"
)

const sidebarWidth = 28

type layout struct {
	contentW, contentH int
	mapW, mapH         int
	originX, originY   int
}

// layout computes the map area; it must match what View draws.
func (m Model) layout() layout {
	width, height := m.width, m.height
	if width == 0 || height == 0 {
		width, height = 80, 24
	}
	sb := 0
	if m.showSidebar {
		sb = sidebarWidth
	}
	headerHeight := 1
	footerHeight := 2
	contentHeight := height - headerHeight - footerHeight
	if contentHeight < 4 {
		contentHeight = 4
	}
	contentWidth := max(10, width)
	mapWidth := contentWidth - sb - 1
	if mapWidth < 10 {
		mapWidth = 10
	}
	originX := 0
	if m.showSidebar {
		originX = sb + 1
	}
	return layout{
		contentW: contentWidth, contentH: contentHeight,
		mapW: mapWidth, mapH: contentHeight,
		originX: originX, originY: headerHeight,
	}
}

// viewBox is the lon/lat window shown in a w x h cell map. Terminal cells are
// about twice as tall as wide, so a cell covers twice as many degrees of latitude.
func (m Model) viewBox(w, h int) geom.BBox {
	lngSpan := m.span
	latSpan := m.span * 2 * float64(h) / float64(max(1, w))
	return geom.BBox{
		MinX: m.center.Lng - lngSpan/2,
		MaxX: m.center.Lng + lngSpan/2,
		MinY: m.center.Lat - latSpan/2,
		MaxY: m.center.Lat + latSpan/2,
	}
}

// screenXYMicro maps lon/lat into a 2x4 microgrid per cell for braille rendering.
func (m Model) screenXYMicro(p geom.LatLng, w, h int) (float64, float64) {
	b := m.viewBox(w, h)
	nx := (p.Lng - b.MinX) / (b.MaxX - b.MinX)
	ny := (p.Lat - b.MinY) / (b.MaxY - b.MinY)
	return nx * float64(w*2), (1.0 - ny) * float64(h*4)
}

// cellToLatLng converts a map cell to the lon/lat at the cell centre.
func (m Model) cellToLatLng(cx, cy, w, h int) geom.LatLng {
	b := m.viewBox(w, h)
	nx := (float64(cx)*2 + 1) / float64(w*2)
	ny := 1.0 - (float64(cy)*4+2)/float64(h*4)
	return geom.LatLng{
		Lat: b.MinY + ny*(b.MaxY-b.MinY),
		Lng: b.MinX + nx*(b.MaxX-b.MinX),
	}
}

func (m Model) cursorLatLng() geom.LatLng {
	lo := m.layout()
	return m.cellToLatLng(m.curX, m.curY, lo.mapW, lo.mapH)
}

func (m *Model) zoom(factor float64) {
	m.span = math.Min(360, math.Max(1e-4, m.span/factor))
}

// pan shifts the view by a fraction of its size.
func (m *Model) pan(fx, fy float64) {
	lo := m.layout()
	b := m.viewBox(lo.mapW, lo.mapH)
	m.center.Lng += fx * (b.MaxX - b.MinX)
	m.center.Lat = math.Min(90, math.Max(-90, m.center.Lat+fy*(b.MaxY-b.MinY)))
}

func (m *Model) fitToGroup() {
	b, ok := m.group.Bounds()
	if !ok {
		return
	}
	lo := m.layout()
	m.center = b.Center()
	span := math.Max(b.MaxX-b.MinX, (b.MaxY-b.MinY)*float64(lo.mapW)/float64(2*lo.mapH))
	m.span = math.Min(360, math.Max(0.01, span*1.2))
}

func (m Model) renderMap(w, h int) string {
	cv := newCanvas(w, h)
	// High-resolution braille buffer for crisp lines/edges
	br := newBrailleBuf(w, h)
	project := func(pts []geom.LatLng) [][2]float64 {
		out := make([][2]float64, 0, len(pts))
		for _, p := range pts {
			x, y := m.screenXYMicro(p, w, h)
			out = append(out, [2]float64{x, y})
		}
		return out
	}

	// areas first (fill then edges), then lines on top
	m.group.Each(func(o *overlay.Overlay) {
		if !o.Closed() {
			return
		}
		br.pen = o.Style.Color
		ring := project(o.Outline(64))
		if o.Kind() != geom.KindCircle {
			br.fillRing(ring)
		}
		br.drawPath(ring, true)
	})
	m.group.Each(func(o *overlay.Overlay) {
		if o.Kind() != geom.KindPolyline {
			return
		}
		br.pen = o.Style.Color
		br.drawPath(project(o.Path()), false)
	})

	// in-progress shape
	if len(m.pending) > 0 {
		br.pen = accentFg
		pts := m.pending
		switch m.tool {
		case geom.KindRectangle:
			pts = geom.RectangleFromCorners(m.pending[0], m.cursorLatLng()).Ring
		case geom.KindCircle:
			pts = geom.CircleRing(m.pending[0], geom.Distance(m.pending[0], m.cursorLatLng()), 64)
		default:
			pts = append(append([]geom.LatLng{}, pts...), m.cursorLatLng())
		}
		br.drawPath(project(pts), m.tool != geom.KindPolyline)
	}
	br.composite(cv)

	// markers and their labels
	m.group.Each(func(o *overlay.Overlay) {
		if o.Kind() != geom.KindMarker {
			return
		}
		x, y := m.screenXYMicro(o.Center(), w, h)
		cx, cy := int(math.Floor(x/2)), int(math.Floor(y/4))
		cv.set(cx, cy, '◉', o.Style.Color)
		cv.text(cx+2, cy, o.Title(), baseDimFg)
	})

	// Edit highlight: draw an orange circle at the grabbed handle
	if m.editing != nil {
		hs := m.editing.Handles()
		if m.editIdx >= 0 && m.editIdx < len(hs) {
			x, y := m.screenXYMicro(hs[m.editIdx], w, h)
			cv.set(int(math.Floor(x/2)), int(math.Floor(y/4)), '◯', lipgloss.Color("#FFA500"))
		}
	}
	cv.set(m.curX, m.curY, '┼', accentFg)
	return strings.Join(cv.lines(), "\n")
}
