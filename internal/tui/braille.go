package tui

import (
	"math"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type brailleBuf struct {
	w, h int                        // in cells
	m    [][]uint8                  // per-cell 8-bit mask
	c    [][]lipgloss.TerminalColor // per-cell colour of the last pen
	pen  lipgloss.TerminalColor
}

func newBrailleBuf(w, h int) *brailleBuf {
	m := make([][]uint8, h)
	c := make([][]lipgloss.TerminalColor, h)
	for i := range m {
		m[i] = make([]uint8, w)
		c[i] = make([]lipgloss.TerminalColor, w)
	}
	return &brailleBuf{w: w, h: h, m: m, c: c}
}

// setPixel sets a micro-pixel at micro coords (2x4 per cell)
func (b *brailleBuf) setPixel(mx, my int) {
	if mx < 0 || my < 0 {
		return
	}
	cx, rx := mx/2, mx%2
	cy, ry := my/4, my%4
	if cy >= b.h || cx >= b.w {
		return
	}
	var bit uint8
	if rx == 0 {
		switch ry {
		case 0:
			bit = 0x01
		case 1:
			bit = 0x02
		case 2:
			bit = 0x04
		case 3:
			bit = 0x40
		}
	} else {
		switch ry {
		case 0:
			bit = 0x08
		case 1:
			bit = 0x10
		case 2:
			bit = 0x20
		case 3:
			bit = 0x80
		}
	}
	b.m[cy][cx] |= bit
	b.c[cy][cx] = b.pen
}

// drawLineMicro draws a line on the microgrid using Bresenham
func (b *brailleBuf) drawLineMicro(x0, y0, x1, y1 int) {
	dx := abs(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -abs(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		b.setPixel(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// drawSegment clips a float segment to the microgrid before rasterizing,
// so far-away vertices do not make Bresenham walk off-screen.
func (b *brailleBuf) drawSegment(x0, y0, x1, y1 float64) {
	// Liang-Barsky against [0, 2w) x [0, 4h)
	xmax, ymax := float64(b.w*2-1), float64(b.h*4-1)
	dx, dy := x1-x0, y1-y0
	t0, t1 := 0.0, 1.0
	clip := func(p, q float64) bool {
		if p == 0 {
			return q >= 0
		}
		r := q / p
		if p < 0 {
			if r > t1 {
				return false
			}
			t0 = math.Max(t0, r)
		} else {
			if r < t0 {
				return false
			}
			t1 = math.Min(t1, r)
		}
		return true
	}
	if !clip(-dx, x0) || !clip(dx, xmax-x0) || !clip(-dy, y0) || !clip(dy, ymax-y0) {
		return
	}
	b.drawLineMicro(
		int(math.Round(x0+t0*dx)), int(math.Round(y0+t0*dy)),
		int(math.Round(x0+t1*dx)), int(math.Round(y0+t1*dy)),
	)
}

func (b *brailleBuf) drawPath(pts [][2]float64, closed bool) {
	if len(pts) == 1 {
		b.drawSegment(pts[0][0], pts[0][1], pts[0][0], pts[0][1])
		return
	}
	for i := 0; i+1 < len(pts); i++ {
		b.drawSegment(pts[i][0], pts[i][1], pts[i+1][0], pts[i+1][1])
	}
	if closed && len(pts) > 2 {
		a, z := pts[len(pts)-1], pts[0]
		b.drawSegment(a[0], a[1], z[0], z[1])
	}
}

// fillRing fills using even-odd rule per scanline on the microgrid
func (b *brailleBuf) fillRing(ring [][2]float64) {
	if len(ring) < 3 {
		return
	}
	hMic := b.h * 4
	wMic := b.w * 2
	for yMic := 0; yMic < hMic; yMic++ {
		y := float64(yMic) + 0.5
		var xs []float64
		for i := 0; i < len(ring); i++ {
			a := ring[i]
			c := ring[(i+1)%len(ring)]
			if a[1] == c[1] { // horizontal edge: skip
				continue
			}
			if (y >= a[1] && y < c[1]) || (y >= c[1] && y < a[1]) {
				t := (y - a[1]) / (c[1] - a[1])
				xs = append(xs, a[0]+t*(c[0]-a[0]))
			}
		}
		if len(xs) < 2 {
			continue
		}
		sort.Float64s(xs)
		for i := 0; i+1 < len(xs); i += 2 {
			xstart := max(0, int(math.Ceil(xs[i])))
			xend := min(wMic-1, int(math.Floor(xs[i+1])))
			for xMic := xstart; xMic <= xend; xMic++ {
				b.setPixel(xMic, yMic)
			}
		}
	}
}

// composite copies every non-empty braille cell onto the canvas.
func (b *brailleBuf) composite(cv *canvas) {
	for y := 0; y < b.h; y++ {
		for x := 0; x < b.w; x++ {
			if mask := b.m[y][x]; mask != 0 {
				cv.set(x, y, rune(0x2800+int(mask)), b.c[y][x])
			}
		}
	}
}

type cell struct {
	r  rune
	fg lipgloss.TerminalColor
}

// canvas is a grid of coloured cells rendered row by row.
type canvas struct {
	w, h  int
	cells [][]cell
}

func newCanvas(w, h int) *canvas {
	cells := make([][]cell, h)
	for y := range cells {
		cells[y] = make([]cell, w)
		for x := range cells[y] {
			cells[y][x] = cell{r: ' '}
		}
	}
	return &canvas{w: w, h: h, cells: cells}
}

func (cv *canvas) set(x, y int, r rune, fg lipgloss.TerminalColor) {
	if x < 0 || y < 0 || x >= cv.w || y >= cv.h {
		return
	}
	cv.cells[y][x] = cell{r: r, fg: fg}
}

func (cv *canvas) text(x, y int, s string, fg lipgloss.TerminalColor) {
	for _, r := range s {
		cv.set(x, y, r, fg)
		x++
	}
}

// lines renders each row, styling runs of equally coloured cells together.
func (cv *canvas) lines() []string {
	out := make([]string, cv.h)
	for y, row := range cv.cells {
		var sb strings.Builder
		var run []rune
		var runFg lipgloss.TerminalColor
		flush := func() {
			if len(run) == 0 {
				return
			}
			if runFg == nil {
				sb.WriteString(string(run))
			} else {
				sb.WriteString(lipgloss.NewStyle().Foreground(runFg).Render(string(run)))
			}
			run = run[:0]
		}
		for _, c := range row {
			if c.fg != runFg {
				flush()
				runFg = c.fg
			}
			run = append(run, c.r)
		}
		flush()
		out[y] = sb.String()
	}
	return out
}
