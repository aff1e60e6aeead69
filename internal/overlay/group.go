package overlay

import (
	"math"
	"slices"

	"geosketch/internal/geom"
)

// Group is the set of live overlays on the surface, in insertion order.
type Group struct {
	items []*Overlay
}

func NewGroup() *Group { return &Group{} }

func (g *Group) Add(o *Overlay) {
	if o == nil {
		return
	}
	g.items = append(g.items, o)
}

// Remove drops o from the group and reports whether it was present.
func (g *Group) Remove(o *Overlay) bool {
	i := slices.Index(g.items, o)
	if i < 0 {
		return false
	}
	g.items = slices.Delete(g.items, i, i+1)
	return true
}

func (g *Group) Each(fn func(o *Overlay)) {
	for _, o := range g.items {
		fn(o)
	}
}

func (g *Group) Len() int { return len(g.items) }

func (g *Group) Clear() { g.items = nil }

// Nearest returns the overlay with a handle closest to p and that handle's index.
// Distances are planar in degrees, which is enough for picking on screen.
func (g *Group) Nearest(p geom.LatLng) (*Overlay, int, bool) {
	var best *Overlay
	bestIdx := -1
	bestD := math.Inf(1)
	for _, o := range g.items {
		for i, h := range o.Handles() {
			dx, dy := h.Lng-p.Lng, h.Lat-p.Lat
			if d := dx*dx + dy*dy; d < bestD {
				best, bestIdx, bestD = o, i, d
			}
		}
	}
	return best, bestIdx, best != nil
}

// Bounds is the lon/lat box around every overlay outline.
func (g *Group) Bounds() (geom.BBox, bool) {
	var b geom.BBox
	n := 0
	for _, o := range g.items {
		for _, p := range o.Outline(16) {
			b.Extend(p.Lng, p.Lat, n == 0)
			n++
		}
	}
	return b, n > 0
}
