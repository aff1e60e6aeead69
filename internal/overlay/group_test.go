package overlay

import (
	"testing"

	"github.com/matryer/is"

	"geosketch/internal/geom"
)

func TestGroupAddRemove(t *testing.T) {
	is := is.New(t)

	g := NewGroup()
	a := NewMarker(geom.LatLng{Lat: 1, Lng: 1})
	b := NewCircle(geom.LatLng{Lat: 2, Lng: 2}, 10)
	g.Add(a)
	g.Add(nil)
	g.Add(b)
	is.Equal(g.Len(), 2)

	is.True(g.Remove(a))
	is.True(!g.Remove(a))

	var seen []*Overlay
	g.Each(func(o *Overlay) { seen = append(seen, o) })
	is.Equal(seen, []*Overlay{b})

	g.Clear()
	is.Equal(g.Len(), 0)
}

func TestGroupNearest(t *testing.T) {
	is := is.New(t)

	g := NewGroup()
	_, _, ok := g.Nearest(geom.LatLng{})
	is.True(!ok)

	m := NewMarker(geom.LatLng{Lat: 10, Lng: 10})
	l := NewPolyline([]geom.LatLng{{Lat: 0, Lng: 0}, {Lat: 1, Lng: 1}})
	g.Add(m)
	g.Add(l)

	o, idx, ok := g.Nearest(geom.LatLng{Lat: 0.9, Lng: 1.2})
	is.True(ok)
	is.Equal(o, l)
	is.Equal(idx, 1)
}

func TestGroupBounds(t *testing.T) {
	is := is.New(t)

	g := NewGroup()
	_, ok := g.Bounds()
	is.True(!ok)

	g.Add(NewMarker(geom.LatLng{Lat: -1, Lng: 3}))
	g.Add(NewPolyline([]geom.LatLng{{Lat: 2, Lng: -4}, {Lat: 0, Lng: 0}}))
	b, ok := g.Bounds()
	is.True(ok)
	is.Equal(b, geom.BBox{MinX: -4, MinY: -1, MaxX: 3, MaxY: 2})
}
