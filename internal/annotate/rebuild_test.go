package annotate

import (
	"errors"
	"testing"

	"github.com/matryer/is"

	"geosketch/internal/geom"
	"geosketch/internal/overlay"
)

func sampleDocument() geom.Document {
	d := geom.NewDocument()
	d.Markers = append(d.Markers, geom.Marker{Lat: -15.79, Lng: -47.88}, geom.Marker{Lat: -15.80, Lng: -47.86})
	d.Polygons = append(d.Polygons, geom.Polygon{Ring: []geom.LatLng{{Lat: 0, Lng: 0}, {Lat: 0, Lng: 2}, {Lat: 1, Lng: 1}}})
	d.Polylines = append(d.Polylines, geom.Polyline{Points: []geom.LatLng{{Lat: 3, Lng: 3}, {Lat: 4, Lng: 4}, {Lat: 5, Lng: 3}}})
	d.Rectangles = append(d.Rectangles, geom.RectangleFromCorners(geom.LatLng{Lat: 10, Lng: 10}, geom.LatLng{Lat: 11, Lng: 12}))
	d.Circles = append(d.Circles, geom.Circle{Lat: -15.78, Lng: -47.93, Radius: 500})
	return d
}

func TestMaterializeThenReconcileRoundTrip(t *testing.T) {
	is := is.New(t)

	doc := sampleDocument()
	g := overlay.NewGroup()
	is.Equal(Materialize(doc, g), doc.Len())

	got, report := Reconcile(g)
	is.NoErr(report.Err())
	is.Equal(got, doc)
	is.Equal(report.Unnamed, 2)
}

func TestMaterializeOrder(t *testing.T) {
	is := is.New(t)

	g := overlay.NewGroup()
	Materialize(sampleDocument(), g)

	var kinds []geom.Kind
	g.Each(func(o *overlay.Overlay) { kinds = append(kinds, o.Kind()) })
	is.Equal(kinds, []geom.Kind{
		geom.KindMarker, geom.KindMarker,
		geom.KindRectangle, geom.KindPolygon, geom.KindPolyline, geom.KindCircle,
	})
}

func TestNamesSurviveRoundTrip(t *testing.T) {
	is := is.New(t)

	doc := geom.NewDocument()
	doc.Markers = append(doc.Markers, geom.Marker{Lat: 1, Lng: 2, Name: "Catedral"})
	g := overlay.NewGroup()
	Materialize(doc, g)

	got, report := Reconcile(g)
	is.Equal(got.Markers[0].Name, "Catedral")
	is.Equal(report.Unnamed, 0)
}

func TestRebuildIsIdempotent(t *testing.T) {
	is := is.New(t)
	svc, backend, ctx := testSetup(t)

	g := overlay.NewGroup()
	Materialize(sampleDocument(), g)

	first, _, err := svc.Rebuild(ctx, g)
	is.NoErr(err)
	raw1, _ := backend.Get(ctx, "mapLayers")

	second, _, err := svc.Rebuild(ctx, g)
	is.NoErr(err)
	raw2, _ := backend.Get(ctx, "mapLayers")

	is.Equal(first, second)
	is.Equal(string(raw1), string(raw2))
}

func TestRebuildDropsDeletedOverlays(t *testing.T) {
	is := is.New(t)
	svc, backend, ctx := testSetup(t)

	is.NoErr(svc.AddCircle(ctx, -15.78, -47.93, 500))
	is.NoErr(svc.AddMarker(ctx, geom.Marker{Lat: 1, Lng: 1, Name: "keep"}))

	g := overlay.NewGroup()
	svc.LoadInto(ctx, g)
	var circle *overlay.Overlay
	g.Each(func(o *overlay.Overlay) {
		if o.Kind() == geom.KindCircle {
			circle = o
		}
	})
	is.True(g.Remove(circle))

	doc, _, err := svc.Rebuild(ctx, g)
	is.NoErr(err)
	is.Equal(len(doc.Circles), 0)
	is.Equal(load(ctx, backend).Markers, []geom.Marker{{Lat: 1, Lng: 1, Name: "keep"}})
}

func TestRebuildAfterEdit(t *testing.T) {
	is := is.New(t)
	svc, backend, ctx := testSetup(t)

	g := overlay.NewGroup()
	c := overlay.NewCircle(geom.LatLng{Lat: 0, Lng: 0}, 100)
	g.Add(c)
	_, err := svc.AddShape(ctx, c)
	is.NoErr(err)

	c.MoveHandle(0, geom.LatLng{Lat: 2, Lng: 3})
	c.SetRadius(250)
	_, _, err = svc.Rebuild(ctx, g)
	is.NoErr(err)
	is.Equal(load(ctx, backend).Circles, []geom.Circle{{Lat: 2, Lng: 3, Radius: 250}})
}

func TestRebuildSkipsUnsupportedOverlay(t *testing.T) {
	is := is.New(t)
	svc, backend, ctx := testSetup(t)

	g := overlay.NewGroup()
	g.Add(overlay.NewMarker(geom.LatLng{Lat: 1, Lng: 1}))
	g.Add(overlay.NewPolyline([]geom.LatLng{{Lat: 0, Lng: 0}})) // a single vertex is not a line
	g.Add(overlay.NewCircle(geom.LatLng{Lat: 2, Lng: 2}, 5))

	doc, report, err := svc.Rebuild(ctx, g)
	is.NoErr(err)
	is.Equal(len(report.Skipped), 1)
	is.Equal(report.Skipped[0].Index, 1)
	is.Equal(report.Skipped[0].Kind, geom.KindPolyline)
	is.True(errors.Is(report.Err(), geom.ErrInvalidGeometry))

	is.Equal(doc.Len(), 2)
	is.Equal(load(ctx, backend), doc)
}

func TestReconcileEmpty(t *testing.T) {
	is := is.New(t)

	doc, report := Reconcile(overlay.NewGroup())
	is.Equal(doc, geom.NewDocument())
	is.NoErr(report.Err())
}

func TestRebuildAfterRectangleEditKeepsFourCorners(t *testing.T) {
	is := is.New(t)
	svc, backend, ctx := testSetup(t)

	g := overlay.NewGroup()
	r := overlay.NewRectangle(geom.RectangleFromCorners(geom.LatLng{}, geom.LatLng{Lat: 1, Lng: 1}).Ring)
	g.Add(r)
	_, err := svc.AddShape(ctx, r)
	is.NoErr(err)

	// handle 2 is NE; its opposite corner is SW at (0,0)
	is.True(!r.MoveHandle(2, geom.LatLng{Lat: 1, Lng: 0})) // zero width
	is.True(!r.MoveHandle(2, geom.LatLng{Lat: 0, Lng: 1})) // zero height
	is.True(r.MoveHandle(2, geom.LatLng{Lat: 2, Lng: 3}))

	doc, report, err := svc.Rebuild(ctx, g)
	is.NoErr(err)
	is.NoErr(report.Err())
	is.Equal(len(doc.Rectangles), 1)
	is.Equal(len(doc.Rectangles[0].Ring), 4)
	is.Equal(load(ctx, backend).Rectangles, []geom.Rectangle{geom.RectangleFromCorners(geom.LatLng{}, geom.LatLng{Lat: 2, Lng: 3})})
	is.Equal(g.Len(), 1)
}

func TestTrimmedNamesSurviveRoundTrip(t *testing.T) {
	is := is.New(t)
	svc, backend, ctx := testSetup(t)

	is.NoErr(backend.Set(ctx, "mapLayers", []byte(`{"markers":[{"lat":1,"lng":2,"name":" Sé "}],"polygons":[],"polylines":[],"rectangle":[],"circles":[]}`)))
	is.NoErr(svc.AddMarker(ctx, geom.Marker{Lat: 3, Lng: 4, Name: "  Ponte  "}))

	stored := load(ctx, backend)
	is.Equal(stored.Markers[0].Name, "Sé")
	is.Equal(stored.Markers[1].Name, "Ponte")

	g := overlay.NewGroup()
	Materialize(stored, g)
	got, report := Reconcile(g)
	is.NoErr(report.Err())
	is.Equal(got, stored)
}
