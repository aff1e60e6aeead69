package geom

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matryer/is"
)

const featureCollection = `{
  "type": "FeatureCollection",
  "features": [
    {"type": "Feature", "properties": {"name": "Esplanada"}, "geometry": {"type": "Point", "coordinates": [-47.86, -15.80]}},
    {"type": "Feature", "properties": {"radius": 500}, "geometry": {"type": "Point", "coordinates": [-47.93, -15.78]}},
    {"type": "Feature", "properties": null, "geometry": {"type": "LineString", "coordinates": [[0, 0], [1, 1]]}},
    {"type": "Feature", "properties": {"shape": "rectangle"}, "geometry": {"type": "Polygon",
      "coordinates": [[[0, 0], [0, 1], [1, 1], [1, 0], [0, 0]]]}},
    {"type": "Feature", "properties": {}, "geometry": {"type": "Polygon",
      "coordinates": [[[0, 0], [2, 0], [1, 1], [0, 0]]]}}
  ]
}`

func TestReadGeoJSON(t *testing.T) {
	is := is.New(t)

	recs, err := ReadGeoJSON(strings.NewReader(featureCollection))
	is.NoErr(err)
	is.Equal(len(recs), 5)

	is.Equal(recs[0], Marker{Lat: -15.80, Lng: -47.86, Name: "Esplanada"})
	is.Equal(recs[1], Circle{Lat: -15.78, Lng: -47.93, Radius: 500})
	is.Equal(recs[2].Kind(), KindPolyline)
	is.Equal(recs[3].Kind(), KindRectangle)
	is.Equal(len(recs[3].(Rectangle).Ring), 4)
	is.Equal(recs[4], Polygon{Ring: []LatLng{{0, 0}, {0, 2}, {1, 1}}})
}

func TestReadGeoJSONEmpty(t *testing.T) {
	is := is.New(t)

	_, err := ReadGeoJSON(strings.NewReader(`{"type":"FeatureCollection","features":[]}`))
	is.True(err != nil)
}

func TestParseWKT(t *testing.T) {
	is := is.New(t)

	recs, err := ParseWKT("POINT (10 20)")
	is.NoErr(err)
	is.Equal(recs, []Record{Marker{Lat: 20, Lng: 10}})

	recs, err = ParseWKT("MULTIPOINT ((1 2), (3 4))")
	is.NoErr(err)
	is.Equal(len(recs), 2)

	recs, err = ParseWKT("LINESTRING (0 0, 1 1, 2 1)")
	is.NoErr(err)
	is.Equal(recs, []Record{Polyline{Points: []LatLng{{0, 0}, {1, 1}, {1, 2}}}})

	recs, err = ParseWKT("POLYGON ((0 0, 4 0, 4 4, 0 0), (1 1, 2 1, 2 2, 1 1))")
	is.NoErr(err)
	is.Equal(recs, []Record{Polygon{Ring: []LatLng{{0, 0}, {0, 4}, {4, 4}}}})

	_, err = ParseWKT("CIRCULARSTRING (0 0, 1 1, 2 0)")
	is.True(err != nil)
}

func TestReadKML(t *testing.T) {
	is := is.New(t)

	const doc = `<?xml version="1.0" encoding="UTF-8"?>
<kml xmlns="http://www.opengis.net/kml/2.2"><Document><Folder>
  <Placemark><name>Torre de TV</name><Point><coordinates>-47.892,-15.790,0</coordinates></Point></Placemark>
  <Placemark><LineString><coordinates>0,0 1,1</coordinates></LineString></Placemark>
  <Placemark><Polygon><outerBoundaryIs><LinearRing><coordinates>0,0 1,0 1,1 0,0</coordinates></LinearRing></outerBoundaryIs></Polygon></Placemark>
</Folder></Document></kml>`

	recs, err := ReadKML(strings.NewReader(doc))
	is.NoErr(err)
	is.Equal(len(recs), 3)
	is.Equal(recs[0], Marker{Lat: -15.790, Lng: -47.892, Name: "Torre de TV"})
	is.Equal(recs[1].Kind(), KindPolyline)
	is.Equal(recs[2], Polygon{Ring: []LatLng{{0, 0}, {0, 1}, {1, 1}}})
}

func TestReadCSV(t *testing.T) {
	is := is.New(t)

	recs, err := ReadCSV(strings.NewReader("Name,Latitude,Longitude\nA,1.5,2.5\nbad,x,y\nB, -3, 4\n"))
	is.NoErr(err)
	is.Equal(recs, []Record{
		Marker{Lat: 1.5, Lng: 2.5, Name: "A"},
		Marker{Lat: -3, Lng: 4, Name: "B"},
	})

	_, err = ReadCSV(strings.NewReader("a,b\n1,2\n"))
	is.True(err != nil)
}

func TestLoadFile(t *testing.T) {
	is := is.New(t)

	dir := t.TempDir()
	p := filepath.Join(dir, "shapes.wkt")
	is.NoErr(os.WriteFile(p, []byte("LINESTRING (0 0, 1 1)"), 0o644))

	recs, err := LoadFile(p)
	is.NoErr(err)
	is.Equal(len(recs), 1)

	is.True(Importable("a.GeoJSON"))
	is.True(!Importable("a.shp"))
	_, err = LoadFile(filepath.Join(dir, "x.shp"))
	is.True(err != nil)
}
