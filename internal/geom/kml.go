package geom

import (
	"encoding/xml"
	"errors"
	"io"
	"strconv"
	"strings"
)

type kmlCoords struct {
	Coordinates string `xml:"coordinates"`
}

type kmlPolygon struct {
	Outer kmlCoords `xml:"outerBoundaryIs>LinearRing"`
}

type kmlPlacemark struct {
	Name       string      `xml:"name"`
	Point      *kmlCoords  `xml:"Point"`
	LineString *kmlCoords  `xml:"LineString"`
	Polygon    *kmlPolygon `xml:"Polygon"`
}

// ReadKML extracts Placemarks (Point, LineString, Polygon) at any depth.
// KML coordinates are "lon,lat[,alt]"; altitude is ignored.
func ReadKML(r io.Reader) ([]Record, error) {
	dec := xml.NewDecoder(r)
	var out []Record
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		se, ok := tok.(xml.StartElement)
		if !ok || se.Name.Local != "Placemark" {
			continue
		}
		var pm kmlPlacemark
		if err := dec.DecodeElement(&pm, &se); err != nil {
			return nil, err
		}
		name := strings.TrimSpace(pm.Name)
		switch {
		case pm.Point != nil:
			for _, p := range parseKMLCoords(pm.Point.Coordinates) {
				out = append(out, Marker{Lat: p.Lat, Lng: p.Lng, Name: name})
			}
		case pm.LineString != nil:
			if pts := parseKMLCoords(pm.LineString.Coordinates); len(pts) > 0 {
				out = append(out, Polyline{Points: pts})
			}
		case pm.Polygon != nil:
			if ring := Unclose(parseKMLCoords(pm.Polygon.Outer.Coordinates)); len(ring) > 0 {
				out = append(out, Polygon{Ring: ring})
			}
		}
	}
	if len(out) == 0 {
		return nil, errors.New("kml: no placemarks found")
	}
	return out, nil
}

// coordinates may contain multiple tuples separated by spaces
func parseKMLCoords(s string) []LatLng {
	var out []LatLng
	for _, tuple := range strings.Fields(s) {
		vals := strings.Split(tuple, ",")
		if len(vals) < 2 {
			continue
		}
		lon, err1 := strconv.ParseFloat(strings.TrimSpace(vals[0]), 64)
		lat, err2 := strconv.ParseFloat(strings.TrimSpace(vals[1]), 64)
		if err1 != nil || err2 != nil {
			continue
		}
		out = append(out, LatLng{Lat: lat, Lng: lon})
	}
	return out
}
