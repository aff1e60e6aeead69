package geom

import (
	"errors"
	"strconv"
	"strings"
)

// ParseWKT converts a subset of WKT into records.
// Supported: POINT(x y), MULTIPOINT(x y, ...), LINESTRING(x y, ...), POLYGON((x y, ...)).
// Coordinates are x=lon y=lat; only the outer polygon ring is kept.
func ParseWKT(wkt string) ([]Record, error) {
	s := strings.TrimSpace(wkt)
	if s == "" {
		return nil, errors.New("empty wkt")
	}
	up := strings.ToUpper(s)
	parseTuples := func(block string) []LatLng {
		var out []LatLng
		for _, tup := range strings.Split(block, ",") {
			// MULTIPOINT((1 2), (3 4)) is also accepted
			tup = strings.Trim(strings.TrimSpace(tup), "()")
			parts := strings.Fields(tup)
			if len(parts) < 2 {
				continue
			}
			x, e1 := strconv.ParseFloat(parts[0], 64)
			y, e2 := strconv.ParseFloat(parts[1], 64)
			if e1 != nil || e2 != nil {
				continue
			}
			out = append(out, LatLng{Lat: y, Lng: x})
		}
		return out
	}
	body := func(open, close string) (string, bool) {
		i := strings.Index(s, open)
		j := strings.LastIndex(s, close)
		if i < 0 || j <= i {
			return "", false
		}
		return s[i+len(open) : j], true
	}
	var out []Record
	switch {
	case strings.HasPrefix(up, "MULTIPOINT"):
		b, ok := body("(", ")")
		if !ok {
			return nil, errors.New("wkt multipoint: invalid")
		}
		for _, p := range parseTuples(b) {
			out = append(out, Marker{Lat: p.Lat, Lng: p.Lng})
		}
	case strings.HasPrefix(up, "POINT"):
		b, ok := body("(", ")")
		if !ok {
			return nil, errors.New("wkt point: invalid")
		}
		for _, p := range parseTuples(b) {
			out = append(out, Marker{Lat: p.Lat, Lng: p.Lng})
		}
	case strings.HasPrefix(up, "LINESTRING"):
		b, ok := body("(", ")")
		if !ok {
			return nil, errors.New("wkt linestring: invalid")
		}
		if ls := parseTuples(b); len(ls) > 0 {
			out = append(out, Polyline{Points: ls})
		}
	case strings.HasPrefix(up, "POLYGON"):
		b, ok := body("((", "))")
		if !ok {
			return nil, errors.New("wkt polygon: invalid")
		}
		// normalize spaces around ring separators
		b = strings.ReplaceAll(b, "), (", "),(")
		b = strings.ReplaceAll(b, ") , (", "),(")
		outer := strings.Split(b, "),(")[0]
		if ring := Unclose(parseTuples(outer)); len(ring) > 0 {
			out = append(out, Polygon{Ring: ring})
		}
	default:
		return nil, errors.New("unsupported wkt type")
	}
	if len(out) == 0 {
		return nil, errors.New("wkt: no coordinates parsed")
	}
	return out, nil
}
