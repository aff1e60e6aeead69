package geom

import (
	"encoding/json"
	"errors"
	"io"
	"strings"
)

// ReadGeoJSON converts a GeoJSON object into records.
// Point becomes a Marker (properties.name is kept) or a Circle when
// properties.radius is a positive number; LineString becomes a Polyline;
// Polygon keeps its outer ring and becomes a Rectangle when
// properties.shape is "rectangle". Multi* geometries fan out.
func ReadGeoJSON(r io.Reader) ([]Record, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	var out []Record
	// GeoJSON positions are [lon, lat]
	parsePoint := func(v any) (pt LatLng, ok bool) {
		if a, ok := v.([]any); ok && len(a) >= 2 {
			lon, lok := a[0].(float64)
			lat, aok := a[1].(float64)
			if lok && aok {
				return LatLng{Lat: lat, Lng: lon}, true
			}
		}
		return LatLng{}, false
	}
	parseArrayPoints := func(v any) (pts []LatLng, ok bool) {
		arr, ok := v.([]any)
		if !ok {
			return nil, false
		}
		for _, el := range arr {
			if pt, ok := parsePoint(el); ok {
				pts = append(pts, pt)
			}
		}
		return pts, true
	}
	addPoint := func(pt LatLng, props map[string]any) {
		if radius, ok := props["radius"].(float64); ok && radius > 0 {
			out = append(out, Circle{Lat: pt.Lat, Lng: pt.Lng, Radius: radius})
			return
		}
		name, _ := props["name"].(string)
		out = append(out, Marker{Lat: pt.Lat, Lng: pt.Lng, Name: strings.TrimSpace(name)})
	}
	addPolygon := func(v any, props map[string]any) {
		rings, ok := v.([]any)
		if !ok || len(rings) == 0 {
			return
		}
		outer, ok := parseArrayPoints(rings[0])
		if !ok {
			return
		}
		if shape, _ := props["shape"].(string); strings.EqualFold(shape, "rectangle") {
			if ring := UncloseRectangle(outer); len(ring) == 4 {
				out = append(out, Rectangle{Ring: ring})
				return
			}
		}
		out = append(out, Polygon{Ring: Unclose(outer)})
	}
	var walkGeom func(g map[string]any, props map[string]any)
	walkGeom = func(g map[string]any, props map[string]any) {
		gt, _ := g["type"].(string)
		switch gt {
		case "Point":
			if pt, ok := parsePoint(g["coordinates"]); ok {
				addPoint(pt, props)
			}
		case "MultiPoint":
			if pts, ok := parseArrayPoints(g["coordinates"]); ok {
				for _, p := range pts {
					addPoint(p, props)
				}
			}
		case "LineString":
			if ls, ok := parseArrayPoints(g["coordinates"]); ok {
				out = append(out, Polyline{Points: ls})
			}
		case "MultiLineString":
			if arr, ok := g["coordinates"].([]any); ok {
				for _, el := range arr {
					if ls, ok := parseArrayPoints(el); ok {
						out = append(out, Polyline{Points: ls})
					}
				}
			}
		case "Polygon":
			addPolygon(g["coordinates"], props)
		case "MultiPolygon":
			if arr, ok := g["coordinates"].([]any); ok {
				for _, el := range arr {
					addPolygon(el, props)
				}
			}
		case "GeometryCollection":
			if gs, ok := g["geometries"].([]any); ok {
				for _, el := range gs {
					if gm, ok := el.(map[string]any); ok {
						walkGeom(gm, props)
					}
				}
			}
		}
	}
	walkFeature := func(f map[string]any) {
		props, _ := f["properties"].(map[string]any)
		if g, ok := f["geometry"].(map[string]any); ok {
			walkGeom(g, props)
		}
	}
	t, _ := raw["type"].(string)
	switch t {
	case "Feature":
		walkFeature(raw)
	case "FeatureCollection":
		if fs, ok := raw["features"].([]any); ok {
			for _, f := range fs {
				if fm, ok := f.(map[string]any); ok {
					walkFeature(fm)
				}
			}
		}
	default:
		if len(raw) > 0 {
			walkGeom(raw, nil)
		}
	}
	if len(out) == 0 {
		return nil, errors.New("geojson: no geometries found")
	}
	return out, nil
}
