package geom

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Importable reports whether LoadFile understands the file extension.
func Importable(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".geojson", ".json", ".csv", ".kml", ".wkt":
		return true
	}
	return false
}

// LoadFile reads records from a GeoJSON, CSV, KML or WKT file.
func LoadFile(path string) ([]Record, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if !Importable(path) {
		return nil, errors.New("unsupported file: " + ext)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	switch ext {
	case ".geojson", ".json":
		return ReadGeoJSON(f)
	case ".csv":
		return ReadCSV(f)
	case ".kml":
		return ReadKML(f)
	}
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}
	return ParseWKT(string(data))
}
