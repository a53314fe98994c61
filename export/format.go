package export

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownFormat is returned for export format names that are not supported.
var ErrUnknownFormat = errors.New("Unknown export format")

// Format is the name of an export format.
type Format string

const (
	GeoJSON Format = "geojson"
	CSV     Format = "csv"
	GeoText Format = "geo"
)

// Formats returns every supported Format.
func Formats() []Format {
	return []Format{GeoJSON, CSV, GeoText}
}

// ParseFormat returns the Format named by str, ignoring case and surrounding whitespace.
func ParseFormat(str string) (Format, error) {

	switch strings.ToLower(strings.TrimSpace(str)) {
	case "geojson", "json":
		return GeoJSON, nil
	case "csv":
		return CSV, nil
	case "geo", "txt", "geo.txt":
		return GeoText, nil
	default:
		return "", fmt.Errorf("Invalid format '%s', %w", str, ErrUnknownFormat)
	}
}

// Filename returns the suggested file name for output in format f.
func (f Format) Filename() string {

	switch f {
	case GeoJSON:
		return "images.geojson"
	case CSV:
		return "images.csv"
	case GeoText:
		return "geo.txt"
	default:
		return ""
	}
}

// ContentType returns the MIME type of output in format f.
func (f Format) ContentType() string {

	switch f {
	case GeoJSON:
		return "application/geo+json"
	case CSV:
		return "text/csv"
	case GeoText:
		return "text/plain"
	default:
		return ""
	}
}
