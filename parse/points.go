package parse

import (
	"github.com/sfomuseum/go-media-points"
	"github.com/sfomuseum/go-media-points/geo"
	"log/slog"
	"strings"
)

// Converter converts a raw coordinate pair, in the CRS described by srs, to longitude, latitude.
// It is satisfied by *crs.Converter.
type Converter interface {
	Convert(srs string, x string, y string) (float64, float64, bool)
}

type parsedLine struct {
	label    string
	lon      float64
	lat      float64
	altitude *float64
}

// parseLines applies shapes to every data line in block. Lines that match no shape or
// whose coordinates cannot be converted are counted and dropped.
func parseLines(block *TextBlock, shapes []*lineShape, source string, conv Converter) ([]*parsedLine, int) {

	logger := slog.Default()
	logger = logger.With("source", source)

	parsed := make([]*parsedLine, 0, len(block.Lines))
	skipped := 0

	for idx, line := range block.Lines {

		parts := strings.Fields(line)
		s := matchShape(shapes, parts)

		if s == nil {
			logger.Debug("Line does not match any known layout, skipping", "line", idx+1, "error", points.ErrUnparsableLine)
			skipped += 1
			continue
		}

		start := s.coordStart(parts)

		if s.require_alt && len(parts) <= start+2 {
			logger.Debug("Line is missing an altitude column, skipping", "line", idx+1, "shape", s.name)
			skipped += 1
			continue
		}

		lon, lat, ok := conv.Convert(block.SRS, parts[start], parts[start+1])

		if !ok {
			logger.Debug("Failed to convert coordinates, skipping", "line", idx+1, "srs", block.SRS, "error", points.ErrOutOfRange)
			skipped += 1
			continue
		}

		var altitude *float64

		if len(parts) > start+2 {

			v, ok := geo.ToNumber(parts[start+2])

			if ok {
				altitude = &v
			}
		}

		pl := &parsedLine{
			label:    s.label(parts, idx, source),
			lon:      lon,
			lat:      lat,
			altitude: altitude,
		}

		parsed = append(parsed, pl)
	}

	return parsed, skipped
}

// ParseGCPText parses the body of a ground control point list. It returns the points found,
// in file order, and the number of data lines that were skipped.
func ParseGCPText(text string, source string, conv Converter) ([]points.GCPPoint, int) {

	block := SplitSrsAndData(text)
	parsed, skipped := parseLines(block, gcpShapes, source, conv)

	gcps := make([]points.GCPPoint, len(parsed))

	for i, pl := range parsed {

		gcps[i] = points.GCPPoint{
			Label:          pl.label,
			Latitude:       pl.lat,
			Longitude:      pl.lon,
			Altitude:       pl.altitude,
			SourceFileName: source,
		}
	}

	return gcps, skipped
}

// ParseGeoText parses the body of a generic geo-referenced point list. It returns the points
// found, in file order, and the number of data lines that were skipped.
func ParseGeoText(text string, source string, conv Converter) ([]points.GeoPoint, int) {

	block := SplitSrsAndData(text)
	parsed, skipped := parseLines(block, geoShapes, source, conv)

	geo_points := make([]points.GeoPoint, len(parsed))

	for i, pl := range parsed {

		geo_points[i] = points.GeoPoint{
			Label:          pl.label,
			Latitude:       pl.lat,
			Longitude:      pl.lon,
			Altitude:       pl.altitude,
			SourceFileName: source,
		}
	}

	return geo_points, skipped
}
