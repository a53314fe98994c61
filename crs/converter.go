// Package crs converts coordinate pairs read from point files into WGS84 longitude, latitude. A declared CRS is transformed through a Projector when possible; anything else falls back to guessing the axis order.
package crs

import (
	"github.com/sfomuseum/go-media-points/geo"
	"log/slog"
	"strings"
)

// Converter applies the two-tier conversion policy: an authoritative transform when a CRS
// is declared, then the lon/lat guessing heuristic when the CRS is absent, unresolvable or
// produces out-of-range coordinates.
type Converter struct {
	// The projection capability. If nil only the heuristic is used.
	Projector Projector
	// Optional logger for transform failures. Defaults to slog.Default().
	Logger *slog.Logger
}

// NewConverter returns a Converter using p.
func NewConverter(p Projector) *Converter {

	c := &Converter{
		Projector: p,
	}

	return c
}

// NewDefaultConverter returns a Converter backed by a WGS84Projector.
func NewDefaultConverter() *Converter {
	return NewConverter(NewWGS84Projector())
}

// Convert coerces x and y to numbers and converts them to longitude, latitude.
func (c *Converter) Convert(srs string, x string, y string) (float64, float64, bool) {

	coord_x, ok := geo.ToNumber(x)

	if !ok {
		return 0, 0, false
	}

	coord_y, ok := geo.ToNumber(y)

	if !ok {
		return 0, 0, false
	}

	return c.ConvertFloat(srs, coord_x, coord_y)
}

// ConvertFloat converts numeric x and y to longitude, latitude.
func (c *Converter) ConvertFloat(srs string, x float64, y float64) (float64, float64, bool) {

	if !geo.IsFinite(x) || !geo.IsFinite(y) {
		return 0, 0, false
	}

	from := strings.TrimSpace(srs)

	if from != "" && c.Projector != nil {

		if strings.ToUpper(from) == "WGS84" {
			from = WGS84Definition
		}

		lon, lat, err := c.Projector.Transform(from, WGS84Definition, x, y)

		switch {
		case err != nil:
			c.logger().Debug("Unable to convert coordinates, falling back to axis guessing", "srs", from, "error", err)
		case !geo.IsValidLatLon(lat, lon):
			c.logger().Debug("Converted coordinates out of range, falling back to axis guessing", "srs", from, "lon", lon, "lat", lat)
		default:
			return lon, lat, true
		}
	}

	return geo.GuessLonLat(x, y)
}

func (c *Converter) logger() *slog.Logger {

	if c.Logger != nil {
		return c.Logger
	}

	return slog.Default()
}
