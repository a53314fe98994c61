// Package geo provides numeric coercion and latitude, longitude helpers shared by the point parsers, the CRS transformer and the aggregator.
package geo

import (
	"github.com/paulmach/orb"
	"github.com/sfomuseum/go-media-points"
	"math"
	"strconv"
	"strings"
)

// ToNumber parses raw as a finite float64. The boolean is false for anything that is not a finite number.
func ToNumber(raw string) (float64, bool) {

	raw = strings.TrimSpace(raw)

	if raw == "" {
		return 0, false
	}

	v, err := strconv.ParseFloat(raw, 64)

	if err != nil {
		return 0, false
	}

	if !IsFinite(v) {
		return 0, false
	}

	return v, true
}

// IsFinite reports whether v is neither NaN nor infinite.
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// IsValidLatLon reports whether lat, lon are finite and inside [-90, 90], [-180, 180].
func IsValidLatLon(lat float64, lon float64) bool {
	return IsFinite(lat) && IsFinite(lon) && math.Abs(lat) <= 90 && math.Abs(lon) <= 180
}

// GuessLonLat resolves an (x, y) pair of unknown axis order. If y, x reads as a valid
// lat, lon the pair is returned unchanged; otherwise if x, y does the pair is swapped.
func GuessLonLat(x float64, y float64) (float64, float64, bool) {

	if IsValidLatLon(y, x) {
		return x, y, true
	}

	if IsValidLatLon(x, y) {
		return y, x, true
	}

	return 0, 0, false
}

// ComputeBoundingBox returns the extent of every point in coords that passes IsValidLatLon,
// or nil if no point does.
func ComputeBoundingBox(coords ...points.Coordinates) *points.BoundingBox {

	var bound orb.Bound
	has_points := false

	for _, c := range coords {

		if c == nil {
			continue
		}

		lat, lon := c.LatLon()

		if !IsValidLatLon(lat, lon) {
			continue
		}

		pt := orb.Point{lon, lat}

		if !has_points {
			bound = pt.Bound()
			has_points = true
			continue
		}

		bound = bound.Extend(pt)
	}

	if !has_points {
		return nil
	}

	bbox := &points.BoundingBox{
		MinLon: bound.Left(),
		MinLat: bound.Bottom(),
		MaxLon: bound.Right(),
		MaxLat: bound.Top(),
	}

	return bbox
}

// Sample returns at most max_n elements of items, chosen at a fixed stride of len(items) / max_n
// and in their original order. If items already fits it is returned unchanged. A max_n of zero
// or less yields an empty slice.
func Sample[T any](items []T, max_n int) []T {

	if max_n <= 0 {
		return []T{}
	}

	if len(items) <= max_n {
		return items
	}

	step := float64(len(items)) / float64(max_n)
	sampled := make([]T, max_n)

	for i := 0; i < max_n; i++ {
		sampled[i] = items[int(math.Floor(float64(i)*step))]
	}

	return sampled
}
