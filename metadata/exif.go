package metadata

import (
	"bytes"
	"context"
	"fmt"
	"github.com/rwcarlsen/goexif/exif"
	"github.com/rwcarlsen/goexif/mknote"
	"github.com/sfomuseum/go-media-points"
	"github.com/sfomuseum/go-media-points/geo"
	"strings"
	"time"
)

// The layout of EXIF DateTime* values.
const EXIF_DATETIME_LAYOUT string = "2006:01:02 15:04:05"

func init() {
	exif.RegisterParsers(mknote.All...)
}

// Metadata is the subset of an image's embedded metadata the pipeline cares about.
type Metadata struct {
	Latitude    float64
	Longitude   float64
	Altitude    *float64
	CaptureTime *time.Time
}

// Extractor is the image metadata extraction capability.
type Extractor interface {
	Extract(context.Context, []byte) (*Metadata, error)
}

// ExifExtractor is an Extractor that decodes EXIF data using rwcarlsen/goexif.
type ExifExtractor struct {
	// The location used to interpret DateTimeOriginal values, which carry no zone. Defaults to UTC.
	Location *time.Location
}

// NewExifExtractor returns a new ExifExtractor instance interpreting capture times in loc.
func NewExifExtractor(loc *time.Location) *ExifExtractor {

	ex := &ExifExtractor{
		Location: loc,
	}

	return ex
}

func (ex *ExifExtractor) Extract(ctx context.Context, body []byte) (*Metadata, error) {

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
		// pass
	}

	x, err := exif.Decode(bytes.NewReader(body))

	if err != nil {
		return nil, fmt.Errorf("Failed to decode EXIF data, %w", err)
	}

	lat, lon, err := x.LatLong()

	if err != nil {
		return nil, fmt.Errorf("Failed to derive GPS coordinates, %v, %w", err, points.ErrMissingGPS)
	}

	if !geo.IsValidLatLon(lat, lon) {
		return nil, fmt.Errorf("Invalid GPS coordinates %f, %f, %w", lat, lon, points.ErrOutOfRange)
	}

	md := &Metadata{
		Latitude:  lat,
		Longitude: lon,
	}

	alt, ok := altitude(x)

	if ok {
		md.Altitude = &alt
	}

	t, ok := ex.captureTime(x)

	if ok {
		md.CaptureTime = &t
	}

	return md, nil
}

func (ex *ExifExtractor) captureTime(x *exif.Exif) (time.Time, bool) {

	tag, err := x.Get(exif.DateTimeOriginal)

	if err != nil {
		return time.Time{}, false
	}

	str_dt, err := tag.StringVal()

	if err != nil {
		return time.Time{}, false
	}

	str_dt = strings.TrimRight(strings.TrimSpace(str_dt), "\x00")

	loc := ex.Location

	if loc == nil {
		loc = time.UTC
	}

	t, err := time.ParseInLocation(EXIF_DATETIME_LAYOUT, str_dt, loc)

	if err != nil {
		return time.Time{}, false
	}

	return t, true
}

// altitude returns GPSAltitude in metres, negated when GPSAltitudeRef says below sea level.
func altitude(x *exif.Exif) (float64, bool) {

	tag, err := x.Get(exif.GPSAltitude)

	if err != nil {
		return 0, false
	}

	num, den, err := tag.Rat2(0)

	if err != nil || den == 0 {
		return 0, false
	}

	alt := float64(num) / float64(den)

	ref, err := x.Get(exif.GPSAltitudeRef)

	if err == nil {

		v, err := ref.Int(0)

		if err == nil && v == 1 {
			alt = -alt
		}
	}

	return alt, true
}
