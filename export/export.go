// Package export serializes image points as GeoJSON, CSV or geo text and delivers the result
// to a whosonfirst/go-writer Writer.
package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"github.com/sfomuseum/go-media-points"
	"github.com/tidwall/pretty"
	"strconv"
	"strings"
)

const crlf string = "\r\n"

// The CSV Timestamp value written for points without a capture time.
const CSV_NO_TIMESTAMP string = "null"

// Output is a serialized set of image points.
type Output struct {
	Body []byte
	// The suggested file name for Body.
	Filename    string
	ContentType string
}

// Coordinates is a GeoJSON position.
type Coordinates []float64

// Geometry is a GeoJSON geometry dictionary.
type Geometry struct {
	Type        string      `json:"type"`
	Coordinates Coordinates `json:"coordinates"`
}

// Properties is a GeoJSON properties dictionary.
type Properties map[string]interface{}

// Feature is a GeoJSON feature.
type Feature struct {
	Type       string     `json:"type"`
	Properties Properties `json:"properties"`
	Geometry   Geometry   `json:"geometry"`
}

// FeatureCollection is a GeoJSON feature collection.
type FeatureCollection struct {
	Type     string     `json:"type"`
	Features []*Feature `json:"features"`
}

// Export serializes images in format. images is only read.
func Export(images []points.ImagePoint, format Format) (*Output, error) {

	var body []byte
	var err error

	switch format {
	case GeoJSON:
		body, err = exportGeoJSON(images)
	case CSV:
		body, err = exportCSV(images)
	case GeoText:
		body = exportGeoText(images)
	default:
		return nil, fmt.Errorf("Invalid format '%s', %w", format, ErrUnknownFormat)
	}

	if err != nil {
		return nil, fmt.Errorf("Failed to export %s, %w", format, err)
	}

	out := &Output{
		Body:        body,
		Filename:    format.Filename(),
		ContentType: format.ContentType(),
	}

	return out, nil
}

// NewFeature returns the GeoJSON Point feature for pt. Coordinates are longitude, latitude and
// altitude (0 when unknown) and the timestamp property is null when pt has none.
func NewFeature(pt points.ImagePoint) *Feature {

	var timestamp interface{}

	if pt.Timestamp != nil {
		timestamp = *pt.Timestamp
	}

	f := &Feature{
		Type: "Feature",
		Properties: Properties{
			"Filename":  pt.SourceName,
			"Timestamp": timestamp,
		},
		Geometry: Geometry{
			Type:        "Point",
			Coordinates: Coordinates{pt.Longitude, pt.Latitude, altitude(pt)},
		},
	}

	return f
}

func exportGeoJSON(images []points.ImagePoint) ([]byte, error) {

	fc := &FeatureCollection{
		Type:     "FeatureCollection",
		Features: make([]*Feature, len(images)),
	}

	for i, pt := range images {
		fc.Features[i] = NewFeature(pt)
	}

	enc, err := json.Marshal(fc)

	if err != nil {
		return nil, fmt.Errorf("Failed to marshal feature collection, %w", err)
	}

	opts := &pretty.Options{
		Indent:   "    ",
		SortKeys: false,
	}

	return pretty.PrettyOptions(enc, opts), nil
}

func exportCSV(images []points.ImagePoint) ([]byte, error) {

	var buf bytes.Buffer

	wr := csv.NewWriter(&buf)
	wr.UseCRLF = true

	err := wr.Write([]string{"Filename", "Timestamp", "Latitude", "Longitude", "Altitude"})

	if err != nil {
		return nil, fmt.Errorf("Failed to write CSV header, %w", err)
	}

	for _, pt := range images {

		row := []string{
			pt.SourceName,
			CSV_NO_TIMESTAMP,
			formatFloat(pt.Latitude),
			formatFloat(pt.Longitude),
			formatFloat(altitude(pt)),
		}

		if pt.Timestamp != nil {
			row[1] = strconv.FormatInt(*pt.Timestamp, 10)
		}

		err := wr.Write(row)

		if err != nil {
			return nil, fmt.Errorf("Failed to write CSV row for %s, %w", pt.SourceName, err)
		}
	}

	wr.Flush()

	err = wr.Error()

	if err != nil {
		return nil, fmt.Errorf("Failed to flush CSV writer, %w", err)
	}

	return buf.Bytes(), nil
}

func exportGeoText(images []points.ImagePoint) []byte {

	lines := make([]string, 0, len(images)+1)
	lines = append(lines, "EPSG:4326")

	for _, pt := range images {

		line := strings.Join([]string{
			pt.SourceName,
			formatFloat(pt.Longitude),
			formatFloat(pt.Latitude),
			formatFloat(altitude(pt)),
		}, " ")

		lines = append(lines, line)
	}

	return []byte(strings.Join(lines, crlf))
}

// altitude returns pt's altitude, or 0 if it has none.
func altitude(pt points.ImagePoint) float64 {

	if pt.Altitude == nil {
		return 0
	}

	return *pt.Altitude
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
