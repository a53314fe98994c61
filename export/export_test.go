package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"github.com/sfomuseum/go-media-points"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"io"
	"strconv"
	"strings"
	"testing"
)

func float(v float64) *float64 {
	return &v
}

func millis(v int64) *int64 {
	return &v
}

func testImages() []points.ImagePoint {

	return []points.ImagePoint{
		{SourceName: "DJI_0001.JPG", Latitude: 45.66, Longitude: 13.77, Altitude: float(120.5), Timestamp: millis(1545308562000)},
		{SourceName: "DJI_0002.JPG", Latitude: -33.8688197, Longitude: 151.2092955},
		{SourceName: "with, comma.jpg", Latitude: 0.5, Longitude: -0.25, Altitude: float(-3), Timestamp: millis(50)},
	}
}

func TestParseFormat(t *testing.T) {

	tests := []struct {
		input    string
		expected Format
	}{
		{"geojson", GeoJSON},
		{" GeoJSON ", GeoJSON},
		{"csv", CSV},
		{"geo", GeoText},
		{"geo.txt", GeoText},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			f, err := ParseFormat(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, f)
		})
	}

	_, err := ParseFormat("kml")
	assert.True(t, errors.Is(err, ErrUnknownFormat))
}

func TestExportGeoJSON(t *testing.T) {

	out, err := Export(testImages(), GeoJSON)
	require.NoError(t, err)

	assert.Equal(t, "images.geojson", out.Filename)
	assert.Equal(t, "application/geo+json", out.ContentType)

	require.True(t, gjson.ValidBytes(out.Body))
	assert.Contains(t, string(out.Body), "\n    \"type\"")

	assert.Equal(t, "FeatureCollection", gjson.GetBytes(out.Body, "type").String())
	assert.Equal(t, int64(3), gjson.GetBytes(out.Body, "features.#").Int())

	first := gjson.GetBytes(out.Body, "features.0")
	assert.Equal(t, "Point", first.Get("geometry.type").String())
	assert.Equal(t, "DJI_0001.JPG", first.Get("properties.Filename").String())
	assert.Equal(t, int64(1545308562000), first.Get("properties.Timestamp").Int())
	assert.Equal(t, 13.77, first.Get("geometry.coordinates.0").Float())
	assert.Equal(t, 45.66, first.Get("geometry.coordinates.1").Float())
	assert.Equal(t, 120.5, first.Get("geometry.coordinates.2").Float())

	second := gjson.GetBytes(out.Body, "features.1")
	assert.Equal(t, gjson.Null, second.Get("properties.Timestamp").Type)
	assert.True(t, second.Get("properties.Timestamp").Exists())
	assert.Equal(t, 0.0, second.Get("geometry.coordinates.2").Float())
}

func TestExportGeoJSONEmpty(t *testing.T) {

	out, err := Export(nil, GeoJSON)
	require.NoError(t, err)

	assert.True(t, gjson.GetBytes(out.Body, "features").IsArray())
	assert.Equal(t, int64(0), gjson.GetBytes(out.Body, "features.#").Int())
}

func TestExportCSV(t *testing.T) {

	images := testImages()

	out, err := Export(images, CSV)
	require.NoError(t, err)

	assert.Equal(t, "images.csv", out.Filename)
	assert.Equal(t, "text/csv", out.ContentType)
	assert.True(t, strings.HasPrefix(string(out.Body), "Filename,Timestamp,Latitude,Longitude,Altitude\r\n"))
	assert.Contains(t, string(out.Body), "\r\nDJI_0002.JPG,null,-33.8688197,151.2092955,0\r\n")

	rows, err := csv.NewReader(bytes.NewReader(out.Body)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, len(images)+1)

	for i, pt := range images {

		row := rows[i+1]

		assert.Equal(t, pt.SourceName, row[0])

		if pt.Timestamp == nil {
			assert.Equal(t, "null", row[1])
		} else {
			ts, err := strconv.ParseInt(row[1], 10, 64)
			require.NoError(t, err)
			assert.Equal(t, *pt.Timestamp, ts)
		}

		lat, err := strconv.ParseFloat(row[2], 64)
		require.NoError(t, err)
		assert.InDelta(t, pt.Latitude, lat, 1e-12)

		lon, err := strconv.ParseFloat(row[3], 64)
		require.NoError(t, err)
		assert.InDelta(t, pt.Longitude, lon, 1e-12)

		expected_alt := 0.0

		if pt.Altitude != nil {
			expected_alt = *pt.Altitude
		}

		alt, err := strconv.ParseFloat(row[4], 64)
		require.NoError(t, err)
		assert.InDelta(t, expected_alt, alt, 1e-12)
	}
}

func TestExportGeoText(t *testing.T) {

	images := testImages()[:2]

	out, err := Export(images, GeoText)
	require.NoError(t, err)

	assert.Equal(t, "geo.txt", out.Filename)
	assert.Equal(t, "text/plain", out.ContentType)

	expected := "EPSG:4326\r\nDJI_0001.JPG 13.77 45.66 120.5\r\nDJI_0002.JPG 151.2092955 -33.8688197 0"
	assert.Equal(t, expected, string(out.Body))
}

func TestExportUnknownFormat(t *testing.T) {

	_, err := Export(testImages(), Format("kml"))
	assert.True(t, errors.Is(err, ErrUnknownFormat))
}

func TestExportDoesNotModifyInput(t *testing.T) {

	images := testImages()
	before := testImages()

	for _, f := range Formats() {
		_, err := Export(images, f)
		require.NoError(t, err)
	}

	assert.Equal(t, before, images)
}

type mockSaver struct {
	writeFn func(ctx context.Context, key string, r io.ReadSeeker) (int64, error)
}

func (m *mockSaver) Write(ctx context.Context, key string, r io.ReadSeeker) (int64, error) {
	return m.writeFn(ctx, key, r)
}

func TestSave(t *testing.T) {

	ctx := context.Background()

	out, err := Export(testImages(), GeoText)
	require.NoError(t, err)

	var saved_key string
	var saved_body []byte

	wr := &mockSaver{
		writeFn: func(ctx context.Context, key string, r io.ReadSeeker) (int64, error) {

			body, err := io.ReadAll(r)

			if err != nil {
				return 0, err
			}

			saved_key = key
			saved_body = body

			return int64(len(body)), nil
		},
	}

	err = Save(ctx, wr, out)
	require.NoError(t, err)

	assert.Equal(t, "geo.txt", saved_key)
	assert.Equal(t, out.Body, saved_body)

	failing := &mockSaver{
		writeFn: func(ctx context.Context, key string, r io.ReadSeeker) (int64, error) {
			return 0, errors.New("disk full")
		},
	}

	err = Save(ctx, failing, out)
	assert.Error(t, err)
}

func TestSaveWithURI(t *testing.T) {

	ctx := context.Background()

	out, err := Export(testImages(), CSV)
	require.NoError(t, err)

	err = SaveWithURI(ctx, "null://", out)
	assert.NoError(t, err)

	err = SaveWithURI(ctx, "bogus-scheme://", out)
	assert.Error(t, err)
}
