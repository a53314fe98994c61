package aggregate

import (
	"errors"
	"fmt"
	"github.com/sfomuseum/go-media-points"
	"github.com/sfomuseum/go-media-points/metadata"
	"github.com/sfomuseum/go-media-points/parse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

func ts(v int64) *int64 {
	return &v
}

func imagePoints(n int) []points.ImagePoint {

	pts := make([]points.ImagePoint, n)

	for i := 0; i < n; i++ {
		pts[i] = points.ImagePoint{
			SourceName: fmt.Sprintf("%03d.jpg", i),
			Latitude:   45.0 + float64(i)/1000.0,
			Longitude:  13.0 + float64(i)/1000.0,
			Timestamp:  ts(int64(i)),
		}
	}

	return pts
}

func TestMerge(t *testing.T) {

	images := &metadata.ImageResult{
		Points:           imagePoints(2),
		AllHaveTimestamp: true,
		Skipped: []points.Skipped{
			{Name: "broken.jpg", Kind: points.SkippedImage, Reason: "no gps"},
		},
	}

	gcp := []*parse.Outcome{
		{
			Name: "gcp_list.txt",
			Kind: parse.GCP,
			GCPs: []points.GCPPoint{
				{Label: "A", Latitude: 44.5, Longitude: 12.5, SourceFileName: "gcp_list.txt"},
			},
			SkippedLines: 2,
		},
		{
			Name: "unreadable_gcp.txt",
			Kind: parse.GCP,
			Err:  errors.New("read failed"),
		},
	}

	geo_outcomes := []*parse.Outcome{
		{
			Name: "geo.txt",
			Kind: parse.Geo,
			Geo: []points.GeoPoint{
				{Label: "B", Latitude: 46.5, Longitude: 14.5, SourceFileName: "geo.txt"},
			},
		},
	}

	s := Merge(images, gcp, geo_outcomes, &MergeOptions{Files: 6, Ignored: 1})

	assert.Len(t, s.Images, 2)
	assert.Len(t, s.GCPs, 1)
	assert.Len(t, s.Geo, 1)
	assert.True(t, s.AllImagesHaveTimestamp)

	require.NotNil(t, s.BoundingBox)
	assert.Equal(t, []float64{12.5, 44.5, 14.5, 46.5}, s.BoundingBox.Array())

	assert.Equal(t, 6, s.Report.Files)
	assert.Equal(t, 1, s.Report.Ignored)
	assert.Equal(t, 2, s.Report.SkippedLines)

	require.Len(t, s.Report.Skipped, 2)
	assert.Equal(t, "broken.jpg", s.Report.Skipped[0].Name)
	assert.Equal(t, "unreadable_gcp.txt", s.Report.Skipped[1].Name)
	assert.Equal(t, points.SkippedGCP, s.Report.Skipped[1].Kind)
}

func TestMergeEmpty(t *testing.T) {

	s := Merge(nil, nil, nil, nil)

	assert.Empty(t, s.Images)
	assert.Empty(t, s.GCPs)
	assert.Empty(t, s.Geo)
	assert.True(t, s.AllImagesHaveTimestamp)
	assert.Nil(t, s.BoundingBox)
}

func TestMergeNoValidPoints(t *testing.T) {

	images := &metadata.ImageResult{
		Points: []points.ImagePoint{
			{SourceName: "bad.jpg", Latitude: 95, Longitude: 10},
		},
	}

	s := Merge(images, nil, nil, nil)

	assert.Len(t, s.Images, 1)
	assert.False(t, s.AllImagesHaveTimestamp)
	assert.Nil(t, s.BoundingBox)
}

func TestSampled(t *testing.T) {

	s := NewState()
	s.Images = imagePoints(10)

	all := s.Sampled(DEFAULT_MAX_PLOT_POINTS)
	assert.Equal(t, s.Images, all)

	sampled := s.Sampled(4)
	require.Len(t, sampled, 4)

	names := make([]string, len(sampled))

	for i, p := range sampled {
		names[i] = p.SourceName
	}

	// stride 2.5
	assert.Equal(t, []string{"000.jpg", "002.jpg", "005.jpg", "007.jpg"}, names)
	assert.Equal(t, sampled, s.Sampled(4))

	sampled[0].SourceName = "changed.jpg"
	assert.Equal(t, "000.jpg", s.Images[0].SourceName)
}

func TestClone(t *testing.T) {

	s := Merge(&metadata.ImageResult{Points: imagePoints(3), AllHaveTimestamp: true}, nil, nil, nil)

	c := s.Clone()
	assert.Equal(t, s, c)

	c.Images[0].SourceName = "changed.jpg"
	c.BoundingBox.MinLat = -1

	assert.Equal(t, "000.jpg", s.Images[0].SourceName)
	assert.Equal(t, 45.0, s.BoundingBox.MinLat)
}
