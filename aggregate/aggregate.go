// Package aggregate merges the image, GCP and geo points produced by a single load into one
// state and derives the bounding box and the sampled display view from it.
package aggregate

import (
	"github.com/sfomuseum/go-media-points"
	"github.com/sfomuseum/go-media-points/geo"
	"github.com/sfomuseum/go-media-points/metadata"
	"github.com/sfomuseum/go-media-points/parse"
	"log/slog"
)

// The default maximum number of image points in a sampled view.
const DEFAULT_MAX_PLOT_POINTS int = 10000

// State is the merged outcome of a single load.
type State struct {
	Images                 []points.ImagePoint
	GCPs                   []points.GCPPoint
	Geo                    []points.GeoPoint
	AllImagesHaveTimestamp bool
	// Nil if no point across all three lists has a valid latitude and longitude.
	BoundingBox *points.BoundingBox
	Report      *points.Report
}

// MergeOptions configures Merge.
type MergeOptions struct {
	// The number of files handed to the load.
	Files int
	// The number of files that were not classified.
	Ignored int
	Logger  *slog.Logger
}

// NewState returns an empty State. The timestamp flag starts out true.
func NewState() *State {

	s := &State{
		Images:                 make([]points.ImagePoint, 0),
		GCPs:                   make([]points.GCPPoint, 0),
		Geo:                    make([]points.GeoPoint, 0),
		AllImagesHaveTimestamp: true,
		Report: &points.Report{
			Skipped: make([]points.Skipped, 0),
		},
	}

	return s
}

// Merge folds the results of every per-file task of a load into a new State. It must only be
// called once all of those tasks have resolved. images may be nil if the load had no images.
func Merge(images *metadata.ImageResult, gcp_outcomes []*parse.Outcome, geo_outcomes []*parse.Outcome, opts *MergeOptions) *State {

	if opts == nil {
		opts = &MergeOptions{}
	}

	logger := opts.Logger

	if logger == nil {
		logger = slog.Default()
	}

	s := NewState()
	s.Report.Files = opts.Files
	s.Report.Ignored = opts.Ignored

	if images != nil {
		s.Images = append(s.Images, images.Points...)
		s.AllImagesHaveTimestamp = images.AllHaveTimestamp
		s.Report.Skipped = append(s.Report.Skipped, images.Skipped...)
	}

	fold := func(outcomes []*parse.Outcome, kind points.SkippedKind) {

		for _, o := range outcomes {

			if o == nil {
				continue
			}

			s.Report.SkippedLines += o.SkippedLines

			if o.Err != nil {

				logger.Warn("Failed to parse points file, skipping", "file", o.Name, "kind", o.Kind, "error", o.Err)

				s.Report.Skipped = append(s.Report.Skipped, points.Skipped{
					Name:   o.Name,
					Kind:   kind,
					Reason: o.Err.Error(),
				})

				continue
			}

			if o.SkippedLines > 0 {
				logger.Debug("Skipped unparsable lines", "file", o.Name, "count", o.SkippedLines)
			}

			s.GCPs = append(s.GCPs, o.GCPs...)
			s.Geo = append(s.Geo, o.Geo...)
		}
	}

	fold(gcp_outcomes, points.SkippedGCP)
	fold(geo_outcomes, points.SkippedGeo)

	s.BoundingBox = s.computeBoundingBox()
	return s
}

func (s *State) computeBoundingBox() *points.BoundingBox {

	coords := make([]points.Coordinates, 0, len(s.Images)+len(s.GCPs)+len(s.Geo))

	for _, p := range s.Images {
		coords = append(coords, p)
	}

	for _, p := range s.GCPs {
		coords = append(coords, p)
	}

	for _, p := range s.Geo {
		coords = append(coords, p)
	}

	return geo.ComputeBoundingBox(coords...)
}

// Sampled returns at most max_n image points, chosen at a fixed stride and in order. A new
// slice is always returned so callers can not modify the state through it.
func (s *State) Sampled(max_n int) []points.ImagePoint {

	if len(s.Images) <= max_n {
		return clonePoints(s.Images)
	}

	return clonePoints(geo.Sample(s.Images, max_n))
}

// Clone returns a deep copy of s, suitable for handing out to readers.
func (s *State) Clone() *State {

	c := &State{
		Images:                 clonePoints(s.Images),
		GCPs:                   append(make([]points.GCPPoint, 0, len(s.GCPs)), s.GCPs...),
		Geo:                    append(make([]points.GeoPoint, 0, len(s.Geo)), s.Geo...),
		AllImagesHaveTimestamp: s.AllImagesHaveTimestamp,
	}

	if s.BoundingBox != nil {
		bb := *s.BoundingBox
		c.BoundingBox = &bb
	}

	if s.Report != nil {
		r := *s.Report
		r.Skipped = append(make([]points.Skipped, 0, len(s.Report.Skipped)), s.Report.Skipped...)
		c.Report = &r
	}

	return c
}

func clonePoints(pts []points.ImagePoint) []points.ImagePoint {
	return append(make([]points.ImagePoint, 0, len(pts)), pts...)
}
