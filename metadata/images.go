// Package metadata extracts GPS locations and capture times from images and turns a batch of images into an ordered list of image points.
package metadata

import (
	"context"
	"errors"
	"fmt"
	"github.com/sfomuseum/go-media-points"
	"github.com/sfomuseum/go-media-points/geo"
	"golang.org/x/sync/errgroup"
	"log/slog"
	"sort"
)

// ExtractOptions configures ExtractImages.
type ExtractOptions struct {
	// The maximum number of images processed at once. Values less than 1 mean one at a time.
	Workers int
	// Optional logger for skipped images. Defaults to slog.Default().
	Logger *slog.Logger
}

// ImageResult is the merged outcome of extracting metadata from a batch of images.
type ImageResult struct {
	// Points in ascending timestamp order when AllHaveTimestamp is true, input order otherwise.
	Points []points.ImagePoint
	// False if any image that produced a point had no usable capture time.
	AllHaveTimestamp bool
	Skipped          []points.Skipped
}

// slot holds the result for the image at the same index in the input.
type slot struct {
	point *points.ImagePoint
	err   error
}

// ExtractImages attempts every image in files exactly once. Work may run concurrently
// (see ExtractOptions.Workers) but each result lands in a slot indexed by input position
// and the timestamp flag and ordering are derived in a single pass once all of them are
// done, so the outcome does not depend on completion order.
func ExtractImages(ctx context.Context, files []points.File, ex Extractor, opts *ExtractOptions) (*ImageResult, error) {

	if opts == nil {
		opts = &ExtractOptions{}
	}

	logger := opts.Logger

	if logger == nil {
		logger = slog.Default()
	}

	workers := opts.Workers

	if workers < 1 {
		workers = 1
	}

	slots := make([]slot, len(files))

	g, g_ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for idx, f := range files {

		g.Go(func() error {

			select {
			case <-g_ctx.Done():
				return g_ctx.Err()
			default:
				// pass
			}

			pt, err := extractImage(g_ctx, f, ex)

			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return err
			}

			slots[idx] = slot{
				point: pt,
				err:   err,
			}

			return nil
		})
	}

	err := g.Wait()

	if err != nil {
		return nil, err
	}

	rsp := &ImageResult{
		Points:           make([]points.ImagePoint, 0, len(files)),
		AllHaveTimestamp: true,
		Skipped:          make([]points.Skipped, 0),
	}

	for idx, s := range slots {

		if s.err != nil {

			name := files[idx].Name()
			logger.Warn("Failed to extract image location, skipping", "image", name, "error", s.err)

			rsp.Skipped = append(rsp.Skipped, points.Skipped{
				Name:   name,
				Kind:   points.SkippedImage,
				Reason: s.err.Error(),
			})

			continue
		}

		if s.point.Timestamp == nil {
			rsp.AllHaveTimestamp = false
		}

		rsp.Points = append(rsp.Points, *s.point)
	}

	if rsp.AllHaveTimestamp {

		sort.SliceStable(rsp.Points, func(i, j int) bool {
			return *rsp.Points[i].Timestamp < *rsp.Points[j].Timestamp
		})
	}

	return rsp, nil
}

func extractImage(ctx context.Context, f points.File, ex Extractor) (pt *points.ImagePoint, err error) {

	name := f.Name()

	defer func() {

		r := recover()

		if r != nil {
			pt = nil
			err = fmt.Errorf("Failed to extract metadata from %s (%v), %w", name, r, points.ErrUnreadableFile)
		}
	}()

	body, err := f.ReadBinary(ctx)

	if err != nil {

		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		return nil, fmt.Errorf("Failed to read %s, %v, %w", name, err, points.ErrUnreadableFile)
	}

	md, err := ex.Extract(ctx, body)

	if err != nil {

		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		return nil, fmt.Errorf("Failed to extract metadata from %s, %w", name, err)
	}

	if md == nil || md.Latitude == 0 || md.Longitude == 0 {
		return nil, fmt.Errorf("%s has no GPS location, %w", name, points.ErrMissingGPS)
	}

	if !geo.IsValidLatLon(md.Latitude, md.Longitude) {
		return nil, fmt.Errorf("%s has an invalid GPS location %f, %f, %w", name, md.Latitude, md.Longitude, points.ErrOutOfRange)
	}

	pt = &points.ImagePoint{
		SourceName: name,
		Latitude:   md.Latitude,
		Longitude:  md.Longitude,
		Altitude:   md.Altitude,
	}

	if md.CaptureTime != nil && !md.CaptureTime.IsZero() {
		ts := md.CaptureTime.UnixMilli()
		pt.Timestamp = &ts
	}

	return pt, nil
}
