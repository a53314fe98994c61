// Package pipeline turns a batch of input files into a single normalized set of WGS84 points.
//
// A Controller classifies the files, extracts image locations and parses GCP and geo lists
// concurrently, then merges everything into one aggregate state which is published only once
// every per-file task has resolved. Starting a new load supersedes any load still in flight.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"github.com/sfomuseum/go-media-points"
	"github.com/sfomuseum/go-media-points/aggregate"
	"github.com/sfomuseum/go-media-points/classify"
	"github.com/sfomuseum/go-media-points/crs"
	"github.com/sfomuseum/go-media-points/export"
	"github.com/sfomuseum/go-media-points/metadata"
	"github.com/sfomuseum/go-media-points/parse"
	"log/slog"
	"sync"
	"time"
)

// ErrSuperseded is returned by a load that was overtaken by a newer one before it finished.
var ErrSuperseded = errors.New("Load superseded by a newer load")

// ErrNotLoaded is returned when state is requested before any load has completed.
var ErrNotLoaded = errors.New("No points have been loaded")

// ErrClosed is returned by a Controller that has been closed.
var ErrClosed = errors.New("Controller is closed")

// ControllerOptions configures a Controller. Every field is optional.
type ControllerOptions struct {
	// The image metadata capability. Defaults to an EXIF extractor interpreting capture times as UTC.
	Extractor metadata.Extractor
	// The coordinate conversion capability. Defaults to crs.NewDefaultConverter().
	Converter parse.Converter
	// The number of images processed at once. Defaults to 1.
	ImageWorkers int
	// The maximum number of image points in a sampled view. Defaults to aggregate.DEFAULT_MAX_PLOT_POINTS.
	MaxPlotPoints int
	Logger        *slog.Logger
}

// Result is the outcome of a load.
type Result struct {
	ImagePoints            []points.ImagePoint `json:"image_points"`
	GCPPoints              []points.GCPPoint   `json:"gcp_points"`
	GeoPoints              []points.GeoPoint   `json:"geo_points"`
	BoundingBox            *points.BoundingBox `json:"bounding_box,omitempty"`
	AllImagesHaveTimestamp bool                `json:"all_images_have_timestamp"`
	// A bounded, order preserving subset of ImagePoints for display.
	Sampled []points.ImagePoint `json:"sampled"`
	Report  *points.Report      `json:"report"`
}

// Controller owns the aggregate state of the most recent load.
type Controller struct {
	extractor       metadata.Extractor
	converter       parse.Converter
	workers         int
	max_plot_points int
	logger          *slog.Logger
	mu              *sync.Mutex
	generation      uint64
	cancel          context.CancelFunc
	state           *aggregate.State
	closed          bool
}

// NewController returns a new Controller configured by opts, which may be nil.
func NewController(opts *ControllerOptions) *Controller {

	if opts == nil {
		opts = &ControllerOptions{}
	}

	c := &Controller{
		extractor:       opts.Extractor,
		converter:       opts.Converter,
		workers:         opts.ImageWorkers,
		max_plot_points: opts.MaxPlotPoints,
		logger:          opts.Logger,
		mu:              new(sync.Mutex),
	}

	if c.extractor == nil {
		c.extractor = metadata.NewExifExtractor(time.UTC)
	}

	if c.converter == nil {
		c.converter = crs.NewDefaultConverter()
	}

	if c.workers < 1 {
		c.workers = 1
	}

	if c.max_plot_points < 1 {
		c.max_plot_points = aggregate.DEFAULT_MAX_PLOT_POINTS
	}

	if c.logger == nil {
		c.logger = slog.Default()
	}

	return c
}

// LoadPoints classifies files, extracts and parses every one of them and publishes the merged
// result as the Controller's current state. Per-file problems are recorded in Result.Report and
// never fail the load. If another load starts before this one finishes this load returns
// ErrSuperseded and its results are discarded.
func (c *Controller) LoadPoints(ctx context.Context, files []points.File) (*Result, error) {

	load_ctx, cancel, generation, err := c.begin(ctx)

	if err != nil {
		return nil, err
	}

	defer cancel()

	logger := c.logger.With("load", generation)
	t1 := time.Now()

	groups := classify.Classify(files)

	logger.Debug("Classified files", "images", len(groups.Images), "gcp", len(groups.GCP), "geo", len(groups.Geo), "ignored", len(groups.Ignored))

	var image_rsp *metadata.ImageResult
	var image_err error
	var gcp_outcomes []*parse.Outcome
	var geo_outcomes []*parse.Outcome

	wg := new(sync.WaitGroup)
	wg.Add(3)

	go func() {

		defer wg.Done()

		opts := &metadata.ExtractOptions{
			Workers: c.workers,
			Logger:  logger,
		}

		image_rsp, image_err = metadata.ExtractImages(load_ctx, groups.Images, c.extractor, opts)
	}()

	go func() {
		defer wg.Done()
		gcp_outcomes = parse.ParseFiles(load_ctx, groups.GCP, parse.GCP, c.converter)
	}()

	go func() {
		defer wg.Done()
		geo_outcomes = parse.ParseFiles(load_ctx, groups.Geo, parse.Geo, c.converter)
	}()

	wg.Wait()

	c.mu.Lock()
	defer c.mu.Unlock()

	if generation != c.generation {
		logger.Debug("Discarding superseded load")
		return nil, ErrSuperseded
	}

	c.cancel = nil

	if image_err != nil {
		return nil, fmt.Errorf("Failed to extract image points, %w", image_err)
	}

	err = load_ctx.Err()

	if err != nil {
		return nil, err
	}

	merge_opts := &aggregate.MergeOptions{
		Files:   len(files),
		Ignored: len(groups.Ignored),
		Logger:  logger,
	}

	c.state = aggregate.Merge(image_rsp, gcp_outcomes, geo_outcomes, merge_opts)

	logger.Info("Loaded points", "images", len(c.state.Images), "gcp", len(c.state.GCPs), "geo", len(c.state.Geo), "skipped", len(c.state.Report.Skipped), "time", time.Since(t1))

	return c.result(c.state), nil
}

// begin cancels any load still in flight and returns the context and generation of a new one.
func (c *Controller) begin(ctx context.Context) (context.Context, context.CancelFunc, uint64, error) {

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil, nil, 0, ErrClosed
	}

	if c.cancel != nil {
		c.cancel()
	}

	load_ctx, cancel := context.WithCancel(ctx)

	c.generation += 1
	c.cancel = cancel

	return load_ctx, cancel, c.generation, nil
}

// result returns a copy of s safe to hand to callers. Callers must hold c.mu.
func (c *Controller) result(s *aggregate.State) *Result {

	s = s.Clone()

	r := &Result{
		ImagePoints:            s.Images,
		GCPPoints:              s.GCPs,
		GeoPoints:              s.Geo,
		BoundingBox:            s.BoundingBox,
		AllImagesHaveTimestamp: s.AllImagesHaveTimestamp,
		Sampled:                s.Sampled(c.max_plot_points),
		Report:                 s.Report,
	}

	return r
}

// Current returns a copy of the most recently published result, or nil if no load has completed.
func (c *Controller) Current() *Result {

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == nil {
		return nil
	}

	return c.result(c.state)
}

// Sampled returns the sampled view of the current image points.
func (c *Controller) Sampled() ([]points.ImagePoint, error) {

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == nil {
		return nil, ErrNotLoaded
	}

	return c.state.Sampled(c.max_plot_points), nil
}

// Export serializes the current image points in format.
func (c *Controller) Export(format export.Format) (*export.Output, error) {

	c.mu.Lock()
	state := c.state
	c.mu.Unlock()

	if state == nil {
		return nil, ErrNotLoaded
	}

	// Published states are never modified.
	return export.Export(state.Images, format)
}

// Close cancels any load in flight and discards the current state.
func (c *Controller) Close() error {

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}

	c.generation += 1
	c.state = nil
	c.closed = true

	return nil
}
