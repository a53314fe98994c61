// preview loads every file in one or more gocloud.dev/blob bucket URIs, prints a JSON summary of
// the points found and optionally exports the image points.
//
//	preview -export geojson -writer-uri fs:///tmp/out file:///path/to/flight
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"github.com/sfomuseum/go-media-points"
	"github.com/sfomuseum/go-media-points/common"
	"github.com/sfomuseum/go-media-points/config"
	"github.com/sfomuseum/go-media-points/export"
	"github.com/sfomuseum/go-media-points/gather"
	"github.com/sfomuseum/go-media-points/metadata"
	"github.com/sfomuseum/go-media-points/pipeline"
	"github.com/tidwall/pretty"
	"io"
	"log/slog"
	"os"
	"strings"
)

type Summary struct {
	Files                  int            `json:"files"`
	Images                 int            `json:"images"`
	GCPs                   int            `json:"gcps"`
	Geo                    int            `json:"geo"`
	Sampled                int            `json:"sampled"`
	AllImagesHaveTimestamp bool           `json:"all_images_have_timestamp"`
	BoundingBox            []float64      `json:"bounding_box,omitempty"`
	Report                 *points.Report `json:"report"`
	Export                 *ExportSummary `json:"export,omitempty"`
}

type ExportSummary struct {
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	WriterURI   string `json:"writer_uri"`
}

func main() {

	var config_path string
	var export_format string
	var writer_uri string
	var dedupe bool

	flag.StringVar(&config_path, "config", "", "Optional path to a YAML config file.")
	flag.StringVar(&export_format, "export", "", "Export the image points as geojson, csv or geo. Overrides export.format.")
	flag.StringVar(&writer_uri, "writer-uri", "", "A valid whosonfirst/go-writer URI to export to. Overrides export.writer_uri.")
	flag.BoolVar(&dedupe, "dedupe", false, "Skip files whose contents duplicate a file already gathered.")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] bucket-uri [bucket-uri...]\n", os.Args[0])
		flag.PrintDefaults()
	}

	flag.Parse()

	ctx := context.Background()

	err := run(ctx, config_path, export_format, writer_uri, dedupe, flag.Args())

	if err != nil {
		slog.Error("Failed to preview points", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, config_path string, export_format string, writer_uri string, dedupe bool, bucket_uris []string) error {

	cfg, err := config.Load(config_path)

	if err != nil {
		return fmt.Errorf("Failed to load config, %w", err)
	}

	if export_format != "" {
		cfg.Export.Format = export_format
	}

	if writer_uri != "" {
		cfg.Export.WriterURI = writer_uri
	}

	err = cfg.Validate()

	if err != nil {
		return err
	}

	logger := config.SetupLogger(cfg.Log.Level, cfg.Log.Format)

	if len(bucket_uris) == 0 {
		return fmt.Errorf("No bucket URIs to read from")
	}

	loc, err := cfg.Location()

	if err != nil {
		return fmt.Errorf("Failed to load timezone, %w", err)
	}

	crawl_opts := &gather.CrawlOptions{
		Deduplicate: dedupe,
		Logger:      logger,
	}

	files, close_buckets, err := gather.GatherFiles(ctx, bucket_uris, crawl_opts)

	if err != nil {
		return fmt.Errorf("Failed to gather files, %w", err)
	}

	defer close_buckets()

	controller := pipeline.NewController(&pipeline.ControllerOptions{
		Extractor:     metadata.NewExifExtractor(loc),
		ImageWorkers:  cfg.ImageWorkers,
		MaxPlotPoints: cfg.MaxPlotPoints,
		Logger:        logger,
	})

	defer controller.Close()

	rsp, err := controller.LoadPoints(ctx, files)

	if err != nil {
		return fmt.Errorf("Failed to load points, %w", err)
	}

	summary := &Summary{
		Files:                  rsp.Report.Files,
		Images:                 len(rsp.ImagePoints),
		GCPs:                   len(rsp.GCPPoints),
		Geo:                    len(rsp.GeoPoints),
		Sampled:                len(rsp.Sampled),
		AllImagesHaveTimestamp: rsp.AllImagesHaveTimestamp,
		Report:                 rsp.Report,
	}

	if rsp.BoundingBox != nil {
		summary.BoundingBox = rsp.BoundingBox.Array()
	}

	if cfg.Export.Format != "" {

		format, err := export.ParseFormat(cfg.Export.Format)

		if err != nil {
			return err
		}

		out, err := controller.Export(format)

		if err != nil {
			return fmt.Errorf("Failed to export points, %w", err)
		}

		err = export.SaveWithURI(ctx, cfg.Export.WriterURI, out)

		if err != nil {
			return fmt.Errorf("Failed to save export, %w", err)
		}

		err = common.CloseWriters(ctx)

		if err != nil {
			return err
		}

		summary.Export = &ExportSummary{
			Filename:    out.Filename,
			ContentType: out.ContentType,
			WriterURI:   cfg.Export.WriterURI,
		}
	}

	enc, err := json.Marshal(summary)

	if err != nil {
		return fmt.Errorf("Failed to marshal summary, %w", err)
	}

	fmt.Fprintln(summaryWriter(cfg.Export.Format, cfg.Export.WriterURI), string(pretty.Pretty(enc)))
	return nil
}

// summaryWriter returns STDERR when the export body itself is being written to STDOUT, so
// the two never interleave, and STDOUT otherwise.
func summaryWriter(export_format string, writer_uri string) io.Writer {

	if export_format != "" && strings.HasPrefix(strings.ToLower(writer_uri), "stdout://") {
		return os.Stderr
	}

	return os.Stdout
}
