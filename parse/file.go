package parse

import (
	"context"
	"fmt"
	"github.com/sfomuseum/go-media-points"
)

// Kind identifies which text format a file is parsed as.
type Kind string

const (
	GCP Kind = "gcp"
	Geo Kind = "geo"
)

// Outcome is the result of parsing a single file. A non-nil Err means the file was skipped
// and holds no points.
type Outcome struct {
	Name         string
	Kind         Kind
	GCPs         []points.GCPPoint
	Geo          []points.GeoPoint
	SkippedLines int
	Err          error
}

// ParseFile reads and parses f as kind. Read failures, and anything else that goes wrong
// while parsing, are captured in the returned Outcome rather than returned.
func ParseFile(ctx context.Context, f points.File, kind Kind, conv Converter) (outcome *Outcome) {

	outcome = &Outcome{
		Name: f.Name(),
		Kind: kind,
	}

	defer func() {

		r := recover()

		if r != nil {
			outcome.GCPs = nil
			outcome.Geo = nil
			outcome.Err = fmt.Errorf("Failed to parse %s (%v), %w", outcome.Name, r, points.ErrUnreadableFile)
		}
	}()

	text, err := f.ReadText(ctx)

	if err != nil {
		outcome.Err = fmt.Errorf("Failed to read %s, %v, %w", outcome.Name, err, points.ErrUnreadableFile)
		return outcome
	}

	switch kind {
	case GCP:
		outcome.GCPs, outcome.SkippedLines = ParseGCPText(text, outcome.Name, conv)
	case Geo:
		outcome.Geo, outcome.SkippedLines = ParseGeoText(text, outcome.Name, conv)
	default:
		outcome.Err = fmt.Errorf("Unsupported kind '%s' for %s", kind, outcome.Name)
	}

	return outcome
}

// ParseFiles parses every file in files concurrently. The returned outcomes are in the same
// order as files and there is exactly one outcome per file, regardless of failures.
func ParseFiles(ctx context.Context, files []points.File, kind Kind, conv Converter) []*Outcome {

	type indexedOutcome struct {
		Index   int
		Outcome *Outcome
	}

	done_ch := make(chan bool)
	rsp_ch := make(chan indexedOutcome)

	for idx, f := range files {

		go func(idx int, f points.File) {

			defer func() {
				done_ch <- true
			}()

			rsp_ch <- indexedOutcome{
				Index:   idx,
				Outcome: ParseFile(ctx, f, kind, conv),
			}

		}(idx, f)
	}

	remaining := len(files)
	outcomes := make([]*Outcome, len(files))

	for remaining > 0 {

		select {
		case <-done_ch:
			remaining -= 1
		case rsp := <-rsp_ch:
			outcomes[rsp.Index] = rsp.Outcome
		}
	}

	return outcomes
}
