package points

// SkippedKind labels the kind of input an item was skipped from.
type SkippedKind string

const (
	SkippedImage SkippedKind = "image"
	SkippedGCP   SkippedKind = "gcp"
	SkippedGeo   SkippedKind = "geo"
	SkippedLine  SkippedKind = "line"
)

// Skipped describes an input (file, image or line) that did not produce a point.
type Skipped struct {
	Name   string      `json:"name"`
	Kind   SkippedKind `json:"kind"`
	Reason string      `json:"reason"`
}

// Report summarizes a single load for diagnostic purposes.
type Report struct {
	// The number of files handed to the load.
	Files int `json:"files"`
	// The number of files that were not classified as an image, GCP list or geo list.
	Ignored int `json:"ignored"`
	// The number of lines, across all text files, that did not produce a point.
	SkippedLines int       `json:"skipped_lines"`
	Skipped      []Skipped `json:"skipped"`
}
