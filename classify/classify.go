// Package classify routes input files to the image, GCP list or geo list parsers based on their MIME type and file name.
package classify

import (
	"github.com/sfomuseum/go-media-points"
	"path"
	"path/filepath"
	"strings"
)

var gcp_names = []string{
	"gcp_list.txt",
	"gcp.txt",
	"ground_control_points.txt",
}

var gcp_suffixes = []string{
	"_gcp.txt",
}

var geo_names = []string{
	"geo.txt",
	"coords.txt",
}

var geo_suffixes = []string{
	"_geo.txt",
}

// Groups is the partition of a batch of files produced by Classify. Each group preserves
// the input order.
type Groups struct {
	Images []points.File
	GCP    []points.File
	Geo    []points.File
	// Files that matched none of the other groups.
	Ignored []points.File
}

// IsImage reports whether mimetype describes an image.
func IsImage(mimetype string) bool {
	return strings.HasPrefix(mimetype, "image")
}

// IsGCPName reports whether the base of name (compared case-insensitively) is a known GCP list file name.
func IsGCPName(name string) bool {
	return matchName(name, gcp_names, gcp_suffixes)
}

// IsGeoName reports whether the base of name (compared case-insensitively) is a known geo list file name.
func IsGeoName(name string) bool {
	return matchName(name, geo_names, geo_suffixes)
}

// matchName compares the last element of name, so files gathered from nested folders
// classify the same as top-level ones.
func matchName(name string, names []string, suffixes []string) bool {

	if name == "" {
		return false
	}

	name = strings.ToLower(path.Base(filepath.ToSlash(name)))

	for _, n := range names {

		if name == n {
			return true
		}
	}

	for _, s := range suffixes {

		if strings.HasSuffix(name, s) {
			return true
		}
	}

	return false
}

// Classify partitions files. The image MIME check comes first, then the GCP name check,
// then the geo name check; a file lands in at most one group.
func Classify(files []points.File) *Groups {

	g := &Groups{
		Images:  make([]points.File, 0),
		GCP:     make([]points.File, 0),
		Geo:     make([]points.File, 0),
		Ignored: make([]points.File, 0),
	}

	for _, f := range files {

		if f == nil {
			continue
		}

		name := f.Name()

		switch {
		case IsImage(f.MimeType()):
			g.Images = append(g.Images, f)
		case IsGCPName(name):
			g.GCP = append(g.GCP, f)
		case IsGeoName(name):
			g.Geo = append(g.Geo, f)
		default:
			g.Ignored = append(g.Ignored, f)
		}
	}

	return g
}
