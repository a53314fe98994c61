// Package parse reads ground control point lists and generic geo-referenced point lists. Neither format declares its column layout so each data line is matched against an ordered set of line shapes; an optional first line may declare the coordinate reference system for the rest of the file.
package parse

import (
	"strings"
)

// TextBlock is a point file split into its declared SRS (possibly empty) and its data lines.
type TextBlock struct {
	SRS   string
	Lines []string
}

// LooksLikeSrsLine reports whether line reads as a CRS declaration: an EPSG code, a PROJ
// string, the WGS84 alias or a LONG/LAT style marker.
func LooksLikeSrsLine(line string) bool {

	upper := strings.ToUpper(strings.TrimSpace(line))

	if upper == "" {
		return false
	}

	switch {
	case strings.HasPrefix(upper, "EPSG:"):
		return true
	case strings.HasPrefix(upper, "+PROJ="):
		return true
	case upper == "WGS84":
		return true
	case strings.Contains(upper, "LONG/LAT"), strings.Contains(upper, "LAT/LONG"), strings.Contains(upper, "LATLONG"):
		return true
	}

	return false
}

// SplitSrsAndData trims every line of text and drops blank lines and lines starting with '#'.
// If the first remaining line looks like an SRS declaration it becomes the block's SRS and
// is excluded from the data lines.
func SplitSrsAndData(text string) *TextBlock {

	block := &TextBlock{
		Lines: make([]string, 0),
	}

	first := true

	for _, line := range strings.Split(text, "\n") {

		line = strings.TrimSpace(line)

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if first {

			first = false

			if LooksLikeSrsLine(line) {
				block.SRS = line
				continue
			}
		}

		block.Lines = append(block.Lines, line)
	}

	return block
}
