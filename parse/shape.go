package parse

import (
	"fmt"
	"github.com/sfomuseum/go-media-points/geo"
)

// lineShape is one candidate column layout for a data line. Shapes are tried in order and
// the first whose match function accepts the columns decides the label and where the
// coordinate pair starts.
type lineShape struct {
	name        string
	match       func(parts []string) bool
	label       func(parts []string, index int, source string) string
	require_alt bool
}

// numericPair reports whether the first two columns both parse as numbers.
func numericPair(parts []string) bool {

	if len(parts) < 2 {
		return false
	}

	_, ok_x := geo.ToNumber(parts[0])
	_, ok_y := geo.ToNumber(parts[1])

	return ok_x && ok_y
}

// coordStart returns the index of the coordinate pair for a shape.
func (s *lineShape) coordStart(parts []string) int {

	if numericPair(parts) {
		return 0
	}

	return 1
}

var gcpShapes = []*lineShape{
	{
		name: "labeled",
		match: func(parts []string) bool {
			return len(parts) >= 4 && !numericPair(parts)
		},
		label: func(parts []string, index int, source string) string {
			return parts[0]
		},
		require_alt: true,
	},
	{
		name: "unlabeled-6",
		match: func(parts []string) bool {
			return len(parts) >= 6 && numericPair(parts)
		},
		label: func(parts []string, index int, source string) string {
			return parts[5]
		},
		require_alt: true,
	},
	{
		name: "unlabeled-3",
		match: func(parts []string) bool {
			return len(parts) >= 3 && numericPair(parts)
		},
		label: func(parts []string, index int, source string) string {
			return fmt.Sprintf("GCP %d", index+1)
		},
		require_alt: true,
	},
}

var geoShapes = []*lineShape{
	{
		name: "labeled",
		match: func(parts []string) bool {
			return len(parts) >= 4 && !numericPair(parts)
		},
		label: func(parts []string, index int, source string) string {
			return parts[0]
		},
	},
	{
		name: "unlabeled",
		match: func(parts []string) bool {
			return len(parts) >= 2 && numericPair(parts)
		},
		label: func(parts []string, index int, source string) string {

			if source == "" {
				source = "Geo"
			}

			return fmt.Sprintf("%s %d", source, index+1)
		},
	},
}

// matchShape returns the first shape in shapes accepting parts, or nil.
func matchShape(shapes []*lineShape, parts []string) *lineShape {

	for _, s := range shapes {

		if s.match(parts) {
			return s
		}
	}

	return nil
}
