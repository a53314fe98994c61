package crs

import (
	"fmt"
	"github.com/sfomuseum/go-media-points"
	"github.com/sfomuseum/go-media-points/geo"
	"github.com/wroge/wgs84"
)

// Projector is the coordinate-projection capability. Transform converts x, y from the
// CRS described by from to the CRS described by to and fails for definitions it cannot
// resolve.
type Projector interface {
	Transform(from string, to string, x float64, y float64) (float64, float64, error)
}

var epsg = wgs84.EPSG()

// WGS84Projector is a Projector backed by the wroge/wgs84 EPSG repository. It holds no
// mutable state and is safe for concurrent use.
type WGS84Projector struct{}

// NewWGS84Projector returns a new WGS84Projector instance.
func NewWGS84Projector() *WGS84Projector {
	return &WGS84Projector{}
}

func (p *WGS84Projector) Transform(from string, to string, x float64, y float64) (out_x float64, out_y float64, err error) {

	from_code, err := Resolve(from)

	if err != nil {
		return 0, 0, err
	}

	to_code, err := Resolve(to)

	if err != nil {
		return 0, 0, err
	}

	if from_code == to_code {
		return x, y, nil
	}

	defer func() {

		r := recover()

		if r != nil {
			out_x = 0
			out_y = 0
			err = fmt.Errorf("Failed to transform from EPSG:%d to EPSG:%d (%v), %w", from_code, to_code, r, points.ErrUnknownCRS)
		}
	}()

	f := epsg.Transform(from_code, to_code)
	out_x, out_y, _ = f(x, y, 0)

	if !geo.IsFinite(out_x) || !geo.IsFinite(out_y) {
		return 0, 0, fmt.Errorf("Transform from EPSG:%d to EPSG:%d produced a non-finite result, %w", from_code, to_code, points.ErrUnknownCRS)
	}

	return out_x, out_y, nil
}
