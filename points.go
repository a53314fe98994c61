package points

// ImagePoint is the location (and optionally capture time) decoded from a single image.
type ImagePoint struct {
	// The name of the image the point was derived from.
	SourceName string `json:"source_name"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	// Altitude in metres, if the image carried one.
	Altitude *float64 `json:"altitude,omitempty"`
	// Capture time as milliseconds since the Unix epoch, if the image carried one.
	Timestamp *int64 `json:"timestamp,omitempty"`
}

// GCPPoint is a single ground control point read from a GCP list.
type GCPPoint struct {
	Label          string   `json:"label"`
	Latitude       float64  `json:"latitude"`
	Longitude      float64  `json:"longitude"`
	Altitude       *float64 `json:"altitude,omitempty"`
	SourceFileName string   `json:"source"`
}

// GeoPoint is a single point read from a generic geo-referenced point list (for example geo.txt).
type GeoPoint struct {
	Label          string   `json:"label"`
	Latitude       float64  `json:"latitude"`
	Longitude      float64  `json:"longitude"`
	Altitude       *float64 `json:"altitude,omitempty"`
	SourceFileName string   `json:"source"`
}

// BoundingBox is an axis-aligned longitude, latitude rectangle. An absent bounding box
// is represented by a nil *BoundingBox, never by a zero-sized one.
type BoundingBox struct {
	MinLon float64 `json:"min_lon"`
	MinLat float64 `json:"min_lat"`
	MaxLon float64 `json:"max_lon"`
	MaxLat float64 `json:"max_lat"`
}

// Array returns the box as [ minx, miny, maxx, maxy ].
func (b *BoundingBox) Array() []float64 {
	return []float64{b.MinLon, b.MinLat, b.MaxLon, b.MaxLat}
}

// Coordinates is implemented by every point type so that they can be handled together
// when computing extents.
type Coordinates interface {
	LatLon() (float64, float64)
}

func (p ImagePoint) LatLon() (float64, float64) {
	return p.Latitude, p.Longitude
}

func (p GCPPoint) LatLon() (float64, float64) {
	return p.Latitude, p.Longitude
}

func (p GeoPoint) LatLon() (float64, float64) {
	return p.Latitude, p.Longitude
}
