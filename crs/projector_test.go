package crs

import (
	"errors"
	"github.com/sfomuseum/go-media-points"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

func TestWGS84ProjectorIdentity(t *testing.T) {

	p := NewWGS84Projector()

	x, y, err := p.Transform("WGS84", WGS84Definition, 13.77, 45.66)
	require.NoError(t, err)

	assert.Equal(t, 13.77, x)
	assert.Equal(t, 45.66, y)
}

func TestWGS84ProjectorUTM(t *testing.T) {

	p := NewWGS84Projector()

	// easting 500000 sits on the zone's central meridian (-117 for zone 11N)
	lon, lat, err := p.Transform("EPSG:32611", WGS84Definition, 500000, 4649776)
	require.NoError(t, err)

	assert.InDelta(t, -117.0, lon, 1e-6)
	assert.InDelta(t, 42.0, lat, 0.1)
}

func TestWGS84ProjectorUnknown(t *testing.T) {

	p := NewWGS84Projector()

	_, _, err := p.Transform("+proj=tmerc +lon_0=9", WGS84Definition, 1, 2)
	assert.True(t, errors.Is(err, points.ErrUnknownCRS))
}
