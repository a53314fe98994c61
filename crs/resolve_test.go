package crs

import (
	"errors"
	"github.com/sfomuseum/go-media-points"
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestResolve(t *testing.T) {

	tests := []struct {
		definition string
		want       int
		wantErr    bool
	}{
		{"EPSG:4326", 4326, false},
		{"epsg:32611", 32611, false},
		{" EPSG:2056 ", 2056, false},
		{"WGS84", 4326, false},
		{"wgs84", 4326, false},
		{"WGS84 UTM 32N", 32632, false},
		{"WGS84 UTM 11S", 32711, false},
		{"+proj=longlat +datum=WGS84 +no_defs", 4326, false},
		{"+proj=utm +zone=11 +datum=WGS84 +units=m +no_defs", 32611, false},
		{"+proj=utm +zone=33 +south +ellps=WGS84", 32733, false},
		{"+init=epsg:3857", 3857, false},
		{"+proj=utm +zone=32 +ellps=intl", 0, true},
		{"+proj=tmerc +lat_0=0 +lon_0=9", 0, true},
		{"+proj=utm +datum=WGS84", 0, true},
		{"+proj=utm +zone=61", 0, true},
		{"EPSG:abc", 0, true},
		{"EPSG:-1", 0, true},
		{"LONG/LAT", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.definition, func(t *testing.T) {

			code, err := Resolve(tt.definition)

			if tt.wantErr {
				assert.Error(t, err)
				assert.True(t, errors.Is(err, points.ErrUnknownCRS))
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.want, code)
		})
	}
}
