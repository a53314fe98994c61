package parse

import (
	"context"
	"errors"
	"github.com/sfomuseum/go-media-points"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

func TestParseFile(t *testing.T) {

	ctx := context.Background()
	conv := heuristicConverter()

	f := points.NewMemoryFile("gcp_list.txt", "text/plain", []byte("PointA 13.77 45.66 50"))
	outcome := ParseFile(ctx, f, GCP, conv)

	require.NoError(t, outcome.Err)
	assert.Equal(t, "gcp_list.txt", outcome.Name)
	assert.Equal(t, GCP, outcome.Kind)
	assert.Len(t, outcome.GCPs, 1)
	assert.Empty(t, outcome.Geo)
}

func TestParseFileUnreadable(t *testing.T) {

	ctx := context.Background()

	f := points.NewMemoryFile("geo.txt", "text/plain", nil)
	f.Err = errors.New("disk on fire")

	outcome := ParseFile(ctx, f, Geo, heuristicConverter())

	require.Error(t, outcome.Err)
	assert.True(t, errors.Is(outcome.Err, points.ErrUnreadableFile))
	assert.Empty(t, outcome.Geo)
}

func TestParseFilePanic(t *testing.T) {

	ctx := context.Background()

	conv := &mockConverter{
		convertFn: func(srs string, x string, y string) (float64, float64, bool) {
			panic("boom")
		},
	}

	f := points.NewMemoryFile("geo.txt", "text/plain", []byte("13.77 45.66"))
	outcome := ParseFile(ctx, f, Geo, conv)

	require.Error(t, outcome.Err)
	assert.True(t, errors.Is(outcome.Err, points.ErrUnreadableFile))
	assert.Nil(t, outcome.Geo)
}

func TestParseFiles(t *testing.T) {

	ctx := context.Background()

	broken := points.NewMemoryFile("b_gcp.txt", "text/plain", nil)
	broken.Err = errors.New("nope")

	files := []points.File{
		points.NewMemoryFile("a_gcp.txt", "text/plain", []byte("A 13.77 45.66 50")),
		broken,
		points.NewMemoryFile("c_gcp.txt", "text/plain", []byte("C1 13.78 45.67 51\nC2 13.79 45.68 52")),
	}

	outcomes := ParseFiles(ctx, files, GCP, heuristicConverter())

	require.Len(t, outcomes, 3)

	assert.Equal(t, "a_gcp.txt", outcomes[0].Name)
	assert.Len(t, outcomes[0].GCPs, 1)

	assert.Equal(t, "b_gcp.txt", outcomes[1].Name)
	assert.Error(t, outcomes[1].Err)

	assert.Equal(t, "c_gcp.txt", outcomes[2].Name)
	assert.Len(t, outcomes[2].GCPs, 2)

	assert.Empty(t, ParseFiles(ctx, nil, Geo, heuristicConverter()))
}
