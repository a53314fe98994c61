package common

import (
	"context"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocloud.dev/blob/memblob"
	"strings"
	"testing"
)

func TestFingerprint(t *testing.T) {

	fp, err := Fingerprint(strings.NewReader("hello world"))
	require.NoError(t, err)

	assert.Equal(t, "2aae6c35c94fcfb415dbe95f408b9ce91ee846ed", fp)
}

func TestFingerprintFile(t *testing.T) {

	ctx := context.Background()

	bucket := memblob.OpenBucket(nil)
	defer bucket.Close()

	err := bucket.WriteAll(ctx, "a/geo.txt", []byte("hello world"), nil)
	require.NoError(t, err)

	fp, err := FingerprintFile(ctx, bucket, "a/geo.txt")
	require.NoError(t, err)
	assert.Equal(t, "2aae6c35c94fcfb415dbe95f408b9ce91ee846ed", fp)

	_, err = FingerprintFile(ctx, bucket, "missing.txt")
	assert.Error(t, err)
}

func TestNewWriterCached(t *testing.T) {

	ctx := context.Background()

	a, err := NewWriter(ctx, "null://")
	require.NoError(t, err)

	b, err := NewWriter(ctx, "null://")
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.Len(t, writers, 1)

	_, err = NewWriter(ctx, "bogus-scheme://")
	assert.Error(t, err)

	err = CloseWriters(ctx)
	require.NoError(t, err)

	assert.Empty(t, writers)
}
