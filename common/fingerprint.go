package common

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"gocloud.dev/blob"
	"io"
)

// Fingerprint returns the hex-encoded SHA-1 hash of everything read from r.
func Fingerprint(r io.Reader) (string, error) {

	h := sha1.New()

	_, err := io.Copy(h, r)

	if err != nil {
		return "", err
	}

	hash := h.Sum(nil)
	return hex.EncodeToString(hash[:]), nil
}

// FingerprintFile returns the SHA-1 hash of a file stored in a blob.Bucket instance.
func FingerprintFile(ctx context.Context, bucket *blob.Bucket, path string) (string, error) {

	fh, err := bucket.NewReader(ctx, path, nil)

	if err != nil {
		return "", fmt.Errorf("Failed to open %s for reading, %w", path, err)
	}

	defer fh.Close()

	fp, err := Fingerprint(fh)

	if err != nil {
		return "", fmt.Errorf("Failed to hash %s, %w", path, err)
	}

	return fp, nil
}
