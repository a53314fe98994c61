package gather

import (
	"context"
	"fmt"
	"gocloud.dev/blob"
	"mime"
	"path/filepath"
)

// BlobFile is a points.File backed by an object in a gocloud.dev/blob Bucket. The bucket must
// stay open for as long as the file is read.
type BlobFile struct {
	bucket   *blob.Bucket
	key      string
	mimetype string
}

// NewBlobFile returns a BlobFile for key in bucket. The MIME type is derived from the key's
// extension and is empty if the extension is not known.
func NewBlobFile(bucket *blob.Bucket, key string) *BlobFile {

	f := &BlobFile{
		bucket:   bucket,
		key:      key,
		mimetype: mime.TypeByExtension(filepath.Ext(key)),
	}

	return f
}

// Name returns the key of the object relative to the bucket root.
func (f *BlobFile) Name() string {
	return f.key
}

func (f *BlobFile) MimeType() string {
	return f.mimetype
}

func (f *BlobFile) ReadText(ctx context.Context) (string, error) {

	body, err := f.ReadBinary(ctx)

	if err != nil {
		return "", err
	}

	return string(body), nil
}

func (f *BlobFile) ReadBinary(ctx context.Context) ([]byte, error) {

	body, err := f.bucket.ReadAll(ctx, f.key)

	if err != nil {
		return nil, fmt.Errorf("Failed to read %s, %w", f.key, err)
	}

	return body, nil
}
