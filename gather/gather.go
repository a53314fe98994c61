// Package gather enumerates the files stored in one or more gocloud.dev/blob buckets and hands
// them to the pipeline as points.File values.
package gather

import (
	"context"
	"fmt"
	"github.com/sfomuseum/go-media-points"
	"github.com/sfomuseum/go-media-points/common"
	"gocloud.dev/blob"
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/memblob"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
)

// CrawlFilterFunc reports whether the object at key should be gathered.
type CrawlFilterFunc func(key string) bool

// CrawlOptions configures CrawlFiles.
type CrawlOptions struct {
	// Optional filter applied to every key. Hidden files (any path segment starting with ".") are
	// always skipped.
	Filter CrawlFilterFunc
	// Skip files whose contents are identical to a file already gathered.
	Deduplicate bool
	Logger      *slog.Logger
}

// CrawlFiles walks every object in bucket, descending into "directories", and returns one
// BlobFile per object in listing order.
func CrawlFiles(ctx context.Context, bucket *blob.Bucket, opts *CrawlOptions) ([]points.File, error) {

	if opts == nil {
		opts = &CrawlOptions{}
	}

	logger := opts.Logger

	if logger == nil {
		logger = slog.Default()
	}

	files := make([]points.File, 0)
	seen := make(map[string]string)

	var list func(context.Context, *blob.Bucket, string) error

	list = func(ctx context.Context, b *blob.Bucket, prefix string) error {

		iter := b.List(&blob.ListOptions{
			Delimiter: "/",
			Prefix:    prefix,
		})

		for {

			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
				// pass
			}

			obj, err := iter.Next(ctx)

			if err == io.EOF {
				break
			}

			if err != nil {
				return fmt.Errorf("Failed to list '%s', %w", prefix, err)
			}

			if isHidden(obj.Key) {
				continue
			}

			if obj.IsDir {

				err := list(ctx, b, obj.Key)

				if err != nil {
					return err
				}

				continue
			}

			if opts.Filter != nil && !opts.Filter(obj.Key) {
				continue
			}

			if opts.Deduplicate {

				fp, err := common.FingerprintFile(ctx, b, obj.Key)

				if err != nil {
					return fmt.Errorf("Failed to fingerprint %s, %w", obj.Key, err)
				}

				other, ok := seen[fp]

				if ok {
					logger.Debug("Skipping duplicate file", "file", obj.Key, "original", other)
					continue
				}

				seen[fp] = obj.Key
			}

			files = append(files, NewBlobFile(b, obj.Key))
		}

		return nil
	}

	err := list(ctx, bucket, "")

	if err != nil {
		return nil, err
	}

	return files, nil
}

// GatherFiles opens each bucket in bucket_uris, crawls it and returns the concatenated files.
// The returned close function closes every bucket and must be called once the files are no
// longer needed.
func GatherFiles(ctx context.Context, bucket_uris []string, opts *CrawlOptions) ([]points.File, func() error, error) {

	buckets := make([]*blob.Bucket, 0, len(bucket_uris))

	close_buckets := func() error {

		for _, b := range buckets {

			err := b.Close()

			if err != nil {
				return fmt.Errorf("Failed to close bucket, %w", err)
			}
		}

		return nil
	}

	files := make([]points.File, 0)

	for _, uri := range bucket_uris {

		b, err := blob.OpenBucket(ctx, uri)

		if err != nil {
			close_buckets()
			return nil, nil, fmt.Errorf("Failed to open bucket %s, %w", uri, err)
		}

		buckets = append(buckets, b)

		bucket_files, err := CrawlFiles(ctx, b, opts)

		if err != nil {
			close_buckets()
			return nil, nil, fmt.Errorf("Failed to crawl %s, %w", uri, err)
		}

		files = append(files, bucket_files...)
	}

	return files, close_buckets, nil
}

func isHidden(key string) bool {

	for _, segment := range strings.Split(filepath.ToSlash(key), "/") {

		if strings.HasPrefix(segment, ".") {
			return true
		}
	}

	return false
}
