package export

import (
	"bytes"
	"context"
	"fmt"
	"github.com/sfomuseum/go-media-points/common"
	"github.com/whosonfirst/go-ioutil"
	"io"
)

// Saver is the subset of a whosonfirst/go-writer Writer used to deliver output.
type Saver interface {
	Write(context.Context, string, io.ReadSeeker) (int64, error)
}

// Save writes out.Body to wr using out.Filename as the key.
func Save(ctx context.Context, wr Saver, out *Output) error {

	br := bytes.NewReader(out.Body)
	fh, err := ioutil.NewReadSeekCloser(br)

	if err != nil {
		return fmt.Errorf("Failed to create ReadSeekCloser for %s, %w", out.Filename, err)
	}

	defer fh.Close()

	_, err = wr.Write(ctx, out.Filename, fh)

	if err != nil {
		return fmt.Errorf("Failed to write %s, %w", out.Filename, err)
	}

	return nil
}

// SaveWithURI writes out.Body to the whosonfirst/go-writer Writer derived from writer_uri.
func SaveWithURI(ctx context.Context, writer_uri string, out *Output) error {

	wr, err := common.NewWriter(ctx, writer_uri)

	if err != nil {
		return fmt.Errorf("Failed to create writer for %s, %w", writer_uri, err)
	}

	return Save(ctx, wr, out)
}
