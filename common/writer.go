package common

import (
	"context"
	"fmt"
	"github.com/whosonfirst/go-writer/v3"
	"sync"
)

var writers = make(map[string]writer.Writer)
var writers_mu = new(sync.RWMutex)

// NewWriter returns a whosonfirst/go-writer.Writer instance for uri. Instances are cached
// in memory for repeat lookups so that repeated exports to the same destination share one
// writer.
func NewWriter(ctx context.Context, uri string) (writer.Writer, error) {

	writers_mu.RLock()
	wr, ok := writers[uri]
	writers_mu.RUnlock()

	if ok {
		return wr, nil
	}

	writers_mu.Lock()
	defer writers_mu.Unlock()

	wr, ok = writers[uri]

	if ok {
		return wr, nil
	}

	wr, err := writer.NewWriter(ctx, uri)

	if err != nil {
		return nil, fmt.Errorf("Failed to create writer for '%s', %w", uri, err)
	}

	writers[uri] = wr
	return wr, nil
}

// CloseWriters closes and forgets every cached writer.
func CloseWriters(ctx context.Context) error {

	writers_mu.Lock()
	defer writers_mu.Unlock()

	for uri, wr := range writers {

		err := wr.Close(ctx)

		if err != nil {
			return fmt.Errorf("Failed to close writer for '%s', %w", uri, err)
		}

		delete(writers, uri)
	}

	return nil
}
