package points

import (
	"context"
)

// File is the minimal description of an input file that the pipeline needs.
type File interface {
	Name() string
	MimeType() string
	ReadText(context.Context) (string, error)
	ReadBinary(context.Context) ([]byte, error)
}

// MemoryFile is a File whose body is already held in memory.
type MemoryFile struct {
	FileName string
	Mimetype string
	Body     []byte
	// An optional error returned by every read, used to simulate unreadable files.
	Err error
}

// NewMemoryFile returns a new MemoryFile instance.
func NewMemoryFile(name string, mimetype string, body []byte) *MemoryFile {

	f := &MemoryFile{
		FileName: name,
		Mimetype: mimetype,
		Body:     body,
	}

	return f
}

func (f *MemoryFile) Name() string {
	return f.FileName
}

func (f *MemoryFile) MimeType() string {
	return f.Mimetype
}

func (f *MemoryFile) ReadText(ctx context.Context) (string, error) {

	body, err := f.ReadBinary(ctx)

	if err != nil {
		return "", err
	}

	return string(body), nil
}

func (f *MemoryFile) ReadBinary(ctx context.Context) ([]byte, error) {

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
		// pass
	}

	if f.Err != nil {
		return nil, f.Err
	}

	return f.Body, nil
}
