package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
)

// File reads table text from a local file on every load.
type File struct {
	path string
}

// NewFile creates a file source.
func NewFile(path string) *File {
	return &File{path: path}
}

// Path returns the file path.
func (f *File) Path() string { return f.path }

// Name implements core.TextSource.
func (f *File) Name() string { return f.path }

// ReadText implements core.TextSource.
func (f *File) ReadText(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	fh, err := os.Open(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("%w: %s", ErrNotFound, f.path)
	}
	if err != nil {
		return "", unavailable(err)
	}
	defer fh.Close()

	data, err := io.ReadAll(io.LimitReader(fh, MaxTableBytes+1))
	if err != nil {
		return "", unavailable(err)
	}
	if len(data) > MaxTableBytes {
		return "", unavailable(fmt.Errorf("%s exceeds %d bytes", f.path, MaxTableBytes))
	}
	return string(data), nil
}
