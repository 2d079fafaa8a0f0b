// Package source provides stream content backed by a filesystem or memory.
package source

import (
	"bytes"
	"fmt"
	"io"

	"github.com/spf13/afero"

	"github.com/deploymenttheory/go-cfb/internal/interfaces"
)

var (
	_ interfaces.StreamSource = (*File)(nil)
	_ interfaces.StreamSource = Bytes(nil)
)

// File is stream content read from a path on an afero filesystem.
// The path is not touched until Size or Open is called.
type File struct {
	fs   afero.Fs
	path string
}

// NewFile returns a source for path on fs. A nil fs means the host filesystem.
func NewFile(fs afero.Fs, path string) *File {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &File{fs: fs, path: path}
}

// Path returns the path the content is read from
func (f *File) Path() string {
	return f.path
}

// Size returns the current length of the file
func (f *File) Size() (uint64, error) {
	info, err := f.fs.Stat(f.path)
	if err != nil {
		return 0, fmt.Errorf("failed to stat stream source: %w", err)
	}
	if info.IsDir() {
		return 0, fmt.Errorf("stream source is a directory: %s", f.path)
	}
	return uint64(info.Size()), nil
}

// Open opens the file for reading
func (f *File) Open() (io.ReadCloser, error) {
	file, err := f.fs.Open(f.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open stream source: %w", err)
	}
	return file, nil
}

// Bytes is stream content held in memory.
type Bytes []byte

// Size returns the length of the content
func (b Bytes) Size() (uint64, error) {
	return uint64(len(b)), nil
}

// Open returns a reader over the content
func (b Bytes) Open() (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(b)), nil
}
