package selection

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// File is an opaque handle to a user-chosen document.
type File interface {
	Name() string
	Open() (io.ReadCloser, error)
}

// LocalFile is a document on disk.
type LocalFile struct {
	Path string
	Size int64
}

// NewLocalFile resolves path to a regular file.
func NewLocalFile(path string) (*LocalFile, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("error resolving path: %w", err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("error accessing file: %w", err)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%s is not a regular file", info.Name())
	}

	return &LocalFile{Path: abs, Size: info.Size()}, nil
}

func (f *LocalFile) Name() string {
	return filepath.Base(f.Path)
}

func (f *LocalFile) Open() (io.ReadCloser, error) {
	return os.Open(f.Path)
}

// MemFile is an in-memory document.
type MemFile struct {
	FileName string
	Data     []byte
}

func (f *MemFile) Name() string {
	return f.FileName
}

func (f *MemFile) Open() (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(f.Data)), nil
}
