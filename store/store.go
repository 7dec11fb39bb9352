package store

import (
	"context"

	"github.com/arloliu/alx/errs"
)

// ErrNotFound is returned when a named file does not exist.
//
// Implementations return an error that satisfies errors.Is(err, ErrNotFound).
var ErrNotFound = errs.ErrNotFound

// Source gives read access to the files of an extracted disc image.
type Source interface {
	// List returns the names containing substr, sorted. Names use forward
	// slashes and are relative to the store root.
	List(ctx context.Context, substr string) ([]string, error)
	// ReadAt reads len(p) bytes of name starting at off. It follows the
	// io.ReaderAt contract.
	ReadAt(ctx context.Context, name string, p []byte, off int64) (int, error)
	// ReadFile returns the whole content of name.
	ReadFile(ctx context.Context, name string) ([]byte, error)
	// Size returns the size of name in bytes.
	Size(ctx context.Context, name string) (int64, error)
}

// Sink replaces whole files.
type Sink interface {
	WriteFile(ctx context.Context, name string, data []byte) error
}

// Store is both a Source and a Sink.
type Store interface {
	Source
	Sink
}
