// Package opener resolves the source specification of a file-backed graph
// node into one or more byte sources. A spec may be a plain path, a glob,
// or a file:// URL; each resolved source knows how to open itself lazily
// and carries a stable identity so that errors and per-record provenance
// can name the file they came from.
package opener

import (
	"context"
	"io"
	"os"
	"path/filepath"
)

// Opener is one lazily openable byte source.
type Opener interface {
	// Open opens the underlying source for reading. Callers own the
	// returned ReadCloser.
	Open(ctx context.Context) (io.ReadCloser, error)

	// Name returns the stable identity of the source, used for error
	// messages and per-record provenance.
	Name() string
}

// File is an Opener backed by a regular filesystem file. It stores the
// cleaned path and opens the file lazily; no existence or permission
// checks happen at construction time.
type File struct {
	Path string
}

// NewFile constructs a File opener for the given filesystem path. The path
// is cleaned with filepath.Clean; existence and permission checks are
// deferred to Open.
func NewFile(path string) File {
	return File{Path: filepath.Clean(path)}
}

// Open opens the underlying file. The context is checked before the
// filesystem call: if it is already canceled, Open returns ctx.Err()
// without performing I/O. os.Open itself is not cancellable once begun.
func (f File) Open(ctx context.Context) (io.ReadCloser, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}
	return os.Open(f.Path)
}

// Name returns the cleaned filesystem path.
func (f File) Name() string {
	return f.Path
}
