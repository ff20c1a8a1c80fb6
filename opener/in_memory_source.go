package opener

import (
	"bytes"
	"context"
	"io"
)

// InMemorySource implements Opener over an in-memory byte slice.
//
// It exists mainly for tests and synthetic pipelines, where creating
// temporary files for a file-backed source would be unnecessary: feed
// small line-encoded datasets straight into a multiplexer, exercise parse
// failures deterministically, benchmark parsers without the filesystem.
//
// Production code should prefer filesystem-backed openers; InMemorySource
// is not meant for very large datasets.
type InMemorySource struct {
	// Data contains the bytes Open returns.
	Data []byte
	// SourceName identifies the synthetic source; the multiplexer reports
	// it as the source name in its position metadata.
	SourceName string
}

// Open returns a ReadCloser streaming the in-memory data. Each call returns
// a fresh reader with its own read position; the bytes are read from Data
// in place, not copied. It never fails.
func (s InMemorySource) Open(ctx context.Context) (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(s.Data)), nil
}

// Name returns the identifier associated with this in-memory source.
func (s InMemorySource) Name() string {
	return s.SourceName
}
