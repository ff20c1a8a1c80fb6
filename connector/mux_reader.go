package connector

import (
	"context"
	"fmt"
	"io"
	"sync/atomic"

	"github.com/carlodf/dflow/opener"
)

// muxReader multiplexes multiple opener.Opener streams into a single
// io.ReadCloser. Only one underlying source is open at a time.
//
// Streaming semantics:
//   - Sources are read sequentially in order of the ops slice.
//   - A newline is inserted between two sources when the earlier one does
//     not end with one, so a record on the last line of one file can never
//     bleed into the first line of the next.
//   - Partial data is preserved on read errors: if a Read(p) returns
//     (n>0, err), the n bytes are forwarded before the error propagates.
//   - On non-EOF errors the multiplexer stops streaming and the error is
//     returned to the caller of Read.
//
// After all sources are exhausted, Read returns io.EOF.
type muxReader struct {
	pr *io.PipeReader
	pw *io.PipeWriter

	// current holds the latest SrcMeta snapshot. Only the multiplexer
	// goroutine writes; readers call Current().
	current atomic.Value
}

// Read proxies reads to the underlying io.PipeReader. Callers read a
// continuous byte stream representing all multiplexed sources.
func (m *muxReader) Read(p []byte) (int, error) {
	return m.pr.Read(p)
}

// Close closes the read side of the multiplexer. If the internal goroutine
// has not finished, it will detect the closed pipe and terminate early.
func (m *muxReader) Close() error {
	return m.pr.Close()
}

// Current returns the most recent SrcMeta snapshot describing the active
// source and the byte offset within that source.
func (m *muxReader) Current() SrcMeta {
	val := m.current.Load()
	if val == nil {
		return SrcMeta{}
	}
	return val.(SrcMeta)
}

// NewMuxReader constructs a SrcAwareStreamer that reads the given openers
// sequentially and produces a single byte stream.
//
// The provided context controls opening and reading of underlying sources:
// it is passed to each Opener's Open and checked before every read, so
// canceling it shuts down the multiplexer with the context's error.
func NewMuxReader(ctx context.Context, ops []opener.Opener) SrcAwareStreamer {
	pr, pw := io.Pipe()
	m := &muxReader{pr: pr, pw: pw}

	go func() {
		defer pw.Close()

		buf := make([]byte, 32*1024)
		needSep := false
		for _, op := range ops {
			rc, err := op.Open(ctx)
			if err != nil {
				_ = pw.CloseWithError(fmt.Errorf("open %s: %w", op.Name(), err))
				return
			}
			if needSep {
				if _, werr := pw.Write([]byte{'\n'}); werr != nil {
					rc.Close()
					_ = pw.CloseWithError(werr)
					return
				}
				needSep = false
			}
			meta := SrcMeta{Name: op.Name(), ByteOffset: 0}
			m.current.Store(meta)

			var lastByte byte
			for {
				if cerr := ctx.Err(); cerr != nil {
					rc.Close()
					_ = pw.CloseWithError(cerr)
					return
				}
				n, rerr := rc.Read(buf)
				// Forward partial bytes before evaluating the error.
				if n > 0 {
					meta.ByteOffset += int64(n)
					lastByte = buf[n-1]
					if _, werr := pw.Write(buf[:n]); werr != nil {
						rc.Close()
						_ = pw.CloseWithError(werr)
						return
					}
					m.current.Store(meta)
				}
				if rerr == io.EOF {
					break
				}
				if rerr != nil {
					rc.Close()
					_ = pw.CloseWithError(fmt.Errorf("read %s: %w", op.Name(), rerr))
					return
				}
			}
			rc.Close()
			needSep = meta.ByteOffset > 0 && lastByte != '\n'
		}
	}()
	return m
}
