// Package connector concatenates the byte sources a file-backed graph node
// resolved from its source specification into one continuous stream, while
// tracking which source the bytes currently being read came from. Errors
// raised further down the pipeline (a line that fails to parse, a read
// failure) can then name the file they originated in.
package connector

import "io"

// SrcMeta describes the position of the multiplexer within the current
// source. Name identifies the active source (the Opener's Name);
// ByteOffset counts the bytes emitted from that source so far.
type SrcMeta struct {
	Name       string
	ByteOffset int64
}

// SrcAwareStreamer is a continuous byte stream over one or more underlying
// sources that can report which source is currently being streamed.
type SrcAwareStreamer interface {
	io.ReadCloser

	// Current returns a snapshot of the active source and the byte offset
	// within it. Safe to call concurrently with Read.
	Current() SrcMeta
}
