// Package rstream defines the lazy, forward-only, single-pass record stream
// that flows between dflow graph nodes, and a small set of constructors
// over it.
//
// The iteration contract: call Next until it returns false, read Row only
// while a call to Next has just returned true, then check Err to
// distinguish clean exhaustion from a failure.
package rstream

import "github.com/carlodf/dflow/record"

// Stream is a forward-only, single-pass iterator over record.Record values.
//
// Streams are not restartable: a graph.Run call builds a fresh Stream per
// node appearance, so repeated runs (or the same node referenced twice in
// one graph) always start from a clean cursor.
type Stream interface {
	// Next advances to the next record and reports whether one is
	// available. It returns false on clean exhaustion or on a terminal
	// error; callers must check Err after the first false return.
	Next() bool

	// Row returns the current record. Valid only immediately after Next
	// has returned true.
	Row() record.Record

	// Err returns the first non-EOF error encountered while iterating, or
	// nil if iteration completed (or is still in progress) without one.
	Err() error

	// Close releases any resources held by the stream. Safe to call more
	// than once and safe to call before exhaustion.
	Close() error
}

// sliceStream is the simplest Stream: a cursor over an in-memory slice.
type sliceStream struct {
	rows []record.Record
	pos  int
	cur  record.Record
}

// FromSlice returns a Stream that yields exactly the rows in order.
// The caller's slice is not retained for mutation by the stream; it is
// indexed directly for efficiency, so callers should not mutate rows after
// handing the slice to FromSlice.
func FromSlice(rows []record.Record) Stream {
	return &sliceStream{rows: rows}
}

// Empty returns a Stream that yields no rows.
func Empty() Stream {
	return FromSlice(nil)
}

func (s *sliceStream) Next() bool {
	if s.pos >= len(s.rows) {
		return false
	}
	s.cur = s.rows[s.pos]
	s.pos++
	return true
}

func (s *sliceStream) Row() record.Record { return s.cur }
func (s *sliceStream) Err() error         { return nil }
func (s *sliceStream) Close() error       { s.pos = len(s.rows); return nil }

// Collect fully drains s and returns every row produced, or the first error
// encountered. Collect always closes s.
func Collect(s Stream) ([]record.Record, error) {
	defer s.Close()
	var out []record.Record
	for s.Next() {
		out = append(out, s.Row())
	}
	return out, s.Err()
}

// errStream is a Stream that immediately fails with a fixed error, for
// reporting a hard error through the Stream interface before any row is
// produced. The graph's source operators return such errors from Run
// directly instead.
type errStream struct{ err error }

// Fail returns a Stream whose first Next call returns false with Err set
// to err.
func Fail(err error) Stream {
	return &errStream{err: err}
}

func (e *errStream) Next() bool         { return false }
func (e *errStream) Row() record.Record { return nil }
func (e *errStream) Err() error         { return e.err }
func (e *errStream) Close() error       { return nil }
