package graph

import (
	"bufio"
	"context"

	"github.com/carlodf/dflow/connector"
	"github.com/carlodf/dflow/dflowerr"
	"github.com/carlodf/dflow/op"
	"github.com/carlodf/dflow/opener"
	"github.com/carlodf/dflow/record"
	"github.com/carlodf/dflow/rstream"
)

// fromIterOp resolves a named Thunk from the run-time Inputs and re-emits a
// deep copy of every record it yields, so that a mutating downstream mapper
// can never leak a change back into the caller's data or poison a later
// run.
type fromIterOp struct {
	name string
}

func (o *fromIterOp) Run(ctx context.Context, deps []rstream.Stream, inputs op.Inputs) (rstream.Stream, error) {
	thunk, ok := inputs[o.name]
	if !ok {
		return nil, &dflowerr.MissingInputError{Name: o.name}
	}
	return &copyingStream{inner: thunk()}, nil
}

type copyingStream struct {
	inner rstream.Stream
	cur   record.Record
}

func (s *copyingStream) Next() bool {
	if !s.inner.Next() {
		return false
	}
	s.cur = s.inner.Row().DeepCopy()
	return true
}
func (s *copyingStream) Row() record.Record { return s.cur }
func (s *copyingStream) Err() error         { return s.inner.Err() }
func (s *copyingStream) Close() error       { return s.inner.Close() }

// Parser converts one line of text into a record, or returns (nil, nil) to
// skip the line. Input-file format discovery and parser construction are
// the caller's concern; the engine only drives the parser line by line.
type Parser func(line string) (record.Record, error)

// fromFileOp resolves its source spec on every invocation: the spec (a
// path, glob, or file:// URL) is turned into openers, the matched files
// are multiplexed into one byte stream, and parser is applied to each
// line. Lines the parser maps to a nil record are skipped.
type fromFileOp struct {
	spec   string
	parser Parser
}

func (o *fromFileOp) Run(ctx context.Context, deps []rstream.Stream, inputs op.Inputs) (rstream.Stream, error) {
	ops, err := opener.FromSpec(o.spec)
	if err != nil {
		return nil, &dflowerr.FileOpenError{Path: o.spec, Err: err}
	}
	mux := connector.NewMuxReader(ctx, ops)
	return &fileStream{
		mux:     mux,
		scanner: bufio.NewScanner(mux),
		parser:  o.parser,
	}, nil
}

type fileStream struct {
	mux     connector.SrcAwareStreamer
	scanner *bufio.Scanner
	parser  Parser

	cur    record.Record
	err    error
	closed bool
}

func (s *fileStream) Next() bool {
	if s.err != nil || s.closed {
		return false
	}
	for s.scanner.Scan() {
		line := s.scanner.Text()
		rec, err := s.parser(line)
		if err != nil {
			s.err = &dflowerr.ParseError{Source: s.mux.Current().Name, Line: line, Err: err}
			return false
		}
		if rec == nil {
			continue
		}
		s.cur = rec
		return true
	}
	if err := s.scanner.Err(); err != nil {
		s.err = &dflowerr.FileOpenError{Path: s.mux.Current().Name, Err: err}
	}
	return false
}

func (s *fileStream) Row() record.Record { return s.cur }
func (s *fileStream) Err() error         { return s.err }
func (s *fileStream) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	return s.mux.Close()
}
