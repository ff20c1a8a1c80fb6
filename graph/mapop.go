package graph

import (
	"context"

	"github.com/carlodf/dflow/dflowerr"
	"github.com/carlodf/dflow/op"
	"github.com/carlodf/dflow/record"
	"github.com/carlodf/dflow/rstream"
)

// mapOp invokes mapper once per upstream row, flattening each row's
// zero-or-more outputs into the downstream stream. This fan-out model is
// how Split turns one text row into many word rows.
type mapOp struct {
	mapper op.Mapper
}

func (o *mapOp) Run(ctx context.Context, deps []rstream.Stream, inputs op.Inputs) (rstream.Stream, error) {
	return &mappedStream{inner: deps[0], mapper: o.mapper}, nil
}

type mappedStream struct {
	inner  rstream.Stream
	mapper op.Mapper

	pending []record.Record
	cur     record.Record
	err     error
	done    bool
}

func (s *mappedStream) Next() bool {
	if s.done {
		return false
	}
	for {
		if len(s.pending) > 0 {
			s.cur = s.pending[0]
			s.pending = s.pending[1:]
			return true
		}
		if !s.inner.Next() {
			s.done = true
			s.err = s.inner.Err()
			return false
		}
		out, err := s.mapper.Map(s.inner.Row())
		if err != nil {
			s.done = true
			s.err = dflowerr.WrapMapper(err)
			return false
		}
		s.pending = out
	}
}

func (s *mappedStream) Row() record.Record { return s.cur }
func (s *mappedStream) Err() error         { return s.err }
func (s *mappedStream) Close() error       { s.done = true; return s.inner.Close() }
