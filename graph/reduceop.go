package graph

import (
	"context"

	"github.com/carlodf/dflow/dflowerr"
	"github.com/carlodf/dflow/group"
	"github.com/carlodf/dflow/op"
	"github.com/carlodf/dflow/record"
	"github.com/carlodf/dflow/rstream"
)

// reduceOp groups its upstream stream by keys using the grouped-iteration
// primitive and forwards every record each reducer invocation yields. With
// an empty keys list, the whole stream is treated as a single group, which
// is how global aggregates like total document count work.
type reduceOp struct {
	reducer op.Reducer
	keys    []string
}

func (o *reduceOp) Run(ctx context.Context, deps []rstream.Stream, inputs op.Inputs) (rstream.Stream, error) {
	if len(o.keys) == 0 {
		return &wholeStreamReduceStream{reducer: o.reducer, src: deps[0]}, nil
	}
	return &groupedReduceStream{reducer: o.reducer, cursor: group.New(deps[0], o.keys)}, nil
}

// wholeStreamReduceStream reduces the entire input eagerly on the first
// Next call, since the reducer itself may need to see the whole stream
// before producing any output (e.g. Count).
type wholeStreamReduceStream struct {
	reducer op.Reducer
	src     rstream.Stream

	out     []record.Record
	cur     record.Record
	started bool
	err     error
}

func (s *wholeStreamReduceStream) Next() bool {
	if !s.started {
		s.started = true
		out, err := s.reducer.Reduce(op.GroupKey{}, s.src)
		if err != nil {
			s.err = dflowerr.WrapReducer(err)
			return false
		}
		s.out = out
	}
	if len(s.out) == 0 {
		return false
	}
	s.cur = s.out[0]
	s.out = s.out[1:]
	return true
}

func (s *wholeStreamReduceStream) Row() record.Record { return s.cur }
func (s *wholeStreamReduceStream) Err() error         { return s.err }
func (s *wholeStreamReduceStream) Close() error       { return s.src.Close() }

type groupedReduceStream struct {
	reducer op.Reducer
	cursor  *group.Cursor

	pending []record.Record
	cur     record.Record
	err     error
	done    bool
}

func (s *groupedReduceStream) Next() bool {
	if s.done {
		return false
	}
	for {
		if len(s.pending) > 0 {
			s.cur = s.pending[0]
			s.pending = s.pending[1:]
			return true
		}
		if !s.cursor.Next() {
			s.done = true
			s.err = s.cursor.Err()
			return false
		}
		out, err := s.reducer.Reduce(s.cursor.Key(), s.cursor.Rows())
		if err != nil {
			s.done = true
			s.err = dflowerr.WrapReducer(err)
			return false
		}
		s.pending = out
	}
}

func (s *groupedReduceStream) Row() record.Record { return s.cur }
func (s *groupedReduceStream) Err() error         { return s.err }
func (s *groupedReduceStream) Close() error       { s.done = true; return nil }
