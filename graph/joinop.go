package graph

import (
	"context"

	"github.com/carlodf/dflow/dflowerr"
	"github.com/carlodf/dflow/group"
	"github.com/carlodf/dflow/op"
	"github.com/carlodf/dflow/record"
	"github.com/carlodf/dflow/rstream"
)

// joinOp implements a sort-merge join. Both dependency streams must
// already be sorted by keys; the grouped-iteration primitive enforces this
// and fails with NotSortedError otherwise. For an empty keys list the two
// streams are each treated as one whole-stream group, which is how "attach
// the global document count" steps work in the TF-IDF reference pipeline.
type joinOp struct {
	joiner op.Joiner
	keys   []string
}

func (o *joinOp) Run(ctx context.Context, deps []rstream.Stream, inputs op.Inputs) (rstream.Stream, error) {
	left, right := deps[0], deps[1]

	if len(o.keys) == 0 {
		leftRows, err := rstream.Collect(left)
		if err != nil {
			return nil, err
		}
		rightRows, err := rstream.Collect(right)
		if err != nil {
			return nil, err
		}
		out, err := o.joiner.Join(o.keys, leftRows, rightRows)
		if err != nil {
			return nil, dflowerr.WrapJoiner(err)
		}
		return rstream.FromSlice(out), nil
	}

	lc := group.New(left, o.keys)
	rc := group.New(right, o.keys)

	var out []record.Record
	lok, rok := lc.Next(), rc.Next()
	for lok && rok {
		cmp := record.CompareKeys(lc.Key().Values, rc.Key().Values)
		switch {
		case cmp < 0:
			chunk, err := o.joiner.Join(o.keys, lc.RowSlice(), nil)
			if err != nil {
				return nil, dflowerr.WrapJoiner(err)
			}
			out = append(out, chunk...)
			lok = lc.Next()
		case cmp == 0:
			chunk, err := o.joiner.Join(o.keys, lc.RowSlice(), rc.RowSlice())
			if err != nil {
				return nil, dflowerr.WrapJoiner(err)
			}
			out = append(out, chunk...)
			lok, rok = lc.Next(), rc.Next()
		default:
			chunk, err := o.joiner.Join(o.keys, nil, rc.RowSlice())
			if err != nil {
				return nil, dflowerr.WrapJoiner(err)
			}
			out = append(out, chunk...)
			rok = rc.Next()
		}
	}
	if err := lc.Err(); err != nil {
		return nil, err
	}
	if err := rc.Err(); err != nil {
		return nil, err
	}

	for rok {
		chunk, err := o.joiner.Join(o.keys, nil, rc.RowSlice())
		if err != nil {
			return nil, dflowerr.WrapJoiner(err)
		}
		out = append(out, chunk...)
		rok = rc.Next()
	}
	if err := rc.Err(); err != nil {
		return nil, err
	}

	for lok {
		chunk, err := o.joiner.Join(o.keys, lc.RowSlice(), nil)
		if err != nil {
			return nil, dflowerr.WrapJoiner(err)
		}
		out = append(out, chunk...)
		lok = lc.Next()
	}
	if err := lc.Err(); err != nil {
		return nil, err
	}

	return rstream.FromSlice(out), nil
}
