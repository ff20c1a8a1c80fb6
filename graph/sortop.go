package graph

import (
	"context"

	"github.com/carlodf/dflow/op"
	"github.com/carlodf/dflow/record"
	"github.com/carlodf/dflow/rstream"
	"golang.org/x/exp/slices"
)

// sortOp buffers the entire upstream stream and re-emits it in ascending
// order by keys, stable on ties. Buffering happens in memory; spilling to
// disk under memory pressure is left to a wrapping Operator.
type sortOp struct {
	keys []string
}

func (o *sortOp) Run(ctx context.Context, deps []rstream.Stream, inputs op.Inputs) (rstream.Stream, error) {
	rows, err := rstream.Collect(deps[0])
	if err != nil {
		return nil, err
	}
	sorted := make([]record.Record, len(rows))
	copy(sorted, rows)
	slices.SortStableFunc(sorted, func(a, b record.Record) int {
		return record.CompareKeys(a.Values(o.keys), b.Values(o.keys))
	})
	return rstream.FromSlice(sorted), nil
}
