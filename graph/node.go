package graph

import (
	"context"

	"github.com/carlodf/dflow/op"
	"github.com/carlodf/dflow/rstream"
)

// node is one vertex of a computation graph: an operator together with its
// ordered dependency nodes. Nodes are immutable once built and may be
// shared across graphs or appear more than once in the same graph; each
// appearance gets its own Stream at Run time, so no memoization happens
// here.
type node struct {
	op   op.Operator
	deps []*node
}

// stream recursively instantiates the lazy stream for n, first instantiating
// every dependency's stream (leaves first), then invoking n's operator.
func (n *node) stream(ctx context.Context, inputs op.Inputs) (rstream.Stream, error) {
	deps := make([]rstream.Stream, len(n.deps))
	for i, d := range n.deps {
		s, err := d.stream(ctx, inputs)
		if err != nil {
			return nil, err
		}
		deps[i] = s
	}
	return n.op.Run(ctx, deps, inputs)
}
