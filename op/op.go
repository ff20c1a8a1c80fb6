// Package op defines the capability interfaces that every dflow operator
// and its user-supplied callables implement: small, composable
// single-method interfaces rather than an abstract base class.
package op

import (
	"context"

	"github.com/carlodf/dflow/record"
	"github.com/carlodf/dflow/rstream"
)

// Thunk is a zero-argument function returning a fresh stream of records. A
// source binding in Inputs is a Thunk; calling it must produce an
// independent stream each time so that a graph can be run repeatedly, and
// so that a FromIter node referenced more than once in a graph re-reads its
// input on each appearance.
type Thunk func() rstream.Stream

// Inputs maps a FromIter source name to the Thunk bound to it for one
// Run call.
type Inputs map[string]Thunk

// Operator is a stateless callable consuming zero or more upstream lazy
// record streams and the run-time Inputs, producing a lazy record stream.
// It must not retain state across invocations; any per-run state lives in
// the Stream it returns.
type Operator interface {
	Run(ctx context.Context, deps []rstream.Stream, inputs Inputs) (rstream.Stream, error)
}

// Mapper converts a single record into zero, one, or many output records.
// A Mapper is invoked once per upstream row; returning an empty slice drops
// the row, and returning more than one implements fan-out (Split).
type Mapper interface {
	Map(row record.Record) ([]record.Record, error)
}

// MapperFunc adapts a plain function to a Mapper.
type MapperFunc func(record.Record) ([]record.Record, error)

func (f MapperFunc) Map(row record.Record) ([]record.Record, error) { return f(row) }

// GroupKey is the (possibly empty) ordered tuple of field names and values
// a Reducer or Joiner group was formed from. An empty GroupKey (no Fields)
// means "the whole stream is one group".
type GroupKey struct {
	Fields []string
	Values []any
}

// Row returns the group key rendered as a record, e.g. for a Reducer to
// seed its output row with the key fields.
func (k GroupKey) Row() record.Record {
	out := make(record.Record, len(k.Fields))
	for i, f := range k.Fields {
		out[f] = k.Values[i]
	}
	return out
}

// NewGroupKey extracts fields from row into a GroupKey.
func NewGroupKey(fields []string, row record.Record) GroupKey {
	return GroupKey{Fields: fields, Values: row.Values(fields)}
}

// Reducer aggregates one group (all records sharing a GroupKey, in input
// order) into zero or more output records. Reduce with an empty keys list
// invokes the Reducer once, with an empty GroupKey, over the whole stream.
type Reducer interface {
	Reduce(key GroupKey, rows rstream.Stream) ([]record.Record, error)
}

// Joiner combines two matched groups (already materialized, since a cross
// product needs both sides available at once) from a sort-merge Join into
// combined output records.
type Joiner interface {
	Join(keys []string, left, right []record.Record) ([]record.Record, error)
}
