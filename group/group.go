// Package group implements the grouped-iteration precheck primitive that
// underlies both Reduce and Join: it partitions a stream that claims to be
// sorted by a key into maximal adjacent runs, failing hard the moment it
// observes a key go backwards.
//
// One row is always held a step ahead so the cursor knows where the current
// group ends without consuming the first row of the next one.
package group

import (
	"github.com/carlodf/dflow/dflowerr"
	"github.com/carlodf/dflow/op"
	"github.com/carlodf/dflow/record"
	"github.com/carlodf/dflow/rstream"
)

// Cursor iterates over (key, group rows) pairs pulled from a sorted stream.
// Each group is fully materialized by the time Next returns, so callers are
// free to consume Rows partially or not at all without affecting the next
// Next call.
type Cursor struct {
	src    rstream.Stream
	fields []string

	pending    record.Record
	hasPending bool

	haveLast bool
	lastKey  []any

	pendingErr error
	done       bool
	err        error

	curKey  op.GroupKey
	curRows []record.Record
}

// New returns a Cursor grouping src by fields. An empty fields slice is
// rejected by callers before construction; Reduce/Join handle the
// empty-keys ("whole stream is one group") case themselves without this
// primitive, since it needs no sortedness check.
func New(src rstream.Stream, fields []string) *Cursor {
	return &Cursor{src: src, fields: fields}
}

// Next advances to the next group. It returns false when the stream is
// exhausted or a NotSortedError was detected; check Err to distinguish the
// two.
func (c *Cursor) Next() bool {
	if c.done {
		return false
	}
	if c.pendingErr != nil {
		c.err = c.pendingErr
		c.done = true
		return false
	}

	var first record.Record
	if c.hasPending {
		first = c.pending
		c.hasPending = false
	} else {
		if !c.src.Next() {
			c.done = true
			c.err = c.src.Err()
			return false
		}
		first = c.src.Row()
	}

	firstKey := op.NewGroupKey(c.fields, first)
	if c.haveLast && record.CompareKeys(firstKey.Values, c.lastKey) < 0 {
		c.done = true
		c.err = &dflowerr.NotSortedError{Keys: c.fields}
		return false
	}
	c.lastKey = firstKey.Values
	c.haveLast = true

	rows := []record.Record{first}
	for {
		if !c.src.Next() {
			c.done = true
			c.err = c.src.Err()
			break
		}
		next := c.src.Row()
		nextKey := op.NewGroupKey(c.fields, next)
		cmp := record.CompareKeys(nextKey.Values, c.lastKey)
		switch {
		case cmp == 0:
			rows = append(rows, next)
		case cmp > 0:
			c.pending = next
			c.hasPending = true
			c.lastKey = nextKey.Values
			goto groupDone
		default: // cmp < 0: a later row landed behind the running maximum.
			c.pendingErr = &dflowerr.NotSortedError{Keys: c.fields}
			goto groupDone
		}
	}
groupDone:
	c.curKey = firstKey
	c.curRows = rows
	return true
}

// Key returns the current group's key. Valid only after Next returns true.
func (c *Cursor) Key() op.GroupKey { return c.curKey }

// Rows returns a fresh Stream over the current group's materialized rows.
// Valid only after Next returns true.
func (c *Cursor) Rows() rstream.Stream { return rstream.FromSlice(c.curRows) }

// RowSlice returns the current group's rows directly, for callers (Join)
// that need the materialized slice rather than a Stream.
func (c *Cursor) RowSlice() []record.Record { return c.curRows }

// Err returns the error that caused Next to return false, or nil on clean
// exhaustion.
func (c *Cursor) Err() error { return c.err }
