// Package record defines the universal datum that flows through a dflow
// graph: an open, dynamically typed mapping from field name to value.
//
// A Record has no fixed schema. Operators treat unknown fields as opaque and
// pass them through unchanged unless the operator's contract says otherwise
// (Project, cross-join field merging, …).
package record

import "fmt"

// Record is one row: a mapping from field name to a dynamically typed
// value. The value domain is the union of int64, float64, string, bool, and
// (transitively) nested Record or []any.
//
// Records are logically immutable from an operator's perspective. DeepCopy
// exists so that source operators can hand out values that downstream
// mutating mappers (FilterPunctuation, LowerCase, …) may safely overwrite in
// place without corrupting the caller's data or a later run.
type Record map[string]any

// DeepCopy returns a copy of r in which no nested map or slice is shared
// with r. Scalar values (int64, float64, string, bool) are immutable in Go
// and are copied by value automatically.
func (r Record) DeepCopy() Record {
	if r == nil {
		return nil
	}
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = copyValue(v)
	}
	return out
}

func copyValue(v any) any {
	switch t := v.(type) {
	case Record:
		return t.DeepCopy()
	case map[string]any:
		return Record(t).DeepCopy()
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = copyValue(e)
		}
		return out
	default:
		return v
	}
}

// Project returns a new Record containing only the named fields. Fields
// absent from r are simply absent from the result.
func (r Record) Project(fields []string) Record {
	out := make(Record, len(fields))
	for _, f := range fields {
		if v, ok := r[f]; ok {
			out[f] = v
		}
	}
	return out
}

// Values returns the value of each named field, in order. It panics if a
// field is missing, since callers (sort keys, group keys, join keys) only
// ever request fields the graph author declared on purpose.
func (r Record) Values(fields []string) []any {
	out := make([]any, len(fields))
	for i, f := range fields {
		v, ok := r[f]
		if !ok {
			panic(fmt.Sprintf("record: missing field %q", f))
		}
		out[i] = v
	}
	return out
}
