package parse

import (
	"encoding/json"
	"strings"

	"github.com/carlodf/dflow/graph"
	"github.com/carlodf/dflow/record"
)

// JSONLines constructs a parser for newline-delimited JSON: one object per
// line. Blank lines are skipped. Numbers written as plain integers (no
// decimal point or exponent) that fit are stored as int64, all others as
// float64 (so 2.0 becomes float64); nested objects become nested records.
func JSONLines() graph.Parser {
	return func(line string) (record.Record, error) {
		if strings.TrimSpace(line) == "" {
			return nil, nil
		}
		dec := json.NewDecoder(strings.NewReader(line))
		dec.UseNumber()
		var raw map[string]any
		if err := dec.Decode(&raw); err != nil {
			return nil, err
		}
		return toRecord(raw), nil
	}
}

func toRecord(m map[string]any) record.Record {
	out := make(record.Record, len(m))
	for k, v := range m {
		out[k] = toValue(v)
	}
	return out
}

func toValue(v any) any {
	switch t := v.(type) {
	case json.Number:
		if n, err := t.Int64(); err == nil {
			return n
		}
		if f, err := t.Float64(); err == nil {
			return f
		}
		return t.String()
	case map[string]any:
		return toRecord(t)
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = toValue(e)
		}
		return out
	default:
		return v
	}
}
