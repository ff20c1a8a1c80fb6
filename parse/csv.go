// Package parse provides ready-made line parsers for file-backed graph
// nodes. Each constructor returns a graph.Parser that turns one line of
// text into one record; a caller with a custom format writes its own
// Parser instead.
package parse

import (
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"github.com/carlodf/dflow/graph"
	"github.com/carlodf/dflow/record"
)

// CSVOptions configures a CSV line parser.
//
// Header names the fields, in order; it is required, since a per-line
// parser holds no state between lines (or between runs) and therefore
// cannot infer a header from the stream. Comma controls the field
// delimiter; if zero, ',' is used. When InferTypes is set, field values
// that parse as integers, floats, or booleans are stored as int64,
// float64, or bool instead of string.
type CSVOptions struct {
	Comma      rune
	Header     []string
	InferTypes bool
}

// CSV constructs a parser for one-line CSV records following the RFC 4180
// field rules (with a configurable delimiter). Every line must have
// exactly as many fields as the header; blank lines are skipped. A header
// row repeated in the data is not detected; strip it with a Filter
// mapper, or point the source at headerless files.
func CSV(opt CSVOptions) (graph.Parser, error) {
	if len(opt.Header) == 0 {
		return nil, fmt.Errorf("parse: CSV requires a header")
	}
	if err := validateHeader(opt.Header); err != nil {
		return nil, fmt.Errorf("parse: malformed header: %w", err)
	}
	comma := opt.Comma
	if comma == 0 {
		comma = ','
	}
	header := append([]string(nil), opt.Header...)

	return func(line string) (record.Record, error) {
		if strings.TrimSpace(line) == "" {
			return nil, nil
		}
		r := csv.NewReader(strings.NewReader(line))
		r.Comma = comma
		r.FieldsPerRecord = len(header)
		r.TrimLeadingSpace = true
		fields, err := r.Read()
		if err != nil {
			return nil, err
		}
		out := make(record.Record, len(header))
		for i, name := range header {
			if opt.InferTypes {
				out[name] = inferValue(fields[i])
			} else {
				out[name] = fields[i]
			}
		}
		return out, nil
	}, nil
}

// MustCSV is CSV for statically known options: it panics instead of
// returning an error.
func MustCSV(opt CSVOptions) graph.Parser {
	p, err := CSV(opt)
	if err != nil {
		panic(err)
	}
	return p
}

// validateHeader checks for basic header sanity (no duplicate names).
func validateHeader(h []string) error {
	names := make(map[string]struct{})
	for _, name := range h {
		if _, ok := names[name]; ok {
			return fmt.Errorf("duplicate entry %s in header %q", name, h)
		}
		names[name] = struct{}{}
	}
	return nil
}

// inferValue maps a raw CSV field onto the record value domain: int64,
// float64, bool, or string when nothing narrower applies.
func inferValue(s string) any {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	return s
}
