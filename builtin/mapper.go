// Package builtin provides the concrete mappers, reducers, and joiners
// that ship with dflow: everything needed to express word-count and
// inverted-index / TF-IDF pipelines over row streams.
package builtin

import (
	"fmt"
	"math"
	"strings"
	"unicode"

	"github.com/carlodf/dflow/op"
	"github.com/carlodf/dflow/record"
)

// FilterPunctuation replaces col with its value stripped of punctuation:
// every rune in a Unicode punctuation category (unicode.IsPunct) is
// removed. ASCII characters that Unicode classes as symbols rather than
// punctuation ($ + < = > ^ ` | ~) are kept.
func FilterPunctuation(col string) op.Mapper {
	return op.MapperFunc(func(row record.Record) ([]record.Record, error) {
		s, ok := row[col].(string)
		if !ok {
			return nil, fmt.Errorf("FilterPunctuation: field %q is not a string", col)
		}
		row[col] = strings.Map(func(r rune) rune {
			if unicode.IsPunct(r) {
				return -1
			}
			return r
		}, s)
		return []record.Record{row}, nil
	})
}

// LowerCase lowercases col.
func LowerCase(col string) op.Mapper {
	return op.MapperFunc(func(row record.Record) ([]record.Record, error) {
		s, ok := row[col].(string)
		if !ok {
			return nil, fmt.Errorf("LowerCase: field %q is not a string", col)
		}
		row[col] = strings.ToLower(s)
		return []record.Record{row}, nil
	})
}

// Split emits one record per token of col, with col replaced by that token
// and all other fields preserved (copied) across every emitted row. If sep
// is nil, the column is split on runs of whitespace; empty tokens are
// dropped either way.
func Split(col string, sep *string) op.Mapper {
	return op.MapperFunc(func(row record.Record) ([]record.Record, error) {
		s, ok := row[col].(string)
		if !ok {
			return nil, fmt.Errorf("Split: field %q is not a string", col)
		}
		var tokens []string
		if sep == nil {
			tokens = strings.Fields(s)
		} else {
			for _, t := range strings.Split(s, *sep) {
				if t != "" {
					tokens = append(tokens, t)
				}
			}
		}
		out := make([]record.Record, 0, len(tokens))
		for _, tok := range tokens {
			clone := make(record.Record, len(row))
			for k, v := range row {
				clone[k] = v
			}
			clone[col] = tok
			out = append(out, clone)
		}
		return out, nil
	})
}

// Project emits a record containing only the listed fields.
func Project(cols []string) op.Mapper {
	return op.MapperFunc(func(row record.Record) ([]record.Record, error) {
		return []record.Record{row.Project(cols)}, nil
	})
}

// Predicate reports whether row should pass a Filter mapper.
type Predicate func(row record.Record) bool

// Filter emits row iff predicate(row) is true.
func Filter(predicate Predicate) op.Mapper {
	return op.MapperFunc(func(row record.Record) ([]record.Record, error) {
		if predicate(row) {
			return []record.Record{row}, nil
		}
		return nil, nil
	})
}

// ApplyFunc computes a value from the ordered values of the configured
// columns.
type ApplyFunc func(args ...any) any

// Apply writes fn(row[cols[0]], row[cols[1]], ...) into resultCol and emits
// the row.
func Apply(fn ApplyFunc, cols []string, resultCol string) op.Mapper {
	return op.MapperFunc(func(row record.Record) ([]record.Record, error) {
		args := make([]any, len(cols))
		for i, c := range cols {
			args[i] = row[c]
		}
		row[resultCol] = fn(args...)
		return []record.Record{row}, nil
	})
}

// IDF writes log(total / term_occ) into result (default "idf").
func IDF(totalCol, termOccCol, result string) op.Mapper {
	if result == "" {
		result = "idf"
	}
	return op.MapperFunc(func(row record.Record) ([]record.Record, error) {
		total, err := numeric(row[totalCol])
		if err != nil {
			return nil, fmt.Errorf("IDF: %w", err)
		}
		occ, err := numeric(row[termOccCol])
		if err != nil {
			return nil, fmt.Errorf("IDF: %w", err)
		}
		row[result] = math.Log(total / occ)
		return []record.Record{row}, nil
	})
}

// TF_IDF writes tf * idf into result (default "tf_idf").
func TF_IDF(tfCol, idfCol, result string) op.Mapper {
	if result == "" {
		result = "tf_idf"
	}
	return op.MapperFunc(func(row record.Record) ([]record.Record, error) {
		tf, err := numeric(row[tfCol])
		if err != nil {
			return nil, fmt.Errorf("TF_IDF: %w", err)
		}
		idf, err := numeric(row[idfCol])
		if err != nil {
			return nil, fmt.Errorf("TF_IDF: %w", err)
		}
		row[result] = tf * idf
		return []record.Record{row}, nil
	})
}

func numeric(v any) (float64, error) {
	switch t := v.(type) {
	case int:
		return float64(t), nil
	case int64:
		return float64(t), nil
	case float64:
		return t, nil
	case float32:
		return float64(t), nil
	default:
		return 0, fmt.Errorf("value %v is not numeric", v)
	}
}
