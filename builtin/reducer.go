package builtin

import (
	"fmt"

	"github.com/carlodf/dflow/op"
	"github.com/carlodf/dflow/record"
	"github.com/carlodf/dflow/rstream"
	"golang.org/x/exp/slices"
)

// FirstReducer yields only the first row of a group, discarding the rest.
type FirstReducer struct{}

func (FirstReducer) Reduce(key op.GroupKey, rows rstream.Stream) ([]record.Record, error) {
	defer rows.Close()
	if !rows.Next() {
		return nil, rows.Err()
	}
	return []record.Record{rows.Row()}, nil
}

// Count counts the rows in a group and yields a single record containing
// just the group-key fields plus col = count. The output row is built from
// the group key alone, never from an arbitrary member row's extra fields.
type Count struct {
	Col string
}

func (c Count) Reduce(key op.GroupKey, rows rstream.Stream) ([]record.Record, error) {
	defer rows.Close()
	var n int64
	for rows.Next() {
		n++
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	out := key.Row()
	out[c.Col] = n
	return []record.Record{out}, nil
}

// Sum yields one record: group-key fields plus col = sum of col's values
// across the group.
type Sum struct {
	Col string
}

func (s Sum) Reduce(key op.GroupKey, rows rstream.Stream) ([]record.Record, error) {
	defer rows.Close()
	var total float64
	for rows.Next() {
		v, err := numeric(rows.Row()[s.Col])
		if err != nil {
			return nil, fmt.Errorf("Sum: %w", err)
		}
		total += v
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	out := key.Row()
	out[s.Col] = total
	return []record.Record{out}, nil
}

// Mean yields one record: group-key fields plus col = arithmetic mean.
// Empty groups never reach a Reducer (the grouped-iteration primitive never
// yields one), so division by zero cannot occur here.
type Mean struct {
	Col string
}

func (m Mean) Reduce(key op.GroupKey, rows rstream.Stream) ([]record.Record, error) {
	defer rows.Close()
	var total float64
	var n int64
	for rows.Next() {
		v, err := numeric(rows.Row()[m.Col])
		if err != nil {
			return nil, fmt.Errorf("Mean: %w", err)
		}
		total += v
		n++
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	out := key.Row()
	out[m.Col] = total / float64(n)
	return []record.Record{out}, nil
}

// TF groups words within a document and yields one record per distinct
// word: the document's group-key fields, the word under WordsCol, and the
// occurrence proportion under Result (default "tf").
type TF struct {
	WordsCol string
	Result   string
}

func (t TF) Reduce(key op.GroupKey, rows rstream.Stream) ([]record.Record, error) {
	defer rows.Close()
	result := t.Result
	if result == "" {
		result = "tf"
	}
	counts := map[any]int64{}
	order := make([]any, 0)
	var total int64
	for rows.Next() {
		w := rows.Row()[t.WordsCol]
		if _, seen := counts[w]; !seen {
			order = append(order, w)
		}
		counts[w]++
		total++
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	out := make([]record.Record, 0, len(order))
	for _, w := range order {
		rec := key.Row()
		rec[t.WordsCol] = w
		rec[result] = float64(counts[w]) / float64(total)
		out = append(out, rec)
	}
	return out, nil
}

// TopN yields up to N records with the largest values of Col in the group,
// in descending order of Col. Ties are broken by input order, since a
// stable sort preserves the relative order of equal elements.
type TopN struct {
	Col string
	N   int
}

func (t TopN) Reduce(key op.GroupKey, rows rstream.Stream) ([]record.Record, error) {
	all, err := rstream.Collect(rows)
	if err != nil {
		return nil, err
	}
	slices.SortStableFunc(all, func(a, b record.Record) int {
		return record.CompareValues(b[t.Col], a[t.Col])
	})
	if len(all) > t.N {
		all = all[:t.N]
	}
	return all, nil
}

// GroupPredicate evaluates the gathered values of a FilterGroup's column
// across a whole group.
type GroupPredicate func(values ...any) bool

// FilterGroup gathers every group value of Col into a tuple, evaluates
// Predicate over it, and emits the last row of the group when it holds.
type FilterGroup struct {
	Predicate GroupPredicate
	Col       string
}

func (f FilterGroup) Reduce(key op.GroupKey, rows rstream.Stream) ([]record.Record, error) {
	defer rows.Close()
	var values []any
	var last record.Record
	for rows.Next() {
		last = rows.Row()
		values = append(values, last[f.Col])
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if f.Predicate(values...) {
		return []record.Record{last}, nil
	}
	return nil, nil
}
