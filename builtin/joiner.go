package builtin

import (
	"github.com/carlodf/dflow/record"
)

// InnerJoiner emits the full cross product of the two matched groups with
// field merging; if either side is empty, it emits nothing.
type InnerJoiner struct {
	Suffixes JoinSuffixes
}

func (j InnerJoiner) Join(keys []string, left, right []record.Record) ([]record.Record, error) {
	if len(left) == 0 || len(right) == 0 {
		return nil, nil
	}
	return crossProduct(left, right, keys, j.Suffixes), nil
}

// OuterJoiner emits the cross product when both sides are non-empty;
// when only one side is non-empty, its rows pass through as-is.
type OuterJoiner struct {
	Suffixes JoinSuffixes
}

func (j OuterJoiner) Join(keys []string, left, right []record.Record) ([]record.Record, error) {
	switch {
	case len(left) == 0:
		return right, nil
	case len(right) == 0:
		return left, nil
	default:
		return crossProduct(left, right, keys, j.Suffixes), nil
	}
}

// LeftJoiner emits all left rows as-is when the right side is empty, the
// cross product otherwise, and nothing when the left side is empty.
type LeftJoiner struct {
	Suffixes JoinSuffixes
}

func (j LeftJoiner) Join(keys []string, left, right []record.Record) ([]record.Record, error) {
	switch {
	case len(left) == 0:
		return nil, nil
	case len(right) == 0:
		return left, nil
	default:
		return crossProduct(left, right, keys, j.Suffixes), nil
	}
}

// RightJoiner mirrors LeftJoiner with the sides swapped.
type RightJoiner struct {
	Suffixes JoinSuffixes
}

func (j RightJoiner) Join(keys []string, left, right []record.Record) ([]record.Record, error) {
	switch {
	case len(right) == 0:
		return nil, nil
	case len(left) == 0:
		return right, nil
	default:
		return crossProduct(left, right, keys, j.Suffixes), nil
	}
}
