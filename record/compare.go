package record

// CompareValues defines a total order over the Record value domain so that
// Sort, the grouped-iteration primitive, and Join can order and compare key
// tuples.
//
// Ordering: bool < numeric < string. All numerics (int, int32, int64,
// float32, float64) are converted to float64 and compared as such, so
// integers beyond 2^53 that differ only in low bits compare equal. Mixed types outside of this numeric promotion are
// ordered by a fixed type rank so that comparison never panics; don't rely
// on cross-kind ordering beyond "it is total and deterministic". Key
// columns are expected to be homogeneous in practice.
func CompareValues(a, b any) int {
	af, aIsNum := asFloat64(a)
	bf, bIsNum := asFloat64(b)
	if aIsNum && bIsNum {
		switch {
		case af < bf:
			return -1
		case af > bf:
			return 1
		default:
			return 0
		}
	}

	as, aIsStr := a.(string)
	bs, bIsStr := b.(string)
	if aIsStr && bIsStr {
		switch {
		case as < bs:
			return -1
		case as > bs:
			return 1
		default:
			return 0
		}
	}

	ab, aIsBool := a.(bool)
	bb, bIsBool := b.(bool)
	if aIsBool && bIsBool {
		switch {
		case !ab && bb:
			return -1
		case ab && !bb:
			return 1
		default:
			return 0
		}
	}

	return typeRank(a) - typeRank(b)
}

// CompareKeys compares two equal-length key tuples lexicographically,
// field by field, using CompareValues.
func CompareKeys(a, b []any) int {
	for i := range a {
		if c := CompareValues(a[i], b[i]); c != 0 {
			return c
		}
	}
	return 0
}

func asFloat64(v any) (float64, bool) {
	switch t := v.(type) {
	case int:
		return float64(t), true
	case int32:
		return float64(t), true
	case int64:
		return float64(t), true
	case float32:
		return float64(t), true
	case float64:
		return t, true
	default:
		return 0, false
	}
}

func typeRank(v any) int {
	switch v.(type) {
	case bool:
		return 0
	case int, int32, int64, float32, float64:
		return 1
	case string:
		return 2
	default:
		return 3
	}
}

// Equal reports whether two key tuples are equal under CompareValues.
func Equal(a, b []any) bool {
	if len(a) != len(b) {
		return false
	}
	return CompareKeys(a, b) == 0
}
