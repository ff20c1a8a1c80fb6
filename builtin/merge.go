package builtin

import "github.com/carlodf/dflow/record"

// JoinSuffixes configures the field-rename suffixes a cross-row merge
// applies when the same non-key field name appears on both sides of a
// join. Suffixes are applied verbatim, so a deliberately empty suffix
// means "let the other side's value win" for that field.
type JoinSuffixes struct {
	A string
	B string
}

// DefaultJoinSuffixes are the conventional "_1"/"_2" suffixes. Joiners do
// not apply them implicitly: a zero-value joiner has empty suffixes, so
// pass DefaultJoinSuffixes explicitly to get renaming.
var DefaultJoinSuffixes = JoinSuffixes{A: "_1", B: "_2"}

// crossJoin merges one left row and one right row into a combined record.
// A field is suffixed on a side only when the same field name also exists
// on the other side and is not a join key. Key fields are written
// unsuffixed from both passes; the two assignments agree because
// matched-group key values are equal by construction.
func crossJoin(a, b record.Record, keys []string, suf JoinSuffixes) record.Record {
	isKey := make(map[string]bool, len(keys))
	for _, k := range keys {
		isKey[k] = true
	}

	out := make(record.Record, len(a)+len(b))
	for k, v := range a {
		if _, inB := b[k]; inB && !isKey[k] {
			out[k+suf.A] = v
		} else {
			out[k] = v
		}
	}
	for k, v := range b {
		if _, inA := a[k]; inA && !isKey[k] {
			out[k+suf.B] = v
		} else {
			out[k] = v
		}
	}
	return out
}

func crossProduct(left, right []record.Record, keys []string, suf JoinSuffixes) []record.Record {
	out := make([]record.Record, 0, len(left)*len(right))
	for _, a := range left {
		for _, b := range right {
			out = append(out, crossJoin(a, b, keys, suf))
		}
	}
	return out
}
