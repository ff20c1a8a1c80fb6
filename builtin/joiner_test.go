package builtin

import (
	"testing"

	"github.com/carlodf/dflow/record"
	"github.com/stretchr/testify/require"
)

func TestInnerJoinerCrossProductWithSuffixes(t *testing.T) {
	j := InnerJoiner{Suffixes: DefaultJoinSuffixes}
	out, err := j.Join([]string{"k"},
		[]record.Record{{"k": int64(1), "v": "left", "only_a": "a"}},
		[]record.Record{{"k": int64(1), "v": "right", "only_b": "b"}},
	)
	require.NoError(t, err)
	require.Equal(t, []record.Record{{
		"k":      int64(1),
		"v_1":    "left",
		"v_2":    "right",
		"only_a": "a",
		"only_b": "b",
	}}, out)
	require.NotContains(t, out[0], "v")
}

func TestInnerJoinerFullCrossProduct(t *testing.T) {
	j := InnerJoiner{}
	out, err := j.Join([]string{"k"},
		[]record.Record{{"k": int64(1), "a": int64(1)}, {"k": int64(1), "a": int64(2)}},
		[]record.Record{{"k": int64(1), "b": int64(1)}, {"k": int64(1), "b": int64(2)}, {"k": int64(1), "b": int64(3)}},
	)
	require.NoError(t, err)
	require.Len(t, out, 6)
}

func TestInnerJoinerEmptySideEmitsNothing(t *testing.T) {
	j := InnerJoiner{}
	out, err := j.Join([]string{"k"}, []record.Record{{"k": int64(1)}}, nil)
	require.NoError(t, err)
	require.Empty(t, out)

	out, err = j.Join([]string{"k"}, nil, []record.Record{{"k": int64(1)}})
	require.NoError(t, err)
	require.Empty(t, out)
}

func TestOuterJoinerPassesLoneSideThrough(t *testing.T) {
	j := OuterJoiner{}
	left := []record.Record{{"k": int64(1), "a": int64(10)}}
	right := []record.Record{{"k": int64(2), "b": int64(20)}}

	out, err := j.Join([]string{"k"}, left, nil)
	require.NoError(t, err)
	require.Equal(t, left, out)

	out, err = j.Join([]string{"k"}, nil, right)
	require.NoError(t, err)
	require.Equal(t, right, out)
}

func TestLeftJoiner(t *testing.T) {
	j := LeftJoiner{}
	left := []record.Record{{"k": int64(1), "a": int64(10)}}
	right := []record.Record{{"k": int64(1), "b": int64(20)}}

	out, err := j.Join([]string{"k"}, left, nil)
	require.NoError(t, err)
	require.Equal(t, left, out)

	out, err = j.Join([]string{"k"}, nil, right)
	require.NoError(t, err)
	require.Empty(t, out)

	out, err = j.Join([]string{"k"}, left, right)
	require.NoError(t, err)
	require.Equal(t, []record.Record{{"k": int64(1), "a": int64(10), "b": int64(20)}}, out)
}

func TestRightJoinerMirrorsLeft(t *testing.T) {
	j := RightJoiner{}
	left := []record.Record{{"k": int64(1), "a": int64(10)}}
	right := []record.Record{{"k": int64(1), "b": int64(20)}}

	out, err := j.Join([]string{"k"}, nil, right)
	require.NoError(t, err)
	require.Equal(t, right, out)

	out, err = j.Join([]string{"k"}, left, nil)
	require.NoError(t, err)
	require.Empty(t, out)
}

func TestCrossJoinEmptySuffixesLetRightWin(t *testing.T) {
	got := crossJoin(
		record.Record{"k": int64(1), "v": "left"},
		record.Record{"k": int64(1), "v": "right"},
		[]string{"k"},
		JoinSuffixes{},
	)
	require.Equal(t, record.Record{"k": int64(1), "v": "right"}, got)
}
