package graph

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/carlodf/dflow/builtin"
	"github.com/carlodf/dflow/dflowerr"
	"github.com/carlodf/dflow/op"
	"github.com/carlodf/dflow/record"
	"github.com/carlodf/dflow/rstream"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
)

func thunk(rows []record.Record) op.Thunk {
	return func() rstream.Stream { return rstream.FromSlice(rows) }
}

func run(t *testing.T, g Graph, inputs Inputs) []record.Record {
	t.Helper()
	out, err := Run(context.Background(), g, inputs)
	require.NoError(t, err)
	return out
}

func TestRunMissingInput(t *testing.T) {
	g := FromIter("absent")
	_, err := Run(context.Background(), g, Inputs{})
	var mi *dflowerr.MissingInputError
	require.ErrorAs(t, err, &mi)
	require.Equal(t, "absent", mi.Name)
}

func TestRunIsRestartable(t *testing.T) {
	g := FromIter("in").Map(builtin.LowerCase("text")).Sort([]string{"text"})
	rows := []record.Record{{"text": "B"}, {"text": "a"}}
	inputs := Inputs{"in": thunk(rows)}

	first, err := Run(context.Background(), g, inputs)
	require.NoError(t, err)
	second, err := Run(context.Background(), g, inputs)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestSourceDeepCopyProtectsCallerRows(t *testing.T) {
	rows := []record.Record{{"text": "HELLO"}}
	g := FromIter("in").Map(builtin.LowerCase("text"))

	got := run(t, g, Inputs{"in": thunk(rows)})
	require.Equal(t, "hello", got[0]["text"])
	// The mutating mapper wrote into a source-level copy, not the
	// caller's record.
	require.Equal(t, "HELLO", rows[0]["text"])
}

func TestSortIsStable(t *testing.T) {
	rows := []record.Record{
		{"k": int64(1), "i": int64(0)},
		{"k": int64(0), "i": int64(1)},
		{"k": int64(1), "i": int64(2)},
		{"k": int64(1), "i": int64(3)},
	}
	g := FromIter("in").Sort([]string{"k"})
	got := run(t, g, Inputs{"in": thunk(rows)})
	require.Equal(t, []any{int64(1), int64(0), int64(2), int64(3)}, []any{
		got[0]["i"], got[1]["i"], got[2]["i"], got[3]["i"],
	})
}

func TestSortIsIdempotent(t *testing.T) {
	rows := []record.Record{
		{"k": int64(2), "i": int64(0)},
		{"k": int64(1), "i": int64(1)},
		{"k": int64(2), "i": int64(2)},
	}
	once := run(t, FromIter("in").Sort([]string{"k"}), Inputs{"in": thunk(rows)})
	twice := run(t, FromIter("in").Sort([]string{"k"}).Sort([]string{"k"}), Inputs{"in": thunk(rows)})
	require.Equal(t, once, twice)
}

func TestReduceOnUnsortedInputFails(t *testing.T) {
	rows := []record.Record{{"k": int64(2)}, {"k": int64(1)}}
	g := FromIter("in").Reduce(builtin.Count{Col: "n"}, []string{"k"})
	_, err := Run(context.Background(), g, Inputs{"in": thunk(rows)})
	var nse *dflowerr.NotSortedError
	require.ErrorAs(t, err, &nse)
	require.Equal(t, []string{"k"}, nse.Keys)
}

func TestJoinOnUnsortedInputFails(t *testing.T) {
	left := []record.Record{{"k": int64(2)}, {"k": int64(1)}}
	right := []record.Record{{"k": int64(1)}}
	g := FromIter("left").Join(builtin.InnerJoiner{}, FromIter("right"), []string{"k"})
	_, err := Run(context.Background(), g, Inputs{"left": thunk(left), "right": thunk(right)})
	var nse *dflowerr.NotSortedError
	require.ErrorAs(t, err, &nse)
}

func TestReduceEmptyKeysCountsWholeStream(t *testing.T) {
	rows := make([]record.Record, 4)
	for i := range rows {
		rows[i] = record.Record{"i": int64(i)}
	}
	g := FromIter("in").Reduce(builtin.Count{Col: "n"}, nil)
	got := run(t, g, Inputs{"in": thunk(rows)})
	require.Equal(t, []record.Record{{"n": int64(4)}}, got)
}

func TestOuterJoinWithEmptyRightSide(t *testing.T) {
	left := []record.Record{{"k": int64(1), "a": int64(10)}}

	outer := FromIter("left").Join(builtin.OuterJoiner{}, FromIter("right"), []string{"k"})
	got := run(t, outer, Inputs{"left": thunk(left), "right": thunk(nil)})
	require.Equal(t, []record.Record{{"k": int64(1), "a": int64(10)}}, got)

	inner := FromIter("left").Join(builtin.InnerJoiner{}, FromIter("right"), []string{"k"})
	got = run(t, inner, Inputs{"left": thunk(left), "right": thunk(nil)})
	require.Empty(t, got)
}

func TestJoinMergesUnmatchedGroupsFromBothSides(t *testing.T) {
	left := []record.Record{
		{"k": int64(1), "a": int64(1)},
		{"k": int64(3), "a": int64(3)},
	}
	right := []record.Record{
		{"k": int64(2), "b": int64(2)},
		{"k": int64(3), "b": int64(3)},
		{"k": int64(4), "b": int64(4)},
	}
	g := FromIter("left").Join(builtin.OuterJoiner{}, FromIter("right"), []string{"k"})
	got := run(t, g, Inputs{"left": thunk(left), "right": thunk(right)})
	require.Equal(t, []record.Record{
		{"k": int64(1), "a": int64(1)},
		{"k": int64(2), "b": int64(2)},
		{"k": int64(3), "a": int64(3), "b": int64(3)},
		{"k": int64(4), "b": int64(4)},
	}, got)
}

func TestJoinSuffixesRenameCollidingFields(t *testing.T) {
	left := []record.Record{{"k": int64(1), "v": "left"}}
	right := []record.Record{{"k": int64(1), "v": "right"}}
	g := FromIter("left").Join(
		builtin.InnerJoiner{Suffixes: builtin.DefaultJoinSuffixes},
		FromIter("right"),
		[]string{"k"},
	)
	got := run(t, g, Inputs{"left": thunk(left), "right": thunk(right)})
	require.Equal(t, []record.Record{{"k": int64(1), "v_1": "left", "v_2": "right"}}, got)
}

func TestSharedSubgraphBranchesAreIndependent(t *testing.T) {
	base := FromIter("in").Map(builtin.LowerCase("text"))
	counted := base.Sort([]string{"text"}).Reduce(builtin.Count{Col: "n"}, []string{"text"})
	first := base.Sort([]string{"text"}).Reduce(builtin.FirstReducer{}, []string{"text"})
	g := counted.Join(builtin.InnerJoiner{}, first, []string{"text"})

	rows := []record.Record{{"text": "A"}, {"text": "a"}, {"text": "B"}}
	got := run(t, g, Inputs{"in": thunk(rows)})
	require.Equal(t, []record.Record{
		{"text": "a", "n": int64(2)},
		{"text": "b", "n": int64(1)},
	}, got)
}

func TestMapperErrorSurfacesToCaller(t *testing.T) {
	g := FromIter("in").Map(builtin.LowerCase("text"))
	rows := []record.Record{{"text": int64(1)}}
	_, err := Run(context.Background(), g, Inputs{"in": thunk(rows)})
	require.Error(t, err)
	require.Contains(t, err.Error(), "mapper")
}

func TestFromFileReadsAndParses(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rows.txt")
	require.NoError(t, os.WriteFile(path, []byte("a\nb\n\nc\n"), 0o644))

	parser := func(line string) (record.Record, error) {
		if line == "" {
			return nil, nil
		}
		return record.Record{"text": line}, nil
	}
	got := run(t, FromFile(path, parser), nil)
	require.Equal(t, []record.Record{{"text": "a"}, {"text": "b"}, {"text": "c"}}, got)
}

func TestFromFileGlobStreamsFilesInOrder(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.txt"), []byte("2"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("1"), 0o644))

	parser := func(line string) (record.Record, error) {
		return record.Record{"text": line}, nil
	}
	got := run(t, FromFile(filepath.Join(dir, "*.txt"), parser), nil)
	require.Equal(t, []record.Record{{"text": "1"}, {"text": "2"}}, got)
}

func TestFromFileMissingFileFails(t *testing.T) {
	g := FromFile(filepath.Join(t.TempDir(), "absent.txt"), func(string) (record.Record, error) {
		return nil, nil
	})
	_, err := Run(context.Background(), g, nil)
	var foe *dflowerr.FileOpenError
	require.ErrorAs(t, err, &foe)
}

func TestFromFileParseErrorNamesSource(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.txt")
	require.NoError(t, os.WriteFile(path, []byte("good\nbad\n"), 0o644))

	parser := func(line string) (record.Record, error) {
		if line == "bad" {
			return nil, errFixture{}
		}
		return record.Record{"text": line}, nil
	}
	_, err := Run(context.Background(), FromFile(path, parser), nil)
	var pe *dflowerr.ParseError
	require.ErrorAs(t, err, &pe)
	require.Equal(t, path, pe.Source)
	require.Equal(t, "bad", pe.Line)
}

func TestRunLogsRowCount(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	g := FromIter("in")
	rows := []record.Record{{"a": int64(1)}, {"a": int64(2)}}
	_, err := Run(context.Background(), g, Inputs{"in": thunk(rows)}, WithLogger(logger))
	require.NoError(t, err)

	entries := hook.AllEntries()
	require.NotEmpty(t, entries)
	last := entries[len(entries)-1]
	require.Equal(t, "dflow: run completed", last.Message)
	require.Equal(t, 2, last.Data["rows"])
}

type errFixture struct{}

func (errFixture) Error() string { return "fixture error" }
