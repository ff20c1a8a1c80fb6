package dflowerr

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestWrapHelpersPreserveCause(t *testing.T) {
	cause := errors.New("boom")

	for name, wrapped := range map[string]error{
		"mapper":  WrapMapper(cause),
		"reducer": WrapReducer(cause),
		"joiner":  WrapJoiner(cause),
	} {
		require.ErrorIs(t, wrapped, cause, name)
		require.Contains(t, wrapped.Error(), name)
	}
}

func TestErrorKindsUnwrap(t *testing.T) {
	cause := errors.New("disk on fire")

	var foe error = &FileOpenError{Path: "/data/a.txt", Err: cause}
	require.ErrorIs(t, foe, cause)
	require.Contains(t, foe.Error(), "/data/a.txt")

	var pe error = &ParseError{Source: "/data/a.txt", Line: "garbage", Err: cause}
	require.ErrorIs(t, pe, cause)
	require.Contains(t, pe.Error(), "garbage")

	mi := &MissingInputError{Name: "texts"}
	require.Contains(t, mi.Error(), "texts")

	nse := &NotSortedError{Keys: []string{"doc_id", "text"}}
	require.Contains(t, nse.Error(), "doc_id")
}
