// Package dflowerr defines the error kinds a dflow graph can raise and the
// wrapping helpers operators use to attach stage context without obscuring
// the underlying cause.
package dflowerr

import (
	"fmt"

	"github.com/pkg/errors"
)

// MissingInputError is raised by a FromIter source when its bound name is
// absent from the inputs map passed to Run.
type MissingInputError struct {
	Name string
}

func (e *MissingInputError) Error() string {
	return fmt.Sprintf("dflow: missing input %q", e.Name)
}

// FileOpenError is raised by a FromFile source on any filesystem error.
type FileOpenError struct {
	Path string
	Err  error
}

func (e *FileOpenError) Error() string {
	return fmt.Sprintf("dflow: open %q: %v", e.Path, e.Err)
}

func (e *FileOpenError) Unwrap() error { return e.Err }

// ParseError is raised by a FromFile source when the user-supplied parser
// rejects a line. Source names the file the line came from.
type ParseError struct {
	Source string
	Line   string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("dflow: parse %s line %q: %v", e.Source, e.Line, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// NotSortedError is raised by Reduce and Join when their input stream is
// not ascending by the required keys.
type NotSortedError struct {
	Keys []string
}

func (e *NotSortedError) Error() string {
	return fmt.Sprintf("dflow: input not sorted by keys %v", e.Keys)
}

// WrapMapper attaches mapper-stage context to a user-supplied Mapper's
// error without changing its identity for errors.Is/As.
func WrapMapper(err error) error { return errors.Wrap(err, "mapper") }

// WrapReducer attaches reducer-stage context.
func WrapReducer(err error) error { return errors.Wrap(err, "reducer") }

// WrapJoiner attaches joiner-stage context.
func WrapJoiner(err error) error { return errors.Wrap(err, "joiner") }
