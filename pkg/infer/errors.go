package infer

import (
	"errors"
	"fmt"
)

// ErrEmptyInput is returned when there is no sample or schema body to anchor
// a root on.
var ErrEmptyInput = errors.New("empty input: nothing to infer a root type from")

// ErrTooDeep is returned when input nesting exceeds Options.MaxDepth.
var ErrTooDeep = errors.New("input nesting exceeds the depth limit")

// DanglingReferenceError reports a $ref that does not resolve inside the
// document that declares it.
type DanglingReferenceError struct {
	Ref string
}

func (e *DanglingReferenceError) Error() string {
	return fmt.Sprintf("unresolved reference %q", e.Ref)
}

// ParseError reports a schema text in a schema set that could not be parsed.
type ParseError struct {
	Name string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing schema %q: %v", e.Name, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// skippable reports whether a sub-schema failure only drops that entry of a
// schema set.
func skippable(err error) bool {
	var dangling *DanglingReferenceError
	return errors.Is(err, ErrEmptyInput) || errors.As(err, &dangling)
}
