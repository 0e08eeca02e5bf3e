package expr

import (
	"errors"
	"fmt"
)

// ErrorKind classifies an evaluation failure.
type ErrorKind string

const (
	KindMalformed      ErrorKind = "malformed"
	KindDivisionByZero ErrorKind = "division_by_zero"
)

var (
	// ErrMalformedExpression is matched by errors.Is for unbalanced
	// parentheses, missing operands and unrecognized input.
	ErrMalformedExpression = errors.New("malformed expression")

	// ErrDivisionByZero is matched by errors.Is when the right operand of a
	// division evaluates to zero.
	ErrDivisionByZero = errors.New("division by zero")
)

// Error is the typed failure returned by Lex, Parse, Eval and Evaluate.
type Error struct {
	Kind ErrorKind
	Msg  string
	Pos  int // byte offset in source, -1 when not tied to a position
}

func (e *Error) Error() string {
	if e.Pos >= 0 {
		return fmt.Sprintf("%s at position %d", e.Msg, e.Pos)
	}
	return e.Msg
}

// Unwrap returns the sentinel for the error's kind.
func (e *Error) Unwrap() error {
	switch e.Kind {
	case KindDivisionByZero:
		return ErrDivisionByZero
	default:
		return ErrMalformedExpression
	}
}

func malformedf(pos int, format string, args ...any) *Error {
	return &Error{Kind: KindMalformed, Msg: fmt.Sprintf(format, args...), Pos: pos}
}

// KindOf reports the ErrorKind carried by err, or "" if err did not come from
// this package.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}
