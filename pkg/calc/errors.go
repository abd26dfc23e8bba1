package calc

import (
	"fmt"

	"go.starlark.net/syntax"
)

// EvalError reports a failure while evaluating part of an expression.
type EvalError struct {
	Line    int
	Column  int
	Message string
}

func (e *EvalError) Error() string {
	return fmt.Sprintf("calc: %d:%d: %s", e.Line, e.Column, e.Message)
}

func errAt(n syntax.Node, format string, args ...any) error {
	start, _ := n.Span()
	return &EvalError{Line: int(start.Line), Column: int(start.Col), Message: fmt.Sprintf(format, args...)}
}

// Common error messages
const (
	ErrUndefined     = "undefined: %s"
	ErrUnsupported   = "unsupported expression %T"
	ErrOperator      = "unsupported operator %s"
	ErrOperandTypes  = "invalid operands for %s: %s and %s"
	ErrNotNumber     = "%s: want number, got %s"
	ErrArgCount      = "%s: want %s arguments, got %d"
	ErrNotContainer  = "in: want list or string, got %s"
	ErrIndexRange    = "index %s out of range for length %d"
	ErrKeywordArg    = "%s: keyword arguments are not supported"
	ErrNotCallable   = "%s is not a function"
	ErrEmptyInterval = "randint: empty interval [%s, %s]"
)
