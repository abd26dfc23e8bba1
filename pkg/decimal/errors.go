package decimal

import (
	"errors"
	"fmt"
)

var (
	// ErrEmpty is returned when parsing empty or blank text.
	ErrEmpty = errors.New("empty input")
	// ErrSyntax is returned when text does not match the number grammar.
	ErrSyntax = errors.New("invalid syntax")
	// ErrRange is returned when an exponent is too large to represent.
	ErrRange = errors.New("exponent out of range")

	// ErrNotFinite is returned when converting NaN or an infinity.
	ErrNotFinite = errors.New("decimal: value is not finite")
	// ErrOverflow is returned when a value does not fit the target type.
	ErrOverflow = errors.New("decimal: value out of range")
	// ErrNegativeRoot is returned for an even root or a fractional power of
	// a negative number.
	ErrNegativeRoot = errors.New("decimal: no real root of a negative number")
	// ErrRootDegree is returned for a root degree below one.
	ErrRootDegree = errors.New("decimal: root degree must be positive")
)

// ParseError records a failed parse.
type ParseError struct {
	Input string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("decimal: parsing %q: %v", e.Input, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
