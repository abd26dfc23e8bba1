package calc

import (
	"strconv"
	"strings"

	"github.com/leapstack-labs/bigsharp/pkg/decimal"
)

// Value is the result of evaluating an expression.
type Value interface {
	String() string
	Type() string
}

// Number is an arbitrary-precision decimal value.
type Number struct {
	decimal.Decimal
}

// Type implements Value.
func (Number) Type() string { return "number" }

// String is a text value.
type String string

func (s String) String() string { return string(s) }

// Type implements Value.
func (String) Type() string { return "string" }

// Bool is a truth value.
type Bool bool

func (b Bool) String() string {
	if b {
		return "true"
	}
	return "false"
}

// Type implements Value.
func (Bool) Type() string { return "bool" }

// List is an ordered collection.
type List []Value

func (l List) String() string {
	parts := make([]string, len(l))
	for i, v := range l {
		if s, ok := v.(String); ok {
			parts[i] = strconv.Quote(string(s))
			continue
		}
		parts[i] = v.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// Type implements Value.
func (List) Type() string { return "list" }

// NumberOf wraps d.
func NumberOf(d decimal.Decimal) Number { return Number{Decimal: d} }

// Truth reports the truthiness of v: zero, NaN, empty strings and empty
// lists are false.
func Truth(v Value) bool {
	switch v := v.(type) {
	case Bool:
		return bool(v)
	case Number:
		return !v.IsZero() && !v.IsNaN()
	case String:
		return v != ""
	case List:
		return len(v) > 0
	}
	return false
}

// Equal compares values of the same type. Numbers compare with decimal
// equality, so NaN equals nothing.
func Equal(a, b Value) bool {
	switch a := a.(type) {
	case Number:
		b, ok := b.(Number)
		return ok && a.Equal(b.Decimal)
	case String:
		b, ok := b.(String)
		return ok && a == b
	case Bool:
		b, ok := b.(Bool)
		return ok && a == b
	case List:
		b, ok := b.(List)
		if !ok || len(a) != len(b) {
			return false
		}
		for i := range a {
			if !Equal(a[i], b[i]) {
				return false
			}
		}
		return true
	}
	return false
}
