package token

import "github.com/leapstack-labs/bigsharp/pkg/decimal"

// ValueKind discriminates the literal attached to a token.
type ValueKind uint8

const (
	ValueNone ValueKind = iota
	ValueNumber
	ValueChar
	ValueString
)

// Value is the literal attached to a Number, Char or String token. Only the
// field selected by its kind is meaningful.
type Value struct {
	kind ValueKind
	num  decimal.Decimal
	char rune
	str  string
}

// NumberValue returns a Value holding d.
func NumberValue(d decimal.Decimal) Value { return Value{kind: ValueNumber, num: d} }

// CharValue returns a Value holding r.
func CharValue(r rune) Value { return Value{kind: ValueChar, char: r} }

// StringValue returns a Value holding s.
func StringValue(s string) Value { return Value{kind: ValueString, str: s} }

// Kind returns which literal v holds.
func (v Value) Kind() ValueKind { return v.kind }

// AsNumber returns the number held by v.
func (v Value) AsNumber() (decimal.Decimal, bool) {
	return v.num, v.kind == ValueNumber
}

// AsChar returns the character held by v.
func (v Value) AsChar() (rune, bool) {
	return v.char, v.kind == ValueChar
}

// AsString returns the string held by v.
func (v Value) AsString() (string, bool) {
	return v.str, v.kind == ValueString
}

func (v Value) String() string {
	switch v.kind {
	case ValueNumber:
		return v.num.String()
	case ValueChar:
		return string(v.char)
	case ValueString:
		return v.str
	}
	return ""
}
