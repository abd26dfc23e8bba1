package decimal

import (
	"math/big"
	"strconv"
	"strings"
)

// maxExponent bounds scientific-notation exponents.
const maxExponent = 1 << 20

// Parse parses a decimal number. It accepts an optional sign, a digit run
// optionally followed by '.' and another digit run, an optional exponent
// (1.5e-3), and the case-insensitive sentinels nan, infinity and -infinity.
//
// Empty input returns ErrEmpty. Malformed input returns a *ParseError
// wrapping ErrSyntax or ErrRange.
func Parse(s string) (Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Decimal{}, ErrEmpty
	}
	switch strings.ToLower(s) {
	case "nan":
		return NaN(), nil
	case "infinity", "+infinity":
		return Inf(1), nil
	case "-infinity":
		return Inf(-1), nil
	}

	mantissa, exp := s, int64(0)
	if i := strings.IndexAny(s, "eE"); i >= 0 {
		mantissa = s[:i]
		e, err := strconv.ParseInt(s[i+1:], 10, 64)
		if err != nil {
			return Decimal{}, &ParseError{Input: s, Err: ErrSyntax}
		}
		if e > maxExponent || e < -maxExponent {
			return Decimal{}, &ParseError{Input: s, Err: ErrRange}
		}
		exp = e
	}

	neg := false
	switch {
	case strings.HasPrefix(mantissa, "-"):
		neg = true
		mantissa = mantissa[1:]
	case strings.HasPrefix(mantissa, "+"):
		mantissa = mantissa[1:]
	}

	intPart, fracPart, hasSep := strings.Cut(mantissa, ".")
	if intPart == "" || hasSep && fracPart == "" || !allDigits(intPart) || !allDigits(fracPart) {
		return Decimal{}, &ParseError{Input: s, Err: ErrSyntax}
	}

	c, ok := new(big.Int).SetString(intPart+fracPart, 10)
	if !ok {
		return Decimal{}, &ParseError{Input: s, Err: ErrSyntax}
	}
	if neg {
		c.Neg(c)
	}
	return newFinite(c, int32(int64(len(fracPart))-exp)), nil
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// TryParse is like Parse but reports failure instead of returning an error.
func TryParse(s string) (Decimal, bool) {
	d, err := Parse(s)
	return d, err == nil
}

// MustParse is like Parse but panics on failure. It is meant for literals
// known to be valid.
func MustParse(s string) Decimal {
	d, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return d
}

// IsNumberLiteral reports whether s is a plain numeric literal: an optional
// leading minus, digits, and at most one '.' followed by digits. Underscore
// digit separators are allowed.
func IsNumberLiteral(s string) bool {
	s = strings.ReplaceAll(strings.TrimSpace(s), "_", "")
	s = strings.TrimPrefix(s, "-")
	intPart, fracPart, hasSep := strings.Cut(s, ".")
	if intPart == "" || !allDigits(intPart) {
		return false
	}
	if hasSep {
		return fracPart != "" && allDigits(fracPart)
	}
	return true
}
