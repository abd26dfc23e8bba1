// Package decimal implements an arbitrary-precision decimal number type.
//
// A Decimal is either finite, holding an integer significand and a
// non-negative scale (value = significand × 10^-scale), or one of the
// special values NaN, +Infinity and -Infinity. Finite values are always
// normalized to their minimal scale.
//
// Operations whose result may not terminate (division, roots, logarithms,
// exponentials) are methods on Context, which carries the precision budget.
package decimal

import (
	"math/big"
)

type form uint8

const (
	finite form = iota
	nan
	posInf
	negInf
)

// Decimal is an immutable decimal value. The zero value is 0.
type Decimal struct {
	coef  *big.Int // nil means zero; never mutated after construction
	scale int32
	form  form
}

var (
	bigZero = big.NewInt(0)
	bigOne  = big.NewInt(1)
	bigTen  = big.NewInt(10)

	one  = NewFromInt(1)
	two  = NewFromInt(2)
	ten  = NewFromInt(10)
	half = New(5, 1)
)

// Zero returns the finite value 0.
func Zero() Decimal { return Decimal{} }

// NaN returns the not-a-number value.
func NaN() Decimal { return Decimal{form: nan} }

// Inf returns +Infinity if sign >= 0 and -Infinity otherwise.
func Inf(sign int) Decimal {
	if sign < 0 {
		return Decimal{form: negInf}
	}
	return Decimal{form: posInf}
}

// New returns coef × 10^-scale. A negative scale multiplies the coefficient.
func New(coef int64, scale int32) Decimal {
	return newFinite(big.NewInt(coef), scale)
}

// NewFromInt returns the integer v.
func NewFromInt(v int64) Decimal {
	return newFinite(big.NewInt(v), 0)
}

// NewFromBigInt returns v × 10^-scale. v is copied.
func NewFromBigInt(v *big.Int, scale int32) Decimal {
	return newFinite(new(big.Int).Set(v), scale)
}

// newFinite takes ownership of c and normalizes it.
func newFinite(c *big.Int, scale int32) Decimal {
	if scale < 0 {
		c.Mul(c, pow10(-scale))
		scale = 0
	}
	if c.Sign() == 0 {
		return Decimal{}
	}
	if scale > 0 {
		q, r := new(big.Int), new(big.Int)
		for scale > 0 {
			q.QuoRem(c, bigTen, r)
			if r.Sign() != 0 {
				break
			}
			c.Set(q)
			scale--
		}
	}
	return Decimal{coef: c, scale: scale}
}

func pow10(n int32) *big.Int {
	if n <= 0 {
		return big.NewInt(1)
	}
	return new(big.Int).Exp(bigTen, big.NewInt(int64(n)), nil)
}

func (d Decimal) bigCoef() *big.Int {
	if d.coef == nil {
		return bigZero
	}
	return d.coef
}

// IsNaN reports whether d is NaN.
func (d Decimal) IsNaN() bool { return d.form == nan }

// IsInf reports whether d is an infinity, according to sign.
// If sign > 0, IsInf reports whether d is +Infinity.
// If sign < 0, IsInf reports whether d is -Infinity.
// If sign == 0, IsInf reports whether d is either infinity.
func (d Decimal) IsInf(sign int) bool {
	switch {
	case sign > 0:
		return d.form == posInf
	case sign < 0:
		return d.form == negInf
	default:
		return d.form == posInf || d.form == negInf
	}
}

// IsFinite reports whether d is neither NaN nor an infinity.
func (d Decimal) IsFinite() bool { return d.form == finite }

// IsZero reports whether d is the finite value 0.
func (d Decimal) IsZero() bool {
	return d.form == finite && (d.coef == nil || d.coef.Sign() == 0)
}

// IsInteger reports whether d is finite and has no fractional digits.
func (d Decimal) IsInteger() bool {
	return d.form == finite && d.scale == 0
}

// Sign returns -1, 0 or +1. NaN has sign 0.
func (d Decimal) Sign() int {
	switch d.form {
	case posInf:
		return 1
	case negInf:
		return -1
	case nan:
		return 0
	}
	return d.bigCoef().Sign()
}

// Scale returns the number of fractional digits of a finite value.
func (d Decimal) Scale() int32 { return d.scale }

// Coefficient returns a copy of the significand.
func (d Decimal) Coefficient() *big.Int {
	return new(big.Int).Set(d.bigCoef())
}

// shift multiplies d by 10^n exactly.
func (d Decimal) shift(n int32) Decimal {
	if !d.IsFinite() || n == 0 {
		return d
	}
	return newFinite(new(big.Int).Set(d.bigCoef()), d.scale-n)
}

// align returns the significands of a and b rescaled to the larger scale.
func align(a, b Decimal) (x, y *big.Int, scale int32) {
	x, y = a.bigCoef(), b.bigCoef()
	switch {
	case a.scale < b.scale:
		x = new(big.Int).Mul(x, pow10(b.scale-a.scale))
		return x, y, b.scale
	case a.scale > b.scale:
		y = new(big.Int).Mul(y, pow10(a.scale-b.scale))
		return x, y, a.scale
	}
	return x, y, a.scale
}
