package decimal

import "math/big"

// Neg returns -d.
func (d Decimal) Neg() Decimal {
	switch d.form {
	case nan:
		return d
	case posInf:
		return Inf(-1)
	case negInf:
		return Inf(1)
	}
	if d.IsZero() {
		return Decimal{}
	}
	return Decimal{coef: new(big.Int).Neg(d.coef), scale: d.scale}
}

// Abs returns |d|.
func (d Decimal) Abs() Decimal {
	if d.Sign() < 0 {
		return d.Neg()
	}
	return d
}

// Add returns d + o.
func (d Decimal) Add(o Decimal) Decimal {
	if d.IsNaN() || o.IsNaN() {
		return NaN()
	}
	if d.IsInf(0) || o.IsInf(0) {
		if d.IsInf(0) && o.IsInf(0) && d.form != o.form {
			return NaN()
		}
		if d.IsInf(0) {
			return d
		}
		return o
	}
	x, y, scale := align(d, o)
	return newFinite(new(big.Int).Add(x, y), scale)
}

// Sub returns d - o.
func (d Decimal) Sub(o Decimal) Decimal {
	return d.Add(o.Neg())
}

// Mul returns d × o. The result scale is the sum of the operand scales
// before normalization, so multiplication is always exact.
func (d Decimal) Mul(o Decimal) Decimal {
	if d.IsNaN() || o.IsNaN() {
		return NaN()
	}
	if d.IsInf(0) || o.IsInf(0) {
		if d.IsZero() || o.IsZero() {
			return NaN()
		}
		return Inf(d.Sign() * o.Sign())
	}
	c := new(big.Int).Mul(d.bigCoef(), o.bigCoef())
	return newFinite(c, d.scale+o.scale)
}

// Mod returns the remainder of d / o, truncated toward zero. The result has
// the sign of d. Mod by zero or of an infinity is NaN; x mod ±Inf is x.
func (d Decimal) Mod(o Decimal) Decimal {
	switch {
	case d.IsNaN() || o.IsNaN():
		return NaN()
	case d.IsInf(0) || o.IsZero():
		return NaN()
	case o.IsInf(0):
		return d
	}
	x, y, scale := align(d, o)
	return newFinite(new(big.Int).Rem(x, y), scale)
}

// Div returns a / b, computed by long division one digit at a time. It stops
// when the remainder is zero or after c.Precision fractional digits, so
// non-terminating quotients are truncated.
func (c Context) Div(a, b Decimal) Decimal {
	switch {
	case a.IsNaN() || b.IsNaN():
		return NaN()
	case a.IsInf(0):
		if b.IsInf(0) {
			return NaN()
		}
		sign := a.Sign()
		if b.Sign() < 0 {
			sign = -sign
		}
		return Inf(sign)
	case b.IsInf(0):
		return Decimal{}
	case b.IsZero():
		if a.IsZero() {
			return NaN()
		}
		return Inf(a.Sign())
	}

	x, y, _ := align(a, b)
	neg := x.Sign()*y.Sign() < 0
	num := new(big.Int).Abs(x)
	den := new(big.Int).Abs(y)

	q, r := new(big.Int).QuoRem(num, den, new(big.Int))
	digit := new(big.Int)
	var scale int32
	for budget := int32(c.prec()); r.Sign() != 0 && scale < budget; scale++ {
		r.Mul(r, bigTen)
		digit.QuoRem(r, den, r)
		q.Mul(q, bigTen)
		q.Add(q, digit)
	}
	if neg {
		q.Neg(q)
	}
	return newFinite(q, scale)
}

// Cmp compares d and o. ok is false if either operand is NaN, in which case
// the two values are unordered.
func (d Decimal) Cmp(o Decimal) (result int, ok bool) {
	if d.IsNaN() || o.IsNaN() {
		return 0, false
	}
	if d.form == o.form && d.form != finite {
		return 0, true
	}
	switch {
	case d.form == posInf || o.form == negInf:
		return 1, true
	case d.form == negInf || o.form == posInf:
		return -1, true
	}
	x, y, _ := align(d, o)
	return x.Cmp(y), true
}

// Equal reports whether d == o. NaN is never equal to anything.
func (d Decimal) Equal(o Decimal) bool {
	r, ok := d.Cmp(o)
	return ok && r == 0
}

// NotEqual reports whether d != o. It is true whenever either side is NaN.
func (d Decimal) NotEqual(o Decimal) bool {
	return !d.Equal(o)
}

// LessThan reports whether d < o.
func (d Decimal) LessThan(o Decimal) bool {
	r, ok := d.Cmp(o)
	return ok && r < 0
}

// LessOrEqual reports whether d <= o.
func (d Decimal) LessOrEqual(o Decimal) bool {
	r, ok := d.Cmp(o)
	return ok && r <= 0
}

// GreaterThan reports whether d > o.
func (d Decimal) GreaterThan(o Decimal) bool {
	r, ok := d.Cmp(o)
	return ok && r > 0
}

// GreaterOrEqual reports whether d >= o.
func (d Decimal) GreaterOrEqual(o Decimal) bool {
	r, ok := d.Cmp(o)
	return ok && r >= 0
}

// Min returns the smaller of a and b, or NaN if either is NaN.
func Min(a, b Decimal) Decimal {
	if a.IsNaN() || b.IsNaN() {
		return NaN()
	}
	if b.LessThan(a) {
		return b
	}
	return a
}

// Max returns the larger of a and b, or NaN if either is NaN.
func Max(a, b Decimal) Decimal {
	if a.IsNaN() || b.IsNaN() {
		return NaN()
	}
	if b.GreaterThan(a) {
		return b
	}
	return a
}
