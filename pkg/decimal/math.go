package decimal

import (
	"math"
	"math/big"
	"strconv"
	"sync"
)

// maxRootDegree bounds the denominator Pow resolves with an exact root.
// Beyond it, Pow falls back to exp(y·ln x).
const maxRootDegree = 1000

// Sqrt returns the square root of x by Newton-Raphson iteration. The even
// powers of ten are factored out first, x = m·10^(2k) with 1 ≤ m < 100, so
// the iteration starts from m/2 and converges quadratically whatever the
// magnitude of x. It stops once two consecutive iterates agree when rounded
// to Precision-1 digits. Negative input is NaN.
func (c Context) Sqrt(x Decimal) Decimal {
	switch {
	case x.IsNaN():
		return x
	case x.Sign() < 0:
		return NaN()
	case x.IsZero() || x.IsInf(1):
		return x
	}

	k := floorDiv(x.exponent(), 2)
	m := x.shift(int32(-2 * k))

	wc := c.working(guardDigits + int(max(k, 0)))
	p := int32(wc.prec())
	root := m.Mul(half)
	prev := root.Round(p - 1)
	for i, limit := 0, 4*int(p)+500; i < limit; i++ {
		root = root.Add(wc.Div(m, root)).Mul(half).Truncate(p + 1)
		cur := root.Round(p - 1)
		if cur.Equal(prev) {
			break
		}
		prev = cur
	}
	return root.shift(int32(k)).Round(int32(c.prec()) - 1)
}

// Ln returns the natural logarithm of x.
//
// The argument is first brought into [1,10) by powers of ten, compensated by
// multiples of ln(10), and then into [1,2) by repeated square roots, each
// doubling the series result. The series 2·Σ z^(2k+1)/(2k+1) with
// z = (x-1)/(x+1) is summed until the partial sums stop changing.
func (c Context) Ln(x Decimal) Decimal {
	switch {
	case x.IsNaN() || x.Sign() < 0:
		return NaN()
	case x.IsZero():
		return Inf(-1)
	case x.IsInf(1):
		return x
	}

	wc := c.working(guardDigits)
	var k int64
	for x.GreaterOrEqual(ten) {
		x = x.shift(-1)
		k++
	}
	for x.LessThan(one) {
		x = x.shift(1)
		k--
	}

	factor := int64(1)
	for x.GreaterOrEqual(two) {
		x = wc.Sqrt(x)
		factor *= 2
	}

	result := wc.lnSeries(x).Mul(NewFromInt(factor))
	if k != 0 {
		result = result.Add(wc.ln10().Mul(NewFromInt(k)))
	}
	return result.Round(int32(c.prec()))
}

func (c Context) lnSeries(x Decimal) Decimal {
	p := int32(c.prec())
	z := c.Div(x.Sub(one), x.Add(one))
	z2 := z.Mul(z).Truncate(p)
	power, sum := z, z
	for n := int64(3); ; n += 2 {
		power = power.Mul(z2).Truncate(p)
		next := sum.Add(c.Div(power, NewFromInt(n)))
		if next.Equal(sum) {
			break
		}
		sum = next
	}
	return sum.Mul(two)
}

var ln10Cache = struct {
	sync.Mutex
	values map[int]Decimal
}{values: make(map[int]Decimal)}

// ln10 returns ln(10) = 3·ln(2) + ln(1.25) at the context's precision.
func (c Context) ln10() Decimal {
	p := c.prec()
	ln10Cache.Lock()
	defer ln10Cache.Unlock()
	if v, ok := ln10Cache.values[p]; ok {
		return v
	}
	v := c.lnSeries(two).Mul(NewFromInt(3)).Add(c.lnSeries(New(125, 2))).Truncate(int32(p))
	ln10Cache.values[p] = v
	return v
}

// Exp returns e^x from the Taylor series Σ xⁿ/n!, summed until the partial
// sums stop changing. Arguments above one are halved first and the sum
// squared back; negative arguments are inverted.
func (c Context) Exp(x Decimal) Decimal {
	switch {
	case x.IsNaN() || x.IsInf(1):
		return x
	case x.IsInf(-1):
		return Decimal{}
	case x.IsZero():
		return one
	case x.Sign() < 0:
		return c.Div(one, c.Exp(x.Neg()))
	}

	halvings := 0
	for x.GreaterThan(one) {
		x = x.Mul(half)
		halvings++
	}
	wc := c.working(guardDigits + halvings/3)
	wp := int32(wc.prec())

	sum, term := one, one
	for n := int64(1); ; n++ {
		term = wc.Div(term.Mul(x), NewFromInt(n))
		next := sum.Add(term)
		if next.Equal(sum) {
			break
		}
		sum = next
	}
	for ; halvings > 0; halvings-- {
		sum = sum.Mul(sum).Truncate(wp)
	}
	return sum.Round(int32(c.prec()))
}

// Pow returns x^y.
//
// Integer exponents use binary exponentiation; a negative exponent inverts
// the result. A fractional exponent is reduced to the lowest-terms fraction
// p/q of its visible digits and computed as Root(m, q)^p, where m is x
// with a power of ten 10^(k·q) factored out and restored exactly afterwards.
// A negative base with a fractional exponent returns ErrNegativeRoot.
func (c Context) Pow(x, y Decimal) (Decimal, error) {
	switch {
	case x.IsNaN() || y.IsNaN():
		return NaN(), nil
	case y.IsZero():
		return one, nil
	case y.IsInf(0):
		return powInfExponent(x, y), nil
	case x.IsInf(0):
		return c.powInfBase(x, y), nil
	}

	wp := int32(c.prec() + guardDigits)
	if y.IsInteger() {
		n := y.bigCoef()
		if !n.IsInt64() {
			return Decimal{}, ErrOverflow
		}
		e := n.Int64()
		if e < 0 {
			return c.Div(one, powInt(x, uint64(-e), wp)), nil
		}
		return powInt(x, uint64(e), wp).Truncate(int32(c.prec())), nil
	}

	if x.Sign() < 0 {
		return Decimal{}, ErrNegativeRoot
	}
	if x.IsZero() {
		if y.Sign() > 0 {
			return Decimal{}, nil
		}
		return Inf(1), nil
	}

	num := new(big.Int).Set(y.bigCoef())
	den := pow10(y.scale)
	g := new(big.Int).GCD(nil, nil, new(big.Int).Abs(num), den)
	num.Quo(num, g)
	den.Quo(den, g)

	if !num.IsInt64() || !den.IsInt64() || den.Int64() > maxRootDegree {
		return c.Exp(y.Mul(c.working(guardDigits).Ln(x))), nil
	}

	// x = m·10^(k·q) with 1 ≤ m < 10^q, so x^(p/q) = (m^(1/q))^p·10^(k·p)
	// and no intermediate drops below one.
	p, q := num.Int64(), den.Int64()
	k := floorDiv(x.exponent(), q)
	m := x.shift(int32(-k * q))
	scale := k * p
	if scale > math.MaxInt32/2 || scale < -math.MaxInt32/2 {
		return Decimal{}, ErrOverflow
	}

	neg := p < 0
	if neg {
		p = -p
	}
	mag := scale
	if !neg {
		mag += p
	}
	wc := c.working(guardDigits + len(strconv.FormatInt(p, 10)) + int(max(mag, 0)))

	r, err := wc.Root(m, q)
	if err != nil {
		return Decimal{}, err
	}
	res := powInt(r, uint64(p), int32(wc.prec()))
	if neg {
		res = wc.working(int(res.exponent())+1).Div(one, res)
	}
	return res.shift(int32(scale)).Round(int32(c.prec())), nil
}

// exponent returns e such that 10^e ≤ |d| < 10^(e+1). d must be finite and
// nonzero.
func (d Decimal) exponent() int64 {
	digits := len(new(big.Int).Abs(d.bigCoef()).Text(10))
	return int64(digits) - 1 - int64(d.scale)
}

// floorDiv divides a by a positive b, rounding toward negative infinity.
func floorDiv(a, b int64) int64 {
	q := a / b
	if a%b != 0 && a < 0 {
		q--
	}
	return q
}

func powInfExponent(x, y Decimal) Decimal {
	a := x.Abs()
	switch r, _ := a.Cmp(one); {
	case r == 0:
		return NaN()
	case (r > 0) == y.IsInf(1):
		return Inf(1)
	default:
		return Decimal{}
	}
}

func (c Context) powInfBase(x, y Decimal) Decimal {
	if y.Sign() < 0 {
		return Decimal{}
	}
	if x.IsInf(-1) && y.IsInteger() && y.bigCoef().Bit(0) == 1 {
		return x
	}
	return Inf(1)
}

// powInt returns x^n by binary exponentiation. Intermediate products are
// truncated to places fractional digits, so results whose exact scale fits
// within places are exact.
func powInt(x Decimal, n uint64, places int32) Decimal {
	result, base := one, x
	for n > 0 {
		if n&1 == 1 {
			result = result.Mul(base).Truncate(places)
		}
		n >>= 1
		if n > 0 {
			base = base.Mul(base).Truncate(places)
		}
	}
	return result
}

// Root returns the n-th root of x. The root is found by bisection,
// comparing candidate^n with x and stopping once the midpoint no longer
// changes, then rounded to the context's precision. Even roots of negative
// numbers return ErrNegativeRoot.
func (c Context) Root(x Decimal, n int64) (Decimal, error) {
	switch {
	case n < 1:
		return Decimal{}, ErrRootDegree
	case x.IsNaN():
		return x, nil
	case x.Sign() < 0:
		if n%2 == 0 {
			return Decimal{}, ErrNegativeRoot
		}
		r, err := c.Root(x.Neg(), n)
		return r.Neg(), err
	case n == 1 || x.IsZero() || x.IsInf(1):
		return x, nil
	}
	return c.working(guardDigits).bisectRoot(x, n).Round(int32(c.prec())), nil
}

func (c Context) bisectRoot(x Decimal, n int64) Decimal {
	p := int32(c.prec())
	wp := p + guardDigits
	lo, hi := Decimal{}, Max(x, one)
	mid, prev := Decimal{}, NaN()
	for {
		mid = lo.Add(hi).Mul(half).Truncate(p)
		if mid.Equal(prev) {
			return mid
		}
		prev = mid
		r, _ := powInt(mid, uint64(n), wp).Cmp(x)
		switch {
		case r > 0:
			hi = mid
		case r < 0:
			lo = mid
		default:
			return mid
		}
	}
}
