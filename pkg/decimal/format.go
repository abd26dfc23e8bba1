package decimal

import (
	"math/big"
	"strings"
)

// String renders d exactly, with no trailing fractional zeros. Special values
// render as NaN, Infinity and -Infinity.
func (d Decimal) String() string {
	switch d.form {
	case nan:
		return "NaN"
	case posInf:
		return "Infinity"
	case negInf:
		return "-Infinity"
	}
	return formatCoef(d.bigCoef(), d.scale)
}

// StringFixed renders d rounded to exactly places fractional digits,
// keeping trailing zeros.
func (d Decimal) StringFixed(places int32) string {
	if !d.IsFinite() {
		return d.String()
	}
	if places < 0 {
		places = 0
	}
	r := d.Round(places)
	c := r.bigCoef()
	if r.scale < places {
		c = new(big.Int).Mul(c, pow10(places-r.scale))
	}
	return formatCoef(c, places)
}

func formatCoef(c *big.Int, scale int32) string {
	digits := new(big.Int).Abs(c).String()
	var b strings.Builder
	if c.Sign() < 0 {
		b.WriteByte('-')
	}
	if scale <= 0 {
		b.WriteString(digits)
		return b.String()
	}
	n := int(scale)
	if len(digits) <= n {
		digits = strings.Repeat("0", n-len(digits)+1) + digits
	}
	b.WriteString(digits[:len(digits)-n])
	b.WriteByte('.')
	b.WriteString(digits[len(digits)-n:])
	return b.String()
}

// MarshalText implements encoding.TextMarshaler.
func (d Decimal) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Decimal) UnmarshalText(text []byte) error {
	v, err := Parse(string(text))
	if err != nil {
		return err
	}
	*d = v
	return nil
}
