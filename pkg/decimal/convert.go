package decimal

import (
	"math"
	"math/big"
	"strconv"
)

// BigInt returns the integer part of d, truncated toward zero.
func (d Decimal) BigInt() (*big.Int, error) {
	if !d.IsFinite() {
		return nil, ErrNotFinite
	}
	if d.scale == 0 {
		return d.Coefficient(), nil
	}
	return new(big.Int).Quo(d.bigCoef(), pow10(d.scale)), nil
}

// Int64 returns the integer part of d, truncated toward zero.
func (d Decimal) Int64() (int64, error) {
	i, err := d.BigInt()
	if err != nil {
		return 0, err
	}
	if !i.IsInt64() {
		return 0, ErrOverflow
	}
	return i.Int64(), nil
}

// Int32 returns the integer part of d, truncated toward zero.
func (d Decimal) Int32() (int32, error) {
	i, err := d.Int64()
	if err != nil {
		return 0, err
	}
	if i < math.MinInt32 || i > math.MaxInt32 {
		return 0, ErrOverflow
	}
	return int32(i), nil
}

// Uint64 returns the integer part of d, truncated toward zero.
func (d Decimal) Uint64() (uint64, error) {
	i, err := d.BigInt()
	if err != nil {
		return 0, err
	}
	if !i.IsUint64() {
		return 0, ErrOverflow
	}
	return i.Uint64(), nil
}

// Float64 returns the nearest float64. Special values map to their float
// counterparts.
func (d Decimal) Float64() (float64, error) {
	switch d.form {
	case nan:
		return math.NaN(), nil
	case posInf:
		return math.Inf(1), nil
	case negInf:
		return math.Inf(-1), nil
	}
	f, err := strconv.ParseFloat(d.String(), 64)
	if err != nil {
		return f, ErrOverflow
	}
	return f, nil
}

// Rat returns d as an exact rational.
func (d Decimal) Rat() (*big.Rat, error) {
	if !d.IsFinite() {
		return nil, ErrNotFinite
	}
	return new(big.Rat).SetFrac(d.Coefficient(), pow10(d.scale)), nil
}

// NewFromFloat returns the shortest decimal that round-trips to f.
func NewFromFloat(f float64) Decimal {
	switch {
	case math.IsNaN(f):
		return NaN()
	case math.IsInf(f, 1):
		return Inf(1)
	case math.IsInf(f, -1):
		return Inf(-1)
	}
	return MustParse(strconv.FormatFloat(f, 'g', -1, 64))
}
