package decimal

import "math/big"

type roundMode int

const (
	roundDown roundMode = iota // toward zero
	roundFloor
	roundCeil
	roundHalfUp // away from zero on a first dropped digit of 5 or more
)

// Truncate drops every digit beyond places fractional digits, moving toward
// zero. A negative places truncates to the left of the separator.
func (d Decimal) Truncate(places int32) Decimal { return d.roundTo(places, roundDown) }

// Floor rounds toward -Infinity at places fractional digits.
func (d Decimal) Floor(places int32) Decimal { return d.roundTo(places, roundFloor) }

// Ceil rounds toward +Infinity at places fractional digits.
func (d Decimal) Ceil(places int32) Decimal { return d.roundTo(places, roundCeil) }

// Round rounds to places fractional digits. A first dropped digit below 5
// truncates; 5 or more moves one unit away from zero.
func (d Decimal) Round(places int32) Decimal { return d.roundTo(places, roundHalfUp) }

func (d Decimal) roundTo(places int32, mode roundMode) Decimal {
	if !d.IsFinite() || d.scale <= places {
		return d
	}
	drop := d.scale - places
	q, r := new(big.Int).QuoRem(d.bigCoef(), pow10(drop), new(big.Int))
	if r.Sign() != 0 {
		switch mode {
		case roundFloor:
			if r.Sign() < 0 {
				q.Sub(q, bigOne)
			}
		case roundCeil:
			if r.Sign() > 0 {
				q.Add(q, bigOne)
			}
		case roundHalfUp:
			first := new(big.Int).Abs(r)
			first.Quo(first, pow10(drop-1))
			if first.Int64() >= 5 {
				if r.Sign() < 0 {
					q.Sub(q, bigOne)
				} else {
					q.Add(q, bigOne)
				}
			}
		}
	}
	return newFinite(q, places)
}
