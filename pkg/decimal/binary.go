package decimal

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math/big"
	"slices"
)

// Reserved scale values marking special values in the binary layout.
const (
	scaleNaN    int32 = -1
	scalePosInf int32 = -2
	scaleNegInf int32 = -3
)

// MarshalBinary encodes d as a 4-byte little-endian scale followed by the
// significand in little-endian two's-complement form. Special values use a
// reserved negative scale and carry no significand bytes.
func (d Decimal) MarshalBinary() ([]byte, error) {
	var scale int32
	switch d.form {
	case nan:
		scale = scaleNaN
	case posInf:
		scale = scalePosInf
	case negInf:
		scale = scaleNegInf
	default:
		scale = d.scale
	}
	out := binary.LittleEndian.AppendUint32(nil, uint32(scale))
	if d.form != finite {
		return out, nil
	}
	return append(out, twosComplementLE(d.bigCoef())...), nil
}

// UnmarshalBinary decodes the layout written by MarshalBinary.
func (d *Decimal) UnmarshalBinary(data []byte) error {
	if len(data) < 4 {
		return errors.New("decimal: binary data too short")
	}
	scale := int32(binary.LittleEndian.Uint32(data[:4]))
	switch scale {
	case scaleNaN:
		*d = NaN()
		return nil
	case scalePosInf:
		*d = Inf(1)
		return nil
	case scaleNegInf:
		*d = Inf(-1)
		return nil
	}
	if scale < 0 {
		return fmt.Errorf("decimal: invalid scale %d in binary data", scale)
	}
	if len(data) == 4 {
		return errors.New("decimal: binary data has no significand")
	}
	*d = newFinite(fromTwosComplementLE(data[4:]), scale)
	return nil
}

func twosComplementLE(x *big.Int) []byte {
	var b []byte
	if x.Sign() >= 0 {
		b = x.Bytes()
		if len(b) == 0 || b[0]&0x80 != 0 {
			b = append([]byte{0}, b...)
		}
	} else {
		// -x in two's complement is the bitwise inverse of |x|-1.
		m := new(big.Int).Neg(x)
		m.Sub(m, bigOne)
		b = m.Bytes()
		for i := range b {
			b[i] = ^b[i]
		}
		if len(b) == 0 || b[0]&0x80 == 0 {
			b = append([]byte{0xff}, b...)
		}
	}
	slices.Reverse(b)
	return b
}

func fromTwosComplementLE(le []byte) *big.Int {
	b := slices.Clone(le)
	slices.Reverse(b)
	if b[0]&0x80 == 0 {
		return new(big.Int).SetBytes(b)
	}
	for i := range b {
		b[i] = ^b[i]
	}
	x := new(big.Int).SetBytes(b)
	x.Add(x, bigOne)
	return x.Neg(x)
}
