package decimal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"zero", "0", "0"},
		{"integer", "42", "42"},
		{"plus sign", "+7", "7"},
		{"negative with trailing zeros", "-12.500", "-12.5"},
		{"leading zeros", "000123.4500", "123.45"},
		{"positive exponent", "1.5e3", "1500"},
		{"signed positive exponent", "2.50E+2", "250"},
		{"negative exponent", "1.5e-3", "0.0015"},
		{"exponent trims zeros", "1200e-2", "12"},
		{"nan", "NaN", "NaN"},
		{"infinity", "INFINITY", "Infinity"},
		{"negative infinity", "-infinity", "-Infinity"},
		{"surrounding space", "  3.25 ", "3.25"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, d.String())
		})
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		err   error
	}{
		{"empty", "", ErrEmpty},
		{"blank", "   ", ErrEmpty},
		{"letters", "abc", ErrSyntax},
		{"two separators", "1.2.3", ErrSyntax},
		{"dangling exponent", "1e", ErrSyntax},
		{"double minus", "--1", ErrSyntax},
		{"comma separator", "1,5", ErrSyntax},
		{"lone sign", "-", ErrSyntax},
		{"bare fraction", ".5", ErrSyntax},
		{"trailing separator", "5.", ErrSyntax},
		{"separator before exponent", "5.e3", ErrSyntax},
		{"huge exponent", "1e99999999", ErrRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.input)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.err)
			if tt.err != ErrEmpty {
				var pe *ParseError
				assert.ErrorAs(t, err, &pe)
			}

			_, ok := TryParse(tt.input)
			assert.False(t, ok)
		})
	}
}

func TestMustParse_Panics(t *testing.T) {
	assert.Panics(t, func() { MustParse("x") })
	assert.NotPanics(t, func() { MustParse("1.5") })
}

func TestRoundTrip(t *testing.T) {
	third := WithPrecision(50).Div(NewFromInt(1), NewFromInt(3))
	values := []Decimal{
		Zero(),
		NewFromInt(7),
		NewFromInt(-42),
		MustParse("3.14159"),
		MustParse("-0.000001"),
		MustParse("123456789012345678901234567890.123456789"),
		third,
		DefaultContext().Sqrt(NewFromInt(2)),
	}

	for _, v := range values {
		t.Run(v.String(), func(t *testing.T) {
			back, err := Parse(v.String())
			require.NoError(t, err)
			assert.True(t, back.Equal(v))
			assert.Equal(t, v.Scale(), back.Scale())
		})
	}
}

func TestNormalization(t *testing.T) {
	d := New(1500, 3)
	assert.Equal(t, int32(1), d.Scale())
	assert.Equal(t, "1.5", d.String())

	assert.Equal(t, int32(0), MustParse("1.5").Mul(NewFromInt(2)).Scale())
	assert.Equal(t, "500", New(5, -2).String())
	assert.True(t, New(150, 2).Equal(New(15, 1)))
}

func TestQueries(t *testing.T) {
	assert.True(t, Zero().IsZero())
	assert.True(t, Decimal{}.IsZero())
	assert.False(t, NaN().IsZero())
	assert.Equal(t, 0, NaN().Sign())
	assert.Equal(t, -1, Inf(-1).Sign())
	assert.Equal(t, 1, MustParse("0.001").Sign())
	assert.True(t, Inf(1).IsInf(0))
	assert.True(t, Inf(1).IsInf(1))
	assert.False(t, Inf(1).IsInf(-1))
	assert.False(t, NaN().IsFinite())
	assert.True(t, NewFromInt(3).IsInteger())
	assert.False(t, MustParse("3.5").IsInteger())
}

func TestNaNComparisons(t *testing.T) {
	n := NaN()
	others := []Decimal{NaN(), Zero(), NewFromInt(1), Inf(1), Inf(-1)}

	for _, o := range others {
		t.Run(o.String(), func(t *testing.T) {
			assert.False(t, n.Equal(o))
			assert.True(t, n.NotEqual(o))
			assert.False(t, n.LessThan(o))
			assert.False(t, n.LessOrEqual(o))
			assert.False(t, n.GreaterThan(o))
			assert.False(t, n.GreaterOrEqual(o))
			assert.False(t, o.LessThan(n))
			assert.False(t, o.GreaterOrEqual(n))

			_, ok := n.Cmp(o)
			assert.False(t, ok)
		})
	}
}

func TestOrdering(t *testing.T) {
	ordered := []Decimal{
		Inf(-1),
		MustParse("-1e100"),
		MustParse("-0.5"),
		Zero(),
		MustParse("0.25"),
		NewFromInt(3),
		Inf(1),
	}
	for i := 0; i < len(ordered)-1; i++ {
		assert.True(t, ordered[i].LessThan(ordered[i+1]), "%s < %s", ordered[i], ordered[i+1])
		assert.True(t, ordered[i+1].GreaterThan(ordered[i]))
	}
	assert.True(t, Inf(1).Equal(Inf(1)))
	assert.True(t, Inf(-1).LessOrEqual(Inf(-1)))
	assert.Equal(t, "-0.5", Min(MustParse("-0.5"), NewFromInt(3)).String())
	assert.True(t, Max(NaN(), Zero()).IsNaN())
}
