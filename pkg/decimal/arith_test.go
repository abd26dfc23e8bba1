package decimal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestArithmetic(t *testing.T) {
	tests := []struct {
		name     string
		op       func(a, b Decimal) Decimal
		a, b     string
		expected string
	}{
		{"add aligned", Decimal.Add, "1.25", "2.5", "3.75"},
		{"add to zero", Decimal.Add, "0.1", "-0.1", "0"},
		{"sub", Decimal.Sub, "10", "0.001", "9.999"},
		{"mul", Decimal.Mul, "1.5", "-0.2", "-0.3"},
		{"mul integers", Decimal.Mul, "123456789", "987654321", "121932631112635269"},
		{"mod", Decimal.Mod, "7", "3", "1"},
		{"mod negative dividend", Decimal.Mod, "-7", "3", "-1"},
		{"mod fractional", Decimal.Mod, "5.5", "2", "1.5"},
		{"mod by zero", Decimal.Mod, "1", "0", "NaN"},
		{"mod by infinity", Decimal.Mod, "4.5", "Infinity", "4.5"},
		{"inf minus inf", Decimal.Add, "Infinity", "-Infinity", "NaN"},
		{"inf plus finite", Decimal.Add, "-Infinity", "1e50", "-Infinity"},
		{"inf times zero", Decimal.Mul, "Infinity", "0", "NaN"},
		{"inf times negative", Decimal.Mul, "Infinity", "-2", "-Infinity"},
		{"nan propagates", Decimal.Add, "NaN", "1", "NaN"},
		{"nan times zero", Decimal.Mul, "0", "NaN", "NaN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.op(MustParse(tt.a), MustParse(tt.b))
			assert.Equal(t, tt.expected, got.String())
		})
	}
}

func TestDiv(t *testing.T) {
	tests := []struct {
		name      string
		precision int
		a, b      string
		expected  string
	}{
		{"one third at five digits", 5, "1", "3", "0.33333"},
		{"two thirds truncates", 3, "2", "3", "0.666"},
		{"terminating", 5, "1", "8", "0.125"},
		{"exact integer", 5, "1.5", "0.25", "6"},
		{"negative", 5, "-7", "2", "-3.5"},
		{"negative divisor", 4, "1", "-3", "-0.3333"},
		{"positive by zero", 5, "5", "0", "Infinity"},
		{"negative by zero", 5, "-5", "0", "-Infinity"},
		{"zero by zero", 5, "0", "0", "NaN"},
		{"finite by infinity", 5, "3", "-Infinity", "0"},
		{"infinity by infinity", 5, "Infinity", "Infinity", "NaN"},
		{"infinity by negative", 5, "Infinity", "-2", "-Infinity"},
		{"infinity by zero", 5, "-Infinity", "0", "-Infinity"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WithPrecision(tt.precision).Div(MustParse(tt.a), MustParse(tt.b))
			assert.Equal(t, tt.expected, got.String())
		})
	}
}

func TestDiv_PrecisionBudget(t *testing.T) {
	q := WithPrecision(5).Div(NewFromInt(1), NewFromInt(3))
	assert.Equal(t, int32(5), q.Scale())
	assert.Equal(t, "0.33333", q.String())

	q = Context{}.Div(NewFromInt(1), NewFromInt(7))
	assert.Equal(t, int32(DefaultPrecision), q.Scale())
}

func TestRounding(t *testing.T) {
	tests := []struct {
		name     string
		op       func(Decimal, int32) Decimal
		input    string
		places   int32
		expected string
	}{
		{"round half up", Decimal.Round, "1.25", 1, "1.3"},
		{"round half away from zero", Decimal.Round, "-1.25", 1, "-1.3"},
		{"round down", Decimal.Round, "1.24", 1, "1.2"},
		{"round to integer", Decimal.Round, "2.5", 0, "3"},
		{"round only first dropped digit", Decimal.Round, "1.2449", 2, "1.24"},
		{"round to tens", Decimal.Round, "123.456", -1, "120"},
		{"round noop", Decimal.Round, "1.5", 3, "1.5"},
		{"truncate negative", Decimal.Truncate, "-1.29", 1, "-1.2"},
		{"truncate positive", Decimal.Truncate, "1.99", 0, "1"},
		{"floor negative", Decimal.Floor, "-1.21", 1, "-1.3"},
		{"floor positive", Decimal.Floor, "1.29", 1, "1.2"},
		{"floor exact", Decimal.Floor, "-1.2", 1, "-1.2"},
		{"ceil positive", Decimal.Ceil, "1.21", 1, "1.3"},
		{"ceil negative", Decimal.Ceil, "-1.29", 1, "-1.2"},
		{"special unchanged", Decimal.Floor, "NaN", 0, "NaN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.op(MustParse(tt.input), tt.places).String())
		})
	}
}

func TestStringFixed(t *testing.T) {
	assert.Equal(t, "1.500", MustParse("1.5").StringFixed(3))
	assert.Equal(t, "0.01", MustParse("0.005").StringFixed(2))
	assert.Equal(t, "-1", MustParse("-0.5").StringFixed(0))
	assert.Equal(t, "0.000", Zero().StringFixed(3))
	assert.Equal(t, "Infinity", Inf(1).StringFixed(2))
}

func TestContextFormat(t *testing.T) {
	third := WithPrecision(20).Div(NewFromInt(1), NewFromInt(3))
	assert.Equal(t, "0.333", WithPrecision(3).Format(third))
	assert.Equal(t, "0.67", WithPrecision(2).Format(MustParse("0.666")))
}

func TestNegAbs(t *testing.T) {
	assert.Equal(t, "-2.5", MustParse("2.5").Neg().String())
	assert.Equal(t, "2.5", MustParse("-2.5").Abs().String())
	assert.True(t, Inf(1).Neg().IsInf(-1))
	assert.True(t, NaN().Neg().IsNaN())
	assert.Equal(t, "0", Zero().Neg().String())
}
