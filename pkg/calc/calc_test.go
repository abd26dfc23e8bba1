package calc

import (
	"errors"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/leapstack-labs/bigsharp/pkg/decimal"
	"github.com/leapstack-labs/bigsharp/pkg/normalize"
)

func newTestEvaluator() *Evaluator {
	e := New(decimal.WithPrecision(20))
	e.Rand = rand.New(rand.NewPCG(1, 2))
	return e
}

func TestEval(t *testing.T) {
	tests := []struct {
		name     string
		expr     string
		expected string
	}{
		// arithmetic
		{"precedence", "1 + 2 * 3", "7"},
		{"power binds tighter than multiply", "2 * 3 ^ 2", "18"},
		{"power is right associative", "2 ^ 3 ^ 2", "512"},
		{"power after addition", "1 + 2 ^ 3 * 4", "33"},
		{"parentheses", "(1 + 2) ^ 2", "9"},
		{"division", "10 / 4", "2.5"},
		{"repeating division", "1 / 3", "0.33333333333333333333"},
		{"floor division", "7 // 2", "3"},
		{"modulo", "7 % 3", "1"},
		{"subtraction is left associative", "10 - 4 - 3", "3"},
		{"unary minus", "-(2 + 3)", "-5"},
		{"decimal literal", "0.1 + 0.2", "0.3"},
		{"bare fraction literals", "1. + .5", "1.5"},
		{"exponent literal", "1.5e2 + 2.5e-1", "150.25"},
		{"divide by zero", "1 / 0", "Infinity"},
		{"negative divide by zero", "-1 / 0", "-Infinity"},
		{"zero by zero", "0 / 0", "NaN"},

		// strings
		{"concatenation", `"a" + (1+1) + "b"`, "a2b"},
		{"number then string", `1.50 + "x"`, "1.5x"},

		// comparison and logic
		{"less than", "1 < 2", "true"},
		{"string order", `"a" < "b"`, "true"},
		{"nan equality", "nan == nan", "false"},
		{"nan inequality", "nan != nan", "true"},
		{"nan ordering", "nan < 1", "false"},
		{"decimal equality", "2 == 2.0", "true"},
		{"and", "true and false", "false"},
		{"or returns operand", "0 or 5", "5"},
		{"not", "not 0", "true"},
		{"conditional", "1 if 2 > 1 else 0", "1"},

		// membership
		{"in list", "2 in [1, 2, 3]", "true"},
		{"in list by value", "2.0 in [1, 2]", "true"},
		{"not in list", "5 in [1, 2]", "false"},
		{"not in operator", "5 not in [1]", "true"},
		{"substring", `"b" in "abc"`, "true"},

		// lists
		{"one-based index", "[10, 20, 30][2]", "20"},
		{"list concatenation", "[1] + [2]", "[1, 2]"},

		// functions
		{"sqrt", "sqrt(4)", "2"},
		{"sqrt negative", "sqrt(-1)", "NaN"},
		{"pow", "pow(2, 10)", "1024"},
		{"root", "root(27, 3)", "3"},
		{"abs", "abs(-2.5)", "2.5"},
		{"round", "round(2.345, 2)", "2.35"},
		{"floor", "floor(-1.5)", "-2"},
		{"ceil", "ceil(1.2)", "2"},
		{"trunc", "trunc(-1.5)", "-1"},
		{"min", "min(3, 1, 2)", "1"},
		{"max of list", "max([1, 5])", "5"},
		{"len", `len("héllo")`, "5"},
		{"str", "str(1.50) + \"!\"", "1.5!"},
		{"num", `num("12.5") * 2`, "25"},
		{"exp of zero", "exp(0)", "1"},
		{"ln of one", "ln(1)", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEvaluator()
			v, err := e.Eval(tt.expr)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, e.Format(v))
		})
	}
}

func TestEval_Precision(t *testing.T) {
	e := New(decimal.WithPrecision(5))
	v, err := e.Eval("1 / 3")
	require.NoError(t, err)
	assert.Equal(t, "0.33333", e.Format(v))
}

// An interpolated string normalizes to a concatenation that evaluates to
// the expected text.
func TestEval_Interpolation(t *testing.T) {
	src := strings.TrimSuffix(normalize.Normalize(`$"a{1+1}b"`, normalize.DefaultOptions()), ";")
	require.Equal(t, `"a" + (1+1) + "b"`, src)

	v, err := newTestEvaluator().Eval(src)
	require.NoError(t, err)
	assert.Equal(t, String("a2b"), v)
}

func TestEval_Vars(t *testing.T) {
	e := newTestEvaluator()
	e.Vars["x"] = NumberOf(decimal.NewFromInt(4))
	v, err := e.Eval("x ^ 0.5 + 1")
	require.NoError(t, err)
	assert.Equal(t, "3", e.Format(v))
}

func TestEval_Locale(t *testing.T) {
	e := newTestEvaluator()
	e.Locale = language.German
	v, err := e.Eval(`num("1.234,5")`)
	require.NoError(t, err)
	assert.Equal(t, "1234.5", e.Format(v))
}

func TestEval_Random(t *testing.T) {
	e := newTestEvaluator()
	for range 50 {
		v, err := e.Eval("randint(1, 6)")
		require.NoError(t, err)
		n := v.(Number)
		assert.True(t, n.GreaterOrEqual(decimal.NewFromInt(1)), n.String())
		assert.True(t, n.LessOrEqual(decimal.NewFromInt(6)), n.String())

		v, err = e.Eval("rand()")
		require.NoError(t, err)
		r := v.(Number)
		assert.True(t, r.GreaterOrEqual(decimal.Zero()))
		assert.True(t, r.LessThan(decimal.NewFromInt(1)))
	}
}

func TestEval_Errors(t *testing.T) {
	tests := []struct {
		name    string
		expr    string
		message string
	}{
		{"undefined name", "x + 1", "undefined: x"},
		{"undefined function", "foo(1)", "undefined: foo"},
		{"operand types", "[1] - 1", "invalid operands for -: list and number"},
		{"argument count", "sqrt(1, 2)", "sqrt: want 1 arguments, got 2"},
		{"argument range", "round()", "round: want 1 to 2 arguments, got 0"},
		{"not a number", `sqrt("a")`, "sqrt: want number, got string"},
		{"negative root", "pow(-8, 0.5)", decimal.ErrNegativeRoot.Error()},
		{"empty interval", "randint(5, 1)", "randint: empty interval [5, 1]"},
		{"index range", "[1][5]", "index 5 out of range for length 1"},
		{"not a container", "1 in 2", "in: want list or string, got number"},
		{"keyword argument", "sqrt(x=1)", "sqrt: keyword arguments are not supported"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newTestEvaluator().Eval(tt.expr)
			var evalErr *EvalError
			require.ErrorAs(t, err, &evalErr)
			assert.Equal(t, tt.message, evalErr.Message)
			assert.Positive(t, evalErr.Line)
		})
	}
}

func TestEval_SyntaxError(t *testing.T) {
	_, err := newTestEvaluator().Eval("1 +")
	require.Error(t, err)
	var evalErr *EvalError
	assert.False(t, errors.As(err, &evalErr))
}

func TestTruthAndEqual(t *testing.T) {
	assert.False(t, Truth(NumberOf(decimal.NaN())))
	assert.False(t, Truth(List{}))
	assert.True(t, Truth(String("x")))
	assert.True(t, Equal(List{String("a")}, List{String("a")}))
	assert.False(t, Equal(String("1"), NumberOf(decimal.NewFromInt(1))))
	assert.Equal(t, `[1, "a", true]`, List{NumberOf(decimal.NewFromInt(1)), String("a"), Bool(true)}.String())
}

func TestBuiltins(t *testing.T) {
	names := Builtins()
	for _, want := range []string{"sqrt", "ln", "exp", "pow", "root", "abs", "floor", "ceil", "round", "trunc", "rand", "randint"} {
		assert.Contains(t, names, want)
	}
}

func TestFloatText(t *testing.T) {
	tests := []struct {
		raw      string
		expected string
	}{
		{"1.5", "1.5"},
		{"1.", "1.0"},
		{".5", "0.5"},
		{"1.e3", "1.0e3"},
		{".5E-2", "0.5E-2"},
		{"2e10", "2e10"},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.expected, floatText(tt.raw))
		})
	}
}
