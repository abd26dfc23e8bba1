package calc

import (
	"fmt"

	"go.starlark.net/syntax"
	"golang.org/x/text/language"

	"github.com/leapstack-labs/bigsharp/pkg/decimal"
)

type builtin struct {
	min, max int // argument count bounds
	fn       func(e *Evaluator, call *syntax.CallExpr, args []Value) (Value, error)
}

var builtins = map[string]builtin{
	"sqrt": {1, 1, unaryFn(func(c decimal.Context, x decimal.Decimal) decimal.Decimal { return c.Sqrt(x) })},
	"ln":   {1, 1, unaryFn(func(c decimal.Context, x decimal.Decimal) decimal.Decimal { return c.Ln(x) })},
	"exp":  {1, 1, unaryFn(func(c decimal.Context, x decimal.Decimal) decimal.Decimal { return c.Exp(x) })},
	"abs":  {1, 1, unaryFn(func(_ decimal.Context, x decimal.Decimal) decimal.Decimal { return x.Abs() })},

	"pow":  {2, 2, pow},
	"root": {2, 2, root},

	"floor": {1, 2, roundFn(decimal.Decimal.Floor)},
	"ceil":  {1, 2, roundFn(decimal.Decimal.Ceil)},
	"round": {1, 2, roundFn(decimal.Decimal.Round)},
	"trunc": {1, 2, roundFn(decimal.Decimal.Truncate)},

	"min": {1, -1, extremum(decimal.Min)},
	"max": {1, -1, extremum(decimal.Max)},

	"rand":    {0, 0, randFloat},
	"randint": {2, 2, randInt},

	"num": {1, 1, num},
	"str": {1, 1, str},
	"len": {1, 1, length},
}

// Builtins returns the names of the built-in functions.
func Builtins() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	return names
}

func (e *Evaluator) call(x *syntax.CallExpr) (Value, error) {
	ident, ok := x.Fn.(*syntax.Ident)
	if !ok {
		return nil, errAt(x, ErrUnsupported, x.Fn)
	}
	b, ok := builtins[ident.Name]
	if !ok {
		if _, isVar := e.Vars[ident.Name]; isVar {
			return nil, errAt(x, ErrNotCallable, ident.Name)
		}
		return nil, errAt(x, ErrUndefined, ident.Name)
	}

	if n := len(x.Args); n < b.min || b.max >= 0 && n > b.max {
		want := fmt.Sprint(b.min)
		switch {
		case b.max < 0:
			want = fmt.Sprintf("at least %d", b.min)
		case b.max != b.min:
			want = fmt.Sprintf("%d to %d", b.min, b.max)
		}
		return nil, errAt(x, ErrArgCount, ident.Name, want, n)
	}

	args := make([]Value, len(x.Args))
	for i, a := range x.Args {
		if bin, ok := a.(*syntax.BinaryExpr); ok && bin.Op == syntax.EQ {
			return nil, errAt(a, ErrKeywordArg, ident.Name)
		}
		v, err := e.eval(a)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	return b.fn(e, x, args)
}

func number(call *syntax.CallExpr, v Value) (decimal.Decimal, error) {
	n, ok := v.(Number)
	if !ok {
		return decimal.Decimal{}, errAt(call, ErrNotNumber, call.Fn.(*syntax.Ident).Name, v.Type())
	}
	return n.Decimal, nil
}

func integer(call *syntax.CallExpr, v Value) (int64, error) {
	d, err := number(call, v)
	if err != nil {
		return 0, err
	}
	i, err := d.Int64()
	if err != nil {
		return 0, errAt(call, "%v", err)
	}
	return i, nil
}

func unaryFn(f func(decimal.Context, decimal.Decimal) decimal.Decimal) func(*Evaluator, *syntax.CallExpr, []Value) (Value, error) {
	return func(e *Evaluator, call *syntax.CallExpr, args []Value) (Value, error) {
		x, err := number(call, args[0])
		if err != nil {
			return nil, err
		}
		return NumberOf(f(e.Context, x)), nil
	}
}

func roundFn(f func(decimal.Decimal, int32) decimal.Decimal) func(*Evaluator, *syntax.CallExpr, []Value) (Value, error) {
	return func(_ *Evaluator, call *syntax.CallExpr, args []Value) (Value, error) {
		x, err := number(call, args[0])
		if err != nil {
			return nil, err
		}
		var places int64
		if len(args) == 2 {
			if places, err = integer(call, args[1]); err != nil {
				return nil, err
			}
		}
		return NumberOf(f(x, int32(places))), nil
	}
}

func extremum(f func(a, b decimal.Decimal) decimal.Decimal) func(*Evaluator, *syntax.CallExpr, []Value) (Value, error) {
	return func(_ *Evaluator, call *syntax.CallExpr, args []Value) (Value, error) {
		if l, ok := args[0].(List); ok && len(args) == 1 {
			args = l
		}
		var out decimal.Decimal
		for i, a := range args {
			x, err := number(call, a)
			if err != nil {
				return nil, err
			}
			if i == 0 {
				out = x
				continue
			}
			out = f(out, x)
		}
		return NumberOf(out), nil
	}
}

func pow(e *Evaluator, call *syntax.CallExpr, args []Value) (Value, error) {
	x, err := number(call, args[0])
	if err != nil {
		return nil, err
	}
	y, err := number(call, args[1])
	if err != nil {
		return nil, err
	}
	d, err := e.Context.Pow(x, y)
	if err != nil {
		return nil, errAt(call, "%v", err)
	}
	return NumberOf(d), nil
}

func root(e *Evaluator, call *syntax.CallExpr, args []Value) (Value, error) {
	x, err := number(call, args[0])
	if err != nil {
		return nil, err
	}
	n, err := integer(call, args[1])
	if err != nil {
		return nil, err
	}
	d, err := e.Context.Root(x, n)
	if err != nil {
		return nil, errAt(call, "%v", err)
	}
	return NumberOf(d), nil
}

func randFloat(e *Evaluator, _ *syntax.CallExpr, _ []Value) (Value, error) {
	return NumberOf(decimal.NewFromFloat(e.Rand.Float64())), nil
}

// randInt returns a uniform integer in [a, b].
func randInt(e *Evaluator, call *syntax.CallExpr, args []Value) (Value, error) {
	a, err := integer(call, args[0])
	if err != nil {
		return nil, err
	}
	b, err := integer(call, args[1])
	if err != nil {
		return nil, err
	}
	if a > b {
		return nil, errAt(call, ErrEmptyInterval, args[0], args[1])
	}
	return NumberOf(decimal.NewFromInt(a + e.Rand.Int64N(b-a+1))), nil
}

func num(e *Evaluator, call *syntax.CallExpr, args []Value) (Value, error) {
	switch v := args[0].(type) {
	case Number:
		return v, nil
	case String:
		var d decimal.Decimal
		var err error
		if e.Locale == language.Und {
			d, err = decimal.Parse(string(v))
		} else {
			d, err = decimal.ParseLocale(string(v), e.Locale)
		}
		if err != nil {
			return nil, errAt(call, "%v", err)
		}
		return NumberOf(d), nil
	}
	return nil, errAt(call, ErrOperandTypes, "num", args[0].Type(), "none")
}

func str(e *Evaluator, _ *syntax.CallExpr, args []Value) (Value, error) {
	return String(e.Format(args[0])), nil
}

func length(_ *Evaluator, call *syntax.CallExpr, args []Value) (Value, error) {
	switch v := args[0].(type) {
	case List:
		return NumberOf(decimal.NewFromInt(int64(len(v)))), nil
	case String:
		return NumberOf(decimal.NewFromInt(int64(len([]rune(string(v)))))), nil
	}
	return nil, errAt(call, ErrOperandTypes, "len", args[0].Type(), "none")
}
