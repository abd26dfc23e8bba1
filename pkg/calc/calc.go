// Package calc evaluates BigSharp arithmetic expressions with the decimal
// kernel.
//
// Expressions are parsed with the Starlark expression grammar and then
// evaluated over decimal numbers, strings, booleans and lists. Arithmetic
// follows BigSharp rather than Starlark: ^ is exponentiation binding
// tighter than * and /, and + with a string operand concatenates.
package calc

import (
	"math/big"
	"math/rand/v2"
	"strings"
	"time"

	"go.starlark.net/syntax"
	"golang.org/x/text/language"

	"github.com/leapstack-labs/bigsharp/pkg/decimal"
)

// Evaluator evaluates expressions. Its zero value is not usable; use New.
type Evaluator struct {
	Context decimal.Context
	Rand    *rand.Rand

	// Locale selects the separators accepted by num(). Undetermined means
	// the canonical '.' notation.
	Locale language.Tag

	// Vars holds named values visible to expressions.
	Vars map[string]Value
}

// New returns an Evaluator using ctx and a time-seeded random source.
func New(ctx decimal.Context) *Evaluator {
	seed := uint64(time.Now().UnixNano())
	return &Evaluator{
		Context: ctx,
		Rand:    rand.New(rand.NewPCG(seed, seed>>1|1)),
		Vars:    make(map[string]Value),
	}
}

// Eval parses and evaluates expr.
func (e *Evaluator) Eval(expr string) (Value, error) {
	opts := &syntax.FileOptions{}
	x, err := opts.ParseExpr("expr", expr, 0)
	if err != nil {
		return nil, err
	}
	return e.eval(x)
}

// Format renders v for display. Numbers are rounded to the context's
// precision.
func (e *Evaluator) Format(v Value) string {
	if n, ok := v.(Number); ok {
		return e.Context.Format(n.Decimal)
	}
	return v.String()
}

var constants = map[string]Value{
	"true":     Bool(true),
	"false":    Bool(false),
	"True":     Bool(true),
	"False":    Bool(false),
	"nan":      NumberOf(decimal.NaN()),
	"infinity": NumberOf(decimal.Inf(1)),
}

func (e *Evaluator) eval(x syntax.Expr) (Value, error) {
	switch x := x.(type) {
	case *syntax.Literal:
		return literal(x)

	case *syntax.Ident:
		if v, ok := e.Vars[x.Name]; ok {
			return v, nil
		}
		if v, ok := constants[x.Name]; ok {
			return v, nil
		}
		return nil, errAt(x, ErrUndefined, x.Name)

	case *syntax.ParenExpr:
		return e.eval(x.X)

	case *syntax.ListExpr:
		return e.list(x.List)

	case *syntax.TupleExpr:
		return e.list(x.List)

	case *syntax.UnaryExpr:
		return e.unary(x)

	case *syntax.BinaryExpr:
		if _, ok := precedence[x.Op]; ok {
			return e.arith(x)
		}
		return e.binary(x)

	case *syntax.CondExpr:
		cond, err := e.eval(x.Cond)
		if err != nil {
			return nil, err
		}
		if Truth(cond) {
			return e.eval(x.True)
		}
		return e.eval(x.False)

	case *syntax.IndexExpr:
		return e.index(x)

	case *syntax.CallExpr:
		return e.call(x)
	}
	return nil, errAt(x, ErrUnsupported, x)
}

func literal(x *syntax.Literal) (Value, error) {
	switch v := x.Value.(type) {
	case string:
		return String(v), nil
	case int64:
		return NumberOf(decimal.NewFromInt(v)), nil
	case *big.Int:
		return NumberOf(decimal.NewFromBigInt(v, 0)), nil
	}
	d, err := decimal.Parse(floatText(x.Raw))
	if err != nil {
		return nil, errAt(x, "%v", err)
	}
	return NumberOf(d), nil
}

// floatText completes the 1. and .5 forms, which the expression grammar
// accepts but decimal literals do not.
func floatText(raw string) string {
	i := strings.IndexAny(raw, "eE")
	if i < 0 {
		i = len(raw)
	}
	mantissa, exp := raw[:i], raw[i:]
	if strings.HasPrefix(mantissa, ".") {
		mantissa = "0" + mantissa
	}
	if strings.HasSuffix(mantissa, ".") {
		mantissa += "0"
	}
	return mantissa + exp
}

func (e *Evaluator) list(xs []syntax.Expr) (Value, error) {
	out := make(List, 0, len(xs))
	for _, x := range xs {
		v, err := e.eval(x)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func (e *Evaluator) unary(x *syntax.UnaryExpr) (Value, error) {
	v, err := e.eval(x.X)
	if err != nil {
		return nil, err
	}
	switch x.Op {
	case syntax.NOT:
		return Bool(!Truth(v)), nil
	case syntax.MINUS, syntax.PLUS:
		n, ok := v.(Number)
		if !ok {
			return nil, errAt(x, ErrNotNumber, x.Op, v.Type())
		}
		if x.Op == syntax.MINUS {
			return NumberOf(n.Neg()), nil
		}
		return n, nil
	}
	return nil, errAt(x, ErrOperator, x.Op)
}

func (e *Evaluator) binary(x *syntax.BinaryExpr) (Value, error) {
	l, err := e.eval(x.X)
	if err != nil {
		return nil, err
	}

	switch x.Op {
	case syntax.AND:
		if !Truth(l) {
			return l, nil
		}
		return e.eval(x.Y)
	case syntax.OR:
		if Truth(l) {
			return l, nil
		}
		return e.eval(x.Y)
	}

	r, err := e.eval(x.Y)
	if err != nil {
		return nil, err
	}

	switch x.Op {
	case syntax.EQL:
		return Bool(Equal(l, r)), nil
	case syntax.NEQ:
		if ln, ok := l.(Number); ok {
			if rn, ok := r.(Number); ok {
				return Bool(ln.NotEqual(rn.Decimal)), nil
			}
		}
		return Bool(!Equal(l, r)), nil
	case syntax.LT, syntax.LE, syntax.GT, syntax.GE:
		return compare(x, l, r)
	case syntax.IN, syntax.NOT_IN:
		found, err := member(x, l, r)
		if err != nil {
			return nil, err
		}
		return Bool(found == (x.Op == syntax.IN)), nil
	}
	return nil, errAt(x, ErrOperator, x.Op)
}

func compare(x *syntax.BinaryExpr, l, r Value) (Value, error) {
	var c int
	switch l := l.(type) {
	case Number:
		rn, ok := r.(Number)
		if !ok {
			return nil, errAt(x, ErrOperandTypes, x.Op, l.Type(), r.Type())
		}
		cmp, ok := l.Cmp(rn.Decimal)
		if !ok {
			return Bool(false), nil
		}
		c = cmp
	case String:
		rs, ok := r.(String)
		if !ok {
			return nil, errAt(x, ErrOperandTypes, x.Op, l.Type(), r.Type())
		}
		c = strings.Compare(string(l), string(rs))
	default:
		return nil, errAt(x, ErrOperandTypes, x.Op, l.Type(), r.Type())
	}

	switch x.Op {
	case syntax.LT:
		return Bool(c < 0), nil
	case syntax.LE:
		return Bool(c <= 0), nil
	case syntax.GT:
		return Bool(c > 0), nil
	}
	return Bool(c >= 0), nil
}

// member reports whether needle is in container. List membership uses
// Equal, so numbers match by decimal value.
func member(x *syntax.BinaryExpr, needle, container Value) (bool, error) {
	switch c := container.(type) {
	case List:
		for _, v := range c {
			if Equal(needle, v) {
				return true, nil
			}
		}
		return false, nil
	case String:
		s, ok := needle.(String)
		if !ok {
			return false, errAt(x, ErrOperandTypes, x.Op, needle.Type(), c.Type())
		}
		return strings.Contains(string(c), string(s)), nil
	}
	return false, errAt(x, ErrNotContainer, container.Type())
}

// index selects an element with a 1-based index, matching the language's
// surface indexing.
func (e *Evaluator) index(x *syntax.IndexExpr) (Value, error) {
	v, err := e.eval(x.X)
	if err != nil {
		return nil, err
	}
	iv, err := e.eval(x.Y)
	if err != nil {
		return nil, err
	}
	n, ok := iv.(Number)
	if !ok {
		return nil, errAt(x.Y, ErrNotNumber, "index", iv.Type())
	}
	i, err := n.Int64()
	if err != nil {
		return nil, errAt(x.Y, "%v", err)
	}

	switch v := v.(type) {
	case List:
		if i < 1 || i > int64(len(v)) {
			return nil, errAt(x, ErrIndexRange, n, len(v))
		}
		return v[i-1], nil
	case String:
		r := []rune(string(v))
		if i < 1 || i > int64(len(r)) {
			return nil, errAt(x, ErrIndexRange, n, len(r))
		}
		return String(r[i-1]), nil
	}
	return nil, errAt(x, ErrUnsupported, v)
}
