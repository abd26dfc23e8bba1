package calc

import (
	"go.starlark.net/syntax"

	"github.com/leapstack-labs/bigsharp/pkg/decimal"
)

// precedence of the arithmetic operators. The parser gives ^ the low
// binding of bitwise xor, so arithmetic chains are flattened back to their
// source order and regrouped with these levels.
var precedence = map[syntax.Token]int{
	syntax.PLUS:       1,
	syntax.MINUS:      1,
	syntax.STAR:       2,
	syntax.SLASH:      2,
	syntax.SLASHSLASH: 2,
	syntax.PERCENT:    2,
	syntax.CIRCUMFLEX: 3,
}

// flatten appends the operands and operators of an arithmetic chain in
// source order. Parentheses are separate nodes, so grouping survives.
func flatten(x syntax.Expr, operands *[]syntax.Expr, ops *[]syntax.Token) {
	if b, ok := x.(*syntax.BinaryExpr); ok {
		if _, arith := precedence[b.Op]; arith {
			flatten(b.X, operands, ops)
			*ops = append(*ops, b.Op)
			flatten(b.Y, operands, ops)
			return
		}
	}
	*operands = append(*operands, x)
}

func (e *Evaluator) arith(x *syntax.BinaryExpr) (Value, error) {
	var operands []syntax.Expr
	var ops []syntax.Token
	flatten(x, &operands, &ops)

	vals := make([]Value, len(operands))
	for i, o := range operands {
		v, err := e.eval(o)
		if err != nil {
			return nil, err
		}
		vals[i] = v
	}

	c := climber{e: e, node: x, vals: vals, ops: ops}
	return c.expr(1)
}

// climber regroups a flat operand/operator sequence by precedence. ^ is
// right-associative; the rest are left-associative.
type climber struct {
	e    *Evaluator
	node *syntax.BinaryExpr
	vals []Value
	ops  []syntax.Token
	pos  int
}

func (c *climber) expr(minPrec int) (Value, error) {
	lhs := c.vals[c.pos]
	for c.pos < len(c.ops) {
		op := c.ops[c.pos]
		prec := precedence[op]
		if prec < minPrec {
			break
		}
		c.pos++

		next := prec + 1
		if op == syntax.CIRCUMFLEX {
			next = prec
		}
		rhs, err := c.expr(next)
		if err != nil {
			return nil, err
		}
		if lhs, err = c.e.apply(c.node, op, lhs, rhs); err != nil {
			return nil, err
		}
	}
	return lhs, nil
}

func (e *Evaluator) apply(x *syntax.BinaryExpr, op syntax.Token, l, r Value) (Value, error) {
	if op == syntax.PLUS {
		switch {
		case l.Type() == "string" || r.Type() == "string":
			return String(e.text(l) + e.text(r)), nil
		case l.Type() == "list" && r.Type() == "list":
			return append(append(List{}, l.(List)...), r.(List)...), nil
		}
	}

	ln, lok := l.(Number)
	rn, rok := r.(Number)
	if !lok || !rok {
		return nil, errAt(x, ErrOperandTypes, op, l.Type(), r.Type())
	}
	a, b := ln.Decimal, rn.Decimal

	var d decimal.Decimal
	switch op {
	case syntax.PLUS:
		d = a.Add(b)
	case syntax.MINUS:
		d = a.Sub(b)
	case syntax.STAR:
		d = a.Mul(b)
	case syntax.SLASH:
		d = e.Context.Div(a, b)
	case syntax.SLASHSLASH:
		d = e.Context.Div(a, b).Floor(0)
	case syntax.PERCENT:
		d = a.Mod(b)
	case syntax.CIRCUMFLEX:
		var err error
		if d, err = e.Context.Pow(a, b); err != nil {
			return nil, errAt(x, "%v", err)
		}
	}
	return NumberOf(d), nil
}

// text is the concatenation form of v.
func (e *Evaluator) text(v Value) string {
	return e.Format(v)
}
