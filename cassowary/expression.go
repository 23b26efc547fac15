package cassowary

import (
	"strconv"
	"strings"
)

// Variable is an unknown solved for by a Solver. Variables are compared by
// identity; the name is only used for debugging output.
type Variable struct {
	name  string
	value float64
}

// NewVariable returns a variable with the given debug name.
func NewVariable(name string) *Variable {
	return &Variable{name: name}
}

// Name returns the debug name of v.
func (v *Variable) Name() string { return v.name }

// Value returns the value written by the last Solver.UpdateVariables.
func (v *Variable) Value() float64 { return v.value }

func (v *Variable) String() string { return v.name }

// Term is a variable scaled by a coefficient.
type Term struct {
	Variable    *Variable
	Coefficient float64
}

// Expression is a linear sum of terms plus a constant.
type Expression struct {
	Terms    []Term
	Constant float64
}

// Operand is anything that can take part in a linear expression:
// *Variable, Term, Expression and Const.
type Operand interface {
	Expr() Expression
}

// Const is a constant operand.
type Const float64

// Expr returns c as an expression.
func (c Const) Expr() Expression { return Expression{Constant: float64(c)} }

// Expr returns v as an expression with coefficient 1.
func (v *Variable) Expr() Expression {
	return Expression{Terms: []Term{{Variable: v, Coefficient: 1}}}
}

// Expr returns t as an expression.
func (t Term) Expr() Expression { return Expression{Terms: []Term{t}} }

// Expr returns a copy of e.
func (e Expression) Expr() Expression {
	return Expression{Terms: append([]Term(nil), e.Terms...), Constant: e.Constant}
}

// Plus returns v + o.
func (v *Variable) Plus(o Operand) Expression { return v.Expr().Plus(o) }

// Minus returns v - o.
func (v *Variable) Minus(o Operand) Expression { return v.Expr().Minus(o) }

// Times returns k*v.
func (v *Variable) Times(k float64) Expression { return v.Expr().Times(k) }

// Plus returns e + o.
func (e Expression) Plus(o Operand) Expression {
	r := e.Expr()
	oe := o.Expr()
	r.Terms = append(r.Terms, oe.Terms...)
	r.Constant += oe.Constant
	return r
}

// Minus returns e - o.
func (e Expression) Minus(o Operand) Expression {
	return e.Plus(o.Expr().Negate())
}

// Times returns k*e.
func (e Expression) Times(k float64) Expression {
	r := Expression{Terms: make([]Term, len(e.Terms)), Constant: e.Constant * k}
	for i, t := range e.Terms {
		r.Terms[i] = Term{Variable: t.Variable, Coefficient: t.Coefficient * k}
	}
	return r
}

// Negate returns -e.
func (e Expression) Negate() Expression { return e.Times(-1) }

// Value evaluates e against the current variable values.
func (e Expression) Value() float64 {
	v := e.Constant
	for _, t := range e.Terms {
		v += t.Coefficient * t.Variable.value
	}
	return v
}

// reduce merges duplicate variables and drops zero coefficients,
// keeping first-occurrence order.
func (e Expression) reduce() Expression {
	idx := make(map[*Variable]int, len(e.Terms))
	terms := make([]Term, 0, len(e.Terms))
	for _, t := range e.Terms {
		if i, ok := idx[t.Variable]; ok {
			terms[i].Coefficient += t.Coefficient
			continue
		}
		idx[t.Variable] = len(terms)
		terms = append(terms, t)
	}
	out := terms[:0]
	for _, t := range terms {
		if !nearZero(t.Coefficient) {
			out = append(out, t)
		}
	}
	return Expression{Terms: out, Constant: e.Constant}
}

func (e Expression) String() string {
	var sb strings.Builder
	for i, t := range e.Terms {
		c := t.Coefficient
		switch {
		case i == 0 && c < 0:
			sb.WriteString("-")
			c = -c
		case i > 0 && c < 0:
			sb.WriteString(" - ")
			c = -c
		case i > 0:
			sb.WriteString(" + ")
		}
		if c != 1 {
			sb.WriteString(strconv.FormatFloat(c, 'g', -1, 64))
			sb.WriteString("*")
		}
		sb.WriteString(t.Variable.name)
	}
	switch {
	case len(e.Terms) == 0:
		sb.WriteString(strconv.FormatFloat(e.Constant, 'g', -1, 64))
	case e.Constant < 0:
		sb.WriteString(" - ")
		sb.WriteString(strconv.FormatFloat(-e.Constant, 'g', -1, 64))
	case e.Constant > 0:
		sb.WriteString(" + ")
		sb.WriteString(strconv.FormatFloat(e.Constant, 'g', -1, 64))
	}
	return sb.String()
}
