package cassowary

import "math"

// Relation is the comparison operator of a constraint.
type Relation uint8

const (
	LE Relation = iota // <=
	GE                 // >=
	EQ                 // ==
)

func (r Relation) String() string {
	switch r {
	case LE:
		return "<="
	case GE:
		return ">="
	default:
		return "=="
	}
}

// Constraint is a linear relation "expression op 0" with a strength.
// Constraints are compared by identity: the same *Constraint must be passed to
// RemoveConstraint that was passed to AddConstraint.
type Constraint struct {
	expr     Expression
	op       Relation
	strength Strength
}

// NewConstraint returns the constraint "lhs op rhs" at the given strength.
func NewConstraint(lhs Operand, op Relation, rhs Operand, strength Strength) *Constraint {
	return &Constraint{
		expr:     lhs.Expr().Minus(rhs).reduce(),
		op:       op,
		strength: strength.Clip(),
	}
}

// Eq returns "lhs == rhs" at the given strength.
func Eq(lhs, rhs Operand, strength Strength) *Constraint {
	return NewConstraint(lhs, EQ, rhs, strength)
}

// Le returns "lhs <= rhs" at the given strength.
func Le(lhs, rhs Operand, strength Strength) *Constraint {
	return NewConstraint(lhs, LE, rhs, strength)
}

// Ge returns "lhs >= rhs" at the given strength.
func Ge(lhs, rhs Operand, strength Strength) *Constraint {
	return NewConstraint(lhs, GE, rhs, strength)
}

// Expression returns the reduced left-hand side of "expression op 0".
func (c *Constraint) Expression() Expression { return c.expr }

// Op returns the relation.
func (c *Constraint) Op() Relation { return c.op }

// Strength returns the strength.
func (c *Constraint) Strength() Strength { return c.strength }

// WithStrength returns a new constraint with the same relation at strength s.
func (c *Constraint) WithStrength(s Strength) *Constraint {
	return &Constraint{expr: c.expr, op: c.op, strength: s.Clip()}
}

// Variables returns the distinct variables referenced by c.
func (c *Constraint) Variables() []*Variable {
	vars := make([]*Variable, 0, len(c.expr.Terms))
	for _, t := range c.expr.Terms {
		vars = append(vars, t.Variable)
	}
	return vars
}

// Satisfied reports whether c holds for the current variable values,
// within the solver tolerance.
func (c *Constraint) Satisfied() bool {
	v := c.expr.Value()
	switch c.op {
	case LE:
		return v <= Tolerance
	case GE:
		return v >= -Tolerance
	default:
		return math.Abs(v) <= Tolerance
	}
}

func (c *Constraint) String() string {
	return c.expr.String() + " " + c.op.String() + " 0 | " + c.strength.String()
}
