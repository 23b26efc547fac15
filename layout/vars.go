// Package layout turns widget geometry into a linear constraint system.
//
// Every widget owns one Vars set. A Solver keeps those sets in an incremental
// cassowary.Solver, tracks which widgets each constraint touches, and reports
// solved geometry as a ChangeList. Container policies (Box, Grid, Frame)
// translate "child added" and "child removed" into constraint edits.
package layout

import (
	"github.com/agiangrant/lattice/cassowary"
	"github.com/agiangrant/lattice/widget"
)

// VarKind names one of a widget's layout variables.
type VarKind uint8

const (
	Left VarKind = iota
	Top
	Right
	Bottom
	Width
	Height

	numKinds
)

// Kinds lists every VarKind in change-list order.
var Kinds = [numKinds]VarKind{Left, Top, Right, Bottom, Width, Height}

func (k VarKind) String() string {
	switch k {
	case Left:
		return "left"
	case Top:
		return "top"
	case Right:
		return "right"
	case Bottom:
		return "bottom"
	case Width:
		return "width"
	case Height:
		return "height"
	}
	return "unknown"
}

// Vars is the set of layout variables owned by one widget.
type Vars struct {
	id   widget.ID
	name string
	vars [numKinds]*cassowary.Variable
}

// NewVars creates the variables for widget id. name is used for debug output
// and defaults to the id.
func NewVars(id widget.ID, name string) *Vars {
	if name == "" {
		name = id.String()
	}
	v := &Vars{id: id, name: name}
	for _, k := range Kinds {
		v.vars[k] = cassowary.NewVariable(name + "." + k.String())
	}
	return v
}

// Widget returns the id of the widget owning the set.
func (v *Vars) Widget() widget.ID { return v.id }

// Name returns the debug name.
func (v *Vars) Name() string { return v.name }

// Var returns the variable of the given kind.
func (v *Vars) Var(k VarKind) *cassowary.Variable { return v.vars[k] }

func (v *Vars) Left() *cassowary.Variable   { return v.vars[Left] }
func (v *Vars) Top() *cassowary.Variable    { return v.vars[Top] }
func (v *Vars) Right() *cassowary.Variable  { return v.vars[Right] }
func (v *Vars) Bottom() *cassowary.Variable { return v.vars[Bottom] }
func (v *Vars) Width() *cassowary.Variable  { return v.vars[Width] }
func (v *Vars) Height() *cassowary.Variable { return v.vars[Height] }

// intrinsic returns the constraints tying the edges to the size. They are
// added with the widget and removed with it.
func (v *Vars) intrinsic() []*cassowary.Constraint {
	return []*cassowary.Constraint{
		cassowary.Eq(v.Width(), v.Right().Minus(v.Left()), cassowary.Required),
		cassowary.Eq(v.Height(), v.Bottom().Minus(v.Top()), cassowary.Required),
		cassowary.Ge(v.Width(), cassowary.Const(0), cassowary.Required),
		cassowary.Ge(v.Height(), cassowary.Const(0), cassowary.Required),
	}
}

func (v *Vars) String() string { return v.name }
