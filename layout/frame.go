package layout

import (
	"github.com/agiangrant/lattice/cassowary"
	"github.com/agiangrant/lattice/widget"
)

// Frame keeps every child inside the container, inset by Padding, and
// stretches it to fill that area when nothing stronger says otherwise.
type Frame struct {
	Padding float64

	own map[widget.ID][]*cassowary.Constraint
}

// NewFrame returns a frame policy. Each container needs its own instance.
func NewFrame(padding float64) *Frame {
	return &Frame{Padding: padding}
}

// ChildAdded implements Policy.
func (f *Frame) ChildAdded(parent *Vars, child widget.ID, childVars *Vars, _ int) Edit {
	if f.own == nil {
		f.own = make(map[widget.ID][]*cassowary.Constraint)
	}
	cs := Collect(
		BoundBy(childVars, parent).Padding(f.Padding),
		MatchLayout(childVars, parent).Padding(f.Padding).Strength(cassowary.Strong),
	)
	f.own[child] = cs
	return Edit{Add: cs}
}

// ChildRemoved implements Policy.
func (f *Frame) ChildRemoved(_ *Vars, child widget.ID) Edit {
	cs, ok := f.own[child]
	if !ok {
		return Edit{}
	}
	delete(f.own, child)
	return Edit{Remove: cs}
}
