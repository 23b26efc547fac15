package layout

import (
	"github.com/agiangrant/lattice/cassowary"
	"github.com/agiangrant/lattice/widget"
)

// Orientation is the main axis of a Box.
type Orientation uint8

const (
	Horizontal Orientation = iota
	Vertical
)

func (o Orientation) String() string {
	if o == Vertical {
		return "vertical"
	}
	return "horizontal"
}

// Box lines children up along one axis with Padding pixels between
// neighbours.
//
// For each child it adds, along the main axis:
//   - first child: start == container start (strong)
//   - other children: start == previous end + Padding (strong)
//
// and across it:
//   - start == container start (strong)
//   - size == container size (medium)
//
// The last child's end is tied to the container's end at medium strength,
// so children that do not fit overflow instead of overlapping.
type Box struct {
	Orientation Orientation
	Padding     float64

	children []member
	tail     *cassowary.Constraint
}

// NewBox returns a box policy. Each container needs its own instance.
func NewBox(o Orientation, padding float64) *Box {
	return &Box{Orientation: o, Padding: padding}
}

// HBox returns a horizontal box policy.
func HBox(padding float64) *Box { return NewBox(Horizontal, padding) }

// VBox returns a vertical box policy.
func VBox(padding float64) *Box { return NewBox(Vertical, padding) }

func (b *Box) axis(v *Vars) (start, end, crossStart, crossSize *cassowary.Variable) {
	if b.Orientation == Vertical {
		return v.Top(), v.Bottom(), v.Left(), v.Width()
	}
	return v.Left(), v.Right(), v.Top(), v.Height()
}

// lead is the constraint placing children[i]'s start.
func (b *Box) lead(parent *Vars, i int) *cassowary.Constraint {
	start, _, _, _ := b.axis(b.children[i].vars)
	if i == 0 {
		pStart, _, _, _ := b.axis(parent)
		return cassowary.Eq(start, pStart, cassowary.Strong)
	}
	_, prevEnd, _, _ := b.axis(b.children[i-1].vars)
	return cassowary.Eq(start, prevEnd.Plus(cassowary.Const(b.Padding)), cassowary.Strong)
}

// relead replaces children[i]'s lead constraint, which is always own[0].
func (b *Box) relead(parent *Vars, i int, edit *Edit) {
	m := &b.children[i]
	edit.Remove = append(edit.Remove, m.own[0])
	m.own[0] = b.lead(parent, i)
	edit.Add = append(edit.Add, m.own[0])
}

// retail moves the end tie to the current last child.
func (b *Box) retail(parent *Vars, edit *Edit) {
	if b.tail != nil {
		edit.Remove = append(edit.Remove, b.tail)
		b.tail = nil
	}
	if len(b.children) == 0 {
		return
	}
	_, end, _, _ := b.axis(b.children[len(b.children)-1].vars)
	_, pEnd, _, _ := b.axis(parent)
	b.tail = cassowary.Eq(end, pEnd, cassowary.Medium)
	edit.Add = append(edit.Add, b.tail)
}

// ChildAdded implements Policy.
func (b *Box) ChildAdded(parent *Vars, child widget.ID, childVars *Vars, index int) Edit {
	if index < 0 || index > len(b.children) {
		index = len(b.children)
	}
	b.children = insertMember(b.children, index, member{id: child, vars: childVars})

	_, _, crossStart, crossSize := b.axis(childVars)
	_, _, pCrossStart, pCrossSize := b.axis(parent)
	m := &b.children[index]
	m.own = []*cassowary.Constraint{
		b.lead(parent, index),
		cassowary.Eq(crossStart, pCrossStart, cassowary.Strong),
		cassowary.Eq(crossSize, pCrossSize, cassowary.Medium),
	}

	edit := Edit{Add: append([]*cassowary.Constraint(nil), m.own...)}
	if index+1 < len(b.children) {
		b.relead(parent, index+1, &edit)
	}
	if index == len(b.children)-1 {
		b.retail(parent, &edit)
	}
	return edit
}

// ChildRemoved implements Policy.
func (b *Box) ChildRemoved(parent *Vars, child widget.ID) Edit {
	i := indexOf(b.children, child)
	if i < 0 {
		return Edit{}
	}
	last := i == len(b.children)-1
	edit := Edit{Remove: append([]*cassowary.Constraint(nil), b.children[i].own...)}
	b.children = append(b.children[:i], b.children[i+1:]...)

	if i < len(b.children) {
		b.relead(parent, i, &edit)
	}
	if last {
		b.retail(parent, &edit)
	}
	return edit
}

// Len returns the number of children the box is arranging.
func (b *Box) Len() int { return len(b.children) }
