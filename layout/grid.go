package layout

import (
	"github.com/agiangrant/lattice/cassowary"
	"github.com/agiangrant/lattice/widget"
)

// Grid places children in cells by insertion order: child i goes to row
// i / Columns, column i % Columns.
//
// Cells in the same row share a height and cells in the same column share a
// width. Every cell is 1/Columns of the container's width (medium), the first
// row and column are tied to the container's top and left edges (strong), and
// the last cell's bottom is pulled to the container's bottom (weak).
type Grid struct {
	Columns int

	children []member
	tail     *cassowary.Constraint
}

// NewGrid returns a grid policy with the given column count (at least 1).
// Each container needs its own instance.
func NewGrid(columns int) *Grid {
	return &Grid{Columns: columns}
}

func (g *Grid) columns() int {
	if g.Columns < 1 {
		return 1
	}
	return g.Columns
}

// Cell returns the row and column of the child at index.
func (g *Grid) Cell(index int) (row, col int) {
	cols := g.columns()
	return index / cols, index % cols
}

func (g *Grid) cell(parent *Vars, k int) []*cassowary.Constraint {
	cols := g.columns()
	row, col := g.Cell(k)
	v := g.children[k].vars

	var cs []*cassowary.Constraint
	if col == 0 {
		cs = append(cs, cassowary.Eq(v.Left(), parent.Left(), cassowary.Strong))
	} else {
		prev := g.children[k-1].vars
		cs = append(cs,
			cassowary.Eq(v.Left(), prev.Right(), cassowary.Strong),
			cassowary.Eq(v.Height(), prev.Height(), cassowary.Strong),
		)
	}
	if row == 0 {
		cs = append(cs, cassowary.Eq(v.Top(), parent.Top(), cassowary.Strong))
	} else {
		above := g.children[k-cols].vars
		cs = append(cs,
			cassowary.Eq(v.Top(), above.Bottom(), cassowary.Strong),
			cassowary.Eq(v.Width(), above.Width(), cassowary.Strong),
		)
		if col == 0 {
			cs = append(cs, cassowary.Eq(v.Height(), g.children[0].vars.Height(), cassowary.Medium))
		}
	}
	cs = append(cs, cassowary.Eq(v.Width().Times(float64(cols)), parent.Width(), cassowary.Medium))
	return cs
}

// relayFrom rebuilds the cell constraints of every child from index i on.
func (g *Grid) relayFrom(parent *Vars, i int, edit *Edit) {
	for j := i; j < len(g.children); j++ {
		m := &g.children[j]
		edit.Remove = append(edit.Remove, m.own...)
		m.own = g.cell(parent, j)
		edit.Add = append(edit.Add, m.own...)
	}
	if g.tail != nil {
		edit.Remove = append(edit.Remove, g.tail)
		g.tail = nil
	}
	if n := len(g.children); n > 0 {
		g.tail = cassowary.Eq(g.children[n-1].vars.Bottom(), parent.Bottom(), cassowary.Weak)
		edit.Add = append(edit.Add, g.tail)
	}
}

// ChildAdded implements Policy.
func (g *Grid) ChildAdded(parent *Vars, child widget.ID, childVars *Vars, index int) Edit {
	if index < 0 || index > len(g.children) {
		index = len(g.children)
	}
	g.children = insertMember(g.children, index, member{id: child, vars: childVars})
	var edit Edit
	g.relayFrom(parent, index, &edit)
	return edit
}

// ChildRemoved implements Policy.
func (g *Grid) ChildRemoved(parent *Vars, child widget.ID) Edit {
	i := indexOf(g.children, child)
	if i < 0 {
		return Edit{}
	}
	edit := Edit{Remove: append([]*cassowary.Constraint(nil), g.children[i].own...)}
	g.children = append(g.children[:i], g.children[i+1:]...)
	g.relayFrom(parent, i, &edit)
	return edit
}

// Len returns the number of children the grid is arranging.
func (g *Grid) Len() int { return len(g.children) }
