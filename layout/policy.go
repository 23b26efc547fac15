package layout

import (
	"github.com/agiangrant/lattice/cassowary"
	"github.com/agiangrant/lattice/widget"
)

// Edit is a batch of constraint changes produced by a container policy.
// Remove is applied before Add.
type Edit struct {
	Add    []*cassowary.Constraint
	Remove []*cassowary.Constraint
}

// Empty reports whether e changes nothing.
func (e Edit) Empty() bool { return len(e.Add) == 0 && len(e.Remove) == 0 }

// Merge appends o's changes to e.
func (e Edit) Merge(o Edit) Edit {
	e.Add = append(e.Add, o.Add...)
	e.Remove = append(e.Remove, o.Remove...)
	return e
}

// Policy arranges the children of one container.
//
// A policy instance belongs to a single container and remembers which
// constraints it created for each child, so ChildRemoved can retract exactly
// those. The solver has no notion of who added a constraint.
type Policy interface {
	// ChildAdded is called after child has been inserted at index among the
	// container's children.
	ChildAdded(parent *Vars, child widget.ID, childVars *Vars, index int) Edit

	// ChildRemoved is called before child's variables leave the solver.
	ChildRemoved(parent *Vars, child widget.ID) Edit
}

// member is a child as tracked by a policy, with the constraints the policy
// created for it.
type member struct {
	id   widget.ID
	vars *Vars
	own  []*cassowary.Constraint
}

func indexOf(members []member, id widget.ID) int {
	for i, m := range members {
		if m.id == id {
			return i
		}
	}
	return -1
}

func insertMember(members []member, i int, m member) []member {
	if i < 0 || i > len(members) {
		i = len(members)
	}
	members = append(members, member{})
	copy(members[i+1:], members[i:])
	members[i] = m
	return members
}
