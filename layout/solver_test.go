package layout

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agiangrant/lattice/cassowary"
	lerrors "github.com/agiangrant/lattice/errors"
	"github.com/agiangrant/lattice/widget"
)

const tol = cassowary.Tolerance

// fixture pairs a widget graph with a layout solver so tests get real ids.
type fixture struct {
	t      *testing.T
	graph  *widget.Graph
	solver *Solver
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return &fixture{
		t:      t,
		graph:  widget.NewGraph(),
		solver: NewSolver(slog.New(slog.NewTextHandler(io.Discard, nil))),
	}
}

// add creates a widget under parent and registers it with the solver.
func (f *fixture) add(parent widget.ID, name string, rules func(v *Vars) []*cassowary.Constraint) (widget.ID, *Vars) {
	f.t.Helper()
	id, err := f.graph.Add(parent, widget.NewNode(name))
	require.NoError(f.t, err)
	vars := NewVars(id, name)
	var cs []*cassowary.Constraint
	if rules != nil {
		cs = rules(vars)
	}
	require.NoError(f.t, f.solver.AddWidget(id, vars, cs...))
	return id, vars
}

// child adds a widget under parent and lets the parent's policy arrange it.
func (f *fixture) child(p Policy, parent widget.ID, name string, rules func(v *Vars) []*cassowary.Constraint) (widget.ID, *Vars) {
	f.t.Helper()
	id, vars := f.add(parent, name, rules)
	edit := p.ChildAdded(f.solver.Vars(parent), id, vars, f.graph.Index(id))
	require.NoError(f.t, f.solver.Apply(edit))
	return id, vars
}

// remove retracts the policy's constraints for id, then drops it.
func (f *fixture) remove(p Policy, id widget.ID) {
	f.t.Helper()
	parent, _ := f.graph.Parent(id)
	if p != nil {
		require.NoError(f.t, f.solver.Apply(p.ChildRemoved(f.solver.Vars(parent), id)))
	}
	require.NoError(f.t, f.solver.RemoveWidget(id))
	require.True(f.t, f.graph.Remove(id))
}

func (f *fixture) value(id widget.ID, k VarKind) float64 {
	f.t.Helper()
	v, ok := f.solver.Value(id, k)
	require.True(f.t, ok)
	return v
}

func fixed(x, y, w, h float64) func(v *Vars) []*cassowary.Constraint {
	return func(v *Vars) []*cassowary.Constraint {
		return Collect(TopLeft(v, x, y), Size(v, w, h))
	}
}

func TestSolverAddWidget(t *testing.T) {
	f := newFixture(t)
	id, _ := f.add(widget.ID{}, "root", fixed(10, 20, 100, 50))

	changes := f.solver.FetchChanges()
	assert.Equal(t, ChangeList{
		{Widget: id, Kind: Left, Value: 10},
		{Widget: id, Kind: Top, Value: 20},
		{Widget: id, Kind: Right, Value: 110},
		{Widget: id, Kind: Bottom, Value: 70},
		{Widget: id, Kind: Width, Value: 100},
		{Widget: id, Kind: Height, Value: 50},
	}, roundChanges(changes))

	b, ok := f.solver.Bounds(id)
	require.True(t, ok)
	assert.Equal(t, widget.Rect(10, 20, 100, 50), b)

	err := f.solver.AddWidget(id, nil)
	assert.True(t, errors.Is(err, lerrors.ErrDuplicateWidget))
}

func TestSolverFetchChangesIsIdempotent(t *testing.T) {
	f := newFixture(t)
	f.add(widget.ID{}, "root", fixed(0, 0, 10, 10))

	assert.NotEmpty(t, f.solver.FetchChanges())
	assert.Empty(t, f.solver.FetchChanges())
	assert.Empty(t, f.solver.FetchChanges())
}

func TestSolverStaleTracksMutations(t *testing.T) {
	f := newFixture(t)
	assert.False(t, f.solver.Stale())
	root, _ := f.add(widget.ID{}, "root", func(v *Vars) []*cassowary.Constraint {
		return TopLeft(v, 0, 0).Build()
	})
	assert.True(t, f.solver.Stale())
	f.solver.FetchChanges()
	assert.False(t, f.solver.Stale())

	require.NoError(t, f.solver.AddEditVariable(root, Right, cassowary.Strong))
	require.NoError(t, f.solver.SuggestValue(root, Right, 50))
	assert.True(t, f.solver.Stale())
	changes := f.solver.FetchChanges()
	require.NotEmpty(t, changes)
	assert.False(t, f.solver.Stale())
	assert.Nil(t, f.solver.FetchChanges())

	err := f.solver.SuggestValue(root, Bottom, 10)
	assert.True(t, errors.Is(err, lerrors.ErrUnknownEditVariable))
	assert.False(t, f.solver.Stale(), "a rejected suggestion changes nothing")

	require.NoError(t, f.solver.RemoveEditVariable(root, Right))
	assert.True(t, f.solver.Stale())
	f.solver.FetchChanges()
	require.NoError(t, f.solver.RemoveWidget(root))
	assert.True(t, f.solver.Stale())
}

func TestSolverAddWidgetRollsBack(t *testing.T) {
	f := newFixture(t)
	root, rootVars := f.add(widget.ID{}, "root", fixed(0, 0, 100, 100))
	before := f.solver.Len()

	id, err := f.graph.Add(root, widget.NewNode("bad"))
	require.NoError(t, err)
	vars := NewVars(id, "bad")
	err = f.solver.AddWidget(id, vars,
		cassowary.Eq(vars.Width(), rootVars.Width(), cassowary.Required),
		cassowary.Eq(vars.Width(), cassowary.Const(300), cassowary.Required),
	)
	require.Error(t, err)
	assert.True(t, errors.Is(err, lerrors.ErrUnsatisfiableConstraints))
	assert.Contains(t, err.Error(), id.String())

	assert.False(t, f.solver.Has(id))
	assert.Equal(t, before, f.solver.Len())
	assert.Equal(t, []widget.ID{root}, f.solver.Widgets())

	// A constraint on the rejected widget's variables is now refused.
	err = f.solver.AddConstraint(cassowary.Eq(vars.Left(), cassowary.Const(0), cassowary.Weak))
	assert.True(t, errors.Is(err, lerrors.ErrUnknownWidget))
}

func TestSolverTracksWidgetsOfGraph(t *testing.T) {
	f := newFixture(t)
	box := VBox(0)
	root, _ := f.add(widget.ID{}, "root", fixed(0, 0, 100, 300))
	var kids []widget.ID
	for _, name := range []string{"a", "b", "c", "d"} {
		id, _ := f.child(box, root, name, func(v *Vars) []*cassowary.Constraint {
			return FixedHeight(v, 20).Build()
		})
		kids = append(kids, id)
	}

	same := func() {
		assert.ElementsMatch(t, f.graph.IDs(), f.solver.Widgets())
	}
	same()
	f.remove(box, kids[1])
	same()
	f.remove(box, kids[3])
	same()
	e, _ := f.child(box, root, "e", nil)
	same()
	f.remove(box, kids[0])
	f.remove(box, e)
	f.remove(box, kids[2])
	same()
	assert.Equal(t, []widget.ID{root}, f.solver.Widgets())
	assert.Len(t, f.solver.ConstraintsFor(root), 4+2+2)
}

func TestSolverRemoveWidgetPurgesSharedConstraints(t *testing.T) {
	f := newFixture(t)
	root, rootVars := f.add(widget.ID{}, "root", fixed(0, 0, 100, 100))
	child, _ := f.add(root, "child", func(v *Vars) []*cassowary.Constraint {
		return MatchLayout(v, rootVars).Build()
	})
	shared := f.solver.ConstraintsFor(child)
	require.NotEmpty(t, shared)

	require.NoError(t, f.solver.RemoveWidget(child))
	for _, c := range shared {
		assert.False(t, f.solver.HasConstraint(c))
	}
	assert.False(t, f.solver.Has(child))
	_, ok := f.solver.Value(child, Left)
	assert.False(t, ok)

	err := f.solver.RemoveWidget(child)
	assert.True(t, errors.Is(err, lerrors.ErrUnknownWidget))
}

func TestSolverEditVariables(t *testing.T) {
	f := newFixture(t)
	root, _ := f.add(widget.ID{}, "root", func(v *Vars) []*cassowary.Constraint {
		return TopLeft(v, 0, 0).Build()
	})

	err := f.solver.SuggestValue(root, Right, 10)
	assert.True(t, errors.Is(err, lerrors.ErrUnknownEditVariable))

	require.NoError(t, f.solver.AddEditVariable(root, Right, cassowary.Strong))
	require.NoError(t, f.solver.AddEditVariable(root, Bottom, cassowary.Strong))
	assert.True(t, f.solver.HasEditVariable(root, Right))

	err = f.solver.AddEditVariable(root, Right, cassowary.Strong)
	assert.True(t, errors.Is(err, lerrors.ErrDuplicateEditVariable))
	err = f.solver.AddEditVariable(root, Left, cassowary.Required)
	assert.True(t, errors.Is(err, lerrors.ErrBadRequiredStrength))

	require.NoError(t, f.solver.SuggestValue(root, Right, 640))
	require.NoError(t, f.solver.SuggestValue(root, Bottom, 480))
	f.solver.FetchChanges()
	assert.InDelta(t, 640, f.value(root, Width), tol)
	assert.InDelta(t, 480, f.value(root, Height), tol)

	require.NoError(t, f.solver.RemoveEditVariable(root, Right))
	err = f.solver.RemoveEditVariable(root, Right)
	assert.True(t, errors.Is(err, lerrors.ErrUnknownEditVariable))

	// Removing the widget drops its remaining edit variable.
	require.NoError(t, f.solver.RemoveWidget(root))
	assert.Equal(t, 0, f.solver.Len())
}

func TestSolverResizeReportsOnlyDependents(t *testing.T) {
	f := newFixture(t)
	root, rootVars := f.add(widget.ID{}, "root", func(v *Vars) []*cassowary.Constraint {
		return TopLeft(v, 0, 0).Build()
	})
	require.NoError(t, f.solver.AddEditVariable(root, Right, cassowary.Strong))
	require.NoError(t, f.solver.AddEditVariable(root, Bottom, cassowary.Strong))

	panel, _ := f.add(root, "panel", func(v *Vars) []*cassowary.Constraint {
		return MatchLayout(v, rootVars).Padding(10).Build()
	})
	badge, _ := f.add(root, "badge", fixed(5, 5, 20, 20))

	require.NoError(t, f.solver.SuggestValue(root, Right, 400))
	require.NoError(t, f.solver.SuggestValue(root, Bottom, 300))
	first := f.solver.FetchChanges()
	assert.Equal(t, []widget.ID{root, panel, badge}, first.Widgets())

	require.NoError(t, f.solver.SuggestValue(root, Right, 800))
	require.NoError(t, f.solver.SuggestValue(root, Bottom, 600))
	changes := f.solver.FetchChanges()
	assert.Equal(t, []widget.ID{root, panel}, changes.Widgets())
	for _, c := range changes {
		assert.NotContains(t, []VarKind{Left, Top}, c.Kind, "edge %s did not move", c)
	}
	assert.InDelta(t, 780, f.value(panel, Width), tol)
	assert.InDelta(t, 580, f.value(panel, Height), tol)
}

func TestSolverDebugString(t *testing.T) {
	f := newFixture(t)
	f.add(widget.ID{}, "root", fixed(0, 0, 10, 10))
	f.solver.FetchChanges()

	out := f.solver.DebugString()
	assert.Contains(t, out, "root: left=0 top=0 right=10 bottom=10 width=10 height=10")
	assert.Contains(t, out, "root.width - root.right + root.left == 0 | required")
}

func roundChanges(l ChangeList) ChangeList {
	out := make(ChangeList, len(l))
	for i, c := range l {
		c.Value = float64(int64(c.Value*1000+0.5)) / 1000
		out[i] = c
	}
	return out
}
