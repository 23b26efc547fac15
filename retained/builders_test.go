package retained

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agiangrant/lattice/cassowary"
	lerrors "github.com/agiangrant/lattice/errors"
	"github.com/agiangrant/lattice/layout"
	"github.com/agiangrant/lattice/widget"
)

func TestMount(t *testing.T) {
	u, root := newWindow(t, 400, 300)

	clicked := 0
	ok := Widget("ok").WithSize(80, 30).WithState("confirm")
	Bind(ok, func(*Context, ClickEvent) { clicked++ })

	list, err := u.Mount(root, VStack("list", 10,
		Widget("header").WithHeight(40),
		HStack("buttons", 0, ok, Widget("cancel").WithSize(80, 30)).WithSize(360, 30),
	).FillParent(20))
	require.NoError(t, err)
	require.NoError(t, u.Update())

	bounds := map[string]widget.Bounds{}
	u.Walk(list, func(id widget.ID) bool {
		n := u.FindWidget(id)
		bounds[n.Name] = n.Bounds
		return true
	})
	assert.Equal(t, widget.Rect(20, 20, 360, 260), bounds["list"])
	assert.Equal(t, widget.Rect(20, 20, 360, 40), bounds["header"])
	assert.Equal(t, widget.Rect(20, 70, 360, 30), bounds["buttons"])
	assert.Equal(t, widget.Rect(20, 70, 80, 30), bounds["ok"])
	assert.Equal(t, widget.Rect(100, 70, 80, 30), bounds["cancel"])

	node := u.Graph().FindByState("confirm")
	require.NotNil(t, node)
	assert.Equal(t, "ok", node.Name)

	require.NoError(t, u.PointerMoved(50, 80))
	require.NoError(t, u.MouseButton(ButtonPressed, MouseButtonLeft))
	require.NoError(t, u.MouseButton(ButtonReleased, MouseButtonLeft))
	assert.Equal(t, 1, clicked)
}

func TestMountGrid(t *testing.T) {
	u, root := newWindow(t, 200, 100)
	grid, err := u.Mount(root, Grid("grid", 2,
		Widget("c0"), Widget("c1"), Widget("c2"), Widget("c3"),
	).FillParent(0))
	require.NoError(t, err)
	require.NoError(t, u.Update())

	kids := u.Graph().Children(grid)
	require.Len(t, kids, 4)
	b, _ := u.Bounds(kids[3])
	assert.Equal(t, widget.Rect(100, 50, 100, 50), b)
}

func TestMountRollsBack(t *testing.T) {
	u, root := newWindow(t, 100, 100)
	before := u.Graph().Len()

	_, err := u.Mount(root, Frame("frame", 0,
		Widget("fine"),
		Widget("wide").WithWidth(500),
	).WithSize(100, 100))
	assert.True(t, errors.Is(err, lerrors.ErrUnsatisfiableConstraints))
	assert.Equal(t, before, u.Graph().Len())
	assert.ElementsMatch(t, u.Graph().IDs(), u.Solver().Widgets())
}

func TestMountRoot(t *testing.T) {
	u := newUI(t)
	root, err := u.Mount(widget.ID{}, Widget("root").With(func(v, parent *layout.Vars) []*cassowary.Constraint {
		assert.Nil(t, parent)
		return layout.MinSize(v, 10, 10).Build()
	}).FillParent(5))
	require.NoError(t, err)
	assert.Equal(t, root, u.Root())
}
