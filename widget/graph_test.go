package widget

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	lerrors "github.com/agiangrant/lattice/errors"
)

// buildTree creates root -> (a -> (a1, a2), b) and returns the ids.
func buildTree(t *testing.T) (*Graph, map[string]ID) {
	t.Helper()
	g := NewGraph()
	ids := map[string]ID{}
	add := func(name, parent string) {
		id, err := g.Add(ids[parent], NewNode(name))
		require.NoError(t, err)
		ids[name] = id
	}
	add("root", "")
	add("a", "root")
	add("a1", "a")
	add("a2", "a")
	add("b", "root")
	return g, ids
}

func TestGraphAdd(t *testing.T) {
	g, ids := buildTree(t)

	assert.Equal(t, 5, g.Len())
	assert.Equal(t, ids["root"], g.Root())
	assert.Equal(t, []ID{ids["a"], ids["b"]}, g.Children(ids["root"]))
	assert.Equal(t, []ID{ids["a1"], ids["a2"]}, g.Children(ids["a"]))

	parent, ok := g.Parent(ids["a2"])
	assert.True(t, ok)
	assert.Equal(t, ids["a"], parent)

	_, ok = g.Parent(ids["root"])
	assert.False(t, ok)

	assert.Equal(t, 1, g.Index(ids["a2"]))
	assert.Equal(t, -1, g.Index(ids["root"]))
	assert.Equal(t, "a1", g.Find(ids["a1"]).Name)
}

func TestGraphAddErrors(t *testing.T) {
	g, ids := buildTree(t)

	tests := []struct {
		name   string
		parent ID
		node   func() *Node
		want   error
	}{
		{
			name:   "second root",
			parent: ID{},
			node:   func() *Node { return NewNode("x") },
			want:   lerrors.ErrRootExists,
		},
		{
			name:   "unknown parent",
			parent: ID{index: 99, generation: 1},
			node:   func() *Node { return NewNode("x") },
			want:   lerrors.ErrUnknownWidget,
		},
		{
			name:   "node already in graph",
			parent: ids["b"],
			node:   func() *Node { return g.Find(ids["a1"]) },
			want:   lerrors.ErrDuplicateWidget,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := g.Add(tt.parent, tt.node())
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
			assert.Equal(t, 5, g.Len())
		})
	}
}

func TestGraphRemove(t *testing.T) {
	g, ids := buildTree(t)
	g.Dirty().Drain()

	assert.True(t, g.Remove(ids["a"]))
	assert.Equal(t, 2, g.Len())
	assert.False(t, g.Contains(ids["a"]))
	assert.False(t, g.Contains(ids["a1"]))
	assert.Nil(t, g.Find(ids["a2"]))
	assert.Equal(t, []ID{ids["b"]}, g.Children(ids["root"]))
	assert.True(t, g.Dirty().Contains(ids["root"]))

	assert.False(t, g.Remove(ids["a"]), "second remove is a no-op")
}

func TestGraphStaleIDNeverResolves(t *testing.T) {
	g, ids := buildTree(t)
	old := ids["b"]
	require.True(t, g.Remove(old))

	fresh, err := g.Add(ids["root"], NewNode("c"))
	require.NoError(t, err)

	// The slot is reused but the generation differs.
	assert.Equal(t, old.index, fresh.index)
	assert.NotEqual(t, old, fresh)
	assert.Nil(t, g.Find(old))
	assert.Equal(t, "c", g.Find(fresh).Name)
}

func TestGraphRemoveRoot(t *testing.T) {
	g, ids := buildTree(t)
	require.True(t, g.Remove(ids["root"]))
	assert.Equal(t, 0, g.Len())
	assert.False(t, g.Root().IsValid())
	assert.Equal(t, 0, g.Dirty().Len())

	id, err := g.Add(ID{}, NewNode("new root"))
	require.NoError(t, err)
	assert.Equal(t, id, g.Root())
}

func TestGraphTraversalOrder(t *testing.T) {
	g, ids := buildTree(t)

	assert.Equal(t,
		[]ID{ids["root"], ids["a"], ids["a1"], ids["a2"], ids["b"]},
		g.IDs())
	assert.Equal(t,
		[]ID{ids["a1"], ids["a2"], ids["a"], ids["b"], ids["root"]},
		g.Subtree(ids["root"]))

	var drawn []string
	g.DrawOrder(func(n *Node) { drawn = append(drawn, n.Name) })
	assert.Equal(t, []string{"root", "a", "a1", "a2", "b"}, drawn)

	var chain []ID
	g.Ancestors(ids["a2"], func(id ID) bool {
		chain = append(chain, id)
		return true
	})
	assert.Equal(t, []ID{ids["a2"], ids["a"], ids["root"]}, chain)
}

func TestGraphWalkObservesRemoval(t *testing.T) {
	g, ids := buildTree(t)

	var visited []ID
	g.Walk(ids["root"], func(id ID) bool {
		visited = append(visited, id)
		if id == ids["a1"] {
			g.Remove(ids["a2"])
			g.Remove(ids["b"])
		}
		return true
	})

	assert.Equal(t, []ID{ids["root"], ids["a"], ids["a1"]}, visited)
	assert.False(t, g.Contains(ids["b"]))
}

func TestGraphWalkSeesNewChildren(t *testing.T) {
	g, ids := buildTree(t)

	var added ID
	var visited []ID
	g.Walk(ids["b"], func(id ID) bool {
		visited = append(visited, id)
		if id == ids["b"] {
			var err error
			added, err = g.Add(ids["b"], NewNode("b1"))
			require.NoError(t, err)
		}
		return true
	})
	assert.Equal(t, []ID{ids["b"], added}, visited)
}

func TestGraphWalkStops(t *testing.T) {
	g, ids := buildTree(t)
	count := 0
	g.Walk(ids["root"], func(ID) bool {
		count++
		return count < 2
	})
	assert.Equal(t, 2, count)
}

func TestGraphHitTest(t *testing.T) {
	g, ids := buildTree(t)
	g.Find(ids["root"]).Bounds = Rect(0, 0, 400, 300)
	g.Find(ids["a"]).Bounds = Rect(0, 0, 200, 300)
	g.Find(ids["a1"]).Bounds = Rect(0, 0, 200, 100)
	g.Find(ids["a2"]).Bounds = Rect(0, 50, 200, 100) // overlaps a1, drawn later
	g.Find(ids["b"]).Bounds = Rect(200, 0, 200, 300)

	tests := []struct {
		name string
		x, y float32
		want string
		ok   bool
	}{
		{"deepest match", 10, 10, "a1", true},
		{"later sibling is on top", 10, 60, "a2", true},
		{"parent when no child matches", 10, 200, "a", true},
		{"right edge is exclusive", 200, 10, "b", true},
		{"outside root", 500, 10, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := g.HitTest(tt.x, tt.y)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, ids[tt.want], id)
			}
		})
	}
}

func TestGraphFindFunc(t *testing.T) {
	g, ids := buildTree(t)
	state := &struct{ label string }{"payload"}
	g.Find(ids["a2"]).State = state

	assert.Equal(t, ids["a2"], g.FindByState(state).ID())
	assert.Nil(t, g.FindFunc(func(n *Node) bool { return n.Name == "zz" }))
}

func TestDirtySet(t *testing.T) {
	g, ids := buildTree(t)
	d := g.Dirty()
	assert.Equal(t, 5, d.Len())

	drained := d.Drain()
	assert.Len(t, drained, 5)
	for i := 1; i < len(drained); i++ {
		assert.True(t, drained[i-1].Less(drained[i]))
	}
	assert.Equal(t, 0, d.Len())
	assert.Nil(t, d.Drain())

	g.MarkDirty(ids["b"])
	g.MarkDirty(ID{})
	assert.Equal(t, []ID{ids["b"]}, d.Drain())

	g.MarkDirty(ids["a1"])
	g.Remove(ids["a"])
	assert.False(t, d.Contains(ids["a1"]), "removed widgets leave the dirty set")
	assert.True(t, d.Contains(ids["root"]))
}

func TestIDString(t *testing.T) {
	assert.Equal(t, "none", ID{}.String())
	assert.Equal(t, "3.2", ID{index: 3, generation: 2}.String())
	assert.False(t, ID{}.IsValid())
}
