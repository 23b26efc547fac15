package widget

import (
	lerrors "github.com/agiangrant/lattice/errors"
)

// Node is a widget record stored in the graph.
//
// Bounds is written by the layout step only. State is an opaque blob for the
// widget's drawable or behavior; the core never looks inside it.
type Node struct {
	Name   string
	Bounds Bounds
	State  any

	id       ID
	parent   ID
	children []ID
}

// NewNode returns a node with the given debug name.
func NewNode(name string) *Node {
	return &Node{Name: name}
}

// ID returns the node's id, or the zero ID if it is not in a graph.
func (n *Node) ID() ID { return n.id }

// Parent returns the parent id, or the zero ID for the root.
func (n *Node) Parent() ID { return n.parent }

// Children returns a copy of the child ids in insertion order.
func (n *Node) Children() []ID {
	return append([]ID(nil), n.children...)
}

func (n *Node) String() string {
	if n.Name == "" {
		return n.id.String()
	}
	return n.Name + "#" + n.id.String()
}

type slot struct {
	node       *Node
	generation uint32
}

// Graph is a single-rooted tree of widgets.
//
// Children keep their insertion order. That order is the z-order: drawing
// visits earlier children first so later ones land on top, and hit testing
// visits later children first.
//
// Graph is not safe for concurrent use; the UI owns it on one goroutine.
type Graph struct {
	slots []slot
	free  []uint32
	root  ID
	count int
	dirty DirtySet
}

// NewGraph returns an empty graph.
func NewGraph() *Graph {
	return &Graph{}
}

// Add inserts node as the last child of parent and returns its new id.
// A zero parent makes node the root.
//
// Add fails with KindRootExists when a root is already present and parent is
// zero, with KindUnknownWidget when parent is not in the graph, and with
// KindDuplicateWidget when node is already in the graph.
func (g *Graph) Add(parent ID, node *Node) (ID, error) {
	const op = "widget.Graph.Add"
	if node == nil {
		node = &Node{}
	}
	if g.Find(node.id) == node {
		return ID{}, lerrors.New(op, lerrors.KindDuplicateWidget).ForWidget(node)
	}

	var p *Node
	if !parent.IsValid() {
		if g.root.IsValid() {
			return ID{}, lerrors.New(op, lerrors.KindRootExists).ForWidget(g.root)
		}
	} else if p = g.Find(parent); p == nil {
		return ID{}, lerrors.New(op, lerrors.KindUnknownWidget).ForWidget(parent)
	}

	id := g.alloc(node)
	node.id = id
	node.parent = parent
	node.children = nil
	if p != nil {
		p.children = append(p.children, id)
		g.dirty.Mark(parent)
	} else {
		g.root = id
	}
	g.count++
	g.dirty.Mark(id)
	return id, nil
}

func (g *Graph) alloc(node *Node) ID {
	if n := len(g.free); n > 0 {
		idx := g.free[n-1]
		g.free = g.free[:n-1]
		s := &g.slots[idx]
		s.node = node
		return ID{index: idx, generation: s.generation}
	}
	g.slots = append(g.slots, slot{node: node, generation: 1})
	return ID{index: uint32(len(g.slots) - 1), generation: 1}
}

// Remove deletes id and its whole subtree and marks the parent dirty.
// It returns false if id is not in the graph.
func (g *Graph) Remove(id ID) bool {
	n := g.Find(id)
	if n == nil {
		return false
	}

	if p := g.Find(n.parent); p != nil {
		p.children = removeID(p.children, id)
		g.dirty.Mark(p.id)
	} else {
		g.root = ID{}
	}

	for _, gone := range g.Subtree(id) {
		g.release(gone)
	}
	return true
}

func (g *Graph) release(id ID) {
	s := &g.slots[id.index]
	n := s.node
	n.id = ID{}
	n.parent = ID{}
	n.children = nil
	s.node = nil
	s.generation++
	g.count--
	g.dirty.forget(id)
	// A wrapped generation would hand out the zero ID; retire the slot instead.
	if s.generation != 0 {
		g.free = append(g.free, id.index)
	}
}

func removeID(ids []ID, id ID) []ID {
	for i, c := range ids {
		if c == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}

// Find returns the node for id, or nil if id is not in the graph.
func (g *Graph) Find(id ID) *Node {
	if !id.IsValid() || int(id.index) >= len(g.slots) {
		return nil
	}
	s := g.slots[id.index]
	if s.generation != id.generation {
		return nil
	}
	return s.node
}

// Contains reports whether id is in the graph.
func (g *Graph) Contains(id ID) bool { return g.Find(id) != nil }

// Root returns the root id, or the zero ID if the graph is empty.
func (g *Graph) Root() ID { return g.root }

// Len returns the number of widgets in the graph.
func (g *Graph) Len() int { return g.count }

// Parent returns the parent of id. ok is false if id is not in the graph or
// is the root.
func (g *Graph) Parent(id ID) (parent ID, ok bool) {
	n := g.Find(id)
	if n == nil || !n.parent.IsValid() {
		return ID{}, false
	}
	return n.parent, true
}

// Children returns a copy of id's children in insertion order, or nil if id
// is not in the graph.
func (g *Graph) Children(id ID) []ID {
	n := g.Find(id)
	if n == nil {
		return nil
	}
	return n.Children()
}

// Index returns the position of id among its siblings, or -1 if id is not
// in the graph or is the root.
func (g *Graph) Index(id ID) int {
	p, ok := g.Parent(id)
	if !ok {
		return -1
	}
	for i, c := range g.Find(p).children {
		if c == id {
			return i
		}
	}
	return -1
}

// IDs returns every widget id in pre-order from the root.
func (g *Graph) IDs() []ID {
	ids := make([]ID, 0, g.count)
	g.Walk(g.root, func(id ID) bool {
		ids = append(ids, id)
		return true
	})
	return ids
}

// Subtree returns id and all of its descendants in post-order, children
// before their parent. It returns nil if id is not in the graph.
func (g *Graph) Subtree(id ID) []ID {
	if !g.Contains(id) {
		return nil
	}
	var out []ID
	var visit func(ID)
	visit = func(cur ID) {
		for _, c := range g.Find(cur).children {
			visit(c)
		}
		out = append(out, cur)
	}
	visit(id)
	return out
}

// Walk visits id and its descendants in pre-order, parents before children and
// children in insertion order. Returning false from fn stops the walk.
//
// The walk reads the live graph one node at a time: fn may add or remove
// widgets, and a descendant removed before its turn is skipped. Children of a
// node are read after fn returns for that node.
func (g *Graph) Walk(id ID, fn func(id ID) bool) {
	if !g.Contains(id) {
		return
	}
	stack := []ID{id}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !g.Contains(cur) {
			continue
		}
		if !fn(cur) {
			return
		}
		n := g.Find(cur)
		if n == nil {
			continue
		}
		for i := len(n.children) - 1; i >= 0; i-- {
			stack = append(stack, n.children[i])
		}
	}
}

// FindFunc returns the first node in pre-order for which pred is true.
func (g *Graph) FindFunc(pred func(n *Node) bool) *Node {
	var found *Node
	g.Walk(g.root, func(id ID) bool {
		if n := g.Find(id); pred(n) {
			found = n
			return false
		}
		return true
	})
	return found
}

// FindByState finds a widget whose State equals state.
func (g *Graph) FindByState(state any) *Node {
	return g.FindFunc(func(n *Node) bool {
		return n.State == state
	})
}

// DrawOrder visits every widget back-to-front: a parent before its children,
// and earlier children before later ones.
func (g *Graph) DrawOrder(fn func(n *Node)) {
	g.Walk(g.root, func(id ID) bool {
		fn(g.Find(id))
		return true
	})
}

// HitTest returns the deepest widget containing (x, y).
//
// Starting at the root, children are tested front-to-back (last child
// first) and the search descends into the first child that contains the
// point. ok is false if the point lies outside the root.
func (g *Graph) HitTest(x, y float32) (id ID, ok bool) {
	n := g.Find(g.root)
	if n == nil || !n.Bounds.Contains(x, y) {
		return ID{}, false
	}
	for {
		next := (*Node)(nil)
		for i := len(n.children) - 1; i >= 0; i-- {
			c := g.Find(n.children[i])
			if c != nil && c.Bounds.Contains(x, y) {
				next = c
				break
			}
		}
		if next == nil {
			return n.id, true
		}
		n = next
	}
}

// Ancestors calls fn for id and then each of its ancestors up to the root,
// stopping early if fn returns false. Each step resolves the parent from the
// live graph, so removing an ancestor from fn ends the chain.
func (g *Graph) Ancestors(id ID, fn func(id ID) bool) {
	for cur := id; g.Contains(cur); {
		if !fn(cur) {
			return
		}
		n := g.Find(cur)
		if n == nil {
			return
		}
		cur = n.parent
	}
}

// Dirty returns the set of widgets waiting to be redrawn.
func (g *Graph) Dirty() *DirtySet { return &g.dirty }

// MarkDirty marks id for redraw if it is in the graph.
func (g *Graph) MarkDirty(id ID) {
	if g.Contains(id) {
		g.dirty.Mark(id)
	}
}
