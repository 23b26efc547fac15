package retained

import (
	"github.com/agiangrant/lattice/cassowary"
	"github.com/agiangrant/lattice/layout"
	"github.com/agiangrant/lattice/widget"
)

// Builder helpers for common widget patterns.
// These describe a subtree that Mount adds to a UI in one go:
//
//	ui.Mount(root, retained.VStack("list", 4,
//		retained.Widget("header").WithHeight(40),
//		retained.Widget("body").WithHeight(200),
//	).FillParent(8))

// Builder describes one widget and its children.
type Builder struct {
	name     string
	state    any
	policy   func() layout.Policy
	rules    []func(v, parent *layout.Vars) []*cassowary.Constraint
	handlers []func(u *UI, id widget.ID) error
	children []*Builder
}

// Widget describes a plain widget with no container policy.
func Widget(name string, children ...*Builder) *Builder {
	return &Builder{name: name, children: children}
}

// VStack describes a container laying its children out top-to-bottom.
func VStack(name string, padding float64, children ...*Builder) *Builder {
	b := Widget(name, children...)
	b.policy = func() layout.Policy { return layout.VBox(padding) }
	return b
}

// HStack describes a container laying its children out left-to-right.
func HStack(name string, padding float64, children ...*Builder) *Builder {
	b := Widget(name, children...)
	b.policy = func() layout.Policy { return layout.HBox(padding) }
	return b
}

// Grid describes a container placing its children in rows of columns.
func Grid(name string, columns int, children ...*Builder) *Builder {
	b := Widget(name, children...)
	b.policy = func() layout.Policy { return layout.NewGrid(columns) }
	return b
}

// Frame describes a container stretching each child over itself, inset by
// padding.
func Frame(name string, padding float64, children ...*Builder) *Builder {
	b := Widget(name, children...)
	b.policy = func() layout.Policy { return layout.NewFrame(padding) }
	return b
}

// With adds constraints built from the widget's variables and its parent's.
// parent is nil for the root.
func (b *Builder) With(fn func(v, parent *layout.Vars) []*cassowary.Constraint) *Builder {
	b.rules = append(b.rules, fn)
	return b
}

// WithChildren appends children.
func (b *Builder) WithChildren(children ...*Builder) *Builder {
	b.children = append(b.children, children...)
	return b
}

// WithState attaches application data to the node.
func (b *Builder) WithState(state any) *Builder {
	b.state = state
	return b
}

// WithFrame fixes position and size.
func (b *Builder) WithFrame(x, y, width, height float64) *Builder {
	return b.With(func(v, _ *layout.Vars) []*cassowary.Constraint {
		return layout.Collect(layout.TopLeft(v, x, y), layout.Size(v, width, height))
	})
}

// WithSize fixes width and height.
func (b *Builder) WithSize(width, height float64) *Builder {
	return b.With(func(v, _ *layout.Vars) []*cassowary.Constraint {
		return layout.Size(v, width, height).Build()
	})
}

// WithWidth fixes the width.
func (b *Builder) WithWidth(width float64) *Builder {
	return b.With(func(v, _ *layout.Vars) []*cassowary.Constraint {
		return layout.FixedWidth(v, width).Build()
	})
}

// WithHeight fixes the height.
func (b *Builder) WithHeight(height float64) *Builder {
	return b.With(func(v, _ *layout.Vars) []*cassowary.Constraint {
		return layout.FixedHeight(v, height).Build()
	})
}

// FillParent makes the widget cover its parent, inset by padding.
func (b *Builder) FillParent(padding float64) *Builder {
	return b.With(func(v, parent *layout.Vars) []*cassowary.Constraint {
		if parent == nil {
			return nil
		}
		return layout.MatchLayout(v, parent).Padding(padding).Build()
	})
}

// Bind registers fn for events of type E once the widget is mounted.
func Bind[E Event](b *Builder, fn func(ctx *Context, ev E)) *Builder {
	b.handlers = append(b.handlers, func(u *UI, id widget.ID) error {
		return Handle(u, id, fn)
	})
	return b
}

// Mount adds the subtree described by b under parent (zero for the root)
// and returns the id of its top widget. On error, whatever was already
// added is removed again.
func (u *UI) Mount(parent widget.ID, b *Builder) (widget.ID, error) {
	var mounted []widget.ID
	id, err := u.mount(parent, b, &mounted)
	if err != nil {
		if len(mounted) > 0 && u.graph.Contains(mounted[0]) {
			_ = u.RemoveWidget(mounted[0])
		}
		return widget.ID{}, err
	}
	return id, nil
}

func (u *UI) mount(parent widget.ID, b *Builder, mounted *[]widget.ID) (widget.ID, error) {
	parentVars := u.solver.Vars(parent)
	node := widget.NewNode(b.name)
	node.State = b.state

	id, err := u.AddWidget(parent, node, func(v *layout.Vars) []*cassowary.Constraint {
		var cs []*cassowary.Constraint
		for _, r := range b.rules {
			cs = append(cs, r(v, parentVars)...)
		}
		return cs
	})
	if err != nil {
		return widget.ID{}, err
	}
	*mounted = append(*mounted, id)

	if b.policy != nil {
		if err := u.SetContainerPolicy(id, b.policy()); err != nil {
			return widget.ID{}, err
		}
	}
	for _, h := range b.handlers {
		if err := h(u, id); err != nil {
			return widget.ID{}, err
		}
	}
	for _, c := range b.children {
		if _, err := u.mount(id, c, mounted); err != nil {
			return widget.ID{}, err
		}
	}
	return id, nil
}
