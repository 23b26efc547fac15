package retained

import (
	"errors"
	"log/slog"
	"os"

	"github.com/agiangrant/lattice/cassowary"
	lerrors "github.com/agiangrant/lattice/errors"
	"github.com/agiangrant/lattice/layout"
	"github.com/agiangrant/lattice/widget"
)

// ============================================================================
// UI
// ============================================================================

// UI owns the widget graph, the layout solver, the event dispatcher and the
// mouse router, and keeps them consistent as widgets come and go. It is
// single-threaded: every method must be called from the goroutine that
// drives it.
type UI struct {
	cfg    Config
	logger *slog.Logger

	graph      *widget.Graph
	solver     *layout.Solver
	policies   map[widget.ID]layout.Policy
	dispatcher *Dispatcher
	mouse      *MouseRouter

	windowStrength cassowary.Strength
}

// LayoutFunc returns the constraints a new widget starts with. It may refer
// to the variables of any widget already in the UI.
type LayoutFunc func(v *layout.Vars) []*cassowary.Constraint

// Option configures a UI.
type Option func(*UI)

// WithLogger sets the logger. By default the UI logs text to stderr at the
// configured level.
func WithLogger(l *slog.Logger) Option {
	return func(u *UI) { u.logger = l }
}

// New creates an empty UI.
func New(cfg Config, opts ...Option) (*UI, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	strength, _ := cfg.windowStrength()

	u := &UI{
		cfg:            cfg,
		graph:          widget.NewGraph(),
		policies:       make(map[widget.ID]layout.Policy),
		windowStrength: strength,
	}
	for _, opt := range opts {
		opt(u)
	}
	if u.logger == nil {
		level, _ := cfg.Level()
		u.logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	}

	u.solver = layout.NewSolver(u.logger)
	u.dispatcher = newDispatcher(u, cfg.DispatchLimit, u.logger)
	u.mouse = newMouseRouter(u, cfg)

	// Bounds are applied before the router re-hit-tests against them.
	HandleUI(u, u.applyLayout)
	u.mouse.install()
	HandleUI(u, func(_ *Context, ev WindowResizedEvent) { u.resize(ev.Width, ev.Height) })
	HandleUI(u, func(ctx *Context, _ RedrawEvent) { ctx.MarkDirty() })

	return u, nil
}

// Config returns the configuration the UI was built with.
func (u *UI) Config() Config { return u.cfg }

// Logger returns the UI's logger.
func (u *UI) Logger() *slog.Logger { return u.logger }

// Graph returns the widget graph for read access by renderers.
func (u *UI) Graph() *widget.Graph { return u.graph }

// Solver returns the layout solver.
func (u *UI) Solver() *layout.Solver { return u.solver }

// Mouse returns the mouse router.
func (u *UI) Mouse() *MouseRouter { return u.mouse }

// ============================================================================
// Construction
// ============================================================================

// AddWidget inserts node as the last child of parent and registers its
// layout variables with the constraints from fn (which may be nil). With a
// zero parent the node becomes the root: its top-left is pinned at (0, 0)
// and its right and bottom edges become edit variables driven by
// WindowResized.
//
// If parent has a container policy it arranges the new child. A
// ChildrenUpdated event is queued for the parent. On any error nothing is
// left behind.
func (u *UI) AddWidget(parent widget.ID, node *widget.Node, fn LayoutFunc) (widget.ID, error) {
	if node == nil {
		node = widget.NewNode("")
	}
	id, err := u.graph.Add(parent, node)
	if err != nil {
		return widget.ID{}, err
	}

	vars := layout.NewVars(id, node.Name)
	var cs []*cassowary.Constraint
	isRoot := !parent.IsValid()
	if isRoot {
		cs = layout.TopLeft(vars, 0, 0).Build()
	}
	if fn != nil {
		cs = append(cs, fn(vars)...)
	}
	if err := u.solver.AddWidget(id, vars, cs...); err != nil {
		u.graph.Remove(id)
		return widget.ID{}, err
	}

	if isRoot {
		for _, k := range []layout.VarKind{layout.Right, layout.Bottom} {
			if err := u.solver.AddEditVariable(id, k, u.windowStrength); err != nil {
				u.discard(id)
				return widget.ID{}, err
			}
		}
		u.logger.Debug("root added", "widget", id.String(), "name", node.Name)
		return id, nil
	}

	if pol := u.policies[parent]; pol != nil {
		parentVars := u.solver.Vars(parent)
		if err := u.solver.Apply(pol.ChildAdded(parentVars, id, vars, u.graph.Index(id))); err != nil {
			u.retract(pol.ChildRemoved(parentVars, id))
			u.discard(id)
			return widget.ID{}, err
		}
	}

	u.Push(Single(parent), ChildrenUpdatedEvent{Change: ChildAdded, Child: id})
	u.logger.Debug("widget added", "widget", id.String(), "name", node.Name, "parent", parent.String())
	return id, nil
}

// discard undoes a partially added widget.
func (u *UI) discard(id widget.ID) {
	if u.solver.Has(id) {
		_ = u.solver.RemoveWidget(id)
	}
	u.graph.Remove(id)
}

// retract applies a policy edit that undoes a failed or partly applied
// one, skipping constraints that never made it into the solver.
func (u *UI) retract(edit layout.Edit) {
	for _, c := range edit.Remove {
		if u.solver.HasConstraint(c) {
			_ = u.solver.RemoveConstraint(c)
		}
	}
	for _, c := range edit.Add {
		if err := u.solver.AddConstraint(c); err != nil {
			u.logger.Warn("failed to restore policy constraint", "constraint", c.String(), "error", err)
		}
	}
}

// RemoveWidget removes id and all its descendants. Their constraints, edit
// variables, handlers and container policies go with them, and each
// parent's policy re-arranges the remaining siblings. A ChildrenUpdated
// event is queued for id's parent.
//
// It is safe to call from a handler, including one dispatched to id or to
// a descendant of it; events still queued for removed widgets are dropped
// when they come up.
func (u *UI) RemoveWidget(id widget.ID) error {
	const op = "retained.UI.RemoveWidget"
	if !u.graph.Contains(id) {
		return lerrors.New(op, lerrors.KindUnknownWidget).ForWidget(id)
	}
	parent, _ := u.graph.Parent(id)

	// Post-order, so every widget leaves its parent's policy before the
	// parent itself goes.
	doomed := u.graph.Subtree(id)
	for _, d := range doomed {
		if p, ok := u.graph.Parent(d); ok {
			if pol := u.policies[p]; pol != nil {
				if err := u.solver.Apply(pol.ChildRemoved(u.solver.Vars(p), d)); err != nil {
					return err
				}
			}
		}
		if err := u.solver.RemoveWidget(d); err != nil {
			return err
		}
		if n := u.dispatcher.handlers.count(d); n > 0 {
			u.logger.Debug("dropping handlers", "widget", d.String(), "count", n)
		}
		u.dispatcher.handlers.purge(d)
		delete(u.policies, d)
	}

	u.graph.Remove(id)
	u.mouse.forget(doomed)

	if parent.IsValid() {
		u.Push(Single(parent), ChildrenUpdatedEvent{Change: ChildRemoved, Child: id})
	}
	u.logger.Debug("widget removed", "widget", id.String(), "subtree", len(doomed))
	return nil
}

// SetContainerPolicy makes p arrange id's children, replacing any previous
// policy. Existing children are handed to p in order. A nil p removes the
// policy. If p cannot arrange the children, the previous policy is put
// back and the error is returned.
func (u *UI) SetContainerPolicy(id widget.ID, p layout.Policy) error {
	const op = "retained.UI.SetContainerPolicy"
	if !u.graph.Contains(id) {
		return lerrors.New(op, lerrors.KindUnknownWidget).ForWidget(id)
	}
	vars := u.solver.Vars(id)
	children := u.graph.Children(id)

	old := u.policies[id]
	if old != nil {
		for i := len(children) - 1; i >= 0; i-- {
			if err := u.solver.Apply(old.ChildRemoved(vars, children[i])); err != nil {
				return err
			}
		}
		delete(u.policies, id)
	}
	if p == nil {
		return nil
	}

	if err := u.arrange(vars, p, children); err != nil {
		if old != nil {
			if rerr := u.arrange(vars, old, children); rerr != nil {
				u.logger.Warn("failed to restore container policy", "widget", id.String(), "error", rerr)
				return err
			}
			u.policies[id] = old
		}
		return err
	}
	u.policies[id] = p
	return nil
}

// arrange hands children to p in order. If one of them cannot be placed,
// every child p already took is handed back and the solver is left as it
// was.
func (u *UI) arrange(vars *layout.Vars, p layout.Policy, children []widget.ID) error {
	for i, c := range children {
		if err := u.solver.Apply(p.ChildAdded(vars, c, u.solver.Vars(c), i)); err != nil {
			for j := i; j >= 0; j-- {
				u.retract(p.ChildRemoved(vars, children[j]))
			}
			return err
		}
	}
	return nil
}

// ContainerPolicy returns id's container policy, or nil.
func (u *UI) ContainerPolicy(id widget.ID) layout.Policy { return u.policies[id] }

// ============================================================================
// Queries
// ============================================================================

// FindWidget returns the node for id, or nil if id is not in the UI.
func (u *UI) FindWidget(id widget.ID) *widget.Node { return u.graph.Find(id) }

// Root returns the root widget, or the zero ID.
func (u *UI) Root() widget.ID { return u.graph.Root() }

// Vars returns id's layout variables, or nil.
func (u *UI) Vars(id widget.ID) *layout.Vars { return u.solver.Vars(id) }

// Bounds returns the bounds last applied to id.
func (u *UI) Bounds(id widget.ID) (widget.Bounds, bool) {
	n := u.graph.Find(id)
	if n == nil {
		return widget.Bounds{}, false
	}
	return n.Bounds, true
}

// RootSize returns the root's applied width and height.
func (u *UI) RootSize() (width, height float32) {
	b, _ := u.Bounds(u.graph.Root())
	return b.Width, b.Height
}

// ============================================================================
// Constraints
// ============================================================================

// AddConstraints adds cs to the solver. Every variable must belong to a
// widget in the UI.
func (u *UI) AddConstraints(cs ...*cassowary.Constraint) error {
	return u.solver.AddConstraints(cs...)
}

// RemoveConstraints retracts cs.
func (u *UI) RemoveConstraints(cs ...*cassowary.Constraint) error {
	return u.solver.RemoveConstraints(cs...)
}

// AddEditVariable declares id's kind variable as suggestible at strength.
func (u *UI) AddEditVariable(id widget.ID, kind layout.VarKind, strength cassowary.Strength) error {
	return u.solver.AddEditVariable(id, kind, strength)
}

// RemoveEditVariable drops a declared edit variable.
func (u *UI) RemoveEditVariable(id widget.ID, kind layout.VarKind) error {
	return u.solver.RemoveEditVariable(id, kind)
}

// SuggestValue pulls an edit variable toward value. The change shows up on
// the next Update.
func (u *UI) SuggestValue(id widget.ID, kind layout.VarKind, value float64) error {
	return u.solver.SuggestValue(id, kind, value)
}

// ============================================================================
// Handlers
// ============================================================================

// On registers h on widget id for events of type t. Handlers run in
// registration order and are dropped when id is removed.
func (u *UI) On(id widget.ID, t EventType, h Handler) error {
	if !u.graph.Contains(id) {
		return lerrors.New("retained.UI.On", lerrors.KindUnknownWidget).ForWidget(id)
	}
	u.dispatcher.handlers.add(id, t, h)
	return nil
}

// OnUI registers h as a UI-level handler for events of type t.
func (u *UI) OnUI(t EventType, h Handler) {
	u.dispatcher.handlers.addUI(t, h)
}

// Push queues ev for addr. It is dispatched by the next Update, or by the
// running one when called from a handler.
func (u *UI) Push(addr Address, ev Event) {
	u.dispatcher.Push(addr, ev)
}

// Redraw asks for the whole tree to be drawn again.
func (u *UI) Redraw() {
	u.Push(UIAddress(), RedrawEvent{})
}

// report sends a recoverable error to the error handler.
func (u *UI) report(err error) {
	var le *lerrors.Error
	if errors.As(err, &le) {
		lerrors.Report(le)
		return
	}
	u.logger.Error("unexpected error", "error", err)
}
