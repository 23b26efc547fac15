package retained

import (
	"github.com/agiangrant/lattice/widget"
)

// ============================================================================
// Handlers
// ============================================================================

// Handler receives events dispatched to a widget or to the UI.
type Handler interface {
	HandleEvent(ctx *Context, ev Event)
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(ctx *Context, ev Event)

func (f HandlerFunc) HandleEvent(ctx *Context, ev Event) { f(ctx, ev) }

// typed wraps fn so it only sees events of type E.
func typed[E Event](fn func(ctx *Context, ev E)) (EventType, Handler) {
	var zero E
	return zero.Type(), HandlerFunc(func(ctx *Context, ev Event) {
		if e, ok := ev.(E); ok {
			fn(ctx, e)
		}
	})
}

// Handle registers fn on widget id for events of type E:
//
//	retained.Handle(ui, button, func(ctx *retained.Context, ev retained.ClickEvent) {
//		ctx.Consume()
//	})
func Handle[E Event](u *UI, id widget.ID, fn func(ctx *Context, ev E)) error {
	t, h := typed(fn)
	return u.On(id, t, h)
}

// HandleUI registers fn as a UI-level handler for events of type E.
func HandleUI[E Event](u *UI, fn func(ctx *Context, ev E)) {
	t, h := typed(fn)
	u.OnUI(t, h)
}

// registry holds handlers per widget and per event type, in registration
// order.
type registry struct {
	widgets map[widget.ID]map[EventType][]Handler
	ui      map[EventType][]Handler
}

func newRegistry() registry {
	return registry{
		widgets: make(map[widget.ID]map[EventType][]Handler),
		ui:      make(map[EventType][]Handler),
	}
}

func (r *registry) add(id widget.ID, t EventType, h Handler) {
	byType := r.widgets[id]
	if byType == nil {
		byType = make(map[EventType][]Handler)
		r.widgets[id] = byType
	}
	byType[t] = append(byType[t], h)
}

func (r *registry) addUI(t EventType, h Handler) {
	r.ui[t] = append(r.ui[t], h)
}

func (r *registry) lookup(id widget.ID, t EventType) []Handler {
	return r.widgets[id][t]
}

// purge drops every handler registered on id.
func (r *registry) purge(id widget.ID) {
	delete(r.widgets, id)
}

func (r *registry) count(id widget.ID) int {
	n := 0
	for _, hs := range r.widgets[id] {
		n += len(hs)
	}
	return n
}

// ============================================================================
// Context
// ============================================================================

// Context is passed to a handler for one delivery of an event.
type Context struct {
	ui       *UI
	addr     Address
	target   widget.ID
	consumed bool
}

// UI returns the UI dispatching the event.
func (c *Context) UI() *UI { return c.ui }

// Widget returns the widget receiving the event. It is the zero ID for
// UI-level handlers.
func (c *Context) Widget() widget.ID { return c.target }

// Node returns the receiving widget's node, or nil for UI-level handlers.
func (c *Context) Node() *widget.Node { return c.ui.graph.Find(c.target) }

// Address returns the address the event was pushed with.
func (c *Context) Address() Address { return c.addr }

// Push queues another event. It is dispatched after everything already
// queued.
func (c *Context) Push(addr Address, ev Event) { c.ui.Push(addr, ev) }

// Consume stops a bubbling event from reaching further ancestors. Other
// handlers on the current widget still run.
func (c *Context) Consume() { c.consumed = true }

// Consumed reports whether a handler consumed the event.
func (c *Context) Consumed() bool { return c.consumed }

// MarkDirty flags the receiving widget for redraw, or the root for
// UI-level handlers.
func (c *Context) MarkDirty() {
	if c.target.IsValid() {
		c.ui.graph.MarkDirty(c.target)
		return
	}
	c.ui.graph.MarkDirty(c.ui.graph.Root())
}
