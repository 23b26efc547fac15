package retained

import (
	"log/slog"

	lerrors "github.com/agiangrant/lattice/errors"
	"github.com/agiangrant/lattice/widget"
)

// ============================================================================
// Event Dispatcher
// ============================================================================

// Dispatcher drains the event queue, resolving each address against the
// live widget graph at the moment the event is processed.
type Dispatcher struct {
	ui       *UI
	queue    Queue
	handlers registry
	limit    int
	draining bool
	logger   *slog.Logger
}

func newDispatcher(ui *UI, limit int, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		ui:       ui,
		handlers: newRegistry(),
		limit:    limit,
		logger:   logger,
	}
}

// Push queues ev for addr.
func (d *Dispatcher) Push(addr Address, ev Event) {
	d.queue.Push(addr, ev)
}

// Pending returns the number of queued events.
func (d *Dispatcher) Pending() int { return d.queue.Len() }

// Draining reports whether a drain is in progress.
func (d *Dispatcher) Draining() bool { return d.draining }

// Drain dispatches queued events in arrival order until the queue is empty.
// When it empties, settle is called; if settle queued more work the drain
// continues. At most limit events are processed per call: past that the
// rest of the queue is dropped and a DispatchLoopExceeded error is reported
// and returned.
//
// A Drain started from inside a handler returns immediately; the outer
// Drain picks up whatever was queued.
func (d *Dispatcher) Drain(settle func() bool) error {
	if d.draining {
		return nil
	}
	d.draining = true
	defer func() { d.draining = false }()

	processed := 0
	for {
		addr, ev, ok := d.queue.Pop()
		if !ok {
			if settle != nil && settle() {
				continue
			}
			return nil
		}
		processed++
		if processed > d.limit {
			dropped := d.queue.Len() + 1
			d.queue.Clear()
			err := lerrors.Newf("retained.Dispatcher.Drain", lerrors.KindDispatchLoopExceeded,
				"processed %d events, dropped %d (last %s to %s)", d.limit, dropped, ev.Type(), addr)
			d.logger.Warn("dispatch limit exceeded", "limit", d.limit, "dropped", dropped,
				"event", ev.Type().String(), "address", addr.String())
			lerrors.Report(err)
			return err
		}
		d.dispatch(addr, ev)
	}
}

// dispatch delivers one event to the handlers its address resolves to.
// Addresses that no longer resolve are silently skipped.
func (d *Dispatcher) dispatch(addr Address, ev Event) {
	g := d.ui.graph
	ctx := &Context{ui: d.ui, addr: addr}

	switch addr.Kind {
	case AddrUI:
		d.call(ctx, d.handlers.ui[ev.Type()], ev)

	case AddrSingle:
		if g.Contains(addr.Widget) {
			d.deliver(ctx, addr.Widget, ev)
		}

	case AddrUnderCursor:
		if id := d.ui.mouse.Under(); g.Contains(id) {
			d.deliver(ctx, id, ev)
		}

	case AddrSubtree:
		g.Walk(addr.Widget, func(id widget.ID) bool {
			d.deliver(ctx, id, ev)
			return true
		})

	case AddrBubbleUp:
		g.Ancestors(addr.Widget, func(id widget.ID) bool {
			d.deliver(ctx, id, ev)
			return !ctx.consumed
		})
	}
}

// deliver runs id's handlers for ev.
func (d *Dispatcher) deliver(ctx *Context, id widget.ID, ev Event) {
	ctx.target = id
	d.call(ctx, d.handlers.lookup(id, ev.Type()), ev)
}

// call runs a snapshot of list. If the target is removed partway through,
// its remaining handlers are skipped.
func (d *Dispatcher) call(ctx *Context, list []Handler, ev Event) {
	if len(list) == 0 {
		return
	}
	hs := acquireHandlerSlice(len(list))
	copy(hs, list)
	defer releaseHandlerSlice(hs)

	for _, h := range hs {
		if ctx.target.IsValid() && !d.ui.graph.Contains(ctx.target) {
			return
		}
		h.HandleEvent(ctx, ev)
	}
}
