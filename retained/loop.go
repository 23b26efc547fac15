package retained

import (
	"github.com/agiangrant/lattice/layout"
	"github.com/agiangrant/lattice/widget"
)

// ============================================================================
// Input
// ============================================================================
//
// Each input method queues one raw event and runs Update, so every physical
// input gets its own dispatch budget. Called from inside a handler they only
// queue; the running Update processes the event.

// PointerMoved reports the pointer at (x, y) in window coordinates.
func (u *UI) PointerMoved(x, y float32) error {
	u.Push(UIAddress(), PointerInputEvent{kind: inputMove, X: x, Y: y})
	return u.Update()
}

// MouseButton reports a button press or release at the last pointer
// position.
func (u *UI) MouseButton(state ButtonState, button MouseButton) error {
	x, y, _ := u.mouse.Position()
	u.Push(UIAddress(), PointerInputEvent{kind: inputButton, State: state, Button: button, X: x, Y: y})
	return u.Update()
}

// MouseWheel reports a scroll at the last pointer position.
func (u *UI) MouseWheel(dx, dy float32) error {
	x, y, _ := u.mouse.Position()
	u.Push(UIAddress(), PointerInputEvent{kind: inputWheel, DeltaX: dx, DeltaY: dy, X: x, Y: y})
	return u.Update()
}

// WindowResized reports a new window size. The root's right and bottom
// edges are suggested to match.
func (u *UI) WindowResized(width, height float32) error {
	u.Push(UIAddress(), WindowResizedEvent{Width: width, Height: height})
	return u.Update()
}

func (u *UI) resize(width, height float32) {
	root := u.graph.Root()
	if !root.IsValid() {
		return
	}
	if err := u.solver.SuggestValue(root, layout.Right, float64(width)); err != nil {
		u.report(err)
	}
	if err := u.solver.SuggestValue(root, layout.Bottom, float64(height)); err != nil {
		u.report(err)
	}
}

// ============================================================================
// Update Loop
// ============================================================================

// Update dispatches queued events until the UI settles: whenever the queue
// runs dry the solver is asked for changes, and a non-empty change list is
// queued as LayoutChanged and dispatched in turn. Applying it updates
// widget bounds, sends LayoutUpdated to each moved widget and re-evaluates
// what is under the pointer.
//
// If the dispatch limit is hit the remaining events are dropped and a
// DispatchLoopExceeded error is returned.
func (u *UI) Update() error {
	return u.dispatcher.Drain(u.settle)
}

// settle queues a LayoutChanged if the solver has anything new.
func (u *UI) settle() bool {
	changes := u.solver.FetchChanges()
	if len(changes) == 0 {
		return false
	}
	u.Push(UIAddress(), LayoutChangedEvent{Changes: changes})
	return true
}

// applyLayout copies solved bounds onto the nodes. A widget whose bounds
// moved is marked dirty along with its parent.
func (u *UI) applyLayout(_ *Context, ev LayoutChangedEvent) {
	for _, id := range ev.Changes.Widgets() {
		n := u.graph.Find(id)
		if n == nil {
			continue
		}
		b, ok := u.solver.Bounds(id)
		if !ok || b == n.Bounds {
			continue
		}
		n.Bounds = b
		u.graph.MarkDirty(id)
		if p, ok := u.graph.Parent(id); ok {
			u.graph.MarkDirty(p)
		}
		u.Push(Single(id), LayoutUpdatedEvent{Bounds: b})
	}
}

// ============================================================================
// Rendering
// ============================================================================

// DrainDirty returns the widgets marked for redraw since the last call, in
// id order, and clears the set. Call it after Update.
func (u *UI) DrainDirty() []widget.ID {
	return u.graph.Dirty().Drain()
}

// DrawOrder visits every widget back-to-front: parents before children,
// earlier siblings before later ones.
func (u *UI) DrawOrder(fn func(n *widget.Node)) {
	u.graph.DrawOrder(fn)
}

// Walk visits id's subtree in pre-order until fn returns false.
func (u *UI) Walk(id widget.ID, fn func(id widget.ID) bool) {
	u.graph.Walk(id, fn)
}
