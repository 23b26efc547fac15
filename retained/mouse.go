package retained

import (
	"github.com/agiangrant/lattice/widget"
)

// ============================================================================
// Mouse Router
// ============================================================================

// MouseRouter tracks the pointer and the widget under it. It turns raw
// pointer input into hover transitions, button and wheel events for the
// widget under the pointer, global broadcasts and synthesized clicks.
type MouseRouter struct {
	ui *UI

	x, y   float32
	hasPos bool

	under widget.ID // Deepest widget under the pointer, zero if none

	// For click detection
	pressed       widget.ID
	pressedButton MouseButton

	hoverSingle bool
	anyButton   bool
}

func newMouseRouter(ui *UI, cfg Config) *MouseRouter {
	return &MouseRouter{
		ui:          ui,
		hoverSingle: cfg.HoverAddress == HoverSingle,
		anyButton:   cfg.ClickButton == ClickAny,
	}
}

// install registers the router's UI-level handlers.
func (m *MouseRouter) install() {
	HandleUI(m.ui, m.onInput)
	HandleUI(m.ui, func(_ *Context, _ LayoutChangedEvent) { m.rehit() })
}

// Under returns the widget under the pointer, or the zero ID.
func (m *MouseRouter) Under() widget.ID { return m.under }

// Position returns the last known pointer position.
func (m *MouseRouter) Position() (x, y float32, ok bool) { return m.x, m.y, m.hasPos }

func (m *MouseRouter) onInput(_ *Context, in PointerInputEvent) {
	root := m.ui.graph.Root()
	switch in.kind {
	case inputMove:
		m.x, m.y, m.hasPos = in.X, in.Y, true
		m.ui.Push(Subtree(root), GlobalMouseMoveEvent{X: in.X, Y: in.Y})
		m.rehit()

	case inputButton:
		if !m.hasPos {
			m.x, m.y, m.hasPos = in.X, in.Y, true
			m.rehit()
		}
		m.ui.Push(Subtree(root), GlobalMouseButtonEvent{State: in.State, Button: in.Button, X: m.x, Y: m.y})
		m.button(in.State, in.Button)

	case inputWheel:
		m.ui.Push(Subtree(root), GlobalMouseWheelEvent{DeltaX: in.DeltaX, DeltaY: in.DeltaY, X: m.x, Y: m.y})
		if m.under.IsValid() {
			m.ui.Push(BubbleUp(m.under), MouseWheelEvent{DeltaX: in.DeltaX, DeltaY: in.DeltaY, X: m.x, Y: m.y})
		}
	}
}

func (m *MouseRouter) button(state ButtonState, btn MouseButton) {
	if m.under.IsValid() {
		m.ui.Push(BubbleUp(m.under), MouseButtonEvent{State: state, Button: btn, X: m.x, Y: m.y})
	}

	switch state {
	case ButtonPressed:
		m.pressed = m.under
		m.pressedButton = btn
	case ButtonReleased:
		if m.pressed.IsValid() && m.pressed == m.under && btn == m.pressedButton && m.clicks(btn) {
			m.ui.Push(BubbleUp(m.under), ClickEvent{Button: btn, X: m.x, Y: m.y})
		}
		m.pressed = widget.ID{}
		m.pressedButton = MouseButtonNone
	}
}

func (m *MouseRouter) clicks(btn MouseButton) bool {
	return m.anyButton || btn == MouseButtonLeft
}

// rehit hit-tests the last known position and emits hover transitions if
// the widget under the pointer changed.
func (m *MouseRouter) rehit() {
	if !m.hasPos {
		return
	}
	next, _ := m.ui.graph.HitTest(m.x, m.y)
	if next == m.under {
		return
	}
	prev := m.under
	m.under = next
	if prev.IsValid() && m.ui.graph.Contains(prev) {
		m.ui.Push(m.hoverAddress(prev), HoverEvent{Phase: HoverOut, X: m.x, Y: m.y})
	}
	if next.IsValid() {
		m.ui.Push(m.hoverAddress(next), HoverEvent{Phase: HoverOver, X: m.x, Y: m.y})
	}
}

func (m *MouseRouter) hoverAddress(id widget.ID) Address {
	if m.hoverSingle {
		return Single(id)
	}
	return BubbleUp(id)
}

// forget drops references to removed widgets. If the widget under the
// pointer went away, hit testing is redone so whatever is now exposed gets
// its Over.
func (m *MouseRouter) forget(removed []widget.ID) {
	lost := false
	for _, id := range removed {
		if id == m.pressed {
			m.pressed = widget.ID{}
			m.pressedButton = MouseButtonNone
		}
		if id == m.under {
			m.under = widget.ID{}
			lost = true
		}
	}
	if lost {
		m.rehit()
	}
}
