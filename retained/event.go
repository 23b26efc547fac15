package retained

import (
	"fmt"

	"github.com/agiangrant/lattice/layout"
	"github.com/agiangrant/lattice/widget"
)

// ============================================================================
// Event Types
// ============================================================================

// EventType identifies the kind of event.
type EventType uint8

const (
	// Pointer events, addressed to widgets
	EventHover EventType = iota + 1
	EventMouseButton
	EventMouseWheel
	EventClick

	// Pointer events, broadcast to the whole tree
	EventGlobalMouseMove
	EventGlobalMouseButton
	EventGlobalMouseWheel

	// Layout and tree events
	EventLayoutChanged
	EventLayoutUpdated
	EventChildrenUpdated
	EventRedraw
	EventWindowResized

	// Raw input fed to the mouse router
	EventPointerInput
)

var eventTypeNames = [...]string{
	EventHover:             "hover",
	EventMouseButton:       "mouse-button",
	EventMouseWheel:        "mouse-wheel",
	EventClick:             "click",
	EventGlobalMouseMove:   "global-mouse-move",
	EventGlobalMouseButton: "global-mouse-button",
	EventGlobalMouseWheel:  "global-mouse-wheel",
	EventLayoutChanged:     "layout-changed",
	EventLayoutUpdated:     "layout-updated",
	EventChildrenUpdated:   "children-updated",
	EventRedraw:            "redraw",
	EventWindowResized:     "window-resized",
	EventPointerInput:      "pointer-input",
}

func (t EventType) String() string {
	if int(t) < len(eventTypeNames) && eventTypeNames[t] != "" {
		return eventTypeNames[t]
	}
	return fmt.Sprintf("EventType(%d)", uint8(t))
}

// MouseButton identifies which mouse button was pressed.
type MouseButton uint8

const (
	MouseButtonNone MouseButton = iota
	MouseButtonLeft
	MouseButtonRight
	MouseButtonMiddle
)

func (b MouseButton) String() string {
	switch b {
	case MouseButtonLeft:
		return "left"
	case MouseButtonRight:
		return "right"
	case MouseButtonMiddle:
		return "middle"
	}
	return "none"
}

// ButtonState is whether a button went down or up.
type ButtonState uint8

const (
	ButtonPressed ButtonState = iota
	ButtonReleased
)

func (s ButtonState) String() string {
	if s == ButtonReleased {
		return "released"
	}
	return "pressed"
}

// HoverPhase says whether the pointer entered or left a widget.
type HoverPhase uint8

const (
	HoverOver HoverPhase = iota
	HoverOut
)

func (p HoverPhase) String() string {
	if p == HoverOut {
		return "out"
	}
	return "over"
}

// ChildChange says whether a child was added to or removed from its parent.
type ChildChange uint8

const (
	ChildAdded ChildChange = iota
	ChildRemoved
)

// ============================================================================
// Event Interface
// ============================================================================

// Event is implemented by every event payload. Payloads are plain values;
// the set of types is closed and Type is defined on the value receiver, so a
// zero value reports its own type.
type Event interface {
	Type() EventType
}

// HoverEvent is sent when the pointer starts or stops being over a widget.
type HoverEvent struct {
	Phase HoverPhase
	X, Y  float32
}

// MouseButtonEvent is a press or release over a widget.
type MouseButtonEvent struct {
	State  ButtonState
	Button MouseButton
	X, Y   float32
}

// MouseWheelEvent is a scroll over a widget.
type MouseWheelEvent struct {
	DeltaX, DeltaY float32
	X, Y           float32
}

// ClickEvent is synthesized when a press and release land on the same widget.
type ClickEvent struct {
	Button MouseButton
	X, Y   float32
}

// GlobalMouseMoveEvent reports pointer motion to every widget.
type GlobalMouseMoveEvent struct {
	X, Y float32
}

// GlobalMouseButtonEvent reports a button change to every widget, whether
// or not the pointer is over it.
type GlobalMouseButtonEvent struct {
	State  ButtonState
	Button MouseButton
	X, Y   float32
}

// GlobalMouseWheelEvent reports a scroll to every widget.
type GlobalMouseWheelEvent struct {
	DeltaX, DeltaY float32
	X, Y           float32
}

// LayoutChangedEvent carries the solver's change list after a solve.
type LayoutChangedEvent struct {
	Changes layout.ChangeList
}

// LayoutUpdatedEvent tells a widget its bounds moved.
type LayoutUpdatedEvent struct {
	Bounds widget.Bounds
}

// ChildrenUpdatedEvent tells a parent a child came or went.
type ChildrenUpdatedEvent struct {
	Change ChildChange
	Child  widget.ID
}

// RedrawEvent asks for the whole tree to be drawn again.
type RedrawEvent struct{}

// WindowResizedEvent reports a new window size.
type WindowResizedEvent struct {
	Width, Height float32
}

type inputKind uint8

const (
	inputMove inputKind = iota
	inputButton
	inputWheel
)

// PointerInputEvent is raw pointer input from the host. The mouse router
// turns it into hover, button, wheel and click events.
type PointerInputEvent struct {
	kind           inputKind
	X, Y           float32
	State          ButtonState
	Button         MouseButton
	DeltaX, DeltaY float32
}

func (HoverEvent) Type() EventType             { return EventHover }
func (MouseButtonEvent) Type() EventType       { return EventMouseButton }
func (MouseWheelEvent) Type() EventType        { return EventMouseWheel }
func (ClickEvent) Type() EventType             { return EventClick }
func (GlobalMouseMoveEvent) Type() EventType   { return EventGlobalMouseMove }
func (GlobalMouseButtonEvent) Type() EventType { return EventGlobalMouseButton }
func (GlobalMouseWheelEvent) Type() EventType  { return EventGlobalMouseWheel }
func (LayoutChangedEvent) Type() EventType     { return EventLayoutChanged }
func (LayoutUpdatedEvent) Type() EventType     { return EventLayoutUpdated }
func (ChildrenUpdatedEvent) Type() EventType   { return EventChildrenUpdated }
func (RedrawEvent) Type() EventType            { return EventRedraw }
func (WindowResizedEvent) Type() EventType     { return EventWindowResized }
func (PointerInputEvent) Type() EventType      { return EventPointerInput }

// ============================================================================
// Addressing
// ============================================================================

// AddressKind selects how an address resolves to handlers.
type AddressKind uint8

const (
	// AddrUI targets handlers registered on the UI itself.
	AddrUI AddressKind = iota
	// AddrSingle targets one widget.
	AddrSingle
	// AddrSubtree targets a widget and all its descendants, pre-order.
	AddrSubtree
	// AddrBubbleUp targets a widget, then each ancestor until consumed.
	AddrBubbleUp
	// AddrUnderCursor targets whatever widget is under the pointer when the
	// event is dispatched.
	AddrUnderCursor
)

func (k AddressKind) String() string {
	switch k {
	case AddrSingle:
		return "single"
	case AddrSubtree:
		return "subtree"
	case AddrBubbleUp:
		return "bubble-up"
	case AddrUnderCursor:
		return "under-cursor"
	}
	return "ui"
}

// Address names the recipients of an event. It is resolved against the live
// graph when the event is dispatched, not when it is pushed.
type Address struct {
	Kind   AddressKind
	Widget widget.ID
}

func Single(id widget.ID) Address   { return Address{Kind: AddrSingle, Widget: id} }
func Subtree(id widget.ID) Address  { return Address{Kind: AddrSubtree, Widget: id} }
func BubbleUp(id widget.ID) Address { return Address{Kind: AddrBubbleUp, Widget: id} }
func UnderCursor() Address          { return Address{Kind: AddrUnderCursor} }
func UIAddress() Address            { return Address{Kind: AddrUI} }

func (a Address) String() string {
	switch a.Kind {
	case AddrUI, AddrUnderCursor:
		return a.Kind.String()
	}
	return a.Kind.String() + "(" + a.Widget.String() + ")"
}
