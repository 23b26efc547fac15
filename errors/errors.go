// Package errors defines the error taxonomy shared by the layout solver, the
// widget graph and the event dispatcher.
//
// Every failure is an *Error carrying the operation that failed and a Kind.
// Callers match on kind with the standard library:
//
//	if errors.Is(err, lerrors.ErrDuplicateWidget) { ... }
package errors

import (
	"fmt"
	"time"
)

// Kind identifies the category of an error.
type Kind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown Kind = iota
	// KindDuplicateWidget indicates a widget id was registered twice.
	KindDuplicateWidget
	// KindUnknownWidget indicates a lookup against a removed or never-existing id.
	KindUnknownWidget
	// KindUnknownEditVariable indicates a suggestion for an undeclared edit variable.
	KindUnknownEditVariable
	// KindUnsatisfiableConstraints indicates conflicting required constraints.
	KindUnsatisfiableConstraints
	// KindDispatchLoopExceeded indicates the per-trigger event bound was hit.
	KindDispatchLoopExceeded
	// KindDuplicateConstraint indicates a constraint was added twice.
	KindDuplicateConstraint
	// KindUnknownConstraint indicates removal of a constraint that was never added.
	KindUnknownConstraint
	// KindDuplicateEditVariable indicates an edit variable was declared twice.
	KindDuplicateEditVariable
	// KindBadRequiredStrength indicates an edit variable declared at required strength.
	KindBadRequiredStrength
	// KindInternalSolver indicates the simplex tableau reached an invalid state.
	KindInternalSolver
	// KindRootExists indicates a second parentless widget was added to the graph.
	KindRootExists
)

func (k Kind) String() string {
	switch k {
	case KindDuplicateWidget:
		return "duplicate widget"
	case KindUnknownWidget:
		return "unknown widget"
	case KindUnknownEditVariable:
		return "unknown edit variable"
	case KindUnsatisfiableConstraints:
		return "unsatisfiable constraints"
	case KindDispatchLoopExceeded:
		return "dispatch loop exceeded"
	case KindDuplicateConstraint:
		return "duplicate constraint"
	case KindUnknownConstraint:
		return "unknown constraint"
	case KindDuplicateEditVariable:
		return "duplicate edit variable"
	case KindBadRequiredStrength:
		return "bad required strength"
	case KindInternalSolver:
		return "internal solver error"
	case KindRootExists:
		return "root exists"
	default:
		return "unknown"
	}
}

// Error is a structured error raised by the layout core.
type Error struct {
	// Op is the operation that failed (e.g., "layout.Solver.AddWidget").
	Op string
	// Kind categorizes the error.
	Kind Kind
	// Widget names the widget involved, if any.
	Widget string
	// Err is the underlying error, if any.
	Err error
	// Timestamp is set by Report when the error is handed to a Handler.
	Timestamp time.Time
}

func (e *Error) Error() string {
	msg := e.Kind.String()
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Widget != "" {
		msg += " (widget " + e.Widget + ")"
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error of the same Kind.
// Only the kind is compared, so the sentinels below match any error of that kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// Sentinels for errors.Is matching.
var (
	ErrDuplicateWidget          = &Error{Kind: KindDuplicateWidget}
	ErrUnknownWidget            = &Error{Kind: KindUnknownWidget}
	ErrUnknownEditVariable      = &Error{Kind: KindUnknownEditVariable}
	ErrUnsatisfiableConstraints = &Error{Kind: KindUnsatisfiableConstraints}
	ErrDispatchLoopExceeded     = &Error{Kind: KindDispatchLoopExceeded}
	ErrDuplicateConstraint      = &Error{Kind: KindDuplicateConstraint}
	ErrUnknownConstraint        = &Error{Kind: KindUnknownConstraint}
	ErrDuplicateEditVariable    = &Error{Kind: KindDuplicateEditVariable}
	ErrBadRequiredStrength      = &Error{Kind: KindBadRequiredStrength}
	ErrInternalSolver           = &Error{Kind: KindInternalSolver}
	ErrRootExists               = &Error{Kind: KindRootExists}
)

// New returns an *Error for op and kind.
func New(op string, kind Kind) *Error {
	return &Error{Op: op, Kind: kind}
}

// Newf returns an *Error for op and kind wrapping a formatted message.
func Newf(op string, kind Kind, format string, args ...any) *Error {
	return &Error{Op: op, Kind: kind, Err: fmt.Errorf(format, args...)}
}

// ForWidget returns a copy of e naming the given widget.
func (e *Error) ForWidget(widget fmt.Stringer) *Error {
	c := *e
	c.Widget = widget.String()
	return &c
}

// KindOf returns the Kind of err, or KindUnknown if err is not an *Error.
func KindOf(err error) Kind {
	for err != nil {
		if e, ok := err.(*Error); ok {
			return e.Kind
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return KindUnknown
		}
		err = u.Unwrap()
	}
	return KindUnknown
}
