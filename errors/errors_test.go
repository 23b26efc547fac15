package errors

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type name string

func (n name) String() string { return string(n) }

func TestErrorString(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "kind only",
			err:  &Error{Kind: KindUnknownWidget},
			want: "unknown widget",
		},
		{
			name: "with op",
			err:  New("layout.Solver.AddWidget", KindDuplicateWidget),
			want: "layout.Solver.AddWidget: duplicate widget",
		},
		{
			name: "with widget and cause",
			err: &Error{
				Op:     "retained.UI.RemoveWidget",
				Kind:   KindUnknownWidget,
				Widget: "3.1",
				Err:    fmt.Errorf("gone"),
			},
			want: "retained.UI.RemoveWidget: unknown widget (widget 3.1): gone",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestKindString(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindUnknown, "unknown"},
		{KindDuplicateWidget, "duplicate widget"},
		{KindUnknownWidget, "unknown widget"},
		{KindUnknownEditVariable, "unknown edit variable"},
		{KindUnsatisfiableConstraints, "unsatisfiable constraints"},
		{KindDispatchLoopExceeded, "dispatch loop exceeded"},
		{KindRootExists, "root exists"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.kind.String())
	}
}

func TestIsMatchesKind(t *testing.T) {
	err := Newf("cassowary.Solver.AddConstraint", KindUnsatisfiableConstraints, "x == 1 conflicts")
	wrapped := fmt.Errorf("adding widget: %w", err)

	assert.True(t, stderrors.Is(wrapped, ErrUnsatisfiableConstraints))
	assert.False(t, stderrors.Is(wrapped, ErrDuplicateWidget))
	assert.Equal(t, KindUnsatisfiableConstraints, KindOf(wrapped))
	assert.Equal(t, KindUnknown, KindOf(fmt.Errorf("plain")))

	var target *Error
	require.True(t, stderrors.As(wrapped, &target))
	assert.Equal(t, "cassowary.Solver.AddConstraint", target.Op)
}

func TestForWidgetCopies(t *testing.T) {
	base := New("op", KindUnknownWidget)
	named := base.ForWidget(name("7.2"))
	assert.Empty(t, base.Widget)
	assert.Equal(t, "7.2", named.Widget)
}

func TestReportUsesHandler(t *testing.T) {
	var got []*Error
	SetHandler(HandlerFunc(func(err *Error) { got = append(got, err) }))
	defer SetHandler(nil)

	Report(nil)
	Report(New("retained.Dispatcher.Drain", KindDispatchLoopExceeded))

	require.Len(t, got, 1)
	assert.False(t, got[0].Timestamp.IsZero())
	assert.Equal(t, KindDispatchLoopExceeded, got[0].Kind)
}

func TestLogHandler(t *testing.T) {
	var buf bytes.Buffer
	h := &LogHandler{Logger: slog.New(slog.NewTextHandler(&buf, nil))}
	h.HandleError(&Error{Op: "op", Kind: KindUnknownWidget, Widget: "1.1"})
	h.HandleError(nil)

	out := buf.String()
	assert.Contains(t, out, "kind=\"unknown widget\"")
	assert.Contains(t, out, "widget=1.1")
	assert.Contains(t, out, "level=WARN")
}

func TestLogHandlerLevels(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindDispatchLoopExceeded, "level=WARN"},
		{KindUnknownEditVariable, "level=WARN"},
		{KindUnsatisfiableConstraints, "level=ERROR"},
		{KindInternalSolver, "level=ERROR"},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			var buf bytes.Buffer
			h := &LogHandler{Logger: slog.New(slog.NewTextHandler(&buf, nil))}
			h.HandleError(New("op", tt.kind))
			assert.Contains(t, buf.String(), tt.want)
		})
	}
}
