package lattice

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agiangrant/lattice/widget"
)

func TestNew(t *testing.T) {
	ui, err := New(DefaultConfig(), WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	require.NoError(t, err)

	root, err := ui.AddWidget(widget.ID{}, widget.NewNode("root"), nil)
	require.NoError(t, err)
	require.NoError(t, ui.WindowResized(320, 240))

	w, h := ui.RootSize()
	assert.Equal(t, float32(320), w)
	assert.Equal(t, float32(240), h)
	assert.Equal(t, root, ui.Root())
}
