// Package lattice is a retained-mode UI toolkit core: a widget tree whose
// geometry comes from an incremental linear-constraint solver, and an event
// queue that routes pointer input to widgets by address, bubbling and hit
// testing.
//
// The work is done by the subpackages; this package re-exports the entry
// points of retained for convenience:
//
//	ui, err := lattice.New(lattice.DefaultConfig())
//	root, err := ui.AddWidget(widget.ID{}, widget.NewNode("root"), nil)
//	err = ui.WindowResized(800, 600)
package lattice

import "github.com/agiangrant/lattice/retained"

// UI is the toolkit core. This is a re-export of retained.UI.
type UI = retained.UI

// Config holds UI settings. This is a re-export of retained.Config.
type Config = retained.Config

// Option configures a UI.
type Option = retained.Option

// New creates an empty UI.
func New(cfg Config, opts ...Option) (*UI, error) {
	return retained.New(cfg, opts...)
}

// DefaultConfig returns the settings used when nothing is configured.
func DefaultConfig() Config {
	return retained.DefaultConfig()
}

// LoadConfig reads a .toml or .yaml config file, falling back to defaults
// when it does not exist.
func LoadConfig(path string) (Config, error) {
	return retained.LoadConfig(path)
}

// WithLogger is a re-export of retained.WithLogger.
var WithLogger = retained.WithLogger
