// Package widget holds the widget graph: a single-rooted tree of nodes with
// stable, generation-tagged identifiers, and the set of widgets waiting to be
// redrawn.
//
// The graph knows nothing about layout or events. Other packages refer to
// widgets only by ID and look them up at the moment they need them, so a
// widget removed in the middle of a traversal simply stops resolving.
package widget

import "fmt"

// ID identifies a widget for its whole lifetime.
//
// An ID is an arena slot plus the generation the slot had when the widget was
// created. Slots are reused after removal with a bumped generation, so an ID
// held past its widget's removal never resolves to the newcomer.
// The zero ID means "no widget".
type ID struct {
	index      uint32
	generation uint32
}

// IsValid reports whether id could name a widget. It does not check that
// the widget is still present; use Graph.Contains for that.
func (id ID) IsValid() bool { return id.generation != 0 }

func (id ID) String() string {
	if !id.IsValid() {
		return "none"
	}
	return fmt.Sprintf("%d.%d", id.index, id.generation)
}

// Less orders ids by slot, then generation.
func (id ID) Less(other ID) bool {
	if id.index != other.index {
		return id.index < other.index
	}
	return id.generation < other.generation
}
