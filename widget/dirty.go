package widget

import "sort"

// DirtySet collects widgets whose drawn appearance may be stale.
// Widgets are added during a dispatch pass and drained by the renderer at
// its frame boundary.
type DirtySet struct {
	ids map[ID]struct{}
}

// Mark adds id to the set. The zero ID is ignored.
func (d *DirtySet) Mark(id ID) {
	if !id.IsValid() {
		return
	}
	if d.ids == nil {
		d.ids = make(map[ID]struct{})
	}
	d.ids[id] = struct{}{}
}

// Contains reports whether id is waiting to be redrawn.
func (d *DirtySet) Contains(id ID) bool {
	_, ok := d.ids[id]
	return ok
}

// Len returns the number of dirty widgets.
func (d *DirtySet) Len() int { return len(d.ids) }

// Drain returns the dirty widgets in id order and empties the set.
func (d *DirtySet) Drain() []ID {
	if len(d.ids) == 0 {
		return nil
	}
	out := make([]ID, 0, len(d.ids))
	for id := range d.ids {
		out = append(out, id)
	}
	clear(d.ids)
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}

func (d *DirtySet) forget(id ID) {
	delete(d.ids, id)
}
