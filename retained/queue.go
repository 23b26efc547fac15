package retained

// ============================================================================
// Event Queue
// ============================================================================

// queued is one pending (address, event) pair.
type queued struct {
	addr Address
	ev   Event
}

// Queue is the FIFO of pending events. It is owned by the UI goroutine and
// is not safe for concurrent use; handlers append to it while it drains.
type Queue struct {
	items []queued
	head  int
}

// Push appends ev for addr at the tail.
func (q *Queue) Push(addr Address, ev Event) {
	q.items = append(q.items, queued{addr: addr, ev: ev})
}

// Pop removes the oldest entry. ok is false when the queue is empty.
func (q *Queue) Pop() (addr Address, ev Event, ok bool) {
	if q.head == len(q.items) {
		return Address{}, nil, false
	}
	it := q.items[q.head]
	q.items[q.head] = queued{}
	q.head++

	// Reclaim the consumed prefix once it dominates the backing array.
	if q.head == len(q.items) {
		q.items = q.items[:0]
		q.head = 0
	} else if q.head > 64 && q.head*2 > len(q.items) {
		n := copy(q.items, q.items[q.head:])
		clear(q.items[n:])
		q.items = q.items[:n]
		q.head = 0
	}
	return it.addr, it.ev, true
}

// Len returns the number of pending entries.
func (q *Queue) Len() int { return len(q.items) - q.head }

// Clear drops every pending entry.
func (q *Queue) Clear() {
	clear(q.items)
	q.items = q.items[:0]
	q.head = 0
}
