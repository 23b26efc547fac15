package retained

import "sync"

// ============================================================================
// Handler Slice Pooling
// ============================================================================
//
// Dispatch copies a widget's handler list before calling it so handlers may
// register or remove handlers mid-call. Every event does this at least once
// per recipient, so the copies are pooled.
//
// Usage:
//   hs := acquireHandlerSlice(len(list))
//   copy(hs, list)
//   ... call hs ...
//   releaseHandlerSlice(hs)

var handlerSlicePool = sync.Pool{
	New: func() any {
		return make([]Handler, 0, 8)
	},
}

// acquireHandlerSlice returns a slice with len == n from the pool.
// Caller must call releaseHandlerSlice when done.
func acquireHandlerSlice(n int) []Handler {
	slice := handlerSlicePool.Get().([]Handler)
	if cap(slice) < n {
		handlerSlicePool.Put(slice[:0])
		return make([]Handler, n, n*2)
	}
	return slice[:n]
}

// releaseHandlerSlice returns slice to the pool. It must not be used after.
func releaseHandlerSlice(slice []Handler) {
	if slice == nil {
		return
	}
	clear(slice)
	if cap(slice) <= 64 {
		handlerSlicePool.Put(slice[:0])
	}
}
