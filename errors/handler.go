package errors

import (
	"sync"
	"time"
)

// Handler receives recoverable diagnostics that are not returned to a caller,
// such as the dispatch loop bound being hit during an input pass.
type Handler interface {
	HandleError(err *Error)
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc func(err *Error)

// HandleError calls f(err).
func (f HandlerFunc) HandleError(err *Error) { f(err) }

var (
	// DefaultHandler is the global error handler.
	// It defaults to a LogHandler writing to slog.Default().
	DefaultHandler Handler = &LogHandler{}

	handlerMu sync.RWMutex
)

// SetHandler configures the global error handler.
// Pass nil to restore the default LogHandler.
func SetHandler(h Handler) {
	handlerMu.Lock()
	defer handlerMu.Unlock()
	if h == nil {
		DefaultHandler = &LogHandler{}
	} else {
		DefaultHandler = h
	}
}

func getHandler() Handler {
	handlerMu.RLock()
	defer handlerMu.RUnlock()
	return DefaultHandler
}

// Report sends an error to the global handler.
// If err.Timestamp is zero, it is set to the current time.
func Report(err *Error) {
	if err == nil {
		return
	}
	if err.Timestamp.IsZero() {
		err.Timestamp = time.Now()
	}
	if h := getHandler(); h != nil {
		h.HandleError(err)
	}
}
