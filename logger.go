package nexuslog

import (
	"sync/atomic"
)

// Handle is the producer-facing front end returned by Init. Logging
// through a Handle is a constant-time, non-blocking operation: the level
// gate and non-blocking channel send mean an application thread never
// waits on the sink.
//
// A Handle is safe for concurrent use by multiple goroutines.
type Handle struct {
	name    string
	level   atomic.Int32
	backend *sharedBackend
	closed  atomic.Bool
}

// Init creates a Handle named name, logging at minLevel and above, routed
// to sink. Multiple Init calls (and Handle.Clone calls) against the same
// Sink converge on one shared backend.
func Init(name string, sink Sink, minLevel Level, opts ...Option) (*Handle, error) {
	cfg := defaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	backend, err := acquireBackend(sink.id, cfg)
	if err != nil {
		return nil, err
	}

	h := &Handle{name: name, backend: backend}
	h.level.Store(int32(minLevel))
	return h, nil
}

// Clone returns a new Handle sharing h's backend, name, and level. The
// backend's refcount is incremented; the clone must be independently
// Shutdown (or dropped via Clone chains eventually calling Shutdown) for
// the backend to tear down once every handle is done with it.
func (h *Handle) Clone() *Handle {
	h.backend.acquireRef()
	clone := &Handle{name: h.name, backend: h.backend}
	clone.level.Store(h.level.Load())
	return clone
}

// SetLevel changes h's minimum level at runtime.
func (h *Handle) SetLevel(level Level) {
	h.level.Store(int32(level))
}

// Level returns h's current minimum level.
func (h *Handle) Level() Level {
	return Level(h.level.Load())
}

// Log enqueues a message built the way fmt.Sprint would from v, if level is
// at or above h's minimum level. A full channel silently drops the entry.
func (h *Handle) Log(level Level, v ...any) {
	h.emit(level, func() message { return buildMessage(v...) })
}

// Logf enqueues a message built the way fmt.Sprintf would.
func (h *Handle) Logf(level Level, format string, v ...any) {
	h.emit(level, func() message { return buildMessagef(format, v...) })
}

func (h *Handle) Trace(v ...any)                          { h.Log(Trace, v...) }
func (h *Handle) Tracef(format string, v ...any)          { h.Logf(Trace, format, v...) }
func (h *Handle) Debug(v ...any)                          { h.Log(Debug, v...) }
func (h *Handle) Debugf(format string, v ...any)          { h.Logf(Debug, format, v...) }
func (h *Handle) Info(v ...any)                           { h.Log(Info, v...) }
func (h *Handle) Infof(format string, v ...any)           { h.Logf(Info, format, v...) }
func (h *Handle) Warn(v ...any)                           { h.Log(Warn, v...) }
func (h *Handle) Warnf(format string, v ...any)           { h.Logf(Warn, format, v...) }
func (h *Handle) Error(v ...any)                          { h.Log(Error, v...) }
func (h *Handle) Errorf(format string, v ...any)          { h.Logf(Error, format, v...) }

func (h *Handle) emit(level Level, build func() message) {
	if level < Level(h.level.Load()) {
		return
	}
	entry := logEntry{level: level, name: h.name, ts: now(), msg: build()}
	trySend(h.backend.queue, action{kind: actionWrite, entry: entry})
}

// Flush best-effort requests that the backend's worker flush buffered
// bytes to the OS. It does not block until the flush has happened — on a
// saturated channel the request itself may be dropped, same as a Write.
func (h *Handle) Flush() {
	trySend(h.backend.queue, action{kind: actionFlush})
}

// Shutdown releases h's strong reference to its backend. Idempotent: only
// the first call has any effect. Once the last Handle sharing a backend is
// shut down, its worker is signaled to exit and joined — every Write
// accepted by the channel before that point will have been written and
// flushed by the time Shutdown returns.
func (h *Handle) Shutdown() {
	if !h.closed.CompareAndSwap(false, true) {
		return
	}
	h.backend.release()
}
