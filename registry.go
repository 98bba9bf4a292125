package nexuslog

import (
	"sync"
	"sync/atomic"
	"weak"

	"golang.org/x/sync/singleflight"
)

// sharedBackend is the tuple (worker goroutine, channel, sink) servicing
// one sink identity. It is jointly owned by every live Handle routed to it;
// the registry itself holds only a weak reference.
type sharedBackend struct {
	identity sinkIdentity
	queue    chan action
	done     chan struct{} // closed by the worker when it returns
	refs     atomic.Int64
	torndown atomic.Bool // set by the worker itself just before it exits
}

// acquireRef records one more strong holder of sb.
func (sb *sharedBackend) acquireRef() {
	sb.refs.Add(1)
}

// release drops one strong holder. On the last release it removes sb from
// the registry and sends Exit, blocking until the worker has joined —
// guaranteeing every Write accepted before Exit has been flushed to the
// sink before release returns.
//
// The zero-crossing decrement and the registry removal happen under
// registryMu, the same lock acquireBackend's lookup+increment holds, so a
// concurrent acquireBackend call can never observe refs == 0 as "still
// live" and hand out a reference to a backend whose Exit is already (or
// about to be) queued — it either sees sb removed and creates a fresh
// backend, or its increment lands before this decrement and release sees
// refs != 0 and leaves the registry entry alone.
func (sb *sharedBackend) release() {
	registryMu.Lock()
	if sb.refs.Add(-1) != 0 {
		registryMu.Unlock()
		return
	}
	if wp, ok := registryTable[sb.identity]; ok {
		if cur := wp.Value(); cur == sb {
			delete(registryTable, sb.identity)
		}
	}
	registryMu.Unlock()

	select {
	case sb.queue <- action{kind: actionExit}:
	case <-sb.done:
		// Worker already terminated on its own (e.g. an I/O error) — no
		// Exit to deliver, nothing further to wait for.
		return
	}
	<-sb.done
}

var (
	registryMu    sync.Mutex
	registryTable = map[sinkIdentity]weak.Pointer[sharedBackend]{}
	creationGroup singleflight.Group
)

// acquireBackend returns the live backend for identity, creating one if
// none exists (or the existing one has been torn down). The registry mutex
// is held only for the short map lookup/insert — singleflight.Group
// deduplicates concurrent creation so the lock is never held across the
// file-open-and-spawn-goroutine I/O that backend creation performs.
//
// Liveness is judged by the worker's own torndown flag rather than the
// refcount: a freshly created backend legitimately has refs == 0 for the
// brief window before its first caller(s) record their reference, and
// treating that window as "dead" would race a second worker into existence
// for the same identity.
func acquireBackend(identity sinkIdentity, opts options) (*sharedBackend, error) {
	registryMu.Lock()
	if wp, ok := registryTable[identity]; ok {
		if sb := wp.Value(); sb != nil && !sb.torndown.Load() {
			sb.acquireRef()
			registryMu.Unlock()
			return sb, nil
		}
		delete(registryTable, identity)
	}
	registryMu.Unlock()

	v, err, _ := creationGroup.Do(identity.String(), func() (any, error) {
		// A creation call that completed after the lookup above has
		// already registered a live backend; reuse it instead of starting
		// a second worker for the same identity.
		registryMu.Lock()
		if wp, ok := registryTable[identity]; ok {
			if sb := wp.Value(); sb != nil && !sb.torndown.Load() {
				registryMu.Unlock()
				return sb, nil
			}
		}
		registryMu.Unlock()

		sb, err := startBackend(identity, opts)
		if err != nil {
			return nil, err
		}

		registryMu.Lock()
		registryTable[identity] = weak.Make(sb)
		registryMu.Unlock()

		return sb, nil
	})
	if err != nil {
		return nil, err
	}

	// Every logical caller — whether it led the singleflight call or
	// joined one already in flight — records exactly one reference here.
	sb := v.(*sharedBackend)
	sb.acquireRef()
	return sb, nil
}
