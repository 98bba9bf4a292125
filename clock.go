package nexuslog

import (
	"sync/atomic"
	"time"
)

// clockRefreshInterval bounds how stale a cached timestamp may become
// before the next call pays for a fresh wall-clock read.
const clockRefreshInterval = time.Second

// timestamp is the (secs, micros) pair carried by every LogEntry.
type timestamp struct {
	secs   uint64
	micros uint32
}

// clockState anchors a wall-clock reading to a monotonic instant so that
// subsequent calls can derive "now" by adding elapsed monotonic time
// instead of reading the wall clock again.
//
// Go has no supported thread-local storage and goroutines are scheduled
// M:N onto OS threads, so the per-OS-thread cache described by the source
// implementation has no faithful Go equivalent. A single atomically-swapped
// clockState gives amortized-O(1) calls and about one wall-clock read per
// second without it; goroutines that find the state expired at the same
// moment may each read the wall clock once — see DESIGN.md.
type clockState struct {
	baseWall timestamp
	baseMono time.Time
}

var sharedClock atomic.Pointer[clockState]

func init() {
	sharedClock.Store(freshClockState())
}

func wallNow() timestamp {
	now := time.Now()
	secs := now.Unix()
	if secs < 0 {
		// Before-epoch reads fall back to a zeroed timestamp rather than
		// wrapping or panicking.
		return timestamp{}
	}
	return timestamp{secs: uint64(secs), micros: uint32(now.Nanosecond() / 1000)}
}

func freshClockState() *clockState {
	return &clockState{baseWall: wallNow(), baseMono: time.Now()}
}

// now returns the current cached timestamp, refreshing the shared clock
// state from the wall clock if at least clockRefreshInterval has elapsed
// since the last refresh. Concurrent refreshes are benign: whichever
// goroutine's fresh read lands last simply wins, and all readers still
// observe a monotonically non-decreasing sequence of results because each
// fresh read is itself derived from time.Now().
func now() timestamp {
	st := sharedClock.Load()
	elapsed := time.Since(st.baseMono)
	if elapsed >= clockRefreshInterval {
		fresh := freshClockState()
		sharedClock.Store(fresh)
		return fresh.baseWall
	}

	totalMicros := uint64(st.baseWall.micros) + uint64(elapsed.Microseconds())
	return timestamp{
		secs:   st.baseWall.secs + totalMicros/1_000_000,
		micros: uint32(totalMicros % 1_000_000),
	}
}
