// Package nexuslog is a high-throughput, low-latency structured logging
// engine.
//
// Overview:
// A log call from an application thread is a constant-time, non-blocking
// operation: the level gate runs inline, the message is rendered into a
// fixed-capacity inline buffer when it fits (falling back to a pooled heap
// string otherwise), and the resulting entry is sent over a bounded channel
// to a dedicated background worker. The worker formats, writes, flushes on
// a cadence, and rotates the sink at local-midnight. Multiple Handles
// constructed against the same Sink converge on one shared backend via a
// process-wide registry.
//
// Getting Started:
//
//	handle, err := nexuslog.Init("app", nexuslog.FileSink("/var/log/app"), nexuslog.Info)
//	if err != nil {
//	    panic(err)
//	}
//	defer handle.Shutdown()
//
//	handle.Info("server starting")
//	handle.Errorf("listen failed: %v", err)
//
// Sinks:
//
// A Sink is either a file path prefix, rotated daily to
// "{prefix}_YYYYMMDD.log", or standard output:
//
//	nexuslog.FileSink("/var/log/app")
//	nexuslog.StdoutSink()
//
// Two Handles created against an equal Sink share one backend and one
// worker goroutine; logging through either produces lines interleaved in
// channel-arrival order into the same file.
//
// Record Format:
//
// The output record layout is fixed (not user-customizable):
//
//	time=2025-04-19T10:00:00.000123+02:00 level=INFO name=app msg="server starting"
//
// Levels, from least to most severe: Trace, Debug, Info, Warn, Error.
//
// Backpressure:
//
// The channel between a Handle and its worker has a fixed capacity
// (65,536 entries). When full, a Write is dropped rather than blocking the
// caller — this is a deliberate latency-over-durability choice. There is
// no internal counter of dropped entries; their absence from the sink is
// the only observable signal.
//
// Shutdown:
//
// Shutdown releases a Handle's reference to its backend. The backend's
// worker goroutine is only signaled to exit once every Handle sharing it
// has called Shutdown; at that point all entries already accepted by the
// channel are drained, written, and flushed before the worker returns.
//
// Error Handling:
//
// I/O failures inside the worker (file open/write/flush/rotate) terminate
// that worker rather than risk corrupted output. Register
// WithErrorHandler at Init time to observe such failures; without one they
// are reported to os.Stderr. The producer-side fast path never returns an
// error and never panics.
package nexuslog
