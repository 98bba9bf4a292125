package nexuslog

// options holds the creation-time configuration for a backend. Because a
// backend is shared across every Handle routed to the same sink identity,
// these settings take effect only for the handle whose acquire call
// actually creates the backend — later handles sharing it inherit the
// first one's settings, consistent with "one set of resources per sink
// identity".
type options struct {
	errorHandler   func(error)
	unixTimestamps bool
}

// Option configures a backend at creation time. See Init.
type Option func(*options)

func defaultOptions() options {
	return options{}
}

// WithErrorHandler registers a callback invoked on the worker goroutine
// whenever an I/O error terminates it (file open/write/flush/rotate
// failure). The engine never panics on such errors; without a handler they
// are reported to os.Stderr.
func WithErrorHandler(fn func(error)) Option {
	return func(o *options) { o.errorHandler = fn }
}

// WithUnixTimestamps selects the alternate "time=<secs>.<nanos>" record
// format (supplementing spec.md's mandatory ISO-8601 form, which remains
// the default) in place of the ISO-8601 local-datetime prefix.
func WithUnixTimestamps() Option {
	return func(o *options) { o.unixTimestamps = true }
}
