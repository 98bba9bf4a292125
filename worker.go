package nexuslog

import (
	"fmt"
	"os"
	"time"

	"github.com/valyala/bytebufferpool"
)

// flushCheckInterval is how often the worker's receive wakes up even when
// idle, so the ≥1s flush cadence is honored without a dedicated timer per
// backend beyond this one ticker.
const flushCheckInterval = 100 * time.Millisecond

// flushCadence is the maximum time buffered bytes may sit unflushed while
// the backend is active.
const flushCadence = time.Second

// worker drains one backend's queue, owns its rotatingSink exclusively,
// and is the only writer to that sink for as long as it runs.
type worker struct {
	backend *sharedBackend
	sink    *rotatingSink
	cache   formatterCache
	queue   chan action
	onError func(error)
	unixTS  bool
}

func startBackend(identity sinkIdentity, opts options) (*sharedBackend, error) {
	date := now()
	cache := newFormatterCache()
	cache.update(date.secs)

	sink, err := openSink(identity, cache.currentDate)
	if err != nil {
		return nil, err
	}

	sb := &sharedBackend{
		identity: identity,
		queue:    make(chan action, channelCapacity),
		done:     make(chan struct{}),
	}

	w := &worker{
		backend: sb,
		sink:    sink,
		cache:   cache,
		queue:   sb.queue,
		onError: opts.errorHandler,
		unixTS:  opts.unixTimestamps,
	}
	go w.run()
	return sb, nil
}

func (w *worker) run() {
	defer func() {
		w.backend.torndown.Store(true)
		close(w.backend.done)
	}()

	ticker := time.NewTicker(flushCheckInterval)
	defer ticker.Stop()

	lastFlush := time.Now()
	for {
		select {
		case act := <-w.queue:
			switch act.kind {
			case actionWrite:
				if err := w.handleWrite(act.entry); err != nil {
					w.report(err)
					return
				}
			case actionFlush:
				if err := w.sink.flush(); err != nil {
					w.report(err)
					return
				}
				lastFlush = time.Now()
			case actionExit:
				if err := w.sink.flushAndClose(); err != nil {
					w.report(err)
				}
				return
			}
		case <-ticker.C:
		}

		if time.Since(lastFlush) >= flushCadence {
			if err := w.sink.flush(); err != nil {
				w.report(err)
				return
			}
			lastFlush = time.Now()
		}
	}
}

func (w *worker) handleWrite(e logEntry) error {
	w.cache.update(e.ts.secs)
	if w.cache.currentDate != w.sink.currentDate {
		if err := w.sink.rotate(w.cache.currentDate); err != nil {
			return err
		}
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if w.unixTS {
		fmt.Fprintf(buf, "time=%d.%09d level=%s", e.ts.secs, e.ts.micros*1000, e.level.String())
	} else {
		buf.WriteString(w.cache.timePrefix)
		fmt.Fprintf(buf, "%06d", e.ts.micros)
		buf.WriteString(w.cache.offsetSuffix)
		buf.WriteString(" level=")
		buf.WriteString(e.level.String())
	}

	buf.WriteString(" name=")
	buf.WriteString(e.name)
	buf.WriteString(` msg="`)
	e.msg.writeTo(buf)
	buf.WriteString("\"\n")

	_, err := w.sink.w.Write(buf.B)
	return err
}

func (w *worker) report(err error) {
	if w.onError != nil {
		w.onError(err)
		return
	}
	fmt.Fprintln(os.Stderr, "nexuslog: worker terminated:", err)
}
