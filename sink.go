package nexuslog

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/multierr"
)

// sinkBufferSize is the buffered writer's capacity over the underlying
// file or standard output.
const sinkBufferSize = 1 << 20 // 1 MiB

type sinkKind uint8

const (
	sinkFile sinkKind = iota
	sinkStdout
)

// sinkIdentity is the registry key: either a file path prefix or the
// distinguished standard-output marker. Two handles constructed with an
// equal sinkIdentity share one backend.
type sinkIdentity struct {
	kind   sinkKind
	prefix string
}

func (s sinkIdentity) String() string {
	if s.kind == sinkStdout {
		return "stdout"
	}
	return "file:" + s.prefix
}

// Sink names the destination a Handle's backend writes to.
type Sink struct{ id sinkIdentity }

// FileSink identifies a destination rotated daily under
// "{prefix}_YYYYMMDD.log". The parent directory is created if missing.
func FileSink(prefix string) Sink {
	return Sink{id: sinkIdentity{kind: sinkFile, prefix: prefix}}
}

// StdoutSink identifies standard output as the destination. It is never
// rotated by path, but the worker still tracks the current local date so
// that formatting stays consistent with file sinks.
func StdoutSink() Sink {
	return Sink{id: sinkIdentity{kind: sinkStdout}}
}

// rotatingSink owns the single buffered writer a backend's worker writes
// through. It is touched only by that worker — no other goroutine may
// access it concurrently.
type rotatingSink struct {
	identity    sinkIdentity
	currentDate string
	w           *bufio.Writer
	closer      io.Closer // nil for stdout
}

func filePath(prefix, date string) string {
	return fmt.Sprintf("%s_%s.log", prefix, date)
}

func openSink(identity sinkIdentity, date string) (*rotatingSink, error) {
	if identity.kind == sinkStdout {
		return &rotatingSink{
			identity:    identity,
			currentDate: date,
			w:           bufio.NewWriterSize(os.Stdout, sinkBufferSize),
		}, nil
	}

	path := filePath(identity.prefix, date)
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("nexuslog: create log directory: %w", err)
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("nexuslog: open log file: %w", err)
	}

	return &rotatingSink{
		identity:    identity,
		currentDate: date,
		w:           bufio.NewWriterSize(f, sinkBufferSize),
		closer:      f,
	}, nil
}

// rotate flushes and closes the current writer, then reopens the sink
// under newDate.
func (s *rotatingSink) rotate(newDate string) error {
	if err := s.flushAndClose(); err != nil {
		return err
	}
	next, err := openSink(s.identity, newDate)
	if err != nil {
		return err
	}
	*s = *next
	return nil
}

func (s *rotatingSink) flush() error {
	return s.w.Flush()
}

func (s *rotatingSink) flushAndClose() error {
	var err error
	if ferr := s.w.Flush(); ferr != nil {
		err = multierr.Append(err, ferr)
	}
	if s.closer != nil {
		if cerr := s.closer.Close(); cerr != nil {
			err = multierr.Append(err, cerr)
		}
	}
	return err
}
