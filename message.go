package nexuslog

import (
	"errors"
	"fmt"

	"github.com/valyala/bytebufferpool"
)

// inlineMessageCap is the inline buffer's fixed capacity in bytes. Messages
// that render within this capacity never touch the heap; longer ones fall
// back to a heap-allocated string. 256 is the specified default; a
// different implementation may pick another knob as long as the "small
// messages avoid allocation" invariant holds.
const inlineMessageCap = 256

var errInlineOverflow = errors.New("nexuslog: inline message buffer exhausted")

// message is a small sum type over an inline fixed-capacity buffer and an
// owned heap string, built once and never mutated afterward.
type message struct {
	n      int // >= 0: length used in inline; < 0: heap holds the content
	inline [inlineMessageCap]byte
	heap   string
}

// inlineSink is an io.Writer over message's fixed buffer that rejects
// (without retaining any partial content) a write that would overflow the
// capacity. fmt.Fprint/Fprintf hand over their fully rendered output in a
// single Write, so an oversized message leaves the buffer empty and the
// caller re-renders it on the heap.
type inlineSink struct {
	buf [inlineMessageCap]byte
	n   int
}

func (s *inlineSink) Write(p []byte) (int, error) {
	room := len(s.buf) - s.n
	if len(p) > room {
		return 0, errInlineOverflow
	}
	copy(s.buf[s.n:], p)
	s.n += len(p)
	return len(p), nil
}

// buildMessage renders v the way fmt.Sprint would, attempting the inline
// buffer first and falling back to a pooled heap render on overflow.
func buildMessage(v ...any) message {
	var sink inlineSink
	if _, err := fmt.Fprint(&sink, v...); err == nil {
		return message{n: sink.n, inline: sink.buf}
	}
	return heapMessage(func(b *bytebufferpool.ByteBuffer) {
		fmt.Fprint(b, v...)
	})
}

// buildMessagef renders v the way fmt.Sprintf would.
func buildMessagef(format string, v ...any) message {
	var sink inlineSink
	if _, err := fmt.Fprintf(&sink, format, v...); err == nil {
		return message{n: sink.n, inline: sink.buf}
	}
	return heapMessage(func(b *bytebufferpool.ByteBuffer) {
		fmt.Fprintf(b, format, v...)
	})
}

func heapMessage(render func(*bytebufferpool.ByteBuffer)) message {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)
	render(buf)
	// Copy out: the string must outlive the pooled buffer, which will be
	// reused by the next Get.
	return message{n: -1, heap: string(buf.B)}
}

// writeTo appends the message's content to buf without requiring a []byte
// conversion of the heap string.
func (m *message) writeTo(buf *bytebufferpool.ByteBuffer) {
	if m.n >= 0 {
		buf.Write(m.inline[:m.n])
		return
	}
	buf.WriteString(m.heap)
}
