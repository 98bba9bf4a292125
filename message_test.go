package nexuslog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/valyala/bytebufferpool"
)

func renderedString(t *testing.T, m message) string {
	t.Helper()
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)
	m.writeTo(buf)
	return string(buf.B)
}

func TestBuildMessageStaysInlineWithinCapacity(t *testing.T) {
	m := buildMessage("hello", " ", "world")
	assert.GreaterOrEqual(t, m.n, 0)
	assert.Equal(t, "hello world", renderedString(t, m))
}

func TestBuildMessageOverflowsToHeap(t *testing.T) {
	long := strings.Repeat("x", inlineMessageCap+1)
	m := buildMessage(long)
	assert.Equal(t, -1, m.n)
	assert.Equal(t, long, renderedString(t, m))
}

func TestBuildMessageAtExactCapacityStaysInline(t *testing.T) {
	exact := strings.Repeat("y", inlineMessageCap)
	m := buildMessage(exact)
	assert.GreaterOrEqual(t, m.n, 0)
	assert.Equal(t, exact, renderedString(t, m))
}

func TestBuildMessagefFormatsAndOverflows(t *testing.T) {
	short := buildMessagef("n=%d", 42)
	assert.Equal(t, "n=42", renderedString(t, short))

	long := buildMessagef("%s", strings.Repeat("z", inlineMessageCap*2))
	assert.Equal(t, -1, long.n)
	assert.Equal(t, strings.Repeat("z", inlineMessageCap*2), renderedString(t, long))
}

func TestInlineSinkRejectsOverflowWithoutRetainingPartialContent(t *testing.T) {
	var sink inlineSink
	n, err := sink.Write([]byte(strings.Repeat("a", inlineMessageCap)))
	assert.NoError(t, err)
	assert.Equal(t, inlineMessageCap, n)

	_, err = sink.Write([]byte("b"))
	assert.ErrorIs(t, err, errInlineOverflow)
	assert.Equal(t, inlineMessageCap, sink.n)
}
