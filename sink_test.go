package nexuslog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenSinkCreatesParentDirectory(t *testing.T) {
	dir := t.TempDir()
	prefix := filepath.Join(dir, "nested", "app")

	s, err := openSink(sinkIdentity{kind: sinkFile, prefix: prefix}, "20260101")
	require.NoError(t, err)
	defer s.flushAndClose()

	_, err = os.Stat(filepath.Join(dir, "nested"))
	assert.NoError(t, err)
}

func TestRotateAcrossDateBoundarySwitchesFile(t *testing.T) {
	dir := t.TempDir()
	prefix := filepath.Join(dir, "app")

	s, err := openSink(sinkIdentity{kind: sinkFile, prefix: prefix}, "20260101")
	require.NoError(t, err)

	_, err = s.w.WriteString("day one\n")
	require.NoError(t, err)

	require.NoError(t, s.rotate("20260102"))

	_, err = s.w.WriteString("day two\n")
	require.NoError(t, err)
	require.NoError(t, s.flushAndClose())

	first, err := os.ReadFile(filePath(prefix, "20260101"))
	require.NoError(t, err)
	assert.Equal(t, "day one\n", string(first))

	second, err := os.ReadFile(filePath(prefix, "20260102"))
	require.NoError(t, err)
	assert.Equal(t, "day two\n", string(second))
}

func TestFlushOnStdoutSucceeds(t *testing.T) {
	s, err := openSink(sinkIdentity{kind: sinkStdout}, "20260101")
	require.NoError(t, err)
	assert.NoError(t, s.flush())
}
