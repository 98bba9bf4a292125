package nexuslog

import (
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAcquireBackendConcurrentCallersConverge(t *testing.T) {
	dir := t.TempDir()
	identity := sinkIdentity{kind: sinkFile, prefix: filepath.Join(dir, "app")}

	const n = 64
	backends := make([]*sharedBackend, n)
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func(i int) {
			defer wg.Done()
			sb, err := acquireBackend(identity, defaultOptions())
			require.NoError(t, err)
			backends[i] = sb
		}(i)
	}
	wg.Wait()

	first := backends[0]
	for _, sb := range backends {
		assert.Same(t, first, sb)
	}
	assert.EqualValues(t, n, first.refs.Load())

	for i := 0; i < n; i++ {
		first.release()
	}
	assert.True(t, first.torndown.Load())
}
