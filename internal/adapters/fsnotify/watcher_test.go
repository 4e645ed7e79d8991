package fsnotify

import (
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcher_FiresOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("username: alice\n"), 0644))

	w, err := NewWatcher()
	require.NoError(t, err)
	defer w.Stop()

	var fired atomic.Int32
	require.NoError(t, w.Watch(path, func() { fired.Add(1) }))

	require.NoError(t, os.WriteFile(path, []byte("username: bob\n"), 0644))

	assert.Eventually(t, func() bool {
		return fired.Load() > 0
	}, 2*time.Second, 10*time.Millisecond)
}

func TestWatcher_IgnoresSiblingFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("a\n"), 0644))

	w, err := NewWatcher()
	require.NoError(t, err)
	defer w.Stop()

	var fired atomic.Int32
	require.NoError(t, w.Watch(path, func() { fired.Add(1) }))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("b\n"), 0644))

	time.Sleep(500 * time.Millisecond)
	assert.Zero(t, fired.Load(), "changes to other files in the directory are ignored")
}

func TestWatcher_StopIsIdempotent(t *testing.T) {
	w, err := NewWatcher()
	require.NoError(t, err)

	assert.NoError(t, w.Stop())
	assert.NoError(t, w.Stop())
}
