package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func startWatcher(t *testing.T, w *Watcher) <-chan []string {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	batches := make(chan []string, 8)
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = w.Run(ctx, func(_ context.Context, changed []string) {
			batches <- changed
		})
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})
	return batches
}

func waitBatch(t *testing.T, batches <-chan []string) []string {
	t.Helper()
	select {
	case b := <-batches:
		return b
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for change batch")
		return nil
	}
}

func TestWatcher_AnnotationChange(t *testing.T) {
	dir := t.TempDir()
	w, err := New(20*time.Millisecond, zap.NewNop().Sugar())
	require.NoError(t, err)
	require.NoError(t, w.AddDir(dir))
	batches := startWatcher(t, w)

	path := filepath.Join(dir, "getinfo.json")
	require.NoError(t, os.WriteFile(path, []byte(`[]`), 0644))

	batch := waitBatch(t, batches)
	assert.Contains(t, batch, path)
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	w, err := New(20*time.Millisecond, zap.NewNop().Sugar())
	require.NoError(t, err)
	require.NoError(t, w.AddDir(dir))
	batches := startWatcher(t, w)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "rpctypegen.toml.back1"), []byte("x"), 0644))

	select {
	case b := <-batches:
		t.Fatalf("unexpected batch %v", b)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatcher_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "rpctypegen.toml")
	require.NoError(t, os.WriteFile(cfg, []byte("lang = \"rust\"\n"), 0644))

	w, err := New(20*time.Millisecond, zap.NewNop().Sugar())
	require.NoError(t, err)
	require.NoError(t, w.AddFile(cfg))
	batches := startWatcher(t, w)

	require.NoError(t, os.WriteFile(cfg, []byte("lang = \"go\"\n"), 0644))

	batch := waitBatch(t, batches)
	assert.Equal(t, []string{cfg}, batch)
}

func TestWatcher_Debounces(t *testing.T) {
	dir := t.TempDir()
	w, err := New(150*time.Millisecond, zap.NewNop().Sugar())
	require.NoError(t, err)
	require.NoError(t, w.AddDir(dir))
	batches := startWatcher(t, w)

	a := filepath.Join(dir, "a.json")
	b := filepath.Join(dir, "b.json")
	require.NoError(t, os.WriteFile(a, []byte(`[]`), 0644))
	require.NoError(t, os.WriteFile(b, []byte(`[]`), 0644))

	batch := waitBatch(t, batches)
	assert.Equal(t, []string{a, b}, batch)
}
