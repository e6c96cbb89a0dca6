package core

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatch(t *testing.T) {
	dir := SetUpSiteFromFiles(t, map[string]string{
		"public/ai/2025/08/04.md": "# Yesterday\n",
	})
	builder := NewBuilder(CurrentConfig())

	ctx, cancel := context.WithCancel(context.Background())
	builds := make(chan *Manifest, 10)
	done := make(chan error, 1)
	go func() {
		done <- builder.Watch(ctx, func(m *Manifest, err error) {
			if assert.NoError(t, err) {
				builds <- m
			}
		})
	}()

	// Give the watcher some time to register the directories
	time.Sleep(200 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "public", "ai", "2025", "08", "05.md"), []byte("# Today\n"), 0644))

	select {
	case m := <-builds:
		assert.Equal(t, 2, m.Count())
		entry, ok := m.Find("ai", "2025-08-05")
		require.True(t, ok)
		assert.Equal(t, "Today", entry.Title)
	case <-time.After(5 * time.Second):
		t.Fatal("no rebuild after a change")
	}
	assert.FileExists(t, CurrentConfig().ManifestPath())

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher not stopped")
	}
}

func TestIgnoreEvent(t *testing.T) {
	dir := SetUpSiteFromTempDir(t)
	builder := NewBuilder(CurrentConfig())

	assert.True(t, builder.ignoreEvent(filepath.Join(dir, "public", "manifest.json")))
	assert.True(t, builder.ignoreEvent(filepath.Join(dir, "public", ".manifest.json.123.tmp")))
	assert.False(t, builder.ignoreEvent(filepath.Join(dir, "public", "ai", "2025", "08", "05.md")))
}
