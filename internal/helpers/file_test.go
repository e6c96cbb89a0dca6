package helpers

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFileAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ai", "2025", "08", "05.md")

	// Missing directories are created
	err := WriteFileAtomic(path, []byte("# First"), 0644)
	require.NoError(t, err)
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "# First", string(content))

	// Existing files are replaced
	err = WriteFileAtomic(path, []byte("# Second"), 0644)
	require.NoError(t, err)
	content, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "# Second", string(content))

	// No temporary file is left behind
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "05.md", entries[0].Name())
}

func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "manifest.json")
	assert.False(t, FileExists(path))
	assert.False(t, FileExists(dir))

	require.NoError(t, os.WriteFile(path, []byte("{}"), 0644))
	assert.True(t, FileExists(path))
}
