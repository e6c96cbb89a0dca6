package filesystem

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileSize(t *testing.T) {
	dir := t.TempDir()

	knownPath := filepath.Join(dir, "known.txt")
	unknownPath := filepath.Join(dir, "unknown.txt")

	// Create the known file
	err := os.WriteFile(knownPath, []byte("Hello World!"), 0644)
	require.NoError(t, err)

	size, err := FileSize(knownPath)
	require.NoError(t, err)
	assert.Equal(t, int64(12), size)

	size, err = FileSize(unknownPath)
	require.Error(t, err)
	assert.Equal(t, int64(0), size)
}

func TestDirSize(t *testing.T) {
	dir := t.TempDir()

	files := map[string]string{
		"manifest.json":       "{}",
		"ai/2025/08/05.md":    "# AI 日报\n",
		"game/2025/09/09.md":  "# Game\n",
		".daily-index.json":   "ignored",
		".cache/ai/05.md.tmp": "ignored",
	}
	for relativePath, content := range files {
		path := filepath.Join(dir, relativePath)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}

	size, err := DirSize(dir)
	require.NoError(t, err)
	assert.Equal(t, int64(len("{}")+len("# AI 日报\n")+len("# Game\n")), size)

	_, err = DirSize(filepath.Join(dir, "missing"))
	assert.Error(t, err)

	size = FilesSize(dir, []string{"manifest.json", "ai/2025/08/05.md", "missing.md"})
	assert.Equal(t, int64(len("{}")+len("# AI 日报\n")), size)
}

func TestHumanSize(t *testing.T) {
	tests := []struct {
		name     string
		size     int64
		expected string
	}{
		{"zero", 0, "0 B"},
		{"bytes", 12, "12 B"},
		{"kilobytes", 12 * 1000, "12 kB"},
		{"megabytes", 83 * 1000 * 1000, "83 MB"},
		{"negative", -1, "0 B"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, HumanSize(tt.size))
		})
	}
}
