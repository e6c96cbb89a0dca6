package helpers

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHash(t *testing.T) {
	assert.Equal(t, "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855", Hash(nil))
	assert.Equal(t, Hash([]byte("# AI 日报")), Hash([]byte("# AI 日报")))
	assert.NotEqual(t, Hash([]byte("# AI 日报")), Hash([]byte("# 游戏日报")))
}

func TestHashFromFile(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		content string
	}{
		{"empty", ""},
		{"post", "# AI 日报 | 2025-08-05\n\n模型发布与评测基线。\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name+".md")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))

			actual, err := HashFromFile(path)
			require.NoError(t, err)
			// Streaming gives the same checksum as hashing in memory
			assert.Equal(t, Hash([]byte(tt.content)), actual)
		})
	}

	_, err := HashFromFile(filepath.Join(dir, "missing.md"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
